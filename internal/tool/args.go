package tool

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/mredig/fingerstring-mcp/internal/schema"
)

// Arguments is the untyped argument bag of one call. Lookups treat a value of
// the wrong kind exactly like a missing one.
type Arguments map[string]any

func (a Arguments) String(name string) (string, bool) {
	v, ok := a[name].(string)
	return v, ok
}

func (a Arguments) Bool(name string) (bool, bool) {
	v, ok := a[name].(bool)
	return v, ok
}

func (a Arguments) Number(name string) (float64, bool) {
	switch v := a[name].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Int is Number restricted to whole values.
func (a Arguments) Int(name string) (int, bool) {
	f, ok := a.Number(name)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func (a Arguments) Array(name string) ([]any, bool) {
	v, ok := a[name].([]any)
	return v, ok
}

func (a Arguments) Object(name string) (map[string]any, bool) {
	v, ok := a[name].(map[string]any)
	return v, ok
}

// RequireString returns the named string or a MissingArgument error.
func (a Arguments) RequireString(name string) (string, error) {
	v, ok := a.String(name)
	if !ok {
		return "", MissingArgument(name)
	}
	return v, nil
}

// RequireConforming returns the named string after checking it against the
// constraints node declares. A violation is an InvalidArgument error.
func (a Arguments) RequireConforming(name string, node schema.String) (string, error) {
	v, err := a.RequireString(name)
	if err != nil {
		return "", err
	}
	if err := node.Check(v); err != nil {
		return "", InvalidArgument(name, fmt.Sprintf("%q", v), err.Error())
	}
	return v, nil
}

// OptionalString returns nil when the string is absent.
func (a Arguments) OptionalString(name string) *string {
	v, ok := a.String(name)
	if !ok {
		return nil
	}
	return &v
}

func (a Arguments) StringOr(name, fallback string) string {
	if v, ok := a.String(name); ok {
		return v
	}
	return fallback
}

func (a Arguments) BoolOr(name string, fallback bool) bool {
	if v, ok := a.Bool(name); ok {
		return v
	}
	return fallback
}

// Enum returns the named required string, which must be one of allowed.
func (a Arguments) Enum(name string, allowed ...string) (string, error) {
	v, err := a.RequireString(name)
	if err != nil {
		return "", err
	}
	for _, candidate := range allowed {
		if v == candidate {
			return v, nil
		}
	}
	return "", InvalidArgument(name, fmt.Sprintf("%q", v), "must be one of "+strings.Join(allowed, ", "))
}
