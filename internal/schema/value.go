package schema

import "math"

// Value is a literal default value for array and object nodes.
type Value interface {
	render() any
}

type (
	StringValue string
	NumberValue float64
	BoolValue   bool
	ArrayValue  []Value
	ObjectValue map[string]Value
)

func (v StringValue) render() any { return string(v) }
func (v NumberValue) render() any { return number(float64(v)) }
func (v BoolValue) render() any   { return bool(v) }

func (v ArrayValue) render() any {
	out := make([]any, len(v))
	for i, item := range v {
		out[i] = item.render()
	}
	return out
}

func (v ObjectValue) render() any {
	out := make(map[string]any, len(v))
	for key, item := range v {
		out[key] = item.render()
	}
	return out
}

// number keeps whole-valued defaults integral so they never carry a
// fractional part in the rendered document.
func number(f float64) any {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}
