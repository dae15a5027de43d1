package tool

import (
	"errors"
	"fmt"

	"github.com/mredig/fingerstring-mcp/internal/domain"
)

// Kind classifies a tool error.
type Kind int

const (
	// KindWrapped carries an arbitrary underlying failure.
	KindWrapped Kind = iota
	KindMissingArgument
	KindInvalidArgument
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindMissingArgument:
		return "missing_argument"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	default:
		return "wrapped"
	}
}

// Error is the single error type a tool call reports at the protocol
// boundary. Failures from other subsystems are kept in Err.
type Error struct {
	Kind    Kind
	Field   string
	Value   any
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingArgument:
		return fmt.Sprintf("missing required argument %q", e.Field)
	case KindInvalidArgument:
		if e.Message != "" {
			return fmt.Sprintf("invalid value %v for argument %q: %s", e.Value, e.Field, e.Message)
		}
		return fmt.Sprintf("invalid value %v for argument %q", e.Value, e.Field)
	case KindNotFound:
		if e.Message != "" {
			return e.Message
		}
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func MissingArgument(field string) *Error {
	return &Error{Kind: KindMissingArgument, Field: field}
}

func InvalidArgument(field string, value any, reason string) *Error {
	return &Error{Kind: KindInvalidArgument, Field: field, Value: value, Message: reason}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// ErrorFrom builds a tool error around err. Store lookups that matched
// nothing become KindNotFound, anything else KindWrapped; err stays
// reachable through Unwrap either way.
func ErrorFrom(err error) *Error {
	var nf domain.NotFoundError
	if errors.As(err, &nf) {
		return &Error{Kind: KindNotFound, Message: nf.Error(), Err: err}
	}
	return &Error{Kind: KindWrapped, Err: err}
}

// KindOf reports the kind of the tool error in err's chain.
func KindOf(err error) (Kind, bool) {
	var toolErr *Error
	if errors.As(err, &toolErr) {
		return toolErr.Kind, true
	}
	return 0, false
}
