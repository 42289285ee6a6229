package nestedjson

import (
	"errors"
	"fmt"
)

// ErrNull is returned (wrapped in a *DecodeError) when an inner document is
// the literal null but the target type has no null form.
var ErrNull = errors.New("null is not a valid value")

// ShapeError reports that the outer token has the wrong shape: a nested
// field must be a string, a nested sequence must be an array of strings.
type ShapeError struct {
	Want string // "string" or "array of strings"
	Got  string // what was found instead, e.g. "object", "null", "number"
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("nestedjson: expected %s, got %s", e.Want, e.Got)
}

// DecodeError wraps a failure of the inner document decode.
type DecodeError struct {
	Type  string // target type, e.g. "main.Item"
	Field string // outer field path when known
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("nestedjson: field %q: decode inner document into %s: %v", e.Field, e.Type, e.Err)
	}
	return fmt.Sprintf("nestedjson: decode inner document into %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError wraps a failure of the inner document encode.
type EncodeError struct {
	Type string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("nestedjson: encode %s as inner document: %v", e.Type, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// ElementError reports which element of a nested sequence failed.
// Err is a *DecodeError or *EncodeError.
type ElementError struct {
	Index int
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("nestedjson: sequence element %d: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }
