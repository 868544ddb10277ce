package elicitation

import (
	"fmt"
	"reflect"

	"github.com/ggoodman/interview-go/survey"
)

// DecodeError reports that a value could not be rebuilt from an answer map.
// Err is usually a *survey.MissingPathError or *survey.TypeMismatchError.
type DecodeError struct {
	Path survey.Path
	Type reflect.Type
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("elicitation: decode %s at %q: %v", e.Type, e.Path.String(), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UnsupportedTypeError reports a Go type with no question kind.
type UnsupportedTypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("elicitation: unsupported type %s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("elicitation: unsupported type %s", e.Type)
}
