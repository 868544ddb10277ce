package survey

import (
	"errors"
	"fmt"
)

// ErrCancelled is the terminal outcome of an interview the user aborted. It
// is not a fault: no value was produced and no partial answers survive.
var ErrCancelled = errors.New("survey: cancelled by user")

// ErrInvalidDefinition wraps every structural problem reported by
// Definition.Validate.
var ErrInvalidDefinition = errors.New("survey: invalid definition")

// MissingPathError indicates that no answer is stored at Path. Depending on
// the caller this is either a bug (incomplete traversal) or an optional field
// that was correctly left out.
type MissingPathError struct {
	Path Path
}

func (e *MissingPathError) Error() string {
	return fmt.Sprintf("survey: missing response for path %q", e.Path.String())
}

// TypeMismatchError indicates that the answer stored at Path has a different
// kind than the one requested. It signals a programming error.
type TypeMismatchError struct {
	Path     Path
	Expected ValueKind
	Actual   ValueKind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("survey: type mismatch at path %q: expected %s, got %s", e.Path.String(), e.Expected, e.Actual)
}

// IsMissingPath reports whether err (or anything it wraps) is a MissingPathError.
func IsMissingPath(err error) bool {
	var mp *MissingPathError
	return errors.As(err, &mp)
}

// IsTypeMismatch reports whether err (or anything it wraps) is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var tm *TypeMismatchError
	return errors.As(err, &tm)
}

// Problem is a rejection message addressed to the person answering. Its text
// is shown as written, so unlike other errors it reads as a sentence.
type Problem struct {
	err error
}

// Problemf formats a Problem. A %w verb keeps the wrapped error reachable
// through errors.Is and errors.As.
func Problemf(format string, args ...any) error {
	return &Problem{err: fmt.Errorf(format, args...)}
}

func (p *Problem) Error() string { return p.err.Error() }

func (p *Problem) Unwrap() error { return errors.Unwrap(p.err) }
