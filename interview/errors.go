package interview

import (
	"errors"
	"fmt"

	"github.com/ggoodman/interview-go/survey"
)

// ExhaustedError is returned when a question was rejected on every one of the
// configured maximum number of attempts.
type ExhaustedError struct {
	Path     survey.Path
	Attempts int
	// Message is the last rejection shown to the user.
	Message string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("interview: %q rejected %d times: %s", e.Path.String(), e.Attempts, e.Message)
}

// PromptError wraps a backend I/O failure. The engine never retries these.
type PromptError struct {
	Path survey.Path
	Err  error
}

func (e *PromptError) Error() string {
	return fmt.Sprintf("interview: prompt for %q failed: %v", e.Path.String(), e.Err)
}

func (e *PromptError) Unwrap() error { return e.Err }

// IsCancelled reports whether err means the user aborted the interview.
func IsCancelled(err error) bool {
	return errors.Is(err, survey.ErrCancelled)
}

// IsExhausted reports whether err is an ExhaustedError.
func IsExhausted(err error) bool {
	var ee *ExhaustedError
	return errors.As(err, &ee)
}
