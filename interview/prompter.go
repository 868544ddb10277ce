package interview

import (
	"context"

	"github.com/ggoodman/interview-go/survey"
)

// LeafRequest asks a backend for one raw leaf answer.
type LeafRequest struct {
	// Path is the full path the answer will be stored at.
	Path   survey.Path
	Prompt string
	Help   string
	// Kind is one of the leaf kinds. Backends use it to choose an input
	// widget and parse the raw text.
	Kind survey.Kind
	// Suggestion is the value to pre-fill, or nil.
	Suggestion survey.Value
	// Problem is the message explaining why the previous attempt was
	// rejected. Empty on the first attempt.
	Problem string
	// Attempt counts from 1.
	Attempt int
}

// SelectionRequest asks a backend to pick from a menu of variant labels.
type SelectionRequest struct {
	Path    survey.Path
	Prompt  string
	Help    string
	Options []string
	// Multiple is true for AnyOf menus, where any subset (including the
	// same option more than once) may be returned in selection order.
	Multiple    bool
	Preselected []int
	Problem     string
	Attempt     int
}

// Prompter is the only thing a backend has to provide: one primitive for leaf
// answers and one for selections. Returning survey.ErrCancelled aborts the
// interview. Any other error is treated as an I/O failure.
type Prompter interface {
	AskLeaf(ctx context.Context, req LeafRequest) (survey.Value, error)
	AskSelection(ctx context.Context, req SelectionRequest) ([]int, error)
}

// Announcer is implemented by prompters that can show the prelude and
// epilogue of a definition.
type Announcer interface {
	Announce(ctx context.Context, text string) error
}

// PrompterFuncs adapts two plain functions to a Prompter.
type PrompterFuncs struct {
	Leaf      func(ctx context.Context, req LeafRequest) (survey.Value, error)
	Selection func(ctx context.Context, req SelectionRequest) ([]int, error)
}

func (f PrompterFuncs) AskLeaf(ctx context.Context, req LeafRequest) (survey.Value, error) {
	return f.Leaf(ctx, req)
}

func (f PrompterFuncs) AskSelection(ctx context.Context, req SelectionRequest) ([]int, error) {
	return f.Selection(ctx, req)
}
