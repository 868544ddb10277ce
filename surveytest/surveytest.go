// Package surveytest provides a scripted Prompter for exercising interviews
// without any user interaction.
package surveytest

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/ggoodman/interview-go/interview"
	"github.com/ggoodman/interview-go/survey"
)

// MissingAnswerError is returned when the engine asks a question the script
// does not cover.
type MissingAnswerError struct {
	Path      survey.Path
	Selection bool
}

func (e *MissingAnswerError) Error() string {
	what := "answer"
	if e.Selection {
		what = "selection"
	}
	return fmt.Sprintf("surveytest: no scripted %s for %q", what, e.Path.String())
}

// Call records one request the engine made.
type Call struct {
	Leaf      *interview.LeafRequest
	Selection *interview.SelectionRequest
}

// Path returns the path of the recorded request.
func (c Call) Path() survey.Path {
	if c.Leaf != nil {
		return c.Leaf.Path
	}
	return c.Selection.Path
}

// Prompter answers from a script keyed by full path. Scripted values for one
// path are consumed in order, one per ask, so re-asks can be scripted by
// queueing several values. Configure it before use; it is safe to inspect
// from other goroutines while an interview runs.
type Prompter struct {
	mu         sync.Mutex
	leaves     map[survey.Path][]survey.Value
	selections map[survey.Path][][]int
	cancelAt   map[survey.Path]bool
	failAt     map[survey.Path]error
	fallback   bool
	calls      []Call
	announced  []string
}

// New returns an empty script. With no answers it is a zero-interaction stub:
// any question reaching the backend fails with MissingAnswerError.
func New() *Prompter {
	return &Prompter{
		leaves:     make(map[survey.Path][]survey.Value),
		selections: make(map[survey.Path][][]int),
		cancelAt:   make(map[survey.Path]bool),
		failAt:     make(map[survey.Path]error),
	}
}

// Answer queues leaf answers for path.
func (p *Prompter) Answer(path string, values ...survey.Value) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := survey.ParsePath(path)
	p.leaves[key] = append(p.leaves[key], values...)
	return p
}

// Select queues one selection for the menu at path.
func (p *Prompter) Select(path string, indices ...int) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := survey.ParsePath(path)
	p.selections[key] = append(p.selections[key], append([]int{}, indices...))
	return p
}

// CancelAt makes the question at path report survey.ErrCancelled.
func (p *Prompter) CancelAt(path string) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelAt[survey.ParsePath(path)] = true
	return p
}

// FailAt makes the question at path fail with err.
func (p *Prompter) FailAt(path string, err error) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failAt[survey.ParsePath(path)] = err
	return p
}

// WithSuggestionFallback answers unscripted questions by echoing the
// suggestion (or preselection) instead of failing.
func (p *Prompter) WithSuggestionFallback() *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fallback = true
	return p
}

func (p *Prompter) AskLeaf(ctx context.Context, req interview.LeafRequest) (survey.Value, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Call{Leaf: &req})
	if err := p.interrupt(ctx, req.Path); err != nil {
		return nil, err
	}
	if queue := p.leaves[req.Path]; len(queue) > 0 {
		p.leaves[req.Path] = queue[1:]
		return queue[0], nil
	}
	if p.fallback && req.Suggestion != nil {
		return req.Suggestion, nil
	}
	return nil, &MissingAnswerError{Path: req.Path}
}

func (p *Prompter) AskSelection(ctx context.Context, req interview.SelectionRequest) ([]int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	req.Preselected = slices.Clone(req.Preselected)
	p.calls = append(p.calls, Call{Selection: &req})
	if err := p.interrupt(ctx, req.Path); err != nil {
		return nil, err
	}
	if queue := p.selections[req.Path]; len(queue) > 0 {
		p.selections[req.Path] = queue[1:]
		return queue[0], nil
	}
	if p.fallback && (req.Multiple || len(req.Preselected) == 1) {
		return slices.Clone(req.Preselected), nil
	}
	return nil, &MissingAnswerError{Path: req.Path, Selection: true}
}

// Announce records prelude and epilogue text.
func (p *Prompter) Announce(ctx context.Context, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.announced = append(p.announced, text)
	return nil
}

func (p *Prompter) interrupt(ctx context.Context, path survey.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.cancelAt[path] {
		return survey.ErrCancelled
	}
	return p.failAt[path]
}

// Calls returns every request made so far, in order.
func (p *Prompter) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.calls)
}

// Asked returns how many times the question at path was asked.
func (p *Prompter) Asked(path string) int {
	key := survey.ParsePath(path)
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		if c.Path() == key {
			n++
		}
	}
	return n
}

// Announced returns every prelude or epilogue text shown.
func (p *Prompter) Announced() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.announced)
}

// Backend wraps p as an interview.Backend.
func Backend(p *Prompter, opts ...interview.Option) interview.Backend {
	return interview.NewBackend(p, opts...)
}
