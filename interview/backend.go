package interview

import (
	"context"

	"github.com/ggoodman/interview-go/survey"
)

// Backend is a complete presentation surface: it takes a definition and a
// validator and produces the answer map.
type Backend interface {
	Collect(ctx context.Context, def *survey.Definition, validate Validator) (*survey.Responses, error)
}

// BackendFunc adapts a function to a Backend.
type BackendFunc func(ctx context.Context, def *survey.Definition, validate Validator) (*survey.Responses, error)

func (f BackendFunc) Collect(ctx context.Context, def *survey.Definition, validate Validator) (*survey.Responses, error) {
	return f(ctx, def, validate)
}

// NewBackend returns a Backend that drives Collect with p.
func NewBackend(p Prompter, opts ...Option) Backend {
	return &prompterBackend{p: p, opts: opts}
}

type prompterBackend struct {
	p    Prompter
	opts []Option
}

func (b *prompterBackend) Collect(ctx context.Context, def *survey.Definition, validate Validator) (*survey.Responses, error) {
	return Collect(ctx, def, b.p, validate, b.opts...)
}
