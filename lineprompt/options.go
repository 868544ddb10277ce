package lineprompt

import (
	"io"
	"log/slog"

	"github.com/ggoodman/interview-go/interview"
)

// Option customizes a Prompter.
type Option func(*Prompter)

// WithIO sets the reader and writer for the prompter.
func WithIO(r io.Reader, w io.Writer) Option {
	return func(p *Prompter) {
		if r != nil {
			p.in = r
		}
		if w != nil {
			p.w = w
		}
	}
}

// WithReader overrides the input stream.
func WithReader(r io.Reader) Option {
	return func(p *Prompter) {
		if r != nil {
			p.in = r
		}
	}
}

// WithWriter overrides the output stream.
func WithWriter(w io.Writer) Option {
	return func(p *Prompter) {
		if w != nil {
			p.w = w
		}
	}
}

// WithLogger overrides the logger. NewBackend hands it to the engine too.
func WithLogger(l *slog.Logger) Option {
	return func(p *Prompter) {
		if l != nil {
			p.l = l
		}
	}
}

// WithInterviewOptions passes engine options through NewBackend.
func WithInterviewOptions(opts ...interview.Option) Option {
	return func(p *Prompter) {
		p.engineOpts = append(p.engineOpts, opts...)
	}
}
