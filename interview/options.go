package interview

import "log/slog"

type config struct {
	log         *slog.Logger
	maxAttempts int
	id          string
}

// Option customizes Collect and NewBackend.
type Option func(*config)

// WithLogger overrides the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMaxAttempts bounds how many times one question is asked before Collect
// gives up with an ExhaustedError. Zero, the default, means unlimited.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxAttempts = n
		}
	}
}

// WithInterviewID sets the ID attached to log records. By default a random
// UUID is generated per interview.
func WithInterviewID(id string) Option {
	return func(c *config) {
		if id != "" {
			c.id = id
		}
	}
}

func newConfig(opts []Option) config {
	c := config{log: slog.Default()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
