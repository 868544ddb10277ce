package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joeshaw/envdecode"

	"github.com/ggoodman/interview-go/internal/logctx"
)

// Config holds process settings read from the environment. Flags override
// them per invocation.
type Config struct {
	// LogLevel is debug, info, warn or error. ENV: INTERVIEW_LOG_LEVEL
	LogLevel string `env:"INTERVIEW_LOG_LEVEL,default=info"`
	// MaxAttempts bounds re-asks per question; 0 is unlimited. ENV: INTERVIEW_MAX_ATTEMPTS
	MaxAttempts int `env:"INTERVIEW_MAX_ATTEMPTS,default=0"`
	// Output is the file results are written to, "-" for stdout. ENV: INTERVIEW_OUTPUT
	Output string `env:"INTERVIEW_OUTPUT,default=-"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if cfg.MaxAttempts < 0 {
		return cfg, fmt.Errorf("config: INTERVIEW_MAX_ATTEMPTS must not be negative")
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return logctx.Wrap(slog.New(h)), nil
}
