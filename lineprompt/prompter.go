package lineprompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ggoodman/interview-go/interview"
	"github.com/ggoodman/interview-go/survey"
)

// QuitCommand typed on its own line cancels the interview.
const QuitCommand = ":q"

// Prompter asks questions one line at a time. It implements
// interview.Prompter and interview.Announcer. By default it reads os.Stdin
// and writes os.Stdout.
type Prompter struct {
	in io.Reader
	w  io.Writer
	l  *slog.Logger

	engineOpts []interview.Option

	once    sync.Once
	r       *bufio.Reader
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

// New constructs a Prompter with defaults and applies options.
func New(opts ...Option) *Prompter {
	p := &Prompter{in: os.Stdin, w: os.Stdout, l: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewBackend returns an interview.Backend prompting through a new Prompter.
func NewBackend(opts ...Option) interview.Backend {
	p := New(opts...)
	eo := append([]interview.Option{interview.WithLogger(p.l)}, p.engineOpts...)
	return interview.NewBackend(p, eo...)
}

// Announce prints a prelude or epilogue.
func (p *Prompter) Announce(ctx context.Context, text string) error {
	_, err := fmt.Fprintf(p.w, "%s\n\n", strings.TrimRight(text, "\n"))
	return err
}

// AskLeaf prompts until the line parses as the kind's value. Input that
// cannot be parsed is re-asked here; the engine only sees typed values.
func (p *Prompter) AskLeaf(ctx context.Context, req interview.LeafRequest) (survey.Value, error) {
	if !survey.IsLeaf(req.Kind) {
		return nil, fmt.Errorf("lineprompt: cannot ask a %s question", req.Kind.KindName())
	}
	if req.Problem != "" {
		if err := p.problem(req.Problem); err != nil {
			return nil, err
		}
	}
	if req.Help != "" && req.Attempt <= 1 {
		if _, err := fmt.Fprintf(p.w, "  %s\n", req.Help); err != nil {
			return nil, err
		}
	}
	for {
		if _, err := fmt.Fprint(p.w, leafPrompt(req)); err != nil {
			return nil, err
		}
		text, err := p.readAnswer(ctx, req.Kind)
		if err != nil {
			return nil, err
		}
		v, perr := parseLeaf(req.Kind, text, req.Suggestion)
		if perr == nil {
			return v, nil
		}
		p.l.DebugContext(ctx, "lineprompt.unparsable", slog.String("path", req.Path.String()), slog.String("reason", perr.Error()))
		if err := p.problem(perr.Error()); err != nil {
			return nil, err
		}
	}
}

// AskSelection prints a numbered menu and reads the chosen numbers.
func (p *Prompter) AskSelection(ctx context.Context, req interview.SelectionRequest) ([]int, error) {
	if req.Problem != "" {
		if err := p.problem(req.Problem); err != nil {
			return nil, err
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "? %s\n", req.Prompt)
	if req.Help != "" && req.Attempt <= 1 {
		fmt.Fprintf(&b, "  %s\n", req.Help)
	}
	for i, opt := range req.Options {
		fmt.Fprintf(&b, "  %d) %s\n", i+1, opt)
	}
	if _, err := io.WriteString(p.w, b.String()); err != nil {
		return nil, err
	}

	for {
		if _, err := fmt.Fprint(p.w, menuPrompt(req)); err != nil {
			return nil, err
		}
		line, err := p.readLine(ctx)
		if err != nil {
			return nil, err
		}
		sel, perr := parseSelection(line, req)
		if perr == nil {
			return sel, nil
		}
		if err := p.problem(perr.Error()); err != nil {
			return nil, err
		}
	}
}

func (p *Prompter) problem(msg string) error {
	_, err := fmt.Fprintf(p.w, "! %s\n", msg)
	return err
}

// readAnswer reads one line, or for Multiline questions every line up to a
// lone ".". An empty first line ends a multiline answer immediately so the
// suggestion can be accepted.
func (p *Prompter) readAnswer(ctx context.Context, k survey.Kind) (string, error) {
	first, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	if _, ok := k.(survey.Multiline); !ok || first == "" {
		return first, nil
	}
	var lines []string
	for line := first; line != "."; {
		lines = append(lines, line)
		if line, err = p.readLine(ctx); err != nil {
			return "", err
		}
	}
	return strings.Join(lines, "\n"), nil
}

// readLine returns the next input line without its terminator. A read that
// outlives a cancelled context is picked up by the next call.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	p.once.Do(func() { p.r = bufio.NewReader(p.in) })
	if p.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := p.r.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
		p.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", survey.ErrCancelled, ctx.Err())
	case res := <-p.pending:
		p.pending = nil
		line := strings.TrimRight(res.line, "\r\n")
		if res.err != nil {
			if !errors.Is(res.err, io.EOF) {
				return "", res.err
			}
			if line == "" {
				return "", survey.ErrCancelled
			}
		}
		if strings.TrimSpace(line) == QuitCommand {
			return "", survey.ErrCancelled
		}
		return line, nil
	}
}
