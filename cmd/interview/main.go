// Command interview runs survey files in the terminal and renders them as
// HTML forms or JSON Schema.
//
//	interview run pizza.yaml
//	interview html -watch -o pizza.html pizza.yaml
//	interview schema pizza.yaml
//
// Settings come from INTERVIEW_LOG_LEVEL, INTERVIEW_MAX_ATTEMPTS and
// INTERVIEW_OUTPUT; flags override them.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/goccy/go-json"

	"github.com/ggoodman/interview-go/document"
	"github.com/ggoodman/interview-go/interview"
	"github.com/ggoodman/interview-go/lineprompt"
	"github.com/ggoodman/interview-go/surveyfile"
	"github.com/ggoodman/interview-go/surveyschema"
)

const usage = `usage: interview <command> [flags] <file>

commands:
  run     ask the questions on the terminal and print the answers as JSON
          matching the output of schema
  html    render the questions as an HTML form
  schema  print the JSON Schema of the answers
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil && !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "interview: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps the outcome of run to the process status: 130 when the user
// cancelled, 2 for usage errors, 3 when an answer was rejected too often.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case interview.IsCancelled(err):
		return 130
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return 2
	case interview.IsExhausted(err):
		return 3
	}
	return 1
}

type command struct {
	name        string
	file        string
	output      string
	logLevel    string
	maxAttempts int
	watch       bool
	title       string
	fingerprint bool
	typed       bool
}

func parseCommand(args []string, cfg Config, stderr io.Writer) (*command, error) {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return nil, errUsage
	}
	cmd := &command{name: args[0]}
	fs := flag.NewFlagSet("interview "+cmd.name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cmd.output, "o", cfg.Output, "write results to `file` (- for stdout)")
	fs.StringVar(&cmd.logLevel, "log-level", cfg.LogLevel, "log `level`: debug, info, warn or error")

	switch cmd.name {
	case "run":
		fs.IntVar(&cmd.maxAttempts, "max-attempts", cfg.MaxAttempts, "give up after `n` rejected answers to one question (0 is unlimited)")
		fs.BoolVar(&cmd.typed, "typed", false, "print the answer map keyed by path, with answer types, instead of nested JSON")
	case "html":
		fs.BoolVar(&cmd.watch, "watch", false, "render again whenever the file changes")
		fs.StringVar(&cmd.title, "title", "", "document `title`")
	case "schema":
		fs.BoolVar(&cmd.fingerprint, "fingerprint", false, "print only the schema fingerprint")
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd.name, usage)
		return nil, errUsage
	}
	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "%s: expected exactly one survey file\n", fs.Name())
		return nil, errUsage
	}
	cmd.file = fs.Arg(0)
	return cmd, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cmd, err := parseCommand(args, cfg, stderr)
	if err != nil {
		return err
	}
	log, err := newLogger(stderr, cmd.logLevel)
	if err != nil {
		return err
	}

	switch cmd.name {
	case "run":
		return runInterview(ctx, cmd, log, stdin, stdout)
	case "html":
		if cmd.watch {
			return watchFile(ctx, cmd.file, log, func() error {
				return renderHTML(cmd, stdout)
			})
		}
		return renderHTML(cmd, stdout)
	default:
		return exportSchema(cmd, stdout)
	}
}

func runInterview(ctx context.Context, cmd *command, log *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	def, err := surveyfile.Load(cmd.file)
	if err != nil {
		return err
	}
	backend := lineprompt.NewBackend(
		lineprompt.WithIO(stdin, stdout),
		lineprompt.WithLogger(log),
		lineprompt.WithInterviewOptions(interview.WithMaxAttempts(cmd.maxAttempts)),
	)
	answers, err := backend.Collect(ctx, def, nil)
	if err != nil {
		return err
	}
	var doc any = answers
	if !cmd.typed {
		if doc, err = answers.Nested(); err != nil {
			return err
		}
	}
	return writeOutput(cmd.output, stdout, func(w io.Writer) error {
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	})
}

func renderHTML(cmd *command, stdout io.Writer) error {
	def, err := surveyfile.Load(cmd.file)
	if err != nil {
		return err
	}
	var opts []document.Option
	if cmd.title != "" {
		opts = append(opts, document.WithTitle(cmd.title))
	}
	return writeOutput(cmd.output, stdout, func(w io.Writer) error {
		return document.RenderHTML(w, def, opts...)
	})
}

func exportSchema(cmd *command, stdout io.Writer) error {
	def, err := surveyfile.Load(cmd.file)
	if err != nil {
		return err
	}
	if cmd.fingerprint {
		fp, err := surveyschema.Fingerprint(def)
		if err != nil {
			return err
		}
		return writeOutput(cmd.output, stdout, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, fp)
			return err
		})
	}
	s, err := surveyschema.Export(def)
	if err != nil {
		return err
	}
	return writeOutput(cmd.output, stdout, func(w io.Writer) error {
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	})
}

// writeOutput renders into memory first so a failed render leaves an
// existing output file untouched.
func writeOutput(path string, stdout io.Writer, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if path == "" || path == "-" {
		_, err := buf.WriteTo(stdout)
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
