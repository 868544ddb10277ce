package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ggoodman/interview-go/internal/logctx"
	"github.com/ggoodman/interview-go/survey"
)

// Collect walks def depth-first, asking every question through p, and
// returns the completed answer map. Assumed questions are recorded without
// asking. Rejected leaf answers and AnyOf selections are asked again with the
// rejection message. On cancellation no answers are returned and the error
// satisfies errors.Is(err, survey.ErrCancelled).
func Collect(ctx context.Context, def *survey.Definition, p Prompter, validate Validator, opts ...Option) (*survey.Responses, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", survey.ErrInvalidDefinition)
	}
	if p == nil {
		return nil, errors.New("interview: nil prompter")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if validate == nil {
		validate = NoValidation
	}

	cfg := newConfig(opts)
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	count := 0
	def.Walk(func(survey.Path, *survey.Question) bool { count++; return true })

	ctx = logctx.WithInterviewData(ctx, &logctx.InterviewData{InterviewID: cfg.id, Questions: count})
	e := &engine{
		p:           p,
		validate:    validate,
		log:         logctx.Wrap(cfg.log),
		maxAttempts: cfg.maxAttempts,
		answers:     survey.NewResponses(),
	}

	e.log.InfoContext(ctx, "interview.start")
	if err := e.announce(ctx, def.Prelude); err != nil {
		return nil, e.finish(ctx, err)
	}
	if err := e.questions(ctx, survey.EmptyPath(), def.Questions); err != nil {
		return nil, e.finish(ctx, err)
	}
	if err := e.announce(ctx, def.Epilogue); err != nil {
		return nil, e.finish(ctx, err)
	}
	e.log.InfoContext(ctx, "interview.finish", slog.Int("answers", e.answers.Len()))
	return e.answers, nil
}

type engine struct {
	p           Prompter
	validate    Validator
	log         *slog.Logger
	maxAttempts int
	answers     *survey.Responses
}

func (e *engine) finish(ctx context.Context, err error) error {
	if IsCancelled(err) {
		e.log.InfoContext(ctx, "interview.cancelled")
	} else {
		e.log.ErrorContext(ctx, "interview.failed", slog.String("err", err.Error()))
	}
	return err
}

func (e *engine) announce(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	a, ok := e.p.(Announcer)
	if !ok {
		return nil
	}
	if err := a.Announce(ctx, text); err != nil {
		return e.promptErr(ctx, survey.EmptyPath(), err)
	}
	return nil
}

// promptErr classifies an error returned by the prompter.
func (e *engine) promptErr(ctx context.Context, path survey.Path, err error) error {
	if IsCancelled(err) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", survey.ErrCancelled, ctxErr)
	}
	return &PromptError{Path: path, Err: err}
}

func (e *engine) questions(ctx context.Context, prefix survey.Path, qs []survey.Question) error {
	for _, q := range qs {
		if err := e.question(ctx, prefix, q); err != nil {
			return err
		}
	}
	return nil
}

func (e *engine) question(ctx context.Context, prefix survey.Path, q survey.Question) error {
	full := prefix.Join(q.Path)

	if q.Default.IsAssumed() {
		v, _ := q.Default.Value()
		e.answers.Insert(full, survey.CloneValue(v))
		e.log.DebugContext(ctx, "question.assumed", slog.String("path", full.String()))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", survey.ErrCancelled, err)
	}

	prompt := survey.DisplayPrompt(q, full)
	ctx = logctx.WithQuestionData(ctx, &logctx.QuestionData{Path: full.String(), Kind: q.Kind.KindName()})

	switch k := q.Kind.(type) {
	case survey.Unit:
		return nil
	case survey.AllOf:
		return e.questions(ctx, full, k.Questions)
	case survey.OneOf:
		return e.oneOf(ctx, full, prompt, q.Help, k)
	case survey.AnyOf:
		return e.anyOf(ctx, full, prompt, q.Help, k)
	default:
		return e.leaf(ctx, full, prompt, q)
	}
}

func (e *engine) leaf(ctx context.Context, full survey.Path, prompt string, q survey.Question) error {
	suggestion, ok := q.Default.Suggestion()
	if !ok {
		suggestion = survey.StaticDefault(q.Kind)
	}
	want, _ := survey.ExpectedValueKind(q.Kind)
	_, isConfirm := q.Kind.(survey.Confirm)

	problem := ""
	for attempt := 1; ; attempt++ {
		e.log.DebugContext(ctx, "question.ask", slog.Int("attempt", attempt))
		v, err := e.p.AskLeaf(ctx, LeafRequest{
			Path:       full,
			Prompt:     prompt,
			Help:       q.Help,
			Kind:       q.Kind,
			Suggestion: suggestion,
			Problem:    problem,
			Attempt:    attempt,
		})
		if err != nil {
			return e.promptErr(ctx, full, err)
		}
		if survey.KindOf(v) != want {
			return &survey.TypeMismatchError{Path: full, Expected: want, Actual: survey.KindOf(v)}
		}

		msg := ""
		if err := survey.CheckBounds(q.Kind, v); err != nil {
			msg = err.Error()
		} else if !isConfirm {
			// The validator must see the state before this question.
			e.answers.Remove(full)
			if err := e.validate(v, e.answers, full); err != nil {
				msg = err.Error()
			}
		}
		if msg == "" {
			e.answers.Insert(full, v)
			e.log.DebugContext(ctx, "question.answered")
			return nil
		}

		e.log.DebugContext(ctx, "question.rejected", slog.String("reason", msg))
		if e.maxAttempts > 0 && attempt >= e.maxAttempts {
			return &ExhaustedError{Path: full, Attempts: attempt, Message: msg}
		}
		problem = msg
	}
}

func (e *engine) oneOf(ctx context.Context, full survey.Path, prompt, help string, k survey.OneOf) error {
	var pre []int
	if k.Default != nil {
		pre = []int{*k.Default}
	}
	picked, err := e.selection(ctx, SelectionRequest{
		Path:        full,
		Prompt:      prompt,
		Help:        help,
		Options:     optionLabels(k.Variants),
		Preselected: pre,
	}, func(sel []int) string {
		if len(sel) != 1 {
			return "Choose exactly one option"
		}
		return ""
	})
	if err != nil {
		return err
	}

	idx := picked[0]
	e.answers.Insert(full.Child(survey.SelectedVariantKey), survey.ChosenVariant(idx))
	return e.followUp(ctx, full, k.Variants[idx])
}

func (e *engine) anyOf(ctx context.Context, full survey.Path, prompt, help string, k survey.AnyOf) error {
	selPath := full.Child(survey.SelectedVariantsKey)
	picked, err := e.selection(ctx, SelectionRequest{
		Path:        full,
		Prompt:      prompt,
		Help:        help,
		Options:     optionLabels(k.Variants),
		Multiple:    true,
		Preselected: append([]int(nil), k.Defaults...),
	}, func(sel []int) string {
		e.answers.Remove(selPath)
		if err := e.validate(survey.ChosenVariants(sel), e.answers, full); err != nil {
			return err.Error()
		}
		return ""
	})
	if err != nil {
		return err
	}

	e.answers.Insert(selPath, survey.ChosenVariants(picked))
	for item, idx := range picked {
		itemPath := full.ChildIndex(item)
		e.answers.Insert(itemPath.Child(survey.SelectedVariantKey), survey.ChosenVariant(idx))
		if err := e.followUp(ctx, itemPath, k.Variants[idx]); err != nil {
			return err
		}
	}
	return nil
}

// selection asks until the prompter returns in-range indices that check
// accepts. check returns the message to show on rejection.
func (e *engine) selection(ctx context.Context, req SelectionRequest, check func([]int) string) ([]int, error) {
	for attempt := 1; ; attempt++ {
		req.Attempt = attempt
		e.log.DebugContext(ctx, "question.ask", slog.Int("attempt", attempt))
		sel, err := e.p.AskSelection(ctx, req)
		if err != nil {
			return nil, e.promptErr(ctx, req.Path, err)
		}

		msg := ""
		for _, i := range sel {
			if i < 0 || i >= len(req.Options) {
				e.log.WarnContext(ctx, "question.selection_out_of_range", slog.Int("index", i))
				msg = fmt.Sprintf("Option %d does not exist", i+1)
				break
			}
		}
		if msg == "" {
			msg = check(sel)
		}
		if msg == "" {
			e.log.DebugContext(ctx, "question.answered", slog.Any("selection", sel))
			return append([]int(nil), sel...), nil
		}

		e.log.DebugContext(ctx, "question.rejected", slog.String("reason", msg))
		if e.maxAttempts > 0 && attempt >= e.maxAttempts {
			return nil, &ExhaustedError{Path: req.Path, Attempts: attempt, Message: msg}
		}
		req.Problem = msg
	}
}

// followUp asks the questions a chosen variant carries. AllOf fields are
// addressed directly below prefix; any other non-unit kind is the variant's
// single follow-up question.
func (e *engine) followUp(ctx context.Context, prefix survey.Path, v survey.Variant) error {
	if all, ok := v.Kind.(survey.AllOf); ok {
		return e.questions(ctx, prefix, all.Questions)
	}
	q, ok := v.FollowUp()
	if !ok {
		return nil
	}
	return e.question(ctx, prefix, q)
}

func optionLabels(vs []survey.Variant) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.DisplayName()
	}
	return out
}
