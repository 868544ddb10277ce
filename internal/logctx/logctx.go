package logctx

import (
	"context"
	"log/slog"
)

// Handler decorates records with the interview and question carried by the
// context.
type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := ctx.Value(interviewDataKey{}).(*InterviewData); ok {
		r.AddAttrs(slog.Group("interview",
			slog.String("id", id.InterviewID),
			slog.Int("questions", id.Questions),
		))
	}

	if qd, ok := ctx.Value(questionDataKey{}).(*QuestionData); ok {
		r.AddAttrs(slog.Group("question",
			slog.String("path", qd.Path),
			slog.String("kind", qd.Kind),
		))
	}

	return h.Handler.Handle(ctx, r)
}

func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Handler{h.Handler.WithAttrs(attrs)}
}

func (h Handler) WithGroup(name string) slog.Handler {
	return Handler{h.Handler.WithGroup(name)}
}

// Wrap returns l with its handler decorated, unless it already is.
func Wrap(l *slog.Logger) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	if _, ok := l.Handler().(Handler); ok {
		return l
	}
	return slog.New(Handler{l.Handler()})
}

type interviewDataKey struct{}

type InterviewData struct {
	InterviewID string
	Questions   int
}

func WithInterviewData(ctx context.Context, data *InterviewData) context.Context {
	return context.WithValue(ctx, interviewDataKey{}, data)
}

// InterviewFrom returns the interview data stored in ctx, if any.
func InterviewFrom(ctx context.Context) (*InterviewData, bool) {
	d, ok := ctx.Value(interviewDataKey{}).(*InterviewData)
	return d, ok
}

type questionDataKey struct{}

type QuestionData struct {
	Path string
	Kind string
}

func WithQuestionData(ctx context.Context, data *QuestionData) context.Context {
	return context.WithValue(ctx, questionDataKey{}, data)
}
