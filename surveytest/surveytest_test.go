package surveytest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ggoodman/interview-go/interview"
	"github.com/ggoodman/interview-go/survey"
	"github.com/ggoodman/interview-go/surveytest"
)

func TestPrompter_ConsumesInOrder(t *testing.T) {
	p := surveytest.New().Answer("age", survey.Int(1), survey.Int(2))
	ctx := context.Background()
	req := interview.LeafRequest{Path: survey.PathOf("age"), Kind: survey.IntInput{}}

	for _, want := range []survey.Value{survey.Int(1), survey.Int(2)} {
		got, err := p.AskLeaf(ctx, req)
		if err != nil || got != want {
			t.Fatalf("got %v, %v; want %v", got, err, want)
		}
	}
	var missing *surveytest.MissingAnswerError
	if _, err := p.AskLeaf(ctx, req); !errors.As(err, &missing) || missing.Selection {
		t.Fatalf("expected missing answer, got %v", err)
	}
	if n := p.Asked("age"); n != 3 {
		t.Fatalf("asked %d times", n)
	}
}

func TestPrompter_Fallback(t *testing.T) {
	p := surveytest.New().WithSuggestionFallback()
	ctx := context.Background()

	v, err := p.AskLeaf(ctx, interview.LeafRequest{Path: survey.PathOf("name"), Suggestion: survey.String("Ada")})
	if err != nil || v != survey.String("Ada") {
		t.Fatalf("leaf fallback = %v, %v", v, err)
	}
	sel, err := p.AskSelection(ctx, interview.SelectionRequest{Path: survey.PathOf("role"), Options: []string{"a", "b"}, Preselected: []int{1}})
	if err != nil || len(sel) != 1 || sel[0] != 1 {
		t.Fatalf("selection fallback = %v, %v", sel, err)
	}
	// A single-choice menu with no preselection cannot be answered.
	if _, err := p.AskSelection(ctx, interview.SelectionRequest{Path: survey.PathOf("size"), Options: []string{"s"}}); err == nil {
		t.Fatalf("expected missing selection")
	}
}

func TestPrompter_Interrupts(t *testing.T) {
	boom := errors.New("boom")
	p := surveytest.New().CancelAt("a").FailAt("b", boom)
	ctx := context.Background()

	if _, err := p.AskLeaf(ctx, interview.LeafRequest{Path: survey.PathOf("a")}); !errors.Is(err, survey.ErrCancelled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if _, err := p.AskSelection(ctx, interview.SelectionRequest{Path: survey.PathOf("b")}); !errors.Is(err, boom) {
		t.Fatalf("expected failure, got %v", err)
	}

	done, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := p.AskLeaf(done, interview.LeafRequest{Path: survey.PathOf("c")}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if len(p.Calls()) != 3 {
		t.Fatalf("calls = %d", len(p.Calls()))
	}
}

func TestBackend_RecordsAnnouncements(t *testing.T) {
	def := survey.NewDefinition(survey.NewQuestion("name", "", survey.Input{}))
	def.Prelude, def.Epilogue = "hello", "bye"

	p := surveytest.New().Answer("name", survey.String("Ada"))
	got, err := surveytest.Backend(p).Collect(context.Background(), def, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if v, _ := got.GetString(survey.PathOf("name")); v != "Ada" {
		t.Fatalf("name = %q", v)
	}
	if a := p.Announced(); len(a) != 2 || a[0] != "hello" || a[1] != "bye" {
		t.Fatalf("announced = %v", a)
	}
}
