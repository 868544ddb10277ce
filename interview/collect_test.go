package interview_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/ggoodman/interview-go/interview"
	"github.com/ggoodman/interview-go/survey"
	"github.com/ggoodman/interview-go/surveytest"
)

var quiet = interview.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func q(path string, kind survey.Kind) survey.Question {
	return survey.NewQuestion(path, "", kind)
}

func roleDefinition() *survey.Definition {
	return survey.NewDefinition(
		q("name", survey.Input{}),
		q("age", survey.IntInput{Min: survey.Ptr[int64](0), Max: survey.Ptr[int64](120)}),
		q("role", survey.OneOf{Variants: []survey.Variant{
			survey.NewVariant("guest", survey.Unit{}),
			survey.NewVariant("admin", survey.AllOf{Questions: []survey.Question{q("level", survey.Input{})}}),
		}}),
	)
}

func expect(t *testing.T, got *survey.Responses, want map[string]survey.Value) {
	t.Helper()
	if got.Len() != len(want) {
		t.Fatalf("got %d answers %v, want %d", got.Len(), got.Paths(), len(want))
	}
	for path, w := range want {
		v, ok := got.Get(survey.ParsePath(path))
		if !ok {
			t.Fatalf("missing answer at %q", path)
		}
		if !survey.Equal(v, w) {
			t.Fatalf("%s = %#v, want %#v", path, v, w)
		}
	}
}

func TestCollect_EndToEnd(t *testing.T) {
	p := surveytest.New().
		Answer("name", survey.String("Ada")).
		Answer("age", survey.Int(30)).
		Select("role", 1).
		Answer("role.level", survey.String("superuser"))

	got, err := interview.Collect(context.Background(), roleDefinition(), p, nil, quiet)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	expect(t, got, map[string]survey.Value{
		"name":                  survey.String("Ada"),
		"age":                   survey.Int(30),
		"role.selected_variant": survey.ChosenVariant(1),
		"role.level":            survey.String("superuser"),
	})
}

func TestCollect_AnyOfRepeatedVariant(t *testing.T) {
	def := survey.NewDefinition(q("picks", survey.AnyOf{Variants: []survey.Variant{
		survey.NewVariant("A", survey.Unit{}),
		survey.NewVariant("B", survey.AllOf{Questions: []survey.Question{q("x", survey.Input{})}}),
	}}))
	p := surveytest.New().
		Select("picks", 1, 1).
		Answer("picks.0.x", survey.String("p")).
		Answer("picks.1.x", survey.String("q"))

	got, err := interview.Collect(context.Background(), def, p, nil, quiet)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	expect(t, got, map[string]survey.Value{
		"picks.selected_variants":  survey.ChosenVariants{1, 1},
		"picks.0.selected_variant": survey.ChosenVariant(1),
		"picks.0.x":                survey.String("p"),
		"picks.1.selected_variant": survey.ChosenVariant(1),
		"picks.1.x":                survey.String("q"),
	})

	// Each item is independent: dropping item 0 leaves item 1 intact.
	item1 := got.FilterPrefix(survey.ParsePath("picks.1"))
	got.Remove(survey.ParsePath("picks.0.x"))
	if v, _ := item1.GetString(survey.ParsePath("x")); v != "q" {
		t.Fatalf("item 1 x = %q", v)
	}
	if v, _ := got.GetString(survey.ParsePath("picks.1.x")); v != "q" {
		t.Fatalf("item 1 corrupted: %q", v)
	}
}

func TestCollect_AssumedSkipsBackend(t *testing.T) {
	def := survey.NewDefinition(
		q("name", survey.Input{}).Assumed(survey.String("Ada")),
		q("age", survey.IntInput{Max: survey.Ptr[int64](10)}).Assumed(survey.Int(99)),
	)
	stub := surveytest.New()
	validated := false
	validate := func(survey.Value, *survey.Responses, survey.Path) error {
		validated = true
		return errors.New("never")
	}

	got, err := interview.Collect(context.Background(), def, stub, validate, quiet)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if n := len(stub.Calls()); n != 0 {
		t.Fatalf("backend was asked %d times", n)
	}
	if validated {
		t.Fatalf("assumed values must not be validated")
	}
	expect(t, got, map[string]survey.Value{
		"name": survey.String("Ada"),
		"age":  survey.Int(99),
	})
}

func TestCollect_SuggestedIsEditable(t *testing.T) {
	def := survey.NewDefinition(q("name", survey.Input{}).Suggested(survey.String("Ada")))
	p := surveytest.New().Answer("name", survey.String("Grace"))

	got, err := interview.Collect(context.Background(), def, p, nil, quiet)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if v, _ := got.GetString(survey.ParsePath("name")); v != "Grace" {
		t.Fatalf("name = %q, want Grace", v)
	}
	calls := p.Calls()
	if len(calls) != 1 || calls[0].Leaf.Suggestion != survey.String("Ada") {
		t.Fatalf("suggestion not offered: %+v", calls)
	}
}

func TestCollect_StaticDefaultOffered(t *testing.T) {
	def := survey.NewDefinition(q("port", survey.IntInput{Default: survey.Ptr[int64](8080)}))
	p := surveytest.New().WithSuggestionFallback()

	got, err := interview.Collect(context.Background(), def, p, nil, quiet)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if v, _ := got.GetInt(survey.ParsePath("port")); v != 8080 {
		t.Fatalf("port = %d", v)
	}
}

func TestCollect_OneOfExclusivity(t *testing.T) {
	p := surveytest.New().
		Answer("name", survey.String("Ada")).
		Answer("age", survey.Int(30)).
		Select("role", 0)

	got, err := interview.Collect(context.Background(), roleDefinition(), p, nil, quiet)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if v, _ := got.GetChosenVariant(survey.ParsePath("role.selected_variant")); v != 0 {
		t.Fatalf("selected = %d", v)
	}
	if got.Contains(survey.ParsePath("role.level")) {
		t.Fatalf("unselected variant's field is populated")
	}
	n := 0
	for p := range got.All() {
		if last, _ := p.Last(); last == survey.SelectedVariantKey {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("found %d selected_variant entries", n)
	}
}

func TestCollect_LeafAndNestedVariants(t *testing.T) {
	def := survey.NewDefinition(q("contact", survey.OneOf{Variants: []survey.Variant{
		survey.NewVariant("email", survey.Input{}),
		survey.NewVariant("pager", survey.OneOf{Variants: []survey.Variant{
			survey.NewVariant("numeric", survey.IntInput{}),
			survey.NewVariant("none", nil),
		}}),
	}}))

	p := surveytest.New().
		Select("contact", 1).
		Select("contact.pager", 0).
		Answer("contact.pager.numeric", survey.Int(5551234))

	got, err := interview.Collect(context.Background(), def, p, nil, quiet)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	expect(t, got, map[string]survey.Value{
		"contact.selected_variant":       survey.ChosenVariant(1),
		"contact.pager.selected_variant": survey.ChosenVariant(0),
		"contact.pager.numeric":          survey.Int(5551234),
	})
}

func TestCollect_ValidatorSeesPriorStateOnly(t *testing.T) {
	def := survey.NewDefinition(
		q("a", survey.IntInput{}),
		q("b", survey.IntInput{}),
	)
	var seenA []int64
	validate := func(v survey.Value, answers *survey.Responses, path survey.Path) error {
		if answers.Contains(path) {
			t.Errorf("validator for %s sees its own value", path)
		}
		if path.String() != "b" {
			return nil
		}
		a, err := answers.GetInt(survey.ParsePath("a"))
		if err != nil {
			t.Errorf("a not committed before b: %v", err)
		}
		seenA = append(seenA, a)
		if a+int64(v.(survey.Int)) > 10 {
			return fmt.Errorf("total must not exceed 10")
		}
		return nil
	}
	p := surveytest.New().
		Answer("a", survey.Int(4)).
		Answer("b", survey.Int(7), survey.Int(6))

	got, err := interview.Collect(context.Background(), def, p, validate, quiet)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if v, _ := got.GetInt(survey.ParsePath("b")); v != 6 {
		t.Fatalf("b = %d", v)
	}
	if !slices.Equal(seenA, []int64{4, 4}) {
		t.Fatalf("validator saw a = %v", seenA)
	}
	calls := p.Calls()
	last := calls[len(calls)-1].Leaf
	if last.Problem != "total must not exceed 10" || last.Attempt != 2 {
		t.Fatalf("re-ask request = %+v", last)
	}
}

func TestCollect_BoundsReask(t *testing.T) {
	p := surveytest.New().
		Answer("name", survey.String("Ada")).
		Answer("age", survey.Int(200), survey.Int(30)).
		Select("role", 0)

	validatorCalls := 0
	validate := func(v survey.Value, _ *survey.Responses, path survey.Path) error {
		if path.String() == "age" {
			validatorCalls++
		}
		return nil
	}
	got, err := interview.Collect(context.Background(), roleDefinition(), p, validate, quiet)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if v, _ := got.GetInt(survey.ParsePath("age")); v != 30 {
		t.Fatalf("age = %d", v)
	}
	if validatorCalls != 1 {
		t.Fatalf("validator ran %d times; bounds failures must not reach it", validatorCalls)
	}
	if p.Asked("age") != 2 {
		t.Fatalf("age asked %d times", p.Asked("age"))
	}
	second := p.Calls()[2].Leaf
	if second.Problem != "Value must be at most 120" {
		t.Fatalf("problem = %q", second.Problem)
	}
}

func TestCollect_ConfirmSkipsValidation(t *testing.T) {
	def := survey.NewDefinition(q("agree", survey.Confirm{}))
	p := surveytest.New().Answer("agree", survey.Bool(true))
	reject := func(survey.Value, *survey.Responses, survey.Path) error { return errors.New("no") }

	got, err := interview.Collect(context.Background(), def, p, reject, quiet)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if v, _ := got.GetBool(survey.ParsePath("agree")); !v {
		t.Fatalf("agree = %v", v)
	}
}

func TestCollect_AnyOfSelectionValidated(t *testing.T) {
	def := survey.NewDefinition(q("toppings", survey.AnyOf{
		Variants: []survey.Variant{
			survey.NewVariant("cheese", nil),
			survey.NewVariant("ham", nil),
			survey.NewVariant("olives", nil),
		},
		Defaults: []int{0},
	}))
	var paths []string
	budget := func(v survey.Value, _ *survey.Responses, path survey.Path) error {
		paths = append(paths, path.String())
		if sel, ok := v.(survey.ChosenVariants); ok && len(sel) > 2 {
			return errors.New("Pick at most two toppings")
		}
		return nil
	}
	p := surveytest.New().
		Select("toppings", 0, 1, 2).
		Select("toppings", 5).
		Select("toppings", 2, 0)

	got, err := interview.Collect(context.Background(), def, p, budget, quiet)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	expect(t, got, map[string]survey.Value{
		"toppings.selected_variants":  survey.ChosenVariants{2, 0},
		"toppings.0.selected_variant": survey.ChosenVariant(2),
		"toppings.1.selected_variant": survey.ChosenVariant(0),
	})
	// The out-of-range selection never reaches the validator.
	if !slices.Equal(paths, []string{"toppings", "toppings"}) {
		t.Fatalf("validator paths = %v", paths)
	}
	calls := p.Calls()
	if len(calls) != 3 {
		t.Fatalf("menu shown %d times", len(calls))
	}
	if calls[1].Selection.Problem != "Pick at most two toppings" {
		t.Fatalf("problem = %q", calls[1].Selection.Problem)
	}
	if calls[2].Selection.Problem != "Option 6 does not exist" {
		t.Fatalf("problem = %q", calls[2].Selection.Problem)
	}
	if !slices.Equal(calls[0].Selection.Preselected, []int{0}) || !calls[0].Selection.Multiple {
		t.Fatalf("first request = %+v", calls[0].Selection)
	}
}

func TestCollect_OneOfRejectsMultiplePicks(t *testing.T) {
	p := surveytest.New().
		Answer("name", survey.String("Ada")).
		Answer("age", survey.Int(30)).
		Select("role", 0, 1).
		Select("role", 0)

	if _, err := interview.Collect(context.Background(), roleDefinition(), p, nil, quiet); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if p.Asked("role") != 2 {
		t.Fatalf("role asked %d times", p.Asked("role"))
	}
}

func TestCollect_CancellationReturnsNothing(t *testing.T) {
	p := surveytest.New().
		Answer("name", survey.String("Ada")).
		CancelAt("age")

	got, err := interview.Collect(context.Background(), roleDefinition(), p, nil, quiet)
	if !interview.IsCancelled(err) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if got != nil {
		t.Fatalf("partial answers returned: %v", got.Paths())
	}
	if p.Asked("role") != 0 {
		t.Fatalf("questions asked after cancellation")
	}
}

func TestCollect_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := interview.Collect(ctx, roleDefinition(), surveytest.New(), nil, quiet)
	if !errors.Is(err, survey.ErrCancelled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if got != nil {
		t.Fatalf("answers returned after cancellation")
	}
}

func TestCollect_Exhaustion(t *testing.T) {
	def := survey.NewDefinition(q("code", survey.Input{}))
	p := surveytest.New().Answer("code", survey.String("a"), survey.String("b"), survey.String("c"))
	reject := func(survey.Value, *survey.Responses, survey.Path) error { return errors.New("wrong code") }

	_, err := interview.Collect(context.Background(), def, p, reject, quiet, interview.WithMaxAttempts(2))
	var ee *interview.ExhaustedError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if ee.Attempts != 2 || ee.Message != "wrong code" || ee.Path.String() != "code" {
		t.Fatalf("unexpected detail %+v", ee)
	}
	if !interview.IsExhausted(err) || interview.IsCancelled(err) {
		t.Fatalf("exhaustion misclassified: %v", err)
	}
}

func TestCollect_PromptFailureIsDistinct(t *testing.T) {
	boom := errors.New("tty closed")
	p := surveytest.New().FailAt("name", boom)

	_, err := interview.Collect(context.Background(), roleDefinition(), p, nil, quiet)
	var pe *interview.PromptError
	if !errors.As(err, &pe) || !errors.Is(err, boom) {
		t.Fatalf("expected PromptError wrapping boom, got %v", err)
	}
	if interview.IsCancelled(err) {
		t.Fatalf("I/O failure reported as cancellation")
	}
	if p.Asked("name") != 1 {
		t.Fatalf("failed prompt retried")
	}
}

func TestCollect_WrongValueKindIsTypeMismatch(t *testing.T) {
	def := survey.NewDefinition(q("name", survey.Input{}))
	p := surveytest.New().Answer("name", survey.Int(1))

	_, err := interview.Collect(context.Background(), def, p, nil, quiet)
	if !survey.IsTypeMismatch(err) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
}

func TestCollect_InvalidDefinition(t *testing.T) {
	def := survey.NewDefinition(q("pick", survey.OneOf{}))
	_, err := interview.Collect(context.Background(), def, surveytest.New(), nil, quiet)
	if !errors.Is(err, survey.ErrInvalidDefinition) {
		t.Fatalf("expected invalid definition, got %v", err)
	}
}

func TestCollect_AnnouncesPreludeAndEpilogue(t *testing.T) {
	def := survey.NewDefinition(q("name", survey.Input{}))
	def.Prelude = "Welcome"
	def.Epilogue = "Thanks"
	p := surveytest.New().Answer("name", survey.String("Ada"))

	b := surveytest.Backend(p, quiet)
	if _, err := b.Collect(context.Background(), def, nil); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := p.Announced(); !slices.Equal(got, []string{"Welcome", "Thanks"}) {
		t.Fatalf("announced %v", got)
	}
}

func TestChainValidators(t *testing.T) {
	var order []string
	mk := func(name string, err error) interview.Validator {
		return func(survey.Value, *survey.Responses, survey.Path) error {
			order = append(order, name)
			return err
		}
	}
	v := interview.ChainValidators(mk("a", nil), nil, mk("b", errors.New("bad")), mk("c", nil))
	err := v(survey.String("x"), survey.NewResponses(), survey.ParsePath("f"))
	if err == nil || err.Error() != "bad" {
		t.Fatalf("err = %v", err)
	}
	if !slices.Equal(order, []string{"a", "b"}) {
		t.Fatalf("order = %v", order)
	}
}
