package survey

import (
	"errors"
	"strings"
	"testing"
)

func sampleDefinition() *Definition {
	return NewDefinition(
		NewQuestion("name", "", Input{}),
		NewQuestion("age", "How old are you?", IntInput{Min: Ptr[int64](0), Max: Ptr[int64](120)}),
		NewQuestion("role", "", OneOf{Variants: []Variant{
			NewVariant("guest", nil),
			NewVariant("admin", AllOf{Questions: []Question{NewQuestion("level", "", Input{})}}),
		}}),
	)
}

func TestDefinition_ValidateAcceptsSample(t *testing.T) {
	if err := sampleDefinition().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDefinition_ValidateReportsEveryProblem(t *testing.T) {
	def := NewDefinition(
		NewQuestion("", "", Input{}),
		NewQuestion("dup", "", Input{}),
		NewQuestion("dup", "", Input{}),
		NewQuestion("n", "", IntInput{Min: Ptr[int64](5), Max: Ptr[int64](1)}),
		NewQuestion("pick", "", OneOf{Variants: []Variant{NewVariant("a", nil), NewVariant("a", nil)}, Default: Ptr(4)}),
		NewQuestion("bad_default", "", Input{}).Suggested(Int(3)),
		NewQuestion("list", "", List{Element: Confirm{}}),
	)
	err := def.Validate()
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{
		"empty path",
		"duplicate question path",
		"min exceeds max",
		"duplicate variant name",
		"default variant 4 out of range",
		"default has kind Int",
		"list element must be",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing %q in %q", want, msg)
		}
	}
}

func TestDefinition_WalkAddressesVariantFields(t *testing.T) {
	var seen []string
	sampleDefinition().Walk(func(full Path, _ *Question) bool {
		seen = append(seen, full.String())
		return true
	})
	want := []string{"name", "age", "role", "role.level"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Fatalf("walk = %v, want %v", seen, want)
	}
}

func TestDefinition_SetDefaultOnClone(t *testing.T) {
	def := sampleDefinition()
	c := def.Clone()
	if n := c.SetDefault(ParsePath("role.level"), Assume(String("root"))); n != 1 {
		t.Fatalf("updated %d questions, want 1", n)
	}
	if !c.Find(ParsePath("role.level")).Default.IsAssumed() {
		t.Fatalf("clone was not updated")
	}
	if !def.Find(ParsePath("role.level")).Default.IsNone() {
		t.Fatalf("default leaked into the source definition")
	}
}

func TestDefinition_SetVariantDefault(t *testing.T) {
	def := sampleDefinition()
	if !def.SetVariantDefault(ParsePath("role"), 1) {
		t.Fatalf("expected role to accept a variant default")
	}
	oo := def.Find(ParsePath("role")).Kind.(OneOf)
	if oo.Default == nil || *oo.Default != 1 {
		t.Fatalf("default = %v", oo.Default)
	}
	if def.SetVariantDefault(ParsePath("role"), 9) {
		t.Fatalf("out of range index must be rejected")
	}
	if def.SetVariantDefault(ParsePath("name"), 0) {
		t.Fatalf("non-OneOf question must be rejected")
	}
}

func contactDefinition() *Definition {
	return NewDefinition(
		NewQuestion("contact", "", OneOf{Variants: []Variant{
			NewVariant("none", nil),
			NewVariant("phone", Input{}),
			NewVariant("tags", AnyOf{Variants: []Variant{NewVariant("work", nil), NewVariant("home", nil)}}),
		}}),
	)
}

func TestDefinition_WalkVisitsLeafVariants(t *testing.T) {
	def := contactDefinition()
	var seen []string
	def.Walk(func(full Path, _ *Question) bool {
		seen = append(seen, full.String())
		return true
	})
	want := []string{"contact", "contact.phone", "contact.tags"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Fatalf("walk = %v, want %v", seen, want)
	}

	if n := def.SetDefault(ParsePath("contact.phone"), Suggest(String("555"))); n != 1 {
		t.Fatalf("updated %d questions, want 1", n)
	}
	phone := def.Questions[0].Kind.(OneOf).Variants[1]
	if v, _ := phone.Default.Suggestion(); v != String("555") {
		t.Fatalf("variant default = %v", phone.Default)
	}
	if v, _ := def.Find(ParsePath("contact.phone")).Default.Suggestion(); v != String("555") {
		t.Fatalf("find did not see the stored default")
	}

	if !def.SetVariantDefaults(ParsePath("contact.tags"), []int{1}) {
		t.Fatalf("expected the AnyOf inside the variant to accept defaults")
	}
	tags := def.Questions[0].Kind.(OneOf).Variants[2].Kind.(AnyOf)
	if len(tags.Defaults) != 1 || tags.Defaults[0] != 1 {
		t.Fatalf("defaults = %v", tags.Defaults)
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDefinition_ValidateVariantDefaults(t *testing.T) {
	def := contactDefinition()
	oo := def.Questions[0].Kind.(OneOf)
	oo.Variants[0].Default = Suggest(String("x"))
	oo.Variants[1].Default = Suggest(Int(1))
	err := def.Validate()
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition, got %v", err)
	}
	for _, want := range []string{"contact.none: unit variants cannot carry", "contact.phone: default has kind Int"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("missing %q in %q", want, err.Error())
		}
	}
}

func TestCheckBounds(t *testing.T) {
	k := IntInput{Min: Ptr[int64](0), Max: Ptr[int64](120)}
	if err := CheckBounds(k, Int(30)); err != nil {
		t.Fatalf("30 should pass: %v", err)
	}
	if err := CheckBounds(k, Int(121)); err == nil || err.Error() != "Value must be at most 120" {
		t.Fatalf("121: %v", err)
	}
	if err := CheckBounds(k, Int(-1)); err == nil || err.Error() != "Value must be at least 0" {
		t.Fatalf("-1: %v", err)
	}

	list := List{Element: FloatInput{Max: Ptr(1.0)}, MaxItems: Ptr(2)}
	err := CheckBounds(list, FloatList{0.5, 2})
	if err == nil || err.Error() != "Item 2: Value must be at most 1" {
		t.Fatalf("element bound not enforced: %v", err)
	}
	// Both the item message and the bound it wraps are user-facing problems.
	var p *Problem
	if !errors.As(err, &p) || !errors.As(errors.Unwrap(err), &p) {
		t.Fatalf("expected *Problem, got %T", err)
	}
	if err := CheckBounds(list, FloatList{0, 0, 0}); err == nil {
		t.Fatalf("max items not enforced")
	}
}

func TestExpectedValueKind(t *testing.T) {
	cases := []struct {
		kind Kind
		want ValueKind
		ok   bool
	}{
		{Input{}, KindString, true},
		{Masked{}, KindString, true},
		{IntInput{}, KindInt, true},
		{Confirm{}, KindBool, true},
		{List{Element: IntInput{}}, KindIntList, true},
		{OneOf{}, KindChosenVariant, true},
		{AnyOf{}, KindChosenVariants, true},
		{AllOf{}, KindInvalid, false},
		{Unit{}, KindInvalid, false},
	}
	for _, c := range cases {
		got, ok := ExpectedValueKind(c.kind)
		if got != c.want || ok != c.ok {
			t.Errorf("%s: got %s/%v, want %s/%v", c.kind.KindName(), got, ok, c.want, c.ok)
		}
	}
}
