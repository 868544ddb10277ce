package survey

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goccy/go-json"
)

func TestResponses_InsertGetRemove(t *testing.T) {
	r := NewResponses()
	name := ParsePath("name")
	r.Insert(name, String("Ada"))
	r.Insert(name, String("Grace"))
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}
	if v, _ := r.GetString(name); v != "Grace" {
		t.Fatalf("insert must overwrite, got %q", v)
	}
	if v, ok := r.Remove(name); !ok || v != String("Grace") {
		t.Fatalf("remove = %v, %v", v, ok)
	}
	if r.Contains(name) {
		t.Fatalf("value still present after remove")
	}
}

func TestResponses_ZeroValueUsable(t *testing.T) {
	var r Responses
	r.Insert(ParsePath("a"), Int(1))
	if !r.Contains(ParsePath("a")) {
		t.Fatalf("zero Responses should accept inserts")
	}
}

func TestResponses_TypedGettersDistinguishErrors(t *testing.T) {
	r := NewResponses()
	r.Insert(ParsePath("age"), Int(30))

	_, err := r.GetString(ParsePath("age"))
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if tm.Expected != KindString || tm.Actual != KindInt {
		t.Fatalf("unexpected mismatch detail: %+v", tm)
	}

	_, err = r.GetInt(ParsePath("missing"))
	if !IsMissingPath(err) || IsTypeMismatch(err) {
		t.Fatalf("expected missing path, got %v", err)
	}
}

func TestResponses_FilterPrefix(t *testing.T) {
	r := NewResponses()
	r.Insert(ParsePath("address.street"), String("Main"))
	r.Insert(ParsePath("address.city"), String("Paris"))
	r.Insert(ParsePath("addressee"), String("Bob"))
	r.Insert(ParsePath("address"), String("whole"))

	sub := r.FilterPrefix(ParsePath("address"))
	if sub.Len() != 3 {
		t.Fatalf("filtered len = %d, want 3 (%v)", sub.Len(), sub.Paths())
	}
	if v, _ := sub.GetString(ParsePath("street")); v != "Main" {
		t.Fatalf("street = %q", v)
	}
	if v, _ := sub.GetString(EmptyPath()); v != "whole" {
		t.Fatalf("exact match should be keyed by the empty path, got %q", v)
	}
	if sub.Contains(ParsePath("ee")) {
		t.Fatalf("partial segment leaked into filtered map")
	}
}

func TestResponses_ExtendOtherWins(t *testing.T) {
	a := NewResponses()
	a.Insert(ParsePath("x"), Int(1))
	a.Insert(ParsePath("y"), Int(2))
	b := NewResponses()
	b.Insert(ParsePath("y"), Int(20))
	b.Insert(ParsePath("z"), Int(30))
	a.Extend(b)
	if a.Len() != 3 {
		t.Fatalf("len = %d", a.Len())
	}
	if v, _ := a.GetInt(ParsePath("y")); v != 20 {
		t.Fatalf("y = %d, want 20", v)
	}
}

func TestResponses_HasValue(t *testing.T) {
	r := NewResponses()
	r.Insert(ParsePath("nick"), String(""))
	r.Insert(ParsePath("flag"), Bool(false))
	if r.HasValue(ParsePath("nick")) {
		t.Fatalf("empty string should count as no value")
	}
	if !r.HasValue(ParsePath("flag")) {
		t.Fatalf("false is still a value")
	}
	if r.HasValue(ParsePath("absent")) {
		t.Fatalf("absent path has no value")
	}
}

func TestResponses_CloneIsDeep(t *testing.T) {
	r := NewResponses()
	list := StringList{"a", "b"}
	r.Insert(ParsePath("tags"), list)
	c := r.Clone()
	list[0] = "changed"
	got, _ := c.GetStringList(ParsePath("tags"))
	if got[0] != "a" {
		t.Fatalf("clone shares storage with source: %v", got)
	}
}

func TestResponses_JSONRoundTrip(t *testing.T) {
	r := NewResponses()
	r.Insert(ParsePath("name"), String("Ada"))
	r.Insert(ParsePath("age"), Int(30))
	r.Insert(ParsePath("score"), Float(1.5))
	r.Insert(ParsePath("ok"), Bool(true))
	r.Insert(ParsePath("role.selected_variant"), ChosenVariant(1))
	r.Insert(ParsePath("toppings.selected_variants"), ChosenVariants{1, 1})
	r.Insert(ParsePath("tags"), StringList{"x", "y"})
	r.Insert(ParsePath("ids"), IntList{3, 4})
	r.Insert(ParsePath("weights"), FloatList{0.25})

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back := NewResponses()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Len() != r.Len() {
		t.Fatalf("len = %d, want %d", back.Len(), r.Len())
	}
	for p, v := range r.All() {
		got, ok := back.Get(p)
		if !ok || !Equal(got, v) {
			t.Fatalf("%s: got %#v, want %#v", p, got, v)
		}
	}
}

func TestResponses_UnmarshalRejectsUnknownType(t *testing.T) {
	r := NewResponses()
	err := json.Unmarshal([]byte(`{"a":{"type":"Complex","value":1}}`), r)
	if err == nil {
		t.Fatalf("expected error for unknown answer type")
	}
}

func TestResponses_Nested(t *testing.T) {
	r := NewResponses()
	r.Insert(ParsePath("name"), String("Ada"))
	r.Insert(ParsePath("address.geo.lat"), Float(1.5))
	r.Insert(ParsePath("role.selected_variant"), ChosenVariant(1))
	r.Insert(ParsePath("role.level"), String("root"))
	r.Insert(ParsePath("toppings.selected_variants"), ChosenVariants{2, 0})
	r.Insert(ParsePath("toppings.0.selected_variant"), ChosenVariant(2))
	r.Insert(ParsePath("toppings.0.extra.x"), String("olives"))
	r.Insert(ParsePath("toppings.1.selected_variant"), ChosenVariant(0))
	r.Insert(ParsePath("none.selected_variants"), ChosenVariants{})

	got, err := r.Nested()
	if err != nil {
		t.Fatalf("nested: %v", err)
	}
	want := map[string]any{
		"name":    "Ada",
		"address": map[string]any{"geo": map[string]any{"lat": 1.5}},
		"role":    map[string]any{"selected_variant": 1, "level": "root"},
		"toppings": []any{
			map[string]any{"selected_variant": 2, "extra": map[string]any{"x": "olives"}},
			map[string]any{"selected_variant": 0},
		},
		"none": []any{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v\nwant %#v", got, want)
	}
}

func TestResponses_NestedConflicts(t *testing.T) {
	r := NewResponses()
	r.Insert(ParsePath("a"), String("x"))
	r.Insert(ParsePath("a.b"), String("y"))
	if _, err := r.Nested(); err == nil {
		t.Fatalf("expected a value and a child at the same path to conflict")
	}

	r = NewResponses()
	r.Insert(ParsePath("list.selected_variants"), ChosenVariants{0})
	r.Insert(ParsePath("list.5.selected_variant"), ChosenVariant(0))
	if _, err := r.Nested(); err == nil {
		t.Fatalf("expected an item beyond the selection to be rejected")
	}
}
