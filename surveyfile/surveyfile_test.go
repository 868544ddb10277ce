package surveyfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ggoodman/interview-go/survey"
)

const pizzaYAML = `
prelude: Let's order.
epilogue: Thanks!
questions:
  - path: name
    ask: Who is this for?
    suggest: Ada
  - path: table
    kind: int
    min: 1
    max: 40
    assume: 7
  - path: size
    kind: one_of
    default: large
    variants:
      - name: small
      - name: large
        label: Large (16")
  - path: toppings
    kind: any_of
    defaults: [cheese]
    variants:
      - name: cheese
      - name: extra
        kind: input
      - name: half
        questions:
          - path: side
            help: left or right
  - path: delivery
    questions:
      - path: address
        kind: multiline
      - path: tip
        kind: float
        min: 0
  - path: tags
    kind: list
    element: int
    max_items: 3
    suggest: [1, 2]
  - path: pin
    kind: masked
    mask: "#"
  - path: vegan
    kind: confirm
    default: true
`

func TestParse(t *testing.T) {
	def, err := Parse([]byte(pizzaYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.Prelude != "Let's order." || def.Epilogue != "Thanks!" {
		t.Fatalf("prelude/epilogue = %q/%q", def.Prelude, def.Epilogue)
	}

	name := def.Find(survey.ParsePath("name"))
	if v, _ := name.Default.Suggestion(); v != survey.String("Ada") || name.Prompt != "Who is this for?" {
		t.Fatalf("name = %+v", name)
	}
	table := def.Find(survey.ParsePath("table"))
	k := table.Kind.(survey.IntInput)
	if !table.Default.IsAssumed() || *k.Min != 1 || *k.Max != 40 {
		t.Fatalf("table = %+v", table)
	}

	size := def.Find(survey.ParsePath("size")).Kind.(survey.OneOf)
	if size.Default == nil || *size.Default != 1 || size.Variants[1].Label != `Large (16")` {
		t.Fatalf("size = %+v", size)
	}

	toppings := def.Find(survey.ParsePath("toppings")).Kind.(survey.AnyOf)
	if len(toppings.Defaults) != 1 || toppings.Defaults[0] != 0 {
		t.Fatalf("toppings defaults = %v", toppings.Defaults)
	}
	if _, ok := toppings.Variants[1].Kind.(survey.Input); !ok {
		t.Fatalf("extra kind = %s", toppings.Variants[1].Kind.KindName())
	}
	half := toppings.Variants[2].Kind.(survey.AllOf)
	if half.Questions[0].Help != "left or right" {
		t.Fatalf("half = %+v", half)
	}

	if _, ok := def.Find(survey.ParsePath("delivery.address")).Kind.(survey.Multiline); !ok {
		t.Fatalf("delivery.address should be multiline")
	}
	tags := def.Find(survey.ParsePath("tags"))
	if v, _ := tags.Default.Suggestion(); !survey.Equal(v, survey.IntList{1, 2}) {
		t.Fatalf("tags suggestion = %v", v)
	}
	if pin := def.Find(survey.ParsePath("pin")).Kind.(survey.Masked); pin.Mask != '#' {
		t.Fatalf("mask = %q", pin.Mask)
	}
	if vegan := def.Find(survey.ParsePath("vegan")).Kind.(survey.Confirm); !vegan.Default {
		t.Fatalf("vegan default not read")
	}
}

func TestParse_JSON(t *testing.T) {
	def, err := Parse([]byte(`{"questions": [{"path": "age", "kind": "int", "suggest": 30}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v, _ := def.Questions[0].Default.Suggestion(); v != survey.Int(30) {
		t.Fatalf("suggestion = %v", v)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", ``, "empty document"},
		{"unknown field", "questions:\n  - path: a\n    colour: red\n", "colour"},
		{"unknown kind", "questions:\n  - path: a\n    kind: slider\n", `unknown kind "slider"`},
		{"missing path", "questions:\n  - ask: hi\n", "without a path"},
		{"bad default variant", "questions:\n  - path: a\n    kind: one_of\n    default: c\n    variants: [{name: b}]\n", `"c" is not a variant`},
		{"suggest type", "questions:\n  - path: a\n    kind: int\n    suggest: lots\n", "expected Int"},
		{"suggest and assume", "questions:\n  - path: a\n    suggest: x\n    assume: y\n", "exclusive"},
		{"structural default", "questions:\n  - path: a\n    kind: all_of\n    suggest: x\n    questions: [{path: b}]\n", "cannot carry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestParse_ErrorCarriesPath(t *testing.T) {
	_, err := Parse([]byte("questions:\n  - path: outer\n    questions:\n      - path: inner\n        kind: int\n        min: low\n"))
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if fe.Path.String() != "outer.inner" || fe.Line != 6 {
		t.Fatalf("error at %q line %d", fe.Path, fe.Line)
	}
}

func TestParse_InvalidDefinition(t *testing.T) {
	_, err := Parse([]byte("questions:\n  - path: a\n  - path: a\n"))
	if !errors.Is(err, survey.ErrInvalidDefinition) {
		t.Fatalf("expected invalid definition, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pizza.yaml")
	if err := os.WriteFile(path, []byte(pizzaYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	def, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(def.Questions) != 8 {
		t.Fatalf("got %d questions", len(def.Questions))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
