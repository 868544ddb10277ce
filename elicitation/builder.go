package elicitation

import (
	"context"
	"fmt"

	"github.com/ggoodman/interview-go/interview"
	"github.com/ggoodman/interview-go/survey"
)

// Builder prepares an interview for T: the derived question tree plus
// caller-supplied defaults and validators.
//
//	b := elicitation.NewBuilder[Signup]().
//	    Suggest("name", "Ada").
//	    Assume("country", "NZ").
//	    Validate("age", adultsOnly)
//	out, err := b.Run(ctx, lineprompt.NewBackend())
//
// Paths are dot-separated field names. Methods record the first error they
// encounter; Definition and Run report it.
type Builder[T any] struct {
	def  *survey.Definition
	disp *dispatcher
	err  error
}

// NewBuilder derives the question tree for T.
func NewBuilder[T any]() *Builder[T] {
	def, err := DefinitionFor[T]()
	b := &Builder[T]{def: def, err: err, disp: &dispatcher{}}
	var zero T
	if av, ok := any(zero).(AnswerValidator); ok {
		b.disp.self = av
	} else if av, ok := any(&zero).(AnswerValidator); ok {
		b.disp.self = av
	}
	return b
}

func (b *Builder[T]) fail(err error) *Builder[T] {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *Builder[T]) setDefault(path string, value any, mk func(survey.Value) survey.Default) *Builder[T] {
	if b.err != nil {
		return b
	}
	v, err := ValueOf(value)
	if err != nil {
		return b.fail(fmt.Errorf("elicitation: %s: %w", path, err))
	}
	if b.def.SetDefault(survey.ParsePath(path), mk(v)) == 0 {
		return b.fail(fmt.Errorf("elicitation: no question at %q", path))
	}
	return b
}

// Suggest pre-fills the question at path with value. The user may change it.
func (b *Builder[T]) Suggest(path string, value any) *Builder[T] {
	return b.setDefault(path, value, survey.Suggest)
}

// Assume records value for the question at path without asking it.
func (b *Builder[T]) Assume(path string, value any) *Builder[T] {
	return b.setDefault(path, value, survey.Assume)
}

// SuggestVariant pre-selects variant index of the OneOf at path.
func (b *Builder[T]) SuggestVariant(path string, index int) *Builder[T] {
	if b.err != nil {
		return b
	}
	if !b.def.SetVariantDefault(survey.ParsePath(path), index) {
		return b.fail(fmt.Errorf("elicitation: no variant %d for a single choice at %q", index, path))
	}
	return b
}

// SuggestVariants pre-checks indices of the AnyOf at path.
func (b *Builder[T]) SuggestVariants(path string, indices ...int) *Builder[T] {
	if b.err != nil {
		return b
	}
	if !b.def.SetVariantDefaults(survey.ParsePath(path), indices) {
		return b.fail(fmt.Errorf("elicitation: invalid variants %v for a multiple choice at %q", indices, path))
	}
	return b
}

// WithSuggestions suggests every answer existing would have produced, so an
// interview can edit a previous value. This covers the follow-up of a chosen
// OneOf variant. Answers below AnyOf items have no static question and are
// not suggested; the item selection itself is.
func (b *Builder[T]) WithSuggestions(existing T) *Builder[T] {
	if b.err != nil {
		return b
	}
	enc, err := Encode(existing)
	if err != nil {
		return b.fail(err)
	}
	for _, p := range enc.Paths() {
		v, _ := enc.Get(p)
		switch last, _ := p.Last(); last {
		case survey.SelectedVariantKey:
			b.def.SetVariantDefault(p.Parent(), int(v.(survey.ChosenVariant)))
		case survey.SelectedVariantsKey:
			b.def.SetVariantDefaults(p.Parent(), v.(survey.ChosenVariants))
		default:
			b.def.SetDefault(p, survey.Suggest(v))
		}
	}
	return b
}

// Validate registers fn for the field at path. A "*" segment matches any
// AnyOf item index.
func (b *Builder[T]) Validate(path string, fn interview.Validator) *Builder[T] {
	if fn != nil {
		b.disp.field = append(b.disp.field, newRule(path, fn))
	}
	return b
}

// ValidateFields registers fn for every answer at or below prefix. An empty
// prefix covers the whole interview, including AnyOf selections.
func (b *Builder[T]) ValidateFields(prefix string, fn interview.Validator) *Builder[T] {
	if fn != nil {
		b.disp.propagated = append(b.disp.propagated, newRule(prefix, fn))
	}
	return b
}

// Prelude sets text shown before the first question.
func (b *Builder[T]) Prelude(text string) *Builder[T] {
	if b.def != nil {
		b.def.Prelude = text
	}
	return b
}

// Epilogue sets text shown after the last question.
func (b *Builder[T]) Epilogue(text string) *Builder[T] {
	if b.def != nil {
		b.def.Epilogue = text
	}
	return b
}

// Definition returns a validated copy of the prepared question tree.
func (b *Builder[T]) Definition() (*survey.Definition, error) {
	if b.err != nil {
		return nil, b.err
	}
	d := b.def.Clone()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validator returns the compiled validator dispatch.
func (b *Builder[T]) Validator() interview.Validator {
	return b.disp.validate
}

// Run interviews through backend and decodes the answers into a T.
func (b *Builder[T]) Run(ctx context.Context, backend interview.Backend) (T, error) {
	var out T
	def, err := b.Definition()
	if err != nil {
		return out, err
	}
	answers, err := backend.Collect(ctx, def, b.Validator())
	if err != nil {
		return out, err
	}
	if err := Decode(answers, &out); err != nil {
		return out, err
	}
	return out, nil
}
