package survey

import (
	"errors"
	"fmt"
	"strings"
)

// Definition is a complete question tree plus optional text shown before and
// after the interview.
type Definition struct {
	Prelude   string
	Epilogue  string
	Questions []Question
}

// NewDefinition returns a definition holding questions.
func NewDefinition(questions ...Question) *Definition {
	return &Definition{Questions: questions}
}

// Clone returns a deep copy of d. Defaults applied to the copy never leak
// back into d.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	return &Definition{
		Prelude:   d.Prelude,
		Epilogue:  d.Epilogue,
		Questions: cloneQuestions(d.Questions),
	}
}

// Walk visits every statically addressable question in depth-first order,
// passing its full path and a pointer that may be used to edit it in place.
// Returning false from fn skips that question's descendants.
//
// AllOf children are addressed below their parent. Fields of an AllOf variant
// of a OneOf share the OneOf's own path; any other variant's follow-up
// question is addressed below the variant name. For those follow-ups only
// edits to Kind and Default are kept. AnyOf variants are addressed by item
// index at run time and are therefore not visited.
func (d *Definition) Walk(fn func(full Path, q *Question) bool) {
	walkQuestions(EmptyPath(), d.Questions, fn)
}

func walkQuestions(prefix Path, qs []Question, fn func(Path, *Question) bool) {
	for i := range qs {
		full := prefix.Join(qs[i].Path)
		if fn(full, &qs[i]) {
			walkKind(full, qs[i].Kind, fn)
		}
	}
}

func walkKind(full Path, k Kind, fn func(Path, *Question) bool) {
	switch kk := k.(type) {
	case AllOf:
		walkQuestions(full, kk.Questions, fn)
	case OneOf:
		// kk is a copy, but its Variants share the definition's backing array.
		for i := range kk.Variants {
			v := &kk.Variants[i]
			if all, ok := v.Kind.(AllOf); ok {
				walkQuestions(full, all.Questions, fn)
				continue
			}
			q, ok := v.FollowUp()
			if !ok {
				continue
			}
			at := full.Join(q.Path)
			if fn(at, &q) {
				walkKind(at, q.Kind, fn)
			}
			v.Kind, v.Default = q.Kind, q.Default
		}
	}
}

// Find returns the question addressed by path, or nil. For a variant
// follow-up the result is a copy.
func (d *Definition) Find(path Path) *Question {
	var found *Question
	d.Walk(func(full Path, q *Question) bool {
		if found != nil {
			return false
		}
		if full == path {
			found = q
			return false
		}
		return path.HasPrefix(full)
	})
	return found
}

// SetDefault applies def to every question addressed by path and returns how
// many were updated. Several questions can share a path when sibling OneOf
// variants declare fields with the same name.
func (d *Definition) SetDefault(path Path, def Default) int {
	n := 0
	d.Walk(func(full Path, q *Question) bool {
		if full == path {
			q.Default = def
			n++
		}
		return true
	})
	return n
}

// SetVariantDefault pre-selects the variant at index in the OneOf addressed by
// path. It reports false when no such OneOf exists or index is out of range.
func (d *Definition) SetVariantDefault(path Path, index int) bool {
	ok := false
	d.Walk(func(full Path, q *Question) bool {
		if full != path {
			return true
		}
		if oo, isOneOf := q.Kind.(OneOf); isOneOf && index >= 0 && index < len(oo.Variants) {
			oo.Default = Ptr(index)
			q.Kind = oo
			ok = true
		}
		return true
	})
	return ok
}

// SetVariantDefaults pre-checks indices in the AnyOf addressed by path.
func (d *Definition) SetVariantDefaults(path Path, indices []int) bool {
	ok := false
	d.Walk(func(full Path, q *Question) bool {
		if full != path {
			return true
		}
		ao, isAnyOf := q.Kind.(AnyOf)
		if !isAnyOf {
			return true
		}
		for _, i := range indices {
			if i < 0 || i >= len(ao.Variants) {
				return true
			}
		}
		ao.Defaults = append([]int(nil), indices...)
		q.Kind = ao
		ok = true
		return true
	})
	return ok
}

// Validate reports every structural problem in d. The returned error wraps
// ErrInvalidDefinition; individual problems are joined.
func (d *Definition) Validate() error {
	v := &validator{}
	v.questions(EmptyPath(), d.Questions)
	if len(v.errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidDefinition, errors.Join(v.errs...))
}

type validator struct {
	errs []error
}

func (v *validator) addf(at Path, format string, args ...any) {
	where := at.String()
	if where == "" {
		where = "<root>"
	}
	v.errs = append(v.errs, fmt.Errorf("%s: %s", where, fmt.Sprintf(format, args...)))
}

func (v *validator) questions(prefix Path, qs []Question) {
	seen := make(map[Path]bool, len(qs))
	for _, q := range qs {
		full := prefix.Join(q.Path)
		if q.Path.IsEmpty() {
			v.addf(prefix, "question with empty path")
			continue
		}
		if seen[q.Path] {
			v.addf(full, "duplicate question path")
		}
		seen[q.Path] = true
		if last, _ := q.Path.Last(); last == SelectedVariantKey || last == SelectedVariantsKey {
			v.addf(full, "path segment %q is reserved", last)
		}
		v.question(full, q)
	}
}

func (v *validator) question(full Path, q Question) {
	if q.Kind == nil {
		v.addf(full, "question has no kind")
		return
	}
	if val, ok := q.Default.Value(); ok {
		want, produces := ExpectedValueKind(q.Kind)
		switch {
		case IsStructural(q.Kind) || IsUnit(q.Kind):
			v.addf(full, "%s questions cannot carry a %s default", q.Kind.KindName(), q.Default)
		case produces && val.Kind() != want:
			v.addf(full, "default has kind %s, question expects %s", val.Kind(), want)
		}
	}
	v.kind(full, q.Kind)
}

func (v *validator) kind(full Path, k Kind) {
	if err := checkKindBounds(k); err != nil {
		v.addf(full, "%v", err)
	}
	switch kk := k.(type) {
	case AllOf:
		v.questions(full, kk.Questions)
	case OneOf:
		v.variants(full, kk.Variants)
		if kk.Default != nil && (*kk.Default < 0 || *kk.Default >= len(kk.Variants)) {
			v.addf(full, "default variant %d out of range", *kk.Default)
		}
	case AnyOf:
		v.variants(full, kk.Variants)
		for _, i := range kk.Defaults {
			if i < 0 || i >= len(kk.Variants) {
				v.addf(full, "default variant %d out of range", i)
			}
		}
	}
}

func (v *validator) variants(full Path, vs []Variant) {
	if len(vs) == 0 {
		v.addf(full, "no variants")
	}
	names := make(map[string]bool, len(vs))
	for _, vr := range vs {
		switch {
		case vr.Name == "":
			v.addf(full, "variant with empty name")
		case strings.Contains(vr.Name, pathSep):
			v.addf(full, "variant name %q contains %q", vr.Name, pathSep)
		case names[vr.Name]:
			v.addf(full, "duplicate variant name %q", vr.Name)
		}
		names[vr.Name] = true
		if q, ok := vr.FollowUp(); ok {
			v.question(full.Join(q.Path), q)
			continue
		}
		if !vr.Default.IsNone() {
			v.addf(full.Child(vr.Name), "%s variants cannot carry a %s default", kindName(vr.Kind), vr.Default)
		}
		if vr.Kind != nil {
			v.kind(full.Child(vr.Name), vr.Kind)
		}
	}
}
