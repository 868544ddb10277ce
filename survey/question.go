package survey

import "slices"

// Question is a single node of the question tree. Path is relative to the
// enclosing structure (usually one segment, the field name). When Prompt is
// empty, renderers derive a label from the last path segment.
type Question struct {
	Path    Path
	Prompt  string
	Help    string
	Kind    Kind
	Default Default
}

// NewQuestion builds a question with no default.
func NewQuestion(path, prompt string, kind Kind) Question {
	return Question{Path: ParsePath(path), Prompt: prompt, Kind: kind}
}

// Suggested returns a copy of q carrying a suggested default.
func (q Question) Suggested(v Value) Question {
	q.Default = Suggest(v)
	return q
}

// Assumed returns a copy of q carrying an assumed default.
func (q Question) Assumed(v Value) Question {
	q.Default = Assume(v)
	return q
}

// DisplayPrompt returns the question's prompt, or a label derived from full
// when the prompt is empty.
func DisplayPrompt(q Question, full Path) string {
	if q.Prompt != "" {
		return q.Prompt
	}
	if full.IsEmpty() {
		return DisplayLabel(q.Path)
	}
	return DisplayLabel(full)
}

// Kind is the tagged union of question kinds. The set is closed.
type Kind interface {
	// KindName returns the stable lower-case name of the kind, for
	// example "input" or "one_of".
	KindName() string
	isKind()
}

// Unit carries no data (unit enum variants, empty structs).
type Unit struct{}

// Input is single-line text.
type Input struct {
	Default *string
}

// Multiline is free-form multi-line text.
type Multiline struct {
	Default *string
}

// Masked is text whose echo is hidden, such as a password. Mask is the
// replacement character; zero means '*'.
type Masked struct {
	Mask rune
}

// IntInput is a 64-bit signed integer with optional inclusive bounds.
type IntInput struct {
	Default  *int64
	Min, Max *int64
}

// FloatInput is a 64-bit float with optional inclusive bounds.
type FloatInput struct {
	Default  *float64
	Min, Max *float64
}

// Confirm is a yes/no question.
type Confirm struct {
	Default bool
}

// List is a homogeneous list. Element must be an Input, IntInput or
// FloatInput; its bounds apply to every element.
type List struct {
	Element            Kind
	MinItems, MaxItems *int
}

// AllOf is an ordered group of questions that are all answered.
type AllOf struct {
	Questions []Question
}

// OneOf is a single choice between named variants. Default, when set, is the
// pre-selected variant index.
type OneOf struct {
	Variants []Variant
	Default  *int
}

// AnyOf is a multi-choice between named variants. Defaults are pre-checked
// variant indices.
type AnyOf struct {
	Variants []Variant
	Defaults []int
}

// Variant is one labeled alternative of a OneOf or AnyOf. A Unit kind means
// the variant carries no further data.
type Variant struct {
	Name  string
	Label string
	Kind  Kind
	// Default applies to the follow-up question of a variant whose kind is
	// neither AllOf nor Unit.
	Default Default
}

// NewVariant builds a variant; a nil kind means Unit.
func NewVariant(name string, kind Kind) Variant {
	if kind == nil {
		kind = Unit{}
	}
	return Variant{Name: name, Kind: kind}
}

// FollowUp returns the single question asked when v is chosen, addressed by
// the variant name below the selection. AllOf and Unit variants have none:
// AllOf fields sit beside the selection and Unit carries no data.
func (v Variant) FollowUp() (Question, bool) {
	switch v.Kind.(type) {
	case nil, Unit, AllOf:
		return Question{}, false
	}
	return Question{Path: PathOf(v.Name), Prompt: v.Label, Kind: v.Kind, Default: v.Default}, true
}

// DisplayName returns Label, or Name when no label is set.
func (v Variant) DisplayName() string {
	if v.Label != "" {
		return v.Label
	}
	return v.Name
}

func (Unit) KindName() string       { return "unit" }
func (Input) KindName() string      { return "input" }
func (Multiline) KindName() string  { return "multiline" }
func (Masked) KindName() string     { return "masked" }
func (IntInput) KindName() string   { return "int" }
func (FloatInput) KindName() string { return "float" }
func (Confirm) KindName() string    { return "confirm" }
func (List) KindName() string       { return "list" }
func (AllOf) KindName() string      { return "all_of" }
func (OneOf) KindName() string      { return "one_of" }
func (AnyOf) KindName() string      { return "any_of" }

func (Unit) isKind()       {}
func (Input) isKind()      {}
func (Multiline) isKind()  {}
func (Masked) isKind()     {}
func (IntInput) isKind()   {}
func (FloatInput) isKind() {}
func (Confirm) isKind()    {}
func (List) isKind()       {}
func (AllOf) isKind()      {}
func (OneOf) isKind()      {}
func (AnyOf) isKind()      {}

// VariantNames lists the names of vs in order.
func VariantNames(vs []Variant) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name
	}
	return out
}

// IsUnit reports whether k carries no data. A nil kind counts as Unit.
func IsUnit(k Kind) bool {
	if k == nil {
		return true
	}
	_, ok := k.(Unit)
	return ok
}

// IsLeaf reports whether k is answered with a single backend interaction.
func IsLeaf(k Kind) bool {
	switch k.(type) {
	case Input, Multiline, Masked, IntInput, FloatInput, Confirm, List:
		return true
	}
	return false
}

// IsStructural reports whether k is AllOf, OneOf or AnyOf.
func IsStructural(k Kind) bool {
	switch k.(type) {
	case AllOf, OneOf, AnyOf:
		return true
	}
	return false
}

// ExpectedValueKind returns the answer kind a question of kind k produces.
// Unit and AllOf produce no answer of their own.
func ExpectedValueKind(k Kind) (ValueKind, bool) {
	switch kk := k.(type) {
	case Input, Multiline, Masked:
		return KindString, true
	case IntInput:
		return KindInt, true
	case FloatInput:
		return KindFloat, true
	case Confirm:
		return KindBool, true
	case List:
		switch kk.Element.(type) {
		case IntInput:
			return KindIntList, true
		case FloatInput:
			return KindFloatList, true
		default:
			return KindStringList, true
		}
	case OneOf:
		return KindChosenVariant, true
	case AnyOf:
		return KindChosenVariants, true
	}
	return KindInvalid, false
}

// StaticDefault returns the default carried by the kind itself, or nil.
func StaticDefault(k Kind) Value {
	switch kk := k.(type) {
	case Input:
		if kk.Default != nil {
			return String(*kk.Default)
		}
	case Multiline:
		if kk.Default != nil {
			return String(*kk.Default)
		}
	case IntInput:
		if kk.Default != nil {
			return Int(*kk.Default)
		}
	case FloatInput:
		if kk.Default != nil {
			return Float(*kk.Default)
		}
	case Confirm:
		return Bool(kk.Default)
	}
	return nil
}

// CloneKind deep-copies k.
func CloneKind(k Kind) Kind {
	switch kk := k.(type) {
	case Input:
		kk.Default = clonePtr(kk.Default)
		return kk
	case Multiline:
		kk.Default = clonePtr(kk.Default)
		return kk
	case IntInput:
		kk.Default, kk.Min, kk.Max = clonePtr(kk.Default), clonePtr(kk.Min), clonePtr(kk.Max)
		return kk
	case FloatInput:
		kk.Default, kk.Min, kk.Max = clonePtr(kk.Default), clonePtr(kk.Min), clonePtr(kk.Max)
		return kk
	case List:
		kk.Element = CloneKind(kk.Element)
		kk.MinItems, kk.MaxItems = clonePtr(kk.MinItems), clonePtr(kk.MaxItems)
		return kk
	case AllOf:
		kk.Questions = cloneQuestions(kk.Questions)
		return kk
	case OneOf:
		kk.Variants = cloneVariants(kk.Variants)
		kk.Default = clonePtr(kk.Default)
		return kk
	case AnyOf:
		kk.Variants = cloneVariants(kk.Variants)
		kk.Defaults = slices.Clone(kk.Defaults)
		return kk
	}
	return k
}

// Clone deep-copies q.
func (q Question) Clone() Question {
	q.Kind = CloneKind(q.Kind)
	q.Default = q.Default.clone()
	return q
}

func cloneQuestions(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

func cloneVariants(vs []Variant) []Variant {
	if vs == nil {
		return nil
	}
	out := make([]Variant, len(vs))
	for i, v := range vs {
		v.Kind = CloneKind(v.Kind)
		v.Default = v.Default.clone()
		out[i] = v
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v; handy for optional bounds and defaults.
func Ptr[T any](v T) *T { return &v }
