package survey

import "fmt"

type defaultMode uint8

const (
	defaultNone defaultMode = iota
	defaultSuggested
	defaultAssumed
)

// Default is exactly one of: none, suggested (pre-filled but still asked) or
// assumed (question skipped, value recorded as-is). The zero value is none.
type Default struct {
	mode  defaultMode
	value Value
}

// NoDefault returns the empty default.
func NoDefault() Default { return Default{} }

// Suggest returns a default that pre-fills v. A nil v yields NoDefault.
func Suggest(v Value) Default {
	if v == nil {
		return Default{}
	}
	return Default{mode: defaultSuggested, value: v}
}

// Assume returns a default that skips the question and records v. A nil v
// yields NoDefault.
func Assume(v Value) Default {
	if v == nil {
		return Default{}
	}
	return Default{mode: defaultAssumed, value: v}
}

func (d Default) IsNone() bool      { return d.mode == defaultNone }
func (d Default) IsSuggested() bool { return d.mode == defaultSuggested }
func (d Default) IsAssumed() bool   { return d.mode == defaultAssumed }

// Value returns the suggested or assumed value.
func (d Default) Value() (Value, bool) {
	if d.mode == defaultNone {
		return nil, false
	}
	return d.value, true
}

// Suggestion returns the value only when d is a suggestion.
func (d Default) Suggestion() (Value, bool) {
	if d.mode != defaultSuggested {
		return nil, false
	}
	return d.value, true
}

func (d Default) String() string {
	switch d.mode {
	case defaultSuggested:
		return fmt.Sprintf("suggested(%v)", Interface(d.value))
	case defaultAssumed:
		return fmt.Sprintf("assumed(%v)", Interface(d.value))
	}
	return "none"
}

func (d Default) clone() Default {
	if d.value == nil {
		return d
	}
	return Default{mode: d.mode, value: CloneValue(d.value)}
}
