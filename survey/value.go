package survey

import (
	"fmt"
	"slices"
)

// ValueKind enumerates the closed set of answer value shapes.
type ValueKind int

const (
	KindInvalid ValueKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindChosenVariant
	KindChosenVariants
	KindStringList
	KindIntList
	KindFloatList
)

var valueKindNames = [...]string{
	KindInvalid:        "Invalid",
	KindString:         "String",
	KindInt:            "Int",
	KindFloat:          "Float",
	KindBool:           "Bool",
	KindChosenVariant:  "ChosenVariant",
	KindChosenVariants: "ChosenVariants",
	KindStringList:     "StringList",
	KindIntList:        "IntList",
	KindFloatList:      "FloatList",
}

func (k ValueKind) String() string {
	if k < 0 || int(k) >= len(valueKindNames) {
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
	return valueKindNames[k]
}

// ParseValueKind is the inverse of ValueKind.String.
func ParseValueKind(s string) (ValueKind, bool) {
	for i, name := range valueKindNames {
		if name == s && ValueKind(i) != KindInvalid {
			return ValueKind(i), true
		}
	}
	return KindInvalid, false
}

// Value is a single answer. The set of implementations is closed: String,
// Int, Float, Bool, ChosenVariant, ChosenVariants, StringList, IntList and
// FloatList.
type Value interface {
	Kind() ValueKind
	isValue()
}

type (
	// String is produced by Input, Multiline and Masked questions.
	String string
	// Int is produced by Int questions.
	Int int64
	// Float is produced by Float questions.
	Float float64
	// Bool is produced by Confirm questions.
	Bool bool
	// ChosenVariant is the index of the variant picked in a OneOf.
	ChosenVariant int
	// ChosenVariants are the variant indices picked in an AnyOf, in
	// selection order. The same index may appear more than once.
	ChosenVariants []int
	// StringList is produced by List questions with Input elements.
	StringList []string
	// IntList is produced by List questions with Int elements.
	IntList []int64
	// FloatList is produced by List questions with Float elements.
	FloatList []float64
)

func (String) Kind() ValueKind         { return KindString }
func (Int) Kind() ValueKind            { return KindInt }
func (Float) Kind() ValueKind          { return KindFloat }
func (Bool) Kind() ValueKind           { return KindBool }
func (ChosenVariant) Kind() ValueKind  { return KindChosenVariant }
func (ChosenVariants) Kind() ValueKind { return KindChosenVariants }
func (StringList) Kind() ValueKind     { return KindStringList }
func (IntList) Kind() ValueKind        { return KindIntList }
func (FloatList) Kind() ValueKind      { return KindFloatList }

func (String) isValue()         {}
func (Int) isValue()            {}
func (Float) isValue()          {}
func (Bool) isValue()           {}
func (ChosenVariant) isValue()  {}
func (ChosenVariants) isValue() {}
func (StringList) isValue()     {}
func (IntList) isValue()        {}
func (FloatList) isValue()      {}

// KindOf returns v.Kind(), or KindInvalid for a nil value.
func KindOf(v Value) ValueKind {
	if v == nil {
		return KindInvalid
	}
	return v.Kind()
}

// Equal reports whether a and b hold the same kind and contents.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case ChosenVariants:
		bv, ok := b.(ChosenVariants)
		return ok && slices.Equal(av, bv)
	case StringList:
		bv, ok := b.(StringList)
		return ok && slices.Equal(av, bv)
	case IntList:
		bv, ok := b.(IntList)
		return ok && slices.Equal(av, bv)
	case FloatList:
		bv, ok := b.(FloatList)
		return ok && slices.Equal(av, bv)
	default:
		return a == b
	}
}

// CloneValue returns a copy of v that shares no backing arrays with it.
func CloneValue(v Value) Value {
	switch tv := v.(type) {
	case ChosenVariants:
		return slices.Clone(tv)
	case StringList:
		return slices.Clone(tv)
	case IntList:
		return slices.Clone(tv)
	case FloatList:
		return slices.Clone(tv)
	default:
		return v
	}
}

// Interface returns the plain Go payload of v (string, int64, float64, bool,
// int, []int, []string, []int64 or []float64).
func Interface(v Value) any {
	switch tv := v.(type) {
	case String:
		return string(tv)
	case Int:
		return int64(tv)
	case Float:
		return float64(tv)
	case Bool:
		return bool(tv)
	case ChosenVariant:
		return int(tv)
	case ChosenVariants:
		return []int(tv)
	case StringList:
		return []string(tv)
	case IntList:
		return []int64(tv)
	case FloatList:
		return []float64(tv)
	}
	return nil
}
