package elicitation

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// Case describes one variant of a registered sum type. Build it with Variant.
type Case struct {
	name  string
	label string
	typ   reflect.Type
}

// CaseOption customizes a Case.
type CaseOption func(*Case)

// Label sets the text shown in menus instead of the variant name.
func Label(text string) CaseOption { return func(c *Case) { c.label = text } }

// Variant declares that concrete type V is the variant called name. A struct
// V without exported fields carries no data; a struct with fields asks them
// as follow-up questions; any other V is asked as a single follow-up question
// named after the variant.
func Variant[V any](name string, opts ...CaseOption) Case {
	c := Case{name: name, typ: reflect.TypeFor[V]()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

type enumInfo struct {
	typ   reflect.Type
	cases []Case
	// strings holds the values of a string enum; cases then carry no type.
	strings []string
}

func (e *enumInfo) isString() bool { return e.strings != nil }

var (
	registryMu sync.RWMutex
	registry   = map[reflect.Type]*enumInfo{}
)

// RegisterEnum registers interface type T as a sum type whose variants are
// the given cases. Fields of type T become OneOf questions and fields of
// type []T become AnyOf questions.
func RegisterEnum[T any](cases ...Case) error {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Interface {
		return fmt.Errorf("elicitation: RegisterEnum needs an interface type, got %s", t)
	}
	if len(cases) == 0 {
		return fmt.Errorf("elicitation: enum %s has no variants", t)
	}
	seen := make(map[string]bool, len(cases))
	for _, c := range cases {
		switch {
		case c.name == "":
			return fmt.Errorf("elicitation: enum %s: variant with empty name", t)
		case seen[c.name]:
			return fmt.Errorf("elicitation: enum %s: duplicate variant %q", t, c.name)
		case c.typ == nil || !c.typ.Implements(t):
			return fmt.Errorf("elicitation: enum %s: variant %q type %v does not implement it", t, c.name, c.typ)
		}
		seen[c.name] = true
	}
	register(&enumInfo{typ: t, cases: append([]Case(nil), cases...)})
	return nil
}

// RegisterStringEnum registers a string type whose allowed values are
// values, in menu order.
func RegisterStringEnum[T ~string](values ...T) error {
	t := reflect.TypeFor[T]()
	if len(values) == 0 {
		return fmt.Errorf("elicitation: enum %s has no values", t)
	}
	seen := make(map[string]bool, len(values))
	strs := make([]string, 0, len(values))
	for _, v := range values {
		s := string(v)
		if s == "" || seen[s] {
			return fmt.Errorf("elicitation: enum %s: empty or duplicate value %q", t, s)
		}
		seen[s] = true
		strs = append(strs, s)
	}
	register(&enumInfo{typ: t, strings: strs})
	return nil
}

// MustRegisterEnum is RegisterEnum that panics on error.
func MustRegisterEnum[T any](cases ...Case) {
	if err := RegisterEnum[T](cases...); err != nil {
		panic(err)
	}
}

// MustRegisterStringEnum is RegisterStringEnum that panics on error.
func MustRegisterStringEnum[T ~string](values ...T) {
	if err := RegisterStringEnum(values...); err != nil {
		panic(err)
	}
}

func register(e *enumInfo) {
	registryMu.Lock()
	registry[e.typ] = e
	registryMu.Unlock()
	// Derived definitions may embed the previous registration.
	purgeCache()
}

func lookupEnum(t reflect.Type) (*enumInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := registry[t]
	return e, ok
}

// caseIndex returns the index of the case whose type matches the dynamic
// type of v.
func (e *enumInfo) caseIndex(v reflect.Value) (int, error) {
	if e.isString() {
		s := v.String()
		for i, name := range e.strings {
			if name == s {
				return i, nil
			}
		}
		return 0, fmt.Errorf("value %q is not one of %v", s, e.strings)
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return 0, errors.New("nil variant")
		}
		v = v.Elem()
	}
	for i, c := range e.cases {
		if c.typ == v.Type() {
			return i, nil
		}
	}
	return 0, fmt.Errorf("type %s is not a registered variant of %s", v.Type(), e.typ)
}
