package elicitation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/ggoodman/interview-go/survey"
)

var (
	selectedVariant  = survey.PathOf(survey.SelectedVariantKey)
	selectedVariants = survey.PathOf(survey.SelectedVariantsKey)
)

// Decode rebuilds the value pointed to by dst from a finished answer map.
// Struct fields are read from the answers below their name, OneOf values
// from the recorded selected_variant and AnyOf slices item by item. Pointer
// fields are left nil when nothing (or only an empty string) was recorded.
//
// dst is only written when the whole value decodes; a missing or mistyped
// answer yields a *DecodeError.
func Decode(answers *survey.Responses, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("elicitation: Decode expects a non-nil pointer to a struct")
	}
	if answers == nil {
		answers = survey.NewResponses()
	}
	c, err := compiledFor(rv.Elem().Type())
	if err != nil {
		return err
	}
	target := rv.Elem()
	for target.Kind() == reflect.Pointer {
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		target = target.Elem()
	}

	// Work in a fresh value to avoid partial mutation on failure.
	fresh := reflect.New(target.Type()).Elem()
	if err := decodeInto(c.shape, answers, survey.EmptyPath(), fresh); err != nil {
		return err
	}
	target.Set(fresh)
	return nil
}

// decodeInto fills dst from answers, whose keys are relative to at.
func decodeInto(s *shape, answers *survey.Responses, at survey.Path, dst reflect.Value) error {
	switch s.kind {
	case shapeUnit:
		return nil
	case shapeLeaf:
		v, ok := answers.Get(survey.EmptyPath())
		if !ok {
			return &DecodeError{Path: at, Type: dst.Type(), Err: &survey.MissingPathError{Path: at}}
		}
		if err := setLeaf(dst, v); err != nil {
			return &DecodeError{Path: at, Type: dst.Type(), Err: mismatchAt(at, s.leaf, err)}
		}
		return nil
	case shapeStruct:
		for _, f := range s.fields {
			sub := answers.FilterPrefix(survey.PathOf(f.name))
			fv := dst.Field(f.index)
			if f.ptr {
				if absent(f.shape, sub) {
					continue
				}
				fv.Set(reflect.New(fv.Type().Elem()))
				fv = fv.Elem()
			}
			if err := decodeInto(f.shape, sub, at.Child(f.name), fv); err != nil {
				return err
			}
		}
		return nil
	case shapeOneOf:
		idx, err := answers.GetChosenVariant(selectedVariant)
		if err != nil {
			return &DecodeError{Path: at, Type: dst.Type(), Err: relocate(err, at)}
		}
		return decodeVariant(s, idx, answers, at, dst)
	case shapeAnyOf:
		sel, err := answers.GetChosenVariants(selectedVariants)
		if err != nil {
			return &DecodeError{Path: at, Type: dst.Type(), Err: relocate(err, at)}
		}
		out := reflect.MakeSlice(dst.Type(), len(sel), len(sel))
		for i := range sel {
			itemAt := at.ChildIndex(i)
			item := answers.FilterPrefix(survey.EmptyPath().ChildIndex(i))
			idx, err := item.GetChosenVariant(selectedVariant)
			if err != nil {
				return &DecodeError{Path: itemAt, Type: s.elem.typ, Err: relocate(err, itemAt)}
			}
			if err := decodeVariant(s.elem, idx, item, itemAt, out.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	}
	return fmt.Errorf("elicitation: unknown shape for %s", s.typ)
}

func decodeVariant(s *shape, idx int, answers *survey.Responses, at survey.Path, dst reflect.Value) error {
	e := s.enum
	if e.isString() {
		if idx < 0 || idx >= len(e.strings) {
			return &DecodeError{Path: at, Type: s.typ, Err: fmt.Errorf("variant index %d out of range", idx)}
		}
		dst.SetString(e.strings[idx])
		return nil
	}
	if idx < 0 || idx >= len(e.cases) {
		return &DecodeError{Path: at, Type: s.typ, Err: fmt.Errorf("variant index %d out of range", idx)}
	}

	c, vs := e.cases[idx], s.variants[idx]
	val := reflect.New(vs.typ).Elem()
	var err error
	switch vs.kind {
	case shapeUnit:
	case shapeStruct:
		err = decodeInto(vs, answers, at, val)
	default:
		err = decodeInto(vs, answers.FilterPrefix(survey.PathOf(c.name)), at.Child(c.name), val)
	}
	if err != nil {
		return err
	}
	if s.ptrCase[idx] {
		p := reflect.New(vs.typ)
		p.Elem().Set(val)
		val = p
	}
	dst.Set(val)
	return nil
}

// absent reports whether an optional field was left out.
func absent(s *shape, sub *survey.Responses) bool {
	if sub.Len() == 0 {
		return true
	}
	return s.kind == shapeLeaf && !sub.HasValue(survey.EmptyPath())
}

// relocate rewrites read errors from a sub-map so they name the absolute path.
func relocate(err error, at survey.Path) error {
	var mp *survey.MissingPathError
	if errors.As(err, &mp) {
		return &survey.MissingPathError{Path: at.Join(mp.Path)}
	}
	var tm *survey.TypeMismatchError
	if errors.As(err, &tm) {
		return &survey.TypeMismatchError{Path: at.Join(tm.Path), Expected: tm.Expected, Actual: tm.Actual}
	}
	return err
}

type leafMismatch struct {
	actual survey.ValueKind
}

func (e *leafMismatch) Error() string { return "unexpected " + e.actual.String() }

func mismatchAt(at survey.Path, k survey.Kind, err error) error {
	var lm *leafMismatch
	if errors.As(err, &lm) {
		want, _ := survey.ExpectedValueKind(k)
		return &survey.TypeMismatchError{Path: at, Expected: want, Actual: lm.actual}
	}
	return err
}

// setLeaf converts an answer into the Go value dst.
func setLeaf(dst reflect.Value, v survey.Value) error {
	bad := &leafMismatch{actual: survey.KindOf(v)}
	switch dst.Kind() {
	case reflect.String:
		s, ok := v.(survey.String)
		if !ok {
			return bad
		}
		dst.SetString(string(s))
	case reflect.Bool:
		b, ok := v.(survey.Bool)
		if !ok {
			return bad
		}
		dst.SetBool(bool(b))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := v.(survey.Int)
		if !ok {
			return bad
		}
		return setInt(dst, int64(i))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := v.(survey.Int)
		if !ok {
			return bad
		}
		return setInt(dst, int64(i))
	case reflect.Float32, reflect.Float64:
		f, ok := v.(survey.Float)
		if !ok {
			return bad
		}
		if dst.OverflowFloat(float64(f)) {
			return fmt.Errorf("%v overflows %s", float64(f), dst.Type())
		}
		dst.SetFloat(float64(f))
	case reflect.Slice:
		return setList(dst, v, bad)
	default:
		return fmt.Errorf("cannot store %s in %s", survey.KindOf(v), dst.Type())
	}
	return nil
}

func setInt(dst reflect.Value, i int64) error {
	switch dst.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if i < 0 || dst.OverflowUint(uint64(i)) {
			return fmt.Errorf("%d overflows %s", i, dst.Type())
		}
		dst.SetUint(uint64(i))
	default:
		if dst.OverflowInt(i) {
			return fmt.Errorf("%d overflows %s", i, dst.Type())
		}
		dst.SetInt(i)
	}
	return nil
}

func setList(dst reflect.Value, v survey.Value, bad error) error {
	var n int
	var at func(i int) survey.Value
	switch lv := v.(type) {
	case survey.StringList:
		n, at = len(lv), func(i int) survey.Value { return survey.String(lv[i]) }
	case survey.IntList:
		n, at = len(lv), func(i int) survey.Value { return survey.Int(lv[i]) }
	case survey.FloatList:
		n, at = len(lv), func(i int) survey.Value { return survey.Float(lv[i]) }
	default:
		return bad
	}
	out := reflect.MakeSlice(dst.Type(), n, n)
	for i := 0; i < n; i++ {
		if err := setLeaf(out.Index(i), at(i)); err != nil {
			var lm *leafMismatch
			if errors.As(err, &lm) {
				return bad
			}
			return err
		}
	}
	dst.Set(out)
	return nil
}
