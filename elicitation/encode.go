package elicitation

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/ggoodman/interview-go/survey"
)

// Encode is the inverse of Decode: it lays out v (a struct or pointer to
// one) as the answer map an interview producing v would have collected. Nil
// pointers and nil sum-type values are left out.
func Encode(v any) (*survey.Responses, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.New("elicitation: Encode of nil pointer")
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, errors.New("elicitation: Encode of nil value")
	}
	c, err := compiledFor(rv.Type())
	if err != nil {
		return nil, err
	}
	out := survey.NewResponses()
	if err := encodeInto(c.shape, rv, survey.EmptyPath(), out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeInto(s *shape, rv reflect.Value, at survey.Path, out *survey.Responses) error {
	switch s.kind {
	case shapeUnit:
		return nil
	case shapeLeaf:
		v, err := valueOf(rv)
		if err != nil {
			return fmt.Errorf("elicitation: encode %q: %w", at.String(), err)
		}
		out.Insert(at, v)
		return nil
	case shapeStruct:
		for _, f := range s.fields {
			fv := rv.Field(f.index)
			if f.ptr {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if err := encodeInto(f.shape, fv, at.Child(f.name), out); err != nil {
				return err
			}
		}
		return nil
	case shapeOneOf:
		if rv.Kind() == reflect.Interface && rv.IsNil() {
			return nil
		}
		idx, err := s.enum.caseIndex(rv)
		if err != nil {
			return fmt.Errorf("elicitation: encode %q: %w", at.String(), err)
		}
		out.Insert(at.Child(survey.SelectedVariantKey), survey.ChosenVariant(idx))
		return encodeVariant(s, idx, rv, at, out)
	case shapeAnyOf:
		sel := make(survey.ChosenVariants, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item := rv.Index(i)
			idx, err := s.enum.caseIndex(item)
			if err != nil {
				return fmt.Errorf("elicitation: encode %q: %w", at.ChildIndex(i).String(), err)
			}
			sel = append(sel, idx)
			itemAt := at.ChildIndex(i)
			out.Insert(itemAt.Child(survey.SelectedVariantKey), survey.ChosenVariant(idx))
			if err := encodeVariant(s.elem, idx, item, itemAt, out); err != nil {
				return err
			}
		}
		out.Insert(at.Child(survey.SelectedVariantsKey), sel)
		return nil
	}
	return fmt.Errorf("elicitation: unknown shape for %s", s.typ)
}

func encodeVariant(s *shape, idx int, rv reflect.Value, at survey.Path, out *survey.Responses) error {
	if s.enum.isString() {
		return nil
	}
	val := rv
	if val.Kind() == reflect.Interface {
		val = val.Elem()
	}
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	vs := s.variants[idx]
	switch vs.kind {
	case shapeUnit:
		return nil
	case shapeStruct:
		return encodeInto(vs, val, at, out)
	default:
		return encodeInto(vs, val, at.Child(s.enum.cases[idx].name), out)
	}
}

// ValueOf converts a Go scalar or slice into the matching answer value:
// strings, bools, integers, floats and slices of strings, integers or floats.
// A survey.Value is returned unchanged.
func ValueOf(v any) (survey.Value, error) {
	if sv, ok := v.(survey.Value); ok {
		return sv, nil
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errors.New("elicitation: nil value")
	}
	return valueOf(rv)
}

func valueOf(rv reflect.Value) (survey.Value, error) {
	switch rv.Kind() {
	case reflect.String:
		return survey.String(rv.String()), nil
	case reflect.Bool:
		return survey.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return survey.Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%d does not fit in an int64", u)
		}
		return survey.Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return survey.Float(rv.Float()), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, errors.New("nil pointer")
		}
		return valueOf(rv.Elem())
	case reflect.Slice:
		return listOf(rv)
	}
	return nil, fmt.Errorf("no answer kind for %s", rv.Type())
}

func listOf(rv reflect.Value) (survey.Value, error) {
	n := rv.Len()
	switch rv.Type().Elem().Kind() {
	case reflect.String:
		out := make(survey.StringList, n)
		for i := range n {
			out[i] = rv.Index(i).String()
		}
		return out, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out := make(survey.IntList, n)
		for i := range n {
			v, err := valueOf(rv.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = int64(v.(survey.Int))
		}
		return out, nil
	case reflect.Float32, reflect.Float64:
		out := make(survey.FloatList, n)
		for i := range n {
			out[i] = rv.Index(i).Float()
		}
		return out, nil
	}
	return nil, fmt.Errorf("no answer kind for %s", rv.Type())
}
