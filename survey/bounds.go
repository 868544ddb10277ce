package survey

import (
	"errors"
	"fmt"
	"strconv"
)

// CheckBounds applies the static constraints of k (numeric min/max, list
// length and per-element bounds) to v. The returned error carries a message
// suitable for showing to the user. Kinds without constraints always pass.
func CheckBounds(k Kind, v Value) error {
	switch kk := k.(type) {
	case IntInput:
		if iv, ok := v.(Int); ok {
			return checkInt(kk, int64(iv))
		}
	case FloatInput:
		if fv, ok := v.(Float); ok {
			return checkFloat(kk, float64(fv))
		}
	case List:
		return checkList(kk, v)
	}
	return nil
}

func checkInt(k IntInput, v int64) error {
	if k.Min != nil && v < *k.Min {
		return Problemf("Value must be at least %d", *k.Min)
	}
	if k.Max != nil && v > *k.Max {
		return Problemf("Value must be at most %d", *k.Max)
	}
	return nil
}

func checkFloat(k FloatInput, v float64) error {
	if k.Min != nil && v < *k.Min {
		return Problemf("Value must be at least %s", formatFloat(*k.Min))
	}
	if k.Max != nil && v > *k.Max {
		return Problemf("Value must be at most %s", formatFloat(*k.Max))
	}
	return nil
}

func checkList(k List, v Value) error {
	n := -1
	var elemErr error
	switch lv := v.(type) {
	case StringList:
		n = len(lv)
	case IntList:
		n = len(lv)
		if ek, ok := k.Element.(IntInput); ok {
			for i, x := range lv {
				if err := checkInt(ek, x); err != nil {
					elemErr = Problemf("Item %d: %w", i+1, err)
					break
				}
			}
		}
	case FloatList:
		n = len(lv)
		if ek, ok := k.Element.(FloatInput); ok {
			for i, x := range lv {
				if err := checkFloat(ek, x); err != nil {
					elemErr = Problemf("Item %d: %w", i+1, err)
					break
				}
			}
		}
	}
	if n < 0 {
		return nil
	}
	if k.MinItems != nil && n < *k.MinItems {
		return Problemf("Enter at least %d item%s", *k.MinItems, plural(*k.MinItems))
	}
	if k.MaxItems != nil && n > *k.MaxItems {
		return Problemf("Enter at most %d item%s", *k.MaxItems, plural(*k.MaxItems))
	}
	return elemErr
}

// checkKindBounds reports definition-time problems with the bounds of k.
func checkKindBounds(k Kind) error {
	switch kk := k.(type) {
	case IntInput:
		if kk.Min != nil && kk.Max != nil && *kk.Min > *kk.Max {
			return errors.New("min exceeds max")
		}
	case FloatInput:
		if kk.Min != nil && kk.Max != nil && *kk.Min > *kk.Max {
			return errors.New("min exceeds max")
		}
	case List:
		switch kk.Element.(type) {
		case Input, IntInput, FloatInput:
		default:
			return fmt.Errorf("list element must be input, int or float, got %s", kindName(kk.Element))
		}
		if kk.MinItems != nil && *kk.MinItems < 0 {
			return errors.New("minItems is negative")
		}
		if kk.MinItems != nil && kk.MaxItems != nil && *kk.MinItems > *kk.MaxItems {
			return errors.New("minItems exceeds maxItems")
		}
		return checkKindBounds(kk.Element)
	}
	return nil
}

func kindName(k Kind) string {
	if k == nil {
		return "<nil>"
	}
	return k.KindName()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
