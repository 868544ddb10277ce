package survey

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Responses maps paths to answers. Keys are unique; insertion order is not
// retained. The zero value is an empty map ready to use.
type Responses struct {
	values map[Path]Value
}

// NewResponses returns an empty answer map.
func NewResponses() *Responses {
	return &Responses{values: make(map[Path]Value)}
}

// Insert stores v at path, replacing any previous answer. A nil v removes the
// entry.
func (r *Responses) Insert(path Path, v Value) {
	if v == nil {
		delete(r.values, path)
		return
	}
	if r.values == nil {
		r.values = make(map[Path]Value)
	}
	r.values[path] = v
}

// Get returns the answer at path.
func (r *Responses) Get(path Path) (Value, bool) {
	v, ok := r.values[path]
	return v, ok
}

// Remove deletes and returns the answer at path.
func (r *Responses) Remove(path Path) (Value, bool) {
	v, ok := r.values[path]
	if ok {
		delete(r.values, path)
	}
	return v, ok
}

func (r *Responses) Contains(path Path) bool {
	_, ok := r.values[path]
	return ok
}

func (r *Responses) Len() int { return len(r.values) }

// FilterPrefix returns the entries whose path equals prefix or continues it
// by whole segments, with prefix stripped from their keys. An exact match is
// keyed by the empty path.
func (r *Responses) FilterPrefix(prefix Path) *Responses {
	out := NewResponses()
	for p, v := range r.values {
		if rest, ok := p.StripPrefix(prefix); ok {
			out.values[rest] = v
		}
	}
	return out
}

// Extend copies every entry of other into r. Entries from other win.
func (r *Responses) Extend(other *Responses) {
	if other == nil || len(other.values) == 0 {
		return
	}
	if r.values == nil {
		r.values = make(map[Path]Value, len(other.values))
	}
	maps.Copy(r.values, other.values)
}

// Clone returns a deep copy of r.
func (r *Responses) Clone() *Responses {
	out := &Responses{values: make(map[Path]Value, len(r.values))}
	for p, v := range r.values {
		out.values[p] = CloneValue(v)
	}
	return out
}

// All iterates over every entry in unspecified order.
func (r *Responses) All() iter.Seq2[Path, Value] {
	return func(yield func(Path, Value) bool) {
		for p, v := range r.values {
			if !yield(p, v) {
				return
			}
		}
	}
}

// Paths returns every key sorted by text.
func (r *Responses) Paths() []Path {
	return slices.SortedFunc(maps.Keys(r.values), func(a, b Path) int {
		return strings.Compare(a.raw, b.raw)
	})
}

// HasValue reports whether a meaningful answer is stored at path. A present
// but empty string counts as no value.
func (r *Responses) HasValue(path Path) bool {
	v, ok := r.values[path]
	if !ok {
		return false
	}
	if s, isString := v.(String); isString {
		return s != ""
	}
	return true
}

func lookup[T Value](r *Responses, path Path, want ValueKind) (T, error) {
	var zero T
	v, ok := r.values[path]
	if !ok {
		return zero, &MissingPathError{Path: path}
	}
	tv, ok := v.(T)
	if !ok {
		return zero, &TypeMismatchError{Path: path, Expected: want, Actual: v.Kind()}
	}
	return tv, nil
}

func (r *Responses) GetString(path Path) (string, error) {
	v, err := lookup[String](r, path, KindString)
	return string(v), err
}

func (r *Responses) GetInt(path Path) (int64, error) {
	v, err := lookup[Int](r, path, KindInt)
	return int64(v), err
}

func (r *Responses) GetFloat(path Path) (float64, error) {
	v, err := lookup[Float](r, path, KindFloat)
	return float64(v), err
}

func (r *Responses) GetBool(path Path) (bool, error) {
	v, err := lookup[Bool](r, path, KindBool)
	return bool(v), err
}

func (r *Responses) GetChosenVariant(path Path) (int, error) {
	v, err := lookup[ChosenVariant](r, path, KindChosenVariant)
	return int(v), err
}

// GetChosenVariants returns a copy of the selection stored at path.
func (r *Responses) GetChosenVariants(path Path) ([]int, error) {
	v, err := lookup[ChosenVariants](r, path, KindChosenVariants)
	return slices.Clone([]int(v)), err
}

func (r *Responses) GetStringList(path Path) ([]string, error) {
	v, err := lookup[StringList](r, path, KindStringList)
	return slices.Clone([]string(v)), err
}

func (r *Responses) GetIntList(path Path) ([]int64, error) {
	v, err := lookup[IntList](r, path, KindIntList)
	return slices.Clone([]int64(v)), err
}

func (r *Responses) GetFloatList(path Path) ([]float64, error) {
	v, err := lookup[FloatList](r, path, KindFloatList)
	return slices.Clone([]float64(v)), err
}
