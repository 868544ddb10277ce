package survey

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

type jsonEntry struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes r as an object keyed by path text. Each entry records
// the answer kind alongside its payload so the map round-trips exactly:
//
//	{"age":{"type":"Int","value":30},"role.selected_variant":{"type":"ChosenVariant","value":1}}
func (r *Responses) MarshalJSON() ([]byte, error) {
	out := make(map[string]jsonEntry, len(r.values))
	for p, v := range r.values {
		raw, err := json.Marshal(Interface(v))
		if err != nil {
			return nil, fmt.Errorf("survey: encode %q: %w", p.raw, err)
		}
		out[p.raw] = jsonEntry{Type: v.Kind().String(), Value: raw}
	}
	return json.Marshal(out)
}

// UnmarshalJSON replaces the contents of r with the decoded entries.
func (r *Responses) UnmarshalJSON(data []byte) error {
	var in map[string]jsonEntry
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("survey: decode responses: %w", err)
	}
	values := make(map[Path]Value, len(in))
	for key, e := range in {
		kind, ok := ParseValueKind(e.Type)
		if !ok {
			return fmt.Errorf("survey: decode %q: unknown answer type %q", key, e.Type)
		}
		v, err := decodeValue(kind, e.Value)
		if err != nil {
			return fmt.Errorf("survey: decode %q: %w", key, err)
		}
		values[ParsePath(key)] = v
	}
	r.values = values
	return nil
}

func decodeValue(kind ValueKind, raw json.RawMessage) (Value, error) {
	var err error
	switch kind {
	case KindString:
		var v string
		err = json.Unmarshal(raw, &v)
		return String(v), err
	case KindInt:
		var v int64
		err = json.Unmarshal(raw, &v)
		return Int(v), err
	case KindFloat:
		var v float64
		err = json.Unmarshal(raw, &v)
		return Float(v), err
	case KindBool:
		var v bool
		err = json.Unmarshal(raw, &v)
		return Bool(v), err
	case KindChosenVariant:
		var v int
		err = json.Unmarshal(raw, &v)
		return ChosenVariant(v), err
	case KindChosenVariants:
		var v []int
		err = json.Unmarshal(raw, &v)
		return ChosenVariants(v), err
	case KindStringList:
		var v []string
		err = json.Unmarshal(raw, &v)
		return StringList(v), err
	case KindIntList:
		var v []int64
		err = json.Unmarshal(raw, &v)
		return IntList(v), err
	case KindFloatList:
		var v []float64
		err = json.Unmarshal(raw, &v)
		return FloatList(v), err
	}
	return nil, fmt.Errorf("unsupported answer type %s", kind)
}

// Nested returns r in the nested JSON form described by surveyschema: path
// segments become nested maps and each AnyOf becomes a slice with one map
// per chosen item. Unlike MarshalJSON the result does not record answer
// kinds, so it cannot be decoded back into a Responses.
func (r *Responses) Nested() (map[string]any, error) {
	root := map[string]any{}
	for _, p := range r.Paths() {
		v, _ := r.Get(p)
		if err := nestValue(root, p, Interface(v)); err != nil {
			return nil, err
		}
	}
	if err := nestItems(root); err != nil {
		return nil, err
	}
	if _, ok := root[SelectedVariantsKey]; ok {
		return nil, fmt.Errorf("survey: nest: selection %q at the root", SelectedVariantsKey)
	}
	return root, nil
}

func nestValue(m map[string]any, p Path, v any) error {
	last, _ := p.Last()
	for seg := range p.Parent().Segments() {
		next, ok := m[seg]
		if !ok {
			child := map[string]any{}
			m[seg] = child
			m = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("survey: nest %q: an answer is stored above it", p.raw)
		}
		m = child
	}
	if _, ok := m[last]; ok {
		return fmt.Errorf("survey: nest %q: answers are stored below it", p.raw)
	}
	m[last] = v
	return nil
}

// nestItems replaces every map holding an AnyOf selection with the slice of
// its items, bottom-up.
func nestItems(m map[string]any) error {
	for k, v := range m {
		child, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if err := nestItems(child); err != nil {
			return err
		}
		sel, ok := child[SelectedVariantsKey]
		if !ok {
			continue
		}
		chosen, ok := sel.([]int)
		if !ok {
			return fmt.Errorf("survey: nest %q: selection has type %T", k, sel)
		}
		items := make([]any, len(chosen))
		for i, idx := range chosen {
			item, ok := child[strconv.Itoa(i)]
			if !ok {
				item = map[string]any{SelectedVariantKey: idx}
			}
			items[i] = item
		}
		for key := range child {
			if key == SelectedVariantsKey {
				continue
			}
			if i, err := strconv.Atoi(key); err != nil || i < 0 || i >= len(chosen) {
				return fmt.Errorf("survey: nest %q: unexpected answer %q beside the item selection", k, key)
			}
		}
		m[k] = items
	}
	return nil
}
