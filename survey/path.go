package survey

import (
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reserved leaf segments recording which variant(s) of a OneOf / AnyOf were
// chosen. They live directly beneath the structural question's own path.
const (
	SelectedVariantKey  = "selected_variant"
	SelectedVariantsKey = "selected_variants"
)

const pathSep = "."

// Path is an immutable hierarchical key made of non-empty, dot-free segments.
// The zero value is the empty (root) path. Paths are comparable and may be
// used as map keys; equality is structural.
type Path struct {
	raw string
}

// EmptyPath returns the root path.
func EmptyPath() Path { return Path{} }

// ParsePath parses dot-separated text. Empty segments are dropped, so
// "a..b." parses to the same path as "a.b".
func ParsePath(text string) Path {
	return Path{}.Child(text)
}

// PathOf builds a path from individual segments.
func PathOf(segments ...string) Path {
	var p Path
	for _, s := range segments {
		p = p.Child(s)
	}
	return p
}

// Child appends segment and returns the new path. An empty segment is a
// no-op. A segment containing the separator is appended part by part.
func (p Path) Child(segment string) Path {
	if segment == "" {
		return p
	}
	if strings.Contains(segment, pathSep) {
		out := p
		for _, part := range strings.Split(segment, pathSep) {
			out = out.Child(part)
		}
		return out
	}
	if p.raw == "" {
		return Path{raw: segment}
	}
	return Path{raw: p.raw + pathSep + segment}
}

// ChildIndex appends a decimal item index, as used for AnyOf items.
func (p Path) ChildIndex(i int) Path { return p.Child(strconv.Itoa(i)) }

// Join appends every segment of other.
func (p Path) Join(other Path) Path {
	if other.raw == "" {
		return p
	}
	if p.raw == "" {
		return other
	}
	return Path{raw: p.raw + pathSep + other.raw}
}

// String returns the dot-joined text form. The empty path renders as "".
func (p Path) String() string { return p.raw }

// IsEmpty reports whether p is the root path.
func (p Path) IsEmpty() bool { return p.raw == "" }

// Len returns the number of segments.
func (p Path) Len() int {
	if p.raw == "" {
		return 0
	}
	return strings.Count(p.raw, pathSep) + 1
}

// Segments returns a lazy, restartable sequence over the path's segments.
func (p Path) Segments() iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := p.raw
		for rest != "" {
			seg, tail, found := strings.Cut(rest, pathSep)
			if !yield(seg) || !found {
				return
			}
			rest = tail
		}
	}
}

// Parent drops the last segment. The parent of a single-segment path (and of
// the empty path) is the empty path.
func (p Path) Parent() Path {
	if i := strings.LastIndex(p.raw, pathSep); i >= 0 {
		return Path{raw: p.raw[:i]}
	}
	return Path{}
}

// First returns the first segment, if any.
func (p Path) First() (string, bool) {
	if p.raw == "" {
		return "", false
	}
	seg, _, _ := strings.Cut(p.raw, pathSep)
	return seg, true
}

// Last returns the last segment, if any.
func (p Path) Last() (string, bool) {
	if p.raw == "" {
		return "", false
	}
	if i := strings.LastIndex(p.raw, pathSep); i >= 0 {
		return p.raw[i+1:], true
	}
	return p.raw, true
}

// StripPrefix removes prefix from p. It returns the empty path on an exact
// match and the remaining suffix when prefix is a proper, whole-segment
// prefix. Partial segments never match: stripping "add" from "address.x"
// fails. The empty prefix matches every path.
func (p Path) StripPrefix(prefix Path) (Path, bool) {
	switch {
	case prefix.raw == "":
		return p, true
	case p.raw == prefix.raw:
		return Path{}, true
	case len(p.raw) > len(prefix.raw) &&
		strings.HasPrefix(p.raw, prefix.raw) &&
		p.raw[len(prefix.raw)] == pathSep[0]:
		return Path{raw: p.raw[len(prefix.raw)+1:]}, true
	}
	return Path{}, false
}

// StripPrefixString is StripPrefix with a textual prefix.
func (p Path) StripPrefixString(prefix string) (Path, bool) {
	return p.StripPrefix(ParsePath(prefix))
}

// HasPrefix reports whether prefix is p itself or a whole-segment prefix of p.
func (p Path) HasPrefix(prefix Path) bool {
	_, ok := p.StripPrefix(prefix)
	return ok
}

// MarshalText implements encoding.TextMarshaler so paths can key JSON objects.
func (p Path) MarshalText() ([]byte, error) { return []byte(p.raw), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(b []byte) error {
	*p = ParsePath(string(b))
	return nil
}

// DisplayLabel derives a human label from the last segment of p by splitting
// on underscores and title-casing each word: "user_name" becomes "User Name".
func DisplayLabel(p Path) string {
	last, _ := p.Last()
	words := strings.Split(last, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
