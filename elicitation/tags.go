package elicitation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// fieldTag is the parsed form of a `survey` struct tag.
type fieldTag struct {
	name      string
	skip      bool
	ask       string
	help      string
	mask      bool
	multiline bool
	min, max  *float64
	minItems  *int
	maxItems  *int
}

// parseFieldTag reads the `survey`, `ask`, `help` and `json` tags of f. The
// separate ask and help tags win over their inline forms and may contain
// commas.
func parseFieldTag(f reflect.StructField) (fieldTag, error) {
	var t fieldTag
	raw, hasTag := f.Tag.Lookup("survey")
	if raw == "-" {
		t.skip = true
		return t, nil
	}
	parts := strings.Split(raw, ",")
	if hasTag {
		t.name = parts[0]
	}
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		key, val, _ := strings.Cut(p, "=")
		switch key {
		case "skip":
			t.skip = true
		case "ask":
			t.ask = val
		case "help":
			t.help = val
		case "mask":
			t.mask = true
		case "multiline":
			t.multiline = true
		case "min", "max":
			fv, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return t, fmt.Errorf("field %s: bad %s %q", f.Name, key, val)
			}
			if key == "min" {
				t.min = &fv
			} else {
				t.max = &fv
			}
		case "minItems", "maxItems":
			iv, err := strconv.Atoi(val)
			if err != nil {
				return t, fmt.Errorf("field %s: bad %s %q", f.Name, key, val)
			}
			if key == "minItems" {
				t.minItems = &iv
			} else {
				t.maxItems = &iv
			}
		default:
			return t, fmt.Errorf("field %s: unknown survey tag option %q", f.Name, key)
		}
	}
	if ask, ok := f.Tag.Lookup("ask"); ok {
		t.ask = ask
	}
	if help, ok := f.Tag.Lookup("help"); ok {
		t.help = help
	}
	if t.name == "" {
		if js := f.Tag.Get("json"); js != "" && js != "-" {
			t.name, _, _ = strings.Cut(js, ",")
		}
	}
	if t.name == "" {
		t.name = snakeCase(f.Name)
	}
	return t, nil
}

// snakeCase turns Go identifiers into path segments: "UserName" becomes
// "user_name" and "HTTPPort" becomes "http_port".
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
