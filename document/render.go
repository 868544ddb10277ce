package document

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/ggoodman/interview-go/survey"
)

type page struct {
	Title      string
	Stylesheet string
	Submit     string
	Prelude    string
	Epilogue   string
	Fields     []field
}

// field is one rendered question. Control selects the template branch.
type field struct {
	Control     string
	Type        string
	ID          string
	Name        string
	Label       string
	Help        string
	Value       string
	Checked     bool
	Step        string
	Min         string
	Max         string
	Placeholder string
	Fields      []field
	Options     []option
}

type option struct {
	ID      string
	Value   string
	Label   string
	Checked bool
	Fields  []field
}

// RenderHTML writes def as a static HTML form. Input names are the answer
// paths the interactive backends would record. Assumed questions are left
// out; suggestions are pre-filled, except for masked inputs. Nothing is
// written when def is invalid.
func RenderHTML(w io.Writer, def *survey.Definition, opts ...Option) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition", survey.ErrInvalidDefinition)
	}
	if err := def.Validate(); err != nil {
		return err
	}
	p := &page{Submit: "Submit", Prelude: def.Prelude, Epilogue: def.Epilogue}
	for _, opt := range opts {
		opt(p)
	}
	p.Fields = questions(survey.EmptyPath(), def.Questions)

	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page", p); err != nil {
		return fmt.Errorf("document: render: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func questions(prefix survey.Path, qs []survey.Question) []field {
	var out []field
	for _, q := range qs {
		if f, ok := question(prefix.Join(q.Path), q); ok {
			out = append(out, f)
		}
	}
	return out
}

func question(full survey.Path, q survey.Question) (field, bool) {
	if q.Default.IsAssumed() {
		return field{}, false
	}
	f := field{
		ID:    fieldID(full),
		Name:  full.String(),
		Label: survey.DisplayPrompt(q, full),
		Help:  q.Help,
	}
	suggestion, ok := q.Default.Suggestion()
	if !ok {
		suggestion = survey.StaticDefault(q.Kind)
	}

	switch k := q.Kind.(type) {
	case survey.Unit:
		return field{}, false
	case survey.AllOf:
		f.Control = "group"
		f.Fields = questions(full, k.Questions)
	case survey.OneOf:
		f.Control = "one_of"
		f.Name = full.Child(survey.SelectedVariantKey).String()
		for i, v := range k.Variants {
			f.Options = append(f.Options, option{
				ID:      f.ID + "-" + v.Name,
				Value:   strconv.Itoa(i),
				Label:   v.DisplayName(),
				Checked: k.Default != nil && *k.Default == i,
				Fields:  followUp(full, v),
			})
		}
	case survey.AnyOf:
		// Items are numbered at runtime; the document lays out one item
		// per variant, numbered by variant.
		f.Control = "any_of"
		f.Name = full.Child(survey.SelectedVariantsKey).String()
		for i, v := range k.Variants {
			f.Options = append(f.Options, option{
				ID:      f.ID + "-" + strconv.Itoa(i),
				Value:   strconv.Itoa(i),
				Label:   v.DisplayName(),
				Checked: slices.Contains(k.Defaults, i),
				Fields:  followUp(full.ChildIndex(i), v),
			})
		}
	case survey.Input:
		f.Control, f.Type = "input", "text"
		f.Value = text(suggestion)
	case survey.Masked:
		f.Control, f.Type = "input", "password"
	case survey.Multiline:
		f.Control = "textarea"
		f.Value = text(suggestion)
	case survey.IntInput:
		f.Control, f.Type, f.Step = "input", "number", "1"
		if k.Min != nil {
			f.Min = strconv.FormatInt(*k.Min, 10)
		}
		if k.Max != nil {
			f.Max = strconv.FormatInt(*k.Max, 10)
		}
		f.Value = text(suggestion)
	case survey.FloatInput:
		f.Control, f.Type, f.Step = "input", "number", "any"
		if k.Min != nil {
			f.Min = formatFloat(*k.Min)
		}
		if k.Max != nil {
			f.Max = formatFloat(*k.Max)
		}
		f.Value = text(suggestion)
	case survey.Confirm:
		f.Control = "checkbox"
		b, _ := suggestion.(survey.Bool)
		f.Checked = bool(b)
	case survey.List:
		f.Control, f.Type = "input", "text"
		f.Placeholder = listHint(k.Element)
		f.Value = text(suggestion)
	default:
		return field{}, false
	}
	return f, true
}

// followUp lays out the questions a chosen variant asks, at the paths the
// engine records them under.
func followUp(prefix survey.Path, v survey.Variant) []field {
	if all, ok := v.Kind.(survey.AllOf); ok {
		return questions(prefix, all.Questions)
	}
	q, ok := v.FollowUp()
	if !ok {
		return nil
	}
	f, ok := question(prefix.Join(q.Path), q)
	if !ok {
		return nil
	}
	return []field{f}
}

func fieldID(p survey.Path) string {
	return "q-" + strings.ReplaceAll(p.String(), ".", "-")
}

func listHint(elem survey.Kind) string {
	switch elem.(type) {
	case survey.IntInput:
		return "comma-separated integers"
	case survey.FloatInput:
		return "comma-separated numbers"
	}
	return "comma-separated text"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// text renders a suggestion as form input text.
func text(v survey.Value) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case survey.String:
		return string(vv)
	case survey.Int:
		return strconv.FormatInt(int64(vv), 10)
	case survey.Float:
		return formatFloat(float64(vv))
	case survey.StringList:
		return strings.Join(vv, ", ")
	case survey.IntList:
		parts := make([]string, len(vv))
		for i, n := range vv {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, ", ")
	case survey.FloatList:
		parts := make([]string, len(vv))
		for i, n := range vv {
			parts[i] = formatFloat(n)
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
