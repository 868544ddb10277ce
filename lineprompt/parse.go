package lineprompt

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ggoodman/interview-go/interview"
	"github.com/ggoodman/interview-go/survey"
)

func leafPrompt(req interview.LeafRequest) string {
	var b strings.Builder
	b.WriteString("? ")
	b.WriteString(req.Prompt)
	switch req.Kind.(type) {
	case survey.Confirm:
		b.WriteString(" (y/n)")
	case survey.List:
		b.WriteString(" (comma-separated)")
	case survey.Multiline:
		b.WriteString(` (finish with a line containing only ".")`)
	}
	if req.Suggestion != nil {
		fmt.Fprintf(&b, " [%s]", display(req.Kind, req.Suggestion))
	}
	b.WriteString(": ")
	return b.String()
}

func menuPrompt(req interview.SelectionRequest) string {
	var b strings.Builder
	if req.Multiple {
		b.WriteString("Choose any (numbers, - for none)")
		if len(req.Preselected) > 0 {
			fmt.Fprintf(&b, " [%s]", joinNumbers(req.Preselected))
		}
	} else {
		b.WriteString("Choose one")
		if len(req.Preselected) == 1 {
			fmt.Fprintf(&b, " [%d]", req.Preselected[0]+1)
		}
	}
	b.WriteString(": ")
	return b.String()
}

func joinNumbers(idx []int) string {
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = strconv.Itoa(n + 1)
	}
	return strings.Join(parts, ", ")
}

// display renders a suggestion the way it would be typed.
func display(k survey.Kind, v survey.Value) string {
	if m, ok := k.(survey.Masked); ok {
		if s, ok := v.(survey.String); ok {
			mask := m.Mask
			if mask == 0 {
				mask = '*'
			}
			return strings.Repeat(string(mask), utf8.RuneCountInString(string(s)))
		}
	}
	switch vv := v.(type) {
	case survey.String:
		return strings.ReplaceAll(string(vv), "\n", " / ")
	case survey.Int:
		return strconv.FormatInt(int64(vv), 10)
	case survey.Float:
		return strconv.FormatFloat(float64(vv), 'g', -1, 64)
	case survey.Bool:
		if vv {
			return "y"
		}
		return "n"
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
		for i, f := range vv {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

var (
	errWholeNumber = survey.Problemf("Enter a whole number")
	errNumber      = survey.Problemf("Enter a number")
	errYesNo       = survey.Problemf("Answer y or n")
)

// parseLeaf converts typed text into the value for kind k. Empty input takes
// the suggestion when there is one.
func parseLeaf(k survey.Kind, text string, suggestion survey.Value) (survey.Value, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" && suggestion != nil {
		return suggestion, nil
	}
	switch kk := k.(type) {
	case survey.Input:
		return survey.String(trimmed), nil
	case survey.Masked, survey.Multiline:
		return survey.String(text), nil
	case survey.IntInput:
		return parseInt(trimmed)
	case survey.FloatInput:
		return parseFloat(trimmed)
	case survey.Confirm:
		return parseBool(trimmed)
	case survey.List:
		return parseList(kk.Element, trimmed)
	}
	return nil, fmt.Errorf("lineprompt: cannot ask a %s question", k.KindName())
}

func parseInt(s string) (survey.Value, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, errWholeNumber
	}
	return survey.Int(n), nil
}

func parseFloat(s string) (survey.Value, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errNumber
	}
	return survey.Float(f), nil
}

func parseBool(s string) (survey.Value, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "true":
		return survey.Bool(true), nil
	case "n", "no", "false":
		return survey.Bool(false), nil
	}
	return nil, errYesNo
}

func parseList(elem survey.Kind, s string) (survey.Value, error) {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	switch elem.(type) {
	case survey.IntInput:
		out := make(survey.IntList, 0, len(items))
		for i, item := range items {
			v, err := parseInt(item)
			if err != nil {
				return nil, survey.Problemf("Item %d: %w", i+1, err)
			}
			out = append(out, int64(v.(survey.Int)))
		}
		return out, nil
	case survey.FloatInput:
		out := make(survey.FloatList, 0, len(items))
		for i, item := range items {
			v, err := parseFloat(item)
			if err != nil {
				return nil, survey.Problemf("Item %d: %w", i+1, err)
			}
			out = append(out, float64(v.(survey.Float)))
		}
		return out, nil
	}
	return survey.StringList(append([]string{}, items...)), nil
}

// parseSelection reads 1-based option numbers separated by commas or spaces.
func parseSelection(line string, req interview.SelectionRequest) ([]int, error) {
	t := strings.TrimSpace(line)
	switch {
	case t == "" && req.Multiple:
		return append([]int{}, req.Preselected...), nil
	case t == "" && len(req.Preselected) == 1:
		return slices.Clone(req.Preselected), nil
	case t == "":
		return nil, survey.Problemf("Choose an option")
	case t == "-":
		return []int{}, nil
	}

	fields := strings.FieldsFunc(t, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, survey.Problemf("Enter option numbers between 1 and %d", len(req.Options))
		}
		if n < 1 || n > len(req.Options) {
			return nil, survey.Problemf("Option %d does not exist", n)
		}
		out = append(out, n-1)
	}
	if !req.Multiple && len(out) != 1 {
		return nil, survey.Problemf("Choose exactly one option")
	}
	return out, nil
}
