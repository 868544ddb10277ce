// Package surveyfile loads question trees from YAML (or JSON) documents, so
// an interview can be defined without writing Go.
//
//	prelude: Tell us about yourself.
//	questions:
//	  - path: name
//	    ask: What is your name?
//	    suggest: Ada
//	  - path: age
//	    kind: int
//	    min: 0
//	    max: 120
//	  - path: role
//	    kind: one_of
//	    default: guest
//	    variants:
//	      - name: guest
//	      - name: admin
//	        label: Administrator
//	        kind: all_of
//	        questions:
//	          - path: level
//
// Question kinds are named input (the default), multiline, masked, int,
// float, confirm, list, unit, all_of, one_of and any_of. A variant without a
// kind carries no data.
package surveyfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ggoodman/interview-go/survey"
)

type document struct {
	Prelude   string         `yaml:"prelude"`
	Epilogue  string         `yaml:"epilogue"`
	Questions []questionSpec `yaml:"questions"`
}

// kindSpec holds the fields shared by questions and variants.
type kindSpec struct {
	Kind      string         `yaml:"kind"`
	Default   *yaml.Node     `yaml:"default"`
	Defaults  []string       `yaml:"defaults"`
	Min       *yaml.Node     `yaml:"min"`
	Max       *yaml.Node     `yaml:"max"`
	Mask      string         `yaml:"mask"`
	Element   string         `yaml:"element"`
	MinItems  *int           `yaml:"min_items"`
	MaxItems  *int           `yaml:"max_items"`
	Questions []questionSpec `yaml:"questions"`
	Variants  []variantSpec  `yaml:"variants"`
}

type questionSpec struct {
	Path     string     `yaml:"path"`
	Ask      string     `yaml:"ask"`
	Help     string     `yaml:"help"`
	Suggest  *yaml.Node `yaml:"suggest"`
	Assume   *yaml.Node `yaml:"assume"`
	kindSpec `yaml:",inline"`
}

type variantSpec struct {
	Name     string `yaml:"name"`
	Label    string `yaml:"label"`
	kindSpec `yaml:",inline"`
}

// Error reports a problem at one question of a survey file.
type Error struct {
	// Path is the full path of the offending question, empty for
	// document-level problems.
	Path survey.Path
	Line int
	Err  error
}

func (e *Error) Error() string {
	where := "surveyfile"
	if e.Line > 0 {
		where = fmt.Sprintf("surveyfile: line %d", e.Line)
	}
	if e.Path.IsEmpty() {
		return fmt.Sprintf("%s: %v", where, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", where, e.Path.String(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Load reads and parses the survey file at path.
func Load(path string) (*survey.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse builds a validated definition from a YAML or JSON document. Unknown
// fields are rejected.
func Parse(data []byte) (*survey.Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &Error{Err: errors.New("empty document")}
		}
		return nil, &Error{Err: err}
	}

	qs, err := questions(survey.EmptyPath(), doc.Questions)
	if err != nil {
		return nil, err
	}
	def := &survey.Definition{Prelude: doc.Prelude, Epilogue: doc.Epilogue, Questions: qs}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func questions(prefix survey.Path, specs []questionSpec) ([]survey.Question, error) {
	out := make([]survey.Question, 0, len(specs))
	for _, s := range specs {
		q, err := question(prefix, s)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func question(prefix survey.Path, s questionSpec) (survey.Question, error) {
	path := survey.ParsePath(s.Path)
	full := prefix.Join(path)
	fail := func(line int, err error) (survey.Question, error) {
		return survey.Question{}, &Error{Path: full, Line: line, Err: err}
	}
	if path.IsEmpty() {
		return fail(0, errors.New("question without a path"))
	}

	name := s.Kind
	if name == "" {
		name = "input"
		if len(s.Questions) > 0 {
			name = "all_of"
		}
	}
	k, err := kind(full, name, s.kindSpec)
	if err != nil {
		return survey.Question{}, err
	}

	q := survey.Question{Path: path, Prompt: s.Ask, Help: s.Help, Kind: k}
	switch {
	case s.Suggest != nil && s.Assume != nil:
		return fail(s.Suggest.Line, errors.New("suggest and assume are exclusive"))
	case s.Suggest != nil:
		v, err := value(k, s.Suggest)
		if err != nil {
			return fail(s.Suggest.Line, err)
		}
		q.Default = survey.Suggest(v)
	case s.Assume != nil:
		v, err := value(k, s.Assume)
		if err != nil {
			return fail(s.Assume.Line, err)
		}
		q.Default = survey.Assume(v)
	}
	return q, nil
}

// kind builds the named kind. full is used for error reporting and as the
// prefix of nested questions.
func kind(full survey.Path, name string, s kindSpec) (survey.Kind, error) {
	fail := func(line int, format string, args ...any) (survey.Kind, error) {
		return nil, &Error{Path: full, Line: line, Err: fmt.Errorf(format, args...)}
	}
	line := func(n *yaml.Node) int {
		if n == nil {
			return 0
		}
		return n.Line
	}

	switch name {
	case "unit":
		return survey.Unit{}, nil
	case "input", "multiline":
		var def *string
		if s.Default != nil {
			var v string
			if err := s.Default.Decode(&v); err != nil {
				return fail(s.Default.Line, "default: %v", err)
			}
			def = &v
		}
		if name == "multiline" {
			return survey.Multiline{Default: def}, nil
		}
		return survey.Input{Default: def}, nil
	case "masked":
		k := survey.Masked{}
		if s.Mask != "" {
			r, size := utf8.DecodeRuneInString(s.Mask)
			if size != len(s.Mask) {
				return fail(0, "mask must be a single character, got %q", s.Mask)
			}
			k.Mask = r
		}
		return k, nil
	case "int":
		var k survey.IntInput
		for _, f := range []struct {
			n   *yaml.Node
			dst **int64
		}{{s.Default, &k.Default}, {s.Min, &k.Min}, {s.Max, &k.Max}} {
			if f.n == nil {
				continue
			}
			var v int64
			if err := f.n.Decode(&v); err != nil {
				return fail(f.n.Line, "expected a whole number: %v", err)
			}
			*f.dst = &v
		}
		return k, nil
	case "float":
		var k survey.FloatInput
		for _, f := range []struct {
			n   *yaml.Node
			dst **float64
		}{{s.Default, &k.Default}, {s.Min, &k.Min}, {s.Max, &k.Max}} {
			if f.n == nil {
				continue
			}
			var v float64
			if err := f.n.Decode(&v); err != nil {
				return fail(f.n.Line, "expected a number: %v", err)
			}
			*f.dst = &v
		}
		return k, nil
	case "confirm":
		var k survey.Confirm
		if s.Default != nil {
			if err := s.Default.Decode(&k.Default); err != nil {
				return fail(s.Default.Line, "default: %v", err)
			}
		}
		return k, nil
	case "list":
		elemName := s.Element
		if elemName == "" {
			elemName = "input"
		}
		elem, err := kind(full, elemName, kindSpec{Min: s.Min, Max: s.Max})
		if err != nil {
			return nil, err
		}
		return survey.List{Element: elem, MinItems: s.MinItems, MaxItems: s.MaxItems}, nil
	case "all_of":
		qs, err := questions(full, s.Questions)
		if err != nil {
			return nil, err
		}
		return survey.AllOf{Questions: qs}, nil
	case "one_of":
		vs, err := variants(full, s.Variants)
		if err != nil {
			return nil, err
		}
		k := survey.OneOf{Variants: vs}
		if s.Default != nil {
			var chosen string
			if err := s.Default.Decode(&chosen); err != nil {
				return fail(s.Default.Line, "default: %v", err)
			}
			i := slices.Index(survey.VariantNames(vs), chosen)
			if i < 0 {
				return fail(s.Default.Line, "default %q is not a variant", chosen)
			}
			k.Default = &i
		}
		return k, nil
	case "any_of":
		vs, err := variants(full, s.Variants)
		if err != nil {
			return nil, err
		}
		k := survey.AnyOf{Variants: vs}
		names := survey.VariantNames(vs)
		for _, d := range s.Defaults {
			i := slices.Index(names, d)
			if i < 0 {
				return fail(0, "default %q is not a variant", d)
			}
			k.Defaults = append(k.Defaults, i)
		}
		return k, nil
	}
	return fail(line(s.Default), "unknown kind %q", name)
}

func variants(full survey.Path, specs []variantSpec) ([]survey.Variant, error) {
	out := make([]survey.Variant, 0, len(specs))
	for _, s := range specs {
		name := s.Kind
		if name == "" {
			name = "unit"
			if len(s.Questions) > 0 {
				name = "all_of"
			}
		}
		// Follow-up fields of an all_of variant live beside the selection;
		// any other follow-up is named after the variant.
		at := full
		if name != "all_of" {
			at = full.Child(s.Name)
		}
		k, err := kind(at, name, s.kindSpec)
		if err != nil {
			return nil, err
		}
		out = append(out, survey.Variant{Name: s.Name, Label: s.Label, Kind: k})
	}
	return out, nil
}

// value decodes a suggest or assume node as the answer kind k records.
func value(k survey.Kind, n *yaml.Node) (survey.Value, error) {
	want, ok := survey.ExpectedValueKind(k)
	if !ok {
		return nil, fmt.Errorf("%s questions cannot carry a default answer", k.KindName())
	}
	var err error
	switch want {
	case survey.KindString:
		var v string
		if err = n.Decode(&v); err == nil {
			return survey.String(v), nil
		}
	case survey.KindInt:
		var v int64
		if err = n.Decode(&v); err == nil {
			return survey.Int(v), nil
		}
	case survey.KindFloat:
		var v float64
		if err = n.Decode(&v); err == nil {
			return survey.Float(v), nil
		}
	case survey.KindBool:
		var v bool
		if err = n.Decode(&v); err == nil {
			return survey.Bool(v), nil
		}
	case survey.KindStringList:
		var v []string
		if err = n.Decode(&v); err == nil {
			return survey.StringList(v), nil
		}
	case survey.KindIntList:
		var v []int64
		if err = n.Decode(&v); err == nil {
			return survey.IntList(v), nil
		}
	case survey.KindFloatList:
		var v []float64
		if err = n.Decode(&v); err == nil {
			return survey.FloatList(v), nil
		}
	default:
		return nil, fmt.Errorf("unsupported answer kind %s", want)
	}
	return nil, fmt.Errorf("expected %s: %w", want, err)
}
