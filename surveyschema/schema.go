// Package surveyschema describes the answers of a survey.Definition as a JSON
// Schema, so finished interviews can be checked or generated by other tools.
//
// The schema describes the nested JSON form of an answer map: path segments
// become nested objects, a OneOf is an object carrying its selected_variant
// next to the chosen variant's answers, and an AnyOf is an array with one
// such object per chosen item. survey.Responses.Nested produces this form
// from a collected answer map.
package surveyschema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	gojson "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ggoodman/interview-go/survey"
)

// Draft is the JSON Schema dialect of exported schemas.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Export builds the schema for the answers def collects, in the form
// produced by survey.Responses.Nested. Assumed answers become constants and
// suggestions become defaults.
func Export(def *survey.Definition) (*jsonschema.Schema, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", survey.ErrInvalidDefinition)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	root := object()
	root.Version = Draft
	root.Description = def.Prelude
	addQuestions(root, def.Questions)
	return root, nil
}

// Fingerprint returns the hex SHA-256 of the exported schema. Definitions
// that collect the same answers share a fingerprint, so it can key stored
// answers against the questions that produced them.
func Fingerprint(def *survey.Definition) (string, error) {
	s, err := Export(def)
	if err != nil {
		return "", err
	}
	b, err := gojson.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("surveyschema: encode: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func object() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           orderedmap.New[string, *jsonschema.Schema](),
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

func addQuestions(obj *jsonschema.Schema, qs []survey.Question) {
	for _, q := range qs {
		if s := question(q); s != nil {
			put(obj, q.Path, s)
		}
	}
}

// put stores s at the relative path below obj, creating intermediate
// objects for multi-segment paths.
func put(obj *jsonschema.Schema, p survey.Path, s *jsonschema.Schema) {
	last, ok := p.Last()
	if !ok {
		return
	}
	for seg := range p.Parent().Segments() {
		next, ok := obj.Properties.Get(seg)
		if !ok || next.Type != "object" {
			next = object()
			obj.Properties.Set(seg, next)
			obj.Required = appendUnique(obj.Required, seg)
		}
		obj = next
	}
	obj.Properties.Set(last, s)
	obj.Required = appendUnique(obj.Required, last)
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

// question returns nil for questions that record no answer.
func question(q survey.Question) *jsonschema.Schema {
	s := kind(q.Kind)
	if s == nil {
		return nil
	}
	s.Title = survey.DisplayPrompt(q, q.Path)
	s.Description = q.Help
	if q.Default.IsAssumed() {
		v, _ := q.Default.Value()
		s.Const = survey.Interface(v)
	} else if v, ok := q.Default.Suggestion(); ok {
		s.Default = survey.Interface(v)
	} else if v := survey.StaticDefault(q.Kind); v != nil {
		s.Default = survey.Interface(v)
	}
	return s
}

func kind(k survey.Kind) *jsonschema.Schema {
	switch kk := k.(type) {
	case survey.Input:
		return &jsonschema.Schema{Type: "string"}
	case survey.Multiline:
		return &jsonschema.Schema{Type: "string", ContentMediaType: "text/plain"}
	case survey.Masked:
		return &jsonschema.Schema{Type: "string", WriteOnly: true}
	case survey.IntInput:
		s := &jsonschema.Schema{Type: "integer"}
		if kk.Min != nil {
			s.Minimum = json.Number(strconv.FormatInt(*kk.Min, 10))
		}
		if kk.Max != nil {
			s.Maximum = json.Number(strconv.FormatInt(*kk.Max, 10))
		}
		return s
	case survey.FloatInput:
		s := &jsonschema.Schema{Type: "number"}
		if kk.Min != nil {
			s.Minimum = json.Number(strconv.FormatFloat(*kk.Min, 'g', -1, 64))
		}
		if kk.Max != nil {
			s.Maximum = json.Number(strconv.FormatFloat(*kk.Max, 'g', -1, 64))
		}
		return s
	case survey.Confirm:
		return &jsonschema.Schema{Type: "boolean"}
	case survey.List:
		s := &jsonschema.Schema{Type: "array", Items: kind(kk.Element)}
		if kk.MinItems != nil {
			s.MinItems = count(*kk.MinItems)
		}
		if kk.MaxItems != nil {
			s.MaxItems = count(*kk.MaxItems)
		}
		return s
	case survey.AllOf:
		s := object()
		addQuestions(s, kk.Questions)
		return s
	case survey.OneOf:
		s := &jsonschema.Schema{Type: "object"}
		for i, v := range kk.Variants {
			s.OneOf = append(s.OneOf, variant(survey.SelectedVariantKey, i, v))
		}
		return s
	case survey.AnyOf:
		items := &jsonschema.Schema{Type: "object"}
		for i, v := range kk.Variants {
			items.AnyOf = append(items.AnyOf, variant(survey.SelectedVariantKey, i, v))
		}
		s := &jsonschema.Schema{Type: "array", Items: items}
		if len(kk.Defaults) > 0 {
			s.Default = append([]int(nil), kk.Defaults...)
		}
		return s
	}
	return nil
}

// variant describes the answers recorded when v, the i-th variant, is
// chosen: the selection key plus its follow-up answers.
func variant(key string, i int, v survey.Variant) *jsonschema.Schema {
	s := object()
	s.Title = v.Name
	if v.Label != "" {
		s.Description = v.Label
	}
	s.Properties.Set(key, &jsonschema.Schema{Type: "integer", Const: i})
	s.Required = append(s.Required, key)
	if all, ok := v.Kind.(survey.AllOf); ok {
		addQuestions(s, all.Questions)
	} else if q, ok := v.FollowUp(); ok {
		addQuestions(s, []survey.Question{q})
	}
	return s
}

func count(n int) *uint64 {
	if n < 0 {
		n = 0
	}
	u := uint64(n)
	return &u
}
