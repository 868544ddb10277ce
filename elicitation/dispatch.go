package elicitation

import (
	"strings"

	"github.com/ggoodman/interview-go/interview"
	"github.com/ggoodman/interview-go/survey"
)

// AnswerValidator is implemented by types that validate their own answers.
// It is consulted for every answer after any validators registered on a
// Builder.
type AnswerValidator interface {
	ValidateAnswer(value survey.Value, answers *survey.Responses, path survey.Path) error
}

// Wildcard matches any AnyOf item index in a validator pattern, as in
// "toppings.*.extra".
const Wildcard = "*"

type rule struct {
	pattern []string
	fn      interview.Validator
}

// dispatcher routes each answer to the validators registered for its path.
// Field validators match the whole path; propagated validators match every
// path at or below their prefix. Field validators run first.
type dispatcher struct {
	field      []rule
	propagated []rule
	self       AnswerValidator
}

func newRule(pattern string, fn interview.Validator) rule {
	var segs []string
	for s := range survey.ParsePath(pattern).Segments() {
		segs = append(segs, s)
	}
	return rule{pattern: segs, fn: fn}
}

func (d *dispatcher) validate(value survey.Value, answers *survey.Responses, path survey.Path) error {
	segs := pathSegments(path)
	for _, r := range d.field {
		if len(r.pattern) == len(segs) && matchSegments(r.pattern, segs) {
			if err := r.fn(value, answers, path); err != nil {
				return err
			}
		}
	}
	for _, r := range d.propagated {
		if len(r.pattern) <= len(segs) && matchSegments(r.pattern, segs[:len(r.pattern)]) {
			if err := r.fn(value, answers, path); err != nil {
				return err
			}
		}
	}
	if d.self != nil {
		return d.self.ValidateAnswer(value, answers, path)
	}
	return nil
}

func pathSegments(p survey.Path) []string {
	segs := make([]string, 0, p.Len())
	for s := range p.Segments() {
		segs = append(segs, s)
	}
	return segs
}

func matchSegments(pattern, segs []string) bool {
	for i, p := range pattern {
		if p == segs[i] {
			continue
		}
		if p == Wildcard && isIndex(segs[i]) {
			continue
		}
		return false
	}
	return true
}

func isIndex(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}
