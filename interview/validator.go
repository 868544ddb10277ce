package interview

import "github.com/ggoodman/interview-go/survey"

// Validator checks one answer. It receives the answers committed so far,
// which never include the value under validation, and the full path of the
// question. A non-nil error rejects the value; its message is shown to the
// user before the question is asked again. Validators must not modify
// answers.
type Validator func(value survey.Value, answers *survey.Responses, path survey.Path) error

// NoValidation accepts every value.
func NoValidation(survey.Value, *survey.Responses, survey.Path) error { return nil }

// ChainValidators runs vs in order and returns the first rejection. Nil
// entries are skipped.
func ChainValidators(vs ...Validator) Validator {
	return func(value survey.Value, answers *survey.Responses, path survey.Path) error {
		for _, v := range vs {
			if v == nil {
				continue
			}
			if err := v(value, answers, path); err != nil {
				return err
			}
		}
		return nil
	}
}
