// Package interview drives a survey.Definition through a backend.
//
// A backend only supplies a Prompter: one primitive that returns a raw leaf
// answer and one that returns a menu selection. Collect owns everything else
// and behaves the same for every backend:
//
//   - Assumed questions are recorded without any I/O.
//   - Leaf answers are pre-filled with the suggested (or the kind's static)
//     default, checked against static bounds, then passed to the Validator.
//     Rejected answers are asked again with the message attached; Confirm
//     questions skip validation.
//   - OneOf records the chosen index at <path>.selected_variant and asks the
//     chosen variant's follow-up questions.
//   - AnyOf validates the selection itself, records it at
//     <path>.selected_variants, and asks follow-ups for every picked item
//     under <path>.<item>, so the same variant picked twice yields two
//     independent sub-trees.
//
// The Validator always sees the answers committed before the current
// question, never the value being checked. Cancellation, whether reported by
// the prompter as survey.ErrCancelled or signalled through the context,
// returns no answers at all.
package interview
