// Package survey defines the presentation-agnostic data model shared by every
// interview backend: hierarchical answer paths, typed answer values, the three
// tier default system and the declarative question tree.
//
// A Definition is a tree of Questions. Leaf kinds (Input, Multiline, Masked,
// Int, Float, Confirm, List) are answered with a single backend interaction.
// Structural kinds recurse:
//
//	AllOf  an ordered group of questions that are all answered (struct)
//	OneOf  a set of named variants, exactly one selected (enum)
//	AnyOf  a set of named variants, any subset selected, repeats allowed
//
// Answers are collected into Responses, a flat map keyed by Path. Nested data
// lives under dotted paths:
//
//	name                          leaf at the root
//	address.street                AllOf child
//	role.selected_variant         index chosen in the OneOf at "role"
//	role.level                    field of the chosen struct variant
//	toppings.selected_variants    indices chosen in the AnyOf at "toppings"
//	toppings.0.selected_variant   variant index of the first selected item
//	toppings.0.extra              field of the first selected item
//
// Defaults come in three flavours. NoDefault asks normally, Suggest pre-fills
// an editable value and Assume skips the question and records the value
// directly.
package survey
