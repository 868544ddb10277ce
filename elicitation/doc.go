// Package elicitation derives interviews from Go types and rebuilds typed
// values from the collected answers.
//
// # Derivation
//
// Derive (or DefinitionFor) turns a struct type into a survey.Definition.
// Exported fields become questions in declaration order:
//
//	string               Input (Masked or Multiline via tags)
//	bool                 Confirm
//	signed / unsigned    IntInput, bounded by the range of the Go type
//	float32 / float64    FloatInput
//	[]string, []int...   List of Input / IntInput / FloatInput
//	struct               AllOf of its fields (Unit when it has none)
//	*T                   optional T: nil when nothing, or an empty string, was entered
//	registered enum E    OneOf of E's variants
//	[]E                  AnyOf of E's variants
//
// Sum types are declared with RegisterEnum over a sealed interface, or with
// RegisterStringEnum for string constants. Results are cached per type.
//
// # Struct tags
//
//	survey:"name,ask=Prompt,help=Text,mask,multiline,min=N,max=N,minItems=N,maxItems=N"
//	survey:"-"              skip the field
//	ask:"Prompt, with commas"   overrides the inline ask
//	help:"Text"             overrides the inline help
//
// The first segment names the path segment; when empty the json tag name is
// used, then the snake_case field name. min and max apply to numbers and to
// every element of numeric lists.
//
// # Reconstruction
//
// Decode reads a finished answer map back into a value: struct fields from
// the answers below their name, enums from the recorded selected_variant,
// enum slices from selected_variants and the per-item sub-maps. The target is
// only written on success. Encode performs the inverse mapping.
//
// # Builder
//
// Builder adds defaults (Suggest, Assume, SuggestVariant, WithSuggestions)
// and validators (Validate for one field, ValidateFields for a subtree) and
// runs the interview on any interview.Backend:
//
//	type Order struct {
//	    Name     string    `survey:"name,ask=Who is this for?"`
//	    Size     Size      `survey:"size"`
//	    Toppings []Topping `survey:"toppings"`
//	}
//
//	order, err := elicitation.NewBuilder[Order]().
//	    Suggest("name", "Ada").
//	    Validate("toppings", atMostThree).
//	    Run(ctx, backend)
package elicitation
