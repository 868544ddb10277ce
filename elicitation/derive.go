package elicitation

import (
	"fmt"
	"math"
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ggoodman/interview-go/survey"
)

type shapeKind uint8

const (
	shapeLeaf shapeKind = iota
	shapeUnit
	shapeStruct
	shapeOneOf
	shapeAnyOf
)

// shape is the compiled, type-level description of how a Go type maps onto
// questions and answers. Field-level tags are applied when a kind is built.
type shape struct {
	typ  reflect.Type
	kind shapeKind
	leaf survey.Kind

	fields []fieldShape

	enum     *enumInfo
	variants []*shape // per case, nil for string enums
	ptrCase  []bool   // case type is a pointer
	elem     *shape   // AnyOf: the OneOf shape of the element type
}

type fieldShape struct {
	index int
	name  string
	tag   fieldTag
	ptr   bool
	shape *shape
}

type compiled struct {
	shape *shape
	def   *survey.Definition
}

const cacheSize = 256

var derived = mustCache()

func mustCache() *lru.Cache[reflect.Type, *compiled] {
	c, err := lru.New[reflect.Type, *compiled](cacheSize)
	if err != nil {
		panic(err)
	}
	return c
}

func purgeCache() { derived.Purge() }

// Derive builds the question tree for struct type t (or a pointer to one).
// Exported fields become questions in declaration order. The result is a
// private copy the caller may modify.
func Derive(t reflect.Type) (*survey.Definition, error) {
	c, err := compiledFor(t)
	if err != nil {
		return nil, err
	}
	return c.def.Clone(), nil
}

// DefinitionFor is Derive for the type parameter.
func DefinitionFor[T any]() (*survey.Definition, error) {
	return Derive(reflect.TypeFor[T]())
}

func compiledFor(t reflect.Type) (*compiled, error) {
	if t == nil {
		return nil, &UnsupportedTypeError{Reason: "nil type"}
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if c, ok := derived.Get(t); ok {
		return c, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, &UnsupportedTypeError{Type: t, Reason: "top-level type must be a struct"}
	}

	cp := &compiler{inProgress: map[reflect.Type]bool{}, done: map[reflect.Type]*shape{}}
	s, err := cp.shapeOf(t)
	if err != nil {
		return nil, err
	}
	qs, err := s.questions()
	if err != nil {
		return nil, err
	}
	def := &survey.Definition{Questions: qs}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("elicitation: derive %s: %w", t, err)
	}
	c := &compiled{shape: s, def: def}
	derived.Add(t, c)
	return c, nil
}

type compiler struct {
	inProgress map[reflect.Type]bool
	done       map[reflect.Type]*shape
}

func (cp *compiler) shapeOf(t reflect.Type) (*shape, error) {
	if s, ok := cp.done[t]; ok {
		return s, nil
	}
	if cp.inProgress[t] {
		return nil, &UnsupportedTypeError{Type: t, Reason: "recursive type"}
	}
	cp.inProgress[t] = true
	defer delete(cp.inProgress, t)

	s, err := cp.build(t)
	if err != nil {
		return nil, err
	}
	cp.done[t] = s
	return s, nil
}

func (cp *compiler) build(t reflect.Type) (*shape, error) {
	if e, ok := lookupEnum(t); ok {
		return cp.enumShape(t, e)
	}
	switch t.Kind() {
	case reflect.String:
		return &shape{typ: t, kind: shapeLeaf, leaf: survey.Input{}}, nil
	case reflect.Bool:
		return &shape{typ: t, kind: shapeLeaf, leaf: survey.Confirm{}}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &shape{typ: t, kind: shapeLeaf, leaf: intRange(t)}, nil
	case reflect.Float32, reflect.Float64:
		return &shape{typ: t, kind: shapeLeaf, leaf: floatRange(t)}, nil
	case reflect.Slice:
		return cp.sliceShape(t)
	case reflect.Struct:
		return cp.structShape(t)
	case reflect.Pointer:
		return nil, &UnsupportedTypeError{Type: t, Reason: "pointer to pointer"}
	}
	return nil, &UnsupportedTypeError{Type: t}
}

// intRange returns an IntInput bounded by the range of t where it fits in
// an int64.
func intRange(t reflect.Type) survey.IntInput {
	var k survey.IntInput
	bits := t.Bits()
	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32:
		k.Min = survey.Ptr(int64(-1) << (bits - 1))
		k.Max = survey.Ptr(int64(1)<<(bits-1) - 1)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		k.Min = survey.Ptr[int64](0)
		k.Max = survey.Ptr(int64(1)<<bits - 1)
	case reflect.Uint, reflect.Uint64:
		k.Min = survey.Ptr[int64](0)
	}
	return k
}

// floatRange bounds float32 fields by the largest finite float32, so an
// answer that cannot be stored is rejected while it is asked.
func floatRange(t reflect.Type) survey.FloatInput {
	var k survey.FloatInput
	if t.Kind() == reflect.Float32 {
		k.Min = survey.Ptr(-math.MaxFloat32)
		k.Max = survey.Ptr(math.MaxFloat32)
	}
	return k
}

func (cp *compiler) sliceShape(t reflect.Type) (*shape, error) {
	et := t.Elem()
	if _, ok := lookupEnum(et); ok {
		es, err := cp.shapeOf(et)
		if err != nil {
			return nil, err
		}
		return &shape{typ: t, kind: shapeAnyOf, enum: es.enum, elem: es}, nil
	}
	var elem survey.Kind
	switch et.Kind() {
	case reflect.String:
		elem = survey.Input{}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		elem = intRange(et)
	case reflect.Float32, reflect.Float64:
		elem = floatRange(et)
	default:
		return nil, &UnsupportedTypeError{Type: t, Reason: "slices must hold strings, numbers or a registered enum"}
	}
	return &shape{typ: t, kind: shapeLeaf, leaf: survey.List{Element: elem}}, nil
}

func (cp *compiler) structShape(t reflect.Type) (*shape, error) {
	s := &shape{typ: t, kind: shapeStruct}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, err := parseFieldTag(f)
		if err != nil {
			return nil, fmt.Errorf("elicitation: %s: %w", t, err)
		}
		if tag.skip {
			continue
		}
		ft := f.Type
		isPtr := ft.Kind() == reflect.Pointer
		if isPtr {
			ft = ft.Elem()
		}
		fs, err := cp.shapeOf(ft)
		if err != nil {
			return nil, err
		}
		s.fields = append(s.fields, fieldShape{index: i, name: tag.name, tag: tag, ptr: isPtr, shape: fs})
	}
	if len(s.fields) == 0 {
		s.kind = shapeUnit
	}
	return s, nil
}

func (cp *compiler) enumShape(t reflect.Type, e *enumInfo) (*shape, error) {
	s := &shape{typ: t, kind: shapeOneOf, enum: e}
	if e.isString() {
		return s, nil
	}
	for _, c := range e.cases {
		ct := c.typ
		isPtr := ct.Kind() == reflect.Pointer
		if isPtr {
			ct = ct.Elem()
		}
		vs, err := cp.shapeOf(ct)
		if err != nil {
			return nil, err
		}
		s.variants = append(s.variants, vs)
		s.ptrCase = append(s.ptrCase, isPtr)
	}
	return s, nil
}

// kindWith builds the question kind for s with field tag options applied.
func (s *shape) kindWith(tag fieldTag) (survey.Kind, error) {
	switch s.kind {
	case shapeUnit:
		return survey.Unit{}, nil
	case shapeStruct:
		qs, err := s.questions()
		if err != nil {
			return nil, err
		}
		return survey.AllOf{Questions: qs}, nil
	case shapeOneOf:
		vs, err := s.variantList()
		if err != nil {
			return nil, err
		}
		return survey.OneOf{Variants: vs}, nil
	case shapeAnyOf:
		vs, err := s.elem.variantList()
		if err != nil {
			return nil, err
		}
		return survey.AnyOf{Variants: vs}, nil
	}
	return applyTag(survey.CloneKind(s.leaf), tag)
}

func (s *shape) questions() ([]survey.Question, error) {
	qs := make([]survey.Question, 0, len(s.fields))
	for _, f := range s.fields {
		k, err := f.shape.kindWith(f.tag)
		if err != nil {
			return nil, err
		}
		qs = append(qs, survey.Question{
			Path:   survey.PathOf(f.name),
			Prompt: f.tag.ask,
			Help:   f.tag.help,
			Kind:   k,
		})
	}
	return qs, nil
}

func (s *shape) variantList() ([]survey.Variant, error) {
	e := s.enum
	if e.isString() {
		out := make([]survey.Variant, len(e.strings))
		for i, name := range e.strings {
			out[i] = survey.NewVariant(name, survey.Unit{})
		}
		return out, nil
	}
	out := make([]survey.Variant, len(e.cases))
	for i, c := range e.cases {
		k, err := s.variants[i].kindWith(fieldTag{})
		if err != nil {
			return nil, err
		}
		out[i] = survey.Variant{Name: c.name, Label: c.label, Kind: k}
	}
	return out, nil
}

func applyTag(k survey.Kind, tag fieldTag) (survey.Kind, error) {
	switch kk := k.(type) {
	case survey.Input:
		switch {
		case tag.mask:
			return survey.Masked{}, nil
		case tag.multiline:
			return survey.Multiline{}, nil
		}
		return kk, nil
	case survey.IntInput:
		return intBounds(kk, tag)
	case survey.FloatInput:
		if tag.min != nil && (kk.Min == nil || *tag.min > *kk.Min) {
			kk.Min = survey.Ptr(*tag.min)
		}
		if tag.max != nil && (kk.Max == nil || *tag.max < *kk.Max) {
			kk.Max = survey.Ptr(*tag.max)
		}
		return kk, nil
	case survey.List:
		elem, err := applyTag(kk.Element, fieldTag{min: tag.min, max: tag.max})
		if err != nil {
			return nil, err
		}
		kk.Element = elem
		kk.MinItems, kk.MaxItems = tag.minItems, tag.maxItems
		return kk, nil
	}
	return k, nil
}

func intBounds(k survey.IntInput, tag fieldTag) (survey.Kind, error) {
	conv := func(f float64) (int64, error) {
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("elicitation: integer bound %v is not a 64-bit integer", f)
		}
		return int64(f), nil
	}
	if tag.min != nil {
		v, err := conv(*tag.min)
		if err != nil {
			return nil, err
		}
		// A tag never widens the range of the Go type.
		if k.Min == nil || v > *k.Min {
			k.Min = &v
		}
	}
	if tag.max != nil {
		v, err := conv(*tag.max)
		if err != nil {
			return nil, err
		}
		if k.Max == nil || v < *k.Max {
			k.Max = &v
		}
	}
	return k, nil
}
