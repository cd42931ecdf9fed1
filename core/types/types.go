package types

import "fmt"

// Kind identifies a type's category.
type Kind int

const (
	ValueKind Kind = iota // generic top type; accepts any concrete value type
	NullKind
	NumberKind
	StringKind
	BooleanKind
	ObjectKind
	ArrayKind
	ColorKind
	FormattedKind
	ResolvedImageKind
	PaddingKind
	NumberArrayKind
	ColorArrayKind
	VariableAnchorOffsetCollectionKind
	ProjectionDefinitionKind
	CollatorKind
	ErrorKind // bottom type; subtype of everything
)

var kindNames = [...]string{
	ValueKind:                          "value",
	NullKind:                           "null",
	NumberKind:                         "number",
	StringKind:                         "string",
	BooleanKind:                        "boolean",
	ObjectKind:                         "object",
	ArrayKind:                          "array",
	ColorKind:                          "color",
	FormattedKind:                      "formatted",
	ResolvedImageKind:                  "resolvedImage",
	PaddingKind:                        "padding",
	NumberArrayKind:                    "numberArray",
	ColorArrayKind:                     "colorArray",
	VariableAnchorOffsetCollectionKind: "variableAnchorOffsetCollection",
	ProjectionDefinitionKind:           "projectionDefinition",
	CollatorKind:                       "collator",
	ErrorKind:                          "error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && int(k) >= 0 {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type is an immutable type tag. Scalar kinds carry no metadata; the array
// kind additionally carries an element type and an optional fixed length.
type Type struct {
	Kind Kind
	Item *Type // element type, array kind only
	N    *int  // fixed length, array kind only; nil means any length
}

// Singleton types for the kinds that carry no metadata.
var (
	Value                           = Type{Kind: ValueKind}
	Null                            = Type{Kind: NullKind}
	Number                          = Type{Kind: NumberKind}
	String                          = Type{Kind: StringKind}
	Boolean                         = Type{Kind: BooleanKind}
	Object                          = Type{Kind: ObjectKind}
	ColorT                          = Type{Kind: ColorKind}
	FormattedT                      = Type{Kind: FormattedKind}
	ResolvedImageT                  = Type{Kind: ResolvedImageKind}
	PaddingT                        = Type{Kind: PaddingKind}
	NumberArrayT                    = Type{Kind: NumberArrayKind}
	ColorArrayT                     = Type{Kind: ColorArrayKind}
	VariableAnchorOffsetCollectionT = Type{Kind: VariableAnchorOffsetCollectionKind}
	ProjectionDefinitionT           = Type{Kind: ProjectionDefinitionKind}
	CollatorT                       = Type{Kind: CollatorKind}
	ErrorT                          = Type{Kind: ErrorKind}
)

// Array returns the array type with the given element type and any length.
func Array(item Type) Type {
	return Type{Kind: ArrayKind, Item: &item}
}

// FixedArray returns the array type with the given element type and exact length.
func FixedArray(item Type, n int) Type {
	return Type{Kind: ArrayKind, Item: &item, N: &n}
}

func (t Type) String() string {
	if t.Kind != ArrayKind {
		return t.Kind.String()
	}
	item := Value
	if t.Item != nil {
		item = *t.Item
	}
	if t.N != nil {
		return fmt.Sprintf("array<%s, %d>", item, *t.N)
	}
	if item.Kind == ValueKind {
		return "array"
	}
	return fmt.Sprintf("array<%s>", item)
}

// KindFromName maps a kind name (as used in style documents) back to its
// type. Returns false for unknown names.
func KindFromName(name string) (Type, bool) {
	switch name {
	case "value":
		return Value, true
	case "null":
		return Null, true
	case "number":
		return Number, true
	case "string":
		return String, true
	case "boolean":
		return Boolean, true
	case "object":
		return Object, true
	case "array":
		return Array(Value), true
	case "color":
		return ColorT, true
	case "formatted":
		return FormattedT, true
	case "resolvedImage":
		return ResolvedImageT, true
	case "padding":
		return PaddingT, true
	case "numberArray":
		return NumberArrayT, true
	case "colorArray":
		return ColorArrayT, true
	case "variableAnchorOffsetCollection":
		return VariableAnchorOffsetCollectionT, true
	case "projectionDefinition":
		return ProjectionDefinitionT, true
	default:
		return Type{}, false
	}
}
