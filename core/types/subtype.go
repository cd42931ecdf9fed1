package types

import "fmt"

// Member types of the generic value type. Any concrete value can be used
// where a value is expected; collator is deliberately excluded (a collator
// is configuration, not data).
var valueMemberTypes = []Type{
	Null,
	Number,
	String,
	Boolean,
	ColorT,
	FormattedT,
	Object,
	ResolvedImageT,
	PaddingT,
	NumberArrayT,
	ColorArrayT,
	VariableAnchorOffsetCollectionT,
	ProjectionDefinitionT,
	Array(Value),
}

// CheckSubtype reports whether actual can be used where expected is
// required. It returns "" on success and a human-readable message on
// failure. The error kind is a subtype of every type so that a failed
// subexpression does not cascade into spurious mismatches.
func CheckSubtype(expected, actual Type) string {
	if actual.Kind == ErrorKind {
		return ""
	}
	if expected.Kind == ArrayKind && actual.Kind == ArrayKind {
		expItem, actItem := Value, Value
		if expected.Item != nil {
			expItem = *expected.Item
		}
		if actual.Item != nil {
			actItem = *actual.Item
		}
		if CheckSubtype(expItem, actItem) == "" &&
			(expected.N == nil || (actual.N != nil && *actual.N == *expected.N)) {
			return ""
		}
	} else if expected.Kind == actual.Kind {
		return ""
	}
	if expected.Kind == ValueKind {
		for _, member := range valueMemberTypes {
			if CheckSubtype(member, actual) == "" {
				return ""
			}
		}
	}
	return fmt.Sprintf("Expected %s but found %s instead.", expected, actual)
}

// TypeOf infers the type of a runtime value. Arrays unify element types:
// a homogeneous array yields array<T, N>, a mixed one array<value, N>.
func TypeOf(v any) Type {
	switch v := v.(type) {
	case nil:
		return Null
	case bool:
		return Boolean
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Number
	case string:
		return String
	case Color:
		return ColorT
	case Formatted:
		return FormattedT
	case ResolvedImage:
		return ResolvedImageT
	case Padding:
		return PaddingT
	case NumberArray:
		return NumberArrayT
	case ColorArray:
		return ColorArrayT
	case VariableAnchorOffsetCollection:
		return VariableAnchorOffsetCollectionT
	case ProjectionDefinition:
		return ProjectionDefinitionT
	case []any:
		var item *Type
		for _, el := range v {
			t := TypeOf(el)
			if item == nil {
				item = &t
			} else if *item != t {
				top := Value
				item = &top
				break
			}
		}
		if item == nil {
			top := Value
			item = &top
		}
		n := len(v)
		return Type{Kind: ArrayKind, Item: item, N: &n}
	case map[string]any:
		return Object
	default:
		return ErrorT
	}
}

// IsValue reports whether v is representable in the expression value domain:
// JSON scalars, arrays and objects of values, or one of the domain value
// types.
func IsValue(v any) bool {
	switch v := v.(type) {
	case nil, bool, string,
		float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		Color, Formatted, ResolvedImage, Padding, NumberArray, ColorArray,
		VariableAnchorOffsetCollection, ProjectionDefinition:
		return true
	case []any:
		for _, el := range v {
			if !IsValue(el) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, el := range v {
			if !IsValue(el) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
