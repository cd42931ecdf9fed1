package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stylex-lang/stylex/core/types"
)

// Literal wraps a precomputed value. Its type is fixed at construction and
// never inferred again.
type Literal struct {
	typ   types.Type
	value any
}

// NewLiteral builds a literal of the given type. The caller is responsible
// for the value actually inhabiting the type.
func NewLiteral(typ types.Type, value any) *Literal {
	return &Literal{typ: typ, value: value}
}

func (l *Literal) Type() types.Type { return l.typ }

func (l *Literal) Value() any { return l.value }

func (l *Literal) Evaluate(*EvaluationContext) (any, error) { return l.value, nil }

func (l *Literal) ForEachChild(func(Expression)) {}

func (l *Literal) Pure() bool { return true }

func (l *Literal) OperatorName() string { return "literal" }

// Assertion asserts that its child's runtime value inhabits the target
// type, failing evaluation otherwise. It is how a node typed as the generic
// value type is narrowed to a concrete expectation.
type Assertion struct {
	typ   types.Type
	child Expression
}

func NewAssertion(target types.Type, child Expression) *Assertion {
	return &Assertion{typ: target, child: child}
}

func (a *Assertion) Type() types.Type { return a.typ }

func (a *Assertion) Child() Expression { return a.child }

func (a *Assertion) Evaluate(ec *EvaluationContext) (any, error) {
	v, err := a.child.Evaluate(ec)
	if err != nil {
		return nil, err
	}
	if msg := types.CheckSubtype(a.typ, types.TypeOf(v)); msg != "" {
		return nil, fmt.Errorf("%s", msg)
	}
	return v, nil
}

func (a *Assertion) ForEachChild(fn func(Expression)) { fn(a.child) }

func (a *Assertion) Pure() bool { return true }

func (a *Assertion) OperatorName() string { return "assert-" + a.typ.Kind.String() }

// Coercion converts its child's runtime value to the target type using the
// lenient kind-specific rules from core/types (string to color, number or
// array to padding, and so on).
type Coercion struct {
	typ   types.Type
	child Expression
}

func NewCoercion(target types.Type, child Expression) *Coercion {
	return &Coercion{typ: target, child: child}
}

func (c *Coercion) Type() types.Type { return c.typ }

func (c *Coercion) Child() Expression { return c.child }

func (c *Coercion) Evaluate(ec *EvaluationContext) (any, error) {
	v, err := c.child.Evaluate(ec)
	if err != nil {
		return nil, err
	}
	return Coerce(c.typ, v)
}

func (c *Coercion) ForEachChild(fn func(Expression)) { fn(c.child) }

func (c *Coercion) Pure() bool { return true }

func (c *Coercion) OperatorName() string { return "to-" + c.typ.Kind.String() }

// Coerce converts v to the target type. Unlike an assertion this accepts
// any value the target's conversion rules can make sense of.
func Coerce(target types.Type, v any) (any, error) {
	switch target.Kind {
	case types.ColorKind:
		switch v := v.(type) {
		case types.Color:
			return v, nil
		case string:
			return types.ParseColor(v)
		}
	case types.FormattedKind:
		if f, ok := v.(types.Formatted); ok {
			return f, nil
		}
		return types.FormattedFrom(v)
	case types.ResolvedImageKind:
		switch v := v.(type) {
		case types.ResolvedImage:
			return v, nil
		case string:
			return types.ResolvedImage{Name: v}, nil
		}
	case types.PaddingKind:
		if p, ok := v.(types.Padding); ok {
			return p, nil
		}
		return types.PaddingFrom(v)
	case types.NumberArrayKind:
		if n, ok := v.(types.NumberArray); ok {
			return n, nil
		}
		return types.NumberArrayFrom(v)
	case types.ColorArrayKind:
		if c, ok := v.(types.ColorArray); ok {
			return c, nil
		}
		return types.ColorArrayFrom(v)
	case types.VariableAnchorOffsetCollectionKind:
		if c, ok := v.(types.VariableAnchorOffsetCollection); ok {
			return c, nil
		}
		return types.VariableAnchorOffsetCollectionFrom(v)
	case types.ProjectionDefinitionKind:
		if p, ok := v.(types.ProjectionDefinition); ok {
			return p, nil
		}
		return types.ProjectionDefinitionFrom(v)
	case types.StringKind:
		return ToString(v), nil
	case types.NumberKind:
		return ToNumber(v)
	case types.BooleanKind:
		return Truthy(v), nil
	default:
		if msg := types.CheckSubtype(target, types.TypeOf(v)); msg != "" {
			return nil, fmt.Errorf("%s", msg)
		}
		return v, nil
	}
	return nil, fmt.Errorf("could not coerce %s to %s", types.TypeOf(v), target)
}

// ToString renders a value the way the string coercion operator does.
func ToString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case types.Color:
		return v.String()
	default:
		if n, ok := types.ToFloat(v); ok {
			return fmt.Sprintf("%g", n)
		}
		return fmt.Sprintf("%v", v)
	}
}

// ToNumber converts a value to a number: numbers pass through, nil becomes
// zero, booleans become 0/1 and numeric strings are parsed.
func ToNumber(v any) (any, error) {
	switch v := v.(type) {
	case nil:
		return float64(0), nil
	case bool:
		if v {
			return float64(1), nil
		}
		return float64(0), nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("could not convert \"%s\" to number", v)
		}
		return n, nil
	default:
		if n, ok := types.ToFloat(v); ok {
			return n, nil
		}
		return nil, fmt.Errorf("could not convert %s to number", types.TypeOf(v))
	}
}

// Truthy reports the boolean interpretation of a value: nil, false, zero
// and the empty string are false, everything else true.
func Truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	default:
		if n, ok := types.ToFloat(v); ok {
			return n != 0
		}
		return true
	}
}
