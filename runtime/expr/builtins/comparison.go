package builtins

import (
	"fmt"
	"reflect"

	"github.com/stylex-lang/stylex/core/types"
	"github.com/stylex-lang/stylex/runtime/expr"
)

// comparisonDef builds an equality or ordering operator. Equality accepts
// any two values; ordering requires both sides to evaluate to two numbers
// or two strings.
func comparisonDef(opName string) expr.Definition {
	return expr.Definition{
		Name: opName,
		Pure: true,
		Parse: func(args []any, c *expr.ParsingContext) expr.Expression {
			if len(args) != 3 {
				c.Error(fmt.Sprintf("Expected 2 arguments, but found %d instead.", len(args)-1))
				return nil
			}
			parsed := make([]expr.Expression, 0, 2)
			failed := false
			for i := 1; i < len(args); i++ {
				arg := c.Parse(args[i], expr.Index(i))
				if arg == nil {
					failed = true
					continue
				}
				parsed = append(parsed, arg)
			}
			if failed {
				return nil
			}
			return &op{
				name: opName,
				typ:  types.Boolean,
				args: parsed,
				pure: true,
				eval: func(ec *expr.EvaluationContext, args []expr.Expression) (any, error) {
					values, err := evaluateAll(ec, args)
					if err != nil {
						return nil, err
					}
					return compare(opName, values[0], values[1])
				},
			}
		},
	}
}

func compare(opName string, lhs, rhs any) (any, error) {
	switch opName {
	case "==":
		return valuesEqual(lhs, rhs), nil
	case "!=":
		return !valuesEqual(lhs, rhs), nil
	}

	if ln, lok := types.ToFloat(lhs); lok {
		rn, rok := types.ToFloat(rhs)
		if !rok {
			return nil, fmt.Errorf("Expected arguments of matching types, but found %s and %s instead.",
				types.TypeOf(lhs), types.TypeOf(rhs))
		}
		return orderNumbers(opName, ln, rn), nil
	}
	if ls, lok := lhs.(string); lok {
		rs, rok := rhs.(string)
		if !rok {
			return nil, fmt.Errorf("Expected arguments of matching types, but found %s and %s instead.",
				types.TypeOf(lhs), types.TypeOf(rhs))
		}
		return orderStrings(opName, ls, rs), nil
	}
	return nil, fmt.Errorf("Expected two numbers or two strings, but found %s and %s instead.",
		types.TypeOf(lhs), types.TypeOf(rhs))
}

func valuesEqual(lhs, rhs any) bool {
	if ln, ok := types.ToFloat(lhs); ok {
		rn, ok := types.ToFloat(rhs)
		return ok && ln == rn
	}
	return reflect.DeepEqual(lhs, rhs)
}

func orderNumbers(opName string, lhs, rhs float64) bool {
	switch opName {
	case "<":
		return lhs < rhs
	case "<=":
		return lhs <= rhs
	case ">":
		return lhs > rhs
	default:
		return lhs >= rhs
	}
}

func orderStrings(opName, lhs, rhs string) bool {
	switch opName {
	case "<":
		return lhs < rhs
	case "<=":
		return lhs <= rhs
	case ">":
		return lhs > rhs
	default:
		return lhs >= rhs
	}
}
