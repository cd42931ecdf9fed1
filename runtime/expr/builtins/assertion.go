package builtins

import (
	"fmt"

	"github.com/stylex-lang/stylex/core/types"
	"github.com/stylex-lang/stylex/runtime/expr"
)

// assertionDef builds the definition for a scalar assertion operator such
// as ["string", v1, v2, ...]: evaluate each argument in turn and return the
// first whose runtime type inhabits the target, failing if none does.
func assertionDef(name string, target types.Type) expr.Definition {
	return expr.Definition{
		Name: name,
		Pure: true,
		Parse: func(args []any, c *expr.ParsingContext) expr.Expression {
			return parseAssertion(args, c, target)
		},
	}
}

func parseAssertion(args []any, c *expr.ParsingContext, target types.Type) expr.Expression {
	if len(args) < 2 {
		c.Error(fmt.Sprintf("Expected at least one argument, but found %d instead.", len(args)-1))
		return nil
	}
	parsed := make([]expr.Expression, 0, len(args)-1)
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
	if len(parsed) == 1 {
		return expr.NewAssertion(target, parsed[0])
	}
	return &op{
		name: assertionName(target),
		typ:  target,
		args: parsed,
		pure: true,
		eval: func(ec *expr.EvaluationContext, args []expr.Expression) (any, error) {
			var lastMsg string
			for _, arg := range args {
				v, err := arg.Evaluate(ec)
				if err != nil {
					return nil, err
				}
				msg := types.CheckSubtype(target, types.TypeOf(v))
				if msg == "" {
					return v, nil
				}
				lastMsg = msg
			}
			return nil, fmt.Errorf("%s", lastMsg)
		},
	}
}

func assertionName(target types.Type) string {
	return "assert-" + target.Kind.String()
}

// parseArrayAssertion handles the array assertion's optional item-type and
// length arguments: ["array", value], ["array", type, value] or
// ["array", type, N, value].
func parseArrayAssertion(args []any, c *expr.ParsingContext) expr.Expression {
	target := types.Array(types.Value)
	valueIndex := 1

	switch {
	case len(args) < 2:
		c.Error(fmt.Sprintf("Expected at least one argument, but found %d instead.", len(args)-1))
		return nil
	case len(args) > 4:
		c.Error(fmt.Sprintf("Expected 1, 2, or 3 arguments, but found %d instead.", len(args)-1))
		return nil
	case len(args) > 2:
		itemName, ok := args[1].(string)
		var item types.Type
		if ok {
			switch itemName {
			case "string":
				item = types.String
			case "number":
				item = types.Number
			case "boolean":
				item = types.Boolean
			default:
				ok = false
			}
		}
		if !ok {
			c.Error("The item type argument of \"array\" must be one of string, number, boolean", 1)
			return nil
		}
		valueIndex = 2
		target = types.Array(item)
		if len(args) == 4 {
			n, isNum := types.ToFloat(args[2])
			if !isNum || n != float64(int(n)) || n < 0 {
				c.Error("The length argument to \"array\" must be a positive integer literal", 2)
				return nil
			}
			valueIndex = 3
			target = types.FixedArray(item, int(n))
		}
	}

	value := c.Parse(args[valueIndex], expr.Index(valueIndex))
	if value == nil {
		return nil
	}
	return expr.NewAssertion(target, value)
}
