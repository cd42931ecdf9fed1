package builtins

import (
	"fmt"

	"github.com/stylex-lang/stylex/core/types"
	"github.com/stylex-lang/stylex/runtime/expr"
)

// coercionDef builds the definition for an explicit conversion operator.
// Multi-argument forms (to-number, to-color) try each argument in turn and
// yield the first successful conversion.
func coercionDef(opName string, target types.Type, multi bool) expr.Definition {
	return expr.Definition{
		Name: opName,
		Pure: true,
		Parse: func(args []any, c *expr.ParsingContext) expr.Expression {
			if !multi && len(args) != 2 {
				c.Error(fmt.Sprintf("Expected one argument, but found %d instead.", len(args)-1))
				return nil
			}
			if multi && len(args) < 2 {
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
				return expr.NewCoercion(target, parsed[0])
			}
			return &op{
				name: "to-" + target.Kind.String(),
				typ:  target,
				args: parsed,
				pure: true,
				eval: func(ec *expr.EvaluationContext, args []expr.Expression) (any, error) {
					var lastErr error
					for _, arg := range args {
						v, err := arg.Evaluate(ec)
						if err != nil {
							return nil, err
						}
						converted, err := expr.Coerce(target, v)
						if err == nil {
							return converted, nil
						}
						lastErr = err
					}
					return nil, lastErr
				},
			}
		},
	}
}
