package builtins

import (
	"fmt"
	"math"

	"github.com/stylex-lang/stylex/core/types"
	"github.com/stylex-lang/stylex/runtime/expr"
)

// mathDef builds an arithmetic operator definition. All arguments parse
// with an expected type of number; the output type is number. Arithmetic
// follows IEEE float semantics, so division by zero yields an infinity
// rather than an evaluation failure.
func mathDef(opName string) expr.Definition {
	return expr.Definition{
		Name: opName,
		Pure: true,
		Parse: func(args []any, c *expr.ParsingContext) expr.Expression {
			min, max := 2, -1
			switch opName {
			case "-":
				min, max = 1, 2
			case "/", "%", "^":
				min, max = 2, 2
			}
			argc := len(args) - 1
			if argc < min || (max >= 0 && argc > max) {
				c.Error(fmt.Sprintf("Expected %d arguments, but found %d instead.", min, argc))
				return nil
			}
			parsed := make([]expr.Expression, 0, argc)
			failed := false
			for i := 1; i < len(args); i++ {
				arg := c.Parse(args[i], expr.Index(i), expr.Expected(types.Number))
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
				typ:  types.Number,
				args: parsed,
				pure: true,
				eval: func(ec *expr.EvaluationContext, args []expr.Expression) (any, error) {
					values, err := evaluateAll(ec, args)
					if err != nil {
						return nil, err
					}
					nums := make([]float64, len(values))
					for i, v := range values {
						n, ok := types.ToFloat(v)
						if !ok {
							return nil, fmt.Errorf("Expected number but found %s instead.", types.TypeOf(v))
						}
						nums[i] = n
					}
					return applyMath(opName, nums), nil
				},
			}
		},
	}
}

func applyMath(opName string, nums []float64) float64 {
	switch opName {
	case "+":
		sum := 0.0
		for _, n := range nums {
			sum += n
		}
		return sum
	case "*":
		product := 1.0
		for _, n := range nums {
			product *= n
		}
		return product
	case "-":
		if len(nums) == 1 {
			return -nums[0]
		}
		return nums[0] - nums[1]
	case "/":
		return nums[0] / nums[1]
	case "%":
		return math.Mod(nums[0], nums[1])
	case "^":
		return math.Pow(nums[0], nums[1])
	}
	return math.NaN()
}
