package builtins

import (
	"fmt"
	"strings"

	"github.com/stylex-lang/stylex/core/types"
	"github.com/stylex-lang/stylex/runtime/expr"
)

// parseConcat handles string concatenation: every argument parses with an
// expected type of string.
func parseConcat(args []any, c *expr.ParsingContext) expr.Expression {
	if len(args) < 3 {
		c.Error(fmt.Sprintf("Expected at least 2 arguments, but found %d instead.", len(args)-1))
		return nil
	}
	// Keep parsing siblings after a failure so one pass reports every
	// argument's problems.
	parsed := make([]expr.Expression, 0, len(args)-1)
	failed := false
	for i := 1; i < len(args); i++ {
		arg := c.Parse(args[i], expr.Index(i), expr.Expected(types.String))
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
		name: "concat",
		typ:  types.String,
		args: parsed,
		pure: true,
		eval: func(ec *expr.EvaluationContext, args []expr.Expression) (any, error) {
			values, err := evaluateAll(ec, args)
			if err != nil {
				return nil, err
			}
			var b strings.Builder
			for _, v := range values {
				b.WriteString(expr.ToString(v))
			}
			return b.String(), nil
		},
	}
}

// parseImage produces a resolvedImage reference. Image expressions are
// never constant-folded, whatever their arguments: availability can only
// be decided once the style's image resources are known.
func parseImage(args []any, c *expr.ParsingContext) expr.Expression {
	if len(args) != 2 {
		c.Error(fmt.Sprintf("Expected one argument, but found %d instead.", len(args)-1))
		return nil
	}
	name := c.Parse(args[1], expr.Index(1), expr.Expected(types.String))
	if name == nil {
		return nil
	}
	return &op{
		name: "image",
		typ:  types.ResolvedImageT,
		args: []expr.Expression{name},
		pure: true,
		eval: func(ec *expr.EvaluationContext, args []expr.Expression) (any, error) {
			v, err := args[0].Evaluate(ec)
			if err != nil {
				return nil, err
			}
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("Expected string but found %s instead.", types.TypeOf(v))
			}
			return types.ResolvedImage{Name: s}, nil
		},
	}
}

// parseGet reads a feature property at evaluation time. Its output is the
// generic value type; callers narrow it with an expected type, which the
// reconciliation table turns into an assertion or coercion.
func parseGet(args []any, c *expr.ParsingContext) expr.Expression {
	if len(args) != 2 {
		c.Error(fmt.Sprintf("Expected one argument, but found %d instead.", len(args)-1))
		return nil
	}
	key := c.Parse(args[1], expr.Index(1), expr.Expected(types.String))
	if key == nil {
		return nil
	}
	return &op{
		name: "get",
		typ:  types.Value,
		args: []expr.Expression{key},
		pure: false,
		eval: func(ec *expr.EvaluationContext, args []expr.Expression) (any, error) {
			k, err := args[0].Evaluate(ec)
			if err != nil {
				return nil, err
			}
			s, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("Expected string but found %s instead.", types.TypeOf(k))
			}
			return ec.Feature[s], nil
		},
	}
}

// parseZoom reads the current zoom level at evaluation time; it is the
// canonical impure operator.
func parseZoom(args []any, c *expr.ParsingContext) expr.Expression {
	if len(args) != 1 {
		c.Error(fmt.Sprintf("Expected no arguments, but found %d instead.", len(args)-1))
		return nil
	}
	return &op{
		name: "zoom",
		typ:  types.Number,
		args: nil,
		pure: false,
		eval: func(ec *expr.EvaluationContext, args []expr.Expression) (any, error) {
			return ec.Zoom, nil
		},
	}
}
