package builtins

import (
	"fmt"

	"github.com/stylex-lang/stylex/core/types"
	"github.com/stylex-lang/stylex/runtime/expr"
)

// caseExpression is condition/output branching with a required fallback.
type caseExpression struct {
	typ      types.Type
	branches []caseBranch
	fallback expr.Expression
}

type caseBranch struct {
	condition expr.Expression
	output    expr.Expression
}

func (e *caseExpression) Type() types.Type { return e.typ }

func (e *caseExpression) Evaluate(ec *expr.EvaluationContext) (any, error) {
	for _, branch := range e.branches {
		cond, err := branch.condition.Evaluate(ec)
		if err != nil {
			return nil, err
		}
		if b, ok := cond.(bool); ok && b {
			return branch.output.Evaluate(ec)
		}
	}
	return e.fallback.Evaluate(ec)
}

func (e *caseExpression) ForEachChild(fn func(expr.Expression)) {
	for _, branch := range e.branches {
		fn(branch.condition)
		fn(branch.output)
	}
	fn(e.fallback)
}

func (e *caseExpression) Pure() bool { return true }

func (e *caseExpression) OperatorName() string { return "case" }

// parseCase threads the expected output type through every branch: the
// context's expectation if set, otherwise the type of the first output.
func parseCase(args []any, c *expr.ParsingContext) expr.Expression {
	if len(args) < 4 {
		c.Error(fmt.Sprintf("Expected at least 3 arguments, but found only %d.", len(args)-1))
		return nil
	}
	if len(args)%2 != 0 {
		c.Error("Expected an odd number of arguments.")
		return nil
	}

	outputType := c.ExpectedType()
	parseOutput := func(raw any, index int) expr.Expression {
		opts := []expr.ParseOpt{expr.Index(index)}
		if outputType != nil {
			opts = append(opts, expr.Expected(*outputType))
		}
		output := c.Parse(raw, opts...)
		if output != nil && outputType == nil {
			t := output.Type()
			outputType = &t
		}
		return output
	}

	var branches []caseBranch
	for i := 1; i < len(args)-1; i += 2 {
		condition := c.Parse(args[i], expr.Index(i), expr.Expected(types.Boolean))
		if condition == nil {
			return nil
		}
		output := parseOutput(args[i+1], i+1)
		if output == nil {
			return nil
		}
		branches = append(branches, caseBranch{condition: condition, output: output})
	}
	fallback := parseOutput(args[len(args)-1], len(args)-1)
	if fallback == nil {
		return nil
	}
	return &caseExpression{typ: *outputType, branches: branches, fallback: fallback}
}

// coalesceExpression yields its first argument that evaluates to a
// non-null value.
type coalesceExpression struct {
	typ  types.Type
	args []expr.Expression
}

func (e *coalesceExpression) Type() types.Type { return e.typ }

func (e *coalesceExpression) Evaluate(ec *expr.EvaluationContext) (any, error) {
	var result any
	for _, arg := range e.args {
		v, err := arg.Evaluate(ec)
		if err != nil {
			return nil, err
		}
		result = v
		if result != nil {
			break
		}
	}
	return result, nil
}

func (e *coalesceExpression) ForEachChild(fn func(expr.Expression)) {
	for _, arg := range e.args {
		fn(arg)
	}
}

func (e *coalesceExpression) Pure() bool { return true }

func (e *coalesceExpression) OperatorName() string { return "coalesce" }

// parseCoalesce parses each argument against the context's expected type
// with annotation suppressed: instead of wrapping every argument, the
// enclosing parse annotates the coalesce as a whole (its type stays the
// first argument's type, so the reconciliation table fires once, outside).
func parseCoalesce(args []any, c *expr.ParsingContext) expr.Expression {
	if len(args) < 2 {
		c.Error(fmt.Sprintf("Expected at least one argument, but found %d instead.", len(args)-1))
		return nil
	}
	var outputType *types.Type
	parsed := make([]expr.Expression, 0, len(args)-1)
	for i := 1; i < len(args); i++ {
		opts := []expr.ParseOpt{expr.Index(i), expr.Annotate(expr.AnnotateOmit)}
		if t := c.ExpectedType(); t != nil {
			opts = append(opts, expr.Expected(*t))
		}
		arg := c.Parse(args[i], opts...)
		if arg == nil {
			return nil
		}
		if outputType == nil {
			t := arg.Type()
			outputType = &t
		}
		parsed = append(parsed, arg)
	}
	return &coalesceExpression{typ: *outputType, args: parsed}
}
