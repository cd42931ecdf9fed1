package builtins

import (
	"fmt"
	"regexp"

	"github.com/stylex-lang/stylex/core/types"
	"github.com/stylex-lang/stylex/runtime/expr"
)

var validBindingName = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// letExpression introduces lexical bindings for its result subtree. The
// binding values are parsed in the enclosing scope; only the result sees
// the extended scope.
type letExpression struct {
	bindings []expr.Binding
	result   expr.Expression
}

func (l *letExpression) Type() types.Type { return l.result.Type() }

func (l *letExpression) Evaluate(ec *expr.EvaluationContext) (any, error) {
	return l.result.Evaluate(ec)
}

func (l *letExpression) ForEachChild(fn func(expr.Expression)) {
	for _, b := range l.bindings {
		fn(b.Value)
	}
	fn(l.result)
}

func (l *letExpression) Pure() bool { return true }

func (l *letExpression) OperatorName() string { return "let" }

func parseLet(args []any, c *expr.ParsingContext) expr.Expression {
	if len(args) < 4 {
		c.Error(fmt.Sprintf("Expected at least 3 arguments, but found %d instead.", len(args)-1))
		return nil
	}
	if len(args)%2 != 0 {
		c.Error("Expected an even number of arguments.")
		return nil
	}

	var bindings []expr.Binding
	for i := 1; i < len(args)-1; i += 2 {
		name, ok := args[i].(string)
		if !ok {
			c.Error(fmt.Sprintf("Expected string, but found %s instead.", types.TypeOf(args[i])), i)
			return nil
		}
		if !validBindingName.MatchString(name) {
			c.Error("Variable names must contain only alphanumeric characters or '_'.", i)
			return nil
		}
		value := c.Parse(args[i+1], expr.Index(i+1))
		if value == nil {
			return nil
		}
		bindings = append(bindings, expr.Binding{Name: name, Value: value})
	}

	resultOpts := []expr.ParseOpt{expr.Index(len(args) - 1), expr.Bindings(bindings...)}
	if t := c.ExpectedType(); t != nil {
		resultOpts = append(resultOpts, expr.Expected(*t))
	}
	result := c.Parse(args[len(args)-1], resultOpts...)
	if result == nil {
		return nil
	}
	return &letExpression{bindings: bindings, result: result}
}

// varExpression references a let-bound expression. It holds the parsed
// binding directly, so its type and constancy are the binding's own.
type varExpression struct {
	name  string
	bound expr.Expression
}

func (v *varExpression) Type() types.Type { return v.bound.Type() }

func (v *varExpression) Evaluate(ec *expr.EvaluationContext) (any, error) {
	return v.bound.Evaluate(ec)
}

func (v *varExpression) ForEachChild(fn func(expr.Expression)) { fn(v.bound) }

func (v *varExpression) Pure() bool { return true }

func (v *varExpression) OperatorName() string { return "var" }

func parseVar(args []any, c *expr.ParsingContext) expr.Expression {
	if len(args) != 2 {
		c.Error("'var' expression requires exactly one string literal argument.")
		return nil
	}
	name, ok := args[1].(string)
	if !ok {
		c.Error("'var' expression requires exactly one string literal argument.", 1)
		return nil
	}
	bound, ok := c.LookupBinding(name)
	if !ok {
		c.Error(fmt.Sprintf(`Unknown variable "%s". Make sure "%s" has been bound in an enclosing "let" expression before using it.`, name, name), 1)
		return nil
	}
	return &varExpression{name: name, bound: bound}
}
