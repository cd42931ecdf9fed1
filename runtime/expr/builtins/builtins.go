// Package builtins provides the standard operator table for style
// expressions. Every operator is an opaque registry entry: its parse
// routine records its own errors into the parsing context and returns nil
// on failure, and its evaluation returns explicit errors rather than
// panicking.
package builtins

import (
	"sync"

	"github.com/stylex-lang/stylex/core/types"
	"github.com/stylex-lang/stylex/runtime/expr"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *expr.Registry
)

// Default returns the registry holding the standard operator table. The
// table is built once; callers must not register into it.
func Default() *expr.Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry builds a fresh registry with the standard operator table,
// for callers that want to extend it without touching the shared one.
func NewRegistry() *expr.Registry {
	r := expr.NewRegistry()
	for _, def := range []expr.Definition{
		{Name: "literal", Pure: true, Parse: parseLiteral},
		{Name: "let", Pure: true, Parse: parseLet},
		{Name: "var", Pure: true, Parse: parseVar},

		assertionDef("string", types.String),
		assertionDef("number", types.Number),
		assertionDef("boolean", types.Boolean),
		assertionDef("object", types.Object),
		{Name: "array", Pure: true, Parse: parseArrayAssertion},

		coercionDef("to-number", types.Number, true),
		coercionDef("to-color", types.ColorT, true),
		coercionDef("to-string", types.String, false),
		coercionDef("to-boolean", types.Boolean, false),

		mathDef("+"),
		mathDef("-"),
		mathDef("*"),
		mathDef("/"),
		mathDef("%"),
		mathDef("^"),

		comparisonDef("=="),
		comparisonDef("!="),
		comparisonDef("<"),
		comparisonDef("<="),
		comparisonDef(">"),
		comparisonDef(">="),

		{Name: "case", Pure: true, Parse: parseCase},
		{Name: "coalesce", Pure: true, Parse: parseCoalesce},
		{Name: "concat", Pure: true, Parse: parseConcat},
		{Name: "image", Pure: true, Parse: parseImage},
		{Name: "get", Pure: false, Parse: parseGet},
		{Name: "zoom", Pure: false, Parse: parseZoom},
	} {
		r.Register(def)
	}
	return r
}

// evalFunc computes an operator's value from its already-parsed arguments.
type evalFunc func(ec *expr.EvaluationContext, args []expr.Expression) (any, error)

// op is the generic registered-operator node: a name, a fixed output type,
// a fixed argument list and an evaluation closure.
type op struct {
	name string
	typ  types.Type
	args []expr.Expression
	pure bool
	eval evalFunc
}

func (o *op) Type() types.Type { return o.typ }

func (o *op) Evaluate(ec *expr.EvaluationContext) (any, error) {
	return o.eval(ec, o.args)
}

func (o *op) ForEachChild(fn func(expr.Expression)) {
	for _, arg := range o.args {
		fn(arg)
	}
}

func (o *op) Pure() bool { return o.pure }

func (o *op) OperatorName() string { return o.name }

// evaluateAll evaluates every argument left to right, stopping at the
// first failure.
func evaluateAll(ec *expr.EvaluationContext, args []expr.Expression) ([]any, error) {
	out := make([]any, len(args))
	for i, arg := range args {
		v, err := arg.Evaluate(ec)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
