package builtins

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylex-lang/stylex/core/types"
	"github.com/stylex-lang/stylex/runtime/expr"
)

func parse(t *testing.T, raw any, opts ...expr.ParseOpt) (expr.Expression, []expr.ParseError) {
	t.Helper()
	return expr.ParseExpression(Default(), raw, opts...)
}

func mustParse(t *testing.T, raw any, opts ...expr.ParseOpt) expr.Expression {
	t.Helper()
	parsed, errs := parse(t, raw, opts...)
	require.Empty(t, errs)
	require.NotNil(t, parsed)
	return parsed
}

func TestScalarParsesAsLiteral(t *testing.T) {
	parsed := mustParse(t, float64(5))

	lit, ok := parsed.(*expr.Literal)
	require.True(t, ok, "expected *expr.Literal, got %T", parsed)
	assert.Equal(t, types.Number, lit.Type())
	assert.Equal(t, float64(5), lit.Value())
}

func TestScalarNullParsesAsLiteral(t *testing.T) {
	parsed := mustParse(t, nil)

	lit, ok := parsed.(*expr.Literal)
	require.True(t, ok)
	assert.Equal(t, types.Null, lit.Type())
	assert.Nil(t, lit.Value())
}

func TestEmptyArrayIsStructuralError(t *testing.T) {
	parsed, errs := parse(t, []any{})

	assert.Nil(t, parsed)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "at least one element")
}

func TestUnknownOperator(t *testing.T) {
	parsed, errs := parse(t, []any{"nonexistentOp", float64(1)})

	assert.Nil(t, parsed)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, `"nonexistentOp"`)
	assert.Equal(t, "[0]", errs[0].Key)
}

func TestUnknownOperatorSuggestsNearMiss(t *testing.T) {
	_, errs := parse(t, []any{"to-colr", "red"})

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, `Did you mean "to-color"?`)
}

func TestNonStringOperatorName(t *testing.T) {
	parsed, errs := parse(t, []any{float64(7), float64(1)})

	assert.Nil(t, parsed)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "must be a string")
	assert.Equal(t, "[0]", errs[0].Key)
}

func TestBareObjectRejected(t *testing.T) {
	parsed, errs := parse(t, map[string]any{"a": float64(1)})

	assert.Nil(t, parsed)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Bare objects invalid")
}

func TestUndefinedRejected(t *testing.T) {
	parsed, errs := parse(t, expr.Undefined)

	assert.Nil(t, parsed)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Use null instead")
}

func TestValueNarrowingInsertsAssertion(t *testing.T) {
	parsed := mustParse(t, []any{"get", "name"}, expr.Expected(types.String))

	assertion, ok := parsed.(*expr.Assertion)
	require.True(t, ok, "expected *expr.Assertion, got %T", parsed)
	assert.Equal(t, types.String, assertion.Type())
}

func TestValueNarrowingCoerceOverride(t *testing.T) {
	parsed := mustParse(t, []any{"get", "name"},
		expr.Expected(types.String), expr.Annotate(expr.AnnotateCoerce))

	coercion, ok := parsed.(*expr.Coercion)
	require.True(t, ok, "expected *expr.Coercion, got %T", parsed)
	assert.Equal(t, types.String, coercion.Type())
}

func TestValueNarrowingOmitOverride(t *testing.T) {
	parsed := mustParse(t, []any{"get", "name"},
		expr.Expected(types.String), expr.Annotate(expr.AnnotateOmit))

	assert.Equal(t, types.Value, parsed.Type())
}

func TestStringToColorInsertsCoercionNeverAssertion(t *testing.T) {
	// get keeps the tree impure so the coercion survives folding.
	parsed := mustParse(t, []any{"concat", []any{"get", "prefix"}, "0000"},
		expr.Expected(types.ColorT))

	coercion, ok := parsed.(*expr.Coercion)
	require.True(t, ok, "expected *expr.Coercion, got %T", parsed)
	assert.Equal(t, types.ColorT, coercion.Type())
}

func TestPureOperatorFoldsToLiteral(t *testing.T) {
	parsed := mustParse(t, []any{"+", float64(1), float64(2)})

	lit, ok := parsed.(*expr.Literal)
	require.True(t, ok, "expected folded *expr.Literal, got %T", parsed)
	assert.Equal(t, types.Number, lit.Type())
	assert.Equal(t, float64(3), lit.Value())
}

func TestImageNeverFolds(t *testing.T) {
	parsed := mustParse(t, []any{"image", "cat"})

	_, isLiteral := parsed.(*expr.Literal)
	assert.False(t, isLiteral, "resolvedImage expressions must stay lazy")
	assert.Equal(t, types.ResolvedImageT, parsed.Type())
}

func TestImpureOperatorDoesNotFold(t *testing.T) {
	parsed := mustParse(t, []any{"+", []any{"zoom"}, float64(1)})

	_, isLiteral := parsed.(*expr.Literal)
	assert.False(t, isLiteral)
	assert.Equal(t, types.Number, parsed.Type())

	v, err := parsed.Evaluate(&expr.EvaluationContext{Zoom: 10})
	require.NoError(t, err)
	assert.Equal(t, float64(11), v)
}

func TestFoldingFailureBecomesParseError(t *testing.T) {
	parsed, errs := parse(t, []any{"to-color", "definitely not a color"})

	assert.Nil(t, parsed)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "could not parse color")
}

func TestLetBindingFoldsThroughVar(t *testing.T) {
	parsed := mustParse(t, []any{"let", "a", float64(5),
		[]any{"+", []any{"var", "a"}, float64(1)}})

	lit, ok := parsed.(*expr.Literal)
	require.True(t, ok, "expected folded *expr.Literal, got %T", parsed)
	assert.Equal(t, float64(6), lit.Value())
}

func TestVarOutsideLetFails(t *testing.T) {
	parsed, errs := parse(t, []any{"var", "missing"})

	assert.Nil(t, parsed)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, `Unknown variable "missing"`)
	assert.Equal(t, "[1]", errs[0].Key)
}

func TestSiblingScopesAreIsolatedAndShareSink(t *testing.T) {
	// Each sibling binds its own name and references the other's: both must
	// fail, and the shared sink must keep the discovery order.
	raw := []any{"concat",
		[]any{"let", "x", float64(1), []any{"to-string", []any{"var", "y"}}},
		[]any{"let", "y", float64(2), []any{"to-string", []any{"var", "x"}}},
	}
	parsed, errs := parse(t, raw)

	assert.Nil(t, parsed)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Message, `Unknown variable "y"`)
	assert.Contains(t, errs[1].Message, `Unknown variable "x"`)
	assert.True(t, strings.HasPrefix(errs[0].Key, "[1]"), "first error key %q", errs[0].Key)
	assert.True(t, strings.HasPrefix(errs[1].Key, "[2]"), "second error key %q", errs[1].Key)
}

func TestLetBindingVisibleToResultOnly(t *testing.T) {
	parsed := mustParse(t, []any{"let", "width", float64(4),
		[]any{"*", []any{"var", "width"}, float64(2)}})

	v, err := parsed.Evaluate(&expr.EvaluationContext{})
	require.NoError(t, err)
	assert.Equal(t, float64(8), v)
}

func TestCaseThreadsExpectedType(t *testing.T) {
	raw := []any{"case",
		[]any{">", []any{"zoom"}, float64(5)}, "#ff0000",
		"#0000ff",
	}
	parsed := mustParse(t, raw, expr.Expected(types.ColorT))

	assert.Equal(t, types.ColorT, parsed.Type())
	v, err := parsed.Evaluate(&expr.EvaluationContext{Zoom: 10})
	require.NoError(t, err)
	red, ok := v.(types.Color)
	require.True(t, ok, "expected types.Color, got %T", v)
	assert.InDelta(t, 1.0, red.R, 1e-9)
}

func TestCaseInfersOutputTypeFromFirstBranch(t *testing.T) {
	raw := []any{"case", true, "yes", "no"}
	parsed := mustParse(t, raw)

	assert.Equal(t, types.String, parsed.Type())
}

func TestCoalesceAnnotatesOutsideNotPerArgument(t *testing.T) {
	raw := []any{"coalesce", []any{"get", "width"}, float64(0)}
	parsed := mustParse(t, raw, expr.Expected(types.Number))

	// Arguments stay unannotated; the wrapper lands on the coalesce itself.
	assertion, ok := parsed.(*expr.Assertion)
	require.True(t, ok, "expected outer *expr.Assertion, got %T", parsed)

	var children []expr.Expression
	assertion.ForEachChild(func(c expr.Expression) { children = append(children, c) })
	require.Len(t, children, 1)
	assert.Equal(t, types.Value, children[0].Type())
}

func TestAssertionFallbackTakesFirstMatchingValue(t *testing.T) {
	parsed := mustParse(t, []any{"number", []any{"get", "maybe"}, float64(7)})

	v, err := parsed.Evaluate(&expr.EvaluationContext{Feature: map[string]any{"maybe": "nope"}})
	require.NoError(t, err)
	assert.Equal(t, float64(7), v)
}

func TestAssertionFailsAtEvaluation(t *testing.T) {
	parsed := mustParse(t, []any{"string", []any{"get", "name"}})

	_, err := parsed.Evaluate(&expr.EvaluationContext{Feature: map[string]any{"name": float64(3)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected string")
}

func TestArrayAssertionWithItemTypeAndLength(t *testing.T) {
	parsed := mustParse(t, []any{"array", "number", float64(2), []any{"get", "offset"}})

	v, err := parsed.Evaluate(&expr.EvaluationContext{
		Feature: map[string]any{"offset": []any{float64(1), float64(2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, v)

	_, err = parsed.Evaluate(&expr.EvaluationContext{
		Feature: map[string]any{"offset": []any{float64(1), float64(2), float64(3)}},
	})
	require.Error(t, err)
}

func TestArrayAssertionRejectsBadItemType(t *testing.T) {
	parsed, errs := parse(t, []any{"array", "color", []any{"get", "c"}})

	assert.Nil(t, parsed)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "must be one of string, number, boolean")
	assert.Equal(t, "[1]", errs[0].Key)
}

func TestToNumberTriesArgumentsInOrder(t *testing.T) {
	parsed := mustParse(t, []any{"to-number", []any{"get", "a"}, []any{"get", "b"}})

	v, err := parsed.Evaluate(&expr.EvaluationContext{
		Feature: map[string]any{"a": "abc", "b": "42"},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(42), v)
}

func TestComparisonOperators(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want bool
	}{
		{"eq numbers", []any{"==", float64(1), float64(1)}, true},
		{"neq strings", []any{"!=", "a", "b"}, true},
		{"lt", []any{"<", float64(1), float64(2)}, true},
		{"gte false", []any{">=", "a", "b"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := mustParse(t, tt.raw)
			lit, ok := parsed.(*expr.Literal)
			require.True(t, ok, "comparisons of literals should fold, got %T", parsed)
			assert.Equal(t, tt.want, lit.Value())
		})
	}
}

func TestMathVariadicFolding(t *testing.T) {
	parsed := mustParse(t, []any{"*", float64(2), float64(3), float64(4)})

	lit, ok := parsed.(*expr.Literal)
	require.True(t, ok)
	assert.Equal(t, float64(24), lit.Value())
}

func TestNegation(t *testing.T) {
	parsed := mustParse(t, []any{"-", float64(3)})

	lit, ok := parsed.(*expr.Literal)
	require.True(t, ok)
	assert.Equal(t, float64(-3), lit.Value())
}

func TestLiteralEscapeForArrays(t *testing.T) {
	parsed := mustParse(t, []any{"literal", []any{float64(1), float64(2)}})

	lit, ok := parsed.(*expr.Literal)
	require.True(t, ok)
	assert.Equal(t, types.ArrayKind, lit.Type().Kind)
}

func TestLiteralWrongArgumentCount(t *testing.T) {
	parsed, errs := parse(t, []any{"literal", float64(1), float64(2)})

	assert.Nil(t, parsed)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "exactly one argument")
}

func TestDeepErrorPathKeys(t *testing.T) {
	// The bad value is the first argument of the inner +, at [2][1].
	raw := []any{"+", float64(1), []any{"+", true, float64(2)}}
	parsed, errs := parse(t, raw)

	assert.Nil(t, parsed)
	require.Len(t, errs, 1)
	assert.Equal(t, "[2][1]", errs[0].Key)
	assert.Contains(t, errs[0].Message, "Expected number but found boolean")
}

func TestMultipleErrorsInOnePass(t *testing.T) {
	raw := []any{"+", true, "x"}
	parsed, errs := parse(t, raw)

	assert.Nil(t, parsed)
	require.Len(t, errs, 2)
	assert.Equal(t, "[1]", errs[0].Key)
	assert.Equal(t, "[2]", errs[1].Key)
}
