package builtins

import (
	"fmt"

	"github.com/stylex-lang/stylex/core/types"
	"github.com/stylex-lang/stylex/runtime/expr"
)

// parseLiteral handles the ["literal", value] escape form. The wrapped
// value is taken as-is; its type is inferred once and fixed.
func parseLiteral(args []any, c *expr.ParsingContext) expr.Expression {
	if len(args) != 2 {
		c.Error(fmt.Sprintf("'literal' expression requires exactly one argument, but found %d instead.", len(args)-1))
		return nil
	}
	if !types.IsValue(args[1]) {
		c.Error("invalid value")
		return nil
	}
	return expr.NewLiteral(types.TypeOf(args[1]), args[1])
}
