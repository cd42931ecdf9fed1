// Package expr implements the parsing and static type-checking front end for
// style expressions: a recursive descent over a JSON-shaped tree that
// validates operator forms, reconciles actual against expected types,
// resolves lexical bindings and folds constant subtrees into literals.
//
// Malformed input never escapes as a panic or an error value from Parse;
// every problem becomes a positioned ParseError in the session's shared sink
// and the offending subtree parses to nil.
package expr

import "github.com/stylex-lang/stylex/core/types"

// Expression is a parsed, typed node. Nodes are immutable after
// construction; a parent exclusively owns its children.
type Expression interface {
	// Type returns the node's output type, fixed at construction.
	Type() types.Type

	// Evaluate computes the node's value. Failures are returned, never
	// panicked; the error message is what surfaces to users when a
	// constant subtree fails to fold.
	Evaluate(ec *EvaluationContext) (any, error)

	// ForEachChild visits the node's immediate children in argument order.
	ForEachChild(fn func(Expression))
}

// pure is implemented by nodes whose value depends only on their children.
// The constant-folding oracle consults it; nodes that read evaluation-time
// state (zoom, feature properties) report false.
type pure interface {
	Pure() bool
}

// EvaluationContext carries the runtime inputs an expression may read.
// Constant folding evaluates against a fresh zero context.
type EvaluationContext struct {
	Zoom    float64
	Feature map[string]any
}
