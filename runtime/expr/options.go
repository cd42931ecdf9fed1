package expr

import "github.com/stylex-lang/stylex/core/types"

// Annotation selects how an expected type is reconciled against a node's
// actual type when the decision table would insert a wrapper.
type Annotation int

const (
	// AnnotateDefault applies the reconciliation table as-is: assert for
	// generic-value narrowing, coerce for the lenient kinds.
	AnnotateDefault Annotation = iota
	// AnnotateAssert forces an assertion wrapper.
	AnnotateAssert
	// AnnotateCoerce forces a coercion wrapper; used by string-valued
	// fields that prefer convenience over strictness.
	AnnotateCoerce
	// AnnotateOmit suppresses wrapping entirely; used inside combinators
	// like coalesce that annotate their overall result instead.
	AnnotateOmit
)

// ParseOpt configures a single Parse call.
type ParseOpt func(*parseOptions)

type parseOptions struct {
	index      *int
	expected   *types.Type
	bindings   []Binding
	annotation Annotation
}

// Index parses the value as the child at position i: the context derives a
// child context whose path gains i before descending. Expected and
// Bindings only take effect together with Index.
func Index(i int) ParseOpt {
	return func(o *parseOptions) { o.index = &i }
}

// Expected sets the type the child is required to produce. Without it the
// child parses unconstrained; the parent's expectation is not inherited.
func Expected(t types.Type) ParseOpt {
	return func(o *parseOptions) { o.expected = &t }
}

// Bindings layers a new scope frame with the given bindings over the
// current scope for the duration of the child parse.
func Bindings(bs ...Binding) ParseOpt {
	return func(o *parseOptions) { o.bindings = bs }
}

// Annotate overrides the reconciliation table's wrapping decision.
func Annotate(a Annotation) ParseOpt {
	return func(o *parseOptions) { o.annotation = a }
}
