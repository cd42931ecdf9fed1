package expr

import (
	"fmt"
	"strings"

	"github.com/stylex-lang/stylex/core/types"
)

// Undefined is the sentinel callers feed in for inputs whose source format
// distinguishes an absent value from an explicit null. JSON never produces
// it; front ends that can must map their absent marker to this value so the
// parser can reject it with a useful message.
var Undefined = undefined{}

type undefined struct{}

// ParsingContext threads the recursive descent's state: position in the
// tree, the type the node here must produce, visible bindings, the
// session-wide error sink, the operator table and the purity oracle.
// Derived contexts share the sink (and only the sink) with their parent.
type ParsingContext struct {
	registry *Registry
	oracle   func(Expression) bool

	path     []int
	key      string
	expected *types.Type
	scope    *Scope
	errors   *errorSink
}

// ContextOpt configures a root parsing context.
type ContextOpt func(*ParsingContext)

// WithOracle replaces the constant-folding oracle. The zero oracle is
// IsConstant; tests substitute always-false to disable folding.
func WithOracle(oracle func(Expression) bool) ContextOpt {
	return func(c *ParsingContext) { c.oracle = oracle }
}

// NewParsingContext creates the root context of a parse session. The
// session's error sink lives as long as the returned context tree.
func NewParsingContext(registry *Registry, opts ...ContextOpt) *ParsingContext {
	c := &ParsingContext{
		registry: registry,
		oracle:   IsConstant,
		scope:    NewScope(nil, nil),
		errors:   &errorSink{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Errors returns the session's accumulated errors in discovery order.
func (c *ParsingContext) Errors() []ParseError { return c.errors.errs }

// ExpectedType returns the type this context's node must produce, or nil
// when unconstrained.
func (c *ParsingContext) ExpectedType() *types.Type { return c.expected }

// Key returns the bracket-rendered path of this context, e.g. "[0][1]".
func (c *ParsingContext) Key() string { return c.key }

// LookupBinding resolves a let-bound name visible at this context.
func (c *ParsingContext) LookupBinding(name string) (Expression, bool) {
	return c.scope.Get(name)
}

// concat derives the child context for position index: path gains the
// index, the expected type is replaced (nil when the caller sets none), the
// scope optionally gains a frame, and the sink, registry and oracle are
// shared unchanged.
func (c *ParsingContext) concat(index int, expected *types.Type, bindings []Binding) *ParsingContext {
	path := make([]int, len(c.path), len(c.path)+1)
	copy(path, c.path)
	path = append(path, index)

	scope := c.scope
	if len(bindings) > 0 {
		scope = NewScope(scope, bindings)
	}
	return &ParsingContext{
		registry: c.registry,
		oracle:   c.oracle,
		path:     path,
		key:      fmt.Sprintf("%s[%d]", c.key, index),
		expected: expected,
		scope:    scope,
		errors:   c.errors,
	}
}

// Parse parses a raw JSON-shaped value into a typed expression. On failure
// it returns nil with the reasons already recorded in the session's sink.
// With an Index option the work happens in a derived child context.
func (c *ParsingContext) Parse(raw any, opts ...ParseOpt) Expression {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.index != nil {
		return c.concat(*o.index, o.expected, o.bindings).parse(raw, o.annotation)
	}
	return c.parse(raw, o.annotation)
}

func (c *ParsingContext) parse(raw any, annotation Annotation) Expression {
	// Scalars are sugar for the two-element literal form.
	switch raw.(type) {
	case nil, string, bool:
		raw = []any{"literal", raw}
	default:
		if _, ok := types.ToFloat(raw); ok {
			raw = []any{"literal", raw}
		}
	}

	args, ok := raw.([]any)
	if !ok {
		if _, isUndefined := raw.(undefined); isUndefined {
			c.Error(`'undefined' value invalid. Use null instead.`)
		} else if _, isObj := raw.(map[string]any); isObj {
			c.Error(`Bare objects invalid. Use ["literal", {...}] instead.`)
		} else {
			c.Error(fmt.Sprintf("Expected an array, but found %s instead.", types.TypeOf(raw)))
		}
		return nil
	}

	if len(args) == 0 {
		c.Error(`Expected an array with at least one element. If you wanted a literal array, use ["literal", []].`)
		return nil
	}
	name, ok := args[0].(string)
	if !ok {
		c.Error(fmt.Sprintf(`Expression name must be a string, but found %s instead. If you wanted a literal array, use ["literal", [...]].`, types.TypeOf(args[0])), 0)
		return nil
	}
	def, ok := c.registry.Lookup(name)
	if !ok {
		msg := fmt.Sprintf(`Unknown expression "%s". If you wanted a literal array, use ["literal", [...]].`, name)
		if suggestion := c.registry.Suggest(name); suggestion != "" {
			msg += fmt.Sprintf(` Did you mean "%s"?`, suggestion)
		}
		c.Error(msg, 0)
		return nil
	}

	parsed := def.Parse(args, c)
	if parsed == nil {
		// The operator's parse routine already recorded why.
		return nil
	}

	if c.expected != nil {
		parsed = c.reconcile(parsed, *c.expected, annotation)
		if parsed == nil {
			return nil
		}
	}

	return c.fold(parsed)
}

// reconcile applies the fixed (expected kind, actual kind) decision table:
// narrow a generic value with an assertion, convert into the lenient kinds
// with a coercion, and otherwise require actual to be a strict subtype of
// expected. annotation overrides the first two rows' wrapper choice.
func (c *ParsingContext) reconcile(parsed Expression, expected types.Type, annotation Annotation) Expression {
	actual := parsed.Type()

	wrap := func(def Annotation) Expression {
		mode := def
		if annotation != AnnotateDefault {
			mode = annotation
		}
		switch mode {
		case AnnotateCoerce:
			return NewCoercion(expected, parsed)
		case AnnotateOmit:
			return parsed
		default:
			return NewAssertion(expected, parsed)
		}
	}

	switch {
	case isAssertableKind(expected.Kind) && actual.Kind == types.ValueKind:
		return wrap(AnnotateAssert)
	case coercibleFrom(expected.Kind, actual.Kind):
		return wrap(AnnotateCoerce)
	default:
		if msg := c.CheckSubtype(expected, actual); msg != "" {
			return nil
		}
		return parsed
	}
}

func isAssertableKind(k types.Kind) bool {
	switch k {
	case types.StringKind, types.NumberKind, types.BooleanKind, types.ObjectKind, types.ArrayKind:
		return true
	}
	return false
}

// coercibleFrom is the coercion half of the reconciliation table. Any kind
// pair not listed here takes the strict subtype path.
func coercibleFrom(expected, actual types.Kind) bool {
	switch expected {
	case types.ProjectionDefinitionKind:
		return actual == types.StringKind || actual == types.ArrayKind
	case types.ColorKind, types.FormattedKind, types.ResolvedImageKind:
		return actual == types.ValueKind || actual == types.StringKind
	case types.PaddingKind, types.NumberArrayKind:
		return actual == types.ValueKind || actual == types.NumberKind || actual == types.ArrayKind
	case types.ColorArrayKind:
		return actual == types.ValueKind || actual == types.StringKind || actual == types.ArrayKind
	case types.VariableAnchorOffsetCollectionKind:
		return actual == types.ValueKind || actual == types.ArrayKind
	}
	return false
}

// fold replaces a provably-constant node with the literal it evaluates to.
// Literals are already folded and resolvedImage values must stay lazy so a
// later pass can decide image availability. An evaluation failure becomes a
// positioned parse error, never a panic past the parser boundary.
func (c *ParsingContext) fold(parsed Expression) Expression {
	if _, isLiteral := parsed.(*Literal); isLiteral {
		return parsed
	}
	if parsed.Type().Kind == types.ResolvedImageKind {
		return parsed
	}
	if !c.oracle(parsed) {
		return parsed
	}
	value, err := parsed.Evaluate(&EvaluationContext{})
	if err != nil {
		c.Error(err.Error())
		return nil
	}
	return NewLiteral(parsed.Type(), value)
}

// Error appends a record at this context's path plus any extra child
// indices. Recording never unwinds; callers choose whether to keep
// collecting sibling errors or to return nil.
func (c *ParsingContext) Error(message string, childIndices ...int) {
	var key strings.Builder
	key.WriteString(c.key)
	for _, i := range childIndices {
		fmt.Fprintf(&key, "[%d]", i)
	}
	c.errors.append(key.String(), message)
}

// CheckSubtype verifies actual against expected, recording any failure. It
// returns the predicate's message ("" on success) so callers that need the
// text without a second record can special-case it.
func (c *ParsingContext) CheckSubtype(expected, actual types.Type) string {
	msg := types.CheckSubtype(expected, actual)
	if msg != "" {
		c.Error(msg)
	}
	return msg
}
