package expr

// ParseExpression is the session entry point: it creates a root context,
// parses raw against the options' expected type and returns the typed root
// node together with every error the descent recorded. A nil node is always
// accompanied by at least one error.
func ParseExpression(registry *Registry, raw any, opts ...ParseOpt) (Expression, []ParseError) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	c := NewParsingContext(registry)
	c.expected = o.expected
	parsed := c.parse(raw, o.annotation)
	return parsed, c.Errors()
}
