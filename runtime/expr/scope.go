package expr

// Binding associates a local name with its already-parsed expression.
type Binding struct {
	Name  string
	Value Expression
}

// Scope is an immutable chain of binding frames. Extending a scope layers a
// new frame on top and never touches the frame it extends, so sibling
// subexpressions parsed against the unextended scope cannot observe
// bindings introduced for a different sibling.
type Scope struct {
	parent   *Scope
	bindings map[string]Expression
}

// NewScope layers a frame with the given bindings over parent. Names must
// be unique within one frame; a duplicate silently wins over the earlier
// entry, callers validate before extending.
func NewScope(parent *Scope, bindings []Binding) *Scope {
	frame := make(map[string]Expression, len(bindings))
	for _, b := range bindings {
		frame[b.Name] = b.Value
	}
	return &Scope{parent: parent, bindings: frame}
}

// Get resolves name against the innermost frame that binds it.
func (s *Scope) Get(name string) (Expression, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if e, ok := cur.bindings[name]; ok {
			return e, true
		}
	}
	return nil, false
}
