package expr

// IsConstant is the default purity oracle: a node is constant iff it is a
// literal, or it is pure and every child is itself constant. Nodes that do
// not declare purity are treated as runtime-dependent.
func IsConstant(e Expression) bool {
	if _, ok := e.(*Literal); ok {
		return true
	}
	p, ok := e.(pure)
	if !ok || !p.Pure() {
		return false
	}
	constant := true
	e.ForEachChild(func(child Expression) {
		if !IsConstant(child) {
			constant = false
		}
	})
	return constant
}
