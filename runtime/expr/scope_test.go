package expr

import (
	"testing"

	"github.com/stylex-lang/stylex/core/types"
)

func TestScopeLookupWalksFrames(t *testing.T) {
	outer := NewScope(nil, []Binding{{Name: "a", Value: NewLiteral(types.Number, 1.0)}})
	inner := NewScope(outer, []Binding{{Name: "b", Value: NewLiteral(types.Number, 2.0)}})

	if _, ok := inner.Get("a"); !ok {
		t.Error("inner scope should see outer binding")
	}
	if _, ok := inner.Get("b"); !ok {
		t.Error("inner scope should see its own binding")
	}
	if _, ok := outer.Get("b"); ok {
		t.Error("outer scope must not see inner binding")
	}
	if _, ok := inner.Get("c"); ok {
		t.Error("unbound name should miss")
	}
}

func TestScopeShadowing(t *testing.T) {
	outerValue := NewLiteral(types.Number, 1.0)
	innerValue := NewLiteral(types.Number, 2.0)
	outer := NewScope(nil, []Binding{{Name: "a", Value: outerValue}})
	inner := NewScope(outer, []Binding{{Name: "a", Value: innerValue}})

	got, ok := inner.Get("a")
	if !ok || got != Expression(innerValue) {
		t.Error("inner frame should shadow outer binding")
	}
	got, ok = outer.Get("a")
	if !ok || got != Expression(outerValue) {
		t.Error("outer frame must be unaffected by extension")
	}
}

func TestScopeExtensionDoesNotMutate(t *testing.T) {
	base := NewScope(nil, nil)
	_ = NewScope(base, []Binding{{Name: "x", Value: NewLiteral(types.Null, nil)}})

	if _, ok := base.Get("x"); ok {
		t.Error("extending must not mutate the extended scope")
	}
}
