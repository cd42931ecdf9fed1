package expr

import "testing"

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "noop", Pure: true, Parse: func([]any, *ParsingContext) Expression { return nil }})

	if _, ok := r.Lookup("noop"); !ok {
		t.Error("registered operator should resolve")
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("unregistered operator should miss")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		r.Register(Definition{Name: name})
	}
	names := r.Names()
	if len(names) != 3 || names[0] != "alpha" || names[2] != "zeta" {
		t.Errorf("got %v", names)
	}
}

func TestRegistrySuggest(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "interpolate"})
	r.Register(Definition{Name: "literal"})

	if got := r.Suggest("intrpolate"); got != "interpolate" {
		t.Errorf("Suggest = %q, want interpolate", got)
	}
	if got := r.Suggest("xqzv"); got != "" {
		t.Errorf("Suggest for nonsense = %q, want empty", got)
	}
}
