package expr

import (
	"sort"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ParseFunc parses the raw array form of one operator. args is the whole
// array including the operator name at index 0. On failure it must record
// the reason via c.Error (or a child parse already did) and return nil; the
// context never adds a generic error on its behalf.
type ParseFunc func(args []any, c *ParsingContext) Expression

// Definition is one registry entry: an operator name, its parse routine and
// whether the operator is pure (value depends only on its arguments, which
// makes it a constant-folding candidate).
type Definition struct {
	Name  string
	Pure  bool
	Parse ParseFunc
}

// Registry maps operator names to their definitions. The table is built
// once at startup; lookups are read-mostly.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds or replaces a definition.
func (r *Registry) Register(def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Name] = def
}

// Lookup resolves an operator name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// Names returns all registered operator names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the registered name closest to target, or "" when nothing
// ranks as a plausible near miss.
func (r *Registry) Suggest(target string) string {
	ranks := fuzzy.RankFindFold(target, r.Names())
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
