package agenttree

import "github.com/agusx1211/agentwatch/internal/api"

// Expansion is the set of agent ids whose children are currently shown. It
// grows as new agents appear and shrinks only on explicit user toggles.
type Expansion struct {
	expanded map[string]struct{}
}

// NewExpansion returns an empty expansion set.
func NewExpansion() *Expansion {
	return &Expansion{expanded: make(map[string]struct{})}
}

// Has reports whether the given agent id is expanded.
func (e *Expansion) Has(id string) bool {
	_, ok := e.expanded[id]
	return ok
}

// Add marks an agent id as expanded.
func (e *Expansion) Add(id string) {
	if id == "" {
		return
	}
	e.expanded[id] = struct{}{}
}

// Toggle flips the expansion state of an agent id.
func (e *Expansion) Toggle(id string) {
	if e.Has(id) {
		delete(e.expanded, id)
		return
	}
	e.Add(id)
}

// Seed auto-expands for agents that appear in next but not in prev: a new
// agent with a parent expands the parent, a new root expands itself. Must
// run before the new listing replaces the previous one, while the previous
// id set is still available.
func (e *Expansion) Seed(prev, next []api.Agent) {
	existing := make(map[string]struct{}, len(prev))
	for _, a := range prev {
		existing[a.ID] = struct{}{}
	}
	for _, a := range next {
		if _, ok := existing[a.ID]; ok {
			continue
		}
		if a.ParentID != "" {
			e.Add(a.ParentID)
		} else {
			e.Add(a.ID)
		}
	}
}
