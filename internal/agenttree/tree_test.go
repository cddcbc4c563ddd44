package agenttree

import (
	"testing"

	"github.com/agusx1211/agentwatch/internal/api"
)

func agents(pairs ...[2]string) []api.Agent {
	out := make([]api.Agent, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, api.Agent{ID: p[0], ParentID: p[1]})
	}
	return out
}

func rowIDs(rows []Row) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.Node.Agent.ID)
	}
	return ids
}

func TestBuildNestsChildrenUnderParents(t *testing.T) {
	roots := Build(agents(
		[2]string{"root", ""},
		[2]string{"child", "root"},
		[2]string{"grand", "child"},
	))
	if len(roots) != 1 {
		t.Fatalf("len(roots) = %d, want 1", len(roots))
	}
	if got := roots[0].Agent.ID; got != "root" {
		t.Errorf("root id = %q, want %q", got, "root")
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Agent.ID != "child" {
		t.Fatalf("root children = %v", rowIDsOf(roots[0].Children))
	}
	if len(roots[0].Children[0].Children) != 1 {
		t.Errorf("grandchild missing")
	}
}

func rowIDsOf(nodes []*Node) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.Agent.ID)
	}
	return ids
}

func TestBuildOrphanBecomesRoot(t *testing.T) {
	roots := Build(agents(
		[2]string{"a", ""},
		[2]string{"b", "missing-parent"},
	))
	if len(roots) != 2 {
		t.Fatalf("len(roots) = %d, want 2", len(roots))
	}
	if roots[1].Agent.ID != "b" {
		t.Errorf("second root = %q, want %q", roots[1].Agent.ID, "b")
	}
}

func TestBuildSelfParentIsRoot(t *testing.T) {
	roots := Build(agents([2]string{"x", "x"}))
	if len(roots) != 1 {
		t.Fatalf("len(roots) = %d, want 1", len(roots))
	}
	if len(roots[0].Children) != 0 {
		t.Errorf("self-parented agent gained children")
	}
}

func TestBuildSiblingOrderFollowsListing(t *testing.T) {
	roots := Build(agents(
		[2]string{"p", ""},
		[2]string{"c2", "p"},
		[2]string{"c1", "p"},
	))
	got := rowIDsOf(roots[0].Children)
	if len(got) != 2 || got[0] != "c2" || got[1] != "c1" {
		t.Errorf("children = %v, want [c2 c1]", got)
	}
}

func TestFlattenPathsAndDepths(t *testing.T) {
	exp := NewExpansion()
	exp.Add("r1")
	exp.Add("r2")
	exp.Add("b")
	roots := Build(agents(
		[2]string{"r1", ""},
		[2]string{"a", "r1"},
		[2]string{"r2", ""},
		[2]string{"b", "r2"},
		[2]string{"c", "b"},
	))
	rows := Flatten(roots, exp)

	wantPaths := []string{"1", "1.1", "2", "2.1", "2.1.1"}
	wantIDs := []string{"r1", "a", "r2", "b", "c"}
	if len(rows) != len(wantPaths) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(wantPaths))
	}
	for i, r := range rows {
		if r.Path != wantPaths[i] {
			t.Errorf("rows[%d].Path = %q, want %q", i, r.Path, wantPaths[i])
		}
		if r.Node.Agent.ID != wantIDs[i] {
			t.Errorf("rows[%d].ID = %q, want %q", i, r.Node.Agent.ID, wantIDs[i])
		}
	}
	if rows[4].Depth != 2 {
		t.Errorf("rows[4].Depth = %d, want 2", rows[4].Depth)
	}
}

func TestFlattenCollapsedHidesSubtree(t *testing.T) {
	exp := NewExpansion()
	roots := Build(agents(
		[2]string{"r", ""},
		[2]string{"a", "r"},
		[2]string{"b", "a"},
	))
	rows := Flatten(roots, exp)
	if got := rowIDs(rows); len(got) != 1 || got[0] != "r" {
		t.Errorf("rows = %v, want [r]", got)
	}

	exp.Add("r")
	rows = Flatten(roots, exp)
	if got := rowIDs(rows); len(got) != 2 || got[1] != "a" {
		t.Errorf("rows = %v, want [r a]", got)
	}
}

func TestSeedExpandsParentOfNewAgent(t *testing.T) {
	exp := NewExpansion()
	prev := agents([2]string{"root", ""})
	next := agents(
		[2]string{"root", ""},
		[2]string{"kid", "root"},
	)
	exp.Seed(prev, next)
	if !exp.Has("root") {
		t.Errorf("parent of new agent not expanded")
	}
	if exp.Has("kid") {
		t.Errorf("new child expanded itself, want parent only")
	}
}

func TestSeedExpandsNewRootItself(t *testing.T) {
	exp := NewExpansion()
	exp.Seed(nil, agents([2]string{"solo", ""}))
	if !exp.Has("solo") {
		t.Errorf("new parentless agent not expanded")
	}
}

func TestSeedIgnoresKnownAgents(t *testing.T) {
	exp := NewExpansion()
	listing := agents(
		[2]string{"root", ""},
		[2]string{"kid", "root"},
	)
	exp.Seed(listing, listing)
	if exp.Has("root") || exp.Has("kid") {
		t.Errorf("seeding from identical listings changed expansion")
	}
}

func TestToggleFlips(t *testing.T) {
	exp := NewExpansion()
	exp.Toggle("x")
	if !exp.Has("x") {
		t.Fatalf("Toggle did not expand")
	}
	exp.Toggle("x")
	if exp.Has("x") {
		t.Errorf("Toggle did not collapse")
	}
}
