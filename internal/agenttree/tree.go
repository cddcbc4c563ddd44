// Package agenttree builds the agent forest from the backend's flat listing
// and tracks which nodes the user has expanded.
package agenttree

import (
	"fmt"

	"github.com/agusx1211/agentwatch/internal/api"
)

// Node wraps one agent with its resolved children, in listing order.
type Node struct {
	Agent    api.Agent
	Children []*Node
}

// Build assembles the forest from a flat ordered listing. Sibling order
// follows listing order. A child whose parent is absent from the listing is
// promoted to root; a parent cycle cannot recurse because attachment is a
// single flat pass over the input, not a walk.
func Build(agents []api.Agent) []*Node {
	nodes := make(map[string]*Node, len(agents))
	for _, a := range agents {
		nodes[a.ID] = &Node{Agent: a}
	}

	var roots []*Node
	for _, a := range agents {
		node := nodes[a.ID]
		if parent, ok := nodes[a.ParentID]; ok && a.ParentID != "" && a.ParentID != a.ID {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots
}

// Row is one line of the flattened, expansion-filtered forest: the node, its
// depth, and its dotted depth-first display path (root 2's third child is
// "2.3"). Paths are recomputed on every flatten, never stored.
type Row struct {
	Node  *Node
	Depth int
	Path  string
}

// Flatten walks the forest depth-first, descending only into expanded nodes,
// and returns the visible rows with display paths.
func Flatten(roots []*Node, exp *Expansion) []Row {
	var rows []Row
	var walk func(node *Node, depth int, path string)
	walk = func(node *Node, depth int, path string) {
		rows = append(rows, Row{Node: node, Depth: depth, Path: path})
		if len(node.Children) == 0 || !exp.Has(node.Agent.ID) {
			return
		}
		for i, child := range node.Children {
			walk(child, depth+1, fmt.Sprintf("%s.%d", path, i+1))
		}
	}
	for i, root := range roots {
		walk(root, 0, fmt.Sprintf("%d", i+1))
	}
	return rows
}
