// Package graph provides the in-memory undirected multigraph built from the
// node and edge tables.
//
// A MultiGraph keeps nodes and edges in insertion order and permits any
// number of edges between the same endpoint pair; parallel edges are never
// merged or deduplicated. Referential integrity is enforced at construction:
// an edge whose endpoints do not reference known node IDs is rejected before
// any rendering happens.
package graph

import (
	apperrors "github.com/csvnet/csvnet/pkg/errors"
)

// Node is a graph node with its mapped visual attributes.
type Node struct {
	ID          string // unique renderer key and display label
	Category    string // enumerated category from the source table
	Description string // tooltip text, used verbatim
	Color       string // fill color resolved by the mapper
}

// Edge is one undirected edge. Endpoint order carries no meaning; it is
// preserved only so output is deterministic.
type Edge struct {
	From    string // endpoint key
	To      string // endpoint key
	Type    string // enumerated type from the source table
	Details string // tooltip text, used verbatim
	Color   string // stroke color resolved by the mapper
}

// MultiGraph is an undirected multigraph with insertion-ordered nodes and
// edges. The zero value is not usable; create instances with New.
type MultiGraph struct {
	nodes []Node
	edges []Edge
	index map[string]int // node ID -> position in nodes
}

// New creates an empty multigraph.
func New() *MultiGraph {
	return &MultiGraph{index: make(map[string]int)}
}

// AddNode appends a node. Duplicate IDs are rejected.
func (g *MultiGraph) AddNode(n Node) error {
	if n.ID == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "node ID cannot be empty")
	}
	if _, exists := g.index[n.ID]; exists {
		return apperrors.New(apperrors.ErrCodeDuplicateNode, "duplicate node ID %q", n.ID)
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

// AddEdge appends an edge. Both endpoints must reference existing node IDs;
// repeated endpoint pairs are allowed and kept as distinct edges.
func (g *MultiGraph) AddEdge(e Edge) error {
	if _, ok := g.index[e.From]; !ok {
		return apperrors.New(apperrors.ErrCodeReferential, "edge %s-%s references unknown node %q", e.From, e.To, e.From)
	}
	if _, ok := g.index[e.To]; !ok {
		return apperrors.New(apperrors.ErrCodeReferential, "edge %s-%s references unknown node %q", e.From, e.To, e.To)
	}
	g.edges = append(g.edges, e)
	return nil
}

// HasNode reports whether a node with the given ID exists.
func (g *MultiGraph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Node returns the node with the given ID.
func (g *MultiGraph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Nodes returns all nodes in insertion order. The returned slice is shared;
// callers must not modify it.
func (g *MultiGraph) Nodes() []Node {
	return g.nodes
}

// Edges returns all edges in insertion order. The returned slice is shared;
// callers must not modify it.
func (g *MultiGraph) Edges() []Edge {
	return g.edges
}

// NodeCount returns the number of nodes.
func (g *MultiGraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, counting parallel edges separately.
func (g *MultiGraph) EdgeCount() int { return len(g.edges) }

// Degree returns the number of edge endpoints touching the given node.
// A self-loop contributes two.
func (g *MultiGraph) Degree(id string) int {
	d := 0
	for _, e := range g.edges {
		if e.From == id {
			d++
		}
		if e.To == id {
			d++
		}
	}
	return d
}
