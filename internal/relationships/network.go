// Package relationships builds the typed relationship graph between suspects.
package relationships

import (
	"example.com/whodunit/internal/config"
)

// Edge is one undirected relationship between two suspects.
type Edge struct {
	A, B string
	Type config.RelationshipType
}

// Involves reports whether the suspect is either end of the edge.
func (e Edge) Involves(suspect string) bool {
	return e.A == suspect || e.B == suspect
}

// Other returns the far end of the edge as seen from suspect.
func (e Edge) Other(suspect string) string {
	if e.A == suspect {
		return e.B
	}
	return e.A
}

// Network is a complete undirected graph over the suspects. It is immutable once built.
type Network struct {
	suspects []string
	edges    []Edge
	byPair   map[string]int
}

// FromEdges builds a network over suspects. A later edge for the same pair replaces an earlier one.
func FromEdges(suspects []string, edges []Edge) *Network {
	n := &Network{
		suspects: append([]string(nil), suspects...),
		byPair:   make(map[string]int, len(edges)),
	}
	for _, e := range edges {
		key := config.PairKey(e.A, e.B)
		if i, ok := n.byPair[key]; ok {
			n.edges[i] = e
			continue
		}
		n.byPair[key] = len(n.edges)
		n.edges = append(n.edges, e)
	}
	return n
}

// Suspects returns the suspects the network was built over.
func (n *Network) Suspects() []string {
	return append([]string(nil), n.suspects...)
}

// Edges returns every edge in insertion order.
func (n *Network) Edges() []Edge {
	return append([]Edge(nil), n.edges...)
}

// Relationship looks up the type linking a and b, in either order.
func (n *Network) Relationship(a, b string) (config.RelationshipType, bool) {
	i, ok := n.byPair[config.PairKey(a, b)]
	if !ok {
		return config.RelationshipType{}, false
	}
	return n.edges[i].Type, true
}

// EdgesOf returns the edges touching suspect. Self-loops are not counted.
func (n *Network) EdgesOf(suspect string) []Edge {
	var out []Edge
	for _, e := range n.edges {
		if e.A != e.B && e.Involves(suspect) {
			out = append(out, e)
		}
	}
	return out
}

// Degree counts the distinct other suspects linked to suspect.
func (n *Network) Degree(suspect string) int {
	seen := make(map[string]struct{})
	for _, e := range n.EdgesOf(suspect) {
		seen[e.Other(suspect)] = struct{}{}
	}
	return len(seen)
}

// ConspiracyCompatiblePairs lists the STRONG edges whose type permits co-killers.
func (n *Network) ConspiracyCompatiblePairs() []Edge {
	var out []Edge
	for _, e := range n.edges {
		if e.Type.ConspiracyCompatible && e.Type.Strength == config.StrengthStrong {
			out = append(out, e)
		}
	}
	return out
}

// TypeCounts returns how many edges carry each relationship type id.
func (n *Network) TypeCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range n.edges {
		counts[e.Type.ID]++
	}
	return counts
}
