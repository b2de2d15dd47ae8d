// Package topology defines the weighted directed debt graph consumed by the
// simulation. The graph is immutable once built: nodes and edges are fixed at
// construction and validated up front so the engine never encounters a
// dangling relationship mid-run.
package topology

import "fmt"

// Edge represents a debt of Amount owed by Source to Target.
type Edge struct {
	Source string
	Target string
	Amount float64
}

// TopologyError indicates an invalid graph definition, such as an edge
// referencing a node absent from the node set.
type TopologyError struct {
	Edge   Edge
	Reason string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("invalid edge %s -> %s: %s", e.Edge.Source, e.Edge.Target, e.Reason)
}

// Graph is an immutable weighted directed graph of debt relationships.
// Node names are mapped to stable integer ids in insertion order.
type Graph struct {
	nodes []string
	index map[string]int
	edges []Edge
	out   [][]int // successor node ids per node id
}

// New builds and validates a graph from a node set and edge list. Every edge
// endpoint must appear in nodes and every amount must be non-negative;
// violations return a TopologyError before any graph state is handed out.
func New(nodes []string, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes: make([]string, 0, len(nodes)),
		index: make(map[string]int, len(nodes)),
	}
	for _, name := range nodes {
		if _, ok := g.index[name]; ok {
			return nil, fmt.Errorf("duplicate node %q", name)
		}
		g.index[name] = len(g.nodes)
		g.nodes = append(g.nodes, name)
	}

	g.out = make([][]int, len(g.nodes))
	g.edges = make([]Edge, 0, len(edges))
	for _, edge := range edges {
		src, ok := g.index[edge.Source]
		if !ok {
			return nil, &TopologyError{Edge: edge, Reason: "source node not in node set"}
		}
		dst, ok := g.index[edge.Target]
		if !ok {
			return nil, &TopologyError{Edge: edge, Reason: "target node not in node set"}
		}
		if edge.Amount < 0 {
			return nil, &TopologyError{Edge: edge, Reason: "negative amount"}
		}
		g.edges = append(g.edges, edge)
		g.out[src] = append(g.out[src], dst)
	}

	return g, nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Nodes returns node names in id order. The returned slice must not be
// modified.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// Edges returns all edges. The returned slice must not be modified.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Name returns the node name for an id.
func (g *Graph) Name(id int) string {
	return g.nodes[id]
}

// Index returns the id for a node name.
func (g *Graph) Index(name string) (int, bool) {
	id, ok := g.index[name]
	return id, ok
}

// Successors returns the ids of nodes reachable by one outbound edge from id.
// The returned slice must not be modified.
func (g *Graph) Successors(id int) []int {
	return g.out[id]
}
