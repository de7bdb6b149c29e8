// Package graph builds and analyzes the dependency graph between skills.
//
// A Graph is constructed once from two independent relation sources, the
// cross-references found in skill bodies and the after/before hints of
// pipeline stages, and is immutable afterwards. Analysis results (clusters,
// roots, leaves, bridges) are computed during construction. Filtering never
// prunes a graph in place; it rebuilds a smaller graph from scratch.
//
// The package performs no I/O and is not safe for concurrent mutation; a
// Graph or Navigator belongs to one session at a time.
package graph

// EdgeKind discriminates where an edge came from
type EdgeKind int

const (
	// EdgeCrossRef is derived from a reference in a skill body
	EdgeCrossRef EdgeKind = iota
	// EdgePipeline is derived from a pipeline stage's after/before list
	EdgePipeline
)

// String returns the string representation of the edge kind
func (k EdgeKind) String() string {
	switch k {
	case EdgeCrossRef:
		return "crossref"
	case EdgePipeline:
		return "pipeline"
	default:
		return "unknown"
	}
}

// Edge is a directed edge between two skill names
type Edge struct {
	Source string
	Target string
	Kind   EdgeKind
}

// Neighbor is the far end of an edge as seen from one node
type Neighbor struct {
	Name string
	Kind EdgeKind
}

// Role classifies a node for display
type Role int

const (
	RolePlain Role = iota
	RoleRoot
	RoleLeaf
	RoleBridge
)

// String returns the string representation of the role
func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "root"
	case RoleLeaf:
		return "leaf"
	case RoleBridge:
		return "bridge"
	default:
		return "plain"
	}
}

type edgeKey struct {
	source string
	target string
}

// Graph is a directed multi-typed graph keyed by unique skill name.
// At most one edge exists for any (source, target) pair.
type Graph struct {
	nodes    []string       // sorted
	index    map[string]int // name -> position in nodes
	edges    []Edge         // insertion order
	seen     map[edgeKey]struct{}
	outgoing [][]int // node position -> edge positions
	incoming [][]int

	// Clusters are the strongly connected components with more than one member
	Clusters [][]string
	// Roots are the nodes with no incoming edges, sorted
	Roots []string
	// Leaves are the nodes with no outgoing edges, sorted
	Leaves []string
	// Bridges are the nodes with both incoming and outgoing edges, sorted
	Bridges []string

	roots   map[string]struct{}
	leaves  map[string]struct{}
	bridges map[string]struct{}
}

func newGraph(names []string) *Graph {
	g := &Graph{
		nodes:    names,
		index:    make(map[string]int, len(names)),
		seen:     make(map[edgeKey]struct{}),
		outgoing: make([][]int, len(names)),
		incoming: make([][]int, len(names)),
	}
	for i, name := range names {
		g.index[name] = i
	}
	return g
}

// addEdge inserts source->target unless the pair already exists or either
// endpoint is unknown. It reports whether an edge was added.
func (g *Graph) addEdge(source, target string, kind EdgeKind) bool {
	key := edgeKey{source: source, target: target}
	if _, dup := g.seen[key]; dup {
		return false
	}
	si, ok := g.index[source]
	if !ok {
		return false
	}
	ti, ok := g.index[target]
	if !ok {
		return false
	}

	g.seen[key] = struct{}{}
	g.edges = append(g.edges, Edge{Source: source, Target: target, Kind: kind})
	pos := len(g.edges) - 1
	g.outgoing[si] = append(g.outgoing[si], pos)
	g.incoming[ti] = append(g.incoming[ti], pos)
	return true
}

// NodeNames returns all node names in lexical order
func (g *Graph) NodeNames() []string {
	return append([]string(nil), g.nodes...)
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// HasNode reports whether name is a node of the graph
func (g *Graph) HasNode(name string) bool {
	_, ok := g.index[name]
	return ok
}

// HasEdge reports whether the edge source->target exists
func (g *Graph) HasEdge(source, target string) bool {
	_, ok := g.seen[edgeKey{source: source, target: target}]
	return ok
}

// EdgesFrom returns the targets of name's outgoing edges in insertion order.
// The second result is false when name is not a node.
func (g *Graph) EdgesFrom(name string) ([]Neighbor, bool) {
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	out := make([]Neighbor, 0, len(g.outgoing[i]))
	for _, pos := range g.outgoing[i] {
		e := g.edges[pos]
		out = append(out, Neighbor{Name: e.Target, Kind: e.Kind})
	}
	return out, true
}

// EdgesTo returns the sources of name's incoming edges in insertion order.
// The second result is false when name is not a node.
func (g *Graph) EdgesTo(name string) ([]Neighbor, bool) {
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	in := make([]Neighbor, 0, len(g.incoming[i]))
	for _, pos := range g.incoming[i] {
		e := g.edges[pos]
		in = append(in, Neighbor{Name: e.Source, Kind: e.Kind})
	}
	return in, true
}

// OutDegree returns the number of outgoing edges of name
func (g *Graph) OutDegree(name string) int {
	if i, ok := g.index[name]; ok {
		return len(g.outgoing[i])
	}
	return 0
}

// InDegree returns the number of incoming edges of name
func (g *Graph) InDegree(name string) int {
	if i, ok := g.index[name]; ok {
		return len(g.incoming[i])
	}
	return 0
}

// IsRoot reports whether name has no incoming edges
func (g *Graph) IsRoot(name string) bool {
	_, ok := g.roots[name]
	return ok
}

// IsLeaf reports whether name has no outgoing edges
func (g *Graph) IsLeaf(name string) bool {
	_, ok := g.leaves[name]
	return ok
}

// IsBridge reports whether name has both incoming and outgoing edges
func (g *Graph) IsBridge(name string) bool {
	_, ok := g.bridges[name]
	return ok
}

// RoleOf returns the display role of name. Root wins over leaf, and leaf
// over bridge, so an isolated node is a root.
func (g *Graph) RoleOf(name string) Role {
	switch {
	case g.IsRoot(name):
		return RoleRoot
	case g.IsLeaf(name):
		return RoleLeaf
	case g.IsBridge(name):
		return RoleBridge
	default:
		return RolePlain
	}
}

// ClusterOf returns the cluster containing name, or nil
func (g *Graph) ClusterOf(name string) []string {
	for _, cluster := range g.Clusters {
		for _, member := range cluster {
			if member == name {
				return cluster
			}
		}
	}
	return nil
}
