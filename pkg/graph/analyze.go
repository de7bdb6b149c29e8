package graph

import (
	"sort"

	dgraph "github.com/dominikbraun/graph"
)

// analyze attaches clusters, roots, leaves and bridges to g
func analyze(g *Graph) {
	g.Clusters = detectClusters(g)

	g.Roots = []string{}
	g.Leaves = []string{}
	g.Bridges = []string{}
	g.roots = make(map[string]struct{})
	g.leaves = make(map[string]struct{})
	g.bridges = make(map[string]struct{})

	// nodes are already sorted, so the role lists come out sorted
	for i, name := range g.nodes {
		in, out := len(g.incoming[i]), len(g.outgoing[i])
		if in == 0 {
			g.Roots = append(g.Roots, name)
			g.roots[name] = struct{}{}
		}
		if out == 0 {
			g.Leaves = append(g.Leaves, name)
			g.leaves[name] = struct{}{}
		}
		// Pass-through heuristic, not articulation-point detection.
		if in > 0 && out > 0 {
			g.Bridges = append(g.Bridges, name)
			g.bridges[name] = struct{}{}
		}
	}
}

// detectClusters returns the strongly connected components with more than
// one member. Members are sorted and clusters ordered by their first member.
func detectClusters(g *Graph) [][]string {
	clusters := [][]string{}
	if len(g.edges) == 0 {
		return clusters
	}

	d := dgraph.New(dgraph.StringHash, dgraph.Directed())
	for _, name := range g.nodes {
		_ = d.AddVertex(name)
	}
	for _, e := range g.edges {
		_ = d.AddEdge(e.Source, e.Target)
	}

	sccs, err := dgraph.StronglyConnectedComponents(d)
	if err != nil {
		// only returned for undirected graphs
		return clusters
	}

	for _, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		members := append([]string(nil), scc...)
		sort.Strings(members)
		clusters = append(clusters, members)
	}
	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i][0] < clusters[j][0]
	})
	return clusters
}
