package graph

import (
	"sort"

	"github.com/skillgraph/skillgraph/pkg/skills"
)

// Build constructs an analyzed graph from cross-references and skill records.
//
// Every crossref key, every crossref target and every skill name becomes a
// node, so skills without any edges are still present. Cross-reference edges
// are added first, then pipeline edges: a stage's After entries point from
// the skill to each dependency, its Before entries point from each entry to
// the skill. The first edge for a (source, target) pair wins; later ones are
// dropped, as are edges whose endpoint is not a node. Sources and pipelines
// are visited in sorted order so identical input yields identical graphs.
func Build(crossrefs map[string][]skills.CrossRef, skillList []skills.Skill) *Graph {
	g := newGraph(collectNames(crossrefs, skillList))

	sources := make([]string, 0, len(crossrefs))
	for source := range crossrefs {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		for _, ref := range crossrefs[source] {
			g.addEdge(source, ref.Target, EdgeCrossRef)
		}
	}

	for _, s := range skillList {
		for _, pipeline := range s.PipelineNamesSorted() {
			stage := s.Frontmatter.Pipeline[pipeline]
			for _, dep := range stage.After {
				g.addEdge(s.Name, dep, EdgePipeline)
			}
			for _, dependent := range stage.Before {
				g.addEdge(dependent, s.Name, EdgePipeline)
			}
		}
	}

	analyze(g)
	return g
}

// FromCrossRefs builds a graph from cross-references only
func FromCrossRefs(crossrefs map[string][]skills.CrossRef) *Graph {
	return Build(crossrefs, nil)
}

func collectNames(crossrefs map[string][]skills.CrossRef, skillList []skills.Skill) []string {
	set := make(map[string]struct{})
	for source, refs := range crossrefs {
		set[source] = struct{}{}
		for _, ref := range refs {
			set[ref.Target] = struct{}{}
		}
	}
	for _, s := range skillList {
		set[s.Name] = struct{}{}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
