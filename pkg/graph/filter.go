package graph

import (
	"fmt"
	"strings"

	"github.com/skillgraph/skillgraph/pkg/skills"
)

// UnknownFilterError is returned when a pipeline or tag filter matches no skill
type UnknownFilterError struct {
	Kind      string // "pipeline" or "tag"
	Name      string
	Available []string // sorted
}

func (e *UnknownFilterError) Error() string {
	available := "(none)"
	if len(e.Available) > 0 {
		available = strings.Join(e.Available, ", ")
	}
	return fmt.Sprintf("%s '%s' not found. Available: %s", e.Kind, e.Name, available)
}

// Subgraph rebuilds a graph containing only the nodes in keep and the edges
// between them. The result is analyzed from scratch, so its clusters, roots,
// leaves and bridges describe the smaller graph. Edge kinds are preserved:
// cross-reference edges are replayed as cross-references and pipeline edges
// are regenerated from the retained skills' own declarations.
func (g *Graph) Subgraph(keep map[string]bool, skillList []skills.Skill) *Graph {
	crossrefs := make(map[string][]skills.CrossRef)

	for _, name := range g.nodes {
		if keep[name] {
			crossrefs[name] = []skills.CrossRef{}
		}
	}
	for _, e := range g.edges {
		if e.Kind != EdgeCrossRef || !keep[e.Source] || !keep[e.Target] {
			continue
		}
		crossrefs[e.Source] = append(crossrefs[e.Source], skills.CrossRef{
			Target: e.Target,
			Method: skills.MethodXMLCrossref,
		})
	}

	retained := make([]skills.Skill, 0, len(skillList))
	for _, s := range skillList {
		if keep[s.Name] {
			retained = append(retained, s)
		}
	}

	return Build(crossrefs, retained)
}

// FilterPipeline keeps only the skills that declare a stage in the named pipeline
func (g *Graph) FilterPipeline(skillList []skills.Skill, pipeline string) (*Graph, error) {
	keep := make(map[string]bool)
	for _, s := range skillList {
		if s.InPipeline(pipeline) {
			keep[s.Name] = true
		}
	}
	if len(keep) == 0 {
		return nil, &UnknownFilterError{
			Kind:      "pipeline",
			Name:      pipeline,
			Available: skills.PipelineNames(skillList),
		}
	}
	return g.Subgraph(keep, skillList), nil
}

// FilterTag keeps only the skills carrying the given tag
func (g *Graph) FilterTag(skillList []skills.Skill, tag string) (*Graph, error) {
	keep := make(map[string]bool)
	for _, s := range skillList {
		if s.HasTag(tag) {
			keep[s.Name] = true
		}
	}
	if len(keep) == 0 {
		return nil, &UnknownFilterError{
			Kind:      "tag",
			Name:      tag,
			Available: skills.TagNames(skillList),
		}
	}
	return g.Subgraph(keep, skillList), nil
}
