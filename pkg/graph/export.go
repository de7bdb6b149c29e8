package graph

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Format is a textual export format
type Format string

const (
	FormatDOT     Format = "dot"
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatMermaid Format = "mermaid"
)

// Formats lists every supported export format
var Formats = []Format{FormatDOT, FormatText, FormatJSON, FormatMermaid}

// ParseFormat parses a format name case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", errors.Errorf("unknown format '%s', must be one of: %s", s, strings.Join(names, ", "))
}

// Export renders g in the given format
func (g *Graph) Export(f Format) (string, error) {
	switch f {
	case FormatDOT:
		return g.ToDOT(), nil
	case FormatText:
		return g.ToText(), nil
	case FormatJSON:
		return g.ToJSON()
	case FormatMermaid:
		return g.ToMermaid(), nil
	default:
		return "", errors.Errorf("unsupported format '%s'", f)
	}
}

var dotFillColors = map[Role]string{
	RoleRoot:   "lightblue",
	RoleLeaf:   "lightgreen",
	RoleBridge: "orange",
	RolePlain:  "white",
}

// ToDOT renders the graph as Graphviz DOT. Nodes are filled by role and
// pipeline edges are dashed.
func (g *Graph) ToDOT() string {
	var b strings.Builder
	b.WriteString("digraph SkillGraph {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, name := range g.nodes {
		fmt.Fprintf(&b, "  %q [fillcolor=%s, style=\"rounded,filled\"];\n", name, dotFillColors[g.RoleOf(name)])
	}

	b.WriteString("\n")

	for _, e := range g.edges {
		style := ""
		if e.Kind == EdgePipeline {
			style = " [style=dashed, color=blue]"
		}
		fmt.Fprintf(&b, "  %q -> %q%s;\n", e.Source, e.Target, style)
	}

	b.WriteString("}\n")
	return b.String()
}

// ToText renders a summary header followed by one adjacency line per node
func (g *Graph) ToText() string {
	var b strings.Builder
	b.WriteString("# Skill Dependency Graph\n\n")

	fmt.Fprintf(&b, "Skills: %d\n", len(g.nodes))
	fmt.Fprintf(&b, "Clusters: %d\n", len(g.Clusters))
	fmt.Fprintf(&b, "Roots: %d\n", len(g.Roots))
	fmt.Fprintf(&b, "Leaves: %d\n", len(g.Leaves))
	fmt.Fprintf(&b, "Bridges: %d\n\n", len(g.Bridges))

	b.WriteString("## Dependencies\n\n")
	for i, name := range g.nodes {
		seen := make(map[string]struct{})
		var targets []string
		for _, pos := range g.outgoing[i] {
			t := g.edges[pos].Target
			if _, dup := seen[t]; !dup {
				seen[t] = struct{}{}
				targets = append(targets, t)
			}
		}
		sort.Strings(targets)

		if len(targets) == 0 {
			fmt.Fprintf(&b, "%s: (none)\n", name)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(targets, ", "))
		}
	}
	return b.String()
}

// JSONNode is one node of the JSON export
type JSONNode struct {
	ID       string `json:"id"`
	IsRoot   bool   `json:"is_root"`
	IsLeaf   bool   `json:"is_leaf"`
	IsBridge bool   `json:"is_bridge"`
}

// JSONEdge is one edge of the JSON export
type JSONEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// JSONGraph is the document produced by ToJSON
type JSONGraph struct {
	Nodes    []JSONNode `json:"nodes"`
	Edges    []JSONEdge `json:"edges"`
	Clusters [][]string `json:"clusters"`
}

// ToJSON renders nodes with role flags, edges with their kind, and the
// cluster list. Edges are grouped by source in node order.
func (g *Graph) ToJSON() (string, error) {
	doc := JSONGraph{
		Nodes:    make([]JSONNode, 0, len(g.nodes)),
		Edges:    make([]JSONEdge, 0, len(g.edges)),
		Clusters: g.Clusters,
	}
	if doc.Clusters == nil {
		doc.Clusters = [][]string{}
	}

	for i, name := range g.nodes {
		doc.Nodes = append(doc.Nodes, JSONNode{
			ID:       name,
			IsRoot:   g.IsRoot(name),
			IsLeaf:   g.IsLeaf(name),
			IsBridge: g.IsBridge(name),
		})
		for _, pos := range g.outgoing[i] {
			e := g.edges[pos]
			doc.Edges = append(doc.Edges, JSONEdge{
				Source: e.Source,
				Target: e.Target,
				Kind:   e.Kind.String(),
			})
		}
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal graph")
	}
	return string(out), nil
}

// ToMermaid renders a Mermaid flowchart with one arrow per unique pair.
// Identifiers replace '-' with '_'; the original name is the label.
func (g *Graph) ToMermaid() string {
	var b strings.Builder
	b.WriteString("graph LR\n")

	seen := make(map[edgeKey]struct{})
	for _, e := range g.edges {
		key := edgeKey{source: e.Source, target: e.Target}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		arrow := "-->"
		if e.Kind == EdgePipeline {
			arrow = "-.->"
		}
		fmt.Fprintf(&b, "  %s[%s] %s %s[%s]\n",
			mermaidID(e.Source), e.Source, arrow, mermaidID(e.Target), e.Target)
	}
	return b.String()
}

func mermaidID(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
