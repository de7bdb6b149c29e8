package graph

import "github.com/skillgraph/skillgraph/pkg/skills"

// Mode is the navigation mode of a Navigator
type Mode int

const (
	// ModeBrowse shows a flat list of every node
	ModeBrowse Mode = iota
	// ModeFocus shows one node and its edges, with a breadcrumb trail
	ModeFocus
)

// String returns the string representation of the mode
func (m Mode) String() string {
	if m == ModeFocus {
		return "focus"
	}
	return "browse"
}

// Direction tells whether an edge leaves or enters the focused node
type Direction int

const (
	Outgoing Direction = iota
	Incoming
)

// NavEdge is one row of the focus-mode edge list
type NavEdge struct {
	Name      string
	Kind      EdgeKind
	Direction Direction
}

// Navigator is the browse/focus state machine behind the graph explorer.
// It holds no rendering state; a UI reads it and feeds it input.
type Navigator struct {
	graph      *Graph
	mode       Mode
	trail      []string
	cursor     int
	hasCursor  bool
	edgeCursor int
}

// NewNavigator returns a navigator in browse mode over g. The cursor starts
// on the first node, or is unset when g is nil or empty.
func NewNavigator(g *Graph) *Navigator {
	n := &Navigator{}
	n.SetGraph(g)
	return n
}

// Refresh rebuilds the graph from the latest skill data and resets the
// session: cursor on the first node, empty trail, browse mode.
func (n *Navigator) Refresh(crossrefs map[string][]skills.CrossRef, skillList []skills.Skill) {
	n.SetGraph(Build(crossrefs, skillList))
}

// SetGraph replaces the graph and resets the session like Refresh
func (n *Navigator) SetGraph(g *Graph) {
	n.graph = g
	n.trail = nil
	n.mode = ModeBrowse
	n.edgeCursor = 0
	if g != nil && g.NodeCount() > 0 {
		n.cursor = 0
		n.hasCursor = true
	} else {
		n.cursor = 0
		n.hasCursor = false
	}
}

// Graph returns the current graph, which may be nil
func (n *Navigator) Graph() *Graph {
	return n.graph
}

// Mode returns the current navigation mode
func (n *Navigator) Mode() Mode {
	return n.mode
}

// Trail returns a copy of the breadcrumb trail
func (n *Navigator) Trail() []string {
	return append([]string(nil), n.trail...)
}

// Selected returns the browse cursor. The second result is false when unset.
func (n *Navigator) Selected() (int, bool) {
	return n.cursor, n.hasCursor
}

// Select moves the browse cursor to index i if it is in range
func (n *Navigator) Select(i int) {
	if n.graph == nil || i < 0 || i >= n.graph.NodeCount() {
		return
	}
	n.cursor = i
	n.hasCursor = true
}

// EdgeCursor returns the focus-mode edge cursor
func (n *Navigator) EdgeCursor() int {
	return n.edgeCursor
}

// FocusedSkill returns the node the UI should describe: the selected row in
// browse mode, the last trail entry in focus mode.
func (n *Navigator) FocusedSkill() (string, bool) {
	switch n.mode {
	case ModeFocus:
		if len(n.trail) == 0 {
			return "", false
		}
		return n.trail[len(n.trail)-1], true
	default:
		if n.graph == nil || !n.hasCursor || n.cursor >= len(n.graph.nodes) {
			return "", false
		}
		return n.graph.nodes[n.cursor], true
	}
}

// EdgeList returns the outgoing then incoming edges of the focused node in
// focus mode, and nil in browse mode
func (n *Navigator) EdgeList() []NavEdge {
	if n.mode != ModeFocus || n.graph == nil || len(n.trail) == 0 {
		return nil
	}
	current := n.trail[len(n.trail)-1]

	var list []NavEdge
	out, _ := n.graph.EdgesFrom(current)
	for _, nb := range out {
		list = append(list, NavEdge{Name: nb.Name, Kind: nb.Kind, Direction: Outgoing})
	}
	in, _ := n.graph.EdgesTo(current)
	for _, nb := range in {
		list = append(list, NavEdge{Name: nb.Name, Kind: nb.Kind, Direction: Incoming})
	}
	return list
}

// ToggleMode enters focus mode on the selected node, or returns to browse
// mode. Leaving focus mode keeps the trail.
func (n *Navigator) ToggleMode() {
	switch n.mode {
	case ModeBrowse:
		name, ok := n.FocusedSkill()
		if !ok {
			return
		}
		n.trail = append(n.trail, name)
		n.mode = ModeFocus
		n.edgeCursor = 0
	case ModeFocus:
		n.mode = ModeBrowse
	}
}

// NavigateBack pops the trail. Popping the last entry returns to browse
// mode with an empty trail. No-op in browse mode.
func (n *Navigator) NavigateBack() {
	if n.mode != ModeFocus {
		return
	}
	if len(n.trail) > 1 {
		n.trail = n.trail[:len(n.trail)-1]
		n.edgeCursor = 0
		return
	}
	n.mode = ModeBrowse
	n.trail = nil
}

// FollowEdge pushes the node at the edge cursor onto the trail
func (n *Navigator) FollowEdge() {
	edges := n.EdgeList()
	if len(edges) == 0 {
		return
	}
	idx := n.edgeCursor
	if idx < 0 || idx >= len(edges) {
		return
	}
	n.trail = append(n.trail, edges[idx].Name)
	n.edgeCursor = 0
}

// Next moves the active cursor forward, wrapping to the start
func (n *Navigator) Next() {
	switch n.mode {
	case ModeBrowse:
		count := n.nodeCount()
		if count == 0 {
			return
		}
		if !n.hasCursor {
			n.cursor, n.hasCursor = 0, true
			return
		}
		n.cursor = (n.cursor + 1) % count
	case ModeFocus:
		count := len(n.EdgeList())
		if count == 0 {
			return
		}
		n.edgeCursor = (n.edgeCursor + 1) % count
	}
}

// Previous moves the active cursor backward, wrapping to the end
func (n *Navigator) Previous() {
	switch n.mode {
	case ModeBrowse:
		count := n.nodeCount()
		if count == 0 {
			return
		}
		if !n.hasCursor {
			n.cursor, n.hasCursor = 0, true
			return
		}
		n.cursor = (n.cursor - 1 + count) % count
	case ModeFocus:
		count := len(n.EdgeList())
		if count == 0 {
			return
		}
		n.edgeCursor = (n.edgeCursor - 1 + count) % count
	}
}

func (n *Navigator) nodeCount() int {
	if n.graph == nil {
		return 0
	}
	return n.graph.NodeCount()
}
