package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skillgraph/skillgraph/pkg/graph"
)

// Tokyo Night palette
var (
	colorBlue    = lipgloss.Color("#7aa2f7")
	colorGreen   = lipgloss.Color("#9ece6a")
	colorYellow  = lipgloss.Color("#e0af68")
	colorCyan    = lipgloss.Color("#7dcfff")
	colorMagenta = lipgloss.Color("#bb9af7")
	colorText    = lipgloss.Color("#c0caf5")
	colorMuted   = lipgloss.Color("#565f89")
	colorRed     = lipgloss.Color("#f7768e")
	colorHilite  = lipgloss.Color("#292e42")
)

// RoleColor returns the display color of a node role
func RoleColor(role graph.Role) lipgloss.Color {
	switch role {
	case graph.RoleRoot:
		return colorBlue
	case graph.RoleLeaf:
		return colorGreen
	case graph.RoleBridge:
		return colorYellow
	default:
		return colorText
	}
}

// KindLabel returns the short label shown next to an edge
func KindLabel(kind graph.EdgeKind) string {
	if kind == graph.EdgePipeline {
		return "pipeline"
	}
	return "ref"
}

// DirectionArrow returns → for outgoing and ← for incoming edges
func DirectionArrow(d graph.Direction) string {
	if d == graph.Incoming {
		return "←"
	}
	return "→"
}

func cursorPrefix(selected bool) string {
	if selected {
		return "▶ "
	}
	return "  "
}

// BrowseRow renders one node of the browse list with its degree counts
func BrowseRow(g *graph.Graph, name string, selected bool) string {
	nameStyle := lipgloss.NewStyle().Foreground(RoleColor(g.RoleOf(name))).Bold(true)
	counts := lipgloss.NewStyle().Foreground(colorMuted).
		Render(fmt.Sprintf(" (→%d ←%d)", g.OutDegree(name), g.InDegree(name)))

	row := cursorPrefix(selected) + nameStyle.Render(name) + counts
	if selected {
		return lipgloss.NewStyle().Background(colorHilite).Render(row)
	}
	return row
}

// BrowseTitle is the heading of browse mode
func BrowseTitle(g *graph.Graph) string {
	return fmt.Sprintf("Graph Explorer - Browse (%d nodes, %d edges)", g.NodeCount(), g.EdgeCount())
}

// Legend summarizes the role counts below the browse list
func Legend(g *graph.Graph) string {
	return fmt.Sprintf("Enter: focus node | Legend: roots=%d, leaves=%d, bridges=%d, clusters=%d",
		len(g.Roots), len(g.Leaves), len(g.Bridges), len(g.Clusters))
}

// Breadcrumb joins the navigation trail
func Breadcrumb(trail []string) string {
	if len(trail) == 0 {
		return "No navigation history"
	}
	return strings.Join(trail, " → ")
}

// NodeInfo describes one node: roles, degrees and cluster size
func NodeInfo(g *graph.Graph, name string) []string {
	lines := []string{fmt.Sprintf("Skill: %s", name)}

	var roles []string
	if g.IsRoot(name) {
		roles = append(roles, "Root")
	}
	if g.IsLeaf(name) {
		roles = append(roles, "Leaf")
	}
	if g.IsBridge(name) {
		roles = append(roles, "Bridge")
	}
	if len(roles) > 0 {
		lines = append(lines, fmt.Sprintf("Roles: %s", strings.Join(roles, ", ")))
	}

	lines = append(lines, fmt.Sprintf("Outgoing: %d | Incoming: %d", g.OutDegree(name), g.InDegree(name)))

	if cluster := g.ClusterOf(name); cluster != nil {
		lines = append(lines, fmt.Sprintf("Cluster: %d members", len(cluster)))
	}
	return lines
}

// EdgeRow renders one row of the focus-mode edge list
func EdgeRow(e graph.NavEdge, selected bool) string {
	arrowColor := colorCyan
	if e.Direction == graph.Incoming {
		arrowColor = colorMagenta
	}

	row := cursorPrefix(selected) +
		lipgloss.NewStyle().Foreground(arrowColor).Render(DirectionArrow(e.Direction)) +
		" " + e.Name + " " +
		lipgloss.NewStyle().Foreground(colorMuted).Render(fmt.Sprintf("(%s)", KindLabel(e.Kind)))
	if selected {
		return lipgloss.NewStyle().Background(colorHilite).Bold(true).Render(row)
	}
	return row
}

// VisibleWindow returns the [start, end) slice of a list of total rows that
// fits in height rows while keeping cursor visible
func VisibleWindow(cursor, total, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	if cursor < 0 {
		cursor = 0
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

func panel(title string, border lipgloss.Color, width int, body string) string {
	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if width > 4 {
		style = style.Width(width - 2)
	}
	heading := lipgloss.NewStyle().Foreground(border).Bold(true).Render(title)
	return style.Render(heading + "\n" + body)
}

// EmptyState is shown when there is no graph data
func EmptyState(width int) string {
	return panel("Graph Explorer", colorCyan, width, "No graph data available.\n\nPress 'r' to build the graph.")
}
