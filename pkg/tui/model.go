package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/skillgraph/skillgraph/pkg/graph"
	"github.com/skillgraph/skillgraph/pkg/logger"
	"github.com/skillgraph/skillgraph/pkg/skills"
)

const statusTimeout = 4 * time.Second

// Model is the bubbletea model of the graph explorer. All navigation state
// lives in the embedded graph.Navigator; the model only adds loading, layout
// and status concerns.
type Model struct {
	ctx     context.Context
	loader  Loader
	watcher *SkillWatcher

	nav     *graph.Navigator
	catalog *skills.Catalog

	keys keyMap
	help help.Model

	ready         bool
	loading       bool
	width         int
	height        int
	statusMessage string
	statusIsError bool
}

// NewModel creates an explorer model. watcher may be nil.
func NewModel(ctx context.Context, loader Loader, watcher *SkillWatcher) Model {
	return Model{
		ctx:           ctx,
		loader:        loader,
		watcher:       watcher,
		nav:           graph.NewNavigator(nil),
		keys:          defaultKeyMap(),
		help:          help.New(),
		loading:       true,
		statusMessage: "Loading skills...",
	}
}

// Navigator exposes the navigation state
func (m Model) Navigator() *graph.Navigator {
	return m.nav
}

// Catalog returns the last loaded catalog, or nil
func (m Model) Catalog() *skills.Catalog {
	return m.catalog
}

// Init loads the catalog and starts listening for changes
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadCatalogCmd(m.ctx, m.loader)}
	if m.watcher != nil {
		cmds = append(cmds, waitForChangeCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles the message updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case catalogLoadedMsg:
		return m.applyCatalog(msg)

	case skillsChangedMsg:
		logger.G(m.ctx).WithField("file", msg.event.Path).Debug("skill change detected")
		m.setStatus(fmt.Sprintf("Change detected: %s", msg.event.Path), false)
		m.loading = true
		return m, tea.Batch(loadCatalogCmd(m.ctx, m.loader), waitForChangeCmd(m.watcher))

	case watchErrMsg:
		m.setStatus(fmt.Sprintf("Watch error: %v", msg.err), true)
		return m, waitForChangeCmd(m.watcher)

	case clearStatusMsg:
		if !m.loading {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) applyCatalog(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	if msg.catalog == nil {
		err := msg.err
		if err == nil {
			err = errors.New("no skills loaded")
		}
		m.setStatus(fmt.Sprintf("Failed to load skills: %v", err), true)
		return m, nil
	}

	m.catalog = msg.catalog
	m.nav.Refresh(msg.catalog.CrossRefs, msg.catalog.Skills)

	g := m.nav.Graph()
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Loaded %d skills with errors: %v", g.NodeCount(), msg.err), true)
	} else {
		m.setStatus(fmt.Sprintf("Loaded %d skills, %d edges", g.NodeCount(), g.EdgeCount()), false)
	}
	return m, clearStatusCmd(statusTimeout)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.setStatus("Refreshing...", false)
		return m, loadCatalogCmd(m.ctx, m.loader)

	case key.Matches(msg, m.keys.Up):
		m.nav.Previous()

	case key.Matches(msg, m.keys.Down):
		m.nav.Next()

	case key.Matches(msg, m.keys.Enter):
		if m.nav.Mode() == graph.ModeBrowse {
			m.nav.ToggleMode()
		} else {
			m.nav.FollowEdge()
		}

	case key.Matches(msg, m.keys.Esc):
		if m.nav.Mode() == graph.ModeFocus {
			m.nav.ToggleMode()
		}

	case key.Matches(msg, m.keys.Back):
		m.nav.NavigateBack()
	}

	return m, nil
}

func (m *Model) setStatus(message string, isError bool) {
	m.statusMessage = message
	m.statusIsError = isError
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	g := m.nav.Graph()
	switch {
	case g == nil || g.NodeCount() == 0:
		body = EmptyState(m.width)
	case m.nav.Mode() == graph.ModeFocus:
		body = m.focusView(g)
	default:
		body = m.browseView(g)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusView(), m.help.View(m.keys))
}

// chromeHeight is the rows used by borders, titles, status and help
func (m Model) chromeHeight() int {
	helpHeight := 1
	if m.help.ShowAll {
		helpHeight = 3
	}
	return 5 + helpHeight
}

func (m Model) browseView(g *graph.Graph) string {
	names := g.NodeNames()
	cursor, hasCursor := m.nav.Selected()
	if !hasCursor {
		cursor = -1
	}

	start, end := VisibleWindow(cursor, len(names), m.height-m.chromeHeight()-1)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, BrowseRow(g, names[i], i == cursor))
	}

	legend := lipgloss.NewStyle().Foreground(colorMuted).Render(Legend(g))
	return panel(BrowseTitle(g), colorCyan, m.width, strings.Join(rows, "\n")+"\n"+legend)
}

func (m Model) focusView(g *graph.Graph) string {
	trail := panel("Navigation Trail (Backspace: back, Esc: return to browse)", colorYellow, m.width,
		Breadcrumb(m.nav.Trail()))

	current, ok := m.nav.FocusedSkill()
	if !ok {
		return trail
	}
	info := panel("Node Info", colorGreen, m.width, strings.Join(NodeInfo(g, current), "\n"))

	edges := m.nav.EdgeList()
	var edgeBody string
	if len(edges) == 0 {
		edgeBody = "No edges from this node.\n\nPress Esc to return."
	} else {
		used := lipgloss.Height(trail) + lipgloss.Height(info)
		start, end := VisibleWindow(m.nav.EdgeCursor(), len(edges), m.height-used-m.chromeHeight())
		rows := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			rows = append(rows, EdgeRow(edges[i], i == m.nav.EdgeCursor()))
		}
		edgeBody = strings.Join(rows, "\n")
	}
	edgeList := panel(fmt.Sprintf("Edges (%d) - Enter: follow edge", len(edges)), colorCyan, m.width, edgeBody)

	return lipgloss.JoinVertical(lipgloss.Left, trail, info, edgeList)
}

func (m Model) statusView() string {
	fg := colorBlue
	if m.statusIsError {
		fg = colorRed
	}
	text := m.nav.Mode().String()
	if m.statusMessage != "" {
		text += " │ " + m.statusMessage
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Background(colorHilite).
		Padding(0, 1).
		Bold(true).
		Render(text)
}
