package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skillgraph/skillgraph/pkg/skills"
)

// Loader reloads the skill catalog from its sources
type Loader interface {
	Load(ctx context.Context) (*skills.Catalog, error)
}

// LoaderFunc adapts a plain function to Loader
type LoaderFunc func(ctx context.Context) (*skills.Catalog, error)

// Load calls f(ctx)
func (f LoaderFunc) Load(ctx context.Context) (*skills.Catalog, error) {
	return f(ctx)
}

// catalogLoadedMsg carries the result of a reload. A catalog may come with a
// non-nil err when some skills failed to load.
type catalogLoadedMsg struct {
	catalog *skills.Catalog
	err     error
}

// skillsChangedMsg is sent when the watcher sees a settled change on disk
type skillsChangedMsg struct {
	event FileEvent
}

type watchErrMsg struct {
	err error
}

type clearStatusMsg struct{}

func loadCatalogCmd(ctx context.Context, loader Loader) tea.Cmd {
	return func() tea.Msg {
		catalog, err := loader.Load(ctx)
		return catalogLoadedMsg{catalog: catalog, err: err}
	}
}

func waitForChangeCmd(w *SkillWatcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case event, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return skillsChangedMsg{event: event}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

func clearStatusCmd(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
