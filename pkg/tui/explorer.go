// Package tui implements the interactive skill graph explorer on bubbletea.
package tui

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/skillgraph/skillgraph/pkg/logger"
)

// Options configures StartExplorer
type Options struct {
	// WatchDirs enables live refresh when non-empty
	WatchDirs []string
	// Debounce overrides DefaultDebounce
	Debounce time.Duration
}

// StartExplorer runs the explorer until the user quits
func StartExplorer(ctx context.Context, loader Loader, opts Options) error {
	if !isTTY() {
		return errors.New("the graph explorer needs an interactive terminal")
	}

	var watcher *SkillWatcher
	if len(opts.WatchDirs) > 0 {
		delay := opts.Debounce
		if delay <= 0 {
			delay = DefaultDebounce
		}
		w, err := NewSkillWatcher(ctx, opts.WatchDirs, delay)
		if err != nil {
			return err
		}
		defer w.Close()
		watcher = w
		logger.G(ctx).WithField("dirs", opts.WatchDirs).Debug("live refresh enabled")
	}

	p := tea.NewProgram(NewModel(ctx, loader, watcher), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return errors.Wrap(err, "error running graph explorer")
	}
	return nil
}

// isTTY reports whether stdin is a terminal
func isTTY() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
