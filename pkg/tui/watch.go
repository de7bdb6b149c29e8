package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/skillgraph/skillgraph/pkg/logger"
)

// DefaultDebounce is how long the watcher waits for changes to settle
const DefaultDebounce = 250 * time.Millisecond

const skillFileName = "SKILL.md"

// FileEvent is a filesystem change relevant to the skill graph
type FileEvent struct {
	Path string
	Op   fsnotify.Op
	Time time.Time
}

// SkillWatcher reports settled changes to skill files. Each skill source
// directory and its direct subdirectories are watched, matching the layout
// <source>/<skill>/SKILL.md.
type SkillWatcher struct {
	watcher *fsnotify.Watcher
	changes chan FileEvent
	errs    chan error
	cancel  context.CancelFunc
}

// NewSkillWatcher starts watching dirs. Directories that do not exist are
// skipped. A burst of changes within delay is reported once.
func NewSkillWatcher(ctx context.Context, dirs []string, delay time.Duration) (*SkillWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}

	for _, dir := range dirs {
		if err := addSkillDir(ctx, watcher, dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &SkillWatcher{
		watcher: watcher,
		changes: make(chan FileEvent),
		errs:    make(chan error),
		cancel:  cancel,
	}

	events := make(chan FileEvent)
	go debounceFileEvents(ctx, events, w.changes, delay)
	go w.run(ctx, events)

	return w, nil
}

// Changes delivers one event per settled burst of changes
func (w *SkillWatcher) Changes() <-chan FileEvent {
	return w.changes
}

// Errors delivers watcher errors
func (w *SkillWatcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher
func (w *SkillWatcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

func (w *SkillWatcher) run(ctx context.Context, events chan<- FileEvent) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// new skill directories need their own watch to see SKILL.md writes
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						logger.G(ctx).WithError(err).WithField("dir", event.Name).Warn("failed to watch new skill directory")
					}
				}
			}
			if !isSkillEvent(event) {
				continue
			}
			select {
			case events <- FileEvent{Path: event.Name, Op: event.Op, Time: time.Now()}:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.G(ctx).WithError(err).Error("error watching skill directories")
			select {
			case w.errs <- err:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// isSkillEvent reports whether event can change the graph: any change to a
// SKILL.md file, or a skill directory appearing or disappearing
func isSkillEvent(event fsnotify.Event) bool {
	if filepath.Base(event.Name) == skillFileName {
		return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
			event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func addSkillDir(ctx context.Context, watcher *fsnotify.Watcher, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.G(ctx).WithField("dir", dir).Debug("skill directory does not exist, not watching")
			return nil
		}
		return errors.Wrapf(err, "failed to read skill directory %s", dir)
	}

	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", dir)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := watcher.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
	}
	logger.G(ctx).WithField("dir", dir).Debug("watching skill directory")
	return nil
}

// debounceFileEvents forwards the last event of every burst once no new
// event has arrived for delay
func debounceFileEvents(ctx context.Context, input <-chan FileEvent, output chan<- FileEvent, delay time.Duration) {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending FileEvent
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-input:
			if !ok {
				return
			}
			pending = event
			if timer == nil {
				timer = time.NewTimer(delay)
			} else {
				timer.Reset(delay)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			select {
			case output <- pending:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
