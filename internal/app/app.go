package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/marcos/internal/backend"
	"github.com/atomicstack/marcos/internal/dirreader"
	"github.com/atomicstack/marcos/internal/logging"
	"github.com/atomicstack/marcos/internal/logging/events"
	"github.com/atomicstack/marcos/internal/state"
	"github.com/atomicstack/marcos/internal/theme"
	"github.com/atomicstack/marcos/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// FirstTabID names the tab opened at startup.
const FirstTabID = "1"

const defaultWatchInterval = 300 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	StartPath     string
	Watch         bool
	WatchInterval time.Duration
	Ignore        []string
	ThemePath     string
	ShowFooter    bool
	PreviewLines  int
}

// Session owns everything one run of the browser needs: the directory
// reader, the tab registry, the optional change watcher and the Bubble Tea
// program driving the UI model.
type Session struct {
	cfg     Config
	path    string
	reader  *dirreader.OS
	tabs    *state.Registry
	watcher *backend.Watcher
	model   *ui.Model
	program *tea.Program

	stopOnce sync.Once
}

// Start resolves the start path and builds the session without entering the
// event loop. An unusable start path is reported as *StartPathError. Extra
// program options are appended after the defaults.
func Start(cfg Config, opts ...tea.ProgramOption) (*Session, error) {
	path, err := ResolveStartPath(cfg.StartPath)
	if err != nil {
		return nil, err
	}
	reader, err := dirreader.New(dirreader.Options{Ignore: cfg.Ignore})
	if err != nil {
		return nil, fmt.Errorf("ignore patterns: %w", err)
	}
	styles, err := theme.LoadFile(cfg.ThemePath)
	if err != nil {
		logging.Warnf("falling back to default theme: %v", err)
		styles = theme.Default()
	}

	if patterns := reader.Patterns(); len(patterns) > 0 {
		logging.Debugf("ignoring entries matching %v", patterns)
	}

	tabs := state.NewRegistry(reader)
	if err := tabs.Add(FirstTabID, path); err != nil {
		return nil, &StartPathError{Path: path, Err: err}
	}
	events.Tab.Open(FirstTabID, path)
	if err := tabs.Focused().ParentErr; err != nil {
		logging.Warnf("parent of %s is not readable: %v", path, err)
	}

	s := &Session{cfg: cfg, path: path, reader: reader, tabs: tabs}

	uiOpts := ui.Options{
		Styles:       styles,
		ShowFooter:   cfg.ShowFooter,
		PreviewLines: cfg.PreviewLines,
	}
	if cfg.Watch {
		interval := cfg.WatchInterval
		if interval <= 0 {
			interval = defaultWatchInterval
		}
		watcher, err := backend.NewWatcher(interval)
		if err != nil {
			logging.Warnf("change watcher unavailable: %v", err)
		} else {
			s.watcher = watcher
			uiOpts.Watcher = watcher
		}
	}

	s.model = ui.NewModel(tabs, reader, uiOpts)
	programOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	s.program = tea.NewProgram(s.model, programOpts...)
	logging.Infof("session started at %s", path)
	return s, nil
}

// Path returns the resolved start directory.
func (s *Session) Path() string {
	return s.path
}

// Tabs exposes the tab registry.
func (s *Session) Tabs() *state.Registry {
	return s.tabs
}

// Model exposes the UI model.
func (s *Session) Model() *ui.Model {
	return s.model
}

// Run enters the event loop and blocks until the user quits.
func (s *Session) Run() error {
	_, err := s.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	if err != nil {
		events.App.Stop("error")
		return err
	}
	events.App.Stop("quit")
	return nil
}

// Shutdown releases the watcher. It is safe to call more than once.
func (s *Session) Shutdown() {
	s.stopOnce.Do(func() {
		if s.watcher != nil {
			s.watcher.Stop()
			s.watcher.Wait()
		}
	})
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	s, err := Start(cfg)
	if err != nil {
		return err
	}
	defer s.Shutdown()
	return s.Run()
}
