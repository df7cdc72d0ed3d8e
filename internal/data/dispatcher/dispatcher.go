package dispatcher

import (
	"path/filepath"

	"github.com/atomicstack/marcos/internal/backend"
	"github.com/atomicstack/marcos/internal/state"
)

// Result summarises how a change notification was applied.
type Result struct {
	Path      string
	Refreshed []string
	Failed    map[string]error
}

// Dispatcher applies watcher events to the tabs that display the changed
// directory.
type Dispatcher struct {
	tabs *state.Registry
}

func New(tabs *state.Registry) *Dispatcher {
	return &Dispatcher{tabs: tabs}
}

// Handle refreshes every tab showing evt.Path. Tabs whose refresh fails keep
// their previous listing and are reported in Failed.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil || evt.Path == "" || d.tabs == nil {
		return res
	}
	res.Path = filepath.Clean(evt.Path)
	for _, tab := range d.tabs.Tabs() {
		if !tab.Shows(res.Path) {
			continue
		}
		if err := tab.Refresh(); err != nil {
			if res.Failed == nil {
				res.Failed = make(map[string]error)
			}
			res.Failed[tab.ID] = err
			continue
		}
		res.Refreshed = append(res.Refreshed, tab.ID)
	}
	return res
}

// WatchSet returns the directories displayed by any tab, without duplicates.
func (d *Dispatcher) WatchSet() []string {
	if d.tabs == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var dirs []string
	for _, tab := range d.tabs.Tabs() {
		for _, p := range tab.Paths() {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			dirs = append(dirs, p)
		}
	}
	return dirs
}
