package state

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/marcos/internal/dirreader"
)

// Registry owns the open tabs in display order and tracks focus. While it
// holds any tab, the focused id names one of them.
type Registry struct {
	reader  dirreader.Lister
	tabs    map[string]*Tab
	order   []string
	focused string
}

// NewRegistry returns an empty registry whose tabs read through r.
func NewRegistry(r dirreader.Lister) *Registry {
	return &Registry{reader: r, tabs: make(map[string]*Tab)}
}

// Add opens a tab at path. The first tab added receives focus.
func (r *Registry) Add(id, path string) error {
	if _, ok := r.tabs[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTab, id)
	}
	tab, err := Open(r.reader, id, path)
	if err != nil {
		return err
	}
	r.tabs[id] = tab
	r.order = append(r.order, id)
	if r.focused == "" {
		r.focused = id
	}
	return nil
}

// Remove closes a tab. The last tab cannot be removed; the caller decides
// whether that ends the session. Closing the focused tab moves focus to the
// tab that took its place in the order, or the new last tab.
func (r *Registry) Remove(id string) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTabNotFound, id)
	}
	if len(r.order) == 1 {
		return ErrLastTab
	}
	delete(r.tabs, id)
	r.order = append(r.order[:idx], r.order[idx+1:]...)
	if r.focused == id {
		if idx >= len(r.order) {
			idx = len(r.order) - 1
		}
		r.focused = r.order[idx]
	}
	return nil
}

// Focus moves focus to id.
func (r *Registry) Focus(id string) error {
	if _, ok := r.tabs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrTabNotFound, id)
	}
	r.focused = id
	return nil
}

// Focused returns the focused tab, or nil when the registry is empty.
func (r *Registry) Focused() *Tab {
	return r.tabs[r.focused]
}

// FocusedID returns the id of the focused tab.
func (r *Registry) FocusedID() string {
	return r.focused
}

// Get looks up a tab by id.
func (r *Registry) Get(id string) (*Tab, bool) {
	tab, ok := r.tabs[id]
	return tab, ok
}

// Len returns the number of open tabs.
func (r *Registry) Len() int {
	return len(r.order)
}

// IDs returns tab ids in display order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Tabs returns the tabs in display order.
func (r *Registry) Tabs() []*Tab {
	tabs := make([]*Tab, 0, len(r.order))
	for _, id := range r.order {
		tabs = append(tabs, r.tabs[id])
	}
	return tabs
}

// Cycle focuses the tab step positions away from the focused one, wrapping
// around the display order, and returns its id.
func (r *Registry) Cycle(step int) string {
	n := len(r.order)
	if n == 0 {
		return ""
	}
	idx := r.indexOf(r.focused)
	if idx < 0 {
		idx = 0
	}
	idx = ((idx+step)%n + n) % n
	r.focused = r.order[idx]
	return r.focused
}

// NextID returns the smallest positive number not used as a tab id.
func (r *Registry) NextID() string {
	for n := 1; ; n++ {
		id := strconv.Itoa(n)
		if _, ok := r.tabs[id]; !ok {
			return id
		}
	}
}

func (r *Registry) indexOf(id string) int {
	for i, existing := range r.order {
		if existing == id {
			return i
		}
	}
	return -1
}
