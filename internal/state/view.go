package state

import "github.com/atomicstack/marcos/internal/dirreader"

// View is one directory listing plus a selection cursor. Entries are never
// edited in place; a refresh builds a new View.
type View struct {
	Path           string
	Entries        []dirreader.Entry
	Cursor         int
	ViewportOffset int
}

// LoadView lists path through r.
func LoadView(r dirreader.Lister, path string) (*View, error) {
	entries, err := r.List(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return NewView(path, entries), nil
}

// NewView wraps an existing listing with the cursor on the first entry.
func NewView(path string, entries []dirreader.Entry) *View {
	dup := make([]dirreader.Entry, len(entries))
	copy(dup, entries)
	return &View{Path: path, Entries: dup}
}

// Len returns the number of entries.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Entries)
}

// Selected returns the entry under the cursor.
func (v *View) Selected() (dirreader.Entry, bool) {
	if v.Len() == 0 || v.Cursor < 0 || v.Cursor >= len(v.Entries) {
		return dirreader.Entry{}, false
	}
	return v.Entries[v.Cursor], true
}

// IndexOf returns the position of the entry with the given path, or -1.
func (v *View) IndexOf(path string) int {
	if v == nil || path == "" {
		return -1
	}
	for i, entry := range v.Entries {
		if entry.Path == path {
			return i
		}
	}
	return -1
}

// SelectPath moves the cursor onto path when it is listed.
func (v *View) SelectPath(path string) bool {
	idx := v.IndexOf(path)
	if idx < 0 {
		return false
	}
	v.Cursor = idx
	return true
}

// Labels returns the display names in listing order.
func (v *View) Labels() []string {
	if v == nil {
		return nil
	}
	labels := make([]string, len(v.Entries))
	for i, entry := range v.Entries {
		labels[i] = entry.Name
	}
	return labels
}
