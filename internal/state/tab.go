package state

import (
	"path/filepath"

	"github.com/atomicstack/marcos/internal/dirreader"
)

// Tab is one browsing session: the directory being browsed, the directory
// that contains it, and the entry under the cursor which feeds the preview.
//
// Parent.Path is always filepath.Dir(Current.Path). Parent is nil at a
// filesystem root, or when the parent directory could not be listed, in which
// case ParentErr holds the *LoadError. Enter and GoBack are the only
// operations that change Current.Path; both either complete or leave the tab
// untouched.
type Tab struct {
	ID        string
	Parent    *View
	Current   *View
	ParentErr error

	reader dirreader.Lister
}

// Open loads a tab rooted at path. Only a failure to list path itself is an
// error; an unreadable parent leaves Parent nil and sets ParentErr.
func Open(r dirreader.Lister, id, path string) (*Tab, error) {
	path = filepath.Clean(path)
	current, err := LoadView(r, path)
	if err != nil {
		return nil, err
	}
	parent, parentErr := loadParent(r, path)
	return &Tab{ID: id, Parent: parent, Current: current, ParentErr: parentErr, reader: r}, nil
}

// loadParent lists the directory containing path with the cursor on path.
// It returns nil at a root.
func loadParent(r dirreader.Lister, path string) (*View, error) {
	dir, ok := parentOf(path)
	if !ok {
		return nil, nil
	}
	parent, err := LoadView(r, dir)
	if err != nil {
		return nil, err
	}
	parent.SelectPath(path)
	return parent, nil
}

func parentOf(path string) (string, bool) {
	dir := filepath.Dir(path)
	if dir == path {
		return "", false
	}
	return dir, true
}

// Path returns the directory being browsed.
func (t *Tab) Path() string {
	return t.Current.Path
}

// PreviewTarget returns the entry selected in the current view.
func (t *Tab) PreviewTarget() (dirreader.Entry, bool) {
	return t.Current.Selected()
}

// MoveSelection moves the cursor in the current view. No directory is read.
func (t *Tab) MoveSelection(delta int) bool {
	return t.Current.MoveSelection(delta)
}

// MoveTop selects the first entry.
func (t *Tab) MoveTop() bool {
	return t.Current.MoveCursorHome()
}

// MoveBottom selects the last entry.
func (t *Tab) MoveBottom() bool {
	return t.Current.MoveCursorEnd()
}

// PageUp moves the cursor one page of rows up.
func (t *Tab) PageUp(rows int) bool {
	return t.Current.MoveCursorPageUp(rows)
}

// PageDown moves the cursor one page of rows down.
func (t *Tab) PageDown(rows int) bool {
	return t.Current.MoveCursorPageDown(rows)
}

// Enter descends into the selected entry when it is a directory. The current
// view becomes the parent as-is; only the new directory is read. Selecting a
// non-directory makes Enter a no-op.
func (t *Tab) Enter() error {
	target, ok := t.PreviewTarget()
	if !ok || !target.IsDir() {
		return nil
	}
	next, err := LoadView(t.reader, target.Path)
	if err != nil {
		return err
	}
	t.Parent = t.Current
	t.Current = next
	t.ParentErr = nil
	return nil
}

// GoBack ascends one level. The parent view becomes current with its cursor
// still on the directory just left, and the grandparent is read to become the
// new parent. When the parent was never loaded it is read first, and that
// read failing is an error. An unreadable grandparent only leaves the new
// Parent nil. At a root GoBack does nothing.
func (t *Tab) GoBack() error {
	parent := t.Parent
	if parent == nil {
		p, err := loadParent(t.reader, t.Current.Path)
		if err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		parent = p
	}
	grandparent, grandparentErr := loadParent(t.reader, parent.Path)
	t.Current = parent
	t.Parent = grandparent
	t.ParentErr = grandparentErr
	return nil
}

// Refresh re-reads both views at their paths, keeping each cursor on the same
// entry when it still exists. Nothing is replaced unless the current
// directory and any loaded parent read successfully. A parent that was
// unreadable before is retried.
func (t *Tab) Refresh() error {
	current, err := t.reload(t.Current)
	if err != nil {
		return err
	}
	var parent *View
	var parentErr error
	if t.Parent != nil {
		if parent, err = t.reload(t.Parent); err != nil {
			return err
		}
	} else {
		parent, parentErr = loadParent(t.reader, current.Path)
	}
	t.Current = current
	t.Parent = parent
	t.ParentErr = parentErr
	return nil
}

func (t *Tab) reload(v *View) (*View, error) {
	next, err := LoadView(t.reader, v.Path)
	if err != nil {
		return nil, err
	}
	if selected, ok := v.Selected(); ok {
		next.SelectPath(selected.Path)
	}
	next.ViewportOffset = v.ViewportOffset
	return next, nil
}

// Paths lists the directories this tab displays, current first.
func (t *Tab) Paths() []string {
	paths := []string{t.Current.Path}
	if t.Parent != nil {
		paths = append(paths, t.Parent.Path)
	}
	return paths
}

// Shows reports whether dir is the current or parent directory of the tab.
func (t *Tab) Shows(dir string) bool {
	dir = filepath.Clean(dir)
	for _, p := range t.Paths() {
		if p == dir {
			return true
		}
	}
	return false
}
