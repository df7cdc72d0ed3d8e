package state

import (
	"path/filepath"

	"github.com/atomicstack/marcos/internal/dirreader"
)

// fakeFS serves listings from memory. A child is a directory when it has its
// own key in dirs or errs.
type fakeFS struct {
	dirs  map[string][]string
	errs  map[string]error
	calls map[string]int
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		dirs: map[string][]string{
			"/":                 {"home"},
			"/home":             {"u"},
			"/home/u":           {"docs", "notes.txt"},
			"/home/u/docs":      {"a.md", "b.md", "c.md"},
			"/home/u/docs/deep": {},
		},
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func (f *fakeFS) List(path string) ([]dirreader.Entry, error) {
	f.calls[path]++
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	names, ok := f.dirs[path]
	if !ok {
		return nil, &dirreader.Error{Kind: dirreader.ErrNotFound, Path: path}
	}
	entries := make([]dirreader.Entry, 0, len(names))
	for _, name := range names {
		child := filepath.Join(path, name)
		kind := dirreader.KindFile
		if _, isDir := f.dirs[child]; isDir {
			kind = dirreader.KindDirectory
		} else if _, isDir := f.errs[child]; isDir {
			kind = dirreader.KindDirectory
		}
		entries = append(entries, dirreader.NewEntry(child, kind))
	}
	return entries, nil
}

func (f *fakeFS) deny(path string) {
	f.errs[path] = &dirreader.Error{Kind: dirreader.ErrPermissionDenied, Path: path}
}
