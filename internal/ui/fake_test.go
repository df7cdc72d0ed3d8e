package ui

import (
	"path/filepath"

	"github.com/atomicstack/marcos/internal/backend"
	"github.com/atomicstack/marcos/internal/dirreader"
	"github.com/atomicstack/marcos/internal/state"
	"github.com/atomicstack/marcos/internal/theme"
)

// fakeReader serves listings and previews from memory. A child is a
// directory when it has its own key in dirs or errs.
type fakeReader struct {
	dirs  map[string][]string
	files map[string][]string
	errs  map[string]error
	lists map[string]int
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		dirs: map[string][]string{
			"/":            {"home"},
			"/home":        {"u"},
			"/home/u":      {"docs", "notes.txt"},
			"/home/u/docs": {"a.md", "b.md", "c.md"},
		},
		files: map[string][]string{
			"/home/u/notes.txt": {"first note", "second note"},
		},
		errs:  map[string]error{},
		lists: map[string]int{},
	}
}

func (f *fakeReader) List(path string) ([]dirreader.Entry, error) {
	f.lists[path]++
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

func (f *fakeReader) Preview(entry dirreader.Entry, maxLines int) (dirreader.Preview, error) {
	lines := f.files[entry.Path]
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return dirreader.Preview{Entry: entry, Meta: []string{"type  file"}, Lines: lines}, nil
}

func (f *fakeReader) deny(path string) {
	f.errs[path] = &dirreader.Error{Kind: dirreader.ErrPermissionDenied, Path: path}
}

type fakeWatcher struct {
	events  chan backend.Event
	watched [][]string
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan backend.Event, 1)}
}

func (w *fakeWatcher) Events() <-chan backend.Event {
	return w.events
}

func (w *fakeWatcher) Watch(dirs ...string) error {
	w.watched = append(w.watched, append([]string(nil), dirs...))
	return nil
}

func (w *fakeWatcher) last() []string {
	if len(w.watched) == 0 {
		return nil
	}
	return w.watched[len(w.watched)-1]
}

func newTestModel(reader *fakeReader, opts Options, path string) *Model {
	tabs := state.NewRegistry(reader)
	if err := tabs.Add("1", path); err != nil {
		panic(err)
	}
	if opts.Styles == nil {
		opts.Styles = theme.Default()
	}
	return NewModel(tabs, reader, opts)
}
