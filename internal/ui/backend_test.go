package ui

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/atomicstack/marcos/internal/backend"
)

func TestWatcherFollowsDisplayedDirectories(t *testing.T) {
	w := newFakeWatcher()
	h := NewHarness(newTestModel(newFakeReader(), Options{Watcher: w}, "/home/u"))

	want := []string{"/home", "/home/u"}
	if got := w.last(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected initial watch set %v, got %v", want, got)
	}

	h.Press("enter")
	want = []string{"/home/u", "/home/u/docs"}
	if got := w.last(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected watch set %v after enter, got %v", want, got)
	}

	calls := len(w.watched)
	h.Press("j")
	if len(w.watched) != calls {
		t.Fatalf("cursor movement must not reset the watch set")
	}

	h.Press("t", "h")
	got := append([]string(nil), w.last()...)
	sort.Strings(got)
	want = []string{"/home", "/home/u", "/home/u/docs"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected union of tab directories %v, got %v", want, got)
	}
}

func TestBackendEventRefreshesFocusedTab(t *testing.T) {
	reader := newFakeReader()
	w := newFakeWatcher()
	m := newTestModel(reader, Options{Watcher: w}, "/home/u")
	if m.Init() == nil {
		t.Fatalf("expected Init to wait for watcher events")
	}

	reader.dirs["/home/u"] = []string{"docs", "new.txt", "notes.txt"}
	_, cmd := m.Update(backendEventMsg{event: backend.Event{Path: "/home/u"}})
	if cmd == nil {
		t.Fatalf("expected the model to keep waiting for events")
	}
	if got := m.Tabs().Focused().Current.Len(); got != 3 {
		t.Fatalf("expected refreshed listing, got %d entries", got)
	}
	if p := m.Payload(); p.StatusIsError || !strings.Contains(p.Status, "Reloaded") {
		t.Fatalf("expected reload info, got %q", p.Status)
	}
}

func TestBackendEventFailureReportsError(t *testing.T) {
	reader := newFakeReader()
	m := newTestModel(reader, Options{Watcher: newFakeWatcher()}, "/home/u")
	reader.deny("/home/u")
	m.Update(backendEventMsg{event: backend.Event{Path: "/home/u"}})
	if p := m.Payload(); !p.StatusIsError {
		t.Fatalf("expected error status after failed refresh")
	}
	if m.Tabs().Focused().Current.Len() != 2 {
		t.Fatalf("expected previous listing to remain")
	}
}

func TestBackendErrorsAndUnrelatedPathsAreQuiet(t *testing.T) {
	reader := newFakeReader()
	m := newTestModel(reader, Options{Watcher: newFakeWatcher()}, "/home/u")
	before := reader.lists["/home/u"]
	m.Update(backendEventMsg{event: backend.Event{Err: errors.New("overflow")}})
	m.Update(backendEventMsg{event: backend.Event{Path: "/tmp"}})
	if reader.lists["/home/u"] != before {
		t.Fatalf("expected no reload")
	}
	if p := m.Payload(); p.Status != "" {
		t.Fatalf("expected quiet status, got %q", p.Status)
	}
}

func TestBackendDoneStopsWatching(t *testing.T) {
	w := newFakeWatcher()
	m := newTestModel(newFakeReader(), Options{Watcher: w}, "/home/u")
	_, cmd := m.Update(backendDoneMsg{})
	if cmd != nil {
		t.Fatalf("expected no follow-up command")
	}
	if m.Init() != nil {
		t.Fatalf("expected watcher to be dropped")
	}
}
