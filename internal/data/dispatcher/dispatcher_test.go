package dispatcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/marcos/internal/backend"
	"github.com/atomicstack/marcos/internal/dirreader"
	"github.com/atomicstack/marcos/internal/state"
	"github.com/atomicstack/marcos/internal/testutil"
)

func setup(t *testing.T) (string, *state.Registry) {
	t.Helper()
	root := testutil.WriteTree(t, map[string]string{"sub/": ""})
	reader, err := dirreader.New(dirreader.Options{})
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	reg := state.NewRegistry(reader)
	if err := reg.Add("1", root); err != nil {
		t.Fatalf("add 1: %v", err)
	}
	if err := reg.Add("2", filepath.Join(root, "sub")); err != nil {
		t.Fatalf("add 2: %v", err)
	}
	return root, reg
}

func TestHandleRefreshesTabsShowingPath(t *testing.T) {
	root, reg := setup(t)
	d := New(reg)

	if err := os.WriteFile(filepath.Join(root, "new.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res := d.Handle(backend.Event{Path: root})
	if len(res.Refreshed) != 2 {
		t.Fatalf("expected both tabs refreshed, got %#v", res.Refreshed)
	}
	tab, _ := reg.Get("1")
	if tab.Current.IndexOf(filepath.Join(root, "new.txt")) < 0 {
		t.Fatalf("expected new.txt in refreshed listing")
	}
}

func TestHandleIgnoresErrorsAndUnrelatedPaths(t *testing.T) {
	_, reg := setup(t)
	d := New(reg)
	if res := d.Handle(backend.Event{Err: errors.New("overflow")}); len(res.Refreshed) != 0 {
		t.Fatalf("expected no refresh for error events")
	}
	if res := d.Handle(backend.Event{Path: t.TempDir()}); len(res.Refreshed) != 0 {
		t.Fatalf("expected no refresh for unrelated path, got %#v", res.Refreshed)
	}
}

func TestHandleReportsFailedRefresh(t *testing.T) {
	root, reg := setup(t)
	d := New(reg)
	sub := filepath.Join(root, "sub")
	if err := os.Remove(sub); err != nil {
		t.Fatalf("remove: %v", err)
	}
	res := d.Handle(backend.Event{Path: sub})
	if _, ok := res.Failed["2"]; !ok {
		t.Fatalf("expected tab 2 refresh failure, got %#v", res)
	}
	tab, _ := reg.Get("2")
	if tab.Current.Path != sub {
		t.Fatalf("expected tab 2 to keep its path")
	}
}

func TestWatchSetDeduplicates(t *testing.T) {
	root, reg := setup(t)
	d := New(reg)
	set := d.WatchSet()
	want := map[string]bool{root: true, filepath.Join(root, "sub"): true, filepath.Dir(root): true}
	if len(set) != len(want) {
		t.Fatalf("expected %d dirs, got %#v", len(want), set)
	}
	for _, dir := range set {
		if !want[dir] {
			t.Fatalf("unexpected dir %q", dir)
		}
	}
}
