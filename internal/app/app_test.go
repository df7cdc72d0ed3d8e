package app

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/atomicstack/marcos/internal/testutil"
)

func TestResolveStartPathShorthands(t *testing.T) {
	root := testutil.RealTempDir(t)
	work := filepath.Join(root, "work")
	if err := os.Mkdir(work, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testutil.Chdir(t, work)

	cases := map[string]string{
		"":        work,
		".":       work,
		"./":      work,
		"..":      root,
		"../":     root,
		"../work": work,
		root:      root,
	}
	for arg, want := range cases {
		got, err := ResolveStartPath(arg)
		if err != nil {
			t.Fatalf("ResolveStartPath(%q): %v", arg, err)
		}
		if got != want {
			t.Fatalf("ResolveStartPath(%q) = %q, want %q", arg, got, want)
		}
	}
}

func TestResolveStartPathExpandsHome(t *testing.T) {
	home := testutil.RealTempDir(t)
	t.Setenv("HOME", home)
	got, err := ResolveStartPath("~")
	if err != nil {
		t.Fatalf("ResolveStartPath: %v", err)
	}
	if got != home {
		t.Fatalf("expected %q, got %q", home, got)
	}
}

func TestResolveStartPathRejectsInvalid(t *testing.T) {
	root := testutil.RealTempDir(t)
	file := filepath.Join(root, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, arg := range []string{filepath.Join(root, "missing"), file} {
		_, err := ResolveStartPath(arg)
		var spErr *StartPathError
		if !errors.As(err, &spErr) {
			t.Fatalf("expected StartPathError for %q, got %v", arg, err)
		}
	}
}

func TestResolveStartPathRejectsUnreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	locked := filepath.Join(testutil.RealTempDir(t), "locked")
	if err := os.Mkdir(locked, 0o000); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })
	_, err := ResolveStartPath(locked)
	var spErr *StartPathError
	if !errors.As(err, &spErr) {
		t.Fatalf("expected StartPathError, got %v", err)
	}
}

func TestStartOpensFirstTab(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{"docs/": "", ".hidden": "x"})
	s, err := Start(Config{StartPath: root, Ignore: []string{".*"}, ThemePath: filepath.Join(root, "absent.toml")})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Shutdown()

	if s.Path() != root {
		t.Fatalf("expected path %q, got %q", root, s.Path())
	}
	if s.Tabs().Len() != 1 || s.Tabs().FocusedID() != FirstTabID {
		t.Fatalf("expected single focused tab %q, got %v", FirstTabID, s.Tabs().IDs())
	}
	tab := s.Tabs().Focused()
	if tab.Current.Len() != 1 || tab.Current.IndexOf(filepath.Join(root, "docs")) != 0 {
		t.Fatalf("expected only docs listed, got %v", tab.Current.Labels())
	}
	if s.Model() == nil {
		t.Fatalf("expected model")
	}
	payload := s.Model().Payload()
	if len(payload.Tabs) != 1 || !payload.Tabs[0].Focused {
		t.Fatalf("unexpected tab markers %#v", payload.Tabs)
	}
}

func TestStartWithWatcherShutsDownCleanly(t *testing.T) {
	root := testutil.RealTempDir(t)
	s, err := Start(Config{StartPath: root, Watch: true, WatchInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Shutdown()
	s.Shutdown()
}

func TestStartRejectsBadStartPath(t *testing.T) {
	_, err := Start(Config{StartPath: filepath.Join(t.TempDir(), "missing")})
	var spErr *StartPathError
	if !errors.As(err, &spErr) {
		t.Fatalf("expected StartPathError, got %v", err)
	}
	_, err = Start(Config{StartPath: t.TempDir(), Ignore: []string{"[bad"}})
	if err == nil || errors.As(err, &spErr) {
		t.Fatalf("expected ignore pattern error, got %v", err)
	}
}

func TestStartToleratesUnreadableParent(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	root := testutil.WriteTree(t, map[string]string{"outer/inner/file.txt": "x"})
	outer := filepath.Join(root, "outer")
	inner := filepath.Join(outer, "inner")
	if err := os.Chmod(outer, 0o311); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(outer, 0o755) })

	s, err := Start(Config{StartPath: inner})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Shutdown()

	tab := s.Tabs().Focused()
	if tab.Path() != inner || tab.Current.Len() != 1 {
		t.Fatalf("expected inner listing, got %q %v", tab.Path(), tab.Current.Labels())
	}
	if tab.Parent != nil || tab.ParentErr == nil {
		t.Fatalf("expected missing parent with a load error")
	}
	if p := s.Model().Payload(); !p.StatusIsError {
		t.Fatalf("expected the parent failure on the status line, got %q", p.Status)
	}
}
