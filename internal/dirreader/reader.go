// Package dirreader is the filesystem collaborator of the navigation core. It
// lists directories in a stable order and builds previews for the entry under
// the cursor. Every failure is reported as *Error so callers can tell a
// missing directory from a permission problem.
package dirreader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Lister produces the entries of a directory.
type Lister interface {
	List(path string) ([]Entry, error)
}

// Previewer describes an entry for the preview pane.
type Previewer interface {
	Preview(entry Entry, maxLines int) (Preview, error)
}

// Options tunes the OS reader.
type Options struct {
	// Ignore holds glob patterns matched against entry names; matches are
	// omitted from listings.
	Ignore []string
}

// OS reads the local filesystem.
type OS struct {
	patterns []string
	ignore   []glob.Glob
}

// New compiles the ignore patterns and returns a reader.
func New(opts Options) (*OS, error) {
	r := &OS{}
	for _, raw := range opts.Ignore {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		r.patterns = append(r.patterns, pattern)
		r.ignore = append(r.ignore, g)
	}
	return r, nil
}

// Patterns returns the ignore patterns in effect.
func (r *OS) Patterns() []string {
	return append([]string(nil), r.patterns...)
}

// List returns the entries of path ordered by name.
func (r *OS) List(path string) ([]Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, wrap(path, err)
	}
	if !info.IsDir() {
		return nil, &Error{Kind: ErrNotADirectory, Path: path}
	}
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, wrap(path, err)
	}
	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		name := de.Name()
		if r.ignored(name) {
			continue
		}
		full := filepath.Join(path, name)
		entry := Entry{Path: full, Name: name}
		mode := de.Type()
		switch {
		case mode.IsDir():
			entry.Kind = KindDirectory
		case mode.IsRegular():
			entry.Kind = KindFile
		case mode&os.ModeSymlink != 0:
			entry.Symlink = true
			entry.Kind = targetKind(full)
		default:
			entry.Kind = KindOther
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *OS) ignored(name string) bool {
	for _, g := range r.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// targetKind follows a symlink; dangling links are KindOther.
func targetKind(path string) Kind {
	info, err := os.Stat(path)
	if err != nil {
		return KindOther
	}
	switch {
	case info.IsDir():
		return KindDirectory
	case info.Mode().IsRegular():
		return KindFile
	default:
		return KindOther
	}
}
