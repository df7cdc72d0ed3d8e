package dirreader

import "path/filepath"

// Kind classifies a filesystem entry.
type Kind int

const (
	KindOther Kind = iota
	KindFile
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "other"
	}
}

// Entry is one filesystem object as observed when its directory was listed.
type Entry struct {
	Path    string
	Name    string
	Kind    Kind
	Symlink bool
}

// NewEntry builds an entry for path, deriving its display name.
func NewEntry(path string, kind Kind) Entry {
	return Entry{Path: path, Name: nameOf(path), Kind: kind}
}

// IsDir reports whether the entry can be entered.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// nameOf returns the final path element; roots have none.
func nameOf(path string) string {
	if path == "" {
		return ""
	}
	clean := filepath.Clean(path)
	if clean == filepath.Dir(clean) {
		return ""
	}
	base := filepath.Base(clean)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return ""
	}
	return base
}
