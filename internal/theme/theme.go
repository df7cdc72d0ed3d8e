package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// FileName is the theme file looked up in the config directory.
const FileName = "style.toml"

// Palette is the colour set a style file may override. Values are lipgloss
// colours: ANSI indexes ("33") or hex ("#5f87ff").
type Palette struct {
	Foreground    string `toml:"foreground"`
	Muted         string `toml:"muted"`
	Accent        string `toml:"accent"`
	Directory     string `toml:"directory"`
	Symlink       string `toml:"symlink"`
	Selection     string `toml:"selection"`
	SelectionText string `toml:"selection_text"`
	Border        string `toml:"border"`
	Error         string `toml:"error"`
	Info          string `toml:"info"`
}

// DefaultPalette returns the built-in colours.
func DefaultPalette() Palette {
	return Palette{
		Foreground:    "249",
		Muted:         "241",
		Accent:        "33",
		Directory:     "75",
		Symlink:       "80",
		Selection:     "238",
		SelectionText: "255",
		Border:        "238",
		Error:         "196",
		Info:          "249",
	}
}

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Palette Palette

	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
	TabBar       lipgloss.Style
	Pane         lipgloss.Style
	ActivePane   lipgloss.Style
	Item         lipgloss.Style
	Directory    lipgloss.Style
	Symlink      lipgloss.Style
	SelectedItem lipgloss.Style
	ParentItem   lipgloss.Style
	Empty        lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
	Info         lipgloss.Style
	Footer       lipgloss.Style
	CommandBox   lipgloss.Style
	Prompt       lipgloss.Style
	PreviewBody  lipgloss.Style
	PreviewMeta  lipgloss.Style
}

// New builds the style set for p.
func New(p Palette) *Styles {
	base := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Foreground))
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Border))
	return &Styles{
		Palette:      p,
		Tab:          lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)).Padding(0, 1),
		ActiveTab:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.SelectionText)).Background(lipgloss.Color(p.Accent)).Bold(true).Padding(0, 1),
		TabBar:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		Pane:         border,
		ActivePane:   border.BorderForeground(lipgloss.Color(p.Accent)),
		Item:         base,
		Directory:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Directory)).Bold(true),
		Symlink:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Symlink)).Italic(true),
		SelectedItem: lipgloss.NewStyle().Foreground(lipgloss.Color(p.SelectionText)).Background(lipgloss.Color(p.Selection)).Bold(true),
		ParentItem:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Foreground)).Background(lipgloss.Color(p.Selection)),
		Empty:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)).Italic(true),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Bold(true),
		Info:         lipgloss.NewStyle().Foreground(lipgloss.Color(p.Info)),
		Footer:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		CommandBox:   border.BorderForeground(lipgloss.Color(p.Accent)),
		Prompt:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		PreviewBody:  base,
		PreviewMeta:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
	}
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return New(DefaultPalette())
}

// LoadFile overlays the colours found in path on the default palette. A
// missing file yields the defaults.
func LoadFile(path string) (*Styles, error) {
	p := DefaultPalette()
	if strings.TrimSpace(path) == "" {
		return New(p), nil
	}
	var overrides Palette
	_, err := toml.DecodeFile(path, &overrides)
	if errors.Is(err, fs.ErrNotExist) {
		return New(p), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load theme %s: %w", path, err)
	}
	p.merge(overrides)
	return New(p), nil
}

func (p *Palette) merge(o Palette) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&p.Foreground, o.Foreground)
	set(&p.Muted, o.Muted)
	set(&p.Accent, o.Accent)
	set(&p.Directory, o.Directory)
	set(&p.Symlink, o.Symlink)
	set(&p.Selection, o.Selection)
	set(&p.SelectionText, o.SelectionText)
	set(&p.Border, o.Border)
	set(&p.Error, o.Error)
	set(&p.Info, o.Info)
}

// EnsureFile creates an empty theme file at path, and its directory, when
// none exists yet. It reports whether a file was created.
func EnsureFile(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat theme %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create theme directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create theme %s: %w", path, err)
	}
	return true, f.Close()
}
