package ui

import (
	"github.com/atomicstack/marcos/internal/dirreader"
)

// PaneKind selects how a pane is drawn.
type PaneKind int

const (
	PaneList PaneKind = iota
	PaneText
)

// PaneItem is one row of a list pane.
type PaneItem struct {
	Label   string
	Kind    dirreader.Kind
	Symlink bool
}

// Pane is the renderer's description of one column. List panes use Items,
// Highlight (-1 for none) and Offset; text panes use Meta and Lines. Err is
// set when the pane's content could not be produced.
type Pane struct {
	Kind      PaneKind
	Path      string
	Items     []PaneItem
	Highlight int
	Offset    int
	Meta      []string
	Lines     []string
	Err       string
}

// Labels returns the item labels of a list pane.
func (p Pane) Labels() []string {
	labels := make([]string, len(p.Items))
	for i, item := range p.Items {
		labels[i] = item.Label
	}
	return labels
}

// TabMarker is one entry of the tab bar.
type TabMarker struct {
	ID      string
	Focused bool
}

// CommandBox describes the command line.
type CommandBox struct {
	Visible bool
	Content string
}

// Payload is everything needed to draw one frame.
type Payload struct {
	Tabs          []TabMarker
	Parent        Pane
	Current       Pane
	Preview       Pane
	Status        string
	StatusIsError bool
	CommandBox    CommandBox
}

// Payload snapshots the model for rendering.
func (m *Model) Payload() Payload {
	p := Payload{
		Parent:  Pane{Kind: PaneList, Highlight: -1},
		Current: Pane{Kind: PaneList, Highlight: -1},
		Preview: Pane{Kind: PaneText, Highlight: -1},
	}
	for _, id := range m.tabs.IDs() {
		p.Tabs = append(p.Tabs, TabMarker{ID: id, Focused: id == m.tabs.FocusedID()})
	}
	if tab := m.tabs.Focused(); tab != nil {
		if tab.Parent != nil {
			p.Parent = listPane(tab.Parent.Path, tab.Parent.Entries, tab.Parent.Cursor, tab.Parent.ViewportOffset)
			// the current directory may be filtered out of its parent
			if tab.Parent.IndexOf(tab.Current.Path) < 0 {
				p.Parent.Highlight = -1
			}
		}
		p.Current = listPane(tab.Current.Path, tab.Current.Entries, tab.Current.Cursor, tab.Current.ViewportOffset)
		if target, ok := tab.PreviewTarget(); ok {
			p.Preview = m.previewPane(target)
		}
	}
	switch {
	case m.errMsg != "":
		p.Status = dirreader.Printable(m.errMsg)
		p.StatusIsError = true
	default:
		p.Status = dirreader.Printable(m.currentInfo())
	}
	p.CommandBox = CommandBox{Visible: m.mode == ModeCommand, Content: m.input.Value()}
	return p
}

func listPane(path string, entries []dirreader.Entry, cursor, offset int) Pane {
	pane := Pane{Kind: PaneList, Path: path, Highlight: -1, Offset: offset}
	pane.Items = make([]PaneItem, len(entries))
	for i, e := range entries {
		pane.Items[i] = PaneItem{Label: dirreader.Printable(e.Name), Kind: e.Kind, Symlink: e.Symlink}
	}
	if len(entries) > 0 {
		pane.Highlight = cursor
	}
	return pane
}
