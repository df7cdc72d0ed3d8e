package ui

import (
	"github.com/atomicstack/marcos/internal/dirreader"
)

const maxCachedPreviews = 64

// previewPane lists a directory target or describes a file target. Results
// are cached by path until the next refresh.
func (m *Model) previewPane(target dirreader.Entry) Pane {
	if pane, ok := m.previews[target.Path]; ok {
		return pane
	}
	var pane Pane
	if target.IsDir() {
		pane = m.directoryPreview(target)
	} else {
		pane = m.filePreview(target)
	}
	if len(m.previews) >= maxCachedPreviews {
		m.invalidatePreviews()
	}
	m.previews[target.Path] = pane
	return pane
}

func (m *Model) directoryPreview(target dirreader.Entry) Pane {
	entries, err := m.reader.List(target.Path)
	if err != nil {
		return Pane{Kind: PaneText, Path: target.Path, Highlight: -1, Err: dirreader.KindOf(err).String()}
	}
	pane := listPane(target.Path, entries, 0, 0)
	pane.Highlight = -1
	return pane
}

func (m *Model) filePreview(target dirreader.Entry) Pane {
	pane := Pane{Kind: PaneText, Path: target.Path, Highlight: -1}
	preview, err := m.reader.Preview(target, m.previewLines)
	if err != nil {
		pane.Err = dirreader.KindOf(err).String()
		return pane
	}
	pane.Meta = preview.Meta
	switch {
	case preview.Binary:
		pane.Lines = []string{"binary file"}
	default:
		pane.Lines = preview.Lines
	}
	return pane
}

func (m *Model) invalidatePreviews() {
	m.previews = make(map[string]Pane)
}
