package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/marcos/internal/dirreader"
	"github.com/atomicstack/marcos/internal/userpath"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	parentFraction  = 0.2
	previewFraction = 0.4
	ellipsis        = "…"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render(m.Payload())
}

func (m *Model) dimensions() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// bodyHeight is the number of rows left for the pane columns, borders
// included.
func (m *Model) bodyHeight(height int) int {
	used := 2 // tab bar + status line
	if m.mode == ModeCommand {
		used += 3
	}
	if m.showFooter {
		used++
	}
	if rest := height - used; rest > 2 {
		return rest
	}
	return 3
}

// listRows returns how many entries fit in a list pane. Before the first
// WindowSizeMsg it assumes the default height render draws with.
func (m *Model) listRows() int {
	_, height := m.dimensions()
	return m.bodyHeight(height) - 2
}

func (m *Model) render(p Payload) string {
	width, height := m.dimensions()
	body := m.bodyHeight(height)
	inner := body - 2

	parentW := int(float64(width) * parentFraction)
	previewW := int(float64(width) * previewFraction)
	currentW := width - parentW - previewW

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPane(p.Parent, parentW, inner, m.styles.Pane, m.styles.ParentItem),
		m.renderPane(p.Current, currentW, inner, m.styles.ActivePane, m.styles.SelectedItem),
		m.renderPane(p.Preview, previewW, inner, m.styles.Pane, m.styles.Item),
	)

	sections := []string{m.renderTabBar(p, width), columns, m.renderStatus(p, width)}
	if p.CommandBox.Visible {
		box := m.styles.CommandBox.Width(innerWidth(width)).Render(truncate(m.input.View(), innerWidth(width)))
		sections = append(sections, box)
	}
	if m.showFooter {
		bindings := m.router.keys.ShortHelp()
		if m.mode == ModeCommand {
			bindings = m.router.keys.commandHelp()
		}
		sections = append(sections, truncate(m.help.ShortHelpView(bindings), width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTabBar(p Payload, width int) string {
	parts := make([]string, 0, len(p.Tabs)+1)
	for _, tab := range p.Tabs {
		style := m.styles.Tab
		if tab.Focused {
			style = m.styles.ActiveTab
		}
		parts = append(parts, style.Render(tab.ID))
	}
	bar := strings.Join(parts, "")
	if p.Current.Path != "" {
		remaining := width - lipgloss.Width(bar) - 1
		if remaining > 0 {
			bar += " " + m.styles.TabBar.Render(truncate(dirreader.Printable(userpath.ShortenUser(p.Current.Path)), remaining))
		}
	}
	return truncate(bar, width)
}

func (m *Model) renderPane(p Pane, width, height int, frame, highlight lipgloss.Style) string {
	w := innerWidth(width)
	var rows []string
	switch {
	case p.Err != "":
		rows = []string{m.styles.Error.Render(truncate(p.Err, w))}
	case p.Kind == PaneText:
		rows = m.textRows(p, w, height)
	default:
		rows = m.listPaneRows(p, w, height, highlight)
	}
	return frame.Width(w).Height(height).Render(strings.Join(rows, "\n"))
}

func (m *Model) listPaneRows(p Pane, width, height int, highlight lipgloss.Style) []string {
	if len(p.Items) == 0 {
		if p.Path == "" {
			return nil
		}
		return []string{m.styles.Empty.Render(truncate("(empty)", width))}
	}
	start := p.Offset
	if start < 0 || start >= len(p.Items) {
		start = 0
	}
	end := start + height
	if end > len(p.Items) {
		end = len(p.Items)
	}
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := p.Items[i]
		style := m.itemStyle(item)
		if i == p.Highlight {
			style = highlight
		}
		rows = append(rows, style.Width(width).Render(truncate(item.Label, width)))
	}
	return rows
}

func (m *Model) itemStyle(item PaneItem) lipgloss.Style {
	switch {
	case item.Symlink:
		return m.styles.Symlink
	case item.Kind == dirreader.KindDirectory:
		return m.styles.Directory
	default:
		return m.styles.Item
	}
}

func (m *Model) textRows(p Pane, width, height int) []string {
	rows := make([]string, 0, height)
	for _, line := range p.Meta {
		rows = append(rows, m.styles.PreviewMeta.Render(truncate(line, width)))
	}
	if len(p.Meta) > 0 && len(p.Lines) > 0 {
		rows = append(rows, "")
	}
	for _, line := range p.Lines {
		rows = append(rows, m.styles.PreviewBody.Render(truncate(line, width)))
	}
	if height > 0 && len(rows) > height {
		rows = rows[:height]
	}
	return rows
}

func (m *Model) renderStatus(p Payload, width int) string {
	position := ""
	if n := len(p.Current.Items); n > 0 && p.Current.Highlight >= 0 {
		position = fmt.Sprintf("%d/%d", p.Current.Highlight+1, n)
	}
	room := width - lipgloss.Width(position) - 1
	if room < 0 {
		room = 0
	}
	style := m.styles.Info
	if p.StatusIsError {
		style = m.styles.Error
	}
	left := style.Render(truncate(p.Status, room))
	gap := width - lipgloss.Width(left) - lipgloss.Width(position)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + m.styles.Status.Render(position)
}

func innerWidth(width int) int {
	if width > 3 {
		return width - 2
	}
	return 1
}

func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, ellipsis)
}
