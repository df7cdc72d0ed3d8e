package ui

import (
	"strings"

	"github.com/atomicstack/marcos/internal/logging"
	"github.com/atomicstack/marcos/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// toggleCommandMode opens the command box from normal mode, or closes it from
// command mode. Closing with the submit key records the text; commands have
// no effect yet.
func (m *Model) toggleCommandMode(msg tea.KeyMsg) tea.Cmd {
	from := m.mode
	if m.mode == ModeNormal {
		m.mode = ModeCommand
		m.input.Reset()
		m.clearStatus()
		events.Mode.Switch(from.String(), m.mode.String())
		return m.input.Focus()
	}

	if key.Matches(msg, m.router.keys.Submit) {
		text := strings.TrimSpace(m.input.Value())
		if text != "" {
			events.Mode.Submit(text)
			logging.Infof("command ignored: %q", text)
		}
	}
	m.input.Reset()
	m.input.Blur()
	m.mode = ModeNormal
	events.Mode.Switch(from.String(), m.mode.String())
	return nil
}

// handleTextInput feeds a key press to the command box.
func (m *Model) handleTextInput(msg tea.KeyMsg) tea.Cmd {
	if m.mode != ModeCommand {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// CommandText returns the command box contents.
func (m *Model) CommandText() string {
	return m.input.Value()
}
