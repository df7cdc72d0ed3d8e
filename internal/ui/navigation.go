package ui

import (
	"errors"
	"fmt"

	"github.com/atomicstack/marcos/internal/dirreader"
	"github.com/atomicstack/marcos/internal/logging"
	"github.com/atomicstack/marcos/internal/logging/events"
	"github.com/atomicstack/marcos/internal/state"
	"github.com/atomicstack/marcos/internal/userpath"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	return m.apply(m.router.Classify(keyMsg, m.mode))
}

// apply runs one command to completion against the focused tab or the
// session itself.
func (m *Model) apply(cmd Command) tea.Cmd {
	tab := m.tabs.Focused()
	if tab == nil {
		return nil
	}
	switch cmd.Kind {
	case CommandMoveUp:
		m.moveCursor(tab, func() bool { return tab.MoveSelection(-1) })
	case CommandMoveDown:
		m.moveCursor(tab, func() bool { return tab.MoveSelection(1) })
	case CommandMoveTop:
		m.moveCursor(tab, tab.MoveTop)
	case CommandMoveBottom:
		m.moveCursor(tab, tab.MoveBottom)
	case CommandPageUp:
		m.moveCursor(tab, func() bool { return tab.PageUp(m.listRows()) })
	case CommandPageDown:
		m.moveCursor(tab, func() bool { return tab.PageDown(m.listRows()) })
	case CommandEnter:
		m.enter(tab)
	case CommandBack:
		m.back(tab)
	case CommandRefresh:
		m.refresh(tab)
	case CommandSwitchTab:
		m.switchTab(cmd.TabID)
	case CommandNextTab:
		m.cycleTab(1)
	case CommandPrevTab:
		m.cycleTab(-1)
	case CommandNewTab:
		m.newTab(tab)
	case CommandCloseTab:
		return m.closeTab(tab)
	case CommandToggleCommandMode:
		return m.toggleCommandMode(cmd.Key)
	case CommandTextInput:
		return m.handleTextInput(cmd.Key)
	case CommandQuit:
		return m.quit("quit")
	}
	return nil
}

func (m *Model) moveCursor(tab *state.Tab, move func() bool) {
	if !move() {
		return
	}
	m.clearStatus()
	events.Nav.Cursor(tab.ID, tab.Path(), tab.Current.Cursor)
}

func (m *Model) enter(tab *state.Tab) {
	from := tab.Path()
	if err := tab.Enter(); err != nil {
		m.fail(tab, "enter", err)
		return
	}
	if tab.Path() == from {
		return
	}
	m.clearStatus()
	events.Nav.Enter(tab.ID, from, tab.Path())
}

func (m *Model) back(tab *state.Tab) {
	from := tab.Path()
	if err := tab.GoBack(); err != nil {
		m.fail(tab, "back", err)
		return
	}
	if tab.Path() == from {
		return
	}
	m.clearStatus()
	m.reportParent(tab)
	events.Nav.Back(tab.ID, from, tab.Path())
}

func (m *Model) refresh(tab *state.Tab) {
	if err := tab.Refresh(); err != nil {
		m.fail(tab, "refresh", err)
		return
	}
	m.invalidatePreviews()
	if !m.reportParent(tab) {
		m.setInfo("Refreshed " + userpath.ShortenUser(tab.Path()))
	}
	events.Nav.Refresh(tab.ID, tab.Path())
}

func (m *Model) switchTab(id string) {
	if err := m.tabs.Focus(id); err != nil {
		m.setError(fmt.Sprintf("No tab %s", id))
		return
	}
	m.clearStatus()
	events.Tab.Focus(id)
}

func (m *Model) cycleTab(step int) {
	if m.tabs.Len() < 2 {
		return
	}
	id := m.tabs.Cycle(step)
	m.clearStatus()
	events.Tab.Focus(id)
}

func (m *Model) newTab(from *state.Tab) {
	id := m.tabs.NextID()
	if err := m.tabs.Add(id, from.Path()); err != nil {
		m.fail(from, "new-tab", err)
		return
	}
	if err := m.tabs.Focus(id); err != nil {
		m.fail(from, "new-tab", err)
		return
	}
	m.setInfo("Opened tab " + id)
	m.reportParent(m.tabs.Focused())
	events.Tab.Open(id, from.Path())
}

// closeTab removes the focused tab; closing the last one ends the session.
func (m *Model) closeTab(tab *state.Tab) tea.Cmd {
	err := m.tabs.Remove(tab.ID)
	if errors.Is(err, state.ErrLastTab) {
		events.Tab.Close(tab.ID)
		return m.quit("last tab closed")
	}
	if err != nil {
		m.fail(tab, "close-tab", err)
		return nil
	}
	m.setInfo("Closed tab " + tab.ID)
	events.Tab.Close(tab.ID)
	events.Tab.Focus(m.tabs.FocusedID())
	return nil
}

func (m *Model) quit(reason string) tea.Cmd {
	m.quitting = true
	logging.Debugf("quit requested: %s", reason)
	return tea.Quit
}

// fail reports err on the status line. The tab has already rolled back.
func (m *Model) fail(tab *state.Tab, op string, err error) {
	m.setError(describeError(err))
	events.Nav.Failed(tab.ID, op, err)
	logging.Error(err)
}

// reportParent shows why tab has no parent pane, if its parent directory
// could not be listed.
func (m *Model) reportParent(tab *state.Tab) bool {
	if tab == nil || tab.ParentErr == nil {
		return false
	}
	m.setError(describeError(tab.ParentErr))
	events.Nav.Failed(tab.ID, "parent", tab.ParentErr)
	return true
}

func describeError(err error) string {
	var loadErr *state.LoadError
	if errors.As(err, &loadErr) {
		return fmt.Sprintf("Cannot open %s: %s", userpath.ShortenUser(loadErr.Path), dirreader.KindOf(loadErr.Err))
	}
	return err.Error()
}

// syncViewport keeps the cursor of every visible list inside its window.
func (m *Model) syncViewport() {
	tab := m.tabs.Focused()
	if tab == nil {
		return
	}
	rows := m.listRows()
	tab.Current.EnsureCursorVisible(rows)
	if tab.Parent != nil {
		tab.Parent.EnsureCursorVisible(rows)
	}
}
