package ui

import (
	"slices"
	"sort"

	"github.com/atomicstack/marcos/internal/backend"
	"github.com/atomicstack/marcos/internal/logging/events"
	"github.com/atomicstack/marcos/internal/userpath"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.watcher != nil {
		return waitForBackendEvent(m.watcher)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	m.watched = nil
	return nil
}

// applyBackendEvent refreshes the tabs showing the changed directory. A tab
// whose directory vanished keeps its last listing and the failure is shown on
// the status line.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		events.Watch.Error(evt.Err)
		return
	}
	res := m.dispatcher.Handle(evt)
	if len(res.Refreshed) == 0 && len(res.Failed) == 0 {
		return
	}
	m.invalidatePreviews()
	events.Watch.Change(res.Path, res.Refreshed)
	if err, ok := res.Failed[m.tabs.FocusedID()]; ok {
		m.setError(describeError(err))
		return
	}
	if slices.Contains(res.Refreshed, m.tabs.FocusedID()) && m.errMsg == "" {
		if !m.reportParent(m.tabs.Focused()) {
			m.setInfo("Reloaded " + userpath.ShortenUser(res.Path))
		}
	}
}

// syncWatch points the watcher at the directories the open tabs display.
func (m *Model) syncWatch() {
	if m.watcher == nil {
		return
	}
	dirs := m.dispatcher.WatchSet()
	sort.Strings(dirs)
	if slices.Equal(dirs, m.watched) {
		return
	}
	if err := m.watcher.Watch(dirs...); err != nil {
		events.Watch.Error(err)
	}
	m.watched = dirs
}
