// Package ui contains the Bubble Tea program that drives the browser.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry.
//   - Key presses are classified by the Router (internal/ui/router.go) into a
//     closed set of commands, taking the current Mode into account. apply
//     (internal/ui/navigation.go) runs each command against the focused
//     state.Tab or the session.
//   - After every message the viewport and the watched directory set are
//     brought back in line with the focused tab.
//
// Rendering:
//   - Payload snapshots the tabs, the three panes and the status/command line.
//     View draws that payload with lipgloss; nothing else reads model state
//     while rendering.
//   - Previews of the selected entry are produced lazily and cached per path
//     until the next refresh.
//
// Backend interactions:
//   - When a watcher is configured, Update waits for its events and hands them
//     to the dispatcher, which refreshes every tab showing the changed
//     directory. Refreshes run on the event loop like any other command.
package ui
