package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode selects how key presses are interpreted.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCommand
)

func (m Mode) String() string {
	if m == ModeCommand {
		return "command"
	}
	return "normal"
}

// CommandKind enumerates the commands a key press can produce.
type CommandKind int

const (
	CommandUnhandled CommandKind = iota
	CommandMoveUp
	CommandMoveDown
	CommandEnter
	CommandBack
	CommandToggleCommandMode
	CommandQuit
	CommandSwitchTab
	CommandMoveTop
	CommandMoveBottom
	CommandPageUp
	CommandPageDown
	CommandNextTab
	CommandPrevTab
	CommandNewTab
	CommandCloseTab
	CommandRefresh
	CommandTextInput
)

var commandNames = map[CommandKind]string{
	CommandUnhandled:         "unhandled",
	CommandMoveUp:            "move-up",
	CommandMoveDown:          "move-down",
	CommandEnter:             "enter",
	CommandBack:              "back",
	CommandToggleCommandMode: "toggle-command-mode",
	CommandQuit:              "quit",
	CommandSwitchTab:         "switch-tab",
	CommandMoveTop:           "move-top",
	CommandMoveBottom:        "move-bottom",
	CommandPageUp:            "page-up",
	CommandPageDown:          "page-down",
	CommandNextTab:           "next-tab",
	CommandPrevTab:           "prev-tab",
	CommandNewTab:            "new-tab",
	CommandCloseTab:          "close-tab",
	CommandRefresh:           "refresh",
	CommandTextInput:         "text-input",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is the classified form of a key press. TabID is set for
// CommandSwitchTab; Key carries the original press for text input and for
// telling submit from cancel when leaving command mode.
type Command struct {
	Kind  CommandKind
	TabID string
	Key   tea.KeyMsg
}

// KeyMap holds the normal-mode bindings.
type KeyMap struct {
	Down        key.Binding
	Up          key.Binding
	Enter       key.Binding
	Back        key.Binding
	Quit        key.Binding
	CommandMode key.Binding
	SwitchTab   key.Binding
	Top         key.Binding
	Bottom      key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	NewTab      key.Binding
	CloseTab    key.Binding
	Refresh     key.Binding

	Cancel key.Binding
	Submit key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Enter:       key.NewBinding(key.WithKeys("l", "right", "enter"), key.WithHelp("l/→", "open")),
		Back:        key.NewBinding(key.WithKeys("h", "left", "backspace"), key.WithHelp("h/←", "back")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		CommandMode: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		SwitchTab:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "tab")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		NextTab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev tab")),
		NewTab:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "new tab")),
		CloseTab:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close tab")),
		Refresh:     key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Enter, k.Back, k.SwitchTab, k.NewTab, k.CloseTab, k.CommandMode, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Enter, k.Back, k.Refresh},
		{k.SwitchTab, k.NextTab, k.PrevTab, k.NewTab, k.CloseTab},
		{k.CommandMode, k.Quit},
	}
}

// commandHelp lists the bindings active while the command box is open.
func (k KeyMap) commandHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

// Router classifies key presses. It holds no state beyond its bindings.
type Router struct {
	keys  KeyMap
	table []routeEntry
}

type routeEntry struct {
	binding *key.Binding
	kind    CommandKind
}

// NewRouter builds a router over keys.
func NewRouter(keys KeyMap) *Router {
	r := &Router{keys: keys}
	r.table = []routeEntry{
		{&r.keys.Down, CommandMoveDown},
		{&r.keys.Up, CommandMoveUp},
		{&r.keys.Enter, CommandEnter},
		{&r.keys.Back, CommandBack},
		{&r.keys.Quit, CommandQuit},
		{&r.keys.CommandMode, CommandToggleCommandMode},
		{&r.keys.SwitchTab, CommandSwitchTab},
		{&r.keys.Top, CommandMoveTop},
		{&r.keys.Bottom, CommandMoveBottom},
		{&r.keys.PageUp, CommandPageUp},
		{&r.keys.PageDown, CommandPageDown},
		{&r.keys.NextTab, CommandNextTab},
		{&r.keys.PrevTab, CommandPrevTab},
		{&r.keys.NewTab, CommandNewTab},
		{&r.keys.CloseTab, CommandCloseTab},
		{&r.keys.Refresh, CommandRefresh},
	}
	return r
}

// Classify maps msg to a command for the given mode. In command mode only
// esc and enter leave the mode; every other key is text for the command box,
// so Quit is never produced there.
func (r *Router) Classify(msg tea.KeyMsg, mode Mode) Command {
	if mode == ModeCommand {
		if key.Matches(msg, r.keys.Cancel, r.keys.Submit) {
			return Command{Kind: CommandToggleCommandMode, Key: msg}
		}
		return Command{Kind: CommandTextInput, Key: msg}
	}
	for _, entry := range r.table {
		if !key.Matches(msg, *entry.binding) {
			continue
		}
		cmd := Command{Kind: entry.kind, Key: msg}
		if entry.kind == CommandSwitchTab {
			cmd.TabID = msg.String()
		}
		return cmd
	}
	return Command{Kind: CommandUnhandled, Key: msg}
}
