package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/marcos/internal/backend"
	"github.com/atomicstack/marcos/internal/data/dispatcher"
	"github.com/atomicstack/marcos/internal/dirreader"
	"github.com/atomicstack/marcos/internal/state"
	"github.com/atomicstack/marcos/internal/theme"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultPreviewLines = 200
	infoTTL             = 3 * time.Second
)

// Reader lists directories and previews entries.
type Reader interface {
	dirreader.Lister
	dirreader.Previewer
}

// Watcher streams change notifications for the directories it is told to
// watch.
type Watcher interface {
	Events() <-chan backend.Event
	Watch(dirs ...string) error
}

// Options configures a Model.
type Options struct {
	Styles       *theme.Styles
	Watcher      Watcher
	Keys         *KeyMap
	ShowFooter   bool
	PreviewLines int
	Width        int
	Height       int
}

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the browser.
type Model struct {
	tabs       *state.Registry
	reader     Reader
	dispatcher *dispatcher.Dispatcher
	router     *Router
	help       help.Model
	input      textinput.Model
	styles     *theme.Styles

	mode       Mode
	errMsg     string
	infoMsg    string
	infoExpire time.Time
	width      int
	height     int
	showFooter bool
	quitting   bool

	previewLines int
	previews     map[string]Pane

	watcher Watcher
	watched []string

	handlers map[reflect.Type]msgHandler
}

// NewModel builds a model over tabs, which must hold at least one tab.
func NewModel(tabs *state.Registry, reader Reader, opts Options) *Model {
	styles := opts.Styles
	if styles == nil {
		styles = theme.Default()
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	previewLines := opts.PreviewLines
	if previewLines <= 0 {
		previewLines = defaultPreviewLines
	}

	input := textinput.New()
	input.Prompt = ":"
	input.PromptStyle = styles.Prompt
	input.TextStyle = styles.Item
	_ = input.Cursor.SetMode(cursor.CursorStatic)

	h := help.New()
	h.Styles.ShortKey = styles.Prompt
	h.Styles.ShortDesc = styles.Footer
	h.Styles.ShortSeparator = styles.Footer

	m := &Model{
		tabs:         tabs,
		reader:       reader,
		dispatcher:   dispatcher.New(tabs),
		router:       NewRouter(keys),
		help:         h,
		input:        input,
		styles:       styles,
		mode:         ModeNormal,
		width:        opts.Width,
		height:       opts.Height,
		showFooter:   opts.ShowFooter,
		previewLines: previewLines,
		previews:     make(map[string]Pane),
		watcher:      opts.Watcher,
	}
	m.registerHandlers()
	m.syncViewport()
	m.syncWatch()
	m.reportParent(tabs.Focused())
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForBackendEvent(m.watcher)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if handler := m.handlerFor(msg); handler != nil {
		cmd = handler(msg)
	}
	m.finishUpdate()
	return m, cmd
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate re-establishes the invariants every message relies on: the
// cursor is visible and the watcher follows the directories on screen.
func (m *Model) finishUpdate() {
	m.syncViewport()
	m.syncWatch()
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = resize.Width
	m.height = resize.Height
	m.help.Width = resize.Width
	return nil
}

// Mode reports the current input mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Tabs exposes the registry the model drives.
func (m *Model) Tabs() *state.Registry {
	return m.tabs
}

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}

func (m *Model) setError(message string) {
	m.errMsg = message
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) setInfo(message string) {
	m.errMsg = ""
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) clearStatus() {
	m.errMsg = ""
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
