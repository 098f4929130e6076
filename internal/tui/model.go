// Package tui provides the BubbleTea-based chat window.
package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/meshmessenger/meshmessenger/internal/chat"
	"github.com/meshmessenger/meshmessenger/internal/config"
	"github.com/meshmessenger/meshmessenger/internal/state"
	"github.com/meshmessenger/meshmessenger/internal/theme"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeChat Mode = iota
	ModeConfirmClear
	ModeHelp
)

// Mouse zone ids.
const (
	zoneSend       = "send"
	zoneThemeLeft  = "theme-left"
	zoneThemeRight = "theme-right"
)

// Model is the main TUI model.
type Model struct {
	cfg    *config.Config
	ctrl   *state.Controller
	loader *theme.Loader
	logger *slog.Logger

	mode Mode

	// Components
	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	zones    *zone.Manager

	palettes theme.Set
	styles   theme.Styles

	width  int
	height int

	keys KeyMap

	// Status message
	statusMsg string
	statusErr bool

	copy copyFunc

	transcriptCh <-chan chat.ChangeEvent
}

// Deps are the collaborators a Model renders from.
type Deps struct {
	Controller *state.Controller
	Loader     *theme.Loader // nil = bundled palettes only
	Logger     *slog.Logger
	Copy       func(text string) error // nil = system clipboard
}

// New creates the chat window model.
func New(cfg *config.Config, deps Deps) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctrl := deps.Controller
	if ctrl == nil {
		ctrl = state.New(state.Options{Sender: cfg.Chat.Self, Logger: logger})
	}
	cp := copyFunc(deps.Copy)
	if cp == nil {
		cp = systemClipboard
	}

	input := textinput.New()
	input.Placeholder = "Enter a message"
	input.Prompt = "› "
	input.CharLimit = 1000
	input.SetValue(ctrl.Draft())
	input.Focus()

	m := Model{
		cfg:      cfg,
		ctrl:     ctrl,
		loader:   deps.Loader,
		logger:   logger,
		mode:     ModeChat,
		input:    input,
		viewport: viewport.New(cfg.Window.Width, 1),
		help:     help.New(),
		zones:    zone.New(),
		keys:     DefaultKeyMap(),
		copy:     cp,
	}
	m.palettes = m.loadPalettes()
	m.applyTheme()
	m.resize(cfg.Window.Width, cfg.Window.Height)
	m.refreshTranscript()

	if t := ctrl.Transcript(); t != nil {
		m.transcriptCh = t.Subscribe()
	}

	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.cfg.Window.Title),
		textinput.Blink,
		m.watchTranscript,
	)
}

// Controller returns the state controller the model renders from.
func (m Model) Controller() *state.Controller {
	return m.ctrl
}

// TickMsg carries one clock tick into the event loop.
type TickMsg struct {
	Time time.Time
}

// PaletteChangedMsg reports that a user palette file was rewritten.
type PaletteChangedMsg struct {
	Name string
}

type transcriptChangedMsg struct{}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err    error
	count  int
	format chat.Format
}

// watchTranscript waits for the next transcript change.
func (m Model) watchTranscript() tea.Msg {
	if m.transcriptCh == nil {
		return nil
	}
	if _, ok := <-m.transcriptCh; !ok {
		return nil
	}
	return transcriptChangedMsg{}
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.ctrl.Tick(msg.Time)
		return m, nil

	case PaletteChangedMsg:
		if msg.Name != m.cfg.Theme.Light && msg.Name != m.cfg.Theme.Dark {
			return m, nil
		}
		m.palettes = m.loadPalettes()
		m.applyTheme()
		return m, status("Reloaded palette "+msg.Name, false)

	case transcriptChangedMsg:
		m.refreshTranscript()
		return m, m.watchTranscript

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status(fmt.Sprintf("Copied %d messages as %s", msg.count, msg.format), false)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeConfirmClear:
		return m.handleConfirmKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Help) || msg.Type == tea.KeyEsc {
			m.mode = ModeChat
			return m, nil
		}
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		m.submit()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if t := m.ctrl.Transcript(); t == nil || t.Len() == 0 {
			return m, status("Nothing to clear", false)
		}
		m.mode = ModeConfirmClear
		return m, nil

	case key.Matches(msg, m.keys.CopyYAML):
		return m, m.copyTranscript(chat.FormatYAML)

	case key.Matches(msg, m.keys.CopyJSON):
		return m, m.copyTranscript(chat.FormatJSON)

	case key.Matches(msg, m.keys.CopyPlain):
		return m, m.copyTranscript(chat.FormatPlain)

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Everything else edits the draft.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDraft(m.input.Value())
	return m, cmd
}

// handleConfirmKey handles the clear-chat prompt.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = ModeChat
		if t := m.ctrl.Transcript(); t != nil {
			if err := t.Clear(); err != nil {
				return m, status("Clear failed: "+err.Error(), true)
			}
		}
		m.refreshTranscript()
		return m, status("Chat cleared", false)

	case key.Matches(msg, m.keys.Cancel):
		m.mode = ModeChat
		return m, nil

	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse routes clicks on the send button and theme icons.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeChat {
		return m, nil
	}

	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
		switch {
		case m.zones.Get(zoneSend).InBounds(msg):
			m.submit()
			return m, nil
		case m.zones.Get(zoneThemeLeft).InBounds(msg),
			m.zones.Get(zoneThemeRight).InBounds(msg):
			m.toggleTheme()
			return m, nil
		}
	}

	// Wheel scrolling over the transcript.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// submit sends the current input through the controller.
func (m *Model) submit() {
	if !m.ctrl.SubmitMessage(m.input.Value()) {
		return
	}
	m.input.SetValue(m.ctrl.Draft())
	m.refreshTranscript()
}

// toggleTheme flips the mode and restyles everything bound to it.
func (m *Model) toggleTheme() {
	m.ctrl.ToggleTheme()
	m.applyTheme()
}

func (m Model) loadPalettes() theme.Set {
	if m.loader == nil {
		return theme.DefaultSet()
	}
	return m.loader.LoadSet(m.cfg.Theme.Light, m.cfg.Theme.Dark)
}

// applyTheme rebuilds the styles for the controller's current mode.
func (m *Model) applyTheme() {
	m.styles = theme.StylesFor(m.palettes, m.ctrl.Theme())

	s := m.styles
	m.input.PromptStyle = s.Outgoing
	m.input.TextStyle = s.Window
	m.input.PlaceholderStyle = s.Muted
	m.input.Cursor.Style = s.Outgoing
	m.input.Cursor.TextStyle = s.Window

	m.viewport.Style = s.Window

	m.help.Styles.ShortKey = s.Key
	m.help.Styles.ShortDesc = s.Muted
	m.help.Styles.ShortSeparator = s.Muted
	m.help.Styles.FullKey = s.Key
	m.help.Styles.FullDesc = s.Muted
	m.help.Styles.FullSeparator = s.Muted
	m.help.Styles.Ellipsis = s.Muted

	m.refreshTranscript()
}

// resize lays the components out for a w x h window.
func (m *Model) resize(w, h int) {
	if w < config.MinWidth {
		w = config.MinWidth
	}
	if h < config.MinHeight {
		h = config.MinHeight
	}
	m.width = w
	m.height = h

	// Input box: border (2) + padding (2) + prompt, next to the button.
	m.input.Width = max(1, w-sendButtonWidth-4-lipgloss.Width(m.input.Prompt)-1)

	m.viewport.Width = w
	m.viewport.Height = max(1, h-chromeHeight)
	m.help.Width = w

	m.refreshTranscript()
}

// refreshTranscript re-renders the transcript into the viewport and
// keeps the newest message in view.
func (m *Model) refreshTranscript() {
	var msgs []chat.Message
	if t := m.ctrl.Transcript(); t != nil {
		msgs = t.All()
	}
	m.viewport.SetContent(m.renderTranscript(msgs))
	m.viewport.GotoBottom()
}
