package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/meshmessenger/meshmessenger/internal/chat"
)

const sendLabel = "Send"

// Layout sizes. The send button is its label plus padding (4) and a
// one-cell left margin; the fixed rows are header, input box (3),
// footer and status bar.
const (
	sendButtonWidth = len(sendLabel) + 4 + 1
	chromeHeight    = 1 + 3 + 1 + 1
)

// View renders the TUI.
func (m Model) View() string {
	var body string
	switch m.mode {
	case ModeHelp:
		body = m.viewHelp()
	default:
		body = m.viewChat()
	}

	window := m.styles.Window.
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height).
		Render(body)
	return m.zones.Scan(window)
}

func (m Model) viewChat() string {
	header := m.styles.Header.Width(m.width).MaxHeight(1).Render(m.headerText())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		m.viewInputRow(),
		m.viewFooter(),
		m.viewStatusBar(),
	)
}

// headerText names the peer and, once a message exists, how long ago the
// last one was sent.
func (m Model) headerText() string {
	title := m.cfg.Header()
	t := m.ctrl.Transcript()
	if t == nil {
		return title
	}
	last, ok := t.Last()
	if !ok {
		return title
	}
	return title + " · last message " + last.RelativeTime()
}

// viewInputRow renders the text field and the send button.
func (m Model) viewInputRow() string {
	field := m.styles.Input.
		Width(m.width - sendButtonWidth - 2).
		Render(m.input.View())

	button := m.zones.Mark(zoneSend, m.styles.Button.Render(sendLabel))

	return lipgloss.JoinHorizontal(lipgloss.Center, field, button)
}

// viewFooter renders: icon, spacer, clock, spacer, icon.
func (m Model) viewFooter() string {
	icon := m.styles.Icon.Render(m.styles.Palette.Icon)
	clk := m.styles.Clock.Render(m.ctrl.Clock())

	gap := m.width - 2*lipgloss.Width(icon) - lipgloss.Width(clk)
	if gap < 0 {
		gap = 0
	}
	left := gap / 2
	right := gap - left

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.zones.Mark(zoneThemeLeft, icon),
		m.spacer(left),
		clk,
		m.spacer(right),
		m.zones.Mark(zoneThemeRight, icon),
	)
}

func (m Model) spacer(n int) string {
	return m.styles.Window.Render(strings.Repeat(" ", n))
}

// viewStatusBar shows the status message, the clear prompt or the
// keybind bar.
func (m Model) viewStatusBar() string {
	switch {
	case m.mode == ModeConfirmClear:
		return m.styles.StatusErr.Render("Clear chat? All messages will be deleted. ") +
			m.styles.Key.Render("y") + m.styles.Status.Render("/") + m.styles.Key.Render("n")
	case m.statusMsg != "":
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.StatusErr
		}
		return style.Render(m.statusMsg)
	default:
		return m.buildKeybindBar(m.width)
	}
}

func (m Model) viewHelp() string {
	title := m.styles.Header.Render("Keyboard Shortcuts")

	h := m.help
	h.ShowAll = true

	hint := m.styles.Muted.Render("Mouse: click Send to send, either icon to switch light/dark.")
	back := m.styles.Muted.Render("Press f1 or esc to return")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		h.View(m.keys),
		"",
		hint,
		back,
	)
}

// renderTranscript renders messages oldest first, wrapped to the window.
func (m Model) renderTranscript(msgs []chat.Message) string {
	if len(msgs) == 0 {
		return m.styles.Muted.
			Width(m.viewport.Width).
			Align(lipgloss.Center).
			Render("Start a conversation")
	}

	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		style := m.styles.Incoming
		if msg.Outgoing {
			style = m.styles.Outgoing
		}

		text := msg.Sender + ": " + msg.Text
		if mark := msg.Mark(); mark != "" {
			text += " " + mark
		}

		stamp := m.styles.Muted.Render(msg.Clock() + " ")
		body := style.Width(max(1, m.viewport.Width-lipgloss.Width(stamp))).Render(text)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, stamp, body))
	}
	return strings.Join(lines, "\n")
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
func (m Model) buildKeybindBar(width int) string {
	binds := []keybind{
		{"enter", "send", 1},
		{"ctrl+t", "theme", 2},
		{"esc", "quit", 3},
		{"f1", "help", 4},
		{"ctrl+l", "clear", 5},
		{"ctrl+y", "copy", 6},
	}

	const separator = "  "
	result := ""
	for _, b := range binds {
		item := m.styles.Key.Render(b.key) + m.styles.Status.Render(" "+b.desc)
		testLen := lipgloss.Width(result) + lipgloss.Width(item)
		if result != "" {
			testLen += len(separator)
		}

		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += m.styles.Status.Render(separator)
		}
		result += item
	}

	return result
}
