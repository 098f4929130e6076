package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meshmessenger/meshmessenger/internal/chat"
)

// copyFunc writes text to the system clipboard.
type copyFunc func(text string) error

// systemClipboard uses wl-copy, xclip, xsel, pbcopy or clip.exe,
// whichever the platform provides.
func systemClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// copyTranscript exports the transcript in format and copies it.
func (m Model) copyTranscript(format chat.Format) tea.Cmd {
	var msgs []chat.Message
	if t := m.ctrl.Transcript(); t != nil {
		msgs = t.All()
	}
	write := m.copy

	return func() tea.Msg {
		if len(msgs) == 0 {
			return copyResultMsg{err: fmt.Errorf("nothing to copy")}
		}
		text, err := chat.ExportString(msgs, format)
		if err != nil {
			return copyResultMsg{err: err}
		}
		return copyResultMsg{err: write(text), count: len(msgs), format: format}
	}
}
