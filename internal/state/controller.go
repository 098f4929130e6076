// Package state holds the chat window's UI state: the colour mode, the
// footer clock and the message draft.
//
// A Controller has a single writer. The window's event loop owns it and
// every mutation (key presses, clicks, clock ticks) arrives there as a
// message, so no locking is needed.
package state

import (
	"log/slog"
	"strings"
	"time"

	"github.com/meshmessenger/meshmessenger/internal/chat"
	"github.com/meshmessenger/meshmessenger/internal/clock"
	"github.com/meshmessenger/meshmessenger/internal/theme"
)

// Controller owns the UI state rendered by the window.
type Controller struct {
	logger *slog.Logger

	mode  theme.Mode
	clock string
	draft string

	// Optional; submitted messages are recorded here when set.
	transcript *chat.Transcript
	sender     string
}

// Options configures a Controller.
type Options struct {
	Now        time.Time        // Initial clock value (zero = time.Now())
	Transcript *chat.Transcript // Where submitted messages are recorded
	Sender     string           // Sender name for submitted messages
	Logger     *slog.Logger
}

// New creates a controller in light mode with an empty draft.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	sender := opts.Sender
	if sender == "" {
		sender = "You"
	}

	return &Controller{
		logger:     logger,
		mode:       theme.Light,
		clock:      clock.Format(now),
		transcript: opts.Transcript,
		sender:     sender,
	}
}

// Theme returns the current colour mode.
func (c *Controller) Theme() theme.Mode {
	return c.mode
}

// Clock returns the footer clock text (HH:MM).
func (c *Controller) Clock() string {
	return c.clock
}

// Draft returns the unsent input text.
func (c *Controller) Draft() string {
	return c.draft
}

// SetDraft mirrors the input field into the controller.
func (c *Controller) SetDraft(s string) {
	c.draft = s
}

// Transcript returns the attached transcript, which may be nil.
func (c *Controller) Transcript() *chat.Transcript {
	return c.transcript
}

// ToggleTheme flips between light and dark and returns the new mode.
func (c *Controller) ToggleTheme() theme.Mode {
	c.mode = c.mode.Toggle()
	c.logger.Debug("theme toggled", "mode", c.mode)
	return c.mode
}

// SubmitMessage sends draft. Whitespace-only drafts are ignored and
// false is returned; otherwise the draft is cleared, the trimmed text is
// recorded in the transcript and true is returned so the caller
// re-renders. It never fails: a transcript error is only logged.
func (c *Controller) SubmitMessage(draft string) bool {
	text := strings.TrimSpace(draft)
	if text == "" {
		return false
	}

	c.draft = ""

	if c.transcript != nil {
		if err := c.record(text); err != nil {
			c.logger.Warn("failed to record message", "error", err)
		}
	}

	c.logger.Debug("message submitted", "length", len(text))
	return true
}

func (c *Controller) record(text string) error {
	m, err := chat.NewMessage(c.sender, text, true)
	if err != nil {
		return err
	}
	return c.transcript.Append(*m)
}

// Tick recomputes the clock from now and returns it.
func (c *Controller) Tick(now time.Time) string {
	c.clock = clock.Format(now)
	return c.clock
}
