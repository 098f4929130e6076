// Package chat defines the conversation data structures for meshmessenger.
package chat

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"

	"github.com/meshmessenger/meshmessenger/internal/clock"
)

// Status tracks where a message is in its lifecycle.
type Status string

// Message statuses.
const (
	StatusSending  Status = "sending"
	StatusSent     Status = "sent"
	StatusReceived Status = "received"
	StatusError    Status = "error"
)

// Message is a single transcript entry.
type Message struct {
	ID       string    `json:"id" yaml:"id"`
	Sender   string    `json:"sender" yaml:"sender"`
	Text     string    `json:"text" yaml:"text"`
	SentAt   time.Time `json:"sent_at" yaml:"sent_at"`
	Status   Status    `json:"status" yaml:"status"`
	Outgoing bool      `json:"outgoing" yaml:"outgoing"`
}

// Validation errors.
var (
	ErrEmptyID     = errors.New("message id cannot be empty")
	ErrEmptySender = errors.New("sender cannot be empty")
	ErrEmptyText   = errors.New("text cannot be empty")
	ErrBadStatus   = errors.New("unknown message status")
)

// NewMessage creates a message with a generated ULID. Outgoing messages
// start as sent since nothing is dispatched; incoming ones as received.
func NewMessage(sender, text string, outgoing bool) (*Message, error) {
	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	status := StatusReceived
	if outgoing {
		status = StatusSent
	}

	m := &Message{
		ID:       id.String(),
		Sender:   sender,
		Text:     strings.TrimSpace(text),
		SentAt:   now,
		Status:   status,
		Outgoing: outgoing,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that the message has all required fields.
func (m *Message) Validate() error {
	if m.ID == "" {
		return ErrEmptyID
	}
	if m.Sender == "" {
		return ErrEmptySender
	}
	if strings.TrimSpace(m.Text) == "" {
		return ErrEmptyText
	}
	switch m.Status {
	case StatusSending, StatusSent, StatusReceived, StatusError:
	default:
		return ErrBadStatus
	}
	return nil
}

// Clock returns the send time as HH:MM.
func (m *Message) Clock() string {
	return clock.Format(m.SentAt)
}

// RelativeTime returns a human-readable age such as "3 minutes ago".
func (m *Message) RelativeTime() string {
	return humanize.Time(m.SentAt)
}

// Mark returns the single-glyph status marker shown next to outgoing text.
func (m *Message) Mark() string {
	switch m.Status {
	case StatusSending:
		return "…"
	case StatusSent:
		return "✓"
	case StatusError:
		return "!"
	default:
		return ""
	}
}
