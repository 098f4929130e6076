package chat

import (
	"sync"
)

// ChangeType indicates the type of transcript change.
type ChangeType int

const (
	// ChangeTypeAppend indicates a message was appended.
	ChangeTypeAppend ChangeType = iota
	// ChangeTypeClear indicates the transcript was cleared.
	ChangeTypeClear
)

// ChangeEvent signals transcript content changes.
type ChangeEvent struct {
	Type  ChangeType
	Count int
}

// Transcript is the in-memory conversation log. It is never written to
// disk; a new process always starts with an empty transcript.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
	limit    int

	subscribers []chan ChangeEvent
	closed      bool
}

// NewTranscript creates a transcript holding at most limit messages.
// A limit of 0 keeps everything.
func NewTranscript(limit int) *Transcript {
	if limit < 0 {
		limit = 0
	}
	return &Transcript{
		messages: make([]Message, 0),
		limit:    limit,
	}
}

// Append adds a message, evicting the oldest when over the limit.
func (t *Transcript) Append(m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrTranscriptClosed
	}

	t.messages = append(t.messages, m)
	if t.limit > 0 && len(t.messages) > t.limit {
		drop := len(t.messages) - t.limit
		t.messages = append(t.messages[:0:0], t.messages[drop:]...)
	}

	t.notifyChange(ChangeEvent{Type: ChangeTypeAppend, Count: 1})
	return nil
}

// All returns a copy of the messages, oldest first.
func (t *Transcript) All() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]Message, len(t.messages))
	copy(result, t.messages)
	return result
}

// Last returns the newest message.
func (t *Transcript) Last() (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Len returns the number of messages held.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Clear removes every message.
func (t *Transcript) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrTranscriptClosed
	}

	count := len(t.messages)
	t.messages = make([]Message, 0)

	t.notifyChange(ChangeEvent{Type: ChangeTypeClear, Count: count})
	return nil
}

// Subscribe returns a channel that receives change events.
func (t *Transcript) Subscribe() <-chan ChangeEvent {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	if t.closed {
		close(ch)
		return ch
	}
	t.subscribers = append(t.subscribers, ch)
	return ch
}

// Close closes all subscriber channels. Further writes fail.
func (t *Transcript) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	for _, ch := range t.subscribers {
		close(ch)
	}
	t.subscribers = nil
	return nil
}

// notifyChange sends a change event to all subscribers (non-blocking).
func (t *Transcript) notifyChange(event ChangeEvent) {
	for _, ch := range t.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}

// Errors
var (
	ErrTranscriptClosed = transcriptError("transcript is closed")
)

type transcriptError string

func (e transcriptError) Error() string {
	return string(e)
}
