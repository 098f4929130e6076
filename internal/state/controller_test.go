package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshmessenger/meshmessenger/internal/chat"
	"github.com/meshmessenger/meshmessenger/internal/theme"
)

func fixedTime(hour, min int) time.Time {
	return time.Date(2024, 6, 1, hour, min, 0, 0, time.Local)
}

func TestNew(t *testing.T) {
	c := New(Options{Now: fixedTime(9, 5)})

	assert.Equal(t, theme.Light, c.Theme())
	assert.Equal(t, "09:05", c.Clock())
	assert.Equal(t, "", c.Draft())
	assert.Nil(t, c.Transcript())
}

func TestNew_ZeroNowUsesWallClock(t *testing.T) {
	c := New(Options{})
	assert.Regexp(t, `^\d{2}:\d{2}$`, c.Clock())
}

func TestToggleTheme(t *testing.T) {
	c := New(Options{})

	assert.Equal(t, theme.Dark, c.ToggleTheme())
	assert.Equal(t, theme.Dark, c.Theme())

	assert.Equal(t, theme.Light, c.ToggleTheme())
	assert.Equal(t, theme.Light, c.Theme())
}

func TestToggleTheme_TwiceIsIdentity(t *testing.T) {
	c := New(Options{})
	for i := 0; i < 5; i++ {
		before := c.Theme()
		c.ToggleTheme()
		c.ToggleTheme()
		assert.Equal(t, before, c.Theme())
		c.ToggleTheme()
	}
}

func TestSubmitMessage(t *testing.T) {
	tests := []struct {
		name       string
		draft      string
		wantRender bool
		wantDraft  string
	}{
		{"empty", "", false, ""},
		{"spaces", "   ", false, "   "},
		{"tabs and newlines", "\t\n ", false, "\t\n "},
		{"plain", "hello", true, ""},
		{"padded", "  hi  ", true, ""},
		{"sentence", "Hi there", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Options{})
			c.SetDraft(tt.draft)

			assert.Equal(t, tt.wantRender, c.SubmitMessage(c.Draft()))
			assert.Equal(t, tt.wantDraft, c.Draft())
		})
	}
}

func TestSubmitMessage_LeavesOtherStateAlone(t *testing.T) {
	c := New(Options{Now: fixedTime(12, 0)})
	c.ToggleTheme()

	c.SetDraft("   ")
	c.SubmitMessage("   ")
	assert.Equal(t, theme.Dark, c.Theme())
	assert.Equal(t, "12:00", c.Clock())
	assert.Equal(t, "   ", c.Draft())

	c.SetDraft("go")
	c.SubmitMessage("go")
	assert.Equal(t, theme.Dark, c.Theme())
	assert.Equal(t, "12:00", c.Clock())
	assert.Equal(t, "", c.Draft())
}

func TestSubmitMessage_RecordsTrimmedText(t *testing.T) {
	tr := chat.NewTranscript(0)
	c := New(Options{Transcript: tr, Sender: "Me"})

	require.True(t, c.SubmitMessage("  hi  "))
	require.False(t, c.SubmitMessage("    "))

	msgs := tr.All()
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Text)
	assert.Equal(t, "Me", msgs[0].Sender)
	assert.True(t, msgs[0].Outgoing)
	assert.Equal(t, chat.StatusSent, msgs[0].Status)
}

func TestSubmitMessage_TranscriptFailureIsTotal(t *testing.T) {
	tr := chat.NewTranscript(0)
	require.NoError(t, tr.Close())

	c := New(Options{Transcript: tr})
	c.SetDraft("hello")

	assert.True(t, c.SubmitMessage("hello"))
	assert.Equal(t, "", c.Draft())
}

func TestTick(t *testing.T) {
	c := New(Options{Now: fixedTime(0, 0)})

	assert.Equal(t, "23:59", c.Tick(fixedTime(23, 59)))
	assert.Equal(t, "23:59", c.Clock())

	assert.Equal(t, "09:05", c.Tick(fixedTime(9, 5).Add(59*time.Second)))
}

func TestScenario_ToggleRoundTrip(t *testing.T) {
	c := New(Options{})
	require.Equal(t, theme.Light, c.Theme())

	c.ToggleTheme()
	assert.Equal(t, theme.Dark, c.Theme())

	c.ToggleTheme()
	assert.Equal(t, theme.Light, c.Theme())
}

func TestScenario_SendClearsDraft(t *testing.T) {
	c := New(Options{})
	c.SetDraft("Hi there")

	c.SubmitMessage(c.Draft())
	assert.Equal(t, "", c.Draft())
}
