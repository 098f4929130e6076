package clock

import (
	"context"
	"fmt"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hhmm = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func TestFormat_AllMinutesOfDay(t *testing.T) {
	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	seen := make(map[string]bool, 24*60)
	for m := 0; m < 24*60; m++ {
		ts := base.Add(time.Duration(m) * time.Minute)
		got := Format(ts)

		require.Regexp(t, hhmm, got)
		assert.Equal(t, fmt.Sprintf("%02d:%02d", m/60, m%60), got)
		seen[got] = true
	}
	assert.Len(t, seen, 24*60)
}

func TestFormat_ZeroPadded(t *testing.T) {
	tests := []struct {
		hour, min int
		expected  string
	}{
		{0, 0, "00:00"},
		{9, 5, "09:05"},
		{12, 30, "12:30"},
		{23, 59, "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			ts := time.Date(2024, 1, 1, tt.hour, tt.min, 42, 999, time.Local)
			assert.Equal(t, tt.expected, Format(ts))
		})
	}
}

func TestFormat_TruncatesSeconds(t *testing.T) {
	ts := time.Date(2024, 1, 1, 7, 14, 59, int(time.Second-1), time.UTC)
	assert.Equal(t, "07:14", Format(ts))
}

func TestClampInterval(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Duration
		expected time.Duration
	}{
		{"zero uses default", 0, DefaultInterval},
		{"too fast", time.Millisecond, MinInterval},
		{"too slow", time.Minute, MaxInterval},
		{"in range", 500 * time.Millisecond, 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampInterval(tt.in))
		})
	}
}

func TestTicker_PostsTicks(t *testing.T) {
	tk := NewTicker(MinInterval, nil)

	var count atomic.Int32
	tk.Start(context.Background(), func(time.Time) {
		count.Add(1)
	})
	defer tk.Stop()

	assert.Eventually(t, func() bool {
		return count.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, tk.isRunning())
}

func TestTicker_StopHaltsTicks(t *testing.T) {
	tk := NewTicker(MinInterval, nil)

	var count atomic.Int32
	tk.Start(context.Background(), func(time.Time) {
		count.Add(1)
	})
	tk.Stop()
	assert.False(t, tk.isRunning())

	stopped := count.Load()
	time.Sleep(3 * MinInterval)
	assert.Equal(t, stopped, count.Load())

	// Stopping twice is harmless.
	tk.Stop()
}

func TestTicker_ContextCancel(t *testing.T) {
	tk := NewTicker(MinInterval, nil)

	ctx, cancel := context.WithCancel(context.Background())
	tk.Start(ctx, func(time.Time) {})
	cancel()

	assert.Eventually(t, func() bool {
		return !tk.isRunning()
	}, time.Second, 10*time.Millisecond)
}

func TestTicker_StartTwice(t *testing.T) {
	tk := NewTicker(MinInterval, nil)

	var count atomic.Int32
	post := func(time.Time) { count.Add(1) }
	tk.Start(context.Background(), post)
	tk.Start(context.Background(), post)
	defer tk.Stop()

	time.Sleep(MinInterval*3 + MinInterval/2)
	// One goroutine ticking: roughly three posts, never six.
	assert.LessOrEqual(t, count.Load(), int32(4))
}
