package tui

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/meshmessenger/meshmessenger/internal/chat"
	"github.com/meshmessenger/meshmessenger/internal/clock"
	"github.com/meshmessenger/meshmessenger/internal/config"
	"github.com/meshmessenger/meshmessenger/internal/state"
	"github.com/meshmessenger/meshmessenger/internal/theme"
)

// RunOptions configures the TUI.
type RunOptions struct {
	Config *config.Config
	Logger *slog.Logger
}

// Run starts the chat window and blocks until it is closed or ctx is
// cancelled.
func Run(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transcript := chat.NewTranscript(cfg.Chat.MaxMessages)
	defer func() {
		if err := transcript.Close(); err != nil {
			logger.Warn("failed to close transcript", "error", err)
		}
	}()

	ctrl := state.New(state.Options{
		Transcript: transcript,
		Sender:     cfg.Chat.Self,
		Logger:     logger,
	})
	loader := theme.NewLoader(config.PalettesPath(), logger)

	m := New(cfg, Deps{
		Controller: ctrl,
		Loader:     loader,
		Logger:     logger,
	})
	defer m.zones.Close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	interval, err := cfg.ClockInterval()
	if err != nil {
		logger.Warn("invalid clock interval, using default", "interval", cfg.Clock.Interval, "error", err)
		interval = clock.DefaultInterval
	}
	ticker := clock.NewTicker(interval, logger)
	ticker.Start(ctx, func(t time.Time) {
		p.Send(TickMsg{Time: t})
	})
	defer ticker.Stop()

	if cfg.Theme.HotReload {
		if w := startPaletteWatcher(ctx, loader.Dir(), p, logger); w != nil {
			defer func() {
				if err := w.Stop(); err != nil {
					logger.Warn("failed to stop palette watcher", "error", err)
				}
			}()
		}
	}

	_, err = p.Run()
	return exitError(ctx, err)
}

// exitError treats a program stopped by ctx cancellation as a clean exit.
func exitError(ctx context.Context, err error) error {
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// startPaletteWatcher watches the user palettes directory and forwards
// changes to p. It returns nil when there is nothing to watch.
func startPaletteWatcher(ctx context.Context, dir string, p *tea.Program, logger *slog.Logger) *theme.Watcher {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		logger.Debug("palettes directory not found, hot reload disabled", "dir", dir)
		return nil
	}

	w, err := theme.NewWatcher(dir, logger)
	if err != nil {
		logger.Warn("failed to create palette watcher", "error", err)
		return nil
	}
	w.SetChangeCallback(func(name string) {
		p.Send(PaletteChangedMsg{Name: name})
	})
	if err := w.Start(ctx); err != nil {
		logger.Warn("failed to start palette watcher", "error", err)
		_ = w.Stop()
		return nil
	}
	return w
}
