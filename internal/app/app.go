package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dreamora/fsradio/internal/config"
	"github.com/dreamora/fsradio/internal/fsapi"
	"github.com/dreamora/fsradio/internal/logging"
	"github.com/dreamora/fsradio/internal/radio"
	"github.com/dreamora/fsradio/internal/state"
)

// Options configure the fsradio application.
type Options struct {
	ConfigPath string
	PollEvery  int // seconds; zero uses default
}

// Run connects to the configured receiver and watches it until the context
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load fsradio config: %w", err)
	}

	logger := logging.New(slog.LevelInfo)

	svc := radio.NewService(fsapi.Dial, radio.WithLogger(logger))
	defer svc.Close()

	info, err := svc.Connect(ctx, radio.ConnectConfig{
		Address: cfg.URL,
		PIN:     cfg.PIN,
		Timeout: cfg.CallTimeout(),
	})
	if err != nil {
		return fmt.Errorf("connect to receiver: %w", err)
	}
	logger.Info("receiver ready", "name", info.Name, "url", info.URL)

	store := &state.Store{}
	if err := loadCatalog(ctx, store, svc, cfg.LastMode, logger); err != nil {
		return fmt.Errorf("read receiver state: %w", err)
	}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}
	StartPoller(ctx, store, svc, interval, logger)

	<-ctx.Done()

	// ctx is already cancelled; the final disconnect gets its own short
	// deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := svc.Disconnect(shutdownCtx); err != nil {
		logger.Warn("disconnect failed", "err", err)
	}
	return nil
}

// loadCatalog reads the slow-moving device data once after connect: the
// friendly name, the mode list with the saved selection restored, and the
// presets. Restoring the selection is bookkeeping only; the device's
// current mode is left untouched.
func loadCatalog(ctx context.Context, store *state.Store, ctrl Controller, lastMode string, logger *slog.Logger) error {
	name, err := ctrl.FriendlyName(ctx)
	if err != nil {
		return err
	}
	modes, err := ctrl.Modes(ctx)
	if err != nil {
		return err
	}
	selected := selectMode(modes, lastMode)

	presets, err := ctrl.Presets(ctx)
	if err != nil {
		logger.Warn("preset list unavailable", "err", err)
		presets = nil
	}

	store.SetCatalog(name, modes, selected, presets)
	refreshStatus(ctx, store, ctrl, logger)
	logger.Info("receiver state loaded",
		"modes", len(modes), "presets", len(presets), "selected_mode", selected)
	return nil
}

// selectMode restores the saved mode selection against the device's
// reported list. The saved value may be a firmware id, a display label, or
// a raw key; the first match wins. An unknown value falls back to the first
// reported mode, and an empty list selects nothing.
func selectMode(modes []radio.Mode, saved string) string {
	if len(modes) == 0 {
		return ""
	}
	saved = strings.TrimSpace(saved)
	if saved != "" {
		for _, m := range modes {
			if m.ID == saved || m.Label == saved || m.Key == saved {
				return m.Key
			}
		}
	}
	return modes[0].Key
}
