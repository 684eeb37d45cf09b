package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/dreamora/fsradio/internal/radio"
	"github.com/dreamora/fsradio/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// Controller is the slice of the radio service the app drives. It is
// satisfied by *radio.Service and by test fakes.
type Controller interface {
	FriendlyName(ctx context.Context) (string, error)
	Power(ctx context.Context) (bool, error)
	Volume(ctx context.Context) (int, error)
	Modes(ctx context.Context) ([]radio.Mode, error)
	Presets(ctx context.Context) ([]radio.Preset, error)
}

var _ Controller = (*radio.Service)(nil)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, stretching the wait while the receiver stops answering. It
// returns immediately.
func StartPoller(ctx context.Context, store *state.Store, ctrl Controller, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			refreshStatus(ctx, store, ctrl, logger)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
	}()
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff. Zero failures polls at the base cadence.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

func refreshStatus(ctx context.Context, store *state.Store, ctrl Controller, logger *slog.Logger) {
	prev := store.Snapshot()

	power, err := ctrl.Power(ctx)
	if err != nil {
		store.UpdateStatus(nil, err)
		logger.Warn("power poll failed", "err", err)
		return
	}
	volume, err := ctrl.Volume(ctx)
	if err != nil {
		store.UpdateStatus(nil, err)
		logger.Warn("volume poll failed", "err", err)
		return
	}
	store.UpdateStatus(&state.Status{Power: power, Volume: volume}, nil)

	if prev.HasStatus && prev.Status.Power != power {
		logger.Info("receiver power changed", "on", power)
	}
	if prev.HasStatus && prev.Status.Volume != volume {
		logger.Info("receiver volume changed", "from", prev.Status.Volume, "to", volume)
	}
}
