package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dreamora/fsradio/internal/logging"
	"github.com/dreamora/fsradio/internal/radio"
	"github.com/dreamora/fsradio/internal/state"
)

// fakeController serves canned device data and injectable failures.
type fakeController struct {
	mu      sync.Mutex
	name    string
	power   bool
	volume  int
	modes   []radio.Mode
	presets []radio.Preset

	nameErr    error
	powerErr   error
	volumeErr  error
	modesErr   error
	presetsErr error
}

func (f *fakeController) FriendlyName(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name, f.nameErr
}

func (f *fakeController) Power(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.power, f.powerErr
}

func (f *fakeController) Volume(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volume, f.volumeErr
}

func (f *fakeController) Modes(ctx context.Context) ([]radio.Mode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.modes, f.modesErr
}

func (f *fakeController) Presets(ctx context.Context) ([]radio.Preset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presets, f.presetsErr
}

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestRefreshStatus_UpdatesStore(t *testing.T) {
	ctrl := &fakeController{power: true, volume: 9}
	store := &state.Store{}

	refreshStatus(context.Background(), store, ctrl, logging.NewNop())

	snap := store.Snapshot()
	if !snap.HasStatus || !snap.Status.Power || snap.Status.Volume != 9 {
		t.Fatalf("snapshot status = %#v, want power=true volume=9", snap.Status)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
}

func TestRefreshStatus_ErrorKeepsPreviousStatus(t *testing.T) {
	ctrl := &fakeController{power: true, volume: 9}
	store := &state.Store{}

	refreshStatus(context.Background(), store, ctrl, logging.NewNop())

	ctrl.mu.Lock()
	ctrl.powerErr = errors.New("receiver gone")
	ctrl.mu.Unlock()

	refreshStatus(context.Background(), store, ctrl, logging.NewNop())

	snap := store.Snapshot()
	if !snap.HasStatus || !snap.Status.Power || snap.Status.Volume != 9 {
		t.Fatalf("status lost on poll error: %#v", snap.Status)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
	if snap.LastError == nil {
		t.Fatal("LastError = nil, want poll error")
	}
}

func TestLoadCatalog(t *testing.T) {
	ctrl := &fakeController{
		name:   "Kitchen Radio",
		power:  true,
		volume: 7,
		modes: []radio.Mode{
			{Key: "0", ID: "IR", Label: "Internet radio"},
			{Key: "2", ID: "DAB", Label: "DAB radio"},
		},
		presets: []radio.Preset{{Name: "SomaFM", Key: "0"}},
	}
	store := &state.Store{}

	if err := loadCatalog(context.Background(), store, ctrl, "DAB", logging.NewNop()); err != nil {
		t.Fatalf("loadCatalog returned error: %v", err)
	}

	snap := store.Snapshot()
	if snap.Name != "Kitchen Radio" {
		t.Fatalf("Name = %q, want %q", snap.Name, "Kitchen Radio")
	}
	if len(snap.Modes) != 2 || len(snap.Presets) != 1 {
		t.Fatalf("catalog = %d modes, %d presets, want 2 and 1", len(snap.Modes), len(snap.Presets))
	}
	if snap.SelectedMode != "2" {
		t.Fatalf("SelectedMode = %q, want %q (DAB restored)", snap.SelectedMode, "2")
	}
	if !snap.HasStatus || snap.Status.Volume != 7 {
		t.Fatalf("initial status = %#v, want volume 7", snap.Status)
	}
}

func TestLoadCatalog_PresetFailureIsNotFatal(t *testing.T) {
	ctrl := &fakeController{
		name:       "Kitchen Radio",
		modes:      []radio.Mode{{Key: "0", ID: "IR", Label: "Internet radio"}},
		presetsErr: errors.New("nav blocked"),
	}
	store := &state.Store{}

	if err := loadCatalog(context.Background(), store, ctrl, "", logging.NewNop()); err != nil {
		t.Fatalf("loadCatalog returned error: %v", err)
	}
	if snap := store.Snapshot(); len(snap.Presets) != 0 {
		t.Fatalf("Presets = %v, want none", snap.Presets)
	}
}

func TestLoadCatalog_ModeFailureIsFatal(t *testing.T) {
	ctrl := &fakeController{
		name:     "Kitchen Radio",
		modesErr: errors.New("device timeout"),
	}
	store := &state.Store{}

	if err := loadCatalog(context.Background(), store, ctrl, "", logging.NewNop()); err == nil {
		t.Fatal("loadCatalog succeeded, want mode list failure")
	}
}

func TestSelectMode(t *testing.T) {
	modes := []radio.Mode{
		{Key: "0", ID: "IR", Label: "Internet radio"},
		{Key: "2", ID: "DAB", Label: "DAB radio"},
		{Key: "3", ID: "FM", Label: "FM radio"},
	}

	tests := []struct {
		name  string
		modes []radio.Mode
		saved string
		want  string
	}{
		{"matches firmware id", modes, "DAB", "2"},
		{"matches display label", modes, "FM radio", "3"},
		{"matches raw key", modes, "2", "2"},
		{"unknown falls back to first", modes, "Spotify", "0"},
		{"empty saved falls back to first", modes, "", "0"},
		{"whitespace saved falls back to first", modes, "   ", "0"},
		{"empty list selects nothing", nil, "DAB", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectMode(tt.modes, tt.saved); got != tt.want {
				t.Errorf("selectMode(%q) = %q, want %q", tt.saved, got, tt.want)
			}
		})
	}
}
