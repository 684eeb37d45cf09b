package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/dreamora/fsradio/internal/radio"
)

// Status is the frequently-polled subset of device state.
type Status struct {
	Power  bool
	Volume int
}

// Snapshot represents the latest data observed on the receiver.
type Snapshot struct {
	Name                string
	Status              Status
	HasStatus           bool
	Modes               []radio.Mode
	SelectedMode        string
	Presets             []radio.Preset
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the receiver has been unreachable for
// multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetCatalog records the slow-moving device data gathered at connect time:
// the friendly name, the mode list with the restored selection, and the
// preset list.
func (s *Store) SetCatalog(name string, modes []radio.Mode, selectedMode string, presets []radio.Preset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Name = name
	s.snapshot.Modes = cloneModes(modes)
	s.snapshot.SelectedMode = selectedMode
	s.snapshot.Presets = clonePresets(presets)
}

// UpdateStatus replaces the polled status. When err is non-nil the previous
// data is kept but the error is recorded for visibility.
func (s *Store) UpdateStatus(status *Status, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if status != nil {
		s.snapshot.Status = *status
		s.snapshot.HasStatus = true
	} else {
		s.snapshot.HasStatus = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Modes = cloneModes(s.snapshot.Modes)
	snap.Presets = clonePresets(s.snapshot.Presets)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneModes(modes []radio.Mode) []radio.Mode {
	if len(modes) == 0 {
		return nil
	}
	dup := make([]radio.Mode, len(modes))
	copy(dup, modes)
	return dup
}

func clonePresets(presets []radio.Preset) []radio.Preset {
	if len(presets) == 0 {
		return nil
	}
	dup := make([]radio.Preset, len(presets))
	copy(dup, presets)
	return dup
}
