// Package state provides thread-safe state management for fsradio.
//
// # Overview
//
// This package implements a simple but thread-safe store for sharing the
// receiver's observed state between the background poller and anything that
// wants to read it. It is the coordination point where polling updates meet
// consumers.
//
// # Architecture
//
// The package follows a producer-consumer pattern:
//
//	Producer (Poller):                 Consumer:
//	┌──────────────────────┐          ┌──────────────────┐
//	│ svc.Power()          │          │                  │
//	│ svc.Volume()         │          │                  │
//	│      ↓               │          │                  │
//	│ store.UpdateStatus() │─────────→│ store.Snapshot() │
//	│      ↓               │  (mutex) │      ↓           │
//	│  repeat...           │          │  inspect state   │
//	└──────────────────────┘          └──────────────────┘
//
// The Store mediates between independent goroutines, ensuring:
//   - Atomic updates (no partial/torn reads)
//   - No data races (mutex-protected access)
//   - Immutable snapshots (defensive copying)
//
// # Core Types
//
// Store:
//   - Thread-safe container for the latest receiver state
//   - Uses sync.RWMutex for concurrent access
//   - Single writer (poller), multiple readers
//
// Snapshot:
//   - Immutable view of state at a point in time
//   - Contains the device catalog, polled status, timestamps, and error info
//   - Returned by value with defensive copies
//
// Status:
//   - The frequently-polled subset: power and volume
//
// # Catalog Versus Status
//
// Receiver state splits naturally in two. The catalog (friendly name, mode
// list, restored mode selection, presets) is gathered once right after
// connect via SetCatalog and rarely changes. The status (power, volume)
// moves whenever someone touches the device or its remote, so the poller
// refreshes it on every tick via UpdateStatus. A poll failure never
// disturbs the catalog.
//
// # Update Semantics
//
// UpdateStatus has special error handling behavior:
//
//	// Success case: Replace polled status
//	store.UpdateStatus(&state.Status{Power: true, Volume: 11}, nil)
//	→ snapshot.Status = status
//	→ snapshot.LastError = nil
//	→ snapshot.LastUpdated = now
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Error case: Keep old data, record error
//	store.UpdateStatus(nil, err)
//	→ snapshot.Status = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.LastUpdated = now
//	→ snapshot.ConsecutiveFailures++
//
// This ensures consumers always have the most recent successful data, while
// also being informed of polling failures. IsOffline reports true once two
// polls in a row have failed, which distinguishes a receiver that was
// switched off at the wall from a single dropped request.
//
// # Defensive Copying
//
// Both SetCatalog and Snapshot perform copies to prevent shared state:
//
//   - Mode and preset slices are cloned (not just slice headers)
//   - Error values are copied (not shared pointers)
//   - The Status struct is copied by value
//
// # Usage Example
//
//	// Poller goroutine:
//	store := &state.Store{}
//	for {
//		power, err1 := svc.Power(ctx)
//		volume, err2 := svc.Volume(ctx)
//		if err := errors.Join(err1, err2); err != nil {
//			store.UpdateStatus(nil, err)
//		} else {
//			store.UpdateStatus(&state.Status{Power: power, Volume: volume}, nil)
//		}
//		time.Sleep(interval)
//	}
//
//	// Consumer:
//	snap := store.Snapshot()
//	fmt.Println(snap.Name, snap.Status.Volume, snap.IsOffline())
//
// # Testing Considerations
//
// The Store is safe to construct with zero value:
//
//	store := &state.Store{}  // Ready to use immediately
//
// For tests:
//   - No initialization required
//   - Thread-safe from first use
//   - Snapshot() returns zero Snapshot if never updated
//   - Updates are atomic and immediately visible
//
// # Design Rationale
//
// This package intentionally avoids:
//   - Channels (mutex is simpler for single writer/multiple readers)
//   - Incremental updates (full status replacement is easier)
//   - Versioning/history (only latest state matters)
//   - Pub/sub (consumers poll snapshots on their own schedule)
//
// This is appropriate for fsradio's scale: one receiver, a handful of
// values, low update frequency.
package state
