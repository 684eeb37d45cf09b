// Package app provides the orchestration layer for fsradio.
//
// # Overview
//
// This package wires together configuration, the radio service, the fsapi
// transport, polling, and state management. It serves as the composition
// root where all dependencies are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load fsradio configuration from ~/.config/fsradio/config.toml
//  2. Start the serialized radio service with the fsapi dialer
//  3. Connect, walking the candidate URLs derived from the configured address
//  4. Load the device catalog and restore the saved mode selection
//  5. Launch the background poller goroutine for continuous status updates
//  6. Block until the context cancels, then disconnect cleanly
//
// # Components
//
//   - app.go: Main Run function, catalog loading, mode selection restore
//   - poller.go: Background goroutine that polls power and volume
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Read fsradio config
//	       ├─────> radio.NewService()    Start the command worker
//	       ├─────> svc.Connect()         Candidate walk + probe
//	       ├─────> loadCatalog()         Name, modes, presets, selection
//	       ├─────> StartPoller()         Launch background updates
//	       └─────> <-ctx.Done()          Wait, then Disconnect
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> svc.Power()                        │
//	│  ├─> svc.Volume()                       │
//	│  └─> store.UpdateStatus()  (atomic)     │
//	│      └─> consumers read Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Mode Selection Restore
//
// The config's last_mode value records what the user last listened to. At
// startup it is matched against the device's reported mode list - firmware
// id first, then display label, then raw key - and the match becomes the
// selected mode in the snapshot. An unknown value falls back to the first
// reported mode. Restoring is bookkeeping only: the device is never told to
// switch modes, so a receiver that was left on DAB keeps playing DAB.
//
// # Polling Behavior
//
// The poller runs continuously in the background at a configurable interval
// (default: 2 seconds). On each tick:
//
//   - Fetches power state through the radio service
//   - Fetches volume through the radio service
//   - Updates the shared state.Store atomically
//   - Logs errors but continues polling on failure
//
// Consecutive failures stretch the wait exponentially up to 30 seconds, so
// a receiver that has been switched off at the wall is not hammered every
// two seconds. The first successful poll snaps the cadence back.
//
// # Error Handling
//
// The app package distinguishes between fatal and recoverable errors:
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - Every candidate URL failed during connect
//   - Friendly name or mode list unreadable right after connect
//
// Recoverable errors (logged, polling continues):
//   - Periodic power or volume poll failures
//   - Preset list unavailable at startup
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - ConfigPath: Path to fsradio config.toml (default: ~/.config/fsradio/config.toml)
//   - PollEvery: Polling interval in seconds (default: 2 seconds)
//
// # Usage Example
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	opts := app.Options{
//		ConfigPath: "", // Use default
//		PollEvery:  2,  // 2 second polling
//	}
//
//	if err := app.Run(ctx, opts); err != nil {
//		log.Fatalf("fsradio failed: %v", err)
//	}
//
// # Dependencies
//
//   - config: Loads and parses fsradio configuration files
//   - radio: Serialized connection and command service
//   - fsapi: HTTP transport implementation for real devices
//   - state: Thread-safe state container for observed device data
//   - logging: Structured logger construction
//
// # Design Rationale
//
// This package intentionally keeps orchestration logic minimal and focused.
// Device behavior lives in domain packages (radio, fsapi, state). The app
// package simply connects these pieces with sensible defaults for the
// single-receiver use case, and the Controller interface keeps the catalog
// and polling logic testable without a device.
package app
