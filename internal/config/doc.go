// Package config handles loading and parsing fsradio configuration files.
//
// # Overview
//
// This package reads fsradio's TOML configuration to discover which receiver
// to control and how to talk to it. The file is small on purpose: an
// address, a PIN, a per-call timeout, and the mode the user last listened
// to.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/fsradio/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/fsradio/config.toml
//   - Receiver address: 192.168.0.153
//   - PIN: 1234 (the Frontier Silicon factory default)
//   - Timeout: 2 seconds per device call
//   - Last mode: IRadio
//
// # TOML Format
//
// Example fsradio config.toml:
//
//	url = "192.168.0.153"
//	pin = 1234
//	timeout = 2
//	last_mode = "IRadio"
//
// All fields are optional. The url accepts anything the candidate resolver
// accepts: a bare IP, host:port, or a full URL with a control path. The
// last_mode value is opaque here; matching it against the device's reported
// modes happens at startup in the app package.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead. This
// allows fsradio to work out-of-the-box against a receiver on the default
// address.
//
// # Usage Example
//
//	// Use default config path
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//
//	// Use explicit config path
//	cfg, err := config.Load("/etc/fsradio/config.toml")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//
//	// Feed the connection settings to the radio service
//	info, err := svc.Connect(ctx, radio.ConnectConfig{
//		Address: cfg.URL,
//		PIN:     cfg.PIN,
//		Timeout: cfg.CallTimeout(),
//	})
//
// # Design Philosophy
//
// This package follows the principle of sensible defaults. fsradio should
// work immediately against a receiver still carrying its factory PIN on the
// address the hardware ships with, without requiring any configuration file
// to exist.
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. It never writes
// the file back, and it never prompts; a wrong PIN simply surfaces as a
// connect failure.
//
// # Testing Considerations
//
// When testing code that uses this package:
//   - Provide explicit config paths to avoid dependency on user's home directory
//   - Use Config struct directly rather than Load() for unit tests
package config
