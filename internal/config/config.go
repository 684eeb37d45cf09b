package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the receiver settings fsradio reads at startup.
type Config struct {
	URL      string
	PIN      int
	Timeout  int
	LastMode string
}

const (
	defaultConfigPath = "~/.config/fsradio/config.toml"
	defaultURL        = "192.168.0.153"
	defaultPIN        = 1234
	defaultTimeout    = 2
	defaultLastMode   = "IRadio"
)

// Load locates and parses the fsradio config, falling back to defaults for
// anything missing. A config file that does not exist is not an error; the
// defaults describe a factory-fresh receiver on its usual address.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		URL:      defaultURL,
		PIN:      defaultPIN,
		Timeout:  defaultTimeout,
		LastMode: defaultLastMode,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		URL      string `toml:"url"`
		PIN      int    `toml:"pin"`
		Timeout  int    `toml:"timeout"`
		LastMode string `toml:"last_mode"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.URL = strings.TrimSpace(raw.URL)
	if cfg.URL == "" {
		cfg.URL = defaultURL
	}

	if raw.PIN > 0 {
		cfg.PIN = raw.PIN
	}
	if raw.Timeout > 0 {
		cfg.Timeout = raw.Timeout
	}

	cfg.LastMode = strings.TrimSpace(raw.LastMode)
	if cfg.LastMode == "" {
		cfg.LastMode = defaultLastMode
	}

	return cfg, nil
}

// CallTimeout returns the per-device-call timeout as a duration.
func (c Config) CallTimeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
