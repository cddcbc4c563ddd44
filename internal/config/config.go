// Package config loads user-level preferences from
// ~/.agentwatch/config.json. An absent file yields defaults; flags override
// whatever the file provides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied when the config file is absent or fields are unset.
const (
	DefaultServerURL    = "http://127.0.0.1:4040"
	DefaultPollInterval = 1000 * time.Millisecond
)

// Global holds user-level preferences.
type Global struct {
	ServerURL      string `json:"server_url,omitempty"`
	PollIntervalMS int    `json:"poll_interval_ms,omitempty"`
	DownloadDir    string `json:"download_dir,omitempty"`
}

// Dir returns the global config directory (~/.agentwatch), creating it if
// needed.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	dir := filepath.Join(home, ".agentwatch")
	os.MkdirAll(dir, 0755)
	return dir
}

func configPath() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads the config file, returning defaults if it is absent.
func Load() (*Global, error) {
	data, err := os.ReadFile(configPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Global{}, nil
		}
		return nil, err
	}
	var cfg Global
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configPath(), err)
	}
	return &cfg, nil
}

// Save writes the config file.
func Save(cfg *Global) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), append(data, '\n'), 0644)
}

// EffectiveServerURL returns the configured server URL or the default.
func (g *Global) EffectiveServerURL() string {
	if g.ServerURL != "" {
		return g.ServerURL
	}
	return DefaultServerURL
}

// EffectivePollInterval returns the configured poll interval or the
// default 1s cadence.
func (g *Global) EffectivePollInterval() time.Duration {
	if g.PollIntervalMS > 0 {
		return time.Duration(g.PollIntervalMS) * time.Millisecond
	}
	return DefaultPollInterval
}

// EffectiveDownloadDir returns the directory export downloads land in: the
// configured one, else the current working directory.
func (g *Global) EffectiveDownloadDir() string {
	if g.DownloadDir != "" {
		return g.DownloadDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
