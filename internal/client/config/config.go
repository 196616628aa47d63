// Package config holds the NutriScan client settings: defaults, an optional
// JSON file (-c / -config) and command-line flags, applied in that order.
package config

import "time"

// Config holds runtime settings for the NutriScan CLI.
//
// Fields:
//   - ServerURL: base URL of the server's HTTP API.
//   - SessionDBPath: SQLite file that keeps the logged-in session.
//   - RequestTimeout: per-request deadline for API calls.
type Config struct {
	ServerURL      string
	SessionDBPath  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.SessionDBPath = "nutriscan_session.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
