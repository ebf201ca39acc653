// Package config assembles the client's runtime settings from layered
// sources: built-in defaults, an optional JSON file, environment variables,
// and command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the rate-my-setup client.
type Config struct {
	// RemoteHostURL is the base URL of the backend REST server.
	RemoteHostURL string
	// RequestTimeout bounds every server call.
	RequestTimeout time.Duration
	// StateDBPath is the sqlite file holding durable client state
	// (the session token).
	StateDBPath string
	// LogFilePath receives diagnostics while the TUI owns the terminal.
	LogFilePath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RemoteHostURL = "http://localhost:3001"
	c.RequestTimeout = 10 * time.Second
	c.StateDBPath = "ratemysetup.db"
	c.LogFilePath = "ratemysetup.log"
}

// LoadConfig constructs a Config: defaults, then JSON file (if given via
// -c/-config), then environment, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
