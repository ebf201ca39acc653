package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// envConfig mirrors Config for environment parsing. Zero values mean "not
// set" and leave the current layer untouched.
type envConfig struct {
	RemoteHostURL  string        `env:"RMS_REMOTE_HOST_URL"`
	RequestTimeout time.Duration `env:"RMS_REQUEST_TIMEOUT"`
	StateDBPath    string        `env:"RMS_STATE_DB"`
	LogFilePath    string        `env:"RMS_LOG_FILE"`
}

func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.RemoteHostURL != "" {
		cfg.RemoteHostURL = ec.RemoteHostURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.StateDBPath != "" {
		cfg.StateDBPath = ec.StateDBPath
	}
	if ec.LogFilePath != "" {
		cfg.LogFilePath = ec.LogFilePath
	}
}
