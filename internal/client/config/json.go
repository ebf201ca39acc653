package config

import (
	"encoding/json"
	"os"

	"github.com/ratemysetup/ratemysetup-cli/internal/flagx"
	"github.com/ratemysetup/ratemysetup-cli/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can say "10s" instead of raw nanoseconds.
type jsonConfig struct {
	RemoteHostURL  *string         `json:"remote_host_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	StateDBPath    *string         `json:"state_db_path"`
	LogFilePath    *string         `json:"log_file_path"`
}

// parseJSON overlays cfg with values from the JSON file named by -c/-config.
// No flag, no file, no overlay. Read or unmarshal errors panic: a config file
// that was asked for but cannot be used is not worth starting with.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.RemoteHostURL != nil {
		cfg.RemoteHostURL = *jc.RemoteHostURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StateDBPath != nil {
		cfg.StateDBPath = *jc.StateDBPath
	}
	if jc.LogFilePath != nil {
		cfg.LogFilePath = *jc.LogFilePath
	}
}
