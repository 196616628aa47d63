package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/nutriscan/internal/flagx"
	"github.com/dmitrijs2005/nutriscan/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Missing keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	SessionDBPath  string         `json:"session_db"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the file named by -c / -config, if any.
// Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
