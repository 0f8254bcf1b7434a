package config

import "time"

// Config holds runtime settings for the event-manager CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend REST API, including the
//     /api prefix.
//   - PrefsDSN: path to the SQLite preference database that holds the
//     session and the offline fallback data.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerEndpointAddr string
	PrefsDSN           string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080/api"
	c.PrefsDSN = "eventmanager.db"
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
