// Package config handles configuration for the fallback server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the fallback server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - PrefsDSN: path to the SQLite preference database backing the store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the
//     default in anything resembling production.
//   - AccessTokenValidityDuration: access token lifetime.
type Config struct {
	EndpointAddr                string
	PrefsDSN                    string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.PrefsDSN = "eventmanager.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
