package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080/api", c.ServerEndpointAddr)
	assert.Equal(t, "eventmanager.db", c.PrefsDSN)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{
			name:     "all flags",
			args:     []string{"cmd", "-s", "http://example.com/api", "-d", "other.db"},
			expected: &Config{ServerEndpointAddr: "http://example.com/api", PrefsDSN: "other.db"},
		},
		{
			name:     "unknown flags ignored",
			args:     []string{"cmd", "-d", "other.db", "-zz", "1"},
			expected: &Config{PrefsDSN: "other.db"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
			os.Args = tt.args

			config := &Config{}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}

func TestParseJson(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "conf*.json")
	require.NoError(t, err)

	_, err = file.WriteString(`{"server_endpoint_addr": "http://json.example/api", "request_timeout": "3s"}`)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	os.Args = []string{"cmd", "-config", file.Name()}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "http://json.example/api", cfg.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "eventmanager.db", cfg.PrefsDSN)
}
