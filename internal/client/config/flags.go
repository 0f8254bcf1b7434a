package config

import (
	"flag"
	"os"

	"eventmanager/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-s string   base URL of the backend REST API
//	-d string   path to the SQLite preference database
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "s", cfg.ServerEndpointAddr, "base URL of the backend REST API")
	fs.StringVar(&cfg.PrefsDSN, "d", cfg.PrefsDSN, "path to the SQLite preference database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
