package config

import (
	"flag"
	"os"
	"time"

	"github.com/ratemysetup/ratemysetup-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-u string   base URL of the backend server
//	-t int      request timeout in seconds
//	-d string   path to the local state database
//	-l string   path to the log file
//
// Args are pre-filtered via flagx.FilterArgs so flags owned by other layers
// (like -c/-config) don't trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RemoteHostURL, "u", cfg.RemoteHostURL, "base URL of the backend server")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StateDBPath, "d", cfg.StateDBPath, "path to the local state database")
	fs.StringVar(&cfg.LogFilePath, "l", cfg.LogFilePath, "path to the log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
