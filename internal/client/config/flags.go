package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/nutriscan/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   server base URL
//	-db string  session database file
//	-t int      request timeout in seconds
//
// os.Args is filtered through flagx.FilterArgs so -c does not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-db", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.SessionDBPath, "db", cfg.SessionDBPath, "session database file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
