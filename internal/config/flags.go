package config

import (
	"flag"
	"os"

	"github.com/agsavn/foodwatch/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. Flags default to the
// values already in cfg, so an absent flag changes nothing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-mode", "-api", "-db", "-dsn"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "operating mode: demo or remote")
	fs.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "backend API base URL (remote mode)")
	fs.StringVar(&cfg.LocalDBPath, "db", cfg.LocalDBPath, "path to the local storage database")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "Postgres DSN for the user store (optional)")
	_ = fs.Parse(args)
}
