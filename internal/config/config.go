// Package config handles configuration for the foodwatch client: defaults,
// an optional .env/environment overlay, an optional JSON file, and
// command-line flags, in that order, with later sources winning.
package config

// Operating modes for the auth core.
const (
	ModeDemo   = "demo"   // local user store stands in for the backend
	ModeRemote = "remote" // external dashboard API is the system of record
)

// Config holds runtime settings for the foodwatch client.
//
// Fields:
//   - Mode: ModeDemo or ModeRemote.
//   - APIBaseURL: root of the backend API, used in remote mode.
//   - LocalDBPath: sqlite file backing the durable client store.
//   - DatabaseDSN: optional Postgres DSN; when set in demo mode, the user
//     store runs against Postgres instead of the local kv entry.
type Config struct {
	Mode        string
	APIBaseURL  string
	LocalDBPath string
	DatabaseDSN string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.Mode = ModeDemo
	c.APIBaseURL = "http://localhost:8000/api"
	c.LocalDBPath = "foodwatch.db"
	c.DatabaseDSN = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), a JSON file
// (if given via -c/-config), and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
