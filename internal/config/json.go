package config

import (
	"encoding/json"
	"os"

	"github.com/agsavn/foodwatch/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// stay empty and do not override earlier sources.
type JsonConfig struct {
	Mode        string `json:"mode"`
	APIBaseURL  string `json:"api_base_url"`
	LocalDBPath string `json:"local_db_path"`
	DatabaseDSN string `json:"database_dsn"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. With no such flag, nothing is loaded. Read or unmarshal
// errors panic; the config stage runs before anything worth recovering.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}
	loadJSONFile(cfg, jsonConfigFile)
}

func loadJSONFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Mode != "" {
		cfg.Mode = jc.Mode
	}
	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
}
