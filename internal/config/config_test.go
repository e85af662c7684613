package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ModeDemo, cfg.Mode)
	require.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	require.Equal(t, "foodwatch.db", cfg.LocalDBPath)
	require.Empty(t, cfg.DatabaseDSN)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("FOODWATCH_MODE", ModeRemote)
	t.Setenv("FOODWATCH_API_URL", "https://api.agsavn.org/api")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, ModeRemote, cfg.Mode)
	require.Equal(t, "https://api.agsavn.org/api", cfg.APIBaseURL)
	// untouched variables keep their defaults
	require.Equal(t, "foodwatch.db", cfg.LocalDBPath)
}

func TestParseEnv_EmptyValueKeepsDefault(t *testing.T) {
	t.Setenv("FOODWATCH_MODE", "")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, ModeDemo, cfg.Mode)
}

func TestLoadJSONFile_PartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mode":"remote","database_dsn":"postgres://x"}`), 0o600))

	cfg := &Config{}
	cfg.LoadDefaults()
	loadJSONFile(cfg, path)

	require.Equal(t, ModeRemote, cfg.Mode)
	require.Equal(t, "postgres://x", cfg.DatabaseDSN)
	require.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
}

func TestLoadJSONFile_PanicsOnGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Panics(t, func() { loadJSONFile(cfg, path) })
}

func TestParseFlags_Overrides(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"foodwatch", "-mode", "remote", "-api", "https://api.agsavn.org/api"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, ModeRemote, cfg.Mode)
	require.Equal(t, "https://api.agsavn.org/api", cfg.APIBaseURL)
	require.Equal(t, "foodwatch.db", cfg.LocalDBPath)
}
