package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() AppConfig {
	return AppConfig{
		Port:        "8080",
		DatasetPath: "bike.csv",
		LogLevel:    "info",
		LogFormat:   "json",
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATASET_URL", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("INTEGRITY_INTERVAL", "1m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "bike.csv", cfg.DatasetPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.IntegrityInterval)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	cases := map[string]func(*AppConfig){
		"empty port":        func(c *AppConfig) { c.Port = "" },
		"no dataset":        func(c *AppConfig) { c.DatasetPath = "" },
		"bad url scheme":    func(c *AppConfig) { c.DatasetURL = "ftp://example.com/bike.csv" },
		"negative interval": func(c *AppConfig) { c.IntegrityInterval = -time.Second },
		"bad level":         func(c *AppConfig) { c.LogLevel = "loud" },
		"bad format":        func(c *AppConfig) { c.LogFormat = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg = validConfig()
	cfg.DatasetPath = ""
	cfg.DatasetURL = "https://example.com/bike.csv"
	assert.NoError(t, cfg.Validate())
}
