package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gear-optimizer/internal/builds"
	"gear-optimizer/internal/gear"
)

func TestLoadRunConfigMissingFile(t *testing.T) {
	cfg, err := LoadRunConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRunConfig(), cfg)
}

func TestLoadRunConfigLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gearopt.yaml")
	yml := `build: mech-tank
mode: anneal
slots: ["helm:exotic", "ring1:ascended"]
search:
  limit: 300
  seed: 3
  infusions: 4
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("GEAROPT_SEARCH_SEED", "99")
	t.Setenv("GEAROPT_LOG_LEVEL", "debug")

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "mech-tank", cfg.Build)
	assert.Equal(t, "anneal", cfg.Mode)
	assert.Equal(t, 300, cfg.Search.Limit)
	assert.Equal(t, uint64(99), cfg.Search.Seed)
	assert.Equal(t, 4, cfg.Search.Infusions)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	// untouched keys keep their defaults
	assert.Equal(t, DefaultRunConfig().Search.Steps, cfg.Search.Steps)

	slots, err := cfg.SlotList()
	require.NoError(t, err)
	assert.Equal(t, []gear.SlotQuality{
		{Slot: gear.Helm, Quality: gear.Exotic},
		{Slot: gear.Ring1, Quality: gear.Ascended},
	}, slots)
}

func TestLoadRunConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search: [1, 2"), 0o644))
	_, err := LoadRunConfig(path)
	assert.Error(t, err)
}

func TestRunConfigRequest(t *testing.T) {
	cfg := DefaultRunConfig()
	req, err := cfg.Request(nil)
	require.NoError(t, err)
	assert.Equal(t, builds.ModePaired, req.Mode)
	assert.Len(t, req.Slots, len(gear.StandardSlots(gear.Ascended)))
	assert.NotNil(t, req.Catalog)

	tests := []struct {
		name   string
		modify func(*RunConfig)
	}{
		{name: "mode", modify: func(c *RunConfig) { c.Mode = "exhaustive" }},
		{name: "quality", modify: func(c *RunConfig) { c.Quality = "legendary" }},
		{name: "slot", modify: func(c *RunConfig) { c.Slots = []string{"tail:exotic"} }},
		{name: "catalog", modify: func(c *RunConfig) { c.Catalog = filepath.Join(t.TempDir(), "missing.json") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultRunConfig()
			tt.modify(&c)
			_, err := c.Request(nil)
			assert.Error(t, err)
		})
	}
}

func TestLevelFallsBackToInfo(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.LogLevel = "chatty"
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}
