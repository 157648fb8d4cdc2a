package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathway/editor"
	"pathway/graph"
	"pathway/layout"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 3, cfg.Layout.Columns)
	assert.Equal(t, editor.DefaultHistoryCapacity, cfg.History.Capacity)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "pathway.yaml", `
name: Support line
layout:
  columns: 4
history:
  capacity: 20
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Support line", cfg.Name)
	assert.Equal(t, 4, cfg.Layout.Columns)
	assert.Equal(t, float64(250), cfg.Layout.CellWidth, "unset keys keep their defaults")
	assert.Equal(t, 20, cfg.History.Capacity)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "pathway.toml", `
name = "Sales"

[placement]
seed = 42
width = 100

[server]
address = "127.0.0.1:9000"
allowed_origins = ["http://localhost:3000"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sales", cfg.Name)
	assert.Equal(t, uint64(42), cfg.Placement.Seed)
	assert.Equal(t, float64(100), cfg.Placement.Width)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "pathway.ini", "name=x"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "pathway.toml", "name = "))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "pathway.yaml", "name: From file\nlayout:\n  columns: 4\n")
	t.Setenv("PATHWAY_NAME", "From env")
	t.Setenv("PATHWAY_LAYOUT_COLUMNS", "5")
	t.Setenv("PATHWAY_CORS_ORIGINS", "http://a,http://b")
	t.Setenv("PATHWAY_ENABLE_CORS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "From env", cfg.Name)
	assert.Equal(t, 5, cfg.Layout.Columns)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Server.EnableCORS)
}

func TestDotEnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "PATHWAY_HISTORY_CAPACITY=7\nPATHWAY_PLACEMENT_SEED=9\n")
	t.Cleanup(func() {
		os.Unsetenv("PATHWAY_HISTORY_CAPACITY")
		os.Unsetenv("PATHWAY_PLACEMENT_SEED")
	})

	cfg, err := Load("", filepath.Join(t.TempDir(), "absent.env"), envFile)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.History.Capacity)
	assert.Equal(t, uint64(9), cfg.Placement.Seed)
}

func TestBadEnvValues(t *testing.T) {
	t.Setenv("PATHWAY_HISTORY_CAPACITY", "lots")
	_, err := Load("")
	assert.ErrorContains(t, err, "PATHWAY_HISTORY_CAPACITY")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero columns", func(c *Config) { c.Layout.Columns = 0 }},
		{"tiny history", func(c *Config) { c.History.Capacity = 1 }},
		{"unknown level", func(c *Config) { c.Log.Level = "chatty" }},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }},
		{"no address", func(c *Config) { c.Server.Address = "" }},
		{"no name", func(c *Config) { c.Name = "" }},
		{"negative width", func(c *Config) { c.Placement.Width = -1 }},
		{"unknown algorithm", func(c *Config) { c.Layout.Algorithm = "force" }},
		{"unknown direction", func(c *Config) { c.Layout.Direction = "BT" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestBuilders(t *testing.T) {
	cfg := Default()
	cfg.Layout.Columns = 2
	cfg.Placement.Seed = 5
	cfg.Placement.Width = 10

	g := cfg.Grid()
	assert.Equal(t, 2, g.Columns)
	assert.Equal(t, "GridLayout", g.Name())

	a, b := cfg.NewPlacement(), cfg.NewPlacement()
	assert.Equal(t, float64(10), a.Width)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Next(emptyDoc()), b.Next(emptyDoc()), "fixed seed gives a fixed sequence")
	}
}

func TestEngineSelection(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "GridLayout", cfg.Engine().Name())

	t.Setenv("PATHWAY_LAYOUT_ALGORITHM", "layered")
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Layout.Direction = "LR"

	l, ok := cfg.Engine().(*layout.Layered)
	require.True(t, ok)
	assert.Equal(t, layout.DirectionLeftRight, l.Direction)
	assert.Equal(t, cfg.Layout.CellHeight, l.LayerSpacing)
	assert.Equal(t, cfg.Layout.CellWidth, l.NodeSpacing)
}

func emptyDoc() *graph.Document { return graph.New() }
