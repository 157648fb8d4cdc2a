// Package config loads editor settings from defaults, an optional YAML or
// TOML file, a .env file and PATHWAY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"pathway/editor"
	"pathway/layout"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PATHWAY_"

type LayoutConfig struct {
	// Algorithm used by tidy-up: grid or layered
	Algorithm  string  `yaml:"algorithm" toml:"algorithm" validate:"oneof=grid layered"`
	Direction  string  `yaml:"direction" toml:"direction" validate:"oneof=TB LR"`
	Columns    int     `yaml:"columns" toml:"columns" validate:"min=1"`
	CellWidth  float64 `yaml:"cell_width" toml:"cell_width" validate:"gt=0"`
	CellHeight float64 `yaml:"cell_height" toml:"cell_height" validate:"gt=0"`
	OriginX    float64 `yaml:"origin_x" toml:"origin_x"`
	OriginY    float64 `yaml:"origin_y" toml:"origin_y"`
}

type HistoryConfig struct {
	Capacity int `yaml:"capacity" toml:"capacity" validate:"min=2"`
}

type PlacementConfig struct {
	X        float64 `yaml:"x" toml:"x"`
	Y        float64 `yaml:"y" toml:"y"`
	Width    float64 `yaml:"width" toml:"width" validate:"gte=0"`
	Height   float64 `yaml:"height" toml:"height" validate:"gte=0"`
	Attempts int     `yaml:"attempts" toml:"attempts" validate:"min=1"`
	// Seed fixes the jitter sequence; zero seeds from the clock.
	Seed uint64 `yaml:"seed" toml:"seed"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" toml:"format" validate:"oneof=json console"`
}

type ServerConfig struct {
	Address        string   `yaml:"address" toml:"address" validate:"required"`
	EnableCORS     bool     `yaml:"enable_cors" toml:"enable_cors"`
	AllowedOrigins []string `yaml:"allowed_origins" toml:"allowed_origins"`
}

// Config holds all editor configuration
type Config struct {
	// Name given to new pathways
	Name      string          `yaml:"name" toml:"name" validate:"required"`
	Layout    LayoutConfig    `yaml:"layout" toml:"layout"`
	History   HistoryConfig   `yaml:"history" toml:"history"`
	Placement PlacementConfig `yaml:"placement" toml:"placement"`
	Log       LogConfig       `yaml:"log" toml:"log"`
	Server    ServerConfig    `yaml:"server" toml:"server"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Name: "Untitled pathway",
		Layout: LayoutConfig{
			Algorithm:  "grid",
			Direction:  layout.DirectionTopDown,
			Columns:    layout.DefaultColumns,
			CellWidth:  layout.DefaultCellWidth,
			CellHeight: layout.DefaultCellHeight,
			OriginX:    layout.DefaultOriginX,
			OriginY:    layout.DefaultOriginY,
		},
		History: HistoryConfig{Capacity: editor.DefaultHistoryCapacity},
		Placement: PlacementConfig{
			X:        editor.DefaultPlacementX,
			Y:        editor.DefaultPlacementY,
			Width:    editor.DefaultPlacementWidth,
			Height:   editor.DefaultPlacementHeight,
			Attempts: editor.DefaultPlacementAttempts,
		},
		Log: LogConfig{Level: "info", Format: "console"},
		Server: ServerConfig{
			Address:        ":8080",
			EnableCORS:     true,
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load builds the configuration. path may be empty; otherwise it names a
// .yaml, .yml or .toml file. Each envFile that exists is loaded into the
// process environment without overriding variables that are already set.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	for _, f := range envFiles {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load env file '%s': %w", f, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file type '%s'", filepath.Ext(path))
	}
	return nil
}

func (c *Config) applyEnv() error {
	var err error
	c.Name = getEnv("NAME", c.Name)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Server.Address = getEnv("SERVER_ADDRESS", c.Server.Address)
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		c.Server.AllowedOrigins = strings.Split(origins, ",")
	}
	if c.Server.EnableCORS, err = getEnvBool("ENABLE_CORS", c.Server.EnableCORS); err != nil {
		return err
	}
	if c.History.Capacity, err = getEnvInt("HISTORY_CAPACITY", c.History.Capacity); err != nil {
		return err
	}
	c.Layout.Algorithm = getEnv("LAYOUT_ALGORITHM", c.Layout.Algorithm)
	if c.Layout.Columns, err = getEnvInt("LAYOUT_COLUMNS", c.Layout.Columns); err != nil {
		return err
	}
	if seed := getEnv("PLACEMENT_SEED", ""); seed != "" {
		if c.Placement.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return fmt.Errorf("%sPLACEMENT_SEED: %w", EnvPrefix, err)
		}
	}
	return nil
}

// Validate checks every section against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Grid builds the tidy-up layout engine.
func (c *Config) Grid() *layout.Grid {
	return &layout.Grid{
		Columns:    c.Layout.Columns,
		CellWidth:  c.Layout.CellWidth,
		CellHeight: c.Layout.CellHeight,
		OriginX:    c.Layout.OriginX,
		OriginY:    c.Layout.OriginY,
	}
}

// Engine builds the configured tidy-up layout engine. The layered engine
// spaces layers by cell height and siblings by cell width.
func (c *Config) Engine() layout.Engine {
	if c.Layout.Algorithm == "layered" {
		return &layout.Layered{
			Direction:    c.Layout.Direction,
			LayerSpacing: c.Layout.CellHeight,
			NodeSpacing:  c.Layout.CellWidth,
			OriginX:      c.Layout.OriginX,
			OriginY:      c.Layout.OriginY,
		}
	}
	return c.Grid()
}

// NewPlacement builds the placement policy for new nodes.
func (c *Config) NewPlacement() *editor.Placement {
	seed := c.Placement.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	p := editor.NewPlacement(seed)
	p.X, p.Y = c.Placement.X, c.Placement.Y
	p.Width, p.Height = c.Placement.Width, c.Placement.Height
	p.Attempts = c.Placement.Attempts
	return p
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	return b, nil
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	return i, nil
}
