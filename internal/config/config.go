// Package config handles global routeviz configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/matsen/routeviz/internal/anim"
)

// Config holds the settings shared by every routeviz command.
type Config struct {
	DBPath      string  `yaml:"db_path,omitempty" json:"db_path"`
	Width       float64 `yaml:"width,omitempty" json:"width"`
	Height      float64 `yaml:"height,omitempty" json:"height"`
	FPS         float64 `yaml:"fps,omitempty" json:"fps"`
	Seed        int64   `yaml:"seed,omitempty" json:"seed"`
	DefaultIcon string  `yaml:"default_icon,omitempty" json:"default_icon"`
	LogJSON     bool    `yaml:"log_json,omitempty" json:"log_json"`
}

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultFPS    = 60
	DefaultIcon   = "vehicle"

	// DBFile is the route store name inside the data directory.
	DBFile = "routes.db"
)

// Environment variables that override the config file.
const (
	EnvDBPath = "ROUTEVIZ_DB"
	EnvFPS    = "ROUTEVIZ_FPS"
	EnvSeed   = "ROUTEVIZ_SEED"
)

// Defaults returns the configuration used when no file exists.
func Defaults() *Config {
	return &Config{
		DBPath:      DefaultDBPath(),
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		FPS:         DefaultFPS,
		DefaultIcon: DefaultIcon,
	}
}

// DefaultDBPath returns the route store location under XDG_DATA_HOME,
// falling back to ~/.local/share.
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DBFile
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, GlobalConfigDir, DBFile)
}

// fillDefaults sets every zero field to its default.
func (c *Config) fillDefaults() {
	d := Defaults()
	if c.DBPath == "" {
		c.DBPath = d.DBPath
	}
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.FPS == 0 {
		c.FPS = d.FPS
	}
	if c.DefaultIcon == "" {
		c.DefaultIcon = d.DefaultIcon
	}
}

// ApplyEnv overrides fields from ROUTEVIZ_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvFPS); v != "" {
		fps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvFPS, err)
		}
		c.FPS = fps
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %vx%v", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %v", c.FPS)
	}
	if _, err := anim.ParseIconKind(c.DefaultIcon); err != nil {
		return fmt.Errorf("invalid default_icon: %w", err)
	}
	return nil
}

// Icon returns the parsed default icon kind.
func (c *Config) Icon() anim.IconKind {
	k, err := anim.ParseIconKind(c.DefaultIcon)
	if err != nil {
		return anim.Vehicle
	}
	return k
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
