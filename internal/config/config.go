package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/stickylist/internal/ui/sticky"
	"gopkg.in/yaml.v3"
)

const (
	appName    = "stickylist"
	configName = appName + ".yaml"
)

type Log struct {
	// File is the log file. Empty means the default under the data
	// directory.
	File  string `yaml:"file,omitempty"`
	Debug bool   `yaml:"debug,omitempty"`
}

type Config struct {
	// Data is the catalog file to show. Empty means the built-in catalog.
	Data  string `yaml:"data,omitempty"`
	Watch bool   `yaml:"watch,omitempty"`

	Sticky                bool           `yaml:"sticky"`
	DrawUnderStickyHeader bool           `yaml:"draw_under_sticky_header"`
	ClipToPadding         bool           `yaml:"clip_to_padding"`
	Padding               sticky.Padding `yaml:"padding,omitempty"`

	Log Log `yaml:"log,omitempty"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	opts := sticky.DefaultOptions()
	return &Config{
		Sticky:                opts.Sticky,
		DrawUnderStickyHeader: opts.DrawUnderStickyHeader,
		ClipToPadding:         opts.ClipToPadding,
		Padding:               opts.Padding,
	}
}

// Load reads the given config files over the defaults. Later files override
// earlier ones and missing files are skipped.
func Load(paths ...string) (*Config, error) {
	cfg := Default()
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		slog.Debug("Loaded config file", "path", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings no list can use.
func (c *Config) Validate() error {
	p := c.Padding
	if p.Top < 0 || p.Right < 0 || p.Bottom < 0 || p.Left < 0 {
		return fmt.Errorf("invalid padding %+v: values must not be negative", p)
	}
	return nil
}

// Options returns the sticky list options of the config.
func (c *Config) Options(logger *slog.Logger) []sticky.Option {
	return []sticky.Option{
		sticky.WithSticky(c.Sticky),
		sticky.WithDrawUnderStickyHeader(c.DrawUnderStickyHeader),
		sticky.WithClipToPadding(c.ClipToPadding),
		sticky.WithPadding(c.Padding),
		sticky.WithLogger(logger),
	}
}

// LogFile returns the log file to write to.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(GlobalDataDir(), "logs", appName+".log")
}

// GlobalConfig returns the path to the main config file.
func GlobalConfig() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName, configName)
	}

	// for windows, it should be in `%LOCALAPPDATA%/stickylist/`
	// for linux and macOS, it should be in `$HOME/.config/stickylist/`
	if runtime.GOOS == "windows" {
		return filepath.Join(localAppData(), appName, configName)
	}
	return filepath.Join(homeDir(), ".config", appName, configName)
}

// GlobalDataDir returns the directory logs are written to by default.
func GlobalDataDir() string {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName)
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(localAppData(), appName)
	}
	return filepath.Join(homeDir(), ".local", "share", appName)
}

func localAppData() string {
	if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
		return dir
	}
	return filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("Failed to get user home directory", "error", err)
		return os.TempDir()
	}
	return home
}
