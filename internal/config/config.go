package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gxespino/sgt-launcher/internal/tmux"
	"github.com/sirupsen/logrus"
)

const appName = "sgt-launcher"

type CatalogConfig struct {
	Games    []string `toml:"games"`
	Prefixes []string `toml:"prefixes"`
	DataDirs []string `toml:"data_dirs"`
}

type EmbedConfig struct {
	Split string `toml:"split"` // "horizontal" or "vertical"
	Size  string `toml:"size"`  // tmux -l value, e.g. "75%"
}

// Config is read from ~/.config/sgt-launcher/config.toml.
type Config struct {
	LogLevel string        `toml:"log_level"`
	LogFile  string        `toml:"log_file"`
	Catalog  CatalogConfig `toml:"catalog"`
	Embed    EmbedConfig   `toml:"embed"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		LogFile:  filepath.Join(stateDir(), "launcher.log"),
		Embed: EmbedConfig{
			Split: "horizontal",
			Size:  "75%",
		},
	}
}

// Dir returns the configuration directory.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appName)
}

// Path returns the config file to read: explicit wins, then
// $SGT_LAUNCHER_CONFIG, then the default location.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("SGT_LAUNCHER_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at Path(explicit). A missing default file is
// not an error; a missing explicit one is.
func Load(explicit string) (*Config, error) {
	cfg := Default()
	path := Path(explicit)

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && explicit == "":
		logrus.WithField("path", path).Debug("No config file, using defaults")
	case err != nil:
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnvOverrides()
	cfg.LogFile = ExpandPath(cfg.LogFile)
	for i, d := range cfg.Catalog.DataDirs {
		cfg.Catalog.DataDirs[i] = ExpandPath(d)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("SGT_LAUNCHER_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if file := os.Getenv("SGT_LAUNCHER_LOG_FILE"); file != "" {
		c.LogFile = file
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	switch c.Embed.Split {
	case "", "horizontal", "vertical":
	default:
		return fmt.Errorf("invalid embed.split %q: want horizontal or vertical", c.Embed.Split)
	}
	return nil
}

// SplitOptions returns how game panes are split from the launcher pane.
func (c *Config) SplitOptions() tmux.SplitOptions {
	return tmux.SplitOptions{
		Horizontal: c.Embed.Split != "vertical",
		Size:       c.Embed.Size,
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
