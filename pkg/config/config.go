// Package config loads kintree settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/kintree/config.toml (falling back to
// ~/.config/kintree/config.toml). KINTREE_CONFIG overrides the path. A
// missing file is not an error: every setting has a default.
//
// Example:
//
//	[storage]
//	backend = "sqlite"
//	key = "kintree.members"
//
//	[storage.sqlite]
//	path = "/var/lib/kintree/tree.db"
//
//	[viewport]
//	min_scale = 0.2
//	max_scale = 3.0
//	step = 0.1
//
//	[layout]
//	card_width = 180
//	level_gap = 110
//
//	[connectors]
//	interval = "0s"
//
//	[cache]
//	enabled = true
//	ttl = "720h"
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/storage"
	"github.com/matzehuels/kintree/pkg/viewport"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "KINTREE_CONFIG"

// Config is the full set of user settings.
type Config struct {
	Storage    storage.Config  `toml:"storage"`
	Viewport   viewport.Limits `toml:"viewport"`
	Layout     layout.Metrics  `toml:"layout"`
	Connectors Connectors      `toml:"connectors"`
	Cache      Cache           `toml:"cache"`
}

// Cache configures the PDF and PNG conversion cache.
type Cache struct {
	Enabled bool `toml:"enabled"`
	// Dir defaults to $XDG_CACHE_HOME/kintree.
	Dir string        `toml:"dir,omitempty"`
	TTL time.Duration `toml:"ttl"`
}

// Connectors configures connector recomputation in the interactive viewer.
type Connectors struct {
	// Interval enables a periodic recompute in addition to change-driven
	// ones. Zero disables it.
	Interval time.Duration `toml:"interval"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Storage:  storage.DefaultConfig(),
		Viewport: viewport.DefaultLimits(),
		Layout:   layout.DefaultMetrics(),
		Cache:    Cache{Enabled: true, TTL: 30 * 24 * time.Hour},
	}
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "kintree", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "kintree", "config.toml"), nil
}

// Load reads the config at path over the defaults. An empty path means
// [Path]. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if stderrors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown setting %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := errors.ValidateKey(c.Storage.Key); err != nil {
		return err
	}
	v := c.Viewport
	if v.Min <= 0 || v.Max < v.Min {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport scale range [%g, %g] is invalid", v.Min, v.Max)
	}
	if v.Step <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport step must be positive")
	}
	l := c.Layout
	if l.CardWidth <= 0 || l.CardHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout card size must be positive")
	}
	if l.SpouseGap < 0 || l.SiblingGap < 0 || l.LevelGap < 0 || l.Margin < 0 || l.UnionSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout gaps cannot be negative")
	}
	if c.Connectors.Interval < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "connectors interval cannot be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl cannot be negative")
	}
	return nil
}

// Write encodes c as TOML to path, creating parent directories.
func Write(c Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}
