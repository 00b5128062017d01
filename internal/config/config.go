package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Zuo-Peng/chatstats/internal/render"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	Sort   render.SortBy `toml:"sort" validate:"oneof=messages words"`
	Pretty bool          `toml:"pretty"`
	Color  string        `toml:"color" validate:"oneof=auto always never"`

	// Path is the file the values were read from, empty for defaults.
	Path string `toml:"-"`
}

var validate = validator.New()

func Default() *Config {
	return &Config{
		Sort:  render.SortMessages,
		Color: ColorAuto,
	}
}

// DefaultPath is ~/.config/chatstats/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chatstats", "config.toml"), nil
}

// Load returns the defaults overlaid with the TOML file at path. An empty
// path means DefaultPath, which may be absent; an explicit path must exist.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			// no home directory, nothing to read
			return cfg, nil
		}
		path = p
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.Path = path
	return cfg, nil
}

// UseColor resolves the color setting against whether output is a terminal.
func (c *Config) UseColor(isTerminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}
