// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	UI   UIConfig   `toml:"ui"`
	Grid GridConfig `toml:"grid"`
	Data DataConfig `toml:"data"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// Theme selects the color scheme for the grid chrome.
	// Defaults to "dark" if unset.
	Theme string `toml:"theme"`
}

// ThemeOrDefault returns the configured theme or "dark" if unset.
func (u UIConfig) ThemeOrDefault() string {
	if u.Theme == "" {
		return "dark"
	}
	return u.Theme
}

// GridConfig holds grid behavior settings.
type GridConfig struct {
	// Direction is the text direction, "ltr" or "rtl". Defaults to "ltr".
	Direction string `toml:"direction"`
	// RowHeight is the height of each data row in terminal cells.
	RowHeight int `toml:"row_height"`
	// Virtualized toggles column/row virtualization. On unless "off".
	Virtualized string `toml:"virtualized"`
	// GroupBy lists column keys to group rows by, outermost first.
	GroupBy []string `toml:"group_by"`
}

// DirectionOrDefault returns the configured direction or "ltr" if unset.
func (g GridConfig) DirectionOrDefault() string {
	if g.Direction == "" {
		return "ltr"
	}
	return g.Direction
}

// RowHeightOrDefault returns the configured row height or 1 if unset.
func (g GridConfig) RowHeightOrDefault() int {
	if g.RowHeight <= 0 {
		return 1
	}
	return g.RowHeight
}

// VirtualizationEnabled reports whether virtualization is on.
func (g GridConfig) VirtualizationEnabled() bool {
	return g.Virtualized != "off"
}

// DataConfig holds row-source settings.
type DataConfig struct {
	// DBPath is the SQLite database path. Defaults to tasks.db in the
	// data directory.
	DBPath string `toml:"db_path"`
}

// Load reads configuration from a TOML file and applies environment variable overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	switch c.UI.Theme {
	case "", "dark", "light":
	default:
		errs = append(errs, fmt.Errorf("ui.theme=%q must be dark or light", c.UI.Theme))
	}

	switch c.Grid.Direction {
	case "", "ltr", "rtl":
	default:
		errs = append(errs, fmt.Errorf("grid.direction=%q must be ltr or rtl", c.Grid.Direction))
	}

	if c.Grid.RowHeight < 0 {
		errs = append(errs, fmt.Errorf("grid.row_height=%d must not be negative", c.Grid.RowHeight))
	}

	switch c.Grid.Virtualized {
	case "", "on", "off":
	default:
		errs = append(errs, fmt.Errorf("grid.virtualized=%q must be on or off", c.Grid.Virtualized))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"DATAGRID_DB_PATH", func(v string) {
			if v != "" {
				cfg.Data.DBPath = v
			}
		}},
		{"DATAGRID_THEME", func(v string) {
			if v != "" {
				cfg.UI.Theme = v
			}
		}},
		{"DATAGRID_DIRECTION", func(v string) {
			if v != "" {
				cfg.Grid.Direction = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the datagrid data directory (~/.config/datagrid).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "datagrid"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
