package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/folio/internal/tui"
	"github.com/matzehuels/folio/pkg/canvas"
	"github.com/matzehuels/folio/pkg/desktop"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/motion"
)

// fileConfig is the on-disk configuration. Zero values keep the defaults.
//
//	[desktop]
//	catalog = "~/apps.toml"
//	icon_width = 80
//	icon_height = 100
//	margin = 10
//	fps = 60
//	cell_width = 8
//	cell_height = 20
//	double_click_ms = 400
//	drag_threshold = 4
//
//	[spring]
//	stiffness = 300
//	damping = 30
//	mass = 0.8
//
//	[server]
//	addr = ":8080"
type fileConfig struct {
	Desktop desktopSection `toml:"desktop"`
	Spring  motion.Profile `toml:"spring"`
	Server  serverSection  `toml:"server"`
}

type desktopSection struct {
	Catalog       string   `toml:"catalog"`
	IconWidth     float64  `toml:"icon_width"`
	IconHeight    float64  `toml:"icon_height"`
	Margin        *float64 `toml:"margin"`
	FPS           int      `toml:"fps"`
	CellWidth     float64  `toml:"cell_width"`
	CellHeight    float64  `toml:"cell_height"`
	DoubleClickMS int      `toml:"double_click_ms"`
	DragThreshold *float64 `toml:"drag_threshold"`
}

type serverSection struct {
	Addr string `toml:"addr"`
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/folio/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads path, or the default location when path is empty. A
// missing default file yields an empty config; a missing explicit file is
// an error.
func loadConfig(path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return &fileConfig{}, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s not found", path)
			}
			return &fileConfig{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config %s", path)
	}
	return &cfg, nil
}

// =============================================================================
// Conversions
// =============================================================================

// desktopConfig merges the file settings over the defaults.
func (f *fileConfig) desktopConfig() desktop.Config {
	cfg := desktop.DefaultConfig()
	d := f.Desktop
	if d.IconWidth > 0 {
		cfg.Footprint.Width = d.IconWidth
	}
	if d.IconHeight > 0 {
		cfg.Footprint.Height = d.IconHeight
	}
	if d.Margin != nil {
		cfg.Margin = *d.Margin
	}
	if d.FPS > 0 {
		cfg.FPS = d.FPS
	}
	if d.DoubleClickMS > 0 {
		cfg.DoubleClick = time.Duration(d.DoubleClickMS) * time.Millisecond
	}
	if d.DragThreshold != nil {
		cfg.DragThreshold = *d.DragThreshold
	}
	if f.Spring.Stiffness > 0 {
		cfg.Spring.Stiffness = f.Spring.Stiffness
	}
	if f.Spring.Damping > 0 {
		cfg.Spring.Damping = f.Spring.Damping
	}
	if f.Spring.Mass > 0 {
		cfg.Spring.Mass = f.Spring.Mass
	}
	return cfg
}

// cell returns the terminal cell size in pixels.
func (f *fileConfig) cell() canvas.Size {
	cell := tui.DefaultCell
	if f.Desktop.CellWidth > 0 {
		cell.Width = f.Desktop.CellWidth
	}
	if f.Desktop.CellHeight > 0 {
		cell.Height = f.Desktop.CellHeight
	}
	return cell
}

// addr returns the listen address.
func (f *fileConfig) addr() string {
	if f.Server.Addr != "" {
		return f.Server.Addr
	}
	return defaultAddr
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
