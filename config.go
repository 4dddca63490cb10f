package kala

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrConfigFormat is returned for configuration files with an unsupported
// extension.
var ErrConfigFormat = errors.New("kala: unsupported config format")

// RunConfig configures the application shell.
type RunConfig struct {
	// Title is the main window title.
	Title string `toml:"title" yaml:"title"`
	// Width and Height are the main window client size in pixels.
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
	// Background is the clear color of the main window.
	Background Color `toml:"background" yaml:"background"`
	// VSync enables vertical sync.
	VSync bool `toml:"vsync" yaml:"vsync"`
	// TPS is the update rate in ticks per second.
	TPS int `toml:"tps" yaml:"tps"`
	// RunWhenUnfocused keeps redrawing while the window lacks focus.
	RunWhenUnfocused bool `toml:"run_when_unfocused" yaml:"run_when_unfocused"`
	// Debug enables frame stat logging.
	Debug bool `toml:"debug" yaml:"debug"`
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool `toml:"show_fps" yaml:"show_fps"`
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string `toml:"screenshot_dir" yaml:"screenshot_dir"`
	// FontPath optionally names a .kfont file loaded at startup.
	FontPath string `toml:"font" yaml:"font"`
	// WatchFonts hot-reloads fonts when their files change.
	WatchFonts bool `toml:"watch_fonts" yaml:"watch_fonts"`
	// Script optionally names a JSON test script driven by the shell.
	Script string `toml:"script" yaml:"script"`
}

// Default configuration values.
const (
	DefaultTitle         = "Kala"
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultTPS           = 60
	DefaultScreenshotDir = "screenshots"
)

// DefaultBackground is the clear color used when none is configured.
var DefaultBackground = Color{R: 0.1, G: 0.1, B: 0.12, A: 1}

// DefaultRunConfig returns a configuration with every default applied.
func DefaultRunConfig() RunConfig {
	var c RunConfig
	c.applyDefaults()
	return c
}

func (c *RunConfig) applyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.TPS <= 0 {
		c.TPS = DefaultTPS
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = DefaultScreenshotDir
	}
	if c.Background == (Color{}) {
		c.Background = DefaultBackground
	}
}

// LoadRunConfig reads a TOML (.toml) or YAML (.yaml, .yml) configuration file
// and fills unset fields with defaults. Unknown keys are rejected.
func LoadRunConfig(path string) (RunConfig, error) {
	var cfg RunConfig

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			// empty document
			err = nil
		}
	default:
		return cfg, fmt.Errorf("load config %s: %w: %q", path, ErrConfigFormat, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}
