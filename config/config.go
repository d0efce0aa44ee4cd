// Package config holds the viewer settings. Values are read from a YAML file;
// anything the file leaves out keeps its default.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// --- Window ---
	DefaultWidth  = 1000
	DefaultHeight = 800
	DefaultTitle  = "Scroll Map"

	// --- Viewport ---
	DefaultBasePPU   = 100.0 // pixels per world unit at scale 1
	DefaultMinScale  = 0.00001
	DefaultMaxScale  = 100000.0
	DefaultFitMargin = 1.5

	// --- Map ---
	DefaultNodesFile = "nodes.txt"
	DefaultStateFile = "view.yaml"
	DefaultFontFile  = "ttf/IBMPlexMono/IBMPlexMono-Regular.ttf"
	DefaultText      = "sample text"
	NodeMarkerSize   = 10.0
	GridSize         = 1.0
)

// Colors are "#rrggbb" or "#rrggbbaa".
type Colors struct {
	Background string `yaml:"background"`
	Grid       string `yaml:"grid"`
	Origin     string `yaml:"origin"`
	Box        string `yaml:"box"`
	Node       string `yaml:"node"`
	Line       string `yaml:"line"`
	Text       string `yaml:"text"`
	Panel      string `yaml:"panel"`
	Warning    string `yaml:"warning"`
}

type Config struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Title     string  `yaml:"title"`
	BasePPU   float64 `yaml:"base_ppu"`
	MinScale  float64 `yaml:"min_scale"`
	MaxScale  float64 `yaml:"max_scale"`
	FitMargin float64 `yaml:"fit_margin"`
	GridSize  float64 `yaml:"grid_size"`

	NodesFile string `yaml:"nodes_file"`
	StateFile string `yaml:"state_file"`
	FontFile  string `yaml:"font_file"`
	Text      string `yaml:"text"`

	Colors Colors `yaml:"colors"`
}

func Default() Config {
	return Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Title:     DefaultTitle,
		BasePPU:   DefaultBasePPU,
		MinScale:  DefaultMinScale,
		MaxScale:  DefaultMaxScale,
		FitMargin: DefaultFitMargin,
		GridSize:  GridSize,
		NodesFile: DefaultNodesFile,
		StateFile: DefaultStateFile,
		FontFile:  DefaultFontFile,
		Text:      DefaultText,
		Colors: Colors{
			Background: "#202020",
			Grid:       "#ffffff14",
			Origin:     "#ff646496",
			Box:        "#404040",
			Node:       "#ff0040",
			Line:       "#0000ff",
			Text:       "#ffffff",
			Panel:      "#282828dc",
			Warning:    "#ffc832",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(cfg Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		return err
	}
	return enc.Close()
}

// YAML encodes c in the config file format.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(&c)
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.BasePPU <= 0 {
		return fmt.Errorf("base_ppu must be positive, got %v", c.BasePPU)
	}
	if c.MinScale <= 0 || c.MinScale >= c.MaxScale {
		return fmt.Errorf("need 0 < min_scale < max_scale, got %v and %v", c.MinScale, c.MaxScale)
	}
	if c.FitMargin < 1 {
		return fmt.Errorf("fit_margin must be at least 1, got %v", c.FitMargin)
	}
	if c.GridSize < 0 {
		return fmt.Errorf("grid_size must not be negative, got %v", c.GridSize)
	}
	for name, hex := range c.Colors.named() {
		if _, err := ParseColor(hex); err != nil {
			return fmt.Errorf("colors.%s: %w", name, err)
		}
	}
	return nil
}

func (c Colors) named() map[string]string {
	return map[string]string{
		"background": c.Background,
		"grid":       c.Grid,
		"origin":     c.Origin,
		"box":        c.Box,
		"node":       c.Node,
		"line":       c.Line,
		"text":       c.Text,
		"panel":      c.Panel,
		"warning":    c.Warning,
	}
}

// ParseColor decodes "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	var c color.NRGBA
	c.A = 0xff
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("bad length")
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// Color returns the parsed value of a validated color string, or fallback.
func Color(s string, fallback color.NRGBA) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
