package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/powderbox/internal/material"
	"github.com/san-kum/powderbox/internal/physics"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

const (
	DefaultWidth    = 400
	DefaultHeight   = 400
	DefaultScale    = 2
	DefaultTPS      = 60
	DefaultDt       = 1.0 / 60.0
	DefaultSubsteps = 4
	DefaultGravity  = 500.0
	DefaultSprite   = "pixel"
	DefaultBrush    = "URAN"

	// PaletteSize is the number of colours a spawned particle picks from.
	PaletteSize = 7
)

var (
	DefaultBackground = Color{0x29, 0x24, 0x2b, 0xff}

	DefaultPalette = []Color{
		{0xf2, 0x93, 0xb1, 0xff}, // light pink
		{0xed, 0x51, 0x81, 0xff}, // pink
		{0xe8, 0x2c, 0x45, 0xff}, // red
		{0x34, 0x56, 0x9d, 0xff}, // blue
		{0xff, 0xf9, 0x75, 0xff}, // yellow
		{0xff, 0xea, 0x70, 0xff}, // dark yellow
		{0xf8, 0xdb, 0x81, 0xff}, // orange
	}
)

// Config is built once at startup and not modified afterwards.
type Config struct {
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Scale      int           `yaml:"scale"`
	TPS        int           `yaml:"tps"`
	Dt         float64       `yaml:"dt"`
	Substeps   int           `yaml:"substeps"`
	Gravity    GravityConfig `yaml:"gravity"`
	Solver     SolverConfig  `yaml:"solver"`
	Background Color         `yaml:"background"`
	Palette    []Color       `yaml:"palette"`
	Sprite     string        `yaml:"sprite"`
	Brush      string        `yaml:"brush"`
	Seed       uint64        `yaml:"seed"`
}

type GravityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SolverConfig struct {
	Iterations    int     `yaml:"iterations"`
	CollisionSlop float64 `yaml:"collision_slop"`
	SleepTime     float64 `yaml:"sleep_time"`
	Damping       float64 `yaml:"damping"`
}

func Default() *Config {
	palette := make([]Color, len(DefaultPalette))
	copy(palette, DefaultPalette)
	return &Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Scale:    DefaultScale,
		TPS:      DefaultTPS,
		Dt:       DefaultDt,
		Substeps: DefaultSubsteps,
		Gravity:  GravityConfig{Y: DefaultGravity},
		Solver: SolverConfig{
			Iterations:    10,
			CollisionSlop: 0.1,
			SleepTime:     0.5,
			Damping:       1.0,
		},
		Background: DefaultBackground,
		Palette:    palette,
		Sprite:     DefaultSprite,
		Brush:      DefaultBrush,
	}
}

// Load reads a yaml file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadOver(path, Default())
}

// LoadOver reads a yaml file on top of base. Keys missing from the file keep
// the values of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	cfg.Palette = append([]Color(nil), base.Palette...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Encode writes cfg as yaml to w.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Scale < 1:
		return fmt.Errorf("%w: scale must be at least 1, got %d", ErrInvalidConfig, c.Scale)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalidConfig, c.TPS)
	case !(c.Dt > 0) || math.IsInf(c.Dt, 0):
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, c.Dt)
	case c.Substeps < 1:
		return fmt.Errorf("%w: substeps must be at least 1, got %d", ErrInvalidConfig, c.Substeps)
	case !finite(c.Gravity.X) || !finite(c.Gravity.Y):
		return fmt.Errorf("%w: gravity must be finite", ErrInvalidConfig)
	case c.Solver.Iterations < 1:
		return fmt.Errorf("%w: solver iterations must be at least 1, got %d", ErrInvalidConfig, c.Solver.Iterations)
	case c.Solver.CollisionSlop < 0:
		return fmt.Errorf("%w: collision slop must not be negative", ErrInvalidConfig)
	case !(c.Solver.Damping > 0 && c.Solver.Damping <= 1):
		return fmt.Errorf("%w: damping must be in (0, 1], got %f", ErrInvalidConfig, c.Solver.Damping)
	case len(c.Palette) != PaletteSize:
		return fmt.Errorf("%w: palette needs exactly %d colours, got %d", ErrInvalidConfig, PaletteSize, len(c.Palette))
	}
	if _, err := material.Parse(c.Brush); err != nil {
		return fmt.Errorf("%w: brush: %v", ErrInvalidConfig, err)
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func (c *Config) GravityVec() mgl64.Vec2 { return mgl64.Vec2{c.Gravity.X, c.Gravity.Y} }

// BrushVariant returns the starting material. Validate guarantees it parses;
// an unparsable brush falls back to uranium.
func (c *Config) BrushVariant() material.Variant {
	v, err := material.Parse(c.Brush)
	if err != nil {
		return material.Uranium
	}
	return v
}

func (c *Config) PaletteRGBA() []color.RGBA {
	out := make([]color.RGBA, len(c.Palette))
	for i, p := range c.Palette {
		out[i] = p.RGBA()
	}
	return out
}

// PhysicsParams maps the arena and solver settings onto the physics world.
func (c *Config) PhysicsParams() physics.Params {
	return physics.Params{
		Width:         float64(c.Width),
		Height:        float64(c.Height),
		Substeps:      c.Substeps,
		Iterations:    c.Solver.Iterations,
		CollisionSlop: c.Solver.CollisionSlop,
		SleepTime:     c.Solver.SleepTime,
		Damping:       c.Solver.Damping,
	}
}

// Color is an opaque RGBA colour written as a hex string in yaml.
type Color color.RGBA

func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: colour %q: %v", ErrInvalidConfig, s, err)
	}
	r, g, b := c.RGB255()
	return Color{r, g, b, 0xff}, nil
}

func (c Color) RGBA() color.RGBA { return color.RGBA(c) }

func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

func (c Color) MarshalYAML() (interface{}, error) { return c.Hex(), nil }

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
