package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/vmath"
)

const (
	DefaultGravity          = 1.0
	DefaultTerminalVelocity = 30.0
	DefaultRadius           = 50.0
	DefaultFPS              = 60
	DefaultTicks            = 600
	DefaultWidth            = 1280
	DefaultHeight           = 720
	DefaultColor            = "rgba(125, 125, 125)"
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalid       = errors.New("config: invalid value")
)

type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	World   WorldConfig   `yaml:"world"`
	Render  RenderConfig  `yaml:"render"`
	Bodies  []BodyConfig  `yaml:"bodies"`
	Decor   []ShapeConfig `yaml:"decor,omitempty"`
}

type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
}

// SpawnConfig is what a pointer press creates.
type SpawnConfig struct {
	Radius   float64 `yaml:"radius"`
	Gravity  float64 `yaml:"gravity"`
	Friction float64 `yaml:"friction"`
	Mass     float64 `yaml:"mass"`
	Color    string  `yaml:"color"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RenderConfig struct {
	FPS   int    `yaml:"fps"`
	Ticks int    `yaml:"ticks"`
	Theme string `yaml:"theme"`
}

type BodyConfig struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	VX          float64 `yaml:"vx"`
	VY          float64 `yaml:"vy"`
	Radius      float64 `yaml:"radius"`
	Mass        float64 `yaml:"mass"`
	Gravity     float64 `yaml:"gravity"`
	Friction    float64 `yaml:"friction"`
	Color       string  `yaml:"color,omitempty"`
	BorderColor string  `yaml:"border_color,omitempty"`
}

// UnmarshalYAML gives a body that omits mass the default of 1. An explicit
// mass: 0 is kept and rejected by validation.
func (b *BodyConfig) UnmarshalYAML(n *yaml.Node) error {
	type plain BodyConfig
	p := plain{Mass: 1}
	if err := n.Decode(&p); err != nil {
		return err
	}
	*b = BodyConfig(p)
	return nil
}

// ShapeConfig describes a decorative, non-physical shape. Kind is one of
// rect, line or sprite.
type ShapeConfig struct {
	Kind        string       `yaml:"kind"`
	X           float64      `yaml:"x"`
	Y           float64      `yaml:"y"`
	Width       float64      `yaml:"width,omitempty"`
	Height      float64      `yaml:"height,omitempty"`
	Points      [][2]float64 `yaml:"points,omitempty"`
	Image       string       `yaml:"image,omitempty"`
	Color       string       `yaml:"color,omitempty"`
	BorderColor string       `yaml:"border_color,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Gravity:          DefaultGravity,
			TerminalVelocity: DefaultTerminalVelocity,
		},
		Spawn: SpawnConfig{
			Radius:   DefaultRadius,
			Gravity:  1,
			Friction: 1,
			Mass:     1,
			Color:    DefaultColor,
		},
		World: WorldConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Render: RenderConfig{
			FPS:   DefaultFPS,
			Ticks: DefaultTicks,
			Theme: "minimal",
		},
		Bodies: []BodyConfig{
			{X: 500, Y: 500, Radius: DefaultRadius, Mass: 1, Gravity: 0, Friction: 1},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Bodies = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Constants().Validate(); err != nil {
		return err
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.Render.FPS)
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world size %vx%v", ErrInvalid, c.World.Width, c.World.Height)
	}
	if _, err := c.SpawnAt(vmath.Vec2{}); err != nil {
		return fmt.Errorf("spawn: %w", err)
	}
	if _, err := c.BodySpawns(); err != nil {
		return err
	}
	for i, s := range c.Decor {
		switch s.Kind {
		case "rect", "line", "sprite":
		default:
			return fmt.Errorf("%w: decor %d has unknown kind %q", ErrInvalid, i, s.Kind)
		}
	}
	return nil
}

func (c *Config) Constants() dynamo.Constants {
	return dynamo.Constants{
		Gravity:          c.Physics.Gravity,
		TerminalVelocity: c.Physics.TerminalVelocity,
	}
}

// SpawnAt returns the parameters of a body created by a pointer press at pos.
func (c *Config) SpawnAt(pos vmath.Vec2) (dynamo.SpawnParams, error) {
	col, err := ParseColor(c.Spawn.Color)
	if err != nil {
		return dynamo.SpawnParams{}, err
	}
	p := dynamo.SpawnParams{
		Pos:          pos,
		Radius:       c.Spawn.Radius,
		GravityCoef:  c.Spawn.Gravity,
		FrictionCoef: c.Spawn.Friction,
		Mass:         c.Spawn.Mass,
		Color:        col,
		BorderColor:  col,
	}
	if _, err := p.Body(c.Constants()); err != nil {
		return dynamo.SpawnParams{}, err
	}
	return p, nil
}

// BodySpawns converts the configured initial bodies.
func (c *Config) BodySpawns() ([]dynamo.SpawnParams, error) {
	out := make([]dynamo.SpawnParams, 0, len(c.Bodies))
	for i, b := range c.Bodies {
		col, err := ParseColor(b.Color)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		border, err := ParseColor(b.BorderColor)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		p := dynamo.SpawnParams{
			Pos:          vmath.V(b.X, b.Y),
			Vel:          vmath.V(b.VX, b.VY),
			Radius:       b.Radius,
			GravityCoef:  b.Gravity,
			FrictionCoef: b.Friction,
			Mass:         b.Mass,
			Color:        col,
			BorderColor:  border,
		}
		if _, err := p.Body(c.Constants()); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// NewSimulation builds a simulation holding the configured bodies.
func (c *Config) NewSimulation(opts ...dynamo.Option) (*dynamo.Simulation, error) {
	spawns, err := c.BodySpawns()
	if err != nil {
		return nil, err
	}
	s, err := dynamo.NewSimulation(c.Constants(), opts...)
	if err != nil {
		return nil, err
	}
	for i, p := range spawns {
		if _, err := s.Spawn(p); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}
	return s, nil
}
