package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]func() *Config{
	// one floating ball; everything else comes from clicks
	"default": DefaultConfig,
	"newton": func() *Config {
		cfg := DefaultConfig()
		cfg.Bodies = []BodyConfig{
			{X: -5, Y: 0, VX: 5, Radius: 10, Mass: 1, Color: "#ff6b6b"},
			{X: 20, Y: 0, VX: -5, Radius: 10, Mass: 1, Color: "#feca57"},
		}
		cfg.World = WorldConfig{Width: 200, Height: 100}
		return cfg
	},
	"cradle": func() *Config {
		cfg := DefaultConfig()
		cfg.Bodies = []BodyConfig{{X: 100, Y: 360, VX: 12, Radius: 40, Mass: 1, Color: "#ff9ff3"}}
		for i := 0; i < 5; i++ {
			cfg.Bodies = append(cfg.Bodies, BodyConfig{
				X: 400 + float64(i)*81, Y: 360, Radius: 40, Mass: 1,
			})
		}
		return cfg
	},
	"rain": func() *Config {
		cfg := DefaultConfig()
		cfg.Bodies = nil
		for row := 0; row < 3; row++ {
			for col := 0; col < 8; col++ {
				cfg.Bodies = append(cfg.Bodies, BodyConfig{
					X:        120 + float64(col)*140 + float64(row%2)*40,
					Y:        -float64(row) * 150,
					Radius:   30,
					Mass:     1 + float64(col%3),
					Gravity:  1,
					Friction: 1,
				})
			}
		}
		cfg.Bodies = append(cfg.Bodies, BodyConfig{X: 640, Y: 600, Radius: 120, Mass: 50, Friction: 1, Color: "#0077be"})
		return cfg
	},
	"billiard": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.TerminalVelocity = 400
		cfg.Bodies = []BodyConfig{{X: 200, Y: 360, VX: 25, Radius: 20, Mass: 1, Friction: 1, Color: "#ffffff"}}
		for row := 0; row < 4; row++ {
			for k := 0; k <= row; k++ {
				cfg.Bodies = append(cfg.Bodies, BodyConfig{
					X:        800 + float64(row)*35,
					Y:        360 + (float64(k)-float64(row)/2)*41,
					Radius:   20,
					Mass:     1,
					Friction: 1,
					Color:    "#ff4757",
				})
			}
		}
		cfg.Decor = []ShapeConfig{
			{Kind: "rect", X: 100, Y: 160, Width: 1080, Height: 400, Color: "#0a3d1a", BorderColor: "#5fd068"},
		}
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset.
func GetPreset(name string) (*Config, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return fn(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
