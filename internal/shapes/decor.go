package shapes

import (
	"fmt"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/vmath"
)

// Decor builds the decorative shapes described in a config.
func Decor(shapes []config.ShapeConfig) ([]Drawable, error) {
	out := make([]Drawable, 0, len(shapes))
	for i, sc := range shapes {
		col, err := config.ParseColor(sc.Color)
		if err != nil {
			return nil, fmt.Errorf("decor %d: %w", i, err)
		}
		border, err := config.ParseColor(sc.BorderColor)
		if err != nil {
			return nil, fmt.Errorf("decor %d: %w", i, err)
		}
		pos := vmath.V(sc.X, sc.Y)

		switch sc.Kind {
		case "rect":
			out = append(out, Rectangle{Pos: pos, Width: sc.Width, Height: sc.Height, Color: col, BorderColor: border})
		case "line":
			line := &Polyline{Color: col}
			for _, p := range sc.Points {
				line.AddPoint(vmath.V(p[0], p[1]))
			}
			out = append(out, line)
		case "sprite":
			out = append(out, Sprite{Path: sc.Image, Pos: pos, Width: sc.Width, Height: sc.Height})
		default:
			return nil, fmt.Errorf("%w: decor %d has unknown kind %q", config.ErrInvalid, i, sc.Kind)
		}
	}
	return out, nil
}
