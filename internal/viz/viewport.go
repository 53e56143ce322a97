package viz

import (
	"math"

	"github.com/san-kum/ballsim/internal/vmath"
)

// Viewport maps world coordinates onto canvas sub-pixels. Scale is
// sub-pixels per world unit; Origin is the world point at sub-pixel (0, 0).
type Viewport struct {
	Scale  float64
	Origin vmath.Vec2
}

// FitViewport scales a worldW x worldH world to fit a cols x rows canvas
// without distortion. Braille sub-pixels are roughly square.
func FitViewport(worldW, worldH float64, cols, rows int) Viewport {
	if worldW <= 0 || worldH <= 0 || cols <= 0 || rows <= 0 {
		return Viewport{Scale: 1}
	}
	sx := float64(cols*2) / worldW
	sy := float64(rows*4) / worldH
	return Viewport{Scale: math.Min(sx, sy)}
}

func (v Viewport) ToSub(p vmath.Vec2) (int, int) {
	d := p.Sub(v.Origin)
	return int(math.Round(d.X * v.Scale)), int(math.Round(d.Y * v.Scale))
}

// Length converts a world distance to sub-pixels.
func (v Viewport) Length(l float64) int {
	return int(math.Round(l * v.Scale))
}

// CellToWorld returns the world point at the middle of terminal cell
// (col, row).
func (v Viewport) CellToWorld(col, row int) vmath.Vec2 {
	if v.Scale == 0 {
		return v.Origin
	}
	x := (float64(col*2) + 1) / v.Scale
	y := (float64(row*4) + 2) / v.Scale
	return v.Origin.Add(vmath.V(x, y))
}
