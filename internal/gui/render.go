package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballsim/internal/vmath"
)

// Surface draws shapes with raylib. Sprite textures are loaded on first
// use and kept until Unload.
type Surface struct {
	background rl.Color
	textures   map[string]rl.Texture2D
}

func NewSurface(bg rl.Color) *Surface {
	return &Surface{background: bg, textures: make(map[string]rl.Texture2D)}
}

func toRL(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func vec(v vmath.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func (s *Surface) Clear() { rl.ClearBackground(s.background) }

func (s *Surface) FillCircle(c vmath.Vec2, r float64, col color.RGBA) {
	rl.DrawCircleV(vec(c), float32(r), toRL(col))
}

func (s *Surface) StrokeCircle(c vmath.Vec2, r float64, col color.RGBA) {
	rl.DrawCircleLines(int32(c.X), int32(c.Y), float32(r), toRL(col))
}

func (s *Surface) FillRect(p vmath.Vec2, w, h float64, col color.RGBA) {
	rl.DrawRectangleV(vec(p), rl.NewVector2(float32(w), float32(h)), toRL(col))
}

func (s *Surface) StrokeRect(p vmath.Vec2, w, h float64, col color.RGBA) {
	rl.DrawRectangleLinesEx(rl.NewRectangle(float32(p.X), float32(p.Y), float32(w), float32(h)), 1, toRL(col))
}

func (s *Surface) Polyline(points []vmath.Vec2, col color.RGBA) {
	if len(points) < 2 {
		return
	}
	pts := make([]rl.Vector2, len(points))
	for i, p := range points {
		pts[i] = vec(p)
	}
	rl.DrawLineStrip(pts, toRL(col))
}

// Image draws the texture at path stretched to w x h. A texture that
// fails to load is drawn as an outlined box.
func (s *Surface) Image(path string, p vmath.Vec2, w, h float64) {
	tex, ok := s.textures[path]
	if !ok {
		tex = rl.LoadTexture(path)
		s.textures[path] = tex
	}
	dst := rl.NewRectangle(float32(p.X), float32(p.Y), float32(w), float32(h))
	if tex.ID == 0 {
		rl.DrawRectangleLinesEx(dst, 1, ColTextDim)
		return
	}
	src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (s *Surface) Unload() {
	for path, tex := range s.textures {
		if tex.ID != 0 {
			rl.UnloadTexture(tex)
		}
		delete(s.textures, path)
	}
}
