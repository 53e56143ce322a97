// Package shapes separates what can be drawn from the physics. Each shape
// kind implements Drawable on its own; a renderer implements Surface. The
// physics core imports neither.
package shapes

import (
	"image/color"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/vmath"
)

// Surface is a render target in world coordinates.
type Surface interface {
	Clear()
	FillCircle(center vmath.Vec2, radius float64, c color.RGBA)
	StrokeCircle(center vmath.Vec2, radius float64, c color.RGBA)
	FillRect(pos vmath.Vec2, w, h float64, c color.RGBA)
	StrokeRect(pos vmath.Vec2, w, h float64, c color.RGBA)
	Polyline(points []vmath.Vec2, c color.RGBA)
	Image(path string, pos vmath.Vec2, w, h float64)
}

type Drawable interface {
	Draw(s Surface)
}

type Circle struct {
	Pos         vmath.Vec2
	Radius      float64
	Color       color.RGBA
	BorderColor color.RGBA
}

func (c Circle) Draw(s Surface) {
	s.FillCircle(c.Pos, c.Radius, c.Color)
	s.StrokeCircle(c.Pos, c.Radius, c.BorderColor)
}

func (c *Circle) Move(d vmath.Vec2) { c.Pos = c.Pos.Add(d) }

// BodyCircle is how a body looks.
func BodyCircle(b dynamo.Body) Circle {
	return Circle{Pos: b.Pos, Radius: b.Radius, Color: b.Color, BorderColor: b.BorderColor}
}

type Rectangle struct {
	Pos           vmath.Vec2
	Width, Height float64
	Color         color.RGBA
	BorderColor   color.RGBA
}

func (r Rectangle) Draw(s Surface) {
	s.FillRect(r.Pos, r.Width, r.Height, r.Color)
	s.StrokeRect(r.Pos, r.Width, r.Height, r.BorderColor)
}

func (r *Rectangle) Move(d vmath.Vec2) { r.Pos = r.Pos.Add(d) }

// Polyline is an open path; an empty one draws nothing.
type Polyline struct {
	Points []vmath.Vec2
	Color  color.RGBA
}

func (p *Polyline) AddPoint(pt vmath.Vec2) { p.Points = append(p.Points, pt) }

// RemovePoint drops the most recently added point.
func (p *Polyline) RemovePoint() {
	if len(p.Points) > 0 {
		p.Points = p.Points[:len(p.Points)-1]
	}
}

func (p *Polyline) Draw(s Surface) {
	if len(p.Points) == 0 {
		return
	}
	s.Polyline(p.Points, p.Color)
}

// Sprite is an image asset drawn at Pos scaled to Width x Height. Loading
// the asset is the surface's business.
type Sprite struct {
	Path          string
	Pos           vmath.Vec2
	Width, Height float64
}

func (sp Sprite) Draw(s Surface) {
	s.Image(sp.Path, sp.Pos, sp.Width, sp.Height)
}

func (sp *Sprite) Move(d vmath.Vec2) { sp.Pos = sp.Pos.Add(d) }

// DrawFrame clears s, paints the decor, then one circle per body.
func DrawFrame(s Surface, decor []Drawable, bodies []dynamo.Body) {
	s.Clear()
	for _, d := range decor {
		d.Draw(s)
	}
	for _, b := range bodies {
		BodyCircle(b).Draw(s)
	}
}
