package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/shapes"
	"github.com/san-kum/ballsim/internal/viz"
	"github.com/san-kum/ballsim/internal/vmath"
)

const background = "#0a0a0a"

// CanvasToSVG converts a Braille canvas to SVG, one dot per lit
// sub-pixel in its cell's color.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	header(&sb, width, height)

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			fill := canvas.Colors[row][col]
			if fill.A == 0 {
				fill = color.RGBA{0, 255, 0, 255}
			}
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", cx, cy, dotRadius, viz.HexColor(fill))
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SceneToSVG draws decor and bodies as vector shapes in world coordinates.
func SceneToSVG(width, height float64, decor []shapes.Drawable, bodies []dynamo.Body) string {
	s := &svgSurface{}
	header(&s.sb, width, height)
	shapes.DrawFrame(s, decor, bodies)
	s.sb.WriteString("</svg>")
	return s.sb.String()
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// svgSurface appends one element per draw call.
type svgSurface struct {
	sb strings.Builder
}

func paint(c color.RGBA) string {
	if c.A == 0 {
		return "none"
	}
	return viz.HexColor(c)
}

func opacity(c color.RGBA) string {
	if c.A == 0 || c.A == 255 {
		return ""
	}
	return fmt.Sprintf(` opacity="%.2f"`, float64(c.A)/255)
}

// Clear is a no-op; the header already paints the background.
func (s *svgSurface) Clear() {}

func (s *svgSurface) FillCircle(c vmath.Vec2, r float64, col color.RGBA) {
	fmt.Fprintf(&s.sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"%s/>`+"\n", c.X, c.Y, r, paint(col), opacity(col))
}

func (s *svgSurface) StrokeCircle(c vmath.Vec2, r float64, col color.RGBA) {
	fmt.Fprintf(&s.sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="2"%s/>`+"\n", c.X, c.Y, r, paint(col), opacity(col))
}

func (s *svgSurface) FillRect(p vmath.Vec2, w, h float64, col color.RGBA) {
	fmt.Fprintf(&s.sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"%s/>`+"\n", p.X, p.Y, w, h, paint(col), opacity(col))
}

func (s *svgSurface) StrokeRect(p vmath.Vec2, w, h float64, col color.RGBA) {
	fmt.Fprintf(&s.sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s"%s/>`+"\n", p.X, p.Y, w, h, paint(col), opacity(col))
}

func (s *svgSurface) Polyline(points []vmath.Vec2, col color.RGBA) {
	if len(points) == 0 {
		return
	}
	s.sb.WriteString(`<path fill="none" stroke="` + paint(col) + `" stroke-width="1.5" d="M`)
	for i, p := range points {
		if i == 0 {
			fmt.Fprintf(&s.sb, "%.1f,%.1f", p.X, p.Y)
		} else {
			fmt.Fprintf(&s.sb, " L%.1f,%.1f", p.X, p.Y)
		}
	}
	s.sb.WriteString(`"/>` + "\n")
}

func (s *svgSurface) Image(path string, p vmath.Vec2, w, h float64) {
	fmt.Fprintf(&s.sb, `<image href="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n", xmlEscape(path), p.X, p.Y, w, h)
}

func xmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace(s)
}

// Trails turns recorded frames into one polyline per body, following each
// body from the frame it first appears in.
func Trails(frames []dynamo.Frame) []shapes.Drawable {
	var lines []*shapes.Polyline
	for _, f := range frames {
		for i, b := range f.Bodies {
			for len(lines) <= i {
				lines = append(lines, &shapes.Polyline{})
			}
			lines[i].Color = b.BorderColor
			lines[i].AddPoint(b.Pos)
		}
	}
	out := make([]shapes.Drawable, len(lines))
	for i, l := range lines {
		out[i] = l
	}
	return out
}
