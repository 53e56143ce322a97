package viz

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ballsim/internal/vmath"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille grid with one color per cell. Drawing calls made
// through the shapes.Surface methods take world coordinates and go through
// View; Set, DrawLine and DrawCircle take sub-pixel coordinates.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
	View          Viewport

	pen color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]color.RGBA, h),
		View:   Viewport{Scale: 1},
		pen:    color.RGBA{255, 255, 255, 255},
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set lights the sub-pixel (x, y) in the current pen color. The canvas is
// Width*2 by Height*4 sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][col] = c.pen
}

func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// IsSet reports whether sub-pixel (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// SetPen sets the color used by subsequent sub-pixel writes.
func (c *Canvas) SetPen(col color.RGBA) { c.pen = col }

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.RGBA{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle outlines a circle with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		c.Set(cx+x, cy+y)
		c.Set(cx+y, cy+x)
		c.Set(cx-y, cy+x)
		c.Set(cx-x, cy+y)
		c.Set(cx-x, cy-y)
		c.Set(cx-y, cy-x)
		c.Set(cx+y, cy-x)
		c.Set(cx+x, cy-y)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// DrawDisc fills a circle span by span.
func (c *Canvas) DrawDisc(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	for dy := -r; dy <= r; dy++ {
		half := int(math.Sqrt(float64(r*r - dy*dy)))
		for dx := -half; dx <= half; dx++ {
			c.Set(cx+dx, cy+dy)
		}
	}
}

func (c *Canvas) drawBox(x0, y0, x1, y1 int, fill bool) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	if fill {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c.Set(x, y)
			}
		}
		return
	}
	c.DrawLine(x0, y0, x1, y0)
	c.DrawLine(x1, y0, x1, y1)
	c.DrawLine(x1, y1, x0, y1)
	c.DrawLine(x0, y1, x0, y0)
}

// visible reports whether col should be drawn at all; fully transparent
// colors leave the canvas untouched.
func (c *Canvas) visible(col color.RGBA) bool {
	if col.A == 0 {
		return false
	}
	c.pen = col
	return true
}

func (c *Canvas) FillCircle(center vmath.Vec2, radius float64, col color.RGBA) {
	if !c.visible(col) {
		return
	}
	x, y := c.View.ToSub(center)
	c.DrawDisc(x, y, c.View.Length(radius))
}

func (c *Canvas) StrokeCircle(center vmath.Vec2, radius float64, col color.RGBA) {
	if !c.visible(col) {
		return
	}
	x, y := c.View.ToSub(center)
	c.DrawCircle(x, y, c.View.Length(radius))
}

func (c *Canvas) FillRect(pos vmath.Vec2, w, h float64, col color.RGBA) {
	if !c.visible(col) {
		return
	}
	x0, y0 := c.View.ToSub(pos)
	x1, y1 := c.View.ToSub(pos.Add(vmath.V(w, h)))
	c.drawBox(x0, y0, x1, y1, true)
}

func (c *Canvas) StrokeRect(pos vmath.Vec2, w, h float64, col color.RGBA) {
	if !c.visible(col) {
		return
	}
	x0, y0 := c.View.ToSub(pos)
	x1, y1 := c.View.ToSub(pos.Add(vmath.V(w, h)))
	c.drawBox(x0, y0, x1, y1, false)
}

func (c *Canvas) Polyline(points []vmath.Vec2, col color.RGBA) {
	if len(points) == 0 || !c.visible(col) {
		return
	}
	px, py := c.View.ToSub(points[0])
	c.Set(px, py)
	for _, p := range points[1:] {
		x, y := c.View.ToSub(p)
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

// Image has no pixels to show in a terminal, so it outlines the sprite's
// box with a cross through it.
func (c *Canvas) Image(path string, pos vmath.Vec2, w, h float64) {
	c.pen = color.RGBA{136, 136, 136, 255}
	x0, y0 := c.View.ToSub(pos)
	x1, y1 := c.View.ToSub(pos.Add(vmath.V(w, h)))
	c.drawBox(x0, y0, x1, y1, false)
	c.DrawLine(x0, y0, x1, y1)
	c.DrawLine(x0, y1, x1, y0)
}

// String returns the grid without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the grid with each run of same-colored cells styled by
// lipgloss.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			b.WriteString(paint(string(row[start:j]), c.Colors[i][start]))
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func paint(s string, col color.RGBA) string {
	if col.A == 0 {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(HexColor(col))).Render(s)
}

// HexColor formats col as #rrggbb.
func HexColor(col color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
