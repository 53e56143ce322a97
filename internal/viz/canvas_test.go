package viz

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/ballsim/internal/shapes"
	"github.com/san-kum/ballsim/internal/vmath"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Fatal("expected (3,5) set")
	}
	if c.Grid[1][1] != blank|0x10 {
		t.Errorf("cell = %U", c.Grid[1][1])
	}
	c.Unset(3, 5)
	if c.IsSet(3, 5) || c.Grid[1][1] != blank {
		t.Errorf("expected blank cell, got %U", c.Grid[1][1])
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 8)
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != blank && r != '\n' }) {
		t.Errorf("out of range writes leaked:\n%s", c.String())
	}
}

func TestCanvasDrawCircleSymmetric(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 8)

	for _, p := range [][2]int{{28, 20}, {12, 20}, {20, 28}, {20, 12}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected (%d,%d) on the circle", p[0], p[1])
		}
	}
	if c.IsSet(20, 20) {
		t.Error("outline should not fill the centre")
	}
}

func TestCanvasSurface(t *testing.T) {
	c := NewCanvas(40, 20)
	c.View = Viewport{Scale: 0.5}
	red := color.RGBA{255, 0, 0, 255}

	c.FillCircle(vmath.V(40, 40), 10, red)
	if !c.IsSet(20, 20) {
		t.Error("expected centre lit")
	}
	if c.Colors[20/4][20/2] != red {
		t.Errorf("cell color = %v", c.Colors[5][10])
	}

	c.Clear()
	c.FillRect(vmath.V(0, 0), 10, 10, color.RGBA{})
	if c.IsSet(0, 0) {
		t.Error("transparent fill should draw nothing")
	}

	c.Polyline([]vmath.Vec2{vmath.V(0, 0), vmath.V(20, 0)}, red)
	for x := 0; x <= 10; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("expected (%d,0) on the line", x)
		}
	}
}

func TestCanvasCircleBorderOverFill(t *testing.T) {
	c := NewCanvas(40, 20)
	c.View = Viewport{Scale: 0.5}
	fill := color.RGBA{255, 0, 0, 255}
	border := color.RGBA{0, 0, 255, 255}

	shapes.Circle{Pos: vmath.V(40, 40), Radius: 10, Color: fill, BorderColor: border}.Draw(c)

	// centre (20,20) and rim (25,20) in sub-pixels
	if got := c.Colors[20/4][20/2]; got != fill {
		t.Errorf("centre cell color = %v, want %v", got, fill)
	}
	if !c.IsSet(25, 20) {
		t.Fatal("expected rim lit")
	}
	if got := c.Colors[20/4][25/2]; got != border {
		t.Errorf("rim cell color = %v, want border %v", got, border)
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 1)
	c.SetPen(color.RGBA{0, 255, 0, 255})
	c.Set(0, 0)

	plain := c.String()
	if plain != string([]rune{blank | 0x1, blank, blank})+"\n" {
		t.Errorf("String() = %q", plain)
	}
	if !strings.Contains(c.Render(), string(rune(blank|0x1))) {
		t.Error("Render dropped the lit cell")
	}
}

func TestViewport(t *testing.T) {
	v := FitViewport(1280, 720, 80, 24)
	if math.Abs(v.Scale-0.125) > 1e-12 {
		t.Errorf("scale = %v, want 0.125", v.Scale)
	}

	w := v.CellToWorld(10, 5)
	x, y := v.ToSub(w)
	if x/2 != 10 || y/4 != 5 {
		t.Errorf("cell (10,5) -> %v -> sub (%d,%d)", w, x, y)
	}

	if got := v.Length(80); got != 10 {
		t.Errorf("Length(80) = %d", got)
	}

	if v := FitViewport(0, 720, 80, 24); v.Scale != 1 {
		t.Errorf("degenerate world scale = %v", v.Scale)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "minimal" {
		t.Error("unknown theme should fall back to minimal")
	}
	names := ThemeNames()
	last := names[len(names)-1]
	if NextTheme(last).Name != names[0] {
		t.Error("NextTheme should wrap")
	}
}
