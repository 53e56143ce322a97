package shapes

import (
	"errors"
	"fmt"
	"image/color"
	"testing"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/vmath"
)

type recorder struct {
	calls []string
}

func (r *recorder) Clear() { r.calls = append(r.calls, "clear") }
func (r *recorder) FillCircle(c vmath.Vec2, radius float64, col color.RGBA) {
	r.calls = append(r.calls, fmt.Sprintf("fill-circle %v %v", c, radius))
}
func (r *recorder) StrokeCircle(c vmath.Vec2, radius float64, col color.RGBA) {
	r.calls = append(r.calls, fmt.Sprintf("stroke-circle %v %v", c, radius))
}
func (r *recorder) FillRect(p vmath.Vec2, w, h float64, col color.RGBA) {
	r.calls = append(r.calls, fmt.Sprintf("fill-rect %v %vx%v", p, w, h))
}
func (r *recorder) StrokeRect(p vmath.Vec2, w, h float64, col color.RGBA) {
	r.calls = append(r.calls, fmt.Sprintf("stroke-rect %v %vx%v", p, w, h))
}
func (r *recorder) Polyline(pts []vmath.Vec2, col color.RGBA) {
	r.calls = append(r.calls, fmt.Sprintf("polyline %d", len(pts)))
}
func (r *recorder) Image(path string, p vmath.Vec2, w, h float64) {
	r.calls = append(r.calls, "image "+path)
}

func TestDrawFrameOrder(t *testing.T) {
	rec := &recorder{}
	decor := []Drawable{
		Rectangle{Pos: vmath.V(0, 0), Width: 10, Height: 5},
		Sprite{Path: "ball.png", Width: 8, Height: 8},
	}
	bodies := []dynamo.Body{{Pos: vmath.V(1, 2), Radius: 3, Mass: 1}}

	DrawFrame(rec, decor, bodies)

	want := []string{
		"clear",
		"fill-rect (0, 0) 10x5",
		"stroke-rect (0, 0) 10x5",
		"image ball.png",
		"fill-circle (1, 2) 3",
		"stroke-circle (1, 2) 3",
	}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v", rec.calls)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, rec.calls[i], want[i])
		}
	}
}

func TestPolyline(t *testing.T) {
	rec := &recorder{}
	line := &Polyline{}

	line.Draw(rec)
	if len(rec.calls) != 0 {
		t.Errorf("empty polyline drew %v", rec.calls)
	}

	line.AddPoint(vmath.V(0, 0))
	line.AddPoint(vmath.V(1, 1))
	line.AddPoint(vmath.V(2, 0))
	line.RemovePoint()
	line.Draw(rec)
	if len(rec.calls) != 1 || rec.calls[0] != "polyline 2" {
		t.Errorf("calls = %v", rec.calls)
	}

	line.RemovePoint()
	line.RemovePoint()
	line.RemovePoint()
	if len(line.Points) != 0 {
		t.Errorf("expected empty polyline, got %v", line.Points)
	}
}

func TestMove(t *testing.T) {
	c := Circle{Pos: vmath.V(1, 1)}
	c.Move(vmath.V(2, -1))
	r := Rectangle{Pos: vmath.V(0, 0)}
	r.Move(vmath.V(5, 5))
	sp := Sprite{Pos: vmath.V(3, 3)}
	sp.Move(vmath.V(-3, 0))

	if c.Pos != vmath.V(3, 0) || r.Pos != vmath.V(5, 5) || sp.Pos != vmath.V(0, 3) {
		t.Errorf("moves: %v %v %v", c.Pos, r.Pos, sp.Pos)
	}
}

func TestBodyCircle(t *testing.T) {
	b := dynamo.Body{Pos: vmath.V(4, 5), Radius: 6, Color: color.RGBA{1, 2, 3, 255}, BorderColor: color.RGBA{4, 5, 6, 255}}
	c := BodyCircle(b)
	if c.Pos != b.Pos || c.Radius != 6 || c.Color != b.Color || c.BorderColor != b.BorderColor {
		t.Errorf("BodyCircle = %+v", c)
	}
}

func TestDecor(t *testing.T) {
	shapes, err := Decor([]config.ShapeConfig{
		{Kind: "rect", X: 1, Y: 2, Width: 3, Height: 4, Color: "#ff0000"},
		{Kind: "line", Points: [][2]float64{{0, 0}, {10, 10}}},
		{Kind: "sprite", Image: "assets/cloud.png", Width: 64, Height: 32},
	})
	if err != nil {
		t.Fatalf("decor failed: %v", err)
	}
	if len(shapes) != 3 {
		t.Fatalf("expected 3 shapes, got %d", len(shapes))
	}
	if r, ok := shapes[0].(Rectangle); !ok || r.Color != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("unexpected rect %+v", shapes[0])
	}
	if l, ok := shapes[1].(*Polyline); !ok || len(l.Points) != 2 {
		t.Errorf("unexpected line %+v", shapes[1])
	}

	if _, err := Decor([]config.ShapeConfig{{Kind: "star"}}); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
