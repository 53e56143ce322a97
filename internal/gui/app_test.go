package gui

import (
	"image/color"
	"testing"
)

func TestTelemetryPoints(t *testing.T) {
	if telemetryPoints([]float64{1}, 0, 0, 100, 10) != nil {
		t.Error("single value should give no points")
	}

	pts := telemetryPoints([]float64{0, 5, 10}, 10, 20, 100, 10)
	if len(pts) != 3 {
		t.Fatalf("points = %d", len(pts))
	}
	if pts[0].X != 10 || pts[2].X != 110 {
		t.Errorf("x range = %v..%v", pts[0].X, pts[2].X)
	}
	if pts[0].Y != 30 || pts[2].Y != 20 || pts[1].Y != 25 {
		t.Errorf("y values = %v %v %v", pts[0].Y, pts[1].Y, pts[2].Y)
	}

	flat := telemetryPoints([]float64{3, 3}, 0, 0, 10, 10)
	if flat[0].Y != 10 || flat[1].Y != 10 {
		t.Errorf("flat series = %v", flat)
	}
}

func TestToRL(t *testing.T) {
	c := toRL(color.RGBA{1, 2, 3, 4})
	if c.R != 1 || c.G != 2 || c.B != 3 || c.A != 4 {
		t.Errorf("toRL = %+v", c)
	}
}
