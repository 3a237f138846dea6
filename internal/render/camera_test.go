package render

import (
	"math"
	"testing"
)

func TestCameraProjectOrigin(t *testing.T) {
	cam := NewCamera(6.5)
	x, y, _, ok := cam.Project(Vec3{}, 100, 60)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if x != 50 || y != 30 {
		t.Errorf("expected origin at screen centre, got (%d, %d)", x, y)
	}
}

func TestCameraProjectBehindNear(t *testing.T) {
	cam := NewCamera(1)
	cam.RotX, cam.RotY = 0, 0
	if _, _, _, ok := cam.Project(Vec3{Z: cam.Distance}, 100, 100); ok {
		t.Error("point at the camera should not project")
	}
}

func TestCameraExtentFitsScreen(t *testing.T) {
	cam := NewCamera(5)
	cam.RotX, cam.RotY = 0, 0
	x, _, _, ok := cam.ProjectF(Vec3{X: 5}, 200, 100)
	if !ok {
		t.Fatal("edge point should project")
	}
	// extent maps to 90% of the half height at zero depth
	if math.Abs(x-(100+45)) > 1e-9 {
		t.Errorf("expected x=145, got %f", x)
	}
}

func TestCameraYUp(t *testing.T) {
	cam := NewCamera(5)
	cam.RotX, cam.RotY = 0, 0
	_, y, _, _ := cam.Project(Vec3{Y: 2}, 100, 100)
	if y >= 50 {
		t.Errorf("positive y should land above centre, got %d", y)
	}
}

func TestCameraZoomBounds(t *testing.T) {
	cam := NewCamera(1)
	for i := 0; i < 50; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom != 10 {
		t.Errorf("expected zoom capped at 10, got %f", cam.Zoom)
	}
	for i := 0; i < 100; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom != 0.1 {
		t.Errorf("expected zoom floored at 0.1, got %f", cam.Zoom)
	}
	cam.Reset()
	if cam.Zoom != 1 || cam.Extent != 1 {
		t.Errorf("reset should restore defaults, got %+v", cam)
	}
}
