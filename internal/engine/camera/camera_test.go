package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/mazewalk/pkg/math"
)

const eps = 1e-5

func near(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func vecNear(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestNewFirstPersonCamera(t *testing.T) {
	c := NewFirstPersonCamera(math.Vec3{X: 1, Y: 0.65, Z: -2}, math.Vec3{Z: -1})

	if !vecNear(c.Forward(), math.Vec3{Z: -1}) {
		t.Errorf("forward = %+v", c.Forward())
	}
	if !vecNear(c.Right(), math.Vec3{X: 1}) {
		t.Errorf("right = %+v, want +X", c.Right())
	}
	if !vecNear(c.Up(), math.Vec3{Y: 1}) {
		t.Errorf("up = %+v, want +Y", c.Up())
	}
	if c.FOV != DefaultFOV || c.Near != DefaultNear || c.Far != DefaultFar {
		t.Errorf("projection defaults = %v %v %v", c.FOV, c.Near, c.Far)
	}
}

func TestNewFirstPersonCameraZeroForward(t *testing.T) {
	c := NewFirstPersonCamera(math.Vec3{}, math.Vec3{})
	if !vecNear(c.Forward(), math.Vec3{Z: -1}) {
		t.Errorf("forward = %+v, want -Z", c.Forward())
	}
}

func TestTurn(t *testing.T) {
	tests := []struct {
		name  string
		angle float32
		want  math.Vec3
	}{
		{"left quarter", gomath.Pi / 2, math.Vec3{X: -1}},
		{"right quarter", -gomath.Pi / 2, math.Vec3{X: 1}},
		{"half", gomath.Pi, math.Vec3{Z: 1}},
		{"none", 0, math.Vec3{Z: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFirstPersonCamera(math.Vec3{}, math.Vec3{Z: -1})
			c.Turn(tt.angle)
			if !vecNear(c.Forward(), tt.want) {
				t.Errorf("forward = %+v, want %+v", c.Forward(), tt.want)
			}
			if !near(c.Forward().Length(), 1) {
				t.Errorf("forward not unit: %v", c.Forward().Length())
			}
			if !near(c.Forward().Dot(c.Right()), 0) {
				t.Error("right not orthogonal to forward")
			}
		})
	}
}

func TestTurnStaysNormalized(t *testing.T) {
	c := NewFirstPersonCamera(math.Vec3{}, math.Vec3{Z: -1})
	for i := 0; i < 1000; i++ {
		c.Turn(0.013)
	}
	if !near(c.Forward().Length(), 1) {
		t.Errorf("forward length drifted to %v", c.Forward().Length())
	}
	if !near(c.Forward().Y, 0) {
		t.Errorf("forward left the ground plane: %+v", c.Forward())
	}
}

func TestAdvanceDoesNotMove(t *testing.T) {
	start := math.Vec3{X: 0, Y: 0.65, Z: -1.5}
	c := NewFirstPersonCamera(start, math.Vec3{Z: -1})

	got := c.Advance(0.5)
	if !vecNear(got, math.Vec3{X: 0, Y: 0.65, Z: -2}) {
		t.Errorf("Advance = %+v", got)
	}
	if c.Position != start {
		t.Errorf("position changed to %+v", c.Position)
	}

	back := c.Advance(-0.5)
	if !vecNear(back, math.Vec3{X: 0, Y: 0.65, Z: -1}) {
		t.Errorf("Advance(-0.5) = %+v", back)
	}

	c.MoveTo(got)
	if c.Position != got {
		t.Errorf("MoveTo did not set position")
	}
}

func TestViewMatrix(t *testing.T) {
	c := NewFirstPersonCamera(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{Z: -1})
	view := c.ViewMatrix()

	// Camera position maps to the view origin
	if p := view.TransformPoint(c.Position); !vecNear(p, math.Vec3{}) {
		t.Errorf("eye in view space = %+v", p)
	}
	// A point ahead lands on -Z
	if p := view.TransformPoint(c.Advance(2)); !vecNear(p, math.Vec3{Z: -2}) {
		t.Errorf("point ahead in view space = %+v", p)
	}
}

func TestSkyboxViewMatrix(t *testing.T) {
	c := NewFirstPersonCamera(math.Vec3{X: 5, Y: 1, Z: -7}, math.Vec3{X: 1})
	sky := c.SkyboxViewMatrix()
	if sky[12] != 0 || sky[13] != 0 || sky[14] != 0 {
		t.Errorf("skybox view has translation: %v %v %v", sky[12], sky[13], sky[14])
	}

	c2 := NewFirstPersonCamera(math.Vec3{}, math.Vec3{X: 1})
	if !sky.ApproxEqual(c2.SkyboxViewMatrix(), eps) {
		t.Error("skybox view should depend on orientation only")
	}
}

func TestSetAspect(t *testing.T) {
	c := NewFirstPersonCamera(math.Vec3{}, math.Vec3{Z: -1})
	c.SetAspect(1000, 800)
	if !near(c.Aspect, 1.25) {
		t.Errorf("aspect = %v, want 1.25", c.Aspect)
	}
	c.SetAspect(1000, 0)
	if !near(c.Aspect, 1.25) {
		t.Errorf("zero height changed aspect to %v", c.Aspect)
	}

	proj := c.ProjectionMatrix()
	if proj[11] != -1 {
		t.Errorf("proj[11] = %v, want -1", proj[11])
	}
}
