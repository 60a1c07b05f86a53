// Package camera provides the first-person camera used to walk the maze.
package camera

import (
	gomath "math"

	"github.com/Faultbox/mazewalk/pkg/math"
)

// Projection defaults.
const (
	DefaultFOV  float32 = 45 // Degrees
	DefaultNear float32 = 0.01
	DefaultFar  float32 = 100
)

// FirstPersonCamera is a Y-up camera that turns about the world up axis and
// moves along its forward vector. Forward always stays horizontal.
type FirstPersonCamera struct {
	Position math.Vec3

	forward math.Vec3
	right   math.Vec3
	up      math.Vec3

	FOV    float32 // Vertical field of view in degrees
	Near   float32
	Far    float32
	Aspect float32
}

// NewFirstPersonCamera creates a camera at pos looking along forward.
// A zero forward falls back to -Z.
func NewFirstPersonCamera(pos, forward math.Vec3) *FirstPersonCamera {
	c := &FirstPersonCamera{
		Position: pos,
		FOV:      DefaultFOV,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Aspect:   1,
	}
	forward.Y = 0
	if forward.IsZero() {
		forward = math.Vec3{X: 0, Y: 0, Z: -1}
	}
	c.forward = forward.Normalize()
	c.updateBasis()
	return c
}

func (c *FirstPersonCamera) updateBasis() {
	c.right = c.forward.Cross(math.Up).Normalize()
	c.up = c.right.Cross(c.forward).Normalize()
}

// Forward returns the unit view direction.
func (c *FirstPersonCamera) Forward() math.Vec3 { return c.forward }

// Right returns the unit right vector.
func (c *FirstPersonCamera) Right() math.Vec3 { return c.right }

// Up returns the unit camera up vector.
func (c *FirstPersonCamera) Up() math.Vec3 { return c.up }

// Turn rotates the view about world up. Positive angles turn left.
func (c *FirstPersonCamera) Turn(angle float32) {
	if angle == 0 {
		return
	}
	c.forward = math.RotateAxis(math.Up, angle).TransformDirection(c.forward).Normalize()
	c.updateBasis()
}

// Advance returns the position distance units along forward without moving.
func (c *FirstPersonCamera) Advance(distance float32) math.Vec3 {
	return c.Position.Add(c.forward.Scale(distance))
}

// MoveTo sets the camera position.
func (c *FirstPersonCamera) MoveTo(pos math.Vec3) {
	c.Position = pos
}

// SetAspect sets the aspect ratio from viewport size. Zero heights are ignored.
func (c *FirstPersonCamera) SetAspect(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ViewMatrix returns the world-to-view matrix.
func (c *FirstPersonCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.forward), c.up)
}

// SkyboxViewMatrix returns the view matrix with translation removed.
func (c *FirstPersonCamera) SkyboxViewMatrix() math.Mat4 {
	return c.ViewMatrix().WithoutTranslation()
}

// ProjectionMatrix returns the perspective projection.
func (c *FirstPersonCamera) ProjectionMatrix() math.Mat4 {
	fov := c.FOV * gomath.Pi / 180
	return math.Perspective(fov, c.Aspect, c.Near, c.Far)
}
