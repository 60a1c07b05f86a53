// Package entity implements the things that occupy maze cells: walls, the goal, and the floor.
package entity

import (
	"github.com/Faultbox/mazewalk/pkg/math"
)

// Kind is the closed set of cell occupants.
type Kind uint8

const (
	KindNone Kind = iota
	KindWall
	KindGround
	KindGoal
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindWall:
		return "wall"
	case KindGround:
		return "ground"
	case KindGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// NoMesh marks an entity without geometry.
const NoMesh = -1

// NoTexture marks an entity drawn with its material color instead of a texture.
const NoTexture = -1

// Texture units bound by the renderer.
const (
	TextureGround = 0
	TextureWall   = 1
)

// GoalColor is the material color of the goal.
var GoalColor = math.Vec3{X: 0, Y: 1, Z: 0}

// Transform places an entity in the world.
type Transform struct {
	Translation math.Vec3
	Axis        math.Vec3 // Rotation axis, need not be normalized
	Angle       float32   // Radians
	Scale       math.Vec3
}

// Identity returns a transform at the origin with unit scale and the Y axis for rotation.
func Identity() Transform {
	return Transform{
		Axis:  math.Up,
		Scale: math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// At returns a unit transform translated to pos.
func At(pos math.Vec3) Transform {
	t := Identity()
	t.Translation = pos
	return t
}

// Matrix returns Translate * Rotate * Scale.
func (t Transform) Matrix() math.Mat4 {
	m := math.TranslateVec(t.Translation)
	if t.Angle != 0 && !t.Axis.IsZero() {
		m = m.Mul(math.RotateAxis(t.Axis.Normalize(), t.Angle))
	}
	return m.Mul(math.ScaleVec(t.Scale))
}

// Entity is one placed mesh. Entities of the same kind share a mesh by store index.
type Entity struct {
	kind      Kind
	transform Transform
	mesh      int
	texture   int
	color     math.Vec3
}

// None returns an empty cell occupant. It has no geometry and is never drawn.
func None() Entity {
	return Entity{
		kind:      KindNone,
		transform: Identity(),
		mesh:      NoMesh,
		texture:   NoTexture,
	}
}

// NewGround creates a floor entity textured with the ground texture.
func NewGround(t Transform, mesh int) Entity {
	return Entity{
		kind:      KindGround,
		transform: t,
		mesh:      mesh,
		texture:   TextureGround,
	}
}

// NewWall creates a wall entity textured with the wall texture.
func NewWall(t Transform, mesh int) Entity {
	return Entity{
		kind:      KindWall,
		transform: t,
		mesh:      mesh,
		texture:   TextureWall,
	}
}

// NewGoal creates an untextured goal entity with the goal color.
func NewGoal(t Transform, mesh int) Entity {
	return Entity{
		kind:      KindGoal,
		transform: t,
		mesh:      mesh,
		texture:   NoTexture,
		color:     GoalColor,
	}
}

// Kind returns the entity kind.
func (e *Entity) Kind() Kind { return e.kind }

// SetKind changes the entity kind. Setting KindNone also drops the mesh.
func (e *Entity) SetKind(k Kind) {
	e.kind = k
	if k == KindNone {
		e.mesh = NoMesh
	}
}

// Transform returns the current transform.
func (e *Entity) Transform() Transform { return e.transform }

// SetTranslation moves the entity.
func (e *Entity) SetTranslation(v math.Vec3) { e.transform.Translation = v }

// SetAxis sets the rotation axis.
func (e *Entity) SetAxis(v math.Vec3) { e.transform.Axis = v }

// SetAngle sets the rotation angle in radians.
func (e *Entity) SetAngle(a float32) { e.transform.Angle = a }

// AddAngle advances the rotation angle by delta radians.
func (e *Entity) AddAngle(delta float32) { e.transform.Angle += delta }

// SetScale sets the per-axis scale.
func (e *Entity) SetScale(v math.Vec3) { e.transform.Scale = v }

// Mesh returns the store index of the shared mesh, or NoMesh.
func (e *Entity) Mesh() int { return e.mesh }

// Texture returns the texture unit, or NoTexture.
func (e *Entity) Texture() int { return e.texture }

// Color returns the material color.
func (e *Entity) Color() math.Vec3 { return e.color }

// Textured reports whether the entity samples a texture.
func (e *Entity) Textured() bool { return e.texture != NoTexture }

// Drawable reports whether the entity has geometry to draw.
func (e *Entity) Drawable() bool { return e.kind != KindNone && e.mesh != NoMesh }

// ModelMatrix computes the model matrix. It is rebuilt on every call.
func (e *Entity) ModelMatrix() math.Mat4 {
	return e.transform.Matrix()
}
