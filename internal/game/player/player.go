// Package player turns movement intent into camera motion checked against the maze.
package player

import (
	"go.uber.org/zap"

	"github.com/Faultbox/mazewalk/internal/engine/camera"
	"github.com/Faultbox/mazewalk/internal/game/world"
	"github.com/Faultbox/mazewalk/internal/logger"
	"github.com/Faultbox/mazewalk/pkg/math"
)

// Defaults.
const (
	DefaultMoveSpeed float32 = 1.3  // World units per second
	DefaultTurnSpeed float32 = 1.3  // Radians per second
	DefaultMargin    float32 = 0.06 // Extra probe distance kept between camera and walls
)

// Validator classifies a proposed position. *world.Map implements it.
type Validator interface {
	Validate(pos math.Vec3) world.Outcome
}

// Intent is the per-frame movement request, each axis in [-1, 1].
type Intent struct {
	Move float32 // +1 forward, -1 backward
	Turn float32 // +1 left, -1 right
}

// Controller moves a camera through a maze.
type Controller struct {
	MoveSpeed float32
	TurnSpeed float32
	Margin    float32

	camera    *camera.FirstPersonCamera
	validator Validator
	won       bool
}

// NewController creates a controller with default speeds.
func NewController(cam *camera.FirstPersonCamera, v Validator) *Controller {
	return &Controller{
		MoveSpeed: DefaultMoveSpeed,
		TurnSpeed: DefaultTurnSpeed,
		Margin:    DefaultMargin,
		camera:    cam,
		validator: v,
	}
}

// Camera returns the controlled camera.
func (c *Controller) Camera() *camera.FirstPersonCamera {
	return c.camera
}

// Won reports whether the goal has been reached.
func (c *Controller) Won() bool {
	return c.won
}

// Step applies one frame of intent. Turning happens first. A move is probed
// Margin further than it travels and validated once; Invalid leaves the
// camera where it was. Step returns Valid when no move was requested.
func (c *Controller) Step(in Intent, dt float32) world.Outcome {
	if in.Turn != 0 {
		c.camera.Turn(in.Turn * c.TurnSpeed * dt)
	}
	if in.Move == 0 {
		return world.Valid
	}

	probe := c.camera.Advance(in.Move * dt * (c.MoveSpeed + c.Margin))
	outcome := c.validator.Validate(probe)
	switch outcome {
	case world.Valid:
		c.camera.MoveTo(c.camera.Advance(in.Move * dt * c.MoveSpeed))
	case world.Won:
		c.camera.MoveTo(c.camera.Advance(in.Move * dt * c.MoveSpeed))
		if !c.won {
			logger.Info("goal reached", zap.Any("position", c.camera.Position))
		}
		c.won = true
	}
	return outcome
}
