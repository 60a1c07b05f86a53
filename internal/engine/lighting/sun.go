// Package lighting provides the directional light used for the maze scene.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/mazewalk/pkg/math"
)

// Sun is a directional light with a constant ambient term.
type Sun struct {
	Direction math.Vec3 // Unit vector pointing towards the sun
	Ambient   float32   // 0..1
}

// Default sun: above the player's left shoulder at the start facing -Z.
const (
	DefaultLongitude float32 = 225
	DefaultLatitude  float32 = 35
	DefaultAmbient   float32 = 0.3
)

// NewSun builds a sun from angles in degrees. Longitude rotates around Y with
// 0 pointing at +Z; latitude is the elevation above the horizon.
func NewSun(longitude, latitude, ambient float32) Sun {
	return Sun{
		Direction: SunDirection(longitude, latitude),
		Ambient:   clamp01(ambient),
	}
}

// DefaultSun returns the sun used when no lighting is configured.
func DefaultSun() Sun {
	return NewSun(DefaultLongitude, DefaultLatitude, DefaultAmbient)
}

// SunDirection converts longitude/latitude degrees to a unit direction.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := float64(longitude) * gomath.Pi / 180
	lat := float64(latitude) * gomath.Pi / 180

	return math.Vec3{
		X: float32(gomath.Cos(lat) * gomath.Sin(lon)),
		Y: float32(gomath.Sin(lat)),
		Z: float32(gomath.Cos(lat) * gomath.Cos(lon)),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
