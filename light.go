package meadow

import "github.com/go-gl/mathgl/mgl32"

type LightType uint32

const (
	LightTypeDirectional LightType = iota
	LightTypeAmbient
)

// LightComponent tags an entity as a light source. Direction only
// matters for directional lights; ambient lights contribute a flat
// color term.
type LightComponent struct {
	Type      LightType
	Direction mgl32.Vec3
	Color     [3]float32
	Intensity float32
}
