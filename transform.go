package meadow

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TransformComponent places an entity in the world. Scale is per axis.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform(position mgl32.Vec3) TransformComponent {
	return TransformComponent{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// ObjectToWorld composes translate * rotate * scale.
func (t TransformComponent) ObjectToWorld() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(rotate).Mul4(scale)
}

// WorldToObject composes the inverse directly from the parts instead
// of inverting the 4x4.
func (t TransformComponent) WorldToObject() mgl32.Mat4 {
	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())
	invRotate := t.Rotation.Conjugate().Mat4()
	invScale := mgl32.Scale3D(1/t.Scale.X(), 1/t.Scale.Y(), 1/t.Scale.Z())
	return invScale.Mul4(invRotate).Mul4(invTranslate)
}
