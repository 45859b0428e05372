package meadow

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func readSpinTransform(cmd *Commands) TransformComponent {
	var out TransformComponent
	MakeQuery2[TransformComponent, Rotating](cmd).Map(func(eid EntityId, tr *TransformComponent, _ *Rotating) bool {
		out = *tr
		return false
	})
	return out
}

func TestSpin_QuarterTurnAroundY(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()

	tr := NewTransform(mgl32.Vec3{0, 1.5, 0})
	cmd.AddEntity(&tr, &Rotating{Rate: mgl32.Vec3{0, float32(math.Pi / 2), 0}})
	app.FlushCommands()

	spinSystem(&Time{Dt: 1}, cmd)

	// +X swings onto -Z after a quarter turn.
	got := readSpinTransform(cmd).Rotation.Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, got.X(), 1e-5)
	assert.InDelta(t, 0, got.Y(), 1e-5)
	assert.InDelta(t, -1, got.Z(), 1e-5)
}

func TestSpin_ZeroDtLeavesRotation(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()

	tr := NewTransform(mgl32.Vec3{})
	cmd.AddEntity(&tr, &Rotating{Rate: mgl32.Vec3{0.3, 0.7, 0}})
	app.FlushCommands()

	spinSystem(&Time{Dt: 0}, cmd)

	assert.Equal(t, mgl32.QuatIdent(), readSpinTransform(cmd).Rotation)
}

func TestSpin_StaysNormalizedOverManyFrames(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()

	tr := NewTransform(mgl32.Vec3{})
	cmd.AddEntity(&tr, &Rotating{Rate: mgl32.Vec3{0.3, 0.7, 0.1}})
	app.FlushCommands()

	for i := 0; i < 10000; i++ {
		spinSystem(&Time{Dt: 0.016}, cmd)
	}

	rot := readSpinTransform(cmd).Rotation
	assert.InDelta(t, 1, rot.Len(), 1e-4, "accumulated spin must not drift off the unit sphere")
}

func TestSpin_IgnoresEntitiesWithoutTheComponent(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()

	tr := NewTransform(mgl32.Vec3{})
	cmd.AddEntity(&tr)
	app.FlushCommands()

	spinSystem(&Time{Dt: 1}, cmd)

	MakeQuery1[TransformComponent](cmd).Map(func(eid EntityId, tr *TransformComponent) bool {
		assert.Equal(t, mgl32.QuatIdent(), tr.Rotation)
		return true
	})
}
