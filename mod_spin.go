package meadow

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Rotating spins an entity at a fixed rate, radians per second around
// each local axis.
type Rotating struct {
	Rate mgl32.Vec3
}

type SpinModule struct{}

func (m SpinModule) Install(app *App, cmd *Commands) {
	app.UseSystem(System(spinSystem).InStage(Update))
}

func spinSystem(time *Time, cmd *Commands) {
	dt := time.Dt
	if dt <= 0 {
		return
	}

	MakeQuery2[TransformComponent, Rotating](cmd).Map(func(eid EntityId, tr *TransformComponent, rot *Rotating) bool {
		spin := mgl32.QuatRotate(rot.Rate.X()*dt, mgl32.Vec3{1, 0, 0}).
			Mul(mgl32.QuatRotate(rot.Rate.Y()*dt, mgl32.Vec3{0, 1, 0})).
			Mul(mgl32.QuatRotate(rot.Rate.Z()*dt, mgl32.Vec3{0, 0, 1}))

		tr.Rotation = tr.Rotation.Mul(spin).Normalize()
		return true
	})
}
