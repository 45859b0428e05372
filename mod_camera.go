package meadow

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraComponent is a perspective camera aimed with yaw/pitch.
// Yaw and Pitch are degrees, Fov is radians.
type CameraComponent struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Fov      float32
	Aspect   float32
	Near     float32
	Far      float32
}

// Forward derives the view direction. Yaw 0 looks down -Z, positive
// yaw turns right, positive pitch looks up.
func (c CameraComponent) Forward() mgl32.Vec3 {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)

	return mgl32.Vec3{
		float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
		float32(math.Sin(float64(pitchRad))),
		float32(-math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
	}.Normalize()
}

func (c CameraComponent) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

func (c CameraComponent) ProjMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.Fov, c.Aspect, c.Near, c.Far)
}

func (c CameraComponent) ViewProj() mgl32.Mat4 {
	return c.ProjMatrix().Mul4(c.ViewMatrix())
}

// Unproject turns a point in normalized device coordinates into a
// world-space ray from the camera. The same view-projection that draws
// the frame is inverted here, so the ray matches what is on screen.
func (c CameraComponent) Unproject(ndc mgl32.Vec2) Ray {
	inv := c.ViewProj().Inv()

	near := inv.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), 1, 1})

	nearPos := near.Vec3().Mul(1 / near.W())
	farPos := far.Vec3().Mul(1 / far.W())

	return Ray{
		Origin: c.Position,
		Dir:    farPos.Sub(nearPos).Normalize(),
	}
}

// LookCameraComponent holds per-frame control intent for a camera the
// player flies around. Move is right/up/forward, Look is mouse delta.
type LookCameraComponent struct {
	Speed       float32
	Sensitivity float32
	Move        mgl32.Vec3
	Look        mgl32.Vec2
}

type CameraModule struct{}

func (m CameraModule) Install(app *App, cmd *Commands) {
	app.UseSystem(System(lookCameraInputSystem).InStage(Update))
	app.UseSystem(System(lookCameraControlSystem).InStage(Update))
}

func lookCameraInputSystem(input *Input, cmd *Commands) {
	MakeQuery1[LookCameraComponent](cmd).Map(func(eid EntityId, look *LookCameraComponent) bool {
		look.Move = mgl32.Vec3{0, 0, 0}
		if input.Pressed[KeyW] {
			look.Move[2] += 1
		}
		if input.Pressed[KeyS] {
			look.Move[2] -= 1
		}
		if input.Pressed[KeyA] {
			look.Move[0] -= 1
		}
		if input.Pressed[KeyD] {
			look.Move[0] += 1
		}
		if input.Pressed[KeySpace] {
			look.Move[1] += 1
		}
		if input.Pressed[KeyControl] {
			look.Move[1] -= 1
		}

		if input.MouseCaptured {
			look.Look[0] = float32(input.MouseDeltaX)
			look.Look[1] = float32(input.MouseDeltaY)
		} else {
			look.Look[0] = 0
			look.Look[1] = 0
		}

		return true
	})
}

func lookCameraControlSystem(cmd *Commands, time *Time) {
	dt := time.Dt
	if dt <= 0 {
		return
	}

	MakeQuery2[CameraComponent, LookCameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent, look *LookCameraComponent) bool {
		if look.Sensitivity == 0 {
			look.Sensitivity = 0.1
		}

		cam.Yaw += look.Look[0] * look.Sensitivity
		cam.Pitch -= look.Look[1] * look.Sensitivity

		if cam.Pitch > 89.0 {
			cam.Pitch = 89.0
		}
		if cam.Pitch < -89.0 {
			cam.Pitch = -89.0
		}

		forward := cam.Forward()
		right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
		up := mgl32.Vec3{0, 1, 0}

		if look.Speed == 0 {
			look.Speed = 5.0
		}

		moveDir := mgl32.Vec3{0, 0, 0}
		moveDir = moveDir.Add(right.Mul(look.Move[0]))
		moveDir = moveDir.Add(up.Mul(look.Move[1]))
		moveDir = moveDir.Add(forward.Mul(look.Move[2]))

		if moveDir.Len() > 0 {
			cam.Position = cam.Position.Add(moveDir.Normalize().Mul(look.Speed * dt))
		}

		return true
	})
}
