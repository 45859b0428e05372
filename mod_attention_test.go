package meadow

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCamera(position mgl32.Vec3, yaw, pitch float32) CameraComponent {
	return CameraComponent{
		Position: position,
		Yaw:      yaw,
		Pitch:    pitch,
		Fov:      mgl32.DegToRad(60),
		Aspect:   1,
		Near:     0.1,
		Far:      100,
	}
}

func spawnAttentionScene(t *testing.T, app *App, cam CameraComponent) {
	t.Helper()
	cmd := app.Commands()

	cmd.AddEntity(&cam)

	floorTr, floorSurf := floorSurface()
	cmd.AddEntity(&floorTr, &floorSurf)

	boxTr, boxSurf := obstacleSurface()
	cmd.AddEntity(&boxTr, &boxSurf)

	app.FlushCommands()
}

func TestAttention_CenterGazeHitsFloor(t *testing.T) {
	app := NewApp()

	// Camera above and behind the origin, pitched down 30 degrees.
	// The center ray drops 2 units over 2/tan(30) ground distance.
	spawnAttentionScene(t, app, testCamera(mgl32.Vec3{0, 2, 4}, 0, -30))

	// Immersive mode pins the gaze to the view center no matter where
	// the pointer is.
	input := &Input{Immersive: true, MouseX: 9999, MouseY: -42, WindowWidth: 800, WindowHeight: 600}
	at := &AttentionPoint{}

	attentionSystem(input, at, app.Commands())

	require.Equal(t, TargetFloor, at.Target)

	wantZ := 4 - 2/float32(math.Tan(math.Pi/6))
	assert.InDelta(t, 0, at.Pos.X(), 1e-3)
	assert.InDelta(t, 0, at.Pos.Y(), 1e-3)
	assert.InDelta(t, wantZ, at.Pos.Z(), 1e-3)
}

func TestAttention_NearestSurfaceWins(t *testing.T) {
	app := NewApp()

	// Aim straight at the cube center. The ray would reach the floor
	// behind it, but the cube face is closer.
	pitch := -mgl32.RadToDeg(float32(math.Asin(0.6)))
	spawnAttentionScene(t, app, testCamera(mgl32.Vec3{0, 3, 2}, 0, pitch))

	input := &Input{Immersive: true}
	at := &AttentionPoint{}

	attentionSystem(input, at, app.Commands())

	require.Equal(t, TargetObstacle, at.Target)

	// Entry point on the front face of the scaled cube.
	assert.InDelta(t, 0, at.Pos.X(), 1e-3)
	assert.InDelta(t, 1.725, at.Pos.Y(), 1e-3)
	assert.InDelta(t, 0.3, at.Pos.Z(), 1e-3)
}

func TestAttention_PointerSteersTheRay(t *testing.T) {
	app := NewApp()

	// Level camera: the center ray never lands, only a pointer in the
	// lower half of the window can reach the floor.
	spawnAttentionScene(t, app, testCamera(mgl32.Vec3{0, 2, 4}, 0, 0))

	input := &Input{MouseX: 400, MouseY: 600, WindowWidth: 800, WindowHeight: 800}
	at := &AttentionPoint{}

	attentionSystem(input, at, app.Commands())

	require.Equal(t, TargetFloor, at.Target)

	// NDC y=-0.5 tilts the ray down by half the half-fov tangent.
	wantZ := 4 - 2/(0.5*float32(math.Tan(math.Pi/6)))
	assert.InDelta(t, 0, at.Pos.X(), 1e-3)
	assert.InDelta(t, 0, at.Pos.Y(), 1e-3)
	assert.InDelta(t, wantZ, at.Pos.Z(), 5e-3)
}

func TestAttention_MissKeepsLastPosition(t *testing.T) {
	app := NewApp()

	// Pitched up: the ray leaves over everything in the scene.
	spawnAttentionScene(t, app, testCamera(mgl32.Vec3{0, 2, 4}, 0, 30))

	input := &Input{Immersive: true}
	at := &AttentionPoint{Pos: mgl32.Vec3{1, 0, 1}, Target: TargetFloor}

	attentionSystem(input, at, app.Commands())

	assert.Equal(t, TargetNone, at.Target)
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, at.Pos, "last hit position must survive a miss")
}

func TestAttention_NoCameraIsNoop(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()

	floorTr, floorSurf := floorSurface()
	cmd.AddEntity(&floorTr, &floorSurf)
	app.FlushCommands()

	input := &Input{Immersive: true}
	at := &AttentionPoint{Pos: mgl32.Vec3{0.5, 0, 0.5}, Target: TargetObstacle}

	attentionSystem(input, at, cmd)

	if at.Target != TargetObstacle || at.Pos != (mgl32.Vec3{0.5, 0, 0.5}) {
		t.Errorf("attention changed without a camera: %+v", at)
	}
}

func TestMarker_FollowsAttention(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()

	markerTr := NewTransform(mgl32.Vec3{0, 0.08, 0})
	cmd.AddEntity(&markerTr, &MarkerComponent{})

	bystanderTr := NewTransform(mgl32.Vec3{5, 5, 5})
	cmd.AddEntity(&bystanderTr)

	app.FlushCommands()

	at := &AttentionPoint{Pos: mgl32.Vec3{1, 0, 2}, Target: TargetFloor}
	markerSystem(at, cmd)

	var gotMarker mgl32.Vec3
	MakeQuery2[TransformComponent, MarkerComponent](cmd).Map(func(eid EntityId, tr *TransformComponent, _ *MarkerComponent) bool {
		gotMarker = tr.Position
		return true
	})
	assert.Equal(t, mgl32.Vec3{1, 0, 2}, gotMarker)

	bystanderStayed := false
	MakeQuery1[TransformComponent](cmd).Map(func(eid EntityId, tr *TransformComponent) bool {
		if tr.Position == (mgl32.Vec3{5, 5, 5}) {
			bystanderStayed = true
		}
		return true
	})
	assert.True(t, bystanderStayed, "entities without the marker tag must not move")
}

func TestMarker_StaysPutOnMiss(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()

	markerTr := NewTransform(mgl32.Vec3{1, 0, 2})
	cmd.AddEntity(&markerTr, &MarkerComponent{})
	app.FlushCommands()

	at := &AttentionPoint{Pos: mgl32.Vec3{-3, 0, -3}, Target: TargetNone}
	markerSystem(at, cmd)

	MakeQuery2[TransformComponent, MarkerComponent](cmd).Map(func(eid EntityId, tr *TransformComponent, _ *MarkerComponent) bool {
		assert.Equal(t, mgl32.Vec3{1, 0, 2}, tr.Position, "marker must not chase a miss")
		return true
	})
}
