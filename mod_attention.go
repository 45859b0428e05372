package meadow

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetFloor
	TargetObstacle
)

// AttentionPoint is where the viewer is looking, updated every frame
// from the pointer (or the view center in immersive mode). On a miss
// the last position is kept and only Target drops to TargetNone.
type AttentionPoint struct {
	Pos    mgl32.Vec3
	Target TargetKind
}

// MarkerComponent tags the entity that visualizes the attention point.
type MarkerComponent struct{}

type AttentionModule struct{}

func (m AttentionModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&AttentionPoint{})
	app.UseSystem(System(attentionSystem).InStage(Update))
	app.UseSystem(System(markerSystem).InStage(Update))
}

func attentionSystem(input *Input, at *AttentionPoint, cmd *Commands) {
	var cam *CameraComponent
	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, c *CameraComponent) bool {
		cam = c
		return false
	})
	if cam == nil {
		return
	}

	ray := cam.Unproject(input.PointerNDC())

	best := RaycastHit{T: float32(math.MaxFloat32)}
	MakeQuery2[TransformComponent, SurfaceComponent](cmd).Map(func(eid EntityId, tr *TransformComponent, surf *SurfaceComponent) bool {
		hit := IntersectSurface(ray, *tr, *surf)
		if hit.Hit && hit.T < best.T {
			best = hit
		}
		return true
	})

	if !best.Hit {
		at.Target = TargetNone
		return
	}

	at.Pos = best.Pos
	at.Target = best.Kind
}

// markerSystem parks the marker on the attention point. While nothing
// is hit the marker stays where it was.
func markerSystem(at *AttentionPoint, cmd *Commands) {
	if at.Target == TargetNone {
		return
	}

	MakeQuery2[TransformComponent, MarkerComponent](cmd).Map(func(eid EntityId, tr *TransformComponent, marker *MarkerComponent) bool {
		tr.Position = at.Pos
		return true
	})
}
