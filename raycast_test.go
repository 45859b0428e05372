package meadow

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floorSurface() (TransformComponent, SurfaceComponent) {
	return NewTransform(mgl32.Vec3{0, 0, 0}), SurfaceComponent{
		Kind:       TargetFloor,
		Shape:      SurfaceQuad,
		HalfExtent: mgl32.Vec3{20, 0, 20},
	}
}

func obstacleSurface() (TransformComponent, SurfaceComponent) {
	tr := NewTransform(mgl32.Vec3{0, 1.5, 0})
	tr.Scale = mgl32.Vec3{0.6, 0.6, 0.6}
	return tr, SurfaceComponent{
		Kind:       TargetObstacle,
		Shape:      SurfaceBox,
		HalfExtent: mgl32.Vec3{0.5, 0.5, 0.5},
	}
}

func TestIntersectSurface_QuadHit(t *testing.T) {
	tr, surf := floorSurface()

	ray := Ray{Origin: mgl32.Vec3{1, 5, -2}, Dir: mgl32.Vec3{0, -1, 0}}
	hit := IntersectSurface(ray, tr, surf)

	require.True(t, hit.Hit)
	assert.Equal(t, TargetFloor, hit.Kind)
	assert.InDelta(t, 5, hit.T, 1e-5)
	assert.InDelta(t, 1, hit.Pos.X(), 1e-5)
	assert.InDelta(t, 0, hit.Pos.Y(), 1e-5)
	assert.InDelta(t, -2, hit.Pos.Z(), 1e-5)
}

func TestIntersectSurface_QuadMisses(t *testing.T) {
	tr, surf := floorSurface()

	cases := []struct {
		name string
		ray  Ray
	}{
		{"parallel above the plane", Ray{Origin: mgl32.Vec3{0, 1, 0}, Dir: mgl32.Vec3{1, 0, 0}}},
		{"outside the half extent", Ray{Origin: mgl32.Vec3{25, 5, 0}, Dir: mgl32.Vec3{0, -1, 0}}},
		{"plane behind the origin", Ray{Origin: mgl32.Vec3{0, -1, 0}, Dir: mgl32.Vec3{0, -1, 0}}},
		{"pointing at the sky", Ray{Origin: mgl32.Vec3{0, 1, 0}, Dir: mgl32.Vec3{0, 1, 0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit := IntersectSurface(tc.ray, tr, surf)
			assert.False(t, hit.Hit)
			assert.Equal(t, TargetNone, hit.Kind, "a miss carries no target")
		})
	}
}

func TestIntersectSurface_BoxHitScaled(t *testing.T) {
	tr, surf := obstacleSurface()

	// The box half extent is 0.5 in object space and the transform
	// scales by 0.6, so the front face sits at world z = 0.3.
	ray := Ray{Origin: mgl32.Vec3{0, 1.5, 4}, Dir: mgl32.Vec3{0, 0, -1}}
	hit := IntersectSurface(ray, tr, surf)

	require.True(t, hit.Hit)
	assert.Equal(t, TargetObstacle, hit.Kind)
	assert.InDelta(t, 3.7, hit.T, 1e-4)
	assert.InDelta(t, 0.3, hit.Pos.Z(), 1e-4)
}

func TestIntersectSurface_BoxHitThroughRotation(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{0, 0, 0})
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 1, 0})
	surf := SurfaceComponent{
		Kind:       TargetObstacle,
		Shape:      SurfaceBox,
		HalfExtent: mgl32.Vec3{0.5, 0.5, 0.5},
	}

	// A box yawed 45 degrees presents an edge to the +X axis at
	// 0.5*sqrt(2) from its center.
	ray := Ray{Origin: mgl32.Vec3{5, 0, 0}, Dir: mgl32.Vec3{-1, 0, 0}}
	hit := IntersectSurface(ray, tr, surf)

	require.True(t, hit.Hit)
	assert.InDelta(t, 5-0.5*math.Sqrt2, hit.T, 1e-4)
}

func TestIntersectSurface_BoxFromInsideHitsExit(t *testing.T) {
	tr, surf := obstacleSurface()

	ray := Ray{Origin: mgl32.Vec3{0, 1.5, 0}, Dir: mgl32.Vec3{0, 0, 1}}
	hit := IntersectSurface(ray, tr, surf)

	require.True(t, hit.Hit)
	assert.InDelta(t, 0.3, hit.T, 1e-4)
}

func TestIntersectSurface_BoxMissBehind(t *testing.T) {
	tr, surf := obstacleSurface()

	ray := Ray{Origin: mgl32.Vec3{0, 1.5, 4}, Dir: mgl32.Vec3{0, 0, 1}}
	hit := IntersectSurface(ray, tr, surf)

	assert.False(t, hit.Hit)
}

func TestIntersectSurface_BoxParallelSlabMiss(t *testing.T) {
	tr, surf := obstacleSurface()

	// Parallel to the X slabs at a height the box never reaches.
	ray := Ray{Origin: mgl32.Vec3{-5, 3, 0}, Dir: mgl32.Vec3{1, 0, 0}}
	hit := IntersectSurface(ray, tr, surf)

	assert.False(t, hit.Hit)
}

func TestIntersectSurface_DegenerateDirection(t *testing.T) {
	tr, surf := floorSurface()

	// A direction that collapses to nothing must miss, not blow up.
	hit := IntersectSurface(Ray{Origin: mgl32.Vec3{0, 1, 0}, Dir: mgl32.Vec3{}}, tr, surf)
	assert.False(t, hit.Hit)

	// Tiny-but-nonzero components shouldn't either.
	hit = IntersectSurface(Ray{Origin: mgl32.Vec3{0, 1, 0}, Dir: mgl32.Vec3{-0.5e-8, 1, 0}}, tr, surf)
	assert.False(t, hit.Hit)
}

func TestIntersectSurface_NearestHitOrdering(t *testing.T) {
	floorTr, floorSurf := floorSurface()
	boxTr, boxSurf := obstacleSurface()

	// Down through the obstacle onto the floor: both hit, the obstacle
	// must report the smaller world-space T.
	ray := Ray{Origin: mgl32.Vec3{0, 3, 0.1}, Dir: mgl32.Vec3{0, -1, 0}}

	boxHit := IntersectSurface(ray, boxTr, boxSurf)
	floorHit := IntersectSurface(ray, floorTr, floorSurf)

	require.True(t, boxHit.Hit)
	require.True(t, floorHit.Hit)
	assert.Less(t, boxHit.T, floorHit.T)
	assert.InDelta(t, 3, floorHit.T, 1e-4)
	assert.InDelta(t, 3-1.8, boxHit.T, 1e-4) // box top at y = 1.5 + 0.3
}

func TestIntersectSurface_WorldSpaceTUnderNonUniformScale(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{0, 0, 0})
	tr.Scale = mgl32.Vec3{4, 1, 0.5}
	surf := SurfaceComponent{
		Kind:       TargetFloor,
		Shape:      SurfaceQuad,
		HalfExtent: mgl32.Vec3{1, 0, 1},
	}

	// World X extent is 4, so x=3 still hits; T stays a world-space
	// distance even though the local ray was stretched.
	ray := Ray{Origin: mgl32.Vec3{3, 2, 0}, Dir: mgl32.Vec3{0, -1, 0}}
	hit := IntersectSurface(ray, tr, surf)

	require.True(t, hit.Hit)
	assert.InDelta(t, 2, hit.T, 1e-4)

	// And x=5 is off the stretched quad.
	miss := IntersectSurface(Ray{Origin: mgl32.Vec3{5, 2, 0}, Dir: mgl32.Vec3{0, -1, 0}}, tr, surf)
	assert.False(t, miss.Hit)
}
