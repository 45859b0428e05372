package meadow

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const raycastEpsilon = 1e-8

type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

type SurfaceShape int

const (
	// SurfaceQuad is a rectangle in the local XZ plane at y=0.
	SurfaceQuad SurfaceShape = iota
	// SurfaceBox is a box centered on the local origin.
	SurfaceBox
)

// SurfaceComponent makes an entity visible to the attention raycast.
type SurfaceComponent struct {
	Kind       TargetKind
	Shape      SurfaceShape
	HalfExtent mgl32.Vec3
}

type RaycastHit struct {
	Hit  bool
	T    float32
	Pos  mgl32.Vec3
	Kind TargetKind
}

// IntersectSurface casts a world-space ray against one surface. The
// ray is moved into the surface's object space, intersected there, and
// the hit mapped back to world space. T is the world-space distance
// from the ray origin.
func IntersectSurface(ray Ray, transform TransformComponent, surface SurfaceComponent) RaycastHit {
	worldToObject := transform.WorldToObject()

	localOrigin := worldToObject.Mul4x1(ray.Origin.Vec4(1)).Vec3()
	localDir := worldToObject.Mul4x1(ray.Dir.Vec4(0)).Vec3()

	// Non-uniform scale stretches the direction; renormalize so local
	// t values stay comparable.
	dirLen := localDir.Len()
	if dirLen < 1e-6 {
		return RaycastHit{}
	}
	localDir = localDir.Mul(1 / dirLen)

	var localT float32
	var ok bool
	switch surface.Shape {
	case SurfaceQuad:
		localT, ok = intersectQuadLocal(localOrigin, localDir, surface.HalfExtent)
	case SurfaceBox:
		localT, ok = intersectBoxLocal(localOrigin, localDir, surface.HalfExtent)
	}
	if !ok {
		return RaycastHit{}
	}

	localPos := localOrigin.Add(localDir.Mul(localT))
	worldPos := transform.ObjectToWorld().Mul4x1(localPos.Vec4(1)).Vec3()

	return RaycastHit{
		Hit:  true,
		T:    worldPos.Sub(ray.Origin).Len(),
		Pos:  worldPos,
		Kind: surface.Kind,
	}
}

func intersectQuadLocal(origin mgl32.Vec3, dir mgl32.Vec3, half mgl32.Vec3) (float32, bool) {
	if mgl32.Abs(dir.Y()) < raycastEpsilon {
		return 0, false
	}

	t := -origin.Y() / dir.Y()
	if t <= 0 {
		return 0, false
	}

	p := origin.Add(dir.Mul(t))
	if p.X() < -half.X() || p.X() > half.X() || p.Z() < -half.Z() || p.Z() > half.Z() {
		return 0, false
	}

	return t, true
}

func intersectBoxLocal(origin mgl32.Vec3, dir mgl32.Vec3, half mgl32.Vec3) (float32, bool) {
	tMin := float32(-math.MaxFloat32)
	tMax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if mgl32.Abs(dir[axis]) < raycastEpsilon {
			// Ray parallel to the slab: either always inside or never.
			if origin[axis] < -half[axis] || origin[axis] > half[axis] {
				return 0, false
			}
			continue
		}

		invDir := 1 / dir[axis]
		t0 := (-half[axis] - origin[axis]) * invDir
		t1 := (half[axis] - origin[axis]) * invDir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < tMin {
			return 0, false
		}
	}

	if tMax < 0 {
		return 0, false
	}

	t := tMin
	if t < 0 {
		// Origin inside the box, exit point is the hit.
		t = tMax
	}
	return t, true
}
