package meadow

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type meshVertex struct {
	pos    [3]float32 `meadow:"layout" location:"0" format:"float3"`
	normal [3]float32 `meadow:"layout" location:"1" format:"float3"`
	uv     [2]float32 `meadow:"layout" location:"2" format:"float2"`
}

// CreateCubeMesh builds a box around the origin, four vertices per
// face so normals and UVs stay sharp.
func (server AssetServer) CreateCubeMesh(half mgl32.Vec3) AssetId {
	// u cross v equals the face normal, which keeps every face CCW
	// from the outside.
	faces := []struct {
		normal [3]float32
		uAxis  [3]float32
		vAxis  [3]float32
	}{
		{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{0, 0, -1}, [3]float32{-1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0, 1, 0}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},
		{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}},
	}

	var vertices []meshVertex
	var indices []uint16

	for _, face := range faces {
		base := uint16(len(vertices))
		n := mgl32.Vec3{face.normal[0], face.normal[1], face.normal[2]}
		u := mgl32.Vec3{face.uAxis[0], face.uAxis[1], face.uAxis[2]}
		v := mgl32.Vec3{face.vAxis[0], face.vAxis[1], face.vAxis[2]}

		for _, corner := range [][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := n.Add(u.Mul(corner[0])).Add(v.Mul(corner[1]))
			vertices = append(vertices, meshVertex{
				pos:    [3]float32{p.X() * half.X(), p.Y() * half.Y(), p.Z() * half.Z()},
				normal: face.normal,
				uv:     [2]float32{(corner[0] + 1) / 2, (1 - corner[1]) / 2},
			})
		}

		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return server.CreateMesh(MakeAnySlice(vertices), indices)
}

// CreatePlaneMesh builds a quad in the XZ plane at y=0 facing up.
// UVs run 0..uvScale so a repeating texture can tile across it.
func (server AssetServer) CreatePlaneMesh(halfX float32, halfZ float32, uvScale float32) AssetId {
	vertices := []meshVertex{
		{pos: [3]float32{-halfX, 0, -halfZ}, normal: [3]float32{0, 1, 0}, uv: [2]float32{0, 0}},
		{pos: [3]float32{halfX, 0, -halfZ}, normal: [3]float32{0, 1, 0}, uv: [2]float32{uvScale, 0}},
		{pos: [3]float32{halfX, 0, halfZ}, normal: [3]float32{0, 1, 0}, uv: [2]float32{uvScale, uvScale}},
		{pos: [3]float32{-halfX, 0, halfZ}, normal: [3]float32{0, 1, 0}, uv: [2]float32{0, uvScale}},
	}
	indices := []uint16{0, 2, 1, 0, 3, 2}

	return server.CreateMesh(MakeAnySlice(vertices), indices)
}

// CreateBladeQuadMesh builds an upright quad in the XY plane, centered
// on the origin, UV v=0 at the tip. Drawn without culling so both
// sides show.
func (server AssetServer) CreateBladeQuadMesh(width float32, height float32) AssetId {
	hw := width / 2
	hh := height / 2

	vertices := []meshVertex{
		{pos: [3]float32{-hw, -hh, 0}, normal: [3]float32{0, 0, 1}, uv: [2]float32{0, 1}},
		{pos: [3]float32{hw, -hh, 0}, normal: [3]float32{0, 0, 1}, uv: [2]float32{1, 1}},
		{pos: [3]float32{hw, hh, 0}, normal: [3]float32{0, 0, 1}, uv: [2]float32{1, 0}},
		{pos: [3]float32{-hw, hh, 0}, normal: [3]float32{0, 0, 1}, uv: [2]float32{0, 0}},
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	return server.CreateMesh(MakeAnySlice(vertices), indices)
}

// CreateSphereMesh builds a UV sphere.
func (server AssetServer) CreateSphereMesh(radius float32, rings int, segments int) AssetId {
	var vertices []meshVertex
	var indices []uint16

	for ring := 0; ring <= rings; ring++ {
		phi := math.Pi * float64(ring) / float64(rings)
		for seg := 0; seg <= segments; seg++ {
			theta := 2 * math.Pi * float64(seg) / float64(segments)

			nx := float32(math.Sin(phi) * math.Cos(theta))
			ny := float32(math.Cos(phi))
			nz := float32(math.Sin(phi) * math.Sin(theta))

			vertices = append(vertices, meshVertex{
				pos:    [3]float32{nx * radius, ny * radius, nz * radius},
				normal: [3]float32{nx, ny, nz},
				uv:     [2]float32{float32(seg) / float32(segments), float32(ring) / float32(rings)},
			})
		}
	}

	stride := segments + 1
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			a := uint16(ring*stride + seg)
			b := uint16((ring+1)*stride + seg)

			indices = append(indices, a, a+1, b)
			indices = append(indices, a+1, b+1, b)
		}
	}

	return server.CreateMesh(MakeAnySlice(vertices), indices)
}
