package meadow

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVertexBufferLayout_MeshVertex(t *testing.T) {
	layout := createVertexBufferLayout(meshVertex{})

	assert.Equal(t, uint64(32), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)
	require.Len(t, layout.Attributes, 3)

	assert.Equal(t, wgpu.VertexAttribute{ShaderLocation: 0, Offset: 0, Format: wgpu.VertexFormatFloat32x3}, layout.Attributes[0])
	assert.Equal(t, wgpu.VertexAttribute{ShaderLocation: 1, Offset: 12, Format: wgpu.VertexFormatFloat32x3}, layout.Attributes[1])
	assert.Equal(t, wgpu.VertexAttribute{ShaderLocation: 2, Offset: 24, Format: wgpu.VertexFormatFloat32x2}, layout.Attributes[2])
}

func TestCreateVertexBufferLayout_UntaggedFieldsAdvanceOffset(t *testing.T) {
	type paddedVertex struct {
		pos [3]float32 `meadow:"layout" location:"0" format:"float3"`
		_   [4]byte
		uv  [2]float32 `meadow:"layout" location:"1" format:"float2"`
	}

	layout := createVertexBufferLayout(paddedVertex{})

	assert.Equal(t, uint64(24), layout.ArrayStride)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, uint64(0), layout.Attributes[0].Offset)
	assert.Equal(t, uint64(16), layout.Attributes[1].Offset, "padding bytes still count toward the offset")
}

func TestCreateVertexBufferLayout_RejectsNonStructs(t *testing.T) {
	assert.Panics(t, func() { createVertexBufferLayout([]float32{1, 2, 3}) })
}

func TestCreateInstanceMatrixLayout(t *testing.T) {
	layout := createInstanceMatrixLayout()

	assert.Equal(t, uint64(64), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, layout.StepMode)
	require.Len(t, layout.Attributes, 4)

	// One mat4 split across four vec4 shader locations.
	for i, attr := range layout.Attributes {
		assert.Equal(t, uint32(3+i), attr.ShaderLocation)
		assert.Equal(t, uint64(16*i), attr.Offset)
		assert.Equal(t, wgpu.VertexFormatFloat32x4, attr.Format)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, wgpu.VertexFormatFloat32x2, parseFormat("float2"))
	assert.Equal(t, wgpu.VertexFormatFloat32x3, parseFormat("float3"))
	assert.Equal(t, wgpu.VertexFormatFloat32x4, parseFormat("float4"))

	assert.Panics(t, func() { parseFormat("byte4") })
}

func TestToBufferBytes_UniformSizes(t *testing.T) {
	// WGSL struct sizes; a mismatch here corrupts every draw.
	assert.Len(t, toBufferBytes(sceneUniform{}), 160)
	assert.Len(t, toBufferBytes(modelUniform{}), 64)
	assert.Len(t, toBufferBytes(make([]mgl32.Mat4, 3)), 3*64)
}

func TestToBufferBytes_ColumnMajorLittleEndian(t *testing.T) {
	uniform := modelUniform{Model: mgl32.Translate3D(1, 2, 3)}
	raw := toBufferBytes(uniform)
	require.Len(t, raw, 64)

	floatAt := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4 : i*4+4]))
	}

	assert.Equal(t, float32(1), floatAt(0), "m00")
	// Translation lives in the fourth column for column-major mat4.
	assert.Equal(t, float32(1), floatAt(12))
	assert.Equal(t, float32(2), floatAt(13))
	assert.Equal(t, float32(3), floatAt(14))
	assert.Equal(t, float32(1), floatAt(15))
}

func TestToBufferBytes_RejectsUnsupportedFields(t *testing.T) {
	assert.Panics(t, func() { toBufferBytes(struct{ X float64 }{1}) })
}

func TestAnySlice(t *testing.T) {
	verts := []meshVertex{
		{pos: [3]float32{1, 2, 3}},
		{pos: [3]float32{4, 5, 6}},
	}

	s := MakeAnySlice(verts)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 32, s.ElementSize())

	raw := untypedSliceToWgpuBytes(s)
	require.Len(t, raw, 64)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(raw[:4])))

	assert.Panics(t, func() { MakeAnySlice(42) })
}

func TestAnySlice_Empty(t *testing.T) {
	s := MakeAnySlice([]meshVertex{})

	assert.Equal(t, 0, s.Len())
	if s.DataPointer() != nil {
		t.Error("empty slice should yield a nil data pointer")
	}
	assert.Nil(t, untypedSliceToWgpuBytes(s))
}

func TestWgpuBytesPerPixel(t *testing.T) {
	assert.Equal(t, uint32(1), wgpuBytesPerPixel(wgpu.TextureFormatR8Unorm))
	assert.Equal(t, uint32(4), wgpuBytesPerPixel(wgpu.TextureFormatRGBA8Unorm))
	assert.Equal(t, uint32(4), wgpuBytesPerPixel(wgpu.TextureFormatBGRA8Unorm))

	assert.Panics(t, func() { wgpuBytesPerPixel(wgpu.TextureFormatDepth24Plus) })
}
