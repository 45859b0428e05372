package meadow

import (
	"fmt"
	"reflect"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/meadow3d/meadow/shaders"
)

// MeshComponent makes an entity visible: one mesh asset drawn with one
// texture asset.
type MeshComponent struct {
	Mesh    AssetId
	Texture AssetId
}

// Layout mirrors SceneUniform in the shaders; keep both in sync.
type sceneUniform struct {
	ViewProj  mgl32.Mat4
	CameraPos mgl32.Vec4
	SunDir    mgl32.Vec4
	SunColor  mgl32.Vec4
	Ambient   mgl32.Vec4
	FogColor  mgl32.Vec4
	FogParams mgl32.Vec4
}

type modelUniform struct {
	Model mgl32.Mat4
}

type renderState struct {
	meshPipeline  *wgpu.RenderPipeline
	grassPipeline *wgpu.RenderPipeline

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
	depthWidth   uint32
	depthHeight  uint32

	sampler *wgpu.Sampler

	hasCamera       bool
	sceneUniform    sceneUniform
	sceneBuffer     *wgpu.Buffer
	meshSceneGroup  *wgpu.BindGroup
	grassSceneGroup *wgpu.BindGroup

	meshEntries  map[EntityId]*meshEntry
	grassEntries map[EntityId]*grassEntry
}

type meshEntry struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
	modelBuffer  *wgpu.Buffer
	modelGroup   *wgpu.BindGroup
	textureGroup *wgpu.BindGroup
}

type grassEntry struct {
	splat grassLayer
	blade grassLayer
}

// grassLayer draws one instanced mesh of the field, either the ground
// splats or the blades.
type grassLayer struct {
	vertexBuffer   *wgpu.Buffer
	indexBuffer    *wgpu.Buffer
	indexCount     uint32
	instanceBuffer *wgpu.Buffer
	instanceCount  uint32
	textureGroup   *wgpu.BindGroup
	matrices       []mgl32.Mat4
}

type RendererModule struct{}

func (m RendererModule) Install(app *App, cmd *Commands) {
	t := reflect.TypeOf((*WindowState)(nil)).Elem()
	windowState, ok := app.resources[t].(*WindowState)
	if !ok {
		panic("RendererModule requires WindowModule to be installed first")
	}

	gpuState := createGpuState(windowState)

	meshPipeline := createRenderPipeline("scene", shaders.SceneWGSL, meshVertex{}, pipelineOptions{}, gpuState)
	grassPipeline := createRenderPipeline("grass", shaders.GrassWGSL, meshVertex{}, pipelineOptions{
		instanced:  true,
		alphaBlend: true,
		noCull:     true,
	}, gpuState)

	sceneBuffer := createBuffer("scene-uniform", sceneUniform{}, gpuState, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)

	rs := &renderState{
		meshPipeline:  meshPipeline,
		grassPipeline: grassPipeline,
		sampler:       createSampler(gpuState),
		sceneBuffer:   sceneBuffer,
		meshSceneGroup: createBindGroup(meshPipeline, 0, []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: sceneBuffer, Size: wgpu.WholeSize},
		}, gpuState.device),
		grassSceneGroup: createBindGroup(grassPipeline, 0, []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: sceneBuffer, Size: wgpu.WholeSize},
		}, gpuState.device),
		meshEntries:  map[EntityId]*meshEntry{},
		grassEntries: map[EntityId]*grassEntry{},
	}

	app.UseSystem(System(renderUniformSystem).InStage(PostUpdate))
	app.UseSystem(System(renderSystem).InStage(Render))

	app.Logger().Infof("Renderer ready, surface %dx%d", windowState.WindowWidth, windowState.WindowHeight)
	cmd.AddResources(gpuState, rs)
}

// renderUniformSystem rebuilds the per-frame scene uniform from the
// camera, the lights and the fog settings.
func renderUniformSystem(rs *renderState, fog *FogSettings, cmd *Commands) {
	var cam *CameraComponent
	MakeQuery1[CameraComponent](cmd).Map(func(id EntityId, c *CameraComponent) bool {
		cam = c
		return false
	})
	rs.hasCamera = cam != nil
	if cam == nil {
		return
	}

	rs.sceneUniform.ViewProj = cam.ViewProj()
	rs.sceneUniform.CameraPos = cam.Position.Vec4(1)

	rs.sceneUniform.SunDir = mgl32.Vec4{0, -1, 0, 0}
	rs.sceneUniform.SunColor = mgl32.Vec4{}
	rs.sceneUniform.Ambient = mgl32.Vec4{}
	MakeQuery1[LightComponent](cmd).Map(func(id EntityId, light *LightComponent) bool {
		color := mgl32.Vec4{light.Color[0], light.Color[1], light.Color[2], 0}.Mul(light.Intensity)
		switch light.Type {
		case LightTypeDirectional:
			dir := light.Direction
			if dir.Len() > 0 {
				dir = dir.Normalize()
			}
			rs.sceneUniform.SunDir = dir.Vec4(0)
			rs.sceneUniform.SunColor = color
		case LightTypeAmbient:
			rs.sceneUniform.Ambient = color
		}
		return true
	})

	near, far := fog.Near, fog.Far
	if far <= near {
		// Push the fog out of sight instead of dividing by zero.
		near, far = 1e8, 2e8
	}
	rs.sceneUniform.FogColor = mgl32.Vec4{fog.Color[0], fog.Color[1], fog.Color[2], 0}
	rs.sceneUniform.FogParams = mgl32.Vec4{near, far, 0, 0}
}

func renderSystem(rs *renderState, gpuState *GpuState, assets *AssetServer, cmd *Commands) {
	if gpuState.surfaceConfig.Width == 0 || gpuState.surfaceConfig.Height == 0 {
		return
	}
	if !rs.hasCamera {
		return
	}

	rs.ensureDepth(gpuState)

	nextTexture, err := gpuState.surface.GetCurrentTexture()
	if err != nil {
		panic(err)
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer view.Release()

	encoder, err := gpuState.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	if err := gpuState.queue.WriteBuffer(rs.sceneBuffer, 0, toBufferBytes(rs.sceneUniform)); err != nil {
		panic(err)
	}

	meshDraws := make([]*meshEntry, 0, len(rs.meshEntries))
	MakeQuery2[TransformComponent, MeshComponent](cmd).Map(
		func(id EntityId, transform *TransformComponent, mesh *MeshComponent) bool {
			entry := rs.meshEntry(id, mesh, gpuState, assets)
			uniform := modelUniform{Model: transform.ObjectToWorld()}
			if err := gpuState.queue.WriteBuffer(entry.modelBuffer, 0, toBufferBytes(uniform)); err != nil {
				panic(err)
			}
			meshDraws = append(meshDraws, entry)
			return true
		})

	grassDraws := make([]*grassEntry, 0, len(rs.grassEntries))
	MakeQuery1[GrassFieldComponent](cmd).Map(
		func(id EntityId, grass *GrassFieldComponent) bool {
			entry := rs.grassEntry(id, grass, gpuState, assets)
			if grass.Field.Dirty() {
				entry.splat.upload(grass.Field.Splats(), gpuState)
				entry.blade.upload(grass.Field.Blades(), gpuState)
				grass.Field.MarkClean()
			}
			grassDraws = append(grassDraws, entry)
			return true
		})

	fog := rs.sceneUniform.FogColor
	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: float64(fog.X()), G: float64(fog.Y()), B: float64(fog.Z()), A: 1.0},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            rs.depthView,
			DepthClearValue: 1.0,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
		},
	})
	defer renderPass.Release()

	renderPass.SetPipeline(rs.meshPipeline)
	renderPass.SetBindGroup(0, rs.meshSceneGroup, nil)
	for _, entry := range meshDraws {
		renderPass.SetBindGroup(1, entry.modelGroup, nil)
		renderPass.SetBindGroup(2, entry.textureGroup, nil)
		renderPass.SetVertexBuffer(0, entry.vertexBuffer, 0, wgpu.WholeSize)
		renderPass.SetIndexBuffer(entry.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		renderPass.DrawIndexed(entry.indexCount, 1, 0, 0, 0)
	}

	// Splats first so the blades blend over them.
	renderPass.SetPipeline(rs.grassPipeline)
	renderPass.SetBindGroup(0, rs.grassSceneGroup, nil)
	for _, entry := range grassDraws {
		entry.splat.draw(renderPass)
		entry.blade.draw(renderPass)
	}

	if err := renderPass.End(); err != nil {
		panic(err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	gpuState.queue.Submit(cmdBuffer)
	gpuState.surface.Present()
}

func (rs *renderState) ensureDepth(gpuState *GpuState) {
	w := gpuState.surfaceConfig.Width
	h := gpuState.surfaceConfig.Height
	if rs.depthView != nil && rs.depthWidth == w && rs.depthHeight == h {
		return
	}
	if rs.depthView != nil {
		rs.depthView.Release()
		rs.depthTexture.Release()
	}
	rs.depthTexture, rs.depthView = createDepthTexture(gpuState)
	rs.depthWidth = w
	rs.depthHeight = h
}

func (rs *renderState) meshEntry(id EntityId, mesh *MeshComponent, gpuState *GpuState, assets *AssetServer) *meshEntry {
	if entry, ok := rs.meshEntries[id]; ok {
		return entry
	}

	meshAsset := lookupMesh(assets, mesh.Mesh)
	vertexBuffer, indexBuffer := createVertexIndexBuffers(meshAsset.vertices, meshAsset.indices, gpuState.device)
	modelBuffer := createBuffer("model-uniform", modelUniform{}, gpuState, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)

	entry := &meshEntry{
		vertexBuffer: vertexBuffer,
		indexBuffer:  indexBuffer,
		indexCount:   uint32(len(meshAsset.indices)),
		modelBuffer:  modelBuffer,
		modelGroup: createBindGroup(rs.meshPipeline, 1, []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: modelBuffer, Size: wgpu.WholeSize},
		}, gpuState.device),
		textureGroup: createBindGroup(rs.meshPipeline, 2, []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: createTextureFromAsset(lookupTexture(assets, mesh.Texture), gpuState)},
			{Binding: 1, Sampler: rs.sampler},
		}, gpuState.device),
	}
	rs.meshEntries[id] = entry
	return entry
}

func (rs *renderState) grassEntry(id EntityId, grass *GrassFieldComponent, gpuState *GpuState, assets *AssetServer) *grassEntry {
	if entry, ok := rs.grassEntries[id]; ok {
		return entry
	}

	count := grass.Field.Count()
	if count == 0 {
		// keep at least 1 element to avoid zero-sized buffers
		count = 1
	}

	entry := &grassEntry{
		splat: rs.makeGrassLayer("grass-splat", grass.SplatMesh, grass.SplatTexture, count, gpuState, assets),
		blade: rs.makeGrassLayer("grass-blade", grass.BladeMesh, grass.BladeTexture, count, gpuState, assets),
	}
	rs.grassEntries[id] = entry
	return entry
}

func (rs *renderState) makeGrassLayer(name string, mesh AssetId, texture AssetId, capacity int, gpuState *GpuState, assets *AssetServer) grassLayer {
	meshAsset := lookupMesh(assets, mesh)
	vertexBuffer, indexBuffer := createVertexIndexBuffers(meshAsset.vertices, meshAsset.indices, gpuState.device)

	return grassLayer{
		vertexBuffer:   vertexBuffer,
		indexBuffer:    indexBuffer,
		indexCount:     uint32(len(meshAsset.indices)),
		instanceBuffer: createInstanceBuffer(name, make([]mgl32.Mat4, capacity), gpuState.device),
		textureGroup: createBindGroup(rs.grassPipeline, 1, []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: createTextureFromAsset(lookupTexture(assets, texture), gpuState)},
			{Binding: 1, Sampler: rs.sampler},
		}, gpuState.device),
	}
}

func (l *grassLayer) upload(transforms []RenderTransform, gpuState *GpuState) {
	l.matrices = l.matrices[:0]
	for i := range transforms {
		l.matrices = append(l.matrices, transforms[i].ModelMatrix())
	}
	l.instanceCount = uint32(len(l.matrices))
	if l.instanceCount == 0 {
		return
	}
	if err := gpuState.queue.WriteBuffer(l.instanceBuffer, 0, toBufferBytes(l.matrices)); err != nil {
		panic(err)
	}
}

func (l *grassLayer) draw(renderPass *wgpu.RenderPassEncoder) {
	if l.instanceCount == 0 {
		return
	}
	renderPass.SetBindGroup(1, l.textureGroup, nil)
	renderPass.SetVertexBuffer(0, l.vertexBuffer, 0, wgpu.WholeSize)
	renderPass.SetVertexBuffer(1, l.instanceBuffer, 0, wgpu.WholeSize)
	renderPass.SetIndexBuffer(l.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	renderPass.DrawIndexed(l.indexCount, l.instanceCount, 0, 0, 0)
}

func createBindGroup(pipeline *wgpu.RenderPipeline, groupIndex uint32, entries []wgpu.BindGroupEntry, device *wgpu.Device) *wgpu.BindGroup {
	layout := pipeline.GetBindGroupLayout(groupIndex)
	defer layout.Release()

	group, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		panic(err)
	}
	return group
}

func lookupMesh(assets *AssetServer, id AssetId) *MeshAsset {
	meshAsset, ok := assets.meshes[id]
	if !ok {
		panic(fmt.Sprintf("unknown mesh asset %s", id))
	}
	return &meshAsset
}

func lookupTexture(assets *AssetServer, id AssetId) *TextureAsset {
	txAsset, ok := assets.textures[id]
	if !ok {
		panic(fmt.Sprintf("unknown texture asset %s", id))
	}
	return &txAsset
}
