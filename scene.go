package meadow

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

const sceneTextureEdge = 256

// SceneDef defines the initial state of a scene. Seed drives every
// procedural asset and the grass placement.
type SceneDef struct {
	Seed   int64
	Camera CameraDef
	Meshes []MeshObjectDef
	Lights []LightDef
	Grass  *GrassDef
	Fog    FogSettings
}

type CameraDef struct {
	Position    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	Fov         float32
	Near        float32
	Far         float32
	Speed       float32
	Sensitivity float32
}

// MeshObjectDef defines one textured mesh instantiation.
type MeshObjectDef struct {
	Shape   string     // "cube", "plane", "sphere"
	Size    mgl32.Vec3 // cube/plane half extents; sphere radius in x
	UvScale float32
	Texture string // "ground", "stone", "solid"
	Color   [4]uint8

	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	Surface *SurfaceComponent
	Marker  bool
	Spin    *Rotating
}

type LightDef struct {
	Type      LightType
	Direction mgl32.Vec3
	Color     [3]float32
	Intensity float32
}

type GrassDef struct {
	Params GrassParams

	// Zero values derive the visual sizes from Params.ParticleSize.
	BladeWidth  float32
	BladeHeight float32
	SplatRadius float32
}

// FogSettings doubles as the clear color, so distant geometry fades
// into the sky.
type FogSettings struct {
	Color [3]float32
	Near  float32
	Far   float32
}

// LoadScene iterates through the SceneDef and spawns entities.
func LoadScene(cmd *Commands, assets *AssetServer, scene *SceneDef, aspect float32) {
	spawnCamera(cmd, scene.Camera, aspect)

	for _, obj := range scene.Meshes {
		spawnMeshObject(cmd, assets, obj, scene.Seed)
	}

	for _, light := range scene.Lights {
		spawnLight(cmd, light)
	}

	if scene.Grass != nil {
		spawnGrass(cmd, assets, *scene.Grass, scene.Seed)
	}

	fog := scene.Fog
	cmd.AddResources(&fog)
}

func spawnCamera(cmd *Commands, def CameraDef, aspect float32) {
	fov := def.Fov
	if fov == 0 {
		fov = mgl32.DegToRad(60)
	}
	near := def.Near
	if near == 0 {
		near = 0.1
	}
	far := def.Far
	if far == 0 {
		far = 100
	}
	if aspect == 0 {
		aspect = 16.0 / 9.0
	}

	cmd.AddEntity(
		&CameraComponent{
			Position: def.Position,
			Yaw:      def.Yaw,
			Pitch:    def.Pitch,
			Fov:      fov,
			Aspect:   aspect,
			Near:     near,
			Far:      far,
		},
		&LookCameraComponent{
			Speed:       def.Speed,
			Sensitivity: def.Sensitivity,
		},
	)
}

func spawnMeshObject(cmd *Commands, assets *AssetServer, def MeshObjectDef, seed int64) {
	var mesh AssetId
	switch def.Shape {
	case "cube":
		mesh = assets.CreateCubeMesh(def.Size)
	case "plane":
		mesh = assets.CreatePlaneMesh(def.Size.X(), def.Size.Z(), def.UvScale)
	case "sphere":
		mesh = assets.CreateSphereMesh(def.Size.X(), 12, 18)
	default:
		panic("unknown mesh shape: " + def.Shape)
	}

	var texture AssetId
	switch def.Texture {
	case "ground":
		texture = assets.CreateGroundTexture(sceneTextureEdge, seed)
	case "stone":
		texture = assets.CreateStoneTexture(sceneTextureEdge, seed)
	case "solid":
		texture = assets.CreateSolidTexture(8, def.Color[0], def.Color[1], def.Color[2], def.Color[3])
	default:
		panic("unknown texture kind: " + def.Texture)
	}

	rotation := def.Rotation
	if rotation == (mgl32.Quat{}) {
		rotation = mgl32.QuatIdent()
	}
	scale := def.Scale
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}

	comps := []any{
		&TransformComponent{
			Position: def.Position,
			Rotation: rotation,
			Scale:    scale,
		},
		&MeshComponent{
			Mesh:    mesh,
			Texture: texture,
		},
	}

	if def.Surface != nil {
		surface := *def.Surface
		comps = append(comps, &surface)
	}
	if def.Marker {
		comps = append(comps, &MarkerComponent{})
	}
	if def.Spin != nil {
		spin := *def.Spin
		comps = append(comps, &spin)
	}

	cmd.AddEntity(comps...)
}

func spawnLight(cmd *Commands, def LightDef) {
	cmd.AddEntity(&LightComponent{
		Type:      def.Type,
		Direction: def.Direction,
		Color:     def.Color,
		Intensity: def.Intensity,
	})
}

func spawnGrass(cmd *Commands, assets *AssetServer, def GrassDef, seed int64) {
	params := def.Params

	bladeWidth := def.BladeWidth
	if bladeWidth == 0 {
		bladeWidth = 0.15 * params.ParticleSize
	}
	bladeHeight := def.BladeHeight
	if bladeHeight == 0 {
		bladeHeight = params.ParticleSize
	}
	splatRadius := def.SplatRadius
	if splatRadius == 0 {
		splatRadius = 0.5 * params.ParticleSize
	}

	field := NewGrassField(params, rand.New(rand.NewSource(seed)))

	cmd.AddEntity(&GrassFieldComponent{
		Field:        field,
		SplatMesh:    assets.CreatePlaneMesh(splatRadius, splatRadius, 1),
		SplatTexture: assets.CreateSplatTexture(sceneTextureEdge, seed),
		BladeMesh:    assets.CreateBladeQuadMesh(bladeWidth, bladeHeight),
		BladeTexture: assets.CreateBladeTexture(sceneTextureEdge, seed),
	})
}

// DefaultScene is the meadow demo: a grass field on a fenced-in lawn,
// one slowly tumbling obstacle block, and a marker dot that rides the
// attention point.
func DefaultScene(cfg Config) *SceneDef {
	return &SceneDef{
		Seed: cfg.Seed,
		Camera: CameraDef{
			Position: mgl32.Vec3{0, 1.6, 4},
			Yaw:      0,
			Pitch:    -15,
		},
		Meshes: []MeshObjectDef{
			{
				Shape:   "plane",
				Size:    mgl32.Vec3{20, 0, 20},
				UvScale: 10,
				Texture: "ground",
				Surface: &SurfaceComponent{
					Kind:       TargetFloor,
					Shape:      SurfaceQuad,
					HalfExtent: mgl32.Vec3{20, 0, 20},
				},
			},
			{
				Shape:    "cube",
				Size:     mgl32.Vec3{0.5, 0.5, 0.5},
				Texture:  "stone",
				Position: mgl32.Vec3{0, 1.5, 0},
				Scale:    mgl32.Vec3{0.6, 0.6, 0.6},
				Surface: &SurfaceComponent{
					Kind:       TargetObstacle,
					Shape:      SurfaceBox,
					HalfExtent: mgl32.Vec3{0.5, 0.5, 0.5},
				},
				Spin: &Rotating{Rate: mgl32.Vec3{0.3, 0.7, 0}},
			},
			{
				Shape:   "sphere",
				Size:    mgl32.Vec3{0.08, 0, 0},
				Texture: "solid",
				Color:   [4]uint8{255, 196, 64, 255},
				Marker:  true,
			},
		},
		Lights: []LightDef{
			{
				Type:      LightTypeDirectional,
				Direction: mgl32.Vec3{-0.4, -1, -0.3},
				Color:     [3]float32{1, 0.98, 0.92},
				Intensity: 1,
			},
			{
				Type:      LightTypeAmbient,
				Color:     [3]float32{0.45, 0.5, 0.55},
				Intensity: 0.35,
			},
		},
		Grass: &GrassDef{Params: cfg.Grass},
		Fog: FogSettings{
			Color: [3]float32{0.62, 0.72, 0.82},
			Near:  14,
			Far:   38,
		},
	}
}
