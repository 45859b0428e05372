package meadow

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// GrassParams tunes the field. Rates are per frame, not per second,
// which keeps the feel of the original demo loop.
type GrassParams struct {
	Count          int     `json:"count"`
	Falloff        float32 `json:"falloff"`
	GrowthRate     float32 `json:"growth_rate"`
	ShrinkRate     float32 `json:"shrink_rate"`
	NearThreshold  float32 `json:"near_threshold"`
	FaintThreshold float32 `json:"faint_threshold"`
	RecycleRadius  float32 `json:"recycle_radius"`
	SeedIntensity  float32 `json:"seed_intensity"`
	ParticleSize   float32 `json:"particle_size"`
	ParkDepth      float32 `json:"park_depth"`
	SplatBias      float32 `json:"splat_bias"`
}

func DefaultGrassParams() GrassParams {
	return GrassParams{
		Count:          200,
		Falloff:        1.5,
		GrowthRate:     0.01,
		ShrinkRate:     0.01,
		NearThreshold:  0.7,
		FaintThreshold: 0.01,
		RecycleRadius:  0.6,
		SeedIntensity:  0.1,
		ParticleSize:   1.0,
		ParkDepth:      10,
		SplatBias:      0.01,
	}
}

// RenderTransform is one instance of an instanced draw.
type RenderTransform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

func (rt RenderTransform) ModelMatrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(rt.Position.X(), rt.Position.Y(), rt.Position.Z())
	rotate := rt.Rotation.Mat4()
	scale := mgl32.Scale3D(rt.Scale, rt.Scale, rt.Scale)
	return translate.Mul4(rotate).Mul4(scale)
}

// GrassField is a fixed pool of particles that sprout where attention
// lingers and fade where it does not. Each particle renders twice, as
// a ground splat and as a blade.
type GrassField struct {
	params      GrassParams
	rng         *rand.Rand
	positions   []mgl32.Vec3
	intensities []float32
	splats      []RenderTransform
	blades      []RenderTransform
	dirty       bool
}

// NewGrassField parks every particle below the floor at intensity
// zero. The rng drives recycling placement; pass a seeded one for
// reproducible runs.
func NewGrassField(params GrassParams, rng *rand.Rand) *GrassField {
	f := &GrassField{
		params:      params,
		rng:         rng,
		positions:   make([]mgl32.Vec3, params.Count),
		intensities: make([]float32, params.Count),
		splats:      make([]RenderTransform, params.Count),
		blades:      make([]RenderTransform, params.Count),
		dirty:       true,
	}

	for i := range f.positions {
		f.positions[i] = mgl32.Vec3{0, -params.ParkDepth, 0}
		f.splats[i] = f.splatTransform(i, f.positions[i], 0)
		f.blades[i] = f.bladeTransform(i, f.positions[i], 0, 0)
	}

	return f
}

func (f *GrassField) Count() int                { return len(f.positions) }
func (f *GrassField) Splats() []RenderTransform { return f.splats }
func (f *GrassField) Blades() []RenderTransform { return f.blades }
func (f *GrassField) Dirty() bool               { return f.dirty }
func (f *GrassField) MarkClean()                { f.dirty = false }

// Step advances the field one frame. Particles inside the attention
// falloff grow toward the local heat, everyone else decays. At most
// one particle per frame is recycled: while too few particles sit near
// the attention point and the faintest one has all but died, the
// faintest respawns next to the attention point, but only while
// attention rests on the floor. Otherwise the faintest is culled
// toward zero so the pool keeps a candidate ready.
func (f *GrassField) Step(elapsed float32, at AttentionPoint) {
	n := len(f.positions)
	if n == 0 {
		return
	}

	nearCount := 0
	faintest := 0

	for i := 0; i < n; i++ {
		pos := f.positions[i]
		intensity := f.intensities[i]

		delta := pos.Sub(at.Pos)
		heat := 1 - f.params.Falloff*delta.Dot(delta)
		if heat < 0 {
			heat = 0
		}

		if heat > 0 {
			intensity += f.params.GrowthRate * (heat - intensity)
			if intensity > 1 {
				intensity = 1
			}
			if intensity < 0 {
				intensity = 0
			}
			if heat > f.params.NearThreshold {
				nearCount++
			}
		} else {
			intensity -= (1 - intensity) * f.params.ShrinkRate
			if intensity < 0 {
				intensity = 0
			}
		}

		f.intensities[i] = intensity
		// Strict less keeps the first index on ties.
		if intensity < f.intensities[faintest] {
			faintest = i
		}

		f.splats[i] = f.splatTransform(i, pos, intensity)
		f.blades[i] = f.bladeTransform(i, pos, intensity, elapsed)
	}

	faintVal := f.intensities[faintest]
	if float32(nearCount) < 0.5*float32(n) && faintVal < f.params.FaintThreshold {
		if at.Target == TargetFloor {
			f.positions[faintest] = mgl32.Vec3{
				at.Pos.X() + (f.rng.Float32()*2-1)*f.params.RecycleRadius,
				0,
				at.Pos.Z() + (f.rng.Float32()*2-1)*f.params.RecycleRadius,
			}
			f.intensities[faintest] = f.params.SeedIntensity
		}
		// Attention off the floor relocates nothing this frame.
	} else {
		f.intensities[faintest] = faintVal * 0.5
	}

	f.dirty = true
}

// splatTransform lays the particle's ground patch flat, twisted in
// place so the pool never looks stamped. The twist angle is the raw
// particle index in radians, left unwrapped.
func (f *GrassField) splatTransform(i int, pos mgl32.Vec3, intensity float32) RenderTransform {
	scale := intensity - 0.2
	if scale < 0 {
		scale = 0
	}

	return RenderTransform{
		Position: pos.Add(mgl32.Vec3{0, f.params.SplatBias, 0}),
		Rotation: mgl32.QuatRotate(float32(i), mgl32.Vec3{0, 1, 0}),
		Scale:    scale * 2,
	}
}

// bladeTransform raises the blade out of the ground with intensity and
// sways it on a per-particle phase.
func (f *GrassField) bladeTransform(i int, pos mgl32.Vec3, intensity float32, elapsed float32) RenderTransform {
	lift := (intensity - 0.5) * f.params.ParticleSize * 1.2
	sway := 0.1 * float32(math.Sin(float64(3*elapsed+float32(i))))

	base := mgl32.QuatRotate(math.Pi/4, mgl32.Vec3{0, 1, 0})
	lean := mgl32.QuatRotate(sway, mgl32.Vec3{1, 0, 0})

	return RenderTransform{
		Position: pos.Add(mgl32.Vec3{0, lift, 0}),
		Rotation: base.Mul(lean),
		Scale:    1,
	}
}

// GrassFieldComponent ties a field to the assets it renders with.
type GrassFieldComponent struct {
	Field        *GrassField
	SplatMesh    AssetId
	SplatTexture AssetId
	BladeMesh    AssetId
	BladeTexture AssetId
}

type GrassModule struct{}

func (m GrassModule) Install(app *App, cmd *Commands) {
	app.UseSystem(System(grassSystem).InStage(Update))
}

func grassSystem(time *Time, at *AttentionPoint, cmd *Commands) {
	MakeQuery1[GrassFieldComponent](cmd).Map(func(eid EntityId, grass *GrassFieldComponent) bool {
		grass.Field.Step(time.Elapsed, *at)
		return true
	})
}
