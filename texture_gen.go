package meadow

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Procedural texel generators for the built-in scene, all RGBA8.
// The same seed always yields the same texels.

const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = 3
)

func (server AssetServer) CreateGroundTexture(edge int, seed int64) AssetId {
	return server.CreateTexture(groundTexels(edge, seed), uint32(edge), uint32(edge), TextureFormatRGBA8Unorm)
}

func (server AssetServer) CreateSplatTexture(edge int, seed int64) AssetId {
	return server.CreateTexture(splatTexels(edge, seed), uint32(edge), uint32(edge), TextureFormatRGBA8Unorm)
}

func (server AssetServer) CreateBladeTexture(edge int, seed int64) AssetId {
	return server.CreateTexture(bladeTexels(edge, seed), uint32(edge), uint32(edge), TextureFormatRGBA8Unorm)
}

func (server AssetServer) CreateStoneTexture(edge int, seed int64) AssetId {
	return server.CreateTexture(stoneTexels(edge, seed), uint32(edge), uint32(edge), TextureFormatRGBA8Unorm)
}

func (server AssetServer) CreateSolidTexture(edge int, r, g, b, a uint8) AssetId {
	return server.CreateTexture(solidTexels(edge, r, g, b, a), uint32(edge), uint32(edge), TextureFormatRGBA8Unorm)
}

// groundTexels blends two soil greens over low-frequency noise.
func groundTexels(edge int, seed int64) []uint8 {
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
	texels := make([]uint8, edge*edge*4)

	for y := 0; y < edge; y++ {
		for x := 0; x < edge; x++ {
			n := noise.Noise2D(float64(x)/float64(edge)*6, float64(y)/float64(edge)*6)
			t := (n + 1) / 2

			i := (y*edge + x) * 4
			texels[i+0] = lerp8(46, 84, t)
			texels[i+1] = lerp8(94, 132, t)
			texels[i+2] = lerp8(38, 58, t)
			texels[i+3] = 255
		}
	}
	return texels
}

// splatTexels is a circular grass patch, opaque in the middle and
// fading out at the rim, roughened with noise.
func splatTexels(edge int, seed int64) []uint8 {
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
	texels := make([]uint8, edge*edge*4)

	for y := 0; y < edge; y++ {
		for x := 0; x < edge; x++ {
			dx := float64(x)/float64(edge-1) - 0.5
			dy := float64(y)/float64(edge-1) - 0.5

			fade := 1 - math.Sqrt(dx*dx+dy*dy)*2
			if fade < 0 {
				fade = 0
			}

			n := (noise.Noise2D(dx*5+1, dy*5+1) + 1) / 2
			alpha := fade * (0.55 + 0.45*n)

			i := (y*edge + x) * 4
			texels[i+0] = lerp8(44, 70, n)
			texels[i+1] = lerp8(118, 150, n)
			texels[i+2] = lerp8(48, 66, n)
			texels[i+3] = uint8(alpha*255 + 0.5)
		}
	}
	return texels
}

// bladeTexels is a single blade silhouette: narrow at the tip (v=0),
// wide at the root, transparent outside.
func bladeTexels(edge int, seed int64) []uint8 {
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
	texels := make([]uint8, edge*edge*4)

	for y := 0; y < edge; y++ {
		v := float64(y) / float64(edge-1)
		halfWidth := 0.06 + 0.22*v

		for x := 0; x < edge; x++ {
			u := float64(x)/float64(edge-1) - 0.5

			alpha := 0.0
			if d := halfWidth - math.Abs(u); d > 0 {
				alpha = d / halfWidth
			}

			n := (noise.Noise2D(u*8+1, v*8+1) + 1) / 2
			shade := 0.72 + 0.28*n

			i := (y*edge + x) * 4
			texels[i+0] = uint8(58 * shade)
			texels[i+1] = uint8(142 * shade)
			texels[i+2] = uint8(62 * shade)
			texels[i+3] = uint8(alpha*255 + 0.5)
		}
	}
	return texels
}

// stoneTexels is flat gray broken up with noise, for the obstacle.
func stoneTexels(edge int, seed int64) []uint8 {
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
	texels := make([]uint8, edge*edge*4)

	for y := 0; y < edge; y++ {
		for x := 0; x < edge; x++ {
			n := (noise.Noise2D(float64(x)/float64(edge)*8, float64(y)/float64(edge)*8) + 1) / 2

			i := (y*edge + x) * 4
			texels[i+0] = lerp8(96, 148, n)
			texels[i+1] = lerp8(98, 150, n)
			texels[i+2] = lerp8(104, 156, n)
			texels[i+3] = 255
		}
	}
	return texels
}

func solidTexels(edge int, r, g, b, a uint8) []uint8 {
	texels := make([]uint8, edge*edge*4)
	for i := 0; i < len(texels); i += 4 {
		texels[i+0] = r
		texels[i+1] = g
		texels[i+2] = b
		texels[i+3] = a
	}
	return texels
}

func lerp8(a, b float64, t float64) uint8 {
	v := a + (b-a)*t
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
