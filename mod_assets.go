package meadow

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

type AssetId string

// TextureFormat values match the wgpu enum so the render layer can
// cast them straight through. Assets themselves stay GPU-agnostic.
type TextureFormat uint32

const (
	TextureFormatR8Unorm    TextureFormat = 0x00000001
	TextureFormatRGBA8Unorm TextureFormat = 0x00000012
)

// maxTextureEdge bounds loaded texture dimensions; larger images are
// resampled down before upload.
const maxTextureEdge = 256

type AssetServer struct {
	meshes   map[AssetId]MeshAsset
	textures map[AssetId]TextureAsset
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(&AssetServer{
		meshes:   make(map[AssetId]MeshAsset),
		textures: make(map[AssetId]TextureAsset),
	})
}

type MeshAsset struct {
	version  uint
	vertices AnySlice
	indices  []uint16
}

type TextureAsset struct {
	version uint
	texels  []uint8
	width   uint32
	height  uint32
	format  TextureFormat
}

func (server AssetServer) CreateMesh(vertices AnySlice, indices []uint16) AssetId {
	id := makeAssetId()

	server.meshes[id] = MeshAsset{
		version:  0,
		vertices: vertices,
		indices:  indices,
	}

	return id
}

func (server AssetServer) CreateTexture(texels []uint8, texWidth uint32, texHeight uint32, format TextureFormat) AssetId {
	id := makeAssetId()

	server.textures[id] = TextureAsset{
		version: 0,
		texels:  texels,
		width:   texWidth,
		height:  texHeight,
		format:  format,
	}

	return id
}

// LoadTexture reads a PNG from disk and registers it as an RGBA
// texture asset.
func (server AssetServer) LoadTexture(filename string) (AssetId, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("open texture %s: %w", filename, err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode texture %s: %w", filename, err)
	}

	rgbaImg := toRGBA(img)
	rgbaImg = clampTextureSize(rgbaImg)

	bounds := rgbaImg.Bounds()
	id := makeAssetId()
	server.textures[id] = TextureAsset{
		version: 0,
		texels:  rgbaImg.Pix,
		width:   uint32(bounds.Dx()),
		height:  uint32(bounds.Dy()),
		format:  TextureFormatRGBA8Unorm,
	}

	return id, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Copy(rgba, image.Point{}, img, bounds, draw.Src, nil)
	return rgba
}

func clampTextureSize(img *image.RGBA) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxTextureEdge && h <= maxTextureEdge {
		return img
	}

	scale := float64(maxTextureEdge) / float64(max(w, h))
	dstW := max(int(float64(w)*scale+0.5), 1)
	dstH := max(int(float64(h)*scale+0.5), 1)

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
