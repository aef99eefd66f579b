package softgpu

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"raft/internal/assets"
	"raft/internal/render"
)

// texture is a 2D image sampled with nearest filtering. Power-of-two images
// repeat; others clamp to the edge, as the GL loader configures them.
type texture struct {
	img    *image.NRGBA
	repeat bool
}

// cubemap faces are in GL target order: +X, -X, +Y, -Y, +Z, -Z.
type cubemap struct {
	faces [6]*image.NRGBA
}

// UploadTexture stores img as a 2D texture. Row 0 of the image is t = 0.
func (d *Device) UploadTexture(img image.Image) (render.Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return 0, fmt.Errorf("texture: %w", ErrInvalidSize)
	}
	h := render.Texture(d.handle())
	d.textures[h] = &texture{
		img:    assets.ToNRGBA(img),
		repeat: assets.IsPowerOfTwo(b.Dx()) && assets.IsPowerOfTwo(b.Dy()),
	}
	return h, nil
}

// ReplaceTexture swaps the image behind an existing texture.
func (d *Device) ReplaceTexture(h render.Texture, img image.Image) error {
	if _, ok := d.textures[h]; !ok {
		return fmt.Errorf("texture %d: %w", h, ErrUnknownHandle)
	}
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("texture: %w", ErrInvalidSize)
	}
	d.textures[h] = &texture{
		img:    assets.ToNRGBA(img),
		repeat: assets.IsPowerOfTwo(b.Dx()) && assets.IsPowerOfTwo(b.Dy()),
	}
	return nil
}

// UploadCubemap stores six faces in GL target order.
func (d *Device) UploadCubemap(faces [6]image.Image) (render.Texture, error) {
	c, err := newCubemap(faces)
	if err != nil {
		return 0, err
	}
	h := render.Texture(d.handle())
	d.cubes[h] = c
	return h, nil
}

// ReplaceCubemap swaps the faces behind an existing cubemap.
func (d *Device) ReplaceCubemap(h render.Texture, faces [6]image.Image) error {
	if _, ok := d.cubes[h]; !ok {
		return fmt.Errorf("cubemap %d: %w", h, ErrUnknownHandle)
	}
	c, err := newCubemap(faces)
	if err != nil {
		return err
	}
	d.cubes[h] = c
	return nil
}

func newCubemap(faces [6]image.Image) (*cubemap, error) {
	var c cubemap
	for i, f := range faces {
		if f == nil || f.Bounds().Empty() {
			return nil, fmt.Errorf("cubemap face %s: %w", assets.FaceNames[i], ErrInvalidSize)
		}
		c.faces[i] = assets.ToNRGBA(f)
	}
	return &c, nil
}

var opaqueBlack = mgl32.Vec4{0, 0, 0, 1}

// sample2D returns the texel at (u, v). Unknown handles sample opaque black,
// like an incomplete texture in GL.
func (d *Device) sample2D(h render.Texture, u, v float32) mgl32.Vec4 {
	t, ok := d.textures[h]
	if !ok {
		return opaqueBlack
	}
	b := t.img.Bounds()
	x := texel(u, b.Dx(), t.repeat)
	y := texel(v, b.Dy(), t.repeat)
	return nrgbaAt(t.img, b.Min.X+x, b.Min.Y+y)
}

func texel(c float32, size int, repeat bool) int {
	if repeat {
		c -= float32(math.Floor(float64(c)))
	}
	i := int(math.Floor(float64(c) * float64(size)))
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

// sampleCube looks up dir using the GL face selection table.
func (d *Device) sampleCube(h render.Texture, dir mgl32.Vec3) mgl32.Vec4 {
	c, ok := d.cubes[h]
	if !ok {
		return opaqueBlack
	}
	face, s, t := CubeFace(dir)
	img := c.faces[face]
	b := img.Bounds()
	return nrgbaAt(img, b.Min.X+texel(s, b.Dx(), false), b.Min.Y+texel(t, b.Dy(), false))
}

// CubeFace selects the cube face for a direction and returns the face index
// (GL target order) and its s, t coordinates in [0, 1].
func CubeFace(dir mgl32.Vec3) (face int, s, t float32) {
	x, y, z := dir[0], dir[1], dir[2]
	ax, ay, az := abs32(x), abs32(y), abs32(z)

	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if x >= 0 {
			face, sc, tc = 0, -z, -y
		} else {
			face, sc, tc = 1, z, -y
		}
	case ay >= az:
		ma = ay
		if y >= 0 {
			face, sc, tc = 2, x, z
		} else {
			face, sc, tc = 3, x, -z
		}
	default:
		ma = az
		if z >= 0 {
			face, sc, tc = 4, x, -y
		} else {
			face, sc, tc = 5, -x, -y
		}
	}
	if ma == 0 {
		return 0, 0.5, 0.5
	}
	return face, (sc/ma + 1) / 2, (tc/ma + 1) / 2
}

func nrgbaAt(img *image.NRGBA, x, y int) mgl32.Vec4 {
	c := img.NRGBAAt(x, y)
	return mgl32.Vec4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
