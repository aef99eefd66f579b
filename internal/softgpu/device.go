// Package softgpu is a CPU implementation of the render backend. It draws the
// same passes as the GL renderer into an in-memory framebuffer, shading
// fragments with the scene lighting model, so frames can be produced headless.
package softgpu

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"raft/internal/render"
)

var (
	// ErrInvalidSize is returned for framebuffers or textures with no pixels.
	ErrInvalidSize = errors.New("invalid size")

	// ErrUnknownHandle is returned when replacing a texture that was never uploaded.
	ErrUnknownHandle = errors.New("unknown handle")
)

type mesh struct {
	data   []float32
	layout render.Layout
}

// Device is a framebuffer with a depth buffer and the fixed-function state the
// sequencer toggles. It implements render.Backend and render.Uploader.
type Device struct {
	width, height int
	color         []mgl32.Vec3
	depth         []float32

	cull      bool
	depthFunc render.DepthFunc

	next     uint32
	meshes   map[render.Mesh]mesh
	textures map[render.Texture]*texture
	cubes    map[render.Texture]*cubemap

	solid   render.SolidPass
	surface render.SurfacePass
}

// NewDevice allocates a width x height framebuffer.
func NewDevice(width, height int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("framebuffer %dx%d: %w", width, height, ErrInvalidSize)
	}
	return &Device{
		width:    width,
		height:   height,
		color:    make([]mgl32.Vec3, width*height),
		depth:    make([]float32, width*height),
		meshes:   make(map[render.Mesh]mesh),
		textures: make(map[render.Texture]*texture),
		cubes:    make(map[render.Texture]*cubemap),
	}, nil
}

// Size returns the framebuffer dimensions.
func (d *Device) Size() (width, height int) { return d.width, d.height }

// Aspect is width over height.
func (d *Device) Aspect() float32 { return float32(d.width) / float32(d.height) }

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

// UploadMesh stores a copy of the vertex data.
func (d *Device) UploadMesh(vertices []float32, layout render.Layout) (render.Mesh, error) {
	n := layout.FloatsPerVertex()
	if len(vertices) == 0 || len(vertices)%(n*3) != 0 {
		return 0, fmt.Errorf("mesh of %d floats is not whole triangles of %d-float vertices", len(vertices), n)
	}
	h := render.Mesh(d.handle())
	d.meshes[h] = mesh{data: append([]float32(nil), vertices...), layout: layout}
	return h, nil
}

// Clear fills the colour buffer and resets depth to the far plane.
func (d *Device) Clear(c mgl32.Vec4) {
	rgb := c.Vec3()
	for i := range d.color {
		d.color[i] = rgb
		d.depth[i] = 1
	}
}

func (d *Device) SetCullFace(enabled bool) { d.cull = enabled }
func (d *Device) SetDepthFunc(f render.DepthFunc) { d.depthFunc = f }

// CullFace reports the current culling state.
func (d *Device) CullFace() bool { return d.cull }

// DepthFunc reports the current depth comparison.
func (d *Device) DepthFunc() render.DepthFunc { return d.depthFunc }

// Depth returns the stored depth at a pixel, in [0, 1].
func (d *Device) Depth(x, y int) float32 { return d.depth[y*d.width+x] }

// At returns the colour at a pixel, unclamped.
func (d *Device) At(x, y int) mgl32.Vec3 { return d.color[y*d.width+x] }

// Image resolves the colour buffer to an opaque 8-bit image.
func (d *Device) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, d.width, d.height))
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			c := d.color[y*d.width+x]
			img.SetNRGBA(x, y, color.NRGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: 255})
		}
	}
	return img
}

func to8(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
