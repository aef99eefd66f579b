// Package render sequences a frame of the raft scene against a drawing backend.
// The GL renderer and the software rasterizer both implement Backend, so the
// pass order and state toggles live in exactly one place.
package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"raft/internal/scene"
)

// Mesh and Texture are backend-owned handles. Zero is never a valid handle.
type (
	Mesh    uint32
	Texture uint32
)

// DepthFunc selects the depth comparison.
type DepthFunc uint8

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
)

func (d DepthFunc) String() string {
	if d == DepthLessEqual {
		return "LEQUAL"
	}
	return "LESS"
}

// Layout describes the vertex format of an uploaded mesh.
type Layout uint8

const (
	// LayoutLit is position/normal/UV interleaved at stride 32.
	LayoutLit Layout = iota
	// LayoutPosition is bare vec3 positions, used by the skybox.
	LayoutPosition
)

// FloatsPerVertex returns the float count of one vertex in the layout.
func (l Layout) FloatsPerVertex() int {
	if l == LayoutPosition {
		return scene.SkyboxFloatsPerVertex
	}
	return scene.FloatsPerVertex
}

// SolidPass is the per-pass state of the lit solid program.
type SolidPass struct {
	Projection, View mgl32.Mat4
	ViewPos          mgl32.Vec3
	SunDir, SunColor mgl32.Vec3
	TorchPos         mgl32.Vec3
	TorchColor       mgl32.Vec3
	Skybox           Texture // environment for reflective draws
}

// SolidDraw is one draw call of the solid program.
type SolidDraw struct {
	Name          string
	Mesh          Mesh
	Model         mgl32.Mat4
	Texture       Texture
	UseTexture    bool
	ObjectColor   mgl32.Vec3
	UseReflection bool
	Reflectivity  float32
}

// SurfacePass is the per-pass state of the animated surface program.
type SurfacePass struct {
	Projection, View     mgl32.Mat4
	ViewPos              mgl32.Vec3
	LightPos             mgl32.Vec3
	TorchPos, TorchColor mgl32.Vec3
}

// SurfaceDraw is one draw call of the surface program. The mesh is displaced
// by the wave field at Time with z scrolled by Time*SpeedZ.
type SurfaceDraw struct {
	Name       string
	Mesh       Mesh
	Model      mgl32.Mat4
	Time       float32
	SpeedZ     float32
	IsWater    bool
	Texture    Texture
	UseTexture bool
	BaseColor  mgl32.Vec4 // cloth colour when UseTexture is false
}

// SkyboxPass draws the environment cube at maximum depth.
type SkyboxPass struct {
	Mesh             Mesh
	Projection, View mgl32.Mat4
	Skybox           Texture
}

// Backend is the draw-call surface a frame is emitted to.
type Backend interface {
	Clear(color mgl32.Vec4)
	SetCullFace(enabled bool)
	SetDepthFunc(f DepthFunc)

	BeginSolid(p SolidPass)
	DrawSolid(d SolidDraw)

	BeginSurface(p SurfacePass)
	DrawSurface(d SurfaceDraw)

	DrawSkybox(p SkyboxPass)
}

// Uploader creates meshes on a backend.
type Uploader interface {
	UploadMesh(vertices []float32, layout Layout) (Mesh, error)
}

// Meshes are the scene's uploaded vertex buffers.
type Meshes struct {
	Cube   Mesh
	Bird   Mesh
	Ocean  Mesh
	Sail   Mesh
	Skybox Mesh
}

// Textures are the scene's texture handles. Loaders hand these out before the
// pixels arrive, so they are valid from the first frame.
type Textures struct {
	Box    Texture
	Wood   Texture
	Sail   Texture
	Skybox Texture
}

// UploadMeshes generates the ocean and sail grids and uploads every mesh.
func UploadMeshes(u Uploader) (Meshes, error) {
	ocean, err := scene.GenerateGrid(scene.OceanSize, scene.OceanSize, scene.OceanSubdivisions)
	if err != nil {
		return Meshes{}, fmt.Errorf("ocean grid: %w", err)
	}
	sail, err := scene.GenerateGrid(scene.SailWidth, scene.SailHeight, scene.SailSubdivisions)
	if err != nil {
		return Meshes{}, fmt.Errorf("sail grid: %w", err)
	}

	var m Meshes
	uploads := []struct {
		name   string
		dst    *Mesh
		data   []float32
		layout Layout
	}{
		{"cube", &m.Cube, scene.CubeVertices, LayoutLit},
		{"bird", &m.Bird, scene.BirdVertices, LayoutLit},
		{"ocean", &m.Ocean, ocean.Vertices, LayoutLit},
		{"sail", &m.Sail, sail.Vertices, LayoutLit},
		{"skybox", &m.Skybox, scene.SkyboxVertices, LayoutPosition},
	}
	for _, up := range uploads {
		h, err := u.UploadMesh(up.data, up.layout)
		if err != nil {
			return Meshes{}, fmt.Errorf("upload %s mesh: %w", up.name, err)
		}
		*up.dst = h
	}
	return m, nil
}
