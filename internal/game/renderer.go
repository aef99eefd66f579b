package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"raft/internal/render"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type glMesh struct {
	vao, vbo uint32
	count    int32
}

// Renderer is the OpenGL implementation of render.Backend. Mesh and texture
// handles are the GL object names.
type Renderer struct {
	// Solid program: lit meshes with optional texture and skybox reflection.
	solidProg      uint32
	sModel         int32
	sView          int32
	sProjection    int32
	sViewPos       int32
	sSunDir        int32
	sSunColor      int32
	sTorchPos      int32
	sTorchColor    int32
	sTexture       int32
	sUseTexture    int32
	sObjectColor   int32
	sUseReflection int32
	sReflectivity  int32
	sSkybox        int32

	// Surface program: wave-displaced grids.
	surfaceProg uint32
	wModel      int32
	wView       int32
	wProjection int32
	wViewPos    int32
	wLightPos   int32
	wTorchPos   int32
	wTorchColor int32
	wTime       int32
	wSpeedZ     int32
	wIsWater    int32
	wTexture    int32
	wUseTexture int32
	wBaseColor  int32

	// Skybox program.
	skyProg     uint32
	kView       int32
	kProjection int32
	kSkybox     int32

	meshes map[render.Mesh]glMesh
	cubes  map[render.Texture]bool
}

func NewRenderer() (*Renderer, error) {
	solidProg, err := linkProgram(render.SolidVertexSrc, render.SolidFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("solid program: %w", err)
	}
	surfaceProg, err := linkProgram(render.SurfaceVertexSrc, render.SurfaceFragmentSrc)
	if err != nil {
		gl.DeleteProgram(solidProg)
		return nil, fmt.Errorf("surface program: %w", err)
	}
	skyProg, err := linkProgram(render.SkyboxVertexSrc, render.SkyboxFragmentSrc)
	if err != nil {
		gl.DeleteProgram(solidProg)
		gl.DeleteProgram(surfaceProg)
		return nil, fmt.Errorf("skybox program: %w", err)
	}

	r := &Renderer{
		solidProg:   solidProg,
		surfaceProg: surfaceProg,
		skyProg:     skyProg,
		meshes:      make(map[render.Mesh]glMesh),
		cubes:       make(map[render.Texture]bool),
	}

	// Solid uniforms.
	gl.UseProgram(solidProg)
	r.sModel = uniform(solidProg, render.UModel)
	r.sView = uniform(solidProg, render.UView)
	r.sProjection = uniform(solidProg, render.UProjection)
	r.sViewPos = uniform(solidProg, render.UViewPos)
	r.sSunDir = uniform(solidProg, render.USunDir)
	r.sSunColor = uniform(solidProg, render.USunColor)
	r.sTorchPos = uniform(solidProg, render.UTorchPos)
	r.sTorchColor = uniform(solidProg, render.UTorchColor)
	r.sTexture = uniform(solidProg, render.UTexture)
	r.sUseTexture = uniform(solidProg, render.UUseTexture)
	r.sObjectColor = uniform(solidProg, render.UObjectColor)
	r.sUseReflection = uniform(solidProg, render.UUseReflection)
	r.sReflectivity = uniform(solidProg, render.UReflectivity)
	r.sSkybox = uniform(solidProg, render.USkybox)
	gl.Uniform1i(r.sTexture, render.TextureUnit)
	gl.Uniform1i(r.sSkybox, render.SkyboxUnit)

	// Surface uniforms.
	gl.UseProgram(surfaceProg)
	r.wModel = uniform(surfaceProg, render.UModel)
	r.wView = uniform(surfaceProg, render.UView)
	r.wProjection = uniform(surfaceProg, render.UProjection)
	r.wViewPos = uniform(surfaceProg, render.UViewPos)
	r.wLightPos = uniform(surfaceProg, render.ULightPos)
	r.wTorchPos = uniform(surfaceProg, render.UTorchPos)
	r.wTorchColor = uniform(surfaceProg, render.UTorchColor)
	r.wTime = uniform(surfaceProg, render.UTime)
	r.wSpeedZ = uniform(surfaceProg, render.USpeedZ)
	r.wIsWater = uniform(surfaceProg, render.UIsWater)
	r.wTexture = uniform(surfaceProg, render.UTexture)
	r.wUseTexture = uniform(surfaceProg, render.UUseTexture)
	r.wBaseColor = uniform(surfaceProg, render.UBaseColor)
	gl.Uniform1i(r.wTexture, render.TextureUnit)

	// Skybox uniforms.
	gl.UseProgram(skyProg)
	r.kView = uniform(skyProg, render.UView)
	r.kProjection = uniform(skyProg, render.UProjection)
	r.kSkybox = uniform(skyProg, render.USkybox)
	gl.Uniform1i(r.kSkybox, render.TextureUnit)

	gl.UseProgram(0)
	return r, nil
}

// InitState sets the fixed GL state the passes assume.
func (r *Renderer) InitState(cullFace bool) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	r.SetCullFace(cullFace)
}

func (r *Renderer) Destroy() {
	for h, m := range r.meshes {
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteVertexArrays(1, &m.vao)
		delete(r.meshes, h)
	}
	for _, id := range []uint32{r.solidProg, r.surfaceProg, r.skyProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

// UploadMesh creates a VAO for interleaved vertices in the given layout.
func (r *Renderer) UploadMesh(vertices []float32, layout render.Layout) (render.Mesh, error) {
	n := layout.FloatsPerVertex()
	if len(vertices) == 0 || len(vertices)%n != 0 {
		return 0, fmt.Errorf("mesh of %d floats is not whole %d-float vertices", len(vertices), n)
	}

	var m glMesh
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(n * 4)
	// a_position (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	if layout == render.LayoutLit {
		// a_normal (vec3)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
		// a_texCoord (vec2)
		gl.EnableVertexAttribArray(2)
		gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, glOffset(6*4))
	}
	gl.BindVertexArray(0)

	m.count = int32(len(vertices) / n)
	r.meshes[render.Mesh(m.vao)] = m
	return render.Mesh(m.vao), nil
}

func (r *Renderer) drawMesh(h render.Mesh) {
	m, ok := r.meshes[h]
	if !ok {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}

// Viewport sizes the GL viewport to the framebuffer.
func (r *Renderer) Viewport(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
}

func (r *Renderer) Clear(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) SetCullFace(enabled bool) {
	if enabled {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

func (r *Renderer) SetDepthFunc(f render.DepthFunc) {
	if f == render.DepthLessEqual {
		gl.DepthFunc(gl.LEQUAL)
	} else {
		gl.DepthFunc(gl.LESS)
	}
}

func (r *Renderer) BeginSolid(p render.SolidPass) {
	gl.UseProgram(r.solidProg)
	setMat4(r.sProjection, p.Projection)
	setMat4(r.sView, p.View)
	setVec3(r.sViewPos, p.ViewPos)
	setVec3(r.sSunDir, p.SunDir)
	setVec3(r.sSunColor, p.SunColor)
	setVec3(r.sTorchPos, p.TorchPos)
	setVec3(r.sTorchColor, p.TorchColor)

	gl.ActiveTexture(gl.TEXTURE0 + render.SkyboxUnit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(p.Skybox))
	gl.ActiveTexture(gl.TEXTURE0 + render.TextureUnit)
}

func (r *Renderer) DrawSolid(d render.SolidDraw) {
	setMat4(r.sModel, d.Model)
	setBool(r.sUseTexture, d.UseTexture)
	setVec3(r.sObjectColor, d.ObjectColor)
	setBool(r.sUseReflection, d.UseReflection)
	gl.Uniform1f(r.sReflectivity, d.Reflectivity)
	if d.UseTexture {
		gl.BindTexture(gl.TEXTURE_2D, uint32(d.Texture))
	}
	r.drawMesh(d.Mesh)
}

func (r *Renderer) BeginSurface(p render.SurfacePass) {
	gl.UseProgram(r.surfaceProg)
	setMat4(r.wProjection, p.Projection)
	setMat4(r.wView, p.View)
	setVec3(r.wViewPos, p.ViewPos)
	setVec3(r.wLightPos, p.LightPos)
	setVec3(r.wTorchPos, p.TorchPos)
	setVec3(r.wTorchColor, p.TorchColor)
	gl.ActiveTexture(gl.TEXTURE0 + render.TextureUnit)
}

func (r *Renderer) DrawSurface(d render.SurfaceDraw) {
	setMat4(r.wModel, d.Model)
	gl.Uniform1f(r.wTime, d.Time)
	gl.Uniform1f(r.wSpeedZ, d.SpeedZ)
	setBool(r.wIsWater, d.IsWater)
	setBool(r.wUseTexture, d.UseTexture)
	gl.Uniform4f(r.wBaseColor, d.BaseColor[0], d.BaseColor[1], d.BaseColor[2], d.BaseColor[3])
	if d.UseTexture {
		gl.BindTexture(gl.TEXTURE_2D, uint32(d.Texture))
	}
	r.drawMesh(d.Mesh)
}

func (r *Renderer) DrawSkybox(p render.SkyboxPass) {
	gl.UseProgram(r.skyProg)
	setMat4(r.kProjection, p.Projection)
	setMat4(r.kView, p.View.Mat3().Mat4())
	gl.ActiveTexture(gl.TEXTURE0 + render.TextureUnit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(p.Skybox))
	r.drawMesh(p.Mesh)
	gl.BindVertexArray(0)
}

func setMat4(loc int32, m mgl32.Mat4) { gl.UniformMatrix4fv(loc, 1, false, &m[0]) }
func setVec3(loc int32, v mgl32.Vec3) { gl.Uniform3f(loc, v[0], v[1], v[2]) }

func setBool(loc int32, b bool) {
	v := int32(0)
	if b {
		v = 1
	}
	gl.Uniform1i(loc, v)
}
