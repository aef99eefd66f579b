package softgpu

import (
	"github.com/go-gl/mathgl/mgl32"

	"raft/internal/render"
	"raft/internal/scene"
)

// BeginSolid latches the solid program's per-pass state.
func (d *Device) BeginSolid(p render.SolidPass) { d.solid = p }

// DrawSolid runs the lit solid program over a mesh.
func (d *Device) DrawSolid(dr render.SolidDraw) {
	m, ok := d.meshes[dr.Mesh]
	if !ok || m.layout != render.LayoutLit {
		return
	}
	p := d.solid
	viewProj := p.Projection.Mul4(p.View)
	normalMat := dr.Model.Mat3()
	rig := scene.LightRig{SunDir: p.SunDir, SunColor: p.SunColor, TorchPos: p.TorchPos, TorchColor: p.TorchColor}

	vs := func(o int) vertex {
		src := m.data[o : o+scene.FloatsPerVertex]
		world := dr.Model.Mul4x1(mgl32.Vec4{src[0], src[1], src[2], 1})
		n := normalMat.Mul3x1(mgl32.Vec3{src[3], src[4], src[5]})
		var out vertex
		out.clip = viewProj.Mul4x1(world)
		out.v = varyings{world[0], world[1], world[2], n[0], n[1], n[2], src[6], src[7], 0}
		return out
	}
	fs := func(v *varyings, _ float32) mgl32.Vec4 {
		base := dr.ObjectColor.Vec4(1)
		if dr.UseTexture {
			base = d.sample2D(dr.Texture, v[vU], v[vV])
		}
		pos, n := v.pos(), v.normal()
		col := scene.ShadeSolid(rig, base, pos, n, p.ViewPos)
		if dr.UseReflection {
			env := d.sampleCube(p.Skybox, scene.ReflectionDir(pos, n, p.ViewPos))
			col = scene.ApplyReflection(col, env.Vec3(), dr.Reflectivity)
		}
		return col
	}
	d.drawMesh(m, vs, fs)
}

// BeginSurface latches the surface program's per-pass state.
func (d *Device) BeginSurface(p render.SurfacePass) { d.surface = p }

// DrawSurface runs the wave-displaced surface program over a grid mesh.
func (d *Device) DrawSurface(dr render.SurfaceDraw) {
	m, ok := d.meshes[dr.Mesh]
	if !ok || m.layout != render.LayoutLit {
		return
	}
	p := d.surface
	viewProj := p.Projection.Mul4(p.View)
	rig := scene.LightRig{TorchPos: p.TorchPos, TorchColor: p.TorchColor}

	vs := func(o int) vertex {
		src := m.data[o : o+scene.FloatsPerVertex]
		pos := mgl32.Vec3{src[0], src[1], src[2]}
		var h float32
		if pos[1] > -2 && pos[1] < 2 {
			h = scene.ScrolledHeight(pos[0], pos[2], dr.Time, dr.SpeedZ)
			pos[1] += h
		}
		world := dr.Model.Mul4x1(pos.Vec4(1))
		var out vertex
		out.clip = viewProj.Mul4x1(world)
		out.v = varyings{world[0], world[1], world[2], 0, 0, 0, src[6], src[7], h}
		return out
	}
	fs := func(v *varyings, clipW float32) mgl32.Vec4 {
		if dr.IsWater {
			return scene.ShadeWater(rig, v[vHeight], v.pos(), p.ViewPos, clipW)
		}
		tex := dr.BaseColor
		if dr.UseTexture {
			tex = d.sample2D(dr.Texture, v[vU], v[vV])
		}
		return scene.ShadeSail(rig, tex, v.pos(), clipW)
	}
	d.drawMesh(m, vs, fs)
}

// DrawSkybox draws the environment cube with the view translation removed and
// depth forced to the far plane.
func (d *Device) DrawSkybox(p render.SkyboxPass) {
	m, ok := d.meshes[p.Mesh]
	if !ok || m.layout != render.LayoutPosition {
		return
	}
	viewProj := p.Projection.Mul4(p.View.Mat3().Mat4())

	vs := func(o int) vertex {
		src := m.data[o : o+scene.SkyboxFloatsPerVertex]
		clip := viewProj.Mul4x1(mgl32.Vec4{src[0], src[1], src[2], 1})
		clip[2] = clip[3]
		return vertex{clip: clip, v: varyings{src[0], src[1], src[2]}}
	}
	fs := func(v *varyings, _ float32) mgl32.Vec4 {
		return d.sampleCube(p.Skybox, v.pos())
	}
	d.drawMesh(m, vs, fs)
}

func (d *Device) drawMesh(m mesh, vs func(offset int) vertex, fs fragmentFunc) {
	stride := m.layout.FloatsPerVertex()
	for o := 0; o+3*stride <= len(m.data); o += 3 * stride {
		d.drawTriangle(vs(o), vs(o+stride), vs(o+2*stride), fs)
	}
}
