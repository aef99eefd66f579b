package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"raft/internal/scene"
)

// Fixed props and their materials.
var (
	CubeColor     = mgl32.Vec3{0.0, 1.0, 1.0}
	HandleColor   = mgl32.Vec3{0.4, 0.2, 0.1}
	TipColor      = mgl32.Vec3{1.0, 1.0, 0.0}
	BirdColor     = mgl32.Vec3{0.9, 0.9, 0.9}
	SailBaseColor = mgl32.Vec4{1, 1, 1, 1}
)

// CubeReflectivity is how much of the skybox the spinning cubes mirror.
const CubeReflectivity = 0.3

// Sequencer emits one frame in the fixed pass order: clear, solids, animated
// surfaces, skybox.
type Sequencer struct {
	Meshes   Meshes
	Textures Textures
}

// Frame is the per-frame camera setup shared by every pass.
type Frame struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Lights     scene.LightRig
	ViewPos    mgl32.Vec3
}

// NewFrame derives the matrices and lights for a snapshot.
func NewFrame(snap scene.Snapshot, aspect float32) Frame {
	return Frame{
		Projection: scene.ProjectionMatrix(snap.Mode, aspect),
		View:       scene.ViewMatrix(snap.Camera),
		Lights:     scene.NightRig(snap.Torch),
		ViewPos:    snap.Camera.Position,
	}
}

// Render draws snap on b. aspect is the framebuffer width over height.
func (s *Sequencer) Render(b Backend, snap scene.Snapshot, aspect float32) {
	f := NewFrame(snap, aspect)

	b.Clear(scene.ClearColor)
	b.SetCullFace(snap.CullFace)
	b.SetDepthFunc(DepthLess)

	b.BeginSolid(SolidPass{
		Projection: f.Projection,
		View:       f.View,
		ViewPos:    f.ViewPos,
		SunDir:     f.Lights.SunDir,
		SunColor:   f.Lights.SunColor,
		TorchPos:   f.Lights.TorchPos,
		TorchColor: f.Lights.TorchColor,
		Skybox:     s.Textures.Skybox,
	})
	for _, d := range s.SolidDraws(snap) {
		b.DrawSolid(d)
	}

	// Birds are single-sided cards seen from below.
	b.SetCullFace(false)
	for _, d := range s.BirdDraws(snap) {
		b.DrawSolid(d)
	}
	b.SetCullFace(snap.CullFace)

	b.BeginSurface(SurfacePass{
		Projection: f.Projection,
		View:       f.View,
		ViewPos:    f.ViewPos,
		LightPos:   f.Lights.SunDir.Mul(scene.SunFakeDistance),
		TorchPos:   f.Lights.TorchPos,
		TorchColor: f.Lights.TorchColor,
	})
	b.DrawSurface(s.WaterDraw(snap))

	b.SetCullFace(false)
	b.DrawSurface(s.SailDraw(snap))
	b.SetCullFace(snap.CullFace)

	b.SetDepthFunc(DepthLessEqual)
	b.DrawSkybox(SkyboxPass{
		Mesh:       s.Meshes.Skybox,
		Projection: f.Projection,
		View:       f.View,
		Skybox:     s.Textures.Skybox,
	})
	b.SetDepthFunc(DepthLess)
}

// SolidDraws lists the culled solid draws: raft, pedestal, mast, the spinning
// cubes, the torch while playing, then the debris.
func (s *Sequencer) SolidDraws(snap scene.Snapshot) []SolidDraw {
	t := snap.Time
	textured := func(name string, tex Texture, model mgl32.Mat4) SolidDraw {
		return SolidDraw{Name: name, Mesh: s.Meshes.Cube, Model: model, Texture: tex, UseTexture: true}
	}
	colored := func(name string, c mgl32.Vec3, model mgl32.Mat4) SolidDraw {
		return SolidDraw{Name: name, Mesh: s.Meshes.Cube, Model: model, ObjectColor: c}
	}

	draws := []SolidDraw{
		textured("raft", s.Textures.Wood, scene.Compose(
			scene.Translate(0, -0.1, 0),
			scene.Scale(scene.RaftScaleX, 0.2, scene.RaftScaleZ),
		)),
		textured("pedestal", s.Textures.Box, scene.Compose(scene.Translate(1, 0.5, 1.5))),
		textured("mast", s.Textures.Wood, scene.Compose(
			scene.Translate(0, 2, -0.5),
			scene.Scale(0.15, 4, 0.15),
		)),
	}

	for _, pos := range []mgl32.Vec3{{-1.5, 0.25, -3}, {1.5, 0.25, 3}} {
		d := colored("cube", CubeColor, scene.Compose(
			scene.TranslateV(pos),
			scene.RotateY(t),
			scene.UniformScale(0.5),
		))
		d.UseReflection = true
		d.Reflectivity = CubeReflectivity
		draws = append(draws, d)
	}

	if snap.Mode == scene.ModePlaying {
		draws = append(draws,
			colored("torch", HandleColor, scene.TorchHandleModel(snap.Camera)),
			colored("torch-tip", TipColor, scene.TorchTipModel(snap.Camera)),
		)
	}

	for _, d := range snap.Debris {
		draws = append(draws, textured("debris", s.Textures.Box, d.Model(t)))
	}
	return draws
}

// BirdDraws lists the bird draws. They are issued with culling disabled.
func (s *Sequencer) BirdDraws(snap scene.Snapshot) []SolidDraw {
	draws := make([]SolidDraw, 0, len(snap.Birds))
	for _, b := range snap.Birds {
		draws = append(draws, SolidDraw{
			Name:        "bird",
			Mesh:        s.Meshes.Bird,
			Model:       b.Model(snap.Time),
			ObjectColor: BirdColor,
		})
	}
	return draws
}

// WaterDraw is the ocean grid, lowered one unit and scrolling toward the raft.
func (s *Sequencer) WaterDraw(snap scene.Snapshot) SurfaceDraw {
	return SurfaceDraw{
		Name:    "water",
		Mesh:    s.Meshes.Ocean,
		Model:   scene.Compose(scene.Translate(0, -1, 0)),
		Time:    snap.Time,
		SpeedZ:  scene.OceanSpeedZ,
		IsWater: true,
	}
}

// SailDraw is the cloth grid stood upright on the mast, rippling at double speed.
func (s *Sequencer) SailDraw(snap scene.Snapshot) SurfaceDraw {
	return SurfaceDraw{
		Name: "sail",
		Mesh: s.Meshes.Sail,
		Model: scene.Compose(
			scene.Translate(0, 2.5, -0.3),
			scene.RotateX(mgl32.DegToRad(90)),
		),
		Time:       snap.Time * scene.SailTimeScale,
		SpeedZ:     scene.SailSpeedZ,
		Texture:    s.Textures.Sail,
		UseTexture: true,
		BaseColor:  SailBaseColor,
	}
}
