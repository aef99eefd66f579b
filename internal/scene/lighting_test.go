package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestAttenuation(t *testing.T) {
	assert.Equal(t, float32(1), SolidAttenuation(0))
	assert.Equal(t, float32(1), WaterAttenuation(0))
	assert.InDelta(t, 1/(1+0.1+3.0), SolidAttenuation(1), 1e-6)
	assert.InDelta(t, 1/(1+0.2+6.0), WaterAttenuation(2), 1e-6)
	assert.Less(t, SolidAttenuation(5), SolidAttenuation(1))
}

func TestFogFactor(t *testing.T) {
	assert.Zero(t, FogFactor(5))
	assert.Zero(t, FogFactor(FogStart))
	assert.Equal(t, float32(1), FogFactor(FogEnd))
	assert.Equal(t, float32(1), FogFactor(500))
	assert.InDelta(t, 0.5, FogFactor(110), 1e-6)
	assertVec3(t, FogColor, ApplyFog(mgl32.Vec3{1, 0, 0}, 1000), 1e-6)
}

func TestPhong(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}
	white := mgl32.Vec3{1, 1, 1}
	// Light and eye straight above: full diffuse plus full specular.
	c := Phong(up, white, up, up, 0.5, 8)
	assertVec3(t, mgl32.Vec3{1.5, 1.5, 1.5}, c, 1e-6)
	// Light below the surface contributes nothing.
	c = Phong(up.Mul(-1), white, up, up, 0.5, 8)
	assertVec3(t, mgl32.Vec3{}, c, 1e-6)
}

func TestShadeSolid(t *testing.T) {
	rig := NightRig(HiddenTorch)
	black := ShadeSolid(rig, mgl32.Vec4{0, 0, 0, 1}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 5, 5})
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, black)

	// Facing away from both lights leaves only ambient.
	frag := mgl32.Vec3{0, 0, 0}
	away := mgl32.Vec3{-1, 0, 0}
	c := ShadeSolid(rig, mgl32.Vec4{1, 1, 1, 0.5}, frag, away, mgl32.Vec3{-5, 0, 0})
	assertVec3(t, SolidAmbient, c.Vec3(), 1e-5)
	assert.Equal(t, float32(0.5), c[3])

	// A torch right next to the surface brightens it.
	lit := ShadeSolid(NightRig(mgl32.Vec3{0, 0.3, 0}), mgl32.Vec4{1, 1, 1, 1}, frag, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 2, 0})
	assert.Greater(t, lit[0], float32(1))
}

func TestShadeSolidTorchAtFragment(t *testing.T) {
	p := mgl32.Vec3{1, 2, 3}
	c := ShadeSolid(NightRig(p), mgl32.Vec4{1, 1, 1, 1}, p, mgl32.Vec3{0, 1, 0}, p)
	for _, v := range c {
		assert.False(t, v != v, "NaN in %v", c)
	}
}

func TestReflection(t *testing.T) {
	d := ReflectionDir(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 1})
	assertVec3(t, mgl32.Vec3{0, 1, -1}.Normalize(), d, 1e-6)

	lit := mgl32.Vec4{1, 0, 0, 1}
	out := ApplyReflection(lit, mgl32.Vec3{0, 0, 1}, 0.3)
	assertVec3(t, mgl32.Vec3{0.7, 0, 0.3}, out.Vec3(), 1e-6)
	assert.Equal(t, lit, ApplyReflection(lit, mgl32.Vec3{0, 1, 0}, 0))
}

func TestWaterColor(t *testing.T) {
	assertVec3(t, WaterDeep, WaterColor(-1), 1e-6)
	assertVec3(t, WaterShallow, WaterColor(0.6), 0.1)
	// Crest above the foam threshold is pulled half way to foam.
	shallow := WaterShallow
	want := shallow.Add(WaterFoam.Sub(shallow).Mul(FoamMix))
	assertVec3(t, want, WaterColor(0.9), 1e-6)
}

func TestShadeWaterAndSail(t *testing.T) {
	rig := NightRig(HiddenTorch)
	w := ShadeWater(rig, 0, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 6, 15}, 10)
	assert.Equal(t, float32(WaterAlpha), w[3])
	assert.InDelta(t, WaterColor(0)[2], w[2], 1e-4)

	far := ShadeWater(rig, 0, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 6, 15}, 400)
	assertVec3(t, FogColor, far.Vec3(), 1e-6)

	s := ShadeSail(rig, mgl32.Vec4{1, 1, 1, 0.8}, mgl32.Vec3{0, 2.5, 0}, 1)
	assert.InDelta(t, SailAmbient, s[0], 1e-3)
	assert.Equal(t, float32(0.8), s[3])
}
