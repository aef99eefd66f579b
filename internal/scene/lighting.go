package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Light colours and the sun direction (toward the light).
var (
	SunDir     = mgl32.Vec3{1.0, 0.3, 0.0}
	SunColor   = mgl32.Vec3{1.0, 0.6, 0.3}
	TorchColor = mgl32.Vec3{1.0, 0.8, 0.4}

	SolidAmbient = mgl32.Vec3{0.02, 0.02, 0.05}

	WaterDeep    = mgl32.Vec3{0.01, 0.03, 0.1}
	WaterShallow = mgl32.Vec3{0.0, 0.2, 0.3}
	WaterFoam    = mgl32.Vec3{0.8, 0.9, 1.0}

	FogColor   = mgl32.Vec3{0.1, 0.1, 0.15}
	ClearColor = mgl32.Vec4{0.1, 0.1, 0.1, 1.0}
)

// Shading constants.
const (
	SunSpecular   = 0.8
	SunShininess  = 64.0
	TorchSpecular = 2.0
	TorchShine    = 128.0
	TorchBoost    = 2.5

	AttenLinear     = 0.1
	AttenQuadSolid  = 3.0
	AttenQuadWater  = 1.5
	WaterShininess  = 32.0
	WaterTorchBoost = 2.0
	WaterAlpha      = 0.95
	FoamThreshold   = 0.6
	FoamMix         = 0.5

	SailAmbient    = 0.1
	SailTorchBoost = 2.0

	FogStart = 20.0
	FogEnd   = 200.0

	// SunFakeDistance places a point "sun" for the surface program's u_lightPos.
	SunFakeDistance = 100.0
)

// LightRig is the per-frame light set shared by every lit pass.
type LightRig struct {
	SunDir, SunColor     mgl32.Vec3
	TorchPos, TorchColor mgl32.Vec3
}

// NightRig returns the scene lights with the torch at pos.
func NightRig(torch mgl32.Vec3) LightRig {
	return LightRig{SunDir: SunDir, SunColor: SunColor, TorchPos: torch, TorchColor: TorchColor}
}

// Reflect matches GLSL reflect(i, n).
func Reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

// Phong returns diffuse + specular for one light. lightDir points toward the light.
func Phong(lightDir, lightColor, normal, viewDir mgl32.Vec3, specStrength, shininess float32) mgl32.Vec3 {
	diff := max(normal.Dot(lightDir), 0)
	diffuse := lightColor.Mul(diff)

	reflectDir := Reflect(lightDir.Mul(-1), normal)
	spec := pow32(max(viewDir.Dot(reflectDir), 0), shininess)
	specular := lightColor.Mul(specStrength * spec)
	return diffuse.Add(specular)
}

// Attenuation is 1 / (1 + linear*d + quadratic*d²). It is exactly 1 at d = 0.
func Attenuation(d, linear, quadratic float32) float32 {
	return 1.0 / (1.0 + linear*d + quadratic*d*d)
}

// SolidAttenuation is the torch falloff for solid objects and the sail.
func SolidAttenuation(d float32) float32 { return Attenuation(d, AttenLinear, AttenQuadSolid) }

// WaterAttenuation is the torch falloff for the water highlight.
func WaterAttenuation(d float32) float32 { return Attenuation(d, AttenLinear, AttenQuadWater) }

// FogFactor is the blend weight toward FogColor for a clip-space w.
func FogFactor(w float32) float32 { return Smoothstep(FogStart, FogEnd, w) }

// ApplyFog blends c toward the fog colour.
func ApplyFog(c mgl32.Vec3, w float32) mgl32.Vec3 {
	return mixVec3(c, FogColor, FogFactor(w))
}

// ShadeSolid is the solid-object fragment: ambient plus sun plus boosted,
// attenuated torch, over the base colour. Fog is not applied to solids.
func ShadeSolid(rig LightRig, base mgl32.Vec4, fragPos, normal, viewPos mgl32.Vec3) mgl32.Vec4 {
	n := normalize(normal)
	viewDir := normalize(viewPos.Sub(fragPos))

	lighting := Phong(rig.SunDir.Normalize(), rig.SunColor, n, viewDir, SunSpecular, SunShininess)

	toTorch := rig.TorchPos.Sub(fragPos)
	att := SolidAttenuation(toTorch.Len())
	torch := Phong(normalize(toTorch), rig.TorchColor, n, viewDir, TorchSpecular, TorchShine)
	lighting = lighting.Add(torch.Mul(att * TorchBoost))

	rgb := base.Vec3()
	ambient := mulVec3(SolidAmbient, rgb)
	out := ambient.Add(mulVec3(lighting, rgb))
	return out.Vec4(base[3])
}

// ReflectionDir is the environment lookup direction for a reflective fragment.
func ReflectionDir(fragPos, normal, viewPos mgl32.Vec3) mgl32.Vec3 {
	incident := normalize(fragPos.Sub(viewPos))
	return Reflect(incident, normalize(normal))
}

// ApplyReflection mixes a lit colour toward an environment sample.
func ApplyReflection(lit mgl32.Vec4, env mgl32.Vec3, reflectivity float32) mgl32.Vec4 {
	return mixVec3(lit.Vec3(), env, reflectivity).Vec4(lit[3])
}

// WaterColor is the unlit water tint for a wave height, including foam on crests.
func WaterColor(h float32) mgl32.Vec3 {
	c := mixVec3(WaterDeep, WaterShallow, Smoothstep(-0.5, 0.8, h))
	if h > FoamThreshold {
		c = mixVec3(c, WaterFoam, FoamMix)
	}
	return c
}

// ShadeWater is the ocean fragment: height tint, torch highlight on the
// approximate wave normal, then fog. clipW is the fragment's clip-space w.
func ShadeWater(rig LightRig, h float32, fragPos, viewPos mgl32.Vec3, clipW float32) mgl32.Vec4 {
	viewDir := normalize(viewPos.Sub(fragPos))
	n := WaveNormal(h)

	toTorch := rig.TorchPos.Sub(fragPos)
	att := WaterAttenuation(toTorch.Len())
	r := Reflect(normalize(toTorch).Mul(-1), n)
	spec := pow32(max(viewDir.Dot(r), 0), WaterShininess)
	specular := rig.TorchColor.Mul(spec * WaterTorchBoost * att)

	return ApplyFog(WaterColor(h).Add(specular), clipW).Vec4(WaterAlpha)
}

// ShadeSail is the cloth fragment: lit by the torch only, then fogged.
func ShadeSail(rig LightRig, tex mgl32.Vec4, fragPos mgl32.Vec3, clipW float32) mgl32.Vec4 {
	att := SolidAttenuation(rig.TorchPos.Sub(fragPos).Len())
	lighting := rig.TorchColor.Mul(att * SailTorchBoost)
	amb := mgl32.Vec3{SailAmbient, SailAmbient, SailAmbient}
	obj := mulVec3(amb.Add(lighting), tex.Vec3())
	return ApplyFog(obj, clipW).Vec4(tex[3])
}

func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func mixVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func pow32(x, y float32) float32 { return float32(math.Pow(float64(x), float64(y))) }

// normalize is Vec3.Normalize that maps the zero vector to itself instead of NaN.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return v
}
