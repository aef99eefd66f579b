package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Debris conveyor.
const (
	DebrisTickScale    = 0.05
	DebrisDespawnZ     = -10.0
	DebrisRespawnZ     = 100.0
	DebrisRespawnZSpan = 50.0
	DebrisSpreadX      = 20.0
	DebrisDraft        = 0.2
	DebrisScale        = 0.8
	DebrisSpin         = 0.5 // rad/s around (1,1,0)
)

// Debris is a crate drifting toward the raft. It is recycled, never destroyed.
type Debris struct {
	X, Z  float32
	Speed float32
	Rot   float32 // radians
}

// InitialDebris is the starting conveyor.
func InitialDebris() []Debris {
	return []Debris{
		{X: -5, Z: 20, Speed: 2.0, Rot: 0},
		{X: 8, Z: 40, Speed: 2.5, Rot: 45},
		{X: -12, Z: 60, Speed: 1.8, Rot: 90},
		{X: 3, Z: 90, Speed: 2.2, Rot: 10},
	}
}

// Step moves the crate one tick toward -Z and respawns it far away once it passes the raft.
func (d *Debris) Step(r *Rand) {
	d.Z -= d.Speed * DebrisTickScale
	if d.Z < DebrisDespawnZ {
		d.Z = DebrisRespawnZ + r.RangeF32(0, DebrisRespawnZSpan)
		d.X = r.RangeF32(-DebrisSpreadX, DebrisSpreadX)
	}
}

// Height is the rendered Y of the crate: the scrolling ocean surface under it,
// minus the draft.
func (d Debris) Height(t float32) float32 {
	return ScrolledHeight(d.X, d.Z, t, OceanSpeedZ) - DebrisDraft
}

// Model is the crate's model matrix at time t.
func (d Debris) Model(t float32) mgl32.Mat4 {
	return Compose(
		Translate(d.X, d.Height(t), d.Z),
		Rotate(d.Rot+t*DebrisSpin, mgl32.Vec3{1, 1, 0}),
		UniformScale(DebrisScale),
	)
}

// Birds.
const (
	BirdTickScale = 0.01
	BirdScale     = 2.0
	FlapAmplitude = 0.3
	FlapRate      = 10.0
)

// Bird circles the raft at a fixed altitude.
type Bird struct {
	Radius   float32
	Altitude float32
	Speed    float32
	Angle    float32 // radians
}

// InitialBirds is the starting flock.
func InitialBirds() []Bird {
	return []Bird{
		{Radius: 15, Altitude: 12, Speed: 0.5, Angle: 0},
		{Radius: 25, Altitude: 18, Speed: 0.3, Angle: 3.14},
		{Radius: 10, Altitude: 9, Speed: 0.6, Angle: 1.5},
	}
}

// Step advances the bird along its orbit by one tick.
func (b *Bird) Step() {
	b.Angle += b.Speed * BirdTickScale
}

// Position is the bird's point on its orbit.
func (b Bird) Position() mgl32.Vec3 {
	a := float64(b.Angle)
	return mgl32.Vec3{cos32(a) * b.Radius, b.Altitude, sin32(a) * b.Radius}
}

// Heading is the yaw (radians) that faces along the orbit.
func (b Bird) Heading() float32 { return -b.Angle }

// Flap is the wing-beat vertical scale. It depends only on global time, so the
// whole flock beats in phase.
func Flap(t float32) float32 {
	return 1.0 + FlapAmplitude*sin32(float64(t)*FlapRate)
}

// Model is the bird's model matrix at time t.
func (b Bird) Model(t float32) mgl32.Mat4 {
	return Compose(
		TranslateV(b.Position()),
		RotateY(b.Heading()),
		Scale(BirdScale, Flap(t)*BirdScale, BirdScale),
	)
}
