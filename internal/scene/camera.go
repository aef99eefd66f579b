package scene

import "github.com/go-gl/mathgl/mgl32"

// Raft and player constants.
const (
	PlayerHeight = 1.6
	MoveSpeed    = 0.05 // units per tick
	RaftScaleX   = 4.0
	RaftScaleZ   = 7.0
	RaftMargin   = 0.2
	BoundaryX    = RaftScaleX/2 - RaftMargin
	BoundaryZ    = RaftScaleZ/2 - RaftMargin

	PitchLimit = 89.0
)

// Menu orbit.
const (
	OrbitRadius = 15.0
	OrbitHeight = 6.0
	OrbitSpeed  = 0.2 // rad/s
)

// Camera is the viewer. Yaw and Pitch are in degrees.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	Front, Right, Up mgl32.Vec3
}

// NewCamera returns the starting camera: standing at the raft stern looking down -Z.
func NewCamera() Camera {
	c := Camera{
		Position: mgl32.Vec3{0, PlayerHeight, 10},
		Yaw:      -90,
	}
	c.Front, c.Right, c.Up = CameraVectors(c.Yaw, c.Pitch)
	return c
}

// Look applies yaw/pitch deltas in degrees. Pitch is clamped silently.
func (c *Camera) Look(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clampF(c.Pitch+dPitch, -PitchLimit, PitchLimit)
}

// UpdatePlaying recomputes the basis from yaw/pitch, walks on the deck plane and
// keeps the eye inside the raft.
func (c *Camera) UpdatePlaying(in Input) {
	c.Front, c.Right, c.Up = CameraVectors(c.Yaw, c.Pitch)

	walk := mgl32.Vec3{c.Front[0], 0, c.Front[2]}
	if walk.Len() > 0 {
		walk = walk.Normalize()
	}
	pos := c.Position
	if in.Forward {
		pos = pos.Add(walk.Mul(MoveSpeed))
	}
	if in.Back {
		pos = pos.Sub(walk.Mul(MoveSpeed))
	}
	if in.Left {
		pos = pos.Sub(c.Right.Mul(MoveSpeed))
	}
	if in.Right {
		pos = pos.Add(c.Right.Mul(MoveSpeed))
	}

	pos[0] = clampF(pos[0], -BoundaryX, BoundaryX)
	pos[2] = clampF(pos[2], -BoundaryZ, BoundaryZ)
	pos[1] = PlayerHeight
	c.Position = pos
}

// UpdateMenu orbits the origin at time t, looking at it. Yaw and pitch are left
// untouched so play resumes where it left off.
func (c *Camera) UpdateMenu(t float64) {
	a := t * OrbitSpeed
	c.Position = mgl32.Vec3{sin32(a) * OrbitRadius, OrbitHeight, cos32(a) * OrbitRadius}
	c.Front = c.Position.Mul(-1).Normalize()
	c.Right = c.Front.Cross(WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front)
}

// Torch returns the world position of the hand-held light.
func (c Camera) Torch() mgl32.Vec3 {
	return TorchPosition(c.Position, c.Front, c.Right, c.Up)
}
