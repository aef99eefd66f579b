package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewCamera(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Vec3{0, PlayerHeight, 10}, c.Position)
	assert.Equal(t, float32(-90), c.Yaw)
	assert.Zero(t, c.Pitch)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, c.Front, 1e-6)
}

func TestLookClampsPitch(t *testing.T) {
	c := NewCamera()
	c.Look(10, 200)
	assert.Equal(t, float32(-80), c.Yaw)
	assert.Equal(t, float32(PitchLimit), c.Pitch)
	c.Look(0, -500)
	assert.Equal(t, float32(-PitchLimit), c.Pitch)
}

func TestUpdatePlayingClampsToRaft(t *testing.T) {
	c := NewCamera()
	for i := 0; i < 1000; i++ {
		c.UpdatePlaying(Input{Forward: true, Left: true})
	}
	assert.InDelta(t, -BoundaryX, c.Position[0], 1e-6)
	assert.InDelta(t, -BoundaryZ, c.Position[2], 1e-6)
	assert.Equal(t, float32(PlayerHeight), c.Position[1])

	for i := 0; i < 1000; i++ {
		c.UpdatePlaying(Input{Back: true, Right: true})
	}
	assert.InDelta(t, BoundaryX, c.Position[0], 1e-6)
	assert.InDelta(t, BoundaryZ, c.Position[2], 1e-6)
}

func TestUpdatePlayingWalksOnDeck(t *testing.T) {
	c := NewCamera()
	c.Position = mgl32.Vec3{0, PlayerHeight, 0}
	c.Pitch = 60
	c.UpdatePlaying(Input{Forward: true})
	// Looking up does not lift the player or slow the walk.
	assert.Equal(t, float32(PlayerHeight), c.Position[1])
	assert.InDelta(t, -MoveSpeed, c.Position[2], 1e-6)
	assert.InDelta(t, 1, c.Front.Len(), 1e-5)
}

func TestUpdateMenuOrbit(t *testing.T) {
	c := NewCamera()
	for _, tm := range []float64{0, 1, 7.5, 100} {
		c.UpdateMenu(tm)
		assert.InDelta(t, OrbitHeight, c.Position[1], 1e-6)
		r := mgl32.Vec2{c.Position[0], c.Position[2]}.Len()
		assert.InDelta(t, OrbitRadius, r, 1e-4)
		// Front aims at the origin.
		hit := c.Position.Add(c.Front.Mul(c.Position.Len()))
		assertVec3(t, mgl32.Vec3{}, hit, 1e-4)
	}
	c.UpdateMenu(0)
	assertVec3(t, mgl32.Vec3{0, OrbitHeight, OrbitRadius}, c.Position, 1e-6)
}
