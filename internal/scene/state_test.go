package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateStartsInMenu(t *testing.T) {
	s := NewState(Options{Seed: 1, CullFace: true})
	assert.Equal(t, ModeMenu, s.Mode)
	assert.Equal(t, HiddenTorch, s.Torch)
	assert.Len(t, s.Debris, 4)
	assert.Len(t, s.Birds, 3)
	assert.True(t, s.CullFace)
	assertVec3(t, mgl32.Vec3{0, OrbitHeight, OrbitRadius}, s.Camera.Position, 1e-6)
}

func TestUpdateMenuKeepsTorchHidden(t *testing.T) {
	s := NewState(Options{Seed: 1})
	for i := 0; i < 120; i++ {
		tr := s.Update(tick, Input{Forward: true, YawDelta: 5})
		assert.False(t, tr.Changed())
	}
	assert.Equal(t, HiddenTorch, s.Torch)
	assert.Equal(t, uint64(120), s.Ticks)
	assert.InDelta(t, 2.0, s.Time, 1e-9)
	assert.Equal(t, float32(-90), s.Camera.Yaw, "menu ignores look input")
}

func TestUpdateEntersPlayingPreservingYaw(t *testing.T) {
	s := NewState(Options{Seed: 1})
	s.Camera.Yaw, s.Camera.Pitch = -45, 10

	tr := s.Update(tick, Input{Start: true, Captured: true, YawDelta: 30})
	require.True(t, tr.Changed())
	assert.Equal(t, ModePlaying, s.Mode)
	// The delta that arrived with the start click is not applied.
	assert.Equal(t, float32(-45), s.Camera.Yaw)
	assert.Equal(t, float32(10), s.Camera.Pitch)
	assert.Equal(t, float32(PlayerHeight), s.Camera.Position[1])
	assert.Equal(t, s.Camera.Torch(), s.Torch)

	s.Update(tick, Input{Captured: true, YawDelta: 30})
	assert.Equal(t, float32(-15), s.Camera.Yaw)
}

func TestUpdatePlayingBackToMenu(t *testing.T) {
	s := NewState(Options{Seed: 1})
	s.Update(tick, Input{Start: true, Captured: true})
	s.Update(tick, Input{Captured: true})
	tr := s.Update(tick, Input{})
	assert.Equal(t, Transition{From: ModePlaying, To: ModeMenu}, tr)
	assert.Equal(t, HiddenTorch, s.Torch)
}

func TestEntitiesAdvanceInBothModes(t *testing.T) {
	s := NewState(Options{Seed: 3})
	z0, a0 := s.Debris[0].Z, s.Birds[0].Angle
	s.Update(tick, Input{})
	assert.Less(t, s.Debris[0].Z, z0)
	assert.Greater(t, s.Birds[0].Angle, a0)

	s.Update(tick, Input{Start: true, Captured: true})
	z1, a1 := s.Debris[0].Z, s.Birds[0].Angle
	s.Update(tick, Input{Captured: true})
	assert.Less(t, s.Debris[0].Z, z1)
	assert.Greater(t, s.Birds[0].Angle, a1)
}

func TestSameSeedSameScene(t *testing.T) {
	a, b := NewState(Options{Seed: 99}), NewState(Options{Seed: 99})
	for i := 0; i < 3000; i++ {
		a.Update(tick, Input{})
		b.Update(tick, Input{})
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewState(Options{Seed: 1})
	snap := s.Snapshot()
	s.Update(tick, Input{})
	assert.NotEqual(t, snap.Debris[0].Z, s.Debris[0].Z)
	assert.Equal(t, float32(20), snap.Debris[0].Z)
}
