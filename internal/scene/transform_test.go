package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}

func apply(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

func TestComposeOrder(t *testing.T) {
	m := Compose(Translate(1, 2, 3), UniformScale(2))
	assertVec3(t, mgl32.Vec3{3, 2, 3}, apply(m, mgl32.Vec3{1, 0, 0}), 1e-6)

	m = Compose(Translate(0, 0, 5), RotateY(mgl32.DegToRad(90)))
	assertVec3(t, mgl32.Vec3{0, 0, 4}, apply(m, mgl32.Vec3{1, 0, 0}), 1e-6)

	assert.Equal(t, mgl32.Ident4(), Compose())
}

func TestRotateNormalizesAxis(t *testing.T) {
	a := Rotate(0.7, mgl32.Vec3{1, 1, 0}).Matrix()
	b := Rotate(0.7, mgl32.Vec3{1, 1, 0}.Normalize()).Matrix()
	assert.True(t, a.ApproxEqualThreshold(b, 1e-6))
	assert.Equal(t, mgl32.Ident4(), Rotate(1, mgl32.Vec3{}).Matrix())
}

func TestCameraVectors(t *testing.T) {
	front, right, up := CameraVectors(-90, 0)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, front, 1e-6)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, right, 1e-6)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, up, 1e-6)

	for _, yp := range [][2]float32{{0, 0}, {33, 12}, {-170, -89}, {400, 89}} {
		f, r, u := CameraVectors(yp[0], yp[1])
		assert.InDelta(t, 1, f.Len(), 1e-5)
		assert.InDelta(t, 1, r.Len(), 1e-5)
		assert.InDelta(t, 1, u.Len(), 1e-4)
		assert.InDelta(t, 0, f.Dot(r), 1e-5)
		assert.InDelta(t, 0, f.Dot(u), 1e-5)
	}
}

func TestViewMatrix(t *testing.T) {
	c := NewCamera()
	v := ViewMatrix(c)
	assertVec3(t, mgl32.Vec3{}, apply(v, c.Position), 1e-5)
	// A point in front of the camera lands on -Z in view space.
	p := apply(v, c.Position.Add(c.Front.Mul(5)))
	assertVec3(t, mgl32.Vec3{0, 0, -5}, p, 1e-5)
}

func TestProjection(t *testing.T) {
	assert.Equal(t, float32(FOVPlaying), FOV(ModePlaying))
	assert.Equal(t, float32(FOVMenu), FOV(ModeMenu))

	want := mgl32.Perspective(mgl32.DegToRad(75), 16.0/9.0, 0.1, 1000)
	assert.Equal(t, want, ProjectionMatrix(ModePlaying, 16.0/9.0))
	assert.Equal(t, ProjectionMatrix(ModeMenu, 1), ProjectionMatrix(ModeMenu, 0))
}

func TestTorchPosition(t *testing.T) {
	c := NewCamera()
	assertVec3(t, mgl32.Vec3{0.25, 1.45, 9.5}, c.Torch(), 1e-5)
}

func TestTorchTipSitsOnHandleEnd(t *testing.T) {
	c := NewCamera()
	c.Yaw, c.Pitch = -40, 20
	c.Front, c.Right, c.Up = CameraVectors(c.Yaw, c.Pitch)

	tip := apply(TorchTipModel(c), mgl32.Vec3{})
	end := apply(TorchHandleModel(c), mgl32.Vec3{0, 0, -0.5})
	assertVec3(t, end, tip, 1e-4)
}
