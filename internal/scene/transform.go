package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the fixed up axis used for the view matrix and camera basis.
var WorldUp = mgl32.Vec3{0, 1, 0}

// Projection parameters.
const (
	NearPlane  = 0.1
	FarPlane   = 1000.0
	FOVPlaying = 75.0
	FOVMenu    = 60.0
)

type opKind uint8

const (
	opTranslate opKind = iota
	opRotate
	opScale
)

// Op is one step of a model transform.
type Op struct {
	kind  opKind
	v     mgl32.Vec3
	angle float32
}

func Translate(x, y, z float32) Op { return Op{kind: opTranslate, v: mgl32.Vec3{x, y, z}} }
func TranslateV(v mgl32.Vec3) Op { return Op{kind: opTranslate, v: v} }
func Scale(x, y, z float32) Op { return Op{kind: opScale, v: mgl32.Vec3{x, y, z}} }
func UniformScale(s float32) Op { return Scale(s, s, s) }
func RotateX(rad float32) Op { return Rotate(rad, mgl32.Vec3{1, 0, 0}) }
func RotateY(rad float32) Op { return Rotate(rad, mgl32.Vec3{0, 1, 0}) }
func Rotate(rad float32, axis mgl32.Vec3) Op { return Op{kind: opRotate, v: axis, angle: rad} }

// Matrix returns the 4x4 matrix of a single op. Rotation axes need not be unit length.
func (o Op) Matrix() mgl32.Mat4 {
	switch o.kind {
	case opTranslate:
		return mgl32.Translate3D(o.v[0], o.v[1], o.v[2])
	case opScale:
		return mgl32.Scale3D(o.v[0], o.v[1], o.v[2])
	case opRotate:
		if o.v.Len() == 0 {
			return mgl32.Ident4()
		}
		return mgl32.HomogRotate3D(o.angle, o.v.Normalize())
	}
	return mgl32.Ident4()
}

// Compose multiplies ops left to right onto the identity, M = I·op0·op1·…, so the
// last op is applied to object-local coordinates first.
func Compose(ops ...Op) mgl32.Mat4 {
	return ComposeOnto(mgl32.Ident4(), ops...)
}

// ComposeOnto continues a composition from an existing matrix, for hierarchical attachments.
func ComposeOnto(m mgl32.Mat4, ops ...Op) mgl32.Mat4 {
	for _, op := range ops {
		m = m.Mul4(op.Matrix())
	}
	return m
}

// CameraVectors derives the camera basis from yaw/pitch in degrees.
func CameraVectors(yaw, pitch float32) (front, right, up mgl32.Vec3) {
	ry, rp := radians(yaw), radians(pitch)
	front = mgl32.Vec3{
		cos32(ry) * cos32(rp),
		sin32(rp),
		sin32(ry) * cos32(rp),
	}.Normalize()
	right = front.Cross(WorldUp).Normalize()
	up = right.Cross(front)
	return front, right, up
}

// Torch offset from the eye, in camera space (front, right, up).
const (
	TorchFront = 0.5
	TorchRight = 0.25
	TorchUp    = -0.15
)

// TorchPosition is the hand-held light position for a camera basis.
func TorchPosition(pos, front, right, up mgl32.Vec3) mgl32.Vec3 {
	return pos.Add(front.Mul(TorchFront)).Add(right.Mul(TorchRight)).Add(up.Mul(TorchUp))
}

// ViewMatrix looks from the camera position along its front vector.
func ViewMatrix(c Camera) mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), WorldUp)
}

// FOV returns the vertical field of view in degrees for a mode.
func FOV(m Mode) float32 {
	if m == ModePlaying {
		return FOVPlaying
	}
	return FOVMenu
}

// ProjectionMatrix builds the perspective projection for a mode and aspect ratio.
func ProjectionMatrix(m Mode, aspect float32) mgl32.Mat4 {
	if !(aspect > 0) {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(FOV(m)), aspect, NearPlane, FarPlane)
}

// TorchHandleModel places the torch mesh in the right hand: attached to the
// camera transform, then offset and tilted.
func TorchHandleModel(c Camera) mgl32.Mat4 {
	return Compose(
		TranslateV(c.Position),
		RotateY(mgl32.DegToRad(-c.Yaw-90)),
		RotateX(mgl32.DegToRad(-c.Pitch)),
		Translate(0.25, -0.3, -0.5),
		RotateY(mgl32.DegToRad(-10)),
		RotateX(mgl32.DegToRad(30)),
		Scale(0.05, 0.05, 0.6),
	)
}

// TorchTipModel is the glowing tip, a child of the handle with the handle scale undone.
func TorchTipModel(c Camera) mgl32.Mat4 {
	return ComposeOnto(TorchHandleModel(c),
		Scale(1.0/0.05, 1.0/0.05, 1.0/0.6),
		Translate(0, 0, -0.3),
		UniformScale(0.06),
	)
}
