package operator

import (
	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Rotation is an immutable camera orientation. Every update returns a new value.
type Rotation struct {
	q mgl32.Quat
}

// IdentityRotation is the orientation looking along +Z with no roll.
var IdentityRotation = Rotation{q: mgl32.QuatIdent()}

// RotationFromQuat wraps q, normalized.
func RotationFromQuat(q mgl32.Quat) Rotation {
	return Rotation{q: q.Normalize()}
}

// RotationFromEuler builds a rotation from (pitch, yaw, roll) in degrees.
func RotationFromEuler(euler mgl32.Vec3) Rotation {
	return Rotation{q: common.EulerToQuat(euler)}
}

// Quat returns the underlying quaternion.
func (r Rotation) Quat() mgl32.Quat {
	return r.q
}

// Euler returns (pitch, yaw, roll) in degrees, each in [0, 360).
func (r Rotation) Euler() mgl32.Vec3 {
	return common.QuatToEuler(r.q)
}

// Yaw adds deg to the Euler Y angle and rebuilds the rotation from the result.
//
// Parameters:
//   - deg: yaw delta in degrees
//
// Returns:
//   - Rotation: the rotated value
func (r Rotation) Yaw(deg float32) Rotation {
	return RotationFromEuler(r.Euler().Add(mgl32.Vec3{0, deg, 0}))
}

// Pitch composes a rotation of deg degrees about the local X axis.
//
// Parameters:
//   - deg: pitch delta in degrees, positive looks down
//
// Returns:
//   - Rotation: the rotated value
func (r Rotation) Pitch(deg float32) Rotation {
	return RotationFromQuat(r.q.Mul(common.EulerToQuat(mgl32.Vec3{deg, 0, 0})))
}

// Clamped keeps the pitch inside the look range, see ClampPitch.
func (r Rotation) Clamped() Rotation {
	return RotationFromEuler(ClampPitch(r.Euler()))
}

// ClampPitch folds roll into pitch and limits pitch to [0, 90] when looking down
// or [270, 360] when looking up. The branch is chosen on the raw pitch: below 180
// is looking down.
//
// Parameters:
//   - euler: (pitch, yaw, roll) in degrees, each in [0, 360)
//
// Returns:
//   - mgl32.Vec3: euler with the pitch replaced; yaw and roll are unchanged
func ClampPitch(euler mgl32.Vec3) mgl32.Vec3 {
	x, z := euler.X(), euler.Z()
	if x < 180 {
		euler[0] = common.Clamp(x+z, 0, 90)
	} else {
		euler[0] = common.Clamp(x-z, 270, 360)
	}
	return euler
}
