package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Axis vectors of the engine's left-handed world space (+X right, +Y up, +Z forward).
var (
	Right   = mgl32.Vec3{1, 0, 0}
	Up      = mgl32.Vec3{0, 1, 0}
	Forward = mgl32.Vec3{0, 0, 1}
)

// normalizeEpsilon is the length below which a vector is treated as zero when normalizing.
const normalizeEpsilon = 1e-5

// Clamp restricts v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapDegrees wraps an angle in degrees into the half-open range [0, 360).
//
// Parameters:
//   - deg: angle in degrees, any magnitude
//
// Returns:
//   - float32: the equivalent angle in [0, 360)
func WrapDegrees(deg float32) float32 {
	w := float32(math.Mod(float64(deg), 360))
	if w < 0 {
		w += 360
	}
	// float rounding can push -tiny+360 up to exactly 360
	if w >= 360 {
		w = 0
	}
	return w
}

// SafeNormalize returns v scaled to unit length, or the zero vector when v is
// too short to normalize. mgl32's Normalize yields NaN for a zero vector.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the unit vector, or zero
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < normalizeEpsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// AngleAxis builds a rotation of deg degrees about axis.
//
// Parameters:
//   - deg: rotation angle in degrees
//   - axis: rotation axis (need not be normalized)
//
// Returns:
//   - mgl32.Quat: the rotation
func AngleAxis(deg float32, axis mgl32.Vec3) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(deg), SafeNormalize(axis))
}

// EulerToQuat builds a rotation from Euler angles in degrees.
// Rotations are composed yaw * pitch * roll, i.e. Y then X then Z applied to the
// object in local space, which is the convention used by every transform in the engine.
//
// Parameters:
//   - euler: (pitch about X, yaw about Y, roll about Z) in degrees
//
// Returns:
//   - mgl32.Quat: the composed rotation
func EulerToQuat(euler mgl32.Vec3) mgl32.Quat {
	qy := mgl32.QuatRotate(mgl32.DegToRad(euler.Y()), Up)
	qx := mgl32.QuatRotate(mgl32.DegToRad(euler.X()), Right)
	qz := mgl32.QuatRotate(mgl32.DegToRad(euler.Z()), Forward)
	return qy.Mul(qx).Mul(qz)
}

// QuatToEuler reads back the Euler angles of a rotation in degrees, each wrapped into [0, 360).
// It is the inverse of EulerToQuat for pitch in (-90, 90). At the poles the roll is
// folded into the yaw and reported as 0.
//
// Parameters:
//   - q: the rotation to decompose
//
// Returns:
//   - mgl32.Vec3: (pitch, yaw, roll) in degrees
func QuatToEuler(q mgl32.Quat) mgl32.Vec3 {
	// R = Ry * Rx * Rz, column-major:
	//   m[9]  = -sin(x)
	//   m[8]  =  sin(y)cos(x),  m[10] = cos(y)cos(x)
	//   m[1]  =  cos(x)sin(z),  m[5]  = cos(x)cos(z)
	m := q.Normalize().Mat4()

	sx := Clamp(-m[9], -1, 1)
	x := math.Asin(float64(sx))

	var y, z float64
	if math.Abs(float64(sx)) < 0.99999 {
		y = math.Atan2(float64(m[8]), float64(m[10]))
		z = math.Atan2(float64(m[1]), float64(m[5]))
	} else {
		// gimbal lock: with z = 0, m[0] = cos(y) and m[2] = -sin(y)
		y = math.Atan2(float64(-m[2]), float64(m[0]))
		z = 0
	}

	return mgl32.Vec3{
		WrapDegrees(mgl32.RadToDeg(float32(x))),
		WrapDegrees(mgl32.RadToDeg(float32(y))),
		WrapDegrees(mgl32.RadToDeg(float32(z))),
	}
}
