package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// AxisX is the unit X axis.
	AxisX = mgl64.Vec3{1, 0, 0}
	// AxisY is the unit Y axis, also used as the world up vector.
	AxisY = mgl64.Vec3{0, 1, 0}
	// AxisZ is the unit Z axis. Nodes treat +Z as their facing direction.
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// WrapAngle folds an angle into (-2π, 2π) keeping the sign of the input,
// matching a floating point remainder by a full turn.
//
// Parameters:
//   - rad: angle in radians
//
// Returns:
//   - float64: the wrapped angle
func WrapAngle(rad float64) float64 {
	return math.Mod(rad, 2*math.Pi)
}

// SphericalPhi returns the polar angle of v measured from the +Y pole, in [0, π].
// A zero-length vector yields 0.
//
// Parameters:
//   - v: direction vector
//
// Returns:
//   - float64: polar angle in radians
func SphericalPhi(v mgl64.Vec3) float64 {
	r := v.Len()
	if r == 0 {
		return 0
	}
	return math.Acos(mgl64.Clamp(v.Y()/r, -1, 1))
}

// RotateAboutX rotates v around the local X axis by angle radians.
//
// Parameters:
//   - v: vector to rotate
//   - angle: rotation in radians
//
// Returns:
//   - mgl64.Vec3: the rotated vector
func RotateAboutX(v mgl64.Vec3, angle float64) mgl64.Vec3 {
	sin, cos := math.Sincos(angle)
	return mgl64.Vec3{
		v.X(),
		v.Y()*cos - v.Z()*sin,
		v.Y()*sin + v.Z()*cos,
	}
}

// EulerToQuat converts XYZ-ordered Euler angles (R = Rx * Ry * Rz) to a quaternion.
//
// Parameters:
//   - rx, ry, rz: rotation angles in radians around each axis
//
// Returns:
//   - mgl64.Quat: the equivalent unit quaternion
func EulerToQuat(rx, ry, rz float64) mgl64.Quat {
	qx := mgl64.QuatRotate(rx, AxisX)
	qy := mgl64.QuatRotate(ry, AxisY)
	qz := mgl64.QuatRotate(rz, AxisZ)
	return qx.Mul(qy).Mul(qz)
}

// QuatToEuler decomposes a unit quaternion into XYZ-ordered Euler angles.
// Near gimbal lock (|m13| ~ 1) the Z angle is reported as 0.
//
// Parameters:
//   - q: unit quaternion
//
// Returns:
//   - rx, ry, rz: rotation angles in radians
func QuatToEuler(q mgl64.Quat) (rx, ry, rz float64) {
	m := q.Mat4()
	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	ry = math.Asin(mgl64.Clamp(m13, -1, 1))
	if math.Abs(m13) < 0.9999999 {
		rx = math.Atan2(-m23, m33)
		rz = math.Atan2(-m12, m11)
	} else {
		rx = math.Atan2(m32, m22)
		rz = 0
	}
	return rx, ry, rz
}

// LookRotation builds the rotation whose +Z axis points along forward, keeping the
// X axis perpendicular to up. A zero forward vector is treated as +Z. When forward
// is parallel to up, forward is nudged slightly so a basis can still be formed.
//
// Parameters:
//   - forward: desired facing direction (need not be normalized)
//   - up: reference up vector
//
// Returns:
//   - mgl64.Quat: the unit rotation
func LookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	z := forward
	if z.Len() == 0 {
		z = AxisZ
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Len() == 0 {
		if math.Abs(up.Z()) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	// column-major basis: columns are x, y, z
	m := mgl64.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		0, 0, 0, 1,
	}
	return mgl64.Mat4ToQuat(m).Normalize()
}

// HorizontalHeading strips pitch and roll from q by zeroing its X and Z components
// and renormalizing, leaving only the rotation about the Y axis.
// A quaternion with no yaw component at all collapses to identity.
//
// Parameters:
//   - q: orientation to flatten
//
// Returns:
//   - mgl64.Quat: yaw-only unit quaternion
func HorizontalHeading(q mgl64.Quat) mgl64.Quat {
	q.V[0] = 0
	q.V[2] = 0
	if q.W == 0 && q.V[1] == 0 {
		return mgl64.QuatIdent()
	}
	return q.Normalize()
}
