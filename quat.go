package kala

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quat is a rotation quaternion. The zero value is not a valid rotation; use
// QuatIdentity.
type Quat = mgl64.Quat

// QuatIdentity is the rotation that leaves vectors unchanged.
var QuatIdentity = mgl64.QuatIdent()

// QuatAxisAngle builds a rotation of deg degrees around axis.
func QuatAxisAngle(axis Vec3, deg float64) Quat {
	return mgl64.QuatRotate(radians(deg), axis.mgl())
}

// QuatFromEuler converts Euler angles in degrees to a quaternion. Rotations
// apply around X, then Y, then Z (q = qz * qy * qx).
func QuatFromEuler(e Vec3) Quat {
	return normalizeQuat(mgl64.AnglesToQuat(radians(e.Z), radians(e.Y), radians(e.X), mgl64.ZYX))
}

// QuatEuler converts q back to Euler angles in degrees, each wrapped into
// [0, 360). Inverse of QuatFromEuler away from the Y = ±90° singularity.
func QuatEuler(q Quat) Vec3 {
	m := q.Mat4().Mat3()
	x := math.Atan2(m.At(2, 1), m.At(2, 2))
	y := math.Asin(clamp(-m.At(2, 0), -1, 1))
	z := math.Atan2(m.At(1, 0), m.At(0, 0))
	return wrapEuler(Vec3{degrees(x), degrees(y), degrees(z)})
}

// normalizeQuat scales q to unit length. Zero and non-finite quaternions
// become the identity.
func normalizeQuat(q Quat) Quat {
	l := q.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return QuatIdentity
	}
	return q.Normalize()
}

// rotateVec3 applies q to v.
func rotateVec3(q Quat, v Vec3) Vec3 {
	return vec3(q.Rotate(v.mgl()))
}

func (v Vec3) mgl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func vec3(m mgl64.Vec3) Vec3 { return Vec3{m[0], m[1], m[2]} }
