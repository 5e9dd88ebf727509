// Package vmath holds the small amount of 3D math the engine needs on top of mathgl
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Basis vectors in engine space (right-handed, Y up)
var (
	Right   = mgl64.Vec3{1, 0, 0}
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

// Epsilon is the default tolerance for approximate comparisons
const Epsilon = 1e-9

// AxisAngle returns the rotation of angle radians about axis
// A zero axis yields the identity rotation
func AxisAngle(axis mgl64.Vec3, angle float64) mgl64.Quat {
	if axis.LenSqr() == 0 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(angle, axis.Normalize())
}

// EulerDegrees builds a rotation from successive rotations about X, Y and Z in degrees
func EulerDegrees(v mgl64.Vec3) mgl64.Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(v.X()),
		mgl64.DegToRad(v.Y()),
		mgl64.DegToRad(v.Z()),
		mgl64.XYZ,
	)
}

// QuatFromMat3 converts a row-major 3x3 rotation (nine values, ODE layout) to a quaternion
func QuatFromMat3(r [9]float64) mgl64.Quat {
	// mgl64 matrices are column-major
	m := mgl64.Mat3{
		r[0], r[3], r[6],
		r[1], r[4], r[7],
		r[2], r[5], r[8],
	}
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// Mat3FromQuat returns the row-major 3x3 rotation for q
func Mat3FromQuat(q mgl64.Quat) [9]float64 {
	m := q.Normalize().Mat4()
	return [9]float64{
		m.At(0, 0), m.At(0, 1), m.At(0, 2),
		m.At(1, 0), m.At(1, 1), m.At(1, 2),
		m.At(2, 0), m.At(2, 1), m.At(2, 2),
	}
}

// TRS composes translation, rotation and scale into a model matrix
func TRS(position mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(rotation.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// ApproxEqual compares two vectors component-wise within eps
func ApproxEqual(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a.X()-b.X()) <= eps &&
		math.Abs(a.Y()-b.Y()) <= eps &&
		math.Abs(a.Z()-b.Z()) <= eps
}

// Round returns q with each component rounded to the nearest integer
func Round(q mgl64.Quat) mgl64.Quat {
	return mgl64.Quat{
		W: math.Round(q.W),
		V: mgl64.Vec3{math.Round(q.V.X()), math.Round(q.V.Y()), math.Round(q.V.Z())},
	}
}
