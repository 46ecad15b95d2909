// Package spatialmath converts single crystal orientations between their parametrizations.
//
// Conventions follow Rowenhorst et al. (2015): rotations are passive, quaternions are stored
// scalar first and Euler angles are Bunge (ZXZ) angles. Every conversion goes through a unit
// quaternion represented by quat.Number.
package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/texture/utils"
)

// Orientation is an interface used to express the different parametrizations of a single
// crystal orientation.
type Orientation interface {
	AxisAngles() *R4AA
	Quaternion() quat.Number
	EulerAngles() *EulerAngles
	RotationMatrix() *RotationMatrix
	RodriguesFrank() *RodriguesFrank
	Homochoric() r3.Vector
}

// NewZeroOrientation returns an orientation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return &quaternion{1, 0, 0, 0}
}

// NewQuaternion wraps a quaternion as an Orientation. It is normalized first.
func NewQuaternion(q quat.Number) Orientation {
	n := quat.Abs(q)
	if n == 0 {
		return NewZeroOrientation()
	}
	u := quaternion(quat.Scale(1/n, q))
	return &u
}

// OrientationAlmostEqual reports whether two orientations describe the same rotation. q and -q
// are considered equal.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	q1, q2 := o1.Quaternion(), o2.Quaternion()
	return QuaternionAlmostEqual(q1, q2, 1e-5) || QuaternionAlmostEqual(q1, quat.Scale(-1, q2), 1e-5)
}

// OrientationBetween returns the orientation o such that o2 = o * o1.
func OrientationBetween(o1, o2 Orientation) Orientation {
	q := quaternion(quat.Mul(o2.Quaternion(), quat.Conj(o1.Quaternion())))
	return &q
}

// QuaternionAlmostEqual compares each component of two quaternions within tol.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return utils.Float64AlmostEqual(a.Real, b.Real, tol) &&
		utils.Float64AlmostEqual(a.Imag, b.Imag, tol) &&
		utils.Float64AlmostEqual(a.Jmag, b.Jmag, tol) &&
		utils.Float64AlmostEqual(a.Kmag, b.Kmag, tol)
}

// Flip returns q with a non-negative scalar part.
func Flip(q quat.Number) quat.Number {
	if q.Real < 0 {
		return quat.Scale(-1, q)
	}
	return q
}

type quaternion quat.Number

func (q *quaternion) Quaternion() quat.Number {
	return quat.Number(*q)
}

func (q *quaternion) AxisAngles() *R4AA {
	return QuatToR4AA(q.Quaternion())
}

func (q *quaternion) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(q.Quaternion())
}

func (q *quaternion) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(q.Quaternion())
}

func (q *quaternion) RodriguesFrank() *RodriguesFrank {
	return QuatToR4AA(q.Quaternion()).RodriguesFrank()
}

func (q *quaternion) Homochoric() r3.Vector {
	return QuatToHomochoric(q.Quaternion())
}
