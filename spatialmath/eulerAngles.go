package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles are Bunge (ZXZ) Euler angles in radians.
type EulerAngles struct {
	Phi1 float64 `json:"phi1"`
	Phi  float64 `json:"Phi"`
	Phi2 float64 `json:"phi2"`
}

// NewEulerAngles returns the zero rotation.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{}
}

// AxisAngles returns the orientation in axis angle representation.
func (ea *EulerAngles) AxisAngles() *R4AA {
	return QuatToR4AA(ea.Quaternion())
}

// Quaternion returns orientation in quaternion representation.
func (ea *EulerAngles) Quaternion() quat.Number {
	sigma := (ea.Phi1 + ea.Phi2) / 2
	delta := (ea.Phi1 - ea.Phi2) / 2
	c := math.Cos(ea.Phi / 2)
	s := math.Sin(ea.Phi / 2)
	q := quat.Number{
		Real: c * math.Cos(sigma),
		Imag: -s * math.Cos(delta),
		Jmag: -s * math.Sin(delta),
		Kmag: -c * math.Sin(sigma),
	}
	return Flip(q)
}

// EulerAngles returns orientation in Euler angle representation.
func (ea *EulerAngles) EulerAngles() *EulerAngles {
	return ea
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ea *EulerAngles) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(ea.Quaternion())
}

// RodriguesFrank returns the orientation as a Rodrigues-Frank vector.
func (ea *EulerAngles) RodriguesFrank() *RodriguesFrank {
	return ea.AxisAngles().RodriguesFrank()
}

// Homochoric returns the orientation as a homochoric vector.
func (ea *EulerAngles) Homochoric() r3.Vector {
	return QuatToHomochoric(ea.Quaternion())
}

// QuatToEulerAngles converts a unit quaternion to Bunge angles reduced to φ1 ∈ [0, 2π),
// Φ ∈ [0, π] and φ2 ∈ [0, 2π).
func QuatToEulerAngles(q quat.Number) *EulerAngles {
	q0, q1, q2, q3 := q.Real, q.Imag, q.Jmag, q.Kmag
	q03 := q0*q0 + q3*q3
	q12 := q1*q1 + q2*q2
	chi := math.Sqrt(q03 * q12)

	var ea EulerAngles
	switch {
	case chi == 0 && q12 == 0:
		ea.Phi1 = math.Atan2(-2*q0*q3, q0*q0-q3*q3)
	case chi == 0 && q03 == 0:
		ea.Phi1 = math.Atan2(2*q1*q2, q1*q1-q2*q2)
		ea.Phi = math.Pi
	default:
		ea.Phi1 = math.Atan2((q1*q3-q0*q2)/chi, (-q0*q1-q2*q3)/chi)
		ea.Phi = math.Atan2(2*chi, q03-q12)
		ea.Phi2 = math.Atan2((q0*q2+q1*q3)/chi, (q2*q3-q0*q1)/chi)
	}

	ea.Phi1 = reduceAngle(ea.Phi1, 2*math.Pi)
	ea.Phi = reduceAngle(ea.Phi, math.Pi)
	ea.Phi2 = reduceAngle(ea.Phi2, 2*math.Pi)
	return &ea
}

const eulerEps = 1e-12

// reduceAngle zeroes values indistinguishable from zero and maps negative angles into range.
func reduceAngle(a, period float64) float64 {
	if math.Abs(a) < eulerEps {
		return 0
	}
	if a < 0 {
		a += period
	}
	return a
}
