package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// R4AA represents an R4 axis angle: a unit rotation axis (RX, RY, RZ) and an angle Theta in
// radians.
type R4AA struct {
	Theta float64 `json:"th"`
	RX    float64 `json:"x"`
	RY    float64 `json:"y"`
	RZ    float64 `json:"z"`
}

// NewR4AA returns the zero rotation about z.
func NewR4AA() *R4AA {
	return &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// AxisAngles returns the orientation in axis angle representation.
func (r4 *R4AA) AxisAngles() *R4AA {
	return r4
}

// Quaternion returns orientation in quaternion representation.
func (r4 *R4AA) Quaternion() quat.Number {
	return r4.ToQuat()
}

// EulerAngles returns orientation in Euler angle representation.
func (r4 *R4AA) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(r4.Quaternion())
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (r4 *R4AA) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(r4.Quaternion())
}

// Homochoric returns the orientation as a homochoric vector.
func (r4 *R4AA) Homochoric() r3.Vector {
	return QuatToHomochoric(r4.Quaternion())
}

// ToR3 converts an R4 angle axis to R3.
func (r4 *R4AA) ToR3() r3.Vector {
	return r3.Vector{X: r4.RX * r4.Theta, Y: r4.RY * r4.Theta, Z: r4.RZ * r4.Theta}
}

// ToQuat converts an R4 axis angle to a unit quaternion, [cos(θ/2), n sin(θ/2)]. A zero angle
// gives the identity whatever the axis.
func (r4 *R4AA) ToQuat() quat.Number {
	if r4.Theta == 0 {
		return quat.Number{Real: 1}
	}
	n := r4.normalized()
	sinA := math.Sin(r4.Theta / 2)
	return quat.Number{
		Real: math.Cos(r4.Theta / 2),
		Imag: n.RX * sinA,
		Jmag: n.RY * sinA,
		Kmag: n.RZ * sinA,
	}
}

// Normalize scales the x, y, and z components of a R4 axis angle to be on the unit sphere. A zero
// axis becomes the z axis.
func (r4 *R4AA) Normalize() {
	*r4 = r4.normalized()
}

func (r4 *R4AA) normalized() R4AA {
	norm := math.Sqrt(r4.RX*r4.RX + r4.RY*r4.RY + r4.RZ*r4.RZ)
	if norm == 0 {
		return R4AA{Theta: r4.Theta, RZ: 1}
	}
	return R4AA{Theta: r4.Theta, RX: r4.RX / norm, RY: r4.RY / norm, RZ: r4.RZ / norm}
}

// RodriguesFrank returns the Rodrigues-Frank vector [n, tan(θ/2)]. A zero angle gives
// [0, 0, 1, 0] and a half turn gives an infinite fourth component.
func (r4 *R4AA) RodriguesFrank() *RodriguesFrank {
	if r4.Theta == 0 {
		return &RodriguesFrank{RZ: 1}
	}
	n := r4.normalized()
	t := math.Tan(r4.Theta / 2)
	if math.Abs(r4.Theta-math.Pi) < axisAngleEps {
		t = math.Inf(1)
	}
	return &RodriguesFrank{RX: n.RX, RY: n.RY, RZ: n.RZ, TanHalf: t}
}

// R3ToR4 converts an R3 angle axis to R4.
func R3ToR4(aa r3.Vector) *R4AA {
	theta := aa.Norm()
	if theta == 0 {
		return NewR4AA()
	}
	return &R4AA{theta, aa.X / theta, aa.Y / theta, aa.Z / theta}
}

// QuatToR4AA converts a quaternion to axis angle form with θ in [0, π]. The identity gives a zero
// rotation about z.
func QuatToR4AA(q quat.Number) *R4AA {
	q = Flip(q)
	if n := quat.Abs(q); n != 0 {
		q = quat.Scale(1/n, q)
	}
	theta := 2 * math.Acos(clampUnit(q.Real))
	if theta < axisAngleEps {
		return NewR4AA()
	}
	if math.Abs(q.Real) < axisAngleEps {
		return &R4AA{Theta: math.Pi, RX: q.Imag, RY: q.Jmag, RZ: q.Kmag}
	}
	s := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	return &R4AA{Theta: theta, RX: q.Imag / s, RY: q.Jmag / s, RZ: q.Kmag / s}
}

const axisAngleEps = 1e-12

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
