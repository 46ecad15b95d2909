package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// RodriguesFrank is a Rodrigues-Frank vector: a unit axis and tan(θ/2) stored separately so a
// half turn can be represented with an infinite fourth component.
type RodriguesFrank struct {
	RX      float64 `json:"x"`
	RY      float64 `json:"y"`
	RZ      float64 `json:"z"`
	TanHalf float64 `json:"tan_half"`
}

// RodriguesFrankFromR3 returns the Rodrigues-Frank form of a Rodrigues vector n tan(θ/2).
func RodriguesFrankFromR3(ro r3.Vector) *RodriguesFrank {
	norm := ro.Norm()
	if norm == 0 {
		return &RodriguesFrank{RZ: 1}
	}
	return &RodriguesFrank{RX: ro.X / norm, RY: ro.Y / norm, RZ: ro.Z / norm, TanHalf: norm}
}

// AxisAngles returns the orientation in axis angle representation.
func (rf *RodriguesFrank) AxisAngles() *R4AA {
	switch {
	case math.Abs(rf.TanHalf) < axisAngleEps:
		return NewR4AA()
	case math.IsInf(rf.TanHalf, 0):
		return &R4AA{Theta: math.Pi, RX: rf.RX, RY: rf.RY, RZ: rf.RZ}
	}
	aa := &R4AA{Theta: 2 * math.Atan(rf.TanHalf), RX: rf.RX, RY: rf.RY, RZ: rf.RZ}
	aa.Normalize()
	return aa
}

// Quaternion returns orientation in quaternion representation.
func (rf *RodriguesFrank) Quaternion() quat.Number {
	return rf.AxisAngles().ToQuat()
}

// EulerAngles returns orientation in Euler angle representation.
func (rf *RodriguesFrank) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(rf.Quaternion())
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rf *RodriguesFrank) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(rf.Quaternion())
}

// RodriguesFrank returns the orientation as a Rodrigues-Frank vector.
func (rf *RodriguesFrank) RodriguesFrank() *RodriguesFrank {
	return rf
}

// Homochoric returns the orientation as a homochoric vector.
func (rf *RodriguesFrank) Homochoric() r3.Vector {
	return QuatToHomochoric(rf.Quaternion())
}

// ToR3 returns the Rodrigues vector n tan(θ/2). Half turns have infinite components.
func (rf *RodriguesFrank) ToR3() r3.Vector {
	return r3.Vector{X: rf.RX * rf.TanHalf, Y: rf.RY * rf.TanHalf, Z: rf.RZ * rf.TanHalf}
}
