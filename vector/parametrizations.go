package vector

import (
	"math"

	"go.viam.com/texture/utils"
)

// AxAngle is a batch of axis-angle vectors. The direction of each vector is the rotation axis
// and its length is the rotation angle in radians.
type AxAngle struct {
	*Vector3D
}

// NewAxAngle returns axis-angle vectors from row-major data.
func NewAxAngle(data []float64, shape ...int) (*AxAngle, error) {
	v, err := newNamed("AxAngle", data, shape...)
	if err != nil {
		return nil, err
	}
	return &AxAngle{v}, nil
}

// AxAngleFromAxesAngles scales each unit axis by its angle. A single angle is applied to
// every axis.
func AxAngleFromAxesAngles(axes *Vector3D, angles []float64, degrees bool) (*AxAngle, error) {
	scaled := angles
	if degrees {
		scaled = make([]float64, len(angles))
		for i, a := range angles {
			scaled[i] = utils.DegToRad(a)
		}
	}
	v, err := axes.Unit().ScaleEach(scaled)
	if err != nil {
		return nil, err
	}
	return NewAxAngle(v.Data(), v.Shape()...)
}

// Axis returns the unit rotation axes.
func (a *AxAngle) Axis() *Vector3D {
	return a.Unit()
}

// Angle returns the rotation angles in radians.
func (a *AxAngle) Angle() []float64 {
	return a.Norm()
}

// Rodrigues is a batch of Rodrigues vectors, n·tan(ω/2).
type Rodrigues struct {
	*Vector3D
}

// NewRodrigues returns Rodrigues vectors from row-major data.
func NewRodrigues(data []float64, shape ...int) (*Rodrigues, error) {
	v, err := newNamed("Rodrigues", data, shape...)
	if err != nil {
		return nil, err
	}
	return &Rodrigues{v}, nil
}

// Angle returns the rotation angles in radians.
func (r *Rodrigues) Angle() []float64 {
	out := r.Norm()
	for i, n := range out {
		out[i] = 2 * math.Atan(n)
	}
	return out
}

// Homochoric is a batch of homochoric vectors, n·[3/4(ω - sin ω)]^(1/3).
type Homochoric struct {
	*Vector3D
}

// NewHomochoric returns homochoric vectors from row-major data.
func NewHomochoric(data []float64, shape ...int) (*Homochoric, error) {
	v, err := newNamed("Homochoric", data, shape...)
	if err != nil {
		return nil, err
	}
	return &Homochoric{v}, nil
}
