package quaternion

import (
	"math"

	"gorgonia.org/tensor"

	"go.viam.com/texture/object3d"
	"go.viam.com/texture/spatialmath"
	"go.viam.com/texture/utils"
	"go.viam.com/texture/vector"
)

// ToEuler returns Bunge Euler angles in a tensor shaped Shape() + (3,), with φ1 in [0, 2π),
// Φ in [0, π] and φ2 in [0, 2π), or the same ranges in degrees.
func (q *Quaternion) ToEuler(degrees bool) *tensor.Dense {
	eu := spatialmath.QuToEuBatch(q.Unit().Data())
	if degrees {
		for i, a := range eu {
			eu[i] = utils.RadToDeg(a)
		}
	}
	return object3d.NewTensor(eu, append(q.Shape(), 3)...)
}

// ToMatrix returns rotation matrices in a tensor shaped Shape() + (3, 3).
func (q *Quaternion) ToMatrix() *tensor.Dense {
	return object3d.NewTensor(spatialmath.QuToOmBatch(q.Unit().Data()), append(q.Shape(), 3, 3)...)
}

// ToAxesAngles returns axis-angle vectors with angles in [0, π].
func (q *Quaternion) ToAxesAngles() *vector.AxAngle {
	ax := spatialmath.QuToAxBatch(q.Unit().Data())
	out := make([]float64, 0, q.Size()*3)
	for i := 0; i < len(ax); i += 4 {
		out = append(out, ax[i]*ax[i+3], ax[i+1]*ax[i+3], ax[i+2]*ax[i+3])
	}
	aa, err := vector.NewAxAngle(out, q.Shape()...)
	if err != nil {
		panic(err)
	}
	return aa
}

// ToRodrigues returns Rodrigues vectors n tan(ω/2). Half turns have infinite components.
func (q *Quaternion) ToRodrigues() *vector.Rodrigues {
	rf := q.rodriguesFrank()
	out := make([]float64, 0, q.Size()*3)
	for i := 0; i < len(rf); i += 4 {
		t := rf[i+3]
		out = append(out, scaleAxis(rf[i], t), scaleAxis(rf[i+1], t), scaleAxis(rf[i+2], t))
	}
	ro, err := vector.NewRodrigues(out, q.Shape()...)
	if err != nil {
		panic(err)
	}
	return ro
}

// scaleAxis keeps zero axis components at zero for half turns instead of producing NaN.
func scaleAxis(n, t float64) float64 {
	if n == 0 {
		return 0
	}
	return n * t
}

// ToRodriguesFrank returns Rodrigues-Frank vectors [n, tan(ω/2)] in a tensor shaped
// Shape() + (4,).
func (q *Quaternion) ToRodriguesFrank() *tensor.Dense {
	return object3d.NewTensor(q.rodriguesFrank(), append(q.Shape(), 4)...)
}

func (q *Quaternion) rodriguesFrank() []float64 {
	return spatialmath.AxToRoBatch(spatialmath.QuToAxBatch(q.Unit().Data()))
}

// ToHomochoric returns homochoric vectors.
func (q *Quaternion) ToHomochoric() *vector.Homochoric {
	ho, err := vector.NewHomochoric(spatialmath.QuToHoBatch(q.Unit().Data()), q.Shape()...)
	if err != nil {
		panic(err)
	}
	return ho
}

// Orientations returns every quaternion, normalized, as a spatialmath.Orientation in flat order.
func (q *Quaternion) Orientations() []spatialmath.Orientation {
	quats := q.Numbers()
	out := make([]spatialmath.Orientation, len(quats))
	for i, n := range quats {
		out[i] = spatialmath.NewQuaternion(n)
	}
	return out
}

// MaxAngle returns the largest rotation angle in the batch, or 0 for an empty batch.
func (q *Quaternion) MaxAngle() float64 {
	out := 0.0
	for _, a := range q.Angle() {
		out = math.Max(out, a)
	}
	return out
}
