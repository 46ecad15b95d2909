package quaternion

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/texture/object3d"
	"go.viam.com/texture/utils"
	"go.viam.com/texture/vector"
)

// Mul returns the Hamilton product q * other. The shapes must match or one side must hold a
// single quaternion.
func (q *Quaternion) Mul(other *Quaternion) (*Quaternion, error) {
	if err := checkBroadcast("multiply", q.Shape(), other.Shape()); err != nil {
		return nil, err
	}
	shape := broadcastShape(q.Shape(), other.Shape())
	n := object3d.ShapeSize(shape)
	a, b := q.Data(), other.Data()
	out := make([]float64, n*dim)
	for i := 0; i < n; i++ {
		hamilton(out[i*dim:], a[broadcastIndex(i, q.Size())*dim:], b[broadcastIndex(i, other.Size())*dim:])
	}
	return New(out, shape...)
}

// hamilton writes the product of p and r into out.
func hamilton(out, p, r []float64) {
	a1, b1, c1, d1 := p[0], p[1], p[2], p[3]
	a2, b2, c2, d2 := r[0], r[1], r[2], r[3]
	out[0] = a1*a2 - b1*b2 - c1*c2 - d1*d2
	out[1] = b1*a2 + a1*b2 - d1*c2 + c1*d2
	out[2] = c1*a2 + d1*b2 + a1*c2 - b1*d2
	out[3] = d1*a2 - c1*b2 + b1*c2 + a1*d2
}

// rotate writes the vector part of p v p⁻¹ into out. p need not be unit.
func rotate(out, p, v []float64) {
	a, b, c, d := p[0], p[1], p[2], p[3]
	x, y, z := v[0], v[1], v[2]
	n := a*a + b*b + c*c + d*d
	out[0] = (x*(a*a+b*b-c*c-d*d) + 2*(z*(a*c+b*d)+y*(b*c-a*d))) / n
	out[1] = (y*(a*a-b*b+c*c-d*d) + 2*(x*(a*d+b*c)+z*(c*d-a*b))) / n
	out[2] = (z*(a*a-b*b-c*c+d*d) + 2*(y*(a*b+c*d)+x*(b*d-a*c))) / n
}

// Rotate applies the rotations to vectors, returning the vector part of q v q⁻¹. The shapes
// must match or q must hold a single quaternion.
func (q *Quaternion) Rotate(v *vector.Vector3D) (*vector.Vector3D, error) {
	if q.Size() != 1 && !object3d.ShapesEqual(q.Shape(), v.Shape()) {
		return nil, utils.NewShapeMismatchError("rotate", q.Shape(), v.Shape())
	}
	a, b := q.Data(), v.Data()
	out := make([]float64, len(b))
	for i := 0; i < v.Size(); i++ {
		rotate(out[i*3:], a[broadcastIndex(i, q.Size())*dim:], b[i*3:])
	}
	return vector.New(out, v.Shape()...)
}

// RotateMiller is Rotate for Miller vectors. The phase and coordinate format are kept.
func (q *Quaternion) RotateMiller(m *vector.Miller) (*vector.Miller, error) {
	v, err := q.Rotate(m.Vector())
	if err != nil {
		return nil, err
	}
	return m.WithVector(v), nil
}

// RotateR3 applies the i-th rotation in flat order to a single vector.
func (q *Quaternion) RotateR3(i int, v r3.Vector) r3.Vector {
	var out [3]float64
	rotate(out[:], q.obj.Row(i), []float64{v.X, v.Y, v.Z})
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}
}

// MulAny multiplies by a *Quaternion, *vector.Vector3D or *vector.Miller. The result has the
// type of other.
func (q *Quaternion) MulAny(other interface{}) (interface{}, error) {
	switch o := other.(type) {
	case *Quaternion:
		return q.Mul(o)
	case *vector.Vector3D:
		return q.Rotate(o)
	case *vector.Miller:
		return q.RotateMiller(o)
	default:
		return nil, utils.NewUnsupportedOperandError("multiply", other, "*Quaternion", "*vector.Vector3D", "*vector.Miller")
	}
}

// TripleCross returns the quaternion perpendicular to the three given ones, elementwise. All
// three batches must have the same shape.
func TripleCross(q1, q2, q3 *Quaternion) (*Quaternion, error) {
	if !object3d.ShapesEqual(q1.Shape(), q2.Shape()) || !object3d.ShapesEqual(q1.Shape(), q3.Shape()) {
		return nil, errors.Errorf("triple cross product needs equal shapes, got %v, %v and %v",
			q1.Shape(), q2.Shape(), q3.Shape())
	}
	d1, d2, d3 := q1.Data(), q2.Data(), q3.Data()
	out := make([]float64, len(d1))
	for i := 0; i < len(d1); i += dim {
		putQuat(out[i:], tripleCross(rowQuat(d1[i:]), rowQuat(d2[i:]), rowQuat(d3[i:])))
	}
	return New(out, q1.Shape()...)
}

func tripleCross(q1, q2, q3 quat.Number) quat.Number {
	q1a, q1b, q1c, q1d := q1.Real, q1.Imag, q1.Jmag, q1.Kmag
	q2a, q2b, q2c, q2d := q2.Real, q2.Imag, q2.Jmag, q2.Kmag
	q3a, q3b, q3c, q3d := q3.Real, q3.Imag, q3.Jmag, q3.Kmag
	return quat.Number{
		Real: q1b*q2c*q3d - q1b*q3c*q2d - q2b*q1c*q3d + q2b*q3c*q1d + q3b*q1c*q2d - q3b*q2c*q1d,
		Imag: q1a*q3c*q2d - q1a*q2c*q3d + q2a*q1c*q3d - q2a*q3c*q1d - q3a*q1c*q2d + q3a*q2c*q1d,
		Jmag: q1a*q2b*q3d - q1a*q3b*q2d - q2a*q1b*q3d + q2a*q3b*q1d + q3a*q1b*q2d - q3a*q2b*q1d,
		Kmag: q1a*q3b*q2c - q1a*q2b*q3c + q2a*q1b*q3c - q2a*q3b*q1c - q3a*q1b*q2c + q3a*q2b*q1c,
	}
}
