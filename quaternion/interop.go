package quaternion

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/texture/utils"
)

// Quaternions in mathgl and in scalar-last arrays apply active rotations, the inverse of the
// passive rotations held here. Converting in either direction conjugates the vector part.

// FromMGL returns one quaternion per mathgl quaternion along a single navigation axis.
func FromMGL(qs ...mgl64.Quat) *Quaternion {
	data := make([]float64, 0, len(qs)*dim)
	for _, q := range qs {
		data = append(data, q.W, -q.V[0], -q.V[1], -q.V[2])
	}
	return mustNew(data, len(qs))
}

// MGL returns every quaternion as an active mathgl quaternion in flat order.
func (q *Quaternion) MGL() []mgl64.Quat {
	data := q.Data()
	out := make([]mgl64.Quat, q.Size())
	for i := range out {
		row := data[i*dim:]
		out[i] = mgl64.Quat{W: row[0], V: mgl64.Vec3{-row[1], -row[2], -row[3]}}
	}
	return out
}

// FromScalarLast returns quaternions from active x, y, z, w rows laid out over shape.
func FromScalarLast(data []float64, shape ...int) (*Quaternion, error) {
	if len(data)%dim != 0 {
		return nil, utils.NewShapeMismatchError("scalar-last", []int{len(data)}, []int{dim})
	}
	out := make([]float64, len(data))
	for i := 0; i < len(data); i += dim {
		putQuat(out[i:], quat.Conj(quat.Number{Real: data[i+3], Imag: data[i], Jmag: data[i+1], Kmag: data[i+2]}))
	}
	if len(shape) == 0 {
		shape = []int{len(data) / dim}
	}
	return New(out, shape...)
}

// ScalarLast returns the quaternions as active x, y, z, w rows in flat order.
func (q *Quaternion) ScalarLast() []float64 {
	out := make([]float64, 0, q.Size()*dim)
	for _, n := range q.Conj().Numbers() {
		out = append(out, n.Imag, n.Jmag, n.Kmag, n.Real)
	}
	return out
}
