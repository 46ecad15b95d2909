// Package quaternion implements batches of quaternions representing crystal orientations and
// the algebra on them: Hamilton products, vector rotation, outer products, means, and the
// conversions to and from the other rotation parametrizations.
//
// Rotations are passive and quaternions are stored scalar first, a + bi + cj + dk. A Quaternion
// is never modified by an operation except Set; everything else returns a new batch.
package quaternion

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"

	"go.viam.com/texture/object3d"
	"go.viam.com/texture/utils"
	"go.viam.com/texture/vector"
)

const (
	dim      = 4
	typeName = "Quaternion"

	// randomEps bounds the squared norm of rejected random samples from below.
	randomEps = 1e-9
	// axisFlipTol is how negative the scalar part may be before an axis is flipped.
	axisFlipTol = -1e-6
)

// Quaternion is a batch of quaternions laid out over navigation axes.
type Quaternion struct {
	obj *object3d.Object3D
}

// New returns quaternions from row-major a, b, c, d data laid out over shape.
func New(data []float64, shape ...int) (*Quaternion, error) {
	obj, err := object3d.NewNamed(typeName, dim, data, shape...)
	if err != nil {
		return nil, err
	}
	return &Quaternion{obj}, nil
}

// FromNumbers returns one quaternion per number along a single navigation axis.
func FromNumbers(qs ...quat.Number) *Quaternion {
	data := make([]float64, 0, len(qs)*dim)
	for _, q := range qs {
		data = append(data, q.Real, q.Imag, q.Jmag, q.Kmag)
	}
	return mustNew(data, len(qs))
}

// FromObject wraps a copy of an object whose dimension is 4.
func FromObject(o *object3d.Object3D) (*Quaternion, error) {
	if o.Dim() != dim {
		return nil, object3d.NewDimensionError(typeName, dim, o.Dim())
	}
	return New(o.Data(), o.Shape()...)
}

// FromTensor returns quaternions from a tensor whose trailing axis has length 4.
func FromTensor(t *tensor.Dense) (*Quaternion, error) {
	obj, err := object3d.FromTensor(typeName, dim, t)
	if err != nil {
		return nil, err
	}
	return &Quaternion{obj}, nil
}

// Empty returns a batch without quaternions.
func Empty() *Quaternion {
	return &Quaternion{object3d.Empty(typeName, dim)}
}

// Identity returns identity quaternions of the given shape, (1,) by default.
func Identity(shape ...int) *Quaternion {
	obj := object3d.Zeros(typeName, dim, shape...)
	data := obj.Data()
	for i := 0; i < len(data); i += dim {
		data[i] = 1
	}
	return mustNew(data, obj.Shape()...)
}

// Random returns uniformly distributed unit quaternions of the given shape, (1,) by default.
//
// Points are drawn from [-1, 1]^4 and kept when they fall inside the unit ball and away from
// the origin, so normalizing them gives a uniform distribution over rotations.
func Random(shape ...int) *Quaternion {
	if len(shape) == 0 {
		shape = []int{1}
	}
	n := object3d.ShapeSize(shape)
	dist := distuv.Uniform{Min: -1, Max: 1}
	data := make([]float64, 0, n*dim)
	for len(data) < n*dim {
		for i := 0; i < 3*n && len(data) < n*dim; i++ {
			q := quat.Number{Real: dist.Rand(), Imag: dist.Rand(), Jmag: dist.Rand(), Kmag: dist.Rand()}
			r2 := q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag
			if r2 <= randomEps*randomEps || r2 > 1 {
				continue
			}
			q = quat.Scale(1/math.Sqrt(r2), q)
			data = append(data, q.Real, q.Imag, q.Jmag, q.Kmag)
		}
	}
	return mustNew(data, shape...)
}

// Stack joins equally shaped batches along a new last navigation axis.
func Stack(seq []*Quaternion) (*Quaternion, error) {
	objs := make([]*object3d.Object3D, len(seq))
	for i, q := range seq {
		objs[i] = q.obj
	}
	obj, err := object3d.Stack(objs)
	if err != nil {
		return nil, err
	}
	return &Quaternion{obj}, nil
}

func mustNew(data []float64, shape ...int) *Quaternion {
	q, err := New(data, shape...)
	if err != nil {
		// only reachable through a layout bug in this package
		panic(err)
	}
	return q
}

func wrap(obj *object3d.Object3D, err error) (*Quaternion, error) {
	if err != nil {
		return nil, err
	}
	return &Quaternion{obj}, nil
}

// Object returns a copy of the underlying container.
func (q *Quaternion) Object() *object3d.Object3D { return q.obj.Clone() }

// Shape returns the navigation shape.
func (q *Quaternion) Shape() []int { return q.obj.Shape() }

// Size returns the number of quaternions.
func (q *Quaternion) Size() int { return q.obj.Size() }

// NDim returns the number of navigation axes.
func (q *Quaternion) NDim() int { return q.obj.NDim() }

// Data returns a row-major copy of the components.
func (q *Quaternion) Data() []float64 { return q.obj.Data() }

// Tensor returns the quaternions as a tensor of shape Shape() + (4,).
func (q *Quaternion) Tensor() *tensor.Dense { return q.obj.Tensor() }

// At returns the i-th quaternion in flat order.
func (q *Quaternion) At(i int) quat.Number {
	return rowQuat(q.obj.Row(i))
}

// Numbers returns every quaternion in flat order.
func (q *Quaternion) Numbers() []quat.Number {
	data := q.Data()
	out := make([]quat.Number, q.Size())
	for i := range out {
		out[i] = rowQuat(data[i*dim:])
	}
	return out
}

// A returns the scalar parts in flat order.
func (q *Quaternion) A() []float64 { return q.component(0) }

// B returns the i components in flat order.
func (q *Quaternion) B() []float64 { return q.component(1) }

// C returns the j components in flat order.
func (q *Quaternion) C() []float64 { return q.component(2) }

// D returns the k components in flat order.
func (q *Quaternion) D() []float64 { return q.component(3) }

func (q *Quaternion) component(c int) []float64 {
	data := q.Data()
	out := make([]float64, q.Size())
	for i := range out {
		out[i] = data[i*dim+c]
	}
	return out
}

func (q *Quaternion) String() string { return q.obj.String() }

// Get fixes the leading navigation axes.
func (q *Quaternion) Get(idx ...int) (*Quaternion, error) { return wrap(q.obj.Get(idx...)) }

// Slice returns the quaternions with index in [start, stop) along one navigation axis.
func (q *Quaternion) Slice(axis, start, stop int) (*Quaternion, error) {
	return wrap(q.obj.Slice(axis, start, stop))
}

// Take selects quaternions by flat index.
func (q *Quaternion) Take(flat []int) (*Quaternion, error) { return wrap(q.obj.Take(flat)) }

// Set overwrites the quaternions at the given flat indices with src, in order. A src of size one
// is written to every index.
func (q *Quaternion) Set(flat []int, src *Quaternion) error { return q.obj.Set(flat, src.obj) }

// Reshape lays the quaternions out over a new navigation shape.
func (q *Quaternion) Reshape(shape ...int) (*Quaternion, error) { return wrap(q.obj.Reshape(shape...)) }

// Transpose permutes the navigation axes.
func (q *Quaternion) Transpose(axes ...int) (*Quaternion, error) {
	return wrap(q.obj.Transpose(axes...))
}

// Flatten returns the quaternions along a single navigation axis.
func (q *Quaternion) Flatten() *Quaternion { return &Quaternion{q.obj.Flatten()} }

// Squeeze removes navigation axes of length one.
func (q *Quaternion) Squeeze() *Quaternion { return &Quaternion{q.obj.Squeeze()} }

// Unique returns the numerically unique non-zero quaternions. See object3d.Object3D.Unique.
func (q *Quaternion) Unique() (*Quaternion, []int, []int) {
	obj, index, inverse := q.obj.Unique()
	return &Quaternion{obj}, index, inverse
}

// RandomSample draws size distinct quaternions at random.
func (q *Quaternion) RandomSample(size int) (*Quaternion, error) {
	return wrap(q.obj.RandomSample(size))
}

// Norm returns the norm of every quaternion.
func (q *Quaternion) Norm() []float64 { return q.obj.Norm() }

// Unit returns the quaternions normalized to unit norm. Zero quaternions stay zero.
func (q *Quaternion) Unit() *Quaternion { return &Quaternion{q.obj.Unit()} }

// Neg negates all four components.
func (q *Quaternion) Neg() *Quaternion { return &Quaternion{q.obj.Scale(-1)} }

// Conj negates the vector parts.
func (q *Quaternion) Conj() *Quaternion {
	return q.mapQuats(quat.Conj)
}

// Inverse returns the conjugate divided by the squared norm.
func (q *Quaternion) Inverse() *Quaternion {
	return q.mapQuats(quat.Inv)
}

func (q *Quaternion) mapQuats(fn func(quat.Number) quat.Number) *Quaternion {
	data := q.Data()
	for i := 0; i < len(data); i += dim {
		putQuat(data[i:], fn(rowQuat(data[i:])))
	}
	return mustNew(data, q.Shape()...)
}

// Axis returns the rotation axes. Axes are flipped where the scalar part is negative, and a
// quaternion without vector part gets the z axis times the sign of its scalar part.
func (q *Quaternion) Axis() *vector.Vector3D {
	data := q.Data()
	out := make([]float64, 0, q.Size()*3)
	for i := 0; i < len(data); i += dim {
		a, b, c, d := data[i], data[i+1], data[i+2], data[i+3]
		if a < axisFlipTol {
			b, c, d = -b, -c, -d
		}
		n := math.Sqrt(b*b + c*c + d*d)
		if n == 0 {
			s := utils.Sign(a)
			if s == 0 {
				s = 1
			}
			out = append(out, 0, 0, s)
			continue
		}
		out = append(out, b/n, c/n, d/n)
	}
	v, err := vector.New(out, q.Shape()...)
	if err != nil {
		panic(err)
	}
	return v
}

// Angle returns the rotation angles 2 arccos|a| in radians.
func (q *Quaternion) Angle() []float64 {
	out := q.A()
	for i, a := range out {
		out[i] = utils.NanToNum(2 * math.Acos(math.Abs(a)))
	}
	return out
}

// Antipodal stacks q and -q along a new leading navigation axis of length 2.
func (q *Quaternion) Antipodal() *Quaternion {
	data := append(q.Data(), q.Neg().Data()...)
	return mustNew(data, append([]int{2}, q.Shape()...)...)
}

// Dot returns the elementwise dot product. other must match the shape or hold one quaternion.
func (q *Quaternion) Dot(other *Quaternion) ([]float64, error) {
	if err := checkBroadcast("dot", q.Shape(), other.Shape()); err != nil {
		return nil, err
	}
	n := max(q.Size(), other.Size())
	a, b := q.Data(), other.Data()
	out := make([]float64, n)
	for i := range out {
		out[i] = dot4(a[broadcastIndex(i, q.Size())*dim:], b[broadcastIndex(i, other.Size())*dim:])
	}
	return out, nil
}

// DotOuter returns the dot product of every pair, shaped q.Shape() + other.Shape().
func (q *Quaternion) DotOuter(other *Quaternion) *tensor.Dense {
	a, b := q.Data(), other.Data()
	n, m := q.Size(), other.Size()
	out := make([]float64, n*m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			out[i*m+j] = dot4(a[i*dim:], b[j*dim:])
		}
	}
	return object3d.NewTensor(out, append(q.Shape(), other.Shape()...)...)
}

func dot4(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

func rowQuat(row []float64) quat.Number {
	return quat.Number{Real: row[0], Imag: row[1], Jmag: row[2], Kmag: row[3]}
}

func putQuat(row []float64, q quat.Number) {
	row[0], row[1], row[2], row[3] = q.Real, q.Imag, q.Jmag, q.Kmag
}

// checkBroadcast accepts equal shapes or a side holding a single element.
func checkBroadcast(op string, left, right []int) error {
	if object3d.ShapesEqual(left, right) || object3d.ShapeSize(left) == 1 || object3d.ShapeSize(right) == 1 {
		return nil
	}
	return utils.NewShapeMismatchError(op, left, right)
}

// broadcastShape is the result shape of two operands accepted by checkBroadcast.
func broadcastShape(left, right []int) []int {
	if object3d.ShapeSize(left) == 1 && object3d.ShapeSize(right) != 1 {
		return right
	}
	return left
}

func broadcastIndex(i, size int) int {
	if size == 1 {
		return 0
	}
	return i
}
