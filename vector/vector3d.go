// Package vector defines batches of three-dimensional vectors and the vector parametrizations
// of rotations (axis-angle, Rodrigues and homochoric) along with crystallographic Miller
// vectors.
package vector

import (
	"math"

	"github.com/golang/geo/r3"
	"gorgonia.org/tensor"

	"go.viam.com/texture/object3d"
	"go.viam.com/texture/utils"
)

const dim = 3

// Vector3D is a batch of Cartesian 3-vectors.
type Vector3D struct {
	obj *object3d.Object3D
}

// New returns vectors from row-major xyz data laid out over shape.
func New(data []float64, shape ...int) (*Vector3D, error) {
	return newNamed("Vector3D", data, shape...)
}

func newNamed(name string, data []float64, shape ...int) (*Vector3D, error) {
	obj, err := object3d.NewNamed(name, dim, data, shape...)
	if err != nil {
		return nil, err
	}
	return &Vector3D{obj}, nil
}

// NewFromR3 returns one vector per r3.Vector along a single navigation axis.
func NewFromR3(vs ...r3.Vector) *Vector3D {
	data := make([]float64, 0, len(vs)*dim)
	for _, v := range vs {
		data = append(data, v.X, v.Y, v.Z)
	}
	obj, err := object3d.NewNamed("Vector3D", dim, data, len(vs))
	if err != nil {
		// unreachable, the layout is built above
		panic(err)
	}
	return &Vector3D{obj}
}

// FromObject wraps a copy of an object whose dimension is 3.
func FromObject(o *object3d.Object3D) (*Vector3D, error) {
	if o.Dim() != dim {
		return nil, object3d.NewDimensionError("Vector3D", dim, o.Dim())
	}
	return New(o.Data(), o.Shape()...)
}

// FromTensor returns vectors from a tensor whose trailing axis has length 3.
func FromTensor(t *tensor.Dense) (*Vector3D, error) {
	obj, err := object3d.FromTensor("Vector3D", dim, t)
	if err != nil {
		return nil, err
	}
	return &Vector3D{obj}, nil
}

// Zero returns zero vectors of the given shape.
func Zero(shape ...int) *Vector3D {
	return &Vector3D{object3d.Zeros("Vector3D", dim, shape...)}
}

// XVector returns the unit x vector.
func XVector() *Vector3D {
	return NewFromR3(r3.Vector{X: 1})
}

// YVector returns the unit y vector.
func YVector() *Vector3D {
	return NewFromR3(r3.Vector{Y: 1})
}

// ZVector returns the unit z vector.
func ZVector() *Vector3D {
	return NewFromR3(r3.Vector{Z: 1})
}

// Stack joins equally shaped vectors along a new last navigation axis.
func Stack(seq []*Vector3D) (*Vector3D, error) {
	objs := make([]*object3d.Object3D, len(seq))
	for i, v := range seq {
		objs[i] = v.obj
	}
	obj, err := object3d.Stack(objs)
	if err != nil {
		return nil, err
	}
	return &Vector3D{obj}, nil
}

func (v *Vector3D) wrap(obj *object3d.Object3D, err error) (*Vector3D, error) {
	if err != nil {
		return nil, err
	}
	return &Vector3D{obj}, nil
}

// Object returns a copy of the underlying container.
func (v *Vector3D) Object() *object3d.Object3D {
	return v.obj.Clone()
}

// Shape returns the navigation shape.
func (v *Vector3D) Shape() []int { return v.obj.Shape() }

// Size returns the number of vectors.
func (v *Vector3D) Size() int { return v.obj.Size() }

// NDim returns the number of navigation axes.
func (v *Vector3D) NDim() int { return v.obj.NDim() }

// Data returns a row-major copy of the xyz components.
func (v *Vector3D) Data() []float64 { return v.obj.Data() }

// Tensor returns the vectors as a tensor of shape Shape() + (3,).
func (v *Vector3D) Tensor() *tensor.Dense { return v.obj.Tensor() }

// At returns the i-th vector in flat order.
func (v *Vector3D) At(i int) r3.Vector {
	row := v.obj.Row(i)
	return r3.Vector{X: row[0], Y: row[1], Z: row[2]}
}

// R3 returns every vector in flat order.
func (v *Vector3D) R3() []r3.Vector {
	out := make([]r3.Vector, v.Size())
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

// X returns the x components in flat order.
func (v *Vector3D) X() []float64 { return v.component(0) }

// Y returns the y components in flat order.
func (v *Vector3D) Y() []float64 { return v.component(1) }

// Z returns the z components in flat order.
func (v *Vector3D) Z() []float64 { return v.component(2) }

func (v *Vector3D) component(c int) []float64 {
	out := make([]float64, v.Size())
	for i := range out {
		out[i] = v.obj.Row(i)[c]
	}
	return out
}

// Norm returns the length of every vector.
func (v *Vector3D) Norm() []float64 { return v.obj.Norm() }

// Unit returns the vectors scaled to unit length. Zero vectors stay zero.
func (v *Vector3D) Unit() *Vector3D { return &Vector3D{v.obj.Unit()} }

// Neg returns the opposite vectors.
func (v *Vector3D) Neg() *Vector3D { return v.Scale(-1) }

// Scale multiplies every vector by f.
func (v *Vector3D) Scale(f float64) *Vector3D { return &Vector3D{v.obj.Scale(f)} }

// ScaleEach multiplies the i-th vector by f[i]. A single factor is applied to all vectors.
func (v *Vector3D) ScaleEach(f []float64) (*Vector3D, error) {
	if len(f) != v.Size() && len(f) != 1 {
		return nil, utils.NewShapeMismatchError("scale", v.Shape(), []int{len(f)})
	}
	data := v.Data()
	for i := 0; i < v.Size(); i++ {
		s := f[0]
		if len(f) > 1 {
			s = f[i]
		}
		data[i*dim] *= s
		data[i*dim+1] *= s
		data[i*dim+2] *= s
	}
	return v.wrap(v.obj.WithData(data))
}

// Add returns the elementwise sum. other must match the shape or hold a single vector.
func (v *Vector3D) Add(other *Vector3D) (*Vector3D, error) {
	return v.pairwise("add", other, func(a, b r3.Vector) r3.Vector { return a.Add(b) })
}

// Cross returns the elementwise cross product.
func (v *Vector3D) Cross(other *Vector3D) (*Vector3D, error) {
	return v.pairwise("cross", other, func(a, b r3.Vector) r3.Vector { return a.Cross(b) })
}

// Dot returns the elementwise dot product.
func (v *Vector3D) Dot(other *Vector3D) ([]float64, error) {
	if err := v.checkPairShape("dot", other); err != nil {
		return nil, err
	}
	out := make([]float64, v.Size())
	for i := range out {
		out[i] = v.At(i).Dot(other.At(pairIndex(i, other.Size())))
	}
	return out, nil
}

// AngleWith returns the angle in radians between corresponding vectors.
func (v *Vector3D) AngleWith(other *Vector3D) ([]float64, error) {
	if err := v.checkPairShape("angle", other); err != nil {
		return nil, err
	}
	out := make([]float64, v.Size())
	for i := range out {
		a, b := v.At(i), other.At(pairIndex(i, other.Size()))
		cos := a.Dot(b) / (a.Norm() * b.Norm())
		out[i] = math.Acos(utils.Clamp(cos, -1, 1))
	}
	return out, nil
}

func (v *Vector3D) pairwise(op string, other *Vector3D, fn func(a, b r3.Vector) r3.Vector) (*Vector3D, error) {
	if err := v.checkPairShape(op, other); err != nil {
		return nil, err
	}
	data := make([]float64, 0, v.Size()*dim)
	for i := 0; i < v.Size(); i++ {
		r := fn(v.At(i), other.At(pairIndex(i, other.Size())))
		data = append(data, r.X, r.Y, r.Z)
	}
	return v.wrap(v.obj.WithData(data))
}

func (v *Vector3D) checkPairShape(op string, other *Vector3D) error {
	if other.Size() == 1 || object3d.ShapesEqual(v.Shape(), other.Shape()) {
		return nil
	}
	return utils.NewShapeMismatchError(op, v.Shape(), other.Shape())
}

func pairIndex(i, size int) int {
	if size == 1 {
		return 0
	}
	return i
}

// Get fixes the leading navigation axes.
func (v *Vector3D) Get(idx ...int) (*Vector3D, error) { return v.wrap(v.obj.Get(idx...)) }

// Take selects vectors by flat index.
func (v *Vector3D) Take(flat []int) (*Vector3D, error) { return v.wrap(v.obj.Take(flat)) }

// Reshape lays the vectors out over a new navigation shape.
func (v *Vector3D) Reshape(shape ...int) (*Vector3D, error) { return v.wrap(v.obj.Reshape(shape...)) }

// Transpose permutes the navigation axes.
func (v *Vector3D) Transpose(axes ...int) (*Vector3D, error) { return v.wrap(v.obj.Transpose(axes...)) }

// Flatten returns the vectors along a single navigation axis.
func (v *Vector3D) Flatten() *Vector3D { return &Vector3D{v.obj.Flatten()} }

// Squeeze removes navigation axes of length one.
func (v *Vector3D) Squeeze() *Vector3D { return &Vector3D{v.obj.Squeeze()} }

// Unique returns the numerically unique non-zero vectors. See object3d.Object3D.Unique.
func (v *Vector3D) Unique() (*Vector3D, []int, []int) {
	obj, index, inverse := v.obj.Unique()
	return &Vector3D{obj}, index, inverse
}

// RandomSample draws size distinct vectors at random.
func (v *Vector3D) RandomSample(size int) (*Vector3D, error) {
	return v.wrap(v.obj.RandomSample(size))
}

func (v *Vector3D) String() string {
	return v.obj.String()
}
