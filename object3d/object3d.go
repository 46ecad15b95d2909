// Package object3d implements the fixed-last-dimension container shared by every rotation and
// vector type in texture.
//
// An Object3D holds a batch of elements laid out over "navigation" axes. Every element has Dim
// components. Storage may carry extra trailing columns per element for types that need to keep
// bookkeeping next to the public components; Data always returns only the first Dim columns.
// Every operation returns a new object owning its own storage.
package object3d

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Object3D is a batch of fixed dimension elements over a navigation shape.
type Object3D struct {
	name  string
	dim   int
	cols  int
	shape []int
	data  []float64
}

// New returns an Object3D of dimension dim holding a copy of data. If no shape is given the
// data is laid out along a single navigation axis.
func New(dim int, data []float64, shape ...int) (*Object3D, error) {
	return NewNamed("Object3D", dim, data, shape...)
}

// NewNamed is like New but reports errors and string output under the given type name.
func NewNamed(name string, dim int, data []float64, shape ...int) (*Object3D, error) {
	return NewWithExtra(name, dim, dim, data, shape...)
}

// NewWithExtra returns an object whose storage carries cols >= dim columns per element.
func NewWithExtra(name string, dim, cols int, data []float64, shape ...int) (*Object3D, error) {
	if dim <= 0 {
		return nil, errors.Errorf("%s dimension must be positive, got %d", name, dim)
	}
	if cols < dim {
		return nil, NewDimensionError(name, dim, cols)
	}
	if len(shape) == 0 {
		if len(data)%cols != 0 {
			// flat data that does not split into rows is a single element of the wrong dimension
			return nil, NewDimensionError(name, dim, len(data)-(cols-dim))
		}
		shape = []int{len(data) / cols}
	}
	size := ShapeSize(shape)
	if size*cols != len(data) {
		if size > 0 && len(data)%size == 0 {
			return nil, NewDimensionError(name, dim, len(data)/size)
		}
		return nil, errors.Errorf("%s cannot lay out %d values over shape %v with %d components", name, len(data), shape, cols)
	}
	return &Object3D{
		name:  name,
		dim:   dim,
		cols:  cols,
		shape: append([]int(nil), shape...),
		data:  append([]float64(nil), data...),
	}, nil
}

// FromRows returns an object with one element per row along a single navigation axis.
func FromRows(name string, dim int, rows [][]float64) (*Object3D, error) {
	data := make([]float64, 0, len(rows)*dim)
	for _, row := range rows {
		if len(row) != dim {
			return nil, NewDimensionError(name, dim, len(row))
		}
		data = append(data, row...)
	}
	return NewNamed(name, dim, data, len(rows))
}

// Empty returns an object with zero elements.
func Empty(name string, dim int) *Object3D {
	return &Object3D{name: name, dim: dim, cols: dim, shape: []int{0}, data: []float64{}}
}

// Zeros returns an object of the given shape filled with zeros.
func Zeros(name string, dim int, shape ...int) *Object3D {
	if len(shape) == 0 {
		shape = []int{1}
	}
	return &Object3D{
		name:  name,
		dim:   dim,
		cols:  dim,
		shape: append([]int(nil), shape...),
		data:  make([]float64, ShapeSize(shape)*dim),
	}
}

// Name returns the type name the object reports itself as.
func (o *Object3D) Name() string {
	return o.name
}

// Dim returns the number of public components per element.
func (o *Object3D) Dim() int {
	return o.dim
}

// Cols returns the number of stored components per element, including extra columns.
func (o *Object3D) Cols() int {
	return o.cols
}

// Shape returns the navigation shape.
func (o *Object3D) Shape() []int {
	return append([]int(nil), o.shape...)
}

// NDim returns the number of navigation axes.
func (o *Object3D) NDim() int {
	return len(o.shape)
}

// Size returns the total number of elements.
func (o *Object3D) Size() int {
	return ShapeSize(o.shape)
}

// Data returns a row-major copy of the public components.
func (o *Object3D) Data() []float64 {
	if o.cols == o.dim {
		return append([]float64(nil), o.data...)
	}
	n := o.Size()
	out := make([]float64, 0, n*o.dim)
	for i := 0; i < n; i++ {
		out = append(out, o.data[i*o.cols:i*o.cols+o.dim]...)
	}
	return out
}

// Buffer returns a row-major copy of the full storage, extra columns included.
func (o *Object3D) Buffer() []float64 {
	return append([]float64(nil), o.data...)
}

// Row returns a copy of the public components of the i-th element in flat order.
func (o *Object3D) Row(i int) []float64 {
	return append([]float64(nil), o.data[i*o.cols:i*o.cols+o.dim]...)
}

// At returns a copy of the public components of the element at the given navigation index.
func (o *Object3D) At(idx ...int) ([]float64, error) {
	flat, err := RavelIndex(idx, o.shape)
	if err != nil {
		return nil, err
	}
	return o.Row(flat), nil
}

// Clone returns a deep copy.
func (o *Object3D) Clone() *Object3D {
	return &Object3D{
		name:  o.name,
		dim:   o.dim,
		cols:  o.cols,
		shape: o.Shape(),
		data:  o.Buffer(),
	}
}

// WithData returns an object of the same name, dimension and shape holding data, which must
// contain Size()*Dim() values.
func (o *Object3D) WithData(data []float64) (*Object3D, error) {
	return NewNamed(o.name, o.dim, data, o.shape...)
}

// Get fixes the leading navigation axes to the given indices and returns the remaining
// sub-batch. The result always keeps at least one navigation axis.
func (o *Object3D) Get(idx ...int) (*Object3D, error) {
	if len(idx) > len(o.shape) {
		return nil, errors.Errorf("too many indices for %s of shape %v", o.name, o.shape)
	}
	offset := 0
	for i, v := range idx {
		n, err := normalizeIndex(v, o.shape[i])
		if err != nil {
			return nil, errors.Wrapf(err, "axis %d", i)
		}
		offset = offset*o.shape[i] + n
	}
	rest := o.shape[len(idx):]
	count := ShapeSize(rest)
	start := offset * count * o.cols
	shape := append([]int(nil), rest...)
	if len(shape) == 0 {
		shape = []int{1}
	}
	return &Object3D{
		name:  o.name,
		dim:   o.dim,
		cols:  o.cols,
		shape: shape,
		data:  append([]float64(nil), o.data[start:start+count*o.cols]...),
	}, nil
}

// Slice returns the elements with index in [start, stop) along one navigation axis.
func (o *Object3D) Slice(axis, start, stop int) (*Object3D, error) {
	if axis < 0 {
		axis += len(o.shape)
	}
	if axis < 0 || axis >= len(o.shape) {
		return nil, errors.Errorf("axis %d is out of bounds for %s with %d navigation axes", axis, o.name, len(o.shape))
	}
	n := o.shape[axis]
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	start = int(math.Max(0, math.Min(float64(start), float64(n))))
	stop = int(math.Max(float64(start), math.Min(float64(stop), float64(n))))

	outer := ShapeSize(o.shape[:axis])
	inner := ShapeSize(o.shape[axis+1:]) * o.cols
	shape := o.Shape()
	shape[axis] = stop - start
	data := make([]float64, 0, outer*(stop-start)*inner)
	for i := 0; i < outer; i++ {
		base := i * n * inner
		data = append(data, o.data[base+start*inner:base+stop*inner]...)
	}
	return &Object3D{name: o.name, dim: o.dim, cols: o.cols, shape: shape, data: data}, nil
}

// Take selects elements by flat index. The result has a single navigation axis.
func (o *Object3D) Take(flat []int) (*Object3D, error) {
	size := o.Size()
	data := make([]float64, 0, len(flat)*o.cols)
	for _, i := range flat {
		n, err := normalizeIndex(i, size)
		if err != nil {
			return nil, err
		}
		data = append(data, o.data[n*o.cols:(n+1)*o.cols]...)
	}
	return &Object3D{name: o.name, dim: o.dim, cols: o.cols, shape: []int{len(flat)}, data: data}, nil
}

// Set overwrites the public components of the elements at the given flat indices with the
// elements of src, in order. A src of size one is written to every index.
func (o *Object3D) Set(flat []int, src *Object3D) error {
	if src.dim != o.dim {
		return NewDimensionError(o.name, o.dim, src.dim)
	}
	if src.Size() != len(flat) && src.Size() != 1 {
		return errors.Errorf("cannot assign %d elements to %d indices", src.Size(), len(flat))
	}
	size := o.Size()
	for k, i := range flat {
		n, err := normalizeIndex(i, size)
		if err != nil {
			return err
		}
		from := k
		if src.Size() == 1 {
			from = 0
		}
		copy(o.data[n*o.cols:n*o.cols+o.dim], src.data[from*src.cols:from*src.cols+src.dim])
	}
	return nil
}

// Stack joins a sequence of equally shaped objects along a new last navigation axis.
func Stack(seq []*Object3D) (*Object3D, error) {
	if len(seq) == 0 {
		return nil, errors.New("need at least one object to stack")
	}
	first := seq[0]
	for _, o := range seq[1:] {
		if o.dim != first.dim || o.cols != first.cols {
			return nil, NewDimensionError(first.name, first.cols, o.cols)
		}
		if !ShapesEqual(o.shape, first.shape) {
			return nil, errors.Errorf("all objects must have the same shape to stack, got %v and %v", first.shape, o.shape)
		}
	}
	size := first.Size()
	data := make([]float64, 0, size*len(seq)*first.cols)
	for i := 0; i < size; i++ {
		for _, o := range seq {
			data = append(data, o.data[i*o.cols:(i+1)*o.cols]...)
		}
	}
	shape := append(first.Shape(), len(seq))
	return &Object3D{name: first.name, dim: first.dim, cols: first.cols, shape: shape, data: data}, nil
}

// Flatten returns the elements along a single navigation axis in row-major order.
func (o *Object3D) Flatten() *Object3D {
	out := o.Clone()
	out.shape = []int{o.Size()}
	return out
}

// Squeeze removes navigation axes of length one, keeping at least one axis.
func (o *Object3D) Squeeze() *Object3D {
	out := o.Clone()
	shape := make([]int, 0, len(o.shape))
	for _, s := range o.shape {
		if s != 1 {
			shape = append(shape, s)
		}
	}
	if len(shape) == 0 {
		shape = []int{1}
	}
	out.shape = shape
	return out
}

// Reshape returns the same elements laid out over a new navigation shape. One entry may be -1.
func (o *Object3D) Reshape(shape ...int) (*Object3D, error) {
	resolved, err := resolveShape(shape, o.Size())
	if err != nil {
		return nil, err
	}
	out := o.Clone()
	out.shape = resolved
	return out, nil
}

// Transpose permutes the navigation axes. An object with one navigation axis is returned
// unchanged; with exactly two, the axes are swapped when none are given.
func (o *Object3D) Transpose(axes ...int) (*Object3D, error) {
	nd := len(o.shape)
	if nd == 1 {
		return o.Clone(), nil
	}
	if len(axes) == 0 {
		if nd != 2 {
			return nil, errors.New("axes must be defined for more than two dimensions")
		}
		axes = []int{1, 0}
	}
	if len(axes) != nd {
		return nil, errors.Errorf("number of axes is ill-defined: %v does not fit with %v", axes, o.shape)
	}
	seen := make([]bool, nd)
	for _, a := range axes {
		if a < 0 || a >= nd || seen[a] {
			return nil, errors.Errorf("axes %v are not a permutation of %d navigation axes", axes, nd)
		}
		seen[a] = true
	}

	shape := make([]int, nd)
	for i, a := range axes {
		shape[i] = o.shape[a]
	}
	size := o.Size()
	data := make([]float64, size*o.cols)
	src := make([]int, nd)
	for flat := 0; flat < size; flat++ {
		dst := UnravelIndex(flat, shape)
		for i, a := range axes {
			src[a] = dst[i]
		}
		from, err := RavelIndex(src, o.shape)
		if err != nil {
			return nil, err
		}
		copy(data[flat*o.cols:(flat+1)*o.cols], o.data[from*o.cols:(from+1)*o.cols])
	}
	return &Object3D{name: o.name, dim: o.dim, cols: o.cols, shape: shape, data: data}, nil
}

// Norm returns the Euclidean norm of every element in flat order.
func (o *Object3D) Norm() []float64 {
	n := o.Size()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = floats.Norm(o.data[i*o.cols:i*o.cols+o.dim], 2)
	}
	return out
}

// Unit returns every element divided by its norm. Elements of zero norm become zero.
func (o *Object3D) Unit() *Object3D {
	norms := o.Norm()
	data := o.Data()
	for i, n := range norms {
		row := data[i*o.dim : (i+1)*o.dim]
		for j := range row {
			v := row[j] / n
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			row[j] = v
		}
	}
	return &Object3D{name: o.name, dim: o.dim, cols: o.dim, shape: o.Shape(), data: data}
}

// Scale multiplies every public component by f.
func (o *Object3D) Scale(f float64) *Object3D {
	data := o.Data()
	floats.Scale(f, data)
	return &Object3D{name: o.name, dim: o.dim, cols: o.dim, shape: o.Shape(), data: data}
}

func (o *Object3D) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %v", o.name, o.shape)
	n := o.Size()
	const maxRows = 10
	for i := 0; i < n && i < maxRows; i++ {
		sb.WriteString("\n[")
		for j, v := range o.Row(i) {
			if j > 0 {
				sb.WriteString(" ")
			}
			if math.Abs(v) < 1e-4 {
				v = 0
			}
			fmt.Fprintf(&sb, "%7.4f", v)
		}
		sb.WriteString("]")
	}
	if n > maxRows {
		fmt.Fprintf(&sb, "\n... %d more", n-maxRows)
	}
	return sb.String()
}
