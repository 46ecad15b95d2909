package object3d

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"gorgonia.org/tensor"
)

func TestNewDimensionMismatch(t *testing.T) {
	_, err := New(3, []float64{1, 2, 3, 4}, 1)
	test.That(t, err, test.ShouldNotBeNil)
	var dimErr *DimensionError
	test.That(t, errors.As(err, &dimErr), test.ShouldBeTrue)
	test.That(t, dimErr.Expected, test.ShouldEqual, 3)
	test.That(t, dimErr.Actual, test.ShouldEqual, 4)
	test.That(t, err.Error(), test.ShouldEqual, "Object3D requires data of dimension 3 but received dimension 4")

	_, err = FromRows("Vector3D", 3, [][]float64{{1, 2, 3}, {1, 2}})
	test.That(t, err, test.ShouldBeError, NewDimensionError("Vector3D", 3, 2))

	_, err = New(3, []float64{1, 2, 3, 4})
	test.That(t, err, test.ShouldBeError, NewDimensionError("Object3D", 3, 4))

	_, err = NewNamed("Homochoric", 3, []float64{0, 0})
	test.That(t, err, test.ShouldBeError, "Homochoric requires data of dimension 3 but received dimension 2")
	test.That(t, errors.As(err, &dimErr), test.ShouldBeTrue)
	test.That(t, dimErr.Actual, test.ShouldEqual, 2)
}

func TestNewCopiesStorage(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	o, err := New(3, data)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o.Shape(), test.ShouldResemble, []int{2})
	test.That(t, o.Size(), test.ShouldEqual, 2)
	test.That(t, o.NDim(), test.ShouldEqual, 1)
	data[0] = 100
	test.That(t, o.Row(0), test.ShouldResemble, []float64{1, 2, 3})

	out := o.Data()
	out[1] = 100
	test.That(t, o.Row(0), test.ShouldResemble, []float64{1, 2, 3})
}

func TestExtraColumns(t *testing.T) {
	o, err := NewWithExtra("Miller", 3, 4, []float64{1, 2, 3, 9, 4, 5, 6, 8}, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o.Data(), test.ShouldResemble, []float64{1, 2, 3, 4, 5, 6})
	test.That(t, o.Buffer(), test.ShouldResemble, []float64{1, 2, 3, 9, 4, 5, 6, 8})

	stacked, err := Stack([]*Object3D{o, o})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stacked.Cols(), test.ShouldEqual, 4)
	test.That(t, stacked.Shape(), test.ShouldResemble, []int{2, 2})

	flat := stacked.Flatten()
	test.That(t, flat.Buffer(), test.ShouldResemble, stacked.Buffer())
}

func TestGetSliceTake(t *testing.T) {
	data := make([]float64, 0, 24)
	for i := 0; i < 8; i++ {
		data = append(data, float64(i), float64(i), float64(i))
	}
	o, err := New(3, data, 2, 4)
	test.That(t, err, test.ShouldBeNil)

	row, err := o.Get(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, row.Shape(), test.ShouldResemble, []int{4})
	test.That(t, row.Row(0), test.ShouldResemble, []float64{4, 4, 4})

	single, err := o.Get(1, -1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, single.Shape(), test.ShouldResemble, []int{1})
	test.That(t, single.Row(0), test.ShouldResemble, []float64{7, 7, 7})

	_, err = o.Get(2)
	test.That(t, err, test.ShouldNotBeNil)

	cols, err := o.Slice(1, 1, 3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cols.Shape(), test.ShouldResemble, []int{2, 2})
	test.That(t, cols.Data(), test.ShouldResemble, []float64{1, 1, 1, 2, 2, 2, 5, 5, 5, 6, 6, 6})

	taken, err := o.Take([]int{7, 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, taken.Data(), test.ShouldResemble, []float64{7, 7, 7, 0, 0, 0})

	v, err := o.At(0, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, []float64{2, 2, 2})
}

func TestSet(t *testing.T) {
	o := Zeros("Vector3D", 3, 4)
	src, err := New(3, []float64{1, 1, 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o.Set([]int{1, 3}, src), test.ShouldBeNil)
	test.That(t, o.Data(), test.ShouldResemble, []float64{0, 0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1})

	two, err := New(3, []float64{1, 1, 1, 2, 2, 2})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o.Set([]int{0}, two), test.ShouldNotBeNil)
}

func TestStackShape(t *testing.T) {
	a, err := New(4, []float64{1, 0, 0, 0, 0, 1, 0, 0}, 2)
	test.That(t, err, test.ShouldBeNil)
	b := a.Scale(2)
	c := a.Scale(3)
	s, err := Stack([]*Object3D{a, b, c})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Shape(), test.ShouldResemble, []int{2, 3})
	v, err := s.At(1, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, []float64{0, 3, 0, 0})

	d, err := New(4, []float64{1, 0, 0, 0})
	test.That(t, err, test.ShouldBeNil)
	_, err = Stack([]*Object3D{a, d})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = Stack(nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestUnique(t *testing.T) {
	o, err := FromRows("Vector3D", 3, [][]float64{
		{0, 0, 1},
		{1, 0, 0},
		{0, 0, 0},
		{0, 0, 1 + 1e-12},
		{1, 0, 0},
		{-1, 0, 0},
	})
	test.That(t, err, test.ShouldBeNil)

	unique, index, inverse := o.Unique()
	test.That(t, unique.Shape(), test.ShouldResemble, []int{3})
	test.That(t, unique.Data(), test.ShouldResemble, []float64{0, 0, 1, 1, 0, 0, -1, 0, 0})
	test.That(t, index, test.ShouldResemble, []int{0, 1, 5})
	test.That(t, inverse, test.ShouldResemble, []int{0, 1, -1, 0, 1, 2})

	// two navigation axes are walked in row-major order
	grid, err := New(3, []float64{0, 0, 1, 1, 0, 0, 0, 1, 0, 0, 0, 1}, 2, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, grid.Flatten().Data(), test.ShouldResemble, grid.Data())
	second, err := grid.At(0, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, grid.Flatten().Row(1), test.ShouldResemble, second)
	_, index, inverse = grid.Unique()
	test.That(t, index, test.ShouldResemble, []int{0, 1, 2})
	test.That(t, inverse, test.ShouldResemble, []int{0, 1, 2, 0})

	empty, index, _ := Zeros("Vector3D", 3, 2).Unique()
	test.That(t, empty.Size(), test.ShouldEqual, 0)
	test.That(t, index, test.ShouldBeEmpty)
}

func TestNormUnit(t *testing.T) {
	o, err := FromRows("Vector3D", 3, [][]float64{{3, 4, 0}, {0, 0, 0}, {0, 0, -2}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o.Norm(), test.ShouldResemble, []float64{5, 0, 2})

	unit := o.Unit()
	want := []float64{0.6, 0.8, 0, 0, 0, 0, 0, 0, -1}
	test.That(t, cmp.Diff(want, unit.Data(), cmpopts.EquateApprox(0, 1e-12)), test.ShouldBeEmpty)
	for _, v := range unit.Data() {
		test.That(t, math.IsNaN(v), test.ShouldBeFalse)
	}
}

func TestSqueezeReshape(t *testing.T) {
	o := Zeros("Quaternion", 4, 1, 3, 1)
	test.That(t, o.Squeeze().Shape(), test.ShouldResemble, []int{3})
	test.That(t, Zeros("Quaternion", 4, 1, 1).Squeeze().Shape(), test.ShouldResemble, []int{1})

	r, err := o.Reshape(-1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Shape(), test.ShouldResemble, []int{3})

	r, err = Zeros("Quaternion", 4, 6).Reshape(2, -1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Shape(), test.ShouldResemble, []int{2, 3})

	_, err = Zeros("Quaternion", 4, 6).Reshape(4, -1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = Zeros("Quaternion", 4, 6).Reshape(-1, -1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = Zeros("Quaternion", 4, 6).Reshape(5)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestTranspose(t *testing.T) {
	data := make([]float64, 0, 18)
	for i := 0; i < 6; i++ {
		data = append(data, float64(i), 0, 0)
	}
	o, err := New(3, data, 2, 3)
	test.That(t, err, test.ShouldBeNil)

	tr, err := o.Transpose()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tr.Shape(), test.ShouldResemble, []int{3, 2})
	v, err := tr.At(2, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v[0], test.ShouldEqual, 5)
	v, err = tr.At(1, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v[0], test.ShouldEqual, 1)

	one := Zeros("Vector3D", 3, 5)
	same, err := one.Transpose(1, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, same.Shape(), test.ShouldResemble, []int{5})

	three := Zeros("Vector3D", 3, 2, 3, 4)
	_, err = three.Transpose()
	test.That(t, err, test.ShouldNotBeNil)
	_, err = three.Transpose(1, 0)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = three.Transpose(0, 0, 1)
	test.That(t, err, test.ShouldNotBeNil)
	p, err := three.Transpose(2, 0, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Shape(), test.ShouldResemble, []int{4, 2, 3})
}

func TestRandomSample(t *testing.T) {
	data := make([]float64, 0, 30)
	for i := 0; i < 10; i++ {
		data = append(data, float64(i+1), 0, 0)
	}
	o, err := New(3, data, 2, 5)
	test.That(t, err, test.ShouldBeNil)

	s, err := o.RandomSample(4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Shape(), test.ShouldResemble, []int{4})
	_, _, inverse := s.Unique()
	test.That(t, inverse, test.ShouldHaveLength, 4)
	unique, _, _ := s.Unique()
	test.That(t, unique.Size(), test.ShouldEqual, 4)

	all, err := o.RandomSample(10)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, all.Size(), test.ShouldEqual, 10)

	_, err = o.RandomSample(11)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "greater than 10")
}

func TestTensorRoundTrip(t *testing.T) {
	o, err := New(4, []float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, 2, 2)
	test.That(t, err, test.ShouldBeNil)
	tt := o.Tensor()
	test.That(t, []int(tt.Shape()), test.ShouldResemble, []int{2, 2, 4})

	back, err := FromTensor("Quaternion", 4, tt)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.Shape(), test.ShouldResemble, []int{2, 2})
	test.That(t, back.Data(), test.ShouldResemble, o.Data())

	_, err = FromTensor("Vector3D", 3, tt)
	test.That(t, err, test.ShouldBeError, NewDimensionError("Vector3D", 3, 4))

	single, err := FromTensor("Vector3D", 3, NewTensor([]float64{1, 2, 3}, 3))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, single.Shape(), test.ShouldResemble, []int{1})

	ints := tensor.New(tensor.WithShape(1, 3), tensor.WithBacking([]int{1, 2, 3}))
	_, err = FromTensor("Vector3D", 3, ints)
	test.That(t, err, test.ShouldBeError, "expected []float64 but got []int")
}

func TestString(t *testing.T) {
	o, err := New(3, []float64{1, 0, 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o.String(), test.ShouldEqual, "Object3D [1]\n[ 1.0000  0.0000  0.0000]")
}
