package vector

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/texture/object3d"
)

func TestNewVector(t *testing.T) {
	v, err := New([]float64{1, 2, 3, 4, 5, 6}, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v.Shape(), test.ShouldResemble, []int{2})
	test.That(t, v.At(1), test.ShouldResemble, r3.Vector{X: 4, Y: 5, Z: 6})
	test.That(t, v.X(), test.ShouldResemble, []float64{1, 4})
	test.That(t, v.Z(), test.ShouldResemble, []float64{3, 6})

	_, err = New([]float64{1, 2, 3, 4})
	test.That(t, err, test.ShouldNotBeNil)
	var dimErr *object3d.DimensionError
	test.That(t, errors.As(err, &dimErr), test.ShouldBeTrue)

	obj, err := object3d.New(4, []float64{1, 0, 0, 0})
	test.That(t, err, test.ShouldBeNil)
	_, err = FromObject(obj)
	test.That(t, err, test.ShouldBeError, object3d.NewDimensionError("Vector3D", 3, 4))
}

func TestVectorArithmetic(t *testing.T) {
	x, y := XVector(), YVector()

	cross, err := x.Cross(y)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cross.At(0), test.ShouldResemble, r3.Vector{Z: 1})

	dot, err := x.Dot(y)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dot, test.ShouldResemble, []float64{0})

	angle, err := x.AngleWith(y)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, angle[0], test.ShouldAlmostEqual, math.Pi/2)

	many := NewFromR3(r3.Vector{X: 1}, r3.Vector{Y: 2}, r3.Vector{Z: 3})
	sum, err := many.Add(x)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sum.Data(), test.ShouldResemble, []float64{2, 0, 0, 1, 2, 0, 1, 0, 3})

	_, err = many.Add(NewFromR3(r3.Vector{}, r3.Vector{}))
	test.That(t, err, test.ShouldNotBeNil)

	test.That(t, many.Norm(), test.ShouldResemble, []float64{1, 2, 3})
	test.That(t, many.Unit().Norm(), test.ShouldResemble, []float64{1, 1, 1})
	test.That(t, many.Neg().At(2), test.ShouldResemble, r3.Vector{Z: -3})

	scaled, err := many.ScaleEach([]float64{2, 1, 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scaled.Norm(), test.ShouldResemble, []float64{2, 2, 0})
	_, err = many.ScaleEach([]float64{1, 2})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestVectorShapes(t *testing.T) {
	v := Zero(2, 3)
	test.That(t, v.Size(), test.ShouldEqual, 6)
	test.That(t, v.NDim(), test.ShouldEqual, 2)

	r, err := v.Reshape(3, -1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Shape(), test.ShouldResemble, []int{3, 2})

	tr, err := v.Transpose()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tr.Shape(), test.ShouldResemble, []int{3, 2})

	stacked, err := Stack([]*Vector3D{XVector(), YVector()})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stacked.Shape(), test.ShouldResemble, []int{1, 2})
	test.That(t, stacked.Squeeze().Shape(), test.ShouldResemble, []int{2})

	tens := stacked.Tensor()
	test.That(t, []int(tens.Shape()), test.ShouldResemble, []int{1, 2, 3})
	back, err := FromTensor(tens)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.Data(), test.ShouldResemble, stacked.Data())
}

func TestParametrizations(t *testing.T) {
	ax, err := AxAngleFromAxesAngles(NewFromR3(r3.Vector{Z: 2}), []float64{90}, true)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ax.Angle()[0], test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, ax.Axis().At(0), test.ShouldResemble, r3.Vector{Z: 1})

	ro, err := NewRodrigues([]float64{0, 0, 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ro.Angle()[0], test.ShouldAlmostEqual, math.Pi/2)

	_, err = NewHomochoric([]float64{0, 0})
	test.That(t, err, test.ShouldBeError, object3d.NewDimensionError("Homochoric", 3, 2))
}

func TestMiller(t *testing.T) {
	cubic := &Phase{Name: "ferrite", PointGroup: "m-3m", SpaceGroup: 229, Lattice: CubicLattice(2.87)}
	uvw, err := New([]float64{1, 1, 0})
	test.That(t, err, test.ShouldBeNil)

	m, err := NewMillerFromUVW(uvw, cubic)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.CoordinateFormat, test.ShouldEqual, FormatUVW)
	test.That(t, m.Norm()[0], test.ShouldAlmostEqual, 2.87*math.Sqrt2)

	back, err := m.UVW()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.At(0).Sub(r3.Vector{X: 1, Y: 1}).Norm(), test.ShouldBeLessThan, 1e-12)

	hkl, err := NewMillerFromHKL(uvw, cubic)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hkl.Norm()[0], test.ShouldAlmostEqual, math.Sqrt2/2.87)
	again, err := hkl.HKL()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, again.At(0).Sub(r3.Vector{X: 1, Y: 1}).Norm(), test.ShouldBeLessThan, 1e-12)

	hexagonal := &Phase{Name: "ti", PointGroup: "6/mmm", Lattice: Lattice{A: 1, B: 1, C: 1.6, Alpha: 90, Beta: 90, Gamma: 120}}
	b, err := NewMillerFromUVW(YVector(), hexagonal)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.Vector().At(0).X, test.ShouldAlmostEqual, -0.5)
	test.That(t, b.Vector().At(0).Y, test.ShouldAlmostEqual, math.Sqrt(3)/2)

	unit := m.Unit()
	test.That(t, unit.Phase, test.ShouldEqual, cubic)
	test.That(t, unit.CoordinateFormat, test.ShouldEqual, FormatUVW)
	test.That(t, unit.Norm()[0], test.ShouldAlmostEqual, 1.0)

	_, err = NewMiller(uvw, nil).HKL()
	test.That(t, err, test.ShouldBeError, "miller vectors require a phase")

	_, err = Lattice{A: 1, B: 1, C: 1}.Basis()
	test.That(t, err, test.ShouldNotBeNil)
}
