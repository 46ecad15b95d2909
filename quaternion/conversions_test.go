package quaternion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/texture/logging"
	"go.viam.com/texture/object3d"
	"go.viam.com/texture/spatialmath"
	"go.viam.com/texture/vector"
)

func TestFromAxesAngles(t *testing.T) {
	q, err := FromAxesAngles(vector.ZVector().Neg(), []float64{90}, true)
	test.That(t, err, test.ShouldBeNil)
	quaternionsAlmostEqual(t, q, FromNumbers(q90z), 1e-12)

	q, err = FromAxesAngles(vector.ZVector(), []float64{0, math.Pi / 2, math.Pi}, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q.Shape(), test.ShouldResemble, []int{3})
	test.That(t, q.At(2).Real, test.ShouldAlmostEqual, 0.0)
	test.That(t, q.At(2).Kmag, test.ShouldAlmostEqual, 1.0)

	axes, err := vector.New([]float64{1, 0, 0, 0, 2, 0}, 2)
	test.That(t, err, test.ShouldBeNil)
	q, err = FromAxesAngles(axes, []float64{math.Pi}, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q.At(1).Jmag, test.ShouldAlmostEqual, 1.0)

	_, err = FromAxesAngles(axes, []float64{1, 2, 3}, false)
	test.That(t, err, test.ShouldNotBeNil)

	q, err = FromAxesAngles(vector.ZVector(), nil, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q.Size(), test.ShouldEqual, 0)
}

func TestRoundTrips(t *testing.T) {
	logger := logging.NewTestLogger(t)
	q := Random(200)

	t.Run("euler", func(t *testing.T) {
		eu, err := FromEuler(q.ToEuler(false), DirectionLab2Crystal, false, WithLogger(logger))
		test.That(t, err, test.ShouldBeNil)
		quaternionsAlmostEqual(t, eu, q, 1e-8)

		deg, err := FromEuler(q.ToEuler(true), "", true, WithLogger(logger))
		test.That(t, err, test.ShouldBeNil)
		quaternionsAlmostEqual(t, deg, q, 1e-8)
	})

	t.Run("matrix", func(t *testing.T) {
		om, err := FromMatrix(q.ToMatrix())
		test.That(t, err, test.ShouldBeNil)
		quaternionsAlmostEqual(t, om, q, 1e-8)
	})

	t.Run("axis angle", func(t *testing.T) {
		ax, err := FromAxAngle(q.ToAxesAngles())
		test.That(t, err, test.ShouldBeNil)
		quaternionsAlmostEqual(t, ax, q, 1e-8)
	})

	t.Run("rodrigues", func(t *testing.T) {
		ro, err := FromRodrigues(q.ToRodrigues().Vector3D, WithLogger(logger))
		test.That(t, err, test.ShouldBeNil)
		quaternionsAlmostEqual(t, ro, q, 1e-8)
	})

	t.Run("homochoric", func(t *testing.T) {
		ho, err := FromHomochoric(q.ToHomochoric().Vector3D)
		test.That(t, err, test.ShouldBeNil)
		quaternionsAlmostEqual(t, ho, q, 1e-7)
	})

	t.Run("orientations", func(t *testing.T) {
		quaternionsAlmostEqual(t, FromOrientations(q.Orientations()...), q, 1e-12)
	})
}

func TestEuler(t *testing.T) {
	eu := object3d.NewTensor([]float64{90, 0, 0}, 3)
	q, err := FromEuler(eu, DirectionLab2Crystal, true)
	test.That(t, err, test.ShouldBeNil)
	quaternionsAlmostEqual(t, q, FromNumbers(q90z), 1e-12)

	back, err := object3d.FromTensor("Euler", 3, q.ToEuler(true))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.Data()[0], test.ShouldAlmostEqual, 90.0)
	test.That(t, back.Data()[1], test.ShouldAlmostEqual, 0.0)
	test.That(t, back.Data()[2], test.ShouldAlmostEqual, 0.0)

	for _, direction := range []string{DirectionCrystal2Lab, DirectionMTEX, "MTEX"} {
		inv, err := FromEuler(eu, direction, true)
		test.That(t, err, test.ShouldBeNil)
		quaternionsAlmostEqual(t, inv, q.Inverse(), 1e-12)
	}

	_, err = FromEuler(eu, "sideways", true)
	test.That(t, errors.Is(err, ErrInvalidDirection), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "[lab2crystal crystal2lab]")

	_, err = FromEuler(object3d.NewTensor([]float64{1, 2, 3, 4}, 4), "", false)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestConversionWarnings(t *testing.T) {
	t.Run("large euler angles", func(t *testing.T) {
		logger, logs := logging.NewObservedTestLogger(t)
		_, err := FromEuler(object3d.NewTensor([]float64{20, 0, 0}, 3), "", false, WithLogger(logger))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, logs.FilterMessageSnippet("Angles are quite high").Len(), test.ShouldEqual, 1)

		_, err = FromEuler(object3d.NewTensor([]float64{20, 0, 0}, 3), "", true, WithLogger(logger))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, logs.FilterMessageSnippet("Angles are quite high").Len(), test.ShouldEqual, 1)
	})

	t.Run("short rodrigues vectors", func(t *testing.T) {
		logger, logs := logging.NewObservedTestLogger(t)
		ro, err := vector.New([]float64{0, 0, 1e-14, 0, 0, 1}, 2)
		test.That(t, err, test.ShouldBeNil)
		_, err = FromRodrigues(ro, WithLogger(logger))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, logs.FilterMessageSnippet("Max. estimated error is greater than 0.1%").Len(), test.ShouldEqual, 1)
		test.That(t, logs.FilterMessageSnippet("Maximum angle").Len(), test.ShouldEqual, 0)
	})

	t.Run("long rodrigues vectors", func(t *testing.T) {
		logger, logs := logging.NewObservedTestLogger(t)
		ro, err := vector.New([]float64{0, 0, 1e6}, 1)
		test.That(t, err, test.ShouldBeNil)
		q, err := FromRodrigues(ro, WithLogger(logger))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, logs.FilterMessageSnippet("Maximum angle").Len(), test.ShouldEqual, 1)
		test.That(t, q.At(0).Kmag, test.ShouldAlmostEqual, 1.0, 1e-9)
	})
}

func TestMatrix(t *testing.T) {
	om := Identity().ToMatrix()
	test.That(t, []int(om.Shape()), test.ShouldResemble, []int{1, 3, 3})
	data, _, err := object3d.TensorFloats(om)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, data, test.ShouldResemble, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})

	q, err := FromMatrix(object3d.NewTensor([]float64{0, 1, 0, -1, 0, 0, 0, 0, 1}, 3, 3))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q.Shape(), test.ShouldResemble, []int{1})
	quaternionsAlmostEqual(t, q, FromNumbers(q90z), 1e-12)

	_, err = FromMatrix(object3d.NewTensor(make([]float64, 6), 2, 3))
	test.That(t, err, test.ShouldBeError, "the last two dimensions of array must be (3, 3), got [2 3]")
}

func TestRodriguesFrank(t *testing.T) {
	q := FromNumbers(q90z, quat.Number{Imag: 1}, quat.Number{Real: 1})
	rf, _, err := object3d.TensorFloats(q.ToRodriguesFrank())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rf[2], test.ShouldAlmostEqual, -1.0)
	test.That(t, rf[3], test.ShouldAlmostEqual, 1.0)
	test.That(t, rf[4], test.ShouldAlmostEqual, 1.0)
	test.That(t, math.IsInf(rf[7], 1), test.ShouldBeTrue)
	test.That(t, rf[11], test.ShouldEqual, 0.0)

	ro := q.ToRodrigues()
	test.That(t, math.IsInf(ro.Data()[3], 1), test.ShouldBeTrue)
	test.That(t, ro.Data()[4], test.ShouldEqual, 0.0)
	test.That(t, ro.Data()[5], test.ShouldEqual, 0.0)

	axes, err := vector.New([]float64{0, 0, -1, 1, 0, 0, 0, 0, 1}, 3)
	test.That(t, err, test.ShouldBeNil)
	back, err := FromRodriguesFrank(axes, []float64{1, math.Inf(1), 0})
	test.That(t, err, test.ShouldBeNil)
	quaternionsAlmostEqual(t, back, q, 1e-12)

	_, err = FromRodriguesFrank(axes, []float64{1})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestHomochoricAndAxes(t *testing.T) {
	q := FromNumbers(q90z)
	ho := q.ToHomochoric()
	test.That(t, ho.Data()[2], test.ShouldAlmostEqual, -math.Cbrt(0.75*(math.Pi/2-1)))

	aa := q.ToAxesAngles()
	test.That(t, aa.Angle()[0], test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, aa.Axis().At(0).Z, test.ShouldAlmostEqual, -1.0)

	orientations := q.Orientations()
	test.That(t, spatialmath.OrientationAlmostEqual(orientations[0], spatialmath.NewQuaternion(q90z)), test.ShouldBeTrue)
}

func TestMGL(t *testing.T) {
	active := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	q := FromMGL(active)
	quaternionsAlmostEqual(t, q, FromNumbers(q90z), 1e-12)

	// an active rotation of x by mathgl matches the inverse passive rotation
	expected := active.Rotate(mgl64.Vec3{1, 0, 0})
	out := q.Inverse().RotateR3(0, vector.XVector().At(0))
	test.That(t, out.X, test.ShouldAlmostEqual, expected[0])
	test.That(t, out.Y, test.ShouldAlmostEqual, expected[1])
	test.That(t, out.Z, test.ShouldAlmostEqual, expected[2])

	back := q.MGL()
	test.That(t, back, test.ShouldHaveLength, 1)
	test.That(t, back[0].ApproxEqual(active), test.ShouldBeTrue)
}

func TestScalarLast(t *testing.T) {
	q, err := FromScalarLast([]float64{0, 0, h, h})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q.At(0), test.ShouldResemble, q90z)
	test.That(t, q.ScalarLast(), test.ShouldResemble, []float64{0, 0, h, h})

	_, err = FromScalarLast([]float64{0, 0, 1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "scalar-last")
}
