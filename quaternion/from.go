package quaternion

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gorgonia.org/tensor"

	"go.viam.com/texture/object3d"
	"go.viam.com/texture/spatialmath"
	"go.viam.com/texture/utils"
	"go.viam.com/texture/vector"
)

const (
	// resolution of float64 near one.
	resolution = 1e-15
	// rodriguesMaxAngle is the largest angle in degrees a Rodrigues vector represents well.
	rodriguesMaxAngle = 179.999
	eulerMaxAngle     = 4 * math.Pi
)

// FromAxesAngles returns unit quaternions rotating by angles about axes. Axes are normalized
// first. A single angle is applied to every axis and a single axis to every angle.
func FromAxesAngles(axes *vector.Vector3D, angles []float64, degrees bool) (*Quaternion, error) {
	if axes.Size() == 0 || len(angles) == 0 {
		return Empty(), nil
	}
	shape := axes.Shape()
	switch {
	case len(angles) == axes.Size() || len(angles) == 1:
	case axes.Size() == 1:
		shape = []int{len(angles)}
	default:
		return nil, utils.NewShapeMismatchError("axes and angles", axes.Shape(), []int{len(angles)})
	}

	n := object3d.ShapeSize(shape)
	unit := axes.Unit().Data()
	rows := make([]float64, 0, n*4)
	for i := 0; i < n; i++ {
		a := broadcastIndex(i, axes.Size())
		angle := angles[broadcastIndex(i, len(angles))]
		if degrees {
			angle = utils.DegToRad(angle)
		}
		rows = append(rows, unit[a*3], unit[a*3+1], unit[a*3+2], angle)
	}
	return New(spatialmath.AxToQuBatch(rows), shape...)
}

// FromAxAngle returns unit quaternions from axis-angle vectors.
func FromAxAngle(ax *vector.AxAngle) (*Quaternion, error) {
	return FromAxesAngles(ax.Vector3D, ax.Angle(), false)
}

// FromHomochoric returns unit quaternions from homochoric vectors.
func FromHomochoric(ho *vector.Vector3D) (*Quaternion, error) {
	ax := spatialmath.HoToAxBatch(ho.Data())
	return New(spatialmath.AxToQuBatch(ax), ho.Shape()...)
}

// FromRodrigues returns unit quaternions from Rodrigues vectors n tan(ω/2).
//
// Vectors this short lose precision and vectors this long cannot represent half turns exactly,
// so both are reported to the logger as warnings. The conversion is done regardless.
func FromRodrigues(ro *vector.Vector3D, opts ...Option) (*Quaternion, error) {
	o := newOptions(opts)
	if ro.Size() == 0 {
		return Empty(), nil
	}
	norms := ro.Norm()
	if minNorm := floats.Min(norms); minNorm < 1000*resolution {
		o.logger.Warnw("Max. estimated error is greater than 0.1%: a Rodrigues vector norm is very small",
			"min_norm", minNorm)
	}
	angles := lo.Map(norms, func(n float64, _ int) float64 { return 2 * math.Atan(n) })
	if maxAngle := utils.RadToDeg(floats.Max(angles)); maxAngle > rodriguesMaxAngle {
		o.logger.Warnw("Maximum angle is greater than 179.999: Rodrigues vectors cannot parametrize 2-fold rotations",
			"max_angle", maxAngle)
	}
	return FromRodriguesFrank(ro, norms)
}

// FromRodriguesFrank returns unit quaternions from axes and tan(ω/2) values. An infinite value
// is a half turn.
func FromRodriguesFrank(axes *vector.Vector3D, tanHalf []float64) (*Quaternion, error) {
	if len(tanHalf) != axes.Size() {
		return nil, utils.NewShapeMismatchError("rodrigues-frank", axes.Shape(), []int{len(tanHalf)})
	}
	data := axes.Data()
	rows := make([]float64, 0, axes.Size()*4)
	for i, t := range tanHalf {
		rows = append(rows, data[i*3], data[i*3+1], data[i*3+2], t)
	}
	ax := spatialmath.RoToAxBatch(rows)
	return New(spatialmath.AxToQuBatch(ax), axes.Shape()...)
}

// FromEuler returns unit quaternions from Bunge Euler angles held in a tensor whose trailing axis
// has length 3.
//
// direction is "lab2crystal" (the default when empty), "crystal2lab" or its alias "mtex", in any
// case. crystal2lab returns the inverse rotations.
func FromEuler(eu *tensor.Dense, direction string, degrees bool, opts ...Option) (*Quaternion, error) {
	o := newOptions(opts)
	inverse := false
	switch strings.ToLower(direction) {
	case "", DirectionLab2Crystal:
	case DirectionCrystal2Lab, DirectionMTEX:
		inverse = true
	default:
		return nil, newInvalidDirectionError(direction)
	}

	angles, err := object3d.FromTensor("Euler", 3, eu)
	if err != nil {
		return nil, err
	}
	data := angles.Data()
	if degrees {
		for i, a := range data {
			data[i] = utils.DegToRad(a)
		}
	}
	if len(data) > 0 {
		if maxAbs := math.Max(floats.Max(data), -floats.Min(data)); maxAbs > eulerMaxAngle {
			o.logger.Warnw("Angles are quite high, did you forget to set degrees?", "max_angle", maxAbs)
		}
	}

	q, err := New(spatialmath.EuToQuBatch(data), angles.Shape()...)
	if err != nil {
		return nil, err
	}
	if inverse {
		return q.Inverse(), nil
	}
	return q, nil
}

// FromMatrix returns unit quaternions from rotation matrices held in a tensor whose two trailing
// axes are (3, 3).
func FromMatrix(t *tensor.Dense) (*Quaternion, error) {
	shape := t.Shape()
	if len(shape) < 2 || shape[len(shape)-2] != 3 || shape[len(shape)-1] != 3 {
		return nil, errors.Errorf("the last two dimensions of array must be (3, 3), got %v", []int(shape))
	}
	data, _, err := object3d.TensorFloats(t)
	if err != nil {
		return nil, err
	}
	nav := append([]int(nil), shape[:len(shape)-2]...)
	if len(nav) == 0 {
		nav = []int{1}
	}
	return New(spatialmath.OmToQuBatch(data), nav...)
}

// FromOrientations returns one quaternion per orientation along a single navigation axis.
func FromOrientations(orientations ...spatialmath.Orientation) *Quaternion {
	data := make([]float64, 0, len(orientations)*dim)
	for _, o := range orientations {
		q := o.Quaternion()
		data = append(data, q.Real, q.Imag, q.Jmag, q.Kmag)
	}
	return mustNew(data, len(orientations))
}
