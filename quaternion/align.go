package quaternion

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/texture/object3d"
	"go.viam.com/texture/spatialmath"
	"go.viam.com/texture/utils"
	"go.viam.com/texture/vector"
)

// AlignResult is the rotation that best maps one vector set onto another.
type AlignResult struct {
	Quaternion *Quaternion
	// RMSD is the square root of the weighted sum of squared distances after alignment.
	RMSD float64
	// Sensitivity is the 3x3 sensitivity matrix of the estimate. It is not finite when the
	// vectors do not constrain every rotation axis.
	Sensitivity *mat.Dense
}

// FromAlignVectors returns the rotation q minimizing the weighted distance between q * initial
// and other (Kabsch/Wahba). Both sets are normalized first and must have the same shape. Weights
// come from WithWeights and default to one.
func FromAlignVectors(other, initial *vector.Vector3D, opts ...Option) (*AlignResult, error) {
	o := newOptions(opts)
	if !object3d.ShapesEqual(other.Shape(), initial.Shape()) {
		return nil, utils.NewShapeMismatchError("align vectors", other.Shape(), initial.Shape())
	}
	n := other.Size()
	if n == 0 {
		return nil, errors.New("cannot align empty vector sets")
	}
	weights := o.weights
	if weights == nil {
		weights = make([]float64, n)
		floats.AddConst(1, weights)
	}
	if len(weights) != n {
		return nil, errors.Errorf("expected %d weights, got %d", n, len(weights))
	}
	if floats.Min(weights) < 0 {
		return nil, errors.New("weights must be non-negative")
	}

	a := mat.NewDense(n, 3, other.Unit().Data())
	b := mat.NewDense(n, 3, initial.Unit().Data())
	var wa mat.Dense
	wa.Apply(func(i, _ int, v float64) float64 { return weights[i] * v }, a)

	var h mat.Dense
	h.Mul(wa.T(), b)

	var svd mat.SVD
	if ok := svd.Factorize(&h, mat.SVDFull); !ok {
		return nil, errors.New("singular value decomposition of the alignment matrix failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)
	if mat.Det(&u)*mat.Det(&v) < 0 {
		s[2] = -s[2]
		for i := 0; i < 3; i++ {
			u.Set(i, 2, -u.At(i, 2))
		}
	}

	var r mat.Dense
	r.Mul(&u, v.T())
	om, err := spatialmath.NewRotationMatrix(r.RawMatrix().Data)
	if err != nil {
		return nil, err
	}
	q, err := New(spatialmath.OmToQuBatch(om.Values()), 1)
	if err != nil {
		return nil, err
	}

	var sumSq float64
	for i := 0; i < n; i++ {
		sumSq += weights[i] * (floats.Dot(a.RawRowView(i), a.RawRowView(i)) + floats.Dot(b.RawRowView(i), b.RawRowView(i)))
	}
	rmsd := math.Sqrt(math.Max(sumSq-2*floats.Sum(s), 0))

	zeta := (s[0] + s[1]) * (s[1] + s[2]) * (s[2] + s[0])
	kappa := s[0]*s[1] + s[1]*s[2] + s[2]*s[0]
	meanWeight, err := stats.Mean(weights)
	if err != nil {
		return nil, err
	}
	// expressed in the frame of initial
	var sens mat.Dense
	sens.Mul(h.T(), &h)
	for i := 0; i < 3; i++ {
		sens.Set(i, i, sens.At(i, i)+kappa)
	}
	sens.Scale(meanWeight/zeta, &sens)

	return &AlignResult{Quaternion: q, RMSD: rmsd, Sensitivity: &sens}, nil
}
