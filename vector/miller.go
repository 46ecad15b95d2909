package vector

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/texture/utils"
)

// CoordinateFormat names the coordinates a Miller vector is reported in.
type CoordinateFormat string

// Supported coordinate formats.
const (
	FormatXYZ  CoordinateFormat = "xyz"
	FormatUVW  CoordinateFormat = "uvw"
	FormatUVTW CoordinateFormat = "UVTW"
	FormatHKL  CoordinateFormat = "hkl"
	FormatHKIL CoordinateFormat = "hkil"
)

// Lattice holds unit cell lengths and angles. Angles are in degrees.
type Lattice struct {
	A, B, C            float64
	Alpha, Beta, Gamma float64
}

// CubicLattice returns a cubic lattice with edge length a.
func CubicLattice(a float64) Lattice {
	return Lattice{A: a, B: a, C: a, Alpha: 90, Beta: 90, Gamma: 90}
}

// Basis returns the direct lattice vectors as matrix columns, with a along x and c* along z.
func (l Lattice) Basis() (*mat.Dense, error) {
	ca := math.Cos(utils.DegToRad(l.Alpha))
	cb := math.Cos(utils.DegToRad(l.Beta))
	cg := math.Cos(utils.DegToRad(l.Gamma))
	sg := math.Sin(utils.DegToRad(l.Gamma))
	vol2 := 1 - ca*ca - cb*cb - cg*cg + 2*ca*cb*cg
	if l.A <= 0 || l.B <= 0 || l.C <= 0 || vol2 <= 0 || sg == 0 {
		return nil, errors.Errorf("invalid lattice %+v", l)
	}
	return mat.NewDense(3, 3, []float64{
		l.A, l.B * cg, l.C * cb,
		0, l.B * sg, l.C * (ca - cb*cg) / sg,
		0, 0, l.C * math.Sqrt(vol2) / sg,
	}), nil
}

// Phase is the crystal a Miller vector belongs to.
type Phase struct {
	Name       string
	PointGroup string
	SpaceGroup int
	Lattice    Lattice
}

// Miller is a batch of crystal directions or plane normals stored in Cartesian coordinates
// together with the phase they belong to.
type Miller struct {
	vec              *Vector3D
	Phase            *Phase
	CoordinateFormat CoordinateFormat
}

// NewMiller returns Miller vectors from Cartesian vectors.
func NewMiller(xyz *Vector3D, phase *Phase) *Miller {
	return &Miller{vec: xyz, Phase: phase, CoordinateFormat: FormatXYZ}
}

// NewMillerFromUVW returns Miller vectors from direct lattice coordinates.
func NewMillerFromUVW(uvw *Vector3D, phase *Phase) (*Miller, error) {
	basis, err := phaseBasis(phase)
	if err != nil {
		return nil, err
	}
	xyz, err := applyMatrix(basis, uvw)
	if err != nil {
		return nil, err
	}
	return &Miller{vec: xyz, Phase: phase, CoordinateFormat: FormatUVW}, nil
}

// NewMillerFromHKL returns Miller vectors from reciprocal lattice coordinates.
func NewMillerFromHKL(hkl *Vector3D, phase *Phase) (*Miller, error) {
	basis, err := phaseBasis(phase)
	if err != nil {
		return nil, err
	}
	var recip mat.Dense
	if err := recip.Inverse(basis.T()); err != nil {
		return nil, errors.Wrap(err, "reciprocal lattice")
	}
	xyz, err := applyMatrix(&recip, hkl)
	if err != nil {
		return nil, err
	}
	return &Miller{vec: xyz, Phase: phase, CoordinateFormat: FormatHKL}, nil
}

// WithVector returns Miller vectors carrying m's metadata over new Cartesian coordinates.
func (m *Miller) WithVector(xyz *Vector3D) *Miller {
	return &Miller{vec: xyz, Phase: m.Phase, CoordinateFormat: m.CoordinateFormat}
}

// Vector returns the Cartesian coordinates.
func (m *Miller) Vector() *Vector3D { return m.vec }

// Shape returns the navigation shape.
func (m *Miller) Shape() []int { return m.vec.Shape() }

// Size returns the number of vectors.
func (m *Miller) Size() int { return m.vec.Size() }

// Data returns a row-major copy of the Cartesian coordinates.
func (m *Miller) Data() []float64 { return m.vec.Data() }

// Norm returns the Cartesian length of every vector.
func (m *Miller) Norm() []float64 { return m.vec.Norm() }

// Unit returns unit length Miller vectors.
func (m *Miller) Unit() *Miller { return m.WithVector(m.vec.Unit()) }

// Reshape lays the vectors out over a new navigation shape.
func (m *Miller) Reshape(shape ...int) (*Miller, error) {
	v, err := m.vec.Reshape(shape...)
	if err != nil {
		return nil, err
	}
	return m.WithVector(v), nil
}

// Flatten returns the vectors along a single navigation axis.
func (m *Miller) Flatten() *Miller { return m.WithVector(m.vec.Flatten()) }

// UVW returns the direct lattice coordinates.
func (m *Miller) UVW() (*Vector3D, error) {
	basis, err := phaseBasis(m.Phase)
	if err != nil {
		return nil, err
	}
	var inv mat.Dense
	if err := inv.Inverse(basis); err != nil {
		return nil, errors.Wrap(err, "direct lattice")
	}
	return applyMatrix(&inv, m.vec)
}

// HKL returns the reciprocal lattice coordinates.
func (m *Miller) HKL() (*Vector3D, error) {
	basis, err := phaseBasis(m.Phase)
	if err != nil {
		return nil, err
	}
	return applyMatrix(basis.T(), m.vec)
}

func (m *Miller) String() string {
	name := ""
	if m.Phase != nil {
		name = m.Phase.Name
	}
	return "Miller (" + string(m.CoordinateFormat) + ", " + name + ")\n" + m.vec.String()
}

func phaseBasis(phase *Phase) (*mat.Dense, error) {
	if phase == nil {
		return nil, errors.New("miller vectors require a phase")
	}
	return phase.Lattice.Basis()
}

func applyMatrix(m mat.Matrix, v *Vector3D) (*Vector3D, error) {
	data := v.Data()
	n := v.Size()
	if n == 0 {
		return v.Flatten().Reshape(v.Shape()...)
	}
	in := mat.NewDense(n, dim, data)
	var out mat.Dense
	out.Mul(in, m.T())
	return New(out.RawMatrix().Data, v.Shape()...)
}
