package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a 3x3 rotation matrix stored row major. It acts on column vectors, so the
// vector part of q * v * ~q equals M v.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates a rotation matrix from a row major slice of nine values.
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, errors.Errorf("input slice has %d elements, need exactly 9", len(m))
	}
	var mm [9]float64
	copy(mm[:], m)
	return &RotationMatrix{mm}, nil
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	return QuatToR4AA(rm.Quaternion())
}

// Quaternion returns the unit quaternion of the matrix with a non-negative scalar part.
//
// The magnitudes come from the diagonal and the signs of the vector part from the antisymmetric
// off-diagonal differences. For half turns those differences vanish, so the relative signs are
// recovered from the symmetric sums, which equal 4 qi qj.
func (rm *RotationMatrix) Quaternion() quat.Number {
	m := rm.mat
	q := [4]float64{
		0.5 * math.Sqrt(math.Max(0, 1+m[0]+m[4]+m[8])),
		0.5 * math.Sqrt(math.Max(0, 1+m[0]-m[4]-m[8])),
		0.5 * math.Sqrt(math.Max(0, 1-m[0]+m[4]-m[8])),
		0.5 * math.Sqrt(math.Max(0, 1-m[0]-m[4]+m[8])),
	}

	if q[0] < halfTurnEps {
		// largest vector component stays positive
		k := 1
		for i := 2; i < 4; i++ {
			if q[i] > q[k] {
				k = i
			}
		}
		var sym [4][4]float64
		sym[1][2], sym[1][3], sym[2][3] = m[1]+m[3], m[2]+m[6], m[5]+m[7]
		sym[2][1], sym[3][1], sym[3][2] = sym[1][2], sym[1][3], sym[2][3]
		for i := 1; i < 4; i++ {
			if i != k && sym[i][k] < 0 {
				q[i] = -q[i]
			}
		}
	} else {
		if m[7] < m[5] {
			q[1] = -q[1]
		}
		if m[2] < m[6] {
			q[2] = -q[2]
		}
		if m[3] < m[1] {
			q[3] = -q[3]
		}
	}

	out := quat.Number{Real: q[0], Imag: q[1], Jmag: q[2], Kmag: q[3]}
	if n := quat.Abs(out); n != 0 {
		out = quat.Scale(1/n, out)
	}
	return out
}

const halfTurnEps = 1e-8

// EulerAngles returns orientation in Euler angle representation.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(rm.Quaternion())
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

// RodriguesFrank returns the orientation as a Rodrigues-Frank vector.
func (rm *RotationMatrix) RodriguesFrank() *RodriguesFrank {
	return rm.AxisAngles().RodriguesFrank()
}

// Homochoric returns the orientation as a homochoric vector.
func (rm *RotationMatrix) Homochoric() r3.Vector {
	return QuatToHomochoric(rm.Quaternion())
}

// At returns the entry at row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns the given row.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[3*row], Y: rm.mat[3*row+1], Z: rm.mat[3*row+2]}
}

// Col returns the given column.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[col+3], Z: rm.mat[col+6]}
}

// Values returns a row major copy of the entries.
func (rm *RotationMatrix) Values() []float64 {
	return append([]float64(nil), rm.mat[:]...)
}

// Mat returns the matrix as a gonum matrix.
func (rm *RotationMatrix) Mat() *mat.Dense {
	return mat.NewDense(3, 3, rm.Values())
}

// Mul returns M v.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{X: rm.Row(0).Dot(v), Y: rm.Row(1).Dot(v), Z: rm.Row(2).Dot(v)}
}

// QuatToRotationMatrix converts a unit quaternion to a rotation matrix.
func QuatToRotationMatrix(q quat.Number) *RotationMatrix {
	q0, q1, q2, q3 := q.Real, q.Imag, q.Jmag, q.Kmag
	qq := q0*q0 - (q1*q1 + q2*q2 + q3*q3)
	return &RotationMatrix{[9]float64{
		qq + 2*q1*q1, 2 * (q1*q2 - q0*q3), 2 * (q1*q3 + q0*q2),
		2 * (q1*q2 + q0*q3), qq + 2*q2*q2, 2 * (q2*q3 - q0*q1),
		2 * (q1*q3 - q0*q2), 2 * (q2*q3 + q0*q1), qq + 2*q3*q3,
	}}
}
