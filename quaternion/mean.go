package quaternion

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Mean returns the average rotation of the batch as a single quaternion.
//
// It is the eigenvector of the largest eigenvalue of Qᵀ Q, where Q holds one quaternion per row
// (Markley et al. 2007), so q and -q contribute equally. When several eigenvalues tie for the
// largest, the eigenvector that comes first in ascending eigenvalue order is used.
func (q *Quaternion) Mean() (*Quaternion, error) {
	n := q.Size()
	if n == 0 {
		return nil, errors.New("cannot average an empty batch")
	}
	rows := mat.NewDense(n, dim, q.Data())
	var qtq mat.SymDense
	qtq.SymOuterK(1, rows.T())

	var eig mat.EigenSym
	if ok := eig.Factorize(&qtq, true); !ok {
		return nil, errors.New("eigendecomposition of the quaternion outer product failed")
	}
	values := eig.Values(nil)
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	return New(mat.Col(nil, best, &vecs), 1)
}
