package object3d

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// RandomSample draws size distinct elements uniformly at random from the flattened object.
func (o *Object3D) RandomSample(size int) (*Object3D, error) {
	n := o.Size()
	if size > n {
		return nil, errors.Errorf("cannot draw a sample greater than %d", n)
	}
	if size < 0 {
		return nil, errors.Errorf("sample size must be non-negative, got %d", size)
	}
	idx := make([]int, size)
	if size > 0 {
		sampleuv.WithoutReplacement(idx, n, nil)
	}
	return o.Take(idx)
}
