package object3d

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ShapeSize returns the number of elements a navigation shape holds.
func ShapeSize(shape []int) int {
	return lo.Reduce(shape, func(agg, item, _ int) int { return agg * item }, 1)
}

// ShapesEqual reports whether two navigation shapes are identical.
func ShapesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// UnravelIndex converts a flat, row-major index into a multi-index over shape.
func UnravelIndex(flat int, shape []int) []int {
	idx := make([]int, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] == 0 {
			continue
		}
		idx[i] = flat % shape[i]
		flat /= shape[i]
	}
	return idx
}

// RavelIndex converts a multi-index into a flat, row-major index over shape. Negative entries
// count from the end of their axis.
func RavelIndex(idx, shape []int) (int, error) {
	if len(idx) != len(shape) {
		return 0, errors.Errorf("index %v does not match shape %v", idx, shape)
	}
	flat := 0
	for i, v := range idx {
		n, err := normalizeIndex(v, shape[i])
		if err != nil {
			return 0, errors.Wrapf(err, "axis %d", i)
		}
		flat = flat*shape[i] + n
	}
	return flat, nil
}

func normalizeIndex(i, n int) (int, error) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, errors.Errorf("index %d is out of bounds for axis with size %d", i, n)
	}
	return i, nil
}

// resolveShape fills a single -1 entry so the shape holds size elements.
func resolveShape(shape []int, size int) ([]int, error) {
	out := append([]int(nil), shape...)
	unknown := -1
	known := 1
	for i, s := range out {
		switch {
		case s == -1:
			if unknown >= 0 {
				return nil, errors.New("can only specify one unknown dimension")
			}
			unknown = i
		case s < 0:
			return nil, errors.Errorf("negative dimensions are not allowed: %v", shape)
		default:
			known *= s
		}
	}
	if unknown >= 0 {
		if known == 0 || size%known != 0 {
			return nil, errors.Errorf("cannot reshape object of size %d into shape %v", size, shape)
		}
		out[unknown] = size / known
		return out, nil
	}
	if known != size {
		return nil, errors.Errorf("cannot reshape object of size %d into shape %v", size, shape)
	}
	return out, nil
}
