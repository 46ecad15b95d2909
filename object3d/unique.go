package object3d

import (
	"math"
	"strconv"
	"strings"
)

const (
	uniqueDecimals = 1e10
	zeroTolerance  = 1e-8
)

// Unique returns the numerically unique, non-zero elements in order of first occurrence.
//
// Elements are compared after rounding every stored component to 10 decimals, and elements whose
// components are all zero are dropped. index holds the flat position in o of every returned
// element. inverse holds, for every element of o, its position in the result, or -1 for dropped
// zero elements.
func (o *Object3D) Unique() (unique *Object3D, index, inverse []int) {
	size := o.Size()
	rounded := make([]float64, len(o.data))
	for i, v := range o.data {
		r := math.Round(v*uniqueDecimals) / uniqueDecimals
		if r == 0 {
			// collapse -0 onto 0
			r = 0
		}
		rounded[i] = r
	}

	seen := make(map[string]int, size)
	inverse = make([]int, size)
	data := make([]float64, 0, len(rounded))
	for i := 0; i < size; i++ {
		row := rounded[i*o.cols : (i+1)*o.cols]
		if allZero(row) {
			inverse[i] = -1
			continue
		}
		key := rowKey(row)
		if pos, ok := seen[key]; ok {
			inverse[i] = pos
			continue
		}
		pos := len(index)
		seen[key] = pos
		index = append(index, i)
		inverse[i] = pos
		data = append(data, row...)
	}
	unique = &Object3D{name: o.name, dim: o.dim, cols: o.cols, shape: []int{len(index)}, data: data}
	return unique, index, inverse
}

func allZero(row []float64) bool {
	for _, v := range row {
		if math.Abs(v) > zeroTolerance {
			return false
		}
	}
	return true
}

func rowKey(row []float64) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = strconv.FormatUint(math.Float64bits(v), 16)
	}
	return strings.Join(parts, ",")
}
