package object3d

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"go.viam.com/texture/utils"
)

// FromTensor builds an object from a tensor whose trailing axis holds dim components. The
// leading axes become the navigation shape.
func FromTensor(name string, dim int, t *tensor.Dense) (*Object3D, error) {
	data, shape, err := TensorFloats(t)
	if err != nil {
		return nil, err
	}
	if len(shape) == 0 {
		return nil, NewDimensionError(name, dim, 1)
	}
	if shape[len(shape)-1] != dim {
		return nil, NewDimensionError(name, dim, shape[len(shape)-1])
	}
	nav := shape[:len(shape)-1]
	if len(nav) == 0 {
		nav = []int{1}
	}
	return NewNamed(name, dim, data, nav...)
}

// Tensor returns the public components as a tensor of shape Shape() + (Dim(),).
func (o *Object3D) Tensor() *tensor.Dense {
	return NewTensor(o.Data(), append(o.Shape(), o.dim)...)
}

// NewTensor wraps a copy of data in a float64 tensor of the given shape.
func NewTensor(data []float64, shape ...int) *tensor.Dense {
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(append([]float64(nil), data...)))
}

// TensorFloats returns a row-major float64 copy of a tensor's data along with its shape.
func TensorFloats(t *tensor.Dense) ([]float64, []int, error) {
	if t == nil {
		return nil, nil, errors.New("nil tensor")
	}
	if t.IsView() {
		materialized, ok := t.Materialize().(*tensor.Dense)
		if !ok {
			return nil, nil, errors.Errorf("cannot materialize tensor view of type %T", t)
		}
		t = materialized
	}
	shape := []int(t.Shape().Clone())
	switch data := t.Data().(type) {
	case []float64:
		return append([]float64(nil), data...), shape, nil
	case []float32:
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, shape, nil
	case float64:
		return []float64{data}, shape, nil
	default:
		return nil, nil, utils.NewUnexpectedTypeError([]float64(nil), data)
	}
}
