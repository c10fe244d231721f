package graph

import "github.com/NERVsystems/gflow/vm"

// Tensor is an immutable constant tensor attached to a Constant node. It
// stores elements in whichever of the two flat slices matches its dtype;
// the unused slice is nil.
type Tensor struct {
	dtype  vm.DType
	dims   []int64
	floats []float64
	ints   []int64
}

// NewFloatTensor builds a tensor of floating-point elements. dtype must be
// DTypeFloat32 or DTypeFloat64.
func NewFloatTensor(dtype vm.DType, dims []int64, values []float64) *Tensor {
	return &Tensor{dtype: dtype, dims: dims, floats: values}
}

// NewIntTensor builds a tensor of signed integer elements. dtype must be one
// of the integer DType constants.
func NewIntTensor(dtype vm.DType, dims []int64, values []int64) *Tensor {
	return &Tensor{dtype: dtype, dims: dims, ints: values}
}

func (t *Tensor) Dtype() vm.DType { return t.dtype }
func (t *Tensor) Dims() []int64   { return t.dims }

// NumElements returns the product of Dims, or 1 for a scalar (no dims).
func (t *Tensor) NumElements() int64 {
	n := int64(1)
	for _, d := range t.dims {
		n *= d
	}
	return n
}

// GetFloat returns the i'th element as a float64. Valid only when Dtype().IsFloat().
func (t *Tensor) GetFloat(i int64) float64 { return t.floats[i] }

// GetInt returns the i'th element as an int64. Valid only when !Dtype().IsFloat().
func (t *Tensor) GetInt(i int64) int64 { return t.ints[i] }
