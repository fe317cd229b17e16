// Package ndarray provides dense float64 arrays with NumPy-style broadcasting.
//
// Arrays are stored row-major. A rank-0 array holds a single scalar. All
// operations allocate new arrays; inputs are never modified.
package ndarray

import (
	"fmt"

	qerrors "quantkit/internal/errors"
)

// Array is an immutable-by-convention N-dimensional float64 array.
type Array struct {
	shape []int
	data  []float64
}

// Scalar returns a rank-0 array holding v.
func Scalar(v float64) *Array {
	return &Array{shape: []int{}, data: []float64{v}}
}

// FromSlice returns a rank-1 array holding a copy of v.
func FromSlice(v []float64) *Array {
	data := make([]float64, len(v))
	copy(data, v)
	return &Array{shape: []int{len(v)}, data: data}
}

// New returns an array of the given shape backed by a copy of data.
func New(shape []int, data []float64) (*Array, error) {
	n, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, qerrors.NewShapeError(
			fmt.Sprintf("%d elements cannot fill shape", len(data)), shape)
	}
	buf := make([]float64, n)
	copy(buf, data)
	return &Array{shape: cloneInts(shape), data: buf}, nil
}

// MustNew is like New but panics on error. Intended for literals in tests and examples.
func MustNew(shape []int, data []float64) *Array {
	a, err := New(shape, data)
	if err != nil {
		panic(err)
	}
	return a
}

// Zeros returns a zero-filled array of the given shape.
func Zeros(shape []int) *Array {
	return Full(shape, 0)
}

// Full returns an array of the given shape with every element set to v.
// Negative dimensions are treated as zero.
func Full(shape []int, v float64) *Array {
	s := cloneInts(shape)
	n := 1
	for i, d := range s {
		if d < 0 {
			s[i] = 0
			d = 0
		}
		n *= d
	}
	data := make([]float64, n)
	if v != 0 {
		for i := range data {
			data[i] = v
		}
	}
	return &Array{shape: s, data: data}
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() []int { return cloneInts(a.shape) }

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.shape) }

// Size returns the number of elements.
func (a *Array) Size() int { return len(a.data) }

// Data returns the underlying row-major storage. Callers must not modify it.
func (a *Array) Data() []float64 { return a.data }

// Item returns the only element of a single-element array.
func (a *Array) Item() (float64, error) {
	if len(a.data) != 1 {
		return 0, qerrors.NewShapeError("item requires exactly one element", a.shape)
	}
	return a.data[0], nil
}

// At returns the element at the given multi-index. It panics on an invalid index.
func (a *Array) At(idx ...int) float64 {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: index rank %d does not match array rank %d", len(idx), len(a.shape)))
	}
	off := 0
	for ax, i := range idx {
		if i < 0 || i >= a.shape[ax] {
			panic(fmt.Sprintf("ndarray: index %d out of range for axis %d of size %d", i, ax, a.shape[ax]))
		}
		off = off*a.shape[ax] + i
	}
	return a.data[off]
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	data := make([]float64, len(a.data))
	copy(data, a.data)
	return &Array{shape: cloneInts(a.shape), data: data}
}

// String implements fmt.Stringer.
func (a *Array) String() string {
	if len(a.shape) == 0 {
		return fmt.Sprint(a.data[0])
	}
	return fmt.Sprintf("array%v%v", a.shape, a.data)
}

// Scale returns c*a.
func Scale(a *Array, c float64) *Array {
	out := a.Clone()
	for i := range out.data {
		out.data[i] *= c
	}
	return out
}

func sizeOf(shape []int) (int, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, qerrors.NewShapeError("negative dimension", shape)
		}
		n *= d
	}
	return n, nil
}

func cloneInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}
