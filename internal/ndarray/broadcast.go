package ndarray

import (
	"fmt"

	qerrors "quantkit/internal/errors"
)

// BroadcastShapes returns the shape that all given shapes broadcast to.
//
// Shapes are aligned at their trailing axes. Two dimensions are compatible
// when they are equal or one of them is 1; the result takes the other one.
// Missing leading dimensions count as 1.
func BroadcastShapes(shapes ...[]int) ([]int, error) {
	rank := 0
	for _, s := range shapes {
		if len(s) > rank {
			rank = len(s)
		}
	}

	out := make([]int, rank)
	for i := range out {
		out[i] = 1
	}

	for _, s := range shapes {
		offset := rank - len(s)
		for i, d := range s {
			cur := out[offset+i]
			switch {
			case cur == d:
			case cur == 1:
				out[offset+i] = d
			case d == 1:
			default:
				return nil, qerrors.NewShapeError(
					fmt.Sprintf("axis %d: %d vs %d", offset+i, cur, d), shapes...)
			}
		}
	}
	return out, nil
}

// BroadcastTo materialises a broadcast to shape as a new array.
func BroadcastTo(a *Array, shape []int) (*Array, error) {
	target, err := BroadcastShapes(a.shape, shape)
	if err != nil {
		return nil, err
	}
	if !equalInts(target, shape) {
		return nil, qerrors.NewShapeError("cannot broadcast to a smaller shape", a.shape, shape)
	}

	out := Zeros(shape)
	strides := broadcastStrides(a.shape, shape)
	it := newIndexIter(shape)
	for k := range out.data {
		out.data[k] = a.data[it.offset(strides)]
		it.next()
	}
	return out, nil
}

// BroadcastArrays broadcasts all arrays against each other and returns the
// materialised arrays together with their common shape.
func BroadcastArrays(arrays ...*Array) ([]*Array, []int, error) {
	shapes := make([][]int, len(arrays))
	for i, a := range arrays {
		shapes[i] = a.shape
	}
	shape, err := BroadcastShapes(shapes...)
	if err != nil {
		return nil, nil, err
	}

	out := make([]*Array, len(arrays))
	for i, a := range arrays {
		if equalInts(a.shape, shape) {
			out[i] = a
			continue
		}
		b, err := BroadcastTo(a, shape)
		if err != nil {
			return nil, nil, err
		}
		out[i] = b
	}
	return out, shape, nil
}

// Map broadcasts the arguments and applies f elementwise. f receives one
// value per argument, in argument order; the slice is reused between calls.
func Map(f func(args []float64) float64, arrays ...*Array) (*Array, error) {
	shapes := make([][]int, len(arrays))
	for i, a := range arrays {
		shapes[i] = a.shape
	}
	shape, err := BroadcastShapes(shapes...)
	if err != nil {
		return nil, err
	}

	strides := make([][]int, len(arrays))
	for i, a := range arrays {
		strides[i] = broadcastStrides(a.shape, shape)
	}

	out := Zeros(shape)
	args := make([]float64, len(arrays))
	it := newIndexIter(shape)
	for k := range out.data {
		for i, a := range arrays {
			args[i] = a.data[it.offset(strides[i])]
		}
		out.data[k] = f(args)
		it.next()
	}
	return out, nil
}

// broadcastStrides returns, for every axis of dst, the row-major stride of
// src along that axis, or 0 where src is broadcast.
func broadcastStrides(src, dst []int) []int {
	strides := make([]int, len(dst))
	offset := len(dst) - len(src)
	stride := 1
	for i := len(src) - 1; i >= 0; i-- {
		if src[i] != 1 {
			strides[offset+i] = stride
		}
		stride *= src[i]
	}
	return strides
}

type indexIter struct {
	shape []int
	idx   []int
}

func newIndexIter(shape []int) *indexIter {
	return &indexIter{shape: shape, idx: make([]int, len(shape))}
}

func (it *indexIter) offset(strides []int) int {
	off := 0
	for ax, s := range strides {
		off += it.idx[ax] * s
	}
	return off
}

func (it *indexIter) next() {
	for ax := len(it.shape) - 1; ax >= 0; ax-- {
		it.idx[ax]++
		if it.idx[ax] < it.shape[ax] {
			return
		}
		it.idx[ax] = 0
	}
}

func equalInts(a, b []int) bool {
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
