package ndarray

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	qerrors "quantkit/internal/errors"
)

// MeanLastAxis returns the arithmetic mean of a along its trailing axis.
// The result has a's shape with the last axis removed. An empty trailing
// axis yields NaN.
func MeanLastAxis(a *Array) (*Array, error) {
	return reduceLastAxis(a, func(row []float64) float64 {
		return floats.Sum(row) / float64(len(row))
	})
}

// StdLastAxis returns the sample standard deviation (n-1 denominator) of a
// along its trailing axis. Fewer than two samples yield NaN.
func StdLastAxis(a *Array) (*Array, error) {
	return reduceLastAxis(a, func(row []float64) float64 {
		if len(row) < 2 {
			return math.NaN()
		}
		return stat.StdDev(row, nil)
	})
}

func reduceLastAxis(a *Array, f func(row []float64) float64) (*Array, error) {
	if len(a.shape) == 0 {
		return nil, qerrors.NewShapeError("reduction needs at least one axis", a.shape)
	}
	last := a.shape[len(a.shape)-1]
	outShape := cloneInts(a.shape[:len(a.shape)-1])
	out := Zeros(outShape)
	for i := range out.data {
		out.data[i] = f(a.data[i*last : (i+1)*last])
	}
	return out, nil
}
