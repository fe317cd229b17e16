package simulation

import (
	"math"

	"quantkit/internal/ndarray"
)

// MonteCarlo returns the discounted sample mean exp(-rate*maturity) * mean(g)
// taken over the trailing axis of g. Leading axes index independent
// contracts priced in one batch; the trailing axis indexes draws. The result
// has g's shape without its last axis. Pass rate 0 for an undiscounted mean.
func MonteCarlo(g *ndarray.Array, maturity, rate float64) (*ndarray.Array, error) {
	return ndarray.MeanLastAxis(ndarray.Scale(g, math.Exp(-rate*maturity)))
}

// MonteCarloStdErr returns the standard error of MonteCarlo: the discounted
// sample standard deviation over the trailing axis divided by sqrt(n).
func MonteCarloStdErr(g *ndarray.Array, maturity, rate float64) (*ndarray.Array, error) {
	sd, err := ndarray.StdLastAxis(ndarray.Scale(g, math.Exp(-rate*maturity)))
	if err != nil {
		return nil, err
	}
	shape := g.Shape()
	n := float64(shape[len(shape)-1])
	return ndarray.Scale(sd, 1/math.Sqrt(n)), nil
}

// CallPayoff returns max(x - K, 0) elementwise, broadcasting x against K.
func CallPayoff(x, K *ndarray.Array) (*ndarray.Array, error) {
	return ndarray.Map(func(v []float64) float64 { return math.Max(v[0]-v[1], 0) }, x, K)
}

// PutPayoff returns max(K - x, 0) elementwise, broadcasting x against K.
func PutPayoff(x, K *ndarray.Array) (*ndarray.Array, error) {
	return ndarray.Map(func(v []float64) float64 { return math.Max(v[1]-v[0], 0) }, x, K)
}
