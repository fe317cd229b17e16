// Package simulation provides Brownian path simulation and Monte Carlo
// estimation of expectations.
//
// Randomness always comes from a caller-owned *rand.Rand. Nothing here
// touches process-wide generator state, so two callers holding separate
// generators never interfere. A single *rand.Rand is not safe for concurrent
// use; sharing one across goroutines is the caller's responsibility.
package simulation

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	qerrors "quantkit/internal/errors"
	"quantkit/internal/ndarray"
)

// NewRand returns a generator for BrownianPaths. A non-nil seed gives a
// reproducible PCG stream; nil seeds from the runtime's entropy source.
func NewRand(seed *uint64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, *seed))
}

// Seed is a convenience for NewRand(&seed).
func Seed(seed uint64) *rand.Rand {
	return NewRand(&seed)
}

// BrownianPaths simulates paths independent Brownian motions sampled exactly
// at the points of grid. The result has one row per grid point and one column
// per path; row 0 is zero. Row i holds the sum of independent N(0, dt)
// increments over every grid interval up to i.
//
// Normals are drawn row by row, path by path, so a given generator state,
// grid and path count always give the same matrix. A nil rng is replaced by
// an entropy-seeded one.
//
// The grid is not checked for order: a decreasing step produces NaN. Use
// ValidateGrid first when that matters. The only error is a shape that cannot
// be represented, i.e. an empty grid or paths < 1.
func BrownianPaths(grid []float64, paths int, rng *rand.Rand) (*mat.Dense, error) {
	if len(grid) == 0 {
		return nil, qerrors.NewParameterError("grid", len(grid), "needs at least one point")
	}
	if paths < 1 {
		return nil, qerrors.NewParameterError("paths", paths, "must be positive")
	}
	if rng == nil {
		rng = NewRand(nil)
	}

	w := mat.NewDense(len(grid), paths, nil)
	for i := 1; i < len(grid); i++ {
		sd := math.Sqrt(grid[i] - grid[i-1])
		prev, cur := w.RawRowView(i-1), w.RawRowView(i)
		for j := range cur {
			cur[j] = prev[j] + sd*rng.NormFloat64()
		}
	}
	return w, nil
}

// ValidateGrid is the strict precondition check for BrownianPaths.
func ValidateGrid(grid []float64, paths int) error {
	if len(grid) < 2 {
		return qerrors.NewParameterError("grid", len(grid), "needs at least two points")
	}
	if paths < 1 {
		return qerrors.NewParameterError("paths", paths, "must be positive")
	}
	for i := 1; i < len(grid); i++ {
		dt := grid[i] - grid[i-1]
		if math.IsNaN(dt) || math.IsInf(dt, 0) {
			return qerrors.NewParameterError("grid", grid[i], "must be finite")
		}
		if dt < 0 {
			return qerrors.NewParameterError("grid", grid[i], "must be non-decreasing")
		}
	}
	return nil
}

// UniformGrid returns steps+1 equally spaced points on [0, horizon]. A
// non-positive steps gives an empty grid, which ValidateGrid rejects.
func UniformGrid(horizon float64, steps int) []float64 {
	if steps < 1 {
		return []float64{}
	}
	grid := make([]float64, steps+1)
	for i := range grid {
		grid[i] = horizon * float64(i) / float64(steps)
	}
	return grid
}

// GeometricPaths maps Brownian paths w on grid to geometric Brownian motion
//
//	X(t) = x0 * exp((mu - sig^2/2) t + sig W(t))
//
// with t measured from grid[0].
func GeometricPaths(w *mat.Dense, grid []float64, x0, mu, sig float64) *mat.Dense {
	drift := mu - sig*sig/2
	var out mat.Dense
	out.Apply(func(i, _ int, v float64) float64 {
		return x0 * math.Exp(drift*(grid[i]-grid[0])+sig*v)
	}, w)
	return &out
}

// TerminalRow returns the last row of a path matrix as a rank-1 array, the
// usual input to a payoff function.
func TerminalRow(m *mat.Dense) *ndarray.Array {
	r, _ := m.Dims()
	return ndarray.FromSlice(mat.Row(nil, r-1, m))
}

// RowStats returns the sample mean and unbiased variance of every row.
func RowStats(m *mat.Dense) (mean, variance []float64) {
	r, _ := m.Dims()
	mean = make([]float64, r)
	variance = make([]float64, r)
	for i := 0; i < r; i++ {
		mean[i], variance[i] = stat.MeanVariance(m.RawRowView(i), nil)
	}
	return mean, variance
}
