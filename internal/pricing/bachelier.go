package pricing

import (
	"math"

	qerrors "quantkit/internal/errors"
	"quantkit/internal/ndarray"
)

// BachelierResult holds Bachelier prices and greeks, all of one shape.
type BachelierResult struct {
	Call      *ndarray.Array
	Put       *ndarray.Array
	CallDelta *ndarray.Array
	PutDelta  *ndarray.Array
	Gamma     *ndarray.Array
	Theta     *ndarray.Array
	Vega      *ndarray.Array
}

// Bachelier prices vanilla options under arithmetic Brownian motion with a
// zero interest rate.
//
//	x   spot
//	K   strike
//	sig absolute (price-unit) volatility
//	tau time to maturity
//
// Puts are derived from calls as P = C + x - K and dP = dC - 1.
func Bachelier(x, K, sig, tau *ndarray.Array, opts ...Option) (*BachelierResult, error) {
	s := newSettings(opts)

	in, shape, err := ndarray.BroadcastArrays(x, K, sig, tau)
	if err != nil {
		return nil, qerrors.Wrap(err, "bachelier inputs")
	}
	if s.strict {
		if err := validate(
			field{"x", in[0], anyFinite},
			field{"K", in[1], positive},
			field{"sig", in[2], nonNegative},
			field{"tau", in[3], nonNegative},
		); err != nil {
			return nil, err
		}
	}

	res := &BachelierResult{
		Call:      ndarray.Zeros(shape),
		Put:       ndarray.Zeros(shape),
		CallDelta: ndarray.Zeros(shape),
		PutDelta:  ndarray.Zeros(shape),
		Gamma:     ndarray.Zeros(shape),
		Theta:     ndarray.Zeros(shape),
		Vega:      ndarray.Zeros(shape),
	}

	xs, ks, sigs, taus := in[0].Data(), in[1].Data(), in[2].Data(), in[3].Data()
	c, p := res.Call.Data(), res.Put.Data()
	dc, dp := res.CallDelta.Data(), res.PutDelta.Data()
	g, th, v := res.Gamma.Data(), res.Theta.Data(), res.Vega.Data()

	counts := regimeCounts{}
	for i := range c {
		xi, ki, sigi, taui := xs[i], ks[i], sigs[i], taus[i]
		regime := ClassifyBachelier(sigi, taui)
		counts[regime]++

		switch regime {
		case RegimePositiveVol:
			sqrtTau := math.Sqrt(taui)
			total := sigi * sqrtTau
			d := (xi - ki) / total
			pdf := normPDF(d)
			c[i] = total*pdf + (xi-ki)*normCDF(d)
			dc[i] = normCDF(d)
			g[i] = pdf / total
			// heat equation: theta = -sig^2/2 * gamma
			th[i] = -sigi * sigi * g[i] / 2
			v[i] = sqrtTau * pdf
		default:
			c[i] = math.Max(xi-ki, 0)
			if xi >= ki {
				dc[i] = 1
			}
		}

		p[i] = c[i] + xi - ki
		dp[i] = dc[i] - 1
	}

	if e := s.logger.Debug(); e.Enabled() {
		e.Str("model", "bachelier").
			Int("size", len(c)).
			Fields(counts.dict()).
			Msg("priced batch")
	}

	return res, nil
}
