package pricing

import (
	"math"

	qerrors "quantkit/internal/errors"
	"quantkit/internal/ndarray"
)

// BlackScholesResult holds Black-Scholes prices and greeks, all of one shape.
// There is no theta output.
type BlackScholesResult struct {
	Call      *ndarray.Array
	Put       *ndarray.Array
	CallDelta *ndarray.Array
	PutDelta  *ndarray.Array
	Gamma     *ndarray.Array
	Vega      *ndarray.Array
}

// BlackScholes prices vanilla options under geometric Brownian motion.
//
//	x0    spot
//	K     strike
//	r     continuous risk-free rate
//	delta continuous dividend (carry) yield
//	sig   volatility
//	T     maturity
//
// With D = exp(-rT) and forward F = x0/D * exp(-delta*T), puts are derived
// from calls as P = C + D(K-F) and dP = dC - 1.
func BlackScholes(x0, K, r, delta, sig, T *ndarray.Array, opts ...Option) (*BlackScholesResult, error) {
	s := newSettings(opts)

	in, shape, err := ndarray.BroadcastArrays(x0, K, r, delta, sig, T)
	if err != nil {
		return nil, qerrors.Wrap(err, "black-scholes inputs")
	}
	if s.strict {
		if err := validate(
			field{"x0", in[0], positive},
			field{"K", in[1], positive},
			field{"r", in[2], anyFinite},
			field{"delta", in[3], anyFinite},
			field{"sig", in[4], nonNegative},
			field{"T", in[5], nonNegative},
		); err != nil {
			return nil, err
		}
	}

	res := &BlackScholesResult{
		Call:      ndarray.Zeros(shape),
		Put:       ndarray.Zeros(shape),
		CallDelta: ndarray.Zeros(shape),
		PutDelta:  ndarray.Zeros(shape),
		Gamma:     ndarray.Zeros(shape),
		Vega:      ndarray.Zeros(shape),
	}

	xs, ks, rs, ds := in[0].Data(), in[1].Data(), in[2].Data(), in[3].Data()
	sigs, ts := in[4].Data(), in[5].Data()
	c, p := res.Call.Data(), res.Put.Data()
	dc, dp := res.CallDelta.Data(), res.PutDelta.Data()
	g, v := res.Gamma.Data(), res.Vega.Data()

	counts := regimeCounts{}
	for i := range c {
		xi, ki, sigi, ti := xs[i], ks[i], sigs[i], ts[i]
		disc := math.Exp(-rs[i] * ti)
		carry := math.Exp(-ds[i] * ti)
		fwd := xi / disc * carry

		regime := ClassifyBlackScholes(sigi, ti)
		counts[regime]++

		switch regime {
		case RegimePositiveVol:
			sigT := sigi * math.Sqrt(ti)
			m := math.Log(fwd/ki) / sigT
			d1 := m + sigT/2
			d2 := m - sigT/2
			c[i] = disc * (fwd*normCDF(d1) - ki*normCDF(d2))
			dc[i] = carry * normCDF(d1)
			g[i] = carry * normPDF(d1) / (xi * sigT)
			v[i] = g[i] * xi * xi * sigi * ti
		case RegimeZeroMaturity:
			c[i] = math.Max(xi-ki, 0)
			if xi >= ki {
				dc[i] = 1
			}
		case RegimeZeroVolatility:
			c[i] = disc * math.Max(fwd-ki, 0)
			if fwd >= ki {
				dc[i] = carry
			}
		default:
			nan := math.NaN()
			c[i], dc[i], g[i], v[i] = nan, nan, nan, nan
		}

		p[i] = c[i] + disc*(ki-fwd)
		dp[i] = dc[i] - 1
	}

	if e := s.logger.Debug(); e.Enabled() {
		e.Str("model", "black_scholes").
			Int("size", len(c)).
			Fields(counts.dict()).
			Msg("priced batch")
	}

	return res, nil
}
