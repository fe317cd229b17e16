package pricing

import "math"

// Regime identifies which closed form applies to a single set of inputs.
type Regime int

const (
	// RegimePositiveVol is the general case: total volatility sig*sqrt(T) > 0.
	RegimePositiveVol Regime = iota
	// RegimeZeroMaturity applies at expiry (T == 0).
	RegimeZeroMaturity
	// RegimeZeroVolatility applies to a deterministic underlying (sig == 0, T != 0).
	RegimeZeroVolatility
	// RegimeDegenerate is the Bachelier fallback for any non-positive total volatility.
	RegimeDegenerate
	// RegimeUndefined covers Black-Scholes inputs outside every closed form,
	// such as a negative volatility. All outputs are NaN.
	RegimeUndefined
)

func (r Regime) String() string {
	switch r {
	case RegimePositiveVol:
		return "positive_vol"
	case RegimeZeroMaturity:
		return "zero_maturity"
	case RegimeZeroVolatility:
		return "zero_volatility"
	case RegimeDegenerate:
		return "degenerate"
	case RegimeUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// ClassifyBlackScholes selects the Black-Scholes regime. The checks run in a
// fixed order: positive total volatility, then T == 0, then sig == 0. When
// T and sig are both zero the zero-maturity form wins.
func ClassifyBlackScholes(sig, T float64) Regime {
	switch {
	case sig*math.Sqrt(T) > 0:
		return RegimePositiveVol
	case T == 0:
		return RegimeZeroMaturity
	case sig == 0:
		return RegimeZeroVolatility
	default:
		return RegimeUndefined
	}
}

// ClassifyBachelier selects the Bachelier regime. Anything that is not a
// strictly positive total volatility (including NaN) is degenerate.
func ClassifyBachelier(sig, tau float64) Regime {
	if sig*math.Sqrt(tau) > 0 {
		return RegimePositiveVol
	}
	return RegimeDegenerate
}

// regimeCounts tallies regimes over a batch for debug logging.
type regimeCounts map[Regime]int

func (c regimeCounts) dict() map[string]interface{} {
	out := make(map[string]interface{}, len(c))
	for r, n := range c {
		out[r.String()] = n
	}
	return out
}
