package pricing

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Put-call parity holds by construction in every regime, so it is checked
// across the whole valid domain including sig == 0 and T == 0.
func TestProperty_BlackScholesParity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("P - C = D(K - F) and dP = dC - 1", prop.ForAll(
		func(x0, K, r, q, sig, T float64) bool {
			res, err := BlackScholes(sc(x0), sc(K), sc(r), sc(q), sc(sig), sc(T))
			if err != nil {
				return false
			}
			c, _ := res.Call.Item()
			p, _ := res.Put.Item()
			dc, _ := res.CallDelta.Item()
			dp, _ := res.PutDelta.Item()

			disc := math.Exp(-r * T)
			fwd := x0 / disc * math.Exp(-q*T)
			tol := 1e-9 * math.Max(1, math.Max(x0, K))
			return approxEqual(p-c, disc*(K-fwd), tol) && dp == dc-1
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
		gen.Float64Range(-0.05, 0.15),
		gen.Float64Range(0, 0.1),
		gen.OneGenOf(gen.Const(0.0), gen.Float64Range(0.01, 1.5)),
		gen.OneGenOf(gen.Const(0.0), gen.Float64Range(0.001, 5)),
	))

	properties.Property("outputs are finite and within no-arbitrage bounds", prop.ForAll(
		func(x0, K, sig, T float64) bool {
			res, err := BlackScholes(sc(x0), sc(K), sc(0.02), sc(0.01), sc(sig), sc(T))
			if err != nil {
				return false
			}
			for _, a := range [][]float64{res.Call.Data(), res.Put.Data(), res.CallDelta.Data(), res.Gamma.Data(), res.Vega.Data()} {
				if math.IsNaN(a[0]) || math.IsInf(a[0], 0) {
					return false
				}
			}
			c, _ := res.Call.Item()
			dc, _ := res.CallDelta.Item()
			g, _ := res.Gamma.Item()
			return c >= -1e-9 && c <= x0+1e-9 && dc >= 0 && dc <= 1 && g >= 0
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
		gen.Float64Range(0, 1.5),
		gen.Float64Range(0, 5),
	))

	properties.TestingRun(t)
}

func TestProperty_BachelierParity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("P - C = x - K and dP = dC - 1", prop.ForAll(
		func(x, K, sig, tau float64) bool {
			res, err := Bachelier(sc(x), sc(K), sc(sig), sc(tau))
			if err != nil {
				return false
			}
			c, _ := res.Call.Item()
			p, _ := res.Put.Item()
			dc, _ := res.CallDelta.Item()
			dp, _ := res.PutDelta.Item()
			tol := 1e-9 * math.Max(1, math.Max(math.Abs(x), K))
			return approxEqual(p-c, x-K, tol) && dp == dc-1
		},
		gen.Float64Range(-50, 300),
		gen.Float64Range(1, 300),
		gen.OneGenOf(gen.Const(0.0), gen.Float64Range(0.1, 50)),
		gen.OneGenOf(gen.Const(0.0), gen.Float64Range(0.001, 5)),
	))

	properties.Property("theta = -sig^2/2 * gamma", prop.ForAll(
		func(x, K, sig, tau float64) bool {
			res, err := Bachelier(sc(x), sc(K), sc(sig), sc(tau))
			if err != nil {
				return false
			}
			g, _ := res.Gamma.Item()
			th, _ := res.Theta.Item()
			return approxEqual(th, -sig*sig*g/2, 1e-12*math.Max(1, sig*sig))
		},
		gen.Float64Range(50, 150),
		gen.Float64Range(50, 150),
		gen.Float64Range(0.1, 50),
		gen.Float64Range(0.001, 5),
	))

	properties.TestingRun(t)
}
