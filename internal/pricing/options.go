// Package pricing implements closed-form vanilla option prices and greeks
// under the Black-Scholes and Bachelier models.
//
// Every input is an *ndarray.Array and all inputs broadcast together under
// NumPy rules; every output has the common broadcast shape. Regimes are
// selected per element. By default inputs outside the documented domains are
// not checked and NaN or Inf propagate through the arithmetic. WithStrict
// turns such inputs into a *errors.ParameterError instead.
package pricing

import "github.com/rs/zerolog"

type settings struct {
	strict bool
	logger zerolog.Logger
}

// Option configures a pricing call.
type Option func(*settings)

// WithStrict enables domain validation of every input element before pricing.
func WithStrict() Option {
	return func(s *settings) { s.strict = true }
}

// WithLogger attaches a logger that receives per-call debug summaries.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

func newSettings(opts []Option) settings {
	s := settings{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
