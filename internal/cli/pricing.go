package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	qerrors "quantkit/internal/errors"
	"quantkit/internal/logging"
	"quantkit/internal/models"
	"quantkit/internal/ndarray"
	"quantkit/internal/pricing"
	"quantkit/pkg/utils"
)

// addPricingCommands adds the closed-form pricing commands.
func addPricingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newBlackScholesCmd(app))
	rootCmd.AddCommand(newBachelierCmd(app))
}

func newBlackScholesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bs",
		Aliases: []string{"black-scholes"},
		Short:   "Black-Scholes prices and greeks",
		Long: `Price European calls and puts under geometric Brownian motion with a
continuous rate and dividend yield. Outputs call, put, both deltas, gamma
and vega for every broadcast combination of inputs.`,
		Example: `  quantkit bs --spot 100 --strike 100 --rate 0.05 --vol 0.2 --maturity 1
  quantkit bs --spot 100 --strike 90,100,110 --vol 0.2 --maturity 0.5 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			logger := logging.WithOperation(logging.FromContext(cmd.Context()), "bs")

			in, err := arrayFlags(cmd, "spot", "strike", "rate", "dividend", "vol", "maturity")
			if err != nil {
				return err
			}

			start := time.Now()
			res, err := pricing.BlackScholes(in[0], in[1], in[2], in[3], in[4], in[5],
				pricingOptions(cmd, app)...)
			if err != nil {
				logger.Error().Err(err).Msg("Pricing failed")
				return fmt.Errorf("black-scholes: %w", err)
			}
			logging.LogPricing(logger, "black_scholes", res.Call.Size(), time.Since(start))

			b, _, err := ndarray.BroadcastArrays(in...)
			if err != nil {
				return err
			}
			quotes := make([]models.OptionQuote, res.Call.Size())
			for i := range quotes {
				x0, k, r, q := b[0].Data()[i], b[1].Data()[i], b[2].Data()[i], b[3].Data()[i]
				sig, t := b[4].Data()[i], b[5].Data()[i]
				quotes[i] = models.OptionQuote{
					Model:    "black_scholes",
					Regime:   pricing.ClassifyBlackScholes(sig, t).String(),
					Spot:     x0,
					Strike:   k,
					Rate:     r,
					Dividend: q,
					Vol:      sig,
					Maturity: t,
					Call:     res.Call.Data()[i],
					Put:      res.Put.Data()[i],
					Greeks: models.OptionGreeks{
						CallDelta: res.CallDelta.Data()[i],
						PutDelta:  res.PutDelta.Data()[i],
						Gamma:     res.Gamma.Data()[i],
						Vega:      res.Vega.Data()[i],
					},
				}
			}
			return displayQuotes(output, "Black-Scholes", quotes)
		},
	}

	cmd.Flags().Float64Slice("spot", []float64{100}, "spot price x0")
	cmd.Flags().Float64Slice("strike", []float64{100}, "strike K")
	cmd.Flags().Float64Slice("rate", []float64{0}, "continuous risk-free rate r")
	cmd.Flags().Float64Slice("dividend", []float64{0}, "continuous dividend yield")
	cmd.Flags().Float64Slice("vol", []float64{0.2}, "volatility")
	cmd.Flags().Float64Slice("maturity", []float64{1}, "maturity T in years")
	cmd.Flags().Bool("strict", false, "reject out-of-domain inputs (default from config)")

	return cmd
}

func newBachelierCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bachelier",
		Short: "Bachelier prices and greeks",
		Long: `Price European calls and puts under arithmetic Brownian motion with a
zero interest rate. The volatility is absolute (price units per sqrt(year)).
Outputs call, put, both deltas, gamma, theta and vega.`,
		Example: `  quantkit bachelier --spot 100 --strike 90 --vol 0 --tau 1
  quantkit bachelier --spot 95,100,105 --strike 100 --vol 20 --tau 0.25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			logger := logging.WithOperation(logging.FromContext(cmd.Context()), "bachelier")

			in, err := arrayFlags(cmd, "spot", "strike", "vol", "tau")
			if err != nil {
				return err
			}

			start := time.Now()
			res, err := pricing.Bachelier(in[0], in[1], in[2], in[3], pricingOptions(cmd, app)...)
			if err != nil {
				logger.Error().Err(err).Msg("Pricing failed")
				return fmt.Errorf("bachelier: %w", err)
			}
			logging.LogPricing(logger, "bachelier", res.Call.Size(), time.Since(start))

			b, _, err := ndarray.BroadcastArrays(in...)
			if err != nil {
				return err
			}
			quotes := make([]models.OptionQuote, res.Call.Size())
			for i := range quotes {
				sig, tau := b[2].Data()[i], b[3].Data()[i]
				theta := res.Theta.Data()[i]
				quotes[i] = models.OptionQuote{
					Model:    "bachelier",
					Regime:   pricing.ClassifyBachelier(sig, tau).String(),
					Spot:     b[0].Data()[i],
					Strike:   b[1].Data()[i],
					Vol:      sig,
					Maturity: tau,
					Call:     res.Call.Data()[i],
					Put:      res.Put.Data()[i],
					Greeks: models.OptionGreeks{
						CallDelta: res.CallDelta.Data()[i],
						PutDelta:  res.PutDelta.Data()[i],
						Gamma:     res.Gamma.Data()[i],
						Theta:     &theta,
						Vega:      res.Vega.Data()[i],
					},
				}
			}
			return displayQuotes(output, "Bachelier", quotes)
		},
	}

	cmd.Flags().Float64Slice("spot", []float64{100}, "spot price x")
	cmd.Flags().Float64Slice("strike", []float64{100}, "strike K")
	cmd.Flags().Float64Slice("vol", []float64{20}, "absolute volatility")
	cmd.Flags().Float64Slice("tau", []float64{1}, "time to maturity in years")
	cmd.Flags().Bool("strict", false, "reject out-of-domain inputs (default from config)")

	return cmd
}

// arrayFlags reads float slice flags as arrays: one value becomes a scalar,
// several become a rank-1 array.
func arrayFlags(cmd *cobra.Command, names ...string) ([]*ndarray.Array, error) {
	out := make([]*ndarray.Array, len(names))
	for i, name := range names {
		vals, err := cmd.Flags().GetFloat64Slice(name)
		if err != nil {
			return nil, qerrors.Wrapf(err, "reading --%s", name)
		}
		switch len(vals) {
		case 0:
			return nil, fmt.Errorf("--%s needs at least one value", name)
		case 1:
			out[i] = ndarray.Scalar(vals[0])
		default:
			out[i] = ndarray.FromSlice(vals)
		}
	}
	return out, nil
}

func pricingOptions(cmd *cobra.Command, app *App) []pricing.Option {
	opts := []pricing.Option{pricing.WithLogger(app.Logger)}
	strict := app.Config.Pricing.Strict
	if cmd.Flags().Changed("strict") {
		strict, _ = cmd.Flags().GetBool("strict")
	}
	if strict {
		opts = append(opts, pricing.WithStrict())
	}
	return opts
}

func displayQuotes(output *Output, title string, quotes []models.OptionQuote) error {
	if output.IsJSON() {
		for _, q := range quotes {
			if q.Regime == pricing.RegimeUndefined.String() {
				return fmt.Errorf("%s: undefined-regime results are NaN and have no JSON encoding (vol %g, maturity %g)",
					title, q.Vol, q.Maturity)
			}
		}
		return output.JSON(quotes)
	}

	withTheta := len(quotes) > 0 && quotes[0].Greeks.Theta != nil
	headers := []string{"Spot", "Strike", "Vol", "T", "Call", "Put", "dC", "dP", "Gamma"}
	if withTheta {
		headers = append(headers, "Theta")
	}
	headers = append(headers, "Vega", "Regime")

	output.Bold("%s", title)
	table := NewTable(output, headers...)
	for _, q := range quotes {
		row := []string{
			utils.FormatNumber(q.Spot, 2),
			utils.FormatNumber(q.Strike, 2),
			utils.FormatNumber(q.Vol, 4),
			utils.FormatNumber(q.Maturity, 4),
			utils.FormatPrice(q.Call),
			utils.FormatPrice(q.Put),
			utils.FormatGreek(q.Greeks.CallDelta),
			utils.FormatGreek(q.Greeks.PutDelta),
			utils.FormatGreek(q.Greeks.Gamma),
		}
		if withTheta {
			row = append(row, utils.FormatGreek(*q.Greeks.Theta))
		}
		row = append(row, utils.FormatGreek(q.Greeks.Vega), q.Regime)
		table.AddRow(row...)
	}
	table.Render()
	return nil
}
