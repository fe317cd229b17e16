package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"quantkit/internal/logging"
	"quantkit/internal/models"
	"quantkit/internal/ndarray"
	"quantkit/internal/pricing"
	"quantkit/internal/simulation"
	"quantkit/pkg/utils"
)

// addSimulationCommands adds path simulation and Monte Carlo commands.
func addSimulationCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newSimulateCmd(app))
	rootCmd.AddCommand(newMonteCarloCmd(app))
}

// simulationParams merges flags over the [simulation] config section.
type simulationParams struct {
	paths   int
	steps   int
	horizon float64
	seed    *uint64
}

func readSimulationParams(cmd *cobra.Command, app *App) simulationParams {
	cfg := app.Config.Simulation
	p := simulationParams{
		paths:   cfg.Paths,
		steps:   cfg.Steps,
		horizon: cfg.Horizon,
		seed:    cfg.SeedPtr(),
	}
	if cmd.Flags().Changed("paths") {
		p.paths, _ = cmd.Flags().GetInt("paths")
	}
	if cmd.Flags().Changed("steps") {
		p.steps, _ = cmd.Flags().GetInt("steps")
	}
	if f := cmd.Flags().Lookup("horizon"); f != nil && f.Changed {
		p.horizon, _ = cmd.Flags().GetFloat64("horizon")
	}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		p.seed = &seed
	}
	return p
}

func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().Int("paths", 0, "number of simulated paths (default from config)")
	cmd.Flags().Int("steps", 0, "number of time steps (default from config)")
	cmd.Flags().Uint64("seed", 0, "random seed for reproducible output (default from config)")
}

func newSimulateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate Brownian paths and summarise them",
		Long: `Simulate Brownian motion on a uniform grid over [0, horizon] and print the
sample mean and variance at every grid time. The variance should track the
elapsed time.`,
		Example: `  quantkit simulate --steps 10 --horizon 10 --paths 100000 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			logger := logging.WithOperation(logging.FromContext(cmd.Context()), "simulate")
			p := readSimulationParams(cmd, app)

			grid := simulation.UniformGrid(p.horizon, p.steps)
			if err := simulation.ValidateGrid(grid, p.paths); err != nil {
				return fmt.Errorf("simulate: %w", err)
			}

			start := time.Now()
			w, err := simulation.BrownianPaths(grid, p.paths, simulation.NewRand(p.seed))
			if err != nil {
				return fmt.Errorf("simulate: %w", err)
			}
			logging.LogSimulation(logger, p.steps, p.paths, p.seed != nil, time.Since(start))

			mean, variance := simulation.RowStats(w)
			summary := models.PathSummary{Paths: p.paths, Seed: p.seed}
			for i, t := range grid {
				summary.Points = append(summary.Points, models.PathPoint{
					Time:     t,
					Mean:     mean[i],
					Variance: variance[i],
				})
			}

			if output.IsJSON() {
				return output.JSON(summary)
			}
			output.Bold("Brownian paths: %s", utils.FormatCount(p.paths))
			table := NewTable(output, "t", "Mean", "Variance")
			for _, pt := range summary.Points {
				table.AddRow(
					utils.FormatNumber(pt.Time, 4),
					utils.FormatGreek(pt.Mean),
					utils.FormatNumber(pt.Variance, 6),
				)
			}
			table.Render()
			return nil
		},
	}

	addSimulationFlags(cmd)
	cmd.Flags().Float64("horizon", 0, "simulation horizon (default from config)")
	return cmd
}

func newMonteCarloCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mc",
		Short: "Monte Carlo vanilla prices against the Black-Scholes closed form",
		Long: `Simulate geometric Brownian motion under the risk-neutral drift r - dividend,
price the call and put payoffs at maturity by Monte Carlo and compare them
with the Black-Scholes closed form.`,
		Example: `  quantkit mc --spot 100 --strike 100 --rate 0.05 --vol 0.2 --maturity 1 --paths 200000 --seed 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			logger := logging.WithOperation(logging.FromContext(cmd.Context()), "mc")
			p := readSimulationParams(cmd, app)

			x0, _ := cmd.Flags().GetFloat64("spot")
			K, _ := cmd.Flags().GetFloat64("strike")
			r, _ := cmd.Flags().GetFloat64("rate")
			q, _ := cmd.Flags().GetFloat64("dividend")
			sig, _ := cmd.Flags().GetFloat64("vol")
			T, _ := cmd.Flags().GetFloat64("maturity")

			closed, err := pricing.BlackScholes(ndarray.Scalar(x0), ndarray.Scalar(K), ndarray.Scalar(r),
				ndarray.Scalar(q), ndarray.Scalar(sig), ndarray.Scalar(T), pricingOptions(cmd, app)...)
			if err != nil {
				return fmt.Errorf("mc: %w", err)
			}

			grid := simulation.UniformGrid(T, p.steps)
			if err := simulation.ValidateGrid(grid, p.paths); err != nil {
				return fmt.Errorf("mc: %w", err)
			}

			start := time.Now()
			w, err := simulation.BrownianPaths(grid, p.paths, simulation.NewRand(p.seed))
			if err != nil {
				return fmt.Errorf("mc: %w", err)
			}
			logging.LogSimulation(logger, p.steps, p.paths, p.seed != nil, time.Since(start))

			xT := simulation.TerminalRow(simulation.GeometricPaths(w, grid, x0, r-q, sig))
			quote, err := monteCarloQuote(xT, K, r, T)
			if err != nil {
				return fmt.Errorf("mc: %w", err)
			}
			quote.Paths = p.paths
			quote.Seed = p.seed
			quote.ClosedCall, _ = closed.Call.Item()
			quote.ClosedPut, _ = closed.Put.Item()
			quote.CallZScore = zScore(quote.Call, quote.ClosedCall, quote.CallStdErr)
			quote.PutZScore = zScore(quote.Put, quote.ClosedPut, quote.PutStdErr)

			logger.Debug().
				Float64("call", quote.Call).
				Float64("call_std_err", quote.CallStdErr).
				Float64("closed_form_call", quote.ClosedCall).
				Msg("Monte Carlo estimate")

			if output.IsJSON() {
				return output.JSON(quote)
			}
			output.Bold("Monte Carlo (%s paths)", utils.FormatCount(p.paths))
			table := NewTable(output, "", "MC", "Std err", "Closed form", "z")
			table.AddRow("Call", utils.FormatPrice(quote.Call), utils.FormatPrice(quote.CallStdErr),
				utils.FormatPrice(quote.ClosedCall), utils.FormatNumber(quote.CallZScore, 2))
			table.AddRow("Put", utils.FormatPrice(quote.Put), utils.FormatPrice(quote.PutStdErr),
				utils.FormatPrice(quote.ClosedPut), utils.FormatNumber(quote.PutZScore, 2))
			table.Render()
			return nil
		},
	}

	addSimulationFlags(cmd)
	cmd.Flags().Float64("spot", 100, "spot price x0")
	cmd.Flags().Float64("strike", 100, "strike K")
	cmd.Flags().Float64("rate", 0, "continuous risk-free rate r")
	cmd.Flags().Float64("dividend", 0, "continuous dividend yield")
	cmd.Flags().Float64("vol", 0.2, "volatility")
	cmd.Flags().Float64("maturity", 1, "maturity T in years")
	cmd.Flags().Bool("strict", false, "reject out-of-domain inputs (default from config)")
	return cmd
}

// monteCarloQuote prices call and put payoffs on terminal values xT.
func monteCarloQuote(xT *ndarray.Array, K, r, T float64) (models.MonteCarloQuote, error) {
	var quote models.MonteCarloQuote
	strike := ndarray.Scalar(K)

	callPay, err := simulation.CallPayoff(xT, strike)
	if err != nil {
		return quote, err
	}
	putPay, err := simulation.PutPayoff(xT, strike)
	if err != nil {
		return quote, err
	}

	for _, est := range []struct {
		payoff *ndarray.Array
		value  *float64
		stdErr *float64
	}{
		{callPay, &quote.Call, &quote.CallStdErr},
		{putPay, &quote.Put, &quote.PutStdErr},
	} {
		mean, err := simulation.MonteCarlo(est.payoff, T, r)
		if err != nil {
			return quote, err
		}
		se, err := simulation.MonteCarloStdErr(est.payoff, T, r)
		if err != nil {
			return quote, err
		}
		*est.value, _ = mean.Item()
		*est.stdErr, _ = se.Item()
	}
	return quote, nil
}

// zScore is 0 when the standard error vanishes (a payoff constant across
// paths) so the quote stays JSON-encodable.
func zScore(estimate, reference, stdErr float64) float64 {
	if stdErr == 0 || math.IsNaN(stdErr) {
		return 0
	}
	return (estimate - reference) / stdErr
}
