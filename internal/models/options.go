// Package models holds the result records emitted by the CLI.
package models

// OptionGreeks represents option Greeks.
type OptionGreeks struct {
	CallDelta float64  `json:"call_delta"`
	PutDelta  float64  `json:"put_delta"`
	Gamma     float64  `json:"gamma"`
	Theta     *float64 `json:"theta,omitempty"` // Bachelier only
	Vega      float64  `json:"vega"`
}

// OptionQuote is one closed-form pricing result.
type OptionQuote struct {
	Model    string       `json:"model"`
	Regime   string       `json:"regime"`
	Spot     float64      `json:"spot"`
	Strike   float64      `json:"strike"`
	Rate     float64      `json:"rate"`
	Dividend float64      `json:"dividend"`
	Vol      float64      `json:"vol"`
	Maturity float64      `json:"maturity"`
	Call     float64      `json:"call"`
	Put      float64      `json:"put"`
	Greeks   OptionGreeks `json:"greeks"`
}

// MonteCarloQuote compares a Monte Carlo estimate with its closed form.
type MonteCarloQuote struct {
	Paths      int     `json:"paths"`
	Seed       *uint64 `json:"seed,omitempty"`
	Call       float64 `json:"call"`
	CallStdErr float64 `json:"call_std_err"`
	Put        float64 `json:"put"`
	PutStdErr  float64 `json:"put_std_err"`
	ClosedCall float64 `json:"closed_form_call"`
	ClosedPut  float64 `json:"closed_form_put"`
	CallZScore float64 `json:"call_z_score"`
	PutZScore  float64 `json:"put_z_score"`
}

// PathPoint summarises simulated Brownian paths at one grid time.
type PathPoint struct {
	Time     float64 `json:"time"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

// PathSummary is the output of a path simulation run.
type PathSummary struct {
	Paths  int         `json:"paths"`
	Seed   *uint64     `json:"seed,omitempty"`
	Points []PathPoint `json:"points"`
}
