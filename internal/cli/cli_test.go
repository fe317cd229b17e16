package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	qerrors "quantkit/internal/errors"
	"quantkit/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestBlackScholesCommandJSON(t *testing.T) {
	out, err := run(t, "bs", "--json", "--spot", "100", "--strike", "100", "--rate", "0.05", "--vol", "0.2", "--maturity", "1")
	if err != nil {
		t.Fatalf("bs: %v", err)
	}

	var quotes []models.OptionQuote
	if err := json.Unmarshal([]byte(out), &quotes); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if len(quotes) != 1 {
		t.Fatalf("got %d quotes", len(quotes))
	}
	q := quotes[0]
	if math.Abs(q.Call-10.4506) > 1e-4 || math.Abs(q.Put-5.5735) > 1e-4 {
		t.Errorf("call/put = %v/%v", q.Call, q.Put)
	}
	if q.Regime != "positive_vol" || q.Greeks.Theta != nil {
		t.Errorf("regime = %q theta = %v", q.Regime, q.Greeks.Theta)
	}
}

func TestBlackScholesCommandBroadcastsLists(t *testing.T) {
	out, err := run(t, "bs", "--json", "--strike", "90,100,110", "--maturity", "0")
	if err != nil {
		t.Fatalf("bs: %v", err)
	}
	var quotes []models.OptionQuote
	if err := json.Unmarshal([]byte(out), &quotes); err != nil {
		t.Fatal(err)
	}
	if len(quotes) != 3 {
		t.Fatalf("got %d quotes, want 3", len(quotes))
	}
	if quotes[0].Call != 10 || quotes[2].Call != 0 || quotes[1].Regime != "zero_maturity" {
		t.Errorf("quotes = %+v", quotes)
	}

	if _, err := run(t, "bs", "--strike", "90,100", "--vol", "0.1,0.2,0.3"); !qerrors.Is(err, qerrors.ErrShapeMismatch) {
		t.Errorf("expected shape mismatch, got %v", err)
	}
}

func TestBlackScholesCommandStrict(t *testing.T) {
	_, err := run(t, "bs", "--vol", "-0.2", "--strict")
	if !qerrors.Is(err, qerrors.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}

	out, err := run(t, "bs", "--vol", "-0.2")
	if err != nil {
		t.Fatalf("permissive mode failed: %v", err)
	}
	if !strings.Contains(out, "NaN") || !strings.Contains(out, "undefined") {
		t.Errorf("table output = %q", out)
	}

	if _, err := run(t, "bs", "--json", "--vol", "-0.2"); err == nil || !strings.Contains(err.Error(), "undefined-regime") {
		t.Errorf("expected JSON encoding error for NaN quotes, got %v", err)
	}
}

func TestBachelierCommandTable(t *testing.T) {
	out, err := run(t, "bachelier", "--spot", "100", "--strike", "90", "--vol", "0", "--tau", "1")
	if err != nil {
		t.Fatalf("bachelier: %v", err)
	}
	for _, want := range []string{"Bachelier", "Theta", "10.0000", "degenerate"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate", "--json", "--steps", "4", "--horizon", "2", "--paths", "20000", "--seed", "11")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	var summary models.PathSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatal(err)
	}
	if len(summary.Points) != 5 || summary.Seed == nil || *summary.Seed != 11 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Points[0].Variance != 0 {
		t.Errorf("variance at t=0 is %v", summary.Points[0].Variance)
	}
	last := summary.Points[4]
	if math.Abs(last.Variance-2) > 0.15 {
		t.Errorf("variance at t=2 is %v", last.Variance)
	}

	again, err := run(t, "simulate", "--json", "--steps", "4", "--horizon", "2", "--paths", "20000", "--seed", "11")
	if err != nil {
		t.Fatal(err)
	}
	if again != out {
		t.Error("seeded simulation is not reproducible")
	}

	if _, err := run(t, "simulate", "--paths", "0"); !qerrors.Is(err, qerrors.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for zero paths, got %v", err)
	}
}

func TestMonteCarloCommand(t *testing.T) {
	out, err := run(t, "mc", "--json", "--rate", "0.05", "--paths", "100000", "--steps", "1", "--seed", "5")
	if err != nil {
		t.Fatalf("mc: %v", err)
	}
	var quote models.MonteCarloQuote
	if err := json.Unmarshal([]byte(out), &quote); err != nil {
		t.Fatal(err)
	}
	if math.Abs(quote.ClosedCall-10.4506) > 1e-4 {
		t.Errorf("closed form call = %v", quote.ClosedCall)
	}
	if math.Abs(quote.CallZScore) > 4 || math.Abs(quote.PutZScore) > 4 {
		t.Errorf("Monte Carlo too far from closed form: %+v", quote)
	}
}

func TestVersionAndConfig(t *testing.T) {
	out, err := run(t, "version")
	if err != nil || !strings.Contains(out, Version) {
		t.Errorf("version = %q, %v", out, err)
	}

	out, err = run(t, "config", "show", "--json")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, `"Paths": 100000`) {
		t.Errorf("config show = %q", out)
	}
}

func TestDebugFlagLogsToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"--config", t.TempDir(), "--debug", "bachelier", "--vol", "0"})
	if err := root.Execute(); err != nil {
		t.Fatalf("bachelier: %v", err)
	}
	logs := errOut.String()
	for _, want := range []string{"Pricing completed", "priced batch", "bachelier"} {
		if !strings.Contains(logs, want) {
			t.Errorf("debug log %q missing %q", logs, want)
		}
	}
	if strings.Contains(out.String(), "Pricing completed") {
		t.Error("logs leaked into stdout")
	}
}

func TestNonPositiveStepsRejected(t *testing.T) {
	for _, args := range [][]string{
		{"simulate", "--steps", "-2", "--paths", "10"},
		{"simulate", "--steps", "0", "--paths", "10"},
		{"mc", "--steps", "-5", "--paths", "10"},
	} {
		if _, err := run(t, args...); !qerrors.Is(err, qerrors.ErrInvalidParameter) {
			t.Errorf("%v: expected ErrInvalidParameter, got %v", args, err)
		}
	}
}
