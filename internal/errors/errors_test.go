package errors

import (
	"fmt"
	"testing"
)

func TestParameterErrorUnwrapsToSentinel(t *testing.T) {
	err := NewParameterError("sig", -0.2, "must be non-negative")

	if !Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter in chain, got %v", err)
	}
	want := "invalid parameter: sig (-0.2): must be non-negative"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestShapeErrorMessage(t *testing.T) {
	err := NewShapeError("cannot broadcast", []int{2, 3}, []int{4})

	if !Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch in chain")
	}
	want := "shape mismatch [2 3] [4]: cannot broadcast"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesChain(t *testing.T) {
	base := NewParameterError("K", 0.0, "must be positive")
	wrapped := Wrapf(base, "pricing batch %d", 3)

	var pe *ParameterError
	if !As(wrapped, &pe) {
		t.Fatalf("As failed on %v", wrapped)
	}
	if pe.Field != "K" {
		t.Errorf("Field = %q, want K", pe.Field)
	}
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if got := fmt.Sprint(Wrap(ErrConfigInvalid, "loading")); got != "loading: invalid configuration" {
		t.Errorf("Wrap message = %q", got)
	}
}
