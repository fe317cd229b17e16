package pricing

import (
	"math"

	qerrors "quantkit/internal/errors"
	"quantkit/internal/ndarray"
)

type domain int

const (
	anyFinite domain = iota
	positive
	nonNegative
)

type field struct {
	name  string
	value *ndarray.Array
	rule  domain
}

// validate checks every element of every field and reports the first violation.
func validate(fields ...field) error {
	for _, f := range fields {
		for _, v := range f.value.Data() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return qerrors.NewParameterError(f.name, v, "must be finite")
			}
			switch f.rule {
			case positive:
				if v <= 0 {
					return qerrors.NewParameterError(f.name, v, "must be positive")
				}
			case nonNegative:
				if v < 0 {
					return qerrors.NewParameterError(f.name, v, "must be non-negative")
				}
			}
		}
	}
	return nil
}
