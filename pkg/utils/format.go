// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatNumber formats a value with the given number of decimals, rendering
// NaN and infinities as fixed words so table columns stay aligned.
func FormatNumber(value float64, decimals int) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "+Inf"
	case math.IsInf(value, -1):
		return "-Inf"
	}
	return fmt.Sprintf("%.*f", decimals, value)
}

// FormatPrice formats an option price with 4 decimals.
func FormatPrice(value float64) string {
	return FormatNumber(value, 4)
}

// FormatGreek formats a sensitivity with sign and 6 decimals.
func FormatGreek(value float64) string {
	s := FormatNumber(value, 6)
	if value > 0 && !math.IsInf(value, 1) {
		return "+" + s
	}
	return s
}


// FormatCount formats an integer with thousands separators.
func FormatCount(n int) string {
	s := fmt.Sprintf("%d", n)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}
