package pricing

import "gonum.org/v1/gonum/stat/distuv"

// normPDF is the standard normal density.
func normPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}
