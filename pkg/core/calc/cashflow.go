package calc

import (
	"math"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// ProjectCashFlows builds the year-0..N net cash flow series for a
// project. Year 0 carries the full investment as a negative flow; each
// later year compounds the revenue and expense baselines independently.
//
// FORMULA: series[0] = -capex
//          series[y] = baseIn * (1 + gIn)^y - baseOut * (1 + gOut)^y
//
// The growth exponent is the year index itself, so year 1 already
// reflects one compounding step. A negative horizon degrades to the
// single-element zero series instead of failing the caller.
func ProjectCashFlows(data models.ProjectData) []float64 {
	if data.ProjectYears < 0 {
		diag("cashflow", "invalid horizon %d, returning zero series", data.ProjectYears)
		return []float64{0}
	}

	capex := SumItemTotals(data.CapexItems)
	baseIn := SumItemTotals(data.OpexCashIn)
	baseOut := SumItemTotals(data.OpexCashOut)
	growthIn := data.OpexInGrowth / 100
	growthOut := data.OpexOutGrowth / 100

	series := make([]float64, data.ProjectYears+1)
	series[0] = -capex
	for year := 1; year <= data.ProjectYears; year++ {
		inflow := baseIn * math.Pow(1+growthIn, float64(year))
		outflow := baseOut * math.Pow(1+growthOut, float64(year))
		series[year] = inflow - outflow
	}
	return series
}

// DiscountFactors produces the divisor series for present-value math.
//
// FORMULA: factors[0] = 1.0
//          factors[i] = (1 + rate/100)^i
//
// A negative horizon degrades to the single-element identity series.
func DiscountFactors(years int, ratePercent float64) []float64 {
	if years < 0 {
		diag("discount", "invalid horizon %d, returning identity factors", years)
		return []float64{1.0}
	}

	rate := ratePercent / 100
	factors := make([]float64, years+1)
	factors[0] = 1.0
	for i := 1; i <= years; i++ {
		factors[i] = math.Pow(1+rate, float64(i))
	}
	return factors
}

// DiscountSeries divides each cash flow by its discount factor. A zero
// factor yields 0 for that year rather than dividing. The result length
// is the shorter of the two inputs; in the normal pipeline both always
// match.
func DiscountSeries(cashflows, factors []float64) []float64 {
	n := len(cashflows)
	if len(factors) < n {
		n = len(factors)
	}

	discounted := make([]float64, n)
	for i := 0; i < n; i++ {
		if factors[i] == 0 {
			discounted[i] = 0
			continue
		}
		discounted[i] = cashflows[i] / factors[i]
	}
	return discounted
}

// CumulativeSeries computes the running sum of a discounted series.
func CumulativeSeries(discounted []float64) []float64 {
	cumulative := make([]float64, len(discounted))
	sum := 0.0
	for i, v := range discounted {
		sum += v
		cumulative[i] = sum
	}
	return cumulative
}
