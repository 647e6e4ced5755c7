package calc

import (
	"math"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

const (
	irrInitialGuess  = 0.10
	irrMaxIterations = 100
	irrTolerance     = 1e-6
	irrRateMin       = -0.99
	irrRateMax       = 10.0
)

// NPV sums an already-discounted cash flow series.
//
// FORMULA: NPV = sum(discounted[i])
func NPV(discounted []float64) float64 {
	total := 0.0
	for _, v := range discounted {
		total += v
	}
	return total
}

// IRR finds the discount rate at which the series' net present value
// crosses zero, by Newton-Raphson.
//
// FORMULA: f(r)  = sum(cf[i] / (1+r)^i)
//          f'(r) = sum(-i * cf[i] / (1+r)^(i+1))
//
// Starts at 10% and runs at most 100 iterations, accepting
// |f(r)| < 1e-6 as converged. A near-flat derivative would blow up the
// Newton step, so the guess flips to the far end of the search range
// instead; every accepted step is clamped to [-0.99, 10]. The last
// guess comes back even without convergence, so callers must treat the
// value as a best-effort estimate. Fewer than two cash flows return 0.
//
// Known limitation: series with multiple sign changes can have several
// roots, and the flat-region escape does not pick among them. It can
// bounce between basins without settling.
func IRR(cashflows []float64) float64 {
	if len(cashflows) < 2 {
		return 0
	}

	rate := irrInitialGuess
	for iter := 0; iter < irrMaxIterations; iter++ {
		f := 0.0
		fPrime := 0.0
		for i, cf := range cashflows {
			f += cf / math.Pow(1+rate, float64(i))
			fPrime -= float64(i) * cf / math.Pow(1+rate, float64(i+1))
		}

		if math.Abs(f) < irrTolerance {
			return rate
		}

		if math.Abs(fPrime) < irrTolerance {
			// Flat region. Restart from the opposite end of the range.
			if rate > 0 {
				rate = -0.9
			} else {
				rate = 0.9
			}
			continue
		}

		rate -= f / fPrime
		if rate < irrRateMin {
			rate = irrRateMin
		}
		if rate > irrRateMax {
			rate = irrRateMax
		}
	}

	diag("irr", "no convergence after %d iterations, returning %.6f", irrMaxIterations, rate)
	return rate
}

// PaybackPeriod scans a cumulative discounted series for the break-even
// year and interpolates inside it.
//
// FORMULA: payback = (i-1) + |cumulative[i-1]| / (cumulative[i] - cumulative[i-1])
//
// where i is the first index with cumulative[i] >= 0. Break-even at
// year 0 returns 0. A zero interpolation denominator keeps scanning. A
// series that never recovers returns the full horizon, length-1.
func PaybackPeriod(cumulative []float64) float64 {
	if len(cumulative) == 0 {
		return 0
	}

	for i, cum := range cumulative {
		if cum < 0 {
			continue
		}
		if i == 0 {
			return 0
		}
		delta := cumulative[i] - cumulative[i-1]
		if delta == 0 {
			continue
		}
		return float64(i-1) + math.Abs(cumulative[i-1])/delta
	}
	return float64(len(cumulative) - 1)
}

// ComputeMetrics runs the full pipeline for one project snapshot:
// projection, discounting, then the three headline metrics. IRR works
// on the raw series, NPV and payback on the discounted one. This is the
// unit the sensitivity driver re-invokes per scenario.
func ComputeMetrics(data models.ProjectData) models.FinancialMetrics {
	cashflows := ProjectCashFlows(data)
	factors := DiscountFactors(data.ProjectYears, data.DiscountRate)
	discounted := DiscountSeries(cashflows, factors)
	cumulative := CumulativeSeries(discounted)

	return models.FinancialMetrics{
		NPV:            NPV(discounted),
		IRR:            IRR(cashflows),
		PaybackPeriod:  PaybackPeriod(cumulative),
		TotalCapex:     SumItemTotals(data.CapexItems),
		YearlyRevenue:  SumItemTotals(data.OpexCashIn),
		YearlyExpenses: SumItemTotals(data.OpexCashOut),
	}
}

// BuildCashFlowTable produces the per-year projection table the UI and
// exporters render, one row per year 0..N.
func BuildCashFlowTable(data models.ProjectData) []models.CashFlowRow {
	cashflows := ProjectCashFlows(data)
	factors := DiscountFactors(data.ProjectYears, data.DiscountRate)
	discounted := DiscountSeries(cashflows, factors)
	cumulative := CumulativeSeries(discounted)

	rows := make([]models.CashFlowRow, len(discounted))
	for i := range discounted {
		rows[i] = models.CashFlowRow{
			Year:               i,
			CashFlow:           cashflows[i],
			DiscountFactor:     factors[i],
			DiscountedCashFlow: discounted[i],
			CumulativeCashFlow: cumulative[i],
		}
	}
	return rows
}
