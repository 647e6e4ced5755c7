package sensitivity

import (
	"sort"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/calc"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// DefaultVariationPercent is the swing applied when the caller does not
// pick one. The UI offers 5 to 50; the engine accepts any positive
// value.
const DefaultVariationPercent = 20.0

// Lever display names, in baseline evaluation order.
const (
	VariableRevenue           = "Revenue"
	VariableOperatingCosts    = "Operating Costs"
	VariableInitialInvestment = "Initial Investment"
	VariableDiscountRate      = "Discount Rate"
)

// downRateFloor keeps the scaled-down discount rate positive even for
// variations at or above 90%.
const downRateFloor = 0.1

type lever struct {
	name        string
	favorable   func(models.ProjectData) models.ProjectData
	unfavorable func(models.ProjectData) models.ProjectData
}

// Run perturbs one input lever at a time by the variation percentage in
// both directions and recomputes the full metric pipeline per scenario,
// eight evaluations on top of the implicit baseline. Every scenario
// works on a deep copy; the input snapshot is never modified.
//
// NPVLow carries the unfavorable-direction NPV and NPVHigh the
// favorable one, so for the three cost-like levers the scaled-up input
// lands in NPVLow. Results come back sorted descending by Range; ties
// keep the lever order above (stable sort).
func Run(data models.ProjectData, variationPercent float64) []models.SensitivityResult {
	v := variationPercent / 100

	levers := []lever{
		{
			name: VariableRevenue,
			favorable: func(p models.ProjectData) models.ProjectData {
				scalePrices(p.OpexCashIn, 1+v)
				return p
			},
			unfavorable: func(p models.ProjectData) models.ProjectData {
				scalePrices(p.OpexCashIn, 1-v)
				return p
			},
		},
		{
			name: VariableOperatingCosts,
			favorable: func(p models.ProjectData) models.ProjectData {
				scalePrices(p.OpexCashOut, 1-v)
				return p
			},
			unfavorable: func(p models.ProjectData) models.ProjectData {
				scalePrices(p.OpexCashOut, 1+v)
				return p
			},
		},
		{
			name: VariableInitialInvestment,
			favorable: func(p models.ProjectData) models.ProjectData {
				scalePrices(p.CapexItems, 1-v)
				return p
			},
			unfavorable: func(p models.ProjectData) models.ProjectData {
				scalePrices(p.CapexItems, 1+v)
				return p
			},
		},
		{
			name: VariableDiscountRate,
			favorable: func(p models.ProjectData) models.ProjectData {
				p.DiscountRate *= downScale(v)
				return p
			},
			unfavorable: func(p models.ProjectData) models.ProjectData {
				p.DiscountRate *= 1 + v
				return p
			},
		},
	}

	results := make([]models.SensitivityResult, 0, len(levers))
	for _, lv := range levers {
		npvHigh := calc.ComputeMetrics(lv.favorable(data.Clone())).NPV
		npvLow := calc.ComputeMetrics(lv.unfavorable(data.Clone())).NPV
		results = append(results, models.SensitivityResult{
			Variable: lv.name,
			NPVLow:   npvLow,
			NPVHigh:  npvHigh,
			Range:    npvHigh - npvLow,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Range > results[j].Range
	})
	return results
}

func scalePrices(items []models.LineItem, factor float64) {
	for i := range items {
		items[i].Price *= factor
	}
}

func downScale(v float64) float64 {
	if 1-v < downRateFloor {
		return downRateFloor
	}
	return 1 - v
}
