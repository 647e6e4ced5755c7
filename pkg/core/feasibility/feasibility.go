package feasibility

import (
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// Check is one acceptance-criterion row in the verdict table.
type Check struct {
	Name      string  `json:"name"`
	Actual    float64 `json:"actual"`
	Threshold float64 `json:"threshold"`
	Passed    bool    `json:"passed"`
}

// Summary is the overall verdict for one analysis. Feasible only when
// every check passes.
type Summary struct {
	Feasible bool    `json:"feasible"`
	Checks   []Check `json:"checks"`
}

// Evaluate applies the standard acceptance criteria to the computed
// metrics of a project snapshot.
func Evaluate(data models.ProjectData, metrics models.FinancialMetrics) Summary {
	checks := []Check{}

	// 1. The project must create value at the chosen discount rate
	checks = append(checks, Check{
		Name:      "NPV positive",
		Actual:    metrics.NPV,
		Threshold: 0,
		Passed:    metrics.NPV > 0,
	})

	// 2. The internal rate of return must beat the MARR
	marr := data.DiscountRate / 100
	checks = append(checks, Check{
		Name:      "IRR above MARR",
		Actual:    metrics.IRR,
		Threshold: marr,
		Passed:    metrics.IRR > marr,
	})

	// 3. The investment must be recovered before the horizon ends
	horizon := float64(data.ProjectYears)
	checks = append(checks, Check{
		Name:      "Payback inside horizon",
		Actual:    metrics.PaybackPeriod,
		Threshold: horizon,
		Passed:    metrics.PaybackPeriod < horizon,
	})

	feasible := true
	for _, c := range checks {
		if !c.Passed {
			feasible = false
			break
		}
	}

	return Summary{Feasible: feasible, Checks: checks}
}
