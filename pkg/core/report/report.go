package report

import (
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/appraisal"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/utils"
)

// Generator builds Markdown analysis reports. The clock is injectable
// so tests can pin the header timestamp; everything else in the report
// is a pure function of the appraisal result.
type Generator struct {
	clock clockwork.Clock
}

func NewGenerator() *Generator {
	return &Generator{clock: clockwork.NewRealClock()}
}

func NewGeneratorWithClock(clock clockwork.Clock) *Generator {
	return &Generator{clock: clock}
}

// Build renders one appraisal as a Markdown document: verdict, key
// metrics, acceptance checks, the year-by-year projection and the
// tornado ranking.
func (g *Generator) Build(result appraisal.Result) string {
	var b strings.Builder

	name := result.Project.Name
	if name == "" {
		name = "Untitled Project"
	}

	fmt.Fprintf(&b, "# Feasibility Analysis: %s\n\n", name)
	fmt.Fprintf(&b, "Generated: %s\n\n", g.clock.Now().UTC().Format("2006-01-02 15:04 UTC"))

	verdict := "NOT FEASIBLE"
	if result.Feasibility.Feasible {
		verdict = "FEASIBLE"
	}
	fmt.Fprintf(&b, "## Verdict: %s\n\n", verdict)

	fmt.Fprintf(&b, "Horizon %d years at a %.2f%% discount rate. Revenue growth %.2f%%/yr, cost growth %.2f%%/yr.\n\n",
		result.Project.ProjectYears,
		result.Project.DiscountRate,
		result.Project.OpexInGrowth,
		result.Project.OpexOutGrowth)

	b.WriteString("## Key Metrics\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| NPV | %.2f |\n", result.Metrics.NPV)
	fmt.Fprintf(&b, "| IRR | %.2f%% |\n", result.Metrics.IRR*100)
	fmt.Fprintf(&b, "| Payback Period | %.2f years |\n", result.Metrics.PaybackPeriod)
	fmt.Fprintf(&b, "| Total Investment | %.2f |\n", result.Metrics.TotalCapex)
	fmt.Fprintf(&b, "| Yearly Revenue | %.2f |\n", result.Metrics.YearlyRevenue)
	fmt.Fprintf(&b, "| Yearly Expenses | %.2f |\n\n", result.Metrics.YearlyExpenses)

	b.WriteString("## Acceptance Checks\n\n")
	b.WriteString("| Check | Actual | Threshold | Result |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, check := range result.Feasibility.Checks {
		status := "FAIL"
		if check.Passed {
			status = "PASS"
		}
		fmt.Fprintf(&b, "| %s | %.4f | %.4f | %s |\n", check.Name, check.Actual, check.Threshold, status)
	}
	b.WriteString("\n")

	b.WriteString("## Cash Flow Projection\n\n")
	b.WriteString("| Year | Cash Flow | Discount Factor | Discounted | Cumulative |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, row := range result.Table {
		fmt.Fprintf(&b, "| %d | %.2f | %.4f | %.2f | %.2f |\n",
			row.Year, row.CashFlow, row.DiscountFactor, row.DiscountedCashFlow, row.CumulativeCashFlow)
	}
	b.WriteString("\n")

	b.WriteString("## Sensitivity Ranking\n\n")
	b.WriteString("NPV Low is the unfavorable direction of each variable, NPV High the favorable one.\n\n")
	b.WriteString("| Variable | NPV Low | NPV High | Range |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, r := range result.Sensitivity {
		fmt.Fprintf(&b, "| %s | %.2f | %.2f | %.2f |\n", r.Variable, r.NPVLow, r.NPVHigh, r.Range)
	}
	b.WriteString("\n")

	return b.String()
}

// BuildHTML renders the Markdown report to HTML.
func (g *Generator) BuildHTML(result appraisal.Result) (string, error) {
	return utils.RenderHTML(g.Build(result))
}
