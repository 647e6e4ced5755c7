package main

import (
	"fmt"
	"math"
	"os"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/calc"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/sensitivity"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// Standalone sanity harness for the numeric core. Runs hand-worked
// vectors through the engine without the test framework, for quick
// verification after formula changes.

type check struct {
	name   string
	pass   bool
	detail string
}

func main() {
	checks := []check{
		checkItemTotals(),
		checkCompoundGrowth(),
		checkDiscountFactors(),
		checkNPV(),
		checkIRR(),
		checkPayback(),
		checkMetricsBundle(),
		checkSensitivityDirection(),
	}

	fmt.Println("====================================================================================================")
	fmt.Println("                            CAPITAL BUDGETING ENGINE - NUMERIC SELF-CHECK")
	fmt.Println("====================================================================================================")
	fmt.Printf("%-45s | %-4s | %s\n", "CHECK", "", "DETAIL")
	fmt.Println("----------------------------------------------------------------------------------------------------")

	failures := 0
	for _, c := range checks {
		status := "PASS"
		if !c.pass {
			status = "FAIL"
			failures++
		}
		fmt.Printf("%-45s | %-4s | %s\n", c.name, status, c.detail)
	}

	fmt.Println("====================================================================================================")
	if failures > 0 {
		fmt.Printf("%d of %d checks failed\n", failures, len(checks))
		os.Exit(1)
	}
	fmt.Printf("All %d checks passed\n", len(checks))
}

func approx(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func checkItemTotals() check {
	items := []models.LineItem{
		{Name: "Machines", Volume: 10, Price: 5000},
		{Name: "Land", Volume: 2, Price: 100000},
		{Name: "Fit-out", Volume: 4, Price: 28000},
	}
	got := calc.SumItemTotals(items)
	return check{
		name:   "Line item aggregation",
		pass:   got == 362000,
		detail: fmt.Sprintf("got %.2f, want 362000.00", got),
	}
}

func checkCompoundGrowth() check {
	data := models.ProjectData{
		OpexCashIn:    []models.LineItem{{Volume: 1, Price: 100}},
		OpexCashOut:   []models.LineItem{{Volume: 1, Price: 40}},
		ProjectYears:  2,
		OpexInGrowth:  10,
		OpexOutGrowth: -5,
	}
	series := calc.ProjectCashFlows(data)
	// Year 2: 100*1.1^2 - 40*0.95^2 = 121 - 36.1 = 84.9
	got := series[2]
	return check{
		name:   "Compound growth projection",
		pass:   approx(got, 84.9, 1e-9),
		detail: fmt.Sprintf("year 2 net %.4f, want 84.9000", got),
	}
}

func checkDiscountFactors() check {
	factors := calc.DiscountFactors(3, 10)
	want := []float64{1, 1.1, 1.21, 1.331}
	for i := range want {
		if !approx(factors[i], want[i], 1e-9) {
			return check{
				name:   "Discount factors",
				pass:   false,
				detail: fmt.Sprintf("factor[%d] = %.6f, want %.6f", i, factors[i], want[i]),
			}
		}
	}
	return check{name: "Discount factors", pass: true, detail: "10% over 3 years"}
}

func checkNPV() check {
	cashflows := []float64{-1000, 600, 600}
	factors := calc.DiscountFactors(2, 10)
	got := calc.NPV(calc.DiscountSeries(cashflows, factors))
	// -1000 + 600/1.1 + 600/1.21 = 41.322314...
	want := -1000 + 600/1.1 + 600/1.21
	return check{
		name:   "NPV of discounted series",
		pass:   approx(got, want, 1e-9),
		detail: fmt.Sprintf("got %.6f, want %.6f", got, want),
	}
}

func checkIRR() check {
	got := calc.IRR([]float64{-1000, 1100})
	return check{
		name:   "IRR two-point root",
		pass:   approx(got, 0.10, 1e-6),
		detail: fmt.Sprintf("got %.6f, want 0.100000", got),
	}
}

func checkPayback() check {
	got := calc.PaybackPeriod([]float64{-100, -40, 20, 80})
	want := 1 + 40.0/60.0
	return check{
		name:   "Payback interpolation",
		pass:   approx(got, want, 1e-9),
		detail: fmt.Sprintf("got %.6f, want %.6f", got, want),
	}
}

func checkMetricsBundle() check {
	data := models.ProjectData{
		Name:         "Self-check",
		CapexItems:   []models.LineItem{{Volume: 1, Price: 100000}},
		OpexCashIn:   []models.LineItem{{Volume: 1, Price: 60000}},
		OpexCashOut:  []models.LineItem{{Volume: 1, Price: 10000}},
		ProjectYears: 3,
		DiscountRate: 10,
	}
	metrics := calc.ComputeMetrics(data)
	want := -100000 + 50000/1.1 + 50000/1.21 + 50000/1.331
	if !approx(metrics.NPV, want, 1e-6) {
		return check{
			name:   "Metrics bundle",
			pass:   false,
			detail: fmt.Sprintf("NPV %.4f, want %.4f", metrics.NPV, want),
		}
	}
	if metrics.TotalCapex != 100000 || metrics.YearlyRevenue != 60000 || metrics.YearlyExpenses != 10000 {
		return check{
			name:   "Metrics bundle",
			pass:   false,
			detail: fmt.Sprintf("totals %.0f/%.0f/%.0f, want 100000/60000/10000", metrics.TotalCapex, metrics.YearlyRevenue, metrics.YearlyExpenses),
		}
	}
	return check{name: "Metrics bundle", pass: true, detail: fmt.Sprintf("NPV %.2f", metrics.NPV)}
}

func checkSensitivityDirection() check {
	data := models.ProjectData{
		CapexItems:   []models.LineItem{{Volume: 1, Price: 100000}},
		OpexCashIn:   []models.LineItem{{Volume: 1, Price: 60000}},
		OpexCashOut:  []models.LineItem{{Volume: 1, Price: 10000}},
		ProjectYears: 3,
		DiscountRate: 10,
	}
	results := sensitivity.Run(data, 20)
	if len(results) != 4 {
		return check{
			name:   "Sensitivity direction and order",
			pass:   false,
			detail: fmt.Sprintf("%d levers, want 4", len(results)),
		}
	}
	for i, r := range results {
		if r.NPVLow > r.NPVHigh {
			return check{
				name:   "Sensitivity direction and order",
				pass:   false,
				detail: fmt.Sprintf("%s: low %.2f above high %.2f", r.Variable, r.NPVLow, r.NPVHigh),
			}
		}
		if i > 0 && results[i-1].Range < r.Range {
			return check{
				name:   "Sensitivity direction and order",
				pass:   false,
				detail: fmt.Sprintf("ranking not descending at %s", r.Variable),
			}
		}
	}
	return check{name: "Sensitivity direction and order", pass: true, detail: fmt.Sprintf("top lever %s", results[0].Variable)}
}
