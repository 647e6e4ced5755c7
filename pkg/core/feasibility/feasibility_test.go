package feasibility

import (
	"testing"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/calc"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

func TestEvaluateFeasibleProject(t *testing.T) {
	data := models.ProjectData{
		CapexItems:   []models.LineItem{{Name: "Line", Volume: 1, Price: 100000}},
		OpexCashIn:   []models.LineItem{{Name: "Sales", Volume: 1, Price: 60000}},
		OpexCashOut:  []models.LineItem{{Name: "Operations", Volume: 1, Price: 10000}},
		ProjectYears: 3,
		DiscountRate: 10,
	}

	summary := Evaluate(data, calc.ComputeMetrics(data))
	if !summary.Feasible {
		t.Errorf("profitable project marked infeasible: %+v", summary.Checks)
	}
	if len(summary.Checks) != 3 {
		t.Fatalf("check count = %d, want 3", len(summary.Checks))
	}
	for _, c := range summary.Checks {
		if !c.Passed {
			t.Errorf("check %q failed: actual %v threshold %v", c.Name, c.Actual, c.Threshold)
		}
	}
}

func TestEvaluateInfeasibleProject(t *testing.T) {
	data := models.ProjectData{
		CapexItems:   []models.LineItem{{Name: "Plant", Volume: 1, Price: 1000000}},
		OpexCashIn:   []models.LineItem{{Name: "Sales", Volume: 1, Price: 500000}},
		OpexCashOut:  []models.LineItem{{Name: "Operations", Volume: 1, Price: 200000}},
		ProjectYears: 3,
		DiscountRate: 10,
	}

	summary := Evaluate(data, calc.ComputeMetrics(data))
	if summary.Feasible {
		t.Error("loss-making project marked feasible")
	}
	for _, c := range summary.Checks {
		if c.Passed {
			t.Errorf("check %q unexpectedly passed", c.Name)
		}
	}
}

func TestEvaluateThresholdsAreStrict(t *testing.T) {
	// Metrics sitting exactly on every threshold must not pass
	data := models.ProjectData{ProjectYears: 4, DiscountRate: 12}
	metrics := models.FinancialMetrics{
		NPV:           0,
		IRR:           0.12,
		PaybackPeriod: 4,
	}

	summary := Evaluate(data, metrics)
	if summary.Feasible {
		t.Error("boundary metrics marked feasible")
	}
	for _, c := range summary.Checks {
		if c.Passed {
			t.Errorf("boundary check %q passed", c.Name)
		}
	}
}
