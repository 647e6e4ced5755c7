package appraisal

import (
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/calc"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/feasibility"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/sensitivity"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// Result bundles everything computed for one project snapshot: the
// headline metrics, the year-by-year table, the tornado ranking and the
// verdict. Exporters, the report builder and the API all consume this
// shape.
type Result struct {
	Project     models.ProjectData         `json:"project"`
	Metrics     models.FinancialMetrics    `json:"metrics"`
	Table       []models.CashFlowRow       `json:"cash_flow_table"`
	Sensitivity []models.SensitivityResult `json:"sensitivity"`
	Feasibility feasibility.Summary        `json:"feasibility"`
}

// Options tunes a single appraisal run.
type Options struct {
	// VariationPercent is the sensitivity swing. Zero or negative
	// selects the default.
	VariationPercent float64
}

// Appraise runs the full pipeline once: metrics, projection table,
// sensitivity ranking and the feasibility verdict. Pure and
// deterministic for a given snapshot.
func Appraise(data models.ProjectData, opts Options) Result {
	variation := opts.VariationPercent
	if variation <= 0 {
		variation = sensitivity.DefaultVariationPercent
	}

	metrics := calc.ComputeMetrics(data)

	return Result{
		Project:     data,
		Metrics:     metrics,
		Table:       calc.BuildCashFlowTable(data),
		Sensitivity: sensitivity.Run(data, variation),
		Feasibility: feasibility.Evaluate(data, metrics),
	}
}
