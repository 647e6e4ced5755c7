package models

// LineItem is a single budget row. Its total cost is Volume * Price.
// Whether that total counts as an inflow or an outflow is decided by
// the collection it sits in, not stored on the item.
type LineItem struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Volume float64 `json:"volume"`
	Unit   string  `json:"unit"` // display only, never used in math
	Price  float64 `json:"price"`
}

// ProjectData is the complete input snapshot for one feasibility
// analysis. All rates are percentages (12 means 12%). ProjectYears is
// the horizon N; every derived series runs year 0..N.
type ProjectData struct {
	Name          string     `json:"name"`
	CapexItems    []LineItem `json:"capex_items"`     // one-time investment, charged at year 0
	OpexCashIn    []LineItem `json:"opex_cash_in"`    // recurring revenue baseline
	OpexCashOut   []LineItem `json:"opex_cash_out"`   // recurring operating cost baseline
	ProjectYears  int        `json:"project_years"`   // horizon N, minimum 1 in the UI
	DiscountRate  float64    `json:"discount_rate"`   // percent
	OpexInGrowth  float64    `json:"opex_in_growth"`  // percent per year, may be negative
	OpexOutGrowth float64    `json:"opex_out_growth"` // percent per year, may be negative
}

// Clone returns a deep copy including all three item collections.
// Scenario runs mutate the copy and must never touch the original.
func (p ProjectData) Clone() ProjectData {
	out := p
	out.CapexItems = append([]LineItem(nil), p.CapexItems...)
	out.OpexCashIn = append([]LineItem(nil), p.OpexCashIn...)
	out.OpexCashOut = append([]LineItem(nil), p.OpexCashOut...)
	return out
}

// FinancialMetrics is the derived scalar summary for one ProjectData
// snapshot. It is recomputed on demand and never cached by the engine.
type FinancialMetrics struct {
	NPV            float64 `json:"npv"`
	IRR            float64 `json:"irr"`             // decimal fraction, 0.10 means 10%
	PaybackPeriod  float64 `json:"payback_period"`  // years, fractional
	TotalCapex     float64 `json:"total_capex"`
	YearlyRevenue  float64 `json:"yearly_revenue"`  // year-1 baseline before growth
	YearlyExpenses float64 `json:"yearly_expenses"` // year-1 baseline before growth
}

// CashFlowRow is one year of the projection table.
type CashFlowRow struct {
	Year               int     `json:"year"`
	CashFlow           float64 `json:"cash_flow"`
	DiscountFactor     float64 `json:"discount_factor"`
	DiscountedCashFlow float64 `json:"discounted_cash_flow"`
	CumulativeCashFlow float64 `json:"cumulative_cash_flow"`
}

// SensitivityResult ranks one input lever by its NPV swing.
//
// NPVLow always holds the NPV of the economically unfavorable direction
// and NPVHigh the favorable one. For cost-like levers (operating costs,
// investment, discount rate) that means the scaled-UP input lands in
// NPVLow. The fields describe economic direction, not raw input
// direction.
type SensitivityResult struct {
	Variable string  `json:"variable"`
	NPVLow   float64 `json:"npv_low"`
	NPVHigh  float64 `json:"npv_high"`
	Range    float64 `json:"range"` // NPVHigh - NPVLow
}
