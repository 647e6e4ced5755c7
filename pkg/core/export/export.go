package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/appraisal"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// WriteAnalysisJSON writes a full appraisal as indented JSON. The
// timestamp is supplied by the caller; nothing in the calculation
// pipeline depends on the clock.
func WriteAnalysisJSON(w io.Writer, result appraisal.Result, generatedAt time.Time) error {
	document := struct {
		GeneratedAt string `json:"generated_at"`
		appraisal.Result
	}{
		GeneratedAt: generatedAt.Format(time.RFC3339),
		Result:      result,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document); err != nil {
		return fmt.Errorf("write analysis json: %w", err)
	}
	return nil
}

// WriteTableCSV writes the projection table. Values are raw numbers;
// currency formatting belongs to the UI.
func WriteTableCSV(w io.Writer, rows []models.CashFlowRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "cash_flow", "discount_factor", "discounted_cash_flow", "cumulative_cash_flow"}); err != nil {
		return fmt.Errorf("write table csv: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Year),
			formatNumber(row.CashFlow),
			formatNumber(row.DiscountFactor),
			formatNumber(row.DiscountedCashFlow),
			formatNumber(row.CumulativeCashFlow),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write table csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSensitivityCSV writes the tornado ranking in its sorted order.
func WriteSensitivityCSV(w io.Writer, results []models.SensitivityResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"variable", "npv_low", "npv_high", "range"}); err != nil {
		return fmt.Errorf("write sensitivity csv: %w", err)
	}
	for _, r := range results {
		record := []string{
			r.Variable,
			formatNumber(r.NPVLow),
			formatNumber(r.NPVHigh),
			formatNumber(r.Range),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write sensitivity csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
