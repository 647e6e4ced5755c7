package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/appraisal"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/export"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/ingest"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/report"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	filePath := flag.String("file", "", "Project file (JSON or Hjson)")
	variation := flag.Float64("variation", 0, "Sensitivity variation percent (0 uses the default)")
	outDir := flag.String("out", "", "Directory for report and export files (console only when empty)")
	flag.Parse()

	if *filePath == "" {
		fmt.Println("Usage: appraise -file project.json [-variation 20] [-out results/]")
		os.Exit(1)
	}

	fmt.Println("🚀 Feasibility Appraisal Starting...")

	// 1. Load Project
	data, err := ingest.LoadProjectFile(*filePath)
	if err != nil {
		log.Fatalf("Load failed: %v", err)
	}
	name := data.Name
	if name == "" {
		name = filepath.Base(*filePath)
	}
	fmt.Printf("📂 Appraising %s (%d-year horizon)...\n", name, data.ProjectYears)

	// 2. Run Appraisal
	result := appraisal.Appraise(data, appraisal.Options{VariationPercent: *variation})

	// 3. REPORT GENERATION
	fmt.Println("\n################################################################################")
	fmt.Println("                   CAPITAL BUDGETING ENGINE - FEASIBILITY REPORT")
	fmt.Printf("                   Project: %s\n", name)
	fmt.Println("################################################################################")

	// [1] KEY METRICS
	fmt.Println("\n[1] KEY METRICS")
	fmt.Printf("NPV:                 %14.2f\n", result.Metrics.NPV)
	fmt.Printf("IRR:                 %13.2f%%\n", result.Metrics.IRR*100)
	fmt.Printf("Payback Period:      %14.2f years\n", result.Metrics.PaybackPeriod)
	fmt.Printf("Total Investment:    %14.2f\n", result.Metrics.TotalCapex)
	fmt.Printf("Yearly Revenue:      %14.2f\n", result.Metrics.YearlyRevenue)
	fmt.Printf("Yearly Expenses:     %14.2f\n", result.Metrics.YearlyExpenses)

	// [2] ACCEPTANCE CHECKS
	fmt.Println("\n[2] ACCEPTANCE CHECKS")
	for _, check := range result.Feasibility.Checks {
		status := "FAIL"
		if check.Passed {
			status = "PASS"
		}
		fmt.Printf("%-25s | %14.4f vs %14.4f | %s\n", check.Name, check.Actual, check.Threshold, status)
	}

	// [3] CASH FLOW PROJECTION
	fmt.Println("\n[3] CASH FLOW PROJECTION")
	fmt.Printf("%4s | %14s | %14s | %14s\n", "Year", "Cash Flow", "Discounted", "Cumulative")
	fmt.Println(strings.Repeat("-", 56))
	for _, row := range result.Table {
		fmt.Printf("%4d | %14.2f | %14.2f | %14.2f\n", row.Year, row.CashFlow, row.DiscountedCashFlow, row.CumulativeCashFlow)
	}

	// [4] SENSITIVITY RANKING
	fmt.Println("\n[4] SENSITIVITY RANKING")
	fmt.Printf("%-20s | %14s | %14s | %14s\n", "Variable", "NPV Low", "NPV High", "Range")
	fmt.Println(strings.Repeat("-", 72))
	for _, r := range result.Sensitivity {
		fmt.Printf("%-20s | %14.2f | %14.2f | %14.2f\n", r.Variable, r.NPVLow, r.NPVHigh, r.Range)
	}

	verdict := "NOT FEASIBLE"
	if result.Feasibility.Feasible {
		verdict = "FEASIBLE"
	}
	fmt.Printf("\nVerdict: %s\n", verdict)

	// 4. File Exports
	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			log.Fatalf("Output directory: %v", err)
		}

		generator := report.NewGenerator()
		writeText(filepath.Join(*outDir, "report.md"), generator.Build(result))

		writeWith(filepath.Join(*outDir, "analysis.json"), func(w io.Writer) error {
			return export.WriteAnalysisJSON(w, result, time.Now())
		})
		writeWith(filepath.Join(*outDir, "cashflow.csv"), func(w io.Writer) error {
			return export.WriteTableCSV(w, result.Table)
		})
		writeWith(filepath.Join(*outDir, "sensitivity.csv"), func(w io.Writer) error {
			return export.WriteSensitivityCSV(w, result.Sensitivity)
		})
	}

	fmt.Println("\n[Done] Appraisal Complete.")
}

func writeText(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		fmt.Printf("[WARNING] Failed to write %s: %v\n", path, err)
		return
	}
	fmt.Printf("💾 Wrote %s\n", path)
}

func writeWith(path string, write func(io.Writer) error) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Printf("[WARNING] Failed to create %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if err := write(f); err != nil {
		fmt.Printf("[WARNING] Failed to write %s: %v\n", path, err)
		return
	}
	fmt.Printf("💾 Wrote %s\n", path)
}
