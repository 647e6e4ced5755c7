package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/calc"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

func main() {
	mode := flag.String("mode", "calculate", "Mode: check or calculate")
	dataStr := flag.String("data", "", "JSON project payload")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	var data models.ProjectData
	if err := json.Unmarshal([]byte(*dataStr), &data); err != nil {
		fmt.Printf("Error unmarshaling data: %v\n", err)
		os.Exit(1)
	}

	switch *mode {
	case "check":
		runChecks(data)
	case "calculate":
		runCalculations(data)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
	}
}

func runChecks(data models.ProjectData) {
	// The bundle must reconcile with the raw series math.
	metrics := calc.ComputeMetrics(data)

	cashflows := calc.ProjectCashFlows(data)
	factors := calc.DiscountFactors(data.ProjectYears, data.DiscountRate)
	npv := calc.NPV(calc.DiscountSeries(cashflows, factors))

	diff := metrics.NPV - npv
	if math.Abs(diff) < 1e-9 {
		fmt.Println("Success: NPV reconciles with the discounted projection")
	} else {
		fmt.Printf("Error: NPV reconciliation failed (Diff: %f)\n", diff)
	}
}

func runCalculations(data models.ProjectData) {
	metrics := calc.ComputeMetrics(data)
	out, err := json.Marshal(metrics)
	if err != nil {
		fmt.Printf("Error marshaling metrics: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
