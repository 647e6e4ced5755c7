package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/appraisal"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/export"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/ingest"
)

func main() {
	dir := flag.String("dir", ".", "Directory containing project files (*.json)")
	out := flag.String("out", "batch_out", "Directory for per-project analysis output")
	variation := flag.Float64("variation", 0, "Sensitivity variation percent (0 = default)")
	flag.Parse()

	paths, err := filepath.Glob(filepath.Join(*dir, "*.json"))
	if err != nil {
		log.Fatalf("Error listing %s: %v", *dir, err)
	}
	if len(paths) == 0 {
		log.Fatalf("Error: no project files found in %s", *dir)
	}

	if err := os.MkdirAll(*out, 0755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}

	ok, failed := 0, 0
	for _, path := range paths {
		name := filepath.Base(path)
		fmt.Printf("\n=== Processing %s ===\n", name)

		data, err := ingest.LoadProjectFile(path)
		if err != nil {
			log.Printf("Error loading %s: %v\n", name, err)
			failed++
			continue
		}
		if data.Name == "" {
			data.Name = strings.TrimSuffix(name, filepath.Ext(name))
		}

		result := appraisal.Appraise(data, appraisal.Options{VariationPercent: *variation})

		verdict := "NOT FEASIBLE"
		if result.Feasibility.Feasible {
			verdict = "FEASIBLE"
		}
		fmt.Printf("NPV: %.2f  IRR: %.2f%%  Payback: %.2f years  -> %s\n",
			result.Metrics.NPV, result.Metrics.IRR*100, result.Metrics.PaybackPeriod, verdict)

		outPath := filepath.Join(*out, strings.TrimSuffix(name, filepath.Ext(name))+"_analysis.json")
		f, err := os.Create(outPath)
		if err != nil {
			log.Printf("Error writing %s: %v\n", outPath, err)
			failed++
			continue
		}
		writeErr := export.WriteAnalysisJSON(f, result, time.Now())
		closeErr := f.Close()
		if writeErr != nil || closeErr != nil {
			log.Printf("Error writing %s: %v %v\n", outPath, writeErr, closeErr)
			failed++
			continue
		}

		fmt.Printf("Saved: %s\n", outPath)
		ok++
	}

	fmt.Printf("\n=== Done === (%d appraised, %d failed)\n", ok, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
