package appraisal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/api/monitor"
	coreAppraisal "github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/appraisal"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/export"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/ingest"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/report"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/sensitivity"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/store"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

var (
	cache            store.CacheRepository
	analyses         *store.AnalysisRepo
	reporter         *report.Generator
	defaultVariation float64
)

// InitHandler wires the appraisal endpoints. A nil cache falls back to
// the in-process map cache.
func InitHandler(c store.CacheRepository, variationPercent float64) {
	cache = c
	if cache == nil {
		cache = store.NewMemoryCache()
	}
	analyses = store.NewAnalysisRepo()
	reporter = report.NewGenerator()
	defaultVariation = variationPercent
	if defaultVariation <= 0 {
		defaultVariation = sensitivity.DefaultVariationPercent
	}
}

type EvaluateRequest struct {
	Project          models.ProjectData `json:"project"`
	VariationPercent float64            `json:"variation_percent"`
	// ProjectID persists the result when set and the database is up.
	ProjectID string `json:"project_id"`
}

type ReportRequest struct {
	Project          models.ProjectData `json:"project"`
	VariationPercent float64            `json:"variation_percent"`
	Format           string             `json:"format"` // markdown (default) or html
}

type ExportRequest struct {
	Project          models.ProjectData `json:"project"`
	VariationPercent float64            `json:"variation_percent"`
	Format           string             `json:"format"`  // json (default) or csv
	Dataset          string             `json:"dataset"` // csv only: table (default) or sensitivity
}

type SensitivityResponse struct {
	VariationPercent float64                    `json:"variation_percent"`
	Results          []models.SensitivityResult `json:"results"`
}

func HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		monitor.AppraisalsTotal.WithLabelValues("error").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ingest.NormalizeProject(&req.Project)

	variation := req.VariationPercent
	if variation <= 0 {
		variation = defaultVariation
	}

	// The pipeline is deterministic, so identical snapshots can be
	// served from cache.
	key := store.AppraisalCacheKey(req.Project, variation)
	if raw, ok := cache.Get(key); ok {
		var cached coreAppraisal.Result
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			monitor.CacheLookups.WithLabelValues("hit").Inc()
			fmt.Printf("[APPRAISAL] Cache hit for %q\n", req.Project.Name)
			respondJSON(w, cached)
			return
		}
	}
	monitor.CacheLookups.WithLabelValues("miss").Inc()

	start := time.Now()
	result := coreAppraisal.Appraise(req.Project, coreAppraisal.Options{VariationPercent: variation})
	monitor.AppraisalDuration.Observe(time.Since(start).Seconds())
	monitor.AppraisalsTotal.WithLabelValues("ok").Inc()
	fmt.Printf("[APPRAISAL] %q: NPV %.2f, IRR %.2f%%, payback %.2f years\n",
		req.Project.Name, result.Metrics.NPV, result.Metrics.IRR*100, result.Metrics.PaybackPeriod)

	if raw, err := json.Marshal(result); err == nil {
		if err := cache.Set(key, string(raw)); err != nil {
			fmt.Printf("[WARNING] Failed to cache appraisal: %v\n", err)
		}
	}

	if req.ProjectID != "" && store.GetPool() != nil {
		record := store.AnalysisRecord{
			ProjectID:  req.ProjectID,
			Result:     result,
			ComputedAt: time.Now(),
		}
		if err := analyses.Save(r.Context(), record); err != nil {
			fmt.Printf("[WARNING] Failed to persist analysis: %v\n", err)
		}
	}

	respondJSON(w, result)
}

func HandleSensitivity(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ingest.NormalizeProject(&req.Project)

	variation := req.VariationPercent
	if variation <= 0 {
		variation = defaultVariation
	}

	respondJSON(w, SensitivityResponse{
		VariationPercent: variation,
		Results:          sensitivity.Run(req.Project, variation),
	})
}

func HandleReport(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ingest.NormalizeProject(&req.Project)

	result := coreAppraisal.Appraise(req.Project, coreAppraisal.Options{VariationPercent: req.VariationPercent})

	switch strings.ToLower(req.Format) {
	case "", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, reporter.Build(result))
	case "html":
		html, err := reporter.BuildHTML(result)
		if err != nil {
			http.Error(w, fmt.Sprintf("Report rendering failed: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	default:
		http.Error(w, fmt.Sprintf("Unknown report format: %s", req.Format), http.StatusBadRequest)
	}
}

func HandleExport(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ingest.NormalizeProject(&req.Project)

	result := coreAppraisal.Appraise(req.Project, coreAppraisal.Options{VariationPercent: req.VariationPercent})
	filename := exportFilename(req.Project.Name)

	switch strings.ToLower(req.Format) {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", filename))
		if err := export.WriteAnalysisJSON(w, result, time.Now()); err != nil {
			fmt.Printf("[WARNING] Export write failed: %v\n", err)
		}
	case "csv":
		var writeErr error
		switch strings.ToLower(req.Dataset) {
		case "", "table":
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_cashflow.csv", filename))
			writeErr = export.WriteTableCSV(w, result.Table)
		case "sensitivity":
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_sensitivity.csv", filename))
			writeErr = export.WriteSensitivityCSV(w, result.Sensitivity)
		default:
			http.Error(w, fmt.Sprintf("Unknown export dataset: %s", req.Dataset), http.StatusBadRequest)
			return
		}
		if writeErr != nil {
			fmt.Printf("[WARNING] Export write failed: %v\n", writeErr)
		}
	default:
		http.Error(w, fmt.Sprintf("Unknown export format: %s", req.Format), http.StatusBadRequest)
	}
}

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// exportFilename turns a project name into a safe download stem.
func exportFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	stem := strings.Trim(b.String(), "_")
	if stem == "" {
		return "analysis"
	}
	return stem
}
