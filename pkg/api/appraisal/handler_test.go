package appraisal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	coreAppraisal "github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/appraisal"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/store"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

func testProject() models.ProjectData {
	return models.ProjectData{
		Name:         "Depot Expansion",
		CapexItems:   []models.LineItem{{ID: "c1", Name: "Build", Volume: 1, Unit: "lot", Price: 100000}},
		OpexCashIn:   []models.LineItem{{ID: "i1", Name: "Sales", Volume: 1, Unit: "yr", Price: 60000}},
		OpexCashOut:  []models.LineItem{{ID: "o1", Name: "Staff", Volume: 1, Unit: "yr", Price: 10000}},
		ProjectYears: 3,
		DiscountRate: 10,
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleEvaluate(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	rec := postJSON(t, HandleEvaluate, "/api/appraisal/evaluate", EvaluateRequest{Project: testProject()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS origin = %q, want *", got)
	}

	var result coreAppraisal.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Metrics.NPV <= 0 {
		t.Errorf("NPV = %v, want positive", result.Metrics.NPV)
	}
	if len(result.Table) != 4 {
		t.Errorf("table rows = %d, want 4", len(result.Table))
	}
	if len(result.Sensitivity) != 4 {
		t.Errorf("sensitivity entries = %d, want 4", len(result.Sensitivity))
	}
	if len(result.Feasibility.Checks) != 3 {
		t.Errorf("feasibility checks = %d, want 3", len(result.Feasibility.Checks))
	}
}

func TestHandleEvaluateServesCachedResult(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	req := EvaluateRequest{Project: testProject()}
	first := postJSON(t, HandleEvaluate, "/api/appraisal/evaluate", req)
	second := postJSON(t, HandleEvaluate, "/api/appraisal/evaluate", req)

	if second.Code != http.StatusOK {
		t.Fatalf("status = %d on cached call", second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached response differs from computed response")
	}
}

func TestHandleEvaluateNormalizesHorizon(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	project := testProject()
	project.ProjectYears = 0
	rec := postJSON(t, HandleEvaluate, "/api/appraisal/evaluate", EvaluateRequest{Project: project})

	var result coreAppraisal.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Project.ProjectYears != 1 {
		t.Errorf("ProjectYears = %d, want 1 after normalization", result.Project.ProjectYears)
	}
	if len(result.Table) != 2 {
		t.Errorf("table rows = %d, want 2", len(result.Table))
	}
}

func TestHandleEvaluateBadBody(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	req := httptest.NewRequest("POST", "/api/appraisal/evaluate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	HandleEvaluate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleEvaluateOptionsPreflight(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	req := httptest.NewRequest("OPTIONS", "/api/appraisal/evaluate", nil)
	rec := httptest.NewRecorder()
	HandleEvaluate(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "OPTIONS") {
		t.Errorf("Allow-Methods = %q, want OPTIONS listed", got)
	}
}

func TestHandleSensitivity(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	rec := postJSON(t, HandleSensitivity, "/api/appraisal/sensitivity", EvaluateRequest{
		Project:          testProject(),
		VariationPercent: 10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp SensitivityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.VariationPercent != 10 {
		t.Errorf("variation = %v, want 10", resp.VariationPercent)
	}
	if len(resp.Results) != 4 {
		t.Errorf("results = %d, want 4", len(resp.Results))
	}
}

func TestHandleSensitivityDefaultsVariation(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	rec := postJSON(t, HandleSensitivity, "/api/appraisal/sensitivity", EvaluateRequest{Project: testProject()})

	var resp SensitivityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.VariationPercent != 20 {
		t.Errorf("variation = %v, want default 20", resp.VariationPercent)
	}
}

func TestHandleReportMarkdown(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	rec := postJSON(t, HandleReport, "/api/appraisal/report", ReportRequest{Project: testProject()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("Content-Type = %q, want text/markdown", ct)
	}
	if !strings.Contains(rec.Body.String(), "# Feasibility Analysis: Depot Expansion") {
		t.Error("report missing title line")
	}
}

func TestHandleReportHTML(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	rec := postJSON(t, HandleReport, "/api/appraisal/report", ReportRequest{
		Project: testProject(),
		Format:  "html",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "<table") {
		t.Error("html report missing expected elements")
	}
}

func TestHandleReportUnknownFormat(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	rec := postJSON(t, HandleReport, "/api/appraisal/report", ReportRequest{
		Project: testProject(),
		Format:  "pdf",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleExportJSON(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	rec := postJSON(t, HandleExport, "/api/appraisal/export", ExportRequest{Project: testProject()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=depot_expansion.json" {
		t.Errorf("Content-Disposition = %q", cd)
	}

	var doc struct {
		GeneratedAt string             `json:"generated_at"`
		Project     models.ProjectData `json:"project"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if doc.GeneratedAt == "" {
		t.Error("generated_at missing")
	}
	if doc.Project.Name != "Depot Expansion" {
		t.Errorf("project name = %q", doc.Project.Name)
	}
}

func TestHandleExportTableCSV(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	rec := postJSON(t, HandleExport, "/api/appraisal/export", ExportRequest{
		Project: testProject(),
		Format:  "csv",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if lines[0] != "year,cash_flow,discount_factor,discounted_cash_flow,cumulative_cash_flow" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 5 {
		t.Errorf("lines = %d, want header + 4 rows", len(lines))
	}
}

func TestHandleExportSensitivityCSV(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	rec := postJSON(t, HandleExport, "/api/appraisal/export", ExportRequest{
		Project: testProject(),
		Format:  "csv",
		Dataset: "sensitivity",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if lines[0] != "variable,npv_low,npv_high,range" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 5 {
		t.Errorf("lines = %d, want header + 4 rows", len(lines))
	}
}

func TestHandleExportUnknownFormat(t *testing.T) {
	InitHandler(store.NewMemoryCache(), 20)

	rec := postJSON(t, HandleExport, "/api/appraisal/export", ExportRequest{
		Project: testProject(),
		Format:  "xlsx",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestExportFilename(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Depot Expansion", "depot_expansion"},
		{"Plant #2 (North)", "plant__2__north"},
		{"", "analysis"},
		{"---", "analysis"},
	}
	for _, c := range cases {
		if got := exportFilename(c.name); got != c.want {
			t.Errorf("exportFilename(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}
