package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/appraisal"
)

// AnalysisRecord is the stored form of one appraisal run: the full
// result plus when it was computed. The engine itself never persists;
// this shape exists only in the store layer.
type AnalysisRecord struct {
	ProjectID  string           `json:"project_id"`
	Result     appraisal.Result `json:"result"`
	ComputedAt time.Time        `json:"computed_at"`
}

// AnalysisRepo keeps the latest appraisal per project as a single JSONB
// blob, upserted by project id.
type AnalysisRepo struct{}

// NewAnalysisRepo creates a new repository instance.
func NewAnalysisRepo() *AnalysisRepo {
	return &AnalysisRepo{}
}

// Save upserts the appraisal record for its project.
func (r *AnalysisRepo) Save(ctx context.Context, record AnalysisRecord) error {
	p := GetPool()
	if p == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `
		INSERT INTO feasibility_analyses (project_id, analysis_json, computed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id)
		DO UPDATE SET
			analysis_json = EXCLUDED.analysis_json,
			computed_at = EXCLUDED.computed_at;
	`

	if _, err := p.Exec(ctx, query, record.ProjectID, jsonData, record.ComputedAt); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// Load retrieves the latest appraisal record for a project.
func (r *AnalysisRepo) Load(ctx context.Context, projectID string) (AnalysisRecord, error) {
	p := GetPool()
	if p == nil {
		return AnalysisRecord{}, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT analysis_json FROM feasibility_analyses WHERE project_id = $1`

	var jsonData []byte
	if err := p.QueryRow(ctx, query, projectID).Scan(&jsonData); err != nil {
		if err == pgx.ErrNoRows {
			return AnalysisRecord{}, fmt.Errorf("no analysis found for project %s", projectID)
		}
		return AnalysisRecord{}, fmt.Errorf("failed to load analysis: %w", err)
	}

	var record AnalysisRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return AnalysisRecord{}, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return record, nil
}
