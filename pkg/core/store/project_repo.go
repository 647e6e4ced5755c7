package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// ProjectRepo persists project snapshots, one JSONB document per
// project, upserted by id.
type ProjectRepo struct{}

// NewProjectRepo creates a new repository instance.
func NewProjectRepo() *ProjectRepo {
	return &ProjectRepo{}
}

// ProjectSummary is one row of the project listing.
type ProjectSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Save upserts a project snapshot. An empty id gets a fresh one
// assigned; the effective id is returned either way.
func (r *ProjectRepo) Save(ctx context.Context, id string, data models.ProjectData) (string, error) {
	p := GetPool()
	if p == nil {
		return "", fmt.Errorf("database pool not initialized")
	}

	if id == "" {
		id = uuid.NewString()
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal project: %w", err)
	}

	query := `
		INSERT INTO feasibility_projects (id, name, project_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			project_json = EXCLUDED.project_json,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := p.Exec(ctx, query, id, data.Name, jsonData, time.Now()); err != nil {
		return "", fmt.Errorf("failed to save project: %w", err)
	}
	return id, nil
}

// Load retrieves one project snapshot by id.
func (r *ProjectRepo) Load(ctx context.Context, id string) (models.ProjectData, error) {
	p := GetPool()
	if p == nil {
		return models.ProjectData{}, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT project_json FROM feasibility_projects WHERE id = $1`

	var jsonData []byte
	if err := p.QueryRow(ctx, query, id).Scan(&jsonData); err != nil {
		if err == pgx.ErrNoRows {
			return models.ProjectData{}, fmt.Errorf("no project found for id %s", id)
		}
		return models.ProjectData{}, fmt.Errorf("failed to load project: %w", err)
	}

	var data models.ProjectData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return models.ProjectData{}, fmt.Errorf("failed to unmarshal project: %w", err)
	}
	return data, nil
}

// List returns id, name and update time for every stored project,
// newest first.
func (r *ProjectRepo) List(ctx context.Context) ([]ProjectSummary, error) {
	p := GetPool()
	if p == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT id, name, updated_at FROM feasibility_projects ORDER BY updated_at DESC`

	rows, err := p.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	summaries := []ProjectSummary{}
	for rows.Next() {
		var s ProjectSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read project rows: %w", err)
	}
	return summaries, nil
}
