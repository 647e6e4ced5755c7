package ingest

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/utils"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// ParseProject decodes a project file into a ProjectData snapshot.
// Files are often hand-edited, so parsing runs through the lenient
// cascade (strict JSON, then repair, then Hjson) before normalization.
func ParseProject(raw []byte) (models.ProjectData, error) {
	var data models.ProjectData
	if _, err := utils.SmartParse(string(raw), &data); err != nil {
		return models.ProjectData{}, fmt.Errorf("parse project: %w", err)
	}

	NormalizeProject(&data)
	return data, nil
}

// NormalizeProject fills in what clients routinely omit: items without
// an ID get one assigned and an omitted horizon becomes the minimum of
// 1. A negative horizon is kept as-is; the engine degrades it to its
// fallback series.
func NormalizeProject(data *models.ProjectData) {
	assignItemIDs(data.CapexItems)
	assignItemIDs(data.OpexCashIn)
	assignItemIDs(data.OpexCashOut)

	if data.ProjectYears == 0 {
		data.ProjectYears = 1
	}
}

// LoadProjectFile reads and parses a project file from disk.
func LoadProjectFile(path string) (models.ProjectData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.ProjectData{}, fmt.Errorf("read project file: %w", err)
	}
	return ParseProject(raw)
}

func assignItemIDs(items []models.LineItem) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
	}
}
