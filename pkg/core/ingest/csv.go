package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// ParseLineItemsCSV imports budget rows in name,volume,unit,price
// order. A header row is allowed and skipped when its numeric columns
// fail to parse. Every imported item gets a fresh ID.
func ParseLineItemsCSV(r io.Reader) ([]models.LineItem, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read line item csv: %w", err)
	}

	items := []models.LineItem{}
	for i, rec := range records {
		if len(rec) < 4 {
			return nil, fmt.Errorf("row %d: want columns name,volume,unit,price, got %d columns", i+1, len(rec))
		}

		volume, volErr := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		price, priceErr := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
		if volErr != nil || priceErr != nil {
			if i == 0 {
				// Header row
				continue
			}
			return nil, fmt.Errorf("row %d: volume and price must be numbers: %v", i+1, rec)
		}

		items = append(items, models.LineItem{
			ID:     uuid.NewString(),
			Name:   strings.TrimSpace(rec[0]),
			Volume: volume,
			Unit:   strings.TrimSpace(rec[2]),
			Price:  price,
		})
	}
	return items, nil
}
