package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseProjectStrictJSON(t *testing.T) {
	raw := []byte(`{
		"name": "Warehouse expansion",
		"capex_items": [{"id": "c1", "name": "Racking", "volume": 40, "unit": "bay", "price": 2500}],
		"opex_cash_in": [{"name": "Storage fees", "volume": 1200, "unit": "pallet", "price": 30}],
		"opex_cash_out": [{"name": "Labor", "volume": 6, "unit": "fte", "price": 4200}],
		"project_years": 5,
		"discount_rate": 12,
		"opex_in_growth": 5,
		"opex_out_growth": 3
	}`)

	data, err := ParseProject(raw)
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}

	if data.Name != "Warehouse expansion" {
		t.Errorf("Name = %q", data.Name)
	}
	if data.ProjectYears != 5 || data.DiscountRate != 12 {
		t.Errorf("horizon/rate = %d/%v", data.ProjectYears, data.DiscountRate)
	}
	if data.CapexItems[0].ID != "c1" {
		t.Errorf("existing item ID replaced: %q", data.CapexItems[0].ID)
	}
	if data.OpexCashIn[0].ID == "" {
		t.Error("missing item ID not assigned")
	}
	if data.OpexCashIn[0].Volume != 1200 || data.OpexCashIn[0].Price != 30 {
		t.Errorf("cash-in item = %+v", data.OpexCashIn[0])
	}
}

func TestParseProjectRepairsSloppyJSON(t *testing.T) {
	// Trailing commas and single quotes, as saved by hand edits
	raw := []byte(`{
		'name': 'Kiosk rollout',
		'project_years': 3,
		'discount_rate': 10,
		'capex_items': [{'name': 'Kiosk', 'volume': 4, 'unit': 'unit', 'price': 15000},],
	}`)

	data, err := ParseProject(raw)
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	if data.Name != "Kiosk rollout" || data.ProjectYears != 3 {
		t.Errorf("parsed = %+v", data)
	}
	if len(data.CapexItems) != 1 || data.CapexItems[0].Price != 15000 {
		t.Errorf("capex items = %+v", data.CapexItems)
	}
}

func TestParseProjectAcceptsHjson(t *testing.T) {
	raw := []byte(`{
		name: "Cold storage"
		project_years: 4
		discount_rate: 9.5
	}`)

	data, err := ParseProject(raw)
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	if data.Name != "Cold storage" || data.ProjectYears != 4 || data.DiscountRate != 9.5 {
		t.Errorf("parsed = %+v", data)
	}
}

func TestParseProjectWrongShape(t *testing.T) {
	if _, err := ParseProject([]byte(`[1, 2, 3]`)); err == nil {
		t.Error("array input parsed as project")
	}
}

func TestParseProjectNormalizesHorizon(t *testing.T) {
	data, err := ParseProject([]byte(`{"name": "Empty"}`))
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	if data.ProjectYears != 1 {
		t.Errorf("omitted horizon = %d, want 1", data.ProjectYears)
	}

	// A negative horizon is preserved for the engine's fallback path
	data, err = ParseProject([]byte(`{"project_years": -2}`))
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	if data.ProjectYears != -2 {
		t.Errorf("negative horizon = %d, want -2", data.ProjectYears)
	}
}

func TestLoadProjectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	content := `{"name": "Depot", "project_years": 2, "discount_rate": 8}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := LoadProjectFile(path)
	if err != nil {
		t.Fatalf("LoadProjectFile: %v", err)
	}
	if data.Name != "Depot" || data.ProjectYears != 2 {
		t.Errorf("loaded = %+v", data)
	}

	if _, err := LoadProjectFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file did not error")
	}
}

func TestParseLineItemsCSV(t *testing.T) {
	input := strings.NewReader("name,volume,unit,price\nMachines,2,unit,150000\nInstallation,1,lot,50000\n")

	items, err := ParseLineItemsCSV(input)
	if err != nil {
		t.Fatalf("ParseLineItemsCSV: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("item count = %d, want 2", len(items))
	}
	if items[0].Name != "Machines" || items[0].Volume != 2 || items[0].Price != 150000 {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[0].ID == "" || items[1].ID == "" {
		t.Error("imported items missing IDs")
	}
	if items[0].ID == items[1].ID {
		t.Error("imported items share an ID")
	}
}

func TestParseLineItemsCSVNoHeader(t *testing.T) {
	input := strings.NewReader("Licenses,10,seat,1200\n")

	items, err := ParseLineItemsCSV(input)
	if err != nil {
		t.Fatalf("ParseLineItemsCSV: %v", err)
	}
	if len(items) != 1 || items[0].Unit != "seat" {
		t.Errorf("items = %+v", items)
	}
}

func TestParseLineItemsCSVBadNumber(t *testing.T) {
	input := strings.NewReader("name,volume,unit,price\nMachines,two,unit,150000\n")
	if _, err := ParseLineItemsCSV(input); err == nil {
		t.Error("non-numeric volume accepted")
	}
}

func TestParseLineItemsCSVShortRow(t *testing.T) {
	input := strings.NewReader("Machines,2\nInstallation,1\n")
	if _, err := ParseLineItemsCSV(input); err == nil {
		t.Error("short rows accepted")
	}
}
