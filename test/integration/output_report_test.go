package integration

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/growth-projector/internal/calculation"
	"github.com/rpgo/growth-projector/internal/config"
	"github.com/rpgo/growth-projector/internal/output"
)

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	parser := config.NewInputParser()
	example := parser.CreateExampleConfiguration()

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := output.SaveConfiguration(example, path); err != nil {
		t.Fatalf("SaveConfiguration error: %v", err)
	}
	loaded, err := parser.LoadFromFile(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Scenario.Frequency != example.Scenario.Frequency || loaded.Scenario.Years != example.Scenario.Years {
		t.Fatalf("round trip changed the scenario: %+v", loaded.Scenario)
	}
	if loaded.Scenario.TaxPercent == nil || *loaded.Scenario.TaxPercent != 27.5 {
		t.Fatalf("tax percent lost in round trip: %v", loaded.Scenario.TaxPercent)
	}
}

func TestMonteCarloCSVReports(t *testing.T) {
	cfg := loadExample(t)
	engine := calculation.NewProjectionEngine(nil)
	result, err := engine.Project(context.Background(), cfg.Scenario.Parameters(), calculation.ProjectionOptions{
		Mode: cfg.Mode,
		Runs: 100,
		Seed: 77,
	})
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	report, err := output.NewMonteCarloCSVReport(result)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	dir := t.TempDir()
	if err := report.GenerateAllCSVReports(dir); err != nil {
		t.Fatalf("generate: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "monte_carlo_band.csv"))
	if err != nil {
		t.Fatalf("open band: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse band: %v", err)
	}
	if want := cfg.Scenario.Years + 2; len(rows) != want {
		t.Fatalf("band rows = %d, want %d", len(rows), want)
	}
	if rows[1][0] != "0" || rows[len(rows)-1][0] != "25" {
		t.Fatalf("unexpected year column: first %q last %q", rows[1][0], rows[len(rows)-1][0])
	}
}
