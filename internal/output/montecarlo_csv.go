package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpgo/growth-projector/internal/domain"
)

// MonteCarloCSVReport exports an aggregate projection as separate summary and
// band CSV files.
type MonteCarloCSVReport struct {
	Result *domain.ProjectionResult
}

// NewMonteCarloCSVReport checks that result carries Monte Carlo data.
func NewMonteCarloCSVReport(result *domain.ProjectionResult) (*MonteCarloCSVReport, error) {
	if result == nil || result.Band == nil || result.Summary == nil {
		return nil, errors.New("monte carlo CSV export needs an aggregate projection")
	}
	return &MonteCarloCSVReport{Result: result}, nil
}

// GenerateSummaryCSV creates a summary CSV with aggregate statistics
func (m *MonteCarloCSVReport) GenerateSummaryCSV(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Metric", "Value", "Description"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	s := m.Result.Summary
	summaryData := [][]string{
		{"Median", formatFloat(s.Median), "Median final value across all paths"},
		{"P10", formatFloat(s.P10), "10th percentile of final values"},
		{"P90", formatFloat(s.P90), "90th percentile of final values"},
		{"Best", formatFloat(s.Best), "Highest final value"},
		{"Worst", formatFloat(s.Worst), "Lowest final value"},
		{"Principal", m.Result.Outcome.Principal.StringFixed(2), "Total contributions over the horizon"},
		{"Number of Simulations", intToString(m.Result.Runs), "Total number of simulated paths"},
		{"Seed", uintToString(m.Result.Seed), "Seed that reproduces this run"},
	}

	for _, row := range summaryData {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	return nil
}

// GenerateBandCSV creates a CSV with the per-year quantile band.
func (m *MonteCarloCSVReport) GenerateBandCSV(outputPath string) error {
	data, err := CSVDetailedExporter{}.Format(m.Result)
	if err != nil {
		return fmt.Errorf("failed to render band: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	return nil
}

// GenerateAllCSVReports creates all CSV reports in a single directory
func (m *MonteCarloCSVReport) GenerateAllCSVReports(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := m.GenerateSummaryCSV(filepath.Join(outputDir, "monte_carlo_summary.csv")); err != nil {
		return fmt.Errorf("failed to generate summary CSV: %w", err)
	}
	if err := m.GenerateBandCSV(filepath.Join(outputDir, "monte_carlo_band.csv")); err != nil {
		return fmt.Errorf("failed to generate band CSV: %w", err)
	}
	return nil
}
