package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/growth-projector/internal/domain"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "name: \"Weekly plan\"\n" +
		"mode: aggregate\n" +
		"scenario:\n" +
		"  amount: 50\n" +
		"  years: 20\n" +
		"  rate_percent: 6.5\n" +
		"  recurring: true\n" +
		"  frequency: weekly\n" +
		"  inflation_percent: 2\n" +
		"monte_carlo:\n" +
		"  runs: 2500\n" +
		"  seed: 99\n" +
		"returns_file: returns.csv\n"

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	parser := NewInputParser()
	config, err := parser.LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "Weekly plan", config.Name)
	assert.Equal(t, domain.ModeAggregate, config.Mode)
	assert.Equal(t, domain.Weekly, config.Scenario.Frequency)
	assert.Equal(t, 2500, config.MonteCarlo.Runs)
	assert.Equal(t, uint64(99), config.MonteCarlo.Seed)
	assert.Equal(t, "returns.csv", config.ReturnsFile)
	require.NotNil(t, config.Scenario.InflationPercent)
	assert.Nil(t, config.Scenario.TaxPercent)

	params := config.Scenario.Parameters()
	assert.InDelta(t, 0.065, params.Rate, 1e-12)
	require.NotNil(t, params.Inflation)
	assert.InDelta(t, 0.02, *params.Inflation, 1e-12)
	assert.Nil(t, params.TaxRate)
}

func TestLoadFromFile_NumericFrequency(t *testing.T) {
	config, err := NewInputParser().Parse([]byte("scenario:\n  amount: 10\n  years: 5\n  frequency: 365\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.Daily, config.Scenario.Frequency)
	assert.Equal(t, domain.ModeDeterministic, config.Mode)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	config, err := NewInputParser().Parse([]byte("scenario: [unclosed"))
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown mode", "mode: lucky\n"},
		{"unknown frequency", "scenario:\n  frequency: hourly\n"},
		{"NaN amount", "scenario:\n  amount: .nan\n"},
		{"infinite rate", "scenario:\n  rate_percent: .inf\n"},
		{"NaN inflation", "scenario:\n  inflation_percent: .nan\n"},
		{"infinite tax", "scenario:\n  tax_percent: -.inf\n"},
	}
	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestClamp(t *testing.T) {
	negative := -3.0
	config := &Configuration{
		Scenario: Scenario{
			Amount:           -10,
			Years:            250,
			RatePercent:      -1,
			InflationPercent: &negative,
			TaxPercent:       &negative,
		},
		MonteCarlo: MonteCarloSettings{Runs: 20, Workers: -2},
	}
	Clamp(config)

	assert.Equal(t, 0.0, config.Scenario.Amount)
	assert.Equal(t, MaxYears, config.Scenario.Years)
	assert.Equal(t, 0.0, config.Scenario.RatePercent)
	assert.Equal(t, 0.0, *config.Scenario.InflationPercent)
	assert.Equal(t, 0.0, *config.Scenario.TaxPercent)
	assert.Equal(t, -3.0, negative, "clamp must not write through caller pointers")
	assert.Equal(t, domain.Monthly, config.Scenario.Frequency)
	assert.Equal(t, domain.ModeDeterministic, config.Mode)
	assert.Equal(t, MinRuns, config.MonteCarlo.Runs)
	assert.Equal(t, 0, config.MonteCarlo.Workers)

	config = &Configuration{MonteCarlo: MonteCarloSettings{Runs: 9000}}
	Clamp(config)
	assert.Equal(t, MinYears, config.Scenario.Years)
	assert.Equal(t, MaxRuns, config.MonteCarlo.Runs)

	config = &Configuration{}
	Clamp(config)
	assert.Equal(t, DefaultRuns, config.MonteCarlo.Runs)
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()
	require.NoError(t, parser.ValidateConfiguration(example))

	// The example must survive a write/read cycle through a scenario file.
	data, err := parser.Marshal(example)
	require.NoError(t, err)
	assert.Contains(t, string(data), "frequency: monthly")

	loaded, err := parser.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, example, loaded)
}

func TestParse_UnknownFrequencyIsInvalidConfig(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("scenario:\n  amount: 10\n  frequency: fortnightly\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFrequency)
	assert.Contains(t, err.Error(), "fortnightly")
}
