package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rpgo/growth-projector/internal/domain"
)

// ErrInvalidConfig is returned when a scenario file cannot be used as given.
var ErrInvalidConfig = errors.New("invalid configuration")

// Input bounds applied by Clamp.
const (
	MinYears    = 1
	MaxYears    = 100
	MinRuns     = 100
	MaxRuns     = 5000
	DefaultRuns = 1000
)

// Scenario is the user-facing description of one projection. Rates are
// percentages (7 means 7%), as entered in a form.
type Scenario struct {
	Amount           float64          `yaml:"amount"`
	Years            int              `yaml:"years"`
	RatePercent      float64          `yaml:"rate_percent"`
	Recurring        bool             `yaml:"recurring"`
	Frequency        domain.Frequency `yaml:"frequency"`
	InflationPercent *float64         `yaml:"inflation_percent,omitempty"`
	TaxPercent       *float64         `yaml:"tax_percent,omitempty"`
}

// MonteCarloSettings controls the aggregate mode.
type MonteCarloSettings struct {
	Runs    int    `yaml:"runs"`
	Seed    uint64 `yaml:"seed"`
	Workers int    `yaml:"workers"`
}

// Configuration is a complete projector input file.
type Configuration struct {
	Name        string             `yaml:"name"`
	Mode        domain.Mode        `yaml:"mode"`
	Scenario    Scenario           `yaml:"scenario"`
	MonteCarlo  MonteCarloSettings `yaml:"monte_carlo"`
	ReturnsFile string             `yaml:"returns_file,omitempty"`
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario file, validates it and applies Clamp.
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes YAML, validates it and applies Clamp.
func (ip *InputParser) Parse(data []byte) (*Configuration, error) {
	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		if errors.Is(err, domain.ErrUnsupportedFrequency) {
			return nil, fmt.Errorf("configuration validation failed: %w: %w", ErrInvalidConfig, err)
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	Clamp(&config)

	return &config, nil
}

// ValidateConfiguration rejects values Clamp cannot repair: unknown modes or
// frequencies and non-finite numbers. Out-of-range finite values are clamped,
// not rejected.
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if config.Mode != "" && !config.Mode.Valid() {
		return fmt.Errorf("%w: mode must be deterministic, single or aggregate, got %q", ErrInvalidConfig, config.Mode)
	}
	if err := ip.validateScenario(&config.Scenario); err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	return nil
}

func (ip *InputParser) validateScenario(s *Scenario) error {
	if s.Frequency != 0 && !s.Frequency.Valid() {
		return fmt.Errorf("%w: unsupported frequency %d", ErrInvalidConfig, int(s.Frequency))
	}
	if !finite(s.Amount) {
		return fmt.Errorf("%w: amount must be a finite number", ErrInvalidConfig)
	}
	if !finite(s.RatePercent) {
		return fmt.Errorf("%w: rate_percent must be a finite number", ErrInvalidConfig)
	}
	if s.InflationPercent != nil && !finite(*s.InflationPercent) {
		return fmt.Errorf("%w: inflation_percent must be a finite number", ErrInvalidConfig)
	}
	if s.TaxPercent != nil && !finite(*s.TaxPercent) {
		return fmt.Errorf("%w: tax_percent must be a finite number", ErrInvalidConfig)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp brings a configuration into the ranges the engine expects: years to
// [MinYears, MaxYears], runs to [MinRuns, MaxRuns] (0 means DefaultRuns),
// amounts and rates to >= 0. Mode and frequency get their defaults.
func Clamp(config *Configuration) {
	s := &config.Scenario
	s.Amount = max(0, s.Amount)
	s.Years = min(MaxYears, max(MinYears, s.Years))
	s.RatePercent = max(0, s.RatePercent)
	if s.InflationPercent != nil {
		v := max(0, *s.InflationPercent)
		s.InflationPercent = &v
	}
	if s.TaxPercent != nil {
		v := max(0, *s.TaxPercent)
		s.TaxPercent = &v
	}
	if s.Frequency == 0 {
		s.Frequency = domain.Monthly
	}

	if config.Mode == "" {
		config.Mode = domain.ModeDeterministic
	}
	if config.MonteCarlo.Runs == 0 {
		config.MonteCarlo.Runs = DefaultRuns
	}
	config.MonteCarlo.Runs = min(MaxRuns, max(MinRuns, config.MonteCarlo.Runs))
	config.MonteCarlo.Workers = max(0, config.MonteCarlo.Workers)
}

// Parameters converts the scenario to engine parameters, turning percentages
// into fractions.
func (s Scenario) Parameters() domain.ProjectionParameters {
	params := domain.ProjectionParameters{
		Amount:    s.Amount,
		Years:     s.Years,
		Rate:      s.RatePercent / 100,
		Recurring: s.Recurring,
		Frequency: s.Frequency,
	}
	if s.InflationPercent != nil {
		v := *s.InflationPercent / 100
		params.Inflation = &v
	}
	if s.TaxPercent != nil {
		v := *s.TaxPercent / 100
		params.TaxRate = &v
	}
	return params
}

// CreateExampleConfiguration returns a monthly savings plan suitable as a
// starting point for a scenario file.
func (ip *InputParser) CreateExampleConfiguration() *Configuration {
	inflation := 2.0
	tax := 27.5
	return &Configuration{
		Name: "Monthly ETF savings plan",
		Mode: domain.ModeAggregate,
		Scenario: Scenario{
			Amount:           200,
			Years:            30,
			RatePercent:      7,
			Recurring:        true,
			Frequency:        domain.Monthly,
			InflationPercent: &inflation,
			TaxPercent:       &tax,
		},
		MonteCarlo: MonteCarloSettings{
			Runs: DefaultRuns,
		},
	}
}

// Marshal renders a configuration as YAML.
func (ip *InputParser) Marshal(config *Configuration) ([]byte, error) {
	out, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return out, nil
}
