package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rpgo/growth-projector/internal/domain"
	"github.com/rpgo/growth-projector/pkg/money"
)

// ErrInvalidParameter signals input the engine cannot compute with
// (non-finite or negative numbers, negative horizons, non-positive run counts).
var ErrInvalidParameter = errors.New("invalid parameter")

// ProjectionOptions select how ProjectionEngine.Project computes a result.
type ProjectionOptions struct {
	Mode    domain.Mode
	Runs    int    // aggregate mode only
	Seed    uint64 // 0 draws a seed
	Workers int
}

// ProjectionEngine orchestrates the deterministic and stochastic projections.
type ProjectionEngine struct {
	Table  *ReturnTable
	Logger Logger
}

// NewProjectionEngine creates an engine sampling from table; nil uses the
// built-in return table.
func NewProjectionEngine(table *ReturnTable) *ProjectionEngine {
	if table == nil {
		table = DefaultReturnTable()
	}
	return &ProjectionEngine{Table: table, Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// Project computes one projection in the requested mode.
func (pe *ProjectionEngine) Project(ctx context.Context, params domain.ProjectionParameters, opts ProjectionOptions) (*domain.ProjectionResult, error) {
	if err := ValidateParameters(params); err != nil {
		return nil, err
	}
	if params.Frequency == 0 {
		params.Frequency = domain.Monthly
	}
	mode := opts.Mode
	if mode == "" {
		mode = domain.ModeDeterministic
	}

	result := &domain.ProjectionResult{
		Mode:        mode,
		Parameters:  params,
		GeneratedAt: nowFunc(),
	}

	var nominal, principal float64
	switch mode {
	case domain.ModeDeterministic:
		result.Series = FixedRateSeries(params)
		nominal, principal = FixedRateOutcome(params)

	case domain.ModeSingle:
		seed := resolveSeed(opts.Seed)
		sampler := NewReturnSampler(pe.Table, NewSeededSource(seed, 0))
		result.Series = sampler.SimulatePath(params.Years, params.Recurring, params.Frequency, params.Amount)
		result.Seed = seed
		result.Returns = pe.Table.Info()
		nominal, principal = result.Series.Final().Nominal, params.TotalPrincipal()

	case domain.ModeAggregate:
		mc, err := pe.runMonteCarlo(ctx, params, opts)
		if err != nil {
			return nil, err
		}
		result.Band = &mc.Band
		result.Summary = &mc.Summary
		result.Series = mc.Band.Median
		result.Runs = mc.NumSimulations
		result.Seed = mc.Seed
		result.Returns = pe.Table.Info()
		nominal, principal = mc.Band.Median.Final().Nominal, params.TotalPrincipal()

	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidParameter, mode)
	}

	result.Outcome = Derive(nominal, principal, params.Years, params.Inflation, params.TaxRate)
	pe.logger().Debugf("projection %s: years=%d nominal=%.2f principal=%.2f", mode, params.Years, nominal, principal)
	return result, nil
}

func (pe *ProjectionEngine) runMonteCarlo(ctx context.Context, params domain.ProjectionParameters, opts ProjectionOptions) (*MonteCarloResult, error) {
	config := MonteCarloConfig{
		NumSimulations:  opts.Runs,
		ProjectionYears: params.Years,
		Recurring:       params.Recurring,
		Frequency:       params.Frequency,
		Amount:          params.Amount,
		Seed:            opts.Seed,
		Workers:         opts.Workers,
	}
	simulator := NewMonteCarloSimulator(pe.Table, config)
	simulator.Logger = pe.logger()
	result, err := simulator.RunSimulation(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("monte carlo: %w", err)
	}
	return result, nil
}

func (pe *ProjectionEngine) logger() Logger {
	if pe.Logger == nil {
		return NopLogger{}
	}
	return pe.Logger
}

// Derive converts the final nominal value and principal into the headline
// outcome. Real and after-tax values are only filled when their rate is set.
func Derive(nominal, principal float64, years int, inflation, taxRate *float64) domain.Outcome {
	n, p := money.NewMoney(nominal), money.NewMoney(principal)
	out := domain.Outcome{
		Nominal:   n.Decimal,
		Principal: p.Decimal,
		Real:      n.Decimal,
		AfterTax:  n.Decimal,
	}
	if inflation != nil {
		out.Real = n.Deflate(*inflation, years).Decimal
		out.HasReal = true
	}
	if taxRate != nil {
		out.AfterTax = n.AfterTax(p, *taxRate).Decimal
		out.HasAfterTax = true
	}
	return out
}

// ValidateParameters rejects input the engine would otherwise turn into NaN.
// It does not clamp; see config.Clamp for upstream clamping.
func ValidateParameters(p domain.ProjectionParameters) error {
	type field struct {
		name  string
		value float64
	}
	checks := []field{{"amount", p.Amount}, {"rate", p.Rate}}
	if p.Inflation != nil {
		checks = append(checks, field{"inflation", *p.Inflation})
	}
	if p.TaxRate != nil {
		checks = append(checks, field{"tax rate", *p.TaxRate})
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, c.name, c.value)
		}
		if c.value < 0 {
			return fmt.Errorf("%w: %s cannot be negative, got %v", ErrInvalidParameter, c.name, c.value)
		}
	}
	if p.Years < 0 {
		return fmt.Errorf("%w: years cannot be negative, got %d", ErrInvalidParameter, p.Years)
	}
	if p.Frequency != 0 && !p.Frequency.Valid() {
		return fmt.Errorf("%w: unsupported frequency %d", ErrInvalidParameter, int(p.Frequency))
	}
	return nil
}
