package calculation

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/growth-projector/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	orig := nowFunc
	SetNowFunc(func() time.Time { return now })
	t.Cleanup(func() { SetNowFunc(orig) })
	return now
}

func TestProjectDeterministic(t *testing.T) {
	now := fixedNow(t)
	engine := NewProjectionEngine(nil)

	params := domain.ProjectionParameters{Amount: 100, Years: 10, Rate: 0.07}
	result, err := engine.Project(context.Background(), params, ProjectionOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.ModeDeterministic, result.Mode)
	assert.Equal(t, now, result.GeneratedAt)
	assert.Equal(t, domain.Monthly, result.Parameters.Frequency, "zero frequency defaults to monthly")
	assert.Len(t, result.Series, 11)
	assert.Nil(t, result.Band)
	assert.Nil(t, result.Summary)
	assert.Nil(t, result.Returns)

	nominal, _ := result.Outcome.Nominal.Float64()
	assert.InDelta(t, 196.72, nominal, 0.01)
	assert.True(t, result.Outcome.Principal.Equal(decimal.NewFromInt(100)))
	assert.False(t, result.Outcome.HasReal)
	assert.True(t, result.Outcome.Real.Equal(result.Outcome.Nominal))
}

func TestProjectSingle(t *testing.T) {
	engine := NewProjectionEngine(nil)
	params := domain.ProjectionParameters{Amount: 100, Years: 20, Recurring: true, Frequency: domain.Weekly}

	a, err := engine.Project(context.Background(), params, ProjectionOptions{Mode: domain.ModeSingle, Seed: 11})
	require.NoError(t, err)
	b, err := engine.Project(context.Background(), params, ProjectionOptions{Mode: domain.ModeSingle, Seed: 11})
	require.NoError(t, err)

	assert.Equal(t, a.Series, b.Series)
	assert.Equal(t, uint64(11), a.Seed)
	assert.Len(t, a.Series, 21)
	assert.True(t, a.Outcome.Principal.Equal(decimal.NewFromInt(100*20*52)))
	assert.True(t, a.Outcome.Nominal.Equal(decimal.NewFromFloat(a.Series.Final().Nominal)))
}

func TestProjectAggregate(t *testing.T) {
	engine := NewProjectionEngine(nil)
	params := domain.ProjectionParameters{Amount: 10000, Years: 15, Inflation: ptr(0.03), TaxRate: ptr(0.2)}

	result, err := engine.Project(context.Background(), params, ProjectionOptions{Mode: domain.ModeAggregate, Runs: 500, Seed: 42, Workers: 4})
	require.NoError(t, err)

	require.NotNil(t, result.Band)
	require.NotNil(t, result.Summary)
	assert.Equal(t, 500, result.Runs)
	assert.Equal(t, uint64(42), result.Seed)
	assert.Equal(t, result.Band.Median, result.Series)
	assert.True(t, result.Outcome.Nominal.Equal(decimal.NewFromFloat(result.Summary.Median)))
	assert.True(t, result.Outcome.Principal.Equal(decimal.NewFromInt(10000)))
	assert.True(t, result.Outcome.HasReal)
	assert.True(t, result.Outcome.HasAfterTax)
	assert.True(t, result.Outcome.Real.LessThan(result.Outcome.Nominal))

	require.NotNil(t, result.Returns)
	assert.Equal(t, "default", result.Returns.Name)
	assert.Equal(t, 26, result.Returns.Count)
	assert.Equal(t, 1999, result.Returns.FirstYear)
}

func TestProjectAggregateErrors(t *testing.T) {
	engine := NewProjectionEngine(nil)
	params := domain.ProjectionParameters{Amount: 100, Years: 5}

	_, err := engine.Project(context.Background(), params, ProjectionOptions{Mode: domain.ModeAggregate, Runs: 0})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Project(ctx, params, ProjectionOptions{Mode: domain.ModeAggregate, Runs: 100})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = engine.Project(context.Background(), params, ProjectionOptions{Mode: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestProjectUsesCustomTable(t *testing.T) {
	table, err := NewReturnTable("flat", []float64{0.1})
	require.NoError(t, err)
	engine := NewProjectionEngine(table)

	result, err := engine.Project(context.Background(),
		domain.ProjectionParameters{Amount: 1000, Years: 3},
		ProjectionOptions{Mode: domain.ModeSingle, Seed: 1})
	require.NoError(t, err)

	final, _ := result.Outcome.Nominal.Float64()
	assert.InDelta(t, 1210, final, 1e-6)
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name      string
		nominal   float64
		principal float64
		years     int
		inflation *float64
		taxRate   *float64
		real      float64
		afterTax  float64
	}{
		{"no derivations", 2000, 1000, 10, nil, nil, 2000, 2000},
		{"zero inflation", 2000, 1000, 10, ptr(0), nil, 2000, 2000},
		{"inflation", 1210, 1000, 2, ptr(0.1), nil, 1000, 1210},
		{"tax on gain", 2000, 1000, 10, nil, ptr(0.25), 2000, 1750},
		{"no tax on loss", 800, 1000, 10, nil, ptr(0.25), 800, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Derive(tt.nominal, tt.principal, tt.years, tt.inflation, tt.taxRate)
			gotReal, _ := out.Real.Float64()
			gotAfterTax, _ := out.AfterTax.Float64()
			assert.InDelta(t, tt.real, gotReal, 1e-6)
			assert.InDelta(t, tt.afterTax, gotAfterTax, 1e-6)
			assert.Equal(t, tt.inflation != nil, out.HasReal)
			assert.Equal(t, tt.taxRate != nil, out.HasAfterTax)
		})
	}
}

func TestValidateParameters(t *testing.T) {
	valid := domain.ProjectionParameters{Amount: 100, Years: 10, Rate: 0.05, Frequency: domain.Weekly}
	require.NoError(t, ValidateParameters(valid))

	tests := []struct {
		name   string
		mutate func(p *domain.ProjectionParameters)
	}{
		{"NaN amount", func(p *domain.ProjectionParameters) { p.Amount = math.NaN() }},
		{"infinite rate", func(p *domain.ProjectionParameters) { p.Rate = math.Inf(1) }},
		{"negative amount", func(p *domain.ProjectionParameters) { p.Amount = -1 }},
		{"negative years", func(p *domain.ProjectionParameters) { p.Years = -1 }},
		{"negative inflation", func(p *domain.ProjectionParameters) { p.Inflation = ptr(-0.01) }},
		{"NaN tax", func(p *domain.ProjectionParameters) { p.TaxRate = ptr(math.NaN()) }},
		{"bad frequency", func(p *domain.ProjectionParameters) { p.Frequency = 7 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := ValidateParameters(p)
			assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)
		})
	}
}
