package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/growth-projector/internal/domain"
)

func TestMonteCarloSimulator(t *testing.T) {
	config := MonteCarloConfig{
		NumSimulations:  1000,
		ProjectionYears: 25,
		Recurring:       true,
		Frequency:       domain.Monthly,
		Amount:          200,
		Seed:            12345,
	}

	simulator := NewMonteCarloSimulator(DefaultReturnTable(), config)
	result, err := simulator.RunSimulation(context.Background(), config)
	require.NoError(t, err)

	assert.Equal(t, config.NumSimulations, result.NumSimulations)
	assert.Equal(t, config.ProjectionYears, result.ProjectionYears)
	assert.Equal(t, uint64(12345), result.Seed)

	s := result.Summary
	assert.LessOrEqual(t, s.Worst, s.P10)
	assert.LessOrEqual(t, s.P10, s.Median)
	assert.LessOrEqual(t, s.Median, s.P90)
	assert.LessOrEqual(t, s.P90, s.Best)
	assert.Less(t, s.Worst, s.Best)
}

func TestMonteCarloBandAlignment(t *testing.T) {
	config := MonteCarloConfig{
		NumSimulations:  300,
		ProjectionYears: 12,
		Recurring:       true,
		Frequency:       domain.Weekly,
		Amount:          50,
		Seed:            7,
	}
	result, err := NewMonteCarloSimulator(DefaultReturnTable(), config).RunSimulation(context.Background(), config)
	require.NoError(t, err)

	band := result.Band
	require.Len(t, band.P10, 13)
	require.Len(t, band.Median, 13)
	require.Len(t, band.P90, 13)
	assert.Equal(t, 13, band.Len())

	schedule := ContributionSchedule(12, true, domain.Weekly, 50)
	for y := range band.Median {
		assert.Equal(t, y, band.P10[y].Year)
		assert.Equal(t, y, band.Median[y].Year)
		assert.Equal(t, y, band.P90[y].Year)
		assert.Equal(t, schedule[y], band.Median[y].Principal)
		assert.LessOrEqual(t, band.P10[y].Nominal, band.P90[y].Nominal)
	}
	assert.Equal(t, domain.YearSnapshot{}, band.Median[0])
	assert.Equal(t, result.Summary.Median, band.Median[12].Nominal)
}

func TestMonteCarloSeedIsReproducibleAcrossWorkers(t *testing.T) {
	base := MonteCarloConfig{
		NumSimulations:  400,
		ProjectionYears: 15,
		Recurring:       false,
		Frequency:       domain.Monthly,
		Amount:          10000,
		Seed:            2024,
	}
	var results []*MonteCarloResult
	for _, workers := range []int{1, 3, 16} {
		cfg := base
		cfg.Workers = workers
		r, err := NewMonteCarloSimulator(DefaultReturnTable(), cfg).RunSimulation(context.Background(), cfg)
		require.NoError(t, err)
		results = append(results, r)
	}
	assert.Equal(t, results[0].Band, results[1].Band)
	assert.Equal(t, results[0].Band, results[2].Band)
	assert.Equal(t, results[0].Summary, results[2].Summary)
}

func TestMonteCarloDrawsSeedWhenZero(t *testing.T) {
	orig := seedFunc
	SetSeedFunc(func() uint64 { return 777 })
	defer SetSeedFunc(orig)

	config := MonteCarloConfig{NumSimulations: 100, ProjectionYears: 5, Amount: 100}
	simulator := NewMonteCarloSimulator(DefaultReturnTable(), config)
	assert.Equal(t, uint64(777), simulator.Seed)

	result, err := simulator.RunSimulation(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, uint64(777), result.Seed)
}

func TestMonteCarloSingleReturnTable(t *testing.T) {
	table, err := NewReturnTable("flat", []float64{0.05})
	require.NoError(t, err)

	config := MonteCarloConfig{NumSimulations: 100, ProjectionYears: 2, Amount: 1000, Frequency: domain.Monthly, Seed: 1}
	result, err := NewMonteCarloSimulator(table, config).RunSimulation(context.Background(), config)
	require.NoError(t, err)

	s := result.Summary
	for _, v := range []float64{s.Median, s.P10, s.P90, s.Best, s.Worst} {
		assert.InDelta(t, 1050, v, 1e-9)
	}
	assert.InDelta(t, 1000, result.Band.P10[1].Nominal, 1e-9)
	assert.InDelta(t, 1000, result.Band.Median[1].Nominal, 1e-9)
	assert.InDelta(t, 1000, result.Band.P90[1].Nominal, 1e-9)
}

func TestMonteCarloZeroYears(t *testing.T) {
	config := MonteCarloConfig{NumSimulations: 100, ProjectionYears: 0, Recurring: true, Amount: 100, Seed: 3}
	result, err := NewMonteCarloSimulator(DefaultReturnTable(), config).RunSimulation(context.Background(), config)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Band.Len())
	assert.Equal(t, domain.MonteCarloSummary{}, result.Summary)
}

func TestMonteCarloInvalidRunCount(t *testing.T) {
	config := MonteCarloConfig{NumSimulations: 0, ProjectionYears: 5}
	_, err := NewMonteCarloSimulator(DefaultReturnTable(), config).RunSimulation(context.Background(), config)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestMonteCarloNilTable(t *testing.T) {
	config := MonteCarloConfig{NumSimulations: 10, ProjectionYears: 5}
	_, err := NewMonteCarloSimulator(nil, config).RunSimulation(context.Background(), config)
	assert.ErrorIs(t, err, ErrEmptyReturnTable)
}

func TestMonteCarloCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := MonteCarloConfig{NumSimulations: 500, ProjectionYears: 30, Recurring: true, Amount: 100, Seed: 5}
	result, err := NewMonteCarloSimulator(DefaultReturnTable(), config).RunSimulation(ctx, config)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAggregateRuns(t *testing.T) {
	runs := []domain.Series{
		{{}, {Year: 1, Nominal: 10}, {Year: 2, Nominal: 40}},
		{{}, {Year: 1, Nominal: 30}, {Year: 2, Nominal: 10}},
		{{}, {Year: 1, Nominal: 20}, {Year: 2, Nominal: 30}},
	}
	band, summary := aggregateRuns(runs, MonteCarloConfig{ProjectionYears: 2, Amount: 5})

	assert.Equal(t, 20.0, band.Median[1].Nominal)
	assert.InDelta(t, 12.0, band.P10[1].Nominal, 1e-12)
	assert.InDelta(t, 28.0, band.P90[1].Nominal, 1e-12)
	assert.Equal(t, 5.0, band.Median[2].Principal)

	assert.Equal(t, domain.MonteCarloSummary{Median: 30, P10: 14, P90: 38, Best: 40, Worst: 10}, roundSummary(summary))
}

func roundSummary(s domain.MonteCarloSummary) domain.MonteCarloSummary {
	r := func(v float64) float64 { return float64(int64(v*1e9+0.5)) / 1e9 }
	return domain.MonteCarloSummary{Median: r(s.Median), P10: r(s.P10), P90: r(s.P90), Best: r(s.Best), Worst: r(s.Worst)}
}
