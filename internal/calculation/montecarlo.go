package calculation

import (
	"context"
	"fmt"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/rpgo/growth-projector/internal/domain"
)

const tracerName = "github.com/rpgo/growth-projector/internal/calculation"

// Band quantiles.
const (
	lowerQuantile  = 0.10
	medianQuantile = 0.50
	upperQuantile  = 0.90
)

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	NumSimulations  int
	ProjectionYears int
	Recurring       bool
	Frequency       domain.Frequency
	Amount          float64
	Seed            uint64 // 0 draws a seed
	Workers         int    // <= 0 uses GOMAXPROCS
}

// MonteCarloResult represents the aggregated outcome of a Monte Carlo simulation
type MonteCarloResult struct {
	Band            domain.QuantileBand      `json:"band"`
	Summary         domain.MonteCarloSummary `json:"summary"`
	NumSimulations  int                      `json:"num_simulations"`
	ProjectionYears int                      `json:"projection_years"`
	Seed            uint64                   `json:"seed"`
}

// MonteCarloSimulator runs bootstrap path simulations against one return table.
type MonteCarloSimulator struct {
	Table  *ReturnTable
	Seed   uint64
	Logger Logger
}

// NewMonteCarloSimulator creates a simulator; a zero config seed is replaced
// by a drawn one so the run can be reproduced from the result.
func NewMonteCarloSimulator(table *ReturnTable, config MonteCarloConfig) *MonteCarloSimulator {
	return &MonteCarloSimulator{
		Table:  table,
		Seed:   resolveSeed(config.Seed),
		Logger: NopLogger{},
	}
}

// RunSimulation executes config.NumSimulations independent paths and reduces
// them to per-year quantile bands and a final-value summary.
//
// Each run owns its generator and result slot; buckets are folded only after
// every run has finished. Cancellation is checked before each run.
func (mcs *MonteCarloSimulator) RunSimulation(ctx context.Context, config MonteCarloConfig) (*MonteCarloResult, error) {
	if mcs.Table == nil || mcs.Table.Len() == 0 {
		return nil, ErrEmptyReturnTable
	}
	if config.NumSimulations <= 0 {
		return nil, fmt.Errorf("%w: number of simulations must be positive, got %d", ErrInvalidParameter, config.NumSimulations)
	}
	if config.ProjectionYears < 0 {
		return nil, fmt.Errorf("%w: projection years cannot be negative, got %d", ErrInvalidParameter, config.ProjectionYears)
	}

	seed := mcs.Seed
	if config.Seed != 0 {
		seed = config.Seed
	}
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "montecarlo.run")
	defer span.End()
	span.SetAttributes(
		attribute.Int("montecarlo.runs", config.NumSimulations),
		attribute.Int("montecarlo.years", config.ProjectionYears),
		attribute.Bool("montecarlo.recurring", config.Recurring),
		attribute.Int("montecarlo.frequency", int(config.Frequency)),
		attribute.Int("montecarlo.workers", workers),
	)

	mcs.logger().Debugf("monte carlo: %d runs over %d years, seed=%d workers=%d",
		config.NumSimulations, config.ProjectionYears, seed, workers)

	runs := make([]domain.Series, config.NumSimulations)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range runs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sampler := NewReturnSampler(mcs.Table, NewSeededSource(seed, uint64(i)))
			runs[i] = sampler.SimulatePath(config.ProjectionYears, config.Recurring, config.Frequency, config.Amount)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		mcs.logger().Warnf("monte carlo aborted: %v", err)
		return nil, err
	}

	band, summary := aggregateRuns(runs, config)

	return &MonteCarloResult{
		Band:            band,
		Summary:         summary,
		NumSimulations:  config.NumSimulations,
		ProjectionYears: config.ProjectionYears,
		Seed:            seed,
	}, nil
}

// aggregateRuns folds simulated paths into per-year buckets and reduces them.
func aggregateRuns(runs []domain.Series, config MonteCarloConfig) (domain.QuantileBand, domain.MonteCarloSummary) {
	years := config.ProjectionYears
	buckets := make([][]float64, years+1)
	for y := range buckets {
		buckets[y] = make([]float64, 0, len(runs))
	}
	finals := make([]float64, 0, len(runs))

	for _, series := range runs {
		for y := 0; y <= years; y++ {
			buckets[y] = append(buckets[y], series[y].Nominal)
		}
		finals = append(finals, series[years].Nominal)
	}

	principal := ContributionSchedule(years, config.Recurring, config.Frequency, config.Amount)
	band := domain.QuantileBand{
		P10:    make(domain.Series, years+1),
		Median: make(domain.Series, years+1),
		P90:    make(domain.Series, years+1),
	}
	for y, bucket := range buckets {
		q := Quantiles(bucket, lowerQuantile, medianQuantile, upperQuantile)
		band.P10[y] = domain.YearSnapshot{Year: y, Nominal: q[0], Principal: principal[y]}
		band.Median[y] = domain.YearSnapshot{Year: y, Nominal: q[1], Principal: principal[y]}
		band.P90[y] = domain.YearSnapshot{Year: y, Nominal: q[2], Principal: principal[y]}
	}

	q := Quantiles(finals, lowerQuantile, medianQuantile, upperQuantile)
	worst, best := minMax(finals)
	summary := domain.MonteCarloSummary{
		Median: q[1],
		P10:    q[0],
		P90:    q[2],
		Best:   best,
		Worst:  worst,
	}
	return band, summary
}

func (mcs *MonteCarloSimulator) logger() Logger {
	if mcs.Logger == nil {
		return NopLogger{}
	}
	return mcs.Logger
}
