package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rpgo/growth-projector/internal/calculation"
	"github.com/rpgo/growth-projector/internal/config"
	"github.com/rpgo/growth-projector/internal/domain"
	"github.com/rpgo/growth-projector/internal/output"
	"github.com/rpgo/growth-projector/internal/telemetry"
)

type projectOptions struct {
	configFile  string
	mode        string
	amount      float64
	years       int
	rate        float64
	recurring   bool
	frequency   string
	inflation   float64
	tax         float64
	runs        int
	seed        uint64
	workers     int
	returnsFile string
	format      string
	outputDir   string
	csvDir      string
	year        int
}

func newProjectCmd(a *app) *cobra.Command {
	opts := &projectOptions{}
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run a projection from flags or a scenario file",
		Example: `  projector project --amount 200 --years 30 --rate 7 --recurring
  projector project --config scenario.yaml --mode aggregate --runs 2000 --seed 42
  projector project --config scenario.yaml --format all --output reports/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runProject(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configFile, "config", "c", "", "scenario YAML file; flags override its values")
	f.StringVarP(&opts.mode, "mode", "m", string(domain.ModeDeterministic), "deterministic, single or aggregate")
	f.Float64VarP(&opts.amount, "amount", "a", 1000, "one-off amount or per-period contribution")
	f.IntVarP(&opts.years, "years", "y", 10, "projection horizon in years")
	f.Float64VarP(&opts.rate, "rate", "r", 7, "fixed annual return in percent (deterministic mode)")
	f.BoolVar(&opts.recurring, "recurring", false, "treat amount as a recurring contribution")
	f.StringVar(&opts.frequency, "frequency", "monthly", "contribution frequency: monthly, weekly or daily")
	f.Float64Var(&opts.inflation, "inflation", 0, "annual inflation in percent; enables the real value")
	f.Float64Var(&opts.tax, "tax", 0, "tax on gains in percent; enables the after-tax value")
	f.IntVar(&opts.runs, "runs", 0, "Monte Carlo runs in aggregate mode (default 1000)")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed; 0 draws one")
	f.IntVar(&opts.workers, "workers", 0, "parallel simulation workers; 0 uses all CPUs")
	f.StringVar(&opts.returnsFile, "returns-file", "", "CSV of historical annual returns to sample from")
	f.StringVarP(&opts.format, "format", "f", "console-lite", "report format (see 'projector formats')")
	f.StringVarP(&opts.outputDir, "output", "o", "", "write the report to a timestamped file in this directory")
	f.StringVar(&opts.csvDir, "csv-dir", "", "write Monte Carlo summary and band CSVs to this directory")
	f.IntVar(&opts.year, "year", 0, "print the readout for one projected year")
	return cmd
}

// buildConfiguration merges the scenario file, PROJECTOR_* settings and flags,
// in increasing precedence.
func (a *app) buildConfiguration(cmd *cobra.Command, opts *projectOptions) (*config.Configuration, error) {
	parser := config.NewInputParser()
	cfg := &config.Configuration{}
	if opts.configFile != "" {
		loaded, err := parser.LoadFromFile(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	a.env.Apply(cfg)

	flags := cmd.Flags()
	explicit := func(name string) bool { return opts.configFile == "" || flags.Changed(name) }

	if explicit("mode") {
		cfg.Mode = domain.Mode(strings.ToLower(strings.TrimSpace(opts.mode)))
	}
	s := &cfg.Scenario
	if explicit("amount") {
		s.Amount = opts.amount
	}
	if explicit("years") {
		s.Years = opts.years
	}
	if explicit("rate") {
		s.RatePercent = opts.rate
	}
	if explicit("recurring") {
		s.Recurring = opts.recurring
	}
	if explicit("frequency") {
		freq, err := domain.ParseFrequency(opts.frequency)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
		}
		s.Frequency = freq
	}
	if flags.Changed("inflation") {
		v := opts.inflation
		s.InflationPercent = &v
	}
	if flags.Changed("tax") {
		v := opts.tax
		s.TaxPercent = &v
	}
	if flags.Changed("runs") {
		cfg.MonteCarlo.Runs = opts.runs
	}
	if flags.Changed("seed") {
		cfg.MonteCarlo.Seed = opts.seed
	}
	if flags.Changed("workers") {
		cfg.MonteCarlo.Workers = opts.workers
	}
	if flags.Changed("returns-file") {
		cfg.ReturnsFile = opts.returnsFile
	}

	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, err
	}
	config.Clamp(cfg)
	return cfg, nil
}

func (a *app) runProject(cmd *cobra.Command, opts *projectOptions) error {
	cfg, err := a.buildConfiguration(cmd, opts)
	if err != nil {
		return err
	}

	var table *calculation.ReturnTable
	if cfg.ReturnsFile != "" {
		table, err = calculation.LoadReturnTableCSV(cfg.ReturnsFile)
		if err != nil {
			return fmt.Errorf("load returns: %w", err)
		}
	}
	engine := calculation.NewProjectionEngine(table)
	engine.SetLogger(calculation.NewSlogLogger(a.logger, "engine"))

	ctx, span := telemetry.Tracer().Start(cmd.Context(), "projector.project", trace.WithAttributes(
		attribute.String("mode", string(cfg.Mode)),
		attribute.Int("years", cfg.Scenario.Years),
		attribute.Bool("recurring", cfg.Scenario.Recurring),
	))
	defer span.End()

	result, err := engine.Project(ctx, cfg.Scenario.Parameters(), calculation.ProjectionOptions{
		Mode:    cfg.Mode,
		Runs:    cfg.MonteCarlo.Runs,
		Seed:    cfg.MonteCarlo.Seed,
		Workers: cfg.MonteCarlo.Workers,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	a.logger.Info("projection complete",
		"mode", result.Mode,
		"years", result.Parameters.Years,
		"nominal", result.Outcome.Nominal.StringFixed(2),
		"seed", result.Seed)

	if err := a.writeReport(cmd, opts, result); err != nil {
		return err
	}
	if opts.csvDir != "" {
		report, err := output.NewMonteCarloCSVReport(result)
		if err != nil {
			return err
		}
		if err := report.GenerateAllCSVReports(opts.csvDir); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Monte Carlo CSVs written to %s\n", opts.csvDir)
	}
	if cmd.Flags().Changed("year") {
		return a.writeYear(cmd, result, opts.year)
	}
	return nil
}

func (a *app) writeReport(cmd *cobra.Command, opts *projectOptions, result *domain.ProjectionResult) error {
	out := cmd.OutOrStdout()
	if opts.outputDir != "" {
		paths, err := output.GenerateReport(result, opts.format, opts.outputDir, a.locale)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(out, "Report written to %s\n", p)
		}
		return nil
	}

	if output.NormalizeFormatName(opts.format) == "all" {
		return errors.New("format all writes several files; pass --output")
	}
	f, err := output.GetLocalizedFormatter(opts.format, a.locale)
	if err != nil {
		return err
	}
	b, err := f.Format(result)
	if err != nil {
		return err
	}
	_, err = out.Write(b)
	return err
}

func (a *app) writeYear(cmd *cobra.Command, result *domain.ProjectionResult, year int) error {
	d, ok := result.Detail(year)
	if !ok {
		return fmt.Errorf("%w: year %d outside 0..%d", config.ErrInvalidConfig, year, len(result.Series)-1)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Year %d: %s (paid in %s)\n", d.Year, a.locale.MoneyFloat(d.Nominal), a.locale.MoneyFloat(d.Principal))
	if d.HasBand {
		fmt.Fprintf(out, "  P10-P90: %s to %s\n", a.locale.MoneyFloat(d.P10), a.locale.MoneyFloat(d.P90))
	}
	return nil
}
