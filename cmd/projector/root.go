package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rpgo/growth-projector/internal/config"
	"github.com/rpgo/growth-projector/internal/output"
	"github.com/rpgo/growth-projector/internal/telemetry"
)

// app carries process-wide state prepared before any subcommand runs.
type app struct {
	env      config.Env
	logger   *slog.Logger
	locale   output.Locale
	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "projector",
		Short:         "Project the growth of one-off and recurring investments",
		Long:          "projector compounds a fixed annual return or resamples historical returns to project how an investment grows, with optional inflation and tax adjustments.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.shutdown == nil {
				return nil
			}
			return a.shutdown(cmd.Context())
		},
	}

	root.AddCommand(
		newProjectCmd(a),
		newReturnsCmd(a),
		newFormatsCmd(),
		newInitCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	level, err := env.SlogLevel()
	if err != nil {
		return err
	}
	a.env = env
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	a.locale, err = output.NewLocale(env.Locale, env.Currency)
	if err != nil {
		return fmt.Errorf("locale: %w", err)
	}

	a.shutdown, err = telemetry.Setup(cmd.Context(), telemetry.ServiceName, env.OTelEndpoint, env.OTelEnabled)
	if err != nil {
		a.logger.Warn("tracing disabled", "error", err)
	}
	return nil
}
