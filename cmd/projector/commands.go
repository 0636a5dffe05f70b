package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/growth-projector/internal/calculation"
	"github.com/rpgo/growth-projector/internal/config"
	"github.com/rpgo/growth-projector/internal/output"
)

func newReturnsCmd(a *app) *cobra.Command {
	var file string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "returns",
		Short: "Show the historical return table used by the stochastic modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := calculation.DefaultReturnTable()
			if file != "" {
				loaded, err := calculation.LoadReturnTableCSV(file)
				if err != nil {
					return fmt.Errorf("load returns: %w", err)
				}
				table = loaded
			}
			stats := table.Statistics()
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Table      any                          `json:"table"`
					Statistics calculation.ReturnStatistics `json:"statistics"`
				}{table.Info(), stats})
			}

			info := table.Info()
			fmt.Fprintf(out, "Return table %q (%s): %d years", info.Name, info.Source, info.Count)
			if info.FirstYear != 0 {
				fmt.Fprintf(out, ", %d-%d", info.FirstYear, info.LastYear)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  Mean:    %s\n", a.locale.Percent(stats.Mean))
			fmt.Fprintf(out, "  Median:  %s\n", a.locale.Percent(stats.Median))
			fmt.Fprintf(out, "  Std dev: %s\n", a.locale.Percent(stats.StdDev))
			fmt.Fprintf(out, "  Worst:   %s\n", a.locale.Percent(stats.Min))
			fmt.Fprintf(out, "  Best:    %s\n", a.locale.Percent(stats.Max))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "CSV of annual returns (year,return)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Formats: %s, all\n", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintf(out, "Aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [file]",
		Short: "Write an example scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "scenario.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			example := config.NewInputParser().CreateExampleConfiguration()
			if err := output.SaveConfiguration(example, path); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example scenario written to %s\n", path)
			return nil
		},
	}
}
