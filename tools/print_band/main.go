package main

import (
	"context"
	"fmt"
	"log"

	"github.com/rpgo/growth-projector/internal/calculation"
	"github.com/rpgo/growth-projector/internal/domain"
)

// Prints the fixed-rate series next to the Monte Carlo band for a monthly
// plan, to eyeball how the two regimes diverge year by year.
func main() {
	params := domain.ProjectionParameters{
		Amount:    200,
		Years:     30,
		Rate:      0.07,
		Recurring: true,
		Frequency: domain.Monthly,
	}
	engine := calculation.NewProjectionEngine(nil)

	fixed, err := engine.Project(context.Background(), params, calculation.ProjectionOptions{Mode: domain.ModeDeterministic})
	if err != nil {
		log.Fatal(err)
	}
	mc, err := engine.Project(context.Background(), params, calculation.ProjectionOptions{Mode: domain.ModeAggregate, Runs: 1000, Seed: 12345})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%4s %12s %12s %12s %12s %12s\n", "Year", "Fixed", "P10", "Median", "P90", "Paid")
	for y := range mc.Series {
		d, _ := mc.Detail(y)
		fmt.Printf("%4d %12.2f %12.2f %12.2f %12.2f %12.2f\n", y, fixed.Series[y].Nominal, d.P10, d.Nominal, d.P90, d.Principal)
	}
	fmt.Printf("\nClosed-form fixed outcome: %s (series end %.2f)\n", fixed.Outcome.Nominal.StringFixed(2), fixed.Series.Final().Nominal)
}
