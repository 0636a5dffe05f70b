package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/growth-projector/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct {
	Locale Locale
}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) WithLocale(l Locale) Formatter { return ConsoleFormatter{Locale: l} }

func (c ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	loc := c.Locale
	p := result.Parameters

	fmt.Fprintln(&buf, "PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Mode: %s  Years: %d  Plan: %s\n", result.Mode, p.Years, planLabel(p))
	writeOutcome(&buf, loc, result)

	if s := result.Summary; s != nil {
		fmt.Fprintf(&buf, "Monte Carlo (%d runs): median=%s p10=%s p90=%s best=%s worst=%s\n",
			result.Runs,
			loc.MoneyFloat(s.Median),
			loc.MoneyFloat(s.P10),
			loc.MoneyFloat(s.P90),
			loc.MoneyFloat(s.Best),
			loc.MoneyFloat(s.Worst),
		)
	}
	return buf.Bytes(), nil
}

func writeOutcome(buf *bytes.Buffer, loc Locale, result *domain.ProjectionResult) {
	o := result.Outcome
	fmt.Fprintf(buf, "Final value (nominal): %s\n", loc.Money(o.Nominal))
	fmt.Fprintf(buf, "Contributed:           %s\n", loc.Money(o.Principal))
	if o.HasReal {
		fmt.Fprintf(buf, "Final value (real):    %s\n", loc.Money(o.Real))
	}
	if o.HasAfterTax {
		fmt.Fprintf(buf, "After tax:             %s\n", loc.Money(o.AfterTax))
	}
}

func planLabel(p domain.ProjectionParameters) string {
	if !p.Recurring {
		return "one-off"
	}
	return p.Frequency.String()
}
