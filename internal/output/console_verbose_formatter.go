package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/rpgo/growth-projector/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report: inputs,
// assumptions, headline outcome and the year-by-year table.
type ConsoleVerboseFormatter struct {
	Locale Locale
}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) WithLocale(l Locale) Formatter {
	return ConsoleVerboseFormatter{Locale: l}
}

func (c ConsoleVerboseFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	loc := c.Locale
	p := result.Parameters

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "INVESTMENT GROWTH PROJECTION")
	fmt.Fprintln(&buf, "=================================================================================")
	if !result.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", result.GeneratedAt.Format(time.RFC3339))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INPUTS:")
	fmt.Fprintf(&buf, "  Contribution: %s (%s)\n", loc.MoneyFloat(p.Amount), planLabel(p))
	fmt.Fprintf(&buf, "  Horizon:      %d years\n", p.Years)
	fmt.Fprintf(&buf, "  Mode:         %s\n", result.Mode)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(result) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "OUTCOME")
	fmt.Fprintln(&buf, strings.Repeat("=", 45))
	writeOutcome(&buf, loc, result)
	h := AnalyzeOutcome(result)
	fmt.Fprintf(&buf, "Gain:                  %s (%s)\n", loc.Money(h.Gain), FormatPercentage(h.GainPercent))
	fmt.Fprintln(&buf)

	if s := result.Summary; s != nil {
		fmt.Fprintf(&buf, "MONTE CARLO (%d runs, seed %d)\n", result.Runs, result.Seed)
		fmt.Fprintln(&buf, strings.Repeat("=", 45))
		fmt.Fprintf(&buf, "  Median: %s\n", loc.MoneyFloat(s.Median))
		fmt.Fprintf(&buf, "  P10:    %s\n", loc.MoneyFloat(s.P10))
		fmt.Fprintf(&buf, "  P90:    %s\n", loc.MoneyFloat(s.P90))
		fmt.Fprintf(&buf, "  Best:   %s\n", loc.MoneyFloat(s.Best))
		fmt.Fprintf(&buf, "  Worst:  %s\n", loc.MoneyFloat(s.Worst))
		fmt.Fprintln(&buf)
	}

	writeYearTable(&buf, loc, result)
	return buf.Bytes(), nil
}

func writeYearTable(buf *bytes.Buffer, loc Locale, result *domain.ProjectionResult) {
	fmt.Fprintln(buf, "YEAR-BY-YEAR")
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	if b := result.Band; b != nil {
		fmt.Fprintf(buf, "%-6s %18s %18s %18s %18s\n", "Year", "P10", "Median", "P90", "Contributed")
		for y := 0; y < b.Len(); y++ {
			fmt.Fprintf(buf, "%-6d %18s %18s %18s %18s\n", y,
				loc.MoneyFloat(b.P10[y].Nominal),
				loc.MoneyFloat(b.Median[y].Nominal),
				loc.MoneyFloat(b.P90[y].Nominal),
				loc.MoneyFloat(b.Median[y].Principal),
			)
		}
		return
	}
	fmt.Fprintf(buf, "%-6s %18s %18s\n", "Year", "Value", "Contributed")
	for _, snap := range result.Series {
		fmt.Fprintf(buf, "%-6d %18s %18s\n", snap.Year, loc.MoneyFloat(snap.Nominal), loc.MoneyFloat(snap.Principal))
	}
}
