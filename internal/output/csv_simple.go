package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/growth-projector/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per projection).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Mode", "Years", "Recurring", "Frequency", "Amount", "Nominal", "Principal", "Real", "AfterTax", "Runs", "Seed", "Median", "P10", "P90", "Best", "Worst"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	p, o := result.Parameters, result.Outcome
	row := []string{
		string(result.Mode),
		intToString(p.Years),
		boolToString(p.Recurring),
		p.Frequency.String(),
		formatFloat(p.Amount),
		o.Nominal.StringFixed(2),
		o.Principal.StringFixed(2),
		optionalFixed(o.HasReal, o.Real.StringFixed(2)),
		optionalFixed(o.HasAfterTax, o.AfterTax.StringFixed(2)),
		intToString(result.Runs),
		"",
		"", "", "", "", "",
	}
	if result.Seed != 0 {
		row[10] = uintToString(result.Seed)
	}
	if s := result.Summary; s != nil {
		row[11] = formatFloat(s.Median)
		row[12] = formatFloat(s.P10)
		row[13] = formatFloat(s.P90)
		row[14] = formatFloat(s.Best)
		row[15] = formatFloat(s.Worst)
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func optionalFixed(ok bool, v string) string {
	if !ok {
		return ""
	}
	return v
}
