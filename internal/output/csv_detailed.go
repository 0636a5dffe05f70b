package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/growth-projector/internal/domain"
)

// CSVDetailedExporter provides one row per projection year. Aggregate results
// carry the P10/median/P90 band; other modes carry the single series.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if b := result.Band; b != nil {
		if err := w.Write([]string{"Year", "P10", "Median", "P90", "Principal"}); err != nil {
			return nil, err
		}
		for y := 0; y < b.Len(); y++ {
			row := []string{
				intToString(y),
				formatFloat(b.P10[y].Nominal),
				formatFloat(b.Median[y].Nominal),
				formatFloat(b.P90[y].Nominal),
				formatFloat(b.Median[y].Principal),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	} else {
		if err := w.Write([]string{"Year", "Nominal", "Principal"}); err != nil {
			return nil, err
		}
		for _, snap := range result.Series {
			if err := w.Write([]string{intToString(snap.Year), formatFloat(snap.Nominal), formatFloat(snap.Principal)}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
