package calculation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rpgo/growth-projector/internal/domain"
)

// ErrEmptyReturnTable is returned when a return table has no usable rows.
var ErrEmptyReturnTable = errors.New("return table is empty")

// HistoricalDataPoint is one year's nominal annual return as a fraction.
type HistoricalDataPoint struct {
	Year   int     `json:"year"`
	Return float64 `json:"return"`
}

// ReturnTable is an ordered, immutable list of annual returns used for
// bootstrap sampling. Construct it with NewReturnTable, DefaultReturnTable or
// one of the loaders.
type ReturnTable struct {
	name       string
	source     string
	dataPoints []HistoricalDataPoint
}

// ReturnStatistics summarises a return table.
type ReturnStatistics struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// Mixed total/net index returns, roughly 1999-2024.
var defaultReturns = [...]float64{
	0.2534, -0.1292, -0.1652, -0.1954, 0.3376, 0.1525, 0.1002, 0.2065, 0.0957, -0.4033,
	0.3079, 0.1234, -0.0502, 0.1654, 0.2737, 0.0550, -0.0032, 0.0815, 0.2307, -0.0820,
	0.2840, 0.1650, 0.2235, -0.1773, 0.2442, 0.1919,
}

const defaultFirstYear = 1999

// DefaultReturnTable returns the built-in historical annual return series.
func DefaultReturnTable() *ReturnTable {
	points := make([]HistoricalDataPoint, len(defaultReturns))
	for i, r := range defaultReturns {
		points[i] = HistoricalDataPoint{Year: defaultFirstYear + i, Return: r}
	}
	return &ReturnTable{name: "default", source: "built-in", dataPoints: points}
}

// NewReturnTable builds a table from bare returns. Years are left at zero.
func NewReturnTable(name string, returns []float64) (*ReturnTable, error) {
	if len(returns) == 0 {
		return nil, ErrEmptyReturnTable
	}
	points := make([]HistoricalDataPoint, len(returns))
	for i, r := range returns {
		if !validReturn(r) {
			return nil, fmt.Errorf("%w: return %v at index %d", ErrInvalidParameter, r, i)
		}
		points[i] = HistoricalDataPoint{Return: r}
	}
	return &ReturnTable{name: name, source: "inline", dataPoints: points}, nil
}

// LoadReturnTableCSV loads a table from a CSV file with a year,return header.
func LoadReturnTableCSV(filePath string) (*ReturnTable, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	table, err := ReadReturnTableCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filePath, err)
	}
	table.source = filePath
	return table, nil
}

// ReadReturnTableCSV parses year,return rows. Malformed rows are skipped.
// Returns may be fractions (0.07) or percentages with a trailing % (7%).
func ReadReturnTableCSV(r io.Reader) (*ReturnTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var points []HistoricalDataPoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}
		value, ok := parseReturn(record[1])
		if !ok {
			continue
		}
		points = append(points, HistoricalDataPoint{Year: year, Return: value})
	}

	if len(points) == 0 {
		return nil, ErrEmptyReturnTable
	}
	return &ReturnTable{name: strings.TrimSpace(header[1]), source: "csv", dataPoints: points}, nil
}

func parseReturn(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		scale = 100
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !validReturn(v/scale) {
		return 0, false
	}
	return v / scale, true
}

// validReturn rejects non-finite values and losses beyond -100%, which have no
// monthly-equivalent rate.
func validReturn(r float64) bool {
	return !math.IsNaN(r) && !math.IsInf(r, 0) && r >= -1
}

// Len returns the number of returns in the table.
func (t *ReturnTable) Len() int { return len(t.dataPoints) }

// At returns the i-th return.
func (t *ReturnTable) At(i int) float64 { return t.dataPoints[i].Return }

// Name identifies the table in reports.
func (t *ReturnTable) Name() string { return t.name }

// Source describes where the table came from.
func (t *ReturnTable) Source() string { return t.source }

// Returns copies the returns in table order.
func (t *ReturnTable) Returns() []float64 {
	out := make([]float64, len(t.dataPoints))
	for i, dp := range t.dataPoints {
		out[i] = dp.Return
	}
	return out
}

// DataPoints copies the table rows.
func (t *ReturnTable) DataPoints() []HistoricalDataPoint {
	return append([]HistoricalDataPoint(nil), t.dataPoints...)
}

// YearRange returns the first and last year covered, or zeros when years are unknown.
func (t *ReturnTable) YearRange() (int, int) {
	minYear, maxYear := 0, 0
	for i, dp := range t.dataPoints {
		if i == 0 || dp.Year < minYear {
			minYear = dp.Year
		}
		if i == 0 || dp.Year > maxYear {
			maxYear = dp.Year
		}
	}
	return minYear, maxYear
}

// Info describes the table for reports.
func (t *ReturnTable) Info() *domain.ReturnTableInfo {
	first, last := t.YearRange()
	return &domain.ReturnTableInfo{
		Name:      t.name,
		Source:    t.source,
		Count:     len(t.dataPoints),
		FirstYear: first,
		LastYear:  last,
	}
}

// Statistics computes the population mean, median, standard deviation and range.
func (t *ReturnTable) Statistics() ReturnStatistics {
	values := t.Returns()
	if len(values) == 0 {
		return ReturnStatistics{}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var varianceSum float64
	for _, v := range values {
		diff := v - mean
		varianceSum += diff * diff
	}
	lo, hi := minMax(values)

	return ReturnStatistics{
		Mean:   mean,
		Median: Quantile(values, 0.5),
		StdDev: math.Sqrt(varianceSum / float64(len(values))),
		Min:    lo,
		Max:    hi,
		Count:  len(values),
	}
}
