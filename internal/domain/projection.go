package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearSnapshot is the state of a projection at the end of one year.
type YearSnapshot struct {
	Year      int     `json:"year"`
	Nominal   float64 `json:"nominal"`
	Principal float64 `json:"principal"` // cumulative contributions paid by Year
}

// Series is a year-by-year projection, index-aligned with Year.
type Series []YearSnapshot

// Final returns the last snapshot, or the zero snapshot for an empty series.
func (s Series) Final() YearSnapshot {
	if len(s) == 0 {
		return YearSnapshot{}
	}
	return s[len(s)-1]
}

// Nominals returns the nominal values in year order.
func (s Series) Nominals() []float64 {
	out := make([]float64, len(s))
	for i, snap := range s {
		out[i] = snap.Nominal
	}
	return out
}

// QuantileBand holds the per-year P10/median/P90 envelope across simulated paths.
type QuantileBand struct {
	P10    Series `json:"p10"`
	Median Series `json:"median"`
	P90    Series `json:"p90"`
}

// Len returns the number of years covered (Y+1).
func (b QuantileBand) Len() int { return len(b.Median) }

// MonteCarloSummary describes the distribution of final-year nominal values.
type MonteCarloSummary struct {
	Median float64 `json:"median"`
	P10    float64 `json:"p10"`
	P90    float64 `json:"p90"`
	Best   float64 `json:"best"`
	Worst  float64 `json:"worst"`
}

// Mode selects how a projection is computed.
type Mode string

const (
	ModeDeterministic Mode = "deterministic"
	ModeSingle        Mode = "single"
	ModeAggregate     Mode = "aggregate"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeDeterministic || m == ModeSingle || m == ModeAggregate
}

// Outcome holds the headline figures shown to the user.
type Outcome struct {
	Nominal     decimal.Decimal `json:"nominal"`
	Principal   decimal.Decimal `json:"principal"`
	Real        decimal.Decimal `json:"real"`
	AfterTax    decimal.Decimal `json:"after_tax"`
	HasReal     bool            `json:"has_real"`
	HasAfterTax bool            `json:"has_after_tax"`
}

// ReturnTableInfo identifies the return table a stochastic projection sampled from.
type ReturnTableInfo struct {
	Name      string `json:"name"`
	Source    string `json:"source"`
	Count     int    `json:"count"`
	FirstYear int    `json:"first_year,omitempty"`
	LastYear  int    `json:"last_year,omitempty"`
}

// ProjectionResult is everything a presentation layer needs for one projection.
type ProjectionResult struct {
	Mode        Mode                 `json:"mode"`
	Parameters  ProjectionParameters `json:"parameters"`
	Series      Series               `json:"series"`
	Band        *QuantileBand        `json:"band,omitempty"`
	Summary     *MonteCarloSummary   `json:"summary,omitempty"`
	Outcome     Outcome              `json:"outcome"`
	Runs        int                  `json:"runs,omitempty"`
	Seed        uint64               `json:"seed,omitempty"`
	Returns     *ReturnTableInfo     `json:"returns,omitempty"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// YearDetail is the readout for one selected year of a projection.
type YearDetail struct {
	Year      int     `json:"year"`
	Nominal   float64 `json:"nominal"`
	Principal float64 `json:"principal"`
	HasBand   bool    `json:"has_band"`
	P10       float64 `json:"p10,omitempty"`
	P90       float64 `json:"p90,omitempty"`
}

// Detail returns the readout for year, or false when year is outside the
// projected range. Selection state belongs to the caller.
func (r *ProjectionResult) Detail(year int) (YearDetail, bool) {
	if r == nil || year < 0 || year >= len(r.Series) {
		return YearDetail{}, false
	}
	snap := r.Series[year]
	d := YearDetail{Year: snap.Year, Nominal: snap.Nominal, Principal: snap.Principal}
	if r.Band != nil && year < len(r.Band.P10) && year < len(r.Band.P90) {
		d.HasBand = true
		d.P10 = r.Band.P10[year].Nominal
		d.P90 = r.Band.P90[year].Nominal
	}
	return d, true
}
