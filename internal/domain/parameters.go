package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFrequency is returned for frequencies other than monthly,
// weekly or daily.
var ErrUnsupportedFrequency = errors.New("unsupported contribution frequency")

// Frequency is the number of contribution periods per year.
type Frequency int

const (
	Monthly Frequency = 12
	Weekly  Frequency = 52
	Daily   Frequency = 365
)

// Periods returns the number of contribution periods per year used by the
// stochastic path. Anything that is not monthly or weekly is treated as daily.
func (f Frequency) Periods() int {
	switch f {
	case Monthly:
		return 12
	case Weekly:
		return 52
	default:
		return 365
	}
}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	return f == Monthly || f == Weekly || f == Daily
}

func (f Frequency) String() string {
	switch f {
	case Monthly:
		return "monthly"
	case Weekly:
		return "weekly"
	case Daily:
		return "daily"
	default:
		return strconv.Itoa(int(f))
	}
}

// ParseFrequency accepts either the name or the period count.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "12", "":
		return Monthly, nil
	case "weekly", "52":
		return Weekly, nil
	case "daily", "365":
		return Daily, nil
	}
	return 0, fmt.Errorf("%w %q (want monthly, weekly or daily)", ErrUnsupportedFrequency, s)
}

// UnmarshalYAML lets scenario files use either "weekly" or 52.
func (f *Frequency) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseFrequency(node.Value)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalYAML writes the frequency by name.
func (f Frequency) MarshalYAML() (any, error) {
	return f.String(), nil
}

// ProjectionParameters are the inputs of a single projection. Values are
// expected to be clamped upstream (see config.Clamp).
type ProjectionParameters struct {
	Amount    float64   `json:"amount" yaml:"amount"`
	Years     int       `json:"years" yaml:"years"`
	Rate      float64   `json:"rate" yaml:"rate"` // deterministic mode only
	Recurring bool      `json:"recurring" yaml:"recurring"`
	Frequency Frequency `json:"frequency" yaml:"frequency"`

	// Optional downstream derivations; nil means disabled.
	Inflation *float64 `json:"inflation,omitempty" yaml:"inflation,omitempty"`
	TaxRate   *float64 `json:"tax_rate,omitempty" yaml:"tax_rate,omitempty"`
}

// TotalPrincipal is the cumulative contribution after the full horizon.
func (p ProjectionParameters) TotalPrincipal() float64 {
	if !p.Recurring {
		return p.Amount
	}
	return p.Amount * float64(p.Years) * float64(p.Frequency.Periods())
}
