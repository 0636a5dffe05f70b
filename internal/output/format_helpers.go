package output

import (
	"errors"
	"strconv"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedFormat is returned for format names with no registered formatter.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// FormatCurrency formats a decimal as a plain euro amount with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return "€" + amount.StringFixed(2) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// formatFloat writes machine-readable amounts for CSV.
func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func intToString(i int) string { return strconv.Itoa(i) }

func uintToString(u uint64) string { return strconv.FormatUint(u, 10) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
