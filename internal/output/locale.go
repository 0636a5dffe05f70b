package output

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale controls how console output renders money.
type Locale struct {
	Tag      language.Tag
	Currency currency.Unit
	Digits   int // fraction digits shown for money
}

// DefaultLocale renders whole euros with Austrian number formatting.
var DefaultLocale = Locale{
	Tag:      language.MustParse("de-AT"),
	Currency: currency.EUR,
	Digits:   0,
}

// NewLocale parses a BCP 47 tag and an ISO 4217 currency code.
func NewLocale(tag, code string) (Locale, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return Locale{}, fmt.Errorf("parse locale %q: %w", tag, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Locale{}, fmt.Errorf("parse currency %q: %w", code, err)
	}
	return Locale{Tag: t, Currency: unit, Digits: DefaultLocale.Digits}, nil
}

func (l Locale) orDefault() Locale {
	if l.Tag == language.Und {
		return DefaultLocale
	}
	return l
}

// Money renders an amount with the locale's grouping and the ISO currency code,
// e.g. "1,234,567 EUR" for en-US.
func (l Locale) Money(amount decimal.Decimal) string {
	return l.Number(amount.InexactFloat64()) + " " + l.orDefault().Currency.String()
}

// MoneyFloat renders a float amount like Money.
func (l Locale) MoneyFloat(v float64) string {
	return l.Money(decimal.NewFromFloat(v))
}

// Number renders v with the locale's grouping at the configured precision.
func (l Locale) Number(v float64) string {
	l = l.orDefault()
	p := message.NewPrinter(l.Tag)
	return p.Sprint(number.Decimal(v, number.MinFractionDigits(l.Digits), number.MaxFractionDigits(l.Digits)))
}

// Percent renders a fraction as a localized percentage with one decimal.
func (l Locale) Percent(fraction float64) string {
	l = l.orDefault()
	p := message.NewPrinter(l.Tag)
	return p.Sprint(number.Percent(fraction, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}
