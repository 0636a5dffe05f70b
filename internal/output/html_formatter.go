package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/growth-projector/internal/domain"
)

// HTMLFormatter produces a static HTML report with the outcome and yearly table.
type HTMLFormatter struct {
	Locale Locale
}

func (h HTMLFormatter) Name() string { return "html" }

func (h HTMLFormatter) WithLocale(l Locale) Formatter { return HTMLFormatter{Locale: l} }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"money":  DefaultLocale.Money,
	"moneyf": DefaultLocale.MoneyFloat,
	"pct":    FormatPercentage,
}).Parse(htmlTemplateSource))

// bandRow is one year of the quantile band.
type bandRow struct {
	Year      int
	P10       float64
	Median    float64
	P90       float64
	Principal float64
}

func (h HTMLFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	loc := h.Locale.orDefault()
	tmpl, err := htmlTemplate.Clone()
	if err != nil {
		return nil, err
	}
	// Money columns follow the formatter's locale.
	tmpl.Funcs(template.FuncMap{
		"money":  loc.Money,
		"moneyf": loc.MoneyFloat,
	})

	var rows []bandRow
	if b := result.Band; b != nil {
		rows = make([]bandRow, b.Len())
		for y := range rows {
			rows[y] = bandRow{
				Year:      y,
				P10:       b.P10[y].Nominal,
				Median:    b.Median[y].Nominal,
				P90:       b.P90[y].Nominal,
				Principal: b.Median[y].Principal,
			}
		}
	}

	data := struct {
		*domain.ProjectionResult
		Lang        string
		Plan        string
		Highlights  Highlights
		Assumptions []string
		Rows        []bandRow
	}{result, loc.Tag.String(), planLabel(result.Parameters), AnalyzeOutcome(result), GenerateAssumptions(result), rows}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
