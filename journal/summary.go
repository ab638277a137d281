package journal

import (
	"bytes"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/rustyeddy/trade/accumulator"
	"github.com/rustyeddy/trade/market"
	"github.com/shopspring/decimal"
)

// Summary describes a completed run over one asset.
type Summary struct {
	Asset   market.Asset
	Source  string
	Created time.Time

	Start string
	End   string

	Days       int
	Operations int
	Events     int

	Quantity decimal.Decimal
	Price    decimal.Decimal
	Results  accumulator.Results

	Notes []string
}

// ResultLine is one named result, for templates.
type ResultLine struct {
	Name   string
	Amount decimal.Decimal
}

// NewSummary collects the final state and log counts of acc.
func NewSummary(acc *accumulator.Accumulator, source string) Summary {
	s := Summary{
		Asset:    acc.Asset(),
		Source:   source,
		Created:  time.Now(),
		Quantity: acc.Quantity(),
		Price:    acc.Price(),
		Results:  acc.Results(),
	}
	for day := range acc.Log().All() {
		if s.Start == "" || (day.Date != "" && day.Date < s.Start) {
			s.Start = day.Date
		}
		if day.Date > s.End {
			s.End = day.Date
		}
		s.Days++
		s.Operations += len(day.Operations)
		s.Events += len(day.Events)
	}
	if s.End == "" {
		s.End = acc.Date()
	}
	return s
}

// ResultLines returns the results in name order.
func (s Summary) ResultLines() []ResultLine {
	lines := make([]ResultLine, 0, len(s.Results))
	for _, name := range s.Results.Names() {
		lines = append(lines, ResultLine{Name: name, Amount: s.Results[name]})
	}
	return lines
}

// Total is the sum of every result.
func (s Summary) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.ResultLines() {
		total = total.Add(line.Amount)
	}
	return total
}

// CostBasis is quantity times average price.
func (s Summary) CostBasis() decimal.Decimal {
	return s.Quantity.Mul(s.Price)
}

var summaryOrgFuncs = template.FuncMap{
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

// WriteOrg renders the summary as an Org-mode document.
func (s Summary) WriteOrg(w io.Writer) error {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return market.Format(d, s.Asset.Currency) },
	}
	t, err := template.New("summary").Funcs(summaryOrgFuncs).Funcs(funcs).Parse(SummaryOrgTemplate)
	if err != nil {
		return err
	}
	return t.Execute(w, s)
}

// WriteOrgFile renders the summary to path.
func (s Summary) WriteOrgFile(path string) error {
	buf := new(bytes.Buffer)
	if err := s.WriteOrg(buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

const SummaryOrgTemplate = `* POSITION: {{.Asset.Symbol}}{{if .Asset.Name}} ({{.Asset.Name}}){{end}}
:PROPERTIES:
:ASSET:       {{.Asset.Symbol}}
:CURRENCY:    {{if .Asset.Currency}}{{.Asset.Currency}}{{else}}(currency?){{end}}
:SOURCE:      {{if .Source}}{{.Source}}{{else}}(source?){{end}}
:START_DATE:  {{if .Start}}{{.Start}}{{else}}(start?){{end}}
:END_DATE:    {{if .End}}{{.End}}{{else}}(end?){{end}}
:DAYS:        {{.Days}}
:OPERATIONS:  {{.Operations}}
:EVENTS:      {{.Events}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Position
| Quantity | Average Price | Cost Basis |
|----------+---------------+------------|
| {{.Quantity}} | {{money .Price}} | {{money .CostBasis}} |

** Results
| Result | Amount |
|--------+--------|
{{- range .ResultLines }}
| {{.Name}} | {{money .Amount}} |
{{- end }}
| total | {{money .Total}} |

{{- if .Notes }}

** Notes
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
