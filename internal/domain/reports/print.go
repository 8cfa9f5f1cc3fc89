package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"bakestock/internal/core/types"
)

// printTemplate renders a self-contained document the browser can hand
// straight to the print dialog.
var printTemplate = template.Must(template.New("dispatch-report").Funcs(template.FuncMap{
	"date": func(t time.Time) string { return t.Format("02.01.2006") },
	"money": func(v types.Money) string { return v.StringFixed(2) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Expired Stock Dispatch Report</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; margin: 24px; color: #222; }
  h1 { font-size: 20px; margin-bottom: 2px; }
  .meta { color: #666; font-size: 12px; margin-bottom: 18px; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 20px; }
  th, td { border: 1px solid #bbb; padding: 5px 8px; font-size: 12px; text-align: left; }
  th { background: #f0f0f0; }
  td.num, th.num { text-align: right; }
  tfoot td { font-weight: bold; background: #fafafa; }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>Expired Stock Dispatch Report</h1>
<div class="meta">Period: {{.PeriodLabel}} &middot; Generated {{date .GeneratedAt}}</div>

<h2>By destination</h2>
<table>
<thead>
<tr><th>Destination</th><th class="num">Quantity</th><th class="num">Value</th><th class="num">Dispatches</th><th class="num">Avg / dispatch</th></tr>
</thead>
<tbody>
{{range .Summary.ByDestination}}
<tr>
  <td>{{.Label}}</td>
  <td class="num">{{.TotalQuantity}}</td>
  <td class="num">{{money .TotalValue}}</td>
  <td class="num">{{.RecordCount}}</td>
  <td class="num">{{money .AveragePerDispatch}}</td>
</tr>
{{end}}
</tbody>
<tfoot>
<tr><td>Total</td><td class="num">{{.Summary.TotalQuantity}}</td><td class="num">{{money .Summary.TotalValue}}</td><td class="num">{{.Summary.RecordCount}}</td><td></td></tr>
</tfoot>
</table>

<h2>By dispatcher</h2>
<table>
<thead>
<tr><th>Dispatcher</th><th class="num">Quantity</th><th class="num">Value</th><th class="num">Dispatches</th></tr>
</thead>
<tbody>
{{range .Summary.ByDispatcher}}
<tr>
  <td>{{.Label}}</td>
  <td class="num">{{.TotalQuantity}}</td>
  <td class="num">{{money .TotalValue}}</td>
  <td class="num">{{.RecordCount}}</td>
</tr>
{{end}}
</tbody>
</table>

<h2>Detail</h2>
<table>
<thead>
<tr><th>Date</th><th>Product</th><th>Destination</th><th class="num">Quantity</th><th class="num">Value</th><th>Dispatched by</th><th>Notes</th></tr>
</thead>
<tbody>
{{range .Summary.DetailRows}}
<tr>
  <td>{{date .DispatchDate}}</td>
  <td>{{.ProductName}}</td>
  <td>{{.DestinationLabel}}</td>
  <td class="num">{{.Quantity}}</td>
  <td class="num">{{money .Value}}</td>
  <td>{{.DispatchedBy}}</td>
  <td>{{.Notes}}</td>
</tr>
{{else}}
<tr><td colspan="7">No dispatches in this period.</td></tr>
{{end}}
</tbody>
</table>
</body>
</html>
`))

// RenderPrintableHTML serializes aggregates into a standalone HTML
// document. Printing itself is delegated to the host platform.
func RenderPrintableHTML(summary *Summary, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	err := printTemplate.Execute(&buf, struct {
		Summary     *Summary
		PeriodLabel string
		GeneratedAt time.Time
	}{
		Summary:     summary,
		PeriodLabel: periodLabel(summary.Period),
		GeneratedAt: generatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func periodLabel(p Period) string {
	switch p.Kind {
	case PeriodToday:
		return "Today"
	case PeriodWeek:
		return "Current week"
	case PeriodMonth:
		return "Current month"
	case PeriodCustom:
		return fmt.Sprintf("%s to %s", p.From.Format("02.01.2006"), p.To.Format("02.01.2006"))
	default:
		return "All time"
	}
}
