package view

import (
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"
)

const recommendationsTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #1c1c1c; }
.wrap { max-width: 60rem; margin: 0 auto; }
.status { color: #666; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid #ddd; }
td.asset { font-weight: 600; }
td.pct.pos { color: #1a8754; }
td.pct.neg { color: #dc3545; }
</style>
</head>
<body>
<section class="wrap">
<h1>{{.Title}}</h1>
{{if .Loading}}
<p class="status">Loading {{.Kind}} recommendations…</p>
{{else if not .Rows}}
<p class="status">No {{.Kind}} recommendations yet.</p>
{{else}}
<table>
<thead>
<tr>
<th>Core Trade Recommendations</th>
<th>Entry Date</th>
<th>Entry Price</th>
<th>% Since Inception</th>
<th>Current Price</th>
</tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td class="asset">Buy {{.Asset}}</td>
<td>{{.EntryDateLabel}}</td>
<td>${{.EntryPriceLabel}}</td>
<td class="pct {{.PercentClass}}">{{.PercentLabel}}</td>
<td>${{.CurrentPriceLabel}}</td>
</tr>
{{end}}
</tbody>
</table>
{{end}}
</section>
</body>
</html>
`

type Renderer struct {
	tmpl   *template.Template
	logger *logrus.Entry
}

func NewRenderer(logger *logrus.Entry) *Renderer {
	return &Renderer{
		tmpl:   template.Must(template.New("recommendations").Parse(recommendationsTemplate)),
		logger: logger,
	}
}

type page struct {
	Title   string
	Kind    string
	Loading bool
	Rows    []Row
}

// RenderTable writes the recommendations table. A nil rows slice renders the
// loading state, an empty one the empty state.
func (r *Renderer) RenderTable(w http.ResponseWriter, title, kind string, rows []Row) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := page{
		Title:   title,
		Kind:    kind,
		Loading: rows == nil,
		Rows:    rows,
	}

	if err := r.tmpl.Execute(w, data); err != nil {
		r.logger.WithError(err).Error("Failed to render recommendations table")
	}
}
