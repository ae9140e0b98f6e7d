package main

import (
	"bytes"
	"fmt"
	"html/template"
)

const reportDateLayout = "Monday, January 02, 2006"

const reportTemplateText = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Agent QA Score Report</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #333; }
table { border-collapse: collapse; width: 95%; margin: 20px auto; }
th, td { border: 1px solid #dddddd; text-align: left; padding: 12px; }
th { background-color: #004a99; color: white; font-weight: bold; text-align: center; }
tr:nth-child(even) { background-color: #f8f8f8; }
h2 { text-align: center; color: #004a99; }
p { text-align: center; color: #666; }
.num { text-align: center; }
.score { text-align: center; font-weight: bold; background-color: #eaf3ff; }
.positive { color: green; }
.negative { color: red; }
</style>
</head>
<body>
<h2>Agent QA Score Report</h2>
<p>Displaying Findings for: {{.Date}}</p>
<table>
<thead>
<tr>
<th>Agent Name</th>
<th>Score</th>
<th>Positive</th>
<th>Negative</th>
<th>Neutral</th>
<th>Total Reviewed</th>
</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr>
<td>{{.AgentName}}</td>
<td class="score">{{score .Score}}</td>
<td class="num positive">{{.Positive}}</td>
<td class="num negative">{{.Negative}}</td>
<td class="num">{{.Neutral}}</td>
<td class="num">{{.Total}}</td>
</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`

var reportTemplate = template.Must(template.New("report").
	Funcs(template.FuncMap{"score": formatScore}).
	Parse(reportTemplateText))

// formatScore renders one decimal place; %.1f rounds half to even.
func formatScore(score *float64) string {
	if score == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *score)
}

// renderReport maps a report to a self-contained HTML document. Agent names
// come from the database, so interpolation goes through html/template and is
// escaped.
func renderReport(report *Report) (string, error) {
	data := struct {
		Date string
		Rows []AgentScoreRow
	}{
		Date: report.Date.Format(reportDateLayout),
		Rows: report.Rows,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}
