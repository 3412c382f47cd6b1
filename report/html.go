package report

import (
	"fmt"
	"html/template"
	"os"
	"strings"
)

// WriteHTML renders a self-contained HTML summary of the run.
func WriteHTML(path string, records []Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	data := struct {
		Summary Summary
		Records []Record
	}{
		Summary: Summarize(records),
		Records: records,
	}

	if err := htmlTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("render %q: %w", path, err)
	}

	return nil
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"f3":   func(v float64) string { return fmt.Sprintf("%.3f", v) },
	"join": func(s []string) string { return strings.Join(s, ", ") },
}).Parse(reportHTML))

const reportHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>RAG Evaluation Report</title>
  <style>
    :root {
      --bg: #0b1220; --fg: #e9eefb; --muted: #9db0cf; --accent: #6cc4ff; --row: #121b2e;
    }
    body {
      margin: 0; padding: 24px; background: var(--bg); color: var(--fg);
      font-family: -apple-system, BlinkMacSystemFont, Segoe UI, Roboto, Helvetica, Arial, sans-serif;
    }
    h1 { margin: 0 0 8px 0; font-size: 22px; }
    .summary { margin: 6px 0 18px 0; color: var(--muted); }
    table {
      width: 100%; border-collapse: collapse; background: #091126; border-radius: 10px; overflow: hidden;
    }
    th, td { padding: 10px 12px; text-align: left; border-bottom: 1px solid #1b2a4a; }
    tr:nth-child(even) { background: var(--row); }
    th { color: var(--accent); font-weight: 600; }
    .kpi { display: inline-block; margin-right: 16px; }
    .kpi b { color: var(--fg); }
    .error { color: #ff8a8a; }
  </style>
</head>
<body>
  <h1>RAG Evaluation Report</h1>
  <div class="summary">
    <span class="kpi"><b>Run:</b> {{.Summary.RunID}}</span>
    <span class="kpi"><b>Items:</b> {{.Summary.Items}}</span>
    <span class="kpi"><b>Errors:</b> {{.Summary.Errors}}</span>
    <span class="kpi"><b>avg score:</b> {{f3 .Summary.AvgScore}}</span>
    <span class="kpi"><b>avg coverage:</b> {{f3 .Summary.AvgCoverage}}</span>
    <span class="kpi"><b>avg overlap:</b> {{f3 .Summary.AvgOverlap}}</span>
  </div>

  <table>
    <thead>
      <tr>
        <th>ID</th>
        <th>Score</th>
        <th>Coverage</th>
        <th>Overlap</th>
        <th>Tags</th>
        <th>Answer (preview)</th>
      </tr>
    </thead>
    <tbody>
      {{range .Records}}
      <tr>
        <td>{{.ID}}</td>
        <td>{{f3 .Score}}</td>
        <td>{{f3 .Metrics.KeywordCoverage}}</td>
        <td>{{f3 .Metrics.ContextOverlap}}</td>
        <td>{{join .Tags}}</td>
        <td>{{if .Error}}<span class="error">{{.Error}}</span>{{else}}{{.AnswerPreview}}{{end}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
</body>
</html>
`
