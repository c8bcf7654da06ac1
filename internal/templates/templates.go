// Package templates renders the single coordinate-form page and its
// fragments. Components satisfy templ.Component; the markup itself lives
// in html/template blocks so user text is contextually escaped.
package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/Gwatamalou/DocGenerator/internal/domain"
)

// IndexData is everything the page needs: an optional notice resolved from
// the last attempt and the recent attempt history.
type IndexData struct {
	Notice   string
	Attempts []domain.AttemptRecord
}

var funcs = template.FuncMap{
	"slots":  coordinateSlots,
	"when":   formatWhen,
	"source": formatSource,
}

var baseTmpl = template.Must(template.New("base").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Coordinate Report Generator</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<script src="https://cdn.tailwindcss.com"></script>
<style>
  :root {
    --ink: #0d1117;
    --paper: #f2f4f8;
    --accent: #1d4ed8;
    --danger: #c0392b;
    --muted: #5b6572;
    --rule: #c6ccd6;
  }
  * { box-sizing: border-box; }
  body {
    background: var(--paper);
    color: var(--ink);
    font-family: 'IBM Plex Sans', sans-serif;
    min-height: 100vh;
  }
  .mono { font-family: 'IBM Plex Mono', monospace; }
  .card {
    background: white;
    border: 1px solid var(--rule);
    border-left: 4px solid var(--ink);
  }
  .field-label {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.6rem;
    font-weight: 600;
    letter-spacing: 0.1em;
    text-transform: uppercase;
    color: var(--muted);
    display: block;
    margin-bottom: 2px;
  }
  input, textarea {
    background: white;
    border: 1px solid var(--rule);
    border-bottom: 2px solid var(--ink);
    padding: 6px 8px;
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.85rem;
    width: 100%;
    outline: none;
  }
  input:focus, textarea:focus { border-bottom-color: var(--accent); }
  .btn {
    font-family: 'IBM Plex Mono', monospace;
    font-weight: 600;
    font-size: 0.8rem;
    letter-spacing: 0.08em;
    padding: 8px 18px;
    border: 2px solid var(--ink);
    background: var(--ink);
    color: white;
    cursor: pointer;
    text-transform: uppercase;
  }
  .btn:hover { background: var(--accent); border-color: var(--accent); }
  .btn:disabled { opacity: 0.5; cursor: wait; }
  .notice {
    border: 2px solid var(--danger);
    color: var(--danger);
    font-family: 'IBM Plex Mono', monospace;
    padding: 10px 14px;
    margin-bottom: 18px;
  }
  .attempt-row { border-bottom: 1px solid var(--rule); }
  .attempt-row:last-child { border-bottom: none; }
  .section-header {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.7rem;
    font-weight: 600;
    letter-spacing: 0.18em;
    text-transform: uppercase;
    color: var(--muted);
    border-bottom: 1px solid var(--rule);
    padding-bottom: 4px;
    margin-bottom: 16px;
  }
</style>
</head>
<body>
<div class="max-w-3xl mx-auto px-6 py-10">
{{template "content" .}}
</div>
</body>
</html>`))

var indexTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`{{define "content"}}
<h1 class="text-2xl font-semibold mb-1">Coordinate Report Generator</h1>
<p class="text-sm mb-6" style="color: var(--muted)">
  Enter up to ten (x, y) pairs or upload a spreadsheet, then generate a DOCX report.
</p>

{{if .Notice}}<div class="notice" role="alert">{{.Notice}}</div>{{end}}

<form method="post" action="/generate" enctype="multipart/form-data"
      onsubmit="var b=this.querySelector('button[type=submit]');b.disabled=true;b.textContent='Generating…';setTimeout(function(){b.disabled=false;b.textContent='Generate document';},30000);"
      class="card p-6 mb-8">

  <div class="section-header">Description</div>
  <textarea name="description" rows="3" placeholder="What this report covers"></textarea>

  <div class="section-header mt-6">Coordinates</div>
  <div class="grid grid-cols-2 gap-x-6 gap-y-2">
    {{range slots}}
    <div class="flex gap-2 items-center">
      <span class="mono text-xs w-5" style="color: var(--muted)">{{printf "%02d" .}}</span>
      <input type="text" name="x_{{.}}" placeholder="x" inputmode="decimal">
      <input type="text" name="y_{{.}}" placeholder="y" inputmode="decimal">
    </div>
    {{end}}
  </div>
  <p class="text-xs mt-2" style="color: var(--muted)">
    Rows where either field is not a number are skipped.
  </p>

  <div class="section-header mt-6">Attachments</div>
  <div class="grid grid-cols-2 gap-6">
    <div>
      <label class="field-label" for="excel_file">Coordinate spreadsheet (.xlsx)</label>
      <input type="file" id="excel_file" name="excel_file" accept=".xlsx,.xls">
      <p class="text-xs mt-1" style="color: var(--muted)">Replaces the manual rows entirely.</p>
    </div>
    <div>
      <label class="field-label" for="pdf_file">Reference document (.pdf)</label>
      <input type="file" id="pdf_file" name="pdf_file" accept=".pdf">
    </div>
  </div>

  <div class="mt-8">
    <button type="submit" class="btn">Generate document</button>
  </div>
</form>

<div class="section-header">Recent attempts</div>
<div id="attempts" hx-get="/attempts" hx-trigger="every 30s">
{{template "attempt-list" .Attempts}}
</div>
{{end}}`))

var attemptListTmpl = template.Must(template.New("attempt-list-page").Funcs(funcs).Parse(
	`{{template "attempt-list" .}}`))

func init() {
	const listBlock = `{{define "attempt-list"}}
{{if not .}}<p class="text-sm mono" style="color: var(--muted)">No attempts yet.</p>{{end}}
{{range .}}
<div class="attempt-row py-2 flex items-baseline gap-3 text-sm">
  <span class="mono text-xs" style="color: var(--muted)">{{when .CreatedAt}}</span>
  <span class="mono text-xs">{{source .}}</span>
  {{if eq .Outcome "generated"}}
  <span class="mono text-xs" style="color: #2c6e49">generated</span>
  {{else}}
  <span class="mono text-xs" style="color: var(--danger)">{{.Message}}</span>
  {{end}}
  <span class="truncate" style="color: var(--muted)">{{.Description}}</span>
</div>
{{end}}
{{end}}`
	template.Must(indexTmpl.Parse(listBlock))
	template.Must(attemptListTmpl.Parse(listBlock))
}

// Index renders the full page.
func Index(data IndexData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return indexTmpl.ExecuteTemplate(w, "base", data)
	})
}

// AttemptList renders just the history fragment, used by the htmx refresh.
func AttemptList(attempts []domain.AttemptRecord) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return attemptListTmpl.Execute(w, attempts)
	})
}
