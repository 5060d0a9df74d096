package render

import (
	"html/template"
	"io"

	"raspview/internal/structs"
)

// html/template escapes every cell for its context, so log content that
// came from request data cannot inject markup.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Log Viewer</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 0; }
        table { width: 100%; border-collapse: collapse; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        tr:nth-child(even) { background-color: #f9f9f9; }
    </style>
</head>
<body>
    <h1>Log Entries</h1>
{{- if .Notice}}
    <p class="notice">{{.Notice}}</p>
{{- end}}
    <table>
        <thead>
            <tr>
{{- range .Columns}}
                <th>{{.}}</th>
{{- end}}
            </tr>
        </thead>
        <tbody>
{{- range .Rows}}
            <tr>
{{- range .Cells}}
                <td>{{.}}</td>
{{- end}}
            </tr>
{{- end}}
        </tbody>
    </table>
</body>
</html>
`

var page = template.Must(template.New("page").Parse(pageTemplate))

type htmlData struct {
	Notice  string
	Columns []string
	Rows    []structs.Row
}

type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: page}
}

func (r *HTMLRenderer) Render(w io.Writer, p *structs.Page) error {
	data := htmlData{
		Columns: structs.Columns,
		Rows:    p.Rows(),
	}
	if !p.Exists {
		data.Notice = structs.NoLogsNotice
	}
	return r.tmpl.Execute(w, data)
}
