package catalog

import (
	"html/template"
	"io"
)

var previewTmpl = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 1.5rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: .4rem; vertical-align: top; text-align: center; }
td.folder { font-weight: bold; }
img { max-width: 160px; max-height: 160px; display: block; margin: 0 auto .3rem; }
.name { font-size: .75rem; color: #555; word-break: break-all; max-width: 160px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="count">{{len .Rows}} folders</p>
<table>
<thead><tr><th>folder</th><th>1</th><th>2</th><th>3</th><th>4</th></tr></thead>
<tbody>
{{- range .Rows}}
<tr data-folder="{{.Folder}}">
<td class="folder">{{.Folder}}</td>
{{- range .Slots}}
<td class="slot">{{if .URL}}<a href="{{.URL}}"><img src="{{.URL}}" alt="{{.Name}}" loading="lazy"></a><div class="name">{{.Name}}</div>{{end}}</td>
{{- end}}
</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

type previewSlot struct {
	URL  string
	Name string
}

type previewRow struct {
	Folder string
	Slots  []previewSlot
}

func writeHTML(w io.Writer, rows []Row, title string) error {
	if title == "" {
		title = "Image catalog"
	}

	data := struct {
		Title string
		Rows  []previewRow
	}{Title: title}

	for _, r := range rows {
		pr := previewRow{Folder: r.Folder}
		for i, u := range r.URLs() {
			pr.Slots = append(pr.Slots, previewSlot{URL: u, Name: r.FileName(i)})
		}
		data.Rows = append(data.Rows, pr)
	}

	return previewTmpl.Execute(w, data)
}
