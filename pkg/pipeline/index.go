package pipeline

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"

	"github.com/matzehuels/docgraph/pkg/errors"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Graphs</title>
</head>
<body>
<h1>Graphs</h1>
{{- if not .}}
<p>No graphs were generated.</p>
{{- end}}
<ul>
{{- range .}}
<li><a href="{{.Fragment}}">{{.Title}}</a> ({{.Nodes}} nodes, {{.Edges}} edges){{if not .Rendered}} <em>image unavailable</em>{{end}}</li>
{{- end}}
</ul>
{{- range .}}
<h2 id="{{.UID}}">{{.Title}}</h2>
{{.HTML}}
{{- end}}
</body>
</html>
`))

type indexEntry struct {
	Output
	HTML template.HTML
}

// writeIndex writes IndexFile, linking every fragment and inlining it.
func writeIndex(dir string, outputs []Output) error {
	entries := make([]indexEntry, 0, len(outputs))
	for _, o := range outputs {
		fragment, _ := os.ReadFile(filepath.Join(dir, o.Fragment))
		entries = append(entries, indexEntry{Output: o, HTML: template.HTML(fragment)})
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, entries); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render %s", IndexFile)
	}
	return writeFile(dir, IndexFile, buf.Bytes())
}
