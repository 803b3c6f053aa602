package report

import (
	"io"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

// textReport is the console rendering of an evaluation result.
const textReport = `{{- range .Violations -}}
{{ .File }}:{{ .Line }}:{{ .Col }}: {{ .Severity }} [{{ .Category }}/{{ .RuleID }}] {{ .Message }}
{{ end -}}
{{- range .ParseErrors -}}
{{ .File }}:{{ .Line }}:{{ .Col }}: parse error: {{ .Message }}
{{ end -}}
{{- range .Recommendations }}
{{ .Tree }}: use "{{ .Utility }}"
{{- if .Notes }}
{{ .Notes | trim | indent 4 }}
{{- end }}
{{ end -}}
{{- if or .Violations .ParseErrors }}
{{ len .Violations }} violation(s), {{ len .ParseErrors }} parse error(s)
{{ end -}}
`

var textTmpl = template.Must(template.New("text").Funcs(sprig.FuncMap()).Parse(textReport))

// WriteText renders the result as a human-readable violation list.
func (r *EvaluationResult) WriteText(w io.Writer) error {
	return textTmpl.Execute(w, r)
}
