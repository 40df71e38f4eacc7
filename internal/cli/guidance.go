package cli

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const guidanceText = `
{{- define "runtime-missing" -}}
Python 3.8+ is required but {{ quote .Command }} could not be run.
Please install Python from {{ .URL }}
or point [runtime].command in {{ .Settings }} at an existing interpreter.
{{- end }}

{{- define "install-failed" -}}
Failed to install Python dependencies.
Please install them manually:
  {{ template "argv" (prepend .Args .Command) }}
{{- end }}

{{- define "argv" -}}
{{ range $i, $arg := . }}{{ if $i }} {{ end }}{{ if or (contains " " $arg) (eq $arg "") }}{{ squote $arg }}{{ else }}{{ $arg }}{{ end }}{{ end }}
{{- end }}
`

var guidanceTemplates = template.Must(template.New("guidance").Funcs(sprig.TxtFuncMap()).Parse(guidanceText))

type runtimeMissingData struct {
	Command  string
	URL      string
	Settings string
}

type installFailedData struct {
	Command string
	Args    []string
}

func renderGuidance(name string, data any) string {
	var buf bytes.Buffer
	if err := guidanceTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return ""
	}
	return buf.String()
}

// hintedError carries the manual recovery steps printed with an error.
type hintedError struct {
	err  error
	hint string
}

func withHint(err error, hint string) error {
	return &hintedError{err: err, hint: hint}
}

func (e *hintedError) Error() string {
	return e.err.Error()
}

func (e *hintedError) Unwrap() error {
	return e.err
}
