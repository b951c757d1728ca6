package gen

import "text/template"

// fileTemplate renders a whole generated file.
var fileTemplate = template.Must(template.New("file").Parse(`{{.Header}}

package {{.PackageName}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{if .Explicit}}{{.Name}} {{end}}{{printf "%q" .Path}}
{{- end}}
)
{{end}}
{{- range .Methods}}

// {{.MethodName}} replaces the fields of {{.TypeName}} with their transformed values.
func ({{.Receiver}} *{{.ReceiverType}}) {{.MethodName}}() {
{{- range .Statements}}
	{{.}}
{{- end}}
}
{{- end}}
`))

// templateData holds all data needed for the file template.
type templateData struct {
	Header      string
	PackageName string
	Imports     []importSpec
	Methods     []methodData
}

// importSpec represents an import statement.
type importSpec struct {
	Name     string
	Path     string
	Explicit bool
}

// methodData is one generated method.
type methodData struct {
	TypeName     string
	Receiver     string
	ReceiverType string
	MethodName   string
	Statements   []string
}
