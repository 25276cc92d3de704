package main

import (
	"fmt"
	"strings"
	"text/template"
)

var funcMap = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

var templates = template.Must(template.New("").Funcs(funcMap).Parse(entryTmpl))

func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

const entryTmpl = `{{define "entry"}}
// Code generated by binlens-formatgen from a {{.Name}} format definition.
// DO NOT EDIT.
package {{.Package}}

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/binlens/binlens/pkg/formatspec"
	"github.com/binlens/binlens/pkg/resulttree"
)

// {{.FuncName}} returns the {{.Name}} format spec.
func {{.FuncName}}() formatspec.Spec {
	magic, err := hex.DecodeString({{quote .MagicHex}})
	if err != nil {
		panic(err)
	}

	spec := &formatspec.StructSpec{
		Children: []formatspec.Spec{
			formatspec.NewMagicBytes({{quote .Name}}+" magic", magic),
{{- range .Fields}}
			formatspec.NewNumberAttribute[{{.GoType}}]({{quote .Name}}).WithOrder({{.OrderExpr}}).WithBind(),
{{- end}}
		},
	}
	spec.AsNamedResult({{quote .Name}})
	spec.Kind = resulttree.Format
	return spec
}
{{end}}`
