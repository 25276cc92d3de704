package main

import (
	"fmt"
	"strings"

	"github.com/binlens/binlens/pkg/formatcatalog"
)

// GenerateEntry renders entry as a standalone Go source file declaring one
// exported constructor function that builds the equivalent formatspec.Spec
// as a literal tree, with no YAML parsing left at runtime.
func GenerateEntry(entry *formatcatalog.Entry, pkgName string) (string, error) {
	fields := make([]fieldData, len(entry.Fields))
	for i, f := range entry.Fields {
		order, base, err := splitFieldType(f.Type)
		if err != nil {
			return "", fmt.Errorf("field %s: %w", f.Name, err)
		}
		fields[i] = fieldData{
			Name:      f.Name,
			GoType:    base,
			OrderExpr: order,
		}
	}

	data := entryData{
		Package:  pkgName,
		FuncName: goTitleCase(entry.Name),
		Name:     entry.Name,
		MagicHex: strings.ToUpper(entry.Magic),
		Fields:   fields,
	}

	var b strings.Builder
	renderTemplate(&b, "entry", data)
	return b.String(), nil
}

type entryData struct {
	Package  string
	FuncName string
	Name     string
	MagicHex string
	Fields   []fieldData
}

type fieldData struct {
	Name      string
	GoType    string
	OrderExpr string
}

// splitFieldType mirrors pkg/formatcatalog.buildField's own type parsing so
// generated code decodes byte-for-byte the way the runtime loader would.
func splitFieldType(t string) (orderExpr, base string, err error) {
	switch {
	case strings.HasSuffix(t, "le"):
		orderExpr, base = "binary.LittleEndian", strings.TrimSuffix(t, "le")
	case strings.HasSuffix(t, "be"):
		orderExpr, base = "binary.BigEndian", strings.TrimSuffix(t, "be")
	default:
		orderExpr, base = "binary.BigEndian", t
	}
	switch base {
	case "uint8", "uint16", "uint32", "uint64", "int8", "int16", "int32", "int64":
		return orderExpr, base, nil
	default:
		return "", "", fmt.Errorf("unsupported field type %q", t)
	}
}

// goTitleCase converts a hyphenated format name like "bmp-header" into the
// exported Go identifier "BMPHeader"-style PascalCase: "BmpHeader".
func goTitleCase(name string) string {
	parts := strings.Split(name, "-")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
