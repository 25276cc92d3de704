package formatcatalog

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/binlens/binlens/pkg/formatspec"
	"github.com/binlens/binlens/pkg/resulttree"
)

// Build turns a parsed Entry into a StructSpec: a literal magic prefix
// followed by its declared fields in order, each a fixed-width bound
// NumberAttribute. Catalog entries describe only pure magic-byte plus
// fixed-struct formats — no codec, no union, no loops; a format needing
// those belongs in pkg/formats as hand-written Go instead.
func Build(e *Entry) (formatspec.Spec, error) {
	magic, err := hex.DecodeString(e.Magic)
	if err != nil {
		return nil, fmt.Errorf("formatcatalog: %s: invalid magic %q: %w", e.Name, e.Magic, err)
	}

	children := []formatspec.Spec{formatspec.NewMagicBytes(e.Name+" magic", magic)}
	for _, f := range e.Fields {
		field, err := buildField(f)
		if err != nil {
			return nil, fmt.Errorf("formatcatalog: %s: %w", e.Name, err)
		}
		children = append(children, field)
	}

	spec := &formatspec.StructSpec{Children: children}
	spec.AsNamedResult(e.Name)
	spec.Kind = resulttree.Format
	return spec, nil
}

func parseFieldType(t string) (order binary.ByteOrder, base string) {
	switch {
	case strings.HasSuffix(t, "le"):
		return binary.LittleEndian, strings.TrimSuffix(t, "le")
	case strings.HasSuffix(t, "be"):
		return binary.BigEndian, strings.TrimSuffix(t, "be")
	default:
		return binary.BigEndian, t
	}
}

func buildField(f FieldEntry) (formatspec.Spec, error) {
	order, base := parseFieldType(f.Type)
	switch base {
	case "uint8":
		return formatspec.NewNumberAttribute[uint8](f.Name).WithOrder(order).WithBind(), nil
	case "uint16":
		return formatspec.NewNumberAttribute[uint16](f.Name).WithOrder(order).WithBind(), nil
	case "uint32":
		return formatspec.NewNumberAttribute[uint32](f.Name).WithOrder(order).WithBind(), nil
	case "uint64":
		return formatspec.NewNumberAttribute[uint64](f.Name).WithOrder(order).WithBind(), nil
	case "int8":
		return formatspec.NewNumberAttribute[int8](f.Name).WithOrder(order).WithBind(), nil
	case "int16":
		return formatspec.NewNumberAttribute[int16](f.Name).WithOrder(order).WithBind(), nil
	case "int32":
		return formatspec.NewNumberAttribute[int32](f.Name).WithOrder(order).WithBind(), nil
	case "int64":
		return formatspec.NewNumberAttribute[int64](f.Name).WithOrder(order).WithBind(), nil
	default:
		return nil, fmt.Errorf("field %s: unsupported type %q", f.Name, f.Type)
	}
}
