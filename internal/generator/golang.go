package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"csboot/internal/model"
	"csboot/internal/parser"
)

// renderGo renders class as a Go struct with JSON tags matching the names
// the C# service serializes.
func (g *Generator) renderGo(class model.ParsedClass) (string, error) {
	f := jen.NewFile(g.config.Golang.Package)
	f.HeaderComment("Code generated by csboot. DO NOT EDIT.")

	f.Commentf("%s mirrors the C# class %s.", class.Name, class.Name)
	f.Type().Id(goName(class.Name)).StructFunc(func(grp *jen.Group) {
		for _, p := range class.Properties {
			tag := camelCase(p.Name)
			if p.Nullable {
				tag += ",omitempty"
			}
			grp.Id(goName(p.Name)).Add(goPropertyType(p)).Tag(map[string]string{"json": tag})
		}
	})

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering Go model %s: %w", class.Name, err)
	}
	return buf.String(), nil
}

// goName turns a C# identifier into an exported Go identifier.
func goName(name string) string {
	return upperFirst(strings.TrimPrefix(name, "@"))
}

func goPropertyType(p model.Property) jen.Code {
	t := goType(p.Type)
	if p.Nullable && p.Type.Category() != model.KindCollection {
		return jen.Op("*").Add(t)
	}
	return t
}

func goType(t model.Type) *jen.Statement {
	switch v := t.(type) {
	case model.BasicType:
		return goBasicType(v.Kind)

	case model.CollectionType:
		inner := goType(v.Inner)
		if v.InnerNullable {
			inner = jen.Op("*").Add(inner)
		}
		if v.Collection.Keyed() {
			return jen.Map(jen.String()).Add(inner)
		}
		return jen.Index().Add(inner)

	case model.UserDefinedType:
		name := v.Name
		switch {
		case strings.HasSuffix(name, "[]"):
			return jen.Index().Add(goType(parser.Classify(strings.TrimSuffix(name, "[]"))))
		case strings.ContainsAny(name, "<>,[]"):
			return jen.Interface()
		case strings.Contains(name, "."):
			return goType(parser.Classify(name[strings.LastIndexByte(name, '.')+1:]))
		}
		return jen.Id(goName(name))
	}
	return jen.Interface()
}

func goBasicType(k model.BasicKind) *jen.Statement {
	switch k {
	case model.Bool, model.SystemBoolean:
		return jen.Bool()
	case model.Byte, model.SystemByte:
		return jen.Byte()
	case model.SByte, model.SystemSByte:
		return jen.Int8()
	case model.Char, model.SystemChar:
		return jen.Rune()
	case model.Short, model.SystemInt16:
		return jen.Int16()
	case model.UShort, model.SystemUInt16:
		return jen.Uint16()
	case model.Int, model.SystemInt32:
		return jen.Int32()
	case model.UInt, model.SystemUInt32:
		return jen.Uint32()
	case model.Long, model.SystemInt64:
		return jen.Int64()
	case model.ULong, model.SystemUInt64:
		return jen.Uint64()
	case model.NInt, model.SystemIntPtr:
		return jen.Int()
	case model.NUInt, model.SystemUIntPtr:
		return jen.Uint()
	case model.Float, model.SystemSingle, model.Half:
		return jen.Float32()
	case model.Double, model.SystemDouble, model.Decimal, model.SystemDecimal:
		return jen.Float64()
	case model.StringKeyword, model.SystemString:
		return jen.String()
	case model.Guid:
		return jen.Qual("github.com/google/uuid", "UUID")
	case model.DateTime, model.DateTimeOffset:
		return jen.Qual("time", "Time")
	case model.TimeSpan:
		return jen.Qual("time", "Duration")
	}
	return jen.Interface()
}
