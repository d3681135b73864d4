package generator

import (
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"github.com/iancoleman/strcase"

	"csboot/internal/config"
	"csboot/internal/model"
	"csboot/internal/parser"
)

// templateFuncs returns custom template functions.
func templateFuncs(cfg *config.Config) template.FuncMap {
	return template.FuncMap{
		// Type mapping
		"tsType": func(p model.Property) string {
			return tsPropertyType(cfg, p)
		},
		"csType": func(p model.Property) string {
			return p.TypeString()
		},

		// String manipulation
		"camelCase":  camelCase,
		"lowerFirst": lowerFirst,
		"pascalCase": strcase.ToCamel,
		"snakeCase":  strcase.ToSnake,
		"kebabCase":  strcase.ToKebab,
		"pluralize":  inflect.Pluralize,
		"lower":      strings.ToLower,
		"upper":      strings.ToUpper,

		// Type helpers
		"isBasic":      func(t model.Type) bool { return t.Category() == model.KindBasic },
		"isCollection": func(t model.Type) bool { return t.Category() == model.KindCollection },
		"isUser":       func(t model.Type) bool { return t.Category() == model.KindUserDefined },

		// Misc
		"join":    strings.Join,
		"notLast": func(i, length int) bool { return i < length-1 },
	}
}

// tsPropertyType maps a property to its TypeScript type, including nullability.
func tsPropertyType(cfg *config.Config, p model.Property) string {
	t := tsType(cfg, p.Type)
	if p.Nullable {
		return t + " | null"
	}
	return t
}

// tsType maps a C# type to the TypeScript type System.Text.Json would
// produce for it.
func tsType(cfg *config.Config, t model.Type) string {
	if t == nil {
		return "any"
	}
	if mapped, ok := cfg.MapType(t.String()); ok {
		return mapped
	}

	switch v := t.(type) {
	case model.BasicType:
		return tsBasicType(v.Kind)

	case model.CollectionType:
		inner := tsType(cfg, v.Inner)
		if v.InnerNullable {
			inner += " | null"
		}
		if v.Collection.Keyed() {
			return "Record<string, " + inner + ">"
		}
		if strings.Contains(inner, " ") {
			inner = "(" + inner + ")"
		}
		return inner + "[]"

	case model.UserDefinedType:
		name := v.Name
		switch {
		case strings.HasSuffix(name, "[]"):
			elem := tsType(cfg, parser.Classify(strings.TrimSuffix(name, "[]")))
			if strings.Contains(elem, " ") {
				elem = "(" + elem + ")"
			}
			return elem + "[]"
		case strings.ContainsAny(name, "<>,"):
			return "any"
		case strings.Contains(name, "."):
			return tsType(cfg, parser.Classify(name[strings.LastIndexByte(name, '.')+1:]))
		}
		return name
	}
	return "any"
}

func tsBasicType(k model.BasicKind) string {
	switch k {
	case model.Bool, model.SystemBoolean:
		return "boolean"
	case model.Char, model.StringKeyword, model.SystemChar, model.SystemString, model.Guid, model.TimeSpan:
		return "string"
	case model.DateTime, model.DateTimeOffset:
		return "Date"
	case model.ObjectKeyword, model.Dynamic, model.SystemObject:
		return "any"
	case model.Byte, model.SByte, model.Decimal, model.Double, model.Float, model.Int, model.UInt,
		model.NInt, model.NUInt, model.Long, model.ULong, model.Short, model.UShort,
		model.SystemByte, model.SystemSByte, model.SystemDecimal, model.SystemDouble, model.SystemSingle,
		model.SystemInt32, model.SystemUInt32, model.SystemIntPtr, model.SystemUIntPtr, model.SystemInt64,
		model.SystemUInt64, model.SystemInt16, model.SystemUInt16, model.Half:
		return "number"
	}
	return "any"
}

// camelCase converts a C# member name the way System.Text.Json's camel-case
// policy does: the leading run of capitals is lowered, except for the last
// capital when it starts the next word ("StudentID" -> "studentID",
// "URLValue" -> "urlValue", "ID" -> "id").
func camelCase(s string) string {
	s = strings.TrimPrefix(s, "@")
	runes := []rune(s)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return s
	}
	for i := range runes {
		if i == 1 && !unicode.IsUpper(runes[i]) {
			break
		}
		hasNext := i+1 < len(runes)
		if i > 0 && hasNext && !unicode.IsUpper(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// lowerFirst lowercases the first rune only.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// upperFirst uppercases the first rune only.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// fileBaseName names a generated client model file after its class.
func fileBaseName(fileNameCase, className string) string {
	switch fileNameCase {
	case "kebab":
		return strcase.ToKebab(className)
	case "snake":
		return strcase.ToSnake(className)
	case "pascal":
		return className
	}
	return lowerFirst(className)
}
