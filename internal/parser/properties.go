package parser

import (
	"fmt"
	"strings"

	"csboot/internal/model"
)

// memberModifiers may appear between "public" and a property's type.
var memberModifiers = map[string]bool{
	"virtual":  true,
	"override": true,
	"new":      true,
	"required": true,
	"sealed":   true,
}

// ExtractProperties returns the auto-properties declared directly in a class
// body, in source order. Anything that is not a public `{ get; set; }`
// property is ignored.
func ExtractProperties(body string) []model.Property {
	props, _ := ExtractPropertiesWithDiagnostics(body)
	return props
}

// ExtractPropertiesWithDiagnostics is ExtractProperties that also reports
// property types the classifier rejected. Such properties are still returned
// with their type kept verbatim as a UserDefinedType.
func ExtractPropertiesWithDiagnostics(body string) ([]model.Property, []model.Diagnostic) {
	return extractProperties(scan(body), 0, 0)
}

// extractProperties walks body tokens, tracking brace depth so members of
// nested types and method bodies are skipped. Diagnostic positions are
// shifted by baseOffset and baseLine.
func extractProperties(toks []token, baseOffset, baseLine int) ([]model.Property, []model.Diagnostic) {
	var (
		props []model.Property
		diags []model.Diagnostic
		depth int
	)
	for i := 0; i < len(toks); {
		tok := toks[i]
		switch {
		case tok.punct("{"):
			depth++
		case tok.punct("}"):
			if depth > 0 {
				depth--
			}
		case depth == 0 && tok.is(tokIdent, "public"):
			if m, ok := matchProperty(toks, i); ok {
				prop := model.Property{Name: m.name, Nullable: m.nullable}
				t, err := ParseType(m.typeText)
				if err != nil {
					t = model.UserDefinedType{Name: m.typeText}
					diags = append(diags, model.Diagnostic{
						Offset:  baseOffset + toks[m.typeStart].offset,
						Line:    baseLine + toks[m.typeStart].line,
						Message: fmt.Sprintf("property %s: %v", m.name, err),
					})
				}
				prop.Type = t
				props = append(props, prop)
				i = m.next
				continue
			}
		}
		i++
	}
	return props, diags
}

type propertyMatch struct {
	typeText  string
	typeStart int
	nullable  bool
	name      string
	next      int
}

// matchProperty matches `public [modifiers] Type[?] Name { get; set; }`
// starting at toks[i].
func matchProperty(toks []token, i int) (propertyMatch, bool) {
	j := i + 1
	for j < len(toks) && toks[j].kind == tokIdent && memberModifiers[toks[j].text] {
		j++
	}

	m := propertyMatch{typeStart: j}
	typeText, j, ok := readType(toks, j)
	if !ok {
		return m, false
	}
	m.typeText = typeText

	if j < len(toks) && toks[j].punct("?") {
		m.nullable = true
		j++
	}

	if j >= len(toks) || toks[j].kind != tokIdent {
		return m, false
	}
	m.name = toks[j].text
	j++

	for _, want := range []string{"{", "get", ";", "set", ";", "}"} {
		if j >= len(toks) || toks[j].text != want {
			return m, false
		}
		j++
	}
	m.next = j
	return m, m.typeText != "" && m.name != ""
}

// readType reads a type token: a dotted name with optional generic arguments
// and array ranks. Whitespace between tokens is dropped from the result.
func readType(toks []token, j int) (string, int, bool) {
	var b strings.Builder
	j, ok := readTypeName(toks, j, &b)
	if !ok {
		return "", j, false
	}

	if j < len(toks) && toks[j].punct("<") {
		b.WriteString("<")
		j++
		for {
			var arg string
			arg, j, ok = readType(toks, j)
			if !ok {
				return "", j, false
			}
			b.WriteString(arg)
			if j < len(toks) && toks[j].punct("?") {
				b.WriteString("?")
				j++
			}
			if j >= len(toks) {
				return "", j, false
			}
			if toks[j].punct(",") {
				b.WriteString(",")
				j++
				continue
			}
			if toks[j].punct(">") {
				b.WriteString(">")
				j++
				break
			}
			return "", j, false
		}
	}

	for j < len(toks) && toks[j].punct("[") {
		b.WriteString("[")
		j++
		for j < len(toks) && toks[j].punct(",") {
			b.WriteString(",")
			j++
		}
		if j >= len(toks) || !toks[j].punct("]") {
			return "", j, false
		}
		b.WriteString("]")
		j++
	}
	return b.String(), j, true
}

func readTypeName(toks []token, j int, b *strings.Builder) (int, bool) {
	if j >= len(toks) || toks[j].kind != tokIdent {
		return j, false
	}
	b.WriteString(toks[j].text)
	j++
	for j+1 < len(toks) && toks[j].punct(".") && toks[j+1].kind == tokIdent {
		b.WriteString(".")
		b.WriteString(toks[j+1].text)
		j += 2
	}
	return j, true
}
