package parser

import (
	"fmt"
	"strings"

	"csboot/internal/model"
)

// classModifiers may appear between "public" and "class".
var classModifiers = map[string]bool{
	"static":   true,
	"sealed":   true,
	"abstract": true,
	"partial":  true,
}

// ParseClasses returns every public class declared in text, in the order
// their declarations appear. Nested public classes are reported as classes
// of their own; their members are not attributed to the enclosing class.
func ParseClasses(text string) []model.ParsedClass {
	classes, _ := parseClasses(text)
	return classes
}

func parseClasses(text string) ([]model.ParsedClass, []model.Diagnostic) {
	var (
		classes []model.ParsedClass
		diags   []model.Diagnostic
	)
	toks := scan(text)
	for i := 0; i < len(toks); i++ {
		name, open, ok := matchClassHeader(toks, i)
		if !ok {
			continue
		}
		closing, ok := matchingBrace(toks, open)
		if !ok {
			diags = append(diags, model.Diagnostic{
				Offset:  toks[open].offset,
				Line:    toks[open].line,
				Message: fmt.Sprintf("class %s: body is not terminated", name),
			})
			continue
		}

		bodyStart := toks[open].offset + 1
		body := text[bodyStart:toks[closing].offset]
		props, propDiags := extractProperties(scan(body), bodyStart, toks[open].line-1)
		classes = append(classes, model.ParsedClass{Name: name, Properties: props})
		diags = append(diags, propDiags...)

		// Resume inside the body so nested classes are found too.
		i = open
	}
	return classes, diags
}

// matchClassHeader matches `public [modifiers] class Name ... {` at toks[i]
// and returns the class name and the index of the opening brace.
func matchClassHeader(toks []token, i int) (string, int, bool) {
	if !toks[i].is(tokIdent, "public") {
		return "", 0, false
	}
	j := i + 1
	for j < len(toks) && toks[j].kind == tokIdent && classModifiers[toks[j].text] {
		j++
	}
	if j+1 >= len(toks) || !toks[j].is(tokIdent, "class") || toks[j+1].kind != tokIdent {
		return "", 0, false
	}
	name := toks[j+1].text

	// Skip generic parameters, base types and constraints.
	for j += 2; j < len(toks); j++ {
		switch {
		case toks[j].punct("{"):
			return name, j, true
		case toks[j].punct(";"), toks[j].punct("}"):
			return "", 0, false
		}
	}
	return "", 0, false
}

// matchingBrace returns the index of the brace closing toks[open].
func matchingBrace(toks []token, open int) (int, bool) {
	depth := 0
	for j := open; j < len(toks); j++ {
		switch {
		case toks[j].punct("{"):
			depth++
		case toks[j].punct("}"):
			depth--
			if depth == 0 {
				return j, true
			}
		}
	}
	return 0, false
}

// DetectNamespace returns the first namespace declared in text, or "" when
// there is none. Both block and file-scoped declarations are recognized.
func DetectNamespace(text string) string {
	toks := scan(text)
	for i, tok := range toks {
		if !tok.is(tokIdent, "namespace") {
			continue
		}
		var b strings.Builder
		if _, ok := readTypeName(toks, i+1, &b); ok {
			return b.String()
		}
	}
	return ""
}
