package generator

import (
	"sort"
	"strings"
)

// Usings every generated C# artifact starts from.
var (
	serviceUsings = []string{
		"AutoMapper",
		"Microsoft.EntityFrameworkCore",
		"System",
		"System.Collections.Generic",
		"System.Threading.Tasks",
	}
	interfaceUsings = []string{
		"System.Collections.Generic",
		"System.Threading.Tasks",
	}
	controllerUsings = []string{
		"Microsoft.AspNetCore.Mvc",
		"System",
		"System.Collections.Generic",
		"System.Threading.Tasks",
	}
)

// csharpKeywords are the reserved words that need an '@' prefix to be used
// as identifiers.
var csharpKeywords = map[string]bool{
	"abstract": true, "as": true, "base": true, "bool": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true, "checked": true,
	"class": true, "const": true, "continue": true, "decimal": true, "default": true,
	"delegate": true, "do": true, "double": true, "else": true, "enum": true,
	"event": true, "explicit": true, "extern": true, "false": true, "finally": true,
	"fixed": true, "float": true, "for": true, "foreach": true, "goto": true,
	"if": true, "implicit": true, "in": true, "int": true, "interface": true,
	"internal": true, "is": true, "lock": true, "long": true, "namespace": true,
	"new": true, "null": true, "object": true, "operator": true, "out": true,
	"override": true, "params": true, "private": true, "protected": true, "public": true,
	"readonly": true, "ref": true, "return": true, "sbyte": true, "sealed": true,
	"short": true, "sizeof": true, "stackalloc": true, "static": true, "string": true,
	"struct": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "uint": true, "ulong": true, "unchecked": true,
	"unsafe": true, "ushort": true, "using": true, "virtual": true, "void": true,
	"volatile": true, "while": true,
}

// csIdentifier escapes name with '@' when it is a reserved word.
func csIdentifier(name string) string {
	if csharpKeywords[name] {
		return "@" + name
	}
	return name
}

// addNamespace appends ns to usings unless it is empty or already in scope
// for a file declared in fileNamespace. A namespace is in scope when it is
// the file's own namespace or one of its parents; "Project.Service" does not
// enclose "Project.ServiceInterface".
func addNamespace(usings []string, fileNamespace, ns string) []string {
	if ns == "" {
		return usings
	}
	if ns == fileNamespace || strings.HasPrefix(fileNamespace, ns+".") {
		return usings
	}
	return append(usings, ns)
}

// usingBlock sorts and deduplicates usings and renders them as directives.
func usingBlock(usings []string) string {
	sorted := append([]string(nil), usings...)
	sort.Strings(sorted)

	var b strings.Builder
	prev := ""
	for i, u := range sorted {
		if i > 0 && u == prev {
			continue
		}
		prev = u
		b.WriteString("using ")
		b.WriteString(u)
		b.WriteString(";\n")
	}
	return b.String()
}

// wrapNamespace nests body in a block namespace declaration, indenting it by
// one tab. keyword is "namespace" for C# and "export namespace" for TypeScript.
func wrapNamespace(keyword, ns, body string) string {
	body = strings.TrimRight(body, "\n")
	if ns == "" {
		return body + "\n"
	}
	return keyword + " " + ns + " {\n" + indent(body) + "\n}\n"
}

// indent prefixes every non-empty line with a tab.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "\t" + line
		}
	}
	return strings.Join(lines, "\n")
}

// renderCSharp assembles a C# compilation unit.
func renderCSharp(usings []string, ns, body string) string {
	return usingBlock(usings) + "\n" + wrapNamespace("namespace", ns, body)
}
