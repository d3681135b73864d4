// Package model defines the intermediate representation for parsed C# model classes.
package model

import "strings"

// TypeKind represents the category of a C# type.
type TypeKind string

const (
	KindBasic       TypeKind = "basic"
	KindUserDefined TypeKind = "user"
	KindCollection  TypeKind = "collection"
)

// File represents a parsed C# source file.
type File struct {
	Path        string        `json:"path" yaml:"path"`                                   // File path
	Namespace   string        `json:"namespace,omitempty" yaml:"namespace,omitempty"`     // First declared namespace (empty if none)
	Classes     []ParsedClass `json:"classes" yaml:"classes"`                             // Public classes in declaration order
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"` // Skipped or rejected constructs
}

// ParsedClass represents one public class declaration.
type ParsedClass struct {
	Name       string     `json:"className" yaml:"className"`
	Properties []Property `json:"properties" yaml:"properties"`
}

// Property represents an auto-implemented property.
type Property struct {
	Name     string `json:"name" yaml:"name"`
	Type     Type   `json:"type" yaml:"type"`
	Nullable bool   `json:"nullable" yaml:"nullable"`
}

// Diagnostic describes input that the parser recognized but could not use.
type Diagnostic struct {
	Offset  int    `json:"offset" yaml:"offset"`
	Line    int    `json:"line" yaml:"line"`
	Message string `json:"message" yaml:"message"`
}

// IdentityProperty returns the first declared property, which downstream
// emitters treat as the primary key.
func (c ParsedClass) IdentityProperty() (Property, bool) {
	if len(c.Properties) == 0 {
		return Property{}, false
	}
	return c.Properties[0], true
}

// TypeString renders the property type as C# source, including a trailing
// nullability marker.
func (p Property) TypeString() string {
	if p.Type == nil {
		return ""
	}
	s := p.Type.String()
	if p.Nullable {
		s += "?"
	}
	return s
}

// UserDefinedNames returns the distinct user-defined type names referenced by
// the class properties, in first-use order.
func (c ParsedClass) UserDefinedNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range c.Properties {
		Walk(p.Type, func(t Type) {
			u, ok := t.(UserDefinedType)
			if !ok || seen[u.Name] || strings.ContainsAny(u.Name, "<>,[].") {
				return
			}
			seen[u.Name] = true
			names = append(names, u.Name)
		})
	}
	return names
}

// Walk calls fn for t and every type nested inside it.
func Walk(t Type, fn func(Type)) {
	if t == nil {
		return
	}
	fn(t)
	if c, ok := t.(CollectionType); ok {
		Walk(c.Inner, fn)
	}
}
