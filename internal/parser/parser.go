// Package parser extracts model classes from C# source text.
//
// It is a best-effort scanner, not a C# parser: it recognizes public classes
// and their public `{ get; set; }` auto-properties and ignores everything
// else. Parsing never fails on content; input it cannot make sense of yields
// an empty result.
package parser

import (
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"csboot/internal/model"
)

var log = commonlog.GetLogger("csboot.parser")

// Parser parses C# source files. The zero value is ready to use and a Parser
// is safe for concurrent use.
type Parser struct{}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a C# source file. Only I/O errors are returned.
func (p *Parser) ParseFile(path string) (*model.File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	file := p.Parse(path, src)
	log.Debugf("parsed %s: %d classes, %d diagnostics", path, len(file.Classes), len(file.Diagnostics))
	return file, nil
}

// Parse parses src, recording path on the result.
func (p *Parser) Parse(path string, src []byte) *model.File {
	text := string(src)
	classes, diags := parseClasses(text)
	return &model.File{
		Path:        path,
		Namespace:   DetectNamespace(text),
		Classes:     classes,
		Diagnostics: diags,
	}
}
