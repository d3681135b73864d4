// Package generator renders parsed C# classes into client models, a
// server-side CRUD stack and Go structs.
package generator

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/go-openapi/inflect"
	"github.com/iancoleman/strcase"
	"github.com/tliron/commonlog"

	"csboot/internal/config"
	"csboot/internal/model"
)

var log = commonlog.GetLogger("csboot.generator")

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// ErrNoClasses is returned when a file yields nothing to generate.
var ErrNoClasses = errors.New("no class detected")

// Target is a kind of generated artifact.
type Target string

const (
	TargetModel      Target = "model"
	TargetService    Target = "service"
	TargetInterface  Target = "interface"
	TargetController Target = "controller"
	TargetGo         Target = "go"
)

var (
	// AllTargets lists every target in generation order.
	AllTargets = []Target{TargetModel, TargetService, TargetInterface, TargetController, TargetGo}
	// CRUDTargets is the server-side stack.
	CRUDTargets = []Target{TargetService, TargetInterface, TargetController}
)

// templateNames maps text/template targets to their template file.
var templateNames = map[Target]string{
	TargetModel:      "model.ts.tmpl",
	TargetService:    "service.cs.tmpl",
	TargetInterface:  "interface.cs.tmpl",
	TargetController: "controller.cs.tmpl",
}

// ParseTargets parses a list of target names.
func ParseTargets(names []string) ([]Target, error) {
	var targets []Target
	for _, name := range names {
		t := Target(strings.ToLower(strings.TrimSpace(name)))
		if t == "" {
			continue
		}
		if t == "crud" {
			targets = append(targets, CRUDTargets...)
			continue
		}
		if _, ok := templateNames[t]; !ok && t != TargetGo {
			return nil, fmt.Errorf("unknown target %q", name)
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// Artifact is one generated file.
type Artifact struct {
	Target  Target
	Class   string
	Path    string
	Content string
}

// Generator executes templates against parsed classes.
type Generator struct {
	config    *config.Config
	templates map[string]*template.Template
}

// New creates a new Generator with the built-in templates, overridden by any
// found in the configured template directory.
func New(cfg *config.Config) (*Generator, error) {
	g := &Generator{
		config:    cfg,
		templates: make(map[string]*template.Template),
	}
	for _, name := range templateNames {
		tmpl, err := template.New(name).Funcs(templateFuncs(cfg)).ParseFS(builtinTemplates, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("loading template: %w", err)
		}
		g.templates[name] = tmpl
	}
	if cfg.Options.TemplateDir != "" {
		if err := g.LoadTemplates(cfg.Options.TemplateDir); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// LoadTemplates replaces built-in templates with same-named files from dir.
func (g *Generator) LoadTemplates(dir string) error {
	for _, name := range templateNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		tmpl, err := template.New(name).Funcs(templateFuncs(g.config)).ParseFiles(path)
		if err != nil {
			return fmt.Errorf("loading template: %w", err)
		}
		log.Infof("using template %s", path)
		g.templates[name] = tmpl
	}
	return nil
}

// TemplateData represents data passed to templates.
type TemplateData struct {
	File             *model.File       // The parsed file
	Class            model.ParsedClass // Class being generated
	Config           *config.Config    // Configuration
	Identity         model.Property    // Primary key property
	IdType           string            // C# type of the primary key
	Plural           string            // Pluralized class name (DbSet and route name)
	Var              string            // Local variable name for one instance
	DbContext        string            // Persistence context type name
	CreateProperties []model.Property  // Properties of the create request
	UpdateProperties []model.Property  // Properties of the update request
}

// defaultIdentity stands in for the primary key of a class without properties.
var defaultIdentity = model.Property{Name: "Id", Type: model.Basic(model.Int)}

func (g *Generator) templateData(file *model.File, class model.ParsedClass) *TemplateData {
	data := &TemplateData{
		File:      file,
		Class:     class,
		Config:    g.config,
		Identity:  defaultIdentity,
		Plural:    inflect.Pluralize(class.Name),
		Var:       csIdentifier(lowerFirst(class.Name)),
		DbContext: g.config.Backend.DbContext.Name,
	}
	if id, ok := class.IdentityProperty(); ok {
		data.Identity = id
		data.CreateProperties = class.Properties[1:]
		data.UpdateProperties = class.Properties
	} else {
		data.UpdateProperties = []model.Property{defaultIdentity}
	}
	data.IdType = data.Identity.Type.String()
	return data
}

// Generate renders every included class of file for each target.
func (g *Generator) Generate(file *model.File, targets ...Target) ([]Artifact, error) {
	classes := g.filterClasses(file.Classes)
	if len(classes) == 0 {
		return nil, fmt.Errorf("%s: %w", file.Path, ErrNoClasses)
	}

	var artifacts []Artifact
	for _, class := range classes {
		for _, target := range targets {
			a, err := g.generate(file, class, target)
			if err != nil {
				return nil, err
			}
			log.Debugf("generated %s for %s: %s", target, class.Name, a.Path)
			artifacts = append(artifacts, a)
		}
	}
	return artifacts, nil
}

func (g *Generator) generate(file *model.File, class model.ParsedClass, target Target) (Artifact, error) {
	a := Artifact{Target: target, Class: class.Name}
	data := g.templateData(file, class)
	cfg := g.config

	var err error
	switch target {
	case TargetModel:
		a.Path = g.path(file, cfg.Frontend.Model.Directory, fileBaseName(cfg.Frontend.FileNameCase, class.Name)+".ts")
		a.Content, err = g.renderModel(data)

	case TargetService:
		a.Path = g.path(file, cfg.Backend.Service.Directory, class.Name+"Service.cs")
		ns := cfg.Backend.Service.Namespace
		usings := append([]string(nil), serviceUsings...)
		usings = addNamespace(usings, ns, cfg.Backend.DbContext.Namespace)
		usings = addNamespace(usings, ns, file.Namespace)
		usings = addNamespace(usings, ns, cfg.Backend.ServiceInterface.Namespace)
		a.Content, err = g.renderCSharpTemplate(TargetService, data, usings, ns)

	case TargetInterface:
		a.Path = g.path(file, cfg.Backend.ServiceInterface.Directory, "I"+class.Name+"Service.cs")
		ns := cfg.Backend.ServiceInterface.Namespace
		usings := append([]string(nil), interfaceUsings...)
		usings = addNamespace(usings, ns, file.Namespace)
		usings = addNamespace(usings, ns, cfg.Backend.Service.Namespace)
		a.Content, err = g.renderCSharpTemplate(TargetInterface, data, usings, ns)

	case TargetController:
		a.Path = g.path(file, cfg.Backend.Controller.Directory, data.Plural+"Controller.cs")
		ns := cfg.Backend.Controller.Namespace
		usings := append([]string(nil), controllerUsings...)
		usings = addNamespace(usings, ns, file.Namespace)
		usings = addNamespace(usings, ns, cfg.Backend.Service.Namespace)
		usings = addNamespace(usings, ns, cfg.Backend.ServiceInterface.Namespace)
		a.Content, err = g.renderCSharpTemplate(TargetController, data, usings, ns)

	case TargetGo:
		a.Path = g.path(file, cfg.Golang.Directory, strcase.ToSnake(class.Name)+".go")
		a.Content, err = g.renderGo(class)

	default:
		err = fmt.Errorf("unknown target %q", target)
	}
	return a, err
}

// path places name in dir, or next to the source file when dir is empty.
func (g *Generator) path(file *model.File, dir, name string) string {
	if dir == "" {
		dir = filepath.Dir(file.Path)
	}
	return filepath.Join(dir, name)
}

func (g *Generator) execute(target Target, data *TemplateData) (string, error) {
	name := templateNames[target]
	var buf bytes.Buffer
	if err := g.templates[name].Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template for %s: %w", data.Class.Name, err)
	}
	return buf.String(), nil
}

func (g *Generator) renderModel(data *TemplateData) (string, error) {
	body, err := g.execute(TargetModel, data)
	if err != nil {
		return "", err
	}

	ns := g.config.Frontend.Model.Namespace
	var imports strings.Builder
	for _, name := range data.Class.UserDefinedNames() {
		if name == data.Class.Name {
			continue
		}
		writeModelImport(&imports, ns, name, fileBaseName(g.config.Frontend.FileNameCase, name))
	}
	if imports.Len() > 0 {
		imports.WriteString("\n")
	}
	return imports.String() + wrapNamespace("export namespace", ns, body), nil
}

// writeModelImport imports class name from the sibling module file. Sibling
// modules wrapped in namespace ns only export the namespace's first segment,
// so the class is reached through an alias of it.
func writeModelImport(w io.Writer, ns, name, file string) {
	if ns == "" {
		fmt.Fprintf(w, "import { %s } from './%s';\n", name, file)
		return
	}
	root, rest, _ := strings.Cut(ns, ".")
	alias := name + "Namespace"
	qualified := alias
	if rest != "" {
		qualified += "." + rest
	}
	fmt.Fprintf(w, "import { %s as %s } from './%s';\n", root, alias, file)
	fmt.Fprintf(w, "import %s = %s.%s;\n", name, qualified, name)
}

func (g *Generator) renderCSharpTemplate(target Target, data *TemplateData, usings []string, ns string) (string, error) {
	body, err := g.execute(target, data)
	if err != nil {
		return "", err
	}
	return renderCSharp(usings, ns, body), nil
}

// filterClasses filters classes based on configuration.
func (g *Generator) filterClasses(classes []model.ParsedClass) []model.ParsedClass {
	var result []model.ParsedClass
	for _, c := range classes {
		if g.config.ShouldIncludeType(c.Name) {
			result = append(result, c)
		}
	}
	return result
}
