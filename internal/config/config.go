package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration handed to the generators.
type Config struct {
	Frontend     Frontend          `yaml:"frontend" json:"frontend"`
	Backend      Backend           `yaml:"backend" json:"backend"`
	Golang       Golang            `yaml:"golang" json:"golang"`
	TypeMappings map[string]string `yaml:"typeMappings" json:"typeMappings"`
	Options      Options           `yaml:"options" json:"options"`
}

// Target locates one category of generated artifact.
type Target struct {
	Directory string `yaml:"directory" json:"directory"`
	Namespace string `yaml:"namespace" json:"namespace"`
}

// Frontend configures the TypeScript client model.
type Frontend struct {
	Model        Target `yaml:"model" json:"model"`
	FileNameCase string `yaml:"fileNameCase" json:"fileNameCase" validate:"omitempty,oneof=camel kebab snake pascal"`
}

// Backend configures the server-side CRUD stack.
type Backend struct {
	Service          Target    `yaml:"service" json:"service"`
	ServiceInterface Target    `yaml:"serviceInterface" json:"serviceInterface"`
	Controller       Target    `yaml:"controller" json:"controller"`
	DbContext        DbContext `yaml:"dbContext" json:"dbContext"`
}

// DbContext names the persistence context the service is written against.
type DbContext struct {
	Name      string `yaml:"name" json:"name" validate:"required"`
	Namespace string `yaml:"namespace" json:"namespace"`
}

// Golang configures the Go struct model.
type Golang struct {
	Directory string `yaml:"directory" json:"directory"`
	Package   string `yaml:"package" json:"package" validate:"required,lowercase,alphanum"`
}

// Options represents generation options.
type Options struct {
	IncludeTypes []string `yaml:"includeTypes" json:"includeTypes"`
	ExcludeTypes []string `yaml:"excludeTypes" json:"excludeTypes"`
	TemplateDir  string   `yaml:"templateDir" json:"templateDir"`
	Overwrite    bool     `yaml:"overwrite" json:"overwrite"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Frontend:     DefaultFrontend(),
		Backend:      DefaultBackend(),
		Golang:       DefaultGolang(),
		TypeMappings: DefaultTypeMappings(),
	}
}

// LoadFile loads configuration from a file (YAML or JSON based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded Config
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	c.merge(&loaded)
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// merge merges the loaded config into the current config. Empty values in
// loaded keep the current value.
func (c *Config) merge(loaded *Config) {
	mergeTarget(&c.Frontend.Model, loaded.Frontend.Model)
	mergeString(&c.Frontend.FileNameCase, loaded.Frontend.FileNameCase)

	mergeTarget(&c.Backend.Service, loaded.Backend.Service)
	mergeTarget(&c.Backend.ServiceInterface, loaded.Backend.ServiceInterface)
	mergeTarget(&c.Backend.Controller, loaded.Backend.Controller)
	mergeString(&c.Backend.DbContext.Name, loaded.Backend.DbContext.Name)
	mergeString(&c.Backend.DbContext.Namespace, loaded.Backend.DbContext.Namespace)

	mergeString(&c.Golang.Directory, loaded.Golang.Directory)
	mergeString(&c.Golang.Package, loaded.Golang.Package)

	// Loaded type mappings override defaults
	if c.TypeMappings == nil {
		c.TypeMappings = make(map[string]string)
	}
	for k, v := range loaded.TypeMappings {
		c.TypeMappings[k] = v
	}

	if loaded.Options.IncludeTypes != nil {
		c.Options.IncludeTypes = loaded.Options.IncludeTypes
	}
	if loaded.Options.ExcludeTypes != nil {
		c.Options.ExcludeTypes = loaded.Options.ExcludeTypes
	}
	mergeString(&c.Options.TemplateDir, loaded.Options.TemplateDir)
	if loaded.Options.Overwrite {
		c.Options.Overwrite = true
	}
}

func mergeTarget(dst *Target, src Target) {
	mergeString(&dst.Directory, src.Directory)
	mergeString(&dst.Namespace, src.Namespace)
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// MapType returns the configured TypeScript type for a C# type name.
func (c *Config) MapType(csType string) (string, bool) {
	mapped, ok := c.TypeMappings[csType]
	return mapped, ok
}

// ShouldIncludeType checks if a class should be generated based on config.
func (c *Config) ShouldIncludeType(name string) bool {
	// Check include list (if specified, type must be in it)
	if len(c.Options.IncludeTypes) > 0 && !contains(c.Options.IncludeTypes, name) {
		return false
	}
	return !contains(c.Options.ExcludeTypes, name)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
