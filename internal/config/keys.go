package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable that overrides a key.
const EnvPrefix = "CSBOOT_"

// ErrUnknownKey is returned by Set and Get for keys no field answers to.
var ErrUnknownKey = errors.New("unknown config key")

// keys maps dotted keys to the string field they address. The names follow
// the settings keys of the editor add-in this tool grew out of.
var keys = map[string]func(*Config) *string{
	"frontend.model.directory":            func(c *Config) *string { return &c.Frontend.Model.Directory },
	"frontend.model.namespace":            func(c *Config) *string { return &c.Frontend.Model.Namespace },
	"frontend.filenamecase":               func(c *Config) *string { return &c.Frontend.FileNameCase },
	"backend.service.directory":           func(c *Config) *string { return &c.Backend.Service.Directory },
	"backend.service.namespace":           func(c *Config) *string { return &c.Backend.Service.Namespace },
	"backend.service.interface.directory": func(c *Config) *string { return &c.Backend.ServiceInterface.Directory },
	"backend.service.interface.namespace": func(c *Config) *string { return &c.Backend.ServiceInterface.Namespace },
	"backend.controller.directory":        func(c *Config) *string { return &c.Backend.Controller.Directory },
	"backend.controller.namespace":        func(c *Config) *string { return &c.Backend.Controller.Namespace },
	"backend.dbcontext.name":              func(c *Config) *string { return &c.Backend.DbContext.Name },
	"backend.dbcontext.namespace":         func(c *Config) *string { return &c.Backend.DbContext.Namespace },
	"golang.directory":                    func(c *Config) *string { return &c.Golang.Directory },
	"golang.package":                      func(c *Config) *string { return &c.Golang.Package },
	"options.templatedir":                 func(c *Config) *string { return &c.Options.TemplateDir },
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	names := make([]string, 0, len(keys)+1)
	for k := range keys {
		names = append(names, k)
	}
	names = append(names, "options.overwrite")
	sort.Strings(names)
	return names
}

// normalizeKey accepts "backend.dbContext.name", "backend-dbcontext-name" and
// "backend.serviceInterface.directory" spellings.
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "-", ".")
	key = strings.ReplaceAll(key, "_", ".")
	return strings.ReplaceAll(key, "serviceinterface", "service.interface")
}

// Set assigns value to the field addressed by a dotted key.
func (c *Config) Set(key, value string) error {
	k := normalizeKey(key)
	if k == "options.overwrite" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Options.Overwrite = b
		return nil
	}
	field, ok := keys[k]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	*field(c) = value
	return nil
}

// Get returns the value of the field addressed by a dotted key.
func (c *Config) Get(key string) (string, error) {
	k := normalizeKey(key)
	if k == "options.overwrite" {
		return strconv.FormatBool(c.Options.Overwrite), nil
	}
	field, ok := keys[k]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return *field(c), nil
}

// SetAll applies "key=value" assignments in order.
func (c *Config) SetAll(assignments []string) error {
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q: expected key=value", a)
		}
		if err := c.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	k := normalizeKey(key)
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(k, ".", "_"))
}

// ApplyEnv overrides fields from variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, key := range Keys() {
		if value, ok := lookup(EnvName(key)); ok {
			if err := c.Set(key, value); err != nil {
				return fmt.Errorf("%s: %w", EnvName(key), err)
			}
		}
	}
	return nil
}

// LoadEnv loads .env files (missing files are ignored) into the process
// environment and applies CSBOOT_* overrides.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return c.ApplyEnv(os.LookupEnv)
}
