package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "DBContext", cfg.Backend.DbContext.Name)
	assert.Equal(t, "camel", cfg.Frontend.FileNameCase)
	assert.Equal(t, "models", cfg.Golang.Package)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "csboot.yaml", `
frontend:
  model:
    directory: client/src/models
backend:
  service:
    directory: Server/Services
    namespace: School.Services
  serviceInterface:
    namespace: School.Services.Interfaces
  dbContext:
    name: SchoolContext
    namespace: School.Data
typeMappings:
  Money: number
options:
  excludeTypes: [Audit]
`)

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "client/src/models", cfg.Frontend.Model.Directory)
	assert.Equal(t, "camel", cfg.Frontend.FileNameCase)
	assert.Equal(t, "Server/Services", cfg.Backend.Service.Directory)
	assert.Equal(t, "School.Services", cfg.Backend.Service.Namespace)
	assert.Equal(t, "School.Services.Interfaces", cfg.Backend.ServiceInterface.Namespace)
	assert.Equal(t, "SchoolContext", cfg.Backend.DbContext.Name)
	assert.Equal(t, "School.Data", cfg.Backend.DbContext.Namespace)
	assert.Equal(t, "models", cfg.Golang.Package)

	mapped, ok := cfg.MapType("Money")
	assert.True(t, ok)
	assert.Equal(t, "number", mapped)
	_, ok = cfg.MapType("Uri")
	assert.True(t, ok, "defaults survive a merge")

	assert.False(t, cfg.ShouldIncludeType("Audit"))
	assert.True(t, cfg.ShouldIncludeType("Student"))
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "csboot.json", `{"backend": {"controller": {"namespace": "School.Api"}}, "options": {"includeTypes": ["Student"]}}`)

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))
	assert.Equal(t, "School.Api", cfg.Backend.Controller.Namespace)
	assert.True(t, cfg.ShouldIncludeType("Student"))
	assert.False(t, cfg.ShouldIncludeType("Teacher"))
}

func TestLoadFileErrors(t *testing.T) {
	cfg := New()
	assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, cfg.LoadFile(writeFile(t, "bad.json", "{not json")))
	assert.Error(t, cfg.LoadFile(writeFile(t, "bad.conf", "\t: [")))
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Set("backend.dbcontext.name", "SchoolContext"))
	require.NoError(t, cfg.Set("backend.service.interface.namespace", "School.Contracts"))

	path := filepath.Join(t.TempDir(), "nested", "csboot.yaml")
	require.NoError(t, cfg.Save(path))

	loaded := New()
	require.NoError(t, loaded.LoadFile(path))
	assert.Equal(t, "SchoolContext", loaded.Backend.DbContext.Name)
	assert.Equal(t, "School.Contracts", loaded.Backend.ServiceInterface.Namespace)
}

func TestSetAndGet(t *testing.T) {
	tests := []struct {
		key  string
		want func(*Config) string
	}{
		{"backend.dbcontext.name", func(c *Config) string { return c.Backend.DbContext.Name }},
		{"backend.dbContext.namespace", func(c *Config) string { return c.Backend.DbContext.Namespace }},
		{"backend-service-directory", func(c *Config) string { return c.Backend.Service.Directory }},
		{"backend.serviceInterface.directory", func(c *Config) string { return c.Backend.ServiceInterface.Directory }},
		{"frontend.model.namespace", func(c *Config) string { return c.Frontend.Model.Namespace }},
		{"golang.directory", func(c *Config) string { return c.Golang.Directory }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := New()
			require.NoError(t, cfg.Set(tt.key, "value"))
			assert.Equal(t, "value", tt.want(cfg))

			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, "value", got)
		})
	}
}

func TestSetUnknownKey(t *testing.T) {
	cfg := New()
	assert.ErrorIs(t, cfg.Set("backend.repository.directory", "x"), ErrUnknownKey)
	_, err := cfg.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestSetOverwrite(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Set("options.overwrite", "true"))
	assert.True(t, cfg.Options.Overwrite)
	assert.Error(t, cfg.Set("options.overwrite", "sometimes"))
}

func TestSetAll(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.SetAll([]string{"golang.package=dto", "backend.controller.namespace=Api.Controllers"}))
	assert.Equal(t, "dto", cfg.Golang.Package)
	assert.Equal(t, "Api.Controllers", cfg.Backend.Controller.Namespace)
	assert.Error(t, cfg.SetAll([]string{"novalue"}))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "CSBOOT_BACKEND_DBCONTEXT_NAME", EnvName("backend.dbContext.name"))
	assert.Equal(t, "CSBOOT_BACKEND_SERVICE_INTERFACE_DIRECTORY", EnvName("backend.serviceInterface.directory"))
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CSBOOT_BACKEND_DBCONTEXT_NAME": "AppDb",
		"CSBOOT_GOLANG_PACKAGE":         "entities",
		"CSBOOT_OPTIONS_OVERWRITE":      "1",
	}
	cfg := New()
	require.NoError(t, cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))
	assert.Equal(t, "AppDb", cfg.Backend.DbContext.Name)
	assert.Equal(t, "entities", cfg.Golang.Package)
	assert.True(t, cfg.Options.Overwrite)
}

func TestLoadEnvDotenv(t *testing.T) {
	path := writeFile(t, ".env", "CSBOOT_BACKEND_CONTROLLER_DIRECTORY=Api/Controllers\n")
	t.Setenv("CSBOOT_BACKEND_CONTROLLER_DIRECTORY", "")
	os.Unsetenv("CSBOOT_BACKEND_CONTROLLER_DIRECTORY")

	cfg := New()
	require.NoError(t, cfg.LoadEnv(path, filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, "Api/Controllers", cfg.Backend.Controller.Directory)
}

func TestValidate(t *testing.T) {
	cfg := New()
	cfg.Backend.DbContext.Name = ""
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.Frontend.FileNameCase = "shouting"
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.Golang.Package = "My-Models"
	assert.Error(t, cfg.Validate())
}

func TestKeys(t *testing.T) {
	cfg := New()
	for _, key := range Keys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}
