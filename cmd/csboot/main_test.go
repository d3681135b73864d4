package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csboot/internal/generator"
	"csboot/internal/output"
)

const studentSource = `namespace School.Models
{
    public class Student {
        public int StudentID { get; set; }
        public string StudentName { get; set; }
        public DateTime? DateOfBirth { get; set; }
    }
}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "Student.cs", studentSource)

	out, err := run(t, "--root", dir, "parse", src)
	require.NoError(t, err)

	var doc struct {
		Namespace string `json:"namespace"`
		Classes   []struct {
			ClassName  string `json:"className"`
			Properties []struct {
				Name     string `json:"name"`
				Nullable bool   `json:"nullable"`
			} `json:"properties"`
		} `json:"classes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "School.Models", doc.Namespace)
	require.Len(t, doc.Classes, 1)
	assert.Equal(t, "Student", doc.Classes[0].ClassName)
	require.Len(t, doc.Classes[0].Properties, 3)
	assert.True(t, doc.Classes[0].Properties[2].Nullable)

	out, err = run(t, "--root", dir, "parse", "--format", "yaml", src)
	require.NoError(t, err)
	assert.Contains(t, out, "className: Student")

	_, err = run(t, "--root", dir, "parse", "--format", "xml", src)
	assert.Error(t, err)
}

func TestModelCommandWritesNextToSource(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "Student.cs", studentSource)

	out, err := run(t, "--root", dir, "model", src)
	require.NoError(t, err)

	want := filepath.Join(dir, "student.ts")
	assert.Equal(t, "wrote "+want+"\n", out)
	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), "export interface IStudent {")
}

func TestCrudCommandUsesConfig(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "Student.cs", studentSource)
	writeSource(t, dir, "csboot.yaml", `backend:
  service:
    directory: Services
    namespace: School.Services
  serviceInterface:
    directory: Services/Interfaces
    namespace: School.Services.Interfaces
  controller:
    directory: Controllers
  dbContext:
    name: SchoolContext
`)

	_, err := run(t, "--root", dir, "crud", src, "--set", "backend.controller.namespace=School.Controllers")
	require.NoError(t, err)

	service, err := os.ReadFile(filepath.Join(dir, "Services", "StudentService.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(service), "private readonly SchoolContext context;")

	contract, err := os.ReadFile(filepath.Join(dir, "Services", "Interfaces", "IStudentService.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(contract), "namespace School.Services.Interfaces {")

	controller, err := os.ReadFile(filepath.Join(dir, "Controllers", "StudentsController.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(controller), "namespace School.Controllers {")
}

func TestGenerateCommandTargetsAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "Student.cs", studentSource)
	args := []string{"--root", dir, "generate", "--targets", "go", "--set", "golang.directory=models", src}

	_, err := run(t, args...)
	require.NoError(t, err)
	path := filepath.Join(dir, "models", "student.go")
	assert.FileExists(t, path)

	_, err = run(t, args...)
	assert.ErrorIs(t, err, output.ErrExists)

	_, err = run(t, append(args, "--force")...)
	assert.NoError(t, err)

	_, err = run(t, "--root", dir, "generate", "--targets", "repository", src)
	assert.Error(t, err)
}

func TestGenerateCommandDryRun(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "Student.cs", studentSource)

	out, err := run(t, "--root", dir, "--dry-run", "generate", "--targets", "interface", src)
	require.NoError(t, err)
	assert.Contains(t, out, "public interface IStudentService {")
	assert.NoFileExists(t, filepath.Join(dir, "IStudentService.cs"))

	m := regexp.MustCompile(`IStudentService\.cs \(run ([0-9a-f-]+)\)\n`).FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	_, err = uuid.Parse(m[1])
	assert.NoError(t, err)
}

func TestModelCommandRelativeSourceUnderRoot(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(parent, "proj", "Models"), 0o755))
	writeSource(t, filepath.Join(parent, "proj", "Models"), "Student.cs", studentSource)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(parent))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = run(t, "--root", "proj", "model", filepath.Join("proj", "Models", "Student.cs"))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(parent, "proj", "Models", "student.ts"))
	assert.NoDirExists(t, filepath.Join(parent, "proj", "proj"))
}

func TestGenerateCommandFilters(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "Student.cs", studentSource)

	_, err := run(t, "--root", dir, "-X", "Student", "model", src)
	assert.ErrorIs(t, err, generator.ErrNoClasses)

	_, err = run(t, "--root", dir, "-T", "Student", "model", src)
	assert.NoError(t, err)
}

func TestNoClassRecognized(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "Empty.cs", "namespace Nothing { }\n")

	_, err := run(t, "--root", dir, "model", src)
	assert.ErrorIs(t, err, generator.ErrNoClasses)
}

func TestConfigSetAndShow(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "settings", "csboot.yaml")

	_, err := run(t, "--config", cfgPath, "config", "set", "backend.dbContext.name", "SchoolContext")
	require.Error(t, err, "an explicit config file must exist")

	_, err = run(t, "--root", dir, "config", "set", "backend.dbContext.name", "SchoolContext")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "csboot.yaml"))

	out, err := run(t, "--root", dir, "config", "show", "backend.dbContext.name")
	require.NoError(t, err)
	assert.Equal(t, "SchoolContext\n", out)

	out, err = run(t, "--root", dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "name: SchoolContext")

	_, err = run(t, "--root", dir, "config", "set", "golang.package", "Not Valid")
	assert.Error(t, err)

	_, err = run(t, "--root", dir, "config", "show", "no.such.key")
	assert.Error(t, err)
}

func TestConfigKeys(t *testing.T) {
	out, err := run(t, "config", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "CSBOOT_BACKEND_DBCONTEXT_NAME")
}
