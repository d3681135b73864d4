package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"csboot/internal/config"
	"csboot/internal/generator"
	"csboot/internal/model"
	"csboot/internal/output"
	"csboot/internal/parser"
)

var log = commonlog.GetLogger("csboot")

// defaultConfigFile is read from the project root when --config is not given.
const defaultConfigFile = "csboot.yaml"

// app holds the global flags and the configuration they resolve to.
type app struct {
	configPath string
	root       string
	sets       []string
	types      []string
	exclude    []string
	dryRun     bool
	force      bool
	verbose    int

	cfg   *config.Config
	runID string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "csboot",
		Short:         "Generate client models and a CRUD stack from C# model classes",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(a.verbose, nil)
			a.runID = uuid.NewString()
			log.Infof("run %s", a.runID)
			return a.loadConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (YAML or JSON, default <root>/"+defaultConfigFile+")")
	flags.StringVar(&a.root, "root", ".", "project root that output paths are relative to")
	flags.StringArrayVar(&a.sets, "set", nil, "override a config key (key=value, repeatable)")
	flags.StringSliceVarP(&a.types, "types", "T", nil, "only generate these classes (comma-separated)")
	flags.StringSliceVarP(&a.exclude, "exclude", "X", nil, "skip these classes (comma-separated)")
	flags.BoolVar(&a.dryRun, "dry-run", false, "print generated files instead of writing them")
	flags.BoolVar(&a.force, "force", false, "overwrite existing files")
	flags.CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newModelCmd(a))
	rootCmd.AddCommand(newCrudCmd(a))
	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// loadConfig resolves configuration from defaults, the config file, .env and
// CSBOOT_* variables, --set assignments and the class filter flags, in that
// order.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg := config.New()

	path := a.configFile()
	if err := cfg.LoadFile(path); err != nil {
		if a.configPath != "" || !errors.Is(err, os.ErrNotExist) {
			return err
		}
	} else {
		log.Debugf("loaded config %s", path)
	}

	if err := cfg.LoadEnv(filepath.Join(a.root, ".env")); err != nil {
		return err
	}
	if err := cfg.SetAll(a.sets); err != nil {
		return err
	}
	if cmd.Flags().Changed("types") {
		cfg.Options.IncludeTypes = a.types
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Options.ExcludeTypes = a.exclude
	}
	if a.force {
		cfg.Options.Overwrite = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	return nil
}

func (a *app) configFile() string {
	if a.configPath != "" {
		return a.configPath
	}
	return filepath.Join(a.root, defaultConfigFile)
}

// parse reads and parses one C# file.
func (a *app) parse(path string) (*model.File, error) {
	file, err := parser.New().ParseFile(path)
	if err != nil {
		return nil, err
	}
	for _, d := range file.Diagnostics {
		log.Warningf("%s:%d: %s", path, d.Line, d.Message)
	}
	return file, nil
}

// generate parses path and writes the artifacts of targets.
func (a *app) generate(out io.Writer, path string, targets ...generator.Target) error {
	// Artifacts placed next to the source must not be re-rooted under --root.
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	file, err := a.parse(abs)
	if err != nil {
		return err
	}

	gen, err := generator.New(a.cfg)
	if err != nil {
		return err
	}
	artifacts, err := gen.Generate(file, targets...)
	if err != nil {
		return err
	}

	w := output.NewWriter(a.root)
	w.Overwrite = a.cfg.Options.Overwrite
	w.DryRun = a.dryRun
	w.Preview = out
	w.RunID = a.runID

	results, err := w.WriteAll(artifacts)
	for _, r := range results {
		if r.Written {
			fmt.Fprintf(out, "wrote %s\n", r.Path)
		}
	}
	return err
}
