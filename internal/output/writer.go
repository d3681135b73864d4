// Package output writes generated artifacts below a project root.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"csboot/internal/generator"
)

var log = commonlog.GetLogger("csboot.output")

// ErrExists is returned when a target file exists and overwriting is off.
var ErrExists = errors.New("file already exists")

// Writer writes artifacts to disk.
//
// Relative artifact paths are resolved against Root. Existing files are left
// untouched unless Overwrite is set. In DryRun mode nothing is written and the
// content is copied to Preview instead, when set. RunID tags the preview
// headers and log lines of one invocation.
type Writer struct {
	Root      string
	Overwrite bool
	DryRun    bool
	Preview   io.Writer
	RunID     string
}

// NewWriter creates a Writer rooted at root.
func NewWriter(root string) *Writer {
	return &Writer{Root: root}
}

// Result reports what happened to one artifact.
type Result struct {
	Path    string
	Written bool
	Skipped bool
}

// Resolve returns the on-disk location of path.
func (w *Writer) Resolve(path string) string {
	if filepath.IsAbs(path) || w.Root == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(w.Root, path)
}

// Write writes one artifact.
func (w *Writer) Write(a generator.Artifact) (Result, error) {
	full := w.Resolve(a.Path)
	res := Result{Path: full}

	if w.DryRun {
		log.Infof("would write %s%s", full, w.runSuffix())
		if w.Preview != nil {
			if _, err := fmt.Fprintf(w.Preview, "// %s%s\n%s", full, w.runSuffix(), a.Content); err != nil {
				return res, fmt.Errorf("writing preview: %w", err)
			}
			if !strings.HasSuffix(a.Content, "\n") {
				fmt.Fprintln(w.Preview)
			}
		}
		return res, nil
	}

	if !w.Overwrite {
		if _, err := os.Stat(full); err == nil {
			log.Warningf("skipping existing file %s", full)
			res.Skipped = true
			return res, fmt.Errorf("%s: %w", full, ErrExists)
		}
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return res, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, []byte(a.Content), 0o644); err != nil {
		return res, fmt.Errorf("failed to write file %s: %w", full, err)
	}

	log.Infof("wrote %s%s", full, w.runSuffix())
	res.Written = true
	return res, nil
}

// WriteAll writes every artifact, continuing past files that already exist.
// The returned error joins every failure.
func (w *Writer) WriteAll(artifacts []generator.Artifact) ([]Result, error) {
	results := make([]Result, 0, len(artifacts))
	var errs []error
	for _, a := range artifacts {
		res, err := w.Write(a)
		results = append(results, res)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return results, errors.Join(errs...)
}

func (w *Writer) runSuffix() string {
	if w.RunID == "" {
		return ""
	}
	return " (run " + w.RunID + ")"
}
