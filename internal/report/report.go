// Package report persists search results as per-stack JSON artifacts.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crimson-sun/stackgrep/internal/model"
)

// Writer writes report files into a fixed output directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer targeting dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write serializes the report to <stack>_results.json in the output
// directory: a JSON array of {log_group_name, results} objects, 2-space
// indented. Returns the path of the written file.
func (w *Writer) Write(rep model.Report) (string, error) {
	data, err := json.MarshalIndent(rep.Results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: marshal results for %s: %w", rep.Stack, err)
	}

	path := filepath.Join(w.dir, rep.Stack+"_results.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", path, err)
	}
	return path, nil
}
