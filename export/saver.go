package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pathway/graph"
)

// FileSaver writes pathways to a single file with the given exporter.
// It satisfies the editor's Saver hook.
type FileSaver struct {
	Path     string
	Exporter Exporter
}

// NewFileSaver creates a saver for path, choosing the exporter from the file
// extension. Unknown extensions are written as JSON.
func NewFileSaver(path string) *FileSaver {
	format, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		format = FormatJSON
	}
	exporter, _ := NewExporter(format)
	return &FileSaver{Path: path, Exporter: exporter}
}

// Save exports the document and replaces the file. The content is written to
// a temporary file first so a failed write never truncates the old one.
func (s *FileSaver) Save(name string, active bool, doc *graph.Document) error {
	content, err := s.Exporter.Export(Pathway{Name: name, Active: active, Document: doc})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".pathway-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.Path, err)
	}
	return nil
}
