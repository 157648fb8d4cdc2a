// Package importer loads pathways from the file formats the editor saves and
// from Mermaid flowcharts and Graphviz digraphs.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pathway/export"
)

// ErrUnknownFormat is returned when no importer accepts the content.
var ErrUnknownFormat = errors.New("unable to detect format")

// Importer interface defines methods for importing pathways from various formats
type Importer interface {
	// CanImport checks if the given content can be imported by this importer
	CanImport(content string) bool

	// Import converts the input content into a pathway
	Import(content string) (export.Pathway, error)

	// GetFormatName returns the human-readable name of the format
	GetFormatName() string

	// GetFileExtensions returns common file extensions for this format
	GetFileExtensions() []string
}

// Decoder is implemented by importers of the native file formats. Decode
// returns the file as written, without checking that it forms a valid
// document, so that a linter can report every problem in it.
type Decoder interface {
	Decode(content string) (export.File, error)
}

// ImporterRegistry manages available importers
type ImporterRegistry struct {
	importers []Importer
}

// NewImporterRegistry creates a new importer registry. JSON is tried before
// YAML because every JSON document also parses as YAML.
func NewImporterRegistry() *ImporterRegistry {
	return &ImporterRegistry{
		importers: []Importer{
			NewJSONImporter(),
			NewGraphvizImporter(),
			NewMermaidImporter(),
			NewYAMLImporter(),
		},
	}
}

// Register adds a new importer to the registry
func (r *ImporterRegistry) Register(importer Importer) {
	r.importers = append(r.importers, importer)
}

// DetectFormat attempts to detect the format of the given content
func (r *ImporterRegistry) DetectFormat(content string) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, ErrUnknownFormat
}

// Import attempts to import content using auto-detection
func (r *ImporterRegistry) Import(content string) (export.Pathway, error) {
	importer, err := r.DetectFormat(content)
	if err != nil {
		return export.Pathway{}, err
	}
	return importer.Import(content)
}

// ImportWithFormat imports content using a specific format
func (r *ImporterRegistry) ImportWithFormat(content, format string) (export.Pathway, error) {
	format = strings.ToLower(format)

	for _, imp := range r.importers {
		if strings.ToLower(imp.GetFormatName()) == format {
			return imp.Import(content)
		}
	}

	return export.Pathway{}, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// ImportFile reads path and imports it, picking the importer by file
// extension and falling back to content detection.
func (r *ImporterRegistry) ImportFile(path string) (export.Pathway, error) {
	imp, content, err := r.openFile(path)
	if err != nil {
		return export.Pathway{}, err
	}
	return imp.Import(content)
}

// DecodeFile reads path into its serialized form without rejecting integrity
// violations. Formats that are not native files are imported and converted,
// so they are always consistent.
func (r *ImporterRegistry) DecodeFile(path string) (export.File, error) {
	imp, content, err := r.openFile(path)
	if err != nil {
		return export.File{}, err
	}
	if dec, ok := imp.(Decoder); ok {
		return dec.Decode(content)
	}
	p, err := imp.Import(content)
	if err != nil {
		return export.File{}, err
	}
	return export.NewFile(p)
}

func (r *ImporterRegistry) openFile(path string) (Importer, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	content := string(data)

	ext := strings.ToLower(filepath.Ext(path))
	for _, imp := range r.importers {
		for _, e := range imp.GetFileExtensions() {
			if e == ext {
				return imp, content, nil
			}
		}
	}
	imp, err := r.DetectFormat(content)
	if err != nil {
		return nil, "", err
	}
	return imp, content, nil
}

// GetAvailableFormats returns a list of available import formats
func (r *ImporterRegistry) GetAvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.GetFormatName()
	}
	return formats
}
