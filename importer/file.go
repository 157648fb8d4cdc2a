package importer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"pathway/export"
	"pathway/graph"
)

// fromFile validates the decoded file and rebuilds its document.
func fromFile(f export.File) (export.Pathway, error) {
	doc, err := graph.FromRecord(f.Record)
	if err != nil {
		return export.Pathway{}, err
	}
	return export.Pathway{Name: f.Name, Active: f.Active, Document: doc}, nil
}

// JSONImporter imports the native JSON pathway file
type JSONImporter struct{}

// NewJSONImporter creates a new JSON importer
func NewJSONImporter() *JSONImporter {
	return &JSONImporter{}
}

// CanImport checks if the content looks like a JSON object
func (j *JSONImporter) CanImport(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), "{")
}

// Decode reads a JSON pathway file without validating it
func (j *JSONImporter) Decode(content string) (export.File, error) {
	var f export.File
	if err := json.Unmarshal([]byte(content), &f); err != nil {
		return export.File{}, fmt.Errorf("invalid JSON pathway: %w", err)
	}
	return f, nil
}

// Import decodes a JSON pathway file
func (j *JSONImporter) Import(content string) (export.Pathway, error) {
	f, err := j.Decode(content)
	if err != nil {
		return export.Pathway{}, err
	}
	return fromFile(f)
}

// GetFormatName returns the format name
func (j *JSONImporter) GetFormatName() string {
	return "JSON"
}

// GetFileExtensions returns common file extensions
func (j *JSONImporter) GetFileExtensions() []string {
	return []string{".json"}
}

// YAMLImporter imports the native pathway file written as YAML
type YAMLImporter struct{}

// NewYAMLImporter creates a new YAML importer
func NewYAMLImporter() *YAMLImporter {
	return &YAMLImporter{}
}

var yamlNodesKey = regexp.MustCompile(`(?m)^nodes:`)

// CanImport checks for a top-level nodes key
func (y *YAMLImporter) CanImport(content string) bool {
	return yamlNodesKey.MatchString(content)
}

// Decode reads a YAML pathway file without validating it
func (y *YAMLImporter) Decode(content string) (export.File, error) {
	var f export.File
	if err := yaml.Unmarshal([]byte(content), &f); err != nil {
		return export.File{}, fmt.Errorf("invalid YAML pathway: %w", err)
	}
	return f, nil
}

// Import decodes a YAML pathway file
func (y *YAMLImporter) Import(content string) (export.Pathway, error) {
	f, err := y.Decode(content)
	if err != nil {
		return export.Pathway{}, err
	}
	return fromFile(f)
}

// GetFormatName returns the format name
func (y *YAMLImporter) GetFormatName() string {
	return "YAML"
}

// GetFileExtensions returns common file extensions
func (y *YAMLImporter) GetFileExtensions() []string {
	return []string{".yaml", ".yml"}
}
