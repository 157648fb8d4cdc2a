package export

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// YAMLExporter exports pathways to the native format as YAML
type YAMLExporter struct {
	Indent int
}

// NewYAMLExporter creates a new YAML exporter
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{Indent: 2}
}

// Export converts a pathway to YAML
func (e *YAMLExporter) Export(p Pathway) (string, error) {
	f, err := NewFile(p)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(e.Indent)
	if err := enc.Encode(f); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GetFileExtension returns the file extension for YAML
func (e *YAMLExporter) GetFileExtension() string {
	return ".yaml"
}

// GetFormatName returns the format name
func (e *YAMLExporter) GetFormatName() string {
	return "YAML"
}
