// Package export writes pathways to text formats for saving and sharing.
package export

import (
	"fmt"
	"strings"

	"pathway/graph"
)

// Format represents an export format
type Format string

const (
	// FormatJSON is the native pathway file format
	FormatJSON Format = "json"
	// FormatYAML is the native format in YAML form
	FormatYAML Format = "yaml"
	// FormatMermaid exports to a Mermaid flowchart
	FormatMermaid Format = "mermaid"
	// FormatDOT exports to Graphviz DOT syntax
	FormatDOT Format = "dot"
)

// Pathway is a named document as it is handed to persistence.
type Pathway struct {
	Name     string
	Active   bool
	Document *graph.Document
}

// File is the serialized form of a Pathway. The graph record is inlined so a
// bare {nodes, edges} document is also a valid file.
type File struct {
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Active       bool   `json:"active,omitempty" yaml:"active,omitempty"`
	graph.Record `yaml:",inline"`
}

// NewFile builds the serialized form of p.
func NewFile(p Pathway) (File, error) {
	if p.Document == nil {
		return File{}, fmt.Errorf("document is nil")
	}
	return File{Name: p.Name, Active: p.Active, Record: p.Document.Record()}, nil
}

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a pathway to the target format
	Export(p Pathway) (string, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatYAML:
		return NewYAMLExporter(), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatDOT:
		return NewGraphvizExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "dot", "graphviz", "gv":
		return FormatDOT, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatJSON,
		FormatYAML,
		FormatMermaid,
		FormatDOT,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatJSON:    "Pathway file (native format)",
		FormatYAML:    "Pathway file in YAML",
		FormatMermaid: "Mermaid flowchart (for Markdown)",
		FormatDOT:     "Graphviz DOT syntax",
	}
}

// aliases assigns short stable identifiers in document order. Node ids are
// uuid based and contain hyphens, which neither Mermaid nor DOT accept bare.
func aliases(d *graph.Document, prefix string) map[string]string {
	out := make(map[string]string, d.NodeCount())
	for i, id := range d.NodeIDs() {
		out[id] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}
