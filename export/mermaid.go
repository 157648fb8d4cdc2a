package export

import (
	"fmt"
	"strings"

	"pathway/graph"
)

// MermaidExporter exports pathways to a Mermaid flowchart
type MermaidExporter struct {
	// Direction is the flowchart direction (TD, LR, ...)
	Direction string
}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{Direction: "TD"}
}

// Export converts the pathway to Mermaid syntax.
// Conversations render as rounded boxes and notes as flags. Animated edges
// are solid arrows, static ones dotted.
func (e *MermaidExporter) Export(p Pathway) (string, error) {
	d := p.Document
	if d == nil {
		return "", fmt.Errorf("document is nil")
	}

	var sb strings.Builder
	if p.Name != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", p.Name))
		sb.WriteString("---\n")
	}
	sb.WriteString(fmt.Sprintf("flowchart %s\n", e.Direction))

	ids := aliases(d, "n")
	for _, n := range d.Nodes() {
		label := e.escapeLabel(n.Label())
		switch n.Kind.Tag() {
		case graph.KindNote:
			sb.WriteString(fmt.Sprintf("    %s>\"%s\"]\n", ids[n.ID], label))
		default:
			sb.WriteString(fmt.Sprintf("    %s(\"%s\")\n", ids[n.ID], label))
		}
	}

	if d.EdgeCount() > 0 {
		sb.WriteString("\n")
	}

	for _, edge := range d.Edges() {
		arrow := "-.->"
		if edge.Animated {
			arrow = "-->"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", ids[edge.Source], arrow, ids[edge.Target]))
	}

	return sb.String(), nil
}

// escapeLabel escapes special characters in labels for Mermaid
func (e *MermaidExporter) escapeLabel(label string) string {
	label = strings.ReplaceAll(label, "\"", "#quot;")
	label = strings.ReplaceAll(label, "\n", "<br/>")
	return label
}

// GetFileExtension returns the file extension for Mermaid files
func (e *MermaidExporter) GetFileExtension() string {
	return ".mmd"
}

// GetFormatName returns the human-readable name of this format
func (e *MermaidExporter) GetFormatName() string {
	return "Mermaid"
}
