package export

import (
	"fmt"
	"strings"

	"pathway/graph"
)

// GraphvizExporter exports pathways to Graphviz DOT syntax
type GraphvizExporter struct{}

// NewGraphvizExporter creates a new Graphviz exporter
func NewGraphvizExporter() *GraphvizExporter {
	return &GraphvizExporter{}
}

// Export converts the pathway to Graphviz DOT syntax. Node positions are
// emitted as pos attributes so neato -n reproduces the editor layout.
func (e *GraphvizExporter) Export(p Pathway) (string, error) {
	d := p.Document
	if d == nil {
		return "", fmt.Errorf("document is nil")
	}

	name := p.Name
	if name == "" {
		name = "G"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("digraph %s {\n", e.quote(name)))

	// Global attributes for better appearance
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, style=rounded];\n")
	sb.WriteString("  edge [arrowhead=normal];\n\n")

	ids := aliases(d, "N")
	for _, n := range d.Nodes() {
		attrs := []string{
			fmt.Sprintf("label=%s", e.quote(n.Label())),
			fmt.Sprintf("pos=\"%g,%g!\"", n.Position.X, -n.Position.Y),
		}
		if n.Kind.Tag() == graph.KindNote {
			attrs = append(attrs, "shape=note")
		}
		if desc := n.Description(); desc != "" {
			attrs = append(attrs, fmt.Sprintf("tooltip=%s", e.quote(desc)))
		}
		sb.WriteString(fmt.Sprintf("  %s [%s];\n", ids[n.ID], strings.Join(attrs, ", ")))
	}

	if d.EdgeCount() > 0 {
		sb.WriteString("\n")
	}

	for _, edge := range d.Edges() {
		if edge.Animated {
			sb.WriteString(fmt.Sprintf("  %s -> %s;\n", ids[edge.Source], ids[edge.Target]))
		} else {
			sb.WriteString(fmt.Sprintf("  %s -> %s [style=dashed];\n", ids[edge.Source], ids[edge.Target]))
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

// quote wraps s in double quotes, escaping for DOT strings
func (e *GraphvizExporter) quote(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return "\"" + s + "\""
}

// GetFileExtension returns the file extension for Graphviz files
func (e *GraphvizExporter) GetFileExtension() string {
	return ".dot"
}

// GetFormatName returns the human-readable name of this format
func (e *GraphvizExporter) GetFormatName() string {
	return "Graphviz"
}
