package importer

import (
	"fmt"
	"regexp"
	"strings"

	"pathway/export"
	"pathway/graph"
	"pathway/layout"
)

// MermaidImporter imports Mermaid flowcharts. Flag shaped nodes (id>text])
// become notes and every other shape becomes a conversation. Dotted arrows
// are static edges; the rest are animated. Mermaid carries no coordinates,
// so imported nodes are arranged with the grid layout.
type MermaidImporter struct {
	Layout layout.Engine
}

// NewMermaidImporter creates a new Mermaid importer
func NewMermaidImporter() *MermaidImporter {
	return &MermaidImporter{Layout: layout.NewGrid()}
}

var (
	// Matches: ID[text], ID(text), ID{text}, ID{{text}}, ID[[text]], ID[(text)], ID([text]), ID((text)), ID>text]
	nodePattern = regexp.MustCompile(`([A-Za-z0-9_]+)(\(\(|\(\[|\[\[|\[\(|\{\{|\[|\(|\{|>)("[^"]*"|[^\]\)\}]*)(\)\)|\]\)|\]\]|\)\]|\}\}|\]|\)|\})`)

	// Applied after node shapes have been reduced to their ids
	connectionPattern = regexp.MustCompile(`([A-Za-z0-9_]+)\s*(-\.->|-->|==>)\s*(?:\|[^|]*\|)?\s*([A-Za-z0-9_]+)`)

	titlePattern = regexp.MustCompile(`^title:\s*(.*)$`)
)

// skipped statement prefixes that carry no nodes or edges
var mermaidDirectives = []string{"style ", "classDef ", "class ", "click ", "linkStyle ", "subgraph ", "direction "}

// CanImport checks if the content is a Mermaid flowchart
func (m *MermaidImporter) CanImport(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "flowchart ") || strings.HasPrefix(line, "graph ") {
			return true
		}
	}
	return false
}

// Import converts a Mermaid flowchart to a pathway
func (m *MermaidImporter) Import(content string) (export.Pathway, error) {
	var p export.Pathway
	nodes := newDraft()

	inFrontMatter := false
	seenHeader := false
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}

		if line == "---" && !seenHeader {
			inFrontMatter = !inFrontMatter
			continue
		}
		if inFrontMatter {
			if match := titlePattern.FindStringSubmatch(line); match != nil {
				p.Name = strings.TrimSpace(match[1])
			}
			continue
		}

		if strings.HasPrefix(line, "flowchart") || strings.HasPrefix(line, "graph") {
			seenHeader = true
			continue
		}
		if !seenHeader {
			return export.Pathway{}, fmt.Errorf("line %d: expected flowchart declaration", i+1)
		}
		if line == "end" || hasAnyPrefix(line, mermaidDirectives) {
			continue
		}

		// Edges first so endpoints are recorded in the order they appear
		rest := nodePattern.ReplaceAllString(line, "$1")
		for {
			loc := connectionPattern.FindStringSubmatchIndex(rest)
			if loc == nil {
				break
			}
			from, arrow, to := rest[loc[2]:loc[3]], rest[loc[4]:loc[5]], rest[loc[6]:loc[7]]
			nodes.connect(from, to, !strings.Contains(arrow, "."))
			// Continue from the target so chains like A --> B --> C are read whole
			rest = rest[loc[6]:]
		}

		for _, match := range nodePattern.FindAllStringSubmatch(line, -1) {
			label := unescapeMermaid(match[3])
			if match[2] == ">" {
				nodes.define(match[1], graph.Note{Label: label})
			} else {
				nodes.define(match[1], graph.Conversation{Label: label})
			}
		}
	}

	if !seenHeader {
		return export.Pathway{}, fmt.Errorf("unsupported Mermaid diagram type")
	}

	doc, err := nodes.build(m.Layout)
	if err != nil {
		return export.Pathway{}, err
	}
	p.Document = doc
	return p, nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func unescapeMermaid(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"`)
	text = strings.ReplaceAll(text, "#quot;", `"`)
	text = strings.ReplaceAll(text, "<br/>", "\n")
	return text
}

// GetFormatName returns the format name
func (m *MermaidImporter) GetFormatName() string {
	return "Mermaid"
}

// GetFileExtensions returns common file extensions
func (m *MermaidImporter) GetFileExtensions() []string {
	return []string{".mmd", ".mermaid"}
}
