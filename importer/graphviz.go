package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"pathway/export"
	"pathway/graph"
	"pathway/layout"
)

// GraphvizImporter imports Graphviz digraphs. A pos attribute restores the
// node position (DOT's y axis points up, so it is negated), shape=note makes a
// note, tooltip becomes a conversation's description and style=dashed marks a
// static edge. Without positions on every node the graph is arranged with
// Layout.
type GraphvizImporter struct {
	Layout layout.Engine
}

// NewGraphvizImporter creates a new Graphviz importer
func NewGraphvizImporter() *GraphvizImporter {
	return &GraphvizImporter{Layout: layout.NewGrid()}
}

const dotString = `"(?:[^"\\]|\\.)*"`

var (
	digraphPattern = regexp.MustCompile(`^(?:strict\s+)?digraph\s*(` + dotString + `|[A-Za-z0-9_]+)?\s*\{?$`)

	// Pattern: A -> B [attr1=val1, attr2="val2"];
	dotEdgePattern = regexp.MustCompile(`^(` + dotString + `|[^\s\[;"]+)\s*->\s*(` + dotString + `|[^\s\[;"]+)\s*(?:\[(.*)\])?\s*;?$`)

	// Pattern: A [attr1=val1, attr2="val2"];
	dotNodePattern = regexp.MustCompile(`^(` + dotString + `|[^\s\[;"]+)\s*\[(.*)\]\s*;?$`)

	dotAttrPattern = regexp.MustCompile(`(\w+)\s*=\s*(` + dotString + `|[^,\s\]]+)`)

	// graph-wide statements such as rankdir=TB;
	dotGraphAttrPattern = regexp.MustCompile(`^\w+\s*=`)
)

// CanImport checks if the content is a Graphviz digraph
func (g *GraphvizImporter) CanImport(content string) bool {
	content = strings.TrimSpace(content)
	return strings.HasPrefix(content, "digraph") || strings.HasPrefix(content, "strict digraph")
}

// Import converts a Graphviz digraph to a pathway
func (g *GraphvizImporter) Import(content string) (export.Pathway, error) {
	var p export.Pathway
	nodes := newDraft()

	seenHeader := false
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}

		if !seenHeader {
			match := digraphPattern.FindStringSubmatch(line)
			if match == nil {
				return export.Pathway{}, fmt.Errorf("line %d: expected digraph declaration", i+1)
			}
			p.Name = unquoteDOT(match[1])
			seenHeader = true
			continue
		}

		if line == "{" || line == "}" || dotGraphAttrPattern.MatchString(line) {
			continue
		}
		if strings.HasPrefix(line, "node ") || strings.HasPrefix(line, "edge ") || strings.HasPrefix(line, "graph ") {
			continue
		}

		if match := dotEdgePattern.FindStringSubmatch(line); match != nil {
			attrs := parseDOTAttributes(match[3])
			nodes.connect(unquoteDOT(match[1]), unquoteDOT(match[2]), !strings.Contains(attrs["style"], "dashed"))
			continue
		}

		if match := dotNodePattern.FindStringSubmatch(line); match != nil {
			alias := unquoteDOT(match[1])
			attrs := parseDOTAttributes(match[2])

			label, ok := attrs["label"]
			if !ok {
				label = alias
			}
			var n *draftNode
			if attrs["shape"] == "note" {
				n = nodes.define(alias, graph.Note{Label: label})
			} else {
				n = nodes.define(alias, graph.Conversation{Label: label, Description: attrs["tooltip"]})
			}
			if pos, ok := attrs["pos"]; ok {
				position, err := parsePos(pos)
				if err != nil {
					return export.Pathway{}, fmt.Errorf("line %d: %w", i+1, err)
				}
				n.position, n.placed = position, true
			}
		}
	}

	if !seenHeader {
		return export.Pathway{}, fmt.Errorf("no digraph found")
	}

	doc, err := nodes.build(g.Layout)
	if err != nil {
		return export.Pathway{}, err
	}
	p.Document = doc
	return p, nil
}

// parseDOTAttributes parses a DOT attribute list into a map of unquoted values
func parseDOTAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)
	for _, match := range dotAttrPattern.FindAllStringSubmatch(attrStr, -1) {
		attrs[match[1]] = unquoteDOT(match[2])
	}
	return attrs
}

// parsePos reads a "x,y" or pinned "x,y!" position.
func parsePos(pos string) (graph.Position, error) {
	x, y, ok := strings.Cut(strings.TrimSuffix(pos, "!"), ",")
	if !ok {
		return graph.Position{}, fmt.Errorf("invalid pos %q", pos)
	}
	fx, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
	if err != nil {
		return graph.Position{}, fmt.Errorf("invalid pos %q: %w", pos, err)
	}
	fy, err := strconv.ParseFloat(strings.TrimSpace(y), 64)
	if err != nil {
		return graph.Position{}, fmt.Errorf("invalid pos %q: %w", pos, err)
	}
	return graph.Position{X: fx, Y: -fy}, nil
}

// unquoteDOT strips the quotes of a DOT string and undoes its escapes.
func unquoteDOT(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// GetFormatName returns the format name
func (g *GraphvizImporter) GetFormatName() string {
	return "Graphviz"
}

// GetFileExtensions returns common file extensions
func (g *GraphvizImporter) GetFileExtensions() []string {
	return []string{".dot", ".gv"}
}
