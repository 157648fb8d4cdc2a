package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathway/export"
	"pathway/graph"
)

func TestMermaidImporter_CanImport(t *testing.T) {
	m := NewMermaidImporter()
	tests := []struct {
		content  string
		expected bool
	}{
		{"flowchart TD\n  a --> b", true},
		{"graph LR\n  a --> b", true},
		{"---\ntitle: x\n---\nflowchart TD\n", true},
		{"sequenceDiagram\n  A->>B: hi", false},
		{`{"nodes":[]}`, false},
		{"digraph G {\n  a -> b;\n}", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, m.CanImport(tt.content), "CanImport(%q)", tt.content)
	}
}

func TestMermaidImporter_Shapes(t *testing.T) {
	content := `flowchart LR
    %% comment
    start("Greet") --> ask[Ask name]
    ask -.-> tip>"be polite"]
    ask --> done{Done}
    style start fill:#f9f
`
	p, err := NewMermaidImporter().Import(content)
	require.NoError(t, err)
	d := p.Document

	nodes := d.Nodes()
	require.Len(t, nodes, 4)
	wantLabels := []string{"Greet", "Ask name", "be polite", "Done"}
	wantKinds := []graph.KindTag{graph.KindConversation, graph.KindConversation, graph.KindNote, graph.KindConversation}
	for i, n := range nodes {
		assert.Equal(t, wantLabels[i], n.Label(), "node %d", i)
		assert.Equal(t, wantKinds[i], n.Kind.Tag(), "node %d", i)
	}

	edges := d.Edges()
	require.Len(t, edges, 3)
	assert.True(t, edges[0].Animated)
	assert.False(t, edges[1].Animated, "dotted arrows are static")
	assert.True(t, edges[2].Animated)
	assert.Equal(t, nodes[2].ID, edges[1].Target, "dotted edge should target the note")
}

func TestMermaidImporter_Chain(t *testing.T) {
	p, err := NewMermaidImporter().Import("graph TD\n    A --> B --> C\n")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Document.NodeCount())
	assert.Equal(t, 2, p.Document.EdgeCount())

	var labels []string
	for _, n := range p.Document.Nodes() {
		labels = append(labels, n.Label())
	}
	assert.Equal(t, []string{"A", "B", "C"}, labels, "undeclared nodes are labelled by their id")
}

func TestMermaidImporter_DefinitionAfterUse(t *testing.T) {
	content := `flowchart TD
    A --> B
    B --> C
    B[Collect info]
    C>"check the account"]
`
	p, err := NewMermaidImporter().Import(content)
	require.NoError(t, err)

	nodes := p.Document.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "A", nodes[0].Label())
	assert.Equal(t, "Collect info", nodes[1].Label())
	assert.Equal(t, graph.KindConversation, nodes[1].Kind.Tag())
	assert.Equal(t, "check the account", nodes[2].Label())
	assert.Equal(t, graph.KindNote, nodes[2].Kind.Tag())

	edges := p.Document.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, nodes[1].ID, edges[1].Source)
	assert.Equal(t, nodes[2].ID, edges[1].Target)
}

func TestMermaidImporter_LaterDefinitionWins(t *testing.T) {
	p, err := NewMermaidImporter().Import("flowchart TD\n    a[First] --> b\n    a>Second]\n")
	require.NoError(t, err)

	n := p.Document.Nodes()[0]
	assert.Equal(t, "Second", n.Label())
	assert.Equal(t, graph.KindNote, n.Kind.Tag())
}

func TestMermaidImporter_ArrangesOnGrid(t *testing.T) {
	p, err := NewMermaidImporter().Import("flowchart TD\n    a --> b\n")
	require.NoError(t, err)

	nodes := p.Document.Nodes()
	assert.Equal(t, graph.Position{X: 100, Y: 100}, nodes[0].Position, "first node at grid origin")
	assert.Equal(t, graph.Position{X: 350, Y: 100}, nodes[1].Position, "second node in next column")
}

func TestMermaidImporter_RoundTripsExport(t *testing.T) {
	d := graph.New()
	d, a := d.AddNode(graph.Conversation{Label: `Say "hi"`}, graph.Position{})
	d, b := d.AddNode(graph.Note{Label: "aside"}, graph.Position{})
	d, _, err := d.AddEdge(a, b, false)
	require.NoError(t, err)

	content, err := export.NewMermaidExporter().Export(export.Pathway{Name: "Support", Document: d})
	require.NoError(t, err)

	p, err := NewMermaidImporter().Import(content)
	require.NoError(t, err)
	assert.Equal(t, "Support", p.Name)

	got := p.Document.Nodes()
	require.Len(t, got, 2)
	assert.Equal(t, `Say "hi"`, got[0].Label())
	assert.Equal(t, graph.KindNote, got[1].Kind.Tag())

	edges := p.Document.Edges()
	require.Len(t, edges, 1)
	assert.False(t, edges[0].Animated)
}

func TestMermaidImporter_RequiresHeader(t *testing.T) {
	_, err := NewMermaidImporter().Import("a --> b")
	assert.Error(t, err, "content without a flowchart declaration")
}
