package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathway/graph"
)

func TestGraphvizExporter_Basic(t *testing.T) {
	exporter := NewGraphvizExporter()

	d := graph.New()
	d, a := d.AddNode(graph.Conversation{Label: "Node A", Description: "first"}, graph.Position{X: 100, Y: 50})
	d, b := d.AddNode(graph.Note{Label: "Node B"}, graph.Position{X: 200, Y: 50})
	d, _, _ = d.AddEdge(a, b, true)
	d, _, _ = d.AddEdge(b, a, false)

	result, err := exporter.Export(Pathway{Name: "Support", Document: d})
	require.NoError(t, err)

	assert.Contains(t, result, `digraph "Support" {`)
	assert.Contains(t, result, `N0 [label="Node A", pos="100,-50!", tooltip="first"]`)
	assert.Contains(t, result, `N1 [label="Node B", pos="200,-50!", shape=note]`)
	assert.Contains(t, result, "N0 -> N1;", "animated edge")
	assert.Contains(t, result, "N1 -> N0 [style=dashed];", "static edge")
	assert.True(t, strings.HasSuffix(result, "}\n"), "missing closing brace")
}

func TestGraphvizExporter_DefaultName(t *testing.T) {
	result, err := NewGraphvizExporter().Export(Pathway{Document: graph.New()})
	require.NoError(t, err)
	assert.Regexp(t, `^digraph "G" \{`, result)
}

func TestGraphvizExporter_Quote(t *testing.T) {
	e := NewGraphvizExporter()
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{"two\nlines", `"two\nlines"`},
		{`back\slash`, `"back\\slash"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, e.quote(tt.input), "quote(%q)", tt.input)
	}
}
