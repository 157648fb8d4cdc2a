package export_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathway/export"
	"pathway/graph"
)

func TestFileSaver_PicksExporterByExtension(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"p.json":  "JSON",
		"p.yaml":  "YAML",
		"p.mmd":   "Mermaid",
		"p.dot":   "Graphviz",
		"p.saved": "JSON",
	}
	for file, want := range tests {
		s := export.NewFileSaver(filepath.Join(dir, file))
		assert.Equal(t, want, s.Exporter.GetFormatName(), file)
	}
}

func TestFileSaver_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "support.yaml")
	s := export.NewFileSaver(path)

	doc, _ := graph.New().AddNode(graph.Conversation{Label: "Greet"}, graph.Position{X: 1, Y: 2})
	require.NoError(t, s.Save("Support", true, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Support")
	assert.Contains(t, string(data), "label: Greet")

	// Saving again replaces the content.
	require.NoError(t, s.Save("Renamed", false, graph.New()))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Renamed")
	assert.NotContains(t, string(data), "Greet")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should be cleaned up")
}

func TestFileSaver_MissingDirectory(t *testing.T) {
	s := export.NewFileSaver(filepath.Join(t.TempDir(), "nope", "p.json"))
	assert.Error(t, s.Save("x", false, graph.New()))
}
