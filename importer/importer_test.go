package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathway/export"
	"pathway/graph"
)

func samplePathway(t *testing.T) export.Pathway {
	t.Helper()
	d := graph.New()
	d, a := d.AddNode(graph.Conversation{Label: "Greet", Description: "say hi"}, graph.Position{X: 100, Y: 100})
	d, b := d.AddNode(graph.Note{Label: "remember"}, graph.Position{X: 350, Y: 100})
	d, _, err := d.AddEdge(a, b, false)
	require.NoError(t, err)
	return export.Pathway{Name: "Sales", Active: true, Document: d}
}

func TestRegistry_RoundTripNativeFormats(t *testing.T) {
	p := samplePathway(t)
	r := NewImporterRegistry()

	for _, format := range []export.Format{export.FormatJSON, export.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			exp, err := export.NewExporter(format)
			require.NoError(t, err)
			content, err := exp.Export(p)
			require.NoError(t, err)

			imp, err := r.DetectFormat(content)
			require.NoError(t, err)
			assert.Equal(t, exp.GetFormatName(), imp.GetFormatName())

			got, err := r.Import(content)
			require.NoError(t, err)
			assert.Equal(t, p.Name, got.Name)
			assert.Equal(t, p.Active, got.Active)
			assert.True(t, p.Document.Equal(got.Document))
		})
	}
}

func TestRegistry_BareRecordIsAccepted(t *testing.T) {
	got, err := NewImporterRegistry().Import(`{"nodes":[{"id":"a","kind":"note","label":"x","position":{"x":1,"y":2}}],"edges":[]}`)
	require.NoError(t, err)
	assert.Empty(t, got.Name)
	assert.Equal(t, 1, got.Document.NodeCount())
}

func TestRegistry_RejectsInvalidDocuments(t *testing.T) {
	r := NewImporterRegistry()

	_, err := r.Import(`{"nodes":[{"id":"a","kind":"note"}],"edges":[{"id":"e","source":"a","target":"ghost"}]}`)
	assert.ErrorIs(t, err, graph.ErrInvalidDocument)

	_, err = r.Import("nodes:\n  - id: a\n    kind: transfer\n")
	assert.ErrorIs(t, err, graph.ErrInvalidDocument)

	_, err = r.Import(`{"nodes": [`)
	assert.Error(t, err)
}

func TestRegistry_UnknownFormat(t *testing.T) {
	r := NewImporterRegistry()

	_, err := r.Import("just some prose")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = r.ImportWithFormat("{}", "plantuml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRegistry_ImportWithFormat(t *testing.T) {
	got, err := NewImporterRegistry().ImportWithFormat("flowchart TD\n    a --> b\n", "mermaid")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Document.NodeCount())
	assert.Equal(t, []string{"JSON", "Graphviz", "Mermaid", "YAML"}, NewImporterRegistry().GetAvailableFormats())
}

func TestRegistry_ImportFileUsesExtension(t *testing.T) {
	p := samplePathway(t)
	content, err := export.NewYAMLExporter().Export(p)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sales.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := NewImporterRegistry().ImportFile(path)
	require.NoError(t, err)
	assert.True(t, p.Document.Equal(got.Document))

	_, err = NewImporterRegistry().ImportFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRegistry_DecodeFileKeepsBrokenRecords(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"name":"Bad","nodes":[{"id":"a","kind":"transfer"}],"edges":[{"id":"e","source":"a","target":"ghost"}]}`), 0o644))

	r := NewImporterRegistry()
	_, err := r.ImportFile(broken)
	assert.ErrorIs(t, err, graph.ErrInvalidDocument)

	f, err := r.DecodeFile(broken)
	require.NoError(t, err)
	assert.Equal(t, "Bad", f.Name)
	require.Len(t, f.Nodes, 1)
	assert.Equal(t, graph.KindTag("transfer"), f.Nodes[0].Kind)
	require.Len(t, f.Edges, 1)
	assert.Equal(t, "ghost", f.Edges[0].Target)
}

func TestRegistry_DecodeFileConvertsOtherFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.mmd")
	require.NoError(t, os.WriteFile(path, []byte("flowchart TD\n    a --> b\n"), 0o644))

	f, err := NewImporterRegistry().DecodeFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Nodes, 2)
	assert.Len(t, f.Edges, 1)

	_, err = NewImporterRegistry().DecodeFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
