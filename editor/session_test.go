package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pathway/graph"
)

func TestSession(t *testing.T) {
	doc := graph.Starter()
	s := NewSession("Billing line", doc)

	assert.False(t, s.IsDirty(), "new session should be clean")
	assert.Same(t, doc, s.SavedDocument(), "initial document counts as saved")

	s.MarkDirty()
	assert.True(t, s.IsDirty())

	next, _ := doc.AddNode(graph.Note{Label: "x"}, graph.Position{})
	s.MarkSaved(next)
	assert.False(t, s.IsDirty())
	assert.Same(t, next, s.SavedDocument())

	s.SetName("Billing")
	s.SetActive(true)
	assert.Equal(t, "Billing", s.Name())
	assert.True(t, s.IsActive())
	assert.False(t, s.IsDirty(), "metadata changes do not dirty the session")
}
