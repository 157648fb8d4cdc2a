// Package layout provides algorithms for positioning pathway nodes in 2D space.
package layout

import "pathway/graph"

// Engine computes new node positions for a document.
type Engine interface {
	// Arrange returns a position for every node currently in the document.
	// The document is not modified.
	Arrange(doc *graph.Document) (map[string]graph.Position, error)

	// Name returns the name of this layout algorithm.
	Name() string
}

// Apply runs the engine and returns the rearranged document.
func Apply(e Engine, doc *graph.Document) (*graph.Document, error) {
	positions, err := e.Arrange(doc)
	if err != nil {
		return doc, err
	}
	return doc.ArrangedBy(positions), nil
}
