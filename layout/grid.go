package layout

import (
	"fmt"

	"pathway/graph"
)

// Default grid parameters used by "tidy up".
const (
	DefaultColumns    = 3
	DefaultCellWidth  = 250
	DefaultCellHeight = 150
	DefaultOriginX    = 100
	DefaultOriginY    = 100
)

// Grid places nodes row by row into a fixed number of columns, in the
// document's insertion order. The same node set always produces the same
// positions.
type Grid struct {
	Columns    int
	CellWidth  float64
	CellHeight float64
	OriginX    float64
	OriginY    float64
}

// NewGrid creates a Grid with default settings.
func NewGrid() *Grid {
	return &Grid{
		Columns:    DefaultColumns,
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
		OriginX:    DefaultOriginX,
		OriginY:    DefaultOriginY,
	}
}

// Arrange positions the i-th node at column i mod Columns, row i / Columns.
func (g *Grid) Arrange(doc *graph.Document) (map[string]graph.Position, error) {
	if g.Columns < 1 {
		return nil, fmt.Errorf("grid layout needs at least one column, got %d", g.Columns)
	}

	ids := doc.NodeIDs()
	positions := make(map[string]graph.Position, len(ids))
	for i, id := range ids {
		col := i % g.Columns
		row := i / g.Columns
		positions[id] = graph.Position{
			X: g.OriginX + float64(col)*g.CellWidth,
			Y: g.OriginY + float64(row)*g.CellHeight,
		}
	}
	return positions, nil
}

// Name returns the name of this layout algorithm.
func (g *Grid) Name() string {
	return "GridLayout"
}
