package editor

import (
	"math"
	"math/rand/v2"

	"pathway/graph"
)

// Default placement region for new nodes.
const (
	DefaultPlacementX        = 100
	DefaultPlacementY        = 100
	DefaultPlacementWidth    = 400
	DefaultPlacementHeight   = 300
	DefaultPlacementAttempts = 8
)

// Placement picks positions for newly added nodes: a random point inside a
// bounded region, re-rolled a few times if it lands exactly on an existing node.
// Overlap is still possible once the region gets crowded.
type Placement struct {
	X, Y          float64
	Width, Height float64
	Attempts      int

	rng *rand.Rand
}

// NewPlacement creates a Placement over the default region. The same seed
// produces the same sequence of positions.
func NewPlacement(seed uint64) *Placement {
	return &Placement{
		X:        DefaultPlacementX,
		Y:        DefaultPlacementY,
		Width:    DefaultPlacementWidth,
		Height:   DefaultPlacementHeight,
		Attempts: DefaultPlacementAttempts,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next returns a position for a node about to be added to doc.
func (p *Placement) Next(doc *graph.Document) graph.Position {
	taken := make(map[graph.Position]bool, doc.NodeCount())
	for _, n := range doc.Nodes() {
		taken[n.Position] = true
	}

	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var pos graph.Position
	for i := 0; i < attempts; i++ {
		pos = graph.Position{
			X: math.Round(p.X + p.rng.Float64()*p.Width),
			Y: math.Round(p.Y + p.rng.Float64()*p.Height),
		}
		if !taken[pos] {
			break
		}
	}
	return pos
}
