package layout

import (
	"fmt"

	"pathway/graph"
)

// Layer directions.
const (
	DirectionTopDown   = "TB"
	DirectionLeftRight = "LR"
)

// Layered arranges nodes in layers by their distance from root nodes, so a
// conversation flows from its entry point outward. Edges that close a cycle
// are ignored when ranking. Within a layer nodes keep insertion order.
type Layered struct {
	Direction    string
	LayerSpacing float64 // distance between layers
	NodeSpacing  float64 // distance between nodes within a layer
	OriginX      float64
	OriginY      float64
}

// NewLayered creates a top-down layered layout with default spacing.
func NewLayered() *Layered {
	return &Layered{
		Direction:    DirectionTopDown,
		LayerSpacing: DefaultCellHeight,
		NodeSpacing:  DefaultCellWidth,
		OriginX:      DefaultOriginX,
		OriginY:      DefaultOriginY,
	}
}

// Name returns the name of this layout algorithm.
func (l *Layered) Name() string {
	return "LayeredLayout"
}

// Arrange positions every node of doc by layer.
func (l *Layered) Arrange(doc *graph.Document) (map[string]graph.Position, error) {
	if l.Direction != DirectionTopDown && l.Direction != DirectionLeftRight {
		return nil, fmt.Errorf("unknown layer direction %q", l.Direction)
	}

	ids := doc.NodeIDs()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	// Build adjacency lists, skipping self-loops
	outgoing := make(map[string][]string)
	for _, e := range doc.Edges() {
		if e.IsSelfLoop() {
			continue
		}
		outgoing[e.Source] = append(outgoing[e.Source], e.Target)
	}

	layers := assignLayers(ids, index, removeBackEdges(ids, outgoing))

	positions := make(map[string]graph.Position, len(ids))
	for depth, layer := range layers {
		for i, id := range layer {
			along := float64(depth) * l.LayerSpacing
			across := float64(i) * l.NodeSpacing
			if l.Direction == DirectionTopDown {
				positions[id] = graph.Position{X: l.OriginX + across, Y: l.OriginY + along}
			} else {
				positions[id] = graph.Position{X: l.OriginX + along, Y: l.OriginY + across}
			}
		}
	}
	return positions, nil
}

// removeBackEdges drops the edges that close a cycle, found by depth-first
// search in insertion order, leaving a DAG.
func removeBackEdges(ids []string, outgoing map[string][]string) map[string][]string {
	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[string]int, len(ids))
	dag := make(map[string][]string, len(outgoing))

	var dfs func(id string)
	dfs = func(id string) {
		state[id] = visiting
		for _, next := range outgoing[id] {
			switch state[next] {
			case visiting:
				// back-edge
			case unvisited:
				dag[id] = append(dag[id], next)
				dfs(next)
			default:
				dag[id] = append(dag[id], next)
			}
		}
		state[id] = visited
	}

	for _, id := range ids {
		if state[id] == unvisited {
			dfs(id)
		}
	}
	return dag
}

// assignLayers ranks a DAG with Kahn's algorithm: roots form layer 0 and each
// node lands one layer after its last predecessor.
func assignLayers(ids []string, index map[string]int, outgoing map[string][]string) [][]string {
	inDegree := make(map[string]int, len(ids))
	for _, targets := range outgoing {
		for _, t := range targets {
			inDegree[t]++
		}
	}

	queue := make([]string, 0)
	for _, id := range ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	var layers [][]string
	for len(queue) > 0 {
		layers = append(layers, queue)

		next := make([]string, 0)
		for _, id := range queue {
			for _, succ := range outgoing[id] {
				inDegree[succ]--
				if inDegree[succ] == 0 {
					next = append(next, succ)
				}
			}
		}
		sortByIndex(next, index)
		queue = next
	}
	return layers
}

// sortByIndex orders ids by document insertion order.
func sortByIndex(ids []string, index map[string]int) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && index[ids[j]] < index[ids[j-1]]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}
