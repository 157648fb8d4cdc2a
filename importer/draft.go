package importer

import (
	"fmt"

	"pathway/graph"
	"pathway/layout"
)

// draft collects the nodes and edges of a text diagram before any of them is
// committed to a document. Text formats may use a node in an edge before its
// shape is declared, and the last declaration wins.
type draft struct {
	order []string
	nodes map[string]*draftNode
	edges []draftEdge
}

type draftNode struct {
	kind     graph.NodeKind
	position graph.Position
	placed   bool
}

type draftEdge struct {
	from, to string
	animated bool
}

func newDraft() *draft {
	return &draft{nodes: make(map[string]*draftNode)}
}

// reference returns the node for alias, creating a conversation labelled by
// the alias if it has not been seen yet.
func (d *draft) reference(alias string) *draftNode {
	if n, ok := d.nodes[alias]; ok {
		return n
	}
	n := &draftNode{kind: graph.Conversation{Label: alias}}
	d.nodes[alias] = n
	d.order = append(d.order, alias)
	return n
}

// define sets the kind of alias, replacing any earlier definition.
func (d *draft) define(alias string, kind graph.NodeKind) *draftNode {
	n := d.reference(alias)
	n.kind = kind
	return n
}

func (d *draft) connect(from, to string, animated bool) {
	d.reference(from)
	d.reference(to)
	d.edges = append(d.edges, draftEdge{from: from, to: to, animated: animated})
}

// build commits the draft in declaration order. When any node lacks a
// position the whole document is arranged with engine.
func (d *draft) build(engine layout.Engine) (*graph.Document, error) {
	doc := graph.New()
	ids := make(map[string]string, len(d.order))
	placed := true
	for _, alias := range d.order {
		n := d.nodes[alias]
		placed = placed && n.placed
		doc, ids[alias] = doc.AddNode(n.kind, n.position)
	}

	for _, e := range d.edges {
		var err error
		doc, _, err = doc.AddEdge(ids[e.from], ids[e.to], e.animated)
		if err != nil {
			return nil, err
		}
	}

	if placed || engine == nil {
		return doc, nil
	}
	arranged, err := layout.Apply(engine, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to arrange imported nodes: %w", err)
	}
	return arranged, nil
}
