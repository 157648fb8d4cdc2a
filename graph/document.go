package graph

import "github.com/google/uuid"

// Document is an immutable pathway graph. Every operation returns a new
// Document and leaves the receiver untouched, so documents can be kept as
// history snapshots and read from any goroutine.
type Document struct {
	order []string // node ids in insertion order
	nodes map[string]Node
	edges []Edge
}

// New returns an empty document.
func New() *Document {
	return &Document{nodes: make(map[string]Node)}
}

// Starter returns the template a new pathway starts from: a single
// conversation node greeting the caller.
func Starter() *Document {
	d, _ := New().AddNode(Conversation{
		Label:       "Start",
		Description: "Greet the caller and ask how you can help.",
	}, Position{X: 250, Y: 100})
	return d
}

// clone makes a shallow copy that can be modified without touching d.
// Node and Edge are plain values so copying the containers is enough.
func (d *Document) clone() *Document {
	c := &Document{
		order: make([]string, len(d.order)),
		nodes: make(map[string]Node, len(d.nodes)),
		edges: make([]Edge, len(d.edges)),
	}
	copy(c.order, d.order)
	for id, n := range d.nodes {
		c.nodes[id] = n
	}
	copy(c.edges, d.edges)
	return c
}

func (d *Document) newID(prefix string) string {
	for {
		id := prefix + "-" + uuid.NewString()
		if _, taken := d.nodes[id]; taken {
			continue
		}
		if _, taken := d.Edge(id); taken {
			continue
		}
		return id
	}
}

// AddNode inserts a node of the given kind and returns the new document and
// the allocated id. A nil kind is stored as an empty note.
func (d *Document) AddNode(kind NodeKind, pos Position) (*Document, string) {
	if kind == nil {
		kind = Note{}
	}
	id := d.newID("node")
	c := d.clone()
	c.order = append(c.order, id)
	c.nodes[id] = Node{ID: id, Kind: kind, Position: pos}
	return c, id
}

// AddEdge appends an edge from source to target. Parallel edges and
// self-loops are allowed.
func (d *Document) AddEdge(source, target string, animated bool) (*Document, string, error) {
	if !d.HasNode(source) {
		return d, "", unknownNode(source)
	}
	if !d.HasNode(target) {
		return d, "", unknownNode(target)
	}
	id := d.newID("edge")
	c := d.clone()
	c.edges = append(c.edges, Edge{ID: id, Source: source, Target: target, Animated: animated})
	return c, id, nil
}

// UpdateNode applies patch to the node with the given id.
func (d *Document) UpdateNode(id string, patch NodePatch) (*Document, error) {
	n, ok := d.nodes[id]
	if !ok {
		return d, unknownNode(id)
	}
	if patch.Kind != nil && *patch.Kind != n.Kind.Tag() {
		return d, immutableKind(id)
	}

	switch k := n.Kind.(type) {
	case Conversation:
		if patch.Label != nil {
			k.Label = *patch.Label
		}
		if patch.Description != nil {
			k.Description = *patch.Description
		}
		n.Kind = k
	case Note:
		// notes carry no description
		if patch.Label != nil {
			k.Label = *patch.Label
		}
		n.Kind = k
	}
	if patch.Position != nil {
		n.Position = *patch.Position
	}

	c := d.clone()
	c.nodes[id] = n
	return c, nil
}

// RemoveNode removes the node and every edge touching it. Unknown ids are a no-op.
func (d *Document) RemoveNode(id string) *Document {
	if !d.HasNode(id) {
		return d
	}
	c := &Document{
		order: make([]string, 0, len(d.order)-1),
		nodes: make(map[string]Node, len(d.nodes)-1),
		edges: make([]Edge, 0, len(d.edges)),
	}
	for _, nid := range d.order {
		if nid == id {
			continue
		}
		c.order = append(c.order, nid)
		c.nodes[nid] = d.nodes[nid]
	}
	for _, e := range d.edges {
		if e.Source == id || e.Target == id {
			continue
		}
		c.edges = append(c.edges, e)
	}
	return c
}

// RemoveEdge removes the edge if present.
func (d *Document) RemoveEdge(id string) *Document {
	idx := -1
	for i, e := range d.edges {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return d
	}
	c := d.clone()
	c.edges = append(c.edges[:idx], c.edges[idx+1:]...)
	return c
}

// ArrangedBy replaces the positions of the nodes named in positions.
// Ids that are not in the document are ignored.
func (d *Document) ArrangedBy(positions map[string]Position) *Document {
	c := d.clone()
	for id, p := range positions {
		n, ok := c.nodes[id]
		if !ok {
			continue
		}
		n.Position = p
		c.nodes[id] = n
	}
	return c
}

// Nodes returns the nodes in insertion order.
func (d *Document) Nodes() []Node {
	out := make([]Node, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.nodes[id])
	}
	return out
}

// NodeIDs returns node ids in insertion order.
func (d *Document) NodeIDs() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Node looks up a node by id.
func (d *Document) Node(id string) (Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// HasNode reports whether id names a node in the document.
func (d *Document) HasNode(id string) bool {
	_, ok := d.nodes[id]
	return ok
}

// Edges returns the edges in the order they were added.
func (d *Document) Edges() []Edge {
	out := make([]Edge, len(d.edges))
	copy(out, d.edges)
	return out
}

// Edge looks up an edge by id.
func (d *Document) Edge(id string) (Edge, bool) {
	for _, e := range d.edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// EdgesOf returns every edge with id as source or target.
func (d *Document) EdgesOf(id string) []Edge {
	var out []Edge
	for _, e := range d.edges {
		if e.Source == id || e.Target == id {
			out = append(out, e)
		}
	}
	return out
}

// NodeCount returns the number of nodes.
func (d *Document) NodeCount() int {
	return len(d.order)
}

// EdgeCount returns the number of edges.
func (d *Document) EdgeCount() int {
	return len(d.edges)
}

// Equal reports structural equality, including node insertion order and edge order.
func (d *Document) Equal(o *Document) bool {
	if d == o {
		return true
	}
	if d == nil || o == nil {
		return false
	}
	if len(d.order) != len(o.order) || len(d.edges) != len(o.edges) {
		return false
	}
	for i, id := range d.order {
		if o.order[i] != id {
			return false
		}
		if d.nodes[id] != o.nodes[id] {
			return false
		}
	}
	for i, e := range d.edges {
		if o.edges[i] != e {
			return false
		}
	}
	return true
}
