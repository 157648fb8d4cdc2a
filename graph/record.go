package graph

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Record is the plain serializable form of a Document handed to persistence.
type Record struct {
	Nodes []NodeRecord `json:"nodes" yaml:"nodes" validate:"dive"`
	Edges []EdgeRecord `json:"edges" yaml:"edges" validate:"dive"`
}

// NodeRecord is the serialized form of a Node.
type NodeRecord struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Kind        KindTag  `json:"kind" yaml:"kind" validate:"required,oneof=conversation note"`
	Label       string   `json:"label" yaml:"label"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Position    Position `json:"position" yaml:"position"`
}

// EdgeRecord is the serialized form of an Edge.
type EdgeRecord struct {
	ID       string `json:"id" yaml:"id" validate:"required"`
	Source   string `json:"source" yaml:"source" validate:"required"`
	Target   string `json:"target" yaml:"target" validate:"required"`
	Animated bool   `json:"animated" yaml:"animated"`
}

var validate = validator.New()

// Record converts the document to its serializable form.
func (d *Document) Record() Record {
	r := Record{
		Nodes: make([]NodeRecord, 0, len(d.order)),
		Edges: make([]EdgeRecord, 0, len(d.edges)),
	}
	for _, n := range d.Nodes() {
		r.Nodes = append(r.Nodes, NodeRecord{
			ID:          n.ID,
			Kind:        n.Kind.Tag(),
			Label:       n.Label(),
			Description: n.Description(),
			Position:    n.Position,
		})
	}
	for _, e := range d.edges {
		r.Edges = append(r.Edges, EdgeRecord(e))
	}
	return r
}

// FromRecord rebuilds a Document from its serialized form. The record is
// rejected with ErrInvalidDocument if any id is missing or duplicated, a kind
// is unknown, or an edge references a node that is not in the record.
func FromRecord(r Record) (*Document, error) {
	if err := validate.Struct(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	d := New()
	for _, nr := range r.Nodes {
		if d.HasNode(nr.ID) {
			return nil, fmt.Errorf("%w: duplicate node id %q", ErrInvalidDocument, nr.ID)
		}
		var kind NodeKind
		switch nr.Kind {
		case KindConversation:
			kind = Conversation{Label: nr.Label, Description: nr.Description}
		case KindNote:
			kind = Note{Label: nr.Label}
		default:
			return nil, fmt.Errorf("%w: node %q has unknown kind %q", ErrInvalidDocument, nr.ID, nr.Kind)
		}
		d.order = append(d.order, nr.ID)
		d.nodes[nr.ID] = Node{ID: nr.ID, Kind: kind, Position: nr.Position}
	}

	seen := make(map[string]bool, len(r.Edges))
	for i, er := range r.Edges {
		if seen[er.ID] {
			return nil, fmt.Errorf("%w: duplicate edge id %q", ErrInvalidDocument, er.ID)
		}
		seen[er.ID] = true
		if !d.HasNode(er.Source) {
			return nil, fmt.Errorf("%w: edge %d (%s) references missing source node %q", ErrInvalidDocument, i, er.ID, er.Source)
		}
		if !d.HasNode(er.Target) {
			return nil, fmt.Errorf("%w: edge %d (%s) references missing target node %q", ErrInvalidDocument, i, er.ID, er.Target)
		}
		d.edges = append(d.edges, Edge(er))
	}
	return d, nil
}
