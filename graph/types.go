// Package graph contains the conversation pathway document model: nodes,
// edges and the immutable operations that produce new documents from old ones.
package graph

// Position is a canvas coordinate. It is advisory to rendering only.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// KindTag names the variant of a NodeKind.
type KindTag string

// Node kind tags
const (
	KindConversation KindTag = "conversation"
	KindNote         KindTag = "note"
)

// Valid reports whether the tag names a known node variant.
func (t KindTag) Valid() bool {
	return t == KindConversation || t == KindNote
}

// NodeKind is the closed set of node variants. Only Conversation and Note
// implement it.
type NodeKind interface {
	Tag() KindTag
	// Title returns the label shown for the node.
	Title() string
	isNodeKind()
}

// Conversation is a conversation step spoken or handled by the agent.
type Conversation struct {
	Label       string
	Description string
}

// Tag returns KindConversation.
func (Conversation) Tag() KindTag { return KindConversation }

// Title returns the label.
func (c Conversation) Title() string { return c.Label }

func (Conversation) isNodeKind() {}

// Note is a free-text annotation placed on the canvas.
type Note struct {
	Label string
}

// Tag returns KindNote.
func (Note) Tag() KindTag { return KindNote }

// Title returns the label.
func (n Note) Title() string { return n.Label }

func (Note) isNodeKind() {}

// Node is a vertex of the pathway graph.
type Node struct {
	ID       string
	Kind     NodeKind
	Position Position
}

// Label returns the node's label regardless of variant.
func (n Node) Label() string {
	if n.Kind == nil {
		return ""
	}
	return n.Kind.Title()
}

// Description returns the description of a conversation node, or "" for notes.
func (n Node) Description() string {
	if c, ok := n.Kind.(Conversation); ok {
		return c.Description
	}
	return ""
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID       string
	Source   string
	Target   string
	Animated bool
}

// IsSelfLoop returns true if the edge starts and ends at the same node.
func (e Edge) IsSelfLoop() bool {
	return e.Source == e.Target
}

// NodePatch is a partial update applied by UpdateNode. Nil fields are left
// unchanged. Kind may only restate the node's current variant.
type NodePatch struct {
	Kind        *KindTag
	Label       *string
	Description *string
	Position    *Position
}

// PatchLabel returns a patch that only sets the label.
func PatchLabel(label string) NodePatch {
	return NodePatch{Label: &label}
}

// PatchPosition returns a patch that only moves the node.
func PatchPosition(p Position) NodePatch {
	return NodePatch{Position: &p}
}
