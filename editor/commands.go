package editor

import (
	"encoding/json"
	"errors"
	"fmt"

	"pathway/graph"
)

// CommandName identifies a user intent.
type CommandName string

// Command names
const (
	CmdAddConversationNode CommandName = "add-conversation-node"
	CmdAddNoteNode         CommandName = "add-note-node"
	CmdConnect             CommandName = "connect"
	CmdUndo                CommandName = "undo"
	CmdRedo                CommandName = "redo"
	CmdTidyUp              CommandName = "tidy-up"
	CmdZoomToFit           CommandName = "zoom-to-fit"
	CmdZoomIn              CommandName = "zoom-in"
	CmdZoomOut             CommandName = "zoom-out"
	CmdUpdateNode          CommandName = "update-node"
	CmdMoveNode            CommandName = "move-node"
	CmdRemoveNode          CommandName = "remove-node"
	CmdRemoveEdge          CommandName = "remove-edge"
	CmdSave                CommandName = "save"
	CmdRename              CommandName = "rename"
	CmdSetActive           CommandName = "set-active"
)

// Labels given to nodes created without one.
const (
	DefaultConversationLabel = "New Conversation"
	DefaultNoteLabel         = "New Note"
)

// ErrUnknownCommand is returned for command names or types the dispatcher does not handle.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a discrete user intent handled by the Dispatcher.
type Command interface {
	Name() CommandName
}

// AddConversationNode adds a conversation step at a jittered position.
type AddConversationNode struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// AddNoteNode adds a note at a jittered position.
type AddNoteNode struct {
	Label string `json:"label"`
}

// Connect adds an animated edge from Source to Target.
type Connect struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// UpdateNode edits a node's label, description or position.
type UpdateNode struct {
	ID    string
	Patch graph.NodePatch
}

// MoveNode sets a node's position, typically at the end of a drag.
type MoveNode struct {
	ID       string         `json:"id"`
	Position graph.Position `json:"position"`
}

// RemoveNode deletes a node and its edges.
type RemoveNode struct {
	ID string `json:"id"`
}

// RemoveEdge deletes an edge.
type RemoveEdge struct {
	ID string `json:"id"`
}

// Rename changes the pathway name.
type Rename struct {
	NewName string `json:"name"`
}

// SetActive enables or disables the pathway.
type SetActive struct {
	Active bool `json:"active"`
}

type (
	// Undo steps back through history.
	Undo struct{}
	// Redo steps forward through history.
	Redo struct{}
	// TidyUp re-arranges every node with the layout engine.
	TidyUp struct{}
	// ZoomToFit asks the viewport to frame the whole graph.
	ZoomToFit struct{}
	// ZoomIn asks the viewport to zoom in.
	ZoomIn struct{}
	// ZoomOut asks the viewport to zoom out.
	ZoomOut struct{}
	// Save marks the current document as saved.
	Save struct{}
)

func (AddConversationNode) Name() CommandName { return CmdAddConversationNode }
func (AddNoteNode) Name() CommandName         { return CmdAddNoteNode }
func (Connect) Name() CommandName             { return CmdConnect }
func (Undo) Name() CommandName                { return CmdUndo }
func (Redo) Name() CommandName                { return CmdRedo }
func (TidyUp) Name() CommandName              { return CmdTidyUp }
func (ZoomToFit) Name() CommandName           { return CmdZoomToFit }
func (ZoomIn) Name() CommandName              { return CmdZoomIn }
func (ZoomOut) Name() CommandName             { return CmdZoomOut }
func (UpdateNode) Name() CommandName          { return CmdUpdateNode }
func (MoveNode) Name() CommandName            { return CmdMoveNode }
func (RemoveNode) Name() CommandName          { return CmdRemoveNode }
func (RemoveEdge) Name() CommandName          { return CmdRemoveEdge }
func (Save) Name() CommandName                { return CmdSave }
func (Rename) Name() CommandName              { return CmdRename }
func (SetActive) Name() CommandName           { return CmdSetActive }

// DefaultCommand returns the argument-free form of a command, as issued by a
// keyboard shortcut or toolbar button. Commands that need arguments return false.
func DefaultCommand(name CommandName) (Command, bool) {
	switch name {
	case CmdAddConversationNode:
		return AddConversationNode{Label: DefaultConversationLabel}, true
	case CmdAddNoteNode:
		return AddNoteNode{Label: DefaultNoteLabel}, true
	case CmdUndo:
		return Undo{}, true
	case CmdRedo:
		return Redo{}, true
	case CmdTidyUp:
		return TidyUp{}, true
	case CmdZoomToFit:
		return ZoomToFit{}, true
	case CmdZoomIn:
		return ZoomIn{}, true
	case CmdZoomOut:
		return ZoomOut{}, true
	case CmdSave:
		return Save{}, true
	}
	return nil, false
}

// updateNodeArgs is the wire form of UpdateNode.
type updateNodeArgs struct {
	ID          string          `json:"id"`
	Kind        *graph.KindTag  `json:"kind"`
	Label       *string         `json:"label"`
	Description *string         `json:"description"`
	Position    *graph.Position `json:"position"`
}

// DecodeCommand builds a command from its name and JSON arguments. Empty
// args are allowed for commands without arguments.
func DecodeCommand(name CommandName, args json.RawMessage) (Command, error) {
	switch name {
	case CmdAddConversationNode:
		return decodeArgs[AddConversationNode](name, args)
	case CmdAddNoteNode:
		return decodeArgs[AddNoteNode](name, args)
	case CmdConnect:
		return decodeArgs[Connect](name, args)
	case CmdMoveNode:
		return decodeArgs[MoveNode](name, args)
	case CmdRemoveNode:
		return decodeArgs[RemoveNode](name, args)
	case CmdRemoveEdge:
		return decodeArgs[RemoveEdge](name, args)
	case CmdRename:
		return decodeArgs[Rename](name, args)
	case CmdSetActive:
		return decodeArgs[SetActive](name, args)
	case CmdUpdateNode:
		var a updateNodeArgs
		if err := unmarshalArgs(name, args, &a); err != nil {
			return nil, err
		}
		return UpdateNode{ID: a.ID, Patch: graph.NodePatch{
			Kind:        a.Kind,
			Label:       a.Label,
			Description: a.Description,
			Position:    a.Position,
		}}, nil
	}

	if cmd, ok := DefaultCommand(name); ok {
		return cmd, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

func decodeArgs[C Command](name CommandName, args json.RawMessage) (Command, error) {
	var c C
	if err := unmarshalArgs(name, args, &c); err != nil {
		return nil, err
	}
	return c, nil
}

func unmarshalArgs(name CommandName, args json.RawMessage, v any) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("decoding %s arguments: %w", name, err)
	}
	return nil
}
