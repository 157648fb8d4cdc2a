package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathway/graph"
)

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name CommandName
		args string
		want Command
	}{
		{CmdAddConversationNode, `{"label":"Greet","description":"hello"}`, AddConversationNode{Label: "Greet", Description: "hello"}},
		{CmdAddNoteNode, ``, AddNoteNode{}},
		{CmdConnect, `{"source":"a","target":"b"}`, Connect{Source: "a", Target: "b"}},
		{CmdMoveNode, `{"id":"a","position":{"x":1,"y":2}}`, MoveNode{ID: "a", Position: graph.Position{X: 1, Y: 2}}},
		{CmdRemoveNode, `{"id":"a"}`, RemoveNode{ID: "a"}},
		{CmdRemoveEdge, `{"id":"e"}`, RemoveEdge{ID: "e"}},
		{CmdRename, `{"name":"Sales"}`, Rename{NewName: "Sales"}},
		{CmdSetActive, `{"active":true}`, SetActive{Active: true}},
		{CmdUndo, `null`, Undo{}},
		{CmdRedo, ``, Redo{}},
		{CmdTidyUp, ``, TidyUp{}},
		{CmdZoomIn, ``, ZoomIn{}},
		{CmdSave, `{}`, Save{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			cmd, err := DecodeCommand(tt.name, json.RawMessage(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
			assert.Equal(t, tt.name, cmd.Name())
		})
	}
}

func TestDecodeUpdateNode(t *testing.T) {
	cmd, err := DecodeCommand(CmdUpdateNode, json.RawMessage(`{"id":"a","label":"Hi","kind":"note"}`))
	require.NoError(t, err)

	u, ok := cmd.(UpdateNode)
	require.True(t, ok)
	assert.Equal(t, "a", u.ID)
	require.NotNil(t, u.Patch.Label)
	assert.Equal(t, "Hi", *u.Patch.Label)
	require.NotNil(t, u.Patch.Kind)
	assert.Equal(t, graph.KindNote, *u.Patch.Kind)
	assert.Nil(t, u.Patch.Description)
	assert.Nil(t, u.Patch.Position)
}

func TestDecodeCommandErrors(t *testing.T) {
	_, err := DecodeCommand("launch-rockets", nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = DecodeCommand(CmdConnect, json.RawMessage(`{"source":`))
	assert.Error(t, err)
}

func TestDefaultCommandNeedsNoArguments(t *testing.T) {
	for _, name := range DefaultKeymap() {
		_, ok := DefaultCommand(name)
		assert.True(t, ok, "%s bound to a key but has no default form", name)
	}
	_, ok := DefaultCommand(CmdConnect)
	assert.False(t, ok)
}
