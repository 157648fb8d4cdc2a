package editor

import "pathway/graph"

// DefaultHistoryCapacity is used when NewHistoryManager is given a capacity below 2.
const DefaultHistoryCapacity = 100

// HistoryManager keeps a bounded, linear undo/redo stack of documents.
// Documents are immutable so snapshots are stored as-is, without copying.
type HistoryManager struct {
	states  []*graph.Document
	current int // index of the document being shown
	max     int // maximum number of states to keep
}

// NewHistoryManager creates a history holding initial as its only snapshot.
func NewHistoryManager(initial *graph.Document, max int) *HistoryManager {
	if max < 2 {
		max = DefaultHistoryCapacity
	}
	if initial == nil {
		initial = graph.New()
	}
	states := make([]*graph.Document, 0, max)
	states = append(states, initial)
	return &HistoryManager{states: states, current: 0, max: max}
}

// Commit records doc as the newest state. Anything after the cursor is
// discarded first; if the stack is full the oldest state is dropped.
func (h *HistoryManager) Commit(doc *graph.Document) {
	if h.current < len(h.states)-1 {
		clear(h.states[h.current+1:])
		h.states = h.states[:h.current+1]
	}

	h.states = append(h.states, doc)

	if len(h.states) > h.max {
		h.states[0] = nil
		h.states = h.states[1:]
	}
	h.current = len(h.states) - 1
}

// CanUndo returns true if there is an older state to go back to.
func (h *HistoryManager) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if an undone state can be restored.
func (h *HistoryManager) CanRedo() bool {
	return h.current < len(h.states)-1
}

// Undo moves the cursor back one state and returns it. The second result is
// false, and nothing changes, at the start of history.
func (h *HistoryManager) Undo() (*graph.Document, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.current--
	return h.states[h.current], true
}

// Redo moves the cursor forward one state and returns it.
func (h *HistoryManager) Redo() (*graph.Document, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.current++
	return h.states[h.current], true
}

// Current returns the state under the cursor.
func (h *HistoryManager) Current() *graph.Document {
	return h.states[h.current]
}

// Reset drops all history and starts again from doc.
func (h *HistoryManager) Reset(doc *graph.Document) {
	if doc == nil {
		doc = graph.New()
	}
	clear(h.states)
	h.states = append(h.states[:0], doc)
	h.current = 0
}

// Stats returns the 1-based cursor position and the number of stored states.
func (h *HistoryManager) Stats() (current, total int) {
	return h.current + 1, len(h.states)
}

// Capacity returns the maximum number of states kept.
func (h *HistoryManager) Capacity() int {
	return h.max
}
