package editor

import "pathway/graph"

// Session is the presentation state wrapped around a pathway being edited:
// its name, whether it is enabled, and whether it has unsaved changes.
type Session struct {
	name   string
	active bool
	dirty  bool
	saved  *graph.Document // document as of the last save
}

// NewSession creates a clean session whose last-saved reference is doc.
func NewSession(name string, doc *graph.Document) *Session {
	return &Session{name: name, saved: doc}
}

// Name returns the pathway name.
func (s *Session) Name() string { return s.name }

// SetName renames the pathway. It does not affect the graph or dirtiness.
func (s *Session) SetName(name string) { s.name = name }

// IsActive reports whether the pathway is enabled for use.
func (s *Session) IsActive() bool { return s.active }

// SetActive enables or disables the pathway.
func (s *Session) SetActive(active bool) { s.active = active }

// IsDirty returns true if content changed since the last save.
func (s *Session) IsDirty() bool { return s.dirty }

// MarkDirty flags unsaved content changes.
func (s *Session) MarkDirty() { s.dirty = true }

// MarkSaved clears the dirty flag and remembers doc as the saved reference.
func (s *Session) MarkSaved(doc *graph.Document) {
	s.dirty = false
	s.saved = doc
}

// SavedDocument returns the document recorded by the last save.
func (s *Session) SavedDocument() *graph.Document { return s.saved }
