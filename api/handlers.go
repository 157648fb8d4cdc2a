package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"pathway/editor"
	"pathway/export"
	"pathway/graph"
)

// CommandRequest is the body of POST /commands.
type CommandRequest struct {
	Name editor.CommandName `json:"name"`
	Args json.RawMessage    `json:"args,omitempty"`
}

// ShortcutRequest is the body of POST /shortcuts.
type ShortcutRequest struct {
	Modifiers []string `json:"modifiers"`
	Key       string   `json:"key"`
}

// ShortcutResponse reports whether a chord ran a command.
type ShortcutResponse struct {
	Handled bool `json:"handled"`
}

// HistoryState is the cursor position within the undo history.
type HistoryState struct {
	Position int `json:"position"`
	Total    int `json:"total"`
}

// StateResponse is the presentation state around the document.
type StateResponse struct {
	Name    string       `json:"name"`
	Active  bool         `json:"active"`
	Dirty   bool         `json:"dirty"`
	CanUndo bool         `json:"canUndo"`
	CanRedo bool         `json:"canRedo"`
	History HistoryState `json:"history"`
}

// BindingResponse is one keymap entry.
type BindingResponse struct {
	Chord   string             `json:"chord"`
	Command editor.CommandName `json:"command"`
}

// ErrorResponse is the body of every error reply. Code and NodeID are set
// for graph errors.
type ErrorResponse struct {
	Error  string          `json:"error"`
	Code   graph.ErrorCode `json:"code,omitempty"`
	NodeID string          `json:"nodeId,omitempty"`
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	f, err := s.currentFile()
	s.mu.Unlock()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, f)
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	pos, total := s.editor.History().Stats()
	state := StateResponse{
		Name:    s.editor.Session().Name(),
		Active:  s.editor.Session().IsActive(),
		Dirty:   s.editor.IsDirty(),
		CanUndo: s.editor.CanUndo(),
		CanRedo: s.editor.CanRedo(),
		History: HistoryState{Position: pos, Total: total},
	}
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, state)
}

func (s *Server) getKeymap(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	bindings := s.editor.Keymap().Bindings()
	s.mu.Unlock()

	out := make([]BindingResponse, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, BindingResponse{Chord: b.Chord.String(), Command: b.Command})
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) postCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cmd, err := editor.DecodeCommand(req.Name, req.Args)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	err = s.editor.Dispatch(cmd)
	s.mu.Unlock()
	if err != nil {
		s.respondDispatchError(w, cmd, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postShortcut(w http.ResponseWriter, r *http.Request) {
	var req ShortcutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	mods, err := editor.ParseModifiers(req.Modifiers)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	handled := s.editor.HandleShortcut(mods, editor.FoldCase(mods, req.Key))
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, ShortcutResponse{Handled: handled})
}

func (s *Server) postSave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editor.Dispatch(editor.Save{}); err != nil {
		s.respondDispatchError(w, editor.Save{}, err)
		return
	}
	f, err := s.currentFile()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, f)
}

// currentFile must be called with the lock held.
func (s *Server) currentFile() (export.File, error) {
	return export.NewFile(export.Pathway{
		Name:     s.editor.Session().Name(),
		Active:   s.editor.Session().IsActive(),
		Document: s.editor.CurrentDocument(),
	})
}

func (s *Server) respondDispatchError(w http.ResponseWriter, cmd editor.Command, err error) {
	if ge, ok := graph.AsGraphError(err); ok {
		s.respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  ge.Error(),
			Code:   ge.Code,
			NodeID: ge.NodeID,
		})
		return
	}
	if errors.Is(err, editor.ErrUnknownCommand) {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("Command failed",
		zap.String("command", string(cmd.Name())),
		zap.Error(err),
	)
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}
