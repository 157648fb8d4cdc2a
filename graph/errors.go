package graph

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a GraphError.
type ErrorCode string

const (
	// CodeUnknownNode means an operation referenced a node id absent from the document.
	CodeUnknownNode ErrorCode = "UNKNOWN_NODE"
	// CodeImmutableKind means an update tried to change a node's variant.
	CodeImmutableKind ErrorCode = "IMMUTABLE_KIND"
)

// Sentinels for errors.Is matching against a GraphError.
var (
	ErrUnknownNode   = errors.New("unknown node")
	ErrImmutableKind = errors.New("node kind is immutable")

	// ErrInvalidDocument is returned when a serialized document fails validation on load.
	ErrInvalidDocument = errors.New("invalid document")
)

// GraphError is the value-level error returned by fallible document operations.
type GraphError struct {
	Code   ErrorCode `json:"code"`
	NodeID string    `json:"nodeId,omitempty"`
}

// Error implements the error interface
func (e *GraphError) Error() string {
	switch e.Code {
	case CodeUnknownNode:
		return fmt.Sprintf("unknown node %q", e.NodeID)
	case CodeImmutableKind:
		return fmt.Sprintf("cannot change kind of node %q", e.NodeID)
	default:
		return fmt.Sprintf("%s: node %q", e.Code, e.NodeID)
	}
}

// Is lets errors.Is match the package sentinels.
func (e *GraphError) Is(target error) bool {
	switch target {
	case ErrUnknownNode:
		return e.Code == CodeUnknownNode
	case ErrImmutableKind:
		return e.Code == CodeImmutableKind
	}
	return false
}

func unknownNode(id string) *GraphError {
	return &GraphError{Code: CodeUnknownNode, NodeID: id}
}

func immutableKind(id string) *GraphError {
	return &GraphError{Code: CodeImmutableKind, NodeID: id}
}

// AsGraphError extracts a GraphError from err, if there is one.
func AsGraphError(err error) (*GraphError, bool) {
	var ge *GraphError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
