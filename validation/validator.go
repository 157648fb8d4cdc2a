package validation

import (
	"fmt"

	"pathway/graph"
)

// Severity of a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError is a single finding with the element it concerns.
type ValidationError struct {
	Severity Severity
	NodeID   string
	EdgeID   string
	Message  string
}

// DocumentValidator checks serialized pathways. Structural problems that
// would make a load fail are errors; permitted but suspicious shapes such as
// self-loops and parallel edges are warnings.
type DocumentValidator struct {
	errors []ValidationError
	// Options
	strictMode    bool // report warnings as errors
	checkIsolated bool // warn about conversation nodes with no edges
}

// NewDocumentValidator creates a new validator with default settings.
func NewDocumentValidator() *DocumentValidator {
	return &DocumentValidator{
		strictMode:    false,
		checkIsolated: true,
	}
}

// SetStrictMode enables or disables strict validation.
func (v *DocumentValidator) SetStrictMode(strict bool) {
	v.strictMode = strict
}

// SetCheckIsolated enables or disables the isolated node warning.
func (v *DocumentValidator) SetCheckIsolated(check bool) {
	v.checkIsolated = check
}

// ValidateDocument checks a live document.
func (v *DocumentValidator) ValidateDocument(d *graph.Document) []ValidationError {
	return v.Validate(d.Record())
}

// Validate checks a serialized pathway and returns every finding.
func (v *DocumentValidator) Validate(r graph.Record) []ValidationError {
	v.errors = nil

	nodes := make(map[string]graph.NodeRecord, len(r.Nodes))
	for i, n := range r.Nodes {
		if n.ID == "" {
			v.addError("", "", "node %d has no id", i)
			continue
		}
		if _, dup := nodes[n.ID]; dup {
			v.addError(n.ID, "", "duplicate node id")
			continue
		}
		nodes[n.ID] = n
		if !n.Kind.Valid() {
			v.addError(n.ID, "", "unknown node kind %q", n.Kind)
		}
		if n.Kind == graph.KindConversation && n.Label == "" {
			v.addWarning(n.ID, "", "conversation node has no label")
		}
	}

	degree := make(map[string]int, len(nodes))
	seenEdges := make(map[string]bool, len(r.Edges))
	pairs := make(map[[2]string]string)
	for i, e := range r.Edges {
		if e.ID == "" {
			v.addError("", "", "edge %d has no id", i)
		} else if seenEdges[e.ID] {
			v.addError("", e.ID, "duplicate edge id")
		}
		seenEdges[e.ID] = true

		_, srcOK := nodes[e.Source]
		_, dstOK := nodes[e.Target]
		if !srcOK {
			v.addError(e.Source, e.ID, "edge source %q does not exist", e.Source)
		}
		if !dstOK {
			v.addError(e.Target, e.ID, "edge target %q does not exist", e.Target)
		}
		if !srcOK || !dstOK {
			continue
		}

		degree[e.Source]++
		degree[e.Target]++

		if e.Source == e.Target {
			v.addWarning(e.Source, e.ID, "edge loops back to its own node")
		}
		pair := [2]string{e.Source, e.Target}
		if first, ok := pairs[pair]; ok {
			v.addWarning(e.Source, e.ID, "parallel edge duplicates %s", first)
		} else {
			pairs[pair] = e.ID
		}
	}

	if v.checkIsolated && len(nodes) > 1 {
		for _, n := range r.Nodes {
			if n.Kind == graph.KindConversation && degree[n.ID] == 0 {
				if _, ok := nodes[n.ID]; ok {
					v.addWarning(n.ID, "", "conversation node is not connected")
				}
			}
		}
	}

	return v.errors
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (v *DocumentValidator) addError(nodeID, edgeID, format string, args ...interface{}) {
	v.errors = append(v.errors, ValidationError{
		Severity: SeverityError,
		NodeID:   nodeID,
		EdgeID:   edgeID,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *DocumentValidator) addWarning(nodeID, edgeID, format string, args ...interface{}) {
	sev := SeverityWarning
	if v.strictMode {
		sev = SeverityError
	}
	v.errors = append(v.errors, ValidationError{
		Severity: sev,
		NodeID:   nodeID,
		EdgeID:   edgeID,
		Message:  fmt.Sprintf(format, args...),
	})
}

// String formats validation errors as a string.
func (e ValidationError) String() string {
	switch {
	case e.EdgeID != "":
		return fmt.Sprintf("%s [edge %s]: %s", e.Severity, e.EdgeID, e.Message)
	case e.NodeID != "":
		return fmt.Sprintf("%s [node %s]: %s", e.Severity, e.NodeID, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Severity, e.Message)
	}
}
