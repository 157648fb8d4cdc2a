package validation

import (
	"strings"
	"testing"

	"pathway/graph"
)

func conv(id, label string) graph.NodeRecord {
	return graph.NodeRecord{ID: id, Kind: graph.KindConversation, Label: label}
}

func edge(id, from, to string) graph.EdgeRecord {
	return graph.EdgeRecord{ID: id, Source: from, Target: to, Animated: true}
}

func TestDocumentValidator_Findings(t *testing.T) {
	tests := []struct {
		name     string
		record   graph.Record
		severity Severity
		errMsg   string
	}{
		{
			name: "dangling target",
			record: graph.Record{
				Nodes: []graph.NodeRecord{conv("a", "A")},
				Edges: []graph.EdgeRecord{edge("e1", "a", "b")},
			},
			severity: SeverityError,
			errMsg:   `edge target "b" does not exist`,
		},
		{
			name: "duplicate node",
			record: graph.Record{
				Nodes: []graph.NodeRecord{conv("a", "A"), conv("a", "again")},
			},
			severity: SeverityError,
			errMsg:   "duplicate node id",
		},
		{
			name: "unknown kind",
			record: graph.Record{
				Nodes: []graph.NodeRecord{{ID: "a", Kind: "transfer", Label: "x"}},
			},
			severity: SeverityError,
			errMsg:   "unknown node kind",
		},
		{
			name: "duplicate edge id",
			record: graph.Record{
				Nodes: []graph.NodeRecord{conv("a", "A"), conv("b", "B")},
				Edges: []graph.EdgeRecord{edge("e1", "a", "b"), edge("e1", "b", "a")},
			},
			severity: SeverityError,
			errMsg:   "duplicate edge id",
		},
		{
			name: "self loop",
			record: graph.Record{
				Nodes: []graph.NodeRecord{conv("a", "A")},
				Edges: []graph.EdgeRecord{edge("e1", "a", "a")},
			},
			severity: SeverityWarning,
			errMsg:   "loops back",
		},
		{
			name: "parallel edge",
			record: graph.Record{
				Nodes: []graph.NodeRecord{conv("a", "A"), conv("b", "B")},
				Edges: []graph.EdgeRecord{edge("e1", "a", "b"), edge("e2", "a", "b")},
			},
			severity: SeverityWarning,
			errMsg:   "parallel edge duplicates e1",
		},
		{
			name: "missing label",
			record: graph.Record{
				Nodes: []graph.NodeRecord{conv("a", "")},
			},
			severity: SeverityWarning,
			errMsg:   "has no label",
		},
		{
			name: "isolated conversation",
			record: graph.Record{
				Nodes: []graph.NodeRecord{conv("a", "A"), conv("b", "B"), conv("c", "C")},
				Edges: []graph.EdgeRecord{edge("e1", "a", "b")},
			},
			severity: SeverityWarning,
			errMsg:   "not connected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewDocumentValidator()
			findings := v.Validate(tt.record)

			found := false
			for _, f := range findings {
				if strings.Contains(f.Message, tt.errMsg) {
					found = true
					if f.Severity != tt.severity {
						t.Errorf("Expected severity %s, got %s", tt.severity, f.Severity)
					}
				}
			}
			if !found {
				t.Errorf("Expected finding containing %q, got:", tt.errMsg)
				for _, f := range findings {
					t.Logf("  %s", f)
				}
			}
		})
	}
}

func TestDocumentValidator_CleanDocument(t *testing.T) {
	d := graph.New()
	d, a := d.AddNode(graph.Conversation{Label: "Greet"}, graph.Position{})
	d, b := d.AddNode(graph.Conversation{Label: "Book"}, graph.Position{})
	d, _ = d.AddNode(graph.Note{Label: "notes stay unconnected"}, graph.Position{})
	d, _, err := d.AddEdge(a, b, true)
	if err != nil {
		t.Fatalf("AddEdge failed: %v", err)
	}

	findings := NewDocumentValidator().ValidateDocument(d)
	if len(findings) != 0 {
		t.Errorf("Expected no findings, got %d", len(findings))
		for _, f := range findings {
			t.Logf("  %s", f)
		}
	}
}

func TestDocumentValidator_StrictMode(t *testing.T) {
	rec := graph.Record{
		Nodes: []graph.NodeRecord{conv("a", "A")},
		Edges: []graph.EdgeRecord{edge("e1", "a", "a")},
	}

	v := NewDocumentValidator()
	if HasErrors(v.Validate(rec)) {
		t.Error("Self-loop should only warn by default")
	}

	v.SetStrictMode(true)
	if !HasErrors(v.Validate(rec)) {
		t.Error("Strict mode should report the self-loop as an error")
	}
}

func TestDocumentValidator_IsolatedCheckCanBeDisabled(t *testing.T) {
	rec := graph.Record{Nodes: []graph.NodeRecord{conv("a", "A"), conv("b", "B")}}

	v := NewDocumentValidator()
	v.SetCheckIsolated(false)
	if findings := v.Validate(rec); len(findings) != 0 {
		t.Errorf("Expected no findings, got %v", findings)
	}
}

func TestValidationError_String(t *testing.T) {
	e := ValidationError{Severity: SeverityWarning, EdgeID: "e1", Message: "edge loops back to its own node"}
	if got := e.String(); got != "warning [edge e1]: edge loops back to its own node" {
		t.Errorf("Unexpected string: %s", got)
	}
}
