// Package diagram renders small mermaid diagrams from structured node
// and edge lists. Output is deterministic for identical input, so the
// same request always produces the same diagram text.
package diagram

import (
	"fmt"
	"strings"
)

// Kind selects the mermaid diagram type.
type Kind string

const (
	KindFlowchart Kind = "flowchart"
	KindSequence  Kind = "sequence"
	KindState     Kind = "state"
)

// Kinds returns the accepted kind values.
func Kinds() []string {
	return []string{string(KindFlowchart), string(KindSequence), string(KindState)}
}

// ValidKind reports whether k is an accepted kind.
func ValidKind(k Kind) bool {
	switch k {
	case KindFlowchart, KindSequence, KindState:
		return true
	}
	return false
}

// Node is one box, participant, or state.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// Edge connects two nodes. For sequence diagrams Label is the message
// text; elsewhere it annotates the arrow.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// Spec is the full diagram input.
type Spec struct {
	Title string `json:"title,omitempty"`
	Nodes []Node `json:"nodes,omitempty"`
	Edges []Edge `json:"edges,omitempty"`
}

// Render produces a mermaid document for the spec.
func Render(kind Kind, spec Spec) (string, error) {
	if !ValidKind(kind) {
		return "", fmt.Errorf("diagram: unknown kind %q (want one of %s)", kind, strings.Join(Kinds(), ", "))
	}
	if len(spec.Nodes) == 0 && len(spec.Edges) == 0 {
		return "", fmt.Errorf("diagram: at least one node or edge is required")
	}
	for i, e := range spec.Edges {
		if strings.TrimSpace(e.From) == "" || strings.TrimSpace(e.To) == "" {
			return "", fmt.Errorf("diagram: edge %d needs both from and to", i)
		}
	}

	ids := newIDTable()
	var sb strings.Builder
	if spec.Title != "" {
		sb.WriteString(fmt.Sprintf("---\ntitle: %s\n---\n", escapeLabel(spec.Title)))
	}

	switch kind {
	case KindFlowchart:
		renderFlowchart(&sb, spec, ids)
	case KindSequence:
		renderSequence(&sb, spec, ids)
	case KindState:
		renderState(&sb, spec, ids)
	}
	return sb.String(), nil
}

func renderFlowchart(sb *strings.Builder, spec Spec, ids *idTable) {
	sb.WriteString("flowchart TD\n")
	for _, n := range spec.Nodes {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", ids.get(n.ID), labelOr(n.Label, n.ID)))
	}
	for _, e := range spec.Edges {
		if e.Label != "" {
			sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", ids.get(e.From), escapeLabel(e.Label), ids.get(e.To)))
		} else {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids.get(e.From), ids.get(e.To)))
		}
	}
}

func renderSequence(sb *strings.Builder, spec Spec, ids *idTable) {
	sb.WriteString("sequenceDiagram\n")
	declared := make(map[string]bool)
	declare := func(rawID, label string) {
		id := ids.get(rawID)
		if declared[id] {
			return
		}
		declared[id] = true
		if label != "" && label != rawID {
			sb.WriteString(fmt.Sprintf("    participant %s as %s\n", id, escapeLabel(label)))
		} else {
			sb.WriteString(fmt.Sprintf("    participant %s\n", id))
		}
	}
	for _, n := range spec.Nodes {
		declare(n.ID, n.Label)
	}
	// Participants referenced only by edges are declared implicitly, in
	// first-use order.
	for _, e := range spec.Edges {
		declare(e.From, "")
		declare(e.To, "")
	}
	for _, e := range spec.Edges {
		sb.WriteString(fmt.Sprintf("    %s->>%s: %s\n", ids.get(e.From), ids.get(e.To), escapeLabel(e.Label)))
	}
}

func renderState(sb *strings.Builder, spec Spec, ids *idTable) {
	sb.WriteString("stateDiagram-v2\n")
	for _, n := range spec.Nodes {
		if n.Label != "" && n.Label != n.ID {
			sb.WriteString(fmt.Sprintf("    state \"%s\" as %s\n", escapeLabel(n.Label), ids.get(n.ID)))
		}
	}
	for _, e := range spec.Edges {
		if e.Label != "" {
			sb.WriteString(fmt.Sprintf("    %s --> %s: %s\n", ids.get(e.From), ids.get(e.To), escapeLabel(e.Label)))
		} else {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids.get(e.From), ids.get(e.To)))
		}
	}
}

// idTable maps raw node IDs to mermaid-safe identifiers, stably within
// one render.
type idTable struct {
	byRaw map[string]string
	used  map[string]bool
}

func newIDTable() *idTable {
	return &idTable{byRaw: make(map[string]string), used: make(map[string]bool)}
}

func (t *idTable) get(raw string) string {
	if id, ok := t.byRaw[raw]; ok {
		return id
	}
	id := sanitizeID(raw)
	for t.used[id] {
		id += "_"
	}
	t.byRaw[raw] = id
	t.used[id] = true
	return id
}

// sanitizeID reduces a raw ID to characters mermaid accepts as an
// identifier.
func sanitizeID(raw string) string {
	var sb strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	id := sb.String()
	if id == "" {
		return "node"
	}
	if id[0] >= '0' && id[0] <= '9' {
		return "n" + id
	}
	return id
}

// escapeLabel keeps label text from breaking out of mermaid syntax.
func escapeLabel(label string) string {
	label = strings.ReplaceAll(label, "\n", " ")
	label = strings.ReplaceAll(label, `"`, "'")
	return strings.TrimSpace(label)
}

// labelOr falls back to the raw ID when no label was given.
func labelOr(label, id string) string {
	if label == "" {
		return escapeLabel(id)
	}
	return escapeLabel(label)
}
