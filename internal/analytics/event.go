// Package analytics implements cogito's local, privacy-first usage
// telemetry: consent gating, batched in-memory collection, daily JSON file
// partitions, retention enforcement, user-initiated deletion, and
// aggregation over the stored events.
//
// Everything stays on the local filesystem. No event ever carries tool
// arguments, tool output, file paths, or error message text; the only
// payload is the fixed field set of Event.
package analytics

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ToolName identifies one of the registered MCP tools.
type ToolName string

// Registered tool names. Events are recorded against these; an empty or
// foreign name is still stored verbatim so that renamed tools keep their
// history readable.
const (
	ToolMentalModel   ToolName = "cogito_mental_model"
	ToolDesignPattern ToolName = "cogito_design_pattern"
	ToolParadigm      ToolName = "cogito_paradigm"
	ToolDebugging     ToolName = "cogito_debugging"
	ToolFeedback      ToolName = "cogito_feedback"
	ToolDiagram       ToolName = "cogito_diagram"
)

// KnownTools returns the registered tool names in stable order.
func KnownTools() []ToolName {
	return []ToolName{
		ToolMentalModel,
		ToolDesignPattern,
		ToolParadigm,
		ToolDebugging,
		ToolFeedback,
		ToolDiagram,
	}
}

// Category is the coarse error classification attached to failed
// invocations. Classification looks only at the error's type, never at its
// message, so no user content can leak through it.
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryRuntime    Category = "runtime"
	CategoryTimeout    Category = "timeout"
	CategoryUnknown    Category = "unknown"
)

// Categories returns all error categories in stable order.
func Categories() []Category {
	return []Category{CategoryValidation, CategoryRuntime, CategoryTimeout, CategoryUnknown}
}

// Event is a single tool invocation record. The JSON field set is the
// privacy contract of the whole subsystem: exactly these keys, nothing
// else, ever reaches disk.
type Event struct {
	ToolName      ToolName  `json:"toolName"`
	Timestamp     time.Time `json:"timestamp"`
	Success       bool      `json:"success"`
	DurationMS    int64     `json:"durationMs"`
	SessionID     string    `json:"sessionId"`
	ErrorCategory Category  `json:"errorCategory,omitempty"`
}

// PartitionDate returns the UTC calendar date the event belongs to, in
// YYYY-MM-DD form. Partition assignment always follows the event's own
// timestamp, not the wall clock at write time.
func (e Event) PartitionDate() string {
	return e.Timestamp.UTC().Format(DateLayout)
}

// DateLayout is the calendar-date format used in partition file names and
// aggregate keys.
const DateLayout = "2006-01-02"

// NewSessionID returns a 16 character random hex token. One ID is minted
// per collector and shared by every event it records, which allows
// correlating events within a run without identifying the user.
func NewSessionID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Timestamp fallback keeps events correlated even when the
		// system entropy source is unavailable.
		return fmt.Sprintf("%016x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
