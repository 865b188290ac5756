package analytics

import (
	"sync"
	"time"
)

// defaultAuditCapacity bounds the in-memory audit trail. Older entries
// fall off the front.
const defaultAuditCapacity = 100

// AuditAction names a recorded maintenance action.
type AuditAction string

const (
	AuditCleanupStarted   AuditAction = "cleanup_started"
	AuditCleanupCompleted AuditAction = "cleanup_completed"
	AuditCleanupFailed    AuditAction = "cleanup_failed"
	AuditDeleteRequested  AuditAction = "delete_requested"
	AuditDeleteCompleted  AuditAction = "delete_completed"
	AuditDeleteFailed     AuditAction = "delete_failed"
)

// AuditEntry is one recorded maintenance action. Entries describe
// retention sweeps and deletion requests, never individual events.
type AuditEntry struct {
	Action  AuditAction    `json:"action"`
	At      time.Time      `json:"at"`
	Detail  string         `json:"detail,omitempty"`
	Cleanup *CleanupResult `json:"cleanup,omitempty"`
}

// auditLog is a fixed-capacity ring of audit entries with an optional
// sink called for every entry as it is recorded.
type auditLog struct {
	mu       sync.Mutex
	capacity int
	entries  []AuditEntry
	sink     func(AuditEntry)
}

func newAuditLog(capacity int, sink func(AuditEntry)) *auditLog {
	if capacity <= 0 {
		capacity = defaultAuditCapacity
	}
	return &auditLog{capacity: capacity, sink: sink}
}

func (l *auditLog) record(e AuditEntry) {
	if e.At.IsZero() {
		e.At = timeNow().UTC()
	}
	l.mu.Lock()
	l.entries = append(l.entries, e)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
	sink := l.sink
	l.mu.Unlock()
	if sink != nil {
		sink(e)
	}
}

// snapshot returns a copy of the trail, oldest first.
func (l *auditLog) snapshot() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AuditEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
