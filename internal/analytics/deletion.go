package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DeleteOptions control a user-initiated full deletion.
type DeleteOptions struct {
	// Reason is free text recorded in the audit trail, such as
	// "user_request". It never enters an event.
	Reason string

	// RevokeConsent additionally removes the persisted consent record,
	// returning the gate to its first-run state.
	RevokeConsent bool

	// ResetRuntime additionally rebuilds the collector and store
	// instances through the owner's reset hook, so the process continues
	// with a clean slate.
	ResetRuntime bool
}

// DeleteReport describes one completed deletion request.
type DeleteReport struct {
	RequestID      string `json:"requestId"`
	FilesDeleted   int    `json:"filesDeleted"`
	EventsDeleted  int    `json:"eventsDeleted"`
	ConsentRevoked bool   `json:"consentRevoked"`
	RuntimeReset   bool   `json:"runtimeReset"`
	ElapsedMS      int64  `json:"elapsedMs"`
}

// DeletionManager carries out "delete everything" requests: wipe all
// partitions, optionally revoke consent, optionally reset the running
// subsystem. Each request gets an ID and an audit trail entry at start
// and finish.
type DeletionManager struct {
	store  *FileStore
	gate   *ConsentGate
	logger *slog.Logger
	audit  *auditLog
	reset  func(context.Context) error
}

// NewDeletionManager builds a manager over the given store and gate.
func NewDeletionManager(store *FileStore, gate *ConsentGate, logger *slog.Logger) *DeletionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeletionManager{
		store:  store,
		gate:   gate,
		logger: logger,
		audit:  newAuditLog(defaultAuditCapacity, nil),
	}
}

// SetResetHook installs the function ResetRuntime delegates to. The owner
// of the collector and store wires this after construction.
func (m *DeletionManager) SetResetHook(reset func(context.Context) error) {
	m.reset = reset
}

// DeleteAllData removes every stored event. Steps that fail do not stop
// the remaining steps; a deletion request does as much as it can and
// reports all failures together.
func (m *DeletionManager) DeleteAllData(ctx context.Context, opts DeleteOptions) (DeleteReport, error) {
	id := uuid.NewString()
	start := time.Now()

	m.audit.record(AuditEntry{
		Action: AuditDeleteRequested,
		Detail: fmt.Sprintf("request %s reason=%q revokeConsent=%t resetRuntime=%t", id, opts.Reason, opts.RevokeConsent, opts.ResetRuntime),
	})
	m.logger.Info("deleting all analytics data", "requestId", id, "reason", opts.Reason)

	report := DeleteReport{RequestID: id}
	var errs []error

	wipe, err := m.store.DeleteAllData(ctx)
	report.FilesDeleted = wipe.FilesDeleted
	report.EventsDeleted = wipe.EventsDeleted
	if err != nil {
		errs = append(errs, fmt.Errorf("wipe partitions: %w", err))
	}

	if opts.RevokeConsent {
		if err := m.gate.DeletePersisted(); err != nil {
			errs = append(errs, err)
		} else {
			report.ConsentRevoked = true
		}
	}

	if opts.ResetRuntime && m.reset != nil {
		if err := m.reset(ctx); err != nil {
			errs = append(errs, fmt.Errorf("reset runtime: %w", err))
		} else {
			report.RuntimeReset = true
		}
	}

	report.ElapsedMS = time.Since(start).Milliseconds()

	if len(errs) > 0 {
		err := errors.Join(errs...)
		m.audit.record(AuditEntry{
			Action: AuditDeleteFailed,
			Detail: fmt.Sprintf("request %s: %v", id, err),
		})
		return report, err
	}

	m.audit.record(AuditEntry{
		Action: AuditDeleteCompleted,
		Detail: fmt.Sprintf("request %s: %d files, %d events, %dms", id, report.FilesDeleted, report.EventsDeleted, report.ElapsedMS),
	})
	m.logger.Info("analytics data deleted",
		"requestId", id, "filesDeleted", report.FilesDeleted,
		"eventsDeleted", report.EventsDeleted, "elapsedMs", report.ElapsedMS)
	return report, nil
}

// AuditTrail returns a copy of the recorded deletion audit entries.
func (m *DeletionManager) AuditTrail() []AuditEntry {
	return m.audit.snapshot()
}
