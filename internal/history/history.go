package history

import (
	"context"
	"time"
)

// EventType distinguishes apply batches from restore batches.
type EventType string

const (
	EventApply   EventType = "apply"
	EventRestore EventType = "restore"
)

// Event is one per-tweak audit entry emitted after a batch completes.
// Outcome carries the outcome kind ("applied", "restored",
// "skipped_privilege", "failed"); Message is only set for failures.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	TweakID    string    `json:"tweak_id"`
	TweakName  string    `json:"tweak_name"`
	Outcome    string    `json:"outcome"`
	Message    string    `json:"message,omitempty"`
	Elevated   bool      `json:"elevated"`
}

// Sink is a destination for audit events (local ledger or analytics
// systems). Implementations must be safe for concurrent use. Sink errors are
// best-effort bookkeeping failures and never abort a batch.
type Sink interface {
	Send(ctx context.Context, e Event) error
}
