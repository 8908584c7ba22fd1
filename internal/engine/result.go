package engine

import (
	"fmt"
	"strings"
)

// OutcomeKind classifies what happened to one tweak within a batch.
// SkippedPrivilege and Failed are batch annotations only; they never change
// the tweak's membership in the applied set.
type OutcomeKind string

const (
	OutcomeApplied          OutcomeKind = "applied"
	OutcomeRestored         OutcomeKind = "restored"
	OutcomeSkippedPrivilege OutcomeKind = "skipped_privilege"
	OutcomeFailed           OutcomeKind = "failed"
)

// Outcome is the per-tweak record of a batch. Message is only set for
// failures.
type Outcome struct {
	TweakID   string      `json:"tweak_id"`
	TweakName string      `json:"tweak_name"`
	Kind      OutcomeKind `json:"kind"`
	Message   string      `json:"message,omitempty"`
}

// BatchKind names the operation a BatchResult describes.
type BatchKind string

const (
	BatchApply   BatchKind = "apply"
	BatchRestore BatchKind = "restore"
)

// BatchResult summarizes one apply or restore batch: outcome counts, the
// ordered per-tweak records, and an optional soft warning when persisting
// the applied set failed. A save failure does not undo system changes; the
// in-memory set stays authoritative for the rest of the process.
type BatchResult struct {
	Kind         BatchKind `json:"kind"`
	Applied      int       `json:"applied"`
	Restored     int       `json:"restored"`
	Skipped      int       `json:"skipped"`
	Failed       int       `json:"failed"`
	Outcomes     []Outcome `json:"outcomes"`
	StateWarning string    `json:"state_warning,omitempty"`
}

func (r *BatchResult) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Kind {
	case OutcomeApplied:
		r.Applied++
	case OutcomeRestored:
		r.Restored++
	case OutcomeSkippedPrivilege:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	}
}

// Summary renders the one-line batch summary shown to users.
func (r BatchResult) Summary() string {
	var parts []string
	if r.Applied > 0 {
		parts = append(parts, fmt.Sprintf("%d applied", r.Applied))
	}
	if r.Restored > 0 {
		parts = append(parts, fmt.Sprintf("%d restored", r.Restored))
	}
	if r.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped (need admin)", r.Skipped))
	}
	if r.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", r.Failed))
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}

// SkippedNames lists the tweaks skipped for missing elevation, for the
// user-facing elevation hint.
func (r BatchResult) SkippedNames() []string {
	var names []string
	for _, o := range r.Outcomes {
		if o.Kind == OutcomeSkippedPrivilege {
			names = append(names, o.TweakName)
		}
	}
	return names
}
