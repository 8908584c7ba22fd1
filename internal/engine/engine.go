package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/arcboost/arcboost/internal/history"
	"github.com/arcboost/arcboost/internal/metrics"
	"github.com/arcboost/arcboost/internal/privilege"
	"github.com/arcboost/arcboost/internal/runner"
	"github.com/arcboost/arcboost/internal/state"
	"github.com/arcboost/arcboost/internal/tweak"
)

// ErrBatchInFlight is returned when a batch is requested while another one
// is still running. Batches are strictly one at a time.
var ErrBatchInFlight = errors.New("another batch is already in flight")

// Options carries optional collaborators for an Engine.
type Options struct {
	Logger *slog.Logger
	Sinks  []history.Sink
}

// Engine orchestrates applying and restoring tweaks. It owns the in-memory
// applied set; the state store is read once at construction and written once
// per completed batch. All per-tweak failures are converted into outcome
// records; Apply and Restore only error on invalid input or a concurrent
// batch.
type Engine struct {
	registry *tweak.Registry
	runner   runner.Runner
	gate     privilege.Gate
	store    *state.Store
	log      *slog.Logger
	sinks    []history.Sink

	mu      sync.Mutex
	busy    bool
	applied state.Set
}

// New builds an Engine and loads the persisted applied set.
func New(reg *tweak.Registry, r runner.Runner, g privilege.Gate, st *state.Store, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{
		registry: reg,
		runner:   r,
		gate:     g,
		store:    st,
		log:      log,
		sinks:    opts.Sinks,
		applied:  st.Load(),
	}
	metrics.SetAppliedSetSize(len(e.applied))
	return e
}

// Registry exposes the immutable tweak catalog.
func (e *Engine) Registry() *tweak.Registry { return e.registry }

// Elevated reports whether elevation-requiring tweaks may run.
func (e *Engine) Elevated() bool { return e.gate.Elevated() }

// Applied returns a sorted snapshot of the applied-tweak ids.
func (e *Engine) Applied() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applied.IDs()
}

// LastModified reports when the applied set was last persisted.
func (e *Engine) LastModified() time.Time { return e.store.LastModified() }

// begin claims the single batch slot and hands out a working copy of the
// applied set. The copy is owned exclusively by the batch until commit.
func (e *Engine) begin() (state.Set, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return nil, ErrBatchInFlight
	}
	e.busy = true
	return e.applied.Clone(), nil
}

// commit reconciles the working set back and releases the batch slot.
// The persisted record is written exactly once here; a write failure is a
// soft warning because tracking is best-effort bookkeeping, not a
// transactional ledger.
func (e *Engine) commit(working state.Set, res *BatchResult) {
	if err := e.store.Save(working); err != nil {
		res.StateWarning = err.Error()
		e.log.Warn("failed to persist applied state", "error", err)
	}
	e.mu.Lock()
	e.applied = working
	e.busy = false
	e.mu.Unlock()
	metrics.SetAppliedSetSize(len(working))
}

// Apply runs the apply action of every requested tweak id, in registry
// order. Tweaks requiring elevation are skipped without executing anything
// when the process is not elevated. One tweak's failure never aborts the
// batch. Re-applying an already-applied tweak re-executes its action.
func (e *Engine) Apply(ctx context.Context, ids []string) (BatchResult, error) {
	selected, err := e.registry.Select(ids)
	if err != nil {
		return BatchResult{}, err
	}
	working, err := e.begin()
	if err != nil {
		return BatchResult{}, err
	}

	start := time.Now()
	elevated := e.gate.Elevated()
	res := BatchResult{Kind: BatchApply}
	e.log.Info("applying tweaks", "count", len(selected), "elevated", elevated)

	for _, t := range selected {
		switch {
		case t.Elevated && !elevated:
			res.record(Outcome{TweakID: t.ID, TweakName: t.Name, Kind: OutcomeSkippedPrivilege})
			metrics.IncSkippedPrivilege(t.ID)
			e.log.Warn("skipped: requires administrator", "tweak", t.Name)
		default:
			r := e.runner.Run(ctx, t.ApplyCmd)
			if r.OK {
				working.Add(t.ID)
				res.record(Outcome{TweakID: t.ID, TweakName: t.Name, Kind: OutcomeApplied})
				metrics.IncApplied(t.ID)
				e.log.Info("applied", "tweak", t.Name)
			} else {
				res.record(Outcome{TweakID: t.ID, TweakName: t.Name, Kind: OutcomeFailed, Message: failMessage(r)})
				metrics.IncFailed(t.ID)
				e.log.Error("apply failed", "tweak", t.Name, "error", failMessage(r))
			}
		}
	}

	e.commit(working, &res)
	e.emit(ctx, history.EventApply, res, elevated)
	metrics.ObserveBatchDuration(string(BatchApply), time.Since(start).Seconds())
	e.log.Info("apply batch done", "summary", res.Summary())
	return res, nil
}

// Plan partitions the currently applied tweaks into restorable and one-way
// lists, preserving registry order. Ids persisted by an older version whose
// tweak no longer exists are ignored.
func (e *Engine) Plan() (restorable, irreversible []tweak.Tweak) {
	e.mu.Lock()
	applied := e.applied.Clone()
	e.mu.Unlock()
	for _, t := range e.registry.List() {
		if !applied.Has(t.ID) {
			continue
		}
		if t.OneWay {
			irreversible = append(irreversible, t)
		} else {
			restorable = append(restorable, t)
		}
	}
	return restorable, irreversible
}

// Restore runs the restore action of every currently applied, restorable
// tweak. One-way tweaks are never attempted; they remain in the applied set.
// Only confirmed restorations are removed from the set.
func (e *Engine) Restore(ctx context.Context) (BatchResult, error) {
	working, err := e.begin()
	if err != nil {
		return BatchResult{}, err
	}
	var restorable []tweak.Tweak
	for _, t := range e.registry.List() {
		if working.Has(t.ID) && !t.OneWay {
			restorable = append(restorable, t)
		}
	}

	start := time.Now()
	elevated := e.gate.Elevated()
	res := BatchResult{Kind: BatchRestore}
	e.log.Info("restoring tweaks", "count", len(restorable), "elevated", elevated)

	for _, t := range restorable {
		switch {
		case t.Elevated && !elevated:
			res.record(Outcome{TweakID: t.ID, TweakName: t.Name, Kind: OutcomeSkippedPrivilege})
			metrics.IncSkippedPrivilege(t.ID)
			e.log.Warn("skipped: requires administrator", "tweak", t.Name)
		default:
			r := e.runner.Run(ctx, t.RestoreCmd)
			if r.OK {
				working.Remove(t.ID)
				res.record(Outcome{TweakID: t.ID, TweakName: t.Name, Kind: OutcomeRestored})
				metrics.IncRestored(t.ID)
				e.log.Info("restored", "tweak", t.Name)
			} else {
				res.record(Outcome{TweakID: t.ID, TweakName: t.Name, Kind: OutcomeFailed, Message: failMessage(r)})
				metrics.IncFailed(t.ID)
				e.log.Error("restore failed", "tweak", t.Name, "error", failMessage(r))
			}
		}
	}

	e.commit(working, &res)
	e.emit(ctx, history.EventRestore, res, elevated)
	metrics.ObserveBatchDuration(string(BatchRestore), time.Since(start).Seconds())
	e.log.Info("restore batch done", "summary", res.Summary())
	return res, nil
}

// emit forwards the batch outcomes to the configured audit sinks.
// Sink errors are logged and otherwise ignored.
func (e *Engine) emit(ctx context.Context, kind history.EventType, res BatchResult, elevated bool) {
	if len(e.sinks) == 0 {
		return
	}
	now := time.Now().UTC()
	for _, o := range res.Outcomes {
		ev := history.Event{
			Type:       kind,
			OccurredAt: now,
			TweakID:    o.TweakID,
			TweakName:  o.TweakName,
			Outcome:    string(o.Kind),
			Message:    o.Message,
			Elevated:   elevated,
		}
		for _, s := range e.sinks {
			if err := s.Send(ctx, ev); err != nil {
				e.log.Warn("history sink send failed", "tweak", o.TweakID, "error", err)
			}
		}
	}
}

func failMessage(r runner.Result) string {
	if r.Output == "" {
		return "unknown error"
	}
	return r.Output
}
