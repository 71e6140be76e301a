package tools

import (
	"go.uber.org/zap"

	"github.com/thinkforbl/mcp-socramine/internal/history"
)

// RunObserver is notified after a reporting tool answers successfully.
// It's an optional dependency; tools work fine with a nil observer.
type RunObserver interface {
	// OnRun receives one completed run with its headline figures already
	// filled in. Implementations must not block the tool reply.
	OnRun(run history.Run)
}

// HistoryBridge records completed report runs in the history store so past
// questions can be reviewed without touching the backend again.
type HistoryBridge struct {
	store *history.Store
	log   *zap.Logger
}

// NewHistoryBridge creates a bridge that records report runs. Returns nil
// if store is nil; callers should check before assigning to a RunObserver.
func NewHistoryBridge(store *history.Store, log *zap.Logger) *HistoryBridge {
	if store == nil {
		return nil
	}
	return &HistoryBridge{store: store, log: log}
}

// OnRun appends the run to the history store. Best-effort: failures are
// logged and never reach the tool reply.
func (b *HistoryBridge) OnRun(run history.Run) {
	if _, err := b.store.Record(run); err != nil {
		b.log.Warn("history bridge: record run failed",
			zap.String("tool", run.Tool),
			zap.Error(err),
		)
	}
}

// notifyObserver is a nil-safe helper called from tool Handle methods.
// If observer is nil, this is a no-op.
func notifyObserver(obs RunObserver, run history.Run) {
	if obs == nil {
		return
	}
	obs.OnRun(run)
}
