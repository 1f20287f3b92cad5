package workers

import (
	"context"
	"log/slog"
	"time"
)

const gcDiscardRatio = 0.5

type garbageCollector interface {
	CollectGarbage(discardRatio float64) (int, error)
}

// StoreGCWorker reclaims value-log space of the key-value store periodically.
type StoreGCWorker struct {
	log      *slog.Logger
	store    garbageCollector
	interval time.Duration
}

func NewStoreGCWorker(log *slog.Logger, store garbageCollector, interval time.Duration) *StoreGCWorker {
	return &StoreGCWorker{log: log, store: store, interval: interval}
}

func (w *StoreGCWorker) Run(ctx context.Context) error {
	if w.store == nil || w.interval <= 0 {
		w.log.Debug("Store garbage collection disabled")
		return nil
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			rewritten, err := w.store.CollectGarbage(gcDiscardRatio)
			if err != nil {
				return err
			}
			if rewritten > 0 {
				w.log.Info("Store value log compacted", "files", rewritten)
			}
		}
	}
}
