package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"logitrack/internal/model"
)

// OrderLister is the slice of the gateway contract the worker needs.
type OrderLister interface {
	GetAll(ctx context.Context) ([]model.Order, error)
}

// Notifier delivers a status-change message to a chat.
type Notifier interface {
	Notify(chatID int64, text string) error
}

// StatusChange describes one observed order transition.
type StatusChange struct {
	Order     model.Order
	OldStatus string
}

// StatusWorker polls the orders of every watched chat through the gateway
// and notifies the chat when an order's status moves along the
// warehouse-to-delivery pipeline.
type StatusWorker struct {
	interval time.Duration
	notifier Notifier

	mu       sync.Mutex
	stores   map[int64]OrderLister
	lastSeen map[int64]map[int64]string
}

func NewStatusWorker(interval time.Duration, notifier Notifier) *StatusWorker {
	return &StatusWorker{
		interval: interval,
		notifier: notifier,
		stores:   make(map[int64]OrderLister),
		lastSeen: make(map[int64]map[int64]string),
	}
}

// Watch subscribes a chat. The first poll seeds the baseline silently so a
// fresh subscription does not replay the whole history.
func (w *StatusWorker) Watch(chatID int64, store OrderLister) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.stores[chatID]; !ok {
		w.stores[chatID] = store
	}
}

func (w *StatusWorker) Start(ctx context.Context) {
	slog.Info("starting status worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("status worker stopped")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

func (w *StatusWorker) processBatch(ctx context.Context) {
	w.mu.Lock()
	stores := make(map[int64]OrderLister, len(w.stores))
	for chatID, store := range w.stores {
		stores[chatID] = store
	}
	w.mu.Unlock()

	for chatID, store := range stores {
		orders, err := store.GetAll(ctx)
		if err != nil {
			slog.Error("status poll failed", "chat", chatID, "error", err)
			continue
		}

		w.mu.Lock()
		seen, seeded := w.lastSeen[chatID]
		changes := DiffStatuses(seen, orders)
		w.lastSeen[chatID] = snapshotStatuses(orders)
		w.mu.Unlock()

		if !seeded {
			continue
		}

		for _, change := range changes {
			text := fmt.Sprintf("Заказ «%s» (%s): %s → %s",
				change.Order.ProductName, change.Order.TrackNumber, change.OldStatus, change.Order.Status)
			if err := w.notifier.Notify(chatID, text); err != nil {
				slog.Error("status notification failed", "chat", chatID, "order", change.Order.ID, "error", err)
			}
		}
	}
}

// DiffStatuses reports orders whose status differs from the previous
// snapshot. Newly appeared orders are not treated as changes.
func DiffStatuses(prev map[int64]string, orders []model.Order) []StatusChange {
	changes := []StatusChange{}
	for _, o := range orders {
		old, ok := prev[o.ID]
		if ok && old != o.Status {
			changes = append(changes, StatusChange{Order: o, OldStatus: old})
		}
	}
	return changes
}

func snapshotStatuses(orders []model.Order) map[int64]string {
	statuses := make(map[int64]string, len(orders))
	for _, o := range orders {
		statuses[o.ID] = o.Status
	}
	return statuses
}
