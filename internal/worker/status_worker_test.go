package worker

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"logitrack/internal/model"
)

type fakeOrderLister struct {
	mu     sync.Mutex
	orders []model.Order
}

func (f *fakeOrderLister) GetAll(ctx context.Context) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Order(nil), f.orders...), nil
}

func (f *fakeOrderLister) set(orders []model.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = orders
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) Notify(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeNotifier) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func TestDiffStatuses(t *testing.T) {
	prev := map[int64]string{
		1: model.OrderStatusAwaitingWarehouse,
		2: model.OrderStatusAwaitingWarehouse,
	}
	orders := []model.Order{
		{ID: 1, Status: model.OrderStatusAwaitingWarehouse},
		{ID: 2, Status: model.OrderStatusAtWarehouse},
		{ID: 3, Status: model.OrderStatusAwaitingWarehouse}, // new, not a change
	}

	changes := DiffStatuses(prev, orders)
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(changes))
	}
	if changes[0].Order.ID != 2 {
		t.Errorf("changed order id = %d, want 2", changes[0].Order.ID)
	}
	if changes[0].OldStatus != model.OrderStatusAwaitingWarehouse {
		t.Errorf("old status = %q, want %q", changes[0].OldStatus, model.OrderStatusAwaitingWarehouse)
	}
}

func TestDiffStatusesEmptyPrev(t *testing.T) {
	changes := DiffStatuses(nil, []model.Order{{ID: 1, Status: model.OrderStatusAtWarehouse}})
	if len(changes) != 0 {
		t.Errorf("changes = %d, want 0 for a fresh snapshot", len(changes))
	}
}

func TestProcessBatchSeedsSilentlyThenNotifies(t *testing.T) {
	store := &fakeOrderLister{}
	store.set([]model.Order{
		{ID: 1, ProductName: "наушники", TrackNumber: "CN1", Status: model.OrderStatusAwaitingWarehouse},
	})
	notifier := &fakeNotifier{}

	w := NewStatusWorker(time.Minute, notifier)
	w.Watch(42, store)
	ctx := context.Background()

	// First poll only seeds the baseline.
	w.processBatch(ctx)
	if msgs := notifier.all(); len(msgs) != 0 {
		t.Fatalf("messages after seed = %v, want none", msgs)
	}

	// No change, no message.
	w.processBatch(ctx)
	if msgs := notifier.all(); len(msgs) != 0 {
		t.Fatalf("messages without change = %v, want none", msgs)
	}

	store.set([]model.Order{
		{ID: 1, ProductName: "наушники", TrackNumber: "CN1", Status: model.OrderStatusAtWarehouse},
	})
	w.processBatch(ctx)

	msgs := notifier.all()
	if len(msgs) != 1 {
		t.Fatalf("messages = %v, want exactly one", msgs)
	}
	if !strings.Contains(msgs[0], "наушники") || !strings.Contains(msgs[0], model.OrderStatusAtWarehouse) {
		t.Errorf("message %q should name the order and the new status", msgs[0])
	}

	// The transition must not be re-announced.
	w.processBatch(ctx)
	if msgs := notifier.all(); len(msgs) != 1 {
		t.Errorf("messages = %v, want still one", msgs)
	}
}

func TestWatchKeepsFirstSubscription(t *testing.T) {
	first := &fakeOrderLister{}
	second := &fakeOrderLister{}

	w := NewStatusWorker(time.Minute, &fakeNotifier{})
	w.Watch(42, first)
	w.Watch(42, second)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stores[42] != OrderLister(first) {
		t.Error("re-watching the same chat must not replace the store")
	}
}
