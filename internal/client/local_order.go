package client

import (
	"context"
	"time"

	"logitrack/internal/model"
)

// LocalOrderStore adds bulk delete and the synthetic track number default to
// the generic local store.
type LocalOrderStore struct {
	*LocalStore[model.Order, *model.Order]
}

func NewLocalOrderStore(db *LocalDB) *LocalOrderStore {
	return &LocalOrderStore{
		LocalStore: NewLocalStore[model.Order](db, keyOrders, func(o *model.Order) {
			if o.TrackNumber == "" {
				o.TrackNumber = model.NewTrackNumber(time.Now())
			}
			if o.Status == "" {
				o.Status = model.OrderStatusAwaitingWarehouse
			}
		}),
	}
}

// DeleteMany removes the listed ids and reports how many records actually
// existed, not the length of the input.
func (s *LocalOrderStore) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := items[:0]
	var deleted int64
	for i := range items {
		if drop[items[i].ID] {
			deleted++
			continue
		}
		kept = append(kept, items[i])
	}

	if err := s.save(ctx, kept); err != nil {
		return 0, err
	}
	return deleted, nil
}
