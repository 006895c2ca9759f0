package client

import (
	"context"
	"log/slog"

	"logitrack/internal/model"
)

// Store is the uniform per-entity persistence contract the UI surfaces
// program against, regardless of which backing store answers.
type Store[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, id int64, rec *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// BulkDeleter is the extra capability the orders resource carries.
type BulkDeleter interface {
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
}

// OrderStore is the full order-facing contract.
type OrderStore interface {
	Store[model.Order]
	BulkDeleter
}

// FallbackStore decorates a remote store with local degradation. Any remote
// error, be it a transport failure or an application error such as a 404,
// latches the prober and re-executes the same logical operation against the
// local store. There is no retry and no rollback of partial remote effects; a
// mutation that half-succeeded remotely before the switch stays there.
type FallbackStore[T any] struct {
	remote Store[T]
	local  Store[T]
	prober *Prober
}

func NewFallbackStore[T any](remote, local Store[T], prober *Prober) *FallbackStore[T] {
	return &FallbackStore[T]{remote: remote, local: local, prober: prober}
}

func (s *FallbackStore[T]) degrade(op string, err error) {
	slog.Warn("remote operation failed, falling back to local store", "op", op, "error", err)
	s.prober.MarkUnavailable()
}

func (s *FallbackStore[T]) GetAll(ctx context.Context) ([]T, error) {
	if s.prober.Available(ctx) {
		items, err := s.remote.GetAll(ctx)
		if err == nil {
			return items, nil
		}
		s.degrade("getAll", err)
	}
	return s.local.GetAll(ctx)
}

func (s *FallbackStore[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	if s.prober.Available(ctx) {
		item, err := s.remote.GetByID(ctx, id)
		if err == nil {
			return item, nil
		}
		s.degrade("getById", err)
	}
	return s.local.GetByID(ctx, id)
}

func (s *FallbackStore[T]) Create(ctx context.Context, rec *T) (*T, error) {
	if s.prober.Available(ctx) {
		item, err := s.remote.Create(ctx, rec)
		if err == nil {
			return item, nil
		}
		s.degrade("create", err)
	}
	return s.local.Create(ctx, rec)
}

func (s *FallbackStore[T]) Update(ctx context.Context, id int64, rec *T) (*T, error) {
	if s.prober.Available(ctx) {
		item, err := s.remote.Update(ctx, id, rec)
		if err == nil {
			return item, nil
		}
		s.degrade("update", err)
	}
	return s.local.Update(ctx, id, rec)
}

func (s *FallbackStore[T]) Delete(ctx context.Context, id int64) error {
	if s.prober.Available(ctx) {
		err := s.remote.Delete(ctx, id)
		if err == nil {
			return nil
		}
		s.degrade("delete", err)
	}
	return s.local.Delete(ctx, id)
}

// FallbackOrderStore extends the generic fallback with bulk delete.
type FallbackOrderStore struct {
	*FallbackStore[model.Order]
	remoteBulk BulkDeleter
	localBulk  BulkDeleter
}

func NewFallbackOrderStore(remote *RemoteOrderStore, local *LocalOrderStore, prober *Prober) *FallbackOrderStore {
	return &FallbackOrderStore{
		FallbackStore: NewFallbackStore[model.Order](remote, local, prober),
		remoteBulk:    remote,
		localBulk:     local,
	}
}

func (s *FallbackOrderStore) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if s.prober.Available(ctx) {
		deleted, err := s.remoteBulk.DeleteMany(ctx, ids)
		if err == nil {
			return deleted, nil
		}
		s.degrade("deleteMany", err)
	}
	return s.localBulk.DeleteMany(ctx, ids)
}
