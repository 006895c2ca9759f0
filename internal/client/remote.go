package client

import (
	"context"
	"fmt"
	"net/http"

	"logitrack/internal/model"
)

// RemoteStore serves one entity type over the REST API.
type RemoteStore[T any] struct {
	c    *Client
	path string
}

func NewRemoteStore[T any](c *Client, path string) *RemoteStore[T] {
	return &RemoteStore[T]{c: c, path: path}
}

func (s *RemoteStore[T]) GetAll(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := s.c.do(ctx, http.MethodGet, s.path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RemoteStore[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", s.path, id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *RemoteStore[T]) Create(ctx context.Context, rec *T) (*T, error) {
	var item T
	if err := s.c.do(ctx, http.MethodPost, s.path, rec, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *RemoteStore[T]) Update(ctx context.Context, id int64, rec *T) (*T, error) {
	var item T
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", s.path, id), rec, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *RemoteStore[T]) Delete(ctx context.Context, id int64) error {
	var res struct {
		Success bool `json:"success"`
	}
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", s.path, id), nil, &res)
}

// RemoteOrderStore adds the bulk delete the orders resource supports.
type RemoteOrderStore struct {
	*RemoteStore[model.Order]
}

func NewRemoteOrderStore(c *Client) *RemoteOrderStore {
	return &RemoteOrderStore{RemoteStore: NewRemoteStore[model.Order](c, "/orders")}
}

func (s *RemoteOrderStore) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	var res struct {
		Success bool  `json:"success"`
		Deleted int64 `json:"deleted"`
	}
	body := map[string][]int64{"ids": ids}
	if err := s.c.do(ctx, http.MethodDelete, s.path, body, &res); err != nil {
		return 0, err
	}
	return res.Deleted, nil
}
