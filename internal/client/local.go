package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// LocalDB is the on-device fallback store: a single SQLite file holding one
// serialized collection per entity type under a well-known key, mirroring the
// mini-app's localStorage layout.
type LocalDB struct {
	mu    sync.Mutex
	sqlDB *sql.DB
}

func OpenLocal(path string) (*LocalDB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("local storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping local db: %w", err)
	}

	_, err = sqlDB.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("init local schema: %w", err)
	}

	return &LocalDB{sqlDB: sqlDB}, nil
}

func (db *LocalDB) Close() error {
	if db == nil || db.sqlDB == nil {
		return nil
	}
	return db.sqlDB.Close()
}

func (db *LocalDB) getRaw(ctx context.Context, key string) (string, error) {
	var value string
	err := db.sqlDB.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get key %q: %w", key, err)
	}
	return value, nil
}

func (db *LocalDB) putRaw(ctx context.Context, key, value string) error {
	_, err := db.sqlDB.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("put key %q: %w", key, err)
	}
	return nil
}

// record is implemented by pointers to the entity models.
type record[T any] interface {
	*T
	GetID() int64
	SetID(int64)
	GetCreatedAt() time.Time
	SetCreatedAt(time.Time)
}

// LocalStore serves one entity collection out of the LocalDB. Ids are
// client-generated from the current time in milliseconds, as the mini-app
// did with Date.now().
type LocalStore[T any, PT record[T]] struct {
	db      *LocalDB
	key     string
	prepare func(PT) // optional create-time defaults
}

func NewLocalStore[T any, PT record[T]](db *LocalDB, key string, prepare func(PT)) *LocalStore[T, PT] {
	return &LocalStore[T, PT]{db: db, key: key, prepare: prepare}
}

func (s *LocalStore[T, PT]) load(ctx context.Context) ([]T, error) {
	raw, err := s.db.getRaw(ctx, s.key)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", s.key, err)
		}
	}
	return items, nil
}

func (s *LocalStore[T, PT]) save(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", s.key, err)
	}
	return s.db.putRaw(ctx, s.key, string(data))
}

// GetAll returns the collection newest-first. Records are appended on
// create, so the stored order is reversed.
func (s *LocalStore[T, PT]) GetAll(ctx context.Context) ([]T, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

func (s *LocalStore[T, PT]) GetByID(ctx context.Context, id int64) (*T, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if PT(&items[i]).GetID() == id {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *LocalStore[T, PT]) Create(ctx context.Context, rec *T) (*T, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	id := time.Now().UnixMilli()
	for _, item := range items {
		if existing := PT(&item).GetID(); existing >= id {
			id = existing + 1
		}
	}

	p := PT(rec)
	p.SetID(id)
	p.SetCreatedAt(time.Now().UTC())
	if s.prepare != nil {
		s.prepare(p)
	}

	items = append(items, *rec)
	if err := s.save(ctx, items); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *LocalStore[T, PT]) Update(ctx context.Context, id int64, rec *T) (*T, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		existing := PT(&items[i])
		if existing.GetID() != id {
			continue
		}
		p := PT(rec)
		p.SetID(id)
		// The stored creation time survives the replacement, as it does on
		// the remote path where the UPDATE never touches created_at.
		p.SetCreatedAt(existing.GetCreatedAt())
		items[i] = *rec
		if err := s.save(ctx, items); err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	return nil, ErrNotFound
}

// Delete is a no-op success when the id is absent, matching the original
// local path.
func (s *LocalStore[T, PT]) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for i := range items {
		if PT(&items[i]).GetID() != id {
			kept = append(kept, items[i])
		}
	}
	return s.save(ctx, kept)
}
