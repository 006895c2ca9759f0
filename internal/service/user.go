package service

import (
	"context"
	"database/sql"
	"fmt"

	"logitrack/internal/model"
)

type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetOrCreate upserts the user identified by telegramID. Name fields are
// refreshed on every call, so whatever Telegram reports last wins.
func (s *UserService) GetOrCreate(ctx context.Context, telegramID, username, firstName, lastName string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (telegram_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username, first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name
		RETURNING id, telegram_id, username, first_name, last_name, created_at
	`, telegramID, username, firstName, lastName)

	var u model.User
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	return &u, nil
}
