package model

import "time"

// User is created on the first request carrying a Telegram identity and
// refreshed (name fields only) on every subsequent one.
type User struct {
	ID         int64     `json:"id"`
	TelegramID string    `json:"telegram_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	CreatedAt  time.Time `json:"created_at"`
}
