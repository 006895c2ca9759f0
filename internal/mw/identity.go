package mw

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"logitrack/internal/model"
)

type contextKey string

const UserCtxKey contextKey = "user"

// UserUpserter is satisfied by service.UserService.
type UserUpserter interface {
	GetOrCreate(ctx context.Context, telegramID, username, firstName, lastName string) (*model.User, error)
}

// DecodeHeader undoes the encodeURIComponent the mini-app applies to
// non-ASCII header values. Undecodable input passes through untouched.
func DecodeHeader(value string) string {
	if value == "" {
		return ""
	}
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return value
	}
	return decoded
}

// Identity resolves the caller from the X-Telegram-* headers and upserts the
// user row on every request. The headers carry no signature: any caller can
// claim any identity. Kept for wire compatibility with the mini-app.
func Identity(users UserUpserter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			telegramID := r.Header.Get("X-Telegram-Id")
			if telegramID == "" {
				telegramID = "1"
			}
			username := DecodeHeader(r.Header.Get("X-Telegram-Username"))
			firstName := DecodeHeader(r.Header.Get("X-Telegram-First-Name"))
			lastName := DecodeHeader(r.Header.Get("X-Telegram-Last-Name"))

			user, err := users.GetOrCreate(r.Context(), telegramID, username, firstName, lastName)
			if err != nil {
				slog.Error("user upsert failed", "telegram_id", telegramID, "error", err)
				http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the identity placed in the context by Identity.
func UserFrom(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*model.User)
	return user, ok
}
