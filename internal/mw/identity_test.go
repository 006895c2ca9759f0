package mw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"logitrack/internal/model"
)

type stubUpserter struct {
	gotTelegramID string
	gotUsername   string
	gotFirstName  string
	gotLastName   string
	err           error
}

func (s *stubUpserter) GetOrCreate(ctx context.Context, telegramID, username, firstName, lastName string) (*model.User, error) {
	s.gotTelegramID = telegramID
	s.gotUsername = username
	s.gotFirstName = firstName
	s.gotLastName = lastName
	if s.err != nil {
		return nil, s.err
	}
	return &model.User{ID: 10, TelegramID: telegramID, Username: username}, nil
}

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain ascii", "ivan", "ivan"},
		{"encoded cyrillic", "%D0%98%D0%B2%D0%B0%D0%BD", "Иван"},
		{"undecodable passes through", "100%", "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeHeader(tt.input); got != tt.want {
				t.Errorf("DecodeHeader(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIdentityResolvesUserIntoContext(t *testing.T) {
	upserter := &stubUpserter{}

	var gotUser *model.User
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotOK = UserFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("X-Telegram-Id", "555")
	req.Header.Set("X-Telegram-Username", "petya")
	req.Header.Set("X-Telegram-First-Name", "%D0%9F%D1%91%D1%82%D1%80")
	rec := httptest.NewRecorder()

	Identity(upserter)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !gotOK || gotUser == nil {
		t.Fatal("expected user in request context")
	}
	if upserter.gotTelegramID != "555" {
		t.Errorf("telegram id = %q, want %q", upserter.gotTelegramID, "555")
	}
	if upserter.gotFirstName != "Пётр" {
		t.Errorf("first name = %q, want decoded %q", upserter.gotFirstName, "Пётр")
	}
}

func TestIdentityDefaultsTelegramID(t *testing.T) {
	upserter := &stubUpserter{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()

	Identity(upserter)(next).ServeHTTP(rec, req)

	if upserter.gotTelegramID != "1" {
		t.Errorf("telegram id = %q, want default %q", upserter.gotTelegramID, "1")
	}
}

func TestIdentityUpsertFailure(t *testing.T) {
	upserter := &stubUpserter{err: errors.New("db down")}
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()

	Identity(upserter)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if nextCalled {
		t.Error("next handler must not run when the upsert fails")
	}
}

func TestUserFromMissing(t *testing.T) {
	if _, ok := UserFrom(context.Background()); ok {
		t.Error("expected no user in empty context")
	}
}
