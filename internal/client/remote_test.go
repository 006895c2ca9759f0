package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"logitrack/internal/model"
)

func TestClientForwardsIdentityHeaders(t *testing.T) {
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/api", Identity{
		TelegramID: "777",
		Username:   "ivan",
		FirstName:  "Иван",
		LastName:   "Иванов",
	})
	store := NewRemoteStore[model.Recipient](c, "/recipients")

	if _, err := store.GetAll(context.Background()); err != nil {
		t.Fatalf("get all: %v", err)
	}

	if got.Get("X-Telegram-Id") != "777" {
		t.Errorf("X-Telegram-Id = %q, want %q", got.Get("X-Telegram-Id"), "777")
	}
	if got.Get("X-Telegram-Username") != "ivan" {
		t.Errorf("X-Telegram-Username = %q, want %q", got.Get("X-Telegram-Username"), "ivan")
	}
	// Non-ASCII names are percent-encoded so they survive the header.
	if got.Get("X-Telegram-First-Name") != "%D0%98%D0%B2%D0%B0%D0%BD" {
		t.Errorf("X-Telegram-First-Name = %q, want percent-encoded value", got.Get("X-Telegram-First-Name"))
	}
}

func TestClientHealthOmitsIdentityHeaders(t *testing.T) {
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/api", Identity{TelegramID: "777"})
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
	if got.Get("X-Telegram-Id") != "" {
		t.Errorf("health must not carry identity, got X-Telegram-Id = %q", got.Get("X-Telegram-Id"))
	}
}

func TestRemoteStoreCreateRoundTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/recipients" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var in model.Recipient
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode body: %v", err)
		}
		in.ID = 5
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(in)
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/api", Identity{TelegramID: "1"})
	store := NewRemoteStore[model.Recipient](c, "/recipients")

	created, err := store.Create(context.Background(), &model.Recipient{Name: "Пётр"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 5 || created.Name != "Пётр" {
		t.Errorf("created = %+v, want id 5 and original name", created)
	}
}

func TestRemoteStoreNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"recipient not found"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/api", Identity{TelegramID: "1"})
	store := NewRemoteStore[model.Recipient](c, "/recipients")

	_, err := store.GetByID(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRemoteOrderStoreDeleteMany(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var in struct {
			IDs []int64 `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(in.IDs) != 2 {
			t.Errorf("ids = %v, want 2 entries", in.IDs)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"deleted":2}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/api", Identity{TelegramID: "1"})
	store := NewRemoteOrderStore(c)

	deleted, err := store.DeleteMany(context.Background(), []int64{3, 4})
	if err != nil {
		t.Fatalf("delete many: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
}
