package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"logitrack/internal/model"
)

// fakeAPI is a minimal in-memory rendition of the recipients resource, with a
// switch to start failing on demand.
type fakeAPI struct {
	fail   atomic.Bool
	nextID atomic.Int64
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{}
	api.nextID.Store(1)

	recipients := map[int64]model.Recipient{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		if api.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/api/recipients", func(w http.ResponseWriter, r *http.Request) {
		if api.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"internal server error"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			all := []model.Recipient{}
			for _, rec := range recipients {
				all = append(all, rec)
			}
			json.NewEncoder(w).Encode(all)
		case http.MethodPost:
			var rec model.Recipient
			json.NewDecoder(r.Body).Decode(&rec)
			rec.ID = api.nextID.Add(1)
			recipients[rec.ID] = rec
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(rec)
		}
	})
	mux.HandleFunc("GET /api/recipients/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"recipient not found"}`))
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return api, ts
}

func newFallbackFixture(t *testing.T) (*fakeAPI, *FallbackStore[model.Recipient], *LocalStore[model.Recipient, *model.Recipient], *Prober) {
	t.Helper()
	api, ts := newFakeAPI(t)

	c := NewClient(ts.URL+"/api", Identity{TelegramID: "1"})
	prober := NewProber(c.Health)
	local := NewLocalStore[model.Recipient](newTestLocalDB(t), keyRecipients, nil)
	store := NewFallbackStore[model.Recipient](NewRemoteStore[model.Recipient](c, "/recipients"), local, prober)
	return api, store, local, prober
}

func TestFallbackUsesRemoteWhileHealthy(t *testing.T) {
	_, store, local, prober := newFallbackFixture(t)
	ctx := context.Background()

	created, err := store.Create(ctx, &model.Recipient{Name: "Анна"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected server-assigned id")
	}
	if prober.State() != StateAvailable {
		t.Errorf("state = %v, want StateAvailable", prober.State())
	}

	// The local store must stay untouched on the remote path.
	localItems, err := local.GetAll(ctx)
	if err != nil {
		t.Fatalf("local get all: %v", err)
	}
	if len(localItems) != 0 {
		t.Errorf("local items = %d, want 0", len(localItems))
	}
}

func TestFallbackDegradesOnRemoteFailure(t *testing.T) {
	api, store, local, prober := newFallbackFixture(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, &model.Recipient{Name: "до сбоя"}); err != nil {
		t.Fatalf("create while healthy: %v", err)
	}

	api.fail.Store(true)
	created, err := store.Create(ctx, &model.Recipient{Name: "после сбоя"})
	if err != nil {
		t.Fatalf("create should fall back to local, got: %v", err)
	}
	if prober.State() != StateUnavailable {
		t.Fatalf("state = %v, want StateUnavailable", prober.State())
	}

	localItems, err := local.GetAll(ctx)
	if err != nil {
		t.Fatalf("local get all: %v", err)
	}
	if len(localItems) != 1 || localItems[0].ID != created.ID {
		t.Fatalf("expected the failed create to land locally, got %+v", localItems)
	}

	// The backend recovering must not bring the remote path back.
	api.fail.Store(false)
	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all after recovery: %v", err)
	}
	if len(all) != 1 || all[0].Name != "после сбоя" {
		t.Errorf("expected local records only, got %+v", all)
	}
}

func TestFallbackRemoteNotFoundAlsoDegrades(t *testing.T) {
	_, store, _, prober := newFallbackFixture(t)
	ctx := context.Background()

	// A remote 404 is an error like any other: it latches the prober and the
	// lookup is re-run locally, where the id is also absent.
	_, err := store.GetByID(ctx, 12345)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if prober.State() != StateUnavailable {
		t.Errorf("state = %v, want StateUnavailable after remote 404", prober.State())
	}
}

func TestFallbackSkipsRemoteWhenProbeFails(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", Identity{TelegramID: "1"})
	prober := NewProber(c.Health)
	local := NewLocalStore[model.Recipient](newTestLocalDB(t), keyRecipients, nil)
	store := NewFallbackStore[model.Recipient](NewRemoteStore[model.Recipient](c, "/recipients"), local, prober)

	created, err := store.Create(context.Background(), &model.Recipient{Name: "офлайн"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected locally generated id")
	}
	if prober.State() != StateUnavailable {
		t.Errorf("state = %v, want StateUnavailable", prober.State())
	}
}

func TestGatewayStoresShareOneProber(t *testing.T) {
	api, ts := newFakeAPI(t)

	c := NewClient(ts.URL+"/api", Identity{TelegramID: "1"})
	prober := NewProber(c.Health)
	g := NewGateway(c, newTestLocalDB(t), prober)
	ctx := context.Background()

	if _, err := g.Recipients.GetAll(ctx); err != nil {
		t.Fatalf("recipients get all: %v", err)
	}

	// A failure observed on one entity degrades the whole gateway.
	api.fail.Store(true)
	if _, err := g.Recipients.GetAll(ctx); err != nil {
		t.Fatalf("recipients get all after failure: %v", err)
	}
	api.fail.Store(false)

	orders, err := g.Orders.GetAll(ctx)
	if err != nil {
		t.Fatalf("orders get all: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("orders = %d, want 0 from the empty local store", len(orders))
	}
	if prober.State() != StateUnavailable {
		t.Errorf("state = %v, want StateUnavailable", prober.State())
	}
}
