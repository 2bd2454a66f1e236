package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/anmawex/dashboard-challenge/pkg/errors"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	return true, nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

// guardedRouter mounts the middleware the way the API router does: on a
// route group, where chi has not resolved the leaf route at middleware time.
func guardedRouter(store *fakeStore, handler http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Idempotency(store, 0, nil))
		r.Get("/products", handler)
		r.Post("/products", handler)
		r.Put("/products/{id}", handler)
	})
	return r
}

func TestRouteRequiresIdempotency(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   bool
	}{
		{"create product", http.MethodPost, "/api/v1/products", true},
		{"update product", http.MethodPut, "/api/v1/products/42", true},
		{"list products", http.MethodGet, "/api/v1/products", false},
		{"refresh", http.MethodPost, "/api/v1/refresh", false},
	}

	for _, tt := range tests {
		if got := routeRequiresIdempotency(tt.method, tt.path); got != tt.want {
			t.Fatalf("%s: expected %v got %v", tt.name, tt.want, got)
		}
	}
}

func TestIdempotencyGuardsWritesMountedOnRouteGroup(t *testing.T) {
	store := newFakeStore()
	var calls int
	router := guardedRouter(store, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	t.Run("create without key is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"title":"Mug"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
		if calls != 0 {
			t.Fatalf("handler must not run without an idempotency key")
		}
	})

	t.Run("update without key is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/products/7", strings.NewReader(`{"title":"Mug"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
	})

	t.Run("retry replays the stored response", func(t *testing.T) {
		first := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"title":"Mug"}`))
		first.Header.Set("Idempotency-Key", "abc")
		firstRec := httptest.NewRecorder()
		router.ServeHTTP(firstRec, first)
		if firstRec.Code != http.StatusCreated {
			t.Fatalf("expected first response 201 got %d", firstRec.Code)
		}

		replay := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"title":"Mug"}`))
		replay.Header.Set("Idempotency-Key", "abc")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, replay)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected replay status 201 got %d", rec.Code)
		}
		if rec.Header().Get("Content-Type") != "application/json" {
			t.Fatalf("expected content-type header preserved")
		}
		if strings.TrimSpace(rec.Body.String()) != `{"ok":true}` {
			t.Fatalf("expected stored body got %s", rec.Body.String())
		}
		if calls != 1 {
			t.Fatalf("handler executed %d times, expected 1", calls)
		}
	})

	t.Run("reads pass through untouched", func(t *testing.T) {
		before := calls
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected handler response got %d", rec.Code)
		}
		if calls != before+1 {
			t.Fatalf("handler should run for non-idempotent routes")
		}
	})
}

func TestIdempotencyMiddlewareDetectsBodyChange(t *testing.T) {
	store := newFakeStore()
	router := guardedRouter(store, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"title":"Mug"}`))
	req.Header.Set("Idempotency-Key", "xyz")
	router.ServeHTTP(httptest.NewRecorder(), req)

	replay := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"title":"Glass"}`))
	replay.Header.Set("Idempotency-Key", "xyz")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, replay)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeIdempotency) {
		t.Fatalf("expected error code %s got %s", pkgerrors.CodeIdempotency, payload.Error.Code)
	}
}

func TestIdempotencySkipsWhenStoreMissing(t *testing.T) {
	var calls int
	mw := Idempotency(nil, 0, nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"title":"Mug"}`))
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated || calls != 1 {
		t.Fatalf("middleware must pass through without a store, got %d (calls=%d)", rec.Code, calls)
	}
}
