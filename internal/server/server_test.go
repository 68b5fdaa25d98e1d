package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pauljones0/garden-stock-bot/internal/catalog"
	"github.com/pauljones0/garden-stock-bot/internal/models"
	"github.com/pauljones0/garden-stock-bot/internal/notifier"
	"github.com/pauljones0/garden-stock-bot/internal/processor"
	"github.com/pauljones0/garden-stock-bot/internal/scraper"
	"github.com/pauljones0/garden-stock-bot/internal/storage"
)

type mockProcessor struct {
	status models.Status
	err    error
	calls  int
}

func (m *mockProcessor) CheckStock(context.Context) (models.Status, error) {
	m.calls++
	return m.status, m.err
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

func TestCheckStockHandler_Statuses(t *testing.T) {
	tests := []struct {
		name     string
		status   models.Status
		err      error
		wantCode int
	}{
		{"unchanged", models.StatusUnchanged, nil, http.StatusOK},
		{"notified", models.StatusNotified, nil, http.StatusOK},
		{"fetch failed", models.StatusFailedFetch, errors.New("timeout"), http.StatusInternalServerError},
		{"send failed", models.StatusFailedSend, errors.New("429"), http.StatusInternalServerError},
		{"error", models.StatusError, errors.New("panic"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mockProcessor{status: tt.status, err: tt.err}
			srv := New(p, "", false)

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/check-stock", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("Expected code %d, got %d", tt.wantCode, rec.Code)
			}
			resp := decode(t, rec)
			if resp.Status != tt.status {
				t.Errorf("Expected status %s, got %s", tt.status, resp.Status)
			}
			if resp.Message == "" {
				t.Error("Expected a message")
			}
		})
	}
}

func TestCheckStockHandler_MethodNotAllowed(t *testing.T) {
	p := &mockProcessor{status: models.StatusUnchanged}
	srv := New(p, "", false)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
	if p.calls != 0 {
		t.Errorf("Expected no stock check, got %d", p.calls)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Expected Allow header, got %q", allow)
	}
}

func TestCheckStockHandler_Auth(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		secret     string
		header     string
		method     string
		wantCode   int
	}{
		{"dev skips auth", false, "s3cret", "", http.MethodGet, http.StatusOK},
		{"prod valid bearer", true, "s3cret", "Bearer s3cret", http.MethodGet, http.StatusOK},
		{"prod missing header", true, "s3cret", "", http.MethodGet, http.StatusUnauthorized},
		{"prod wrong secret", true, "s3cret", "Bearer nope", http.MethodGet, http.StatusUnauthorized},
		{"prod raw secret", true, "s3cret", "s3cret", http.MethodGet, http.StatusUnauthorized},
		{"prod unset secret", true, "", "Bearer ", http.MethodGet, http.StatusUnauthorized},
		{"auth before method check", true, "s3cret", "", http.MethodPut, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mockProcessor{status: models.StatusUnchanged}
			srv := New(p, tt.secret, tt.production)

			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("Expected code %d, got %d", tt.wantCode, rec.Code)
			}
			if tt.wantCode == http.StatusUnauthorized && p.calls != 0 {
				t.Error("Expected no stock check for an unauthorized request")
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv := New(&mockProcessor{}, "", true)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}
}

func TestHandler_UnknownPathsDoNotTriggerCheck(t *testing.T) {
	p := &mockProcessor{status: models.StatusNotified}
	srv := New(p, "", false)

	for _, path := range []string{"/favicon.ico", "/robots.txt", "/api/check-stock/extra"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, rec.Code)
		}
	}
	if p.calls != 0 {
		t.Errorf("Expected no stock checks, got %d", p.calls)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || p.calls != 1 {
		t.Errorf("GET /: expected 200 and one check, got %d and %d", rec.Code, p.calls)
	}
}

type staticFetcher []string

func (f staticFetcher) FetchFragments(context.Context) ([]string, error) {
	return f, nil
}

// hangupNotifier simulates the trigger client disconnecting while the webhook
// is being delivered.
type hangupNotifier struct {
	hangup func()
	sends  int
}

func (n *hangupNotifier) Send(ctx context.Context, _ notifier.Payload) error {
	n.sends++
	if n.hangup != nil {
		n.hangup()
	}
	return ctx.Err()
}

func TestCheckStockHandler_ClientDisconnectStillSavesSnapshot(t *testing.T) {
	ctx := context.Background()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	store, err := storage.NewSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	defer store.Close()

	notif := &hangupNotifier{}
	p := processor.New(
		staticFetcher{"Carrot", "x5", "Trowel", "x2"},
		scraper.NewParser(cat),
		notifier.NewRenderer(cat, nil),
		notif,
		store,
		"garden",
	)
	handler := New(p, "", false).Handler()

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	notif.hangup = cancel

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/check-stock", nil).WithContext(reqCtx))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp.Status != models.StatusNotified {
		t.Fatalf("Expected %s, got %s", models.StatusNotified, resp.Status)
	}

	saved, err := store.GetSnapshot(ctx, "garden")
	if err != nil {
		t.Fatalf("GetSnapshot() error = %v", err)
	}
	if saved == nil || saved.Seeds["Carrot"] != 5 || saved.Gear["Trowel"] != 2 {
		t.Fatalf("Expected the sent snapshot to be saved, got %+v", saved)
	}

	// The next trigger sees the same stock and must not announce it again.
	notif.hangup = nil
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/check-stock", nil))
	if resp := decode(t, rec); resp.Status != models.StatusUnchanged {
		t.Errorf("Expected %s, got %s", models.StatusUnchanged, resp.Status)
	}
	if notif.sends != 1 {
		t.Errorf("Expected 1 send, got %d", notif.sends)
	}
}
