// Package server exposes the stock check trigger over HTTP.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/pauljones0/garden-stock-bot/internal/models"
	"github.com/pauljones0/garden-stock-bot/internal/processor"
)

// cycleTimeout bounds one triggered cycle: fetch and send each have their own
// request timeout, plus the state store round trips.
const cycleTimeout = 2 * time.Minute

type response struct {
	Status  models.Status `json:"status,omitempty"`
	Message string        `json:"message"`
}

// Server handles trigger requests.
type Server struct {
	processor  processor.Processor
	secret     string
	production bool
}

// New returns a Server. When production is set, every trigger must carry
// "Authorization: Bearer <secret>".
func New(p processor.Processor, secret string, production bool) *Server {
	return &Server{processor: p, secret: secret, production: production}
}

// Handler returns the mux with the trigger and health routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", s.CheckStockHandler)
	mux.HandleFunc("/api/check-stock", s.CheckStockHandler)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

// CheckStockHandler runs one cycle and reports its status.
func (s *Server) CheckStockHandler(w http.ResponseWriter, r *http.Request) {
	if s.production && !s.authorized(r) {
		slog.Warn("Unauthorized trigger attempt", "remote", r.RemoteAddr)
		writeJSON(w, http.StatusUnauthorized, response{Message: "Unauthorized"})
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, response{Message: "Method Not Allowed"})
		return
	}

	// A client hanging up must not abort a cycle mid-send or before its state write.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), cycleTimeout)
	defer cancel()

	status, err := s.processor.CheckStock(ctx)
	if err != nil {
		slog.Error("Stock check failed", "status", status, "error", err)
	}
	code := http.StatusOK
	if !status.OK() {
		code = http.StatusInternalServerError
	}
	writeJSON(w, code, response{Status: status, Message: status.Message()})
}

func (s *Server) authorized(r *http.Request) bool {
	if s.secret == "" {
		return false
	}
	want := "Bearer " + s.secret
	got := r.Header.Get("Authorization")
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}
