// Package httpapi serves catalogue lookups over a small JSON REST API.
// It is the backend shape the REST item source consumes, so one storedesk
// can serve another.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/storedesk/storedesk-cli/internal/core/ports/driving"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

const (
	// RequestIDHeader carries the per-request identifier.
	RequestIDHeader = "X-Request-ID"

	requestTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
)

// Server exposes the lookup and catalogue services over HTTP.
type Server struct {
	lookup    driving.LookupService
	catalogue driving.CatalogueService
	mux       *http.ServeMux
}

// NewServer creates a REST API server.
func NewServer(lookup driving.LookupService, catalogue driving.CatalogueService) (*Server, error) {
	if lookup == nil {
		return nil, ErrMissingLookupService
	}
	if catalogue == nil {
		return nil, ErrMissingCatalogueService
	}

	s := &Server{
		lookup:    lookup,
		catalogue: catalogue,
		mux:       http.NewServeMux(),
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/kinds", withTimeout(s.handleKinds))
	s.mux.HandleFunc("GET /api/{kind}", withTimeout(s.handleList))
	s.mux.HandleFunc("POST /api/{kind}", withTimeout(maxBodySize(s.handleCreate)))
	s.mux.HandleFunc("GET /api/{kind}/{id}", withTimeout(s.handleGet))
	s.mux.HandleFunc("DELETE /api/{kind}/{id}", withTimeout(s.handleDelete))
}

// Handler returns the root handler with request IDs and logging applied.
func (s *Server) Handler() http.Handler {
	return withRequestID(withLogging(s.mux))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("httpapi: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type requestIDKey struct{}

// RequestID returns the request identifier stored in ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// withRequestID tags every request and response with an identifier,
// reusing the caller's when one is sent.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("httpapi: %s %s %d %s (%s)",
			r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond), RequestID(r.Context()))
	})
}

func withTimeout(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}

func maxBodySize(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("httpapi: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, APIError{Code: code, Message: message})
}
