// Package server provides the HTTP editing surface for RFP documents.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/assist"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/llm"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/server/ratelimit"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultAssistTimeout bounds one background draft
const DefaultAssistTimeout = 2 * time.Minute

// Printer converts rendered HTML into a PDF
type Printer interface {
	Print(ctx context.Context, html string) ([]byte, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	store          *Store
	generator      llm.Generator
	assistant      *assist.Assistant
	printer        Printer
	rateLimiter    *ratelimit.Limiter
	allowedOrigins []string
	maxUploadBytes int64
	assistTimeout  time.Duration
	drafts         sync.WaitGroup
}

// Config holds server configuration
type Config struct {
	Port           int
	AllowedOrigins []string // empty allows any origin
	MaxUploadBytes int64
	AssistTimeout  time.Duration
	RateLimit      *ratelimit.Config // nil loads the RATE_LIMIT_* environment
}

// New creates a new server instance
func New(cfg Config, gen llm.Generator, printer Printer) *Server {
	if cfg.AssistTimeout <= 0 {
		cfg.AssistTimeout = DefaultAssistTimeout
	}
	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		store:          NewStore(),
		generator:      gen,
		assistant:      assist.New(gen),
		printer:        printer,
		rateLimiter:    ratelimit.NewLimiter(rateConfig),
		allowedOrigins: cfg.AllowedOrigins,
		maxUploadBytes: cfg.MaxUploadBytes,
		assistTimeout:  cfg.AssistTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Documents
	mux.HandleFunc("GET /documents", s.handleListDocuments)
	mux.HandleFunc("POST /documents", s.handleCreateDocument)
	mux.HandleFunc("GET /documents/{id}", s.handleGetDocument)
	mux.HandleFunc("PUT /documents/{id}", s.handleReplaceDocument)
	mux.HandleFunc("DELETE /documents/{id}", s.handleDeleteDocument)
	mux.HandleFunc("PATCH /documents/{id}/fields", s.handleUpdateField)

	// Editable rows
	mux.HandleFunc("POST /documents/{id}/abbreviations", s.handleAddAbbreviation)
	mux.HandleFunc("PATCH /documents/{id}/abbreviations/{row_id}", s.handleUpdateAbbreviation)
	mux.HandleFunc("DELETE /documents/{id}/abbreviations/{row_id}", s.handleRemoveAbbreviation)
	mux.HandleFunc("POST /documents/{id}/feedstocks", s.handleAddFeedstock)
	mux.HandleFunc("PATCH /documents/{id}/feedstocks/{row_id}", s.handleUpdateFeedstock)
	mux.HandleFunc("DELETE /documents/{id}/feedstocks/{row_id}", s.handleRemoveFeedstock)
	mux.HandleFunc("POST /documents/{id}/utilities", s.handleAddUtility)
	mux.HandleFunc("PATCH /documents/{id}/utilities/{row_id}", s.handleUpdateUtility)
	mux.HandleFunc("DELETE /documents/{id}/utilities/{row_id}", s.handleRemoveUtility)

	// Selections
	mux.HandleFunc("PATCH /documents/{id}/deliverables", s.handleSetDeliverable)
	mux.HandleFunc("PATCH /documents/{id}/commercial-terms", s.handleSetCommercialTerm)

	// Block flow diagram
	mux.HandleFunc("PUT /documents/{id}/diagram", s.handleUploadDiagram)
	mux.HandleFunc("DELETE /documents/{id}/diagram", s.handleRemoveDiagram)

	// AI assist
	mux.HandleFunc("POST /documents/{id}/assist/{section}", s.handleStartAssist)
	mux.HandleFunc("GET /documents/{id}/assist/{section}", s.handleGetAssist)
	mux.HandleFunc("GET /documents/{id}/assist/{section}/events", s.handleStreamAssist)

	// Views
	mux.HandleFunc("GET /documents/{id}/preview", s.handlePreview)
	mux.HandleFunc("GET /documents/{id}/word", s.handleWordCopy)
	mux.HandleFunc("GET /documents/{id}/preview.pdf", s.handlePreviewPDF)

	s.handler = middleware.RequestID(middleware.Recoverer(
		s.withLogging(s.withCORS(s.withRateLimit(mux))),
	))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF printing starts a browser
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Store returns the document store
func (s *Server) Store() *Store {
	return s.store
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops accepting requests and waits for running drafts
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	done := make(chan struct{})
	go func() {
		s.drafts.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		log.Println("Shutdown timed out waiting for assist drafts")
	}

	s.rateLimiter.Stop()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := "*"
		if len(s.allowedOrigins) > 0 {
			origin = ""
			if reqOrigin := r.Header.Get("Origin"); slices.Contains(s.allowedOrigins, reqOrigin) {
				origin = reqOrigin
				w.Header().Add("Vary", "Origin")
			}
		}
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Retry-After, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := middleware.GetReqID(r.Context())
		log.Printf("[%s] %s %s (%s)", r.Method, r.URL.Path, r.RemoteAddr, reqID)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v (%s)", r.Method, r.URL.Path, time.Since(start), reqID)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	assistStatus := "ready"
	if checker, ok := s.generator.(interface{ Err() error }); ok && checker.Err() != nil {
		assistStatus = "not_configured"
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "assist": assistStatus})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure writes err with the status HTTPStatus assigns to it
func (s *Server) failure(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		message = "internal server error"
	}
	s.errorResponse(w, status, message)
}

// extractClientID extracts the client identifier from the request.
// Uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
