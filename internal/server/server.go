package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sales-agent/internal/agent"
	"sales-agent/internal/catalog"
)

// Refresher exposes the catalog for listing and out-of-band refresh.
type Refresher interface {
	RefreshAll(ctx context.Context) *catalog.Snapshot
	Snapshot() *catalog.Snapshot
}

// Server is the inbound HTTP boundary. The webhook always answers 200
// with a JSON status so the chat platform never retries on our internal
// failures.
type Server struct {
	httpServer *http.Server
	agent      *agent.SalesAgent
	refresher  Refresher
}

func New(port string, salesAgent *agent.SalesAgent, refresher Refresher) *Server {
	s := &Server{agent: salesAgent, refresher: refresher}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/webhook", s.handleWebhook)
	r.Post("/refresh-products", s.handleRefresh)
	r.Get("/products", s.handleProducts)

	s.httpServer = &http.Server{Addr: ":" + port, Handler: r}
	return s
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"message": "Sales agent active",
		"status":  s.agent.Status(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.agent.Status()
	health := "healthy"
	if !st.Running {
		health = "unhealthy"
	}
	writeJSON(w, map[string]any{
		"status":  health,
		"details": st,
	})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		log.Printf("webhook: bad payload: %v", err)
		writeJSON(w, map[string]string{"status": "error", "message": "invalid payload"})
		return
	}

	// The raw payload may or may not be wrapped in a "body" envelope;
	// the normalizer handles both.
	if s.agent.HandleInbound(r.Context(), raw) {
		writeJSON(w, map[string]string{"status": "success", "message": "message processed"})
		return
	}
	writeJSON(w, map[string]string{"status": "ignored", "message": "message not processed"})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snap := s.refresher.RefreshAll(r.Context())
	writeJSON(w, map[string]any{
		"status": "success",
		"total":  snap.Total(),
	})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	all := s.refresher.Snapshot().Flatten()
	writeJSON(w, map[string]any{
		"total":    len(all),
		"products": all,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
