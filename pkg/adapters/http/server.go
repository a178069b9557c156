// Package http exposes a debug surface over a running capability system:
// live active set, tree visualization, tick history, and read/write access
// to the prevention block list.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jesterworks/canopy/internal/presentation/graph"
	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/ports"
	"github.com/jesterworks/canopy/pkg/tags"
)

// System defines the surface the debug server needs from a running
// capability system. Implementations must be safe for concurrent use with
// the tick loop.
type System interface {
	Active() []string
	IsEnabled(name string) bool
	Inspect() domain.NodeInfo
	Time() float64
	TickCount() uint64
	Block(reason string, blocked ...tags.Tag)
	Unblock(reason string)
	Blocks() map[string][]string
	BlockedTags() []string
}

// Server serves the debug endpoints.
type Server struct {
	system  System
	history ports.Recorder
	version string
}

// Option configures the server.
type Option func(*Server)

// WithHistory exposes a recorder under GET /history.
func WithHistory(rec ports.Recorder) Option {
	return func(s *Server) { s.history = rec }
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// NewHandler creates the HTTP handler for the system.
func NewHandler(sys System, opts ...Option) http.Handler {
	s := &Server{system: sys, version: "dev"}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/state", s.getState)
	r.Get("/capabilities/{name}", s.getCapability)
	r.Get("/graph", s.getGraph)
	r.Get("/history", s.getHistory)
	r.Get("/blocks", s.getBlocks)
	r.Post("/blocks", s.postBlock)
	r.Delete("/blocks/{reason}", s.deleteBlock)
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// GetHealth handles the GET /health request.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"app":     "canopy-debug",
		"version": s.version,
	})
}

type stateResponse struct {
	Tick   uint64   `json:"tick"`
	Time   float64  `json:"time"`
	Active []string `json:"active"`
}

// GetState handles the GET /state request.
func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stateResponse{
		Tick:   s.system.TickCount(),
		Time:   s.system.Time(),
		Active: s.system.Active(),
	})
}

// GetCapability handles the GET /capabilities/{name} request.
func (s *Server) getCapability(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	writeJSON(w, map[string]any{
		"name":    name,
		"enabled": s.system.IsEnabled(name),
	})
}

// GetGraph handles the GET /graph request. The default output is the JSON
// tree snapshot; ?format=mermaid renders a Mermaid flowchart instead.
func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	root := s.system.Inspect()
	if r.URL.Query().Get("format") == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, graph.GenerateMermaid(root))
		return
	}
	writeJSON(w, root)
}

// GetHistory handles the GET /history request.
func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "history not configured", http.StatusNotFound)
		return
	}

	limit := 32
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	snaps, err := s.history.Recent(r.Context(), limit)
	if errors.Is(err, domain.ErrNoHistory) {
		snaps = []domain.Snapshot{}
	} else if err != nil {
		http.Error(w, fmt.Sprintf("history error: %v", err), http.StatusInternalServerError)
		slog.Error("history read failed", "error", err)
		return
	}
	writeJSON(w, snaps)
}

type blocksResponse struct {
	Reasons map[string][]string `json:"reasons"`
	Blocked []string            `json:"blocked"`
}

// GetBlocks handles the GET /blocks request.
func (s *Server) getBlocks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, blocksResponse{
		Reasons: s.system.Blocks(),
		Blocked: s.system.BlockedTags(),
	})
}

type blockRequest struct {
	Reason string   `json:"reason"`
	Tags   []string `json:"tags"`
}

// PostBlock handles the POST /blocks request.
func (s *Server) postBlock(w http.ResponseWriter, r *http.Request) {
	var body blockRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("PostBlock: Invalid request body", "error", err)
		return
	}
	if body.Reason == "" {
		http.Error(w, "reason is required", http.StatusBadRequest)
		return
	}
	container, err := tags.NewContainer(body.Tags...)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid tags: %v", err), http.StatusBadRequest)
		return
	}

	s.system.Block(body.Reason, container...)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteBlock handles the DELETE /blocks/{reason} request.
func (s *Server) deleteBlock(w http.ResponseWriter, r *http.Request) {
	s.system.Unblock(chi.URLParam(r, "reason"))
	w.WriteHeader(http.StatusNoContent)
}
