// Package web serves the chat UI and the JSON API in front of the
// assistant pipeline.
package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brickmind/brickmind/internal/catalog"
	"github.com/brickmind/brickmind/internal/store"
)

// DefaultAddr is the address the chat server binds to unless overridden.
const DefaultAddr = ":8501"

// Answerer produces an answer for one user query; *assistant.Assistant
// satisfies it.
type Answerer interface {
	Ask(ctx context.Context, query string) (*catalog.Answer, error)
}

type Server struct {
	store    *store.Store
	asker    Answerer
	sessions *sessionStore
	log      *zap.SugaredLogger
	httpSrv  *http.Server
}

func NewServer(addr string, st *store.Store, asker Answerer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		store:    st,
		asker:    asker,
		sessions: newSessionStore(),
		log:      logger.Sugar(),
	}
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the route table. Exposed so tests can drive the server
// through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/chat/{session}/history", s.handleHistory)
	mux.HandleFunc("GET /api/sets/{id}", s.handleGetSet)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe runs the server until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("chat server listening", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Infow("shutting down chat server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string        `json:"session_id"`
	Response  string        `json:"response"`
	Sets      []catalog.Set `json:"sets"`
	Cached    bool          `json:"cached,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = s.sessions.newID()
	}

	start := time.Now()
	answer, err := s.asker.Ask(r.Context(), req.Message)
	if err != nil {
		s.log.Errorw("ask failed", "session", req.SessionID, "err", err)
		writeError(w, http.StatusInternalServerError, "assistant error")
		return
	}
	s.log.Infow("chat answered",
		"session", req.SessionID,
		"sets", len(answer.Sets),
		"cached", answer.Cached,
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)

	s.sessions.append(req.SessionID, "user", req.Message)
	s.sessions.append(req.SessionID, "assistant", answer.Response)

	sets := answer.Sets
	if sets == nil {
		sets = []catalog.Set{}
	}
	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: req.SessionID,
		Response:  answer.Response,
		Sets:      sets,
		Cached:    answer.Cached,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("session")
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"messages":   s.sessions.history(id),
	})
}

func (s *Server) handleGetSet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	set, err := s.store.GetSet(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("set %s not found", id))
			return
		}
		s.log.Errorw("get set failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, err := s.store.GetStatus()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"sets":   status.SetCount,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
