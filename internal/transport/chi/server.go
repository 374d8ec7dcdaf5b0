// Package chi implements the HTTP transport for the roundsearch API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/teepals/roundsearch/internal/domain"
	healthuc "github.com/teepals/roundsearch/internal/usecase/health"
	rounduc "github.com/teepals/roundsearch/internal/usecase/round"
	searchuc "github.com/teepals/roundsearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server hosts the HTTP handlers for search and round management.
type Server struct {
	search        *searchuc.Service
	rounds        *rounduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	rounds *rounduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		rounds: rounds,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		filterErrorHandler,
		sentinelHandler(domain.ErrInvalidCursor, http.StatusBadRequest, codeInvalidCursor),
		sentinelHandler(domain.ErrInvalidRound, http.StatusBadRequest, codeInvalidRound),
		sentinelHandler(domain.ErrRoundNotFound, http.StatusNotFound, codeRoundNotFound),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Route("/rounds", func(r chi.Router) {
			r.Post("/", s.CreateRound)
			r.Put("/{id}", s.UpdateRound)
			r.Get("/{id}", s.GetRound)
			r.Delete("/{id}", s.DeleteRound)
		})
	})
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	f, cur, err := req.toDomain()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	p, err := s.search.Search(r.Context(), f, cur)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseFromPage(&p))
}

// CreateRound handles POST /v1/rounds.
func (s *Server) CreateRound(w http.ResponseWriter, r *http.Request) {
	var req roundPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rd, err := s.rounds.Create(r.Context(), req.toDraft())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, roundResponseFrom(&rd, nil))
}

// UpdateRound handles PUT /v1/rounds/{id}.
func (s *Server) UpdateRound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req roundPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rd, err := s.rounds.Update(r.Context(), id, req.toDraft())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, roundResponseFrom(&rd, nil))
}

// GetRound handles GET /v1/rounds/{id}.
func (s *Server) GetRound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rd, err := s.rounds.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, roundResponseFrom(&rd, nil))
}

// DeleteRound handles DELETE /v1/rounds/{id}.
func (s *Server) DeleteRound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.rounds.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidFilter,
		domain.ErrInvalidCursor,
		domain.ErrInvalidRound,
		domain.ErrRoundNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// filterErrorHandler handles ErrInvalidFilter, surfacing the offending field.
func filterErrorHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidFilter) {
		return false
	}
	var fe *domain.FilterError
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":    codeInvalidFilter,
			"message": msg,
			"field":   fe.Field,
			"reason":  fe.Reason,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, codeInvalidFilter, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
