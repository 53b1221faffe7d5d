// Package api provides HTTP API handlers for poseplay.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/poseplay/internal/store"
)

// MaxLimit caps the number of sessions a single request may return.
const MaxLimit = 100

// ScoresHandler serves the stored high scores.
type ScoresHandler struct {
	store *store.Store
}

// NewScoresHandler creates a new ScoresHandler with the given store.
func NewScoresHandler(s *store.Store) *ScoresHandler {
	return &ScoresHandler{store: s}
}

// ServeHTTP routes /api/scores and /api/scores/{id}.
func (h *ScoresHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/api/scores"), "/")
	if id == "" {
		h.list(w, r)
		return
	}
	h.get(w, r, id)
}

type sessionResponse struct {
	ID         string `json:"id"`
	Score      int    `json:"score"`
	Jumps      int    `json:"jumps"`
	DurationMS int64  `json:"duration_ms"`
	StartedAt  string `json:"started_at"`
	EndedAt    string `json:"ended_at"`
}

type listScoresResponse struct {
	Scores []sessionResponse `json:"scores"`
	Best   int               `json:"best"`
	Total  int               `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(s *store.Session) sessionResponse {
	return sessionResponse{
		ID:         s.ID,
		Score:      s.Score,
		Jumps:      s.Jumps,
		DurationMS: s.Duration.Milliseconds(),
		StartedAt:  s.StartedAt.Format(time.RFC3339),
		EndedAt:    s.EndedAt.Format(time.RFC3339),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/scores?limit=N.
func (h *ScoresHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxLimit)
	}

	repo := h.store.Sessions()
	sessions, err := repo.Top(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scores")
		return
	}
	best, err := repo.Best()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read best score")
		return
	}
	total, err := repo.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count sessions")
		return
	}

	response := listScoresResponse{
		Scores: make([]sessionResponse, 0, len(sessions)),
		Best:   best,
		Total:  total,
	}
	for _, s := range sessions {
		response.Scores = append(response.Scores, toResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/scores/{id}.
func (h *ScoresHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	session, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(session))
}
