package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/veritaslab/veritas/internal/model"
)

const (
	minClaimLength = 5
	maxClaimLength = 1000

	defaultHistoryLimit = 50
	historySummaryLen   = 200
)

// checkRequest is the body for POST /check
type checkRequest struct {
	Claim     string `json:"claim"`
	SessionID string `json:"session_id,omitempty"`
}

// historyEntry is the trimmed record shape returned by GET /history
type historyEntry struct {
	ID              int64         `json:"id"`
	Claim           string        `json:"claim"`
	Verdict         model.Verdict `json:"verdict"`
	ConfidenceScore float64       `json:"confidence_score"`
	Explanation     string        `json:"explanation"`
	Timestamp       string        `json:"timestamp"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"message":   "Fact Checker API is running!",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": map[string]string{
			"store":    "initialized",
			"pipeline": "available",
		},
	})
}

// handleCheck verifies one claim. Backend failures never surface as
// HTTP errors: the pipeline degrades to a fallback verdict, so the only
// client errors here are validation ones.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claim := strings.TrimSpace(req.Claim)
	length := utf8.RuneCountInString(claim)
	if length < minClaimLength {
		s.respondError(w, http.StatusBadRequest, "claim must be at least 5 characters")
		return
	}
	if length > maxClaimLength {
		s.respondError(w, http.StatusBadRequest, "claim must be at most 1000 characters")
		return
	}

	rec, err := s.checker.Check(r.Context(), claim, req.SessionID)
	if err != nil && rec == nil {
		s.logger.Error("check failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to process claim")
		return
	}
	if err != nil {
		// Record produced but persistence failed; still return the verdict
		s.logger.Warn("record not persisted", zap.Error(err))
	}

	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultHistoryLimit)
	offset := queryInt(r, "offset", 0)

	records, err := s.store.List(r.Context(), limit, offset)
	if err != nil {
		s.logger.Error("history query failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to retrieve history")
		return
	}

	entries := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		explanation := rec.Explanation
		// Slice on runes; explanations carry multibyte bullets
		if runes := []rune(explanation); len(runes) > historySummaryLen {
			explanation = string(runes[:historySummaryLen]) + "..."
		}
		entries = append(entries, historyEntry{
			ID:              rec.ID,
			Claim:           rec.Claim,
			Verdict:         rec.Verdict,
			ConfidenceScore: rec.ConfidenceScore,
			Explanation:     explanation,
			Timestamp:       rec.Timestamp,
		})
	}
	s.respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.logger.Error("history clear failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.logger.Error("stats query failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to retrieve stats")
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"detail": message})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
