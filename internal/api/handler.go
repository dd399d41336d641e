// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JAGATH123/ai-student-partner/internal/domain/questionbank"
	"github.com/JAGATH123/ai-student-partner/internal/service"
	"github.com/JAGATH123/ai-student-partner/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store    *store.SQLiteStore
	bank     *questionbank.Bank
	learning *service.LearningService
	review   *service.ReviewService
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s *store.SQLiteStore, bank *questionbank.Bank, learning *service.LearningService, review *service.ReviewService, logger *slog.Logger) *Handler {
	return &Handler{
		store:    s,
		bank:     bank,
		learning: learning,
		review:   review,
		logger:   logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

type validator interface {
	Validate() error
}

// decodeAndValidate decodes the request body into v and runs its
// validation. Returns false if a response has already been written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// handleBankError maps question-bank lookup failures.
func (h *Handler) handleBankError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, questionbank.ErrTopicNotFound):
		respondError(w, http.StatusNotFound, "topic not found")
	case errors.Is(err, questionbank.ErrQuestionNotFound):
		respondError(w, http.StatusNotFound, "question not found")
	default:
		h.logger.Error("question bank error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
