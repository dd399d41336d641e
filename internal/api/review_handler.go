package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JAGATH123/ai-student-partner/internal/recommend"
)

// ── Response types ──────────────────────────────────────────────────────────

type RecommendationResponse struct {
	TopicID         string  `json:"topic_id"`
	Title           string  `json:"title"`
	SubjectName     string  `json:"subject_name"`
	Mastery         float64 `json:"mastery"`
	Score           float64 `json:"score"`
	DaysSinceReview int     `json:"days_since_review"`
	RecentCorrect   int     `json:"recent_correct"`
	RecentTotal     int     `json:"recent_total"`
}

type WeakAreaResponse struct {
	TopicID     string  `json:"topic_id"`
	Title       string  `json:"title"`
	SubjectName string  `json:"subject_name"`
	Mastery     float64 `json:"mastery"`
	Attempts    int     `json:"attempts"`
	Corrects    int     `json:"corrects"`
}

type ReviewItemResponse struct {
	TopicID     string    `json:"topic_id"`
	Title       string    `json:"title"`
	SubjectName string    `json:"subject_name"`
	Mastery     float64   `json:"mastery"`
	LastReview  time.Time `json:"last_review"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /users/{userID}/recommendations?limit=n
func (h *Handler) getRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userID")

	limit := recommend.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs, err := h.review.Recommendations(ctx, userID, limit)
	if h.handleStoreError(w, err, "recommendations") {
		return
	}

	resp := make([]RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, RecommendationResponse{
			TopicID:         rec.TopicID,
			Title:           rec.Title,
			SubjectName:     rec.SubjectName,
			Mastery:         rec.Mastery,
			Score:           rec.Score,
			DaysSinceReview: rec.DaysSinceReview,
			RecentCorrect:   rec.RecentCorrect,
			RecentTotal:     rec.RecentTotal,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

// GET /users/{userID}/weak-areas
func (h *Handler) getWeakAreas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userID")

	weak, err := h.review.WeakAreas(ctx, userID)
	if h.handleStoreError(w, err, "weak areas") {
		return
	}

	resp := make([]WeakAreaResponse, 0, len(weak))
	for _, area := range weak {
		resp = append(resp, WeakAreaResponse{
			TopicID:     area.TopicID,
			Title:       area.Title,
			SubjectName: area.SubjectName,
			Mastery:     area.Mastery,
			Attempts:    area.Attempts,
			Corrects:    area.Corrects,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

// GET /users/{userID}/ready-for-review
func (h *Handler) getReadyForReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userID")

	due, err := h.review.ReadyForReview(ctx, userID)
	if h.handleStoreError(w, err, "ready for review") {
		return
	}

	resp := make([]ReviewItemResponse, 0, len(due))
	for _, item := range due {
		resp = append(resp, ReviewItemResponse{
			TopicID:     item.TopicID,
			Title:       item.Title,
			SubjectName: item.SubjectName,
			Mastery:     item.Mastery,
			LastReview:  item.LastReview,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}
