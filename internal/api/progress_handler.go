package api

import (
	"net/http"
	"strconv"
)

// ── Response types ──────────────────────────────────────────────────────────

type LeaderboardEntryResponse struct {
	UserID        string `json:"user_id"`
	TotalAttempts int    `json:"total_attempts"`
	TotalCorrect  int    `json:"total_correct"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /users/{userID}/progress
func (h *Handler) listProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userID")

	list, err := h.store.ListProgress(ctx, userID)
	if h.handleStoreError(w, err, "progress") {
		return
	}

	resp := make([]ProgressResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, toProgressResponse(p))
	}

	respondJSON(w, http.StatusOK, resp)
}

// GET /users/{userID}/stats
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userID")

	stats, err := h.store.GetUserStats(ctx, userID)
	if h.handleStoreError(w, err, "user") {
		return
	}

	respondJSON(w, http.StatusOK, toStatsResponse(stats))
}

// DELETE /users/{userID}/progress/{topicID}
func (h *Handler) resetTopic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userID")
	topicID := r.PathValue("topicID")

	if h.handleStoreError(w, h.store.DeleteProgress(ctx, userID, topicID), "progress") {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DELETE /users/{userID}
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userID")

	if h.handleStoreError(w, h.store.DeleteUser(ctx, userID), "user") {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /leaderboard?limit=n
func (h *Handler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.store.Leaderboard(ctx, limit)
	if h.handleStoreError(w, err, "leaderboard") {
		return
	}

	resp := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, LeaderboardEntryResponse{
			UserID:        e.UserID,
			TotalAttempts: e.TotalAttempts,
			TotalCorrect:  e.TotalCorrect,
			CurrentStreak: e.CurrentStreak,
			LongestStreak: e.LongestStreak,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}
