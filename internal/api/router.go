// internal/api/router.go
package api

import "net/http"

// RegisterRoutes wires every handler onto the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Catalog
	mux.HandleFunc("GET /subjects", h.listSubjects)
	mux.HandleFunc("GET /topics/{topicID}", h.getTopic)

	// Answers
	mux.HandleFunc("POST /users/{userID}/answers", h.submitAnswer)

	// Review queries
	mux.HandleFunc("GET /users/{userID}/recommendations", h.getRecommendations)
	mux.HandleFunc("GET /users/{userID}/weak-areas", h.getWeakAreas)
	mux.HandleFunc("GET /users/{userID}/ready-for-review", h.getReadyForReview)

	// Progress & stats
	mux.HandleFunc("GET /users/{userID}/progress", h.listProgress)
	mux.HandleFunc("GET /users/{userID}/stats", h.getStats)
	mux.HandleFunc("DELETE /users/{userID}/progress/{topicID}", h.resetTopic)
	mux.HandleFunc("DELETE /users/{userID}", h.deleteUser)

	// Leaderboard
	mux.HandleFunc("GET /leaderboard", h.getLeaderboard)
}
