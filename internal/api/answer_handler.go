package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/JAGATH123/ai-student-partner/internal/domain/progress"
	"github.com/JAGATH123/ai-student-partner/internal/domain/questionbank"
	"github.com/JAGATH123/ai-student-partner/internal/domain/streak"
)

// ── Request / Response types ────────────────────────────────────────────────

type SubmitAnswerRequest struct {
	TopicID    string   `json:"topic_id"`
	QuestionID string   `json:"question_id"`
	Answer     string   `json:"answer"`
	TimeTaken  *float64 `json:"time_taken,omitempty"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if r.TopicID == "" {
		return errors.New("topic_id is required")
	}
	if r.QuestionID == "" {
		return errors.New("question_id is required")
	}
	if r.Answer == "" {
		return errors.New("answer is required")
	}
	if r.TimeTaken != nil && *r.TimeTaken < 0 {
		return errors.New("time_taken cannot be negative")
	}
	return nil
}

type ProgressResponse struct {
	TopicID    string     `json:"topic_id"`
	Mastery    float64    `json:"mastery"`
	Attempts   int        `json:"attempts"`
	Corrects   int        `json:"corrects"`
	LastReview *time.Time `json:"last_review,omitempty"`
}

type StatsResponse struct {
	TotalAttempts int        `json:"total_attempts"`
	TotalCorrect  int        `json:"total_correct"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastStudyDate *time.Time `json:"last_study_date,omitempty"`
}

type SubmitAnswerResponse struct {
	IsCorrect     bool             `json:"is_correct"`
	CorrectAnswer string           `json:"correct_answer"`
	Progress      ProgressResponse `json:"progress"`
	Stats         StatsResponse    `json:"stats"`
}

func toProgressResponse(p *progress.Progress) ProgressResponse {
	return ProgressResponse{
		TopicID:    p.TopicID,
		Mastery:    p.Mastery,
		Attempts:   p.Attempts,
		Corrects:   p.Corrects,
		LastReview: p.LastReview,
	}
}

func toStatsResponse(s *streak.Stats) StatsResponse {
	return StatsResponse{
		TotalAttempts: s.TotalAttempts,
		TotalCorrect:  s.TotalCorrect,
		CurrentStreak: s.CurrentStreak,
		LongestStreak: s.LongestStreak,
		LastStudyDate: s.LastStudyDate,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /users/{userID}/answers
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userID")

	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.learning.SubmitAnswer(ctx, userID, req.TopicID, req.QuestionID, req.Answer, req.TimeTaken)
	if err != nil {
		if errors.Is(err, questionbank.ErrTopicNotFound) || errors.Is(err, questionbank.ErrQuestionNotFound) {
			h.handleBankError(w, err)
			return
		}
		h.handleStoreError(w, err, "submission")
		return
	}

	respondJSON(w, http.StatusOK, SubmitAnswerResponse{
		IsCorrect:     result.IsCorrect,
		CorrectAnswer: result.CorrectAnswer,
		Progress:      toProgressResponse(result.Progress),
		Stats:         toStatsResponse(result.Stats),
	})
}
