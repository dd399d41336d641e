package api

import (
	"net/http"
)

// ── Response types ──────────────────────────────────────────────────────────

type TopicSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
}

type SubjectResponse struct {
	Name   string         `json:"name"`
	Topics []TopicSummary `json:"topics"`
}

type QuestionResponse struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
}

type TopicResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	SubjectName string             `json:"subject_name"`
	Questions   []QuestionResponse `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /subjects
func (h *Handler) listSubjects(w http.ResponseWriter, r *http.Request) {
	subjects := h.bank.Subjects()

	resp := make([]SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		topics := make([]TopicSummary, 0, len(s.Topics))
		for _, t := range s.Topics {
			topics = append(topics, TopicSummary{
				ID:            t.ID,
				Title:         t.Title,
				QuestionCount: len(t.Questions),
			})
		}
		resp = append(resp, SubjectResponse{Name: s.Name, Topics: topics})
	}

	respondJSON(w, http.StatusOK, resp)
}

// GET /topics/{topicID}
// Canonical answers are deliberately left out of the payload.
func (h *Handler) getTopic(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topicID")

	topic, err := h.bank.Topic(topicID)
	if h.handleBankError(w, err) {
		return
	}

	questions := make([]QuestionResponse, 0, len(topic.Questions))
	for _, q := range topic.Questions {
		questions = append(questions, QuestionResponse{
			ID:      q.ID.String(),
			Prompt:  q.Prompt,
			Options: q.Options,
		})
	}

	respondJSON(w, http.StatusOK, TopicResponse{
		ID:          topic.ID,
		Title:       topic.Title,
		SubjectName: topic.SubjectName,
		Questions:   questions,
	})
}
