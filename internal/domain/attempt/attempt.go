package attempt

import (
	"time"

	"github.com/google/uuid"
)

// Attempt is one answer submission. Records are append-only and never
// mutated after creation.
type Attempt struct {
	ID            string
	UserID        string
	TopicID       string
	QuestionID    string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
	TimeTaken     *float64 // seconds, nil when the client didn't report it
	Timestamp     time.Time
}

// New creates an attempt record with a generated id.
func New(userID, topicID, questionID, userAnswer, correctAnswer string, isCorrect bool, timeTaken *float64, at time.Time) *Attempt {
	return &Attempt{
		ID:            uuid.NewString(),
		UserID:        userID,
		TopicID:       topicID,
		QuestionID:    questionID,
		UserAnswer:    userAnswer,
		CorrectAnswer: correctAnswer,
		IsCorrect:     isCorrect,
		TimeTaken:     timeTaken,
		Timestamp:     at,
	}
}
