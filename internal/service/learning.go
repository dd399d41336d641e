// internal/service/learning.go
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/JAGATH123/ai-student-partner/internal/domain/attempt"
	"github.com/JAGATH123/ai-student-partner/internal/domain/progress"
	"github.com/JAGATH123/ai-student-partner/internal/domain/questionbank"
	"github.com/JAGATH123/ai-student-partner/internal/domain/streak"
	"github.com/JAGATH123/ai-student-partner/internal/notify"
	"github.com/JAGATH123/ai-student-partner/internal/store"
)

// LearningService handles answer submissions: it resolves correctness
// against the question bank, appends the attempt, and folds the outcome
// into the user's mastery and streak state.
//
// Submissions for the same user are serialized through a per-user lock.
// The EMA is order-dependent, so the read-compute-write over a user's
// progress must never interleave; per-user granularity also covers the
// shared streak/stats row.
type LearningService struct {
	store  store.Store
	bank   *questionbank.Bank
	sink   notify.Sink
	logger *slog.Logger
	clock  func() time.Time

	mu    sync.Mutex
	users map[string]*sync.Mutex // userID → submission lock
}

// SubmissionResult is everything the caller gets back from one submission.
type SubmissionResult struct {
	IsCorrect     bool
	CorrectAnswer string
	Progress      *progress.Progress
	Stats         *streak.Stats
}

// NewLearningService creates a LearningService.
func NewLearningService(s store.Store, bank *questionbank.Bank, sink notify.Sink, logger *slog.Logger) *LearningService {
	return &LearningService{
		store:  s,
		bank:   bank,
		sink:   sink,
		logger: logger,
		clock:  time.Now,
		users:  make(map[string]*sync.Mutex),
	}
}

// SubmitAnswer processes one answer submission end to end. The attempt,
// progress and stats writes land in a single transaction, so a failure
// leaves no partial mutation.
func (ls *LearningService) SubmitAnswer(ctx context.Context, userID, topicID, questionID, userAnswer string, timeTaken *float64) (*SubmissionResult, error) {
	question, err := ls.bank.Question(topicID, questionID)
	if err != nil {
		return nil, err
	}
	isCorrect := question.IsCorrect(userAnswer)

	lock := ls.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	now := ls.clock()

	prog, err := ls.store.GetProgress(ctx, userID, topicID)
	if errors.Is(err, store.ErrNotFound) {
		prog = progress.New(userID, topicID)
	} else if err != nil {
		return nil, err
	}

	if prog.Mastery < 0 || prog.Mastery > 1 {
		ls.logger.Warn("mastery out of range, clamping",
			"user_id", userID,
			"topic_id", topicID,
			"mastery", prog.Mastery,
		)
		prog.Mastery = progress.Clamp(prog.Mastery)
	}

	prog.ApplyAttempt(isCorrect, now)

	stats, err := ls.store.GetUserStats(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		stats = streak.New(userID)
	} else if err != nil {
		return nil, err
	}

	stats.RecordAttempt(isCorrect)
	if !stats.RecordStudy(now) {
		ls.logger.Warn("study event predates last study date, streak unchanged",
			"user_id", userID,
			"last_study_date", stats.LastStudyDate,
			"now", now,
		)
	}

	att := attempt.New(userID, topicID, questionID, userAnswer, question.Answer, isCorrect, timeTaken, now)

	if err := ls.store.RecordSubmission(ctx, att, prog, stats); err != nil {
		return nil, err
	}

	ls.publishProgress(userID, topicID, prog, stats)

	return &SubmissionResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: question.Answer,
		Progress:      prog,
		Stats:         stats,
	}, nil
}

// publishProgress notifies listeners asynchronously. It runs detached from
// the request context because the submission has already committed.
func (ls *LearningService) publishProgress(userID, topicID string, prog *progress.Progress, stats *streak.Stats) {
	payload := map[string]any{
		"topic_id":       topicID,
		"mastery":        prog.Mastery,
		"attempts":       prog.Attempts,
		"current_streak": stats.CurrentStreak,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := ls.sink.Publish(ctx, userID, "progress_updated", payload); err != nil {
			ls.logger.Error("failed to publish progress event",
				"user_id", userID,
				"topic_id", topicID,
				"error", err,
			)
		}
	}()
}

func (ls *LearningService) userLock(userID string) *sync.Mutex {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	lock, ok := ls.users[userID]
	if !ok {
		lock = &sync.Mutex{}
		ls.users[userID] = lock
	}
	return lock
}
