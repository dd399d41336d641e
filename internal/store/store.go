package store

import (
	"context"
	"errors"

	"github.com/JAGATH123/ai-student-partner/internal/domain/attempt"
	"github.com/JAGATH123/ai-student-partner/internal/domain/progress"
	"github.com/JAGATH123/ai-student-partner/internal/domain/streak"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store is the persistence surface the services depend on. The HTTP layer
// uses the concrete SQLiteStore directly, which adds admin-ish operations
// (reset, delete, leaderboard) on top.
type Store interface {
	GetProgress(ctx context.Context, userID, topicID string) (*progress.Progress, error)
	ListProgress(ctx context.Context, userID string) ([]*progress.Progress, error)
	GetUserStats(ctx context.Context, userID string) (*streak.Stats, error)
	RecentAttempts(ctx context.Context, userID string, limit int) ([]*attempt.Attempt, error)

	// RecordSubmission persists one answer submission atomically: the
	// attempt is appended and the progress and stats rows are upserted in
	// a single transaction, so a failure leaves no partial mutation.
	RecordSubmission(ctx context.Context, att *attempt.Attempt, prog *progress.Progress, stats *streak.Stats) error
}

// LeaderboardEntry is one row of the global leaderboard.
type LeaderboardEntry struct {
	UserID        string
	TotalAttempts int
	TotalCorrect  int
	CurrentStreak int
	LongestStreak int
}
