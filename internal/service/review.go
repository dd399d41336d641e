// internal/service/review.go
package service

import (
	"context"
	"time"

	"github.com/JAGATH123/ai-student-partner/internal/domain/progress"
	"github.com/JAGATH123/ai-student-partner/internal/domain/questionbank"
	"github.com/JAGATH123/ai-student-partner/internal/recommend"
	"github.com/JAGATH123/ai-student-partner/internal/store"
)

// recentAttemptWindow bounds how much attempt history feeds the short-term
// signal of the ranker.
const recentAttemptWindow = 100

// ReviewService answers "what should I study next" queries from a user's
// progress and recent attempt history.
type ReviewService struct {
	store store.Store
	bank  *questionbank.Bank
	clock func() time.Time
}

// NewReviewService creates a ReviewService.
func NewReviewService(s store.Store, bank *questionbank.Bank) *ReviewService {
	return &ReviewService{
		store: s,
		bank:  bank,
		clock: time.Now,
	}
}

// Recommendations returns the user's top-n review priorities.
func (rs *ReviewService) Recommendations(ctx context.Context, userID string, n int) ([]recommend.Recommendation, error) {
	byTopic, err := rs.progressByTopic(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := rs.store.RecentAttempts(ctx, userID, recentAttemptWindow)
	if err != nil {
		return nil, err
	}

	return recommend.Recommend(rs.bank.Topics(), byTopic, recent, n, rs.clock()), nil
}

// WeakAreas returns the user's weakest practiced topics.
func (rs *ReviewService) WeakAreas(ctx context.Context, userID string) ([]recommend.WeakArea, error) {
	byTopic, err := rs.progressByTopic(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recommend.WeakAreas(rs.bank.Topics(), byTopic), nil
}

// ReadyForReview returns learned topics whose last review has gone stale.
func (rs *ReviewService) ReadyForReview(ctx context.Context, userID string) ([]recommend.ReviewItem, error) {
	byTopic, err := rs.progressByTopic(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recommend.ReadyForReview(rs.bank.Topics(), byTopic, rs.clock()), nil
}

func (rs *ReviewService) progressByTopic(ctx context.Context, userID string) (map[string]*progress.Progress, error) {
	list, err := rs.store.ListProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	byTopic := make(map[string]*progress.Progress, len(list))
	for _, p := range list {
		byTopic[p.TopicID] = p
	}
	return byTopic, nil
}
