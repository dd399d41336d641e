package recommend_test

import (
	"testing"
	"time"

	"github.com/JAGATH123/ai-student-partner/internal/domain/attempt"
	"github.com/JAGATH123/ai-student-partner/internal/domain/progress"
	"github.com/JAGATH123/ai-student-partner/internal/domain/questionbank"
	"github.com/JAGATH123/ai-student-partner/internal/recommend"
)

var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func topicRefs(ids ...string) []questionbank.TopicRef {
	refs := make([]questionbank.TopicRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, questionbank.TopicRef{ID: id, Title: id, SubjectName: "Test"})
	}
	return refs
}

func progressAt(topicID string, mastery float64, lastReview *time.Time) *progress.Progress {
	return &progress.Progress{
		UserID:     "u1",
		TopicID:    topicID,
		Mastery:    mastery,
		Attempts:   5,
		Corrects:   3,
		LastReview: lastReview,
		Alpha:      progress.DefaultAlpha,
	}
}

func topicAttempts(topicID string, outcomes ...bool) []*attempt.Attempt {
	var attempts []*attempt.Attempt
	// most-recent-first, matching the ledger query order
	for _, correct := range outcomes {
		attempts = append(attempts, &attempt.Attempt{
			UserID:    "u1",
			TopicID:   topicID,
			IsCorrect: correct,
		})
	}
	return attempts
}

func TestRecommend_NeverReviewedOutranksRecentlyReviewed(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	byTopic := map[string]*progress.Progress{
		"seen":  progressAt("seen", 0.2, &yesterday),
		"fresh": progressAt("fresh", 0.2, nil),
	}

	recs := recommend.Recommend(topicRefs("seen", "fresh"), byTopic, nil, 2, now)

	if recs[0].TopicID != "fresh" {
		t.Fatalf("expected never-reviewed topic first, got %q", recs[0].TopicID)
	}
	if recs[0].DaysSinceReview != 999 {
		t.Errorf("expected sentinel 999 days, got %d", recs[0].DaysSinceReview)
	}
}

func TestRecommend_RecencyFactorCaps(t *testing.T) {
	longAgo := now.AddDate(0, 0, -90)
	byTopic := map[string]*progress.Progress{
		"stale": progressAt("stale", 0, &longAgo),
	}

	recs := recommend.Recommend(topicRefs("stale"), byTopic, nil, 1, now)

	// (1-0) * (1 + 0.5*2) with the ratio capped at 2
	if recs[0].Score != 2 {
		t.Errorf("expected capped score 2, got %v", recs[0].Score)
	}
}

func TestRecommend_StrugglingBonusBoundary(t *testing.T) {
	today := now
	byTopic := map[string]*progress.Progress{
		"t": progressAt("t", 0.5, &today),
	}
	base := recommend.Recommend(topicRefs("t"), byTopic, nil, 1, now)[0].Score

	// 2/5 correct = 0.4, not strictly below the threshold: no bonus.
	atThreshold := topicAttempts("t", false, false, false, true, true)
	got := recommend.Recommend(topicRefs("t"), byTopic, atThreshold, 1, now)[0].Score
	if got != base {
		t.Errorf("rate 0.4 must get no bonus: base=%v got=%v", base, got)
	}

	// 1/5 correct = 0.2 < 0.4: flat +0.3.
	struggling := topicAttempts("t", false, false, false, false, true)
	got = recommend.Recommend(topicRefs("t"), byTopic, struggling, 1, now)[0].Score
	want := base + 0.3
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("rate 0.2 must get +0.3: base=%v got=%v", base, got)
	}
}

func TestRecommend_WindowIgnoresOlderAttempts(t *testing.T) {
	today := now
	byTopic := map[string]*progress.Progress{
		"t": progressAt("t", 0.5, &today),
	}

	// Five recent passes followed by a long tail of failures: only the
	// newest five count, so no bonus.
	attempts := topicAttempts("t", true, true, true, true, true, false, false, false, false)
	recs := recommend.Recommend(topicRefs("t"), byTopic, attempts, 1, now)

	if recs[0].RecentTotal != 5 || recs[0].RecentCorrect != 5 {
		t.Errorf("expected 5/5 in window, got %d/%d", recs[0].RecentCorrect, recs[0].RecentTotal)
	}
}

func TestRecommend_TopNAndStableTieBreak(t *testing.T) {
	// No progress at all: every topic scores identically off the default
	// prior, so catalog order must survive the sort.
	refs := topicRefs("a", "b", "c", "d", "e")

	recs := recommend.Recommend(refs, nil, nil, 3, now)

	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if recs[i].TopicID != want {
			t.Errorf("position %d: expected %q, got %q", i, want, recs[i].TopicID)
		}
	}
}

func TestRecommend_DefaultLimit(t *testing.T) {
	recs := recommend.Recommend(topicRefs("a", "b", "c", "d"), nil, nil, 0, now)
	if len(recs) != recommend.DefaultLimit {
		t.Errorf("expected default limit %d, got %d", recommend.DefaultLimit, len(recs))
	}
}

func TestRecommend_FewerTopicsThanLimit(t *testing.T) {
	recs := recommend.Recommend(topicRefs("a", "b"), nil, nil, 3, now)
	if len(recs) != 2 {
		t.Errorf("expected 2 recommendations, got %d", len(recs))
	}
}

func TestWeakAreas(t *testing.T) {
	byTopic := map[string]*progress.Progress{
		"low-practiced":   {TopicID: "low-practiced", Mastery: 0.3, Attempts: 4},
		"lowest":          {TopicID: "lowest", Mastery: 0.1, Attempts: 3},
		"low-unpracticed": {TopicID: "low-unpracticed", Mastery: 0.2, Attempts: 2},
		"mastered":        {TopicID: "mastered", Mastery: 0.8, Attempts: 10},
		"at-ceiling":      {TopicID: "at-ceiling", Mastery: 0.5, Attempts: 9},
	}
	refs := topicRefs("low-practiced", "lowest", "low-unpracticed", "mastered", "at-ceiling")

	weak := recommend.WeakAreas(refs, byTopic)

	if len(weak) != 2 {
		t.Fatalf("expected 2 weak areas, got %d", len(weak))
	}
	if weak[0].TopicID != "lowest" || weak[1].TopicID != "low-practiced" {
		t.Errorf("expected ascending mastery order, got %v", weak)
	}
}

func TestReadyForReview(t *testing.T) {
	tenDaysAgo := now.AddDate(0, 0, -10)
	twentyDaysAgo := now.AddDate(0, 0, -20)
	twoDaysAgo := now.AddDate(0, 0, -2)

	byTopic := map[string]*progress.Progress{
		"stale":     {TopicID: "stale", Mastery: 0.6, LastReview: &tenDaysAgo},
		"staler":    {TopicID: "staler", Mastery: 0.9, LastReview: &twentyDaysAgo},
		"recent":    {TopicID: "recent", Mastery: 0.9, LastReview: &twoDaysAgo},
		"unlearned": {TopicID: "unlearned", Mastery: 0.3, LastReview: &twentyDaysAgo},
	}
	refs := topicRefs("stale", "staler", "recent", "unlearned")

	due := recommend.ReadyForReview(refs, byTopic, now)

	if len(due) != 2 {
		t.Fatalf("expected 2 items, got %d", len(due))
	}
	if due[0].TopicID != "staler" || due[1].TopicID != "stale" {
		t.Errorf("expected stalest first, got %v", due)
	}
}
