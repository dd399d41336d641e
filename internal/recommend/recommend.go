package recommend

import (
	"sort"
	"time"

	"github.com/JAGATH123/ai-student-partner/internal/domain/attempt"
	"github.com/JAGATH123/ai-student-partner/internal/domain/progress"
	"github.com/JAGATH123/ai-student-partner/internal/domain/questionbank"
)

const (
	// DefaultLimit is the number of recommendations returned when the
	// caller doesn't ask for a specific count.
	DefaultLimit = 3

	// neverReviewedDays stands in for "never reviewed". It is far beyond
	// the recency cap so untouched topics always get the full boost.
	neverReviewedDays = 999

	recentWindow        = 5
	strugglingThreshold = 0.4
	strugglingBonus     = 0.3

	weakMasteryCeiling = 0.5
	weakMinAttempts    = 3
	reviewMasteryFloor = 0.5
	reviewAfterDays    = 7
	filterLimit        = 5
)

// Recommendation is one ranked review suggestion.
type Recommendation struct {
	TopicID         string
	Title           string
	SubjectName     string
	Mastery         float64
	Score           float64
	DaysSinceReview int
	RecentCorrect   int
	RecentTotal     int
}

// WeakArea is a topic the user keeps getting wrong.
type WeakArea struct {
	TopicID     string
	Title       string
	SubjectName string
	Mastery     float64
	Attempts    int
	Corrects    int
}

// ReviewItem is a learned topic whose last review has gone stale.
type ReviewItem struct {
	TopicID     string
	Title       string
	SubjectName string
	Mastery     float64
	LastReview  time.Time
}

// Recommend ranks all topics by review priority and returns the top n
// (DefaultLimit when n <= 0).
//
// Per topic the score is (1-mastery) * recencyFactor, where the recency
// factor grows from 1 to a cap of 2 over ~60 days since the last review,
// plus a flat struggling bonus when the user's recent short-term accuracy
// on the topic drops below the threshold. Topics with no progress record
// score against the default prior. Ties keep catalog order (stable sort).
//
// recentAttempts must be ordered most-recent-first; only the newest
// recentWindow attempts per topic contribute.
func Recommend(
	topics []questionbank.TopicRef,
	byTopic map[string]*progress.Progress,
	recentAttempts []*attempt.Attempt,
	n int,
	now time.Time,
) []Recommendation {
	if n <= 0 {
		n = DefaultLimit
	}

	recent := recentByTopic(recentAttempts)

	recs := make([]Recommendation, 0, len(topics))
	for _, topic := range topics {
		mastery := progress.DefaultMastery
		var lastReview *time.Time
		if p, ok := byTopic[topic.ID]; ok {
			mastery = progress.Clamp(p.Mastery)
			lastReview = p.LastReview
		}

		daysSince := neverReviewedDays
		if lastReview != nil {
			daysSince = int(now.Sub(*lastReview).Hours() / 24)
		}

		recencyFactor := 1 + 0.5*min(float64(daysSince)/30, 2)
		score := (1 - mastery) * recencyFactor

		perf := recent[topic.ID]
		if perf.total > 0 && float64(perf.correct)/float64(perf.total) < strugglingThreshold {
			score += strugglingBonus
		}

		recs = append(recs, Recommendation{
			TopicID:         topic.ID,
			Title:           topic.Title,
			SubjectName:     topic.SubjectName,
			Mastery:         mastery,
			Score:           score,
			DaysSinceReview: daysSince,
			RecentCorrect:   perf.correct,
			RecentTotal:     perf.total,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > n {
		recs = recs[:n]
	}
	return recs
}

type topicPerf struct {
	correct int
	total   int
}

// recentByTopic tallies each topic's newest recentWindow attempts.
func recentByTopic(attempts []*attempt.Attempt) map[string]topicPerf {
	perf := make(map[string]topicPerf)
	for _, a := range attempts {
		p := perf[a.TopicID]
		if p.total >= recentWindow {
			continue
		}
		p.total++
		if a.IsCorrect {
			p.correct++
		}
		perf[a.TopicID] = p
	}
	return perf
}

// WeakAreas lists topics with low mastery despite real practice: mastery
// below 0.5 after at least 3 attempts, weakest first, at most 5.
func WeakAreas(topics []questionbank.TopicRef, byTopic map[string]*progress.Progress) []WeakArea {
	var weak []WeakArea
	for _, topic := range topics {
		p, ok := byTopic[topic.ID]
		if !ok || p.Mastery >= weakMasteryCeiling || p.Attempts < weakMinAttempts {
			continue
		}
		weak = append(weak, WeakArea{
			TopicID:     topic.ID,
			Title:       topic.Title,
			SubjectName: topic.SubjectName,
			Mastery:     p.Mastery,
			Attempts:    p.Attempts,
			Corrects:    p.Corrects,
		})
	}

	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].Mastery < weak[j].Mastery
	})

	if len(weak) > filterLimit {
		weak = weak[:filterLimit]
	}
	return weak
}

// ReadyForReview lists learned topics (mastery at least 0.5) whose last
// review is more than 7 days old, stalest first, at most 5.
func ReadyForReview(topics []questionbank.TopicRef, byTopic map[string]*progress.Progress, now time.Time) []ReviewItem {
	var due []ReviewItem
	for _, topic := range topics {
		p, ok := byTopic[topic.ID]
		if !ok || p.Mastery < reviewMasteryFloor || p.LastReview == nil {
			continue
		}
		if now.Sub(*p.LastReview) <= reviewAfterDays*24*time.Hour {
			continue
		}
		due = append(due, ReviewItem{
			TopicID:     topic.ID,
			Title:       topic.Title,
			SubjectName: topic.SubjectName,
			Mastery:     p.Mastery,
			LastReview:  *p.LastReview,
		})
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].LastReview.Before(due[j].LastReview)
	})

	if len(due) > filterLimit {
		due = due[:filterLimit]
	}
	return due
}
