package streak

import (
	"math"
	"time"
)

// Stats holds a user's global study counters and streak state. Streaks are
// counted in consecutive calendar days with at least one study action.
type Stats struct {
	UserID        string
	TotalAttempts int
	TotalCorrect  int
	CurrentStreak int
	LongestStreak int
	LastStudyDate *time.Time
}

// New creates empty stats for a user.
func New(userID string) *Stats {
	return &Stats{UserID: userID}
}

// RecordAttempt bumps the global counters for one answer submission.
func (s *Stats) RecordAttempt(isCorrect bool) {
	s.TotalAttempts++
	if isCorrect {
		s.TotalCorrect++
	}
}

// RecordStudy advances the streak for a study action at now. Dates are
// compared at day granularity, so repeated study on the same day leaves the
// streak untouched.
//
// It returns false when now precedes the recorded last study date (clock
// skew or an out-of-order event); in that case nothing changes and the
// caller should log the anomaly.
func (s *Stats) RecordStudy(now time.Time) bool {
	if s.LastStudyDate == nil {
		s.CurrentStreak = 1
	} else {
		switch diff := daysBetween(*s.LastStudyDate, now); {
		case diff < 0:
			return false
		case diff == 0:
			// same-day repeat, streak unchanged
		case diff == 1:
			s.CurrentStreak++
		default:
			s.CurrentStreak = 1
		}
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastStudyDate = &now
	return true
}

// daysBetween counts whole calendar days from a to b, comparing at local
// midnight. Rounding absorbs DST-shortened or -lengthened days.
func daysBetween(a, b time.Time) int {
	return int(math.Round(startOfDay(b).Sub(startOfDay(a)).Hours() / 24))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
