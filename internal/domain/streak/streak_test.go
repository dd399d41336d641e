package streak_test

import (
	"testing"
	"time"

	"github.com/JAGATH123/ai-student-partner/internal/domain/streak"
)

func day(n int) time.Time {
	base := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.Local)
	return base.AddDate(0, 0, n)
}

func TestRecordStudy_Sequence(t *testing.T) {
	// Submissions on days [D, D, D+1, D+3] from a fresh user must yield
	// current streaks [1, 1, 2, 1] with longest stuck at 2.
	s := streak.New("u1")

	steps := []struct {
		at          time.Time
		wantCurrent int
		wantLongest int
	}{
		{day(0), 1, 1},
		{day(0), 1, 1},
		{day(1), 2, 2},
		{day(3), 1, 2},
	}

	for i, step := range steps {
		if ok := s.RecordStudy(step.at); !ok {
			t.Fatalf("step %d: unexpected skew rejection", i)
		}
		if s.CurrentStreak != step.wantCurrent {
			t.Errorf("step %d: expected current streak %d, got %d", i, step.wantCurrent, s.CurrentStreak)
		}
		if s.LongestStreak != step.wantLongest {
			t.Errorf("step %d: expected longest streak %d, got %d", i, step.wantLongest, s.LongestStreak)
		}
	}
}

func TestRecordStudy_SameDayDifferentTime(t *testing.T) {
	s := streak.New("u1")
	s.RecordStudy(day(0))

	evening := day(0).Add(10 * time.Hour)
	if ok := s.RecordStudy(evening); !ok {
		t.Fatal("unexpected skew rejection")
	}

	if s.CurrentStreak != 1 {
		t.Errorf("same-day repeat must not inflate streak, got %d", s.CurrentStreak)
	}
	if s.LastStudyDate == nil || !s.LastStudyDate.Equal(evening) {
		t.Errorf("expected last study date refreshed to %v, got %v", evening, s.LastStudyDate)
	}
}

func TestRecordStudy_ClockSkew(t *testing.T) {
	s := streak.New("u1")
	s.RecordStudy(day(2))

	if ok := s.RecordStudy(day(1)); ok {
		t.Error("expected backwards timestamp to be rejected")
	}

	if s.CurrentStreak != 1 {
		t.Errorf("skewed event must not change streak, got %d", s.CurrentStreak)
	}
	if !s.LastStudyDate.Equal(day(2)) {
		t.Errorf("skewed event must not move last study date, got %v", s.LastStudyDate)
	}
}

func TestRecordStudy_LongestNeverBelowCurrent(t *testing.T) {
	s := streak.New("u1")
	for n := 0; n < 5; n++ {
		s.RecordStudy(day(n))
		if s.LongestStreak < s.CurrentStreak {
			t.Fatalf("day %d: longest %d < current %d", n, s.LongestStreak, s.CurrentStreak)
		}
	}
	if s.CurrentStreak != 5 || s.LongestStreak != 5 {
		t.Errorf("expected 5/5 after five consecutive days, got %d/%d", s.CurrentStreak, s.LongestStreak)
	}
}

func TestRecordAttempt(t *testing.T) {
	s := streak.New("u1")
	s.RecordAttempt(true)
	s.RecordAttempt(false)
	s.RecordAttempt(true)

	if s.TotalAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", s.TotalAttempts)
	}
	if s.TotalCorrect != 2 {
		t.Errorf("expected 2 correct, got %d", s.TotalCorrect)
	}
}
