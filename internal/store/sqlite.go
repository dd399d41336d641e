// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/JAGATH123/ai-student-partner/internal/domain/attempt"
	"github.com/JAGATH123/ai-student-partner/internal/domain/progress"
	"github.com/JAGATH123/ai-student-partner/internal/domain/streak"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    total_attempts INTEGER NOT NULL DEFAULT 0,
    total_correct INTEGER NOT NULL DEFAULT 0,
    current_streak INTEGER NOT NULL DEFAULT 0,
    longest_streak INTEGER NOT NULL DEFAULT 0,
    last_study_date TEXT
);

CREATE TABLE IF NOT EXISTS progress (
    user_id TEXT NOT NULL,
    topic_id TEXT NOT NULL,
    mastery REAL NOT NULL,
    attempts INTEGER NOT NULL DEFAULT 0,
    corrects INTEGER NOT NULL DEFAULT 0,
    last_review TEXT,
    ema_alpha REAL NOT NULL,
    PRIMARY KEY (user_id, topic_id),
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS attempts (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    topic_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    user_answer TEXT NOT NULL,
    correct_answer TEXT NOT NULL,
    is_correct INTEGER NOT NULL,
    time_taken REAL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_attempts_user_created ON attempts(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_attempts_topic ON attempts(topic_id);
`

// timeLayout is RFC 3339 with fixed-width nanoseconds so stored timestamps
// sort lexicographically. Values are normalized to UTC before formatting.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Progress
// ============================================================================

func (s *SQLiteStore) GetProgress(ctx context.Context, userID, topicID string) (*progress.Progress, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT user_id, topic_id, mastery, attempts, corrects, last_review, ema_alpha FROM progress WHERE user_id = ? AND topic_id = ?",
		userID, topicID,
	)

	p, err := scanProgress(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SQLiteStore) ListProgress(ctx context.Context, userID string) ([]*progress.Progress, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, topic_id, mastery, attempts, corrects, last_review, ema_alpha FROM progress WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*progress.Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (s *SQLiteStore) DeleteProgress(ctx context.Context, userID, topicID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM progress WHERE user_id = ? AND topic_id = ?",
		userID, topicID,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgress(row scanner) (*progress.Progress, error) {
	var p progress.Progress
	var lastReview sql.NullString

	err := row.Scan(&p.UserID, &p.TopicID, &p.Mastery, &p.Attempts, &p.Corrects, &lastReview, &p.Alpha)
	if err != nil {
		return nil, err
	}

	if lastReview.Valid {
		t, err := time.Parse(time.RFC3339Nano, lastReview.String)
		if err != nil {
			return nil, err
		}
		p.LastReview = &t
	}
	return &p, nil
}

// ============================================================================
// Users
// ============================================================================

func (s *SQLiteStore) GetUserStats(ctx context.Context, userID string) (*streak.Stats, error) {
	var st streak.Stats
	var lastStudy sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, total_attempts, total_correct, current_streak, longest_streak, last_study_date FROM users WHERE id = ?",
		userID,
	).Scan(&st.UserID, &st.TotalAttempts, &st.TotalCorrect, &st.CurrentStreak, &st.LongestStreak, &lastStudy)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if lastStudy.Valid {
		t, err := time.Parse(time.RFC3339Nano, lastStudy.String)
		if err != nil {
			return nil, err
		}
		st.LastStudyDate = &t
	}
	return &st, nil
}

func (s *SQLiteStore) DeleteUser(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Attempts and progress cascade with their owner.
	if _, err := tx.ExecContext(ctx, "DELETE FROM attempts WHERE user_id = ?", userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM progress WHERE user_id = ?", userID); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", userID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (s *SQLiteStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, total_attempts, total_correct, current_streak, longest_streak FROM users ORDER BY total_correct DESC, longest_streak DESC, id ASC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.TotalAttempts, &e.TotalCorrect, &e.CurrentStreak, &e.LongestStreak); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ============================================================================
// Attempts
// ============================================================================

func (s *SQLiteStore) RecentAttempts(ctx context.Context, userID string, limit int) ([]*attempt.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, topic_id, question_id, user_answer, correct_answer, is_correct, time_taken, created_at FROM attempts WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []*attempt.Attempt
	for rows.Next() {
		var a attempt.Attempt
		var timeTaken sql.NullFloat64
		var createdAt string

		if err := rows.Scan(&a.ID, &a.UserID, &a.TopicID, &a.QuestionID, &a.UserAnswer, &a.CorrectAnswer, &a.IsCorrect, &timeTaken, &createdAt); err != nil {
			return nil, err
		}
		if timeTaken.Valid {
			a.TimeTaken = &timeTaken.Float64
		}
		t, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		a.Timestamp = t

		attempts = append(attempts, &a)
	}
	return attempts, rows.Err()
}

// ============================================================================
// Submission
// ============================================================================

func (s *SQLiteStore) RecordSubmission(ctx context.Context, att *attempt.Attempt, prog *progress.Progress, stats *streak.Stats) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, total_attempts, total_correct, current_streak, longest_streak, last_study_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			total_attempts = excluded.total_attempts,
			total_correct = excluded.total_correct,
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_study_date = excluded.last_study_date
	`, stats.UserID, stats.TotalAttempts, stats.TotalCorrect, stats.CurrentStreak, stats.LongestStreak, nullTime(stats.LastStudyDate))
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO progress (user_id, topic_id, mastery, attempts, corrects, last_review, ema_alpha)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, topic_id) DO UPDATE SET
			mastery = excluded.mastery,
			attempts = excluded.attempts,
			corrects = excluded.corrects,
			last_review = excluded.last_review,
			ema_alpha = excluded.ema_alpha
	`, prog.UserID, prog.TopicID, prog.Mastery, prog.Attempts, prog.Corrects, nullTime(prog.LastReview), prog.Alpha)
	if err != nil {
		return err
	}

	var timeTaken any
	if att.TimeTaken != nil {
		timeTaken = *att.TimeTaken
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO attempts (id, user_id, topic_id, question_id, user_answer, correct_answer, is_correct, time_taken, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, att.ID, att.UserID, att.TopicID, att.QuestionID, att.UserAnswer, att.CorrectAnswer, att.IsCorrect, timeTaken, att.Timestamp.UTC().Format(timeLayout))
	if err != nil {
		return err
	}

	return tx.Commit()
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeLayout)
}
