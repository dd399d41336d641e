package progress

import "time"

const (
	// DefaultMastery is the prior for a topic the user has never been
	// assessed on. Kept above zero so untouched topics don't decay into
	// permanent low priority.
	DefaultMastery = 0.2

	// DefaultAlpha is the EMA smoothing factor. Higher alpha weighs the
	// most recent outcome more heavily.
	DefaultAlpha = 0.3
)

// Progress tracks one user's mastery of one topic.
type Progress struct {
	UserID     string
	TopicID    string
	Mastery    float64 // always within [0,1]
	Attempts   int
	Corrects   int
	LastReview *time.Time
	Alpha      float64
}

// New materializes a fresh record with the default prior. Created lazily on
// a user's first attempt at a topic.
func New(userID, topicID string) *Progress {
	return &Progress{
		UserID:  userID,
		TopicID: topicID,
		Mastery: DefaultMastery,
		Alpha:   DefaultAlpha,
	}
}

// UpdateMastery folds one attempt outcome into the prior mastery:
//
//	new = alpha*outcome + (1-alpha)*prior
//
// A convex combination of values in [0,1] stays in [0,1]; the clamp only
// absorbs floating-point drift or corrupt stored state.
func UpdateMastery(prior, alpha float64, isCorrect bool) float64 {
	outcome := 0.0
	if isCorrect {
		outcome = 1.0
	}
	return Clamp(alpha*outcome + (1-alpha)*prior)
}

// ApplyAttempt records one answer outcome: updates mastery, bumps the
// counters and stamps the review time.
func (p *Progress) ApplyAttempt(isCorrect bool, now time.Time) {
	alpha := p.Alpha
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
		p.Alpha = alpha
	}

	p.Mastery = UpdateMastery(p.Mastery, alpha, isCorrect)
	p.Attempts++
	if isCorrect {
		p.Corrects++
	}
	p.LastReview = &now
}

// Clamp bounds a mastery value to [0,1].
func Clamp(m float64) float64 {
	if m < 0 {
		return 0
	}
	if m > 1 {
		return 1
	}
	return m
}
