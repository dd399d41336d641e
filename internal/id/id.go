package id

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a question id string cannot be decoded.
var ErrMalformed = errors.New("malformed question id")

// QuestionID identifies a question by its topic and position within that
// topic's question list. The wire form is "<topicID>_Q<n>" where n is the
// 1-based position.
type QuestionID struct {
	TopicID string
	Index   int // zero-based
}

// New builds a QuestionID for the index-th question of a topic.
func New(topicID string, index int) QuestionID {
	return QuestionID{TopicID: topicID, Index: index}
}

// String encodes the id in its wire form.
func (q QuestionID) String() string {
	return fmt.Sprintf("%s_Q%d", q.TopicID, q.Index+1)
}

// Parse decodes a wire-form question id and validates it.
func Parse(s string) (QuestionID, error) {
	sep := strings.LastIndex(s, "_Q")
	if sep <= 0 {
		return QuestionID{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	n, err := strconv.Atoi(s[sep+2:])
	if err != nil || n < 1 {
		return QuestionID{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	return QuestionID{TopicID: s[:sep], Index: n - 1}, nil
}
