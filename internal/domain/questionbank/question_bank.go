package questionbank

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/JAGATH123/ai-student-partner/internal/id"
)

var (
	ErrTopicNotFound    = errors.New("topic not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// Question is a single entry in the catalog. Answer holds the canonical
// correct answer and is never sent to clients.
type Question struct {
	ID      id.QuestionID
	Prompt  string
	Options []string
	Answer  string
}

// IsCorrect reports whether the given answer matches the canonical one.
// Comparison is case-insensitive on the trimmed value.
func (q Question) IsCorrect(answer string) bool {
	return NormalizeAnswer(answer) == NormalizeAnswer(q.Answer)
}

// NormalizeAnswer trims surrounding whitespace and upper-cases an answer so
// "A" and " a " compare equal.
func NormalizeAnswer(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Topic groups the questions of one study topic.
type Topic struct {
	ID          string
	Title       string
	SubjectName string
	Questions   []Question
}

// TopicRef is a lightweight view of a topic used by listings and the
// recommendation ranker.
type TopicRef struct {
	ID          string
	Title       string
	SubjectName string
}

// Subject groups topics under a named subject.
type Subject struct {
	Name   string
	Topics []Topic
}

// Bank is the read-only question catalog. It is loaded once at startup and
// injected where needed; all lookups are index-backed and safe for
// concurrent use.
type Bank struct {
	subjects []Subject
	topics   []TopicRef // catalog order
	byTopic  map[string]*Topic
}

// New builds a Bank from subjects, assigning each question its composite id
// from the topic and its position.
func New(subjects []Subject) (*Bank, error) {
	b := &Bank{
		subjects: subjects,
		byTopic:  make(map[string]*Topic),
	}

	for si := range subjects {
		subject := &subjects[si]
		for ti := range subject.Topics {
			topic := &subject.Topics[ti]
			if topic.ID == "" {
				return nil, fmt.Errorf("subject %q: topic with empty id", subject.Name)
			}
			if _, dup := b.byTopic[topic.ID]; dup {
				return nil, fmt.Errorf("duplicate topic id %q", topic.ID)
			}

			topic.SubjectName = subject.Name
			for qi := range topic.Questions {
				q := &topic.Questions[qi]
				if q.Answer == "" {
					return nil, fmt.Errorf("topic %q: question %d has no answer", topic.ID, qi+1)
				}
				q.ID = id.New(topic.ID, qi)
			}

			b.byTopic[topic.ID] = topic
			b.topics = append(b.topics, TopicRef{
				ID:          topic.ID,
				Title:       topic.Title,
				SubjectName: subject.Name,
			})
		}
	}

	return b, nil
}

// catalog file shapes
type bankFile struct {
	Subjects []subjectFile `json:"subjects"`
}

type subjectFile struct {
	Name   string      `json:"name"`
	Topics []topicFile `json:"topics"`
}

type topicFile struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Questions []questionFile `json:"questions"`
}

type questionFile struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// Load reads the catalog JSON file and builds a Bank.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	var file bankFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	subjects := make([]Subject, 0, len(file.Subjects))
	for _, s := range file.Subjects {
		subject := Subject{Name: s.Name}
		for _, t := range s.Topics {
			topic := Topic{ID: t.ID, Title: t.Title}
			for _, q := range t.Questions {
				topic.Questions = append(topic.Questions, Question{
					Prompt:  q.Prompt,
					Options: q.Options,
					Answer:  q.Answer,
				})
			}
			subject.Topics = append(subject.Topics, topic)
		}
		subjects = append(subjects, subject)
	}

	return New(subjects)
}

// Subjects returns the catalog in its original order.
func (b *Bank) Subjects() []Subject {
	return b.subjects
}

// Topics returns every topic in catalog order.
func (b *Bank) Topics() []TopicRef {
	return b.topics
}

// Topic looks up a topic by id.
func (b *Bank) Topic(topicID string) (*Topic, error) {
	topic, ok := b.byTopic[topicID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTopicNotFound, topicID)
	}
	return topic, nil
}

// Question resolves a wire-form question id within a topic. The encoded
// topic must match and the index must be in range.
func (b *Bank) Question(topicID, questionID string) (*Question, error) {
	topic, err := b.Topic(topicID)
	if err != nil {
		return nil, err
	}

	qid, err := id.Parse(questionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuestionNotFound, err)
	}
	if qid.TopicID != topicID || qid.Index >= len(topic.Questions) {
		return nil, fmt.Errorf("%w: %q", ErrQuestionNotFound, questionID)
	}

	return &topic.Questions[qid.Index], nil
}
