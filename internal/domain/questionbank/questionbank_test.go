package questionbank_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JAGATH123/ai-student-partner/internal/domain/questionbank"
)

func testBank(t *testing.T) *questionbank.Bank {
	t.Helper()

	bank, err := questionbank.New([]questionbank.Subject{
		{
			Name: "Mathematics",
			Topics: []questionbank.Topic{
				{
					ID:    "algebra",
					Title: "Algebra Basics",
					Questions: []questionbank.Question{
						{Prompt: "2x = 4, x = ?", Options: []string{"1", "2"}, Answer: "B"},
						{Prompt: "x + 1 = 3, x = ?", Options: []string{"2", "3"}, Answer: "A"},
					},
				},
				{
					ID:    "geometry",
					Title: "Geometry",
					Questions: []questionbank.Question{
						{Prompt: "Angles of a triangle sum to?", Answer: "180"},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("failed to build bank: %v", err)
	}
	return bank
}

func TestTopics_CatalogOrder(t *testing.T) {
	bank := testBank(t)

	topics := bank.Topics()
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(topics))
	}
	if topics[0].ID != "algebra" || topics[1].ID != "geometry" {
		t.Errorf("unexpected topic order: %v", topics)
	}
	if topics[0].SubjectName != "Mathematics" {
		t.Errorf("expected subject name to be set, got %q", topics[0].SubjectName)
	}
}

func TestQuestion_CompositeID(t *testing.T) {
	bank := testBank(t)

	q, err := bank.Question("algebra", "algebra_Q2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Prompt != "x + 1 = 3, x = ?" {
		t.Errorf("resolved wrong question: %q", q.Prompt)
	}
}

func TestQuestion_NotFound(t *testing.T) {
	bank := testBank(t)

	cases := []struct {
		name               string
		topicID, questionID string
		want               error
	}{
		{"unknown topic", "biology", "biology_Q1", questionbank.ErrTopicNotFound},
		{"index out of range", "algebra", "algebra_Q9", questionbank.ErrQuestionNotFound},
		{"topic mismatch", "algebra", "geometry_Q1", questionbank.ErrQuestionNotFound},
		{"malformed id", "algebra", "nonsense", questionbank.ErrQuestionNotFound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := bank.Question(c.topicID, c.questionID)
			if !errors.Is(err, c.want) {
				t.Errorf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestIsCorrect_Normalizes(t *testing.T) {
	q := questionbank.Question{Answer: "a "}

	if !q.IsCorrect("A") {
		t.Error("expected case/whitespace-insensitive match")
	}
	if q.IsCorrect("B") {
		t.Error("expected mismatch for wrong answer")
	}
}

func TestNew_RejectsDuplicateTopics(t *testing.T) {
	_, err := questionbank.New([]questionbank.Subject{
		{Name: "S", Topics: []questionbank.Topic{{ID: "t"}, {ID: "t"}}},
	})
	if err == nil {
		t.Error("expected error for duplicate topic id, got nil")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	data := `{
		"subjects": [{
			"name": "History",
			"topics": [{
				"id": "ww2",
				"title": "World War II",
				"questions": [{"prompt": "Year it ended?", "options": ["1944", "1945"], "answer": "B"}]
			}]
		}]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	bank, err := questionbank.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q, err := bank.Question("ww2", "ww2_Q1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.IsCorrect(" b") {
		t.Error("expected normalized answer to match")
	}
}
