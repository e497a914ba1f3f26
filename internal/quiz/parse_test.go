package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func validQuizJSON(count int) json.RawMessage {
	type q struct {
		ID            int      `json:"id"`
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
		Explanation   string   `json:"explanation"`
	}
	var questions []q
	for i := 0; i < count; i++ {
		questions = append(questions, q{
			ID:            99, // deliberately wrong, parser reassigns
			Question:      fmt.Sprintf("What is %d+%d?", i, i),
			Options:       []string{"A) 1", "B) 2", "C) 3", "D) 4"},
			CorrectAnswer: "B",
			Explanation:   "Basic addition.",
		})
	}
	raw, _ := json.Marshal(map[string]any{"questions": questions})
	return raw
}

func TestParseQuestions_WellFormed(t *testing.T) {
	questions, err := ParseQuestions(validQuizJSON(5))
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(questions))
	}

	for i, q := range questions {
		if q.ID != i+1 {
			t.Errorf("question %d: ID = %d, want %d", i, q.ID, i+1)
		}
		if len(q.Options) != 4 {
			t.Errorf("question %d: %d options, want 4", i, len(q.Options))
		}
		if q.CorrectAnswer != "B" {
			t.Errorf("question %d: CorrectAnswer = %q, want B", i, q.CorrectAnswer)
		}
		// Labels stripped from option text.
		if q.Options[0].Text != "1" {
			t.Errorf("question %d: option text = %q, want label stripped", i, q.Options[0].Text)
		}
		if q.Options[0].Label != "A" {
			t.Errorf("question %d: option label = %q, want A", i, q.Options[0].Label)
		}
	}
}

func TestParseQuestions_MalformedJSON(t *testing.T) {
	_, err := ParseQuestions(json.RawMessage(`{"questions": [`))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ParseError", err)
	}
}

func TestParseQuestions_EmptyQuiz(t *testing.T) {
	_, err := ParseQuestions(json.RawMessage(`{"questions": []}`))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ParseError", err)
	}
}

func TestParseQuestions_WrongOptionCount(t *testing.T) {
	raw := json.RawMessage(`{"questions": [{
		"id": 1, "question": "Pick one", "options": ["A) x", "B) y", "C) z"],
		"correct_answer": "A", "explanation": "because"
	}]}`)
	_, err := ParseQuestions(raw)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ParseError", err)
	}
}

func TestParseQuestions_CorrectAnswerOutsideLabels(t *testing.T) {
	raw := json.RawMessage(`{"questions": [{
		"id": 1, "question": "Pick one", "options": ["A) w", "B) x", "C) y", "D) z"],
		"correct_answer": "E", "explanation": "because"
	}]}`)
	_, err := ParseQuestions(raw)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ParseError", err)
	}
}

func TestParseQuestions_OneBadQuestionFailsAll(t *testing.T) {
	raw := json.RawMessage(`{"questions": [
		{"id": 1, "question": "Fine", "options": ["A) a", "B) b", "C) c", "D) d"],
		 "correct_answer": "A", "explanation": "ok"},
		{"id": 2, "question": "", "options": ["A) a", "B) b", "C) c", "D) d"],
		 "correct_answer": "A", "explanation": "ok"}
	]}`)
	if _, err := ParseQuestions(raw); err == nil {
		t.Fatal("expected error for quiz containing an invalid question")
	}
}

func TestParseQuestions_LowercaseCorrectAnswer(t *testing.T) {
	raw := json.RawMessage(`{"questions": [{
		"id": 1, "question": "Pick one", "options": ["A) w", "B) x", "C) y", "D) z"],
		"correct_answer": " c ", "explanation": "because"
	}]}`)
	questions, err := ParseQuestions(raw)
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	if questions[0].CorrectAnswer != "C" {
		t.Errorf("CorrectAnswer = %q, want C", questions[0].CorrectAnswer)
	}
}

func TestGrade(t *testing.T) {
	questions, err := ParseQuestions(validQuizJSON(4))
	if err != nil {
		t.Fatal(err)
	}

	// Two right, one wrong, one unanswered.
	chosen := map[int]string{0: "B", 1: "B", 2: "A"}
	if got := Grade(questions, chosen); got != 50 {
		t.Errorf("Grade = %v, want 50", got)
	}
}

func TestGrade_Empty(t *testing.T) {
	if got := Grade(nil, nil); got != 0 {
		t.Errorf("Grade(nil) = %v, want 0", got)
	}
}
