package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testEventRepo(t *testing.T) (*Store, EventRepo) {
	t.Helper()
	s := openTestStore(t)
	repo, err := s.EventRepo()
	if err != nil {
		t.Fatalf("event repo: %v", err)
	}
	return s, repo
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestQuizEventRoundTrip(t *testing.T) {
	_, repo := testEventRepo(t)
	ctx := context.Background()

	err := repo.AppendQuizAttempt(ctx, QuizEventData{
		StudentID:     "ravi",
		Topic:         "photosynthesis",
		Difficulty:    "medium",
		QuestionCount: 5,
		Accuracy:      80,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryQuizEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	e := events[0]
	if e.StudentID != "ravi" || e.Topic != "photosynthesis" || e.Accuracy != 80 {
		t.Errorf("event = %+v", e)
	}
	if e.Sequence == 0 {
		t.Error("expected a non-zero sequence")
	}
	if e.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
}

func TestQuizEventsNewestFirst(t *testing.T) {
	_, repo := testEventRepo(t)
	ctx := context.Background()

	for _, topic := range []string{"algebra", "history", "biology"} {
		err := repo.AppendQuizAttempt(ctx, QuizEventData{
			StudentID: "s", Topic: topic, Difficulty: "easy", QuestionCount: 2, Accuracy: 50,
		})
		if err != nil {
			t.Fatalf("append %s: %v", topic, err)
		}
	}

	events, err := repo.QueryQuizEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2 (limit)", len(events))
	}
	if events[0].Topic != "biology" || events[1].Topic != "history" {
		t.Errorf("order = %s, %s; want biology, history", events[0].Topic, events[1].Topic)
	}
}

func TestQuizEventsStudentFilter(t *testing.T) {
	_, repo := testEventRepo(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "a"} {
		err := repo.AppendQuizAttempt(ctx, QuizEventData{
			StudentID: id, Topic: "x", Difficulty: "easy", QuestionCount: 1, Accuracy: 100,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryQuizEvents(ctx, QueryOpts{Student: "a"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("events for a = %d, want 2", len(events))
	}
}

func TestLLMEventRoundTrip(t *testing.T) {
	_, repo := testEventRepo(t)
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		Purpose:      "quiz-gen",
		InputTokens:  120,
		OutputTokens: 300,
		LatencyMs:    850,
		Success:      true,
		RequestBody:  `{"messages":[]}`,
		ResponseBody: `{"questions":[]}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz-gen"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Model != "gpt-4o-mini" || !events[0].Success {
		t.Errorf("event = %+v", events[0])
	}

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ResponseBody != `{"questions":[]}` {
		t.Errorf("get = %+v", got)
	}
}

func TestSequenceSharedAcrossEventTypes(t *testing.T) {
	_, repo := testEventRepo(t)
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Success: true}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	if err := repo.AppendQuizAttempt(ctx, QuizEventData{StudentID: "s", Topic: "t", Difficulty: "easy", QuestionCount: 1, Accuracy: 0}); err != nil {
		t.Fatalf("append quiz: %v", err)
	}

	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query llm: %v", err)
	}
	quizEvents, err := repo.QueryQuizEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query quiz: %v", err)
	}

	if quizEvents[0].Sequence <= llmEvents[0].Sequence {
		t.Errorf("quiz sequence %d should follow llm sequence %d",
			quizEvents[0].Sequence, llmEvents[0].Sequence)
	}
}
