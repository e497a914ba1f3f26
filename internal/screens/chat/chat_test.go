package chat

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutoriz/internal/difficulty"
	"github.com/abhisek/tutoriz/internal/llm"
	"github.com/abhisek/tutoriz/internal/planner"
	"github.com/abhisek/tutoriz/internal/profile"
	"github.com/abhisek/tutoriz/internal/quiz"
	"github.com/abhisek/tutoriz/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	quizEvents []store.QuizEventData
}

func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) QueryLLMEvents(_ context.Context, _ store.QueryOpts) ([]store.LLMRequestEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) GetLLMEvent(_ context.Context, _ int) (*store.LLMRequestEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendQuizAttempt(_ context.Context, data store.QuizEventData) error {
	m.quizEvents = append(m.quizEvents, data)
	return nil
}
func (m *mockEventRepo) QueryQuizEvents(_ context.Context, _ store.QueryOpts) ([]store.QuizEventRecord, error) {
	return nil, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testChatScreen() (*ChatScreen, *mockEventRepo) {
	repo := &mockEventRepo{}
	s := New(nil, profile.NewStore(), repo, "test-student")
	return s, repo
}

func twoQuestions() []quiz.Question {
	mk := func(id int, text string) quiz.Question {
		return quiz.Question{
			ID:   id,
			Text: text,
			Options: []quiz.Choice{
				{Label: "A", Text: "first"},
				{Label: "B", Text: "second"},
				{Label: "C", Text: "third"},
				{Label: "D", Text: "fourth"},
			},
			CorrectAnswer: "B",
			Explanation:   "second is right",
		}
	}
	return []quiz.Question{mk(1, "Question one?"), mk(2, "Question two?")}
}

func TestChatScreen_Title(t *testing.T) {
	s, _ := testChatScreen()
	if s.Title() != "Tutor" {
		t.Errorf("Title = %q, want Tutor", s.Title())
	}
}

func TestChatScreen_ChatReply(t *testing.T) {
	s, _ := testChatScreen()

	scr, _ := s.Update(planDoneMsg{Result: &planner.Result{
		Action: planner.ActionChat,
		Reply:  "Hello! What would you like to study?",
	}})
	ss := scr.(*ChatScreen)

	last := ss.entries[len(ss.entries)-1]
	if last.role != roleTutor || !strings.Contains(last.text, "study") {
		t.Errorf("last entry = %+v", last)
	}
	if ss.thinking {
		t.Error("thinking should clear when the plan finishes")
	}
}

func TestChatScreen_QuizStarts(t *testing.T) {
	s, _ := testChatScreen()

	scr, _ := s.Update(planDoneMsg{Result: &planner.Result{
		Action:     planner.ActionQuiz,
		Topic:      "photosynthesis",
		Difficulty: difficulty.Medium,
		Quiz:       twoQuestions(),
	}})
	ss := scr.(*ChatScreen)

	if ss.quiz == nil {
		t.Fatal("expected an active quiz")
	}
	if ss.quiz.topic != "photosynthesis" {
		t.Errorf("topic = %q", ss.quiz.topic)
	}
	if len(ss.quiz.questions) != 2 {
		t.Errorf("questions = %d, want 2", len(ss.quiz.questions))
	}

	hints := ss.KeyHints()
	if len(hints) == 0 || hints[0].Key != "↑↓" {
		t.Errorf("quiz key hints = %v", hints)
	}
}

func TestChatScreen_QuizCompletion(t *testing.T) {
	s, repo := testChatScreen()

	scr, _ := s.Update(planDoneMsg{Result: &planner.Result{
		Action:     planner.ActionQuiz,
		Topic:      "fractions",
		Difficulty: difficulty.Medium,
		Quiz:       twoQuestions(),
	}})
	ss := scr.(*ChatScreen)

	// First question: pick B (correct), then continue.
	scr, _ = ss.Update(keyPress('b'))
	ss = scr.(*ChatScreen)
	if !ss.quiz.awaitingNext {
		t.Fatal("expected awaitingNext after answering")
	}
	scr, _ = ss.Update(keyPress(' '))
	ss = scr.(*ChatScreen)

	// Second question: pick A (wrong), then continue to finish.
	scr, _ = ss.Update(keyPress('a'))
	ss = scr.(*ChatScreen)
	scr, _ = ss.Update(keyPress(' '))
	ss = scr.(*ChatScreen)

	if ss.quiz != nil {
		t.Fatal("expected quiz to finish after the last question")
	}

	// 1/2 correct folds into the mastery profile.
	acc, ok := ss.profiles.TopicAccuracy("test-student", "fractions")
	if !ok || acc != 50 {
		t.Errorf("TopicAccuracy = %.0f/%v, want 50/true", acc, ok)
	}

	// Attempt event persisted.
	if len(repo.quizEvents) != 1 {
		t.Fatalf("quiz events = %d, want 1", len(repo.quizEvents))
	}
	e := repo.quizEvents[0]
	if e.Topic != "fractions" || e.Accuracy != 50 || e.QuestionCount != 2 {
		t.Errorf("quiz event = %+v", e)
	}

	// Summary names the score and the next difficulty.
	last := ss.entries[len(ss.entries)-1]
	if !strings.Contains(last.text, "1/2") || !strings.Contains(last.text, "medium") {
		t.Errorf("summary = %q", last.text)
	}
}

func TestChatScreen_QuizUnavailableMessage(t *testing.T) {
	s, _ := testChatScreen()

	scr, _ := s.Update(planDoneMsg{Result: &planner.Result{
		Action:  planner.ActionQuiz,
		Message: "Could not generate a quiz on algebra right now. Try asking again.",
	}})
	ss := scr.(*ChatScreen)

	if ss.quiz != nil {
		t.Error("no quiz should start without questions")
	}
	last := ss.entries[len(ss.entries)-1]
	if last.role != roleNote || !strings.Contains(last.text, "Try asking again") {
		t.Errorf("last entry = %+v", last)
	}
}

func TestChatScreen_ExplanationWithPractice(t *testing.T) {
	s, _ := testChatScreen()

	scr, _ := s.Update(planDoneMsg{Result: &planner.Result{
		Action:       planner.ActionExplanation,
		Topic:        "gravity",
		Explanation:  "Gravity pulls masses together.",
		PlanExecuted: []string{"Identified topic: gravity"},
		PracticeQuiz: twoQuestions(),
	}})
	ss := scr.(*ChatScreen)

	if ss.quiz == nil {
		t.Fatal("expected practice quiz to start")
	}
	if ss.quiz.level != difficulty.Easy {
		t.Errorf("practice level = %s, want easy", ss.quiz.level)
	}
}

func TestChatScreen_ErrorsAreRetryHints(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&llm.ErrRateLimit{}, "rate limited"},
		{&llm.ErrProviderUnavailable{}, "unreachable"},
	}
	for _, tt := range tests {
		got := describeError(tt.err)
		if !strings.Contains(got, tt.want) {
			t.Errorf("describeError(%T) = %q, want mention of %q", tt.err, got, tt.want)
		}
	}
}

func TestChatScreen_View(t *testing.T) {
	s, _ := testChatScreen()
	if s.View(80, 24) == "" {
		t.Error("expected non-empty conversation view")
	}

	scr, _ := s.Update(planDoneMsg{Result: &planner.Result{
		Action:     planner.ActionQuiz,
		Topic:      "algebra",
		Difficulty: difficulty.Easy,
		Quiz:       twoQuestions(),
	}})
	ss := scr.(*ChatScreen)
	view := ss.View(80, 24)
	if !strings.Contains(view, "algebra") {
		t.Errorf("quiz view missing topic: %q", view)
	}
}

func TestFormatReport(t *testing.T) {
	store := profile.NewStore()
	if err := store.ReportTopicResult("s", "algebra", 90); err != nil {
		t.Fatal(err)
	}
	if err := store.ReportTopicResult("s", "history", 30); err != nil {
		t.Fatal(err)
	}
	store.RecordQuiz("s", profile.QuizAttempt{Topic: "algebra"})

	report := store.ProgressReport("s")
	if report == nil {
		t.Fatal("nil report")
	}

	out := formatReport(report, "Focus on: history")
	if !strings.Contains(out, "algebra") || !strings.Contains(out, "history") {
		t.Errorf("report missing topics: %q", out)
	}
	if !strings.Contains(out, "Focus on: history") {
		t.Errorf("report missing recommendation: %q", out)
	}
	if !strings.Contains(out, "90%") {
		t.Errorf("report missing accuracy: %q", out)
	}
}
