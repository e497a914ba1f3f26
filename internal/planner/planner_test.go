package planner

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/tutoriz/internal/difficulty"
	"github.com/abhisek/tutoriz/internal/llm"
	"github.com/abhisek/tutoriz/internal/profile"
	"github.com/abhisek/tutoriz/internal/quiz"
	"github.com/abhisek/tutoriz/internal/retrieval"
)

// stubSearcher implements retrieval.Searcher with fixed documents.
type stubSearcher struct {
	docs []retrieval.Document
}

func (s *stubSearcher) Search(_ context.Context, _ string, k int) ([]retrieval.Document, error) {
	if k > len(s.docs) {
		k = len(s.docs)
	}
	return s.docs[:k], nil
}

func (s *stubSearcher) Add(_ context.Context, docs []retrieval.Document) ([]string, error) {
	s.docs = append(s.docs, docs...)
	return make([]string, len(docs)), nil
}

func quizJSON(count int) json.RawMessage {
	var sb strings.Builder
	sb.WriteString(`{"questions": [`)
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"id": 1, "question": "What holds?",
			"options": ["A) w", "B) x", "C) y", "D) z"],
			"correct_answer": "A", "explanation": "because"}`)
	}
	sb.WriteString(`]}`)
	return json.RawMessage(sb.String())
}

func textResponse(s string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(s)}
}

func newTestPlanner(mock *llm.MockProvider, profiles *profile.Store, docs ...retrieval.Document) *Planner {
	retriever := retrieval.NewRetriever(&stubSearcher{docs: docs}, 3)
	composer := quiz.NewComposer(mock, quiz.DefaultConfig())
	return New(mock, retriever, composer, profiles, DefaultConfig())
}

func TestParseIntent(t *testing.T) {
	cases := []struct {
		raw  string
		want Intent
	}{
		{"EXPLANATION_REQUEST", IntentExplanation},
		{"  quiz_request\n", IntentQuiz},
		{"The intent is PROGRESS_CHECK.", IntentProgress},
		{"GENERAL_CHAT", IntentChat},
		{"no idea", IntentChat},
		{"", IntentChat},
	}
	for _, c := range cases {
		if got := parseIntent(c.raw); got != c.want {
			t.Errorf("parseIntent(%q) = %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestDecideAction_Chat(t *testing.T) {
	mock := llm.NewMockProvider(
		textResponse("GENERAL_CHAT"),
		textResponse("Hello! Ready to study?"),
	)
	p := newTestPlanner(mock, profile.NewStore())

	res, err := p.DecideAction(context.Background(), "amit", "hey there")
	if err != nil {
		t.Fatalf("DecideAction: %v", err)
	}
	if res.Action != ActionChat {
		t.Fatalf("Action = %s, want chat", res.Action)
	}
	if res.Reply != "Hello! Ready to study?" {
		t.Errorf("Reply = %q", res.Reply)
	}

	// Chat call carries the tutoring persona.
	if mock.Calls[1].System != chatSystemPrompt {
		t.Errorf("chat system prompt = %q", mock.Calls[1].System)
	}
}

func TestDecideAction_ClassifierFailureFallsBackToChat(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrRateLimit{}},
		textResponse("Still here to help."),
	)
	p := newTestPlanner(mock, profile.NewStore())

	res, err := p.DecideAction(context.Background(), "amit", "hello?")
	if err != nil {
		t.Fatalf("DecideAction: %v", err)
	}
	if res.Action != ActionChat {
		t.Errorf("Action = %s, want chat fallback", res.Action)
	}
}

func TestDecideAction_Explanation(t *testing.T) {
	mock := llm.NewMockProvider(
		textResponse("EXPLANATION_REQUEST"),
		textResponse("Newton's laws describe motion."),
		textResponse("newtons laws"),
		llm.MockResponse{Content: quizJSON(2)},
	)
	p := newTestPlanner(mock, profile.NewStore(),
		retrieval.Document{Text: "An object in motion stays in motion."})

	res, err := p.DecideAction(context.Background(), "amit", "explain newton's laws")
	if err != nil {
		t.Fatalf("DecideAction: %v", err)
	}

	if res.Action != ActionExplanation {
		t.Fatalf("Action = %s, want explanation", res.Action)
	}
	if res.Explanation != "Newton's laws describe motion." {
		t.Errorf("Explanation = %q", res.Explanation)
	}
	if res.Topic != "newtons laws" {
		t.Errorf("Topic = %q", res.Topic)
	}
	if len(res.PracticeQuiz) != 2 {
		t.Errorf("PracticeQuiz len = %d, want 2", len(res.PracticeQuiz))
	}

	wantPlan := []string{
		"Identified topic: newtons laws",
		"Retrieved relevant study materials",
		"Generated explanation",
		"Created 2 practice questions",
	}
	if len(res.PlanExecuted) != len(wantPlan) {
		t.Fatalf("PlanExecuted = %v", res.PlanExecuted)
	}
	for i, step := range wantPlan {
		if res.PlanExecuted[i] != step {
			t.Errorf("PlanExecuted[%d] = %q, want %q", i, res.PlanExecuted[i], step)
		}
	}

	// Explanation prompt is grounded in the retrieved chunk.
	if !strings.Contains(mock.Calls[1].Messages[0].Content, "Source 1: An object in motion stays in motion.") {
		t.Errorf("explanation prompt missing retrieved material: %q", mock.Calls[1].Messages[0].Content)
	}
	// Practice quiz is easy and grounded in the same material.
	if !strings.Contains(mock.Calls[3].Messages[0].Content, "easy") {
		t.Errorf("practice quiz prompt not easy: %q", mock.Calls[3].Messages[0].Content)
	}
}

func TestDecideAction_ExplanationSurvivesBrokenPracticeQuiz(t *testing.T) {
	mock := llm.NewMockProvider(
		textResponse("EXPLANATION_REQUEST"),
		textResponse("A clear explanation."),
		textResponse("algebra"),
		llm.MockResponse{Content: json.RawMessage(`{"questions": []}`)},
	)
	p := newTestPlanner(mock, profile.NewStore())

	res, err := p.DecideAction(context.Background(), "amit", "explain algebra")
	if err != nil {
		t.Fatalf("DecideAction: %v", err)
	}
	if res.Explanation != "A clear explanation." {
		t.Errorf("Explanation = %q", res.Explanation)
	}
	if len(res.PracticeQuiz) != 0 {
		t.Errorf("PracticeQuiz = %v, want none", res.PracticeQuiz)
	}
	if res.PlanExecuted[len(res.PlanExecuted)-1] != "Practice questions unavailable" {
		t.Errorf("final plan step = %q", res.PlanExecuted[len(res.PlanExecuted)-1])
	}
}

func TestDecideAction_QuizFirstTopicDefaultsMedium(t *testing.T) {
	mock := llm.NewMockProvider(
		textResponse("QUIZ_REQUEST"),
		textResponse("probability"),
		llm.MockResponse{Content: quizJSON(5)},
	)
	p := newTestPlanner(mock, profile.NewStore())

	res, err := p.DecideAction(context.Background(), "amit", "quiz me on probability")
	if err != nil {
		t.Fatalf("DecideAction: %v", err)
	}
	if res.Action != ActionQuiz {
		t.Fatalf("Action = %s, want quiz", res.Action)
	}
	if res.Difficulty != difficulty.Medium {
		t.Errorf("Difficulty = %s, want medium for unseen topic", res.Difficulty)
	}
	if len(res.Quiz) != 5 {
		t.Errorf("Quiz len = %d, want 5", len(res.Quiz))
	}
}

func TestDecideAction_QuizAdaptsToAccuracy(t *testing.T) {
	profiles := profile.NewStore()
	if err := profiles.ReportTopicResult("amit", "probability", 90); err != nil {
		t.Fatal(err)
	}

	mock := llm.NewMockProvider(
		textResponse("QUIZ_REQUEST"),
		textResponse("probability"),
		llm.MockResponse{Content: quizJSON(5)},
	)
	p := newTestPlanner(mock, profiles)

	res, err := p.DecideAction(context.Background(), "amit", "quiz me on probability")
	if err != nil {
		t.Fatal(err)
	}
	if res.Difficulty != difficulty.Hard {
		t.Errorf("Difficulty = %s, want hard at 90%% accuracy", res.Difficulty)
	}
	if !strings.Contains(mock.Calls[2].Messages[0].Content, "hard") {
		t.Errorf("quiz prompt difficulty: %q", mock.Calls[2].Messages[0].Content)
	}
}

func TestDecideAction_QuizParseFailureDegradesToMessage(t *testing.T) {
	mock := llm.NewMockProvider(
		textResponse("QUIZ_REQUEST"),
		textResponse("probability"),
		llm.MockResponse{Content: json.RawMessage(`not even json`)},
	)
	p := newTestPlanner(mock, profile.NewStore())

	res, err := p.DecideAction(context.Background(), "amit", "quiz me")
	if err != nil {
		t.Fatalf("parse failure must not surface as an error, got %v", err)
	}
	if len(res.Quiz) != 0 {
		t.Errorf("Quiz = %v, want empty", res.Quiz)
	}
	if res.Message == "" {
		t.Error("expected a no-quiz message")
	}
}

func TestDecideAction_QuizTransportErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(
		textResponse("QUIZ_REQUEST"),
		textResponse("probability"),
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := newTestPlanner(mock, profile.NewStore())

	_, err := p.DecideAction(context.Background(), "amit", "quiz me")
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestDecideAction_ProgressNoData(t *testing.T) {
	mock := llm.NewMockProvider(textResponse("PROGRESS_CHECK"))
	p := newTestPlanner(mock, profile.NewStore())

	res, err := p.DecideAction(context.Background(), "amit", "how am I doing?")
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != ActionProgress {
		t.Fatalf("Action = %s, want progress", res.Action)
	}
	if res.Report != nil {
		t.Error("Report should be nil for an unseen student")
	}
	if res.Message != noProgressMessage {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestDecideAction_ProgressReport(t *testing.T) {
	profiles := profile.NewStore()
	profiles.ReportTopicResult("amit", "algebra", 30)
	profiles.ReportTopicResult("amit", "geometry", 90)

	mock := llm.NewMockProvider(textResponse("PROGRESS_CHECK"))
	p := newTestPlanner(mock, profiles)

	res, err := p.DecideAction(context.Background(), "amit", "show my progress")
	if err != nil {
		t.Fatal(err)
	}
	if res.Report == nil {
		t.Fatal("Report is nil")
	}
	if res.Recommendation != "Focus on: algebra" {
		t.Errorf("Recommendation = %q", res.Recommendation)
	}
	// Only the classifier ran; progress needs no other collaborator.
	if mock.CallCount() != 1 {
		t.Errorf("CallCount = %d, want 1", mock.CallCount())
	}
}

func TestBuildRecommendation(t *testing.T) {
	if got := buildRecommendation(nil); !strings.HasPrefix(got, "Great job") {
		t.Errorf("empty weak list: %q", got)
	}
	got := buildRecommendation([]string{"a", "b", "c", "d", "e"})
	if got != "Focus on: a, b, c" {
		t.Errorf("capped recommendation = %q", got)
	}
}

func TestExtractTopic_EmptyFallsBackToQuery(t *testing.T) {
	mock := llm.NewMockProvider(textResponse(`""`))
	p := newTestPlanner(mock, profile.NewStore())

	topic, err := p.extractTopic(context.Background(), "quiz me on calculus")
	if err != nil {
		t.Fatal(err)
	}
	if topic != "quiz me on calculus" {
		t.Errorf("topic = %q, want query fallback", topic)
	}
}
