package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/tutoriz/internal/store"
)

// recordingRepo implements store.EventRepo and captures appended events.
type recordingRepo struct {
	llmEvents []store.LLMRequestEventData
	appendErr error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.llmEvents = append(r.llmEvents, data)
	return nil
}

func (r *recordingRepo) QueryLLMEvents(_ context.Context, _ store.QueryOpts) ([]store.LLMRequestEventRecord, error) {
	return nil, nil
}

func (r *recordingRepo) GetLLMEvent(_ context.Context, _ int) (*store.LLMRequestEventRecord, error) {
	return nil, nil
}

func (r *recordingRepo) AppendQuizAttempt(_ context.Context, _ store.QuizEventData) error {
	return nil
}

func (r *recordingRepo) QueryQuizEvents(_ context.Context, _ store.QueryOpts) ([]store.QuizEventRecord, error) {
	return nil, nil
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`"hello"`),
		Usage:   Usage{InputTokens: 10, OutputTokens: 5},
	})
	p := WithLogging(mock, repo)

	ctx := WithPurpose(context.Background(), "chat")
	req := Request{
		System:   "be helpful",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(repo.llmEvents) != 1 {
		t.Fatalf("logged %d events, want 1", len(repo.llmEvents))
	}
	e := repo.llmEvents[0]
	if !e.Success {
		t.Error("Success = false")
	}
	if e.Purpose != "chat" {
		t.Errorf("Purpose = %q, want chat", e.Purpose)
	}
	if e.InputTokens != 10 || e.OutputTokens != 5 {
		t.Errorf("tokens = %d/%d, want 10/5", e.InputTokens, e.OutputTokens)
	}
	if !strings.Contains(e.RequestBody, "be helpful") || !strings.Contains(e.RequestBody, "hi") {
		t.Errorf("RequestBody = %q", e.RequestBody)
	}
	if e.ResponseBody != `"hello"` {
		t.Errorf("ResponseBody = %q", e.ResponseBody)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, repo)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	if len(repo.llmEvents) != 1 {
		t.Fatalf("logged %d events, want 1", len(repo.llmEvents))
	}
	e := repo.llmEvents[0]
	if e.Success {
		t.Error("Success = true for failed request")
	}
	if e.ErrorMessage == "" {
		t.Error("ErrorMessage empty")
	}
}

func TestLogging_RepoFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{appendErr: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`)})
	p := WithLogging(mock, repo)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate failed because logging failed: %v", err)
	}
	if resp.Text() != "ok" {
		t.Errorf("Text = %q", resp.Text())
	}
}

func TestPurposeFrom_Default(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("PurposeFrom(empty ctx) = %q, want unknown", got)
	}
	ctx := WithPurpose(context.Background(), "quiz-gen")
	if got := PurposeFrom(ctx); got != "quiz-gen" {
		t.Errorf("PurposeFrom = %q, want quiz-gen", got)
	}
}
