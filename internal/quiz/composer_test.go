package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/tutoriz/internal/difficulty"
	"github.com/abhisek/tutoriz/internal/llm"
)

func TestCompose_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON(5)})
	c := NewComposer(mock, DefaultConfig())

	questions, err := c.Compose(context.Background(), "algebra", difficulty.Medium, 5, "Source 1: quadratics")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(questions))
	}

	if mock.CallCount() != 1 {
		t.Fatalf("CallCount = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "quiz-questions" {
		t.Errorf("request schema = %+v, want quiz-questions", req.Schema)
	}
	prompt := req.Messages[0].Content
	if !strings.Contains(prompt, "algebra") || !strings.Contains(prompt, "medium") {
		t.Errorf("prompt missing topic or difficulty: %q", prompt)
	}
	if !strings.Contains(prompt, "quadratics") {
		t.Errorf("prompt missing retrieved context: %q", prompt)
	}
}

func TestCompose_NoContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON(2)})
	c := NewComposer(mock, DefaultConfig())

	if _, err := c.Compose(context.Background(), "algebra", difficulty.Easy, 2, ""); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "None") {
		t.Errorf("prompt should mark missing context as None: %q", mock.Calls[0].Messages[0].Content)
	}
}

func TestCompose_InvalidCount(t *testing.T) {
	c := NewComposer(llm.NewMockProvider(), DefaultConfig())
	if _, err := c.Compose(context.Background(), "algebra", difficulty.Easy, 0, ""); err == nil {
		t.Fatal("expected error for count 0")
	}
}

func TestCompose_SchemaViolationBecomesParseError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{Content: json.RawMessage("not json"), Err: errors.New("schema validation failed")},
	})
	c := NewComposer(mock, DefaultConfig())

	_, err := c.Compose(context.Background(), "algebra", difficulty.Easy, 2, "")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ParseError", err)
	}
}

func TestCompose_TransportErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")},
	})
	c := NewComposer(mock, DefaultConfig())

	_, err := c.Compose(context.Background(), "algebra", difficulty.Easy, 2, "")
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		t.Fatal("transport error must not be classified as a parse error")
	}
}

func TestCompose_MalformedContentBecomesParseError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte(`{"questions": "nope"}`)})
	c := NewComposer(mock, DefaultConfig())

	_, err := c.Compose(context.Background(), "algebra", difficulty.Easy, 2, "")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ParseError", err)
	}
}

func TestAdjustDifficulty(t *testing.T) {
	c := NewComposer(llm.NewMockProvider(), DefaultConfig())
	if got := c.AdjustDifficulty(85); got != difficulty.Hard {
		t.Errorf("AdjustDifficulty(85) = %s, want hard", got)
	}
	if got := c.AdjustDifficulty(30); got != difficulty.Easy {
		t.Errorf("AdjustDifficulty(30) = %s, want easy", got)
	}
}
