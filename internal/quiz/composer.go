package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/tutoriz/internal/difficulty"
	"github.com/abhisek/tutoriz/internal/llm"
)

// Config controls quiz generation.
type Config struct {
	// MaxTokens is the token budget for the LLM response. Sized for a
	// 5-question quiz with explanations.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// Composer builds quiz generation requests and parses the responses into
// validated questions.
type Composer struct {
	provider llm.Provider
	config   Config
}

// NewComposer creates a Composer over the given provider.
func NewComposer(provider llm.Provider, cfg Config) *Composer {
	return &Composer{provider: provider, config: cfg}
}

// Compose asks the collaborator for exactly count questions on topic at
// the given difficulty, optionally grounded in retrieved context.
//
// Malformed output — including schema-invalid responses — comes back as
// (nil, *ParseError); the caller renders "no quiz available". Transport
// failures (rate limit, unavailable, timeout) propagate as the llm error
// types so the caller can offer a retry instead.
func (c *Composer) Compose(ctx context.Context, topic string, level difficulty.Level, count int, context_ string) ([]Question, error) {
	if count <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", count)
	}

	ctx = llm.WithPurpose(ctx, "quiz-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(topic, level, count, context_)},
		},
		Schema:      QuizSchema,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			// Delivered but unusable: same outcome as a local parse failure.
			return nil, &ParseError{Reason: "response failed schema validation", Err: err}
		}
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	return ParseQuestions(resp.Content)
}

// AdjustDifficulty maps a running accuracy to the next quiz difficulty.
// Exposed here for caller convenience; the policy itself lives in the
// difficulty package.
func (c *Composer) AdjustDifficulty(accuracy float64) difficulty.Level {
	return difficulty.ForAccuracy(accuracy)
}
