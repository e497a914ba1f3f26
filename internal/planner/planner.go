package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/tutoriz/internal/difficulty"
	"github.com/abhisek/tutoriz/internal/llm"
	"github.com/abhisek/tutoriz/internal/profile"
	"github.com/abhisek/tutoriz/internal/quiz"
	"github.com/abhisek/tutoriz/internal/retrieval"
)

const (
	// practiceQuizSize is the number of follow-up questions attached to an
	// explanation. Kept small on purpose: the quiz reinforces, the
	// explanation carries the weight.
	practiceQuizSize = 2

	// requestedQuizSize is the question count for an explicit quiz request.
	requestedQuizSize = 5

	// maxRecommended caps how many weak topics a progress recommendation
	// names.
	maxRecommended = 3
)

const noProgressMessage = "No progress data available yet. Start learning to track your progress!"

// Config controls planning behavior.
type Config struct {
	// Timeout bounds each DecideAction call end to end, covering every
	// collaborator round trip it makes.
	Timeout time.Duration

	// PracticeQuizSize and RequestedQuizSize override the question counts
	// when positive.
	PracticeQuizSize  int
	RequestedQuizSize int
}

// DefaultConfig returns the recommended planning settings.
func DefaultConfig() Config {
	return Config{
		Timeout:           60 * time.Second,
		PracticeQuizSize:  practiceQuizSize,
		RequestedQuizSize: requestedQuizSize,
	}
}

// Planner classifies student queries and orchestrates the collaborators
// that serve them: retrieval for grounding, the LLM for explanations and
// chat, the composer for quizzes, and the profile store for adaptive
// difficulty.
type Planner struct {
	provider  llm.Provider
	retriever *retrieval.Retriever
	composer  *quiz.Composer
	profiles  *profile.Store
	config    Config
}

// New creates a Planner over the given collaborators.
func New(provider llm.Provider, retriever *retrieval.Retriever, composer *quiz.Composer, profiles *profile.Store, cfg Config) *Planner {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.PracticeQuizSize <= 0 {
		cfg.PracticeQuizSize = practiceQuizSize
	}
	if cfg.RequestedQuizSize <= 0 {
		cfg.RequestedQuizSize = requestedQuizSize
	}
	return &Planner{
		provider:  provider,
		retriever: retriever,
		composer:  composer,
		profiles:  profiles,
		config:    cfg,
	}
}

// DecideAction classifies the query's intent and runs the matching flow.
// Unclassifiable queries fall through to general chat; that is the one
// failure mode that never surfaces as an error. Transport failures from
// the collaborators propagate as the llm error types so the caller can
// offer a retry.
func (p *Planner) DecideAction(ctx context.Context, studentID, query string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	intent := p.classifyIntent(ctx, query)

	var (
		res *Result
		err error
	)
	switch intent {
	case IntentExplanation:
		res, err = p.explain(ctx, studentID, query)
	case IntentQuiz:
		res, err = p.runQuiz(ctx, studentID, query)
	case IntentProgress:
		res, err = p.progress(studentID)
	default:
		res, err = p.chat(ctx, query)
	}
	if err != nil {
		return nil, wrapDeadline(ctx, err)
	}
	return res, nil
}

// classifyIntent asks the collaborator to label the query. Any failure —
// transport, timeout, garbage output — degrades to GENERAL_CHAT rather
// than blocking the student.
func (p *Planner) classifyIntent(ctx context.Context, query string) Intent {
	ctx = llm.WithPurpose(ctx, "intent-classify")

	resp, err := p.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildIntentPrompt(query)},
		},
		MaxTokens:   32,
		Temperature: 0.3,
	})
	if err != nil {
		return IntentChat
	}
	return parseIntent(resp.Text())
}

// extractTopic pulls a short topic phrase out of the query. The reply is
// whitespace-trimmed and otherwise used verbatim as the profile key.
func (p *Planner) extractTopic(ctx context.Context, query string) (string, error) {
	ctx = llm.WithPurpose(ctx, "topic-extract")

	resp, err := p.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildTopicPrompt(query)},
		},
		MaxTokens:   32,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("extract topic: %w", err)
	}

	topic := strings.TrimSpace(resp.Text())
	if topic == "" {
		topic = query
	}
	return topic, nil
}

// explain runs the explanation flow: retrieve supporting material,
// generate a grounded explanation, then attach a short easy practice quiz
// built over the same material. A malformed practice quiz degrades to no
// quiz; the explanation itself still goes out.
func (p *Planner) explain(ctx context.Context, studentID, query string) (*Result, error) {
	retrieved, err := p.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	expCtx := llm.WithPurpose(ctx, "explanation")
	resp, err := p.provider.Generate(expCtx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildExplanationPrompt(query, retrieved.RetrievedContent)},
		},
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("generate explanation: %w", err)
	}

	topic, err := p.extractTopic(ctx, query)
	if err != nil {
		return nil, err
	}

	plan := []string{
		fmt.Sprintf("Identified topic: %s", topic),
		"Retrieved relevant study materials",
		"Generated explanation",
	}

	questions, err := p.composer.Compose(ctx, topic, difficulty.Easy, p.config.PracticeQuizSize, retrieved.RetrievedContent)
	switch {
	case err == nil:
		plan = append(plan, fmt.Sprintf("Created %d practice questions", len(questions)))
	case isParseError(err):
		questions = nil
		plan = append(plan, "Practice questions unavailable")
	default:
		return nil, err
	}

	return &Result{
		Action:       ActionExplanation,
		Explanation:  resp.Text(),
		Topic:        topic,
		PracticeQuiz: questions,
		PlanExecuted: plan,
	}, nil
}

// runQuiz runs the explicit quiz flow: extract the topic, pick the
// difficulty from the student's running accuracy on it, and compose a
// full-size quiz. First-time topics start at medium.
func (p *Planner) runQuiz(ctx context.Context, studentID, query string) (*Result, error) {
	topic, err := p.extractTopic(ctx, query)
	if err != nil {
		return nil, err
	}

	level := difficulty.Default
	if accuracy, ok := p.profiles.TopicAccuracy(studentID, topic); ok {
		level = difficulty.ForAccuracy(accuracy)
	}

	res := &Result{
		Action:     ActionQuiz,
		Topic:      topic,
		Difficulty: level,
	}

	questions, err := p.composer.Compose(ctx, topic, level, p.config.RequestedQuizSize, "")
	if err != nil {
		if isParseError(err) {
			res.Message = fmt.Sprintf("Could not generate a quiz on %s right now. Try asking again.", topic)
			return res, nil
		}
		return nil, err
	}

	res.Quiz = questions
	return res, nil
}

// progress builds the student's progress snapshot. No collaborator calls:
// this path works even with every upstream down.
func (p *Planner) progress(studentID string) (*Result, error) {
	report := p.profiles.ProgressReport(studentID)
	if report == nil {
		return &Result{
			Action:  ActionProgress,
			Message: noProgressMessage,
		}, nil
	}

	return &Result{
		Action:         ActionProgress,
		Report:         report,
		Recommendation: buildRecommendation(report.WeakTopics),
	}, nil
}

// chat answers anything that isn't a study request, in the tutoring
// persona. The reply is passed through verbatim.
func (p *Planner) chat(ctx context.Context, query string) (*Result, error) {
	ctx = llm.WithPurpose(ctx, "chat")

	resp, err := p.provider.Generate(ctx, llm.Request{
		System: chatSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: query},
		},
		MaxTokens:   512,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("chat reply: %w", err)
	}

	return &Result{
		Action: ActionChat,
		Reply:  resp.Text(),
	}, nil
}

func buildRecommendation(weak []string) string {
	if len(weak) == 0 {
		return "Great job! Keep practicing to maintain your strength."
	}
	if len(weak) > maxRecommended {
		weak = weak[:maxRecommended]
	}
	return "Focus on: " + strings.Join(weak, ", ")
}

func isParseError(err error) bool {
	var pe *quiz.ParseError
	return errors.As(err, &pe)
}

// wrapDeadline converts a blown planner deadline into the provider
// unavailable error so callers see one retryable taxonomy.
func wrapDeadline(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && errors.Is(err, context.DeadlineExceeded) {
		return &llm.ErrProviderUnavailable{Err: err}
	}
	return err
}
