package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutoriz/internal/difficulty"
	"github.com/abhisek/tutoriz/internal/llm"
	"github.com/abhisek/tutoriz/internal/planner"
	"github.com/abhisek/tutoriz/internal/profile"
	"github.com/abhisek/tutoriz/internal/quiz"
	"github.com/abhisek/tutoriz/internal/screen"
	"github.com/abhisek/tutoriz/internal/store"
	"github.com/abhisek/tutoriz/internal/ui/components"
	"github.com/abhisek/tutoriz/internal/ui/layout"
)

type entryRole int

const (
	roleStudent entryRole = iota
	roleTutor
	roleNote
)

type entry struct {
	role entryRole
	text string
}

// quizState tracks an in-progress quiz inside the conversation.
type quizState struct {
	topic        string
	level        difficulty.Level
	questions    []quiz.Question
	current      int
	mc           components.MultiChoice
	answers      map[int]string
	awaitingNext bool
}

// ChatScreen implements screen.Screen for the tutoring conversation.
type ChatScreen struct {
	planner   *planner.Planner
	profiles  *profile.Store
	eventRepo store.EventRepo
	studentID string

	entries  []entry
	input    components.TextInput
	thinking bool
	frame    int
	quiz     *quizState
}

// New creates a new ChatScreen with injected dependencies.
func New(p *planner.Planner, profiles *profile.Store, eventRepo store.EventRepo, studentID string) *ChatScreen {
	return &ChatScreen{
		planner:   p,
		profiles:  profiles,
		eventRepo: eventRepo,
		studentID: studentID,
		entries: []entry{
			{role: roleTutor, text: "Hi! Ask me to explain a concept, quiz you on a topic, or show your progress."},
		},
		input: components.NewTextInput("Ask me anything...", 0),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Tutor"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	if s.quiz != nil {
		if s.quiz.awaitingNext {
			return []layout.KeyHint{
				{Key: "any key", Description: "Continue"},
			}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "A-D", Description: "Pick"},
			{Key: "Enter", Description: "Submit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planDoneMsg:
		return s.handlePlanDone(msg)

	case spinnerTickMsg:
		if !s.thinking {
			return s, nil
		}
		s.frame++
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if !s.thinking && s.quiz == nil {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *ChatScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.quiz != nil {
		return s.handleQuizKey(msg)
	}

	if s.thinking {
		return s, nil
	}

	if msg.String() == "enter" {
		query := strings.TrimSpace(s.input.Value())
		if query == "" {
			return s, nil
		}
		s.entries = append(s.entries, entry{role: roleStudent, text: query})
		s.input.Reset()
		s.thinking = true
		s.frame = 0
		return s, tea.Batch(s.runQuery(query), spinnerTick())
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := s.quiz

	if q.awaitingNext {
		q.awaitingNext = false
		q.current++
		if q.current >= len(q.questions) {
			s.finishQuiz()
			return s, nil
		}
		q.mc = newQuestionChoice(q.questions[q.current])
		return s, nil
	}

	var cmd tea.Cmd
	q.mc, cmd = q.mc.Update(msg)
	if q.mc.Submitted {
		q.answers[q.current] = q.mc.ChosenLabel()
		q.awaitingNext = true
	}
	return s, cmd
}

// runQuery dispatches the query to the planner asynchronously.
func (s *ChatScreen) runQuery(query string) tea.Cmd {
	return func() tea.Msg {
		res, err := s.planner.DecideAction(context.Background(), s.studentID, query)
		return planDoneMsg{Result: res, Err: err}
	}
}

func (s *ChatScreen) handlePlanDone(msg planDoneMsg) (screen.Screen, tea.Cmd) {
	s.thinking = false

	if msg.Err != nil {
		s.entries = append(s.entries, entry{role: roleNote, text: describeError(msg.Err)})
		return s, nil
	}

	res := msg.Result
	switch res.Action {
	case planner.ActionChat:
		s.entries = append(s.entries, entry{role: roleTutor, text: res.Reply})

	case planner.ActionExplanation:
		s.entries = append(s.entries, entry{role: roleTutor, text: res.Explanation})
		for _, step := range res.PlanExecuted {
			s.entries = append(s.entries, entry{role: roleNote, text: "• " + step})
		}
		if len(res.PracticeQuiz) > 0 {
			s.entries = append(s.entries, entry{role: roleTutor, text: "Let's check your understanding with a couple of questions."})
			s.beginQuiz(res.Topic, difficulty.Easy, res.PracticeQuiz)
		}

	case planner.ActionQuiz:
		if len(res.Quiz) == 0 {
			s.entries = append(s.entries, entry{role: roleNote, text: res.Message})
			return s, nil
		}
		s.entries = append(s.entries, entry{
			role: roleTutor,
			text: fmt.Sprintf("Here's a %s quiz on %s. Good luck!", res.Difficulty, res.Topic),
		})
		s.beginQuiz(res.Topic, res.Difficulty, res.Quiz)

	case planner.ActionProgress:
		if res.Report == nil {
			s.entries = append(s.entries, entry{role: roleNote, text: res.Message})
			return s, nil
		}
		s.entries = append(s.entries, entry{role: roleTutor, text: formatReport(res.Report, res.Recommendation)})
	}

	return s, nil
}

func (s *ChatScreen) beginQuiz(topic string, level difficulty.Level, questions []quiz.Question) {
	s.quiz = &quizState{
		topic:     topic,
		level:     level,
		questions: questions,
		answers:   make(map[int]string, len(questions)),
		mc:        newQuestionChoice(questions[0]),
	}
}

// finishQuiz grades the completed quiz, folds the score into the mastery
// profile, and records the attempt event.
func (s *ChatScreen) finishQuiz() {
	q := s.quiz
	s.quiz = nil

	score := quiz.Grade(q.questions, q.answers)
	correct := 0
	for i := range q.questions {
		if q.questions[i].IsCorrect(q.answers[i]) {
			correct++
		}
	}

	if err := s.profiles.ReportTopicResult(s.studentID, q.topic, score); err != nil {
		s.entries = append(s.entries, entry{role: roleNote, text: "Could not update your progress: " + err.Error()})
		return
	}
	s.profiles.RecordQuiz(s.studentID, profile.QuizAttempt{
		Topic:      q.topic,
		Difficulty: string(q.level),
		Questions:  len(q.questions),
		Accuracy:   score,
		At:         time.Now(),
	})

	if s.eventRepo != nil {
		_ = s.eventRepo.AppendQuizAttempt(context.Background(), store.QuizEventData{
			StudentID:     s.studentID,
			Topic:         q.topic,
			Difficulty:    string(q.level),
			QuestionCount: len(q.questions),
			Accuracy:      score,
		})
	}

	accuracy, _ := s.profiles.TopicAccuracy(s.studentID, q.topic)
	next := difficulty.ForAccuracy(accuracy)
	s.entries = append(s.entries, entry{
		role: roleTutor,
		text: fmt.Sprintf("You got %d/%d (%.0f%%) on %s. Your running accuracy is %.0f%%, so your next quiz will be %s.",
			correct, len(q.questions), score, q.topic, accuracy, next),
	})
}

func newQuestionChoice(q quiz.Question) components.MultiChoice {
	labels := make([]string, len(q.Options))
	options := make([]string, len(q.Options))
	correct := 0
	for i, opt := range q.Options {
		labels[i] = opt.Label
		options[i] = opt.Text
		if opt.Label == q.CorrectAnswer {
			correct = i
		}
	}
	return components.NewMultiChoice(q.Text, labels, options, correct, q.Explanation)
}

// describeError renders an upstream failure as a retryable hint. Rate
// limits and outages are transient: the student should just ask again.
func describeError(err error) string {
	var rl *llm.ErrRateLimit
	if errors.As(err, &rl) {
		return "The tutor is rate limited right now. Wait a moment and ask again."
	}
	var unavail *llm.ErrProviderUnavailable
	if errors.As(err, &unavail) {
		return "The tutor is unreachable right now. Check your connection and ask again."
	}
	return "Something went wrong: " + err.Error()
}

func spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
