package planner

import (
	"github.com/abhisek/tutoriz/internal/difficulty"
	"github.com/abhisek/tutoriz/internal/profile"
	"github.com/abhisek/tutoriz/internal/quiz"
)

// Action names the kind of result a dispatch produced.
type Action string

const (
	ActionExplanation Action = "explanation"
	ActionQuiz        Action = "quiz"
	ActionProgress    Action = "progress"
	ActionChat        Action = "chat"
)

// Result is the union returned by DecideAction. Action selects which
// fields are populated.
type Result struct {
	Action Action

	// Explanation path.
	Explanation  string
	PracticeQuiz []quiz.Question
	PlanExecuted []string

	// Quiz path. An empty Quiz with a non-empty Message means no quiz
	// could be generated; the caller renders the message, never crashes.
	Quiz       []quiz.Question
	Topic      string
	Difficulty difficulty.Level

	// Progress path.
	Report         *profile.Report
	Recommendation string

	// Chat path.
	Reply string

	// Message carries the human-readable note for empty outcomes
	// ("no data yet", "no quiz could be generated").
	Message string
}
