package planner

import "strings"

// Intent is the classified purpose of a student query.
type Intent string

const (
	IntentExplanation Intent = "EXPLANATION_REQUEST"
	IntentQuiz        Intent = "QUIZ_REQUEST"
	IntentProgress    Intent = "PROGRESS_CHECK"
	IntentChat        Intent = "GENERAL_CHAT"
)

// parseIntent maps a raw classifier reply to an Intent. The reply is
// matched loosely (models decorate labels with punctuation and prose);
// anything unrecognized falls back to GENERAL_CHAT. Classification
// ambiguity is never an error.
func parseIntent(raw string) Intent {
	label := strings.ToUpper(strings.TrimSpace(raw))

	switch {
	case strings.Contains(label, string(IntentExplanation)):
		return IntentExplanation
	case strings.Contains(label, string(IntentQuiz)):
		return IntentQuiz
	case strings.Contains(label, string(IntentProgress)):
		return IntentProgress
	default:
		return IntentChat
	}
}
