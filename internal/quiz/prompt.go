package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/tutoriz/internal/difficulty"
)

const systemPrompt = `You are an expert quiz generator for competitive exam preparation.

Rules:
- Create exactly the requested number of multiple-choice questions on the given topic at the given difficulty.
- Every question has exactly 4 options labeled A) through D), with exactly one correct option.
- Questions should be clear and unambiguous. All options should be plausible; distractors should reflect common mistakes, not random values.
- Include a brief explanation of the correct answer for learning.
- When study material context is provided, ground the questions in it.`

// buildUserMessage constructs the generation request body.
func buildUserMessage(topic string, level difficulty.Level, count int, context string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", level)
	fmt.Fprintf(&b, "Number of questions: %d\n", count)

	b.WriteString("\nContext from study materials:\n")
	if context == "" {
		b.WriteString("None")
	} else {
		b.WriteString(context)
	}

	return b.String()
}
