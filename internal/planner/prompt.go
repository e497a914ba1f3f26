package planner

import (
	"fmt"
	"strings"
)

const chatSystemPrompt = `You are a friendly AI tutor helping students prepare for competitive exams.`

func buildIntentPrompt(query string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze this student query and classify the intent:\nQuery: %q\n\n", query)
	b.WriteString(`Classify as ONE of:
1. EXPLANATION_REQUEST
2. QUIZ_REQUEST
3. PROGRESS_CHECK
4. GENERAL_CHAT

Reply with ONLY the classification name, nothing else.`)

	return b.String()
}

func buildTopicPrompt(query string) string {
	return fmt.Sprintf("Extract the main subject/topic from this query in 2-3 words: %q. Reply with ONLY the topic name.", query)
}

func buildExplanationPrompt(query, material string) string {
	var b strings.Builder

	b.WriteString("Based on this study material, explain the concept clearly to a student:\n\n")
	b.WriteString("Study Material:\n")
	if material == "" {
		b.WriteString("None available")
	} else {
		b.WriteString(material)
	}
	fmt.Fprintf(&b, "\n\nStudent's Question: %s\n\n", query)
	b.WriteString("Provide a clear, concise explanation suitable for competitive exam preparation.")

	return b.String()
}
