package quiz

import "github.com/abhisek/tutoriz/internal/llm"

// QuizSchema defines the JSON schema for quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A set of multiple-choice practice questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The generated questions, in order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "integer",
							"description": "Question number starting at 1",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Exactly 4 options, prefixed with their labels: \"A) ...\", \"B) ...\", \"C) ...\", \"D) ...\"",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"enum":        []any{"A", "B", "C", "D"},
							"description": "The label of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Brief explanation of the correct answer",
						},
					},
					"required":             []any{"id", "question", "options", "correct_answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
