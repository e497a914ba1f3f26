package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports a well-delivered but malformed quiz response.
// Distinct from the llm error types: the upstream answered, the content
// is unusable. Callers map it to "no quiz available" rather than retry.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quiz parse failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("quiz parse failed: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// quizOutput is the raw LLM response shape before validation.
type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// ParseQuestions turns a raw quiz response into validated Questions.
// All collaborator output is untrusted input: any violation — malformed
// JSON, no questions, wrong option count, correct label outside the
// rendered labels, empty question text — fails the whole parse with a
// *ParseError. Question IDs are reassigned sequentially from 1 so they
// are unique within the quiz regardless of what the model sent.
func ParseQuestions(raw json.RawMessage) ([]Question, error) {
	var out quizOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ParseError{Reason: "malformed JSON", Err: err}
	}

	if len(out.Questions) == 0 {
		return nil, &ParseError{Reason: "no questions in response"}
	}

	questions := make([]Question, 0, len(out.Questions))
	for i, q := range out.Questions {
		parsed, err := parseQuestion(i, q)
		if err != nil {
			return nil, err
		}
		questions = append(questions, parsed)
	}
	return questions, nil
}

func parseQuestion(index int, q questionOutput) (Question, error) {
	if strings.TrimSpace(q.Question) == "" {
		return Question{}, &ParseError{Reason: fmt.Sprintf("question %d: empty text", index+1)}
	}
	if len(q.Options) != len(Labels) {
		return Question{}, &ParseError{
			Reason: fmt.Sprintf("question %d: got %d options, want %d", index+1, len(q.Options), len(Labels)),
		}
	}

	options := make([]Choice, len(q.Options))
	for i, opt := range q.Options {
		options[i] = Choice{
			Label: Labels[i],
			Text:  stripLabel(opt, Labels[i]),
		}
	}

	correct := strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
	if !labelInSet(correct, options) {
		return Question{}, &ParseError{
			Reason: fmt.Sprintf("question %d: correct answer %q not among option labels", index+1, q.CorrectAnswer),
		}
	}

	if strings.TrimSpace(q.Explanation) == "" {
		return Question{}, &ParseError{Reason: fmt.Sprintf("question %d: empty explanation", index+1)}
	}

	return Question{
		ID:            index + 1,
		Text:          strings.TrimSpace(q.Question),
		Options:       options,
		CorrectAnswer: correct,
		Explanation:   strings.TrimSpace(q.Explanation),
	}, nil
}

// stripLabel removes a leading "A)", "A.", or "A:" marker when it matches
// the option's positional label. Models sometimes repeat the label in the
// option text; stored text should not.
func stripLabel(text, label string) string {
	t := strings.TrimSpace(text)
	for _, sep := range []string{")", ".", ":"} {
		prefix := label + sep
		if strings.HasPrefix(t, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(t, prefix))
		}
	}
	return t
}

func labelInSet(label string, options []Choice) bool {
	for _, o := range options {
		if o.Label == label {
			return true
		}
	}
	return false
}
