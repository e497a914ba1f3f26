package quiz

// Labels are the fixed option labels, in option order.
var Labels = []string{"A", "B", "C", "D"}

// Choice is one labeled option of a question.
type Choice struct {
	Label string // "A".."D"
	Text  string
}

// Question is a single validated multiple-choice question. Constructed
// once from the collaborator's response, immutable afterwards, held only
// for the duration of one quiz session.
type Question struct {
	// ID is unique within one generated quiz, starting at 1.
	ID int

	// Text is the question prompt.
	Text string

	// Options are exactly 4 labeled choices, A through D.
	Options []Choice

	// CorrectAnswer is the label of the correct option. Always a member
	// of the question's own label set.
	CorrectAnswer string

	// Explanation is a brief rationale for the correct answer, shown
	// after grading.
	Explanation string
}

// IsCorrect reports whether the given label answers this question.
func (q *Question) IsCorrect(label string) bool {
	return label == q.CorrectAnswer
}

// Grade computes the percent accuracy (0-100) for a set of chosen labels,
// indexed by question position. Missing answers count as wrong.
func Grade(questions []Question, chosen map[int]string) float64 {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range questions {
		if q.IsCorrect(chosen[i]) {
			correct++
		}
	}
	return float64(correct) / float64(len(questions)) * 100
}
