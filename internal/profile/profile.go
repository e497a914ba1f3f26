package profile

import "time"

// Strength classifies a student's long-run mastery of a topic.
type Strength string

const (
	StrengthUnknown Strength = "unknown"
	StrengthWeak    Strength = "weak"
	StrengthMedium  Strength = "medium"
	StrengthStrong  Strength = "strong"
)

// Strength thresholds on the 0-100 accuracy scale. These are deliberately
// different from the quiz difficulty bands (80/50): strength is the
// long-run mastery label, difficulty is the next-quiz knob.
const (
	strongThreshold = 70.0
	mediumThreshold = 50.0
)

// StrengthForAccuracy derives the strength tier from a running accuracy.
// It never produces StrengthUnknown; that state exists only before the
// first attempt.
func StrengthForAccuracy(accuracy float64) Strength {
	switch {
	case accuracy >= strongThreshold:
		return StrengthStrong
	case accuracy >= mediumThreshold:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}

// TopicStat holds the running performance signal for one topic.
// Accuracy is the cumulative mean of every reported per-attempt accuracy;
// Strength is always derived from Accuracy, never set directly.
type TopicStat struct {
	Accuracy float64
	Attempts int
	Strength Strength
}

// QuizAttempt is one graded quiz in a student's history.
type QuizAttempt struct {
	Topic      string
	Difficulty string
	Questions  int
	Accuracy   float64
	At         time.Time
}

// StudentProfile holds everything tracked for one student. Profiles are
// process-local and volatile; they are created lazily on first write and
// live only as long as the owning Store.
type StudentProfile struct {
	StudentID   string
	Topics      map[string]*TopicStat
	QuizHistory []QuizAttempt
	CreatedAt   time.Time

	// topicOrder preserves first-report order so weak-topic listings and
	// progress reports are stable across calls.
	topicOrder []string
}

// Report is a point-in-time progress snapshot for one student.
type Report struct {
	// Progress maps topic name to a copy of its current stat.
	Progress map[string]TopicStat

	// Topics lists topic names in first-report order.
	Topics []string

	// WeakTopics lists the topics currently classified weak, in
	// first-report order.
	WeakTopics []string

	// TotalQuizzes counts graded quizzes across all topics.
	TotalQuizzes int
}
