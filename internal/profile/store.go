package profile

import (
	"fmt"
	"sync"
	"time"
)

// ErrInvalidAccuracy reports an accuracy outside the [0,100] contract.
// Out-of-range input is rejected, never clamped, so the running mean
// stays auditable.
type ErrInvalidAccuracy struct {
	Accuracy float64
}

func (e *ErrInvalidAccuracy) Error() string {
	return fmt.Sprintf("accuracy %.2f outside [0,100]", e.Accuracy)
}

// Store maintains per-student mastery state. It is the only shared
// mutable resource in the system; all mutations are serialized under one
// lock so concurrent quiz submissions cannot corrupt the running mean.
//
// Topic keys are used exactly as extracted from queries (whitespace
// trimmed, nothing else). Two phrasings of the same concept create two
// separate TopicStat entries. This mirrors how topics reach the store
// and is a documented limitation, not a bug.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]*StudentProfile
	now      func() time.Time
}

// NewStore creates an empty profile store.
func NewStore() *Store {
	return &Store{
		profiles: make(map[string]*StudentProfile),
		now:      time.Now,
	}
}

// ReportTopicResult records one graded result for (student, topic).
// The profile and topic entry are created lazily; attempts increments and
// accuracy folds the new score into the running mean:
//
//	accuracy_n = (accuracy_{n-1}*(n-1) + score) / n
//
// Strength is recomputed from the new accuracy. Accuracy outside [0,100]
// is rejected with *ErrInvalidAccuracy and mutates nothing.
func (s *Store) ReportTopicResult(studentID, topic string, accuracy float64) error {
	if accuracy < 0 || accuracy > 100 {
		return &ErrInvalidAccuracy{Accuracy: accuracy}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.getOrCreateLocked(studentID)

	stat, ok := p.Topics[topic]
	if !ok {
		stat = &TopicStat{Strength: StrengthUnknown}
		p.Topics[topic] = stat
		p.topicOrder = append(p.topicOrder, topic)
	}

	stat.Attempts++
	n := float64(stat.Attempts)
	stat.Accuracy = (stat.Accuracy*(n-1) + accuracy) / n
	stat.Strength = StrengthForAccuracy(stat.Accuracy)

	return nil
}

// RecordQuiz appends a graded quiz to the student's history.
func (s *Store) RecordQuiz(studentID string, attempt QuizAttempt) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.getOrCreateLocked(studentID)
	if attempt.At.IsZero() {
		attempt.At = s.now()
	}
	p.QuizHistory = append(p.QuizHistory, attempt)
}

// TopicAccuracy returns the current running accuracy for (student, topic)
// and whether the topic has been seen. Unknown students and topics are a
// normal outcome, not an error.
func (s *Store) TopicAccuracy(studentID, topic string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[studentID]
	if !ok {
		return 0, false
	}
	stat, ok := p.Topics[topic]
	if !ok {
		return 0, false
	}
	return stat.Accuracy, true
}

// WeakTopics returns the topics currently classified weak for the
// student, in first-report order. Unknown students yield an empty slice.
func (s *Store) WeakTopics(studentID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[studentID]
	if !ok {
		return nil
	}
	return weakTopicsLocked(p)
}

// ProgressReport returns a snapshot of the student's progress, or nil if
// the student has no profile at all. A nil report is a valid, expected
// outcome for unseen students.
func (s *Store) ProgressReport(studentID string) *Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[studentID]
	if !ok {
		return nil
	}

	progress := make(map[string]TopicStat, len(p.Topics))
	for topic, stat := range p.Topics {
		progress[topic] = *stat
	}

	return &Report{
		Progress:     progress,
		Topics:       append([]string(nil), p.topicOrder...),
		WeakTopics:   weakTopicsLocked(p),
		TotalQuizzes: len(p.QuizHistory),
	}
}

func (s *Store) getOrCreateLocked(studentID string) *StudentProfile {
	p, ok := s.profiles[studentID]
	if !ok {
		p = &StudentProfile{
			StudentID: studentID,
			Topics:    make(map[string]*TopicStat),
			CreatedAt: s.now(),
		}
		s.profiles[studentID] = p
	}
	return p
}

func weakTopicsLocked(p *StudentProfile) []string {
	var weak []string
	for _, topic := range p.topicOrder {
		if p.Topics[topic].Strength == StrengthWeak {
			weak = append(weak, topic)
		}
	}
	return weak
}
