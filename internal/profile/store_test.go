package profile

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestStrengthForAccuracy_Boundaries(t *testing.T) {
	cases := []struct {
		accuracy float64
		want     Strength
	}{
		{0, StrengthWeak},
		{49.9, StrengthWeak},
		{50, StrengthMedium},
		{69.9, StrengthMedium},
		{70, StrengthStrong},
		{100, StrengthStrong},
	}
	for _, c := range cases {
		if got := StrengthForAccuracy(c.accuracy); got != c.want {
			t.Errorf("StrengthForAccuracy(%v) = %s, want %s", c.accuracy, got, c.want)
		}
	}
}

func TestReportTopicResult_RunningMean(t *testing.T) {
	s := NewStore()

	for _, acc := range []float64{30, 90, 90} {
		if err := s.ReportTopicResult("amit", "algebra", acc); err != nil {
			t.Fatalf("ReportTopicResult(%v): %v", acc, err)
		}
	}

	report := s.ProgressReport("amit")
	if report == nil {
		t.Fatal("ProgressReport returned nil")
	}
	stat := report.Progress["algebra"]
	if stat.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", stat.Attempts)
	}
	if stat.Accuracy != 70 {
		t.Errorf("Accuracy = %v, want 70", stat.Accuracy)
	}
	if stat.Strength != StrengthStrong {
		t.Errorf("Strength = %s, want strong", stat.Strength)
	}
}

func TestReportTopicResult_RejectsOutOfRange(t *testing.T) {
	s := NewStore()

	for _, acc := range []float64{-0.1, 100.1, 250} {
		err := s.ReportTopicResult("amit", "algebra", acc)
		var invalid *ErrInvalidAccuracy
		if !errors.As(err, &invalid) {
			t.Errorf("ReportTopicResult(%v) err = %v, want ErrInvalidAccuracy", acc, err)
		}
	}

	// Nothing was recorded.
	if report := s.ProgressReport("amit"); report != nil {
		t.Errorf("profile exists after rejected reports: %+v", report)
	}
}

func TestReportTopicResult_BoundaryValuesAccepted(t *testing.T) {
	s := NewStore()
	if err := s.ReportTopicResult("amit", "algebra", 0); err != nil {
		t.Errorf("accuracy 0 rejected: %v", err)
	}
	if err := s.ReportTopicResult("amit", "algebra", 100); err != nil {
		t.Errorf("accuracy 100 rejected: %v", err)
	}
}

func TestTopicAccuracy_UnknownIsNotAnError(t *testing.T) {
	s := NewStore()

	if _, ok := s.TopicAccuracy("ghost", "algebra"); ok {
		t.Error("unknown student reported as known")
	}

	if err := s.ReportTopicResult("amit", "algebra", 60); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.TopicAccuracy("amit", "geometry"); ok {
		t.Error("unknown topic reported as known")
	}

	acc, ok := s.TopicAccuracy("amit", "algebra")
	if !ok || acc != 60 {
		t.Errorf("TopicAccuracy = (%v, %v), want (60, true)", acc, ok)
	}
}

func TestWeakTopics_FirstReportOrder(t *testing.T) {
	s := NewStore()

	// Reported in this order; probability and trig end up weak.
	s.ReportTopicResult("amit", "probability", 20)
	s.ReportTopicResult("amit", "algebra", 80)
	s.ReportTopicResult("amit", "trigonometry", 40)

	weak := s.WeakTopics("amit")
	if len(weak) != 2 || weak[0] != "probability" || weak[1] != "trigonometry" {
		t.Errorf("WeakTopics = %v, want [probability trigonometry]", weak)
	}
}

func TestWeakTopics_UnknownStudent(t *testing.T) {
	s := NewStore()
	if weak := s.WeakTopics("ghost"); weak != nil {
		t.Errorf("WeakTopics(ghost) = %v, want nil", weak)
	}
}

func TestProgressReport_NilForUnknownStudent(t *testing.T) {
	s := NewStore()
	if report := s.ProgressReport("ghost"); report != nil {
		t.Errorf("ProgressReport(ghost) = %+v, want nil", report)
	}
}

func TestProgressReport_IsSnapshot(t *testing.T) {
	s := NewStore()
	s.ReportTopicResult("amit", "algebra", 40)

	report := s.ProgressReport("amit")
	s.ReportTopicResult("amit", "algebra", 100)

	if report.Progress["algebra"].Accuracy != 40 {
		t.Errorf("snapshot mutated: accuracy = %v, want 40", report.Progress["algebra"].Accuracy)
	}
}

func TestRecordQuiz_CountsTowardReport(t *testing.T) {
	s := NewStore()
	s.ReportTopicResult("amit", "algebra", 60)
	s.RecordQuiz("amit", QuizAttempt{Topic: "algebra", Difficulty: "medium", Questions: 5, Accuracy: 60})
	s.RecordQuiz("amit", QuizAttempt{Topic: "algebra", Difficulty: "medium", Questions: 5, Accuracy: 80, At: time.Now()})

	report := s.ProgressReport("amit")
	if report.TotalQuizzes != 2 {
		t.Errorf("TotalQuizzes = %d, want 2", report.TotalQuizzes)
	}
}

func TestStore_ConcurrentReports(t *testing.T) {
	s := NewStore()

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := s.ReportTopicResult("amit", "algebra", 50); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	report := s.ProgressReport("amit")
	stat := report.Progress["algebra"]
	if stat.Attempts != workers*perWorker {
		t.Errorf("Attempts = %d, want %d", stat.Attempts, workers*perWorker)
	}
	if stat.Accuracy != 50 {
		t.Errorf("Accuracy = %v, want 50", stat.Accuracy)
	}
}
