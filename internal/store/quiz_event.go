package store

import (
	"context"
	"fmt"

	"github.com/abhisek/tutoriz/ent"
	"github.com/abhisek/tutoriz/ent/quizevent"
)

func (r *eventRepo) AppendQuizAttempt(ctx context.Context, data QuizEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.QuizEvent.Create().
		SetSequence(seqNum).
		SetStudentID(data.StudentID).
		SetTopic(data.Topic).
		SetDifficulty(data.Difficulty).
		SetQuestionCount(data.QuestionCount).
		SetAccuracy(data.Accuracy).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEventRecord, error) {
	q := r.client.QuizEvent.Query().
		Order(ent.Desc(quizevent.FieldSequence))

	if opts.Student != "" {
		q = q.Where(quizevent.StudentID(opts.Student))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}

	out := make([]QuizEventRecord, len(rows))
	for i, e := range rows {
		out[i] = QuizEventRecord{
			ID:        e.ID,
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			QuizEventData: QuizEventData{
				StudentID:     e.StudentID,
				Topic:         e.Topic,
				Difficulty:    e.Difficulty,
				QuestionCount: e.QuestionCount,
				Accuracy:      e.Accuracy,
			},
		}
	}
	return out, nil
}
