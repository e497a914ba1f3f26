package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizEvent records a graded quiz attempt: which student, which topic,
// at what difficulty, and how they scored.
type QuizEvent struct {
	ent.Schema
}

func (QuizEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("student_id").
			Comment("Student identifier"),
		field.String("topic").
			Comment("Topic key exactly as extracted, unnormalized"),
		field.String("difficulty").
			Comment("Difficulty the quiz was generated at: easy, medium, hard"),
		field.Int("question_count").
			Comment("Number of questions in the quiz"),
		field.Float("accuracy").
			Comment("Percent correct for this attempt, 0-100"),
	}
}

func (QuizEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id"),
		index.Fields("topic"),
	}
}
