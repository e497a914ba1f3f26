// Package difficulty holds the policy that adapts quiz difficulty to a
// student's running accuracy on a topic.
package difficulty

// Level is a quiz generation parameter. It is distinct from the mastery
// strength tier and computed on a different scale (80/50 vs 70/50);
// the two must not be unified.
type Level string

const (
	Easy   Level = "easy"
	Medium Level = "medium"
	Hard   Level = "hard"
)

// Default is the starting difficulty when no prior accuracy exists for a
// topic.
const Default = Medium

// ForAccuracy maps a running accuracy (0-100) to the difficulty of the
// next quiz. Pure step function: >= 80 hard, >= 50 medium, else easy.
func ForAccuracy(accuracy float64) Level {
	switch {
	case accuracy >= 80:
		return Hard
	case accuracy >= 50:
		return Medium
	default:
		return Easy
	}
}
