package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutoriz/internal/ui/theme"
)

// MultiChoice is a four-option multiple-choice selector. After submission
// it reveals the correct answer and, when set, the explanation.
type MultiChoice struct {
	Question     string
	Labels       []string
	Options      []string
	CorrectIndex int
	Explanation  string
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, labels, options []string, correctIndex int, explanation string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Labels:       labels,
		Options:      options,
		CorrectIndex: correctIndex,
		Explanation:  explanation,
		Selected:     0,
		Submitted:    false,
		ChosenIndex:  -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Options can also be
// picked directly by their label key (a/A picks the first, and so on).
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		for i, label := range m.Labels {
			if i < len(m.Options) && keyMatchesLabel(key, label) {
				m.Selected = i
				m.Submitted = true
				m.ChosenIndex = i
				break
			}
		}
	}

	return m, nil
}

// View renders the question, options, and post-submit feedback.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, m.label(i), opt)

		if m.Submitted {
			if i == m.CorrectIndex {
				s += theme.Correct.Render(line) + "\n"
			} else if i == m.ChosenIndex {
				s += theme.Incorrect.Render(line) + "\n"
			} else {
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == m.Selected {
				s += theme.Selected.Render(line) + "\n"
			} else {
				s += theme.Unselected.Render(line) + "\n"
			}
		}
	}

	if m.Submitted && m.Explanation != "" {
		s += "\n" + theme.Hint.Render(m.Explanation) + "\n"
	}

	return s
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}

// ChosenLabel returns the label of the submitted choice, or "" before
// submission.
func (m MultiChoice) ChosenLabel() string {
	if !m.Submitted || m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Labels) {
		return ""
	}
	return m.Labels[m.ChosenIndex]
}

func (m MultiChoice) label(i int) string {
	if i < len(m.Labels) {
		return m.Labels[i]
	}
	return fmt.Sprintf("%d", i+1)
}

func keyMatchesLabel(key, label string) bool {
	if len(key) != 1 || len(label) != 1 {
		return false
	}
	k, l := key[0], label[0]
	if k >= 'a' && k <= 'z' {
		k -= 'a' - 'A'
	}
	return k == l
}
