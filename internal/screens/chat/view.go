package chat

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutoriz/internal/profile"
	"github.com/abhisek/tutoriz/internal/ui/components"
	"github.com/abhisek/tutoriz/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *ChatScreen) View(width, height int) string {
	if s.quiz != nil {
		return s.renderQuiz(width, height)
	}
	return s.renderConversation(width, height)
}

// renderConversation shows the transcript tail plus the input line. The
// transcript is clipped from the top so the latest exchange stays visible.
func (s *ChatScreen) renderConversation(width, height int) string {
	textWidth := width - 4
	if textWidth < 20 {
		textWidth = 20
	}

	var lines []string
	for _, e := range s.entries {
		lines = append(lines, renderEntry(e, textWidth)...)
		lines = append(lines, "")
	}

	if s.thinking {
		frame := spinnerFrames[s.frame%len(spinnerFrames)]
		lines = append(lines, theme.Hint.Render(frame+" Thinking..."))
	}

	inputView := "\n" + theme.Body.Render("❯ ") + s.input.View()
	inputHeight := lipgloss.Height(inputView)

	available := height - inputHeight - 1
	if available < 1 {
		available = 1
	}
	if len(lines) > available {
		lines = lines[len(lines)-available:]
	}

	transcript := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Padding(0, 2).Render(transcript + "\n" + inputView)
}

func (s *ChatScreen) renderQuiz(width, height int) string {
	q := s.quiz
	textWidth := width - 8
	if textWidth < 20 {
		textWidth = 20
	}

	header := theme.Title.Render(fmt.Sprintf("Quiz: %s", q.topic)) + "\n" +
		theme.Subtitle.Render(fmt.Sprintf("%s · question %d of %d", q.level, q.current+1, len(q.questions)))

	bar := components.NewProgressBar("", float64(q.current)/float64(len(q.questions)), false, textWidth/2)

	body := lipgloss.NewStyle().Width(textWidth).Render(q.mc.View())

	var hint string
	if q.awaitingNext {
		hint = theme.Hint.Render("Press any key to continue")
	}

	content := header + "\n\n" + bar.View() + "\n\n" + body + "\n" + hint

	return lipgloss.NewStyle().
		Padding(1, 4).
		Width(width).
		Render(content)
}

func renderEntry(e entry, textWidth int) []string {
	wrap := lipgloss.NewStyle().Width(textWidth)

	switch e.role {
	case roleStudent:
		prefix := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("You: ")
		return strings.Split(wrap.Render(prefix+e.text), "\n")
	case roleTutor:
		prefix := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Tutor: ")
		return strings.Split(wrap.Render(prefix+e.text), "\n")
	default:
		return strings.Split(wrap.Render(theme.Hint.Render(e.text)), "\n")
	}
}

// formatReport renders the progress snapshot as conversation text: one
// line per topic in first-studied order, then the recommendation.
func formatReport(r *profile.Report, recommendation string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Your progress so far (%d quizzes taken):\n", r.TotalQuizzes)
	for _, topic := range r.Topics {
		stat := r.Progress[topic]
		b.WriteString(fmt.Sprintf("  %s %s — %.0f%% over %d attempts\n",
			strengthBadge(stat.Strength), topic, stat.Accuracy, stat.Attempts))
	}
	b.WriteString("\n" + recommendation)

	return b.String()
}

func strengthBadge(s profile.Strength) string {
	switch s {
	case profile.StrengthStrong:
		return theme.StrengthStrong.Render("●")
	case profile.StrengthMedium:
		return theme.StrengthMedium.Render("●")
	case profile.StrengthWeak:
		return theme.StrengthWeak.Render("●")
	default:
		return theme.StrengthNone.Render("○")
	}
}
