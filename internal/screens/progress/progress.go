package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutoriz/internal/profile"
	"github.com/abhisek/tutoriz/internal/screen"
	"github.com/abhisek/tutoriz/internal/store"
	"github.com/abhisek/tutoriz/internal/ui/components"
	"github.com/abhisek/tutoriz/internal/ui/theme"
)

const recentAttempts = 5

// historyLoadedMsg carries the recent quiz attempts from the event store.
type historyLoadedMsg struct {
	Records []store.QuizEventRecord
	Err     error
}

// ProgressScreen shows per-topic mastery and recent quiz history.
type ProgressScreen struct {
	profiles  *profile.Store
	eventRepo store.EventRepo
	studentID string

	history []store.QuizEventRecord
	histErr error
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New creates a new ProgressScreen.
func New(profiles *profile.Store, eventRepo store.EventRepo, studentID string) *ProgressScreen {
	return &ProgressScreen{
		profiles:  profiles,
		eventRepo: eventRepo,
		studentID: studentID,
	}
}

func (p *ProgressScreen) Init() tea.Cmd {
	if p.eventRepo == nil {
		return nil
	}
	return func() tea.Msg {
		records, err := p.eventRepo.QueryQuizEvents(context.Background(), store.QueryOpts{
			Limit:   recentAttempts,
			Student: p.studentID,
		})
		return historyLoadedMsg{Records: records, Err: err}
	}
}

func (p *ProgressScreen) Title() string {
	return "Progress"
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(historyLoadedMsg); ok {
		p.history = m.Records
		p.histErr = m.Err
	}
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	report := p.profiles.ProgressReport(p.studentID)
	textWidth := width - 8
	if textWidth < 30 {
		textWidth = 30
	}

	var b strings.Builder

	if report == nil {
		b.WriteString(theme.Subtitle.Render("No progress data available yet. Start learning to track your progress!"))
		return centered(b.String(), width, height)
	}

	b.WriteString(theme.Title.Render(fmt.Sprintf("Progress — %d quizzes taken", report.TotalQuizzes)))
	b.WriteString("\n\n")

	for _, topic := range report.Topics {
		stat := report.Progress[topic]
		bar := components.NewProgressBar(padTopic(topic), stat.Accuracy/100, true, textWidth-14)
		b.WriteString(bar.View())
		b.WriteString("  " + strengthLabel(stat.Strength))
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  (%d attempts)", stat.Attempts)))
		b.WriteString("\n")
	}

	if len(report.WeakTopics) > 0 {
		b.WriteString("\n" + theme.StrengthWeak.Render("Needs work: "+strings.Join(report.WeakTopics, ", ")) + "\n")
	}

	if p.histErr == nil && len(p.history) > 0 {
		b.WriteString("\n" + theme.Subtitle.Render("Recent quizzes") + "\n")
		for _, rec := range p.history {
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %s  %s (%s) — %.0f%%",
				rec.Timestamp.Format("Jan 02 15:04"), rec.Topic, rec.Difficulty, rec.Accuracy)))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(b.String())
}

func centered(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}

func padTopic(topic string) string {
	const col = 24
	if len(topic) > col {
		return topic[:col-1] + "…"
	}
	return topic + strings.Repeat(" ", col-len(topic))
}

func strengthLabel(s profile.Strength) string {
	switch s {
	case profile.StrengthStrong:
		return theme.StrengthStrong.Render("strong")
	case profile.StrengthMedium:
		return theme.StrengthMedium.Render("medium")
	case profile.StrengthWeak:
		return theme.StrengthWeak.Render("weak")
	default:
		return theme.StrengthNone.Render("unknown")
	}
}
