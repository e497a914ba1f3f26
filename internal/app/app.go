package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutoriz/internal/planner"
	"github.com/abhisek/tutoriz/internal/profile"
	"github.com/abhisek/tutoriz/internal/router"
	"github.com/abhisek/tutoriz/internal/screen"
	"github.com/abhisek/tutoriz/internal/screens/home"
	"github.com/abhisek/tutoriz/internal/store"
	"github.com/abhisek/tutoriz/internal/ui/layout"
)

// Deps bundles everything the TUI needs.
type Deps struct {
	Planner   *planner.Planner
	Profiles  *profile.Store
	EventRepo store.EventRepo
	StudentID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   Deps
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(deps Deps) AppModel {
	homeScreen := home.New(deps.Planner, deps.Profiles, deps.EventRepo, deps.StudentID)
	return AppModel{
		router: router.New(homeScreen),
		deps:   deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	quizzes := 0
	if report := m.deps.Profiles.ProgressReport(m.deps.StudentID); report != nil {
		quizzes = report.TotalQuizzes
	}

	header := layout.RenderHeader(title, m.deps.StudentID, quizzes, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
