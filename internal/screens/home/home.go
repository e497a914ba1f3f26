package home

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutoriz/internal/planner"
	"github.com/abhisek/tutoriz/internal/profile"
	"github.com/abhisek/tutoriz/internal/router"
	"github.com/abhisek/tutoriz/internal/screen"
	"github.com/abhisek/tutoriz/internal/screens/chat"
	"github.com/abhisek/tutoriz/internal/screens/progress"
	"github.com/abhisek/tutoriz/internal/store"
	"github.com/abhisek/tutoriz/internal/ui/components"
	"github.com/abhisek/tutoriz/internal/ui/theme"
)

const banner = `
 _____      _             _
|_   _|   _| |_ ___  _ __(_)____
  | || | | | __/ _ \| '__| |_  /
  | || |_| | || (_) | |  | |/ /
  |_| \__,_|\__\___/|_|  |_/___|
`

// HomeScreen is the main entry screen of the application.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(p *planner.Planner, profiles *profile.Store, eventRepo store.EventRepo, studentID string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "ASK THE TUTOR", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: chat.New(p, profiles, eventRepo, studentID)}
			}
		}},
		{Label: "PROGRESS REPORT", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progress.New(profiles, eventRepo, studentID)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Width(width).Render(banner)
	subtitle := theme.Subtitle.Width(width).Render("Your adaptive study companion")
	menu := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(h.menu.View())

	content := title + "\n" + subtitle + "\n\n\n" + menu

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Render(content)
}
