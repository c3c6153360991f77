package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/forktal/internal/config"
)

const (
	stateMenu = iota
	stateView
)

// App lets the user pick a preset viewport before opening the viewer.
type App struct {
	state   int
	cursor  int
	presets []string
	base    *config.Config
	view    Model
	width   int
	height  int
}

func NewApp(cfg *config.Config) App {
	return App{
		state:   stateMenu,
		presets: config.ListPresets(),
		base:    cfg,
		width:   defaultCols,
		height:  defaultRows,
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = size.Width, size.Height
	}

	if a.state == stateView {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "m" {
			a.state = stateMenu
			return a, nil
		}
		next, cmd := a.view.Update(msg)
		a.view = next.(Model)
		return a, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return a.menuKey(key)
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		return a.start()
	}
	return a, nil
}

func (a App) start() (App, tea.Cmd) {
	cfg := *a.base
	cfg.Preset = a.presets[a.cursor]
	cfg.Viewport = nil

	a.view = NewModel(&cfg)
	next, _ := a.view.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	a.view = next.(Model)
	a.state = stateView
	return a, a.view.Init()
}

func (a App) View() string {
	if a.state == stateView {
		return a.view.View()
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Foreground(CurrentTheme.Secondary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	b.WriteString("\n\n    " + title.Render("FORKTAL") + "\n    " + sub.Render("escape-time explorer") + "\n    " + sub.Render("─────────────────────────") + "\n\n")

	for i, name := range a.presets {
		desc := config.PresetInfo(name)
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				lipgloss.NewStyle().Foreground(CurrentTheme.Secondary).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true).Render(fmt.Sprintf("%-10s", name)),
				lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				sub.Render(fmt.Sprintf("  %-10s", name)),
				sub.Render(desc)))
		}
	}

	key := lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true)
	b.WriteString("\n    " + key.Render("j/k") + sub.Render(" navigate  ") + key.Render("enter") + sub.Render(" explore  ") + key.Render("m") + sub.Render(" back to menu  ") + key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive opens the preset menu on the alternate screen.
func RunInteractive(cfg *config.Config) error {
	SetTheme(cfg.Theme)
	_, err := tea.NewProgram(NewApp(cfg), tea.WithAltScreen()).Run()
	return err
}
