package viz

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/forktal/internal/config"
)

func updateApp(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	next, _ := a.Update(msg)
	return next.(App)
}

func TestAppMenuNavigation(t *testing.T) {
	a := NewApp(config.DefaultConfig())

	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyDown})
	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyDown})
	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyUp})
	if a.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", a.cursor)
	}

	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyUp})
	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyUp})
	if a.cursor != 0 {
		t.Errorf("cursor should stop at 0, got %d", a.cursor)
	}
}

func TestAppStartsSelectedPreset(t *testing.T) {
	base := config.DefaultConfig()
	a := NewApp(base)
	a = updateApp(t, a, tea.WindowSizeMsg{Width: 100, Height: 30})

	// presets are sorted: classic, dragon, elephant, ...
	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyDown})
	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	if a.state != stateView {
		t.Fatal("expected viewer state")
	}
	if a.view.field.Viewport() != config.Presets[a.presets[1]] {
		t.Errorf("expected %s viewport, got %v", a.presets[1], a.view.field.Viewport())
	}
	if a.view.field.Width() != 100-panelWidth {
		t.Errorf("viewer not sized to terminal: width %d", a.view.field.Width())
	}
	if base.Preset != "" {
		t.Error("starting a preset modified the base config")
	}

	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	if a.state != stateMenu {
		t.Error("expected m to return to the menu")
	}
}
