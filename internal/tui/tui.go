package tui

import (
	"tablero-cli/internal/model"
	"tablero-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Store   store.Store
	DB      *store.DB
	ActorID string
	Today   model.Date
}

func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
