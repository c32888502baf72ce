package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"splc/internal/core/app"
)

// Run shows the watch screen until the user quits. The caller starts the
// watcher; every update a publishes is rendered as it arrives.
func Run(a *app.App, initial []app.Update) error {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())

	a.SetUpdateHandler(func(u app.Update) {
		p.Send(fromUpdate(u))
	})

	go func() {
		for _, u := range initial {
			p.Send(fromUpdate(u))
		}
	}()

	_, err := p.Run()
	return err
}
