// Package tui is the interactive console: one tab per record screen, a
// detail pane, editor and filter modals, and a confirm dialog for deletes.
package tui

import (
	"context"

	"gestao-cli/internal/admin"
	"gestao-cli/internal/crud"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the console. build receives the notifier and confirmer that
// route controller feedback into the program.
func Run(ctx context.Context, build func(crud.Deps) *admin.Admin) error {
	applyColorProfilePreference()
	applyThemePreference()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b := &bridge{}
	a := build(crud.Deps{Notifier: b, Confirmer: b})
	p := tea.NewProgram(newAppModel(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	b.attach(p.Send)
	defer b.attach(nil)

	_, err := p.Run()
	return err
}
