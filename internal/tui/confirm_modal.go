package tui

import (
	"strings"

	"gestao-cli/internal/crud"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// confirmState is an open delete confirmation. reply is buffered so
// answering never blocks the UI loop.
type confirmState struct {
	title string
	body  string
	opts  crud.ConfirmOptions
	focus confirmModalFocus
	reply chan<- bool
}

func (c *confirmState) answer(yes bool) {
	if c.reply == nil {
		return
	}
	select {
	case c.reply <- yes:
	default:
	}
	c.reply = nil
}

func renderConfirmModal(width int, c confirmState) string {
	confirmLabel := c.opts.ConfirmLabel
	if confirmLabel == "" {
		confirmLabel = "Sim"
	}
	cancelLabel := c.opts.CancelLabel
	if cancelLabel == "" {
		cancelLabel = "Não"
	}

	// No borders on the buttons: nested borders inside a modal leave
	// background artifacts on some terminals.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if c.focus == confirmFocusConfirm {
		confirm = btnActive.Foreground(severityColor(c.opts.Severity)).Render(confirmLabel)
	} else {
		cancel = btnActive.Render(cancelLabel)
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: foco   enter: selecionar   s: sim   n/esc: não")

	title := c.title
	if title == "" {
		title = "Confirmar"
	}
	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(c.body),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}
