package tui

import (
	"strings"

	"gestao-cli/internal/crud"
	"gestao-cli/internal/docs"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case noticeMsg:
		return m, m.setFlash(msg.notice)

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = nil
		}
		return m, nil

	case confirmRequestMsg:
		if m.modal == modalConfirm {
			// One confirmation at a time; a second request is declined.
			(&confirmState{reply: msg.reply}).answer(false)
			return m, nil
		}
		m.underConfirm = m.modal
		m.modal = modalConfirm
		m.confirm = confirmState{title: msg.title, body: msg.body, opts: msg.opts, reply: msg.reply}
		return m, nil

	case loadedMsg:
		if msg.tab == m.active {
			m.refresh()
		}
		return m, nil

	case savedMsg:
		m.saving = false
		if msg.tab == m.active {
			m.refresh()
		}
		if msg.err == nil && m.modal == modalForm && !m.tabs[msg.tab].isEditing() {
			m.modal, m.form = modalNone, nil
		}
		return m, nil

	case removedMsg:
		if msg.tab == m.active {
			m.refresh()
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.confirm.answer(false)
		return m, tea.Quit
	}

	switch m.modal {
	case modalConfirm:
		return m.updateConfirm(msg)
	case modalForm, modalFilter:
		return m.updateForm(msg)
	case modalHelp:
		switch msg.String() {
		case "esc", "q", "?":
			m.modal = modalNone
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	switch k := msg.String(); k {
	case "q":
		return m, tea.Quit
	case "tab":
		m.switchTab((m.active + 1) % len(m.tabs))
		return m, nil
	case "shift+tab":
		m.switchTab((m.active + len(m.tabs) - 1) % len(m.tabs))
		return m, nil
	case "1", "2", "3", "4":
		m.switchTab(int(k[0] - '1'))
		return m, nil
	case "n":
		if f := m.current().startCreate(); f != nil {
			m.form, m.modal = f, modalForm
		}
		return m, nil
	case "e", "enter":
		if f := m.current().startEdit(m.selectedRow()); f != nil {
			m.form, m.modal = f, modalForm
		}
		return m, nil
	case "d":
		remove := m.current().remover(m.selectedRow())
		if remove == nil {
			return m, nil
		}
		return m, m.removeCmd(m.active, remove)
	case "/":
		m.form, m.modal = m.current().filterForm(), modalFilter
		return m, nil
	case "c":
		m.current().clearFilters()
		m.refresh()
		return m, nil
	case "r":
		return m, m.loadCmd(m.active)
	case "?":
		m.openHelp()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.modal == modalForm {
			m.current().cancelEdit()
		}
		m.modal, m.form = modalNone, nil
		return m, nil

	case "ctrl+s":
		if m.saving {
			return m, nil
		}
		if err := m.form.submit(m.form.values()); err != nil {
			return m, m.setFlash(crud.Notice{Title: "Erro", Text: err.Error(), Severity: crud.SeverityError})
		}
		if m.modal == modalFilter {
			m.modal, m.form = modalNone, nil
			m.refresh()
			return m, nil
		}
		m.saving = true
		return m, m.saveCmd(m.active)
	}

	cmd := m.form.update(msg)
	if m.modal == modalFilter {
		// Tag toggles in the filter apply immediately.
		m.refresh()
	}
	return m, cmd
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirm.focus == confirmFocusConfirm {
			m.confirm.focus = confirmFocusCancel
		} else {
			m.confirm.focus = confirmFocusConfirm
		}
		return m, nil
	case "s", "y":
		m.confirm.answer(true)
	case "n", "esc":
		m.confirm.answer(false)
	case "enter":
		m.confirm.answer(m.confirm.focus == confirmFocusConfirm)
	default:
		return m, nil
	}
	m.modal = m.underConfirm
	m.underConfirm = modalNone
	return m, nil
}

func (m *appModel) openHelp() {
	md, _ := docs.Get("atalhos")
	w := modalBodyWidth(m.width)
	content := docs.Render(md, w)
	h := strings.Count(content, "\n") + 1
	if maxH := m.bodyHeight() - 6; h > maxH {
		h = maxH
	}
	if h < 3 {
		h = 3
	}
	m.help.Width = w
	m.help.Height = h
	m.help.SetContent(content)
	m.help.GotoTop()
	m.modal = modalHelp
}

func (m *appModel) resize() {
	m.list.SetSize(m.listWidth(), m.bodyHeight())
	m.detailCache = map[string]string{}
}
