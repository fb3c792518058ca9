package tui

import (
	"strconv"
	"strings"

	"gestao-cli/internal/docs"

	"github.com/charmbracelet/lipgloss"
)

const detailCacheLimit = 64

func (m appModel) bodyHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

func (m appModel) listWidth() int {
	w := m.width * 2 / 5
	if w < 20 {
		w = 20
	}
	return w
}

func (m appModel) View() string {
	if m.width == 0 {
		return "Carregando…"
	}

	bodyH := m.bodyHeight()
	var body string
	switch m.modal {
	case modalForm, modalFilter:
		body = placeCentered(m.width, bodyH, m.form.view(m.width))
	case modalConfirm:
		body = placeCentered(m.width, bodyH, renderConfirmModal(m.width, m.confirm))
	case modalHelp:
		body = placeCentered(m.width, bodyH, renderModalBox(m.width, "Atalhos", m.help.View()))
	default:
		body = m.browseView(bodyH)
	}

	return strings.Join([]string{
		normalizePane(m.tabBar(), m.width, 1),
		normalizePane(body, m.width, bodyH),
		normalizePane(m.footer(), m.width, 1),
	}, "\n")
}

func (m appModel) tabBar() string {
	active := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)
	idle := lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)

	parts := make([]string, 0, len(m.tabs)+1)
	for i, t := range m.tabs {
		label := strconv.Itoa(i+1) + " " + t.title()
		if i == m.active {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, idle.Render(label))
		}
	}

	var status []string
	if m.current().loading() {
		status = append(status, "carregando…")
	}
	if m.current().hasActiveFilters() {
		status = append(status, "filtrado")
	}
	if len(status) > 0 {
		parts = append(parts, styleMuted().Render(" "+strings.Join(status, " · ")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m appModel) browseView(bodyH int) string {
	listW := m.listWidth()
	detailW := m.width - listW - 1
	if detailW < 0 {
		detailW = 0
	}

	var left string
	if len(m.list.Items()) == 0 {
		left = styleMuted().Render("Nenhum registro encontrado.")
	} else {
		left = m.list.View()
	}

	sep := styleMuted().Render(strings.TrimRight(strings.Repeat("│\n", bodyH), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		normalizePane(left, listW, bodyH),
		sep,
		normalizePane(m.detailView(detailW), detailW, bodyH),
	)
}

// detailView renders the selected record. Rendered markdown is cached per
// width and content since glamour is slow enough to be felt while scrolling.
func (m appModel) detailView(width int) string {
	md := m.current().detail(m.selectedRow())
	if md == "" || width < 10 {
		return ""
	}
	key := strconv.Itoa(width) + "\x00" + md
	if out, ok := m.detailCache[key]; ok {
		return out
	}
	out := docs.Render(md, width-1)
	if len(m.detailCache) >= detailCacheLimit {
		clear(m.detailCache)
	}
	m.detailCache[key] = out
	return out
}

func (m appModel) footer() string {
	if m.flash != nil {
		st := lipgloss.NewStyle().Foreground(severityColor(m.flash.Severity)).Bold(true)
		text := m.flash.Text
		if m.flash.Title != "" {
			text = m.flash.Title + " " + text
		}
		return st.Render(text)
	}
	return styleMuted().Render("n: novo  e: editar  d: excluir  /: filtrar  c: limpar  r: recarregar  ?: ajuda  q: sair")
}
