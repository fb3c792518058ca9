package tui

import (
	"context"
	"time"

	"gestao-cli/internal/admin"
	"gestao-cli/internal/crud"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalForm
	modalFilter
	modalConfirm
	modalHelp
)

type loadedMsg struct {
	tab int
	err error
}

type savedMsg struct {
	tab int
	err error
}

type removedMsg struct {
	tab int
	err error
}

type flashDoneMsg struct{ seq int }

const flashDuration = 4 * time.Second

type appModel struct {
	ctx  context.Context
	tabs []tab

	active int
	list   list.Model

	width  int
	height int

	modal modalKind
	// underConfirm is the modal to return to once a confirmation is answered.
	underConfirm modalKind
	form         *formState
	confirm      confirmState
	help         viewport.Model
	saving       bool

	flash    *crud.Notice
	flashSeq int

	detailCache map[string]string
}

func newAppModel(ctx context.Context, a *admin.Admin) appModel {
	l := list.New(nil, newCompactItemDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	m := appModel{
		ctx: ctx,
		tabs: []tab{
			newOperacoesTab(a.Operacoes),
			newProdutosTab(a.Produtos),
			newTagsTab(a.Tags),
			newUsuariosTab(a.Usuarios),
		},
		list:        l,
		help:        viewport.New(0, 0),
		detailCache: map[string]string{},
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs))
	for i := range m.tabs {
		cmds = append(cmds, m.loadCmd(i))
	}
	return tea.Batch(cmds...)
}

// Controller calls that reach the network or ask for confirmation run as
// commands, off the event loop.

func (m appModel) loadCmd(i int) tea.Cmd {
	t, ctx := m.tabs[i], m.ctx
	return func() tea.Msg {
		return loadedMsg{tab: i, err: t.load(ctx)}
	}
}

func (m appModel) saveCmd(i int) tea.Cmd {
	t, ctx := m.tabs[i], m.ctx
	return func() tea.Msg {
		return savedMsg{tab: i, err: t.save(ctx)}
	}
}

func (m appModel) removeCmd(i int, remove func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return removedMsg{tab: i, err: remove(ctx)}
	}
}

func (m appModel) current() tab { return m.tabs[m.active] }

func (m appModel) selectedRow() int {
	if r, ok := m.list.SelectedItem().(rowItem); ok {
		return r.index
	}
	return -1
}

// refresh rebuilds the list from the active tab, keeping the cursor where it
// was when possible.
func (m *appModel) refresh() {
	idx := m.list.Index()
	items := m.current().rows()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.list.Select(idx)
}

func (m *appModel) switchTab(i int) {
	if i < 0 || i >= len(m.tabs) || i == m.active {
		return
	}
	m.active = i
	m.list.ResetSelected()
	m.refresh()
}

func (m *appModel) setFlash(n crud.Notice) tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq
	m.flash = &n
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}
