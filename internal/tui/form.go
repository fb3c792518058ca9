package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
	fieldChecklist
)

type option struct {
	label string
	value string
}

// formField is one row of an editor or filter modal. Text fields wrap a
// textinput; choices cycle with ←/→; checklists apply each toggle
// immediately through the toggle callback.
type formField struct {
	key   string
	label string
	kind  fieldKind

	input textinput.Model

	options []option
	cursor  int
	checked func(i int) bool
	toggle  func(i int)
}

func textField(key, label, value string) formField {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 200
	in.SetValue(value)
	return formField{key: key, label: label, kind: fieldText, input: in}
}

func secretField(key, label string) formField {
	f := textField(key, label, "")
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func choiceField(key, label string, opts []option, value string) formField {
	f := formField{key: key, label: label, kind: fieldChoice, options: opts}
	for i, o := range opts {
		if o.value == value {
			f.cursor = i
			break
		}
	}
	return f
}

func checklistField(key, label string, opts []option, checked func(int) bool, toggle func(int)) formField {
	return formField{key: key, label: label, kind: fieldChecklist, options: opts, checked: checked, toggle: toggle}
}

func (f formField) value() string {
	switch f.kind {
	case fieldText:
		return strings.TrimSpace(f.input.Value())
	case fieldChoice:
		if len(f.options) == 0 {
			return ""
		}
		return f.options[f.cursor].value
	}
	return ""
}

func (f *formField) step(delta int) {
	n := len(f.options)
	if n == 0 {
		return
	}
	f.cursor = ((f.cursor+delta)%n + n) % n
}

type formValues map[string]string

// formState is an open editor or filter modal. submit receives the current
// values and reports input that cannot be parsed.
type formState struct {
	title  string
	fields []formField
	focus  int
	submit func(formValues) error
}

func newFormState(title string, fields []formField, submit func(formValues) error) *formState {
	f := &formState{title: title, fields: fields, submit: submit}
	f.setFocus(0)
	return f
}

func (f *formState) values() formValues {
	out := formValues{}
	for _, fld := range f.fields {
		out[fld.key] = fld.value()
	}
	return out
}

func (f *formState) setFocus(i int) {
	if len(f.fields) == 0 {
		return
	}
	f.focus = (i%len(f.fields) + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		if f.fields[j].kind != fieldText {
			continue
		}
		if j == f.focus {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

// update handles a key that is not a modal-level shortcut.
func (f *formState) update(msg tea.KeyMsg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	switch msg.String() {
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return nil
	}

	fld := &f.fields[f.focus]
	switch fld.kind {
	case fieldChoice:
		switch msg.String() {
		case "left", "h":
			fld.step(-1)
		case "right", "l", " ":
			fld.step(1)
		}
		return nil
	case fieldChecklist:
		switch msg.String() {
		case "left", "h":
			fld.step(-1)
		case "right", "l":
			fld.step(1)
		case " ", "x":
			if fld.toggle != nil && len(fld.options) > 0 {
				fld.toggle(fld.cursor)
			}
		}
		return nil
	}

	var cmd tea.Cmd
	fld.input, cmd = fld.input.Update(msg)
	return cmd
}

func (f *formState) view(width int) string {
	bodyW := modalBodyWidth(width)
	labelStyle := styleMuted()
	focusStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	var b strings.Builder
	for i, fld := range f.fields {
		focused := i == f.focus
		if focused {
			b.WriteString(focusStyle.Render(fld.label))
		} else {
			b.WriteString(labelStyle.Render(fld.label))
		}
		b.WriteString("\n")

		switch fld.kind {
		case fieldText:
			fld.input.Width = bodyW - 3
			b.WriteString(renderInputLine(bodyW, fld.input.View()))
		case fieldChoice:
			cur := "—"
			if len(fld.options) > 0 {
				cur = fld.options[fld.cursor].label
			}
			line := "‹ " + cur + " ›"
			if focused {
				line = focusStyle.Render(line)
			}
			b.WriteString(line)
		case fieldChecklist:
			b.WriteString(renderChecklist(bodyW, fld, focused))
		}
		if i < len(f.fields)-1 {
			b.WriteString("\n\n")
		}
	}

	help := styleMuted().Width(bodyW).Render("tab: próximo campo   ←/→: opção   espaço: marcar   ctrl+s: salvar   esc: cancelar")
	return renderModalBox(width, f.title, b.String()+"\n\n"+help)
}

func renderChecklist(bodyW int, fld formField, focused bool) string {
	if len(fld.options) == 0 {
		return styleMuted().Render("(nenhuma)")
	}
	cursor := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	parts := make([]string, 0, len(fld.options))
	for i, o := range fld.options {
		mark := "[ ]"
		if fld.checked != nil && fld.checked(i) {
			mark = "[x]"
		}
		s := mark + " " + o.label
		if focused && i == fld.cursor {
			s = cursor.Render(s)
		}
		parts = append(parts, s)
	}
	return lipgloss.NewStyle().Width(bodyW).Render(strings.Join(parts, "  "))
}

// parseDecimal accepts both "5.55" and "5,55". An empty string is nil.
func parseDecimal(label, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return nil, fmt.Errorf("%s inválido: %q", label, s)
	}
	v := d.InexactFloat64()
	return &v, nil
}

func parseAmount(label, s string) (float64, error) {
	v, err := parseDecimal(label, s)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

func parseCount(label, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s inválida: %q", label, s)
	}
	return n, nil
}

func parseRefID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil
}
