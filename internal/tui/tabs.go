package tui

import (
	"context"

	"gestao-cli/internal/crud"

	"github.com/charmbracelet/bubbles/list"
)

// tab is one record screen as seen by the app model. Indexes refer to the
// snapshot taken by the last call to rows.
type tab interface {
	title() string
	load(ctx context.Context) error
	rows() []list.Item
	detail(i int) string
	startCreate() *formState
	startEdit(i int) *formState
	cancelEdit()
	isEditing() bool
	save(ctx context.Context) error
	remover(i int) func(context.Context) error
	filterForm() *formState
	clearFilters()
	hasActiveFilters() bool
	loading() bool
}

// rowItem is one entity in the list; index points into the tab's snapshot.
type rowItem struct {
	title string
	index int
}

func (r rowItem) Title() string       { return r.title }
func (r rowItem) FilterValue() string { return r.title }

// entityTab adapts a crud.Controller to tab. The per-entity parts are
// plain functions so each screen only describes its rows, detail and forms.
type entityTab[E any, F any] struct {
	name      string
	newTitle  string
	editTitle string
	ctrl      *crud.Controller[E, F]
	loadFn    func(context.Context) error

	row      func(E) string
	markdown func(E) string

	// fields builds the editor from the current selection; apply parses the
	// submitted values into a mutation of the selection.
	fields func(E) []formField
	apply  func(formValues) (func(*E), error)

	filterFields func(F) []formField
	applyFilter  func(formValues) (func(*F), error)

	snapshot []E
}

func (t *entityTab[E, F]) title() string { return t.name }

func (t *entityTab[E, F]) load(ctx context.Context) error {
	if t.loadFn != nil {
		return t.loadFn(ctx)
	}
	return t.ctrl.Load(ctx)
}

func (t *entityTab[E, F]) rows() []list.Item {
	t.snapshot = t.ctrl.Filtered()
	items := make([]list.Item, 0, len(t.snapshot))
	for i, e := range t.snapshot {
		items = append(items, rowItem{title: t.row(e), index: i})
	}
	return items
}

func (t *entityTab[E, F]) at(i int) (E, bool) {
	var zero E
	if i < 0 || i >= len(t.snapshot) {
		return zero, false
	}
	return t.snapshot[i], true
}

func (t *entityTab[E, F]) detail(i int) string {
	e, ok := t.at(i)
	if !ok {
		return ""
	}
	return t.markdown(e)
}

func (t *entityTab[E, F]) startCreate() *formState {
	t.ctrl.StartCreate()
	return t.editor(t.newTitle)
}

func (t *entityTab[E, F]) startEdit(i int) *formState {
	e, ok := t.at(i)
	if !ok {
		return nil
	}
	t.ctrl.StartEdit(e)
	return t.editor(t.editTitle)
}

func (t *entityTab[E, F]) editor(title string) *formState {
	sel, ok := t.ctrl.Selected()
	if !ok {
		return nil
	}
	return newFormState(title, t.fields(sel), func(v formValues) error {
		mut, err := t.apply(v)
		if err != nil {
			return err
		}
		t.ctrl.Edit(mut)
		return nil
	})
}

func (t *entityTab[E, F]) cancelEdit()     { t.ctrl.CloseEditor() }
func (t *entityTab[E, F]) isEditing() bool { return t.ctrl.IsEditing() }

func (t *entityTab[E, F]) save(ctx context.Context) error { return t.ctrl.Save(ctx) }

// remover resolves row i against the current snapshot and returns the call
// that deletes that entity. Run it off the event loop; it never reads the
// snapshot again.
func (t *entityTab[E, F]) remover(i int) func(context.Context) error {
	e, ok := t.at(i)
	if !ok {
		return nil
	}
	return func(ctx context.Context) error { return t.ctrl.Remove(ctx, e) }
}

func (t *entityTab[E, F]) filterForm() *formState {
	return newFormState("Filtrar "+t.name, t.filterFields(t.ctrl.Criteria()), func(v formValues) error {
		mut, err := t.applyFilter(v)
		if err != nil {
			return err
		}
		t.ctrl.UpdateCriteria(mut)
		t.ctrl.ApplyFilters()
		return nil
	})
}

func (t *entityTab[E, F]) clearFilters()          { t.ctrl.ClearFilters() }
func (t *entityTab[E, F]) hasActiveFilters() bool { return t.ctrl.HasActiveFilters() }
func (t *entityTab[E, F]) loading() bool          { return t.ctrl.IsLoading() }
