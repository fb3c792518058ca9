package crud

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

type Deps struct {
	Notifier  Notifier
	Confirmer Confirmer
	Logger    *zerolog.Logger
}

// Controller holds the list, filter and editor state of one entity type and
// orchestrates its CRUD flows against a Gateway.
//
// Methods are safe for concurrent use. Gateway calls run without the lock, so
// overlapping calls are neither de-duplicated nor ordered: the last Load to
// finish wins.
type Controller[E any, F any] struct {
	feature  Feature[E, F]
	gateway  Gateway[E]
	notifier Notifier
	confirm  Confirmer
	log      zerolog.Logger

	mu       sync.Mutex
	items    []E
	filtered []E
	selected *E
	criteria F
	loading  bool
}

func New[E any, F any](feature Feature[E, F], gw Gateway[E], deps Deps) *Controller[E, F] {
	c := &Controller[E, F]{
		feature:  feature.withDefaults(),
		gateway:  gw,
		notifier: deps.Notifier,
		confirm:  deps.Confirmer,
		log:      zerolog.Nop(),
		items:    []E{},
		filtered: []E{},
	}
	if c.notifier == nil {
		c.notifier = NotifierFunc(func(context.Context, Notice) {})
	}
	if c.confirm == nil {
		c.confirm = declineAll{}
	}
	if deps.Logger != nil {
		c.log = deps.Logger.With().Str("feature", feature.Name).Logger()
	}
	return c
}

type declineAll struct{}

func (declineAll) Confirm(context.Context, string, string, ConfirmOptions) (bool, error) {
	return false, nil
}

func (c *Controller[E, F]) Name() string { return c.feature.Name }

// Load fetches the whole collection and replaces items and filtered with it,
// in gateway order. Criteria are kept but not reapplied.
func (c *Controller[E, F]) Load(ctx context.Context) error {
	items, err := c.gateway.List(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("load failed")
		c.notifyError(ctx, MessageOr(err, c.feature.Messages.LoadFailed))
		return fmt.Errorf("load %s: %w", c.feature.Name, err)
	}
	if items == nil {
		items = []E{}
	}

	c.mu.Lock()
	c.items = items
	c.filtered = append([]E(nil), items...)
	c.mu.Unlock()

	c.log.Debug().Int("count", len(items)).Msg("loaded")
	return nil
}

func (c *Controller[E, F]) ApplyFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]E, 0, len(c.items))
	for _, it := range c.items {
		if c.feature.Match(it, c.criteria) {
			out = append(out, it)
		}
	}
	c.filtered = out
}

func (c *Controller[E, F]) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero F
	c.criteria = zero
	c.filtered = append([]E(nil), c.items...)
}

func (c *Controller[E, F]) HasActiveFilters() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feature.Active(c.criteria)
}

func (c *Controller[E, F]) Criteria() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feature.CloneCriteria(c.criteria)
}

// SetCriteria replaces the criteria. Call ApplyFilters to recompute filtered.
func (c *Controller[E, F]) SetCriteria(f F) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.criteria = c.feature.CloneCriteria(f)
}

func (c *Controller[E, F]) UpdateCriteria(fn func(*F)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.criteria)
}

func (c *Controller[E, F]) Items() []E {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cloneAll(c.items)
}

func (c *Controller[E, F]) Filtered() []E {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cloneAll(c.filtered)
}

func (c *Controller[E, F]) cloneAll(in []E) []E {
	out := make([]E, len(in))
	for i, e := range in {
		out[i] = c.feature.Clone(e)
	}
	return out
}

// Find returns a copy of the loaded entity with the given id.
func (c *Controller[E, F]) Find(id int64) (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.items {
		if got, ok := c.feature.ID(e); ok && got == id {
			return c.feature.Clone(e), true
		}
	}
	var zero E
	return zero, false
}

func (c *Controller[E, F]) StartCreate() {
	b := c.feature.Blank()
	c.mu.Lock()
	c.selected = &b
	c.mu.Unlock()
}

func (c *Controller[E, F]) StartEdit(e E) {
	cp := c.feature.Clone(e)
	c.mu.Lock()
	c.selected = &cp
	c.mu.Unlock()
}

// Selected returns a copy of the entity being edited.
func (c *Controller[E, F]) Selected() (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		var zero E
		return zero, false
	}
	return c.feature.Clone(*c.selected), true
}

// Edit mutates the selection in place. It reports false when nothing is selected.
func (c *Controller[E, F]) Edit(fn func(*E)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return false
	}
	fn(c.selected)
	return true
}

func (c *Controller[E, F]) IsEditing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected != nil
}

func (c *Controller[E, F]) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller[E, F]) CloseEditor() {
	c.mu.Lock()
	c.selected = nil
	c.loading = false
	c.mu.Unlock()
}

// Save creates or updates the selection depending on whether it has an id.
// On success the editor is closed and the collection reloaded; on failure the
// editor stays open.
func (c *Controller[E, F]) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.selected == nil {
		c.mu.Unlock()
		return nil
	}
	if err := c.feature.Validate(*c.selected); err != nil {
		c.mu.Unlock()
		c.notifyError(ctx, validationText(err))
		return err
	}
	if c.feature.Prepare != nil {
		c.feature.Prepare(c.selected)
	}
	e := c.feature.Clone(*c.selected)
	c.loading = true
	c.mu.Unlock()

	var err error
	if id, ok := c.feature.ID(e); ok {
		_, err = c.gateway.Update(ctx, id, e)
	} else {
		_, err = c.gateway.Create(ctx, e)
	}

	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()

	if err != nil {
		c.log.Error().Err(err).Msg("save failed")
		c.notifyError(ctx, MessageOr(err, c.feature.Messages.SaveFailed))
		return fmt.Errorf("save %s: %w", c.feature.Name, err)
	}

	c.notify(ctx, Notice{Title: c.feature.Messages.SuccessTitle, Text: c.feature.Messages.Saved, Severity: SeveritySuccess})
	c.CloseEditor()
	_ = c.Load(ctx)
	return nil
}

// Remove deletes e after the user confirms. A declined confirmation is a
// silent no-op and returns nil.
func (c *Controller[E, F]) Remove(ctx context.Context, e E) error {
	id, ok := c.feature.ID(e)
	if !ok {
		c.notifyError(ctx, c.feature.Messages.MissingID)
		return ErrMissingID
	}

	m := c.feature.Messages
	body := "Excluir " + c.label(e) + "?"
	yes, err := c.confirm.Confirm(ctx, m.ConfirmTitle, body, ConfirmOptions{
		ConfirmLabel: m.ConfirmLabel,
		CancelLabel:  m.CancelLabel,
		Severity:     SeverityWarning,
	})
	if err != nil {
		return fmt.Errorf("confirm delete %s %d: %w", c.feature.Name, id, err)
	}
	if !yes {
		return nil
	}

	if err := c.gateway.Delete(ctx, id); err != nil {
		c.log.Error().Err(err).Int64("id", id).Msg("delete failed")
		c.notifyError(ctx, MessageOr(err, m.DeleteFailed))
		return fmt.Errorf("delete %s %d: %w", c.feature.Name, id, err)
	}

	c.notify(ctx, Notice{Title: m.DeletedTitle, Text: m.Deleted, Severity: SeveritySuccess})
	_ = c.Load(ctx)
	return nil
}

func (c *Controller[E, F]) label(e E) string {
	if c.feature.Label != nil {
		return c.feature.Label(e)
	}
	if id, ok := c.feature.ID(e); ok {
		return fmt.Sprintf("#%d", id)
	}
	return c.feature.Name
}

func (c *Controller[E, F]) notify(ctx context.Context, n Notice) {
	c.notifier.Notify(ctx, n)
}

func (c *Controller[E, F]) notifyError(ctx context.Context, text string) {
	c.notify(ctx, Notice{Title: c.feature.Messages.ErrorTitle, Text: text, Severity: SeverityError})
}

func validationText(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
