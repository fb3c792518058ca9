package cli

import (
	"context"
	"strings"

	"gestao-cli/internal/admin"
	"gestao-cli/internal/crud"
	"gestao-cli/internal/format"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// entitySpec wires one admin feature to the list/show/create/update/delete
// subcommands.
type entitySpec[E any, F any] struct {
	name     string
	singular string
	short    string
	example  string

	ctrl  func(*admin.Admin) *crud.Controller[E, F]
	table func([]E) format.Tabular

	// filters registers the list flags and returns a func that copies the
	// ones set by the user into the criteria.
	filters func(fs *pflag.FlagSet) func(*F) error
	// fields registers the editable flags and returns a func that applies the
	// changed ones to the controller's selection.
	fields func(fs *pflag.FlagSet) func(ctx context.Context, a *admin.Admin) error
}

func newEntityCmd[E any, F any](app *App, s entitySpec[E, F]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     s.name,
		Short:   s.short,
		Example: strings.TrimSpace(s.example),
	}
	cmd.AddCommand(newEntityListCmd(app, s))
	cmd.AddCommand(newEntityShowCmd(app, s))
	cmd.AddCommand(newEntityCreateCmd(app, s))
	cmd.AddCommand(newEntityUpdateCmd(app, s))
	cmd.AddCommand(newEntityDeleteCmd(app, s))
	return cmd
}

func newEntityListCmd[E any, F any](app *App, s entitySpec[E, F]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + s.name + " (filters are combined)",
		Args:  cobra.NoArgs,
	}
	apply := s.filters(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		var criteria F
		if err := apply(&criteria); err != nil {
			return writeErr(cmd, err)
		}
		return app.withAdmin(cmd, false, func(ctx context.Context, a *admin.Admin) error {
			c := s.ctrl(a)
			if err := c.Load(ctx); err != nil {
				return err
			}
			c.SetCriteria(criteria)
			c.ApplyFilters()
			return writeOut(cmd, app, s.table(c.Filtered()))
		})
	}
	return cmd
}

// single renders like a one-row table but serialises as a JSON object.
type single struct {
	format.Tabular
	rec any
}

func (s single) Records() any { return s.rec }

func newEntityShowCmd[E any, F any](app *App, s entitySpec[E, F]) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one " + s.singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.withAdmin(cmd, false, func(ctx context.Context, a *admin.Admin) error {
				e, err := find(ctx, cmd, s, a, id)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, single{Tabular: s.table([]E{e}), rec: e})
			})
		},
	}
}

func newEntityCreateCmd[E any, F any](app *App, s entitySpec[E, F]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + s.singular,
		Args:  cobra.NoArgs,
	}
	apply := s.fields(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return app.withAdmin(cmd, false, func(ctx context.Context, a *admin.Admin) error {
			c := s.ctrl(a)
			c.StartCreate()
			if err := apply(ctx, a); err != nil {
				return writeErr(cmd, err)
			}
			return c.Save(ctx)
		})
	}
	return cmd
}

func newEntityUpdateCmd[E any, F any](app *App, s entitySpec[E, F]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a " + s.singular + " (only the flags given are changed)",
		Args:  cobra.ExactArgs(1),
	}
	apply := s.fields(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return writeErr(cmd, err)
		}
		return app.withAdmin(cmd, false, func(ctx context.Context, a *admin.Admin) error {
			e, err := find(ctx, cmd, s, a, id)
			if err != nil {
				return err
			}
			c := s.ctrl(a)
			c.StartEdit(e)
			if err := apply(ctx, a); err != nil {
				return writeErr(cmd, err)
			}
			if err := c.Save(ctx); err != nil {
				return writeErr(cmd, orNotFound(err, s.singular, id))
			}
			return nil
		})
	}
	return cmd
}

func newEntityDeleteCmd[E any, F any](app *App, s entitySpec[E, F]) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + s.singular + " (asks for confirmation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.withAdmin(cmd, yes, func(ctx context.Context, a *admin.Admin) error {
				e, err := find(ctx, cmd, s, a, id)
				if err != nil {
					return err
				}
				if err := s.ctrl(a).Remove(ctx, e); err != nil {
					return writeErr(cmd, orNotFound(err, s.singular, id))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func find[E any, F any](ctx context.Context, cmd *cobra.Command, s entitySpec[E, F], a *admin.Admin, id int64) (E, error) {
	c := s.ctrl(a)
	if err := c.Load(ctx); err != nil {
		var zero E
		return zero, err
	}
	e, ok := c.Find(id)
	if !ok {
		return e, writeErr(cmd, errNotFound(s.singular, id))
	}
	return e, nil
}

// mutate applies fn to a copy of the selection and stores it back, so fn may
// call other controller methods.
func mutate[E any, F any](c *crud.Controller[E, F], fn func(*E) error) error {
	sel, ok := c.Selected()
	if !ok {
		return nil
	}
	if err := fn(&sel); err != nil {
		return err
	}
	c.Edit(func(e *E) { *e = sel })
	return nil
}
