package cli

import (
	"context"

	"gestao-cli/internal/admin"
	"gestao-cli/internal/format"

	"github.com/spf13/cobra"
)

func newCategoriasCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorias",
		Short: "Categorias de produtos (somente leitura)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categorias",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withAdmin(cmd, false, func(ctx context.Context, a *admin.Admin) error {
				// Failures are already reported by the notifier.
				if err := a.Produtos.LoadCategorias(ctx); err != nil {
					return err
				}
				return writeOut(cmd, app, format.Categorias(a.Produtos.Categorias()))
			})
		},
	})
	return cmd
}
