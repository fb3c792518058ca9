package cli

import (
	"context"

	"gestao-cli/internal/admin"
	"gestao-cli/internal/crud"
	"gestao-cli/internal/format"
	"gestao-cli/internal/model"

	"github.com/spf13/pflag"
)

func tagsSpec() entitySpec[model.Tag, admin.TagFiltro] {
	return entitySpec[model.Tag, admin.TagFiltro]{
		name:     "tags",
		singular: "tag",
		short:    "Tags de produtos",
		example: `
  gestao tags list --nome promo
  gestao tags create --nome Promo`,
		ctrl:  func(a *admin.Admin) *crud.Controller[model.Tag, admin.TagFiltro] { return a.Tags },
		table: func(xs []model.Tag) format.Tabular { return format.Tags(xs) },
		filters: func(fs *pflag.FlagSet) func(*admin.TagFiltro) error {
			var nome string
			fs.StringVar(&nome, "nome", "", "Nome contém")
			return func(f *admin.TagFiltro) error {
				f.Nome = nome
				return nil
			}
		},
		fields: func(fs *pflag.FlagSet) func(context.Context, *admin.Admin) error {
			var nome string
			fs.StringVar(&nome, "nome", "", "Nome da tag")
			return func(_ context.Context, a *admin.Admin) error {
				return mutate(a.Tags, func(t *model.Tag) error {
					if fs.Changed("nome") {
						t.Nome = nome
					}
					return nil
				})
			}
		},
	}
}
