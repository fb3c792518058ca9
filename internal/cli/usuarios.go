package cli

import (
	"context"

	"gestao-cli/internal/admin"
	"gestao-cli/internal/crud"
	"gestao-cli/internal/format"
	"gestao-cli/internal/model"

	"github.com/spf13/pflag"
)

func usuariosSpec() entitySpec[model.Usuario, admin.UsuarioFiltro] {
	return entitySpec[model.Usuario, admin.UsuarioFiltro]{
		name:     "usuarios",
		singular: "usuário",
		short:    "Usuários do sistema",
		example: `
  gestao usuarios list --tipo ADMIN
  gestao usuarios create --nome Ana --email ana@loja.com --tipo GERENTE`,
		ctrl:  func(a *admin.Admin) *crud.Controller[model.Usuario, admin.UsuarioFiltro] { return a.Usuarios },
		table: func(xs []model.Usuario) format.Tabular { return format.Usuarios(xs) },
		filters: func(fs *pflag.FlagSet) func(*admin.UsuarioFiltro) error {
			var nome, email, tipo string
			fs.StringVar(&nome, "nome", "", "Nome contém")
			fs.StringVar(&email, "email", "", "E-mail contém")
			fs.StringVar(&tipo, "tipo", "", "Tipo exato (ADMIN|GERENTE|FUNCIONARIO)")
			return func(f *admin.UsuarioFiltro) error {
				f.Nome = nome
				f.Email = email
				if fs.Changed("tipo") {
					t, err := parseTipoUsuario(tipo)
					if err != nil {
						return err
					}
					f.TipoUsuario = t
				}
				return nil
			}
		},
		fields: func(fs *pflag.FlagSet) func(context.Context, *admin.Admin) error {
			var nome, email, senha, tipo string
			fs.StringVar(&nome, "nome", "", "Nome")
			fs.StringVar(&email, "email", "", "E-mail")
			fs.StringVar(&senha, "senha", "", "Senha (enviada apenas quando informada)")
			fs.StringVar(&tipo, "tipo", "", "ADMIN, GERENTE ou FUNCIONARIO")
			return func(_ context.Context, a *admin.Admin) error {
				return mutate(a.Usuarios, func(u *model.Usuario) error {
					if fs.Changed("nome") {
						u.Nome = nome
					}
					if fs.Changed("email") {
						u.Email = email
					}
					if fs.Changed("senha") {
						u.Senha = senha
					}
					if fs.Changed("tipo") {
						t, err := parseTipoUsuario(tipo)
						if err != nil {
							return err
						}
						u.TipoUsuario = t
					}
					return nil
				})
			}
		},
	}
}

func parseTipoUsuario(s string) (model.TipoUsuario, error) {
	t, ok := model.ParseTipoUsuario(s)
	if !ok {
		return "", errInvalidFlag("tipo", s, "ADMIN, GERENTE ou FUNCIONARIO")
	}
	return t, nil
}
