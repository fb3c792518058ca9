package admin

import (
	"gestao-cli/internal/crud"
	"gestao-cli/internal/model"
)

type UsuarioFiltro struct {
	Nome        string
	Email       string
	TipoUsuario model.TipoUsuario
}

type Usuarios = crud.Controller[model.Usuario, UsuarioFiltro]

func UsuarioFeature() crud.Feature[model.Usuario, UsuarioFiltro] {
	return crud.Feature[model.Usuario, UsuarioFiltro]{
		Name:  "usuarios",
		Blank: func() model.Usuario { return model.Usuario{TipoUsuario: model.TipoFuncionario} },
		Clone: model.Usuario.Clone,
		ID:    func(u model.Usuario) (int64, bool) { return idOf(u.ID) },
		Label: func(u model.Usuario) string { return `"` + u.Nome + `"` },
		Match: func(u model.Usuario, f UsuarioFiltro) bool {
			if f.Nome != "" && !containsFold(u.Nome, f.Nome) {
				return false
			}
			if f.Email != "" && !containsFold(u.Email, f.Email) {
				return false
			}
			if f.TipoUsuario != "" && u.TipoUsuario != f.TipoUsuario {
				return false
			}
			return true
		},
		Active: func(f UsuarioFiltro) bool {
			return f.Nome != "" || f.Email != "" || f.TipoUsuario != ""
		},
		Validate: func(u model.Usuario) error {
			if u.Nome == "" || u.Email == "" {
				return crud.Invalid("Nome e e-mail são obrigatórios.")
			}
			return nil
		},
		Messages: crud.Messages{
			LoadFailed:   "Não foi possível carregar os usuários. Tente novamente mais tarde.",
			Saved:        "Usuário salvo com sucesso!",
			SaveFailed:   "Não foi possível salvar o usuário. Verifique os dados e tente novamente.",
			Deleted:      "Usuário removido com sucesso.",
			DeleteFailed: "Não foi possível excluir o usuário.",
			MissingID:    "Usuário sem ID válido.",
		},
	}
}

func NewUsuarios(gw crud.Gateway[model.Usuario], deps crud.Deps) *Usuarios {
	return crud.New(UsuarioFeature(), gw, deps)
}
