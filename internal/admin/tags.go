package admin

import (
	"strings"

	"gestao-cli/internal/crud"
	"gestao-cli/internal/model"
)

type TagFiltro struct {
	Nome string
}

type Tags = crud.Controller[model.Tag, TagFiltro]

func TagFeature() crud.Feature[model.Tag, TagFiltro] {
	return crud.Feature[model.Tag, TagFiltro]{
		Name:  "tags",
		Blank: func() model.Tag { return model.Tag{} },
		Clone: model.Tag.Clone,
		ID:    func(t model.Tag) (int64, bool) { return idOf(t.ID) },
		Label: func(t model.Tag) string { return `tag "` + t.Nome + `"` },
		Match: func(t model.Tag, f TagFiltro) bool {
			return f.Nome == "" || containsFold(t.Nome, f.Nome)
		},
		Active: func(f TagFiltro) bool { return f.Nome != "" },
		Validate: func(t model.Tag) error {
			if strings.TrimSpace(t.Nome) == "" {
				return crud.Invalid("O nome da tag é obrigatório.")
			}
			return nil
		},
		Messages: crud.Messages{
			LoadFailed:   "Não foi possível carregar as tags",
			Saved:        "Tag salva com sucesso!",
			SaveFailed:   "Não foi possível salvar a tag",
			DeletedTitle: "Excluída!",
			Deleted:      "Tag removida com sucesso.",
			DeleteFailed: "Não foi possível excluir a tag",
			MissingID:    "Tag sem ID válido.",
		},
	}
}

func NewTags(gw crud.Gateway[model.Tag], deps crud.Deps) *Tags {
	return crud.New(TagFeature(), gw, deps)
}
