package admin

import (
	"fmt"
	"time"

	"gestao-cli/internal/crud"
	"gestao-cli/internal/model"
)

type OperacaoFiltro struct {
	Descricao   string
	Tipo        model.TipoOperacao
	ValorMaximo *float64
}

type Operacoes = crud.Controller[model.Operacao, OperacaoFiltro]

// Today is the clock used for the date of new operations.
var Today = func() time.Time { return time.Now() }

func OperacaoFeature() crud.Feature[model.Operacao, OperacaoFiltro] {
	return crud.Feature[model.Operacao, OperacaoFiltro]{
		Name: "operacoes",
		Blank: func() model.Operacao {
			return model.Operacao{
				Tipo:  model.TipoEntrada,
				Valor: 0,
				Data:  Today().Format(model.DateLayout),
			}
		},
		Clone: model.Operacao.Clone,
		ID:    func(o model.Operacao) (int64, bool) { return idOf(o.ID) },
		Label: func(o model.Operacao) string {
			id, _ := idOf(o.ID)
			return fmt.Sprintf("operação #%d", id)
		},
		Match: func(o model.Operacao, f OperacaoFiltro) bool {
			if f.Descricao != "" && !containsFold(o.Descricao, f.Descricao) {
				return false
			}
			if f.Tipo != "" && o.Tipo != f.Tipo {
				return false
			}
			if f.ValorMaximo != nil && o.Valor > *f.ValorMaximo {
				return false
			}
			return true
		},
		Active: func(f OperacaoFiltro) bool {
			return f.Descricao != "" || f.Tipo != "" || f.ValorMaximo != nil
		},
		CloneCriteria: func(f OperacaoFiltro) OperacaoFiltro {
			if f.ValorMaximo != nil {
				v := *f.ValorMaximo
				f.ValorMaximo = &v
			}
			return f
		},
		Validate: func(o model.Operacao) error {
			if o.Tipo == "" || o.Data == "" {
				return crud.Invalid("Tipo e data são obrigatórios.")
			}
			return nil
		},
		Messages: crud.Messages{
			LoadFailed:   "Não foi possível carregar as operações",
			Saved:        "Operação salva com sucesso!",
			SaveFailed:   "Não foi possível salvar a operação",
			DeletedTitle: "Excluída!",
			Deleted:      "Operação removida com sucesso.",
			DeleteFailed: "Não foi possível excluir a operação",
			MissingID:    "Operação sem ID válido.",
		},
	}
}

func NewOperacoes(gw crud.Gateway[model.Operacao], deps crud.Deps) *Operacoes {
	return crud.New(OperacaoFeature(), gw, deps)
}
