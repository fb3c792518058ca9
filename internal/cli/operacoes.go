package cli

import (
	"context"
	"strings"
	"time"

	"gestao-cli/internal/admin"
	"gestao-cli/internal/crud"
	"gestao-cli/internal/format"
	"gestao-cli/internal/model"

	"github.com/spf13/pflag"
)

func operacoesSpec() entitySpec[model.Operacao, admin.OperacaoFiltro] {
	return entitySpec[model.Operacao, admin.OperacaoFiltro]{
		name:     "operacoes",
		singular: "operação",
		short:    "Operações financeiras (entradas e saídas)",
		example: `
  gestao operacoes list --tipo SAIDA --valor-max 100
  gestao operacoes create --tipo ENTRADA --valor 250 --descricao "Venda balcão"
  gestao operacoes update 4 --data 2025-03-01
  gestao operacoes delete 4 --yes`,
		ctrl:  func(a *admin.Admin) *crud.Controller[model.Operacao, admin.OperacaoFiltro] { return a.Operacoes },
		table: func(xs []model.Operacao) format.Tabular { return format.Operacoes(xs) },
		filters: func(fs *pflag.FlagSet) func(*admin.OperacaoFiltro) error {
			var descricao, tipo string
			var valorMax float64
			fs.StringVar(&descricao, "descricao", "", "Descrição contém (sem diferenciar maiúsculas)")
			fs.StringVar(&tipo, "tipo", "", "Tipo exato (ENTRADA|SAIDA)")
			fs.Float64Var(&valorMax, "valor-max", 0, "Valor máximo (inclusive)")
			return func(f *admin.OperacaoFiltro) error {
				f.Descricao = descricao
				if fs.Changed("tipo") {
					t, err := parseTipoOperacao(tipo)
					if err != nil {
						return err
					}
					f.Tipo = t
				}
				if fs.Changed("valor-max") {
					v := valorMax
					f.ValorMaximo = &v
				}
				return nil
			}
		},
		fields: func(fs *pflag.FlagSet) func(context.Context, *admin.Admin) error {
			var tipo, data, descricao string
			var valor float64
			fs.StringVar(&tipo, "tipo", "", "ENTRADA ou SAIDA")
			fs.Float64Var(&valor, "valor", 0, "Valor")
			fs.StringVar(&data, "data", "", "Data (AAAA-MM-DD)")
			fs.StringVar(&descricao, "descricao", "", "Descrição")
			return func(_ context.Context, a *admin.Admin) error {
				return mutate(a.Operacoes, func(o *model.Operacao) error {
					if fs.Changed("tipo") {
						t, err := parseTipoOperacao(tipo)
						if err != nil {
							return err
						}
						o.Tipo = t
					}
					if fs.Changed("valor") {
						o.Valor = valor
					}
					if fs.Changed("data") {
						data = strings.TrimSpace(data)
						if _, err := time.Parse(model.DateLayout, data); err != nil {
							return errInvalidFlag("data", data, "use AAAA-MM-DD")
						}
						o.Data = data
					}
					if fs.Changed("descricao") {
						o.Descricao = descricao
					}
					return nil
				})
			}
		},
	}
}

func parseTipoOperacao(s string) (model.TipoOperacao, error) {
	t, ok := model.ParseTipoOperacao(s)
	if !ok {
		return "", errInvalidFlag("tipo", s, "ENTRADA ou SAIDA")
	}
	return t, nil
}
