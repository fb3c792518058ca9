// Package admin defines the four record screens of the console (operações,
// produtos, tags, usuários) on top of the generic crud.Controller.
package admin

import (
	"context"
	"strings"

	"gestao-cli/internal/crud"
	"gestao-cli/internal/gateway"
)

// Lister is the read-only part of a gateway, used for reference collections.
type Lister[E any] interface {
	List(ctx context.Context) ([]E, error)
}

type Admin struct {
	Operacoes *Operacoes
	Produtos  *Produtos
	Tags      *Tags
	Usuarios  *Usuarios
}

func New(res gateway.Resources, deps crud.Deps) *Admin {
	return &Admin{
		Operacoes: NewOperacoes(res.Operacoes, deps),
		Produtos: NewProdutos(ProdutosSources{
			Produtos:   res.Produtos,
			Categorias: res.Categorias,
			Usuarios:   res.Usuarios,
			Tags:       res.Tags,
		}, deps),
		Tags:     NewTags(res.Tags, deps),
		Usuarios: NewUsuarios(res.Usuarios, deps),
	}
}

// idOf treats a missing or zero id as "not persisted".
func idOf(id *int64) (int64, bool) {
	if id == nil || *id == 0 {
		return 0, false
	}
	return *id, true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
