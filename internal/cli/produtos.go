package cli

import (
	"context"
	"fmt"

	"gestao-cli/internal/admin"
	"gestao-cli/internal/crud"
	"gestao-cli/internal/format"
	"gestao-cli/internal/model"

	"github.com/spf13/pflag"
)

func produtosSpec() entitySpec[model.Produto, admin.ProdutoFiltro] {
	return entitySpec[model.Produto, admin.ProdutoFiltro]{
		name:     "produtos",
		singular: "produto",
		short:    "Produtos (com categoria, usuário e tags)",
		example: `
  gestao produtos list --preco-max 10 --tag 7 --tag 9
  gestao produtos create --nome Caneta --preco 5.5 --categoria 1 --usuario 2 --tag 7
  gestao produtos update 3 --preco 4.99 --tag 7`,
		ctrl: func(a *admin.Admin) *crud.Controller[model.Produto, admin.ProdutoFiltro] {
			return a.Produtos.Controller
		},
		table: func(xs []model.Produto) format.Tabular { return format.Produtos(xs) },
		filters: func(fs *pflag.FlagSet) func(*admin.ProdutoFiltro) error {
			var nome string
			var categoria int64
			var precoMax float64
			var tags []int64
			fs.StringVar(&nome, "nome", "", "Nome contém")
			fs.Int64Var(&categoria, "categoria", 0, "ID da categoria")
			fs.Float64Var(&precoMax, "preco-max", 0, "Preço máximo (inclusive)")
			fs.Int64SliceVar(&tags, "tag", nil, "ID de tag exigida (pode repetir)")
			return func(f *admin.ProdutoFiltro) error {
				f.Nome = nome
				if fs.Changed("categoria") {
					f.CategoriaID = model.ID(categoria)
				}
				if fs.Changed("preco-max") {
					v := precoMax
					f.PrecoMaximo = &v
				}
				f.TagIDs = append([]int64(nil), tags...)
				return nil
			}
		},
		fields: produtoFields,
	}
}

func produtoFields(fs *pflag.FlagSet) func(context.Context, *admin.Admin) error {
	var nome, descricao string
	var quantidade int
	var preco float64
	var categoria, usuario int64
	var tags []int64
	fs.StringVar(&nome, "nome", "", "Nome")
	fs.StringVar(&descricao, "descricao", "", "Descrição")
	fs.IntVar(&quantidade, "quantidade", 0, "Quantidade em estoque")
	fs.Float64Var(&preco, "preco", 0, "Preço (arredondado para 2 casas)")
	fs.Int64Var(&categoria, "categoria", 0, "ID da categoria")
	fs.Int64Var(&usuario, "usuario", 0, "ID do usuário responsável")
	fs.Int64SliceVar(&tags, "tag", nil, "ID de tag (pode repetir; substitui as tags atuais)")

	return func(ctx context.Context, a *admin.Admin) error {
		p := a.Produtos

		var catRef, userRef *model.Ref
		if fs.Changed("categoria") {
			if err := p.LoadCategorias(ctx); err != nil {
				return reported(err)
			}
			ref, err := resolveCategoria(p.Categorias(), categoria)
			if err != nil {
				return err
			}
			catRef = ref
		}
		if fs.Changed("usuario") {
			if err := p.LoadUsuarios(ctx); err != nil {
				return reported(err)
			}
			ref, err := resolveUsuario(p.Usuarios(), usuario)
			if err != nil {
				return err
			}
			userRef = ref
		}
		var chosen []model.Tag
		if fs.Changed("tag") {
			if err := p.LoadTags(ctx); err != nil {
				return reported(err)
			}
			ts, err := resolveTags(p.Tags(), tags)
			if err != nil {
				return err
			}
			chosen = ts
		}

		err := mutate(p.Controller, func(sel *model.Produto) error {
			if fs.Changed("nome") {
				sel.Nome = nome
			}
			if fs.Changed("descricao") {
				sel.Descricao = descricao
			}
			if fs.Changed("quantidade") {
				sel.Quantidade = quantidade
			}
			if fs.Changed("preco") {
				sel.Preco = preco
			}
			if catRef != nil {
				sel.Categoria = catRef
			}
			if userRef != nil {
				sel.Usuario = userRef
			}
			return nil
		})
		if err != nil {
			return err
		}

		if fs.Changed("tag") {
			sel, _ := p.Selected()
			for _, t := range sel.Tags {
				p.ToggleTag(model.Tag{ID: model.ID(t.ID), Nome: t.Nome}, false)
			}
			for _, t := range chosen {
				p.ToggleTag(t, true)
			}
		}
		return nil
	}
}

func resolveCategoria(all []model.Categoria, id int64) (*model.Ref, error) {
	for _, c := range all {
		if c.ID != nil && *c.ID == id {
			return &model.Ref{ID: id, Nome: c.Nome}, nil
		}
	}
	return nil, fmt.Errorf("categoria %d não encontrada", id)
}

func resolveUsuario(all []model.Usuario, id int64) (*model.Ref, error) {
	for _, u := range all {
		if u.ID != nil && *u.ID == id {
			return &model.Ref{ID: id, Nome: u.Nome}, nil
		}
	}
	return nil, errNotFound("usuário", id)
}

func resolveTags(all []model.Tag, ids []int64) ([]model.Tag, error) {
	out := make([]model.Tag, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, t := range all {
			if t.ID != nil && *t.ID == id {
				out = append(out, t)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("tag %d não encontrada", id)
		}
	}
	return out, nil
}
