package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"gestao-cli/internal/admin"
	"gestao-cli/internal/format"
	"gestao-cli/internal/model"
)

type kv struct {
	key   string
	value string
}

func detailDoc(heading string, rows ...kv) string {
	var b strings.Builder
	b.WriteString("# " + heading + "\n\n")
	for _, r := range rows {
		v := r.value
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(&b, "- **%s:** %s\n", r.key, v)
	}
	return b.String()
}

func idText(id *int64) string {
	if id == nil {
		return "novo"
	}
	return "#" + strconv.FormatInt(*id, 10)
}

func refText(r *model.Ref) string {
	if r == nil {
		return ""
	}
	if r.Nome == "" {
		return "#" + strconv.FormatInt(r.ID, 10)
	}
	return r.Nome
}

func amountText(v *float64) string {
	if v == nil {
		return ""
	}
	return format.Money(*v)
}

func newOperacoesTab(ctrl *admin.Operacoes) *entityTab[model.Operacao, admin.OperacaoFiltro] {
	tipos := []option{}
	for _, t := range model.TiposOperacao() {
		tipos = append(tipos, option{label: string(t), value: string(t)})
	}
	tiposFiltro := append([]option{{label: "Todos", value: ""}}, tipos...)

	return &entityTab[model.Operacao, admin.OperacaoFiltro]{
		name:      "Operações",
		newTitle:  "Nova operação",
		editTitle: "Editar operação",
		ctrl:      ctrl,
		row: func(o model.Operacao) string {
			return fmt.Sprintf("%s  %-7s %10s  %s", o.Data, o.Tipo, format.Money(o.Valor), o.Descricao)
		},
		markdown: func(o model.Operacao) string {
			return detailDoc("Operação "+idText(o.ID),
				kv{"Tipo", string(o.Tipo)},
				kv{"Valor", format.Money(o.Valor)},
				kv{"Data", o.Data},
				kv{"Descrição", o.Descricao},
			)
		},
		fields: func(o model.Operacao) []formField {
			return []formField{
				choiceField("tipo", "Tipo", tipos, string(o.Tipo)),
				textField("valor", "Valor", format.Money(o.Valor)),
				textField("data", "Data (AAAA-MM-DD)", o.Data),
				textField("descricao", "Descrição", o.Descricao),
			}
		},
		apply: func(v formValues) (func(*model.Operacao), error) {
			valor, err := parseAmount("Valor", v["valor"])
			if err != nil {
				return nil, err
			}
			data := v["data"]
			if data != "" {
				if _, err := time.Parse(model.DateLayout, data); err != nil {
					return nil, fmt.Errorf("Data inválida: %q (use AAAA-MM-DD)", data)
				}
			}
			return func(o *model.Operacao) {
				o.Tipo = model.TipoOperacao(v["tipo"])
				o.Valor = valor
				o.Data = data
				o.Descricao = v["descricao"]
			}, nil
		},
		filterFields: func(f admin.OperacaoFiltro) []formField {
			return []formField{
				textField("descricao", "Descrição contém", f.Descricao),
				choiceField("tipo", "Tipo", tiposFiltro, string(f.Tipo)),
				textField("valor", "Valor máximo", amountText(f.ValorMaximo)),
			}
		},
		applyFilter: func(v formValues) (func(*admin.OperacaoFiltro), error) {
			limit, err := parseDecimal("Valor máximo", v["valor"])
			if err != nil {
				return nil, err
			}
			return func(f *admin.OperacaoFiltro) {
				f.Descricao = v["descricao"]
				f.Tipo = model.TipoOperacao(v["tipo"])
				f.ValorMaximo = limit
			}, nil
		},
	}
}

func newTagsTab(ctrl *admin.Tags) *entityTab[model.Tag, admin.TagFiltro] {
	return &entityTab[model.Tag, admin.TagFiltro]{
		name:      "Tags",
		newTitle:  "Nova tag",
		editTitle: "Editar tag",
		ctrl:      ctrl,
		row:       func(t model.Tag) string { return t.Nome },
		markdown: func(t model.Tag) string {
			return detailDoc("Tag "+idText(t.ID), kv{"Nome", t.Nome})
		},
		fields: func(t model.Tag) []formField {
			return []formField{textField("nome", "Nome", t.Nome)}
		},
		apply: func(v formValues) (func(*model.Tag), error) {
			return func(t *model.Tag) { t.Nome = v["nome"] }, nil
		},
		filterFields: func(f admin.TagFiltro) []formField {
			return []formField{textField("nome", "Nome contém", f.Nome)}
		},
		applyFilter: func(v formValues) (func(*admin.TagFiltro), error) {
			return func(f *admin.TagFiltro) { f.Nome = v["nome"] }, nil
		},
	}
}

func newUsuariosTab(ctrl *admin.Usuarios) *entityTab[model.Usuario, admin.UsuarioFiltro] {
	tipos := []option{}
	for _, t := range model.TiposUsuario() {
		tipos = append(tipos, option{label: string(t), value: string(t)})
	}
	tiposFiltro := append([]option{{label: "Todos", value: ""}}, tipos...)

	return &entityTab[model.Usuario, admin.UsuarioFiltro]{
		name:      "Usuários",
		newTitle:  "Novo usuário",
		editTitle: "Editar usuário",
		ctrl:      ctrl,
		row: func(u model.Usuario) string {
			return fmt.Sprintf("%s <%s>", u.Nome, u.Email)
		},
		markdown: func(u model.Usuario) string {
			return detailDoc("Usuário "+idText(u.ID),
				kv{"Nome", u.Nome},
				kv{"E-mail", u.Email},
				kv{"Tipo", string(u.TipoUsuario)},
			)
		},
		fields: func(u model.Usuario) []formField {
			return []formField{
				textField("nome", "Nome", u.Nome),
				textField("email", "E-mail", u.Email),
				secretField("senha", "Senha (vazio mantém a atual)"),
				choiceField("tipo", "Tipo", tipos, string(u.TipoUsuario)),
			}
		},
		apply: func(v formValues) (func(*model.Usuario), error) {
			return func(u *model.Usuario) {
				u.Nome = v["nome"]
				u.Email = v["email"]
				if v["senha"] != "" {
					u.Senha = v["senha"]
				}
				u.TipoUsuario = model.TipoUsuario(v["tipo"])
			}, nil
		},
		filterFields: func(f admin.UsuarioFiltro) []formField {
			return []formField{
				textField("nome", "Nome contém", f.Nome),
				textField("email", "E-mail contém", f.Email),
				choiceField("tipo", "Tipo", tiposFiltro, string(f.TipoUsuario)),
			}
		},
		applyFilter: func(v formValues) (func(*admin.UsuarioFiltro), error) {
			return func(f *admin.UsuarioFiltro) {
				f.Nome = v["nome"]
				f.Email = v["email"]
				f.TipoUsuario = model.TipoUsuario(v["tipo"])
			}, nil
		},
	}
}

func newProdutosTab(p *admin.Produtos) *entityTab[model.Produto, admin.ProdutoFiltro] {
	return &entityTab[model.Produto, admin.ProdutoFiltro]{
		name:      "Produtos",
		newTitle:  "Novo produto",
		editTitle: "Editar produto",
		ctrl:      p.Controller,
		loadFn:    p.Init,
		row: func(pr model.Produto) string {
			return fmt.Sprintf("%s  %s", pr.Nome, format.Money(pr.Preco))
		},
		markdown: produtoDetail,
		fields: func(pr model.Produto) []formField {
			return produtoFields(p, pr)
		},
		apply: func(v formValues) (func(*model.Produto), error) {
			qtd, err := parseCount("Quantidade", v["quantidade"])
			if err != nil {
				return nil, err
			}
			preco, err := parseAmount("Preço", v["preco"])
			if err != nil {
				return nil, err
			}
			cats, users := p.Categorias(), p.Usuarios()
			return func(pr *model.Produto) {
				pr.Nome = v["nome"]
				pr.Descricao = v["descricao"]
				pr.Quantidade = qtd
				pr.Preco = preco
				pr.Categoria = pickRef(pr.Categoria, v["categoria"], func(id int64) string {
					for _, c := range cats {
						if c.ID != nil && *c.ID == id {
							return c.Nome
						}
					}
					return ""
				})
				pr.Usuario = pickRef(pr.Usuario, v["usuario"], func(id int64) string {
					for _, u := range users {
						if u.ID != nil && *u.ID == id {
							return u.Nome
						}
					}
					return ""
				})
			}, nil
		},
		filterFields: func(f admin.ProdutoFiltro) []formField {
			return produtoFilterFields(p, f)
		},
		applyFilter: func(v formValues) (func(*admin.ProdutoFiltro), error) {
			limit, err := parseDecimal("Preço máximo", v["preco"])
			if err != nil {
				return nil, err
			}
			return func(f *admin.ProdutoFiltro) {
				f.Nome = v["nome"]
				f.CategoriaID = nil
				if id, ok := parseRefID(v["categoria"]); ok {
					f.CategoriaID = model.ID(id)
				}
				f.PrecoMaximo = limit
			}, nil
		},
	}
}

func produtoDetail(pr model.Produto) string {
	tags := make([]string, 0, len(pr.Tags))
	for _, t := range pr.Tags {
		tags = append(tags, t.Nome)
	}
	md := detailDoc("Produto "+idText(pr.ID),
		kv{"Nome", pr.Nome},
		kv{"Quantidade", strconv.Itoa(pr.Quantidade)},
		kv{"Preço", format.Money(pr.Preco)},
		kv{"Categoria", refText(pr.Categoria)},
		kv{"Usuário", refText(pr.Usuario)},
		kv{"Tags", strings.Join(tags, ", ")},
	)
	if pr.Descricao != "" {
		md += "\n" + pr.Descricao + "\n"
	}
	return md
}

// pickRef resolves a picker value to a reference. The current reference is
// kept as is when the picker still points at it.
func pickRef(cur *model.Ref, value string, name func(int64) string) *model.Ref {
	id, ok := parseRefID(value)
	if !ok {
		return nil
	}
	if cur != nil && cur.ID == id {
		return cur
	}
	return &model.Ref{ID: id, Nome: name(id)}
}

// refOptions lists the picker choices, keeping the current reference even
// when the reference collection failed to load.
func refOptions(cur *model.Ref, ids []*int64, names []string) ([]option, string) {
	opts := []option{{label: "—", value: ""}}
	curValue := ""
	found := false
	for i, id := range ids {
		if id == nil {
			continue
		}
		v := strconv.FormatInt(*id, 10)
		opts = append(opts, option{label: names[i], value: v})
		if cur != nil && cur.ID == *id {
			found = true
		}
	}
	if cur != nil {
		curValue = strconv.FormatInt(cur.ID, 10)
		if !found {
			opts = append(opts, option{label: refText(cur), value: curValue})
		}
	}
	return opts, curValue
}

func categoriaOptions(p *admin.Produtos, cur *model.Ref) ([]option, string) {
	cats := p.Categorias()
	ids := make([]*int64, len(cats))
	names := make([]string, len(cats))
	for i, c := range cats {
		ids[i], names[i] = c.ID, c.Nome
	}
	return refOptions(cur, ids, names)
}

func usuarioOptions(p *admin.Produtos, cur *model.Ref) ([]option, string) {
	users := p.Usuarios()
	ids := make([]*int64, len(users))
	names := make([]string, len(users))
	for i, u := range users {
		ids[i], names[i] = u.ID, u.Nome
	}
	return refOptions(cur, ids, names)
}

func tagOptions(tags []model.Tag) []option {
	opts := make([]option, 0, len(tags))
	for _, t := range tags {
		opts = append(opts, option{label: t.Nome})
	}
	return opts
}

func produtoFields(p *admin.Produtos, pr model.Produto) []formField {
	catOpts, catValue := categoriaOptions(p, pr.Categoria)
	userOpts, userValue := usuarioOptions(p, pr.Usuario)
	tags := p.Tags()

	return []formField{
		textField("nome", "Nome", pr.Nome),
		textField("descricao", "Descrição", pr.Descricao),
		textField("quantidade", "Quantidade", strconv.Itoa(pr.Quantidade)),
		textField("preco", "Preço", format.Money(pr.Preco)),
		choiceField("categoria", "Categoria", catOpts, catValue),
		choiceField("usuario", "Usuário", userOpts, userValue),
		checklistField("tags", "Tags", tagOptions(tags),
			func(i int) bool { return p.IsTagSelected(tags[i]) },
			func(i int) { p.ToggleTag(tags[i], !p.IsTagSelected(tags[i])) },
		),
	}
}

func produtoFilterFields(p *admin.Produtos, f admin.ProdutoFiltro) []formField {
	var cur *model.Ref
	if f.CategoriaID != nil {
		cur = &model.Ref{ID: *f.CategoriaID}
	}
	catOpts, catValue := categoriaOptions(p, cur)
	catOpts[0].label = "Todas"
	tags := p.Tags()

	return []formField{
		textField("nome", "Nome contém", f.Nome),
		choiceField("categoria", "Categoria", catOpts, catValue),
		textField("preco", "Preço máximo", amountText(f.PrecoMaximo)),
		checklistField("tags", "Com todas as tags", tagOptions(tags),
			func(i int) bool {
				id := tags[i].ID
				return id != nil && slices.Contains(p.Criteria().TagIDs, *id)
			},
			func(i int) { p.ToggleTagFilter(tags[i]) },
		),
	}
}
