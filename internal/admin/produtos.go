package admin

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gestao-cli/internal/crud"
	"gestao-cli/internal/model"

	"github.com/rs/zerolog"
)

type ProdutoFiltro struct {
	Nome        string
	CategoriaID *int64
	PrecoMaximo *float64
	TagIDs      []int64
}

func ProdutoFeature() crud.Feature[model.Produto, ProdutoFiltro] {
	return crud.Feature[model.Produto, ProdutoFiltro]{
		Name:  "produtos",
		Blank: func() model.Produto { return model.Produto{Tags: []model.TagRef{}} },
		Clone: model.Produto.Clone,
		ID:    func(p model.Produto) (int64, bool) { return idOf(p.ID) },
		Label: func(p model.Produto) string { return `"` + p.Nome + `"` },
		Match: matchProduto,
		Active: func(f ProdutoFiltro) bool {
			return f.Nome != "" || f.CategoriaID != nil || f.PrecoMaximo != nil || len(f.TagIDs) > 0
		},
		CloneCriteria: func(f ProdutoFiltro) ProdutoFiltro {
			if f.CategoriaID != nil {
				f.CategoriaID = model.ID(*f.CategoriaID)
			}
			if f.PrecoMaximo != nil {
				v := *f.PrecoMaximo
				f.PrecoMaximo = &v
			}
			f.TagIDs = slices.Clone(f.TagIDs)
			return f
		},
		Validate: func(p model.Produto) error {
			if p.Nome == "" || p.Categoria == nil || p.Usuario == nil {
				return crud.Invalid("Nome, categoria e usuário são obrigatórios.")
			}
			return nil
		},
		Prepare: (*model.Produto).RoundPreco,
		Messages: crud.Messages{
			LoadFailed:   "Não foi possível carregar os produtos",
			Saved:        "Produto salvo com sucesso!",
			SaveFailed:   "Não foi possível salvar o produto",
			Deleted:      "Produto removido com sucesso.",
			DeleteFailed: "Não foi possível excluir o produto",
			MissingID:    "Produto sem ID válido.",
		},
	}
}

func matchProduto(p model.Produto, f ProdutoFiltro) bool {
	if f.Nome != "" && !containsFold(p.Nome, f.Nome) {
		return false
	}
	if f.CategoriaID != nil && (p.Categoria == nil || p.Categoria.ID != *f.CategoriaID) {
		return false
	}
	if f.PrecoMaximo != nil && p.Preco > *f.PrecoMaximo {
		return false
	}
	for _, id := range f.TagIDs {
		if !p.HasTag(id) {
			return false
		}
	}
	return true
}

type ProdutosSources struct {
	Produtos   crud.Gateway[model.Produto]
	Categorias Lister[model.Categoria]
	Usuarios   Lister[model.Usuario]
	Tags       Lister[model.Tag]
}

// Produtos is the products screen: the generic controller plus the reference
// collections that feed the category, user and tag pickers.
type Produtos struct {
	*crud.Controller[model.Produto, ProdutoFiltro]

	src      ProdutosSources
	notifier crud.Notifier
	log      zerolog.Logger

	mu         sync.Mutex
	categorias []model.Categoria
	usuarios   []model.Usuario
	tags       []model.Tag
}

func NewProdutos(src ProdutosSources, deps crud.Deps) *Produtos {
	p := &Produtos{
		Controller: crud.New(ProdutoFeature(), src.Produtos, deps),
		src:        src,
		notifier:   deps.Notifier,
		log:        zerolog.Nop(),
		categorias: []model.Categoria{},
		usuarios:   []model.Usuario{},
		tags:       []model.Tag{},
	}
	if p.notifier == nil {
		p.notifier = crud.NotifierFunc(func(context.Context, crud.Notice) {})
	}
	if deps.Logger != nil {
		p.log = deps.Logger.With().Str("feature", "produtos").Logger()
	}
	return p
}

// Init loads the products and the three reference collections. Each fetch
// runs on its own and reports its own failure; the returned error joins
// whatever failed.
func (p *Produtos) Init(ctx context.Context) error {
	loads := []func(context.Context) error{
		p.Load,
		p.LoadCategorias,
		p.LoadUsuarios,
		p.LoadTags,
	}
	errs := make([]error, len(loads))
	var wg sync.WaitGroup
	for i, load := range loads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = load(ctx)
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (p *Produtos) LoadCategorias(ctx context.Context) error {
	return loadRefs(ctx, p, "categorias", p.src.Categorias, "Falha ao carregar categorias", func(v []model.Categoria) {
		p.categorias = v
	})
}

func (p *Produtos) LoadUsuarios(ctx context.Context) error {
	return loadRefs(ctx, p, "usuarios", p.src.Usuarios, "Falha ao carregar usuários", func(v []model.Usuario) {
		p.usuarios = v
	})
}

func (p *Produtos) LoadTags(ctx context.Context) error {
	return loadRefs(ctx, p, "tags", p.src.Tags, "Falha ao carregar tags", func(v []model.Tag) {
		p.tags = v
	})
}

func loadRefs[E any](ctx context.Context, p *Produtos, name string, src Lister[E], failed string, store func([]E)) error {
	if src == nil {
		return nil
	}
	list, err := src.List(ctx)
	if err != nil {
		p.log.Error().Err(err).Str("collection", name).Msg("reference load failed")
		p.notifier.Notify(ctx, crud.Notice{Title: "Erro", Text: failed, Severity: crud.SeverityError})
		return fmt.Errorf("load %s: %w", name, err)
	}
	if list == nil {
		list = []E{}
	}
	p.mu.Lock()
	store(list)
	p.mu.Unlock()
	return nil
}

func (p *Produtos) Categorias() []model.Categoria {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.categorias)
}

func (p *Produtos) Usuarios() []model.Usuario {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.usuarios)
}

func (p *Produtos) Tags() []model.Tag {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.tags)
}

// IsTagSelected reports whether the product being edited carries tag.
func (p *Produtos) IsTagSelected(tag model.Tag) bool {
	id, ok := idOf(tag.ID)
	if !ok {
		return false
	}
	sel, editing := p.Selected()
	return editing && sel.HasTag(id)
}

// ToggleTag adds or removes tag on the product being edited. Tags that were
// never persisted cannot be attached and are ignored.
func (p *Produtos) ToggleTag(tag model.Tag, checked bool) {
	id, ok := idOf(tag.ID)
	if !ok {
		p.log.Warn().Str("tag", tag.Nome).Msg("tag sem id ignorada")
		return
	}
	p.Edit(func(sel *model.Produto) {
		if checked {
			if !sel.HasTag(id) {
				sel.Tags = append(sel.Tags, model.TagRef{ID: id, Nome: tag.Nome})
			}
			return
		}
		sel.Tags = slices.DeleteFunc(sel.Tags, func(t model.TagRef) bool { return t.ID == id })
	})
}

// ToggleTagFilter flips tag in the filter criteria and reapplies the filters.
func (p *Produtos) ToggleTagFilter(tag model.Tag) {
	id, ok := idOf(tag.ID)
	if !ok {
		return
	}
	p.UpdateCriteria(func(f *ProdutoFiltro) {
		if i := slices.Index(f.TagIDs, id); i >= 0 {
			f.TagIDs = slices.Delete(f.TagIDs, i, i+1)
			return
		}
		f.TagIDs = append(f.TagIDs, id)
	})
	p.ApplyFilters()
}
