package gateway

import (
	"context"
	"net/http"
	"strconv"

	"gestao-cli/internal/model"

	"github.com/go-resty/resty/v2"
)

// Resource is the REST collection of one entity type: GET/POST on the
// collection path, PUT/DELETE on <path>/{id}.
type Resource[E any] struct {
	c    *Client
	path string
}

func NewResource[E any](c *Client, path string) *Resource[E] {
	return &Resource[E]{c: c, path: path}
}

func (r *Resource[E]) Path() string { return r.path }

func (r *Resource[E]) itemRoute() string { return r.path + "/{id}" }

func (r *Resource[E]) List(ctx context.Context) ([]E, error) {
	var out []E
	_, err := r.c.do(ctx, http.MethodGet, r.path, func(req *resty.Request) *resty.Request {
		return req.SetResult(&out)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []E{}
	}
	return out, nil
}

func (r *Resource[E]) Create(ctx context.Context, e E) (E, error) {
	var out E
	_, err := r.c.do(ctx, http.MethodPost, r.path, func(req *resty.Request) *resty.Request {
		return req.SetBody(e).SetResult(&out)
	})
	return out, err
}

func (r *Resource[E]) Update(ctx context.Context, id int64, e E) (E, error) {
	var out E
	_, err := r.c.do(ctx, http.MethodPut, r.itemRoute(), func(req *resty.Request) *resty.Request {
		return req.SetPathParam("id", strconv.FormatInt(id, 10)).SetBody(e).SetResult(&out)
	})
	return out, err
}

func (r *Resource[E]) Delete(ctx context.Context, id int64) error {
	_, err := r.c.do(ctx, http.MethodDelete, r.itemRoute(), func(req *resty.Request) *resty.Request {
		return req.SetPathParam("id", strconv.FormatInt(id, 10))
	})
	return err
}

// Resources groups the collections exposed by the admin API.
type Resources struct {
	Operacoes  *Resource[model.Operacao]
	Produtos   *Resource[model.Produto]
	Tags       *Resource[model.Tag]
	Usuarios   *Resource[model.Usuario]
	Categorias *Resource[model.Categoria]
}

func (c *Client) Resources() Resources {
	return Resources{
		Operacoes:  NewResource[model.Operacao](c, "/operacoes"),
		Produtos:   NewResource[model.Produto](c, "/produtos"),
		Tags:       NewResource[model.Tag](c, "/tags"),
		Usuarios:   NewResource[model.Usuario](c, "/usuarios"),
		Categorias: NewResource[model.Categoria](c, "/categorias"),
	}
}
