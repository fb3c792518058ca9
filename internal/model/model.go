package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type TipoOperacao string

const (
	TipoEntrada TipoOperacao = "ENTRADA"
	TipoSaida   TipoOperacao = "SAIDA"
)

func TiposOperacao() []TipoOperacao {
	return []TipoOperacao{TipoEntrada, TipoSaida}
}

type TipoUsuario string

const (
	TipoAdmin       TipoUsuario = "ADMIN"
	TipoGerente     TipoUsuario = "GERENTE"
	TipoFuncionario TipoUsuario = "FUNCIONARIO"
)

func TiposUsuario() []TipoUsuario {
	return []TipoUsuario{TipoAdmin, TipoGerente, TipoFuncionario}
}

// DateLayout is the wire format of Operacao.Data.
const DateLayout = "2006-01-02"

type Operacao struct {
	ID        *int64       `json:"id,omitempty"`
	Tipo      TipoOperacao `json:"tipo"`
	Valor     float64      `json:"valor"`
	Data      string       `json:"data"`
	Descricao string       `json:"descricao"`
}

// Ref points at another persisted record (categoria, usuario).
type Ref struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome,omitempty"`
}

type TagRef struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

type Produto struct {
	ID         *int64   `json:"id,omitempty"`
	Nome       string   `json:"nome"`
	Descricao  string   `json:"descricao"`
	Quantidade int      `json:"quantidade"`
	Preco      float64  `json:"preco"`
	Categoria  *Ref     `json:"categoria"`
	Usuario    *Ref     `json:"usuario"`
	Tags       []TagRef `json:"tags"`
}

type Tag struct {
	ID   *int64 `json:"id,omitempty"`
	Nome string `json:"nome"`
}

type Usuario struct {
	ID          *int64      `json:"id,omitempty"`
	Nome        string      `json:"nome"`
	Email       string      `json:"email"`
	Senha       string      `json:"senha,omitempty"`
	TipoUsuario TipoUsuario `json:"tipoUsuario"`
}

type Categoria struct {
	ID        *int64 `json:"id,omitempty"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao,omitempty"`
}

// ID returns a pointer suitable for the optional id fields.
func ID(v int64) *int64 { return &v }

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneRef(r *Ref) *Ref {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func (o Operacao) Clone() Operacao {
	o.ID = cloneID(o.ID)
	return o
}

// Clone copies the product and every nested reference so edits to the copy
// never reach the original.
func (p Produto) Clone() Produto {
	p.ID = cloneID(p.ID)
	p.Categoria = cloneRef(p.Categoria)
	p.Usuario = cloneRef(p.Usuario)
	tags := make([]TagRef, len(p.Tags))
	copy(tags, p.Tags)
	p.Tags = tags
	return p
}

func (t Tag) Clone() Tag {
	t.ID = cloneID(t.ID)
	return t
}

func (u Usuario) Clone() Usuario {
	u.ID = cloneID(u.ID)
	return u
}

func (c Categoria) Clone() Categoria {
	c.ID = cloneID(c.ID)
	return c
}

// RoundPreco rounds Preco to two decimal places (half away from zero).
func (p *Produto) RoundPreco() {
	p.Preco = decimal.NewFromFloat(p.Preco).Round(2).InexactFloat64()
}

// TagIDs lists the ids of the product's tags in order.
func (p Produto) TagIDs() []int64 {
	out := make([]int64, 0, len(p.Tags))
	for _, t := range p.Tags {
		out = append(out, t.ID)
	}
	return out
}

func (p Produto) HasTag(id int64) bool {
	for _, t := range p.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

func ParseTipoOperacao(s string) (TipoOperacao, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, t := range TiposOperacao() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

func ParseTipoUsuario(s string) (TipoUsuario, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, t := range TiposUsuario() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}
