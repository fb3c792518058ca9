package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gestao-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

// Tabular is a list of records with a fixed set of columns.
type Tabular interface {
	Header() []string
	Rows() [][]string
	Records() any
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "240"})
)

func WriteTable(w io.Writer, t Tabular) error {
	rows := t.Rows()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "Nenhum registro encontrado.")
		return err
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(t.Header()...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// Money renders v with exactly two decimals.
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func id(p *int64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatInt(*p, 10)
}

func refName(r *model.Ref) string {
	if r == nil {
		return "-"
	}
	if r.Nome == "" {
		return "#" + strconv.FormatInt(r.ID, 10)
	}
	return r.Nome
}

type Operacoes []model.Operacao

func (Operacoes) Header() []string { return []string{"ID", "Tipo", "Valor", "Data", "Descrição"} }
func (o Operacoes) Records() any   { return []model.Operacao(o) }
func (o Operacoes) Rows() [][]string {
	rows := make([][]string, 0, len(o))
	for _, it := range o {
		rows = append(rows, []string{id(it.ID), string(it.Tipo), Money(it.Valor), it.Data, it.Descricao})
	}
	return rows
}

type Produtos []model.Produto

func (Produtos) Header() []string {
	return []string{"ID", "Nome", "Qtd", "Preço", "Categoria", "Usuário", "Tags"}
}
func (p Produtos) Records() any { return []model.Produto(p) }
func (p Produtos) Rows() [][]string {
	rows := make([][]string, 0, len(p))
	for _, it := range p {
		tags := make([]string, 0, len(it.Tags))
		for _, t := range it.Tags {
			tags = append(tags, t.Nome)
		}
		rows = append(rows, []string{
			id(it.ID), it.Nome, strconv.Itoa(it.Quantidade), Money(it.Preco),
			refName(it.Categoria), refName(it.Usuario), strings.Join(tags, ", "),
		})
	}
	return rows
}

type Tags []model.Tag

func (Tags) Header() []string { return []string{"ID", "Nome"} }
func (t Tags) Records() any   { return []model.Tag(t) }
func (t Tags) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, it := range t {
		rows = append(rows, []string{id(it.ID), it.Nome})
	}
	return rows
}

type Usuarios []model.Usuario

func (Usuarios) Header() []string { return []string{"ID", "Nome", "E-mail", "Tipo"} }
func (u Usuarios) Records() any   { return []model.Usuario(u) }
func (u Usuarios) Rows() [][]string {
	rows := make([][]string, 0, len(u))
	for _, it := range u {
		rows = append(rows, []string{id(it.ID), it.Nome, it.Email, string(it.TipoUsuario)})
	}
	return rows
}

type Categorias []model.Categoria

func (Categorias) Header() []string { return []string{"ID", "Nome", "Descrição"} }
func (c Categorias) Records() any   { return []model.Categoria(c) }
func (c Categorias) Rows() [][]string {
	rows := make([][]string, 0, len(c))
	for _, it := range c {
		rows = append(rows, []string{id(it.ID), it.Nome, it.Descricao})
	}
	return rows
}
