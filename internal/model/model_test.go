package model

import "testing"

func TestProdutoClone_DoesNotShareNestedReferences(t *testing.T) {
	orig := Produto{
		ID:        ID(3),
		Nome:      "Caneta",
		Categoria: &Ref{ID: 1, Nome: "Papelaria"},
		Usuario:   &Ref{ID: 9, Nome: "Ana"},
		Tags:      []TagRef{{ID: 7, Nome: "Promo"}},
	}

	c := orig.Clone()
	*c.ID = 99
	c.Categoria.Nome = "Outra"
	c.Usuario.ID = 10
	c.Tags[0].Nome = "Alterada"
	c.Tags = append(c.Tags, TagRef{ID: 8, Nome: "Nova"})

	if *orig.ID != 3 {
		t.Fatalf("expected original id 3, got %d", *orig.ID)
	}
	if orig.Categoria.Nome != "Papelaria" {
		t.Fatalf("categoria leaked into original: %q", orig.Categoria.Nome)
	}
	if orig.Usuario.ID != 9 {
		t.Fatalf("usuario leaked into original: %d", orig.Usuario.ID)
	}
	if len(orig.Tags) != 1 || orig.Tags[0].Nome != "Promo" {
		t.Fatalf("tags leaked into original: %#v", orig.Tags)
	}
}

func TestProdutoClone_NilFieldsStayNil(t *testing.T) {
	c := Produto{Nome: "x"}.Clone()
	if c.ID != nil || c.Categoria != nil || c.Usuario != nil {
		t.Fatalf("expected nil references, got %#v", c)
	}
	if c.Tags == nil || len(c.Tags) != 0 {
		t.Fatalf("expected empty non-nil tags, got %#v", c.Tags)
	}
}

func TestRoundPreco(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{5, 5},
		{5.555, 5.56},
		{19.994, 19.99},
		{0.125, 0.13},
	}
	for _, tc := range cases {
		p := Produto{Preco: tc.in}
		p.RoundPreco()
		if p.Preco != tc.want {
			t.Fatalf("RoundPreco(%v) = %v, want %v", tc.in, p.Preco, tc.want)
		}
	}
}

func TestParseTipos(t *testing.T) {
	if got, ok := ParseTipoOperacao(" saida "); !ok || got != TipoSaida {
		t.Fatalf("ParseTipoOperacao: got %q ok=%v", got, ok)
	}
	if _, ok := ParseTipoOperacao("transferencia"); ok {
		t.Fatalf("expected unknown tipo to fail")
	}
	if got, ok := ParseTipoUsuario("gerente"); !ok || got != TipoGerente {
		t.Fatalf("ParseTipoUsuario: got %q ok=%v", got, ok)
	}
}
