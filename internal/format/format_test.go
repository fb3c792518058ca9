package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gestao-cli/internal/model"
)

func sampleProdutos() Produtos {
	return Produtos{{
		ID:         model.ID(1),
		Nome:       "Caneta",
		Quantidade: 3,
		Preco:      5.5,
		Categoria:  &model.Ref{ID: 2, Nome: "Papelaria"},
		Tags:       []model.TagRef{{ID: 7, Nome: "Promo"}, {ID: 8, Nome: "Azul"}},
	}}
}

func TestWriteJSON_UsesRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleProdutos(), "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got []model.Produto
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, buf.String())
	}
	if len(got) != 1 || got[0].Nome != "Caneta" || got[0].Usuario != nil {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestWriteJSON_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]int{"a": 1}, true); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{\n  \"a\": 1\n}\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleProdutos(), "table", false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Nome", "Caneta", "5.50", "Papelaria", "Promo, Azul"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, " - ") {
		t.Fatalf("expected placeholder for missing usuario:\n%s", out)
	}
}

func TestWriteTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Tags{}, "", false); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "Nenhum registro encontrado." {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWrite_NonTabularFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]string{"ok": "sim"}, "table", false); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != `{"ok":"sim"}` {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, Tags{}, "edn", false); err == nil {
		t.Fatal("expected error")
	}
}

func TestMoney(t *testing.T) {
	cases := map[float64]string{0: "0.00", 5: "5.00", 19.9: "19.90", 5.555: "5.56"}
	for in, want := range cases {
		if got := Money(in); got != want {
			t.Errorf("Money(%v) = %q, want %q", in, got, want)
		}
	}
}
