package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// collection is one in-memory REST collection of the fake admin API.
type collection struct {
	mu     sync.Mutex
	items  []map[string]any
	next   int64
	bodies []map[string]any
	calls  []string
	fail   string
	// gone is an id still listed by GET whose writes answer 404, as if
	// another client deleted it in between.
	gone string
}

func (c *collection) routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.calls = append(c.calls, "GET")
		if c.fail != "" {
			writeJSONBody(w, http.StatusInternalServerError, map[string]string{"message": c.fail})
			return
		}
		writeJSONBody(w, http.StatusOK, c.items)
	})
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(r.Body)
		c.mu.Lock()
		defer c.mu.Unlock()
		c.calls = append(c.calls, "POST")
		c.bodies = append(c.bodies, body)
		c.next++
		body["id"] = c.next
		c.items = append(c.items, body)
		writeJSONBody(w, http.StatusCreated, body)
	})
	r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(r.Body)
		id := chi.URLParam(r, "id")
		c.mu.Lock()
		defer c.mu.Unlock()
		c.calls = append(c.calls, "PUT "+id)
		c.bodies = append(c.bodies, body)
		for i, it := range c.items {
			if idString(it["id"]) == id && id != c.gone {
				body["id"] = it["id"]
				c.items[i] = body
				writeJSONBody(w, http.StatusOK, body)
				return
			}
		}
		writeJSONBody(w, http.StatusNotFound, map[string]string{"message": "não encontrado"})
	})
	r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		c.mu.Lock()
		defer c.mu.Unlock()
		c.calls = append(c.calls, "DELETE "+id)
		for i, it := range c.items {
			if idString(it["id"]) == id && id != c.gone {
				c.items = append(c.items[:i], c.items[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSONBody(w, http.StatusNotFound, map[string]string{"message": "não encontrado"})
	})
}

func (c *collection) callList() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *collection) lastBody() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.bodies) == 0 {
		return nil
	}
	return c.bodies[len(c.bodies)-1]
}

func idString(v any) string {
	switch id := v.(type) {
	case int64:
		return strconv.FormatInt(id, 10)
	case float64:
		return strconv.FormatInt(int64(id), 10)
	default:
		return ""
	}
}

func decodeBody(r io.Reader) map[string]any {
	var m map[string]any
	_ = json.NewDecoder(r).Decode(&m)
	if m == nil {
		m = map[string]any{}
	}
	return m
}

func writeJSONBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type fakeAPI struct {
	operacoes, produtos, tags, usuarios, categorias *collection
	url                                             string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{
		operacoes: &collection{next: 10},
		produtos: &collection{next: 10, items: []map[string]any{
			{
				"id": int64(1), "nome": "Caneta", "preco": 5.0,
				"categoria": map[string]any{"id": 1, "nome": "Papelaria"},
				"usuario":   map[string]any{"id": 2, "nome": "Ana"},
				"tags":      []any{map[string]any{"id": 7, "nome": "Promo"}},
			},
			{"id": int64(2), "nome": "Caderno", "preco": 20.0, "tags": []any{}},
		}},
		tags: &collection{next: 10, items: []map[string]any{
			{"id": int64(7), "nome": "Promo"},
			{"id": int64(9), "nome": "Natal"},
		}},
		usuarios: &collection{next: 10, items: []map[string]any{
			{"id": int64(2), "nome": "Ana", "email": "ana@loja.com", "tipoUsuario": "ADMIN"},
		}},
		categorias: &collection{items: []map[string]any{
			{"id": int64(1), "nome": "Papelaria"},
		}},
	}
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/operacoes", api.operacoes.routes)
		r.Route("/produtos", api.produtos.routes)
		r.Route("/tags", api.tags.routes)
		r.Route("/usuarios", api.usuarios.routes)
		r.Route("/categorias", api.categorias.routes)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	api.url = srv.URL + "/api"

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("GESTAO_FORMAT", "")
	t.Setenv("NO_COLOR", "1")
	return api
}

func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestProdutosList_FiltersByPrecoMaximo(t *testing.T) {
	api := newFakeAPI(t)

	out, stderr, err := runCLI(t, "", "--api", api.url, "--format", "json", "produtos", "list", "--preco-max", "10")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, stderr)
	}
	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0]["nome"] != "Caneta" {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestProdutosList_TagFilterAndTable(t *testing.T) {
	api := newFakeAPI(t)

	out, _, err := runCLI(t, "", "--api", api.url, "produtos", "list", "--tag", "7")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Caneta") || strings.Contains(out, "Caderno") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestProdutosCreate_ResolvesReferencesAndRoundsPreco(t *testing.T) {
	api := newFakeAPI(t)

	_, stderr, err := runCLI(t, "", "--api", api.url, "produtos", "create",
		"--nome", "Lápis", "--preco", "1.555", "--categoria", "1", "--usuario", "2", "--tag", "7")
	if err != nil {
		t.Fatalf("create failed: %v\n%s", err, stderr)
	}
	body := api.produtos.lastBody()
	if body == nil {
		t.Fatal("no POST received")
	}
	if body["preco"] != 1.56 {
		t.Fatalf("preco = %v, want 1.56", body["preco"])
	}
	cat, _ := body["categoria"].(map[string]any)
	if cat["nome"] != "Papelaria" {
		t.Fatalf("categoria = %v", body["categoria"])
	}
	tags, _ := body["tags"].([]any)
	if len(tags) != 1 || tags[0].(map[string]any)["nome"] != "Promo" {
		t.Fatalf("tags = %v", body["tags"])
	}
	if !strings.Contains(stderr, "Produto salvo com sucesso!") {
		t.Fatalf("missing success notice:\n%s", stderr)
	}
}

func TestProdutosCreate_MissingCategoriaNeverPosts(t *testing.T) {
	api := newFakeAPI(t)

	_, stderr, err := runCLI(t, "", "--api", api.url, "produtos", "create", "--nome", "Lápis", "--usuario", "2")
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, c := range api.produtos.callList() {
		if c == "POST" {
			t.Fatal("validation failure must not reach the API")
		}
	}
	if !strings.Contains(stderr, "Nome, categoria e usuário são obrigatórios.") {
		t.Fatalf("missing validation notice:\n%s", stderr)
	}
}

func TestProdutosCreate_UnknownCategoria(t *testing.T) {
	api := newFakeAPI(t)

	_, stderr, err := runCLI(t, "", "--api", api.url, "produtos", "create", "--nome", "X", "--categoria", "42")
	if err == nil || !strings.Contains(stderr, "categoria 42 não encontrada") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
}

func TestProdutosCreate_ReferenceLoadFailureShownOnce(t *testing.T) {
	api := newFakeAPI(t)
	api.categorias.fail = "fora do ar"

	_, stderr, err := runCLI(t, "", "--api", api.url, "--log-level", "disabled", "produtos", "create", "--nome", "Lápis", "--categoria", "1", "--usuario", "2")
	if err == nil {
		t.Fatal("expected reference load error")
	}
	if n := strings.Count(stderr, "categorias"); n != 1 {
		t.Fatalf("failure printed %d times:\n%s", n, stderr)
	}
	if !strings.Contains(stderr, "Falha ao carregar categorias") {
		t.Fatalf("missing notice:\n%s", stderr)
	}
	if contains(api.produtos.callList(), "POST") {
		t.Fatal("failed reference load must not post")
	}
}

func TestProdutosUpdate_ReplacesTags(t *testing.T) {
	api := newFakeAPI(t)

	_, stderr, err := runCLI(t, "", "--api", api.url, "produtos", "update", "1", "--tag", "9")
	if err != nil {
		t.Fatalf("update failed: %v\n%s", err, stderr)
	}
	body := api.produtos.lastBody()
	tags, _ := body["tags"].([]any)
	if len(tags) != 1 || tags[0].(map[string]any)["nome"] != "Natal" {
		t.Fatalf("tags = %v", body["tags"])
	}
	if body["nome"] != "Caneta" {
		t.Fatalf("unchanged fields must be kept, nome = %v", body["nome"])
	}
}

func TestTagsUpdate_OnlyChangedFlags(t *testing.T) {
	api := newFakeAPI(t)

	_, stderr, err := runCLI(t, "", "--api", api.url, "tags", "update", "7", "--nome", "Oferta")
	if err != nil {
		t.Fatalf("update failed: %v\n%s", err, stderr)
	}
	calls := api.tags.callList()
	if !contains(calls, "PUT 7") {
		t.Fatalf("calls = %v", calls)
	}
	if api.tags.lastBody()["nome"] != "Oferta" {
		t.Fatalf("body = %v", api.tags.lastBody())
	}
}

func TestTagsDelete_DeclinedIsSilent(t *testing.T) {
	api := newFakeAPI(t)

	_, stderr, err := runCLI(t, "n\n", "--api", api.url, "tags", "delete", "7")
	if err != nil {
		t.Fatalf("declined delete should not fail: %v", err)
	}
	if !strings.Contains(stderr, `Excluir tag "Promo"?`) {
		t.Fatalf("missing prompt:\n%s", stderr)
	}
	for _, c := range api.tags.callList() {
		if strings.HasPrefix(c, "DELETE") {
			t.Fatal("declined confirmation must not delete")
		}
	}
}

func TestTagsDelete_Confirmed(t *testing.T) {
	api := newFakeAPI(t)

	_, stderr, err := runCLI(t, "s\n", "--api", api.url, "tags", "delete", "7")
	if err != nil {
		t.Fatal(err)
	}
	if !contains(api.tags.callList(), "DELETE 7") {
		t.Fatalf("calls = %v", api.tags.callList())
	}
	if !strings.Contains(stderr, "Tag removida com sucesso.") {
		t.Fatalf("missing notice:\n%s", stderr)
	}
}

func TestUsuariosDelete_YesSkipsPrompt(t *testing.T) {
	api := newFakeAPI(t)

	_, stderr, err := runCLI(t, "", "--api", api.url, "usuarios", "delete", "2", "--yes")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stderr, "[s/N]") || !contains(api.usuarios.callList(), "DELETE 2") {
		t.Fatalf("stderr=%s calls=%v", stderr, api.usuarios.callList())
	}
}

func TestShow_NotFound(t *testing.T) {
	api := newFakeAPI(t)

	_, stderr, err := runCLI(t, "", "--api", api.url, "usuarios", "show", "99")
	if err == nil || !strings.Contains(stderr, "usuário 99 não encontrado") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
}

func TestTagsUpdate_GoneBetweenLookupAndWrite(t *testing.T) {
	api := newFakeAPI(t)
	api.tags.gone = "7"

	_, stderr, err := runCLI(t, "", "--api", api.url, "tags", "update", "7", "--nome", "Oferta")
	if err == nil || !strings.Contains(stderr, "tag 7 não encontrad") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
	if !contains(api.tags.callList(), "PUT 7") {
		t.Fatalf("calls = %v", api.tags.callList())
	}
}

func TestUsuariosDelete_GoneBetweenLookupAndWrite(t *testing.T) {
	api := newFakeAPI(t)
	api.usuarios.gone = "2"

	_, stderr, err := runCLI(t, "", "--api", api.url, "usuarios", "delete", "2", "--yes")
	if err == nil || !strings.Contains(stderr, "usuário 2 não encontrad") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
}

func TestTagsUpdate_SaveFailureShownOnce(t *testing.T) {
	api := newFakeAPI(t)

	_, stderr, err := runCLI(t, "", "--api", api.url, "--log-level", "disabled", "tags", "update", "7", "--nome", "")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if n := strings.Count(stderr, "\n"); n != 1 || !strings.Contains(stderr, "O nome da tag é obrigatório.") {
		t.Fatalf("want the notice alone, got %d lines:\n%s", n, stderr)
	}
}

func TestShow_JSONObject(t *testing.T) {
	api := newFakeAPI(t)

	out, _, err := runCLI(t, "", "--api", api.url, "--format", "json", "tags", "show", "9")
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil || got["nome"] != "Natal" {
		t.Fatalf("out=%s err=%v", out, err)
	}
}

func TestOperacoesCreate_DefaultsAndValidation(t *testing.T) {
	api := newFakeAPI(t)

	_, stderr, err := runCLI(t, "", "--api", api.url, "operacoes", "create", "--valor", "12.5", "--descricao", "Troco")
	if err != nil {
		t.Fatalf("create failed: %v\n%s", err, stderr)
	}
	body := api.operacoes.lastBody()
	if body["tipo"] != "ENTRADA" || body["data"] == "" || body["valor"] != 12.5 {
		t.Fatalf("body = %v", body)
	}

	_, stderr, err = runCLI(t, "", "--api", api.url, "operacoes", "create", "--data", "01/02/2025")
	if err == nil || !strings.Contains(stderr, "--data") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
}

func TestOperacoesList_InvalidTipo(t *testing.T) {
	api := newFakeAPI(t)

	_, stderr, err := runCLI(t, "", "--api", api.url, "operacoes", "list", "--tipo", "talvez")
	if err == nil || !strings.Contains(stderr, "--tipo") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
	if len(api.operacoes.callList()) != 0 {
		t.Fatal("invalid filters must fail before any request")
	}
}

func TestList_APIErrorMessageIsShown(t *testing.T) {
	api := newFakeAPI(t)
	api.usuarios.fail = "Serviço indisponível"

	_, stderr, err := runCLI(t, "", "--api", api.url, "usuarios", "list")
	if err == nil || !strings.Contains(stderr, "Serviço indisponível") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
}

func TestCategoriasList(t *testing.T) {
	api := newFakeAPI(t)

	out, _, err := runCLI(t, "", "--api", api.url, "--format", "json", "categorias", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"nome":"Papelaria"`) {
		t.Fatalf("out = %s", out)
	}
}

func TestDocs(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	out, _, err := runCLI(t, "", "docs")
	if err != nil || !strings.Contains(out, "produtos") {
		t.Fatalf("err=%v out=%s", err, out)
	}

	out, _, err = runCLI(t, "", "docs", "tags", "--raw")
	if err != nil || !strings.HasPrefix(out, "# Tags") {
		t.Fatalf("err=%v out=%s", err, out)
	}

	_, _, err = runCLI(t, "", "docs", "nada")
	if err == nil {
		t.Fatal("unknown topic should fail")
	}
}

func TestInvalidFormat(t *testing.T) {
	_, stderr, err := runCLI(t, "", "--format", "xml", "docs")
	if err == nil || !strings.Contains(stderr, "formato inválido") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func TestDoctor_ReportsEveryCollection(t *testing.T) {
	api := newFakeAPI(t)

	out, stderr, err := runCLI(t, "", "--api", api.url, "--format", "json", "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, stderr)
	}
	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 checks, got %d", len(got))
	}
	if got[2]["recurso"] != "tags" || got[2]["ok"] != true || got[2]["registros"] != float64(2) {
		t.Fatalf("unexpected tags check: %v", got[2])
	}
}

func TestDoctor_FailFlag(t *testing.T) {
	api := newFakeAPI(t)
	api.categorias.fail = "fora do ar"

	out, _, err := runCLI(t, "", "--api", api.url, "doctor")
	if err != nil {
		t.Fatalf("without --fail doctor should succeed: %v", err)
	}
	if !strings.Contains(out, "falha") || !strings.Contains(out, "fora do ar") {
		t.Fatalf("expected failed check in table, got:\n%s", out)
	}

	_, stderr, err := runCLI(t, "", "--api", api.url, "doctor", "--fail")
	if err == nil || !strings.Contains(stderr, "a API apresentou falhas") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
}
