package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := strings.Join(Topics(), ",")
	if got != "atalhos,operacoes,produtos,tags,usuarios" {
		t.Fatalf("Topics() = %s", got)
	}
}

func TestGet(t *testing.T) {
	body, ok := Get(" Produtos ")
	if !ok || !strings.HasPrefix(body, "# Produtos") {
		t.Fatalf("Get(produtos) = %q, %v", body, ok)
	}
	if _, ok := Get("../docs"); ok {
		t.Fatal("path traversal should not resolve")
	}
	if _, ok := Get(""); ok {
		t.Fatal("empty topic should not resolve")
	}
}

func TestRender_PlainStyle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	body, _ := Get("tags")

	out := Render(body, 60)

	if !strings.Contains(out, "Tags") || !strings.Contains(out, "Rótulos livres") {
		t.Fatalf("unexpected render:\n%s", out)
	}
	if Render("   ", 60) != "" {
		t.Fatal("blank markdown should render empty")
	}
}
