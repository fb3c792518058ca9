package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"gestao"},
			want: []string{"gestao"},
		},
		{
			name: "entity and id",
			in:   []string{"gestao", "produtos", "3"},
			want: []string{"gestao", "produtos", "show", "3"},
		},
		{
			name: "after value flag",
			in:   []string{"gestao", "--api", "http://x/api", "tags", "7"},
			want: []string{"gestao", "--api", "http://x/api", "tags", "show", "7"},
		},
		{
			name: "after equals flag",
			in:   []string{"gestao", "--format=json", "usuarios", "1"},
			want: []string{"gestao", "--format=json", "usuarios", "show", "1"},
		},
		{
			name: "after bool flag",
			in:   []string{"gestao", "--pretty", "operacoes", "12", "--format", "json"},
			want: []string{"gestao", "--pretty", "operacoes", "show", "12", "--format", "json"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"gestao", "produtos", "show", "3"},
			want: []string{"gestao", "produtos", "show", "3"},
		},
		{
			name: "non numeric not rewritten",
			in:   []string{"gestao", "produtos", "abc"},
			want: []string{"gestao", "produtos", "abc"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"gestao", "categorias", "3"},
			want: []string{"gestao", "categorias", "3"},
		},
		{
			name: "double dash stops",
			in:   []string{"gestao", "--", "produtos", "3"},
			want: []string{"gestao", "--", "produtos", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteDirectLookupArgs(append([]string(nil), tt.in...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectLookupArgs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
