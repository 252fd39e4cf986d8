package menu

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Entradas", "entradas"},
		{"Pratos Principais", "pratos-principais"},
		{"Sobremesas & Doces", "sobremesas-doces"},
		{"Vinhos  Tintos", "vinhos-tintos"},
		{"Não Alcoólicos", "nao-alcoolicos"},
		{"--edge--", "edge"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
