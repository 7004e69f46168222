package models

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.Acme.example/", "acme.example"},
		{"https://acme.example/pricing/", "acme.example/pricing"},
		{"http://acme.example/pricing?utm_source=x#plans", "acme.example/pricing"},
		{"https://WWW.ACME.EXAMPLE/Pricing", "acme.example/Pricing"},
		{"https://acme.example:8080/docs", "acme.example:8080/docs"},
		{"  https://acme.example  ", "acme.example"},
		{"not a url", "not a url"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.raw); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeURLVariantsCollapse(t *testing.T) {
	variants := []string{
		"https://www.acme.example/",
		"http://acme.example",
		"https://ACME.example/",
	}
	want := NormalizeURL(variants[0])
	for _, v := range variants[1:] {
		if got := NormalizeURL(v); got != want {
			t.Errorf("NormalizeURL(%q) = %q, want same key %q", v, got, want)
		}
	}
}

func TestDomainOf(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.acme.example/pricing", "acme.example"},
		{"https://acme.example:8080/docs", "acme.example"},
		{"https://sub.acme.example/", "sub.acme.example"},
		{"acme.example/pricing", "acme.example"},
	}

	for _, tt := range tests {
		if got := DomainOf(tt.raw); got != tt.want {
			t.Errorf("DomainOf(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
