package snapshots

import (
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	url := "https://www.acme.example/pricing"
	if _, ok, err := cache.GetRawHTML(url); err != nil || ok {
		t.Fatalf("GetRawHTML before write = (ok=%v, err=%v), want miss", ok, err)
	}

	html := []byte("<html><body>pricing</body></html>")
	if err := cache.SetRawHTML(url, html); err != nil {
		t.Fatalf("SetRawHTML: %v", err)
	}

	data, ok, err := cache.GetRawHTML(url)
	if err != nil || !ok {
		t.Fatalf("GetRawHTML = (ok=%v, err=%v), want hit", ok, err)
	}
	if string(data) != string(html) {
		t.Errorf("data = %q, want stored HTML", data)
	}

	// Analysis artifacts live in a separate directory and do not collide.
	if _, ok, _ := cache.GetAnalysis(url); ok {
		t.Error("GetAnalysis hit without a write")
	}
	if err := cache.SetAnalysis(url, []byte(`{"score":80}`)); err != nil {
		t.Fatalf("SetAnalysis: %v", err)
	}
	data, ok, err = cache.GetAnalysis(url)
	if err != nil || !ok || string(data) != `{"score":80}` {
		t.Errorf("GetAnalysis = (%q, %v, %v)", data, ok, err)
	}
}

func TestCacheMaxAge(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Nanosecond)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	url := "https://acme.example/"
	if err := cache.SetRawHTML(url, []byte("x")); err != nil {
		t.Fatalf("SetRawHTML: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok, err := cache.GetRawHTML(url); err != nil || ok {
		t.Errorf("GetRawHTML = (ok=%v, err=%v), want stale miss", ok, err)
	}
}

func TestCacheKeySharedAcrossURLVariants(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	if err := cache.SetRawHTML("https://www.acme.example/", []byte("x")); err != nil {
		t.Fatalf("SetRawHTML: %v", err)
	}
	// Same canonical URL spelled differently resolves to the same artifact
	// only when slug and normalized hash both agree; a different page never
	// collides.
	if _, ok, _ := cache.GetRawHTML("https://www.acme.example/"); !ok {
		t.Error("exact URL missed its own artifact")
	}
	if _, ok, _ := cache.GetRawHTML("https://www.acme.example/pricing"); ok {
		t.Error("different page hit another page's artifact")
	}
}

func TestSanitizeSlug(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.acme.example/pricing", "www_acme_example_pricing"},
		{"https://acme.example/", "acme_example"},
		{"https://acme.example/docs/getting-started", "acme_example_docs_getting-started"},
		{"not a url", "not_a_url"},
	}
	for _, tt := range tests {
		if got := sanitizeSlug(tt.raw); got != tt.want {
			t.Errorf("sanitizeSlug(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
