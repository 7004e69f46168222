package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/defaultanswer/readiness-core/models"
)

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != userAgent {
			t.Errorf("User-Agent = %q, want %q", got, userAgent)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	result, err := NewFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	diag := result.Diagnostics
	if !diag.OK() {
		t.Fatalf("diagnostics not OK: %+v", diag)
	}
	if diag.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", diag.StatusCode)
	}
	if diag.ByteCount != len(result.HTML) || result.HTML == "" {
		t.Errorf("HTML/ByteCount mismatch: %d bytes, %q", diag.ByteCount, result.HTML)
	}
}

func TestFetchStatusClassification(t *testing.T) {
	tests := []struct {
		status    int
		wantClass string
	}{
		{http.StatusForbidden, models.FailureBlocked},
		{http.StatusTooManyRequests, models.FailureBlocked},
		{http.StatusServiceUnavailable, models.FailureBlocked},
		{http.StatusNotFound, models.FailureHTTP},
		{http.StatusInternalServerError, models.FailureHTTP},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		result, err := NewFetcher().Fetch(context.Background(), server.URL)
		server.Close()
		if err != nil {
			t.Fatalf("Fetch(%d): %v", tt.status, err)
		}

		diag := result.Diagnostics
		if diag.FailureClass != tt.wantClass {
			t.Errorf("status %d: FailureClass = %q, want %q", tt.status, diag.FailureClass, tt.wantClass)
		}
		if diag.FailureReason == "" {
			t.Errorf("status %d: empty FailureReason", tt.status)
		}
		if result.HTML != "" {
			t.Errorf("status %d: HTML = %q, want empty on failure", tt.status, result.HTML)
		}
	}
}

func TestFetchNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse the connection

	result, err := NewFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if result.Diagnostics.FailureClass != models.FailureNetwork {
		t.Errorf("FailureClass = %q, want %q", result.Diagnostics.FailureClass, models.FailureNetwork)
	}
}

func TestFetchMalformedURL(t *testing.T) {
	if _, err := NewFetcher().Fetch(context.Background(), "://not-a-url"); err == nil {
		t.Error("expected an error for an unbuildable request")
	}
}
