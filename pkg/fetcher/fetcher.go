package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/defaultanswer/readiness-core/models"
)

const (
	userAgent      = "DefaultAnswerBot/1.0 (+https://defaultanswer.com/bot)"
	defaultTimeout = 20 * time.Second
	maxBodyBytes   = 5 << 20
)

// blockingStatuses are HTTP statuses from an otherwise-reachable host that
// indicate the site refuses automated retrieval. They map to the "blocked"
// analysis status rather than a generic failure.
var blockingStatuses = map[int]struct{}{
	http.StatusUnauthorized:               {},
	http.StatusForbidden:                  {},
	http.StatusProxyAuthRequired:          {},
	http.StatusTooManyRequests:            {},
	http.StatusUnavailableForLegalReasons: {},
	http.StatusServiceUnavailable:         {},
}

// FetchResult is the outcome of one fetch attempt. HTML is empty unless
// Diagnostics.OK() holds.
type FetchResult struct {
	HTML        string
	Diagnostics models.FetchDiagnostics
}

type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Fetch retrieves a URL and classifies the outcome. Non-success statuses
// are not errors here: they are diagnostics the scorer turns into blocked
// or error statuses. The returned error is reserved for programmer errors
// (malformed request construction).
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (FetchResult, error) {
	diag := models.FetchDiagnostics{
		URL:          rawURL,
		FailureClass: models.FailureNone,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		diag.FailureClass = models.FailureNetwork
		diag.FailureReason = err.Error()
		return FetchResult{Diagnostics: diag}, nil
	}
	defer resp.Body.Close()

	diag.StatusCode = resp.StatusCode
	diag.ContentType = resp.Header.Get("Content-Type")
	diag.FinalURL = resp.Request.URL.String()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		diag.FailureClass = models.FailureNetwork
		diag.FailureReason = fmt.Sprintf("failed to read body: %s", err)
		return FetchResult{Diagnostics: diag}, nil
	}
	diag.ByteCount = len(body)

	if _, blocked := blockingStatuses[resp.StatusCode]; blocked {
		diag.FailureClass = models.FailureBlocked
		diag.FailureReason = fmt.Sprintf("blocking status code: %d", resp.StatusCode)
		return FetchResult{Diagnostics: diag}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		diag.FailureClass = models.FailureHTTP
		diag.FailureReason = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
		return FetchResult{Diagnostics: diag}, nil
	}

	return FetchResult{HTML: string(body), Diagnostics: diag}, nil
}
