package analyze

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/defaultanswer/readiness-core/models"
	"github.com/defaultanswer/readiness-core/pkg/belief"
	"github.com/defaultanswer/readiness-core/pkg/db"
	"github.com/defaultanswer/readiness-core/pkg/extractor"
	"github.com/defaultanswer/readiness-core/pkg/fetcher"
	"github.com/defaultanswer/readiness-core/pkg/fixplan"
	"github.com/defaultanswer/readiness-core/pkg/scandiff"
	"github.com/defaultanswer/readiness-core/pkg/scorer"
	"github.com/defaultanswer/readiness-core/pkg/snapshots"
)

// Job is one URL to analyze.
type Job struct {
	URL string
}

// Result is the outcome of one analyzed URL.
type Result struct {
	URL         string                `json:"url"`
	Analysis    *models.AnalysisResult `json:"analysis,omitempty"`
	Decision    *models.FixDecision    `json:"decision,omitempty"`
	Delta       *models.ScanDelta      `json:"delta,omitempty"`
	Explanation string                 `json:"belief_explanation,omitempty"`
	FromCache   bool                   `json:"from_cache,omitempty"`
	Error       error                  `json:"-"`
	ErrorType   string                 `json:"error_type,omitempty"`
}

func run(ctx context.Context, logger *slog.Logger, config *models.Config, cache *snapshots.Cache, database *db.DB, forceFetch bool) ([]Result, error) {
	f := fetcher.NewFetcher()
	tracker := belief.NewTracker(database)

	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 4
	}

	logger.Info("Starting analysis", "url_count", len(config.URLs), "workers", workerCount, "force_fetch", forceFetch)

	var wg sync.WaitGroup
	jobs := make(chan Job, len(config.URLs))
	results := make(chan Result, len(config.URLs))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, f, cache, database, tracker, &wg, jobs, results, forceFetch)
	}

	for _, rawURL := range config.URLs {
		jobs <- Job{URL: rawURL}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All analysis workers finished")

	allResults := make([]Result, 0, len(config.URLs))
	for result := range results {
		allResults = append(allResults, result)
	}
	return allResults, nil
}

func worker(ctx context.Context, id int, logger *slog.Logger, f *fetcher.Fetcher, cache *snapshots.Cache, database *db.DB, tracker *belief.Tracker, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result, forceFetch bool) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("Worker started job", "worker", id, "url", job.URL)
		results <- analyzeOne(ctx, logger, f, cache, database, tracker, job.URL, forceFetch)
		logger.Info("Worker finished job", "worker", id, "url", job.URL)
	}
}

// analyzeOne runs the full pipeline for one URL: fetch (or load snapshot),
// extract, score, plan fixes, persist, diff against the previous scan, and
// update the domain's belief state.
func analyzeOne(ctx context.Context, logger *slog.Logger, f *fetcher.Fetcher, cache *snapshots.Cache, database *db.DB, tracker *belief.Tracker, rawURL string, forceFetch bool) Result {
	out := Result{URL: rawURL}
	now := time.Now()

	html, diag, fromCache := loadOrFetch(ctx, logger, f, cache, rawURL, forceFetch)
	out.FromCache = fromCache

	signals := extractor.Extract(html, rawURL, now)
	result := scorer.Score(signals, diag)

	result.ReportID = uuid.NewString()
	result.URL = rawURL
	result.NormalizedURL = models.NormalizeURL(rawURL)
	result.Domain = models.DomainOf(rawURL)

	plan := fixplan.Dedupe(fixplan.Build(result.Breakdown))
	plan = fixplan.Downgrade(plan, result.Score, result.Readiness, signals)
	result.FixPlan = plan
	decision := fixplan.Decide(plan, result.Score, result.Readiness, signals)

	// Previous scan is read before the insert so the diff never compares
	// the scan against itself.
	previous, err := database.RecentScans(result.NormalizedURL, 1)
	if err != nil {
		logger.Error("Failed to load previous scans", "url", rawURL, "error", err)
	}

	if err := database.InsertScan(result); err != nil {
		out.Error = err
		out.ErrorType = "persist_error"
		return out
	}

	if len(previous) > 0 {
		delta := scandiff.Compute(result, previous[0])
		out.Delta = &delta
	}

	current, _, err := tracker.Upsert(beliefParams(result, now))
	if err != nil {
		logger.Error("Failed to update belief state", "domain", result.Domain, "error", err)
	} else if n := len(current.History); n > 0 {
		out.Explanation = current.History[n-1].Explanation
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := cache.SetAnalysis(rawURL, payload); err != nil {
			logger.Warn("Failed to cache analysis artifact", "url", rawURL, "error", err)
		}
	}

	out.Analysis = &result
	out.Decision = &decision
	return out
}

// loadOrFetch prefers a fresh cached snapshot unless the caller forced a
// refetch. Cached snapshots replay with synthetic OK diagnostics.
func loadOrFetch(ctx context.Context, logger *slog.Logger, f *fetcher.Fetcher, cache *snapshots.Cache, rawURL string, forceFetch bool) (string, models.FetchDiagnostics, bool) {
	if !forceFetch {
		if data, fresh, err := cache.GetRawHTML(rawURL); err == nil && fresh {
			return string(data), models.FetchDiagnostics{
				URL:          rawURL,
				StatusCode:   200,
				ByteCount:    len(data),
				FailureClass: models.FailureNone,
			}, true
		}
	}

	fetched, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return "", models.FetchDiagnostics{
			URL:           rawURL,
			FailureClass:  models.FailureNetwork,
			FailureReason: err.Error(),
		}, false
	}

	if fetched.Diagnostics.OK() {
		if err := cache.SetRawHTML(rawURL, []byte(fetched.HTML)); err != nil {
			logger.Warn("Failed to cache raw HTML", "url", rawURL, "error", err)
		}
	}
	return fetched.HTML, fetched.Diagnostics, false
}

// beliefParams maps a scan's judgment into tracker input. Supporting
// signals are the fully met checks; blocking factors are the heavy unmet
// ones, or the retrieval failure itself on failed scans.
func beliefParams(result models.AnalysisResult, now time.Time) belief.UpsertParams {
	params := belief.UpsertParams{
		Domain:          result.Domain,
		ReportID:        result.ReportID,
		ReadinessState:  result.Readiness,
		ConfidenceScore: result.Score,
		ObservedAt:      now,
	}

	if result.Failed() {
		params.BlockingFactors = []string{"site content is not retrievable"}
		params.PrimaryUncertainty = "the page cannot be fetched"
		return params
	}

	for _, item := range result.Breakdown {
		if item.Met() {
			params.SupportingSignals = append(params.SupportingSignals, item.Label)
		} else if item.Max >= 8 {
			params.BlockingFactors = append(params.BlockingFactors, item.Label)
		}
	}
	if len(result.Weaknesses) > 0 {
		params.PrimaryUncertainty = result.Weaknesses[0]
	}
	return params
}
