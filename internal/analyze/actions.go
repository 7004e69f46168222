package analyze

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/defaultanswer/readiness-core/models"
	"github.com/defaultanswer/readiness-core/pkg/db"
	"github.com/defaultanswer/readiness-core/pkg/snapshots"
)

// AnalyzeAction fetches, scores, and persists every requested URL, then
// reports scores, top fixes, deltas, and belief movement.
func AnalyzeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config, err := resolveConfig(c)
	if err != nil {
		return err
	}
	if len(config.URLs) == 0 {
		return fmt.Errorf("no URLs provided via --urls flag or config file")
	}

	var maxAge time.Duration
	if !c.Bool("force-fetch") {
		if maxAge, err = time.ParseDuration(c.String("max-age")); err != nil {
			return fmt.Errorf("invalid max-age duration: %w", err)
		}
	}

	cache, err := snapshots.NewCache(c.String("output-dir"), maxAge)
	if err != nil {
		return fmt.Errorf("failed to initialize snapshot cache: %w", err)
	}

	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	results, err := run(c.Context, logger, config, cache, database, c.Bool("force-fetch"))
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	failures := 0
	for _, result := range results {
		if result.Error != nil {
			failures++
			fmt.Printf("%s: %s (%s)\n", result.URL, result.Error, result.ErrorType)
			continue
		}
		printResult(result)
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d URLs failed", failures, len(results))
	}
	return nil
}

func printResult(result Result) {
	a := result.Analysis
	fmt.Printf("%s\n", a.URL)
	fmt.Printf("  score: %d  status: %s  readiness: %s\n", a.Score, a.AnalysisStatus, a.Readiness)

	switch result.Decision.Kind {
	case models.DecisionTopFix:
		fmt.Printf("  fix first [%s]: %s\n", result.Decision.TopFix.Priority, result.Decision.TopFix.Action)
	case models.DecisionNoCriticalFix:
		fmt.Printf("  no critical fixes: %s\n", result.Decision.Reason)
	}

	if result.Delta != nil {
		var chips []string
		for _, chip := range result.Delta.Chips {
			chips = append(chips, chip.Text)
		}
		fmt.Printf("  delta: %s", result.Delta.SummaryLine)
		if len(chips) > 0 {
			fmt.Printf(" [%s]", strings.Join(chips, "; "))
		}
		fmt.Println()
	}
	if result.Explanation != "" {
		fmt.Printf("  belief: %s\n", result.Explanation)
	}
}

// resolveConfig merges the optional config file with CLI flags; flags win.
func resolveConfig(c *cli.Context) (*models.Config, error) {
	config := &models.Config{}
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if urlsStr := c.String("urls"); urlsStr != "" {
		config.URLs = nil
		for _, u := range strings.Split(urlsStr, ",") {
			if u = strings.TrimSpace(u); u != "" {
				config.URLs = append(config.URLs, u)
			}
		}
	}
	if c.IsSet("workers") {
		config.WorkerCount = c.Int("workers")
	}
	return config, nil
}

func openDatabase(c *cli.Context) (*db.DB, error) {
	if path := c.String("db"); path != "" {
		database, err := db.OpenAt(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return database, nil
	}
	database, err := db.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}
