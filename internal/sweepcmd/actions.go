// Package sweepcmd implements the sweep command: classifying a batch of
// recorded model responses against the configured brand.
package sweepcmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/defaultanswer/readiness-core/models"
	"github.com/defaultanswer/readiness-core/pkg/db"
	"github.com/defaultanswer/readiness-core/pkg/sweep"
)

// SweepAction classifies every response in a batch file. A row that fails
// to classify is recorded as failed and never aborts the batch.
func SweepAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	batchPath := c.String("batch")
	if batchPath == "" {
		return fmt.Errorf("no batch file provided via --batch flag")
	}
	batch, err := loadBatch(batchPath)
	if err != nil {
		return err
	}
	if len(batch.Responses) == 0 {
		return fmt.Errorf("batch file contains no responses")
	}

	brand, err := resolveBrand(c)
	if err != nil {
		return err
	}
	if len(brand.Names) == 0 && len(brand.Domains) == 0 {
		return fmt.Errorf("no brand names or domains configured; use --brand or a config file")
	}

	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	logger.Info("Classifying sweep responses", "rows", len(batch.Responses))

	extractions := make([]models.SweepExtraction, 0, len(batch.Responses))
	for _, resp := range batch.Responses {
		extraction := sweep.ExtractSignals(sweep.Input{
			ResponseText: resp.ResponseText,
			BrandNames:   brand.Names,
			Domains:      brand.Domains,
			ExpectList:   resp.ExpectList,
		})
		extractions = append(extractions, extraction)

		if err := database.InsertSweepRow(resp, extraction); err != nil {
			logger.Error("Failed to persist sweep row", "provider", resp.Provider, "model", resp.Model, "error", err)
		}
	}

	summary := sweep.Aggregate(extractions)
	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(summary)
	}
	printSummary(summary)
	return nil
}

func printSummary(s sweep.Summary) {
	fmt.Printf("rows: %d  mentions: %d (%.0f%%)  parse failures: %d  low confidence: %d\n",
		s.Rows, s.Mentions, s.MentionRate*100, s.ParseFailures, s.LowConfidence)
	if s.RankedMentions > 0 {
		fmt.Printf("average rank: %.1f over %d ranked mentions\n", s.AverageRank, s.RankedMentions)
	}
	if len(s.TopAlternatives) > 0 {
		fmt.Println("top alternatives:")
		for _, alt := range s.TopAlternatives {
			fmt.Printf("  %-30s %d\n", alt.Name, alt.Count)
		}
	}
}

func loadBatch(path string) (*models.SweepBatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	var batch models.SweepBatch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	return &batch, nil
}

// resolveBrand reads brand variants from the config file, then lets the
// --brand and --domains flags override.
func resolveBrand(c *cli.Context) (models.BrandConfig, error) {
	var brand models.BrandConfig
	if path := c.String("config"); path != "" {
		config, err := models.LoadConfig(path)
		if err != nil {
			return brand, err
		}
		brand = config.Brand
	}
	if names := c.StringSlice("brand"); len(names) > 0 {
		brand.Names = names
	}
	if domains := c.StringSlice("domains"); len(domains) > 0 {
		brand.Domains = domains
	}
	return brand, nil
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
