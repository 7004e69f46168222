// Package beliefcmd implements the belief command: inspecting the stored
// judgment and audit trail for a domain.
package beliefcmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/defaultanswer/readiness-core/pkg/db"
)

// ShowAction prints the current belief state for a domain.
func ShowAction(c *cli.Context) error {
	domain := strings.ToLower(strings.TrimSpace(c.String("domain")))
	if domain == "" {
		return fmt.Errorf("no domain provided via --domain flag")
	}

	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	state, err := database.GetBelief(domain)
	if err != nil {
		return err
	}
	if state == nil {
		fmt.Printf("No belief state for %s (never scanned)\n", domain)
		return nil
	}

	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(state)
	}

	fmt.Printf("%s\n", state.Domain)
	fmt.Printf("  readiness: %s  confidence: %d  updated: %s\n",
		state.ReadinessState, state.ConfidenceScore, state.LastUpdated.Format("2006-01-02 15:04:05"))
	if len(state.SupportingSignals) > 0 {
		fmt.Printf("  supporting: %s\n", strings.Join(state.SupportingSignals, ", "))
	}
	if len(state.BlockingFactors) > 0 {
		fmt.Printf("  blocking: %s\n", strings.Join(state.BlockingFactors, ", "))
	}
	if state.PrimaryUncertainty != "" {
		fmt.Printf("  primary uncertainty: %s\n", state.PrimaryUncertainty)
	}
	if state.PreviousState != nil {
		fmt.Printf("  previous: %s (confidence %d)\n",
			state.PreviousState.ReadinessState, state.PreviousState.ConfidenceScore)
	}
	return nil
}

// HistoryAction prints a domain's append-only belief history.
func HistoryAction(c *cli.Context) error {
	domain := strings.ToLower(strings.TrimSpace(c.String("domain")))
	if domain == "" {
		return fmt.Errorf("no domain provided via --domain flag")
	}

	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	entries, err := database.History(domain)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("No history for %s\n", domain)
		return nil
	}

	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	for _, entry := range entries {
		fmt.Printf("%s  %-26s %4d  %s\n",
			entry.RecordedAt.Format("2006-01-02 15:04:05"),
			entry.ReadinessState, entry.ConfidenceScore, entry.Explanation)
	}
	fmt.Printf("\nTotal: %d entries\n", len(entries))
	return nil
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
