// Package dbcmd implements database maintenance commands.
package dbcmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	dbpkg "github.com/defaultanswer/readiness-core/pkg/db"
)

// InitAction creates the database and schema if they do not exist.
func InitAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	fmt.Printf("Database ready at %s\n", database.Path())
	return nil
}

// StatsAction prints row counts per table.
func StatsAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	counts, err := database.TableCounts()
	if err != nil {
		return err
	}

	fmt.Printf("Database: %s\n\n", database.Path())
	for _, table := range []string{"scans", "belief_states", "belief_history", "sweep_results"} {
		fmt.Printf("%-16s %d\n", table, counts[table])
	}
	return nil
}

func openDatabase(c *cli.Context) (*dbpkg.DB, error) {
	if path := c.String("db"); path != "" {
		database, err := dbpkg.OpenAt(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return database, nil
	}
	database, err := dbpkg.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}
