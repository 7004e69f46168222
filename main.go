// Command defaultanswer scores websites for AI recommendation readiness,
// tracks a per-domain belief state across scans, and classifies recorded
// LLM sweep responses.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/defaultanswer/readiness-core/internal/analyze"
	"github.com/defaultanswer/readiness-core/internal/beliefcmd"
	"github.com/defaultanswer/readiness-core/internal/dbcmd"
	"github.com/defaultanswer/readiness-core/internal/sweepcmd"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:  "db",
		Usage: "path to the sqlite database (default: next to the binary)",
	}
	quietFlag := &cli.BoolFlag{
		Name:  "quiet",
		Usage: "only log errors",
	}
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "emit JSON instead of human-readable output",
	}

	app := &cli.App{
		Name:  "defaultanswer",
		Usage: "score websites for AI recommendation readiness",
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "fetch, score, and persist one or more URLs",
				Action: analyze.AnalyzeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "urls", Usage: "comma-separated URLs to analyze"},
					&cli.StringFlag{Name: "config", Usage: "YAML config file with urls, workers, and brand"},
					&cli.IntFlag{Name: "workers", Value: 4, Usage: "concurrent analysis workers"},
					&cli.BoolFlag{Name: "force-fetch", Usage: "ignore cached snapshots and refetch"},
					&cli.StringFlag{Name: "max-age", Value: "24h", Usage: "max snapshot age before refetching"},
					&cli.StringFlag{Name: "output-dir", Usage: "snapshot cache directory"},
					dbFlag, quietFlag, jsonFlag,
				},
			},
			{
				Name:   "sweep",
				Usage:  "classify a batch of recorded model responses",
				Action: sweepcmd.SweepAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "batch", Usage: "YAML file of recorded responses"},
					&cli.StringFlag{Name: "config", Usage: "YAML config file with brand variants"},
					&cli.StringSliceFlag{Name: "brand", Usage: "brand name variant (repeatable)"},
					&cli.StringSliceFlag{Name: "domains", Usage: "brand domain variant (repeatable)"},
					dbFlag, quietFlag, jsonFlag,
				},
			},
			{
				Name:  "belief",
				Usage: "inspect per-domain belief state",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "show the current belief state for a domain",
						Action: beliefcmd.ShowAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "domain", Usage: "domain to inspect"},
							dbFlag, jsonFlag,
						},
					},
					{
						Name:   "history",
						Usage:  "show the append-only belief history for a domain",
						Action: beliefcmd.HistoryAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "domain", Usage: "domain to inspect"},
							dbFlag, jsonFlag,
						},
					},
				},
			},
			{
				Name:  "db",
				Usage: "database maintenance",
				Subcommands: []*cli.Command{
					{
						Name:   "init",
						Usage:  "create the database and schema",
						Action: dbcmd.InitAction,
						Flags:  []cli.Flag{dbFlag},
					},
					{
						Name:   "stats",
						Usage:  "show row counts per table",
						Action: dbcmd.StatsAction,
						Flags:  []cli.Flag{dbFlag},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
