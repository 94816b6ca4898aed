// ABOUTME: Run command: one aggregation pass over every configured source
// ABOUTME: Accepts an optional YYYY-MM-DD target date or "issue" to ingest the issue file

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harper/secdigest/internal/aggregate"
	"github.com/harper/secdigest/internal/fetch"
	"github.com/harper/secdigest/internal/render"
	"github.com/harper/secdigest/internal/sources"
)

var runCmd = &cobra.Command{
	Use:   "run [issue|YYYY-MM-DD]",
	Short: "Fetch new articles and regenerate the pages",
	Long: `Fetch candidate articles, append the new ones to the archive, and regenerate
index.html (recent window) and archive.html (everything).

With no argument the run targets today and also pulls the latest RSS feeds.
A YYYY-MM-DD argument backfills that day from the dated digests only.
"issue" ingests links from the issue file (ISSUE_CONTENT_PATH).`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := aggregate.ParseArgs(args, time.Now())
		if errors.Is(err, aggregate.ErrInvalidDate) {
			log.Warn(err)
		}

		client := fetch.NewClient(cfg.GetTimeout(), cfg.GetRetries(), cfg.GetRetryDelay(), cfg.GetUserAgent())
		set, err := sources.Build(cfg, client)
		if err != nil {
			return fmt.Errorf("failed to configure sources: %w", err)
		}

		driver := &aggregate.Driver{
			Store:      store,
			Sources:    *set,
			Renderer:   &render.HTML{OutputDir: cfg.GetOutputDir()},
			RecentDays: cfg.GetRecentDays(),
		}

		report, err := driver.Run(cmd.Context(), rc)
		if err != nil {
			return err
		}

		printReport(report)
		return nil
	},
}

func printReport(r *aggregate.Report) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Println()
	fmt.Printf("Run %s (%s, %s)\n", faint(r.RunID), r.Mode, r.Date)
	fmt.Printf("  %d candidate(s) fetched\n", r.Fetched)
	if r.Added > 0 {
		fmt.Printf("  %s %d new article(s) archived\n", green("v"), r.Added)
	} else {
		fmt.Printf("  %s no new articles\n", faint("-"))
	}
	fmt.Printf("  %d article(s) in archive, %d in the recent window\n", r.Total, r.Recent)

	if r.Rendered {
		fmt.Printf("  %s pages written to %s\n", green("v"), cfg.GetOutputDir())
	} else {
		fmt.Printf("  %s archive is empty, no pages written\n", yellow("!"))
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
