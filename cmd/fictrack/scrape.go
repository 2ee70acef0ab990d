// ABOUTME: Scrape command running one trending scrape-and-persist cycle
// ABOUTME: Prints a colored session summary after the run

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/fictrack/internal/fetch"
	"github.com/harper/fictrack/internal/models"
	"github.com/harper/fictrack/internal/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the trending listing once",
	Long: `Fetch the trending listing and record one metric snapshot per story.

Every run writes a scrape session row, so repeated runs build up the
metric history the growth and report commands analyze. Politeness
settings (request spacing, timeout, retries) come from the config file.

Use --details to also visit each fiction page for the full stats panel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		details, _ := cmd.Flags().GetBool("details")
		detailLimit, _ := cmd.Flags().GetInt("detail-limit")
		pages, _ := cmd.Flags().GetInt("pages")

		// Flags override the config only when set
		if !cmd.Flags().Changed("details") {
			details = cfg.Details
		}
		if !cmd.Flags().Changed("detail-limit") {
			detailLimit = cfg.DetailLimit
		}
		if !cmd.Flags().Changed("pages") {
			pages = cfg.Pages
		}

		runner := scrape.NewRunner(store, fetch.NewWithOptions(cfg.FetchOptions()), scrape.Options{
			BaseURL:     cfg.BaseURL,
			Pages:       pages,
			Details:     details,
			DetailLimit: detailLimit,
			Logger:      logger,
		})

		out, err := runner.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("scrape failed: %w", err)
		}

		printOutcome(out)
		return nil
	},
}

func printOutcome(out *scrape.Outcome) {
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	sess := out.Session
	fmt.Printf("Scraped %d stories across %d pages\n", out.Listed, sess.PagesScraped)
	fmt.Printf("  %s added, %s updated\n", green(sess.StoriesAdded), cyan(sess.StoriesUpdated))
	if out.Failed > 0 {
		fmt.Printf("  %s stories failed\n", red(out.Failed))
	}
	if out.PagesFailed > 0 {
		fmt.Printf("  %s pages skipped\n", red(out.PagesFailed))
	}

	status := string(sess.Status)
	switch sess.Status {
	case models.SessionSuccess:
		status = green(status)
	case models.SessionPartial:
		status = color.YellowString(status)
	default:
		status = red(status)
	}
	fmt.Printf("Session %s %s\n", faint(shortID(sess.RunID)), status)
}

// shortID trims a UUID to its first block for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().Bool("details", false, "visit each fiction page for full stats")
	scrapeCmd.Flags().Int("detail-limit", 0, "cap fiction page visits per run (0 = no cap)")
	scrapeCmd.Flags().Int("pages", 0, "trending pages to visit (0 = config or 1)")
}
