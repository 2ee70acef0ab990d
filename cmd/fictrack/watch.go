// ABOUTME: Watch command running scrapes on a cron schedule until interrupted
// ABOUTME: Each tick is one bounded scrape run logged through slog

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/harper/fictrack/internal/fetch"
	"github.com/harper/fictrack/internal/scrape"
)

const watchRunTimeout = 30 * time.Minute

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Scrape on a schedule",
	Long: `Run scrapes on a cron schedule until interrupted.

The schedule comes from the config file (default every six hours) and
uses standard cron syntax, e.g. "0 */6 * * *". Use --now to run one
scrape immediately on startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, _ := cmd.Flags().GetString("schedule")
		runNow, _ := cmd.Flags().GetBool("now")
		if schedule == "" {
			schedule = cfg.GetSchedule()
		}

		runScrape := func() {
			ctx, cancel := context.WithTimeout(context.Background(), watchRunTimeout)
			defer cancel()

			runner := scrape.NewRunner(store, fetch.NewWithOptions(cfg.FetchOptions()), scrape.Options{
				BaseURL:     cfg.BaseURL,
				Pages:       cfg.Pages,
				Details:     cfg.Details,
				DetailLimit: cfg.DetailLimit,
				Logger:      logger,
			})

			out, err := runner.Run(ctx)
			if err != nil {
				logger.Error("scheduled scrape failed", "error", err)
				return
			}
			logger.Info("scheduled scrape finished",
				"run_id", out.Session.RunID,
				"status", out.Session.Status,
				"added", out.Session.StoriesAdded,
				"updated", out.Session.StoriesUpdated)
		}

		c := cron.New()
		if _, err := c.AddFunc(schedule, runScrape); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", schedule, err)
		}

		if runNow {
			runScrape()
		}

		c.Start()
		fmt.Printf("Watching on schedule %q. Press Ctrl-C to stop.\n", schedule)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		// Let an in-flight run finish before closing the store
		<-c.Stop().Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("schedule", "", "cron schedule (default from config)")
	watchCmd.Flags().Bool("now", false, "run one scrape immediately on startup")
}
