// ABOUTME: Growth command showing per-bin growth rates or the top movers leaderboard
// ABOUTME: With a story id it prints the growth series; without, ranked view growth

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/fictrack/internal/analysis"
	"github.com/harper/fictrack/internal/config"
	"github.com/harper/fictrack/internal/report"
	"github.com/harper/fictrack/internal/storage"
)

var growthCmd = &cobra.Command{
	Use:   "growth [story-id]",
	Short: "Show growth rates",
	Long: `Show growth rates over a trailing window.

With a story id, print the story's per-bin growth series for one metric.
Without arguments, rank every tracked story by its most recent view
growth. Bin width follows the window: daily under a week, weekly up to
four weeks, monthly beyond.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, _ := cmd.Flags().GetString("metric")
		days, _ := cmd.Flags().GetInt("days")
		if days <= 0 {
			return fmt.Errorf("days must be positive, got %d", days)
		}

		if len(args) == 1 {
			return printStoryGrowth(args[0], metric, days)
		}
		return printMovers(days)
	},
}

func printStoryGrowth(storyID, metric string, days int) error {
	story, err := store.GetStory(storyID)
	if err != nil {
		if errors.Is(err, storage.ErrStoryNotFound) {
			return fmt.Errorf("story not found: %s", storyID)
		}
		return fmt.Errorf("failed to load story: %w", err)
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -days)
	it, err := store.SnapshotsInRange(story.StoryID, from, now)
	if err != nil {
		return fmt.Errorf("failed to query history: %w", err)
	}

	result, err := analysis.GrowthRates(it, metric, from, now)
	if err != nil {
		return err
	}

	if len(result.Points) == 0 {
		fmt.Printf("Not enough history for %q in the last %d days\n", story.Title, days)
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Printf("%s, %s growth per %s bin\n\n", story.Title, result.Metric, result.Bin)
	for _, p := range result.Points {
		rate := fmt.Sprintf("%+.1f/day", p.PerDay)
		if p.PerDay >= 0 {
			rate = green(rate)
		} else {
			rate = red(rate)
		}
		fmt.Printf("%s  %12.0f  %s\n", faint(p.BinStart.Format("2006-01-02")), p.Value, rate)
	}

	return nil
}

func printMovers(days int) error {
	movers, err := report.Movers(store, time.Now().UTC(), days)
	if err != nil {
		return fmt.Errorf("failed to rank stories: %w", err)
	}

	if len(movers) == 0 {
		fmt.Printf("No stories with enough history in the last %d days\n", days)
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Printf("Top movers by %s growth, last %d days\n\n", movers[0].Metric, days)
	for i, m := range movers {
		rate := fmt.Sprintf("%+.1f/day", m.PerDay)
		if m.PerDay >= 0 {
			rate = green(rate)
		} else {
			rate = red(rate)
		}
		fmt.Printf("%2d. %-44s %s  %s\n", i+1, m.Story.Title, rate, faint(m.Story.StoryID))
	}

	return nil
}

func init() {
	rootCmd.AddCommand(growthCmd)

	growthCmd.Flags().StringP("metric", "m", "views", "metric to analyze")
	growthCmd.Flags().IntP("days", "d", config.DefaultGrowthDays, "trailing window in days")
}
