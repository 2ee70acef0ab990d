// ABOUTME: History command listing a story's snapshots over a trailing window
// ABOUTME: One line per observation, oldest first

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/fictrack/internal/config"
	"github.com/harper/fictrack/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history <story-id>",
	Short: "Show a story's metric history",
	Long:  "List every recorded snapshot for a story over the trailing window, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		if days <= 0 {
			return fmt.Errorf("days must be positive, got %d", days)
		}

		story, err := store.GetStory(args[0])
		if err != nil {
			if errors.Is(err, storage.ErrStoryNotFound) {
				return fmt.Errorf("story not found: %s", args[0])
			}
			return fmt.Errorf("failed to load story: %w", err)
		}

		now := time.Now().UTC()
		it, err := store.SnapshotsInRange(story.StoryID, now.AddDate(0, 0, -days), now)
		if err != nil {
			return fmt.Errorf("failed to query history: %w", err)
		}
		snaps, err := it.Collect()
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}

		if len(snaps) == 0 {
			fmt.Printf("No snapshots for %q in the last %d days\n", story.Title, days)
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()

		fmt.Printf("%s, %d snapshots over %d days\n\n", story.Title, len(snaps), days)
		for _, snap := range snaps {
			fmt.Printf("%s  %10d views %8d followers %5d chapters  rating %.2f\n",
				faint(snap.ObservedAt.Format(config.DateFormatShort)),
				snap.Views, snap.Followers, snap.Chapters, snap.Rating)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("days", "d", config.DefaultHistoryDays, "trailing window in days")
}
