// ABOUTME: Stats command summarizing the story database
// ABOUTME: Prints row counts, observation span, and the genre distribution

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  "Summarize the tracked database: story and snapshot counts, observation span, and genres",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := store.Stats()
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		fmt.Printf("%s %d stories, %d snapshots, %d sessions\n",
			bold("Database:"), stats.TotalStories, stats.TotalSnapshots, stats.TotalSessions)
		fmt.Printf("%s %d stories with 2+ snapshots, %d distinct genres\n",
			bold("History: "), stats.StoriesWithHistory, stats.DistinctGenres)
		if stats.FirstObservation != nil && stats.LastObservation != nil {
			fmt.Printf("%s %s to %s\n", bold("Span:    "),
				stats.FirstObservation.Format("2006-01-02"),
				stats.LastObservation.Format("2006-01-02"))
		}

		genres, err := store.GenreCounts()
		if err != nil {
			return fmt.Errorf("failed to count genres: %w", err)
		}
		if len(genres) > 0 {
			fmt.Println()
			shown := genres
			if len(shown) > 10 {
				shown = shown[:10]
			}
			for _, g := range shown {
				fmt.Printf("  %-20s %d\n", g.Genre, g.Count)
			}
			if len(genres) > 10 {
				fmt.Println(faint(fmt.Sprintf("  ... and %d more", len(genres)-10)))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
