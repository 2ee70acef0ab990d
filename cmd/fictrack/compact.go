// ABOUTME: Compact command running database maintenance
// ABOUTME: Reclaims space freed by SQLite page churn via VACUUM

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Compact the database",
	Long: `Compact the SQLite database file. Snapshots are append-only so the
file mostly grows, but genre and session churn leaves free pages
behind; compacting returns them to the filesystem.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := store.Stats()
		if err != nil {
			return fmt.Errorf("failed to read stats: %w", err)
		}
		fmt.Printf("Compacting database (%d stories, %d snapshots, %d sessions)...\n",
			stats.TotalStories, stats.TotalSnapshots, stats.TotalSessions)

		if err := store.Compact(); err != nil {
			return fmt.Errorf("failed to compact database: %w", err)
		}

		color.Green("  ✓ Database vacuumed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compactCmd)
}
