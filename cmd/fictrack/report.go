// ABOUTME: Report command rendering the markdown database report
// ABOUTME: Uses glamour for terminal display with a plain fallback

package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/fictrack/internal/config"
	"github.com/harper/fictrack/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a database report",
	Long: `Generate a markdown report over the tracked database: overall stats,
top stories, growth movers, genre distribution, and recent sessions.

Rendered for the terminal unless --raw, which prints plain markdown
suitable for piping to a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		raw, _ := cmd.Flags().GetBool("raw")
		if days <= 0 {
			return fmt.Errorf("days must be positive, got %d", days)
		}

		data, err := report.Gather(store, days)
		if err != nil {
			return fmt.Errorf("failed to gather report data: %w", err)
		}
		markdown := report.Build(data)

		if raw {
			fmt.Print(markdown)
			return nil
		}

		rendered, err := glamour.Render(markdown, "dark")
		if err != nil {
			faint := color.New(color.Faint).SprintFunc()
			fmt.Printf("%s\n", faint("(markdown rendering unavailable, showing plain text)"))
			fmt.Print(markdown)
			return nil
		}
		fmt.Print(rendered)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().IntP("days", "d", config.DefaultGrowthDays, "growth window in days")
	reportCmd.Flags().Bool("raw", false, "print plain markdown without terminal rendering")
}
