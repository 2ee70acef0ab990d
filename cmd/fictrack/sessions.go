// ABOUTME: Sessions command listing scrape history rows
// ABOUTME: Status colored by outcome with run ids and counts

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/fictrack/internal/config"
	"github.com/harper/fictrack/internal/models"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show scrape history",
	Long:  "List scrape sessions newest first, with status, counts, and notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		sessions, err := store.ListSessions(limit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No scrape sessions yet. Run 'fictrack scrape' first.")
			return nil
		}

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		for _, sess := range sessions {
			status := string(sess.Status)
			switch sess.Status {
			case models.SessionSuccess:
				status = green(fmt.Sprintf("%-7s", status))
			case models.SessionPartial:
				status = yellow(fmt.Sprintf("%-7s", status))
			default:
				status = red(fmt.Sprintf("%-7s", status))
			}

			fmt.Printf("%s %s %s  %d pages, %d added, %d updated",
				faint(shortID(sess.RunID)),
				sess.RunAt.Format(config.DateFormatShort),
				status,
				sess.PagesScraped, sess.StoriesAdded, sess.StoriesUpdated)
			if sess.Notes != nil {
				fmt.Printf("  %s", faint(*sess.Notes))
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)

	sessionsCmd.Flags().IntP("limit", "n", 20, "max sessions to show (0 = all)")
}
