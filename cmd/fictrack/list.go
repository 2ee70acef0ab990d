// ABOUTME: List command for viewing tracked stories with latest metrics
// ABOUTME: Supports genre filtering, sorting, and limits with color formatting

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/fictrack/internal/storage"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tracked stories",
	Long:    "List tracked stories with their latest metrics, optionally filtered by genre",
	RunE: func(cmd *cobra.Command, args []string) error {
		genre, _ := cmd.Flags().GetString("genre")
		sortBy, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := &storage.StoryFilter{SortBy: sortBy}
		if genre != "" {
			filter.Genre = &genre
		}
		if limit > 0 {
			filter.Limit = &limit
		}

		rows, err := store.ListStories(filter)
		if err != nil {
			return fmt.Errorf("failed to list stories: %w", err)
		}

		if len(rows) == 0 {
			fmt.Println("No stories tracked yet. Run 'fictrack scrape' first.")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()

		for _, row := range rows {
			fmt.Print(faint(fmt.Sprintf("%-10s", row.Story.StoryID)))

			title := row.Story.Title
			if len(title) > 44 {
				title = title[:41] + "..."
			}
			fmt.Printf(" %-44s", title)

			if row.Latest != nil {
				fmt.Printf(" %8d followers %11d views %5.2f", row.Latest.Followers, row.Latest.Views, row.Latest.Rating)
			}

			if len(row.Story.Genres) > 0 {
				fmt.Printf("  %s", faint(strings.Join(row.Story.Genres, ", ")))
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("genre", "g", "", "filter by genre tag")
	listCmd.Flags().StringP("sort", "s", "", "sort by followers, views, rating, title, or first_seen")
	listCmd.Flags().IntP("limit", "n", 0, "max stories to show (0 = all)")
}
