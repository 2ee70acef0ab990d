// ABOUTME: Show command displaying one story's identity, metrics, and description
// ABOUTME: Renders the description markdown with glamour for terminal display

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/fictrack/internal/config"
	"github.com/harper/fictrack/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <story-id>",
	Short: "Show one tracked story",
	Long:  "Display a story's identity, genre tags, latest metrics, and description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		story, err := store.GetStory(args[0])
		if err != nil {
			if errors.Is(err, storage.ErrStoryNotFound) {
				return fmt.Errorf("story not found: %s", args[0])
			}
			return fmt.Errorf("failed to load story: %w", err)
		}

		latest, err := store.LatestSnapshot(args[0])
		if err != nil {
			return fmt.Errorf("failed to load latest snapshot: %w", err)
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		fmt.Println(strings.Repeat("─", config.SeparatorWidth))
		fmt.Printf("%s %s\n", bold(story.Title), faint(story.StoryID))
		fmt.Println(faint(story.URL))
		if len(story.Genres) > 0 {
			fmt.Println(strings.Join(story.Genres, ", "))
		}
		fmt.Printf("First seen %s, last updated %s\n",
			story.FirstSeen.Format("2006-01-02"), story.LastUpdated.Format("2006-01-02"))

		if latest != nil {
			fmt.Println()
			fmt.Printf("  Rating:    %.2f (%d ratings)\n", latest.Rating, latest.RatingCount)
			fmt.Printf("  Followers: %d\n", latest.Followers)
			fmt.Printf("  Favorites: %d\n", latest.Favorites)
			fmt.Printf("  Views:     %d\n", latest.Views)
			fmt.Printf("  Chapters:  %d (%d pages)\n", latest.Chapters, latest.Pages)
			fmt.Printf("  Observed:  %s\n", faint(latest.ObservedAt.Format(config.DateFormatLong)))
		} else {
			fmt.Println("\n(No snapshots recorded yet)")
		}

		if story.Description != nil && *story.Description != "" {
			fmt.Println(strings.Repeat("─", config.SeparatorWidth))
			rendered, err := glamour.Render(*story.Description, "dark")
			if err != nil {
				fmt.Printf("\n%s\n", *story.Description)
			} else {
				fmt.Print(rendered)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
