// ABOUTME: Releases command listing a story's chapter feed and release cadence
// ABOUTME: Prefers the feed the fiction page advertises, with a syndication fallback

package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/fictrack/internal/fetch"
	"github.com/harper/fictrack/internal/releases"
	"github.com/harper/fictrack/internal/scrape"
	"github.com/harper/fictrack/internal/storage"
)

var releasesCmd = &cobra.Command{
	Use:   "releases <story-id>",
	Short: "Show a story's chapter releases",
	Long: `Fetch a story's RSS feed and list its recent chapter releases.

The feed advertised on the fiction page is preferred; when the page
does not expose one, the site's syndication convention is tried.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		story, err := store.GetStory(args[0])
		if err != nil {
			if errors.Is(err, storage.ErrStoryNotFound) {
				return fmt.Errorf("story not found: %s", args[0])
			}
			return fmt.Errorf("failed to load story: %w", err)
		}

		fetcher := fetch.NewWithOptions(cfg.FetchOptions())
		ctx := cmd.Context()

		feedURL := ""
		if body, err := fetcher.Get(ctx, story.URL); err == nil {
			if u, err := releases.FeedURL(body, story.URL); err == nil {
				feedURL = u
			}
		}
		if feedURL == "" {
			base := cfg.BaseURL
			if base == "" {
				base = scrape.DefaultBaseURL
			}
			feedURL = releases.SyndicationURL(base, story.StoryID)
		}

		data, err := fetcher.Get(ctx, feedURL)
		if err != nil {
			return fmt.Errorf("failed to fetch release feed: %w", err)
		}
		rels, err := releases.Parse(data)
		if err != nil {
			return fmt.Errorf("failed to parse release feed: %w", err)
		}

		if len(rels) == 0 {
			fmt.Printf("No releases in the feed for %q\n", story.Title)
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()

		fmt.Printf("%s, %d releases\n", story.Title, len(rels))
		if perWeek, ok := releases.Cadence(rels); ok {
			fmt.Printf("Cadence: %.1f chapters/week\n", perWeek)
		}
		fmt.Println()

		for _, rel := range rels {
			fmt.Print(rel.Title)
			if rel.PublishedAt != nil {
				fmt.Printf("  %s", faint(rel.PublishedAt.Format("02 Jan 06")))
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(releasesCmd)
}
