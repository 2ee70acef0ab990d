// ABOUTME: Export command writing stories, snapshots, or sessions to stdout
// ABOUTME: Supports CSV and JSON output for downstream analysis tools

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/fictrack/internal/models"
	"github.com/harper/fictrack/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export <stories|snapshots|sessions>",
	Short: "Export tracked data to stdout",
	Long: `Export one table of the tracked database to standard output.

Targets:
  stories    all tracked stories with identity and genre tags
  snapshots  every recorded metric observation, grouped by story
  sessions   the scrape history

Use --format to choose csv (default) or json.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "csv" && format != "json" {
			return fmt.Errorf("unknown format %q (want csv or json)", format)
		}

		switch args[0] {
		case "stories":
			return exportStories(store, os.Stdout, format)
		case "snapshots":
			return exportSnapshots(store, os.Stdout, format)
		case "sessions":
			return exportSessions(store, os.Stdout, format)
		}
		return fmt.Errorf("unknown export target %q (want stories, snapshots, or sessions)", args[0])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", "csv", "output format (csv or json)")
}

type storyExport struct {
	StoryID     string   `json:"story_id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres"`
	FirstSeen   string   `json:"first_seen"`
	LastUpdated string   `json:"last_updated"`
}

type snapshotExport struct {
	StoryID     string  `json:"story_id"`
	ObservedAt  string  `json:"observed_at"`
	Rating      float64 `json:"rating"`
	Followers   int64   `json:"followers"`
	Pages       int64   `json:"pages"`
	Chapters    int64   `json:"chapters"`
	Views       int64   `json:"views"`
	Favorites   int64   `json:"favorites"`
	RatingCount int64   `json:"rating_count"`
}

type sessionExport struct {
	RunID          string `json:"run_id"`
	RunAt          string `json:"run_at"`
	PagesScraped   int    `json:"pages_scraped"`
	StoriesAdded   int    `json:"stories_added"`
	StoriesUpdated int    `json:"stories_updated"`
	Status         string `json:"status"`
	Notes          string `json:"notes,omitempty"`
}

func exportStories(store storage.Store, w io.Writer, format string) error {
	stories, err := store.ListStories(nil)
	if err != nil {
		return fmt.Errorf("failed to list stories: %w", err)
	}

	rows := make([]storyExport, 0, len(stories))
	for _, s := range stories {
		row := storyExport{
			StoryID:     s.Story.StoryID,
			Title:       s.Story.Title,
			URL:         s.Story.URL,
			Genres:      s.Story.Genres,
			FirstSeen:   s.Story.FirstSeen.UTC().Format(time.RFC3339),
			LastUpdated: s.Story.LastUpdated.UTC().Format(time.RFC3339),
		}
		if s.Story.Description != nil {
			row.Description = *s.Story.Description
		}
		rows = append(rows, row)
	}

	if format == "json" {
		return writeJSON(w, rows)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"story_id", "title", "url", "description", "genres", "first_seen", "last_updated"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.StoryID, r.Title, r.URL, r.Description, strings.Join(r.Genres, ";"), r.FirstSeen, r.LastUpdated}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportSnapshots(store storage.Store, w io.Writer, format string) error {
	// Snapshots reference stories by surrogate key; map them back to the
	// stable site id so exported rows join on something meaningful.
	stories, err := store.ListStories(nil)
	if err != nil {
		return fmt.Errorf("failed to list stories: %w", err)
	}
	storyIDs := make(map[int64]string, len(stories))
	for _, s := range stories {
		storyIDs[s.Story.ID] = s.Story.StoryID
	}

	it, err := store.AllSnapshotsInRange(time.Time{}, time.Now().UTC().Add(time.Hour))
	if err != nil {
		return fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer it.Close()

	if format == "json" {
		var rows []snapshotExport
		for it.Next() {
			rows = append(rows, snapshotExportRow(it.Snapshot(), storyIDs))
		}
		if err := it.Err(); err != nil {
			return fmt.Errorf("failed to read snapshots: %w", err)
		}
		return writeJSON(w, rows)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"story_id", "observed_at", "rating", "followers", "pages", "chapters", "views", "favorites", "rating_count"}); err != nil {
		return err
	}
	for it.Next() {
		r := snapshotExportRow(it.Snapshot(), storyIDs)
		record := []string{
			r.StoryID,
			r.ObservedAt,
			strconv.FormatFloat(r.Rating, 'f', 2, 64),
			strconv.FormatInt(r.Followers, 10),
			strconv.FormatInt(r.Pages, 10),
			strconv.FormatInt(r.Chapters, 10),
			strconv.FormatInt(r.Views, 10),
			strconv.FormatInt(r.Favorites, 10),
			strconv.FormatInt(r.RatingCount, 10),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("failed to read snapshots: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func exportSessions(store storage.Store, w io.Writer, format string) error {
	sessions, err := store.ListSessions(0)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	rows := make([]sessionExport, 0, len(sessions))
	for _, s := range sessions {
		row := sessionExport{
			RunID:          s.RunID,
			RunAt:          s.RunAt.UTC().Format(time.RFC3339),
			PagesScraped:   s.PagesScraped,
			StoriesAdded:   s.StoriesAdded,
			StoriesUpdated: s.StoriesUpdated,
			Status:         string(s.Status),
		}
		if s.Notes != nil {
			row.Notes = *s.Notes
		}
		rows = append(rows, row)
	}

	if format == "json" {
		return writeJSON(w, rows)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_id", "run_at", "pages_scraped", "stories_added", "stories_updated", "status", "notes"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.RunID, r.RunAt, strconv.Itoa(r.PagesScraped), strconv.Itoa(r.StoriesAdded), strconv.Itoa(r.StoriesUpdated), r.Status, r.Notes}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func snapshotExportRow(snap *models.Snapshot, storyIDs map[int64]string) snapshotExport {
	return snapshotExport{
		StoryID:     storyIDs[snap.StoryID],
		ObservedAt:  snap.ObservedAt.UTC().Format(time.RFC3339),
		Rating:      snap.Rating,
		Followers:   snap.Followers,
		Pages:       snap.Pages,
		Chapters:    snap.Chapters,
		Views:       snap.Views,
		Favorites:   snap.Favorites,
		RatingCount: snap.RatingCount,
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
