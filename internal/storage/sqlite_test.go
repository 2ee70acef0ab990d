// ABOUTME: Tests for SQLite storage implementation
// ABOUTME: Covers story upserts, snapshot history, range iteration, and session logging

package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/fictrack/internal/models"
)

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	// Verify database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestUpsertStory_InsertThenUpdate(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	day0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	day1 := day0.Add(24 * time.Hour)

	story := models.NewStory("21220", "Mother of Learning", "https://www.royalroad.com/fiction/21220", day0)
	story.Genres = []string{"Fantasy", "Mystery"}

	created, err := store.UpsertStory(story, day0)
	if err != nil {
		t.Fatalf("UpsertStory failed: %v", err)
	}
	if !created {
		t.Error("expected first upsert to create the story")
	}
	if story.ID == 0 {
		t.Error("expected surrogate ID to be assigned")
	}
	firstID := story.ID

	// Second observation with a changed title must update in place
	renamed := models.NewStory("21220", "Mother of Learning (Complete)", "https://www.royalroad.com/fiction/21220", day1)
	renamed.Genres = []string{"Fantasy", "Mystery"}

	created, err = store.UpsertStory(renamed, day1)
	if err != nil {
		t.Fatalf("UpsertStory update failed: %v", err)
	}
	if created {
		t.Error("expected second upsert to update, not create")
	}
	if renamed.ID != firstID {
		t.Errorf("surrogate ID changed: got %d, want %d", renamed.ID, firstID)
	}

	got, err := store.GetStory("21220")
	if err != nil {
		t.Fatalf("GetStory failed: %v", err)
	}
	if got.Title != "Mother of Learning (Complete)" {
		t.Errorf("Title not updated: got %q", got.Title)
	}
	if !got.FirstSeen.Equal(day0) {
		t.Errorf("FirstSeen changed: got %v, want %v", got.FirstSeen, day0)
	}
	if !got.LastUpdated.Equal(day1) {
		t.Errorf("LastUpdated not refreshed: got %v, want %v", got.LastUpdated, day1)
	}

	// Still exactly one row for this story id
	stories, err := store.ListStories(nil)
	if err != nil {
		t.Fatalf("ListStories failed: %v", err)
	}
	if len(stories) != 1 {
		t.Errorf("expected 1 story, got %d", len(stories))
	}
}

func TestUpsertStory_UnchangedSkipsWrite(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	day0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	day1 := day0.Add(24 * time.Hour)

	story := models.NewStory("8894", "Everybody Loves Large Chests", "https://www.royalroad.com/fiction/8894", day0)
	story.Genres = []string{"Comedy"}
	if _, err := store.UpsertStory(story, day0); err != nil {
		t.Fatalf("UpsertStory failed: %v", err)
	}

	// Identical fields a day later: no update, last_updated untouched
	same := models.NewStory("8894", "Everybody Loves Large Chests", "https://www.royalroad.com/fiction/8894", day1)
	same.Genres = []string{"Comedy"}
	created, err := store.UpsertStory(same, day1)
	if err != nil {
		t.Fatalf("UpsertStory failed: %v", err)
	}
	if created {
		t.Error("expected update path, not create")
	}

	got, err := store.GetStory("8894")
	if err != nil {
		t.Fatalf("GetStory failed: %v", err)
	}
	if !got.LastUpdated.Equal(day0) {
		t.Errorf("LastUpdated moved without a field change: got %v, want %v", got.LastUpdated, day0)
	}
}

func TestGetStory_NotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	_, err := store.GetStory("99999")
	if err != ErrStoryNotFound {
		t.Errorf("expected ErrStoryNotFound, got %v", err)
	}
}

func TestUpsertStoryWithSnapshot(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	day0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	day1 := day0.Add(24 * time.Hour)

	story := models.NewStory("abc", "Test Story", "https://www.royalroad.com/fiction/abc", day0)
	if _, err := store.UpsertStoryWithSnapshot(story, models.Metrics{Views: 100}, day0); err != nil {
		t.Fatalf("UpsertStoryWithSnapshot failed: %v", err)
	}

	again := models.NewStory("abc", "Test Story", "https://www.royalroad.com/fiction/abc", day1)
	if _, err := store.UpsertStoryWithSnapshot(again, models.Metrics{Views: 150}, day1); err != nil {
		t.Fatalf("UpsertStoryWithSnapshot failed: %v", err)
	}

	if again.ID != story.ID {
		t.Errorf("observations split across story rows: %d vs %d", story.ID, again.ID)
	}

	it, err := store.SnapshotsInRange("abc", day0, day1.Add(time.Hour))
	if err != nil {
		t.Fatalf("SnapshotsInRange failed: %v", err)
	}
	snaps, err := it.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].Views != 100 || snaps[1].Views != 150 {
		t.Errorf("snapshots out of order: views %d then %d", snaps[0].Views, snaps[1].Views)
	}
}

func TestRecordSnapshot_AppendOnly(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	day0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	story := models.NewStory("21220", "Mother of Learning", "https://www.royalroad.com/fiction/21220", day0)
	if _, err := store.UpsertStory(story, day0); err != nil {
		t.Fatalf("UpsertStory failed: %v", err)
	}

	// Five observations, five rows
	for i := 0; i < 5; i++ {
		snap := &models.Snapshot{
			StoryID:    story.ID,
			ObservedAt: day0.Add(time.Duration(i) * 24 * time.Hour),
			Metrics:    models.Metrics{Followers: int64(1000 + i*10)},
		}
		if err := store.RecordSnapshot(snap); err != nil {
			t.Fatalf("RecordSnapshot failed: %v", err)
		}
		if snap.ID == 0 {
			t.Error("expected snapshot ID to be assigned")
		}
	}

	it, err := store.SnapshotsInRange("21220", day0, day0.Add(10*24*time.Hour))
	if err != nil {
		t.Fatalf("SnapshotsInRange failed: %v", err)
	}
	snaps, err := it.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(snaps) != 5 {
		t.Fatalf("expected 5 snapshots, got %d", len(snaps))
	}
	for i := 1; i < len(snaps); i++ {
		if snaps[i].ObservedAt.Before(snaps[i-1].ObservedAt) {
			t.Error("snapshots not in ascending observation order")
		}
	}
}

func TestLatestSnapshot(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	day0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	story := models.NewStory("21220", "Mother of Learning", "https://www.royalroad.com/fiction/21220", day0)
	if _, err := store.UpsertStory(story, day0); err != nil {
		t.Fatalf("UpsertStory failed: %v", err)
	}

	// No snapshots yet
	snap, err := store.LatestSnapshot("21220")
	if err != nil {
		t.Fatalf("LatestSnapshot failed: %v", err)
	}
	if snap != nil {
		t.Errorf("expected nil snapshot before any observation, got %+v", snap)
	}

	t1 := day0
	t2 := day0.Add(24 * time.Hour)
	for _, obs := range []struct {
		at    time.Time
		views int64
	}{{t1, 100}, {t2, 150}} {
		s := &models.Snapshot{StoryID: story.ID, ObservedAt: obs.at, Metrics: models.Metrics{Views: obs.views}}
		if err := store.RecordSnapshot(s); err != nil {
			t.Fatalf("RecordSnapshot failed: %v", err)
		}
	}

	snap, err = store.LatestSnapshot("21220")
	if err != nil {
		t.Fatalf("LatestSnapshot failed: %v", err)
	}
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	if snap.Views != 150 {
		t.Errorf("expected latest views 150, got %d", snap.Views)
	}
	if !snap.ObservedAt.Equal(t2) {
		t.Errorf("expected latest at %v, got %v", t2, snap.ObservedAt)
	}
}

func TestLatestSnapshot_TieBreaksByInsertion(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	story := models.NewStory("21220", "Mother of Learning", "https://www.royalroad.com/fiction/21220", at)
	if _, err := store.UpsertStory(story, at); err != nil {
		t.Fatalf("UpsertStory failed: %v", err)
	}

	// Two snapshots at the identical instant: last insert wins
	for _, views := range []int64{100, 200} {
		s := &models.Snapshot{StoryID: story.ID, ObservedAt: at, Metrics: models.Metrics{Views: views}}
		if err := store.RecordSnapshot(s); err != nil {
			t.Fatalf("RecordSnapshot failed: %v", err)
		}
	}

	snap, err := store.LatestSnapshot("21220")
	if err != nil {
		t.Fatalf("LatestSnapshot failed: %v", err)
	}
	if snap == nil || snap.Views != 200 {
		t.Errorf("expected tie to resolve to the later insert (views 200), got %+v", snap)
	}
}

func TestSnapshotsInRange_HalfOpen(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	story := models.NewStory("21220", "Mother of Learning", "https://www.royalroad.com/fiction/21220", day0)
	if _, err := store.UpsertStory(story, day0); err != nil {
		t.Fatalf("UpsertStory failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		s := &models.Snapshot{StoryID: story.ID, ObservedAt: day0.Add(time.Duration(i) * 24 * time.Hour)}
		if err := store.RecordSnapshot(s); err != nil {
			t.Fatalf("RecordSnapshot failed: %v", err)
		}
	}

	// [day0, day2) includes day0 and day1 but not day2
	it, err := store.SnapshotsInRange("21220", day0, day0.Add(2*24*time.Hour))
	if err != nil {
		t.Fatalf("SnapshotsInRange failed: %v", err)
	}
	snaps, err := it.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Errorf("expected 2 snapshots in half-open range, got %d", len(snaps))
	}
}

func TestSnapshotsInRange_Empty(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	story := models.NewStory("21220", "Mother of Learning", "https://www.royalroad.com/fiction/21220", day0)
	if _, err := store.UpsertStory(story, day0); err != nil {
		t.Fatalf("UpsertStory failed: %v", err)
	}

	// Window with no observations iterates cleanly with zero results
	it, err := store.SnapshotsInRange("21220", day0.Add(-48*time.Hour), day0.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("SnapshotsInRange failed: %v", err)
	}
	defer it.Close()

	count := 0
	for it.Next() {
		count++
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iteration error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty iteration, got %d snapshots", count)
	}

	// A fresh call re-runs the query
	it2, err := store.SnapshotsInRange("21220", day0.Add(-48*time.Hour), day0.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("second SnapshotsInRange failed: %v", err)
	}
	snaps, err := it2.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("expected empty second iteration, got %d", len(snaps))
	}
}

func TestAllSnapshotsInRange(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{"100", "200"} {
		story := models.NewStory(id, "Story "+id, "https://www.royalroad.com/fiction/"+id, day0)
		if _, err := store.UpsertStory(story, day0); err != nil {
			t.Fatalf("UpsertStory failed: %v", err)
		}
		for i := 0; i < 2; i++ {
			s := &models.Snapshot{StoryID: story.ID, ObservedAt: day0.Add(time.Duration(i) * 24 * time.Hour)}
			if err := store.RecordSnapshot(s); err != nil {
				t.Fatalf("RecordSnapshot failed: %v", err)
			}
		}
	}

	it, err := store.AllSnapshotsInRange(day0, day0.Add(7*24*time.Hour))
	if err != nil {
		t.Fatalf("AllSnapshotsInRange failed: %v", err)
	}
	snaps, err := it.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(snaps) != 4 {
		t.Fatalf("expected 4 snapshots, got %d", len(snaps))
	}

	// Grouped by story, ascending inside each group
	for i := 1; i < len(snaps); i++ {
		if snaps[i].StoryID == snaps[i-1].StoryID && snaps[i].ObservedAt.Before(snaps[i-1].ObservedAt) {
			t.Error("snapshots within a story not in ascending order")
		}
	}
}

func TestListStories(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	stories := []struct {
		id        string
		title     string
		genres    []string
		followers int64
	}{
		{"1", "Alpha", []string{"Fantasy"}, 500},
		{"2", "Beta", []string{"Sci-fi"}, 1500},
		{"3", "Gamma", []string{"Fantasy", "Adventure"}, 1000},
	}

	for _, s := range stories {
		story := models.NewStory(s.id, s.title, "https://www.royalroad.com/fiction/"+s.id, day0)
		story.Genres = s.genres
		if _, err := store.UpsertStoryWithSnapshot(story, models.Metrics{Followers: s.followers}, day0); err != nil {
			t.Fatalf("UpsertStoryWithSnapshot failed: %v", err)
		}
	}

	// Default sort: followers descending
	result, err := store.ListStories(nil)
	if err != nil {
		t.Fatalf("ListStories failed: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 stories, got %d", len(result))
	}
	if result[0].Story.Title != "Beta" || result[2].Story.Title != "Alpha" {
		t.Errorf("wrong follower order: got %q first, %q last", result[0].Story.Title, result[2].Story.Title)
	}
	if result[0].Latest == nil || result[0].Latest.Followers != 1500 {
		t.Errorf("latest snapshot not joined: %+v", result[0].Latest)
	}

	// Genre filter
	genre := "Fantasy"
	result, err = store.ListStories(&StoryFilter{Genre: &genre})
	if err != nil {
		t.Fatalf("ListStories genre filter failed: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("expected 2 Fantasy stories, got %d", len(result))
	}

	// Limit
	limit := 1
	result, err = store.ListStories(&StoryFilter{Limit: &limit})
	if err != nil {
		t.Fatalf("ListStories limit failed: %v", err)
	}
	if len(result) != 1 {
		t.Errorf("expected 1 story with limit, got %d", len(result))
	}

	// Title sort
	result, err = store.ListStories(&StoryFilter{SortBy: "title"})
	if err != nil {
		t.Fatalf("ListStories title sort failed: %v", err)
	}
	if result[0].Story.Title != "Alpha" {
		t.Errorf("expected Alpha first by title, got %q", result[0].Story.Title)
	}

	// Unknown sort key is rejected
	if _, err := store.ListStories(&StoryFilter{SortBy: "bogus"}); err == nil {
		t.Error("expected error for unknown sort key")
	}
}

func TestListStories_NoSnapshots(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	story := models.NewStory("1", "Alpha", "https://www.royalroad.com/fiction/1", day0)
	if _, err := store.UpsertStory(story, day0); err != nil {
		t.Fatalf("UpsertStory failed: %v", err)
	}

	result, err := store.ListStories(nil)
	if err != nil {
		t.Fatalf("ListStories failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 story, got %d", len(result))
	}
	if result[0].Latest != nil {
		t.Errorf("expected nil Latest for story without snapshots, got %+v", result[0].Latest)
	}
}

func TestLogSessionAndList(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	now := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		session := models.NewScrapeSession(now.Add(time.Duration(i) * time.Hour))
		session.PagesScraped = i + 1
		session.StoriesAdded = 10
		session.StoriesUpdated = 5
		session.Finalize(models.SessionSuccess, "")
		if err := store.LogSession(session); err != nil {
			t.Fatalf("LogSession failed: %v", err)
		}
		if session.ID == 0 {
			t.Error("expected session ID to be assigned")
		}
	}

	sessions, err := store.ListSessions(0)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	// Newest first
	if sessions[0].PagesScraped != 3 {
		t.Errorf("expected newest session first, got pages %d", sessions[0].PagesScraped)
	}

	sessions, err = store.ListSessions(2)
	if err != nil {
		t.Fatalf("ListSessions limit failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("expected 2 sessions with limit, got %d", len(sessions))
	}
}

func TestLogSession_FailedWithNotes(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	now := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	notes := "fetch trending: status 503"
	session := models.NewScrapeSession(now)
	session.Finalize(models.SessionFailed, notes)
	if err := store.LogSession(session); err != nil {
		t.Fatalf("LogSession failed: %v", err)
	}

	sessions, err := store.ListSessions(1)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].Status != models.SessionFailed {
		t.Errorf("Status: got %q, want %q", sessions[0].Status, models.SessionFailed)
	}
	if sessions[0].Notes == nil || *sessions[0].Notes != notes {
		t.Errorf("Notes: got %v, want %q", sessions[0].Notes, notes)
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	day1 := day0.Add(24 * time.Hour)

	// Story with two observations
	tracked := models.NewStory("1", "Tracked", "https://www.royalroad.com/fiction/1", day0)
	tracked.Genres = []string{"Fantasy"}
	if _, err := store.UpsertStoryWithSnapshot(tracked, models.Metrics{Views: 100}, day0); err != nil {
		t.Fatalf("UpsertStoryWithSnapshot failed: %v", err)
	}
	again := models.NewStory("1", "Tracked", "https://www.royalroad.com/fiction/1", day1)
	again.Genres = []string{"Fantasy"}
	if _, err := store.UpsertStoryWithSnapshot(again, models.Metrics{Views: 150}, day1); err != nil {
		t.Fatalf("UpsertStoryWithSnapshot failed: %v", err)
	}

	// Story observed once
	single := models.NewStory("2", "Single", "https://www.royalroad.com/fiction/2", day1)
	single.Genres = []string{"Sci-fi", "Adventure"}
	if _, err := store.UpsertStoryWithSnapshot(single, models.Metrics{Views: 50}, day1); err != nil {
		t.Fatalf("UpsertStoryWithSnapshot failed: %v", err)
	}

	session := models.NewScrapeSession(day1)
	session.Finalize(models.SessionSuccess, "")
	if err := store.LogSession(session); err != nil {
		t.Fatalf("LogSession failed: %v", err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalStories != 2 {
		t.Errorf("TotalStories: got %d, want 2", stats.TotalStories)
	}
	if stats.TotalSnapshots != 3 {
		t.Errorf("TotalSnapshots: got %d, want 3", stats.TotalSnapshots)
	}
	if stats.TotalSessions != 1 {
		t.Errorf("TotalSessions: got %d, want 1", stats.TotalSessions)
	}
	if stats.StoriesWithHistory != 1 {
		t.Errorf("StoriesWithHistory: got %d, want 1", stats.StoriesWithHistory)
	}
	if stats.DistinctGenres != 3 {
		t.Errorf("DistinctGenres: got %d, want 3", stats.DistinctGenres)
	}
	if stats.FirstObservation == nil || !stats.FirstObservation.Equal(day0) {
		t.Errorf("FirstObservation: got %v, want %v", stats.FirstObservation, day0)
	}
	if stats.LastObservation == nil || !stats.LastObservation.Equal(day1) {
		t.Errorf("LastObservation: got %v, want %v", stats.LastObservation, day1)
	}
}

func TestGenreCounts(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	genres := [][]string{
		{"Fantasy", "Adventure"},
		{"Fantasy"},
		{"Sci-fi"},
	}
	for i, g := range genres {
		story := models.NewStory(string(rune('1'+i)), "Story", "https://www.royalroad.com/fiction/x", day0)
		story.Genres = g
		if _, err := store.UpsertStory(story, day0); err != nil {
			t.Fatalf("UpsertStory failed: %v", err)
		}
	}

	counts, err := store.GenreCounts()
	if err != nil {
		t.Fatalf("GenreCounts failed: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("expected 3 genres, got %d", len(counts))
	}
	if counts[0].Genre != "Fantasy" || counts[0].Count != 2 {
		t.Errorf("expected Fantasy x2 first, got %s x%d", counts[0].Genre, counts[0].Count)
	}
}

func TestCompact(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	// Just verify it doesn't error
	if err := store.Compact(); err != nil {
		t.Fatalf("Compact failed: %v", err)
	}
}

func TestGetDefaultDBPath(t *testing.T) {
	path := GetDefaultDBPath()
	if path == "" {
		t.Error("expected non-empty default DB path")
	}
}

func TestGetDefaultDBPath_WithXDGDataHome(t *testing.T) {
	// Save original value
	original := os.Getenv("XDG_DATA_HOME")
	defer os.Setenv("XDG_DATA_HOME", original)

	tmpDir := t.TempDir()
	os.Setenv("XDG_DATA_HOME", tmpDir)

	path := GetDefaultDBPath()
	if path != filepath.Join(tmpDir, "fictrack", "fictrack.db") {
		t.Errorf("unexpected path with XDG_DATA_HOME set: %q", path)
	}
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}
