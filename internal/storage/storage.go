// ABOUTME: Storage interface and types for story metric persistence
// ABOUTME: Defines the contract for story, snapshot, and session operations

package storage

import (
	"errors"
	"time"

	"github.com/harper/fictrack/internal/models"
)

// ErrStoryNotFound is returned by lookups for an untracked story id
var ErrStoryNotFound = errors.New("story not found")

// StoryFilter specifies criteria for listing stories.
type StoryFilter struct {
	Genre  *string // Only stories carrying this genre tag
	SortBy string  // followers | views | rating | title | first_seen (default followers)
	Limit  *int
}

// StoryWithMetrics pairs a story with its latest snapshot for list views.
type StoryWithMetrics struct {
	Story  models.Story
	Latest *models.Snapshot // nil when the story has no snapshots yet
}

// GenreCount is one genre tag with the number of stories carrying it.
type GenreCount struct {
	Genre string
	Count int
}

// DBStats summarizes the whole database.
type DBStats struct {
	TotalStories       int
	TotalSnapshots     int
	TotalSessions      int
	StoriesWithHistory int // stories with more than one snapshot
	DistinctGenres     int
	FirstObservation   *time.Time
	LastObservation    *time.Time
}

// Store defines the storage interface for story metric data.
type Store interface {
	// Close closes the store and releases resources.
	Close() error

	// Story operations

	// UpsertStory looks the story up by its stable story id. Absent, it
	// inserts with first_seen = observedAt; present, it updates title,
	// url, description, genres, and last_updated only when some field
	// differs. The surrogate key and stored first_seen are written back
	// to story. Returns true when a new row was created.
	UpsertStory(story *models.Story, observedAt time.Time) (bool, error)

	// GetStory retrieves a story by its stable story id.
	// Returns ErrStoryNotFound when untracked.
	GetStory(storyID string) (*models.Story, error)

	// ListStories returns stories joined with their latest snapshot,
	// filtered and sorted per filter. A nil filter lists everything
	// sorted by latest follower count.
	ListStories(filter *StoryFilter) ([]*StoryWithMetrics, error)

	// Snapshot operations

	// RecordSnapshot appends a new snapshot row. History is never
	// updated or deleted, and no dedup happens against the previous
	// snapshot. The insertion id is written back to snap.
	RecordSnapshot(snap *models.Snapshot) error

	// UpsertStoryWithSnapshot runs UpsertStory plus RecordSnapshot in
	// one transaction so readers never observe a snapshot without its
	// committed story.
	UpsertStoryWithSnapshot(story *models.Story, metrics models.Metrics, observedAt time.Time) (bool, error)

	// LatestSnapshot returns the story's most recent snapshot by
	// observed_at, ties broken by insertion order. Returns (nil, nil)
	// when the story is unknown or has no snapshots.
	LatestSnapshot(storyID string) (*models.Snapshot, error)

	// SnapshotsInRange iterates the story's snapshots with
	// from <= observed_at < to, ordered by observed_at then insertion
	// order. Restart by calling again.
	SnapshotsInRange(storyID string, from, to time.Time) (*SnapshotIter, error)

	// AllSnapshotsInRange iterates every story's snapshots in the
	// window, grouped by story and ordered by observed_at within each.
	AllSnapshotsInRange(from, to time.Time) (*SnapshotIter, error)

	// Session operations

	// LogSession inserts one scrape history row. Callers treat a
	// failure here as non-fatal for the run.
	LogSession(session *models.ScrapeSession) error

	// ListSessions returns scrape history rows, newest first.
	ListSessions(limit int) ([]*models.ScrapeSession, error)

	// Statistics

	// Stats summarizes the database.
	Stats() (*DBStats, error)

	// GenreCounts returns stories-per-genre, most common first.
	GenreCounts() ([]GenreCount, error)

	// Maintenance

	// Compact performs database maintenance (VACUUM).
	Compact() error
}
