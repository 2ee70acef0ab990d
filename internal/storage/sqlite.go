// ABOUTME: SQLite storage implementation using modernc.org/sqlite (pure Go)
// ABOUTME: Append-only snapshot persistence with story identity dedup and session history

package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/harper/fictrack/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite storage instance.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	// WAL mode so dashboard reads never block the single writer
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS stories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			story_id TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			description TEXT,
			genres TEXT NOT NULL DEFAULT '[]',
			first_seen TIMESTAMP NOT NULL,
			last_updated TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_stories_story_id ON stories(story_id);

		CREATE TABLE IF NOT EXISTS story_snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			story_id INTEGER NOT NULL REFERENCES stories(id) ON DELETE CASCADE,
			observed_at TIMESTAMP NOT NULL,
			rating REAL NOT NULL DEFAULT 0,
			followers INTEGER NOT NULL DEFAULT 0,
			pages INTEGER NOT NULL DEFAULT 0,
			chapters INTEGER NOT NULL DEFAULT 0,
			views INTEGER NOT NULL DEFAULT 0,
			favorites INTEGER NOT NULL DEFAULT 0,
			rating_count INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_story_observed ON story_snapshots(story_id, observed_at);

		CREATE TABLE IF NOT EXISTS scrape_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			run_at TIMESTAMP NOT NULL,
			pages_scraped INTEGER NOT NULL DEFAULT 0,
			stories_added INTEGER NOT NULL DEFAULT 0,
			stories_updated INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			notes TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_scrape_history_run_at ON scrape_history(run_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Story Operations

// UpsertStory looks up by story id and inserts or updates accordingly.
func (s *SQLiteStore) UpsertStory(story *models.Story, observedAt time.Time) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	created, err := upsertStoryTx(tx, story, observedAt)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit upsert: %w", err)
	}
	return created, nil
}

// upsertStoryTx performs the upsert inside an existing transaction.
// An insert that loses to a concurrent writer falls back to the update
// path rather than failing or duplicating the story.
func upsertStoryTx(tx *sql.Tx, story *models.Story, observedAt time.Time) (bool, error) {
	existing, err := getStoryTx(tx, story.StoryID)
	if err != nil && err != ErrStoryNotFound {
		return false, err
	}

	if err == ErrStoryNotFound {
		genres, jsonErr := genresToSQL(story.Genres)
		if jsonErr != nil {
			return false, jsonErr
		}
		result, insErr := tx.Exec(`
			INSERT INTO stories (story_id, title, url, description, genres, first_seen, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(story_id) DO NOTHING
		`, story.StoryID, story.Title, story.URL, story.Description, genres, observedAt, observedAt)
		if insErr != nil {
			return false, fmt.Errorf("insert story: %w", insErr)
		}

		affected, _ := result.RowsAffected()
		if affected == 1 {
			id, idErr := result.LastInsertId()
			if idErr != nil {
				return false, fmt.Errorf("story insert id: %w", idErr)
			}
			story.ID = id
			story.FirstSeen = observedAt
			story.LastUpdated = observedAt
			return true, nil
		}

		// Another writer inserted this story id first; refetch and update
		existing, err = getStoryTx(tx, story.StoryID)
		if err != nil {
			return false, err
		}
	}

	story.ID = existing.ID
	story.FirstSeen = existing.FirstSeen
	story.LastUpdated = existing.LastUpdated

	if storyFieldsEqual(story, existing) {
		return false, nil
	}

	genres, err := genresToSQL(story.Genres)
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec(`
		UPDATE stories SET title = ?, url = ?, description = ?, genres = ?, last_updated = ?
		WHERE id = ?
	`, story.Title, story.URL, story.Description, genres, observedAt, existing.ID); err != nil {
		return false, fmt.Errorf("update story: %w", err)
	}
	story.LastUpdated = observedAt
	return false, nil
}

// storyFieldsEqual compares the mutable fields that trigger an update
func storyFieldsEqual(a, b *models.Story) bool {
	if a.Title != b.Title || a.URL != b.URL {
		return false
	}
	if (a.Description == nil) != (b.Description == nil) {
		return false
	}
	if a.Description != nil && *a.Description != *b.Description {
		return false
	}
	if len(a.Genres) != len(b.Genres) {
		return false
	}
	for i := range a.Genres {
		if a.Genres[i] != b.Genres[i] {
			return false
		}
	}
	return true
}

// GetStory retrieves a story by its stable story id.
func (s *SQLiteStore) GetStory(storyID string) (*models.Story, error) {
	return scanStory(s.db.QueryRow(`
		SELECT id, story_id, title, url, description, genres, first_seen, last_updated
		FROM stories WHERE story_id = ?
	`, storyID))
}

func getStoryTx(tx *sql.Tx, storyID string) (*models.Story, error) {
	return scanStory(tx.QueryRow(`
		SELECT id, story_id, title, url, description, genres, first_seen, last_updated
		FROM stories WHERE story_id = ?
	`, storyID))
}

// ListStories returns stories joined with their latest snapshot.
func (s *SQLiteStore) ListStories(filter *StoryFilter) ([]*StoryWithMetrics, error) {
	query := `
		SELECT s.id, s.story_id, s.title, s.url, s.description, s.genres, s.first_seen, s.last_updated,
			   snap.id, snap.story_id, snap.observed_at, snap.rating, snap.followers,
			   snap.pages, snap.chapters, snap.views, snap.favorites, snap.rating_count
		FROM stories s
		LEFT JOIN story_snapshots snap ON snap.id = (
			SELECT ss.id FROM story_snapshots ss
			WHERE ss.story_id = s.id
			ORDER BY ss.observed_at DESC, ss.id DESC
			LIMIT 1
		)
	`

	var args []interface{}
	if filter != nil && filter.Genre != nil {
		query += ` WHERE s.genres LIKE ?`
		args = append(args, `%"`+*filter.Genre+`"%`)
	}

	sortBy := ""
	if filter != nil {
		sortBy = filter.SortBy
	}
	switch sortBy {
	case "", "followers":
		query += ` ORDER BY COALESCE(snap.followers, 0) DESC, s.title COLLATE NOCASE ASC`
	case "views":
		query += ` ORDER BY COALESCE(snap.views, 0) DESC, s.title COLLATE NOCASE ASC`
	case "rating":
		query += ` ORDER BY COALESCE(snap.rating, 0) DESC, s.title COLLATE NOCASE ASC`
	case "title":
		query += ` ORDER BY s.title COLLATE NOCASE ASC`
	case "first_seen":
		query += ` ORDER BY s.first_seen DESC`
	default:
		return nil, fmt.Errorf("unknown sort key %q", sortBy)
	}

	if filter != nil && filter.Limit != nil {
		query += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stories: %w", err)
	}
	defer rows.Close()

	var out []*StoryWithMetrics
	for rows.Next() {
		row, err := scanStoryWithMetrics(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Snapshot Operations

// RecordSnapshot appends one snapshot row.
func (s *SQLiteStore) RecordSnapshot(snap *models.Snapshot) error {
	result, err := s.db.Exec(`
		INSERT INTO story_snapshots (story_id, observed_at, rating, followers, pages, chapters, views, favorites, rating_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.StoryID, snap.ObservedAt, snap.Rating, snap.Followers, snap.Pages,
		snap.Chapters, snap.Views, snap.Favorites, snap.RatingCount)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot insert id: %w", err)
	}
	snap.ID = id
	return nil
}

// UpsertStoryWithSnapshot writes the story and its snapshot in one
// transaction.
func (s *SQLiteStore) UpsertStoryWithSnapshot(story *models.Story, metrics models.Metrics, observedAt time.Time) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	created, err := upsertStoryTx(tx, story, observedAt)
	if err != nil {
		return false, err
	}

	if _, err := tx.Exec(`
		INSERT INTO story_snapshots (story_id, observed_at, rating, followers, pages, chapters, views, favorites, rating_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, story.ID, observedAt, metrics.Rating, metrics.Followers, metrics.Pages,
		metrics.Chapters, metrics.Views, metrics.Favorites, metrics.RatingCount); err != nil {
		return false, fmt.Errorf("insert snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit story with snapshot: %w", err)
	}
	return created, nil
}

// LatestSnapshot returns the most recent snapshot for the story id,
// or (nil, nil) when there is none.
func (s *SQLiteStore) LatestSnapshot(storyID string) (*models.Snapshot, error) {
	row := s.db.QueryRow(`
		SELECT ss.id, ss.story_id, ss.observed_at, ss.rating, ss.followers,
			   ss.pages, ss.chapters, ss.views, ss.favorites, ss.rating_count
		FROM story_snapshots ss
		JOIN stories s ON s.id = ss.story_id
		WHERE s.story_id = ?
		ORDER BY ss.observed_at DESC, ss.id DESC
		LIMIT 1
	`, storyID)

	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// SnapshotsInRange iterates one story's snapshots in
// from <= observed_at < to, oldest first.
func (s *SQLiteStore) SnapshotsInRange(storyID string, from, to time.Time) (*SnapshotIter, error) {
	rows, err := s.db.Query(`
		SELECT ss.id, ss.story_id, ss.observed_at, ss.rating, ss.followers,
			   ss.pages, ss.chapters, ss.views, ss.favorites, ss.rating_count
		FROM story_snapshots ss
		JOIN stories s ON s.id = ss.story_id
		WHERE s.story_id = ? AND ss.observed_at >= ? AND ss.observed_at < ?
		ORDER BY ss.observed_at ASC, ss.id ASC
	`, storyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	return &SnapshotIter{rows: rows}, nil
}

// AllSnapshotsInRange iterates every story's snapshots in the window,
// grouped by story.
func (s *SQLiteStore) AllSnapshotsInRange(from, to time.Time) (*SnapshotIter, error) {
	rows, err := s.db.Query(`
		SELECT id, story_id, observed_at, rating, followers,
			   pages, chapters, views, favorites, rating_count
		FROM story_snapshots
		WHERE observed_at >= ? AND observed_at < ?
		ORDER BY story_id ASC, observed_at ASC, id ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	return &SnapshotIter{rows: rows}, nil
}

// Session Operations

// LogSession inserts one scrape history row.
func (s *SQLiteStore) LogSession(session *models.ScrapeSession) error {
	result, err := s.db.Exec(`
		INSERT INTO scrape_history (run_id, run_at, pages_scraped, stories_added, stories_updated, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, session.RunID, session.RunAt, session.PagesScraped,
		session.StoriesAdded, session.StoriesUpdated, string(session.Status), session.Notes)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("session insert id: %w", err)
	}
	session.ID = id
	return nil
}

// ListSessions returns scrape history rows, newest first.
func (s *SQLiteStore) ListSessions(limit int) ([]*models.ScrapeSession, error) {
	query := `
		SELECT id, run_id, run_at, pages_scraped, stories_added, stories_updated, status, notes
		FROM scrape_history
		ORDER BY run_at DESC, id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.ScrapeSession
	for rows.Next() {
		var sess models.ScrapeSession
		var status string
		if err := rows.Scan(&sess.ID, &sess.RunID, &sess.RunAt, &sess.PagesScraped,
			&sess.StoriesAdded, &sess.StoriesUpdated, &status, &sess.Notes); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.Status = models.SessionStatus(status)
		sessions = append(sessions, &sess)
	}
	return sessions, rows.Err()
}

// Statistics

// Stats summarizes the database.
func (s *SQLiteStore) Stats() (*DBStats, error) {
	var stats DBStats

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM stories`).Scan(&stats.TotalStories); err != nil {
		return nil, fmt.Errorf("count stories: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM story_snapshots`).Scan(&stats.TotalSnapshots); err != nil {
		return nil, fmt.Errorf("count snapshots: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM scrape_history`).Scan(&stats.TotalSessions); err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	if err := s.db.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT story_id FROM story_snapshots GROUP BY story_id HAVING COUNT(*) > 1
		)
	`).Scan(&stats.StoriesWithHistory); err != nil {
		return nil, fmt.Errorf("count stories with history: %w", err)
	}

	var first, last sql.NullTime
	if err := s.db.QueryRow(`SELECT MIN(observed_at), MAX(observed_at) FROM story_snapshots`).Scan(&first, &last); err != nil {
		return nil, fmt.Errorf("observation span: %w", err)
	}
	if first.Valid {
		stats.FirstObservation = &first.Time
	}
	if last.Valid {
		stats.LastObservation = &last.Time
	}

	genres, err := s.GenreCounts()
	if err != nil {
		return nil, err
	}
	stats.DistinctGenres = len(genres)

	return &stats, nil
}

// GenreCounts returns stories-per-genre, most common first.
func (s *SQLiteStore) GenreCounts() ([]GenreCount, error) {
	rows, err := s.db.Query(`SELECT genres FROM stories`)
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan genres: %w", err)
		}
		genres, err := genresFromSQL(raw)
		if err != nil {
			return nil, err
		}
		for _, g := range genres {
			counts[g]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		out = append(out, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	return out, nil
}

// Maintenance

// Compact performs database maintenance (VACUUM).
func (s *SQLiteStore) Compact() error {
	if _, err := s.db.Exec("VACUUM"); err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}
	return nil
}

// Helper functions

func scanStory(row *sql.Row) (*models.Story, error) {
	var story models.Story
	var genres string
	if err := row.Scan(
		&story.ID, &story.StoryID, &story.Title, &story.URL,
		&story.Description, &genres, &story.FirstSeen, &story.LastUpdated,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("scan story: %w", err)
	}
	parsed, err := genresFromSQL(genres)
	if err != nil {
		return nil, err
	}
	story.Genres = parsed
	return &story, nil
}

func scanStoryWithMetrics(rows *sql.Rows) (*StoryWithMetrics, error) {
	var row StoryWithMetrics
	var genres string
	var snapID, snapStoryID sql.NullInt64
	var observedAt sql.NullTime
	var rating sql.NullFloat64
	var followers, pages, chapters, views, favorites, ratingCount sql.NullInt64

	if err := rows.Scan(
		&row.Story.ID, &row.Story.StoryID, &row.Story.Title, &row.Story.URL,
		&row.Story.Description, &genres, &row.Story.FirstSeen, &row.Story.LastUpdated,
		&snapID, &snapStoryID, &observedAt, &rating, &followers,
		&pages, &chapters, &views, &favorites, &ratingCount,
	); err != nil {
		return nil, fmt.Errorf("scan story row: %w", err)
	}

	parsed, err := genresFromSQL(genres)
	if err != nil {
		return nil, err
	}
	row.Story.Genres = parsed

	if snapID.Valid {
		row.Latest = &models.Snapshot{
			ID:         snapID.Int64,
			StoryID:    snapStoryID.Int64,
			ObservedAt: observedAt.Time,
			Metrics: models.Metrics{
				Rating:      rating.Float64,
				Followers:   followers.Int64,
				Pages:       pages.Int64,
				Chapters:    chapters.Int64,
				Views:       views.Int64,
				Favorites:   favorites.Int64,
				RatingCount: ratingCount.Int64,
			},
		}
	}
	return &row, nil
}

func scanSnapshot(row *sql.Row) (*models.Snapshot, error) {
	var snap models.Snapshot
	err := row.Scan(
		&snap.ID, &snap.StoryID, &snap.ObservedAt, &snap.Rating, &snap.Followers,
		&snap.Pages, &snap.Chapters, &snap.Views, &snap.Favorites, &snap.RatingCount,
	)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func scanSnapshotFromRows(rows *sql.Rows) (*models.Snapshot, error) {
	var snap models.Snapshot
	err := rows.Scan(
		&snap.ID, &snap.StoryID, &snap.ObservedAt, &snap.Rating, &snap.Followers,
		&snap.Pages, &snap.Chapters, &snap.Views, &snap.Favorites, &snap.RatingCount,
	)
	if err != nil {
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}
	return &snap, nil
}

func genresToSQL(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	data, err := json.Marshal(genres)
	if err != nil {
		return "", fmt.Errorf("encode genres: %w", err)
	}
	return string(data), nil
}

func genresFromSQL(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var genres []string
	if err := json.Unmarshal([]byte(raw), &genres); err != nil {
		return nil, fmt.Errorf("decode genres %q: %w", raw, err)
	}
	if len(genres) == 0 {
		return nil, nil
	}
	return genres, nil
}

// GetDefaultDBPath returns the default database path.
func GetDefaultDBPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "./fictrack.db"
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "fictrack", "fictrack.db")
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
