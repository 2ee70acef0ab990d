// ABOUTME: JSON API handlers and response shapes
// ABOUTME: Maps storage and analysis results onto stable wire types

package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harper/fictrack/internal/analysis"
	"github.com/harper/fictrack/internal/config"
	"github.com/harper/fictrack/internal/models"
	"github.com/harper/fictrack/internal/report"
	"github.com/harper/fictrack/internal/storage"
	"github.com/harper/fictrack/internal/timeutil"
)

//go:embed static/index.html
var indexHTML []byte

// Wire types

type storyJSON struct {
	StoryID     string        `json:"story_id"`
	Title       string        `json:"title"`
	URL         string        `json:"url"`
	Description *string       `json:"description,omitempty"`
	Genres      []string      `json:"genres"`
	FirstSeen   time.Time     `json:"first_seen"`
	LastUpdated time.Time     `json:"last_updated"`
	Latest      *snapshotJSON `json:"latest,omitempty"`
}

type snapshotJSON struct {
	ObservedAt  time.Time `json:"observed_at"`
	Rating      float64   `json:"rating"`
	Followers   int64     `json:"followers"`
	Pages       int64     `json:"pages"`
	Chapters    int64     `json:"chapters"`
	Views       int64     `json:"views"`
	Favorites   int64     `json:"favorites"`
	RatingCount int64     `json:"rating_count"`
}

type sessionJSON struct {
	RunID          string    `json:"run_id"`
	RunAt          time.Time `json:"run_at"`
	PagesScraped   int       `json:"pages_scraped"`
	StoriesAdded   int       `json:"stories_added"`
	StoriesUpdated int       `json:"stories_updated"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
}

type moverJSON struct {
	StoryID string  `json:"story_id"`
	Title   string  `json:"title"`
	Metric  string  `json:"metric"`
	PerDay  float64 `json:"per_day"`
}

type genreCountJSON struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type statsJSON struct {
	TotalStories       int        `json:"total_stories"`
	TotalSnapshots     int        `json:"total_snapshots"`
	TotalSessions      int        `json:"total_sessions"`
	StoriesWithHistory int        `json:"stories_with_history"`
	DistinctGenres     int        `json:"distinct_genres"`
	FirstObservation   *time.Time `json:"first_observation,omitempty"`
	LastObservation    *time.Time `json:"last_observation,omitempty"`
}

func toStoryJSON(story *models.Story, latest *models.Snapshot) storyJSON {
	out := storyJSON{
		StoryID:     story.StoryID,
		Title:       story.Title,
		URL:         story.URL,
		Description: story.Description,
		Genres:      story.Genres,
		FirstSeen:   story.FirstSeen,
		LastUpdated: story.LastUpdated,
	}
	if out.Genres == nil {
		out.Genres = []string{}
	}
	if latest != nil {
		snap := toSnapshotJSON(latest)
		out.Latest = &snap
	}
	return out
}

func toSnapshotJSON(snap *models.Snapshot) snapshotJSON {
	return snapshotJSON{
		ObservedAt:  snap.ObservedAt,
		Rating:      snap.Rating,
		Followers:   snap.Followers,
		Pages:       snap.Pages,
		Chapters:    snap.Chapters,
		Views:       snap.Views,
		Favorites:   snap.Favorites,
		RatingCount: snap.RatingCount,
	}
}

func toSessionJSON(s *models.ScrapeSession) sessionJSON {
	return sessionJSON{
		RunID:          s.RunID,
		RunAt:          s.RunAt,
		PagesScraped:   s.PagesScraped,
		StoriesAdded:   s.StoriesAdded,
		StoriesUpdated: s.StoriesUpdated,
		Status:         string(s.Status),
		Notes:          s.Notes,
	}
}

// Handlers

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	filter := &storage.StoryFilter{}
	if genre := r.URL.Query().Get("genre"); genre != "" {
		filter.Genre = &genre
	}
	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		filter.SortBy = sortBy
	}
	limit := queryInt(r, "limit", config.DefaultListLimit)
	filter.Limit = &limit

	rows, err := s.store.ListStories(filter)
	if err != nil {
		s.logger.Error("list stories", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]storyJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, toStoryJSON(&row.Story, row.Latest))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetStory(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyID")

	story, err := s.store.GetStory(storyID)
	if err != nil {
		if errors.Is(err, storage.ErrStoryNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		s.logger.Error("get story", "story_id", storyID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	latest, err := s.store.LatestSnapshot(storyID)
	if err != nil {
		s.logger.Error("latest snapshot", "story_id", storyID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, toStoryJSON(story, latest))
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyID")
	days := queryInt(r, "days", config.DefaultHistoryDays)

	// Explicit from/to bounds override the trailing-days window
	now := time.Now().UTC()
	from, to := now.AddDate(0, 0, -days), now
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := timeutil.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := timeutil.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		to = t
	}

	it, err := s.store.SnapshotsInRange(storyID, from, to)
	if err != nil {
		s.logger.Error("snapshot history", "story_id", storyID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	snaps, err := it.Collect()
	if err != nil {
		s.logger.Error("snapshot history", "story_id", storyID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]snapshotJSON, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, toSnapshotJSON(snap))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStoryGrowth(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyID")
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = "views"
	}
	days := queryInt(r, "days", config.DefaultGrowthDays)

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -days)
	it, err := s.store.SnapshotsInRange(storyID, from, now)
	if err != nil {
		s.logger.Error("growth history", "story_id", storyID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result, err := analysis.GrowthRates(it, metric, from, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTopGrowth(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", config.DefaultGrowthDays)

	movers, err := report.Movers(s.store, time.Now().UTC(), days)
	if err != nil {
		s.logger.Error("top growth", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]moverJSON, 0, len(movers))
	for _, m := range movers {
		out = append(out, moverJSON{
			StoryID: m.Story.StoryID,
			Title:   m.Story.Title,
			Metric:  m.Metric,
			PerDay:  m.PerDay,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.GenreCounts()
	if err != nil {
		s.logger.Error("genre counts", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	rows, err := s.store.ListStories(nil)
	if err != nil {
		s.logger.Error("genre pairs", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	lists := make([][]string, 0, len(rows))
	for _, row := range rows {
		lists = append(lists, row.Story.Genres)
	}

	outCounts := make([]genreCountJSON, 0, len(counts))
	for _, c := range counts {
		outCounts = append(outCounts, genreCountJSON{Genre: c.Genre, Count: c.Count})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"counts": outCounts,
		"pairs":  analysis.GenrePairs(lists),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats()
	if err != nil {
		s.logger.Error("stats", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	rows, err := s.store.ListStories(nil)
	if err != nil {
		s.logger.Error("stats", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	var latest []models.Metrics
	var views []float64
	var sumChapters, sumViews float64
	for _, row := range rows {
		if row.Latest != nil {
			latest = append(latest, row.Latest.Metrics)
			views = append(views, float64(row.Latest.Views))
			sumChapters += float64(row.Latest.Chapters)
			sumViews += float64(row.Latest.Views)
		}
	}
	averages := map[string]float64{}
	if n := float64(len(latest)); n > 0 {
		averages["chapters"] = sumChapters / n
		averages["views"] = sumViews / n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"db": statsJSON{
			TotalStories:       stats.TotalStories,
			TotalSnapshots:     stats.TotalSnapshots,
			TotalSessions:      stats.TotalSessions,
			StoriesWithHistory: stats.StoriesWithHistory,
			DistinctGenres:     stats.DistinctGenres,
			FirstObservation:   stats.FirstObservation,
			LastObservation:    stats.LastObservation,
		},
		"averages":     averages,
		"view_deciles": analysis.Deciles(views),
		"correlations": analysis.Correlations(latest),
	})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)

	sessions, err := s.store.ListSessions(limit)
	if err != nil {
		s.logger.Error("list sessions", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]sessionJSON, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toSessionJSON(sess))
	}
	writeJSON(w, http.StatusOK, out)
}

// Helpers

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
