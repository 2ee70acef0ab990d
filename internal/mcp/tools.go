// ABOUTME: MCP tool definitions and handlers for story metric operations
// ABOUTME: Provides tools for querying tracked stories, history, growth, and running scrapes

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/fictrack/internal/analysis"
	"github.com/harper/fictrack/internal/config"
	"github.com/harper/fictrack/internal/models"
	"github.com/harper/fictrack/internal/releases"
	"github.com/harper/fictrack/internal/scrape"
	"github.com/harper/fictrack/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Type definitions for input/output structures

type ListStoriesInput struct {
	Genre  *string `json:"genre,omitempty"`
	SortBy *string `json:"sort_by,omitempty"`
	Limit  *int    `json:"limit,omitempty"`
}

type MetricsOutput struct {
	ObservedAt  time.Time `json:"observed_at"`
	Rating      float64   `json:"rating"`
	Followers   int64     `json:"followers"`
	Pages       int64     `json:"pages"`
	Chapters    int64     `json:"chapters"`
	Views       int64     `json:"views"`
	Favorites   int64     `json:"favorites"`
	RatingCount int64     `json:"rating_count"`
}

type StoryOutput struct {
	StoryID     string         `json:"story_id"`
	Title       string         `json:"title"`
	URL         string         `json:"url"`
	Description *string        `json:"description,omitempty"`
	Genres      []string       `json:"genres"`
	FirstSeen   time.Time      `json:"first_seen"`
	LastUpdated time.Time      `json:"last_updated"`
	Latest      *MetricsOutput `json:"latest,omitempty"`
}

type ListStoriesOutput struct {
	Stories []StoryOutput `json:"stories"`
	Count   int           `json:"count"`
}

type GetStoryInput struct {
	StoryID string `json:"story_id"`
}

type StoryHistoryInput struct {
	StoryID string `json:"story_id"`
	Days    *int   `json:"days,omitempty"`
}

type StoryHistoryOutput struct {
	StoryID   string          `json:"story_id"`
	Title     string          `json:"title"`
	Days      int             `json:"days"`
	Snapshots []MetricsOutput `json:"snapshots"`
	Count     int             `json:"count"`
}

type GrowthRatesInput struct {
	StoryID string  `json:"story_id"`
	Metric  *string `json:"metric,omitempty"`
	Days    *int    `json:"days,omitempty"`
}

type GrowthRatesOutput struct {
	StoryID string                 `json:"story_id"`
	Title   string                 `json:"title"`
	Metric  string                 `json:"metric"`
	Bin     string                 `json:"bin"`
	Points  []analysis.GrowthPoint `json:"points"`
}

type DBStatsInput struct{}

type DBStatsOutput struct {
	TotalStories       int                  `json:"total_stories"`
	TotalSnapshots     int                  `json:"total_snapshots"`
	TotalSessions      int                  `json:"total_sessions"`
	StoriesWithHistory int                  `json:"stories_with_history"`
	DistinctGenres     int                  `json:"distinct_genres"`
	FirstObservation   *time.Time           `json:"first_observation,omitempty"`
	LastObservation    *time.Time           `json:"last_observation,omitempty"`
	AvgChapters        float64              `json:"avg_chapters"`
	AvgViews           float64              `json:"avg_views"`
	ViewDeciles        []float64            `json:"view_deciles,omitempty"`
	Correlations       *analysis.CorrMatrix `json:"correlations,omitempty"`
}

type GenreDistributionInput struct{}

type GenreCountOutput struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type GenreDistributionOutput struct {
	Genres []GenreCountOutput   `json:"genres"`
	Pairs  []analysis.PairCount `json:"pairs"`
	Count  int                  `json:"count"`
}

type ListSessionsInput struct {
	Limit *int `json:"limit,omitempty"`
}

type SessionOutput struct {
	RunID          string    `json:"run_id"`
	RunAt          time.Time `json:"run_at"`
	PagesScraped   int       `json:"pages_scraped"`
	StoriesAdded   int       `json:"stories_added"`
	StoriesUpdated int       `json:"stories_updated"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
}

type ListSessionsOutput struct {
	Sessions []SessionOutput `json:"sessions"`
	Count    int             `json:"count"`
}

type StoryReleasesInput struct {
	StoryID string `json:"story_id"`
}

type ReleaseOutput struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type StoryReleasesOutput struct {
	StoryID         string          `json:"story_id"`
	Title           string          `json:"title"`
	FeedURL         string          `json:"feed_url"`
	Releases        []ReleaseOutput `json:"releases"`
	Count           int             `json:"count"`
	ChaptersPerWeek *float64        `json:"chapters_per_week,omitempty"`
}

type RunScrapeInput struct {
	Details *bool `json:"details,omitempty"`
}

type RunScrapeOutput struct {
	RunID          string  `json:"run_id"`
	Status         string  `json:"status"`
	Listed         int     `json:"listed"`
	PagesScraped   int     `json:"pages_scraped"`
	StoriesAdded   int     `json:"stories_added"`
	StoriesUpdated int     `json:"stories_updated"`
	Failed         int     `json:"failed"`
	Notes          *string `json:"notes,omitempty"`
}

// Tool registration

func (s *Server) registerTools() {
	s.registerListStoriesTool()
	s.registerGetStoryTool()
	s.registerStoryHistoryTool()
	s.registerGrowthRatesTool()
	s.registerDBStatsTool()
	s.registerGenreDistributionTool()
	s.registerListSessionsTool()
	s.registerStoryReleasesTool()
	s.registerRunScrapeTool()
}

func (s *Server) registerListStoriesTool() {
	tool := mcp.Tool{
		Name:        "list_stories",
		Description: "List tracked stories with their most recent metrics. Supports filtering by genre and sorting by followers, views, rating, title, or first_seen (default: followers, most popular first). Use this to discover story IDs before calling get_story, story_history, or growth_rates.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"genre": map[string]interface{}{
					"type":        "string",
					"description": "Optional genre tag to filter by. Only stories carrying this tag are returned. Example: 'Fantasy'",
				},
				"sort_by": map[string]interface{}{
					"type":        "string",
					"description": "Sort order: 'followers', 'views', 'rating', 'title', or 'first_seen'. Default: 'followers'",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of stories to return. If omitted, returns all tracked stories. Example: 25",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListStories)
}

func (s *Server) registerGetStoryTool() {
	tool := mcp.Tool{
		Name:        "get_story",
		Description: "Get one tracked story by its story ID, including its description, genre tags, and latest observed metrics. Story IDs are the site's stable fiction identifiers; use list_stories to find them.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"story_id": map[string]interface{}{
					"type":        "string",
					"description": "The stable story identifier. Example: '21220'",
				},
			},
			Required: []string{"story_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleGetStory)
}

func (s *Server) registerStoryHistoryTool() {
	tool := mcp.Tool{
		Name:        "story_history",
		Description: "Get the raw snapshot history for one story over a trailing window of days. Each snapshot is one timestamped observation of the story's metrics; history is append-only and never rewritten. Returns snapshots in ascending observation order.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"story_id": map[string]interface{}{
					"type":        "string",
					"description": "The stable story identifier. Example: '21220'",
				},
				"days": map[string]interface{}{
					"type":        "integer",
					"description": "Trailing window in days. Default: 90",
				},
			},
			Required: []string{"story_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleStoryHistory)
}

func (s *Server) registerGrowthRatesTool() {
	tool := mcp.Tool{
		Name:        "growth_rates",
		Description: "Compute per-day growth rates for one story's metric over a trailing window. Snapshots are bucketed daily, weekly, or monthly depending on the window size, and each point reports the change per day since the previous bucket with data. Useful for spotting momentum or decline.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"story_id": map[string]interface{}{
					"type":        "string",
					"description": "The stable story identifier. Example: '21220'",
				},
				"metric": map[string]interface{}{
					"type":        "string",
					"description": "Metric to analyze: 'rating', 'followers', 'pages', 'chapters', 'views', 'favorites', or 'rating_count'. Default: 'views'",
				},
				"days": map[string]interface{}{
					"type":        "integer",
					"description": "Trailing window in days. Default: 30",
				},
			},
			Required: []string{"story_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleGrowthRates)
}

func (s *Server) registerDBStatsTool() {
	tool := mcp.Tool{
		Name:        "db_stats",
		Description: "Summarize the tracking database: story, snapshot, and session counts, the observation time span, and a correlation matrix across metrics computed over each story's latest snapshot. Use this first to see how much history is available.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
	s.mcpServer.AddTool(tool, s.handleDBStats)
}

func (s *Server) registerGenreDistributionTool() {
	tool := mcp.Tool{
		Name:        "genre_distribution",
		Description: "Show how genre tags are distributed across tracked stories: per-genre story counts (most common first) plus co-occurrence pairs showing which genres appear together on the same story.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
	s.mcpServer.AddTool(tool, s.handleGenreDistribution)
}

func (s *Server) registerListSessionsTool() {
	tool := mcp.Tool{
		Name:        "list_sessions",
		Description: "List past scrape sessions, newest first. Each session records when a scrape ran, how many pages it fetched, how many stories were added or updated, and whether it ended in success, partial, or failed status.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of sessions to return. Default: 20",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListSessions)
}

func (s *Server) registerStoryReleasesTool() {
	tool := mcp.Tool{
		Name:        "story_releases",
		Description: "Fetch a story's chapter release feed and summarize its release history, including an estimated chapters-per-week cadence. This performs live network requests against the site, so it is slower than the database-backed tools.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"story_id": map[string]interface{}{
					"type":        "string",
					"description": "The stable story identifier. Example: '21220'",
				},
			},
			Required: []string{"story_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleStoryReleases)
}

func (s *Server) registerRunScrapeTool() {
	tool := mcp.Tool{
		Name:        "run_scrape",
		Description: "Run one scrape of the trending listing right now: fetch the page, record a metrics snapshot for every listed story, and write a session history row. Requests are rate limited and retried, so a run can take a minute or more. Returns the session summary.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"details": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, also visit each fiction page for full stats (followers, favorites, pages). Slower. Defaults to the configured fetch_details setting.",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleRunScrape)
}

// Handler implementations

func (s *Server) handleListStories(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ListStoriesInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	filter := &storage.StoryFilter{Genre: input.Genre, Limit: input.Limit}
	if input.SortBy != nil {
		filter.SortBy = *input.SortBy
	}
	if input.Limit != nil && *input.Limit < 0 {
		return nil, fmt.Errorf("limit must be non-negative, got %d", *input.Limit)
	}

	rows, err := s.store.ListStories(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	stories := make([]StoryOutput, 0, len(rows))
	for _, row := range rows {
		stories = append(stories, toStoryOutput(&row.Story, row.Latest))
	}

	output := ListStoriesOutput{
		Stories: stories,
		Count:   len(stories),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetStory(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input GetStoryInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	story, err := s.store.GetStory(input.StoryID)
	if err != nil {
		return nil, fmt.Errorf("story not found: %s", input.StoryID)
	}

	latest, err := s.store.LatestSnapshot(input.StoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest snapshot: %w", err)
	}

	output := toStoryOutput(story, latest)

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleStoryHistory(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input StoryHistoryInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	days := config.DefaultHistoryDays
	if input.Days != nil {
		if *input.Days <= 0 {
			return nil, fmt.Errorf("days must be positive, got %d", *input.Days)
		}
		days = *input.Days
	}

	story, err := s.store.GetStory(input.StoryID)
	if err != nil {
		return nil, fmt.Errorf("story not found: %s", input.StoryID)
	}

	now := time.Now().UTC()
	it, err := s.store.SnapshotsInRange(input.StoryID, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	snaps, err := it.Collect()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	snapshots := make([]MetricsOutput, 0, len(snaps))
	for _, snap := range snaps {
		snapshots = append(snapshots, toMetricsOutput(snap))
	}

	output := StoryHistoryOutput{
		StoryID:   story.StoryID,
		Title:     story.Title,
		Days:      days,
		Snapshots: snapshots,
		Count:     len(snapshots),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGrowthRates(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input GrowthRatesInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	metric := "views"
	if input.Metric != nil {
		metric = *input.Metric
	}
	days := config.DefaultGrowthDays
	if input.Days != nil {
		if *input.Days <= 0 {
			return nil, fmt.Errorf("days must be positive, got %d", *input.Days)
		}
		days = *input.Days
	}

	story, err := s.store.GetStory(input.StoryID)
	if err != nil {
		return nil, fmt.Errorf("story not found: %s", input.StoryID)
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -days)
	it, err := s.store.SnapshotsInRange(input.StoryID, from, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	result, err := analysis.GrowthRates(it, metric, from, now)
	if err != nil {
		return nil, err
	}

	output := GrowthRatesOutput{
		StoryID: story.StoryID,
		Title:   story.Title,
		Metric:  result.Metric,
		Bin:     string(result.Bin),
		Points:  result.Points,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleDBStats(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.store.Stats()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	output := DBStatsOutput{
		TotalStories:       stats.TotalStories,
		TotalSnapshots:     stats.TotalSnapshots,
		TotalSessions:      stats.TotalSessions,
		StoriesWithHistory: stats.StoriesWithHistory,
		DistinctGenres:     stats.DistinctGenres,
		FirstObservation:   stats.FirstObservation,
		LastObservation:    stats.LastObservation,
	}

	rows, err := s.store.ListStories(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
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
	if n := float64(len(latest)); n > 0 {
		output.AvgChapters = sumChapters / n
		output.AvgViews = sumViews / n
	}
	output.ViewDeciles = analysis.Deciles(views)
	if len(latest) > 1 {
		output.Correlations = analysis.Correlations(latest)
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGenreDistribution(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	counts, err := s.store.GenreCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to count genres: %w", err)
	}

	rows, err := s.store.ListStories(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	lists := make([][]string, 0, len(rows))
	for _, row := range rows {
		lists = append(lists, row.Story.Genres)
	}

	genres := make([]GenreCountOutput, 0, len(counts))
	for _, c := range counts {
		genres = append(genres, GenreCountOutput{Genre: c.Genre, Count: c.Count})
	}

	output := GenreDistributionOutput{
		Genres: genres,
		Pairs:  analysis.GenrePairs(lists),
		Count:  len(genres),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleListSessions(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ListSessionsInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	limit := 20
	if input.Limit != nil {
		if *input.Limit <= 0 {
			return nil, fmt.Errorf("limit must be positive, got %d", *input.Limit)
		}
		limit = *input.Limit
	}

	sessions, err := s.store.ListSessions(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessionOutputs := make([]SessionOutput, 0, len(sessions))
	for _, sess := range sessions {
		sessionOutputs = append(sessionOutputs, SessionOutput{
			RunID:          sess.RunID,
			RunAt:          sess.RunAt,
			PagesScraped:   sess.PagesScraped,
			StoriesAdded:   sess.StoriesAdded,
			StoriesUpdated: sess.StoriesUpdated,
			Status:         string(sess.Status),
			Notes:          sess.Notes,
		})
	}

	output := ListSessionsOutput{
		Sessions: sessionOutputs,
		Count:    len(sessionOutputs),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleStoryReleases(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input StoryReleasesInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	story, err := s.store.GetStory(input.StoryID)
	if err != nil {
		return nil, fmt.Errorf("story not found: %s", input.StoryID)
	}

	fetcher := s.newFetcher()

	// Prefer the feed the fiction page advertises; fall back to the
	// site's syndication convention.
	feedURL := ""
	if body, err := fetcher.Get(ctx, story.URL); err == nil {
		if u, err := releases.FeedURL(body, story.URL); err == nil {
			feedURL = u
		}
	}
	if feedURL == "" {
		feedURL = releases.SyndicationURL(s.baseURL(), story.StoryID)
	}

	data, err := fetcher.Get(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release feed: %w", err)
	}
	rels, err := releases.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse release feed: %w", err)
	}

	releaseOutputs := make([]ReleaseOutput, 0, len(rels))
	for _, rel := range rels {
		releaseOutputs = append(releaseOutputs, ReleaseOutput{
			Title:       rel.Title,
			Link:        rel.Link,
			PublishedAt: rel.PublishedAt,
		})
	}

	output := StoryReleasesOutput{
		StoryID:  story.StoryID,
		Title:    story.Title,
		FeedURL:  feedURL,
		Releases: releaseOutputs,
		Count:    len(releaseOutputs),
	}
	if perWeek, ok := releases.Cadence(rels); ok {
		output.ChaptersPerWeek = &perWeek
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleRunScrape(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input RunScrapeInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	details := s.cfg.Details
	if input.Details != nil {
		details = *input.Details
	}

	runner := scrape.NewRunner(s.store, s.newFetcher(), scrape.Options{
		BaseURL:     s.baseURL(),
		Pages:       s.cfg.Pages,
		Details:     details,
		DetailLimit: s.cfg.DetailLimit,
	})

	out, err := runner.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("scrape failed: %w", err)
	}

	output := RunScrapeOutput{
		RunID:          out.Session.RunID,
		Status:         string(out.Session.Status),
		Listed:         out.Listed,
		PagesScraped:   out.Session.PagesScraped,
		StoriesAdded:   out.Session.StoriesAdded,
		StoriesUpdated: out.Session.StoriesUpdated,
		Failed:         out.Failed,
		Notes:          out.Session.Notes,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// Output conversion helpers

func toStoryOutput(story *models.Story, latest *models.Snapshot) StoryOutput {
	output := StoryOutput{
		StoryID:     story.StoryID,
		Title:       story.Title,
		URL:         story.URL,
		Description: story.Description,
		Genres:      story.Genres,
		FirstSeen:   story.FirstSeen,
		LastUpdated: story.LastUpdated,
	}
	if output.Genres == nil {
		output.Genres = []string{}
	}
	if latest != nil {
		m := toMetricsOutput(latest)
		output.Latest = &m
	}
	return output
}

func toMetricsOutput(snap *models.Snapshot) MetricsOutput {
	return MetricsOutput{
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
