// ABOUTME: MCP resource providers for fictrack
// ABOUTME: Exposes read-only views of database statistics and the trending leaderboard

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/fictrack/internal/analysis"
	"github.com/harper/fictrack/internal/models"
	"github.com/harper/fictrack/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// ResourceData is the standard response format for all resources.
type ResourceData struct {
	Metadata ResourceMetadata  `json:"metadata"`
	Data     interface{}       `json:"data"`
	Links    map[string]string `json:"links"`
}

// ResourceMetadata contains metadata about the resource response.
type ResourceMetadata struct {
	Timestamp   time.Time      `json:"timestamp"`
	Count       int            `json:"count"`
	ResourceURI string         `json:"resource_uri"`
	Filters     map[string]any `json:"filters,omitempty"`
}

func (s *Server) registerResources() {
	s.registerStatsResource()
	s.registerTrendingResource()
}

func (s *Server) registerStatsResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         "fictrack://stats",
			Name:        "Tracking Statistics",
			Description: "Overview of the tracking database: story, snapshot, and session counts, observation time span, genre distribution, and a metric correlation matrix over each story's latest snapshot",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			stats, err := s.calculateStats()
			if err != nil {
				return nil, fmt.Errorf("failed to calculate stats: %w", err)
			}

			resourceData := ResourceData{
				Metadata: ResourceMetadata{
					Timestamp:   time.Now(),
					Count:       stats.Summary.TotalStories,
					ResourceURI: "fictrack://stats",
				},
				Data: stats,
				Links: map[string]string{
					"trending_stories": "fictrack://stories/trending",
				},
			}

			jsonBytes, err := json.MarshalIndent(resourceData, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal resource data: %w", err)
			}

			return []mcp.ResourceContents{
				&mcp.TextResourceContents{
					URI:      request.Params.URI,
					MIMEType: "application/json",
					Text:     string(jsonBytes),
				},
			}, nil
		},
	)
}

func (s *Server) registerTrendingResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         "fictrack://stories/trending",
			Name:        "Trending Leaderboard",
			Description: "The tracked stories ranked by latest follower count, with their current metrics and genre tags",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			limit := 25
			rows, err := s.store.ListStories(&storage.StoryFilter{Limit: &limit})
			if err != nil {
				return nil, fmt.Errorf("failed to list stories: %w", err)
			}

			stories := make([]StoryOutput, 0, len(rows))
			for _, row := range rows {
				stories = append(stories, toStoryOutput(&row.Story, row.Latest))
			}

			resourceData := ResourceData{
				Metadata: ResourceMetadata{
					Timestamp:   time.Now(),
					Count:       len(stories),
					ResourceURI: "fictrack://stories/trending",
					Filters: map[string]any{
						"sort_by": "followers",
						"limit":   limit,
					},
				},
				Data: stories,
				Links: map[string]string{
					"stats": "fictrack://stats",
				},
			}

			jsonBytes, err := json.MarshalIndent(resourceData, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal resource data: %w", err)
			}

			return []mcp.ResourceContents{
				&mcp.TextResourceContents{
					URI:      request.Params.URI,
					MIMEType: "application/json",
					Text:     string(jsonBytes),
				},
			}, nil
		},
	)
}

// StatsData represents the statistics summary.
type StatsData struct {
	Summary      StatsSummary         `json:"summary"`
	Genres       []GenreCountOutput   `json:"genres"`
	Correlations *analysis.CorrMatrix `json:"correlations,omitempty"`
	LastScrape   *ScrapeInfo          `json:"last_scrape,omitempty"`
}

// StatsSummary contains overall counts.
type StatsSummary struct {
	TotalStories       int        `json:"total_stories"`
	TotalSnapshots     int        `json:"total_snapshots"`
	TotalSessions      int        `json:"total_sessions"`
	StoriesWithHistory int        `json:"stories_with_history"`
	DistinctGenres     int        `json:"distinct_genres"`
	FirstObservation   *time.Time `json:"first_observation,omitempty"`
	LastObservation    *time.Time `json:"last_observation,omitempty"`
}

// ScrapeInfo represents the most recent scrape session.
type ScrapeInfo struct {
	RunID          string    `json:"run_id"`
	RunAt          time.Time `json:"run_at"`
	Status         string    `json:"status"`
	StoriesAdded   int       `json:"stories_added"`
	StoriesUpdated int       `json:"stories_updated"`
}

func (s *Server) calculateStats() (*StatsData, error) {
	dbStats, err := s.store.Stats()
	if err != nil {
		return nil, fmt.Errorf("failed to get database stats: %w", err)
	}

	summary := StatsSummary{
		TotalStories:       dbStats.TotalStories,
		TotalSnapshots:     dbStats.TotalSnapshots,
		TotalSessions:      dbStats.TotalSessions,
		StoriesWithHistory: dbStats.StoriesWithHistory,
		DistinctGenres:     dbStats.DistinctGenres,
		FirstObservation:   dbStats.FirstObservation,
		LastObservation:    dbStats.LastObservation,
	}

	counts, err := s.store.GenreCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to count genres: %w", err)
	}
	genres := make([]GenreCountOutput, 0, len(counts))
	for _, c := range counts {
		genres = append(genres, GenreCountOutput{Genre: c.Genre, Count: c.Count})
	}

	data := &StatsData{
		Summary: summary,
		Genres:  genres,
	}

	rows, err := s.store.ListStories(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	var latest []models.Metrics
	for _, row := range rows {
		if row.Latest != nil {
			latest = append(latest, row.Latest.Metrics)
		}
	}
	if len(latest) > 1 {
		data.Correlations = analysis.Correlations(latest)
	}

	sessions, err := s.store.ListSessions(1)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) > 0 {
		sess := sessions[0]
		data.LastScrape = &ScrapeInfo{
			RunID:          sess.RunID,
			RunAt:          sess.RunAt,
			Status:         string(sess.Status),
			StoriesAdded:   sess.StoriesAdded,
			StoriesUpdated: sess.StoriesUpdated,
		}
	}

	return data, nil
}
