// ABOUTME: MCP prompt definitions and handlers
// ABOUTME: Provides workflow templates for analyzing tracked story metrics

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.registerTrendingDigestPrompt()
	s.registerStoryDeepDivePrompt()
}

func (s *Server) registerTrendingDigestPrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "trending-digest",
			Description: "Summarize the current state of the trending list: who leads, who is climbing, and how the genre landscape looks",
			Arguments:   []mcp.PromptArgument{},
		},
		s.handleTrendingDigest,
	)
}

//nolint:funlen // Prompt handlers contain large template strings
func (s *Server) handleTrendingDigest(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := `# Trending Digest

## Overview
Review the tracked trending stories and produce a concise digest: current leaders,
fastest climbers, and notable genre patterns. This workflow reads only the local
database, so it is fast and safe to run any time.

## Workflow Steps

### Step 1: Check Database Coverage
Use the db_stats tool (or the fictrack://stats resource) to see how much history exists.

**What to look for:**
- total_stories and total_snapshots tell you how much data backs the digest
- stories_with_history is the number of stories growth analysis can rank
- last_observation tells you how fresh the data is; if it is stale, consider run_scrape

### Step 2: Review the Leaderboard
Use list_stories (default sort is followers) or the fictrack://stories/trending resource.

**What to look for:**
- The top 5-10 stories by followers and their view counts
- Ratings: a high-follower story with a rating under 4.0 is unusual and worth a note
- New arrivals: compare first_seen against the observation span from Step 1

### Step 3: Rank the Climbers
For the most interesting stories from Step 2, call growth_rates (metric 'views' first,
then 'followers' for the leaders).

**What to look for:**
- Stories with high per_day values relative to their size
- Deceleration: a leader whose recent points trend toward zero
- Fresh stories with few points but steep rates

### Step 4: Read the Genre Landscape
Use genre_distribution.

**What to look for:**
- Which genres dominate the trending list
- Pair counts: combinations that appear together more often than alone

### Step 5: Write the Digest
Structure the summary as:
- **Leaders:** top 3 stories with followers, views, and rating
- **Climbers:** 2-3 stories with the steepest recent growth and their per-day rates
- **Genres:** the dominant tags and one notable pairing
- **Data notes:** observation span and anything that limits confidence (short history,
  stale data, failed sessions from list_sessions)

## Tips
- Growth needs at least two observations per story; a single scrape cannot rank climbers
- Use days=7 in growth_rates for recent momentum, the default window for the bigger picture
- Check list_sessions if numbers look off; a partial session means some stories were skipped

**Ready to build the digest?**
1. db_stats for coverage
2. list_stories for the leaderboard
3. growth_rates for the climbers
4. genre_distribution for the landscape
5. Summarize
`

	return &mcp.GetPromptResult{
		Description: "Trending digest workflow over the tracked stories",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}

func (s *Server) registerStoryDeepDivePrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "story-deep-dive",
			Description: "Analyze one story in depth: metric history, growth trajectory, and release cadence",
			Arguments: []mcp.PromptArgument{
				{
					Name:        "story_id",
					Description: "The stable story identifier to analyze",
					Required:    true,
				},
			},
		},
		s.handleStoryDeepDive,
	)
}

//nolint:funlen // Prompt handlers contain large template strings
func (s *Server) handleStoryDeepDive(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	storyID := ""
	if req.Params.Arguments != nil {
		storyID = req.Params.Arguments["story_id"]
	}
	if storyID == "" {
		return nil, fmt.Errorf("story_id argument is required")
	}

	template := fmt.Sprintf(`# Story Deep Dive: %s

## Overview
Build a complete picture of one tracked story: what it is, how its metrics have moved,
and how actively the author releases chapters.

## Workflow Steps

### Step 1: Identify the Story
Call get_story with story_id '%s'.

**What to capture:**
- Title, genres, and description
- first_seen: how long this story has been tracked
- Latest metrics: followers, views, rating, chapters

### Step 2: Study the Raw History
Call story_history with story_id '%s' (default 90-day window).

**What to look for:**
- How many observations exist and how evenly they are spaced
- Step changes: a views jump between adjacent snapshots often marks a feature or
  a popular new chapter
- Rating drift: ratings move slowly, so even .05 changes matter

### Step 3: Quantify the Trajectory
Call growth_rates for 'views', then 'followers', with story_id '%s'.
Use days=7 for recent momentum and the default window for the long view.

**What to look for:**
- Is per_day accelerating, steady, or declining across points?
- Followers growing while views stall suggests a loyal but not expanding audience
- Compare rates against other stories via list_stories + growth_rates if context helps

### Step 4: Check the Release Cadence
Call story_releases with story_id '%s'. This hits the live site, so it is slower.

**What to look for:**
- chapters_per_week: consistent release schedules correlate with steady growth
- Gaps in published_at dates that line up with growth stalls from Step 3

### Step 5: Summarize
Structure the analysis as:
- **Profile:** title, genres, tracked-since, current standing
- **Trajectory:** growth rates with direction (accelerating/steady/declining)
- **Cadence:** release rhythm and whether it explains the trajectory
- **Outlook:** one or two sentences on where the metrics point

## Tips
- Growth points depend on bin width; a 90-day window uses monthly bins and smooths
  short-term swings
- If story_history returns fewer than two snapshots, skip Steps 3-4 and say the
  history is too thin to analyze

**Ready to dive in?**
1. get_story '%s'
2. story_history
3. growth_rates for views and followers
4. story_releases
5. Summarize
`, storyID, storyID, storyID, storyID, storyID, storyID)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Deep dive workflow for story %s", storyID),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}
