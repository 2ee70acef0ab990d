// ABOUTME: Markdown report generation over the tracked story database
// ABOUTME: Gathers stats, top stories, growth leaders, and session history into one document

package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harper/fictrack/internal/analysis"
	"github.com/harper/fictrack/internal/models"
	"github.com/harper/fictrack/internal/storage"
)

const (
	topStoryCount = 10
	moverCount    = 10
	genreCount    = 10
	sessionCount  = 5
)

// Mover is a story ranked by its latest growth rate.
type Mover struct {
	Story  models.Story
	Metric string
	PerDay float64
}

// Data is everything a report renders.
type Data struct {
	GeneratedAt time.Time
	WindowDays  int
	Stats       *storage.DBStats
	Top         []*storage.StoryWithMetrics
	Movers      []Mover
	Genres      []storage.GenreCount
	Sessions    []*models.ScrapeSession
}

// Gather pulls report data from the store. Growth is measured over the
// trailing window in days.
func Gather(store storage.Store, windowDays int) (*Data, error) {
	now := time.Now().UTC()
	data := &Data{GeneratedAt: now, WindowDays: windowDays}

	stats, err := store.Stats()
	if err != nil {
		return nil, fmt.Errorf("gather stats: %w", err)
	}
	data.Stats = stats

	limit := topStoryCount
	top, err := store.ListStories(&storage.StoryFilter{Limit: &limit})
	if err != nil {
		return nil, fmt.Errorf("gather top stories: %w", err)
	}
	data.Top = top

	genres, err := store.GenreCounts()
	if err != nil {
		return nil, fmt.Errorf("gather genres: %w", err)
	}
	if len(genres) > genreCount {
		genres = genres[:genreCount]
	}
	data.Genres = genres

	sessions, err := store.ListSessions(sessionCount)
	if err != nil {
		return nil, fmt.Errorf("gather sessions: %w", err)
	}
	data.Sessions = sessions

	movers, err := Movers(store, now, windowDays)
	if err != nil {
		return nil, err
	}
	data.Movers = movers

	return data, nil
}

// Movers ranks every tracked story by its most recent views growth.
func Movers(store storage.Store, now time.Time, windowDays int) ([]Mover, error) {
	all, err := store.ListStories(nil)
	if err != nil {
		return nil, fmt.Errorf("gather movers: %w", err)
	}

	from := now.AddDate(0, 0, -windowDays)
	var movers []Mover
	for _, row := range all {
		it, err := store.SnapshotsInRange(row.Story.StoryID, from, now)
		if err != nil {
			return nil, fmt.Errorf("history for %s: %w", row.Story.StoryID, err)
		}
		result, err := analysis.GrowthRates(it, "views", from, now)
		if err != nil {
			return nil, err
		}
		if len(result.Points) == 0 {
			continue
		}
		last := result.Points[len(result.Points)-1]
		movers = append(movers, Mover{Story: row.Story, Metric: "views", PerDay: last.PerDay})
	}

	sort.Slice(movers, func(i, j int) bool { return movers[i].PerDay > movers[j].PerDay })
	if len(movers) > moverCount {
		movers = movers[:moverCount]
	}
	return movers, nil
}

// Build renders the report as markdown.
func Build(data *Data) string {
	var b strings.Builder

	b.WriteString("# Fiction Tracker Report\n\n")
	fmt.Fprintf(&b, "Generated %s\n\n", data.GeneratedAt.Format("2006-01-02 15:04 MST"))

	writeStats(&b, data.Stats)
	writeTop(&b, data.Top)
	writeMovers(&b, data.Movers, data.WindowDays)
	writeGenres(&b, data.Genres)
	writeSessions(&b, data.Sessions)

	return b.String()
}

func writeStats(b *strings.Builder, stats *storage.DBStats) {
	if stats == nil {
		return
	}
	b.WriteString("## Database\n\n")
	fmt.Fprintf(b, "- **%d** stories tracked\n", stats.TotalStories)
	fmt.Fprintf(b, "- **%d** snapshots recorded\n", stats.TotalSnapshots)
	fmt.Fprintf(b, "- **%d** stories with history\n", stats.StoriesWithHistory)
	fmt.Fprintf(b, "- **%d** scrape sessions\n", stats.TotalSessions)
	if stats.FirstObservation != nil && stats.LastObservation != nil {
		fmt.Fprintf(b, "- Observations span %s to %s\n",
			stats.FirstObservation.Format("2006-01-02"),
			stats.LastObservation.Format("2006-01-02"))
	}
	b.WriteString("\n")
}

func writeTop(b *strings.Builder, top []*storage.StoryWithMetrics) {
	if len(top) == 0 {
		return
	}
	b.WriteString("## Top Stories by Followers\n\n")
	b.WriteString("| # | Title | Followers | Views | Rating |\n")
	b.WriteString("|---|-------|-----------|-------|--------|\n")
	for i, row := range top {
		var followers, views int64
		var rating float64
		if row.Latest != nil {
			followers = row.Latest.Followers
			views = row.Latest.Views
			rating = row.Latest.Rating
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s | %.2f |\n",
			i+1, escapeCell(row.Story.Title), formatCount(followers), formatCount(views), rating)
	}
	b.WriteString("\n")
}

func writeMovers(b *strings.Builder, movers []Mover, windowDays int) {
	if len(movers) == 0 {
		return
	}
	fmt.Fprintf(b, "## Fastest Growing (last %d days)\n\n", windowDays)
	b.WriteString("| Title | Views/day |\n")
	b.WriteString("|-------|-----------|\n")
	for _, m := range movers {
		fmt.Fprintf(b, "| %s | %+.0f |\n", escapeCell(m.Story.Title), m.PerDay)
	}
	b.WriteString("\n")
}

func writeGenres(b *strings.Builder, genres []storage.GenreCount) {
	if len(genres) == 0 {
		return
	}
	b.WriteString("## Genres\n\n")
	b.WriteString("| Genre | Stories |\n")
	b.WriteString("|-------|--------|\n")
	for _, g := range genres {
		fmt.Fprintf(b, "| %s | %d |\n", escapeCell(g.Genre), g.Count)
	}
	b.WriteString("\n")
}

func writeSessions(b *strings.Builder, sessions []*models.ScrapeSession) {
	if len(sessions) == 0 {
		return
	}
	b.WriteString("## Recent Scrape Sessions\n\n")
	b.WriteString("| When | Status | Added | Updated | Pages |\n")
	b.WriteString("|------|--------|-------|---------|-------|\n")
	for _, s := range sessions {
		fmt.Fprintf(b, "| %s | %s | %d | %d | %d |\n",
			s.RunAt.Format("2006-01-02 15:04"), s.Status, s.StoriesAdded, s.StoriesUpdated, s.PagesScraped)
	}
	b.WriteString("\n")
}

// formatCount renders large numbers the way the site shows them.
func formatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1_000_000), ".0") + "M"
	case n >= 1_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1_000), ".0") + "K"
	default:
		return fmt.Sprintf("%d", n)
	}
}

// escapeCell keeps pipes in titles from breaking table rows.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
