// ABOUTME: Scrape pipeline runner tying fetch, parse, identity, and storage together
// ABOUTME: One Run produces one scrape session row regardless of how the run ends

package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/harper/fictrack/internal/fetch"
	"github.com/harper/fictrack/internal/identity"
	"github.com/harper/fictrack/internal/models"
	"github.com/harper/fictrack/internal/parse"
	"github.com/harper/fictrack/internal/storage"
)

const DefaultBaseURL = "https://www.royalroad.com"

// Options configures a scrape run.
type Options struct {
	BaseURL     string
	Pages       int  // trending pages to visit, 0 means one
	Details     bool // visit each fiction page for full stats
	DetailLimit int  // cap on detail page fetches, 0 means no cap
	Logger      *slog.Logger
}

// Runner executes the trending scrape pipeline against a store.
type Runner struct {
	store   storage.Store
	fetcher *fetch.Fetcher
	opts    Options
	logger  *slog.Logger
}

// Outcome summarizes one run. Session is always populated, even for
// runs that fail before reaching the listing.
type Outcome struct {
	Session     *models.ScrapeSession
	Listed      int // stories found on the trending listing
	Failed      int // stories that could not be recorded
	PagesFailed int // trending pages that could not be fetched or parsed
}

// NewRunner creates a Runner. A nil logger discards log output.
func NewRunner(store storage.Store, fetcher *fetch.Fetcher, opts Options) *Runner {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Pages <= 0 {
		opts.Pages = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{store: store, fetcher: fetcher, opts: opts, logger: logger}
}

// Run scrapes the trending listing and records one snapshot per story.
// Every run writes a scrape history row; a failed history write is
// logged but never fails the run.
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	observedAt := time.Now().UTC()
	session := models.NewScrapeSession(observedAt)
	out := &Outcome{Session: session}

	trendingURL := strings.TrimRight(r.opts.BaseURL, "/") + "/fictions/trending"
	r.logger.Info("scrape starting", "run_id", session.RunID, "url", trendingURL, "pages", r.opts.Pages)

	// A failed first page aborts the run; later pages degrade to a
	// partial session. Ranks shift between page fetches, so a story
	// seen twice keeps its first sighting.
	var listed []parse.ListedStory
	seen := make(map[string]bool)
	for page := 1; page <= r.opts.Pages; page++ {
		pageURL := trendingURL
		if page > 1 {
			pageURL = fmt.Sprintf("%s?page=%d", trendingURL, page)
		}

		body, err := r.fetcher.Get(ctx, pageURL)
		if err != nil {
			if page == 1 {
				return r.abort(out, fmt.Errorf("fetch trending: %w", err))
			}
			r.logger.Warn("trending page skipped", "page", page, "error", err)
			out.PagesFailed++
			continue
		}
		session.PagesScraped++

		items, err := parse.Trending(body, r.opts.BaseURL)
		if err != nil {
			if page == 1 {
				return r.abort(out, fmt.Errorf("parse trending: %w", err))
			}
			r.logger.Warn("trending page skipped", "page", page, "error", err)
			out.PagesFailed++
			continue
		}
		for _, item := range items {
			if seen[item.URL] {
				continue
			}
			seen[item.URL] = true
			listed = append(listed, item)
		}
	}
	out.Listed = len(listed)

	detailsLeft := r.opts.DetailLimit
	if !r.opts.Details {
		detailsLeft = 0
	} else if r.opts.DetailLimit == 0 {
		detailsLeft = len(listed)
	}

	cancelled := false
	for _, item := range listed {
		if ctx.Err() != nil {
			cancelled = true
			break
		}

		withDetail := detailsLeft > 0
		created, fetchedDetail, err := r.record(ctx, item, observedAt, withDetail)
		if fetchedDetail {
			session.PagesScraped++
			detailsLeft--
		}
		if err != nil {
			r.logger.Warn("story skipped", "url", item.URL, "error", err)
			out.Failed++
			continue
		}
		if created {
			session.StoriesAdded++
		} else {
			session.StoriesUpdated++
		}
	}

	r.finalize(out, cancelled)
	r.logSession(session)

	r.logger.Info("scrape finished",
		"run_id", session.RunID,
		"status", session.Status,
		"added", session.StoriesAdded,
		"updated", session.StoriesUpdated,
		"failed", out.Failed,
		"pages", session.PagesScraped)

	if cancelled {
		return out, ctx.Err()
	}
	return out, nil
}

// record persists one listing entry. When withDetail is set it also
// visits the fiction page; detail failures degrade to listing-level
// data instead of failing the story.
func (r *Runner) record(ctx context.Context, item parse.ListedStory, observedAt time.Time, withDetail bool) (created, fetchedDetail bool, err error) {
	storyID, err := identity.Resolve(item.URL)
	if err != nil {
		return false, false, fmt.Errorf("resolve identity: %w", err)
	}

	story := models.NewStory(storyID, item.Title, item.URL, observedAt)
	story.Genres = item.Genres
	metrics := models.Metrics{
		Rating:   item.Rating,
		Views:    item.Views,
		Chapters: item.Chapters,
	}

	if withDetail {
		fetchedDetail = true
		if page, detailErr := r.fetchDetail(ctx, item.URL); detailErr != nil {
			r.logger.Warn("fiction page unavailable, keeping listing stats", "url", item.URL, "error", detailErr)
		} else {
			mergeStats(&metrics, page.Stats)
			if page.Description != "" {
				desc := page.Description
				story.Description = &desc
			}
		}
	}

	created, err = r.store.UpsertStoryWithSnapshot(story, metrics, observedAt)
	if err != nil {
		return false, fetchedDetail, fmt.Errorf("persist story: %w", err)
	}
	return created, fetchedDetail, nil
}

func (r *Runner) fetchDetail(ctx context.Context, pageURL string) (*parse.FictionPage, error) {
	body, err := r.fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return parse.Fiction(body)
}

// mergeStats overlays fiction page stats onto listing stats. The page
// wins wherever it observed a value.
func mergeStats(metrics *models.Metrics, stats parse.FictionStats) {
	if stats.Rating > 0 {
		metrics.Rating = stats.Rating
	}
	if stats.Views > 0 {
		metrics.Views = stats.Views
	}
	if stats.Chapters > 0 {
		metrics.Chapters = stats.Chapters
	}
	metrics.Followers = stats.Followers
	metrics.Favorites = stats.Favorites
	metrics.RatingCount = stats.RatingCount
	metrics.Pages = stats.Pages
}

// finalize derives the session status from the run's counts.
func (r *Runner) finalize(out *Outcome, cancelled bool) {
	session := out.Session
	written := session.StoriesAdded + session.StoriesUpdated

	switch {
	case cancelled:
		session.Finalize(models.SessionPartial, fmt.Sprintf("cancelled after %d of %d stories", written, out.Listed))
	case out.Listed > 0 && written == 0:
		session.Finalize(models.SessionFailed, fmt.Sprintf("all %d stories failed", out.Listed))
	case out.Failed > 0:
		session.Finalize(models.SessionPartial, fmt.Sprintf("%d of %d stories failed", out.Failed, out.Listed))
	case out.PagesFailed > 0:
		session.Finalize(models.SessionPartial, fmt.Sprintf("%d trending pages skipped", out.PagesFailed))
	default:
		session.Finalize(models.SessionSuccess, "")
	}
}

// abort finalizes a run that died before processing any story.
func (r *Runner) abort(out *Outcome, err error) (*Outcome, error) {
	out.Session.Finalize(models.SessionFailed, err.Error())
	r.logSession(out.Session)
	return out, err
}

// logSession records the session row. History is advisory: failures
// are logged, not returned.
func (r *Runner) logSession(session *models.ScrapeSession) {
	if err := r.store.LogSession(session); err != nil {
		r.logger.Error("record scrape session", "run_id", session.RunID, "error", err)
	}
}
