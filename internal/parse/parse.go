// ABOUTME: HTML extraction for the trending listing and fiction pages
// ABOUTME: Pure functions producing typed records, validated before they reach storage

package parse

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ListedStory is one entry extracted from the trending listing page
type ListedStory struct {
	Title    string
	URL      string // Absolute fiction page URL
	Genres   []string
	Rating   float64 // From the "X / 5" span, 0 when absent
	Views    int64
	Chapters int64
}

// FictionStats holds the metrics extracted from a fiction page's stats
// panel. Zero values mean the label was not found.
type FictionStats struct {
	Rating      float64
	Views       int64
	Followers   int64
	Favorites   int64
	RatingCount int64
	Chapters    int64
	Pages       int64
}

// FictionPage is the parsed detail view of one story
type FictionPage struct {
	Stats       FictionStats
	Description string // Markdown, empty when the page has no blurb
}

// ErrNoStories is returned when the listing markup contains no story items
var ErrNoStories = errors.New("no story items in listing")

// listRatingPattern matches the listing page rating text, e.g. "4.83 / 5"
var listRatingPattern = regexp.MustCompile(`([0-9.]+)\s*/\s*5`)

// attrRatingPattern pulls the leading number from rating attribute text,
// e.g. "4.83 stars"
var attrRatingPattern = regexp.MustCompile(`([0-9.]+)`)

// statLabels are the fiction page stats panel labels, matched by containment
var statLabels = []string{"Total Views", "Followers", "Favorites", "Ratings", "Chapters", "Pages"}

// Trending parses the trending listing markup into listed stories.
// Individual malformed items are skipped; the error is non-nil only
// when the page as a whole carries no story items.
func Trending(data []byte, baseURL string) ([]ListedStory, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing listing markup: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	items := doc.Find("div.fiction-list-item")
	if items.Length() == 0 {
		return nil, ErrNoStories
	}

	var stories []ListedStory
	items.Each(func(_ int, item *goquery.Selection) {
		story, ok := parseListItem(item, base)
		if ok {
			stories = append(stories, story)
		}
	})

	return stories, nil
}

// parseListItem extracts one listing entry. Returns false when the item
// has no usable title link.
func parseListItem(item *goquery.Selection, base *url.URL) (ListedStory, bool) {
	link := item.Find("h2.fiction-title a").First()
	title := strings.TrimSpace(link.Text())
	href, _ := link.Attr("href")
	if title == "" || href == "" {
		return ListedStory{}, false
	}

	story := ListedStory{
		Title: title,
		URL:   resolveURL(href, base),
	}

	item.Find("span.tags a.label").Each(func(_ int, tag *goquery.Selection) {
		if genre := strings.TrimSpace(tag.Text()); genre != "" {
			story.Genres = append(story.Genres, genre)
		}
	})

	stats := item.Find("div.stats")
	stats.Find("span").Each(func(_ int, span *goquery.Selection) {
		text := strings.TrimSpace(span.Text())
		switch {
		case strings.Contains(text, "View"):
			if n, err := ParseNumber(text); err == nil {
				story.Views = n
			}
		case strings.Contains(text, "Chapter"):
			if n, err := ParseNumber(text); err == nil {
				story.Chapters = n
			}
		}
	})

	ratingText := strings.TrimSpace(stats.Find("span.font-red-sunglo").First().Text())
	if m := listRatingPattern.FindStringSubmatch(ratingText); m != nil {
		story.Rating = parseFloat(m[1])
	}

	return story, true
}

// Fiction parses a fiction detail page: the stats panel and the
// description blurb converted to markdown.
func Fiction(data []byte) (*FictionPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing fiction markup: %w", err)
	}

	page := &FictionPage{}

	panel := doc.Find("div.portlet-body.fiction-stats")
	panel.Find("li.bold.uppercase").Each(func(_ int, li *goquery.Selection) {
		text := strings.TrimSpace(li.Text())
		for _, label := range statLabels {
			if !strings.Contains(text, label) {
				continue
			}
			// The value sits in the li immediately after the label li
			value := strings.TrimSpace(li.Next().Text())
			n, err := ParseNumber(value)
			if err != nil {
				break
			}
			switch label {
			case "Total Views":
				page.Stats.Views = n
			case "Followers":
				page.Stats.Followers = n
			case "Favorites":
				page.Stats.Favorites = n
			case "Ratings":
				page.Stats.RatingCount = n
			case "Chapters":
				page.Stats.Chapters = n
			case "Pages":
				page.Stats.Pages = n
			}
			break
		}
	})

	// Rating lives in the span's aria-label or data-content attribute,
	// e.g. "4.83 stars"
	ratingSpan := doc.Find("span.font-red-sunglo").First()
	ratingText, ok := ratingSpan.Attr("aria-label")
	if !ok || ratingText == "" {
		ratingText, _ = ratingSpan.Attr("data-content")
	}
	if m := attrRatingPattern.FindStringSubmatch(ratingText); m != nil {
		page.Stats.Rating = parseFloat(m[1])
	}

	if desc := doc.Find("div.description").First(); desc.Length() > 0 {
		if inner, err := desc.Html(); err == nil {
			page.Description = DescriptionMarkdown(inner)
		}
	}

	return page, nil
}

// resolveURL makes href absolute against the base URL
func resolveURL(href string, base *url.URL) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
