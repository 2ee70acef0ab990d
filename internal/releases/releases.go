// ABOUTME: Chapter release feeds for tracked fictions
// ABOUTME: Discovers a fiction's syndication feed and parses its release history

package releases

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/harper/fictrack/internal/models"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
)

var ErrNoFeed = errors.New("no release feed found")

// FeedURL scans a fiction page for its <link rel="alternate"> RSS feed.
// Relative hrefs are resolved against pageURL.
func FeedURL(htmlBody []byte, pageURL string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page URL: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(htmlBody)))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var found string
	var findLinks func(*html.Node)
	findLinks = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "link" {
			var rel, linkType, href string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "rel":
					rel = attr.Val
				case "type":
					linkType = attr.Val
				case "href":
					href = attr.Val
				}
			}
			if rel == "alternate" && isFeedContentType(linkType) && href != "" {
				if ref, err := url.Parse(href); err == nil {
					found = base.ResolveReference(ref).String()
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findLinks(c)
		}
	}
	findLinks(doc)

	if found == "" {
		return "", ErrNoFeed
	}
	return found, nil
}

// SyndicationURL builds the conventional feed location for a fiction.
// Used as a fallback when the page does not advertise its feed.
func SyndicationURL(baseURL, storyID string) string {
	return strings.TrimRight(baseURL, "/") + "/fiction/syndication/" + storyID
}

// Parse reads an RSS/Atom feed body into releases, newest first.
func Parse(data []byte) ([]models.Release, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	releases := make([]models.Release, 0, len(feed.Items))
	for _, item := range feed.Items {
		rel := models.Release{
			Title: item.Title,
			Link:  item.Link,
		}
		if item.PublishedParsed != nil {
			t := *item.PublishedParsed
			rel.PublishedAt = &t
		} else if item.UpdatedParsed != nil {
			t := *item.UpdatedParsed
			rel.PublishedAt = &t
		}
		releases = append(releases, rel)
	}

	sort.SliceStable(releases, func(i, j int) bool {
		a, b := releases[i].PublishedAt, releases[j].PublishedAt
		if a == nil || b == nil {
			return false
		}
		return a.After(*b)
	})
	return releases, nil
}

// Cadence estimates chapters per week from dated releases. It needs at
// least two dated releases spanning a nonzero interval; otherwise ok is
// false.
func Cadence(releases []models.Release) (perWeek float64, ok bool) {
	var dated []models.Release
	for _, r := range releases {
		if r.PublishedAt != nil {
			dated = append(dated, r)
		}
	}
	if len(dated) < 2 {
		return 0, false
	}

	first, last := *dated[0].PublishedAt, *dated[0].PublishedAt
	for _, r := range dated[1:] {
		if r.PublishedAt.Before(first) {
			first = *r.PublishedAt
		}
		if r.PublishedAt.After(last) {
			last = *r.PublishedAt
		}
	}

	spanDays := last.Sub(first).Hours() / 24
	if spanDays <= 0 {
		return 0, false
	}
	return float64(len(dated)-1) / spanDays * 7, true
}

func isFeedContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "rss") ||
		strings.Contains(contentType, "atom") ||
		strings.Contains(contentType, "xml")
}
