// ABOUTME: Story model representing a tracked fictional work with a stable site identity
// ABOUTME: Identity comes from the fiction id in the URL, not the title or slug, which may change

package models

import "time"

// Story represents a unique fictional work tracked across scrapes
type Story struct {
	ID          int64     // Surrogate primary key, assigned at first insertion
	StoryID     string    // Stable site identifier extracted from the fiction URL
	Title       string    // Current title (may change between scrapes)
	URL         string    // Current fiction page URL
	Description *string   // Fiction page blurb as markdown, when captured
	Genres      []string  // Genre tags from the listing
	FirstSeen   time.Time // Set once at first insertion, never updated
	LastUpdated time.Time // Refreshed when an observation changes story fields
}

// NewStory creates a Story first observed at the given time
func NewStory(storyID, title, url string, observedAt time.Time) *Story {
	return &Story{
		StoryID:     storyID,
		Title:       title,
		URL:         url,
		FirstSeen:   observedAt,
		LastUpdated: observedAt,
	}
}

// HasGenre reports whether the story carries the given genre tag
func (s *Story) HasGenre(genre string) bool {
	for _, g := range s.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
