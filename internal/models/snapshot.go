// ABOUTME: Snapshot model representing one timestamped observation of a story's metrics
// ABOUTME: Snapshots are append-only; history is never overwritten

package models

import (
	"fmt"
	"time"
)

// Metrics holds one set of observed story metrics. Values the page did
// not expose are zero, matching how the read queries treat them.
type Metrics struct {
	Rating      float64 // Overall score, 0 to 5
	Followers   int64
	Pages       int64
	Chapters    int64
	Views       int64
	Favorites   int64
	RatingCount int64 // Number of ratings behind the score
}

// Snapshot represents one observed measurement of a story at a point in time
type Snapshot struct {
	ID         int64 // Insertion order; breaks ObservedAt ties
	StoryID    int64 // References Story.ID (the surrogate key)
	ObservedAt time.Time
	Metrics
}

// MetricNames lists the metric field names in display order
var MetricNames = []string{"rating", "followers", "pages", "chapters", "views", "favorites", "rating_count"}

// Metric returns the named metric value, or false for an unknown name
func (m Metrics) Metric(name string) (float64, bool) {
	switch name {
	case "rating":
		return m.Rating, true
	case "followers":
		return float64(m.Followers), true
	case "pages":
		return float64(m.Pages), true
	case "chapters":
		return float64(m.Chapters), true
	case "views":
		return float64(m.Views), true
	case "favorites":
		return float64(m.Favorites), true
	case "rating_count":
		return float64(m.RatingCount), true
	}
	return 0, false
}

// Validate checks that every metric is non-negative and the rating is on
// the site's 0-5 scale
func (m Metrics) Validate() error {
	if m.Rating < 0 || m.Rating > 5 {
		return fmt.Errorf("rating %.2f outside 0-5", m.Rating)
	}
	for _, v := range []struct {
		name  string
		value int64
	}{
		{"followers", m.Followers},
		{"pages", m.Pages},
		{"chapters", m.Chapters},
		{"views", m.Views},
		{"favorites", m.Favorites},
		{"rating_count", m.RatingCount},
	} {
		if v.value < 0 {
			return fmt.Errorf("%s is negative: %d", v.name, v.value)
		}
	}
	return nil
}
