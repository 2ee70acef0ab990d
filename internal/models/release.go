// ABOUTME: Release model representing one chapter release observed in a story's syndication feed

package models

import "time"

// Release represents a single chapter release
type Release struct {
	Title       string
	Link        string
	PublishedAt *time.Time
}
