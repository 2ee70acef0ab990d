// ABOUTME: Test suite for the Story and ScrapeSession models
// ABOUTME: Ensures construction sets identity and timestamps and genre lookup works

package models

import (
	"testing"
	"time"
)

func TestNewStory(t *testing.T) {
	observed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	story := NewStory("12345", "The Wandering Inn", "https://www.royalroad.com/fiction/12345/the-wandering-inn", observed)

	if story.StoryID != "12345" {
		t.Errorf("expected StoryID to be %q, got %q", "12345", story.StoryID)
	}
	if story.Title != "The Wandering Inn" {
		t.Errorf("unexpected title: %q", story.Title)
	}
	if !story.FirstSeen.Equal(observed) {
		t.Errorf("expected FirstSeen %v, got %v", observed, story.FirstSeen)
	}
	if !story.LastUpdated.Equal(observed) {
		t.Errorf("expected LastUpdated %v, got %v", observed, story.LastUpdated)
	}
	if story.ID != 0 {
		t.Errorf("surrogate id should be unset before insertion, got %d", story.ID)
	}
}

func TestStory_HasGenre(t *testing.T) {
	story := NewStory("1", "t", "u", time.Now())
	story.Genres = []string{"Fantasy", "LitRPG"}

	if !story.HasGenre("Fantasy") {
		t.Error("expected HasGenre(Fantasy) to be true")
	}
	if story.HasGenre("Romance") {
		t.Error("expected HasGenre(Romance) to be false")
	}
}

func TestNewScrapeSession(t *testing.T) {
	runAt := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	session := NewScrapeSession(runAt)

	if session.RunID == "" {
		t.Error("expected run id to be generated, got empty string")
	}
	if !session.RunAt.Equal(runAt) {
		t.Errorf("expected RunAt %v, got %v", runAt, session.RunAt)
	}
	if session.Status != SessionFailed {
		t.Errorf("expected initial status %q, got %q", SessionFailed, session.Status)
	}

	session.Finalize(SessionSuccess, "")
	if session.Status != SessionSuccess {
		t.Errorf("expected status %q after finalize, got %q", SessionSuccess, session.Status)
	}
	if session.Notes != nil {
		t.Errorf("expected no notes, got %v", *session.Notes)
	}

	session.Finalize(SessionPartial, "2 pages failed")
	if session.Notes == nil || *session.Notes != "2 pages failed" {
		t.Errorf("expected notes to be set, got %v", session.Notes)
	}
}

func TestMetrics_Metric(t *testing.T) {
	m := Metrics{Rating: 4.5, Followers: 1200, Views: 50000}

	if v, ok := m.Metric("followers"); !ok || v != 1200 {
		t.Errorf("Metric(followers) = %v, %v; want 1200, true", v, ok)
	}
	if v, ok := m.Metric("rating"); !ok || v != 4.5 {
		t.Errorf("Metric(rating) = %v, %v; want 4.5, true", v, ok)
	}
	if _, ok := m.Metric("bogus"); ok {
		t.Error("expected unknown metric name to return false")
	}

	// Every declared name must resolve
	for _, name := range MetricNames {
		if _, ok := m.Metric(name); !ok {
			t.Errorf("MetricNames entry %q does not resolve", name)
		}
	}
}

func TestMetrics_Validate(t *testing.T) {
	good := Metrics{Rating: 4.2, Followers: 10, Views: 100}
	if err := good.Validate(); err != nil {
		t.Errorf("expected valid metrics, got %v", err)
	}

	if err := (Metrics{Rating: 5.5}).Validate(); err == nil {
		t.Error("expected error for rating above 5")
	}
	if err := (Metrics{Followers: -1}).Validate(); err == nil {
		t.Error("expected error for negative followers")
	}
}
