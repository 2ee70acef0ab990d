// ABOUTME: ScrapeSession model recording one execution of the scrape pipeline
// ABOUTME: Created at run start, finalized with counts and status, never mutated afterward

package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus describes how a scrape run ended
type SessionStatus string

const (
	SessionSuccess SessionStatus = "success"
	SessionPartial SessionStatus = "partial"
	SessionFailed  SessionStatus = "failed"
)

// ScrapeSession represents one execution of the fetch-and-persist pipeline
type ScrapeSession struct {
	ID             int64
	RunID          string // Correlates log lines with this history row
	RunAt          time.Time
	PagesScraped   int
	StoriesAdded   int
	StoriesUpdated int
	Status         SessionStatus
	Notes          *string
}

// NewScrapeSession creates a session started at the given time with a
// generated run id
func NewScrapeSession(runAt time.Time) *ScrapeSession {
	return &ScrapeSession{
		RunID:  uuid.New().String(),
		RunAt:  runAt,
		Status: SessionFailed,
	}
}

// Finalize sets the terminal status and optional notes
func (s *ScrapeSession) Finalize(status SessionStatus, notes string) {
	s.Status = status
	if notes != "" {
		s.Notes = &notes
	}
}
