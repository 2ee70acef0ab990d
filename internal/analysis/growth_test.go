// ABOUTME: Tests for binned growth rate computation
// ABOUTME: Covers per-day deltas, last-in-bin selection, and degenerate histories

package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/harper/fictrack/internal/models"
)

// sliceSource adapts a slice to the SnapshotSource interface for tests.
type sliceSource struct {
	snaps []*models.Snapshot
	i     int
}

func (s *sliceSource) Next() bool {
	if s.i < len(s.snaps) {
		s.i++
		return true
	}
	return false
}

func (s *sliceSource) Snapshot() *models.Snapshot { return s.snaps[s.i-1] }
func (s *sliceSource) Err() error                 { return nil }
func (s *sliceSource) Close() error               { return nil }

func snapAt(at time.Time, views int64) *models.Snapshot {
	return &models.Snapshot{ObservedAt: at, Metrics: models.Metrics{Views: views}}
}

func TestGrowthRates_DailyDelta(t *testing.T) {
	day0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	day1 := day0.Add(24 * time.Hour)

	src := &sliceSource{snaps: []*models.Snapshot{
		snapAt(day0, 100),
		snapAt(day1, 150),
	}}

	result, err := GrowthRates(src, "views", day0, day1.Add(time.Hour))
	if err != nil {
		t.Fatalf("GrowthRates failed: %v", err)
	}
	if result.Bin != BinDaily {
		t.Errorf("expected daily bin, got %s", result.Bin)
	}
	if len(result.Points) != 1 {
		t.Fatalf("expected 1 growth point, got %d", len(result.Points))
	}
	if math.Abs(result.Points[0].PerDay-50) > 0.001 {
		t.Errorf("expected growth of 50 views/day, got %f", result.Points[0].PerDay)
	}
	if result.Points[0].Value != 150 {
		t.Errorf("expected closing value 150, got %f", result.Points[0].Value)
	}
}

func TestGrowthRates_LastInBinWins(t *testing.T) {
	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Two observations on day0; only the later one should represent the bin
	src := &sliceSource{snaps: []*models.Snapshot{
		snapAt(day0.Add(6*time.Hour), 100),
		snapAt(day0.Add(18*time.Hour), 120),
		snapAt(day0.Add(42*time.Hour), 180),
	}}

	result, err := GrowthRates(src, "views", day0, day0.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("GrowthRates failed: %v", err)
	}
	if len(result.Points) != 1 {
		t.Fatalf("expected 1 growth point, got %d", len(result.Points))
	}
	// 120 -> 180 over exactly one day
	if math.Abs(result.Points[0].PerDay-60) > 0.001 {
		t.Errorf("expected 60 views/day from the bin-closing values, got %f", result.Points[0].PerDay)
	}
}

func TestGrowthRates_WeeklyBins(t *testing.T) {
	// Mondays, two weeks apart
	week0 := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	week1 := week0.Add(7 * 24 * time.Hour)

	src := &sliceSource{snaps: []*models.Snapshot{
		snapAt(week0, 1000),
		snapAt(week1, 1700),
	}}

	result, err := GrowthRates(src, "views", week0, week0.Add(14*24*time.Hour))
	if err != nil {
		t.Fatalf("GrowthRates failed: %v", err)
	}
	if result.Bin != BinWeekly {
		t.Errorf("expected weekly bin, got %s", result.Bin)
	}
	if len(result.Points) != 1 {
		t.Fatalf("expected 1 growth point, got %d", len(result.Points))
	}
	if math.Abs(result.Points[0].PerDay-100) > 0.001 {
		t.Errorf("expected 100 views/day, got %f", result.Points[0].PerDay)
	}
	if !result.Points[0].BinStart.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected bin start on the second Monday, got %v", result.Points[0].BinStart)
	}
}

func TestGrowthRates_TooFewSnapshots(t *testing.T) {
	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	src := &sliceSource{snaps: []*models.Snapshot{snapAt(day0, 100)}}
	result, err := GrowthRates(src, "views", day0, day0.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("GrowthRates failed: %v", err)
	}
	if len(result.Points) != 0 {
		t.Errorf("expected no growth points for a single snapshot, got %d", len(result.Points))
	}
}

func TestGrowthRates_EmptyHistory(t *testing.T) {
	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	result, err := GrowthRates(&sliceSource{}, "followers", day0, day0.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("GrowthRates failed: %v", err)
	}
	if len(result.Points) != 0 {
		t.Errorf("expected empty series, got %d points", len(result.Points))
	}
}

func TestGrowthRates_UnknownMetric(t *testing.T) {
	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := GrowthRates(&sliceSource{}, "popularity", day0, day0.Add(24*time.Hour))
	if err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestGrowthRates_NegativeGrowth(t *testing.T) {
	day0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	src := &sliceSource{snaps: []*models.Snapshot{
		{ObservedAt: day0, Metrics: models.Metrics{Followers: 500}},
		{ObservedAt: day0.Add(24 * time.Hour), Metrics: models.Metrics{Followers: 480}},
	}}

	result, err := GrowthRates(src, "followers", day0, day0.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("GrowthRates failed: %v", err)
	}
	if len(result.Points) != 1 {
		t.Fatalf("expected 1 growth point, got %d", len(result.Points))
	}
	if math.Abs(result.Points[0].PerDay+20) > 0.001 {
		t.Errorf("expected -20 followers/day, got %f", result.Points[0].PerDay)
	}
}
