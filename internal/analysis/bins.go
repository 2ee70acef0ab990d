// ABOUTME: Adaptive time binning for metric history windows
// ABOUTME: Picks daily, weekly, or monthly buckets based on the span being analyzed

package analysis

import (
	"time"

	"github.com/harper/fictrack/internal/timeutil"
)

// Bin is the bucket width used when aggregating snapshots.
type Bin string

const (
	BinDaily   Bin = "daily"
	BinWeekly  Bin = "weekly"
	BinMonthly Bin = "monthly"
)

// Width selects the bin for a window: daily under a week, weekly up to
// four weeks, monthly beyond that.
func Width(from, to time.Time) Bin {
	days := to.Sub(from).Hours() / 24
	switch {
	case days < 7:
		return BinDaily
	case days <= 28:
		return BinWeekly
	default:
		return BinMonthly
	}
}

// Floor truncates a timestamp to the start of its bin. Weeks start on
// Monday.
func (b Bin) Floor(t time.Time) time.Time {
	switch b {
	case BinWeekly:
		return timeutil.StartOfWeek(t)
	case BinMonthly:
		return timeutil.StartOfMonth(t)
	default:
		return timeutil.StartOfDay(t)
	}
}
