// ABOUTME: Growth rate computation over binned snapshot history
// ABOUTME: Streams snapshots once, keeping only the closing value of each bin

package analysis

import (
	"fmt"
	"time"

	"github.com/harper/fictrack/internal/models"
)

// SnapshotSource yields snapshots in ascending observation order. The
// storage iterators satisfy this.
type SnapshotSource interface {
	Next() bool
	Snapshot() *models.Snapshot
	Err() error
	Close() error
}

// GrowthPoint is the rate of change between one bin and the previous
// bin that held data.
type GrowthPoint struct {
	BinStart time.Time `json:"bin_start"`
	Value    float64   `json:"value"`   // metric value closing the bin
	PerDay   float64   `json:"per_day"` // change per day since the previous bin
}

// GrowthResult is a story's growth series for one metric.
type GrowthResult struct {
	Metric string        `json:"metric"`
	Bin    Bin           `json:"bin"`
	Points []GrowthPoint `json:"points"`
}

// binValue is the closing observation of one bin.
type binValue struct {
	start    time.Time
	observed time.Time
	value    float64
}

// GrowthRates bins the source's snapshots by the window's width and
// computes per-day growth between consecutive bins with data. Fewer
// than two populated bins produce an empty series. The source is
// closed before returning.
func GrowthRates(src SnapshotSource, metric string, from, to time.Time) (*GrowthResult, error) {
	defer src.Close()

	if _, ok := (models.Metrics{}).Metric(metric); !ok {
		return nil, fmt.Errorf("unknown metric %q", metric)
	}

	bin := Width(from, to)
	result := &GrowthResult{Metric: metric, Bin: bin, Points: []GrowthPoint{}}

	// One pass: remember the last observation of each bin
	var bins []binValue
	for src.Next() {
		snap := src.Snapshot()
		value, _ := snap.Metric(metric)
		start := bin.Floor(snap.ObservedAt)

		if len(bins) > 0 && bins[len(bins)-1].start.Equal(start) {
			bins[len(bins)-1].observed = snap.ObservedAt
			bins[len(bins)-1].value = value
			continue
		}
		bins = append(bins, binValue{start: start, observed: snap.ObservedAt, value: value})
	}
	if err := src.Err(); err != nil {
		return nil, err
	}

	for i := 1; i < len(bins); i++ {
		elapsed := bins[i].observed.Sub(bins[i-1].observed).Hours() / 24
		if elapsed <= 0 {
			continue
		}
		result.Points = append(result.Points, GrowthPoint{
			BinStart: bins[i].start,
			Value:    bins[i].value,
			PerDay:   (bins[i].value - bins[i-1].value) / elapsed,
		})
	}
	return result, nil
}
