// ABOUTME: Cross-story statistics over latest snapshots
// ABOUTME: Metric correlations, genre co-occurrence, and distribution quantiles

package analysis

import (
	"math"
	"sort"

	"github.com/harper/fictrack/internal/models"
)

// CorrMatrix holds pairwise Pearson correlations between metrics.
// Values[i][j] is the correlation of Metrics[i] with Metrics[j].
type CorrMatrix struct {
	Metrics []string    `json:"metrics"`
	Values  [][]float64 `json:"values"`
}

// Correlations computes the metric correlation matrix across a set of
// snapshots, one per story. Degenerate columns (fewer than two rows or
// zero variance) correlate as zero.
func Correlations(rows []models.Metrics) *CorrMatrix {
	names := models.MetricNames
	matrix := &CorrMatrix{Metrics: names, Values: make([][]float64, len(names))}

	columns := make([][]float64, len(names))
	for i, name := range names {
		columns[i] = make([]float64, len(rows))
		for j, row := range rows {
			v, _ := row.Metric(name)
			columns[i][j] = v
		}
	}

	for i := range names {
		matrix.Values[i] = make([]float64, len(names))
		for j := range names {
			matrix.Values[i][j] = pearson(columns[i], columns[j])
		}
	}
	return matrix
}

// pearson computes the correlation coefficient of two equal-length
// series.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if n < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// PairCount is a co-occurrence count for an ordered genre pair (A < B).
type PairCount struct {
	A     string `json:"a"`
	B     string `json:"b"`
	Count int    `json:"count"`
}

// GenrePairs counts how often two genres appear on the same story,
// most common pair first.
func GenrePairs(genreLists [][]string) []PairCount {
	counts := make(map[[2]string]int)
	for _, genres := range genreLists {
		sorted := append([]string(nil), genres...)
		sort.Strings(sorted)
		for i := 0; i < len(sorted); i++ {
			for j := i + 1; j < len(sorted); j++ {
				if sorted[i] == sorted[j] {
					continue
				}
				counts[[2]string{sorted[i], sorted[j]}]++
			}
		}
	}

	out := make([]PairCount, 0, len(counts))
	for pair, count := range counts {
		out = append(out, PairCount{A: pair[0], B: pair[1], Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Deciles returns the 10th through 90th percentile cut points of the
// values using linear interpolation. Empty input yields nil.
func Deciles(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	out := make([]float64, 9)
	for i := 1; i <= 9; i++ {
		out[i-1] = quantile(sorted, float64(i)/10)
	}
	return out
}

// quantile interpolates the q-th quantile of a sorted series.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
