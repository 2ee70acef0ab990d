// ABOUTME: Lazy iterator over snapshot query results
// ABOUTME: Streams rows on demand so large histories never load fully into memory

package storage

import (
	"database/sql"

	"github.com/harper/fictrack/internal/models"
)

// SnapshotIter walks the rows of a snapshot query one at a time.
// Usage:
//
//	it, err := store.SnapshotsInRange(storyID, from, to)
//	if err != nil { ... }
//	defer it.Close()
//	for it.Next() {
//		snap := it.Snapshot()
//		...
//	}
//	if err := it.Err(); err != nil { ... }
type SnapshotIter struct {
	rows    *sql.Rows
	current *models.Snapshot
	err     error
	closed  bool
}

// Next advances to the next snapshot. It returns false when the rows
// are exhausted or an error occurred; check Err afterwards.
func (it *SnapshotIter) Next() bool {
	if it.closed || it.err != nil {
		return false
	}
	if !it.rows.Next() {
		it.err = it.rows.Err()
		it.Close()
		return false
	}
	snap, err := scanSnapshotFromRows(it.rows)
	if err != nil {
		it.err = err
		it.Close()
		return false
	}
	it.current = snap
	return true
}

// Snapshot returns the row Next positioned on.
func (it *SnapshotIter) Snapshot() *models.Snapshot {
	return it.current
}

// Err returns the first error hit during iteration, if any.
func (it *SnapshotIter) Err() error {
	return it.err
}

// Close releases the underlying rows. Safe to call more than once.
func (it *SnapshotIter) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return it.rows.Close()
}

// Collect drains the iterator into a slice and closes it.
func (it *SnapshotIter) Collect() ([]*models.Snapshot, error) {
	defer it.Close()
	var out []*models.Snapshot
	for it.Next() {
		out = append(out, it.Snapshot())
	}
	return out, it.Err()
}
