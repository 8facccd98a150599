// Package relation materializes the fetched climb sequence as an
// in-memory relation. Rows keep their ingestion order and are never
// mutated; nested fields are addressable through the path registry in
// paths.go.
package relation

import "github.com/climbdata/climbex/pkg/climb"

// Store holds the fetched records for the duration of one export run.
type Store struct {
	rows []climb.Climb
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Ingest appends records in the order they were fetched. It neither
// reorders nor deduplicates: a duplicate uuid from the source yields
// two rows, which is a documented property of the source, not a defect
// of this layer.
func (s *Store) Ingest(recs []climb.Climb) {
	s.rows = append(s.rows, recs...)
}

// Len returns the number of ingested rows.
func (s *Store) Len() int {
	return len(s.rows)
}

// Rows returns the ingested rows in ingestion order. Callers must
// treat the slice as read-only.
func (s *Store) Rows() []climb.Climb {
	return s.rows
}
