// Package dataset holds the immutable, normalized table of per-school
// per-year graduate records that every analytics service reads from.
//
// A Dataset is built once from raw ingestion rows, validated row by row,
// and never mutated afterwards. All lookups are pure reads over indexes
// built at load time, so concurrent queries need no locking.
package dataset

// Year bounds of the graduate enrollment dataset. Rows outside this
// range are rejected at load time.
const (
	MinYear = 1995
	MaxYear = 2023
)

// RawRow is one row as supplied by an ingestion source, before
// validation. TotalCount is not part of the raw shape: it is derived as
// MaleCount + FemaleCount when the row is accepted.
type RawRow struct {
	SchoolID      string
	SchoolName    string
	Region        string
	Year          int
	MaleCount     int
	FemaleCount   int
	AcceptedCount int
}

// Record is one validated observation, keyed by (SchoolID, Year).
// Invariants enforced at load time: TotalCount = MaleCount + FemaleCount
// and AcceptedCount <= TotalCount.
type Record struct {
	SchoolID      string `json:"school_id"`
	SchoolName    string `json:"school_name"`
	Region        string `json:"region"`
	Year          int    `json:"year"`
	MaleCount     int    `json:"male_count"`
	FemaleCount   int    `json:"female_count"`
	TotalCount    int    `json:"total_count"`
	AcceptedCount int    `json:"accepted_count"`
}

// AcceptanceRate returns AcceptedCount/TotalCount. The second return is
// false when TotalCount is zero, where the rate is undefined.
func (r Record) AcceptanceRate() (float64, bool) {
	if r.TotalCount == 0 {
		return 0, false
	}
	return float64(r.AcceptedCount) / float64(r.TotalCount), true
}

// School is the logical entity behind a series of records. Name and
// Region reflect the school's latest-known year.
type School struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}
