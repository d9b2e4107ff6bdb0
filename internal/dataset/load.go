package dataset

import (
	"fmt"
	"sort"
)

// RowError records why one raw row was rejected during load. Row is the
// 1-based position of the row in the ingestion sequence.
type RowError struct {
	Row      int    `json:"row"`
	SchoolID string `json:"school_id"`
	Year     int    `json:"year"`
	Reason   string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d (school %q, year %d): %s", e.Row, e.SchoolID, e.Year, e.Reason)
}

// LoadReport summarizes one load: how many rows were accepted and the
// reason for every rejection. A load only fails outright when zero
// valid rows remain.
type LoadReport struct {
	Accepted int        `json:"accepted"`
	Rejected []RowError `json:"rejected,omitempty"`
}

// Load validates raw ingestion rows and builds an immutable Dataset.
// Invalid rows are collected in the report rather than failing the
// load; Load returns an EmptyDatasetError only when nothing survives.
//
// Validation per row:
//   - school_id must be non-empty
//   - year must fall in [MinYear, MaxYear]
//   - counts must be non-negative
//   - accepted_count must not exceed male_count + female_count
//   - (school_id, year) must be unique; later duplicates are rejected
func Load(rows []RawRow) (*Dataset, *LoadReport, error) {
	report := &LoadReport{}

	type key struct {
		school string
		year   int
	}
	seen := make(map[key]bool, len(rows))

	reject := func(i int, r RawRow, reason string) {
		report.Rejected = append(report.Rejected, RowError{
			Row:      i + 1,
			SchoolID: r.SchoolID,
			Year:     r.Year,
			Reason:   reason,
		})
	}

	records := make([]Record, 0, len(rows))
	for i, r := range rows {
		switch {
		case r.SchoolID == "":
			reject(i, r, "missing school id")
			continue
		case r.Year < MinYear || r.Year > MaxYear:
			reject(i, r, fmt.Sprintf("year %d outside %d-%d", r.Year, MinYear, MaxYear))
			continue
		case r.MaleCount < 0 || r.FemaleCount < 0 || r.AcceptedCount < 0:
			reject(i, r, "negative count")
			continue
		case r.AcceptedCount > r.MaleCount+r.FemaleCount:
			reject(i, r, fmt.Sprintf("accepted_count %d exceeds total_count %d", r.AcceptedCount, r.MaleCount+r.FemaleCount))
			continue
		case seen[key{r.SchoolID, r.Year}]:
			reject(i, r, "duplicate school/year row")
			continue
		}
		seen[key{r.SchoolID, r.Year}] = true

		records = append(records, Record{
			SchoolID:      r.SchoolID,
			SchoolName:    r.SchoolName,
			Region:        r.Region,
			Year:          r.Year,
			MaleCount:     r.MaleCount,
			FemaleCount:   r.FemaleCount,
			TotalCount:    r.MaleCount + r.FemaleCount,
			AcceptedCount: r.AcceptedCount,
		})
	}

	report.Accepted = len(records)
	if len(records) == 0 {
		return nil, report, &EmptyDatasetError{Total: len(rows), Rejected: len(report.Rejected)}
	}

	return build(records), report, nil
}

// build constructs all indexes eagerly. The dataset is read-only from
// here on.
func build(records []Record) *Dataset {
	ds := &Dataset{
		records:  records,
		bySchool: make(map[string][]Record),
		byYear:   make(map[int][]Record),
		byRegion: make(map[string][]string),
		schools:  make(map[string]School),
	}

	for _, rec := range records {
		ds.bySchool[rec.SchoolID] = append(ds.bySchool[rec.SchoolID], rec)
		ds.byYear[rec.Year] = append(ds.byYear[rec.Year], rec)
	}

	// Per-school series ordered by year; school identity tracks the
	// latest-known name and region.
	for id, recs := range ds.bySchool {
		sort.Slice(recs, func(i, j int) bool { return recs[i].Year < recs[j].Year })
		latest := recs[len(recs)-1]
		ds.schools[id] = School{ID: id, Name: latest.SchoolName, Region: latest.Region}
	}

	// Region membership derives from each school's latest-known region.
	for id, sch := range ds.schools {
		if sch.Region != "" {
			ds.byRegion[sch.Region] = append(ds.byRegion[sch.Region], id)
		}
	}
	for region := range ds.byRegion {
		sort.Strings(ds.byRegion[region])
	}

	for year := range ds.byYear {
		ds.years = append(ds.years, year)
	}
	sort.Ints(ds.years)

	return ds
}
