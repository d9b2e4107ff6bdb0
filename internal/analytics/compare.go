package analytics

import (
	"strconv"

	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// MetricComparison is the structured diff of one metric between two
// entities. PctChange is nil when ValueA is zero, where a percentage
// is undefined.
type MetricComparison struct {
	ValueA    float64  `json:"value_a"`
	ValueB    float64  `json:"value_b"`
	Delta     float64  `json:"delta"`
	PctChange *float64 `json:"pct_change"`
}

// Comparator computes structured diffs between two entities.
type Comparator struct {
	ds *dataset.Dataset
}

// NewComparator creates a Comparator reading from ds.
func NewComparator(ds *dataset.Dataset) *Comparator {
	return &Comparator{ds: ds}
}

// Compare pools each requested metric over the year range for both
// entities and reports value, delta (B minus A), and percent change
// relative to A. Either entity having no records in the range is a
// NotFoundError. Metrics undefined for either side (a ratio over a
// zero denominator) are omitted from the result.
func (c *Comparator) Compare(entityType EntityType, idA, idB string, metrics []Metric, years YearRange) (map[Metric]MetricComparison, error) {
	if !entityType.Valid() {
		return nil, &InvalidArgumentError{Op: "compare", Arg: "entity_type", Reason: "must be school or region"}
	}
	if len(metrics) == 0 {
		return nil, &InvalidArgumentError{Op: "compare", Arg: "metrics", Reason: "at least one metric required"}
	}
	for _, m := range metrics {
		if !m.Valid() {
			return nil, &InvalidArgumentError{Op: "compare", Arg: "metrics", Reason: "unknown metric " + strconv.Quote(string(m))}
		}
	}

	recsA, err := c.entityRecords(entityType, idA, years)
	if err != nil {
		return nil, err
	}
	recsB, err := c.entityRecords(entityType, idB, years)
	if err != nil {
		return nil, err
	}

	out := make(map[Metric]MetricComparison, len(metrics))
	for _, m := range metrics {
		va, okA := PooledValue(recsA, m)
		vb, okB := PooledValue(recsB, m)
		if !okA || !okB {
			continue
		}
		cmp := MetricComparison{ValueA: va, ValueB: vb, Delta: vb - va}
		if va != 0 {
			pct := 100 * cmp.Delta / va
			cmp.PctChange = &pct
		}
		out[m] = cmp
	}
	return out, nil
}

// entityRecords resolves an entity to its records within the range,
// turning an empty range into a NotFoundError: an entity with no data
// for the requested years is absent for comparison purposes.
func (c *Comparator) entityRecords(entityType EntityType, id string, years YearRange) ([]dataset.Record, error) {
	var (
		recs []dataset.Record
		err  error
	)
	switch entityType {
	case EntitySchool:
		recs, err = c.ds.SchoolRecords(id)
	case EntityRegion:
		recs, err = c.ds.RegionRecords(id)
	}
	if err != nil {
		return nil, err
	}

	recs = filterByYear(recs, years)
	if len(recs) == 0 {
		kind := "school"
		if entityType == EntityRegion {
			kind = "region"
		}
		return nil, &dataset.NotFoundError{Kind: kind, ID: id}
	}
	return recs, nil
}
