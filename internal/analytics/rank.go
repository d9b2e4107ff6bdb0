package analytics

import (
	"sort"
	"strconv"

	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// RankedEntity is one row of a ranking: an entity, its pooled metric
// value over the requested range, and its competition rank (entities
// with equal values share a rank; the next distinct value resumes at
// its ordinal position).
type RankedEntity struct {
	EntityID string  `json:"entity_id"`
	Name     string  `json:"name,omitempty"`
	Value    float64 `json:"value"`
	Rank     int     `json:"rank"`
}

// Ranker orders schools or regions by a metric.
type Ranker struct {
	ds *dataset.Dataset
}

// NewRanker creates a Ranker reading from ds.
func NewRanker(ds *dataset.Dataset) *Ranker {
	return &Ranker{ds: ds}
}

// Rank orders entities of the given type by the metric pooled over the
// year range and returns the first topN rows. Equal values are ordered
// by entity id ascending, so repeated calls produce identical output.
// Entities whose metric is undefined in the range (no records, or a
// ratio with a zero denominator) are excluded, not ranked last.
func (r *Ranker) Rank(entityType EntityType, metric Metric, years YearRange, topN int, order Order) ([]RankedEntity, error) {
	if !entityType.Valid() {
		return nil, &InvalidArgumentError{Op: "rank", Arg: "entity_type", Reason: "must be school or region"}
	}
	if !metric.Valid() {
		return nil, &InvalidArgumentError{Op: "rank", Arg: "metric", Reason: "unknown metric " + strconv.Quote(string(metric))}
	}
	if topN <= 0 {
		return nil, &InvalidArgumentError{Op: "rank", Arg: "top_n", Reason: "must be positive, got " + strconv.Itoa(topN)}
	}
	if !order.Valid() {
		return nil, &InvalidArgumentError{Op: "rank", Arg: "order", Reason: "must be asc or desc"}
	}

	var rows []RankedEntity
	switch entityType {
	case EntitySchool:
		for _, sch := range r.ds.Schools() {
			recs, _ := r.ds.SchoolRecords(sch.ID)
			if v, ok := PooledValue(filterByYear(recs, years), metric); ok {
				rows = append(rows, RankedEntity{EntityID: sch.ID, Name: sch.Name, Value: v})
			}
		}
	case EntityRegion:
		for _, region := range r.ds.Regions() {
			recs, _ := r.ds.RegionRecords(region)
			if v, ok := PooledValue(filterByYear(recs, years), metric); ok {
				rows = append(rows, RankedEntity{EntityID: region, Name: region, Value: v})
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Value != rows[j].Value {
			if order == OrderDesc {
				return rows[i].Value > rows[j].Value
			}
			return rows[i].Value < rows[j].Value
		}
		return rows[i].EntityID < rows[j].EntityID
	})

	// Competition ranking over the ordered rows.
	for i := range rows {
		if i > 0 && rows[i].Value == rows[i-1].Value {
			rows[i].Rank = rows[i-1].Rank
		} else {
			rows[i].Rank = i + 1
		}
	}

	if len(rows) > topN {
		rows = rows[:topN]
	}
	return rows, nil
}
