package analytics

import (
	"strconv"

	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// GroupBy names the grouping dimension of an aggregation.
type GroupBy string

const (
	GroupByYear   GroupBy = "year"
	GroupByRegion GroupBy = "region"
	GroupBySchool GroupBy = "school"
	GroupByGender GroupBy = "gender"
)

// Valid reports whether g names a known grouping.
func (g GroupBy) Valid() bool {
	switch g {
	case GroupByYear, GroupByRegion, GroupBySchool, GroupByGender:
		return true
	}
	return false
}

// Filter narrows the records an aggregation sees. Zero-valued fields
// do not filter.
type Filter struct {
	Years    YearRange
	Region   string // matches the school's latest-known region
	SchoolID string
}

// Summary is the numeric summary for one group. For count metrics Sum
// is the group total and Mean is Sum/Count. For ratio metrics both Sum
// and Mean carry the pooled ratio of sums; a mean of per-record ratios
// would overweight small schools.
type Summary struct {
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Aggregator computes grouped statistics over a dataset.
type Aggregator struct {
	ds *dataset.Dataset
}

// NewAggregator creates an Aggregator reading from ds.
func NewAggregator(ds *dataset.Dataset) *Aggregator {
	return &Aggregator{ds: ds}
}

// Aggregate groups the filtered records and summarizes the metric per
// group. Groups with no matching records, or with an undefined ratio,
// are omitted rather than reported as zero.
//
// groupBy=gender splits each record's gender counts into "male" and
// "female" groups and supports count metrics only: the data model does
// not break acceptance down by gender, so ratio metrics have no
// gendered denominator.
func (a *Aggregator) Aggregate(groupBy GroupBy, metric Metric, filter Filter) (map[string]Summary, error) {
	if !groupBy.Valid() {
		return nil, &InvalidArgumentError{Op: "aggregate", Arg: "group_by", Reason: "unknown grouping " + strconv.Quote(string(groupBy))}
	}
	if !metric.Valid() {
		return nil, &InvalidArgumentError{Op: "aggregate", Arg: "metric", Reason: "unknown metric " + strconv.Quote(string(metric))}
	}
	if filter.SchoolID != "" && !a.ds.HasSchool(filter.SchoolID) {
		return nil, &dataset.NotFoundError{Kind: "school", ID: filter.SchoolID}
	}
	if filter.Region != "" && !a.ds.HasRegion(filter.Region) {
		return nil, &dataset.NotFoundError{Kind: "region", ID: filter.Region}
	}

	recs := a.filtered(filter)

	if groupBy == GroupByGender {
		return aggregateByGender(recs, metric)
	}

	groups := make(map[string][]dataset.Record)
	for _, rec := range recs {
		var key string
		switch groupBy {
		case GroupByYear:
			key = strconv.Itoa(rec.Year)
		case GroupByRegion:
			// Group by the school's latest-known region, matching how
			// region indexes are built.
			sch, err := a.ds.School(rec.SchoolID)
			if err != nil {
				return nil, err
			}
			if sch.Region == "" {
				continue
			}
			key = sch.Region
		case GroupBySchool:
			key = rec.SchoolID
		}
		groups[key] = append(groups[key], rec)
	}

	out := make(map[string]Summary, len(groups))
	for key, group := range groups {
		if s, ok := summarize(group, metric); ok {
			out[key] = s
		}
	}
	return out, nil
}

// filtered applies the filter over the relevant index.
func (a *Aggregator) filtered(filter Filter) []dataset.Record {
	var recs []dataset.Record
	switch {
	case filter.SchoolID != "":
		recs, _ = a.ds.SchoolRecords(filter.SchoolID)
	case filter.Region != "":
		recs, _ = a.ds.RegionRecords(filter.Region)
	default:
		recs = a.ds.Records()
	}
	return filterByYear(recs, filter.Years)
}

func summarize(group []dataset.Record, metric Metric) (Summary, bool) {
	if metric.IsRatio() {
		pooled, ok := PooledValue(group, metric)
		if !ok {
			return Summary{}, false
		}
		return Summary{Sum: pooled, Mean: pooled, Count: len(group)}, true
	}

	var sum float64
	for _, rec := range group {
		v, _ := RecordValue(rec, metric)
		sum += v
	}
	return Summary{Sum: sum, Mean: sum / float64(len(group)), Count: len(group)}, true
}

func aggregateByGender(recs []dataset.Record, metric Metric) (map[string]Summary, error) {
	if metric != MetricTotal {
		return nil, &InvalidArgumentError{
			Op:     "aggregate",
			Arg:    "metric",
			Reason: "gender grouping supports the total metric only",
		}
	}
	if len(recs) == 0 {
		return map[string]Summary{}, nil
	}

	var male, female float64
	for _, rec := range recs {
		male += float64(rec.MaleCount)
		female += float64(rec.FemaleCount)
	}
	n := len(recs)
	return map[string]Summary{
		"male":   {Sum: male, Mean: male / float64(n), Count: n},
		"female": {Sum: female, Mean: female / float64(n), Count: n},
	}, nil
}
