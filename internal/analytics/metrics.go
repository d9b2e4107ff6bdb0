// Package analytics implements the query services of the graduate
// analytics engine: grouped aggregation, ranking, trend fitting,
// anomaly detection, and entity comparison. Every service is a pure
// function of (Dataset, arguments); nothing here mutates shared state.
package analytics

import "github.com/blackwell-systems/gradstat/internal/dataset"

// Metric names a numeric measure derived from a record or a pooled
// group of records.
type Metric string

const (
	// Count metrics aggregate by summing.
	MetricTotal    Metric = "total"
	MetricAccepted Metric = "accepted"
	MetricMale     Metric = "male"
	MetricFemale   Metric = "female"

	// Ratio metrics aggregate as a ratio of sums over the group, never
	// as a mean of per-record ratios, so small schools carry their
	// actual weight.
	MetricAcceptanceRate Metric = "acceptance_rate"
	MetricMaleShare      Metric = "male_share"
	MetricFemaleShare    Metric = "female_share"
)

// Metrics lists every valid metric name.
func Metrics() []Metric {
	return []Metric{
		MetricTotal, MetricAccepted, MetricMale, MetricFemale,
		MetricAcceptanceRate, MetricMaleShare, MetricFemaleShare,
	}
}

// Valid reports whether m names a known metric.
func (m Metric) Valid() bool {
	switch m {
	case MetricTotal, MetricAccepted, MetricMale, MetricFemale,
		MetricAcceptanceRate, MetricMaleShare, MetricFemaleShare:
		return true
	}
	return false
}

// IsRatio reports whether m is a ratio metric (undefined on zero
// denominators).
func (m Metric) IsRatio() bool {
	switch m {
	case MetricAcceptanceRate, MetricMaleShare, MetricFemaleShare:
		return true
	}
	return false
}

// RecordValue extracts the metric from a single record. The second
// return is false when the metric is undefined for the record (ratio
// with a zero total).
func RecordValue(rec dataset.Record, m Metric) (float64, bool) {
	switch m {
	case MetricTotal:
		return float64(rec.TotalCount), true
	case MetricAccepted:
		return float64(rec.AcceptedCount), true
	case MetricMale:
		return float64(rec.MaleCount), true
	case MetricFemale:
		return float64(rec.FemaleCount), true
	case MetricAcceptanceRate:
		if rec.TotalCount == 0 {
			return 0, false
		}
		return float64(rec.AcceptedCount) / float64(rec.TotalCount), true
	case MetricMaleShare:
		if rec.TotalCount == 0 {
			return 0, false
		}
		return float64(rec.MaleCount) / float64(rec.TotalCount), true
	case MetricFemaleShare:
		if rec.TotalCount == 0 {
			return 0, false
		}
		return float64(rec.FemaleCount) / float64(rec.TotalCount), true
	}
	return 0, false
}

// PooledValue computes the metric over a set of records as one group:
// count metrics sum, ratio metrics divide pooled numerator by pooled
// denominator. The second return is false for an empty set or a ratio
// with a zero pooled denominator.
func PooledValue(recs []dataset.Record, m Metric) (float64, bool) {
	if len(recs) == 0 {
		return 0, false
	}

	var total, accepted, male, female int
	for _, rec := range recs {
		total += rec.TotalCount
		accepted += rec.AcceptedCount
		male += rec.MaleCount
		female += rec.FemaleCount
	}

	switch m {
	case MetricTotal:
		return float64(total), true
	case MetricAccepted:
		return float64(accepted), true
	case MetricMale:
		return float64(male), true
	case MetricFemale:
		return float64(female), true
	case MetricAcceptanceRate:
		if total == 0 {
			return 0, false
		}
		return float64(accepted) / float64(total), true
	case MetricMaleShare:
		if total == 0 {
			return 0, false
		}
		return float64(male) / float64(total), true
	case MetricFemaleShare:
		if total == 0 {
			return 0, false
		}
		return float64(female) / float64(total), true
	}
	return 0, false
}

// EntityType selects the unit of ranking, trend, anomaly, and
// comparison analysis.
type EntityType string

const (
	EntitySchool EntityType = "school"
	EntityRegion EntityType = "region"
)

// Valid reports whether t names a known entity type.
func (t EntityType) Valid() bool {
	return t == EntitySchool || t == EntityRegion
}

// Order selects ranking direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Valid reports whether o names a known order.
func (o Order) Valid() bool {
	return o == OrderAsc || o == OrderDesc
}

// YearRange is an inclusive range of years. The zero value means
// unbounded on both ends.
type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// FullRange covers every year the dataset can hold.
func FullRange() YearRange {
	return YearRange{From: dataset.MinYear, To: dataset.MaxYear}
}

// Contains reports whether year falls inside the range. A zero bound
// is open.
func (r YearRange) Contains(year int) bool {
	if r.From != 0 && year < r.From {
		return false
	}
	if r.To != 0 && year > r.To {
		return false
	}
	return true
}

// filterByYear keeps the records whose year falls in the range.
func filterByYear(recs []dataset.Record, r YearRange) []dataset.Record {
	if r == (YearRange{}) {
		return recs
	}
	var out []dataset.Record
	for _, rec := range recs {
		if r.Contains(rec.Year) {
			out = append(out, rec)
		}
	}
	return out
}
