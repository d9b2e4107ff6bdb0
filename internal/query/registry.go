package query

import (
	"github.com/blackwell-systems/gradstat/internal/analytics"
)

// Args is the flat, typed argument set a dispatch caller fills before
// invoking an operation by name. Zero values mean "not supplied";
// each operation validates the arguments it needs.
type Args struct {
	SchoolID    string   `json:"school_id,omitempty"`
	SchoolB     string   `json:"school_b,omitempty"`
	Region      string   `json:"region,omitempty"`
	EntityType  string   `json:"entity_type,omitempty"`
	EntityID    string   `json:"entity_id,omitempty"`
	Metric      string   `json:"metric,omitempty"`
	Metrics     []string `json:"metrics,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Year        int      `json:"year,omitempty"`
	FromYear    int      `json:"from_year,omitempty"`
	ToYear      int      `json:"to_year,omitempty"`
	TopN        int      `json:"top_n,omitempty"`
	Order       string   `json:"order,omitempty"`
	Sensitivity float64  `json:"sensitivity,omitempty"`
}

func (a Args) years() analytics.YearRange {
	return analytics.YearRange{From: a.FromYear, To: a.ToYear}
}

func (a Args) metricList() []analytics.Metric {
	out := make([]analytics.Metric, 0, len(a.Metrics))
	for _, m := range a.Metrics {
		out = append(out, analytics.Metric(m))
	}
	return out
}

// Operation is one entry of the dispatch table: a stable name, a short
// human summary, and the closure that runs it against an Engine.
type Operation struct {
	Name    string
	Summary string
	Run     func(e *Engine, a Args) (any, error)
}

// Registry returns the dispatch table mapping operation names to their
// typed implementations. The table is an explicit map, not a
// reflective lookup; a tool-dispatch layer binds its intents to these
// names.
func Registry() map[string]Operation {
	ops := []Operation{
		{
			Name:    "get_years",
			Summary: "sorted distinct years present in the dataset",
			Run: func(e *Engine, a Args) (any, error) {
				return e.Years(), nil
			},
		},
		{
			Name:    "list_schools",
			Summary: "schools, optionally filtered by region",
			Run: func(e *Engine, a Args) (any, error) {
				return e.Schools(a.Region)
			},
		},
		{
			Name:    "school_year_stats",
			Summary: "full record for one school and year",
			Run: func(e *Engine, a Args) (any, error) {
				return e.SchoolYearStats(a.SchoolID, a.Year)
			},
		},
		{
			Name:    "compare_schools",
			Summary: "per-metric diff between two schools",
			Run: func(e *Engine, a Args) (any, error) {
				return e.CompareSchools(a.SchoolID, a.SchoolB, a.metricList(), a.years())
			},
		},
		{
			Name:    "school_trend",
			Summary: "least-squares trend of a school metric over time",
			Run: func(e *Engine, a Args) (any, error) {
				return e.SchoolTrend(a.SchoolID, analytics.Metric(a.Metric), a.years())
			},
		},
		{
			Name:    "region_summary",
			Summary: "per-year pooled statistics for a region",
			Run: func(e *Engine, a Args) (any, error) {
				return e.RegionSummary(a.Region, a.years())
			},
		},
		{
			Name:    "acceptance_ranking",
			Summary: "schools ranked by accepted graduates for a year",
			Run: func(e *Engine, a Args) (any, error) {
				return e.AcceptanceRanking(a.Year, a.TopN, analytics.Order(a.Order))
			},
		},
		{
			Name:    "gender_gap",
			Summary: "per-year gender share gap for a school",
			Run: func(e *Engine, a Args) (any, error) {
				return e.GenderGap(a.SchoolID, a.years())
			},
		},
		{
			Name:    "zero_acceptance_years",
			Summary: "years in which a school had zero accepted graduates",
			Run: func(e *Engine, a Args) (any, error) {
				return e.ZeroAcceptanceYears(a.SchoolID)
			},
		},
		{
			Name:    "best_year",
			Summary: "school's highest year by a metric",
			Run: func(e *Engine, a Args) (any, error) {
				return e.BestYear(a.SchoolID, analytics.Metric(a.Metric))
			},
		},
		{
			Name:    "worst_year",
			Summary: "school's lowest year by a metric",
			Run: func(e *Engine, a Args) (any, error) {
				return e.WorstYear(a.SchoolID, analytics.Metric(a.Metric))
			},
		},
		{
			Name:    "region_trend",
			Summary: "least-squares trend of a region metric over time",
			Run: func(e *Engine, a Args) (any, error) {
				return e.RegionTrend(a.Region, analytics.Metric(a.Metric), a.years())
			},
		},
		{
			Name:    "acceptance_rate_trend",
			Summary: "per-year acceptance rate series with trend fit",
			Run: func(e *Engine, a Args) (any, error) {
				return e.AcceptanceRateTrend(a.SchoolID, a.years())
			},
		},
		{
			Name:    "top_schools_by_gender",
			Summary: "schools ranked by male or female graduates for a year",
			Run: func(e *Engine, a Args) (any, error) {
				return e.TopSchoolsByGender(a.Year, a.Gender, a.TopN)
			},
		},
		{
			Name:    "improvement_rate",
			Summary: "year-over-year change of a school metric",
			Run: func(e *Engine, a Args) (any, error) {
				return e.ImprovementRate(a.SchoolID, analytics.Metric(a.Metric), a.years())
			},
		},
		{
			Name:    "detect_anomalies",
			Summary: "outlier years by deviation score",
			Run: func(e *Engine, a Args) (any, error) {
				return e.DetectAnomalies(analytics.EntityType(a.EntityType), a.EntityID, analytics.Metric(a.Metric), a.years(), a.Sensitivity)
			},
		},
	}

	table := make(map[string]Operation, len(ops))
	for _, op := range ops {
		table[op.Name] = op
	}
	return table
}

// Dispatch runs a named operation against the engine. Unknown names
// are an InvalidArgumentError, same as any other caller error.
func Dispatch(e *Engine, name string, a Args) (any, error) {
	op, ok := Registry()[name]
	if !ok {
		return nil, &analytics.InvalidArgumentError{Op: name, Arg: "operation", Reason: "unknown operation"}
	}
	return op.Run(e, a)
}
